package viewmodel

import (
	"encoding/json"

	"minesweeper/game"
)

// プレイヤーに見せるマスの状態
const (
	StateHidden = "hidden"
	StateOpened = "opened"
)

// CellView はプレイヤーが知ってよい1マス分の情報です
type CellView struct {
	State  string `json:"state"`
	Value  string `json:"value,omitempty"`
	Count  int    `json:"count"`
	IsMine bool   `json:"is_mine"`
}

// GameView は描画用にセッションを変換したものです
type GameView struct {
	Rows        int          `json:"rows"`
	Columns     int          `json:"columns"`
	Cells       [][]CellView `json:"cells"`
	Status      string       `json:"status"`
	HiddenCount int          `json:"hidden_count"`
	IsGameOver  bool         `json:"is_game_over"`
	IsGameClear bool         `json:"is_game_clear"`
}

// New は s を GameView に変換します
// 未開封のマスは中身を持ちませんが、負けたときは全地雷を見せます
func New(s *game.Session) GameView {
	g := s.Grid()
	status := s.Status()
	lost := status == game.Lost

	view := GameView{
		Rows:        g.Rows(),
		Columns:     g.Columns(),
		Cells:       make([][]CellView, g.Rows()),
		Status:      status.String(),
		IsGameOver:  lost,
		IsGameClear: status == game.Won,
	}

	for r := 0; r < g.Rows(); r++ {
		view.Cells[r] = make([]CellView, g.Columns())
		for c := 0; c < g.Columns(); c++ {
			cell, _ := g.Cell(r, c)
			v := CellView{State: StateHidden}

			if cell.Visibility == game.Revealed || (lost && cell.Value.IsMine()) {
				v.State = StateOpened
				v.Value = cell.Value.String()
				v.IsMine = cell.Value.IsMine()
				if !v.IsMine {
					v.Count = cell.Value.Count()
				}
			}
			if cell.Visibility == game.Hidden {
				view.HiddenCount++
			}
			view.Cells[r][c] = v
		}
	}

	return view
}

// JSON は GameView を JSON で返します（nilの場合は空のJSONオブジェクト）
func JSON(s *game.Session) string {
	if s == nil {
		return "{}"
	}
	bytes, _ := json.Marshal(New(s))
	return string(bytes)
}
