package game

import "fmt"

// Session は1つの盤面で1ゲームを進めます
type Session struct {
	grid *Grid
}

// NewSession は g を包んだセッションを返します（g は途中の盤面でも構いません）
func NewSession(g *Grid) *Session {
	return &Session{grid: g}
}

// Grid は盤面を返します
func (s *Session) Grid() *Grid { return s.grid }

// Status は呼ばれるたびに盤面から状態を求めます
// 開いた地雷が1つでもあれば、他がどうであれ Lost です
func (s *Session) Status() Status {
	anyRevealed := false
	hiddenSafe := false

	for _, row := range s.grid.cells {
		for _, c := range row {
			revealed := c.Visibility == Revealed
			if revealed && c.Value.IsMine() {
				return Lost
			}
			if revealed {
				anyRevealed = true
			}
			if !revealed && !c.Value.IsMine() {
				hiddenSafe = true
			}
		}
	}

	switch {
	case !anyRevealed:
		return NotStarted
	case !hiddenSafe:
		return Won
	default:
		return InProgress
	}
}

// MakeMove は (row, column) を開け、0 なら連鎖するマスも順に開けます
// 戻り値: 開けたマスの中身
// 範囲外と開封済みのエラーが先で、勝敗が決まった後の未開封マスは ErrGameOver です
func (s *Session) MakeMove(row, column int) (Value, error) {
	if err := s.grid.checkIndices(row, column); err != nil {
		return 0, err
	}
	if s.grid.cells[row][column].Visibility == Revealed {
		return 0, &CellError{Row: row, Column: column, Err: ErrAlreadyRevealed}
	}
	if s.Status().Over() {
		return 0, &CellError{Row: row, Column: column, Err: ErrGameOver}
	}
	if err := s.grid.Reveal(row, column); err != nil {
		return 0, err
	}

	v := s.grid.cells[row][column].Value
	if v != 0 {
		return v, nil
	}

	seq, err := s.grid.Cascade(row, column)
	if err != nil {
		return v, err
	}
	for _, c := range seq {
		if err := s.grid.Reveal(c.Row, c.Column); err != nil {
			panic(fmt.Sprintf("game: cascade reveal of (%d, %d) failed: %v", c.Row, c.Column, err))
		}
	}
	return v, nil
}
