package solver

import (
	"math/rand/v2"
	"time"

	"github.com/zyedidia/generic/mapset"

	"minesweeper/game"
)

// Move.Strategy に入る手の決め方
const (
	StrategyLogic       = "Logic"
	StrategyTank        = "Tank"
	StrategyProbability = "Tank(Prob)"
	StrategyRandom      = "Random"
)

// Move は次に開けるマスの提案です
type Move struct {
	Row, Column int
	IsGuess     bool
	Strategy    string
	Confidence  float64 // 0.0 ~ 1.0 (安全確率)
}

// Solver はプレイヤーに見えている情報だけで次の手を考えます
// 盤面にフラグはないので、確定した地雷は自分の集合で覚えます
type Solver struct {
	grid  *game.Grid
	rng   *rand.Rand
	mines mapset.Set[game.Coord]
}

// New は g 用のソルバーを返します（r が nil なら時刻シードの乱数）
func New(g *game.Grid, r *rand.Rand) *Solver {
	if r == nil {
		seed := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &Solver{grid: g, rng: r, mines: mapset.New[game.Coord]()}
}

// KnownMine は (row, column) が地雷と確定しているかを返します
func (s *Solver) KnownMine(row, column int) bool {
	return s.mines.Has(game.Coord{Row: row, Column: column})
}

// NextMove は次の手を返します
// 1. 論理的に「絶対に安全」なマス
// 2. タンク探索で地雷確率が最も低い境界マス
// 3. 地雷と確定していない未開封マスをランダムに
// 開けるマスが残っていなければ nil です
func (s *Solver) NextMove() *Move {
	s.inferMines()

	if move := s.findSafeMove(); move != nil {
		move.Strategy = StrategyLogic
		move.Confidence = 1.0
		return move
	}

	if move := s.tank(); move != nil {
		return move
	}

	move := s.findRandomMove()
	if move != nil {
		move.IsGuess = true
		move.Strategy = StrategyRandom
	}
	return move
}

// inferMines は数字と周囲の未開封マスの数が等しければ、それらを地雷とします
// 変化がなくなるまで繰り返します
func (s *Solver) inferMines() {
	for changed := true; changed; {
		changed = false
		s.eachClue(func(count int, known, unknown []game.Coord) {
			if len(known)+len(unknown) != count || len(unknown) == 0 {
				return
			}
			for _, c := range unknown {
				s.mines.Put(c)
			}
			changed = true
		})
	}
}

// findSafeMove は周囲の地雷がすべて確定した数字を探します
// その数字の残りの未開封マスは安全です
func (s *Solver) findSafeMove() *Move {
	var move *Move
	s.eachClue(func(count int, known, unknown []game.Coord) {
		if move != nil || len(known) != count || len(unknown) == 0 {
			return
		}
		target := unknown[0]
		move = &Move{Row: target.Row, Column: target.Column}
	})
	return move
}

func (s *Solver) findRandomMove() *Move {
	var candidates []game.Coord

	for r := 0; r < s.grid.Rows(); r++ {
		for c := 0; c < s.grid.Columns(); c++ {
			if vis, _ := s.grid.Visibility(r, c); vis == game.Revealed {
				continue
			}
			if s.KnownMine(r, c) {
				continue
			}
			candidates = append(candidates, game.Coord{Row: r, Column: c})
		}
	}

	if len(candidates) == 0 {
		return nil
	}
	choice := candidates[s.rng.IntN(len(candidates))]
	return &Move{Row: choice.Row, Column: choice.Column}
}

// eachClue は開いた数字マスごとに fn を呼びます
// 周囲の未開封マスは確定地雷 (known) とそれ以外 (unknown) に分けて渡します
func (s *Solver) eachClue(fn func(count int, known, unknown []game.Coord)) {
	for r := 0; r < s.grid.Rows(); r++ {
		for c := 0; c < s.grid.Columns(); c++ {
			cell, _ := s.grid.Cell(r, c)
			if cell.Visibility != game.Revealed || cell.Value.IsMine() || cell.Value == 0 {
				continue
			}
			known, unknown := s.hiddenNeighbors(r, c)
			fn(cell.Value.Count(), known, unknown)
		}
	}
}

func (s *Solver) hiddenNeighbors(row, column int) (known, unknown []game.Coord) {
	for _, n := range s.grid.Neighbors(row, column) {
		if vis, _ := s.grid.Visibility(n.Row, n.Column); vis != game.Hidden {
			continue
		}
		if s.mines.Has(n) {
			known = append(known, n)
		} else {
			unknown = append(unknown, n)
		}
	}
	return known, unknown
}
