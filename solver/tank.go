package solver

import (
	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"

	"minesweeper/game"
)

// maxSegment はセグメントあたりの未開封マス数の上限です（探索は指数時間）
const maxSegment = 18

// segment は連結した境界マスと、それに接する数字の制約です
type segment struct {
	unknowns []game.Coord
	rules    []rule
}

// rule は cells（unknowns のインデックス）にちょうど mines 個の地雷があることを表します
type rule struct {
	cells []int
	mines int
}

// clue は開いた数字1つと、その周囲の未確定マスです
type clue struct {
	unknown []game.Coord
	mines   int
}

// tank は境界のセグメントごとに、見えている数字と矛盾しない地雷配置を全列挙します
// 全配置で地雷のマスは確定地雷として記録し、どの配置でも安全なマスがあればそれを返します
// なければ地雷確率が最も低いマスを推測として返し、探索できなければ nil です
func (s *Solver) tank() *Move {
	var safe, best *Move
	bestProb := 1.0

	for _, seg := range s.segments() {
		if len(seg.unknowns) > maxSegment {
			continue
		}
		solutions := seg.solve()
		if len(solutions) == 0 {
			continue
		}

		counts := make([]int, len(seg.unknowns))
		for _, sol := range solutions {
			for i, mine := range sol {
				if mine {
					counts[i]++
				}
			}
		}

		total := float64(len(solutions))
		for i, n := range counts {
			c := seg.unknowns[i]
			prob := float64(n) / total
			switch {
			case n == 0:
				if safe == nil {
					safe = &Move{Row: c.Row, Column: c.Column, Strategy: StrategyTank, Confidence: 1.0}
				}
			case n == len(solutions):
				s.mines.Put(c)
			case prob < bestProb:
				bestProb = prob
				best = &Move{
					Row:        c.Row,
					Column:     c.Column,
					IsGuess:    true,
					Strategy:   StrategyProbability,
					Confidence: 1.0 - prob,
				}
			}
		}
	}

	if safe != nil {
		return safe
	}
	return best
}

// segments は境界マスを、数字を共有するマス同士でグループに分けます（連結成分分解）
// マスは数字を走査した順に並ぶので、map の順序に結果が左右されません
func (s *Solver) segments() []*segment {
	var clues []clue
	var frontier []game.Coord
	index := make(map[game.Coord]int)

	s.eachClue(func(count int, known, unknown []game.Coord) {
		if len(unknown) == 0 {
			return
		}
		clues = append(clues, clue{unknown: unknown, mines: count - len(known)})
		for _, c := range unknown {
			if _, ok := index[c]; !ok {
				index[c] = len(frontier)
				frontier = append(frontier, c)
			}
		}
	})

	adj := make([][]int, len(frontier))
	for _, cl := range clues {
		for i := 0; i < len(cl.unknown)-1; i++ {
			a := index[cl.unknown[i]]
			for j := i + 1; j < len(cl.unknown); j++ {
				b := index[cl.unknown[j]]
				adj[a] = append(adj[a], b)
				adj[b] = append(adj[b], a)
			}
		}
	}

	visited := mapset.New[int]()
	var segments []*segment

	for start := range frontier {
		if visited.Has(start) {
			continue
		}

		var group []int
		var queue deque.Deque[int]
		queue.PushBack(start)
		visited.Put(start)
		for queue.Len() > 0 {
			cur := queue.PopFront()
			group = append(group, cur)
			for _, next := range adj[cur] {
				if !visited.Has(next) {
					visited.Put(next)
					queue.PushBack(next)
				}
			}
		}

		seg := &segment{unknowns: make([]game.Coord, len(group))}
		local := make(map[game.Coord]int, len(group))
		for i, k := range group {
			seg.unknowns[i] = frontier[k]
			local[frontier[k]] = i
		}

		// 数字の周囲のマスは全部連結しているので、最初の1つを見れば十分
		for _, cl := range clues {
			if _, ok := local[cl.unknown[0]]; !ok {
				continue
			}
			r := rule{cells: make([]int, len(cl.unknown)), mines: cl.mines}
			for i, c := range cl.unknown {
				r.cells[i] = local[c]
			}
			seg.rules = append(seg.rules, r)
		}
		segments = append(segments, seg)
	}

	return segments
}

func (seg *segment) solve() [][]bool {
	var solutions [][]bool
	layout := make([]bool, len(seg.unknowns))
	seg.backtrack(0, layout, &solutions)
	return solutions
}

func (seg *segment) backtrack(index int, layout []bool, solutions *[][]bool) {
	if !seg.feasible(index, layout) {
		return
	}
	if index == len(seg.unknowns) {
		*solutions = append(*solutions, append([]bool(nil), layout...))
		return
	}

	layout[index] = true
	seg.backtrack(index+1, layout, solutions)

	layout[index] = false
	seg.backtrack(index+1, layout, solutions)
}

// feasible は layout の先頭 decided 個を決めた時点で全ルールを満たせるかを返します
// 地雷数がすでにオーバーしていたり、残りを全部地雷にしても足りなければアウトです
func (seg *segment) feasible(decided int, layout []bool) bool {
	for _, r := range seg.rules {
		mines, open := 0, 0
		for _, idx := range r.cells {
			switch {
			case idx >= decided:
				open++
			case layout[idx]:
				mines++
			}
		}
		if mines > r.mines || mines+open < r.mines {
			return false
		}
	}
	return true
}
