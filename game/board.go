package game

import (
	"math/rand/v2"
	"time"

	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

// neighbourOffsets は周囲8マスへのずれです（真上から時計回り）
var neighbourOffsets = [8]Coord{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// NewGrid は全マスが未開封の 0 の盤面を返します
func NewGrid(rows, columns int) (*Grid, error) {
	if rows < MinRows || rows > MaxRows || columns < MinColumns || columns > MaxColumns {
		return nil, ErrSizeOutOfBounds
	}

	cells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]Cell, columns)
	}

	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   cells,
	}, nil
}

// Rows は行数を返します
func (g *Grid) Rows() int { return g.rows }

// Columns は列数を返します
func (g *Grid) Columns() int { return g.columns }

// PlaceMines は count 個の地雷を重ならないようにランダムに配置し、
// 残りのマスに周囲の地雷数を書き込みます。
// 初期状態の盤面でのみ成功し、失敗時は盤面を変更しません。
// r が nil なら時刻をシードにした乱数を使います
func (g *Grid) PlaceMines(count int, r *rand.Rand) error {
	if count < 1 || count > g.rows*g.columns-1 {
		return ErrInvalidMineCount
	}
	if !g.pristine() {
		return ErrInvalidMineCount
	}
	if r == nil {
		seed := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(seed, seed>>1))
	}

	placed := 0
	for placed < count {
		row := r.IntN(g.rows)
		col := r.IntN(g.columns)

		if !g.cells[row][col].Value.IsMine() {
			g.cells[row][col].Value = Mine
			placed++
		}
	}

	g.calculateNeighbors()
	return nil
}

// pristine は全マスが未開封の 0 のままかどうかを返します
func (g *Grid) pristine() bool {
	for r := range g.cells {
		for _, c := range g.cells[r] {
			if c.Value != 0 || c.Visibility != Hidden {
				return false
			}
		}
	}
	return true
}

// calculateNeighbors は地雷以外の全マスに周囲の地雷数を設定します
func (g *Grid) calculateNeighbors() {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			if g.cells[r][c].Value.IsMine() {
				continue
			}
			count := 0
			for _, n := range g.Neighbors(r, c) {
				if g.cells[n.Row][n.Column].Value.IsMine() {
					count++
				}
			}
			g.cells[r][c].Value = Value(count)
		}
	}
}

// Neighbors は (row, column) の盤面内の隣接マスを返します
// 順番は真上から時計回りです
func (g *Grid) Neighbors(row, column int) []Coord {
	out := make([]Coord, 0, len(neighbourOffsets))
	for _, d := range neighbourOffsets {
		n := Coord{Row: row + d.Row, Column: column + d.Column}
		if g.inBounds(n.Row, n.Column) {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) inBounds(row, column int) bool {
	return row >= 0 && row < g.rows && column >= 0 && column < g.columns
}

func (g *Grid) checkIndices(row, column int) error {
	if !g.inBounds(row, column) {
		return &CellError{Row: row, Column: column, Err: ErrIndexOutOfRange}
	}
	return nil
}

// Cell は (row, column) のマスのコピーを返します
func (g *Grid) Cell(row, column int) (Cell, error) {
	if err := g.checkIndices(row, column); err != nil {
		return Cell{}, err
	}
	return g.cells[row][column], nil
}

// Value は (row, column) のマスの中身を返します
func (g *Grid) Value(row, column int) (Value, error) {
	if err := g.checkIndices(row, column); err != nil {
		return 0, err
	}
	return g.cells[row][column].Value, nil
}

// Visibility は (row, column) のマスが開いているかどうかを返します
func (g *Grid) Visibility(row, column int) (Visibility, error) {
	if err := g.checkIndices(row, column); err != nil {
		return Hidden, err
	}
	return g.cells[row][column].Visibility, nil
}

// Reveal は未開封のマスを1つだけ開けます（連鎖はしません）
func (g *Grid) Reveal(row, column int) error {
	if err := g.checkIndices(row, column); err != nil {
		return err
	}

	cell := &g.cells[row][column]
	if cell.Visibility == Revealed {
		return &CellError{Row: row, Column: column, Err: ErrAlreadyRevealed}
	}
	cell.Visibility = Revealed
	return nil
}

// Cascade は開けた (row, column) から連鎖して開くマスを幅優先の順で返します
// 広がるのは 0 のマスからだけで、数字のマスは列挙されますがそこで止まります
// 未開封のマスだけを重複なく返し、開始マス自身は含みません
// 盤面は変更しません
func (g *Grid) Cascade(row, column int) ([]Coord, error) {
	if err := g.checkIndices(row, column); err != nil {
		return nil, err
	}

	start := Coord{Row: row, Column: column}
	seen := mapset.New[Coord]()
	seen.Put(start)

	var queue deque.Deque[Coord]
	queue.PushBack(start)

	var seq []Coord
	for queue.Len() != 0 {
		cur := queue.PopFront()
		if cur != start {
			seq = append(seq, cur)
		}
		if g.cells[cur.Row][cur.Column].Value != 0 {
			continue
		}
		for _, n := range g.Neighbors(cur.Row, cur.Column) {
			if seen.Has(n) || g.cells[n.Row][n.Column].Visibility != Hidden {
				continue
			}
			seen.Put(n)
			queue.PushBack(n)
		}
	}

	return seq, nil
}
