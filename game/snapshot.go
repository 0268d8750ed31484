package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load は lines を読み込んで盤面のマスを置き換えます
// 空行以外の各行が1行分で、2文字のトークンを空白1つで区切ります
// 1文字目は中身（0-8 か *）、2文字目は H（未開封）か S（開封済み）です
// 空行はどこにあっても無視します
//
// 全トークンを先に検査するので ErrMalformedInput が ErrDimensionMismatch より優先です
// 入力全体が正しいときだけ盤面を書き換えます
func (g *Grid) Load(lines []string) error {
	type parsedRow struct {
		line  int
		cells []Cell
	}

	var rows []parsedRow
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if l == "" {
			continue
		}

		tokens := strings.Split(l, " ")
		cells := make([]Cell, len(tokens))
		for j, tok := range tokens {
			c, err := parseToken(tok)
			if err != nil {
				return &ParseError{Line: i + 1, Token: tok, Err: err}
			}
			cells[j] = c
		}
		rows = append(rows, parsedRow{line: i + 1, cells: cells})
	}

	if len(rows) == 0 {
		return &ParseError{Err: fmt.Errorf("%w: no rows", ErrMalformedInput)}
	}
	for _, r := range rows {
		if len(r.cells) != g.columns {
			return &ParseError{
				Line: r.line,
				Err:  fmt.Errorf("%w: %d cells, want %d", ErrDimensionMismatch, len(r.cells), g.columns),
			}
		}
	}
	if len(rows) != g.rows {
		return &ParseError{Err: fmt.Errorf("%w: %d rows, want %d", ErrDimensionMismatch, len(rows), g.rows)}
	}

	for i, r := range rows {
		g.cells[i] = r.cells
	}
	return nil
}

func parseToken(tok string) (Cell, error) {
	if len(tok) != 2 {
		return Cell{}, ErrMalformedInput
	}

	var c Cell
	switch v := tok[0]; {
	case v == '*':
		c.Value = Mine
	case v >= '0' && v <= '8':
		c.Value = Value(v - '0')
	default:
		return Cell{}, ErrMalformedInput
	}

	switch tok[1] {
	case 'H':
		c.Visibility = Hidden
	case 'S':
		c.Visibility = Revealed
	default:
		return Cell{}, ErrMalformedInput
	}
	return c, nil
}

// Lines は盤面の各行をテキストにして返します
// 各トークンの後ろには空白が付きます
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		sb.Reset()
		for _, c := range g.cells[r] {
			sb.WriteString(c.Value.String())
			sb.WriteString(c.Visibility.String())
			sb.WriteByte(' ')
		}
		out[r] = sb.String()
	}
	return out
}

// Text は行数、列数、各行の順に並べた保存テキストを返します
func (g *Grid) Text() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(g.rows))
	sb.WriteByte('\n')
	sb.WriteString(strconv.Itoa(g.columns))
	sb.WriteByte('\n')
	for _, l := range g.Lines() {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTo は Text の内容を w に書き込みます
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.Text())
	return int64(n), err
}

// ReadGrid は保存テキスト全体を読み込みます
// 空行以外の最初の2行が行数と列数で、残りは Load に渡します
func ReadGrid(r io.Reader) (*Grid, error) {
	var (
		dims  []int
		lines []string
		n     int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		n++
		line := sc.Text()
		if len(dims) == 2 {
			lines = append(lines, line)
			continue
		}
		l := strings.TrimSpace(line)
		if l == "" {
			continue
		}
		v, err := strconv.Atoi(l)
		if err != nil {
			return nil, &ParseError{Line: n, Token: l, Err: ErrMalformedInput}
		}
		dims = append(dims, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(dims) != 2 {
		return nil, &ParseError{Err: fmt.Errorf("%w: missing dimensions", ErrMalformedInput)}
	}

	g, err := NewGrid(dims[0], dims[1])
	if err != nil {
		return nil, err
	}
	if err := g.Load(lines); err != nil {
		return nil, err
	}
	return g, nil
}
