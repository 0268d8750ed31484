package game

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		columns int
		lines   []string
		wantErr error
	}{
		{
			name: "plain", rows: 2, columns: 2,
			lines: []string{"0H 1H", "1H *H"},
		},
		{
			name: "blank lines everywhere", rows: 2, columns: 3,
			lines: []string{"", "   ", "1S *H 1H", "\t", "1H 1H 1H", "", " "},
		},
		{
			name: "surrounding whitespace", rows: 1, columns: 2,
			lines: []string{"   0S 0S \n"},
		},
		{
			name: "revealed mine and revealed zero", rows: 1, columns: 2,
			lines: []string{"*S 1S"},
		},
		{
			name: "bad second character", rows: 1, columns: 2,
			lines:   []string{"0H 1X"},
			wantErr: ErrMalformedInput,
		},
		{
			name: "bad first character", rows: 1, columns: 2,
			lines:   []string{"9H 1H"},
			wantErr: ErrMalformedInput,
		},
		{
			name: "long token", rows: 1, columns: 2,
			lines:   []string{"0HH 1H"},
			wantErr: ErrMalformedInput,
		},
		{
			name: "double space", rows: 1, columns: 2,
			lines:   []string{"0H  1H"},
			wantErr: ErrMalformedInput,
		},
		{
			name: "lowercase visibility", rows: 1, columns: 2,
			lines:   []string{"0h 1H"},
			wantErr: ErrMalformedInput,
		},
		{
			name: "only blank lines", rows: 1, columns: 2,
			lines:   []string{"", "  ", "\t"},
			wantErr: ErrMalformedInput,
		},
		{
			name: "no lines", rows: 1, columns: 2,
			wantErr: ErrMalformedInput,
		},
		{
			name: "row too short", rows: 2, columns: 3,
			lines:   []string{"0H 0H 0H", "0H 0H"},
			wantErr: ErrDimensionMismatch,
		},
		{
			name: "row too long", rows: 1, columns: 2,
			lines:   []string{"0H 0H 0H"},
			wantErr: ErrDimensionMismatch,
		},
		{
			name: "too few rows", rows: 3, columns: 2,
			lines:   []string{"0H 0H", "0H 0H"},
			wantErr: ErrDimensionMismatch,
		},
		{
			name: "too many rows", rows: 1, columns: 2,
			lines:   []string{"0H 0H", "0H 0H"},
			wantErr: ErrDimensionMismatch,
		},
		{
			name: "malformed after width mismatch", rows: 2, columns: 2,
			lines:   []string{"0H 0H 0H", "0H ?H"},
			wantErr: ErrMalformedInput,
		},
		{
			name: "malformed with wrong row count", rows: 3, columns: 2,
			lines:   []string{"0H 0Z"},
			wantErr: ErrMalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.rows, tt.columns)
			err := g.Load(tt.lines)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Load() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Load() error %T is not a *ParseError", err)
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	g, err := ReadGrid(strings.NewReader("2\n2\n0H 1H\n1H *H\n"))
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}

	v, err := g.Value(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsMine() || v.String() != "*" {
		t.Errorf("Value(1, 1) = %v, want *", v)
	}
	if v, _ := g.Value(0, 1); v.Count() != 1 {
		t.Errorf("Value(0, 1) = %v, want 1", v)
	}
	if s := NewSession(g).Status(); s != NotStarted {
		t.Errorf("Status() = %v, want NotStarted", s)
	}
}

func TestLoadKeepsGridOnFailure(t *testing.T) {
	g := mustLoad(t, 1, 2, "1S *H")
	if err := g.Load([]string{"0H 0H", "0H 0H"}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Load() error = %v", err)
	}
	if got := g.Lines(); !reflect.DeepEqual(got, []string{"1S *H "}) {
		t.Errorf("Lines() = %q after failed load", got)
	}
}

func TestText(t *testing.T) {
	g := mustLoad(t, 2, 3, "0S 1H *H", "0S 1S 1H")

	want := "2\n3\n0S 1H *H \n0S 1S 1H \n"
	if got := g.Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	var sb strings.Builder
	n, err := g.WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if sb.String() != want || n != int64(len(want)) {
		t.Errorf("WriteTo wrote %d bytes %q", n, sb.String())
	}
}

func TestRoundTrip(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		g := mustGrid(t, 7, 13)
		if err := g.PlaceMines(int(seed)*3, seeded(seed)); err != nil {
			t.Fatal(err)
		}
		s := NewSession(g)
		for _, c := range []Coord{{0, 0}, {3, 6}, {6, 12}} {
			_, _ = s.MakeMove(c.Row, c.Column)
		}

		back := mustGrid(t, g.Rows(), g.Columns())
		if err := back.Load(g.Lines()); err != nil {
			t.Fatalf("seed %d: Load(Lines()): %v", seed, err)
		}
		if !reflect.DeepEqual(back.cells, g.cells) {
			t.Errorf("seed %d: Load(Lines()) differs from the source grid", seed)
		}

		read, err := ReadGrid(strings.NewReader(g.Text()))
		if err != nil {
			t.Fatalf("seed %d: ReadGrid(Text()): %v", seed, err)
		}
		if !reflect.DeepEqual(read.cells, g.cells) {
			t.Errorf("seed %d: ReadGrid(Text()) differs from the source grid", seed)
		}
	}
}

func TestReadGrid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "padded", input: "\n  2 \n\n 2\n\n0H 1H\n\n1H *H\n\n"},
		{name: "missing columns", input: "2\n", wantErr: ErrMalformedInput},
		{name: "empty", input: "", wantErr: ErrMalformedInput},
		{name: "non-numeric rows", input: "two\n2\n0H 0H\n0H 0H\n", wantErr: ErrMalformedInput},
		{name: "size out of bounds", input: "0\n2\n", wantErr: ErrSizeOutOfBounds},
		{name: "rows do not match", input: "3\n2\n0H 0H\n", wantErr: ErrDimensionMismatch},
		{name: "no rows", input: "2\n2\n\n", wantErr: ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGrid(strings.NewReader(tt.input))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ReadGrid() error = %v", err)
				}
				if g.Rows() != 2 || g.Columns() != 2 {
					t.Errorf("dimensions = %dx%d", g.Rows(), g.Columns())
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadGrid() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
