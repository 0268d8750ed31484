package game

import (
	"errors"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Status
	}{
		{name: "all hidden", lines: []string{"0H 1H", "1H *H"}, want: NotStarted},
		{name: "one open", lines: []string{"0H 1S", "1H *H"}, want: InProgress},
		{name: "all safe open", lines: []string{"1S 1S", "1S *H"}, want: Won},
		{name: "mine open", lines: []string{"1H 1H", "1H *S"}, want: Lost},
		{name: "mine open and safe cells open", lines: []string{"1S 1S", "1S *S"}, want: Lost},
		{name: "only the mine open", lines: []string{"1H 1H", "1H *S"}, want: Lost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(mustLoad(t, 2, 2, tt.lines...))
			if got := s.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	want := map[Status]string{
		NotStarted: "NotStarted",
		InProgress: "InProgress",
		Won:        "Win",
		Lost:       "Lose",
		Status(99): "Unknown",
	}
	for s, w := range want {
		if s.String() != w {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), w)
		}
	}
}

func TestMakeMoveEmptyBoardWins(t *testing.T) {
	s := NewSession(mustGrid(t, 3, 3))

	v, err := s.MakeMove(1, 1)
	if err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if v != 0 {
		t.Errorf("MakeMove returned %v, want 0", v)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if vis, _ := s.Grid().Visibility(r, c); vis != Revealed {
				t.Errorf("(%d, %d) still hidden", r, c)
			}
		}
	}
	if st := s.Status(); st != Won {
		t.Errorf("Status() = %v, want Won", st)
	}
}

func TestMakeMove(t *testing.T) {
	lines := []string{
		"0H 0H 1H 1H",
		"0H 0H 1H *H",
		"0H 0H 1H 1H",
	}

	t.Run("number does not cascade", func(t *testing.T) {
		s := NewSession(mustLoad(t, 3, 4, lines...))
		v, err := s.MakeMove(0, 2)
		if err != nil {
			t.Fatal(err)
		}
		if v.Count() != 1 {
			t.Errorf("MakeMove = %v, want 1", v)
		}
		if vis, _ := s.Grid().Visibility(0, 1); vis != Hidden {
			t.Error("neighbour of a numbered cell was opened")
		}
		if st := s.Status(); st != InProgress {
			t.Errorf("Status() = %v, want InProgress", st)
		}
	})

	t.Run("zero cascades then win", func(t *testing.T) {
		s := NewSession(mustLoad(t, 3, 4, lines...))
		if _, err := s.MakeMove(0, 0); err != nil {
			t.Fatal(err)
		}
		want := []string{"0S 0S 1S 1H ", "0S 0S 1S *H ", "0S 0S 1S 1H "}
		for i, l := range s.Grid().Lines() {
			if l != want[i] {
				t.Errorf("row %d = %q, want %q", i, l, want[i])
			}
		}
		if st := s.Status(); st != InProgress {
			t.Fatalf("Status() = %v, want InProgress", st)
		}
		for _, c := range []Coord{{0, 3}, {2, 3}} {
			if _, err := s.MakeMove(c.Row, c.Column); err != nil {
				t.Fatal(err)
			}
		}
		if st := s.Status(); st != Won {
			t.Errorf("Status() = %v, want Won", st)
		}
	})

	t.Run("mine loses", func(t *testing.T) {
		s := NewSession(mustLoad(t, 3, 4, lines...))
		v, err := s.MakeMove(1, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !v.IsMine() {
			t.Errorf("MakeMove = %v, want mine", v)
		}
		if st := s.Status(); st != Lost {
			t.Errorf("Status() = %v, want Lost", st)
		}
	})

	t.Run("errors leave the grid alone", func(t *testing.T) {
		s := NewSession(mustLoad(t, 3, 4, lines...))
		if _, err := s.MakeMove(0, 2); err != nil {
			t.Fatal(err)
		}
		before := s.Grid().Text()

		if _, err := s.MakeMove(0, 2); !errors.Is(err, ErrAlreadyRevealed) {
			t.Errorf("repeat move error = %v, want ErrAlreadyRevealed", err)
		}
		if _, err := s.MakeMove(3, 0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("out of range error = %v, want ErrIndexOutOfRange", err)
		}
		if after := s.Grid().Text(); after != before {
			t.Errorf("grid changed:\n%s\nwas\n%s", after, before)
		}
	})
}

func TestStatusIsFinal(t *testing.T) {
	t.Run("after a loss", func(t *testing.T) {
		s := NewSession(mustLoad(t, 1, 3, "1H *H 1H"))
		if _, err := s.MakeMove(0, 1); err != nil {
			t.Fatal(err)
		}
		if _, err := s.MakeMove(0, 1); !errors.Is(err, ErrAlreadyRevealed) {
			t.Errorf("repeat move error = %v, want ErrAlreadyRevealed", err)
		}
		if _, err := s.MakeMove(5, 5); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("out of range error = %v, want ErrIndexOutOfRange", err)
		}
		if _, err := s.MakeMove(0, 0); !errors.Is(err, ErrGameOver) {
			t.Errorf("hidden cell error = %v, want ErrGameOver", err)
		}
		if st := s.Status(); st != Lost {
			t.Errorf("Status() = %v, want Lost", st)
		}
	})

	t.Run("after a win", func(t *testing.T) {
		s := NewSession(mustLoad(t, 1, 3, "1S *H 1H"))
		if _, err := s.MakeMove(0, 2); err != nil {
			t.Fatal(err)
		}
		if st := s.Status(); st != Won {
			t.Fatalf("Status() = %v, want Won", st)
		}
		if _, err := s.MakeMove(0, 1); !errors.Is(err, ErrGameOver) {
			t.Errorf("hidden mine error = %v, want ErrGameOver", err)
		}
		if _, err := s.MakeMove(0, 0); !errors.Is(err, ErrAlreadyRevealed) {
			t.Errorf("repeat move error = %v, want ErrAlreadyRevealed", err)
		}
		if _, err := s.MakeMove(-1, 0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("out of range error = %v, want ErrIndexOutOfRange", err)
		}
		if st := s.Status(); st != Won {
			t.Errorf("Status() = %v, want Won", st)
		}
	})
}

func TestMakeMoveRandomGames(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		g := mustGrid(t, 8, 8)
		if err := g.PlaceMines(10, seeded(seed)); err != nil {
			t.Fatal(err)
		}
		s := NewSession(g)
		r := seeded(seed + 1000)

		for !s.Status().Over() {
			row, col := r.IntN(8), r.IntN(8)
			if vis, _ := g.Visibility(row, col); vis == Revealed {
				continue
			}
			if _, err := s.MakeMove(row, col); err != nil {
				t.Fatalf("seed %d: MakeMove(%d, %d): %v", seed, row, col, err)
			}
		}
	}
}
