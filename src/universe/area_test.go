package universe

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func newTestArea(tb testing.TB, w int, h int) *Area {
	tb.Helper()
	a, err := NewArea(w, h)
	if err != nil {
		tb.Fatalf("NewArea(%d,%d): %v", w, h, err)
	}
	return a
}

func randomArea(tb testing.TB, w int, h int, seed uint64) *Area {
	a := newTestArea(tb, w, h)
	rng := rand.New(rand.NewPCG(seed, 0))
	for i := range a.cells {
		a.cells[i] = Cell(rng.IntN(3))
	}
	return a
}

func TestAreaGetSetOutOfRange(t *testing.T) {
	a := newTestArea(t, 4, 3)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {10, 10}} {
		if _, err := a.Get(p[0], p[1]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Get(%d,%d) err = %v, want ErrOutOfRange", p[0], p[1], err)
		}
		if err := a.Set(p[0], p[1], Player1); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Set(%d,%d) err = %v, want ErrOutOfRange", p[0], p[1], err)
		}
	}
	if a.CountOccupied() != 0 {
		t.Fatalf("rejected Set changed the area")
	}
	if err := a.Set(3, 2, Player2); err != nil {
		t.Fatalf("Set(3,2): %v", err)
	}
	if c, err := a.Get(3, 2); err != nil || c != Player2 {
		t.Fatalf("Get(3,2) = %v, %v, want player 2", c, err)
	}
	if err := a.Set(0, 0, Cell(7)); !errors.Is(err, ErrBadCell) {
		t.Fatalf("Set bad cell err = %v, want ErrBadCell", err)
	}
}

func TestNewAreaRejectsBadSize(t *testing.T) {
	for _, d := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
		if a, err := NewArea(d[0], d[1]); !errors.Is(err, ErrBadSize) || a != nil {
			t.Fatalf("NewArea(%d,%d) = %v, %v, want ErrBadSize", d[0], d[1], a, err)
		}
	}
	if a, err := NewArea(1, 1); err != nil || a.Width() != 1 || a.Height() != 1 {
		t.Fatalf("NewArea(1,1) = %v, %v", a, err)
	}
}

func TestCountAliveNeighborsWrapsAround(t *testing.T) {
	a := newTestArea(t, 5, 5)
	//the corners and the opposite edges are the neighbours of (0,0)
	for _, p := range [][2]int{{4, 4}, {0, 4}, {1, 4}, {4, 0}, {4, 1}} {
		if err := a.Set(p[0], p[1], Player1); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.Set(1, 1, Player2); err != nil {
		t.Fatal(err)
	}
	if n := a.CountAliveNeighbors(0, 0); n != 6 {
		t.Fatalf("CountAliveNeighbors(0,0) = %d, want 6", n)
	}
	if n := a.CountAliveNeighbors(2, 2); n != 1 {
		t.Fatalf("CountAliveNeighbors(2,2) = %d, want 1", n)
	}
}

func TestCountAliveNeighborsShiftInvariant(t *testing.T) {
	const w, h = 9, 7
	a := randomArea(t, w, h, 3)
	for _, s := range [][2]int{{1, 0}, {0, 1}, {4, 5}, {8, 6}} {
		shifted := newTestArea(t, w, h)
		a.Walk(func(x int, y int, c Cell) {
			_ = shifted.Set((x+s[0])%w, (y+s[1])%h, c)
		})
		a.Walk(func(x int, y int, _ Cell) {
			got := shifted.CountAliveNeighbors((x+s[0])%w, (y+s[1])%h)
			want := a.CountAliveNeighbors(x, y)
			if got != want {
				t.Fatalf("shift %v: neighbours of %d,%d = %d, want %d", s, x, y, got, want)
			}
		})
	}
}

func TestDominantNeighborOwner(t *testing.T) {
	cases := []struct {
		name string
		p1   [][2]int
		p2   [][2]int
		want Cell
	}{
		{"no neighbours", nil, nil, Player1},
		{"tie one each", [][2]int{{0, 0}}, [][2]int{{2, 2}}, Player1},
		{"tie two each", [][2]int{{0, 0}, {1, 0}}, [][2]int{{2, 2}, {2, 1}}, Player1},
		{"player 1 majority", [][2]int{{0, 0}, {1, 0}}, [][2]int{{2, 2}}, Player1},
		{"player 2 majority", [][2]int{{0, 0}}, [][2]int{{2, 2}, {0, 2}}, Player2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestArea(t, 5, 5)
			for _, p := range tc.p1 {
				_ = a.Set(p[0], p[1], Player1)
			}
			for _, p := range tc.p2 {
				_ = a.Set(p[0], p[1], Player2)
			}
			if got := a.DominantNeighborOwner(1, 1); got != tc.want {
				t.Fatalf("DominantNeighborOwner = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAreaCountClearAndFill(t *testing.T) {
	a := randomArea(t, 6, 6, 11)
	if a.CountOccupied() != a.Count(Player1)+a.Count(Player2) {
		t.Fatalf("occupied %d != %d + %d", a.CountOccupied(), a.Count(Player1), a.Count(Player2))
	}
	a.Clear()
	if a.CountOccupied() != 0 || a.Count(Empty) != 36 {
		t.Fatalf("Clear left %d occupied cells", a.CountOccupied())
	}

	rng := rand.New(rand.NewPCG(1, 0))
	a.FillRandom(1, rng)
	if a.Count(Alive) != 36 {
		t.Fatalf("FillRandom(1) filled %d cells, want 36", a.Count(Alive))
	}
	a.FillRandom(0, rng)
	if a.CountOccupied() != 0 {
		t.Fatalf("FillRandom(0) filled %d cells, want 0", a.CountOccupied())
	}
}

func TestAreaCloneIsDeep(t *testing.T) {
	a := newTestArea(t, 3, 3)
	_ = a.Set(1, 1, Player2)
	b := a.Clone()
	_ = a.Set(1, 1, Empty)
	if c, _ := b.Get(1, 1); c != Player2 {
		t.Fatalf("clone shares cells with the original")
	}
	if row := b.Row(1); len(row) != 3 || row[1] != Player2 {
		t.Fatalf("Row(1) = %v", row)
	}
}
