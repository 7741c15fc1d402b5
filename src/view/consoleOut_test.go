package view

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"

	"lifeduel/src/universe"
)

func newUniverse(t *testing.T, mutate func(o *universe.Options)) *universe.Engine {
	t.Helper()
	o := universe.DefaultOptions
	o.Seed = 5
	if mutate != nil {
		mutate(&o)
	}
	u, err := universe.New(o, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return u
}

func TestConsoleOutReportsRound(t *testing.T) {
	u := newUniverse(t, func(o *universe.Options) {
		o.Width, o.Height, o.CellsPerPlayer = 8, 8, 2
	})
	var b bytes.Buffer
	out := NewConsoleOut(&b, false)
	u.RegisterViewer(out)
	if !strings.Contains(b.String(), "Dimension: 8 x 8") || !strings.Contains(b.String(), "engine: serial") {
		t.Fatalf("configuration not printed:\n%s", b.String())
	}

	for _, c := range [][2]int{{2, 2}, {6, 6}} {
		_ = u.PlaceOrRemoveCell(c[0], c[1])
	}
	u.SwitchPlayer()
	for _, c := range [][2]int{{1, 2}, {3, 2}} {
		_ = u.PlaceOrRemoveCell(c[0], c[1])
	}
	out.Start()
	u.ToggleRunning()
	for i := 0; i < 10; i++ {
		u.AdvanceGeneration()
	}
	u.Finish()

	got := b.String()
	for _, want := range []string{
		"Simulation started...",
		"Iterations done: 10",
		"Stopped:",
		"Last iteration: 10",
		"Player 2 Wins!",
		"Player 2: 20",
		"Player 1: 0",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output does not contain %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "Player 2 Wins!") != 1 {
		t.Fatalf("result printed more than once:\n%s", got)
	}
}

func TestConsoleOutTie(t *testing.T) {
	u := newUniverse(t, nil)
	var b bytes.Buffer
	u.RegisterViewer(NewConsoleOut(&b, false))
	u.Randomize()
	u.Finish()
	if !strings.Contains(b.String(), "It's a Tie!") {
		t.Fatalf("tie not reported:\n%s", b.String())
	}
}
