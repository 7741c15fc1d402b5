package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"lifeduel/src/config"
	"lifeduel/src/universe"
	"lifeduel/src/view"
)

func newUniverseOptions(engine string, mode universe.Mode) universe.Options {
	o := universe.DefaultOptions
	o.Interval = 0
	o.Width = 64
	o.Height = 64
	o.CellsPerPlayer = 400
	o.Engine = engine
	o.Mode = mode
	o.Seed = 1
	return o
}

func newUniverse(tb testing.TB, o universe.Options) *universe.Engine {
	tb.Helper()
	u, err := universe.New(o, zap.NewNop(), nil)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	return u
}

func TestPlayBatchPvP(t *testing.T) {
	u := newUniverse(t, newUniverseOptions("serial", universe.ModePvP))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := playBatch(ctx, u, view.NewConsoleOut(io.Discard, false), 20)
	if err != nil {
		t.Fatalf("playBatch: %v", err)
	}
	if st.Phase != universe.PhaseFinished || st.Result == universe.ResultNone {
		t.Fatalf("round not finished: %+v", st)
	}
	if st.Generation == 0 || st.Generation > 20 {
		t.Fatalf("generation = %d, want 1..20", st.Generation)
	}
	if st.Placed != [2]int{400, 400} {
		t.Fatalf("budgets were not randomized: %v", st.Placed)
	}
}

func TestPlayBatchClassicStopsAtMaxSteps(t *testing.T) {
	u := newUniverse(t, newUniverseOptions("banded", universe.ModeClassic))
	u.AddTemplate(testSample)
	if err := u.SettleTemplate(testSample.Name); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := playBatch(ctx, u, view.NewConsoleOut(io.Discard, false), 5)
	if err != nil {
		t.Fatalf("playBatch: %v", err)
	}
	if st.Running || st.Generation != 5 || st.Result != universe.ResultNone {
		t.Fatalf("status = %+v, want stopped classic universe at generation 5", st)
	}
}

func TestPlayBatchReleasesReporter(t *testing.T) {
	u := newUniverse(t, newUniverseOptions("serial", universe.ModePvP))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var first, second bytes.Buffer
	if _, err := playBatch(ctx, u, view.NewConsoleOut(&first, false), 5); err != nil {
		t.Fatalf("first playBatch: %v", err)
	}
	firstOut := first.String()

	u.Randomize()
	if _, err := playBatch(ctx, u, view.NewConsoleOut(&second, false), 5); err != nil {
		t.Fatalf("second playBatch: %v", err)
	}
	if first.String() != firstOut {
		t.Fatalf("first reporter got output of the second run:\n%s", first.String()[len(firstOut):])
	}
	if strings.Count(firstOut, "Stopped:") != 1 || strings.Count(second.String(), "Stopped:") != 1 {
		t.Fatalf("want one stop report per run:\n%s\n---\n%s", firstOut, second.String())
	}
}

func TestEnvOptionsApply(t *testing.T) {
	cfg := config.Default()
	eo := EnvOptions{mode: "classic", engine: "banded", width: 30, budget: 3, interval: time.Second, seed: 9}
	if err := eo.apply(cfg); err != nil {
		t.Fatal(err)
	}
	o := cfg.Options()
	if o.Mode != universe.ModeClassic || o.Engine != "banded" || o.Width != 30 || o.Height != universe.DefHeight {
		t.Fatalf("options = %+v", o)
	}
	if o.CellsPerPlayer != 3 || o.Interval != time.Second || o.Seed != 9 {
		t.Fatalf("options = %+v", o)
	}

	if err := (&EnvOptions{mode: "coop"}).apply(cfg); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}

func universeRun(u *universe.Engine, b *testing.B) {
	out := view.NewConsoleOut(io.Discard, false)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Randomize()
		b.StartTimer()
		if _, err := playBatch(context.Background(), u, out, 50); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, mode := range []universe.Mode{universe.ModeClassic, universe.ModePvP} {
		for _, e := range universe.Engines() {
			b.Run(mode.String()+"/"+e, func(b *testing.B) {
				u := newUniverse(b, newUniverseOptions(e, mode))
				universeRun(u, b)
			})
		}
	}
}
