package universe

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunnerStopsOnCondition(t *testing.T) {
	e := newTestEngine(t, func(o *Options) {
		classic(5, 5)(o)
		o.Interval = 0
	})
	e.AddTemplate(Template{Name: "blinker", Coordinates: [][]int{{1, 2}, {2, 2}, {3, 2}}})
	if err := e.SettleTemplate("blinker"); err != nil {
		t.Fatal(err)
	}
	e.ToggleRunning()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r := NewRunner(e, time.Millisecond)
	err := r.Run(ctx, func(st Status) bool { return st.Generation >= 3 })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	st := e.Status()
	if st.Generation < 3 || st.LiveCells != 3 {
		t.Fatalf("status = %+v, want a blinker after 3 generations", st)
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	e := newTestEngine(t, classic(5, 5))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewRunner(e, time.Millisecond).Run(ctx, nil)
	}()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("runner did not stop")
	}
	if g := e.Status().Generation; g != 0 {
		t.Fatalf("stopped universe advanced to %d", g)
	}
}
