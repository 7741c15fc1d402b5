package universe

import (
	"context"
	"time"
)

//DefFrame is the default wall-clock resolution of the runner
const DefFrame = time.Millisecond * 20

//Runner feeds the wall-clock time to the universe
type Runner struct {
	u     Universe
	frame time.Duration
	now   func() time.Time
}

//NewRunner creates the runner, frame is the polling period
func NewRunner(u Universe, frame time.Duration) *Runner {
	if frame <= 0 {
		frame = DefFrame
	}
	return &Runner{u: u, frame: frame, now: time.Now}
}

//Run ticks the universe every frame until ctx is done
//or stop reports true for the status after the tick, stop can be nil
func (r *Runner) Run(ctx context.Context, stop func(st Status) bool) error {
	t := time.NewTicker(r.frame)
	defer t.Stop()
	last := r.now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		now := r.now()
		r.u.Tick(now.Sub(last))
		last = now
		if stop != nil && stop(r.u.Status()) {
			return nil
		}
	}
}
