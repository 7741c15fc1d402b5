package universe

import "time"

//Ticker accumulates the elapsed time and reports when the step is due
//it has no clock, the caller feeds the deltas
type Ticker struct {
	interval    time.Duration
	accumulator time.Duration
}

//NewTicker creates the ticker firing every interval
func NewTicker(interval time.Duration) *Ticker {
	if interval < 0 {
		interval = 0
	}
	return &Ticker{interval: interval}
}

//Interval returns the current step interval
func (t *Ticker) Interval() time.Duration { return t.interval }

//SetInterval changes the interval, the accumulated time is kept
func (t *Ticker) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.interval = d
}

//Advance adds delta and reports whether the step is due
//the accumulator restarts from zero after every step
func (t *Ticker) Advance(delta time.Duration) bool {
	if delta > 0 {
		t.accumulator += delta
	}
	if t.accumulator >= t.interval {
		t.accumulator = 0
		return true
	}
	return false
}

//Reset drops the accumulated time
func (t *Ticker) Reset() { t.accumulator = 0 }

//SliderInterval maps the speed slider value in [0,1] to the interval, 1 is the fastest
func SliderInterval(v float64) time.Duration {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return time.Duration((1 - v) * float64(time.Second))
}
