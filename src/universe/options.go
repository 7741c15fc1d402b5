package universe

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

//Options represents the Universe's configurable options
//fixed when the universe is created
type Options struct {
	Width           int
	Height          int
	Mode            Mode
	CellsPerPlayer  int           //PvP seeding budget of each player
	Interval        time.Duration //interval between the steps while running
	MinInterval     time.Duration
	MaxInterval     time.Duration
	FillProbability float64 //classic randomize fill rate
	Engine          string  //step strategy name
	Seed            int64   //random seed, 0 means seeded from the clock
	MaxSteps        int     //batch mode limit, 0 is unlimited
}

//default options
const (
	DefWidth           = 20
	DefHeight          = 20
	DefCellsPerPlayer  = 10
	DefInterval        = time.Millisecond * 500
	DefMinInterval     = 0
	DefMaxInterval     = time.Second
	DefFillProbability = 0.30
	DefEngine          = "serial"
	DefMaxSteps        = 1000
)

var ErrInvalidOptions = errors.New("invalid options")

var DefaultOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Mode:            ModePvP,
	CellsPerPlayer:  DefCellsPerPlayer,
	Interval:        DefInterval,
	MinInterval:     DefMinInterval,
	MaxInterval:     DefMaxInterval,
	FillProbability: DefFillProbability,
	Engine:          DefEngine,
	MaxSteps:        DefMaxSteps,
}

//Validate reports every problem of the options at once
func (o Options) Validate() error {
	var err error
	if o.Width <= 0 {
		err = multierr.Append(err, fmt.Errorf("width must be positive, got %d", o.Width))
	}
	if o.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("height must be positive, got %d", o.Height))
	}
	if o.CellsPerPlayer <= 0 {
		err = multierr.Append(err, fmt.Errorf("cells per player must be positive, got %d", o.CellsPerPlayer))
	} else if o.Width > 0 && o.Height > 0 && 2*o.CellsPerPlayer > o.Width*o.Height {
		err = multierr.Append(err, fmt.Errorf("%d cells per player do not fit into %dx%d", o.CellsPerPlayer, o.Width, o.Height))
	}
	if o.Mode != ModeClassic && o.Mode != ModePvP {
		err = multierr.Append(err, fmt.Errorf("unknown mode %d", int(o.Mode)))
	}
	if o.FillProbability < 0 || o.FillProbability > 1 {
		err = multierr.Append(err, fmt.Errorf("fill probability must be within [0,1], got %v", o.FillProbability))
	}
	if o.MinInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("min interval must not be negative, got %v", o.MinInterval))
	}
	if o.MaxInterval < o.MinInterval {
		err = multierr.Append(err, fmt.Errorf("max interval %v is less than min interval %v", o.MaxInterval, o.MinInterval))
	}
	if o.MaxSteps < 0 {
		err = multierr.Append(err, fmt.Errorf("max steps must not be negative, got %d", o.MaxSteps))
	}
	if _, ok := steppers[o.Engine]; !ok {
		err = multierr.Append(err, fmt.Errorf("unknown engine %q", o.Engine))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

//clampInterval keeps d within the configured interval bounds
func (o Options) clampInterval(d time.Duration) time.Duration {
	if d < o.MinInterval {
		return o.MinInterval
	}
	if d > o.MaxInterval {
		return o.MaxInterval
	}
	return d
}
