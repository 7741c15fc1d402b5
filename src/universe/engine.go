package universe

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnknownTemplate = errors.New("unknown template")

var _ Universe = (*Engine)(nil)

//Engine is the universe's engine
//implements Universe interface
//the whole public surface is serialized by one mutex, the viewers are called after it is released
type Engine struct {
	id      string
	options Options
	log     *zap.Logger
	stateCh chan Status

	mu      sync.Mutex
	area    *Area
	back    *Area //working buffer of the step, never exposed
	stepper stepper
	rng     *rand.Rand
	ticker  *Ticker

	mode          Mode
	phase         Phase
	current       Cell
	placed        [2]int
	score         [2]int
	generation    int
	result        Result
	iterationTime time.Duration

	templates map[string]Template
	views     []Viewer
}

//New creates the Engine instance
//stateCh is optional, statuses are dropped when nobody reads it
func New(o Options, log *zap.Logger, stateCh chan Status) (*Engine, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	o.Interval = o.clampInterval(o.Interval)
	area, err := NewArea(o.Width, o.Height)
	if err != nil {
		return nil, err
	}
	back, err := NewArea(o.Width, o.Height)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	e := &Engine{
		id:        id,
		options:   o,
		log:       log.With(zap.String("session", id)),
		stateCh:   stateCh,
		area:      area,
		back:      back,
		stepper:   steppers[o.Engine](o),
		rng:       rand.New(rand.NewPCG(uint64(seed), 0)),
		ticker:    NewTicker(o.Interval),
		mode:      o.Mode,
		templates: map[string]Template{},
	}
	e.reset()
	e.log.Info("universe created",
		zap.Int("width", o.Width),
		zap.Int("height", o.Height),
		zap.Stringer("mode", o.Mode),
		zap.Int("cells_per_player", o.CellsPerPlayer),
		zap.String("engine", o.Engine),
		zap.Int64("seed", seed))
	return e, nil
}

//Options returns the universe configuration
func (e *Engine) Options() Options {
	return e.options
}

//Details returns the step strategy specific details
func (e *Engine) Details() map[string]interface{} {
	return e.stepper.details()
}

//StateCh returns the channel with the universe's status updates
func (e *Engine) StateCh() chan Status {
	return e.stateCh
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (e *Engine) RegisterViewer(v Viewer) {
	e.mu.Lock()
	e.views = append(e.views, v)
	e.mu.Unlock()
	v.Register(e)
}

//UnregisterViewer removes the viewer, it gets no more refreshes
func (e *Engine) UnregisterViewer(v Viewer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, w := range e.views {
		if w == v {
			e.views = append(e.views[:i:i], e.views[i+1:]...)
			return
		}
	}
}

//Status returns the snapshot of the universe status
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status()
}

//Area returns the copy of the current area
func (e *Engine) Area() *Area {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.area.Clone()
}

//Cell returns the occupant of x, y
func (e *Engine) Cell(x int, y int) (Cell, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.area.Get(x, y)
}

//Result returns the outcome of the finished round, ResultNone before that
func (e *Engine) Result() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

//PlaceOrRemoveCell places the current player's cell at x, y or takes it back
//works only while the PvP round is seeding
func (e *Engine) PlaceOrRemoveCell(x int, y int) (err error) {
	e.mutate(func() bool {
		if !e.area.inside(x, y) {
			err = fmt.Errorf("place %d,%d: %w", x, y, ErrOutOfRange)
			return false
		}
		if e.mode != ModePvP || e.phase != PhaseSeeding {
			e.ignored("place", "not seeding")
			return false
		}
		i := slot(e.current)
		switch e.area.at(x, y) {
		case Empty:
			if e.placed[i] >= e.options.CellsPerPlayer {
				e.ignored("place", "budget exhausted")
				return false
			}
			e.area.put(x, y, e.current)
			e.placed[i]++
		case e.current:
			e.area.put(x, y, Empty)
			e.placed[i]--
		default:
			e.ignored("place", "cell owned by opponent")
			return false
		}
		return true
	})
	return
}

//ToggleCell inverses the cell state at point x, y
//works only in classic mode while the simulation is stopped
func (e *Engine) ToggleCell(x int, y int) (err error) {
	e.mutate(func() bool {
		if !e.area.inside(x, y) {
			err = fmt.Errorf("toggle %d,%d: %w", x, y, ErrOutOfRange)
			return false
		}
		if e.mode != ModeClassic || e.running() {
			e.ignored("toggle", "not a stopped classic universe")
			return false
		}
		if e.area.at(x, y) == Empty {
			e.area.put(x, y, Alive)
		} else {
			e.area.put(x, y, Empty)
		}
		return true
	})
	return
}

//ToggleRunning starts or stops the simulation
//the PvP round starts only when both players committed their budgets
func (e *Engine) ToggleRunning() {
	e.mutate(func() bool {
		if e.running() {
			e.phase = e.stoppedPhase()
			e.log.Info("simulation stopped", zap.Int("generation", e.generation))
			return true
		}
		if e.mode == ModePvP {
			if e.phase == PhaseFinished {
				e.ignored("start", "round finished")
				return false
			}
			if !e.budgetsFull() {
				e.ignored("start", "budgets not committed")
				return false
			}
		}
		e.phase = PhaseRunning
		e.ticker.Reset()
		e.log.Info("simulation started", zap.Int("generation", e.generation))
		return true
	})
}

//SwitchPlayer passes the PvP turn to the other player while the simulation is stopped
func (e *Engine) SwitchPlayer() {
	e.mutate(func() bool {
		if e.mode != ModePvP || e.running() {
			e.ignored("switch player", "not a stopped PvP universe")
			return false
		}
		e.current = e.current.Other()
		return true
	})
}

//SwitchMode toggles classic and PvP modes, all the state is cleared
func (e *Engine) SwitchMode() {
	e.mutate(func() bool {
		if e.mode == ModePvP {
			e.mode = ModeClassic
		} else {
			e.mode = ModePvP
		}
		e.reset()
		e.log.Info("mode switched", zap.Stringer("mode", e.mode))
		return true
	})
}

//ClearGrid clears the universe (kill all cells and reset all counters)
func (e *Engine) ClearGrid() {
	e.mutate(func() bool {
		e.reset()
		return true
	})
}

//Randomize clears the universe and populates it with random data
//in PvP both players get their full budgets
func (e *Engine) Randomize() {
	e.mutate(func() bool {
		e.reset()
		if e.mode == ModeClassic {
			e.area.FillRandom(e.options.FillProbability, e.rng)
			return true
		}
		for i := 0; i < e.options.CellsPerPlayer; i++ {
			e.placeRandom(Player1)
			e.placeRandom(Player2)
		}
		e.placed = [2]int{e.options.CellsPerPlayer, e.options.CellsPerPlayer}
		return true
	})
}

//Finish stops the simulation and finishes the PvP round
//the result is the strictly greater score, equal scores make a tie
func (e *Engine) Finish() {
	e.mutate(func() bool {
		if e.mode != ModePvP {
			if e.running() {
				e.phase = e.stoppedPhase()
				return true
			}
			return false
		}
		e.phase = PhaseFinished
		e.result = resultOf(e.score)
		e.log.Info("round finished",
			zap.Stringer("result", e.result),
			zap.Int("score1", e.score[0]),
			zap.Int("score2", e.score[1]),
			zap.Int("generation", e.generation))
		return true
	})
}

//AdvanceGeneration does one simulation step
func (e *Engine) AdvanceGeneration() {
	e.mutate(e.advance)
}

//Tick feeds the elapsed time, the step is done when the interval is accumulated
func (e *Engine) Tick(delta time.Duration) {
	e.mutate(func() bool {
		if !e.running() || !e.ticker.Advance(delta) {
			return false
		}
		return e.advance()
	})
}

//SetSpeed sets the interval from the speed slider value in [0,1]
func (e *Engine) SetSpeed(v float64) {
	e.SetInterval(SliderInterval(v))
}

//SetInterval sets the interval between the steps, clamped to the configured bounds
func (e *Engine) SetInterval(d time.Duration) {
	e.mutate(func() bool {
		d = e.options.clampInterval(d)
		if d == e.ticker.Interval() {
			return false
		}
		e.ticker.SetInterval(d)
		return true
	})
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (e *Engine) AddTemplate(tmpl Template) {
	e.mu.Lock()
	e.templates[tmpl.Name] = tmpl
	e.mu.Unlock()
}

//Templates returns the registered templates sorted by name
func (e *Engine) Templates() []Template {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]Template, 0, len(e.templates))
	for _, t := range e.templates {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

//SettleTemplate populates the stopped classic universe with the seeding template
func (e *Engine) SettleTemplate(name string) (err error) {
	e.mutate(func() bool {
		tmpl, ok := e.templates[name]
		if !ok {
			err = fmt.Errorf("settle %q: %w", name, ErrUnknownTemplate)
			return false
		}
		for _, v := range tmpl.Coordinates {
			if len(v) != 2 || !e.area.inside(v[0], v[1]) {
				err = fmt.Errorf("settle %q: %v: %w", name, v, ErrOutOfRange)
				return false
			}
		}
		if e.mode != ModeClassic || e.running() {
			e.ignored("settle", "not a stopped classic universe")
			return false
		}
		for _, v := range tmpl.Coordinates {
			e.area.put(v[0], v[1], Alive)
		}
		return true
	})
	return
}

//advance computes the next generation to the back buffer and swaps the buffers
func (e *Engine) advance() bool {
	if !e.canStep() {
		e.ignored("step", "round is not ready")
		return false
	}
	start := time.Now()
	births := e.stepper.step(e.area, e.back, e.mode)
	e.area.swap(e.back)
	e.generation++
	e.iterationTime = time.Since(start)

	if e.mode == ModePvP {
		e.score[0] += births[0]
		e.score[1] += births[1]
		if e.phase == PhaseSeeding {
			e.phase = PhasePaused
		}
		if e.area.CountOccupied() == 0 && e.running() {
			e.phase = PhasePaused
			e.log.Info("extinction, simulation stopped", zap.Int("generation", e.generation))
		}
	}
	return true
}

func (e *Engine) canStep() bool {
	if e.mode == ModeClassic {
		return true
	}
	switch e.phase {
	case PhaseRunning, PhasePaused:
		return true
	case PhaseSeeding:
		return e.budgetsFull()
	}
	return false
}

//reset kills all cells and resets all counters, the buffers are reused
func (e *Engine) reset() {
	e.area.Clear()
	e.generation = 0
	e.score = [2]int{}
	e.placed = [2]int{}
	e.current = Player1
	e.result = ResultNone
	e.iterationTime = 0
	e.ticker.Reset()
	e.phase = e.initialPhase()
}

//placeRandom places the player's cell to the random empty position
//Validate guarantees there is room for both budgets
func (e *Engine) placeRandom(p Cell) {
	for {
		x := e.rng.IntN(e.area.width)
		y := e.rng.IntN(e.area.height)
		if e.area.at(x, y) == Empty {
			e.area.put(x, y, p)
			return
		}
	}
}

func (e *Engine) running() bool {
	return e.phase == PhaseRunning
}

func (e *Engine) budgetsFull() bool {
	return e.placed[0] == e.options.CellsPerPlayer && e.placed[1] == e.options.CellsPerPlayer
}

func (e *Engine) initialPhase() Phase {
	if e.mode == ModePvP {
		return PhaseSeeding
	}
	return PhaseIdle
}

func (e *Engine) stoppedPhase() Phase {
	if e.mode == ModePvP {
		return PhasePaused
	}
	return PhaseIdle
}

func (e *Engine) ignored(op string, reason string) {
	e.log.Debug("operation ignored",
		zap.String("op", op),
		zap.String("reason", reason),
		zap.Stringer("mode", e.mode),
		zap.Stringer("phase", e.phase))
}

func (e *Engine) status() Status {
	return Status{
		SessionID:     e.id,
		Mode:          e.mode,
		Phase:         e.phase,
		Running:       e.running(),
		Generation:    e.generation,
		CurrentPlayer: e.current,
		Placed:        e.placed,
		Score:         e.score,
		Population:    [2]int{e.area.Count(Player1), e.area.Count(Player2)},
		LiveCells:     e.area.CountOccupied(),
		Result:        e.result,
		Interval:      e.ticker.Interval(),
		IterationTime: e.iterationTime,
	}
}

//mutate runs fn under the lock, when fn reports a change
//the viewers are refreshed and the status is written to the stateCh
func (e *Engine) mutate(fn func() bool) {
	e.mu.Lock()
	if !fn() {
		e.mu.Unlock()
		return
	}
	st := e.status()
	views := append([]Viewer(nil), e.views...)
	e.mu.Unlock()

	for _, v := range views {
		v.Refresh()
	}
	if e.stateCh != nil {
		select {
		case e.stateCh <- st:
		default:
		}
	}
}
