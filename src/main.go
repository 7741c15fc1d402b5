package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"go.uber.org/zap"

	"lifeduel/src/config"
	"lifeduel/src/logging"
	"lifeduel/src/universe"
	"lifeduel/src/view"
)

const defLogFile = "lifeduel.log"

var (
	testSample = universe.Template{
		Name:  "testSample1",
		Descr: "the test sample with 3 stable patterns",
		Coordinates: [][]int{
			{1, 1}, {1, 2},
			{2, 1}, {2, 2},
			{3, 3},
			{4, 2},
			{4, 3},
			{5, 3},
		},
	}
)

//EnvOptions are the command line values, zero values keep the config file settings
type EnvOptions struct {
	interactive bool
	randomData  bool
	configPath  string
	templates   string
	mode        string
	engine      string
	logLevel    string
	width       int
	height      int
	budget      int
	maxSteps    int
	interval    time.Duration
	seed        int
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	eo := initOptions()

	cfg := config.Default()
	if eo.configPath != "" {
		var err error
		if cfg, err = config.Load(eo.configPath); err != nil {
			return err
		}
	}
	if err := eo.apply(cfg); err != nil {
		return err
	}
	if eo.interactive && cfg.Logging.File == "" {
		//the terminal belongs to the ui
		cfg.Logging.File = defLogFile
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	u, err := universe.New(cfg.Options(), log, nil)
	if err != nil {
		return err
	}
	u.AddTemplate(testSample)
	if cfg.Simulation.Templates != "" {
		tmpls, err := config.LoadTemplates(cfg.Simulation.Templates)
		if err != nil {
			return err
		}
		for _, t := range tmpls {
			u.AddTemplate(t)
		}
		log.Info("templates loaded", zap.Int("count", len(tmpls)), zap.String("path", cfg.Simulation.Templates))
	}

	if eo.randomData {
		u.Randomize()
	} else if err := u.SettleTemplate(testSample.Name); err != nil {
		log.Warn("test sample rejected", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if eo.interactive {
		v, err := view.NewViewTerminal(log)
		if err != nil {
			return err
		}
		u.RegisterViewer(v)
		runCtx, cancel := context.WithCancel(ctx)
		go func() {
			_ = universe.NewRunner(u, universe.DefFrame).Run(runCtx, nil)
		}()
		v.Start()
		cancel()
		return nil
	}

	out := view.NewConsoleOut(os.Stdout, true)
	_, err = playBatch(ctx, u, out, cfg.Simulation.MaxSteps)
	return err
}

//playBatch runs the universe until it stops by itself, maxSteps are done or ctx is cancelled
//PvP rounds without committed budgets are randomized first, the round is finished at the end
func playBatch(ctx context.Context, u universe.Universe, out universe.Viewer, maxSteps int) (universe.Status, error) {
	u.RegisterViewer(out)
	defer u.UnregisterViewer(out)
	st := u.Status()
	budget := u.Options().CellsPerPlayer
	if st.Mode == universe.ModePvP && (st.Placed[0] != budget || st.Placed[1] != budget) {
		u.Randomize()
	}

	out.Start()
	u.ToggleRunning()
	err := universe.NewRunner(u, time.Millisecond).Run(ctx, func(st universe.Status) bool {
		return !st.Running || (maxSteps > 0 && st.Generation >= maxSteps)
	})
	u.Finish()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return u.Status(), err
}

func initOptions() (eo *EnvOptions) {
	eo = &EnvOptions{}
	flaggy.SetName("lifeduel")
	flaggy.SetDescription("\"The Life\" game simulation, classic and player-vs-player")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&eo.configPath, "c", "config", "TOML configuration file")
	flaggy.String(&eo.templates, "t", "templates", "YAML file with the seeding templates")
	flaggy.Int(&eo.width, "x", "width", "Width of a simulation field")
	flaggy.Int(&eo.height, "y", "height", "Height of a simulation field")
	flaggy.Int(&eo.budget, "b", "budget", "Cells per player in PvP mode")
	flaggy.Duration(&eo.interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "Limit the batch simulation to maxSteps")
	flaggy.String(&eo.mode, "m", "mode", "Game mode [classic|pvp]")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(universe.Engines(), "|")+"]")
	flaggy.String(&eo.logLevel, "l", "logLevel", "Log level [debug|info|warn|error]")
	flaggy.Int(&eo.seed, "", "seed", "Random seed, 0 seeds from the clock")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")

	flaggy.Parse()
	return
}

//apply overrides the config with the values given on the command line
func (eo *EnvOptions) apply(cfg *config.Config) error {
	if eo.mode != "" {
		m, err := universe.ParseMode(eo.mode)
		if err != nil {
			return err
		}
		cfg.Simulation.Mode = m
	}
	if eo.engine != "" {
		cfg.Simulation.Engine = eo.engine
	}
	if eo.templates != "" {
		cfg.Simulation.Templates = eo.templates
	}
	if eo.logLevel != "" {
		cfg.Logging.Level = eo.logLevel
	}
	if eo.width != 0 {
		cfg.Grid.Width = eo.width
	}
	if eo.height != 0 {
		cfg.Grid.Height = eo.height
	}
	if eo.budget != 0 {
		cfg.PvP.CellsPerPlayer = eo.budget
	}
	if eo.maxSteps != 0 {
		cfg.Simulation.MaxSteps = eo.maxSteps
	}
	if eo.interval != 0 {
		cfg.Simulation.Interval = eo.interval
	}
	if eo.seed != 0 {
		cfg.Simulation.Seed = int64(eo.seed)
	}
	return nil
}
