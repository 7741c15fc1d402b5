package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"lifeduel/src/logging"
	"lifeduel/src/universe"
)

type Config struct {
	Grid       GridConfig       `toml:"grid"`
	PvP        PvPConfig        `toml:"pvp"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    logging.Config   `toml:"logging"`
}

type GridConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type PvPConfig struct {
	CellsPerPlayer int `toml:"cells_per_player"`
}

type SimulationConfig struct {
	Mode            universe.Mode `toml:"mode"`   // "classic" or "pvp"
	Engine          string        `toml:"engine"` // "serial" or "banded"
	Interval        time.Duration `toml:"interval"`
	MinInterval     time.Duration `toml:"min_interval"`
	MaxInterval     time.Duration `toml:"max_interval"`
	FillProbability float64       `toml:"fill_probability"` // classic randomize rate (0.0-1.0)
	Seed            int64         `toml:"seed"`             // 0 = seeded from the clock
	MaxSteps        int           `toml:"max_steps"`        // batch mode limit, 0 = unlimited
	Templates       string        `toml:"templates"`        // YAML file with classic seed patterns
}

//Load reads the TOML file over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

//Default returns the configuration built from universe.DefaultOptions
func Default() *Config {
	o := universe.DefaultOptions
	return &Config{
		Grid: GridConfig{
			Width:  o.Width,
			Height: o.Height,
		},
		PvP: PvPConfig{
			CellsPerPlayer: o.CellsPerPlayer,
		},
		Simulation: SimulationConfig{
			Mode:            o.Mode,
			Engine:          o.Engine,
			Interval:        o.Interval,
			MinInterval:     o.MinInterval,
			MaxInterval:     o.MaxInterval,
			FillProbability: o.FillProbability,
			Seed:            o.Seed,
			MaxSteps:        o.MaxSteps,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

//Options converts the config to the universe options
func (c *Config) Options() universe.Options {
	return universe.Options{
		Width:           c.Grid.Width,
		Height:          c.Grid.Height,
		Mode:            c.Simulation.Mode,
		CellsPerPlayer:  c.PvP.CellsPerPlayer,
		Interval:        c.Simulation.Interval,
		MinInterval:     c.Simulation.MinInterval,
		MaxInterval:     c.Simulation.MaxInterval,
		FillProbability: c.Simulation.FillProbability,
		Engine:          c.Simulation.Engine,
		Seed:            c.Simulation.Seed,
		MaxSteps:        c.Simulation.MaxSteps,
	}
}
