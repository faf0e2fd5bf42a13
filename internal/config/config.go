package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

const (
	DefaultV0       = 0.01
	DefaultTEnd     = 5000.0
	DefaultPoints   = 1000
	DefaultDt       = 1.0
	DefaultTol      = 1e-6
	DefaultMinDt    = 1e-9
	DefaultMaxDt    = 50.0
	DefaultMaxSteps = 2_000_000
)

// Config is a complete, YAML round-trippable description of one growth run.
type Config struct {
	Params  deb.Params    `yaml:"params"`
	Init    InitConfig    `yaml:"init"`
	Grid    GridConfig    `yaml:"grid"`
	Solver  SolverConfig  `yaml:"solver"`
	Forcing ForcingConfig `yaml:"forcing"`
}

type InitConfig struct {
	// V0 is the initial structural volume in cm^3.
	V0 float64 `yaml:"v0"`
	// E0 is the initial reserve in J. Zero or negative seeds the
	// equilibrium reserve for the food level at t = 0.
	E0 float64 `yaml:"e0"`
}

type GridConfig struct {
	TEnd   float64 `yaml:"t_end"`
	Points int     `yaml:"points"`
}

type SolverConfig struct {
	Integrator string  `yaml:"integrator"`
	Tolerance  float64 `yaml:"tolerance"`
	Dt         float64 `yaml:"dt"`
	MinDt      float64 `yaml:"min_dt"`
	MaxDt      float64 `yaml:"max_dt"`
	MaxSteps   int     `yaml:"max_steps"`
	Adaptive   bool    `yaml:"adaptive"`
}

// ForcingConfig selects the food trajectory. Kind "constant" (or empty)
// uses the scalar params.f; kind "seasonal" oscillates around Mean.
type ForcingConfig struct {
	Kind      string  `yaml:"kind"`
	Mean      float64 `yaml:"mean"`
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
	Phase     float64 `yaml:"phase"`
}

// DefaultConfig is the reference organism grown to near its ultimate size.
func DefaultConfig() *Config {
	return &Config{
		Params: deb.DefaultParams(),
		Init:   InitConfig{V0: DefaultV0},
		Grid:   GridConfig{TEnd: DefaultTEnd, Points: DefaultPoints},
		Solver: SolverConfig{
			Integrator: "rk45",
			Tolerance:  DefaultTol,
			Dt:         DefaultDt,
			MinDt:      DefaultMinDt,
			MaxDt:      DefaultMaxDt,
			MaxSteps:   DefaultMaxSteps,
			Adaptive:   true,
		},
		Forcing: ForcingConfig{Kind: "constant"},
	}
}

// Load reads path over DefaultConfig, so partial files inherit defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EngineConfig maps the solver block onto the integration loop settings.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Dt:            c.Solver.Dt,
		Tolerance:     c.Solver.Tolerance,
		MaxDt:         c.Solver.MaxDt,
		MinDt:         c.Solver.MinDt,
		MaxSteps:      c.Solver.MaxSteps,
		Adaptive:      c.Solver.Adaptive,
		ValidateState: true,
	}
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Init.V0 <= 0 {
		return fmt.Errorf("init: v0 must be positive, got %g: %w", c.Init.V0, engine.ErrParameterBounds)
	}
	if c.Grid.TEnd <= 0 {
		return fmt.Errorf("grid: t_end must be positive, got %g: %w", c.Grid.TEnd, engine.ErrTimeGrid)
	}
	if c.Grid.Points < 2 {
		return fmt.Errorf("grid: need at least 2 points, got %d: %w", c.Grid.Points, engine.ErrTimeGrid)
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return err
	}
	return c.Forcing.validate()
}

func (f *ForcingConfig) validate() error {
	switch f.Kind {
	case "", "constant":
		return nil
	case "seasonal":
		if f.Mean < 0 || f.Mean > 1 {
			return fmt.Errorf("forcing: mean response must lie in [0,1], got %g: %w", f.Mean, engine.ErrParameterBounds)
		}
		if f.Amplitude < 0 {
			return fmt.Errorf("forcing: amplitude must be non-negative, got %g: %w", f.Amplitude, engine.ErrParameterBounds)
		}
		if f.Period <= 0 {
			return fmt.Errorf("forcing: period must be positive, got %g: %w", f.Period, engine.ErrParameterBounds)
		}
		return nil
	default:
		return fmt.Errorf("forcing: unknown kind %q: %w", f.Kind, engine.ErrParameterBounds)
	}
}
