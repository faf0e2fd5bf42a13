package experiment

import (
	"context"

	"github.com/jamesmaino/DEBtutorial/internal/config"
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
	"github.com/jamesmaino/DEBtutorial/internal/metrics"
)

// Experiment assembles one configured growth run: model, integrator,
// simulator, sampling grid and the standard metric set.
type Experiment struct {
	cfg       *config.Config
	model     *deb.GrowthModel
	simulator *engine.Simulator
	times     []float64
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := NewRegistry()
	integ, err := reg.GetIntegrator(cfg.Solver.Integrator)
	if err != nil {
		return nil, err
	}
	forcing, err := reg.GetForcing(cfg.Forcing, cfg.Params)
	if err != nil {
		return nil, err
	}

	model := deb.NewForced(cfg.Params, forcing)
	simulator := engine.New(model, integ, cfg.EngineConfig())
	simulator.AddMetric(metrics.NewReserveDensity())
	simulator.AddMetric(metrics.NewUltimateFraction(cfg.Params))
	simulator.AddMetric(metrics.NewStarvation(cfg.Params))

	return &Experiment{
		cfg:       cfg,
		model:     model,
		simulator: simulator,
		times:     engine.Linspace(0, cfg.Grid.TEnd, cfg.Grid.Points),
	}, nil
}

// InitialState seeds the reserve at its equilibrium density unless the
// config pins e0 explicitly.
func (e *Experiment) InitialState() engine.State {
	if e.cfg.Init.E0 > 0 {
		return engine.State{e.cfg.Init.E0, e.cfg.Init.V0}
	}
	return e.model.InitialState(e.cfg.Init.V0)
}

func (e *Experiment) Run(ctx context.Context) (*engine.Result, error) {
	return e.simulator.SampleAt(ctx, e.InitialState(), e.times)
}

func (e *Experiment) Model() *deb.GrowthModel { return e.model }

func (e *Experiment) Times() []float64 { return e.times }

// Analytic returns the closed-form growth curve matching this run, or nil
// when the forcing varies in time and no closed form exists.
func (e *Experiment) Analytic() *deb.VonBertalanffy {
	switch e.cfg.Forcing.Kind {
	case "", "constant":
		return deb.NewVonBertalanffy(e.cfg.Params, e.cfg.Init.V0)
	default:
		return nil
	}
}
