package engine

import (
	"context"
	"sync"
)

// Variant is one independent scenario in an ensemble: its own model and
// initial state under a shared grid and config.
type Variant struct {
	Label string
	Sys   System
	X0    State
}

// Ensemble runs independent scenarios concurrently. Each run gets a fresh
// integrator from the factory since steppers may carry scratch buffers.
type Ensemble struct {
	newIntegrator func() Integrator
	cfg           Config
}

func NewEnsemble(newIntegrator func() Integrator, cfg Config) *Ensemble {
	return &Ensemble{newIntegrator: newIntegrator, cfg: cfg}
}

func (e *Ensemble) Run(ctx context.Context, variants []Variant, times []float64) ([]*Result, error) {
	results := make([]*Result, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i := range variants {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			v := variants[idx]
			s := New(v.Sys, e.newIntegrator(), e.cfg)
			results[idx], errs[idx] = s.SampleAt(ctx, v.X0, times)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
