package experiment

import (
	"fmt"
	"sort"

	"github.com/jamesmaino/DEBtutorial/internal/config"
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
	"github.com/jamesmaino/DEBtutorial/internal/integrators"
)

// Registry maps the names used in configs and on the command line onto
// constructors. Integrator factories return fresh instances so steppers
// with scratch buffers are never shared between runs.
type Registry struct {
	integrators map[string]func() engine.Integrator
	forcings    map[string]func(config.ForcingConfig, deb.Params) deb.Forcing
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() engine.Integrator),
		forcings:    make(map[string]func(config.ForcingConfig, deb.Params) deb.Forcing),
	}

	r.integrators["euler"] = func() engine.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() engine.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() engine.Integrator { return integrators.NewRK45() }

	constant := func(fc config.ForcingConfig, p deb.Params) deb.Forcing {
		return deb.Constant(p.F)
	}
	r.forcings[""] = constant
	r.forcings["constant"] = constant
	r.forcings["seasonal"] = func(fc config.ForcingConfig, p deb.Params) deb.Forcing {
		s := deb.NewSeasonal(fc.Mean, fc.Amplitude, fc.Period)
		s.Phase = fc.Phase
		return s
	}

	return r
}

func (r *Registry) GetIntegrator(name string) (engine.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetForcing(fc config.ForcingConfig, p deb.Params) (deb.Forcing, error) {
	fn, ok := r.forcings[fc.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown forcing: %s", fc.Kind)
	}
	return fn(fc, p), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
