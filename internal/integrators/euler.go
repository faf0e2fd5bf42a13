package integrators

import "github.com/jamesmaino/DEBtutorial/internal/engine"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys engine.System, x engine.State, t float64, dt float64) engine.State {
	dx := sys.Derive(x, t)
	result := make(engine.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
