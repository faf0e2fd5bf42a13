package integrators

import (
	"math"
	"testing"

	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// relaxation drives two pools toward a shared asymptote at different
// rates. Its exact solution makes it a convenient accuracy oracle.
type relaxation struct {
	rate float64
	goal float64
}

func (r *relaxation) StateDim() int { return 2 }

func (r *relaxation) Derive(x engine.State, t float64) engine.State {
	return engine.State{
		r.rate * (r.goal - x[0]),
		2 * r.rate * (r.goal - x[1]),
	}
}

func (r *relaxation) exact(x0 engine.State, t float64) engine.State {
	return engine.State{
		r.goal - (r.goal-x0[0])*math.Exp(-r.rate*t),
		r.goal - (r.goal-x0[1])*math.Exp(-2*r.rate*t),
	}
}

func maxAbsErr(got, want engine.State) float64 {
	worst := 0.0
	for i := range got {
		worst = math.Max(worst, math.Abs(got[i]-want[i]))
	}
	return worst
}

func integrate(integ engine.Integrator, sys engine.System, x0 engine.State, dt float64, steps int) engine.State {
	x := x0.Clone()
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
	}
	return x
}

func TestRK4Accuracy(t *testing.T) {
	sys := &relaxation{rate: 1.0, goal: 1.0}
	integ := NewRK4()

	x0 := engine.State{0.0, 0.0}
	dt := 0.01
	steps := 100

	x := integrate(integ, sys, x0, dt, steps)
	want := sys.exact(x0, float64(steps)*dt)

	if err := maxAbsErr(x, want); err > 1e-8 {
		t.Errorf("RK4 error too large: got %.3e, want < 1e-8", err)
	}
}

func TestRK4ConvergenceOrder(t *testing.T) {
	sys := &relaxation{rate: 1.0, goal: 1.0}
	integ := NewRK4()
	x0 := engine.State{0.0, 0.0}

	coarse := maxAbsErr(integrate(integ, sys, x0, 0.1, 10), sys.exact(x0, 1.0))
	fine := maxAbsErr(integrate(integ, sys, x0, 0.05, 20), sys.exact(x0, 1.0))

	ratio := coarse / fine
	if ratio < 12 || ratio > 22 {
		t.Errorf("halving dt should cut RK4 error ~16x, got ratio %.2f", ratio)
	}
}

func TestEulerConvergenceOrder(t *testing.T) {
	sys := &relaxation{rate: 1.0, goal: 1.0}
	integ := NewEuler()
	x0 := engine.State{0.0, 0.0}

	coarse := maxAbsErr(integrate(integ, sys, x0, 0.1, 10), sys.exact(x0, 1.0))
	fine := maxAbsErr(integrate(integ, sys, x0, 0.05, 20), sys.exact(x0, 1.0))

	ratio := coarse / fine
	if ratio < 1.7 || ratio > 2.4 {
		t.Errorf("halving dt should cut Euler error ~2x, got ratio %.2f", ratio)
	}
}
