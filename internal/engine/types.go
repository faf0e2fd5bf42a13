package engine

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Physical is implemented by systems whose state space is a strict subset
// of R^n. The simulator checks it after every accepted step; a state
// outside the domain truncates the run.
type Physical interface {
	Physical(x State) bool
}

// Validator is implemented by systems that can check their own parameters.
// The simulator consults it before integrating and refuses to run on error.
type Validator interface {
	Validate() error
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator reports an error norm for each trial step, normalized
// so that values above 1 mean the step missed the requested tolerance.
// The caller owns accept/reject; dtNext is the suggested next step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (next State, errNorm, dtNext float64)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	Dt            float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	MaxSteps      int
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0,
		Tolerance:     1e-6,
		MaxDt:         50.0,
		MinDt:         1e-9,
		MaxSteps:      2_000_000,
		Adaptive:      true,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	if c.MinDt <= 0 || c.MinDt > c.MaxDt {
		return fmt.Errorf("step bounds must satisfy 0 < min <= max, got [%g, %g]", c.MinDt, c.MaxDt)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("step budget must be positive, got %d", c.MaxSteps)
	}
	return nil
}

// Result holds one run's sampled trajectory. Times and States always have
// equal length; when Truncated is true they cover only the query times
// reached before the failure recorded in Errors.
type Result struct {
	Times      []float64
	States     []State
	Metrics    map[string]float64
	StepsTaken int
	Rejected   int
	Truncated  bool
	Errors     []error
}

func (r *Result) Len() int { return len(r.Times) }

// Component extracts column i of the trajectory.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, x := range r.States {
		out[k] = x[i]
	}
	return out
}

func (r *Result) Final() (float64, State) {
	if len(r.Times) == 0 {
		return 0, nil
	}
	last := len(r.Times) - 1
	return r.Times[last], r.States[last]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
	Err     error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return e.Err }
