package engine

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys     System
	integ   Integrator
	cfg     Config
	metrics []Metric
}

func New(sys System, integ Integrator, cfg Config) *Simulator {
	return &Simulator{
		sys:     sys,
		integ:   integ,
		cfg:     cfg,
		metrics: make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// SampleAt integrates from times[0] and records the state at every query
// time. The first recorded sample is x0 itself. Input errors reject the
// run before any computation; mid-run failures return the reached prefix
// with Truncated set and a SimError appended, not an error, so callers can
// render whatever portion succeeded.
func (s *Simulator) SampleAt(ctx context.Context, x0 State, times []float64) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if v, ok := s.sys.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	if err := validateGrid(times); err != nil {
		return nil, err
	}
	if err := s.validateInitial(x0); err != nil {
		return nil, err
	}

	result := &Result{
		Times:   make([]float64, 0, len(times)),
		States:  make([]State, 0, len(times)),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := times[0]
	s.record(result, t, x)

	dt := s.cfg.Dt
	adaptive, isAdaptive := s.integ.(AdaptiveIntegrator)
	useAdaptive := isAdaptive && s.cfg.Adaptive

	for k := 1; k < len(times); k++ {
		target := times[k]

		for {
			remaining := target - t
			if remaining <= 0 {
				break
			}

			select {
			case <-ctx.Done():
				result.Truncated = true
				result.Errors = append(result.Errors, SimError{
					Time: t, Step: result.StepsTaken, Message: "canceled", Err: ctx.Err(),
				})
				s.finish(result)
				return result, ctx.Err()
			default:
			}

			if result.StepsTaken+result.Rejected >= s.cfg.MaxSteps {
				s.fail(result, t, "step budget exhausted before reaching final query time", ErrStepLimit)
				s.finish(result)
				return result, nil
			}

			h := dt
			if h > remaining {
				h = remaining
			}
			if t+h == t {
				s.fail(result, t, "step size underflow", ErrStepTooSmall)
				s.finish(result)
				return result, nil
			}

			if useAdaptive {
				next, errNorm, dtNext := adaptive.StepAdaptive(s.sys, x, t, h, s.cfg.Tolerance)
				if math.IsNaN(errNorm) || errNorm > 1.0 {
					if h > s.cfg.MinDt {
						result.Rejected++
						dt = math.Max(dtNext, s.cfg.MinDt)
						continue
					}
					s.fail(result, t, "tolerance unmet at minimum step size", ErrStepTooSmall)
					s.finish(result)
					return result, nil
				}
				x = next
				t += h
				dt = clampDt(dtNext, s.cfg.MinDt, s.cfg.MaxDt)
			} else {
				x = s.integ.Step(s.sys, x, t, h)
				t += h
			}
			result.StepsTaken++

			if s.cfg.ValidateState {
				if !x.IsValid() {
					s.fail(result, t, "state no longer finite (NaN/Inf)", ErrInvalidState)
					s.finish(result)
					return result, nil
				}
				if p, ok := s.sys.(Physical); ok && !p.Physical(x) {
					s.fail(result, t, "state outside physical domain", ErrNonPhysical)
					s.finish(result)
					return result, nil
				}
			}
		}

		t = target
		s.record(result, t, x)
	}

	s.finish(result)
	return result, nil
}

// Run integrates over a uniform grid from 0 to duration with spacing near
// the configured Dt.
func (s *Simulator) Run(ctx context.Context, x0 State, duration float64) (*Result, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}
	return s.SampleAt(ctx, x0, UniformGrid(0, duration, s.cfg.Dt))
}

func (s *Simulator) record(result *Result, t float64, x State) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	result.Times = append(result.Times, t)
	result.States = append(result.States, x.Clone())
}

func (s *Simulator) fail(result *Result, t float64, msg string, err error) {
	result.Truncated = true
	result.Errors = append(result.Errors, SimError{
		Time:    t,
		Step:    result.StepsTaken,
		Message: msg,
		Err:     err,
	})
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateInitial(x0 State) error {
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("%w: state has %d components, system wants %d",
			ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	if !x0.IsValid() {
		return fmt.Errorf("%w: initial state", ErrInvalidState)
	}
	if p, ok := s.sys.(Physical); ok && !p.Physical(x0) {
		return fmt.Errorf("%w: initial state", ErrNonPhysical)
	}
	return nil
}

func validateGrid(times []float64) error {
	if len(times) == 0 {
		return fmt.Errorf("%w: empty", ErrTimeGrid)
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: non-finite entry at index %d", ErrTimeGrid, i)
		}
		if i > 0 && t <= times[i-1] {
			return fmt.Errorf("%w: not strictly increasing at index %d", ErrTimeGrid, i)
		}
	}
	return nil
}

func clampDt(dt, min, max float64) float64 {
	if dt < min {
		return min
	}
	if dt > max {
		return max
	}
	return dt
}
