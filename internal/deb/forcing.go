package deb

import "math"

// Forcing supplies the scaled functional response as a function of time.
// Implementations must return values in [0,1].
type Forcing interface {
	At(t float64) float64
}

// Constant is a fixed functional response.
type Constant float64

func (c Constant) At(float64) float64 { return float64(c) }

// Seasonal oscillates food availability around a mean level:
// f(t) = mean + amplitude*sin(2*pi*t/period + phase), clamped to [0,1].
type Seasonal struct {
	Mean, Amplitude, Period, Phase float64
}

func NewSeasonal(mean, amplitude, period float64) *Seasonal {
	return &Seasonal{Mean: mean, Amplitude: amplitude, Period: period}
}

func (s *Seasonal) At(t float64) float64 {
	f := s.Mean + s.Amplitude*math.Sin(2*math.Pi*t/s.Period+s.Phase)
	return clampResponse(f)
}

// Func adapts an arbitrary function of time to the Forcing interface. The
// output is clamped to [0,1].
type Func func(t float64) float64

func (fn Func) At(t float64) float64 { return clampResponse(fn(t)) }

func clampResponse(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
