package deb

import (
	"fmt"
	"math"

	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// State component indices.
const (
	StateReserve = iota
	StateStructure
)

// GrowthModel owns one organism's parameter set and food forcing and
// evaluates the reserve/structure derivatives. It implements
// [engine.System], [engine.Physical], [engine.Validator] and
// [engine.Configurable].
type GrowthModel struct {
	Params  Params
	forcing Forcing
}

// New builds a model fed at the constant level Params.F.
func New(p Params) *GrowthModel {
	return &GrowthModel{Params: p, forcing: Constant(p.F)}
}

// NewForced builds a model with a time-varying functional response. A nil
// forcing falls back to Constant(p.F).
func NewForced(p Params, f Forcing) *GrowthModel {
	if f == nil {
		return New(p)
	}
	return &GrowthModel{Params: p, forcing: f}
}

func (m *GrowthModel) StateDim() int { return 2 }

// Validate reports whether the parameter set lies in the valid domain.
func (m *GrowthModel) Validate() error { return m.Params.Validate() }

// Derive evaluates the kappa-rule energy split. Mobilized reserve flux is
// divided between maintenance and growth by the specific-costs denominator
// (E/V + EG); structure shrinks when mobilization cannot cover maintenance.
func (m *GrowthModel) Derive(x engine.State, t float64) engine.State {
	reserve := x[StateReserve]
	structure := x[StateStructure]

	l := math.Cbrt(structure)
	surface := l * l
	denom := reserve/structure + m.Params.EG

	dReserve := m.forcing.At(t)*m.Params.PAm*surface -
		reserve*(m.Params.EG*m.Params.V/l+m.Params.PM)/denom
	dStructure := (reserve*m.Params.V/l - m.Params.PM*structure) / denom

	return engine.State{dReserve, dStructure}
}

// Physical bounds the state space: reserve cannot go negative and the
// derivative is undefined at structure <= 0.
func (m *GrowthModel) Physical(x engine.State) bool {
	return x[StateReserve] >= 0 && x[StateStructure] > 0
}

// InitialState seeds the reserve at the density held under the food level
// at t=0: reserve(0) = f(0)*pAm/v * V0.
func (m *GrowthModel) InitialState(v0 float64) engine.State {
	return engine.State{m.forcing.At(0) * m.Params.PAm / m.Params.V * v0, v0}
}

// Forcing returns the active functional response.
func (m *GrowthModel) Forcing() Forcing { return m.forcing }

// SetForcing swaps the functional response; nil restores Constant(F).
func (m *GrowthModel) SetForcing(f Forcing) {
	if f == nil {
		f = Constant(m.Params.F)
	}
	m.forcing = f
}

func (m *GrowthModel) GetParams() map[string]float64 {
	return map[string]float64{
		"p_am": m.Params.PAm,
		"e_g":  m.Params.EG,
		"v":    m.Params.V,
		"p_m":  m.Params.PM,
		"f":    m.Params.F,
	}
}

// SetParam updates one named parameter, rejecting values that leave the
// valid domain. Updating f refreshes a constant forcing in place; seasonal
// forcings keep their own levels.
func (m *GrowthModel) SetParam(name string, value float64) error {
	next := m.Params
	switch name {
	case "p_am":
		next.PAm = value
	case "e_g":
		next.EG = value
	case "v":
		next.V = value
	case "p_m":
		next.PM = value
	case "f":
		next.F = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	m.Params = next
	if _, ok := m.forcing.(Constant); ok && name == "f" {
		m.forcing = Constant(value)
	}
	return nil
}

// ReserveDensity returns E/V for a state.
func ReserveDensity(x engine.State) float64 {
	return x[StateReserve] / x[StateStructure]
}
