package deb

import (
	"fmt"
	"math"

	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// Params holds the primary DEB parameters. All rates must be positive; the
// functional response F lies in [0,1].
type Params struct {
	PAm float64 `yaml:"p_am" json:"p_am"` // surface-area-specific assimilation rate (energy/area/time)
	EG  float64 `yaml:"e_g" json:"e_g"`   // volume-specific cost of structure (energy/volume)
	V   float64 `yaml:"v" json:"v"`       // energy conductance (length/time)
	PM  float64 `yaml:"p_m" json:"p_m"`   // volume-specific maintenance rate (energy/volume/time)
	F   float64 `yaml:"f" json:"f"`       // scaled functional response
}

// DefaultParams is a generic reference organism used by the CLI and tests.
func DefaultParams() Params {
	return Params{PAm: 100, EG: 28, V: 0.02, PM: 18, F: 1.0}
}

func (p Params) Validate() error {
	rates := []struct {
		name  string
		value float64
	}{
		{"p_am", p.PAm},
		{"e_g", p.EG},
		{"v", p.V},
		{"p_m", p.PM},
	}
	for _, r := range rates {
		if math.IsNaN(r.value) || math.IsInf(r.value, 0) || r.value <= 0 {
			return fmt.Errorf("%w: %s must be positive and finite, got %g",
				engine.ErrParameterBounds, r.name, r.value)
		}
	}
	if math.IsNaN(p.F) || p.F < 0 || p.F > 1 {
		return fmt.Errorf("%w: f must lie in [0,1], got %g", engine.ErrParameterBounds, p.F)
	}
	return nil
}

// UltimateStructure returns V_inf = (f*pAm/pM)^3, the asymptotic structural
// volume under the constant functional response F.
func (p Params) UltimateStructure() float64 {
	l := p.F * p.PAm / p.PM
	return l * l * l
}

// EquilibriumDensity returns the reserve density E/V an organism settles at
// under constant food level F.
func (p Params) EquilibriumDensity() float64 {
	return p.F * p.PAm / p.V
}
