package deb

import "math"

// VonBertalanffy is the closed-form structural growth curve under constant
// food. Substituting the equilibrium reserve density e* = f*pAm/v into the
// structure equation makes structural length L = V^(1/3) linear:
//
//	dL/dt = rB*(LInf - L)
//
// so V(t) = (LInf - (LInf-L0)*exp(-rB*t))^3. The curve is exact only when
// reserve starts at e* (see [GrowthModel.InitialState]); it validates the
// integrators and never feeds the simulate path.
type VonBertalanffy struct {
	LInf    float64 // ultimate structural length, (f*pAm/pM)
	RB      float64 // von Bertalanffy growth rate, pM/(3*(f*pAm/v + EG))
	L0      float64 // initial structural length, V0^(1/3)
	Density float64 // equilibrium reserve density, f*pAm/v
}

func NewVonBertalanffy(p Params, v0 float64) *VonBertalanffy {
	return &VonBertalanffy{
		LInf:    p.F * p.PAm / p.PM,
		RB:      p.PM / (3 * (p.F*p.PAm/p.V + p.EG)),
		L0:      math.Cbrt(v0),
		Density: p.EquilibriumDensity(),
	}
}

func (vb *VonBertalanffy) StructureAt(t float64) float64 {
	l := vb.LInf - (vb.LInf-vb.L0)*math.Exp(-vb.RB*t)
	return l * l * l
}

// ReserveAt assumes the reserve density stays at its equilibrium value,
// which holds exactly along the constant-food curve.
func (vb *VonBertalanffy) ReserveAt(t float64) float64 {
	return vb.Density * vb.StructureAt(t)
}

func (vb *VonBertalanffy) UltimateStructure() float64 {
	return vb.LInf * vb.LInf * vb.LInf
}

// TimeToFraction returns the time at which structure first reaches
// frac*V_inf, or +Inf when the fraction is never reached.
func (vb *VonBertalanffy) TimeToFraction(frac float64) float64 {
	if frac <= 0 {
		return 0
	}
	gap := 1 - vb.L0/vb.LInf
	if gap <= 0 {
		return 0
	}
	remaining := (1 - math.Cbrt(frac)) / gap
	if remaining <= 0 {
		return math.Inf(1)
	}
	if remaining >= 1 {
		return 0
	}
	return -math.Log(remaining) / vb.RB
}
