// Package deb implements the standard Dynamic Energy Budget growth model.
//
// An organism is described by two state variables: energy reserve E and
// structural volume V. Assimilated energy enters the reserve at a rate
// proportional to surface area; mobilized reserve is split between somatic
// maintenance and structural growth by the kappa-rule denominator
// (E/V + E_G). The model implements [engine.System]:
//
//	dE/dt = f(t)*pAm*V^(2/3) - E*(EG*v/V^(1/3) + pM) / (E/V + EG)
//	dV/dt = (E*v/V^(1/3) - pM*V) / (E/V + EG)
//
// Food availability enters through the scaled functional response f, either
// a constant in [0,1] or a [Forcing] evaluated at each derivative call.
//
// # Closed form
//
// Under constant food with reserve seeded at the equilibrium density
// f*pAm/v, structural length V^(1/3) follows a von Bertalanffy curve toward
// the ultimate volume (f*pAm/pM)^3. [VonBertalanffy] evaluates that curve
// and is the ground truth the integrators are validated against:
//
//	vb := deb.NewVonBertalanffy(params, v0)
//	want := vb.StructureAt(t)
package deb
