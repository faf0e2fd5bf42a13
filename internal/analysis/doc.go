// Package analysis inspects recorded growth trajectories.
//
// The package includes tools for auditing and characterizing runs:
//
//   - [CrossCheck]: numeric trajectory against the closed-form curve
//   - [ConvergenceTime]: when structure first reaches a fraction of V_inf
//   - [DominantPeriod]: strongest oscillation in a sampled series
//
// # Accuracy audits
//
// Under constant food the closed-form curve is exact, so any gap between
// it and a recorded trajectory is integrator error:
//
//	rep := analysis.CrossCheck(res, vb)
//	if rep.MaxRel > 1e-3 {
//	    // tighten the tolerance or shrink dt
//	}
package analysis
