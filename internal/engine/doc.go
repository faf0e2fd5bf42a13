// Package engine provides the simulation core for energy-budget models.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Simulator]: drives a run and records samples at query times
//
// # Example
//
//	model := deb.New(params)
//	integ := integrators.NewRK45()
//	sim := engine.New(model, integ, engine.DefaultConfig())
//	result, _ := sim.SampleAt(ctx, model.InitialState(0.01), times)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel runs over
// independent scenarios, use the [Ensemble] type, which gives each run
// its own integrator.
package engine
