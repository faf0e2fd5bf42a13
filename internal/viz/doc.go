// Package viz provides terminal-based visualization for growth trajectories.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Explorer]: parameter explorer that re-simulates on every adjustment
//   - [Canvas]: Braille-based pixel canvas for high-fidelity curve rendering
//   - [OverlayRender]: composites the current curve over the previous one so
//     a parameter change can be read directly off the screen
//
// # Key Bindings
//
//	Tab   - Cycle parameters
//	Up/K  - Increase selected parameter (+5%, shift for +1%)
//	Down/J- Decrease selected parameter (-5%, shift for -1%)
//	S     - Toggle seasonal food forcing
//	R     - Reset to the starting configuration
//	Q     - Quit
//
// The previous run is kept alongside the current one and drawn dim, so each
// keystroke shows both where the curve was and where it moved to.
package viz
