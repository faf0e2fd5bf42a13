package engine

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("engine: invalid state (NaN or Inf detected)")

	// ErrNonPhysical indicates the state left the system's physical domain.
	ErrNonPhysical = errors.New("engine: state outside physical domain")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("engine: parameter out of valid bounds")

	// ErrTimeGrid indicates a query-time sequence that is not finite and
	// strictly increasing.
	ErrTimeGrid = errors.New("engine: invalid time grid")

	// ErrStepLimit indicates the integration step budget was exhausted.
	ErrStepLimit = errors.New("engine: step budget exhausted")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("engine: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("engine: dimension mismatch between state and system")
)
