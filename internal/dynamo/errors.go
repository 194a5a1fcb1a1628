package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidArgument indicates a caller supplied an input that is not a number
	// or has the wrong dimension.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrPolicyLoad indicates a policy table could not be read or is malformed.
	ErrPolicyLoad = errors.New("dynamo: policy load failed")

	// ErrUnsupportedMode indicates an unknown render mode.
	ErrUnsupportedMode = errors.New("dynamo: unsupported render mode")

	// ErrNoRenderer indicates rendering was requested without an attached renderer.
	ErrNoRenderer = errors.New("dynamo: no renderer attached")
)

// StepError wraps an error with episode context.
type StepError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
