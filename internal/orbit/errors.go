package orbit

import "errors"

// Domain errors for propagation requests. All are detected at the call
// boundary before any step is computed.
var (
	// ErrMultiBody indicates position/velocity input encoding more than
	// one orbit. Batching is over time only, never over bodies.
	ErrMultiBody = errors.New("orbit: multiple orbits per call not supported (batch over time, one body per call)")

	// ErrInvalidTimeUnit indicates an unrecognized time unit label.
	ErrInvalidTimeUnit = errors.New("orbit: invalid time unit (want seconds or days)")

	// ErrNoTimeSteps indicates an empty time request.
	ErrNoTimeSteps = errors.New("orbit: at least one time step required")

	// ErrNonPositiveGM indicates a zero or negative gravitational parameter.
	ErrNonPositiveGM = errors.New("orbit: gravitational parameter must be positive")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("orbit: invalid state (NaN or Inf detected)")

	// ErrBadDimension indicates position/velocity slices that are not
	// 3-vectors and do not decompose into multiple orbits either.
	ErrBadDimension = errors.New("orbit: position and velocity must each have exactly 3 components")
)

// StepError wraps a per-step failure with its batch context.
type StepError struct {
	Index   int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
