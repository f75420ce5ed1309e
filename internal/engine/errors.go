package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates a buffer not sized for the strand set.
	ErrShapeMismatch = errors.New("engine: buffer shape does not match strand count")

	// ErrNoStrands indicates an empty strand set.
	ErrNoStrands = errors.New("engine: at least one strand required")

	// ErrDiverged indicates non-finite values in the active state.
	ErrDiverged = errors.New("engine: state diverged (NaN or Inf detected)")
)

// StepError wraps an error with the step and time it occurred at.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
