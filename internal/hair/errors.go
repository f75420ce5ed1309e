package hair

import "errors"

// Parameter and shape errors surfaced by driver-side validation. The
// integrator kernel itself never returns errors.
var (
	// ErrMassNotPositive indicates a zero or negative point mass.
	ErrMassNotPositive = errors.New("hair: mass must be strictly positive")

	// ErrTimestepInvalid indicates a NaN, infinite, or negative timestep.
	ErrTimestepInvalid = errors.New("hair: timestep must be finite and non-negative")

	// ErrRestLengthInvalid indicates a NaN, infinite, or negative rest length.
	ErrRestLengthInvalid = errors.New("hair: rest length must be finite and non-negative")

	// ErrStiffnessInvalid indicates a NaN, infinite, or negative stiffness.
	ErrStiffnessInvalid = errors.New("hair: stiffness must be finite and non-negative")

	// ErrDampingInvalid indicates a NaN, infinite, or negative damping coefficient.
	ErrDampingInvalid = errors.New("hair: damping must be finite and non-negative")

	// ErrGravityInvalid indicates a non-finite gravity vector.
	ErrGravityInvalid = errors.New("hair: gravity must be finite")

	// ErrStrandTooLong indicates a strand length above MaxStrandPoints.
	ErrStrandTooLong = errors.New("hair: strand length exceeds point capacity")

	// ErrStrandLengthNegative indicates a negative strand length.
	ErrStrandLengthNegative = errors.New("hair: strand length must be non-negative")
)
