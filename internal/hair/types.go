package hair

import "math"

// MaxStrandPoints is the fixed per-strand point capacity. Slots at
// index >= Strand.Length are inert: the kernel never reads or writes
// them.
const MaxStrandPoints = 50

// Strand is the per-strand metadata record: a fixed anchor acting as
// the immovable hook for point 0, and the number of active points.
// Read-only for the duration of a step.
type Strand struct {
	Anchor Vec3
	Length int
}

// Validate checks the strand length against the point capacity.
func (s Strand) Validate() error {
	if s.Length < 0 {
		return ErrStrandLengthNegative
	}
	if s.Length > MaxStrandPoints {
		return ErrStrandTooLong
	}
	return nil
}

// Params holds the global physical parameters shared by every point
// update within a step. Read-only during a step.
type Params struct {
	Dt         float64
	Mass       float64
	RestLength float64
	Stiffness  float64
	Damping    float64
	Gravity    Vec3
}

// Validate enforces the driver-side parameter contract. The kernel
// does not check parameters and silently propagates NaN/Inf results
// when given invalid ones.
func (p Params) Validate() error {
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return ErrMassNotPositive
	}
	if math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0) || p.Dt < 0 {
		return ErrTimestepInvalid
	}
	if math.IsNaN(p.RestLength) || math.IsInf(p.RestLength, 0) || p.RestLength < 0 {
		return ErrRestLengthInvalid
	}
	if math.IsNaN(p.Stiffness) || math.IsInf(p.Stiffness, 0) || p.Stiffness < 0 {
		return ErrStiffnessInvalid
	}
	if math.IsNaN(p.Damping) || math.IsInf(p.Damping, 0) || p.Damping < 0 {
		return ErrDampingInvalid
	}
	if !p.Gravity.IsFinite() {
		return ErrGravityInvalid
	}
	return nil
}
