// Package hair provides the core state model and per-point integrator
// for strand simulation.
//
// A strand is a chain of point masses, each tied to its predecessor (or
// to the strand's fixed anchor for point 0) by a spring-damper link. All
// strand state lives in a [Buffer]: structure-of-arrays storage with a
// fixed capacity of [MaxStrandPoints] slots per strand. Two buffers are
// held at any time, a settled previous state and a next state being
// produced; the double-buffer discipline is what makes the update safe
// to run for every point concurrently:
//
//	hair.UpdatePoint(next, prev, strands, par, s, p)
//
// reads only prev (this point and its predecessor) and writes only its
// own slot of next. Execution order across points never matters.
//
// The kernel has no error path. Invalid parameters (zero mass, NaN dt)
// propagate as non-finite values into the next buffer; validation is
// the driver's job via [Params.Validate] before dispatch.
package hair
