// Package compute provides the dispatch backends that execute per-point
// work units.
//
// A [Backend] partitions a unit range into contiguous chunks and runs
// them, possibly concurrently. Dispatch returns only after every chunk
// has completed; that return is the full-step barrier the simulation
// relies on. Because each unit reads only the previous buffer and
// writes only its own slot of the next one, no synchronization beyond
// the join is needed.
//
//	backend := compute.GetBackend()
//	backend.Dispatch(units, func(lo, hi int) { ... })
package compute
