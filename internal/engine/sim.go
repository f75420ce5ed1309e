package engine

import (
	"github.com/san-kum/hairsim/internal/compute"
	"github.com/san-kum/hairsim/internal/hair"
)

// Sim owns the double-buffered step loop: it dispatches one work unit
// per (strand, point) pair, waits for the full-step barrier, and swaps
// buffer roles. The settled buffer after a swap is the previous state
// of the following step.
//
// Sim is not safe for concurrent use. Anchors and parameters may only
// change between steps; concurrent consumers take a Snapshot.
type Sim struct {
	strands []hair.Strand
	par     hair.Params
	backend compute.Backend

	front *hair.Buffer // settled state, read-only during a step
	back  *hair.Buffer // step output

	metrics []Metric

	steps int
	time  float64
}

// New validates shape agreement and parameters, clones the initial
// state into the front buffer, and allocates a matching back buffer.
func New(strands []hair.Strand, initial *hair.Buffer, par hair.Params) (*Sim, error) {
	if len(strands) == 0 {
		return nil, ErrNoStrands
	}
	if initial.Strands() != len(strands) {
		return nil, ErrShapeMismatch
	}
	for _, s := range strands {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if err := par.Validate(); err != nil {
		return nil, err
	}

	meta := make([]hair.Strand, len(strands))
	copy(meta, strands)

	return &Sim{
		strands: meta,
		par:     par,
		backend: compute.GetBackend(),
		front:   initial.Clone(),
		back:    hair.NewBuffer(len(strands)),
	}, nil
}

// SetBackend replaces the dispatch backend. Between steps only.
func (s *Sim) SetBackend(b compute.Backend) {
	if b != nil {
		s.backend = b
	}
}

// SetAnchors replaces every strand's anchor. Between steps only;
// lengths are unchanged. Extra entries are ignored.
func (s *Sim) SetAnchors(anchors []hair.Vec3) {
	for i := range s.strands {
		if i >= len(anchors) {
			break
		}
		s.strands[i].Anchor = anchors[i]
	}
}

// SetParams replaces the global parameters. Between steps only.
func (s *Sim) SetParams(par hair.Params) {
	s.par = par
}

func (s *Sim) Params() hair.Params    { return s.par }
func (s *Sim) Strands() []hair.Strand { return s.strands }
func (s *Sim) Steps() int             { return s.steps }
func (s *Sim) Time() float64          { return s.time }

// Step runs one full parallel update: every (strand, point) unit with
// point < MaxStrandPoints is dispatched (inert ones no-op inside the
// kernel), the barrier is the Dispatch return, then buffer roles swap.
func (s *Sim) Step() {
	next, prev := s.back, s.front
	strands, par := s.strands, s.par

	units := len(strands) * hair.MaxStrandPoints
	s.backend.Dispatch(units, func(lo, hi int) {
		for u := lo; u < hi; u++ {
			hair.UpdatePoint(next, prev, strands, par, u/hair.MaxStrandPoints, u%hair.MaxStrandPoints)
		}
	})

	s.front, s.back = s.back, s.front
	s.steps++
	s.time += s.par.Dt
}

// State returns the settled buffer. Callers must not mutate it, and
// must not hold it across a Step running on another goroutine; use
// Snapshot for that.
func (s *Sim) State() *hair.Buffer {
	return s.front
}

// Snapshot returns a deep copy of the settled state for concurrent
// consumers such as a render frame or a network broadcast.
func (s *Sim) Snapshot() *hair.Buffer {
	return s.front.Clone()
}
