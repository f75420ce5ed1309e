package metrics

import (
	"github.com/san-kum/hairsim/internal/hair"
)

// Stability reports the fraction of observed steps where every active
// point stayed finite and within a distance bound of its anchor. 1.0
// is a fully stable run.
type Stability struct {
	strands    []hair.Strand
	bound      float64
	violations int
	samples    int
}

func NewStability(strands []hair.Strand, bound float64) *Stability {
	return &Stability{strands: strands, bound: bound}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(state *hair.Buffer, t float64) {
	s.samples++
	if !state.Finite(s.strands) {
		s.violations++
		return
	}
	for i := range s.strands {
		anchor := s.strands[i].Anchor
		for p := 0; p < s.strands[i].Length; p++ {
			if state.Pos[hair.Index(i, p)].Sub(anchor).Length() > s.bound {
				s.violations++
				return
			}
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
