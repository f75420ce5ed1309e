package metrics

import (
	"math"

	"github.com/san-kum/hairsim/internal/hair"
)

// MeanStrain returns the mean relative deviation of active segment
// lengths from the rest length. Zero when every link sits exactly at
// rest; zero rest length yields zero (no meaningful scale).
func MeanStrain(state *hair.Buffer, strands []hair.Strand, rest float64) float64 {
	if rest <= 0 {
		return 0
	}
	sum := 0.0
	count := 0
	for s := range strands {
		hook := strands[s].Anchor
		for p := 0; p < strands[s].Length; p++ {
			pos := state.Pos[hair.Index(s, p)]
			sum += math.Abs(pos.Sub(hook).Length()-rest) / rest
			count++
			hook = pos
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// MaxStrain tracks the peak mean strain seen over a run.
type MaxStrain struct {
	strands []hair.Strand
	rest    float64
	max     float64
}

func NewMaxStrain(strands []hair.Strand, rest float64) *MaxStrain {
	return &MaxStrain{strands: strands, rest: rest}
}

func (m *MaxStrain) Name() string { return "max_strain" }

func (m *MaxStrain) Observe(state *hair.Buffer, t float64) {
	if v := MeanStrain(state, m.strands, m.rest); v > m.max {
		m.max = v
	}
}

func (m *MaxStrain) Value() float64 { return m.max }
func (m *MaxStrain) Reset()         { m.max = 0 }
