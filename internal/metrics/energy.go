package metrics

import (
	"math"

	"github.com/san-kum/hairsim/internal/hair"
)

// TotalEnergy sums kinetic, spring potential, and gravitational
// potential energy over every active point. Gravitational potential is
// taken against the gravity vector (-m g·x), so it is zero at the
// origin regardless of which way gravity points.
func TotalEnergy(state *hair.Buffer, strands []hair.Strand, par hair.Params) float64 {
	total := 0.0
	for s := range strands {
		hook := strands[s].Anchor
		for p := 0; p < strands[s].Length; p++ {
			i := hair.Index(s, p)
			pos := state.Pos[i]
			vel := state.Vel[i]

			total += 0.5 * par.Mass * vel.LengthSq()

			stretch := pos.Sub(hook).Length() - par.RestLength
			total += 0.5 * par.Stiffness * stretch * stretch

			total -= par.Mass * par.Gravity.Dot(pos)

			hook = pos
		}
	}
	return total
}

// EnergyDrift tracks the peak relative deviation of total energy from
// its first observation.
type EnergyDrift struct {
	strands []hair.Strand
	par     hair.Params

	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(strands []hair.Strand, par hair.Params) *EnergyDrift {
	return &EnergyDrift{strands: strands, par: par}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(state *hair.Buffer, t float64) {
	energy := TotalEnergy(state, e.strands, e.par)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
