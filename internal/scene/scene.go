// Package scene authors strand sets and their initial state for the
// driver: grid layouts of anchors with strands draped straight down at
// rest spacing, plus optional anchor sway applied between steps.
package scene

import (
	"math"

	"github.com/san-kum/hairsim/internal/hair"
)

// GridSpec describes a rows x cols anchor grid in the XZ plane.
type GridSpec struct {
	Rows    int
	Cols    int
	Origin  hair.Vec3
	Spacing float64
}

// Sway is boundary-condition motion of the anchors: a sinusoidal
// offset along Axis. It moves the hook end only; it is not an external
// force on the points.
type Sway struct {
	Amplitude float64
	Frequency float64
	Axis      hair.Vec3
}

// Scene is an authored strand set with its initial state.
type Scene struct {
	Strands []hair.Strand
	Initial *hair.Buffer
	Sway    Sway

	anchors []hair.Vec3 // authored rest anchors, sway offsets apply to these
}

// Grid builds a scene with anchors on the given grid, each strand
// draped straight down (-Y) at rest spacing with zero velocity and
// acceleration. With zero gravity that drape is a fixed point of the
// integration.
func Grid(spec GridSpec, points int, rest float64) *Scene {
	if spec.Rows < 1 {
		spec.Rows = 1
	}
	if spec.Cols < 1 {
		spec.Cols = 1
	}
	if points < 0 {
		points = 0
	}
	if points > hair.MaxStrandPoints {
		points = hair.MaxStrandPoints
	}

	n := spec.Rows * spec.Cols
	sc := &Scene{
		Strands: make([]hair.Strand, 0, n),
		Initial: hair.NewBuffer(n),
		anchors: make([]hair.Vec3, 0, n),
	}

	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			anchor := spec.Origin.Add(hair.Vec3{
				X: float64(col) * spec.Spacing,
				Z: float64(row) * spec.Spacing,
			})
			s := len(sc.Strands)
			sc.Strands = append(sc.Strands, hair.Strand{Anchor: anchor, Length: points})
			sc.anchors = append(sc.anchors, anchor)

			for p := 0; p < points; p++ {
				sc.Initial.Pos[hair.Index(s, p)] = anchor.Add(hair.Vec3{Y: -rest * float64(p+1)})
			}
		}
	}

	return sc
}

// AnchorsAt returns every anchor displaced by the sway offset at time
// t. With zero amplitude it returns the authored anchors unchanged.
func (sc *Scene) AnchorsAt(t float64) []hair.Vec3 {
	out := make([]hair.Vec3, len(sc.anchors))
	offset := sc.Sway.Axis.Scale(sc.Sway.Amplitude * math.Sin(2*math.Pi*sc.Sway.Frequency*t))
	for i, a := range sc.anchors {
		out[i] = a.Add(offset)
	}
	return out
}
