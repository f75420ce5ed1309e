package scene

import (
	"math"
	"testing"

	"github.com/san-kum/hairsim/internal/hair"
)

func TestGridShape(t *testing.T) {
	sc := Grid(GridSpec{Rows: 3, Cols: 4, Spacing: 0.5}, 10, 0.1)

	if len(sc.Strands) != 12 {
		t.Fatalf("expected 12 strands, got %d", len(sc.Strands))
	}
	if sc.Initial.Strands() != 12 {
		t.Fatalf("buffer sized for %d strands", sc.Initial.Strands())
	}
	for i, s := range sc.Strands {
		if s.Length != 10 {
			t.Errorf("strand %d length %d", i, s.Length)
		}
	}
}

func TestGridDrapesAtRestSpacing(t *testing.T) {
	rest := 0.25
	sc := Grid(GridSpec{Rows: 1, Cols: 2, Origin: hair.Vec3{X: 1, Y: 2, Z: 3}, Spacing: 1}, 5, rest)

	for s, strand := range sc.Strands {
		hook := strand.Anchor
		for p := 0; p < strand.Length; p++ {
			pos := sc.Initial.Pos[hair.Index(s, p)]
			if d := pos.Sub(hook).Length(); math.Abs(d-rest) > 1e-12 {
				t.Errorf("strand %d point %d: segment %f, want %f", s, p, d, rest)
			}
			if sc.Initial.Vel[hair.Index(s, p)] != (hair.Vec3{}) {
				t.Errorf("strand %d point %d has initial velocity", s, p)
			}
			hook = pos
		}
	}
}

func TestGridClampsPoints(t *testing.T) {
	sc := Grid(GridSpec{Rows: 1, Cols: 1}, hair.MaxStrandPoints+10, 0.1)
	if sc.Strands[0].Length != hair.MaxStrandPoints {
		t.Errorf("expected clamp to %d, got %d", hair.MaxStrandPoints, sc.Strands[0].Length)
	}
}

func TestAnchorsAtSway(t *testing.T) {
	sc := Grid(GridSpec{Rows: 1, Cols: 1}, 1, 0.1)
	sc.Sway = Sway{Amplitude: 0.5, Frequency: 1, Axis: hair.Vec3{X: 1}}

	at0 := sc.AnchorsAt(0)
	if at0[0] != sc.Strands[0].Anchor {
		t.Errorf("sway offset at t=0 should be zero, got %v", at0[0])
	}

	quarter := sc.AnchorsAt(0.25) // sin peak
	if math.Abs(quarter[0].X-0.5) > 1e-12 {
		t.Errorf("expected peak offset 0.5, got %f", quarter[0].X)
	}
}

func TestAnchorsAtNoSway(t *testing.T) {
	sc := Grid(GridSpec{Rows: 2, Cols: 2, Spacing: 1}, 1, 0.1)
	anchors := sc.AnchorsAt(12.34)
	for i, a := range anchors {
		if a != sc.Strands[i].Anchor {
			t.Errorf("anchor %d moved without sway: %v", i, a)
		}
	}
}
