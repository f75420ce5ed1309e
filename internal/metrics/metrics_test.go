package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/hairsim/internal/hair"
)

func restingStrand(points int, rest float64) ([]hair.Strand, *hair.Buffer) {
	strands := []hair.Strand{{Anchor: hair.Vec3{}, Length: points}}
	buf := hair.NewBuffer(1)
	for p := 0; p < points; p++ {
		buf.Pos[hair.Index(0, p)] = hair.Vec3{Y: -rest * float64(p+1)}
	}
	return strands, buf
}

func TestMeanStrainZeroAtRest(t *testing.T) {
	strands, buf := restingStrand(5, 0.5)
	if s := MeanStrain(buf, strands, 0.5); s != 0 {
		t.Errorf("expected zero strain at rest spacing, got %f", s)
	}
}

func TestMeanStrainDetectsStretch(t *testing.T) {
	strands, buf := restingStrand(1, 0.5)
	buf.Pos[0] = hair.Vec3{Y: -1.0} // 100% stretched

	s := MeanStrain(buf, strands, 0.5)
	if math.Abs(s-1.0) > 1e-12 {
		t.Errorf("expected strain 1.0, got %f", s)
	}
}

func TestMeanStrainZeroRestLength(t *testing.T) {
	strands, buf := restingStrand(3, 0.5)
	if s := MeanStrain(buf, strands, 0); s != 0 {
		t.Errorf("expected zero for zero rest length, got %f", s)
	}
}

func TestTotalEnergyAtRestIsPotentialOnly(t *testing.T) {
	rest := 0.5
	strands, buf := restingStrand(2, rest)
	par := hair.Params{Mass: 2, RestLength: rest, Stiffness: 100, Gravity: hair.Vec3{Y: -10}}

	// No velocity, no stretch: only gravitational potential remains.
	// -m g·x = -2 * (-10 * y) with y = -0.5 and -1.0.
	want := -2.0*(-10*-0.5) - 2.0*(-10*-1.0)
	got := TotalEnergy(buf, strands, par)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected energy %f, got %f", want, got)
	}
}

func TestTotalEnergyKinetic(t *testing.T) {
	strands, buf := restingStrand(1, 0.5)
	buf.Vel[0] = hair.Vec3{X: 3}
	par := hair.Params{Mass: 2, RestLength: 0.5, Stiffness: 100}

	got := TotalEnergy(buf, strands, par)
	want := 0.5 * 2 * 9.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected kinetic energy %f, got %f", want, got)
	}
}

func TestMaxStrainTracksPeak(t *testing.T) {
	strands, buf := restingStrand(1, 0.5)
	m := NewMaxStrain(strands, 0.5)

	m.Observe(buf, 0)
	buf.Pos[0] = hair.Vec3{Y: -1.0}
	m.Observe(buf, 0.01)
	buf.Pos[0] = hair.Vec3{Y: -0.6}
	m.Observe(buf, 0.02)

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected peak strain 1.0, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear peak")
	}
}

func TestEnergyDriftZeroForStaticState(t *testing.T) {
	strands, buf := restingStrand(3, 0.5)
	par := hair.Params{Mass: 1, RestLength: 0.5, Stiffness: 50, Gravity: hair.Vec3{Y: -9.81}}
	d := NewEnergyDrift(strands, par)

	for i := 0; i < 10; i++ {
		d.Observe(buf, float64(i)*0.01)
	}
	if d.Value() != 0 {
		t.Errorf("static state should not drift, got %f", d.Value())
	}
}

func TestStability(t *testing.T) {
	strands, buf := restingStrand(2, 0.5)
	s := NewStability(strands, 10.0)

	s.Observe(buf, 0)
	buf.Pos[0] = hair.Vec3{Y: -50} // out of bounds
	s.Observe(buf, 0.01)

	if math.Abs(s.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", s.Value())
	}

	buf.Pos[0] = hair.Vec3{Y: math.NaN()}
	s.Observe(buf, 0.02)
	if s.Value() >= 0.5 {
		t.Errorf("non-finite state must count as violation, got %f", s.Value())
	}
}
