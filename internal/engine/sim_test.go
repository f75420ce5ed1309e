package engine

import (
	"testing"

	"github.com/san-kum/hairsim/internal/compute"
	"github.com/san-kum/hairsim/internal/hair"
)

func defaultParams() hair.Params {
	return hair.Params{Dt: 0.004, Mass: 1, RestLength: 0.2, Stiffness: 150, Damping: 0.5, Gravity: hair.Vec3{Y: -9.81}}
}

func drapedSim(t *testing.T, strandCount, points int) *Sim {
	t.Helper()
	strands := make([]hair.Strand, strandCount)
	initial := hair.NewBuffer(strandCount)
	par := defaultParams()
	for s := range strands {
		strands[s] = hair.Strand{Anchor: hair.Vec3{X: float64(s) * 0.5}, Length: points}
		for p := 0; p < points; p++ {
			initial.Pos[hair.Index(s, p)] = strands[s].Anchor.Add(hair.Vec3{Y: -par.RestLength * float64(p+1)})
		}
	}
	sim, err := New(strands, initial, par)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim
}

func TestNewValidatesShape(t *testing.T) {
	strands := []hair.Strand{{Length: 3}, {Length: 3}}
	if _, err := New(strands, hair.NewBuffer(1), defaultParams()); err != ErrShapeMismatch {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
	if _, err := New(nil, hair.NewBuffer(0), defaultParams()); err != ErrNoStrands {
		t.Errorf("expected ErrNoStrands, got %v", err)
	}
}

func TestNewValidatesStrandsAndParams(t *testing.T) {
	long := []hair.Strand{{Length: hair.MaxStrandPoints + 1}}
	if _, err := New(long, hair.NewBuffer(1), defaultParams()); err != hair.ErrStrandTooLong {
		t.Errorf("expected ErrStrandTooLong, got %v", err)
	}

	par := defaultParams()
	par.Mass = 0
	if _, err := New([]hair.Strand{{Length: 1}}, hair.NewBuffer(1), par); err != hair.ErrMassNotPositive {
		t.Errorf("expected ErrMassNotPositive, got %v", err)
	}
}

func TestNewClonesInitialState(t *testing.T) {
	initial := hair.NewBuffer(1)
	initial.Pos[0] = hair.Vec3{Y: -0.2}

	sim, err := New([]hair.Strand{{Length: 1}}, initial, defaultParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	initial.Pos[0] = hair.Vec3{Y: 99}
	if sim.State().Pos[0] != (hair.Vec3{Y: -0.2}) {
		t.Error("Sim aliased the caller's initial buffer")
	}
}

func TestStepAdvancesTime(t *testing.T) {
	sim := drapedSim(t, 2, 5)

	sim.Step()
	sim.Step()

	if sim.Steps() != 2 {
		t.Errorf("expected 2 steps, got %d", sim.Steps())
	}
	if want := 2 * sim.Params().Dt; sim.Time() != want {
		t.Errorf("expected time %f, got %f", want, sim.Time())
	}
}

func TestSerialAndParallelBackendsAgree(t *testing.T) {
	serial := drapedSim(t, 16, hair.MaxStrandPoints)
	parallel := drapedSim(t, 16, hair.MaxStrandPoints)
	serial.SetBackend(compute.NewSerialBackend())
	parallel.SetBackend(compute.NewParallelBackend(8))

	for i := 0; i < 50; i++ {
		serial.Step()
		parallel.Step()
	}

	a, b := serial.State(), parallel.State()
	for i := range a.Pos {
		if a.Pos[i] != b.Pos[i] || a.Vel[i] != b.Vel[i] || a.Accel[i] != b.Accel[i] {
			t.Fatalf("slot %d differs between serial and parallel execution", i)
		}
	}
}

func TestSetAnchorsMovesHook(t *testing.T) {
	sim := drapedSim(t, 1, 1)

	moved := hair.Vec3{X: 5}
	sim.SetAnchors([]hair.Vec3{moved})
	sim.Step()

	// Strong spring toward the displaced anchor: acceleration must gain
	// a positive X component.
	if sim.State().Accel[0].X <= 0 {
		t.Errorf("expected pull toward moved anchor, got accel %v", sim.State().Accel[0])
	}
	if sim.Strands()[0].Anchor != moved {
		t.Errorf("anchor not updated: %v", sim.Strands()[0].Anchor)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	sim := drapedSim(t, 1, 3)

	snap := sim.Snapshot()
	sim.Step()

	if snap.Pos[0] == sim.State().Pos[0] && snap.Vel[0] == sim.State().Vel[0] {
		// Gravity guarantees the state changed; the snapshot must not.
		t.Error("snapshot tracked the live state")
	}
}
