package hair

// Buffer holds the kinematic state of every strand's points at one
// instant, in structure-of-arrays layout: three parallel slices of
// length strands*MaxStrandPoints, indexed by Index(strand, point).
//
// Exactly two buffers exist per simulation. Within a step one is the
// settled previous state (read-only) and the other is the next state
// being produced (each invocation writes only its own slot); the
// driver swaps roles between steps.
type Buffer struct {
	Accel []Vec3
	Vel   []Vec3
	Pos   []Vec3
}

// Index maps a (strand, point) pair to its slot in the buffer slices.
func Index(strand, point int) int {
	return strand*MaxStrandPoints + point
}

// NewBuffer allocates a zeroed buffer sized for n strands.
func NewBuffer(n int) *Buffer {
	return &Buffer{
		Accel: make([]Vec3, n*MaxStrandPoints),
		Vel:   make([]Vec3, n*MaxStrandPoints),
		Pos:   make([]Vec3, n*MaxStrandPoints),
	}
}

// Strands returns the number of strands the buffer is sized for.
func (b *Buffer) Strands() int {
	return len(b.Pos) / MaxStrandPoints
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := NewBuffer(b.Strands())
	c.CopyFrom(b)
	return c
}

// CopyFrom copies src's contents into b. Both must be sized for the
// same strand count.
func (b *Buffer) CopyFrom(src *Buffer) {
	copy(b.Accel, src.Accel)
	copy(b.Vel, src.Vel)
	copy(b.Pos, src.Pos)
}

// Finite reports whether every active slot holds finite values. Inert
// slots are skipped; whatever the driver left there does not count
// against the state.
func (b *Buffer) Finite(strands []Strand) bool {
	for s := range strands {
		for p := 0; p < strands[s].Length; p++ {
			i := Index(s, p)
			if !b.Pos[i].IsFinite() || !b.Vel[i].IsFinite() || !b.Accel[i].IsFinite() {
				return false
			}
		}
	}
	return true
}
