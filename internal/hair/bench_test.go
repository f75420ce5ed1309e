package hair

import (
	"fmt"
	"testing"
)

func benchState(strands int) ([]Strand, *Buffer, *Buffer, Params) {
	meta := make([]Strand, strands)
	prev := NewBuffer(strands)
	for s := range meta {
		meta[s] = Strand{Anchor: Vec3{X: float64(s)}, Length: MaxStrandPoints}
		for p := 0; p < MaxStrandPoints; p++ {
			prev.Pos[Index(s, p)] = Vec3{X: float64(s), Y: -0.1 * float64(p+1)}
		}
	}
	par := Params{Dt: 0.004, Mass: 1, RestLength: 0.1, Stiffness: 200, Damping: 0.5, Gravity: Vec3{Y: -9.81}}
	return meta, prev, NewBuffer(strands), par
}

func BenchmarkUpdateAll(b *testing.B) {
	for _, n := range []int{8, 64, 512} {
		b.Run(fmt.Sprintf("strands_%d", n), func(b *testing.B) {
			strands, prev, next, par := benchState(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				UpdateAll(next, prev, strands, par)
				prev, next = next, prev
			}
		})
	}
}

func BenchmarkUpdatePoint(b *testing.B) {
	strands, prev, next, par := benchState(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		UpdatePoint(next, prev, strands, par, 0, i%MaxStrandPoints)
	}
}
