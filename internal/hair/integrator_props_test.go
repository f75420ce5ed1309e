package hair_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hairsim/internal/hair"
)

var _ = Describe("strand integrator", func() {
	var (
		par     hair.Params
		strands []hair.Strand
		prev    *hair.Buffer
		next    *hair.Buffer
	)

	BeforeEach(func() {
		par = hair.Params{
			Dt:         0.004,
			Mass:       1,
			RestLength: 0.25,
			Stiffness:  120,
			Damping:    0.4,
			Gravity:    hair.Vec3{Y: -9.81},
		}
		strands = []hair.Strand{{Anchor: hair.Vec3{}, Length: 8}}
		prev = hair.NewBuffer(1)
		for p := 0; p < strands[0].Length; p++ {
			prev.Pos[hair.Index(0, p)] = hair.Vec3{Y: -par.RestLength * float64(p+1)}
		}
		next = hair.NewBuffer(1)
	})

	It("reads nothing and writes nothing for inert indices", func() {
		sentinel := hair.Vec3{X: 7, Y: 7, Z: 7}
		i := hair.Index(0, strands[0].Length)
		next.Pos[i] = sentinel

		hair.UpdatePoint(next, prev, strands, par, 0, strands[0].Length)

		Expect(next.Pos[i]).To(Equal(sentinel))
	})

	It("never reads the in-progress next buffer", func() {
		// Poison the whole next buffer; the output must be identical to
		// an update into a clean one.
		for i := range next.Pos {
			next.Pos[i] = hair.Vec3{X: math.NaN()}
			next.Vel[i] = hair.Vec3{X: math.NaN()}
			next.Accel[i] = hair.Vec3{X: math.NaN()}
		}
		clean := hair.NewBuffer(1)

		hair.UpdateAll(next, prev, strands, par)
		hair.UpdateAll(clean, prev, strands, par)

		for p := 0; p < strands[0].Length; p++ {
			i := hair.Index(0, p)
			Expect(next.Pos[i]).To(Equal(clean.Pos[i]))
			Expect(next.Vel[i]).To(Equal(clean.Vel[i]))
			Expect(next.Accel[i]).To(Equal(clean.Accel[i]))
		}
	})

	It("is idempotent per invocation", func() {
		hair.UpdatePoint(next, prev, strands, par, 0, 3)
		first := next.Pos[hair.Index(0, 3)]

		hair.UpdatePoint(next, prev, strands, par, 0, 3)

		Expect(next.Pos[hair.Index(0, 3)]).To(Equal(first))
	})

	It("keeps a draped strand finite under gravity", func() {
		for step := 0; step < 2000; step++ {
			hair.UpdateAll(next, prev, strands, par)
			prev, next = next, prev
		}
		Expect(prev.Finite(strands)).To(BeTrue())
	})

	It("settles a damped strand near rest spacing", func() {
		for step := 0; step < 20000; step++ {
			hair.UpdateAll(next, prev, strands, par)
			prev, next = next, prev
		}
		// Under gravity the links stretch beyond rest, but each segment
		// must end up a bounded, finite distance from its hook.
		hook := strands[0].Anchor
		for p := 0; p < strands[0].Length; p++ {
			pos := prev.Pos[hair.Index(0, p)]
			seg := pos.Sub(hook).Length()
			Expect(seg).To(BeNumerically(">", 0))
			Expect(seg).To(BeNumerically("<", par.RestLength*4))
			hook = pos
		}
	})

	Describe("parameter validation", func() {
		It("rejects non-positive mass", func() {
			par.Mass = 0
			Expect(par.Validate()).To(MatchError(hair.ErrMassNotPositive))
		})

		It("rejects NaN timestep", func() {
			par.Dt = math.NaN()
			Expect(par.Validate()).To(MatchError(hair.ErrTimestepInvalid))
		})

		It("rejects negative timestep", func() {
			par.Dt = -0.01
			Expect(par.Validate()).To(MatchError(hair.ErrTimestepInvalid))
		})

		It("rejects non-finite gravity", func() {
			par.Gravity = hair.Vec3{Y: math.Inf(-1)}
			Expect(par.Validate()).To(MatchError(hair.ErrGravityInvalid))
		})

		It("accepts the defaults used throughout the suite", func() {
			Expect(par.Validate()).To(Succeed())
		})
	})
})
