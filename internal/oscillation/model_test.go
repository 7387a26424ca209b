package oscillation_test

import (
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nuosc/internal/oscillation"
)

var _ = Describe("Compute", func() {
	energies := []float64{0.1, 0.5, 1.0, 2.5, 10.0}
	distances := []float64{0, 1, 180, 295, 500, 1300, 4000, 10000}
	angles := []float64{-60, 0, 12.5, 33, 45, 60, 90, 400}

	It("is symmetric in the off-diagonal entries", func() {
		for _, e := range energies {
			for _, l := range distances {
				for _, th := range angles {
					p := oscillation.Compute(e, l, th)
					Expect(p[0][1]).To(BeNumerically("~", p[1][0], 1e-15), "E=%v L=%v θ=%v", e, l, th)
				}
			}
		}
	})

	It("leaves the diagonal at zero", func() {
		for _, e := range energies {
			for _, th := range angles {
				p := oscillation.Compute(e, 500, th)
				Expect(p[0][0]).To(BeZero())
				Expect(p[1][1]).To(BeZero())
			}
		}
		p := oscillation.Compute(0, 500, 33)
		Expect(p[0][0]).To(BeZero())
		Expect(p[1][1]).To(BeZero())
	})

	It("keeps probabilities inside [0, 1]", func() {
		for e := 0.1; e <= 10; e += 0.37 {
			for l := 0.0; l <= 10000; l += 137 {
				for th := -90.0; th <= 90; th += 7.5 {
					p := oscillation.Compute(e, l, th).Transition(oscillation.Electron)
					Expect(p).To(BeNumerically(">=", 0))
					Expect(p).To(BeNumerically("<=", 1+1e-12))
				}
			}
		}
	})

	It("vanishes at zero distance", func() {
		for _, e := range energies {
			for _, th := range angles {
				Expect(oscillation.Compute(e, 0, th)[0][1]).To(BeZero())
			}
		}
	})

	It("reduces to sin²(Δ) at maximal mixing", func() {
		for _, e := range energies {
			for _, l := range distances {
				s := math.Sin(1.267 * 7.53e-5 * l / e)
				Expect(oscillation.Compute(e, l, 45)[0][1]).To(BeNumerically("~", s*s, 1e-9))
			}
		}
	})

	It("reproduces the reference point E=1 GeV, L=500 km, θ=33°", func() {
		amp := math.Sin(2 * 33 * math.Pi / 180)
		osc := math.Sin(1.267 * 7.53e-5 * 500 / 1.0)
		want := amp * amp * osc * osc

		got := oscillation.Compute(1.0, 500, 33)[0][1]
		Expect(got).To(BeNumerically("~", want, math.Abs(want)*1e-6))
		Expect(got).To(BeNumerically(">", 0))
	})

	It("returns bit-identical results on repeat calls", func() {
		a := oscillation.Compute(1.7, 812, 33.4)
		for i := 0; i < 100; i++ {
			b := oscillation.Compute(1.7, 812, 33.4)
			Expect(math.Float64bits(b[0][1])).To(Equal(math.Float64bits(a[0][1])))
			Expect(math.Float64bits(b[1][0])).To(Equal(math.Float64bits(a[1][0])))
		}
	})

	It("is safe to call concurrently", func() {
		want := oscillation.Compute(2, 1300, 33)
		var wg sync.WaitGroup
		results := make([]oscillation.Matrix, 32)
		for i := range results {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = oscillation.Compute(2, 1300, 33)
			}(i)
		}
		wg.Wait()
		for _, r := range results {
			Expect(r).To(Equal(want))
		}
	})

	Context("with degenerate inputs", func() {
		It("propagates NaN for zero energy", func() {
			p := oscillation.Compute(0, 500, 33)
			Expect(math.IsNaN(p[0][1])).To(BeTrue())
			Expect(math.IsNaN(p[1][0])).To(BeTrue())
		})

		It("treats negative distance like its magnitude", func() {
			pos := oscillation.Compute(1, 500, 33)[0][1]
			neg := oscillation.Compute(1, -500, 33)[0][1]
			Expect(neg).To(BeNumerically("~", pos, 1e-15))
		})

		It("accepts angles outside [0, 45]", func() {
			p := oscillation.Compute(1, 500, 135)[0][1]
			q := oscillation.Compute(1, 500, 45)[0][1]
			Expect(p).To(BeNumerically("~", q, 1e-12))
		})

		It("gives no transition without mixing", func() {
			Expect(oscillation.Compute(1, 500, 0)[0][1]).To(BeNumerically("~", 0, 1e-30))
		})
	})
})

var _ = Describe("Matrix", func() {
	It("selects the transition into the other flavor", func() {
		p := oscillation.Matrix{{0, 0.25}, {0.75, 0}}
		Expect(p.Transition(oscillation.Electron)).To(Equal(0.25))
		Expect(p.Transition(oscillation.Muon)).To(Equal(0.75))
		Expect(p.At(oscillation.Muon, oscillation.Electron)).To(Equal(0.75))
	})
})

var _ = Describe("MixingMatrix", func() {
	It("is a real orthogonal rotation", func() {
		for _, th := range []float64{0, 10, 33, 45, 77} {
			u := oscillation.MixingMatrix(th)
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					Expect(imag(u[i][j])).To(BeZero())
					dot := real(u[i][0])*real(u[j][0]) + real(u[i][1])*real(u[j][1])
					want := 0.0
					if i == j {
						want = 1
					}
					Expect(dot).To(BeNumerically("~", want, 1e-15))
				}
			}
		}
	})
})

var _ = Describe("TwoFlavor", func() {
	It("uses the solar mass splitting by default", func() {
		m := oscillation.NewTwoFlavor()
		Expect(m.DeltaM2).To(Equal(oscillation.DeltaM21))
		Expect(m.Compute(1, 500, 33)).To(Equal(oscillation.Compute(1, 500, 33)))
		Expect(m.Phase(1, 500)).To(Equal(oscillation.Phase(1, 500)))
	})

	It("exposes Δm² as a tunable parameter", func() {
		m := oscillation.NewTwoFlavor()
		Expect(m.GetParams()).To(HaveKeyWithValue("delta_m2", oscillation.DeltaM21))

		Expect(m.SetParam("delta_m2", 2.5e-3)).To(Succeed())
		Expect(m.Phase(1, 500)).To(BeNumerically("~", 1.267*2.5e-3*500, 1e-12))
		Expect(m.SetParam("mass", 1)).To(MatchError(ContainSubstring("unknown param")))
	})

	It("matches the amplitude envelope", func() {
		m := oscillation.NewTwoFlavor()
		s := math.Sin(m.Phase(0.6, 295))
		Expect(m.Compute(0.6, 295, 33)[0][1]).To(BeNumerically("~", oscillation.Amplitude(33)*s*s, 1e-12))
	})
})
