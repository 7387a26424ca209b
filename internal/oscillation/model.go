package oscillation

import (
	"fmt"
	"math"
	"math/cmplx"
)

const (
	// DeltaM21 is the solar mass-squared difference in eV².
	DeltaM21 = 7.53e-5

	// PhaseCoefficient converts Δm² [eV²] · L [km] / E [GeV] into radians.
	PhaseCoefficient = 1.267
)

// Matrix holds P[from][to]. Only the off-diagonal entries are populated.
type Matrix [2][2]float64

// At returns P(from → to).
func (m Matrix) At(from, to Flavor) float64 {
	return m[from][to]
}

// Transition returns the probability that a neutrino produced as from is
// detected as the other flavor.
func (m Matrix) Transition(from Flavor) float64 {
	return m[from][from.Other()]
}

// Mixing is the 2×2 flavor/mass rotation. Entries are complex so the
// probability formula keeps its conjugate products even though this
// parameterization is real.
type Mixing [2][2]complex128

// MixingMatrix builds U = [[cos θ, sin θ], [-sin θ, cos θ]] for θ in degrees.
func MixingMatrix(theta12Deg float64) Mixing {
	t12 := radians(theta12Deg)
	s, c := math.Sin(t12), math.Cos(t12)
	return Mixing{
		{complex(c, 0), complex(s, 0)},
		{complex(-s, 0), complex(c, 0)},
	}
}

// TwoFlavor is the oscillation model for a single mass-squared difference.
type TwoFlavor struct {
	DeltaM2 float64
}

// NewTwoFlavor returns a model using the solar mass-squared difference.
func NewTwoFlavor() *TwoFlavor {
	return &TwoFlavor{DeltaM2: DeltaM21}
}

var defaultModel = TwoFlavor{DeltaM2: DeltaM21}

// Compute evaluates the transition-probability matrix with the default Δm².
func Compute(E, L, theta12Deg float64) Matrix {
	return defaultModel.Compute(E, L, theta12Deg)
}

// Phase returns 1.267 · Δm² · L / E with the default Δm².
func Phase(E, L float64) float64 {
	return defaultModel.Phase(E, L)
}

// Amplitude is the sin²(2θ) envelope of the transition probability.
func Amplitude(theta12Deg float64) float64 {
	s := math.Sin(2 * radians(theta12Deg))
	return s * s
}

// Phase returns the oscillation phase PhaseCoefficient · Δm² · L / E in radians.
func (m TwoFlavor) Phase(E, L float64) float64 {
	return PhaseCoefficient * m.DeltaM2 * L / E
}

// Compute evaluates P(α→β) = -4 Re(U[α][0] U[β][1] U*[α][1] U*[β][0]) sin²(Δ)
// for α ≠ β. E == 0 propagates Inf/NaN into the off-diagonal entries.
func (m TwoFlavor) Compute(E, L, theta12Deg float64) Matrix {
	u := MixingMatrix(theta12Deg)
	s := math.Sin(m.Phase(E, L))
	osc := s * s

	var p Matrix
	for alpha := 0; alpha < 2; alpha++ {
		for beta := 0; beta < 2; beta++ {
			if alpha == beta {
				continue
			}
			q := u[alpha][0] * u[beta][1] * cmplx.Conj(u[alpha][1]) * cmplx.Conj(u[beta][0])
			p[alpha][beta] = -4 * real(q) * osc
		}
	}
	return p
}

// GetParams exposes the tunable constants by name.
func (m *TwoFlavor) GetParams() map[string]float64 {
	return map[string]float64{
		"delta_m2": m.DeltaM2,
	}
}

// SetParam updates a constant returned by GetParams.
func (m *TwoFlavor) SetParam(name string, value float64) error {
	switch name {
	case "delta_m2":
		m.DeltaM2 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
