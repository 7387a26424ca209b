package sweep

import (
	"errors"
	"fmt"

	"github.com/san-kum/nuosc/internal/oscillation"
)

var (
	ErrPoints = errors.New("sweep: need at least 2 points")
	ErrRange  = errors.New("sweep: range min must be below max")
)

const YLabel = "Oscillation Probability"

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) validate() error {
	if !(r.Min < r.Max) {
		return fmt.Errorf("%w: [%g, %g]", ErrRange, r.Min, r.Max)
	}
	return nil
}

// Series is one line of a probability chart.
type Series struct {
	Name   string             `json:"name"`
	Title  string             `json:"title"`
	XLabel string             `json:"x_label"`
	YLabel string             `json:"y_label"`
	From   oscillation.Flavor `json:"-"`
	X      []float64          `json:"x"`
	Y      []float64          `json:"y"`
}

func (s Series) Len() int {
	return len(s.X)
}

// Peak returns the first sample with the largest probability.
func (s Series) Peak() (x, y float64) {
	if len(s.Y) == 0 {
		return 0, 0
	}
	idx := 0
	for i, v := range s.Y {
		if v > s.Y[idx] {
			idx = i
		}
	}
	return s.X[idx], s.Y[idx]
}

// Title names the transition the way chart headings do.
func Title(from oscillation.Flavor) string {
	return fmt.Sprintf("Oscillation Probability of %s to %s", from.Label(), from.Other().Label())
}

// Linspace returns n evenly spaced samples over [min, max], endpoints included.
func Linspace(min, max float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = min
		return out
	}
	step := (max - min) / float64(n-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	out[n-1] = max
	return out
}

// Distance sweeps the baseline at fixed energy.
func Distance(energy, theta float64, from oscillation.Flavor, r Range, n int) (Series, error) {
	if err := checkArgs(r, n); err != nil {
		return Series{}, err
	}
	xs := Linspace(r.Min, r.Max, n)
	ys := make([]float64, n)
	for i, l := range xs {
		ys[i] = oscillation.Compute(energy, l, theta).Transition(from)
	}
	return Series{
		Name:   "distance",
		Title:  Title(from),
		XLabel: "Distance (L) [km]",
		YLabel: YLabel,
		From:   from,
		X:      xs,
		Y:      ys,
	}, nil
}

// Energy sweeps the neutrino energy at fixed baseline.
func Energy(distance, theta float64, from oscillation.Flavor, r Range, n int) (Series, error) {
	if err := checkArgs(r, n); err != nil {
		return Series{}, err
	}
	xs := Linspace(r.Min, r.Max, n)
	ys := make([]float64, n)
	for i, e := range xs {
		ys[i] = oscillation.Compute(e, distance, theta).Transition(from)
	}
	return Series{
		Name:   "energy",
		Title:  Title(from),
		XLabel: "Energy (E) [GeV]",
		YLabel: YLabel,
		From:   from,
		X:      xs,
		Y:      ys,
	}, nil
}

func checkArgs(r Range, n int) error {
	if n < 2 {
		return fmt.Errorf("%w: got %d", ErrPoints, n)
	}
	return r.validate()
}
