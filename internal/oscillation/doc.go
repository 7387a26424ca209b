// Package oscillation implements the two-flavor neutrino oscillation model.
//
// The model maps a neutrino energy E (GeV), a baseline L (km) and a mixing
// angle θ12 (degrees) to a 2×2 transition-probability [Matrix]:
//
//	P(να → νβ) = sin²(2θ) · sin²(1.267 · Δm² · L / E)
//
// Off-diagonal entries hold the electron↔muon transition probability and the
// diagonal is always zero. Everything in this package is a pure function of
// its inputs, so it can be called from any number of goroutines without
// coordination.
//
// # Example
//
//	p := oscillation.Compute(1.0, 500, 33)
//	fmt.Printf("%.4f\n", p.Transition(oscillation.Electron))
//
// # Degenerate Inputs
//
// Compute never fails. E == 0 yields ±Inf or NaN through the phase, negative
// L is folded away by sin², and any angle produces a valid rotation. Range
// checks belong to callers (see the config package).
package oscillation
