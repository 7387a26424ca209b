// Package viz is the terminal front end for the oscillation model.
//
// The Bubble Tea [Model] shows three sliders (energy, distance, mixing
// angle), an initial-flavor selector, the transition probability at the
// selected point, and two sweeps rendered as ASCII charts: probability vs.
// distance at the selected energy and probability vs. energy at the selected
// distance.
//
// # Key Bindings
//
//	Tab/Shift+Tab - Cycle fields
//	←/→ h/l       - Fine adjust
//	↑/↓ k/j       - Coarse adjust
//	F             - Toggle initial flavor
//	T             - Cycle color themes
//	I             - Toggle the model description
//	R             - Reset to the starting values
//	?             - Show help overlay
//	Q             - Quit
package viz
