// Package sweep evaluates the oscillation model over ranges of energy and
// baseline.
//
//   - [Distance]: probability vs. L at fixed E
//   - [Energy]: probability vs. E at fixed L
//   - [Grid]: the full E × L surface, filled in parallel
//
// Each sample is an independent call to [oscillation.Compute], so a sweep is
// just a loop; Grid splits rows across goroutines because the surface can be
// large enough to notice.
package sweep
