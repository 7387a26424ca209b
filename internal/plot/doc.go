// Package plot renders probability sweeps.
//
// Two interchangeable backends implement [Renderer]:
//
//   - [ASCII]: terminal line chart (asciigraph)
//   - [Image]: PNG or SVG line chart (go-chart)
//
// Use [New] to pick one by name ("ascii", "png", "svg").
package plot
