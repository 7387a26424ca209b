// Package server is the HTTP front end: a JSON API over the oscillation
// model, chart images rendered with the plot package, and Prometheus
// metrics.
//
//	GET /health
//	GET /v1/probability?energy=1&distance=500&theta12=33&flavor=electron
//	GET /v1/sweep/{distance|energy}?points=500
//	GET /v1/chart/{distance|energy}.{png|svg}
//	GET /metrics
//
// Query parameters default to the server's config and are validated against
// the same slider domains as the terminal front end.
package server
