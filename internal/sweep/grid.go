package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/nuosc/internal/oscillation"
)

// Surface is P(E, L) sampled on a regular grid. P[i][j] belongs to
// Energies[i] and Distances[j].
type Surface struct {
	Theta     float64
	From      oscillation.Flavor
	Energies  []float64
	Distances []float64
	P         [][]float64
}

// Grid fills the E × L surface. Rows are split across workers; ctx is
// checked between rows.
func Grid(ctx context.Context, theta float64, from oscillation.Flavor, energies, distances Range, nE, nL int) (*Surface, error) {
	if err := checkArgs(energies, nE); err != nil {
		return nil, fmt.Errorf("energy axis: %w", err)
	}
	if err := checkArgs(distances, nL); err != nil {
		return nil, fmt.Errorf("distance axis: %w", err)
	}

	s := &Surface{
		Theta:     theta,
		From:      from,
		Energies:  Linspace(energies.Min, energies.Max, nE),
		Distances: Linspace(distances.Min, distances.Max, nL),
		P:         make([][]float64, nE),
	}

	err := parallelFor(ctx, nE, 8, func(start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]float64, nL)
			e := s.Energies[i]
			for j, l := range s.Distances {
				row[j] = oscillation.Compute(e, l, theta).Transition(from)
			}
			s.P[i] = row
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// parallelFor runs fn over [0, n) in contiguous chunks of at least minChunk.
func parallelFor(ctx context.Context, n, minChunk int, fn func(start, end int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(idx, s, e int) {
			defer wg.Done()
			errs[idx] = fn(s, e)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}
