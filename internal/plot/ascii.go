package plot

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nuosc/internal/sweep"
)

const (
	defaultASCIIWidth  = 80
	defaultASCIIHeight = 10
)

// ASCII renders a series as a terminal line chart.
type ASCII struct {
	Width  int
	Height int
}

func NewASCII(width, height int) *ASCII {
	if width <= 0 {
		width = defaultASCIIWidth
	}
	if height <= 0 {
		height = defaultASCIIHeight
	}
	return &ASCII{Width: width, Height: height}
}

func (a *ASCII) Render(w io.Writer, s sweep.Series) error {
	if len(s.Y) == 0 {
		return fmt.Errorf("plot: empty series %q", s.Name)
	}
	_, err := fmt.Fprintln(w, a.Plot(s))
	return err
}

// Plot returns the chart as a string. The y axis always spans at least [0, 1].
func (a *ASCII) Plot(s sweep.Series) string {
	caption := s.Title
	if len(s.X) > 0 {
		caption = fmt.Sprintf("%s  |  %s: %g .. %g", s.Title, s.XLabel, s.X[0], s.X[len(s.X)-1])
	}
	return asciigraph.Plot(s.Y,
		asciigraph.Height(a.Height),
		asciigraph.Width(a.Width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}
