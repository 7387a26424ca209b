package plot

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/nuosc/internal/sweep"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"

	defaultImageWidth  = 1000
	defaultImageHeight = 600
)

// Series colors by sweep axis.
var (
	distanceColor = drawing.ColorFromHex("1f77b4")
	energyColor   = drawing.ColorFromHex("ff7f0e")
	gridColor     = drawing.ColorFromHex("dddddd")
)

// Image renders a series with go-chart as PNG or SVG.
type Image struct {
	Width  int
	Height int
	Format Format
}

func NewImage(width, height int, format Format) *Image {
	if width <= 0 {
		width = defaultImageWidth
	}
	if height <= 0 {
		height = defaultImageHeight
	}
	return &Image{Width: width, Height: height, Format: format}
}

func (im *Image) Render(w io.Writer, s sweep.Series) error {
	if len(s.X) < 2 || len(s.X) != len(s.Y) {
		return fmt.Errorf("plot: series %q needs at least 2 aligned samples", s.Name)
	}

	provider := chart.PNG
	if im.Format == SVG {
		provider = chart.SVG
	}

	stroke := distanceColor
	if s.Name == "energy" {
		stroke = energyColor
	}
	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1}

	graph := chart.Chart{
		Title:  s.Title,
		Width:  im.Width,
		Height: im.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           s.XLabel,
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           s.YLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: 1},
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    sweep.YLabel,
				XValues: s.X,
				YValues: s.Y,
				Style:   chart.Style{StrokeColor: stroke, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("plot: render %s: %w", im.Format, err)
	}
	return nil
}

// ContentType is the MIME type of the rendered output.
func (im *Image) ContentType() string {
	if im.Format == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}
