package plot

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/san-kum/nuosc/internal/sweep"
)

var ErrUnknownBackend = errors.New("plot: unknown backend")

// Renderer draws one series to w.
type Renderer interface {
	Render(w io.Writer, s sweep.Series) error
}

var backends = map[string]func(width, height int) Renderer{
	"ascii": func(width, height int) Renderer { return NewASCII(width, height) },
	"png":   func(width, height int) Renderer { return NewImage(width, height, PNG) },
	"svg":   func(width, height int) Renderer { return NewImage(width, height, SVG) },
}

// New returns the named backend. Zero width or height selects the backend's default.
func New(name string, width, height int) (Renderer, error) {
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownBackend, name, Names())
	}
	return fn(width, height), nil
}

func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension is the file suffix for a backend's output.
func Extension(name string) string {
	switch name {
	case "png":
		return ".png"
	case "svg":
		return ".svg"
	default:
		return ".txt"
	}
}
