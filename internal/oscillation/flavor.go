package oscillation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFlavor is returned by ParseFlavor for names outside the model.
var ErrUnknownFlavor = errors.New("oscillation: unknown flavor")

// Flavor indexes the rows and columns of the mixing and probability matrices.
type Flavor int

const (
	Electron Flavor = iota
	Muon
)

// Flavors lists the basis in matrix order.
var Flavors = []Flavor{Electron, Muon}

func (f Flavor) String() string {
	switch f {
	case Electron:
		return "electron"
	case Muon:
		return "muon"
	default:
		return fmt.Sprintf("flavor(%d)", int(f))
	}
}

// Label is the display name used in chart titles.
func (f Flavor) Label() string {
	switch f {
	case Electron:
		return "Electron Neutrino"
	case Muon:
		return "Muon Neutrino"
	default:
		return f.String()
	}
}

func (f Flavor) Symbol() string {
	switch f {
	case Electron:
		return "νe"
	case Muon:
		return "νμ"
	default:
		return "ν?"
	}
}

// Other returns the flavor a neutrino of flavor f oscillates into.
func (f Flavor) Other() Flavor {
	return (f + 1) % 2
}

func (f Flavor) Valid() bool {
	return f == Electron || f == Muon
}

// ParseFlavor accepts the short names, the display labels and the symbols.
func ParseFlavor(s string) (Flavor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "electron", "e", "nue", "νe", "electron neutrino":
		return Electron, nil
	case "muon", "mu", "numu", "νμ", "muon neutrino":
		return Muon, nil
	}
	return Electron, fmt.Errorf("%w: %q", ErrUnknownFlavor, s)
}
