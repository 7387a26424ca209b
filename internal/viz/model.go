package viz

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/nuosc/internal/config"
	"github.com/san-kum/nuosc/internal/oscillation"
	"github.com/san-kum/nuosc/internal/plot"
	"github.com/san-kum/nuosc/internal/sweep"
)

const (
	defaultWidth = 100
	chartHeight  = 10
)

type field int

const (
	fieldFlavor field = iota
	fieldEnergy
	fieldDistance
	fieldTheta
	numFields
)

// slider is a bounded scalar input.
type slider struct {
	label  string
	unit   string
	format string
	min    float64
	max    float64
	fine   float64
	coarse float64
	value  float64
}

func (s *slider) nudge(delta float64) {
	v := s.value + delta
	// Snap to the fine grid so repeated nudges do not accumulate error.
	v = math.Round(v/s.fine) * s.fine
	s.value = math.Max(s.min, math.Min(s.max, v))
}

func (s slider) ratio() float64 {
	return (s.value - s.min) / (s.max - s.min)
}

// Model is the Bubble Tea model of the interactive page.
type Model struct {
	initial *config.Config
	sliders map[field]*slider
	flavor  oscillation.Flavor
	focus   field

	points      int
	distRange   sweep.Range
	energyRange sweep.Range

	matrix   oscillation.Matrix
	distance sweep.Series
	energy   sweep.Series
	err      error

	theme     Theme
	styles    styles
	width     int
	showHelp  bool
	showIntro bool
}

// NewModel builds the page from cfg. Out-of-range values are clamped to the
// slider domains.
func NewModel(cfg *config.Config) Model {
	c := *cfg
	c.Clamp()

	from, err := c.InitialFlavor()
	if err != nil {
		from = oscillation.Electron
	}

	m := Model{
		initial:     &c,
		flavor:      from,
		focus:       fieldEnergy,
		points:      c.Points,
		distRange:   sweep.Range{Min: c.DistanceRange.Min, Max: c.DistanceRange.Max},
		energyRange: sweep.Range{Min: c.EnergyRange.Min, Max: c.EnergyRange.Max},
		theme:       Themes[0],
		styles:      newStyles(Themes[0]),
		width:       defaultWidth,
		showIntro:   true,
	}
	m.sliders = map[field]*slider{
		fieldEnergy: {
			label: "Neutrino Energy", unit: "GeV", format: "%.2f",
			min: config.MinEnergy, max: config.MaxEnergy, fine: 0.01, coarse: 0.5, value: c.Energy,
		},
		fieldDistance: {
			label: "Distance Traveled", unit: "km", format: "%.0f",
			min: config.MinDistance, max: config.MaxDistance, fine: 1, coarse: 250, value: c.Distance,
		},
		fieldTheta: {
			label: "Mixing Angle θ12", unit: "°", format: "%.2f",
			min: config.MinTheta, max: config.MaxTheta, fine: 0.01, coarse: 1, value: c.Theta12,
		},
	}
	m.recompute()
	return m
}

// Run starts the interactive program and blocks until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % numFields
		case "shift+tab":
			m.focus = (m.focus + numFields - 1) % numFields
		case "right", "l":
			m.adjust(1, false)
		case "left", "h":
			m.adjust(-1, false)
		case "up", "k":
			m.adjust(1, true)
		case "down", "j":
			m.adjust(-1, true)
		case "f":
			m.flavor = m.flavor.Other()
			m.recompute()
		case "t":
			m.theme = next(m.theme.Name)
			m.styles = newStyles(m.theme)
		case "i":
			m.showIntro = !m.showIntro
		case "r":
			reset := NewModel(m.initial)
			reset.width, reset.theme, reset.styles = m.width, m.theme, m.styles
			return reset, nil
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m *Model) adjust(dir float64, coarse bool) {
	if m.focus == fieldFlavor {
		m.flavor = m.flavor.Other()
		m.recompute()
		return
	}
	s := m.sliders[m.focus]
	step := s.fine
	if coarse {
		step = s.coarse
	}
	s.nudge(dir * step)
	m.recompute()
}

// recompute refreshes the readout and both sweeps from the current inputs.
func (m *Model) recompute() {
	e, l, th := m.Energy(), m.Distance(), m.Theta()
	m.matrix = oscillation.Compute(e, l, th)

	var err error
	if m.distance, err = sweep.Distance(e, th, m.flavor, m.distRange, m.points); err != nil {
		m.err = err
		return
	}
	if m.energy, err = sweep.Energy(l, th, m.flavor, m.energyRange, m.points); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

func (m Model) Energy() float64   { return m.sliders[fieldEnergy].value }
func (m Model) Distance() float64 { return m.sliders[fieldDistance].value }
func (m Model) Theta() float64    { return m.sliders[fieldTheta].value }

func (m Model) Flavor() oscillation.Flavor { return m.flavor }

// Probability is the transition probability shown in the readout.
func (m Model) Probability() float64 {
	return m.matrix.Transition(m.flavor)
}

func (m Model) chartWidth() int {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	if w > 120 {
		w = 120
	}
	return w
}

func (m Model) charts() (string, string) {
	a := plot.NewASCII(m.chartWidth(), chartHeight)
	return a.Plot(m.distance), a.Plot(m.energy)
}

func (s slider) display() string {
	return fmt.Sprintf(s.format+" %s", s.value, s.unit)
}
