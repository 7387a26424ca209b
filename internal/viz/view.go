package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const introText = `Neutrinos oscillate between flavor states because each flavor is a
quantum superposition of mass states. This page uses a simplified
two-flavor model (νe ↔ νμ) with a single mixing angle θ12 and a single
mass-squared difference Δm² = 7.53e-5 eV²:

    P(να → νβ) = sin²(2θ) · sin²(Δm² L / 4E)

L is the distance traveled (km) and E the neutrino energy (GeV).`

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Tab/S-Tab - Next/previous field     ║
║  ←/→ h/l   - Fine adjust             ║
║  ↑/↓ k/j   - Coarse adjust           ║
║  F         - Toggle initial flavor   ║
║  T         - Cycle themes            ║
║  I         - Toggle description      ║
║  R         - Reset                   ║
║  ?         - Toggle this help        ║
║  Q         - Quit                    ║
╚══════════════════════════════════════╝`

// View renders the page.
func (m Model) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.title.Render("Two-Flavor Neutrino Oscillation Simulation") + "\n")
	if m.showHelp {
		b.WriteString(helpText + "\n\n")
	}
	if m.showIntro {
		b.WriteString(st.intro.Render(introText) + "\n\n")
	}

	flavorLine := fmt.Sprintf("%s (%s → %s)", m.flavor.Label(), m.flavor.Symbol(), m.flavor.Other().Symbol())
	b.WriteString(m.row(fieldFlavor, "Initial Flavor", flavorLine) + "\n")
	for _, f := range []field{fieldEnergy, fieldDistance, fieldTheta} {
		s := m.sliders[f]
		b.WriteString(m.row(f, s.label, bar(s.ratio(), 30)+" "+s.display()) + "\n")
	}

	readout := fmt.Sprintf("Oscillation Probability: %.4f", m.Probability())
	b.WriteString(st.readout.Width(m.chartWidth()+10).Render(readout) + "\n")

	if m.err != nil {
		b.WriteString(st.err.Render("error: "+m.err.Error()) + "\n")
		return b.String()
	}

	dist, energy := m.charts()
	b.WriteString(st.distance.Render(dist) + "\n\n")
	b.WriteString(st.energy.Render(energy) + "\n")

	b.WriteString(st.help.Render(fmt.Sprintf("tab:field  ←→:fine  ↑↓:coarse  f:flavor  t:theme (%s)  i:info  r:reset  ?:help  q:quit", m.theme.Name)))
	return b.String()
}

func (m Model) row(f field, label, value string) string {
	st := m.styles
	cursor := "  "
	valueStyle := st.value
	if m.focus == f {
		cursor = st.active.Render("> ")
		valueStyle = st.active
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, st.label.Render(label), valueStyle.Render(value))
}

func bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
