package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Distance  lipgloss.Color
	Energy    lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Distance:  lipgloss.Color("#00ffff"),
		Energy:    lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Distance:  lipgloss.Color("#00ff00"),
		Energy:    lipgloss.Color("#88ff88"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Distance:  lipgloss.Color("#1f77b4"),
		Energy:    lipgloss.Color("#ff7f0e"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Distance:  lipgloss.Color("#00a8cc"),
		Energy:    lipgloss.Color("#ffd700"),
	}

	Themes = []Theme{
		ThemeMinimal,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after name in Themes, wrapping around.
func next(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// styles is the set of lipgloss styles derived from a theme.
type styles struct {
	title    lipgloss.Style
	intro    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	active   lipgloss.Style
	readout  lipgloss.Style
	distance lipgloss.Style
	energy   lipgloss.Style
	help     lipgloss.Style
	err      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		intro:    lipgloss.NewStyle().Foreground(t.Muted).Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		active:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		readout:  lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).Align(lipgloss.Center).Padding(1, 0),
		distance: lipgloss.NewStyle().Foreground(t.Distance),
		energy:   lipgloss.NewStyle().Foreground(t.Energy),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
	}
}
