package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorGreen
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorMuted   = colorSubtext0
	colorBorder  = colorSurface1
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headingStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning)
	linkStyle     = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	selectedStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	clockStyle    = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(colorTeal)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorMantle).
			Background(colorPink).
			Bold(true).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().Background(colorMantle)
	keyStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	dotDone    = lipgloss.NewStyle().Foreground(colorAccent).Render("●")
	dotCurrent = lipgloss.NewStyle().Foreground(colorFocus).Render("◉")
	dotTodo    = lipgloss.NewStyle().Foreground(colorOverlay0).Render("○")
)

// chipStyle renders one plan tile.
func chipStyle(selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Align(lipgloss.Center).
		Width(8)
	if selected {
		return s.BorderForeground(colorAccent).Foreground(colorText).Bold(true)
	}
	return s.BorderForeground(colorSurface0).Foreground(colorOverlay0)
}
