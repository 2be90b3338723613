package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorWarn     lipgloss.Color = "#f9e2af"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	appStyle    = lipgloss.NewStyle().Foreground(colorText)
	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerStyle = lipgloss.NewStyle().Background(colorMantle).Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	rowStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeRowStyle = lipgloss.NewStyle().Padding(0, 1).Background(colorSurface0).Foreground(colorAccent).Bold(true)
	checkStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	grabbedStyle   = lipgloss.NewStyle().Padding(0, 1).Background(colorSurface0).Foreground(colorWarn).Bold(true)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0)
	footerStyle       = lipgloss.NewStyle().Background(colorMantle)
	keyStyle          = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	helpDescStyle     = lipgloss.NewStyle().Foreground(colorMuted).Background(colorMantle)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)
)
