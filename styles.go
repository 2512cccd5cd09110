package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW        = 7 // width of each step column in characters
	labelVisualW = 8 // visual width of qubit label area
	gateNameW    = 3 // width of gate name inside box
	gateBoxW     = 5 // ┤ + gateNameW + ├ = 1 + 3 + 1
)

// Lipgloss styles used across the viewer and the printed diagrams.
var (
	circuitStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	qasmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bb9af7")).
			Padding(1)

	controlsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ece6a")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	cursorBoxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9e64")).
			Bold(true)

	activeGateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))

	controlLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7dcfff"))

	ancillaLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#565f89"))

	targetLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#f7768e"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	barrierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	menuBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff9e64")).
			Padding(0, 1)

	menuSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ff9e64"))

	menuNormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5"))
)
