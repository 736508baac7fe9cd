package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#2563EB")
	ColorAccent  = lipgloss.Color("#F59E0B")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	FormStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(22)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Width(22)

	ValueStyle = lipgloss.NewStyle().Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(0, 1)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Padding(0, 1)
)
