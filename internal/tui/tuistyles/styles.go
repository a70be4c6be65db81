// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// model, its scenes and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#3C91E6")
	ColorAccent    = lipgloss.Color("#F2A541")
	ColorSuccess   = lipgloss.Color("#43AA8B")
	ColorDanger    = lipgloss.Color("#E63946")
	ColorWarning   = lipgloss.Color("#F4A261")
	ColorInfo      = lipgloss.Color("#4CC9F0")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#6C757D")
	ColorBorder     = lipgloss.Color("#44475A")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary).
			MarginTop(1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)
)

// MetricTrendStyle colors a change green when it is an improvement
func MetricTrendStyle(improved bool) lipgloss.Style {
	if improved {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}
