package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// SweepChart draws one horizontal bar per sweep point, scaled to the score range
type SweepChart struct {
	Title string
	Sweep *domain.SweepResult
	Width int
}

// NewSweepChart creates a chart for a sweep result
func NewSweepChart(title string, sweep *domain.SweepResult) *SweepChart {
	return &SweepChart{Title: title, Sweep: sweep, Width: 40}
}

// WithWidth sets the maximum bar width
func (c *SweepChart) WithWidth(width int) *SweepChart {
	c.Width = width
	return c
}

// Render returns the styled chart
func (c *SweepChart) Render() string {
	if c.Sweep == nil || len(c.Sweep.Points) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, pt := range c.Sweep.Points {
		s := pt.Score.InexactFloat64()
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}

	for i, pt := range c.Sweep.Points {
		s := pt.Score.InexactFloat64()
		n := c.Width
		if hi > lo {
			// Keep a stub for the lowest point so every row has a visible bar
			n = 1 + int(math.Round(float64(c.Width-1)*(s-lo)/(hi-lo)))
		}

		style := tuistyles.SliderThumbStyle
		marker := " "
		if i == c.Sweep.BestIndex {
			style = tuistyles.MetricPositiveStyle
			marker = "*"
		}

		fmt.Fprintf(&content, "%s %10s │%s %s\n",
			marker,
			pt.NewValue.StringFixed(2),
			style.Render(strings.Repeat("█", n)),
			pt.Score.StringFixed(2))
	}

	return strings.TrimRight(content.String(), "\n")
}
