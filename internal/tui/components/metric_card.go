package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// MetricCard displays a single metric with label, value, and optional trend
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend represents a metric's change direction and amount
type Trend struct {
	Up       bool // arrow direction
	Improved bool // color
	Change   string
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 24,
	}
}

// NewImpactCard builds a card from a projected impact. Lower-is-better metrics are
// colored as improvements when they fall.
func NewImpactCard(impact domain.ScenarioImpact) *MetricCard {
	up := impact.Direction == domain.DirectionPositive
	improved := up
	if impact.Metric.LowerIsBetter() {
		improved = !up
	}

	change := impact.ChangePercent.StringFixed(1) + "%"
	if impact.ChangePercent.IsPositive() {
		change = "+" + change
	}

	card := NewMetricCard(impact.Label, impact.Metric.Format(impact.ProjectedValue))
	card.Trend = &Trend{Up: up, Improved: improved, Change: change}
	card.Description = string(impact.Significance) + " impact"
	return card
}

// WithTrend adds a trend indicator to the metric card
func (m *MetricCard) WithTrend(up, improved bool, change string) *MetricCard {
	m.Trend = &Trend{Up: up, Improved: improved, Change: change}
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) trendText() string {
	if m.Trend == nil {
		return ""
	}
	arrow := tuistyles.TrendIndicator(m.Trend.Up)
	return tuistyles.MetricTrendStyle(m.Trend.Improved).Render(fmt.Sprintf("%s %s", arrow, m.Trend.Change))
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		content += "\n" + m.trendText()
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// RenderCompact returns a compact inline version without border
func (m *MetricCard) RenderCompact() string {
	out := tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + tuistyles.MetricValueStyle.Render(m.Value)
	if m.Trend != nil {
		out += " " + m.trendText()
	}
	return out
}

// MetricGrid renders multiple metric cards in a grid layout
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	var currentRow []string
	for i, card := range cards {
		currentRow = append(currentRow, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = nil
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
