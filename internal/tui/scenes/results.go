package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/components"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	result    *domain.SimulationResult
	breakdown calculation.ScoreBreakdown
	width     int
	height    int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResult updates the result to display
func (m *ResultsModel) SetResult(result *domain.SimulationResult, breakdown calculation.ScoreBreakdown) {
	m.result = result
	m.breakdown = breakdown
}

// Result returns the result on display
func (m *ResultsModel) Result() *domain.SimulationResult {
	return m.result
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// Results scene is read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("No results yet. Move a slider or pick a preset.")
	}

	sections := []string{
		renderScoreLine(m.result),
		"",
		m.renderImpacts(),
	}
	if len(m.breakdown.Components) > 0 {
		sections = append(sections, "", renderBreakdown(m.breakdown))
	}
	if len(m.result.Risks) > 0 {
		sections = append(sections, "", renderList("Risks", m.result.Risks, tuistyles.WarningStyle))
	}
	if len(m.result.Recommendations) > 0 {
		sections = append(sections, "", renderList("Recommendations", m.result.Recommendations, tuistyles.UnselectedItemStyle))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SummaryView renders the score and the top impacts on a few lines
func (m *ResultsModel) SummaryView(maxImpacts int) string {
	if m.result == nil {
		return tuistyles.InfoStyle.Render("No changes yet")
	}
	lines := []string{renderScoreLine(m.result)}
	for i, impact := range m.result.Impacts {
		if i >= maxImpacts {
			lines = append(lines, tuistyles.SubtitleStyle.Render(fmt.Sprintf("… %d more", len(m.result.Impacts)-maxImpacts)))
			break
		}
		lines = append(lines, components.NewImpactCard(impact).RenderCompact())
	}
	return strings.Join(lines, "\n")
}

func (m *ResultsModel) renderImpacts() string {
	if len(m.result.Impacts) == 0 {
		return tuistyles.InfoStyle.Render("No metrics affected")
	}

	cards := make([]*components.MetricCard, 0, len(m.result.Impacts))
	for _, impact := range m.result.Impacts {
		cards = append(cards, components.NewImpactCard(impact))
	}

	columns := 4
	if m.width > 0 {
		columns = max(1, m.width/26)
	}
	return components.MetricGrid(cards, columns)
}

func renderScoreLine(result *domain.SimulationResult) string {
	score := tuistyles.MetricValueStyle.Render(result.Score.StringFixed(2))
	confidence := tuistyles.MetricValueStyle.Render(fmt.Sprintf("%d%%", result.ConfidenceLevel))
	return tuistyles.MetricLabelStyle.Render("Score ") + score + tuistyles.MetricLabelStyle.Render(" / 100   Confidence ") + confidence
}

func renderBreakdown(bd calculation.ScoreBreakdown) string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-18s %7s %8s %8s", "Score Component", "Weight", "Score", "Adds")))
	for _, c := range bd.Components {
		b.WriteString("\n")
		if c.Skipped {
			b.WriteString(fmt.Sprintf("%-18s %7s %8s %8s", c.Metric.Label(), c.Weight.String(), "skip", "-"))
			continue
		}
		b.WriteString(fmt.Sprintf("%-18s %7s %8s %8s", c.Metric.Label(), c.Weight.String(), c.MetricScore.StringFixed(1), c.Contribution.StringFixed(2)))
	}
	return b.String()
}

func renderList(title string, items []string, style lipgloss.Style) string {
	lines := []string{tuistyles.SectionStyle.Render(title)}
	for _, item := range items {
		lines = append(lines, style.Render("• "+item))
	}
	return strings.Join(lines, "\n")
}
