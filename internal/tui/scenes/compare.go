package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/whatif/internal/compare"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// Snapshot is a simulation result pinned for comparison
type Snapshot struct {
	Name   string
	Result *domain.SimulationResult
}

// CompareModel shows an A/B comparison of two pinned snapshots
type CompareModel struct {
	a, b   *Snapshot
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Pin stores a snapshot in slot "a" or "b"
func (m *CompareModel) Pin(slot string, snap Snapshot) {
	snap.Result = snap.Result.DeepCopy()
	switch slot {
	case "a":
		m.a = &snap
	case "b":
		m.b = &snap
	}
}

// Comparison returns the comparison of the two slots once both are filled
func (m *CompareModel) Comparison() (compare.ScenarioComparison, bool) {
	if m.a == nil || m.b == nil {
		return compare.ScenarioComparison{}, false
	}
	return compare.CompareScenarios(m.a.Result, m.b.Result), true
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	if m.a == nil && m.b == nil {
		return tuistyles.InfoStyle.Render("Press a or b to pin the current scenario into a slot.")
	}

	slots := lipgloss.JoinHorizontal(lipgloss.Top,
		renderSlot("A", m.a),
		"  ",
		renderSlot("B", m.b),
	)

	cmp, ok := m.Comparison()
	if !ok {
		return slots
	}

	var verdict string
	switch cmp.Winner {
	case compare.WinnerScenario1:
		verdict = fmt.Sprintf("A wins by %s points", cmp.ScoreDifference.Abs().StringFixed(2))
	case compare.WinnerScenario2:
		verdict = fmt.Sprintf("B wins by %s points", cmp.ScoreDifference.Abs().StringFixed(2))
	default:
		verdict = fmt.Sprintf("Tie (scores within 2 points, difference %s)", cmp.ScoreDifference.StringFixed(2))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		slots,
		"",
		tuistyles.SectionStyle.Render(verdict),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderAdvantages("A advantages", cmp.Advantages.Scenario1),
			"  ",
			renderAdvantages("B advantages", cmp.Advantages.Scenario2),
		),
	)
}

func renderSlot(label string, snap *Snapshot) string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render("Slot " + label))
	b.WriteString("\n")
	if snap == nil {
		b.WriteString(tuistyles.SubtitleStyle.Render("(empty)"))
		return tuistyles.BorderStyle.Width(36).Render(b.String())
	}

	b.WriteString(snap.Name)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Score %s  Confidence %d%%\n", snap.Result.Score.StringFixed(2), snap.Result.ConfidenceLevel))
	for _, m := range []domain.Metric{domain.MetricRevenue, domain.MetricGrossMargin, domain.MetricSellThrough, domain.MetricStockOutRate} {
		b.WriteString(fmt.Sprintf("%-16s %12s\n", m.Label(), m.Format(snap.Result.Scenario.Projected.Get(m))))
	}
	return tuistyles.BorderStyle.Width(36).Render(strings.TrimRight(b.String(), "\n"))
}

func renderAdvantages(title string, items []string) string {
	if len(items) == 0 {
		items = []string{"(none)"}
	}
	return tuistyles.BorderStyle.Width(36).Render(renderList(title, items, tuistyles.MetricPositiveStyle))
}
