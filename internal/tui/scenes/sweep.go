package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/components"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// SweepModel shows how the score responds to one parameter across its range
type SweepModel struct {
	result  *domain.SweepResult
	running bool
	width   int
	height  int
}

// NewSweepModel creates a new sweep scene model
func NewSweepModel() *SweepModel {
	return &SweepModel{}
}

// SetSize updates the model dimensions
func (m *SweepModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRunning marks a sweep as in flight
func (m *SweepModel) SetRunning() {
	m.running = true
}

// SetResult stores a finished sweep
func (m *SweepModel) SetResult(result *domain.SweepResult) {
	m.result = result
	m.running = false
}

// Result returns the last finished sweep
func (m *SweepModel) Result() *domain.SweepResult {
	return m.result
}

// Update handles messages for the sweep scene
func (m *SweepModel) Update(msg tea.Msg) (*SweepModel, tea.Cmd) {
	return m, nil
}

// View renders the sweep scene
func (m *SweepModel) View() string {
	if m.running {
		return tuistyles.InfoStyle.Render("Sweeping…")
	}
	if m.result == nil {
		return tuistyles.InfoStyle.Render("Press s on the parameters screen to sweep the focused parameter.")
	}

	label := m.result.Spec.Label
	if label == "" {
		label = m.result.Spec.Parameter
	}

	width := 40
	if m.width > 40 {
		width = m.width - 30
	}

	var b strings.Builder
	b.WriteString(components.NewSweepChart(fmt.Sprintf("Score vs %s", label), m.result).WithWidth(width).Render())
	b.WriteString("\n\n")
	for _, line := range m.result.Summary {
		b.WriteString(tuistyles.SubtitleStyle.Render("• " + line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
