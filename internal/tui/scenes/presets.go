package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/tuimsg"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// PresetsModel lets the user load a named preset into the sliders
type PresetsModel struct {
	presets []domain.Preset
	cursor  int
	width   int
	height  int
}

// NewPresetsModel creates a preset picker
func NewPresetsModel(presets []domain.Preset) *PresetsModel {
	return &PresetsModel{presets: presets}
}

// SetSize updates the model dimensions
func (m *PresetsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the preset under the cursor
func (m *PresetsModel) Selected() (domain.Preset, bool) {
	if m.cursor < 0 || m.cursor >= len(m.presets) {
		return domain.Preset{}, false
	}
	return m.presets[m.cursor], true
}

// Update handles messages for the preset scene
func (m *PresetsModel) Update(msg tea.Msg) (*PresetsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.presets) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		preset := m.presets[m.cursor]
		return m, func() tea.Msg {
			return tuimsg.PresetSelectedMsg{Preset: preset}
		}
	}
	return m, nil
}

// View renders the preset list with the selected preset's parameters
func (m *PresetsModel) View() string {
	if len(m.presets) == 0 {
		return tuistyles.InfoStyle.Render("No presets available")
	}

	var b strings.Builder
	b.WriteString(tuistyles.SectionStyle.Render("Presets"))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		if i == m.cursor {
			b.WriteString(tuistyles.SelectedItemStyle.Render("▸ " + p.Name))
		} else {
			b.WriteString(tuistyles.UnselectedItemStyle.Render("  " + p.Name))
		}
		b.WriteString("\n")
	}

	selected := m.presets[m.cursor]
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(selected.Description))
	b.WriteString("\n")
	for _, param := range selected.Parameters {
		change := "n/a"
		if pct, err := param.ChangePercent(); err == nil {
			change = pct.StringFixed(1) + "%"
		}
		b.WriteString(fmt.Sprintf("  %-24s %s -> %s (%s)\n", param.DisplayLabel(), param.BaseValue, param.NewValue, change))
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.InfoStyle.Render("↑↓ select • enter load into sliders"))
	return b.String()
}
