package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/components"
	"github.com/rgehrsitz/whatif/internal/tui/tuimsg"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// SliderSpec is the range a planning lever can be moved over in the editor
type SliderSpec struct {
	Name        string
	Label       string
	Base        int64
	Min         int64
	Max         int64
	Step        int64
	Unit        string
	Description string
}

// DefaultSliderSpecs returns the editor ranges for the built-in parameters
func DefaultSliderSpecs() []SliderSpec {
	return []SliderSpec{
		{domain.ParamPriceAdjustment, "Price Adjustment", 100, 70, 130, 1, "", "Price index, 100 = current price"},
		{domain.ParamMarkdownTiming, "Markdown Timing", 4, 1, 10, 1, " wks", "Weeks into the season before the first markdown"},
		{domain.ParamInventoryLevel, "Inventory Level", 100, 50, 150, 5, "", "Inventory index, 100 = current plan"},
		{domain.ParamReceiptTiming, "Receipt Timing", 4, 1, 10, 1, " wks", "Weeks of lead time before receipts land"},
		{domain.ParamBuyQuantity, "Buy Quantity", 10000, 5000, 15000, 500, " u", "Units bought for the season"},
		{domain.ParamCategoryMix, "Category Mix", 100, 70, 130, 5, "", "Mix index, above 100 leans to higher-margin categories"},
	}
}

// ParametersModel represents the parameter editing scene
type ParametersModel struct {
	sliders       []*components.ParameterSlider
	bases         []decimal.Decimal
	focusedSlider int
	presetName    string
	width         int
	height        int
}

// NewParametersModel creates a parameters scene with one slider per spec
func NewParametersModel(specs []SliderSpec) *ParametersModel {
	m := &ParametersModel{}
	for _, s := range specs {
		slider := components.NewParameterSlider(s.Name, s.Label,
			decimal.NewFromInt(s.Base), decimal.NewFromInt(s.Min), decimal.NewFromInt(s.Max), decimal.NewFromInt(s.Step)).
			WithUnit(s.Unit).
			WithDescription(s.Description).
			WithWidth(40)
		m.sliders = append(m.sliders, slider)
		m.bases = append(m.bases, slider.Base)
	}
	if len(m.sliders) > 0 {
		m.sliders[0].SetFocused(true)
	}
	return m
}

// SetSize updates the model dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Parameters returns the sliders that have moved off their base value, in slider order
func (m *ParametersModel) Parameters() []domain.ScenarioParameter {
	var params []domain.ScenarioParameter
	for _, s := range m.sliders {
		if s.Changed() {
			params = append(params, s.Parameter())
		}
	}
	return params
}

// Focused returns the focused slider, or nil when there are none
func (m *ParametersModel) Focused() *components.ParameterSlider {
	if m.focusedSlider < len(m.sliders) {
		return m.sliders[m.focusedSlider]
	}
	return nil
}

// PresetName returns the preset last applied, if the sliders still match it
func (m *ParametersModel) PresetName() string {
	return m.presetName
}

// ResetAll restores every slider to its default base value
func (m *ParametersModel) ResetAll() {
	for i, s := range m.sliders {
		s.Base = m.bases[i]
		s.Reset()
	}
}

// ApplyPreset resets every slider and then moves the ones the preset names.
// Preset parameters without a slider are ignored.
func (m *ParametersModel) ApplyPreset(p domain.Preset) {
	m.ResetAll()
	for _, param := range p.Parameters {
		for _, s := range m.sliders {
			if s.Name == param.Name {
				if !param.BaseValue.IsZero() {
					s.Base = param.BaseValue
				}
				s.SetValue(param.NewValue)
			}
		}
	}
	m.presetName = p.Name
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h"))):
		m.sliders[m.focusedSlider].Decrement()
		return m, m.changed()

	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l"))):
		m.sliders[m.focusedSlider].Increment()
		return m, m.changed()

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.sliders[m.focusedSlider].Reset()
		return m, m.changed()

	case key.Matches(msg, key.NewBinding(key.WithKeys("R"))):
		m.ResetAll()
		return m, m.changed()
	}

	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[m.focusedSlider].SetFocused(true)
}

// changed clears the preset label and tells the model to re-run the simulation
func (m *ParametersModel) changed() tea.Cmd {
	m.presetName = ""
	params := m.Parameters()
	return func() tea.Msg {
		return tuimsg.ParametersChangedMsg{Parameters: params}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	var b strings.Builder

	title := "Scenario Parameters"
	if m.presetName != "" {
		title += " (" + m.presetName + ")"
	}
	b.WriteString(tuistyles.SectionStyle.Render(title))
	b.WriteString("\n\n")

	for i, s := range m.sliders {
		if i == m.focusedSlider {
			b.WriteString(s.Render())
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(s.RenderCompact())
		b.WriteString("\n")
	}

	hint := lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Italic(true).
		Render("↑↓ select • ←→ adjust • r reset • R reset all")
	b.WriteString("\n")
	b.WriteString(hint)

	return b.String()
}
