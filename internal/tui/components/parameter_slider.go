package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider edits the new value of one scenario parameter against its base
type ParameterSlider struct {
	Name        string
	Label       string
	Base        decimal.Decimal
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Unit        string // e.g. "%", " wks"
	Width       int    // Total width of slider bar
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider starting at the base value
func NewParameterSlider(name, label string, base, min, max, step decimal.Decimal) *ParameterSlider {
	return &ParameterSlider{
		Name:  name,
		Label: label,
		Base:  base,
		Value: base,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
}

// WithUnit sets the unit suffix
func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment increases the value by step, stopping at Max
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value.Add(p.Step))
}

// Decrement decreases the value by step, stopping at Min
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value.Sub(p.Step))
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	switch {
	case value.LessThan(p.Min):
		p.Value = p.Min
	case value.GreaterThan(p.Max):
		p.Value = p.Max
	default:
		p.Value = value
	}
}

// Reset moves the slider back to the base value
func (p *ParameterSlider) Reset() {
	p.Value = p.Base
}

// Changed reports whether the slider is away from its base value
func (p *ParameterSlider) Changed() bool {
	return !p.Value.Equal(p.Base)
}

// Parameter returns the scenario parameter the slider currently describes
func (p *ParameterSlider) Parameter() domain.ScenarioParameter {
	return domain.ScenarioParameter{
		Name:      p.Name,
		Label:     p.Label,
		BaseValue: p.Base,
		NewValue:  p.Value,
	}
}

// Percentage returns the value's position within the range, 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if span.IsZero() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

func (p *ParameterSlider) changeText() string {
	pct, err := p.Parameter().ChangePercent()
	if err != nil {
		return "n/a"
	}
	if pct.IsPositive() {
		return "+" + pct.StringFixed(1) + "%"
	}
	return pct.StringFixed(1) + "%"
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("\n")

	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(valueStyle.Render(fmt.Sprintf("%s%s (base %s, %s)", p.Value.String(), p.Unit, p.Base.String(), p.changeText())))
	content.WriteString("\n")

	content.WriteString(p.renderSliderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s%s  ─  %s%s", p.Min, p.Unit, p.Max, p.Unit)))

	if p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	return content.String()
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	if filled < 0 {
		filled = 0
	}
	if filled > p.Width {
		filled = p.Width
	}
	empty := p.Width - filled

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")

	return bar.String()
}

// RenderCompact returns a single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	label := labelStyle.Render(fmt.Sprintf("%-24s", p.Label))
	value := valueStyle.Render(fmt.Sprintf("%8s%s %8s", p.Value.String(), p.Unit, p.changeText()))

	return fmt.Sprintf("%s %s %s", label, value, p.renderMiniSliderBar(16))
}

func (p *ParameterSlider) renderMiniSliderBar(width int) string {
	filled := int(math.Round(float64(width-1) * p.Percentage()))

	thumbStyle := tuistyles.SliderThumbStyle
	trackStyle := tuistyles.SliderTrackStyle

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < width; i++ {
		switch {
		case i == filled:
			bar.WriteString(thumbStyle.Render("●"))
		case i < filled:
			bar.WriteString(thumbStyle.Render("━"))
		default:
			bar.WriteString(trackStyle.Render("─"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}
