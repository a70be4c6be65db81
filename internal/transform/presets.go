package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// PresetRegistry manages named parameter bundles. Lookups are case-insensitive and
// List keeps registration order.
type PresetRegistry struct {
	presets map[string]domain.Preset
	order   []string
}

// NewPresetRegistry creates an empty preset registry
func NewPresetRegistry() *PresetRegistry {
	return &PresetRegistry{
		presets: make(map[string]domain.Preset),
	}
}

// Register adds a preset, replacing one with the same name
func (pr *PresetRegistry) Register(p domain.Preset) {
	key := presetKey(p.Name)
	if _, exists := pr.presets[key]; !exists {
		pr.order = append(pr.order, key)
	}
	pr.presets[key] = p
}

// Get retrieves a preset by name (case-insensitive). Spaces, dashes and underscores
// are interchangeable, so "margin_protection" finds "Margin Protection".
func (pr *PresetRegistry) Get(name string) (domain.Preset, bool) {
	p, ok := pr.presets[presetKey(name)]
	return p, ok
}

// List returns all presets in registration order
func (pr *PresetRegistry) List() []domain.Preset {
	out := make([]domain.Preset, 0, len(pr.order))
	for _, key := range pr.order {
		out = append(out, clonePreset(pr.presets[key]))
	}
	return out
}

// Names returns the preset names in registration order
func (pr *PresetRegistry) Names() []string {
	names := make([]string, 0, len(pr.order))
	for _, key := range pr.order {
		names = append(names, pr.presets[key].Name)
	}
	return names
}

func presetKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(key)
}

func clonePreset(p domain.Preset) domain.Preset {
	p.Parameters = append([]domain.ScenarioParameter(nil), p.Parameters...)
	return p
}

func preset(name, description string, params ...domain.ScenarioParameter) domain.Preset {
	return domain.Preset{Name: name, Description: description, Parameters: params}
}

func presetParam(name, label string, base, newValue int64) domain.ScenarioParameter {
	return domain.ScenarioParameter{
		Name:      name,
		Label:     label,
		BaseValue: decimal.NewFromInt(base),
		NewValue:  decimal.NewFromInt(newValue),
	}
}

// CreateBuiltInPresets creates a registry with the four standard planning presets
func CreateBuiltInPresets() *PresetRegistry {
	registry := NewPresetRegistry()

	registry.Register(preset("Aggressive Growth",
		"Cut price to drive volume and back it with deeper inventory and a larger buy",
		presetParam(domain.ParamPriceAdjustment, "Price Adjustment", 100, 92),
		presetParam(domain.ParamInventoryLevel, "Inventory Level", 100, 125),
		presetParam(domain.ParamBuyQuantity, "Buy Quantity", 10000, 12000),
	))

	registry.Register(preset("Margin Protection",
		"Modest price increase, later markdowns and a richer category mix",
		presetParam(domain.ParamPriceAdjustment, "Price Adjustment", 100, 105),
		presetParam(domain.ParamMarkdownTiming, "Markdown Timing (weeks)", 4, 6),
		presetParam(domain.ParamCategoryMix, "Category Mix", 100, 110),
	))

	registry.Register(preset("Inventory Optimization",
		"Leaner inventory with faster receipts and a smaller buy",
		presetParam(domain.ParamInventoryLevel, "Inventory Level", 100, 85),
		presetParam(domain.ParamReceiptTiming, "Receipt Timing (weeks)", 4, 3),
		presetParam(domain.ParamBuyQuantity, "Buy Quantity", 10000, 9000),
	))

	registry.Register(preset("Conservative",
		"Small price increase with slightly lower inventory",
		presetParam(domain.ParamPriceAdjustment, "Price Adjustment", 100, 102),
		presetParam(domain.ParamInventoryLevel, "Inventory Level", 100, 95),
	))

	return registry
}

// GetScenarioPresets returns the built-in presets in their fixed order
func GetScenarioPresets() []domain.Preset {
	return CreateBuiltInPresets().List()
}

// ParsePresetList parses a comma-separated list of preset names
func ParsePresetList(presetList string) []string {
	if presetList == "" {
		return nil
	}

	parts := strings.Split(presetList, ",")
	presets := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			presets = append(presets, trimmed)
		}
	}
	return presets
}

// GetPresetHelp returns formatted help text for all presets
func GetPresetHelp(registry *PresetRegistry) string {
	if len(registry.order) == 0 {
		return "No presets registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Presets:\n\n")

	for _, p := range registry.List() {
		sb.WriteString(fmt.Sprintf("  %-26s %s\n", p.Name, p.Description))
		for _, param := range p.Parameters {
			change := "n/a"
			if pct, err := param.ChangePercent(); err == nil {
				change = pct.StringFixed(1) + "%"
				if pct.IsPositive() {
					change = "+" + change
				}
			}
			sb.WriteString(fmt.Sprintf("      %-26s %s -> %s (%s)\n",
				param.DisplayLabel(), param.BaseValue, param.NewValue, change))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  whatif simulate --preset \"Margin Protection\"\n")
	sb.WriteString("  whatif compare --preset aggressive_growth --preset conservative\n")

	return sb.String()
}
