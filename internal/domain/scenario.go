package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrZeroBaseValue is returned when a parameter's base value is zero and its change
// percent is therefore undefined
var ErrZeroBaseValue = errors.New("base value must be non-zero")

var hundred = decimal.NewFromInt(100)

// ScenarioParameter is a single proposed change to a planning lever
type ScenarioParameter struct {
	Name      string          `yaml:"name" json:"name"`   // sensitivity profile key, e.g. "priceAdjustment"
	Label     string          `yaml:"label" json:"label"` // display text
	BaseValue decimal.Decimal `yaml:"base_value" json:"baseValue"`
	NewValue  decimal.Decimal `yaml:"new_value" json:"newValue"`
}

// ChangePercent returns (NewValue - BaseValue) / BaseValue * 100
func (p ScenarioParameter) ChangePercent() (decimal.Decimal, error) {
	if p.BaseValue.IsZero() {
		return decimal.Zero, ErrZeroBaseValue
	}
	return p.NewValue.Sub(p.BaseValue).Div(p.BaseValue).Mul(hundred), nil
}

// DisplayLabel returns the label, falling back to the parameter name
func (p ScenarioParameter) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

// Significance grades how large an impact is
type Significance string

const (
	SignificanceLow    Significance = "low"
	SignificanceMedium Significance = "medium"
	SignificanceHigh   Significance = "high"
)

// Direction is the sign of an impact
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// DirectionOf returns positive for zero or greater, negative otherwise
func DirectionOf(change decimal.Decimal) Direction {
	if change.IsNegative() {
		return DirectionNegative
	}
	return DirectionPositive
}

// ScenarioImpact describes how a scenario moves one metric
type ScenarioImpact struct {
	Metric         Metric          `json:"metric"`
	Label          string          `json:"label"`
	BaseValue      decimal.Decimal `json:"baseValue"`
	ProjectedValue decimal.Decimal `json:"projectedValue"`
	Change         decimal.Decimal `json:"change"`
	ChangePercent  decimal.Decimal `json:"changePercent"`
	Significance   Significance    `json:"significance"`
	Direction      Direction       `json:"direction"`
}

// Scenario groups the inputs and the projected snapshot of a simulation
type Scenario struct {
	Parameters []ScenarioParameter `json:"parameters"`
	Baseline   MetricSet           `json:"baseline"`
	Projected  MetricSet           `json:"projected"`
}

// SimulationResult is the complete output of one simulation run
type SimulationResult struct {
	Scenario        Scenario         `json:"scenario"`
	Impacts         []ScenarioImpact `json:"impacts"`
	Score           decimal.Decimal  `json:"score"`
	Recommendations []string         `json:"recommendations"`
	Risks           []string         `json:"risks"`
	ConfidenceLevel int              `json:"confidenceLevel"`
}

// ImpactFor returns the impact recorded for a metric, if any
func (r *SimulationResult) ImpactFor(m Metric) (ScenarioImpact, bool) {
	for _, impact := range r.Impacts {
		if impact.Metric == m {
			return impact, true
		}
	}
	return ScenarioImpact{}, false
}

// DeepCopy returns a copy that shares no slices with the receiver
func (r *SimulationResult) DeepCopy() *SimulationResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Scenario.Parameters = append([]ScenarioParameter(nil), r.Scenario.Parameters...)
	out.Impacts = append([]ScenarioImpact(nil), r.Impacts...)
	out.Recommendations = append([]string(nil), r.Recommendations...)
	out.Risks = append([]string(nil), r.Risks...)
	return &out
}

// Preset is a named bundle of parameter changes
type Preset struct {
	Name        string              `yaml:"name" json:"name"`
	Description string              `yaml:"description" json:"description"`
	Parameters  []ScenarioParameter `yaml:"parameters" json:"parameters"`
}
