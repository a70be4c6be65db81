package domain

import (
	"github.com/shopspring/decimal"
)

// Known parameter names with built-in sensitivity profiles
const (
	ParamPriceAdjustment = "priceAdjustment"
	ParamMarkdownTiming  = "markdownTiming"
	ParamInventoryLevel  = "inventoryLevel"
	ParamReceiptTiming   = "receiptTiming"
	ParamBuyQuantity     = "buyQuantity"
	ParamCategoryMix     = "categoryMix"
)

// KnownParameters returns the parameter names in display order
func KnownParameters() []string {
	return []string{
		ParamPriceAdjustment,
		ParamMarkdownTiming,
		ParamInventoryLevel,
		ParamReceiptTiming,
		ParamBuyQuantity,
		ParamCategoryMix,
	}
}

// SensitivityProfile describes which metrics a parameter moves and how strongly.
// A negative multiplier means the metric moves against the parameter.
type SensitivityProfile struct {
	AffectsMetrics []Metric                   `yaml:"affects" json:"affectsMetrics"`
	Multipliers    map[Metric]decimal.Decimal `yaml:"multipliers" json:"multipliers"`
}

// Multiplier returns the multiplier for a metric, zero if none is configured
func (sp SensitivityProfile) Multiplier(m Metric) decimal.Decimal {
	if v, ok := sp.Multipliers[m]; ok {
		return v
	}
	return decimal.Zero
}

// Clone returns a deep copy of the profile
func (sp SensitivityProfile) Clone() SensitivityProfile {
	out := SensitivityProfile{
		AffectsMetrics: append([]Metric(nil), sp.AffectsMetrics...),
		Multipliers:    make(map[Metric]decimal.Decimal, len(sp.Multipliers)),
	}
	for k, v := range sp.Multipliers {
		out.Multipliers[k] = v
	}
	return out
}

// SweepSpec describes a one-parameter sweep over evenly spaced new values
type SweepSpec struct {
	Parameter   string          `yaml:"parameter" json:"parameter"`
	Label       string          `yaml:"label" json:"label"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Concurrency int             `yaml:"concurrency" json:"concurrency"`
}

// Values generates the sweep's new values from MinValue to MaxValue inclusive
func (s SweepSpec) Values() []decimal.Decimal {
	if s.Steps <= 1 {
		return []decimal.Decimal{s.MinValue}
	}

	stepSize := s.MaxValue.Sub(s.MinValue).Div(decimal.NewFromInt(int64(s.Steps - 1)))
	values := make([]decimal.Decimal, 0, s.Steps)
	for i := 0; i < s.Steps; i++ {
		values = append(values, s.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// SweepPoint is the outcome of one sweep step
type SweepPoint struct {
	NewValue        decimal.Decimal `json:"newValue"`
	ChangePercent   decimal.Decimal `json:"changePercent"`
	Score           decimal.Decimal `json:"score"`
	ConfidenceLevel int             `json:"confidenceLevel"`
	Projected       MetricSet       `json:"projected"`
	RiskCount       int             `json:"riskCount"`
}

// SweepResult collects every step of a sweep plus a short summary
type SweepResult struct {
	Spec       SweepSpec       `json:"spec"`
	Points     []SweepPoint    `json:"points"`
	BestIndex  int             `json:"bestIndex"`
	ScoreRange decimal.Decimal `json:"scoreRange"`
	Summary    []string        `json:"summary"`
}

// Best returns the highest scoring point
func (sr *SweepResult) Best() (SweepPoint, bool) {
	if sr == nil || sr.BestIndex < 0 || sr.BestIndex >= len(sr.Points) {
		return SweepPoint{}, false
	}
	return sr.Points[sr.BestIndex], true
}
