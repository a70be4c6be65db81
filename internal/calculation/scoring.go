package calculation

import (
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	scoreFloor   = decimal.Zero
	scoreCeiling = decimal.NewFromInt(100)
	scoreNeutral = decimal.NewFromInt(50)
)

// MetricWeight is one term of the composite score
type MetricWeight struct {
	Metric domain.Metric   `yaml:"metric" json:"metric"`
	Weight decimal.Decimal `yaml:"weight" json:"weight"`

	// Scale converts the improvement ratio into score points around 50
	Scale decimal.Decimal `yaml:"scale" json:"scale"`

	// Inverted metrics improve when they fall
	Inverted bool `yaml:"inverted" json:"inverted"`
}

// ScoreWeights is the ordered list of scored metrics
type ScoreWeights []MetricWeight

// DefaultScoreWeights returns the built-in composite weights
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		{Metric: domain.MetricRevenue, Weight: decimal.NewFromFloat(0.25), Scale: hundred},
		{Metric: domain.MetricGrossMargin, Weight: decimal.NewFromFloat(0.25), Scale: hundred},
		{Metric: domain.MetricSellThrough, Weight: decimal.NewFromFloat(0.20), Scale: hundred},
		{Metric: domain.MetricStockOutRate, Weight: decimal.NewFromFloat(0.15), Scale: decimal.NewFromInt(50), Inverted: true},
		{Metric: domain.MetricInventoryTurn, Weight: decimal.NewFromFloat(0.15), Scale: hundred},
	}
}

// Validate rejects unknown metrics, duplicates, negative weights and an all-zero table
func (sw ScoreWeights) Validate() error {
	if len(sw) == 0 {
		return fmt.Errorf("no weighted metrics")
	}
	seen := make(map[domain.Metric]bool, len(sw))
	total := decimal.Zero
	for i, w := range sw {
		if !w.Metric.Valid() {
			return fmt.Errorf("weight %d: unknown metric %s", i, w.Metric)
		}
		if seen[w.Metric] {
			return fmt.Errorf("weight %d: metric %s listed twice", i, w.Metric)
		}
		seen[w.Metric] = true
		if w.Weight.IsNegative() {
			return fmt.Errorf("weight %d (%s): weight must be non-negative", i, w.Metric)
		}
		if !w.Scale.IsPositive() {
			return fmt.Errorf("weight %d (%s): scale must be positive", i, w.Metric)
		}
		total = total.Add(w.Weight)
	}
	if !total.IsPositive() {
		return fmt.Errorf("weights sum to zero")
	}
	return nil
}

// ScoreComponent is one metric's contribution to the score
type ScoreComponent struct {
	Metric       domain.Metric   `json:"metric"`
	Weight       decimal.Decimal `json:"weight"`
	Ratio        decimal.Decimal `json:"ratio"`
	MetricScore  decimal.Decimal `json:"metricScore"`
	Contribution decimal.Decimal `json:"contribution"`
	Skipped      bool            `json:"skipped"`
}

// ScoreBreakdown explains a composite score
type ScoreBreakdown struct {
	Components    []ScoreComponent `json:"components"`
	AppliedWeight decimal.Decimal  `json:"appliedWeight"`
	Score         decimal.Decimal  `json:"score"`
}

// Score returns the weighted composite score in [0, 100]
func (sw ScoreWeights) Score(baseline, projected domain.MetricSet) decimal.Decimal {
	return sw.Breakdown(baseline, projected).Score
}

// Breakdown computes the composite score and keeps every term. Metrics with a zero
// baseline are skipped and excluded from the weight denominator.
func (sw ScoreWeights) Breakdown(baseline, projected domain.MetricSet) ScoreBreakdown {
	bd := ScoreBreakdown{
		Components:    make([]ScoreComponent, 0, len(sw)),
		AppliedWeight: decimal.Zero,
	}
	weighted := decimal.Zero

	for _, w := range sw {
		base := baseline.Get(w.Metric)
		if base.IsZero() {
			bd.Components = append(bd.Components, ScoreComponent{Metric: w.Metric, Weight: w.Weight, Skipped: true})
			continue
		}

		improvement := projected.Get(w.Metric).Sub(base)
		if w.Inverted {
			improvement = improvement.Neg()
		}
		ratio := improvement.Div(base)
		metricScore := clamp(scoreNeutral.Add(ratio.Mul(w.Scale)), scoreFloor, scoreCeiling)
		contribution := metricScore.Mul(w.Weight)

		weighted = weighted.Add(contribution)
		bd.AppliedWeight = bd.AppliedWeight.Add(w.Weight)
		bd.Components = append(bd.Components, ScoreComponent{
			Metric:       w.Metric,
			Weight:       w.Weight,
			Ratio:        ratio,
			MetricScore:  metricScore,
			Contribution: contribution,
		})
	}

	if bd.AppliedWeight.IsZero() {
		bd.Score = scoreNeutral
		return bd
	}
	bd.Score = clamp(weighted.Div(bd.AppliedWeight), scoreFloor, scoreCeiling)
	return bd
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
