package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// SignificanceThresholds grade impacts. Step thresholds are fractions of the value
// before the step; consolidated thresholds are absolute change percents.
type SignificanceThresholds struct {
	StepHigh           decimal.Decimal `yaml:"step_high" json:"stepHigh"`
	StepMedium         decimal.Decimal `yaml:"step_medium" json:"stepMedium"`
	ConsolidatedHigh   decimal.Decimal `yaml:"consolidated_high" json:"consolidatedHigh"`
	ConsolidatedMedium decimal.Decimal `yaml:"consolidated_medium" json:"consolidatedMedium"`
}

// DefaultSignificanceThresholds returns 5%/2% per step and 10/5 points consolidated
func DefaultSignificanceThresholds() SignificanceThresholds {
	return SignificanceThresholds{
		StepHigh:           decimal.NewFromFloat(0.05),
		StepMedium:         decimal.NewFromFloat(0.02),
		ConsolidatedHigh:   decimal.NewFromInt(10),
		ConsolidatedMedium: decimal.NewFromInt(5),
	}
}

// Validate requires positive thresholds with medium no larger than high
func (t SignificanceThresholds) Validate() error {
	if !t.StepMedium.IsPositive() || !t.ConsolidatedMedium.IsPositive() {
		return fmt.Errorf("medium thresholds must be positive")
	}
	if t.StepMedium.GreaterThan(t.StepHigh) {
		return fmt.Errorf("step_medium %s above step_high %s", t.StepMedium, t.StepHigh)
	}
	if t.ConsolidatedMedium.GreaterThan(t.ConsolidatedHigh) {
		return fmt.Errorf("consolidated_medium %s above consolidated_high %s", t.ConsolidatedMedium, t.ConsolidatedHigh)
	}
	return nil
}

// ClassifyStep grades a single step's impact against the value before the step
func (t SignificanceThresholds) ClassifyStep(impact, before decimal.Decimal) domain.Significance {
	size := impact.Abs()
	switch {
	case size.GreaterThan(before.Mul(t.StepHigh)):
		return domain.SignificanceHigh
	case size.GreaterThan(before.Mul(t.StepMedium)):
		return domain.SignificanceMedium
	default:
		return domain.SignificanceLow
	}
}

// ClassifyConsolidated grades a metric's total change percent
func (t SignificanceThresholds) ClassifyConsolidated(changePct decimal.Decimal) domain.Significance {
	size := changePct.Abs()
	switch {
	case size.GreaterThan(t.ConsolidatedHigh):
		return domain.SignificanceHigh
	case size.GreaterThan(t.ConsolidatedMedium):
		return domain.SignificanceMedium
	default:
		return domain.SignificanceLow
	}
}

// ConsolidateImpacts merges raw step impacts into one entry per metric, ordered by
// descending absolute change percent. Ties keep the order in which metrics were first
// touched. A metric touched only once keeps its raw entry unchanged.
func ConsolidateImpacts(raw []domain.ScenarioImpact, thresholds SignificanceThresholds) []domain.ScenarioImpact {
	order := make([]domain.Metric, 0, len(raw))
	groups := make(map[domain.Metric][]domain.ScenarioImpact, len(raw))
	for _, impact := range raw {
		if _, seen := groups[impact.Metric]; !seen {
			order = append(order, impact.Metric)
		}
		groups[impact.Metric] = append(groups[impact.Metric], impact)
	}

	out := make([]domain.ScenarioImpact, 0, len(order))
	for _, m := range order {
		group := groups[m]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}

		total := decimal.Zero
		for _, impact := range group {
			total = total.Add(impact.Change)
		}
		baseValue := group[0].BaseValue
		changePct := percentOf(total, baseValue)

		out = append(out, domain.ScenarioImpact{
			Metric:         m,
			Label:          group[0].Label,
			BaseValue:      baseValue,
			ProjectedValue: baseValue.Add(total),
			Change:         total,
			ChangePercent:  changePct,
			Significance:   thresholds.ClassifyConsolidated(changePct),
			Direction:      domain.DirectionOf(total),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChangePercent.Abs().GreaterThan(out[j].ChangePercent.Abs())
	})
	return out
}
