package calculation

import (
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Propagation is the outcome of folding every parameter over the baseline
type Propagation struct {
	Projected domain.MetricSet
	// Raw holds one impact per (parameter, affected metric) pair in application order
	Raw []domain.ScenarioImpact
}

// Propagate applies the parameters left to right. Each step sees the metrics produced
// by the steps before it, so effects compound. Parameters without a profile are skipped.
func (se *SimulationEngine) Propagate(baseline domain.MetricSet, params []domain.ScenarioParameter) (*Propagation, error) {
	current := baseline
	raw := make([]domain.ScenarioImpact, 0, len(params)*4)

	for i, p := range params {
		profile, ok := se.config.Profiles.Lookup(p.Name)
		if !ok {
			se.Logger.Debugf("no sensitivity profile for %q, skipping", p.Name)
			continue
		}

		changePct, err := p.ChangePercent()
		if err != nil {
			return nil, NewInvalidParameterError(p.Name, i, "cannot compute change percent", err)
		}

		var impacts []domain.ScenarioImpact
		current, impacts = se.applyParameter(baseline, current, profile, changePct)
		raw = append(raw, impacts...)
	}

	return &Propagation{Projected: current, Raw: raw}, nil
}

func (se *SimulationEngine) applyParameter(baseline, current domain.MetricSet, profile domain.SensitivityProfile, changePct decimal.Decimal) (domain.MetricSet, []domain.ScenarioImpact) {
	fraction := changePct.Shift(-2)
	impacts := make([]domain.ScenarioImpact, 0, len(profile.AffectsMetrics))

	for _, m := range profile.AffectsMetrics {
		before := current.Get(m)
		impact := before.Mul(fraction).Mul(profile.Multiplier(m))
		current = current.With(m, before.Add(impact))
		impacts = append(impacts, se.recordImpact(m, baseline.Get(m), before, current.Get(m), impact))
	}
	return current, impacts
}

// recordImpact describes one step. Percent is measured against the original baseline,
// significance against the value just before the step.
func (se *SimulationEngine) recordImpact(m domain.Metric, baseValue, before, after, impact decimal.Decimal) domain.ScenarioImpact {
	return domain.ScenarioImpact{
		Metric:         m,
		Label:          m.Label(),
		BaseValue:      baseValue,
		ProjectedValue: after,
		Change:         impact,
		ChangePercent:  percentOf(impact, baseValue),
		Significance:   se.config.Significance.ClassifyStep(impact, before),
		Direction:      domain.DirectionOf(impact),
	}
}

// percentOf returns part / whole * 100, or zero when whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
