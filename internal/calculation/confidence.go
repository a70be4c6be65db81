package calculation

import (
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// ConfidenceTier subtracts Penalty when a parameter's |changePercent| exceeds Threshold
type ConfidenceTier struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Penalty   int             `yaml:"penalty" json:"penalty"`
}

// ConfidencePolicy controls how confidence falls with larger and more numerous changes
type ConfidencePolicy struct {
	Start int `yaml:"start" json:"start"`
	Floor int `yaml:"floor" json:"floor"`

	// Tiers are checked from the first; only the first match applies per parameter
	Tiers []ConfidenceTier `yaml:"tiers" json:"tiers"`

	FreeParameters  int `yaml:"free_parameters" json:"freeParameters"`
	PerExtraPenalty int `yaml:"per_extra_penalty" json:"perExtraPenalty"`
}

// DefaultConfidencePolicy starts at 95, floors at 50 and penalises 15/10/5 above 30/20/10%
func DefaultConfidencePolicy() ConfidencePolicy {
	return ConfidencePolicy{
		Start: 95,
		Floor: 50,
		Tiers: []ConfidenceTier{
			{Threshold: decimal.NewFromInt(30), Penalty: 15},
			{Threshold: decimal.NewFromInt(20), Penalty: 10},
			{Threshold: decimal.NewFromInt(10), Penalty: 5},
		},
		FreeParameters:  3,
		PerExtraPenalty: 3,
	}
}

// Validate checks 0 <= Floor <= Start <= 100 with a positive Start, and that tiers are
// in descending threshold order
func (cp ConfidencePolicy) Validate() error {
	if cp.Start <= 0 || cp.Start > 100 {
		return fmt.Errorf("start %d must be in (0, 100]", cp.Start)
	}
	if cp.Floor < 0 {
		return fmt.Errorf("floor %d cannot be negative", cp.Floor)
	}
	if cp.Floor > cp.Start {
		return fmt.Errorf("floor %d above start %d", cp.Floor, cp.Start)
	}
	for i, tier := range cp.Tiers {
		if tier.Penalty < 0 {
			return fmt.Errorf("tier %d: penalty must be non-negative", i)
		}
		if i > 0 && !tier.Threshold.LessThan(cp.Tiers[i-1].Threshold) {
			return fmt.Errorf("tier %d: thresholds must be strictly descending", i)
		}
	}
	if cp.FreeParameters < 0 || cp.PerExtraPenalty < 0 {
		return fmt.Errorf("parameter count penalty must be non-negative")
	}
	return nil
}

// Estimate returns a confidence level clamped to [Floor, Start]. Every parameter counts
// toward the parameter-count penalty, including ones without a profile.
func (cp ConfidencePolicy) Estimate(params []domain.ScenarioParameter) int {
	confidence := cp.Start

	for _, p := range params {
		changePct, err := p.ChangePercent()
		if err != nil {
			continue
		}
		size := changePct.Abs()
		for _, tier := range cp.Tiers {
			if size.GreaterThan(tier.Threshold) {
				confidence -= tier.Penalty
				break
			}
		}
	}

	if extra := len(params) - cp.FreeParameters; extra > 0 {
		confidence -= cp.PerExtraPenalty * extra
	}

	if confidence < cp.Floor {
		return cp.Floor
	}
	if confidence > cp.Start {
		return cp.Start
	}
	return confidence
}
