package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityTable maps a parameter name to the profile describing its effects
type SensitivityTable map[string]domain.SensitivityProfile

// Lookup returns the profile for a parameter name. Unknown names are not an error.
func (st SensitivityTable) Lookup(name string) (domain.SensitivityProfile, bool) {
	profile, ok := st[name]
	return profile, ok
}

// Names returns the configured parameter names, sorted
func (st SensitivityTable) Names() []string {
	names := make([]string, 0, len(st))
	for name := range st {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the table
func (st SensitivityTable) Clone() SensitivityTable {
	out := make(SensitivityTable, len(st))
	for name, profile := range st {
		out[name] = profile.Clone()
	}
	return out
}

// Validate checks that every profile references known metrics and has a multiplier
// for each affected metric
func (st SensitivityTable) Validate() error {
	for _, name := range st.Names() {
		profile := st[name]
		if len(profile.AffectsMetrics) == 0 {
			return fmt.Errorf("profile %s: affects no metrics", name)
		}
		seen := make(map[domain.Metric]bool, len(profile.AffectsMetrics))
		for _, m := range profile.AffectsMetrics {
			if !m.Valid() {
				return fmt.Errorf("profile %s: unknown metric %s", name, m)
			}
			if seen[m] {
				return fmt.Errorf("profile %s: metric %s listed twice", name, m)
			}
			seen[m] = true
			if _, ok := profile.Multipliers[m]; !ok {
				return fmt.Errorf("profile %s: missing multiplier for %s", name, m)
			}
		}
		for m := range profile.Multipliers {
			if !seen[m] {
				return fmt.Errorf("profile %s: multiplier for %s which is not in affects", name, m)
			}
		}
	}
	return nil
}

func profile(entries ...profileEntry) domain.SensitivityProfile {
	p := domain.SensitivityProfile{
		AffectsMetrics: make([]domain.Metric, 0, len(entries)),
		Multipliers:    make(map[domain.Metric]decimal.Decimal, len(entries)),
	}
	for _, e := range entries {
		p.AffectsMetrics = append(p.AffectsMetrics, e.metric)
		p.Multipliers[e.metric] = decimal.NewFromFloat(e.multiplier)
	}
	return p
}

type profileEntry struct {
	metric     domain.Metric
	multiplier float64
}

// DefaultSensitivityTable returns a fresh copy of the built-in sensitivity profiles
func DefaultSensitivityTable() SensitivityTable {
	return SensitivityTable{
		domain.ParamPriceAdjustment: profile(
			profileEntry{domain.MetricRevenue, 0.8},
			profileEntry{domain.MetricGrossMargin, 0.6},
			profileEntry{domain.MetricUnitsSold, -1.2},
			profileEntry{domain.MetricSellThrough, -0.5},
			profileEntry{domain.MetricAvgSellingPrice, 1.0},
		),
		// Negative change means markdowns start earlier
		domain.ParamMarkdownTiming: profile(
			profileEntry{domain.MetricMarkdownRate, -0.6},
			profileEntry{domain.MetricSellThrough, -0.3},
			profileEntry{domain.MetricGrossMargin, 0.25},
			profileEntry{domain.MetricWeeksOfSupply, 0.4},
		),
		domain.ParamInventoryLevel: profile(
			profileEntry{domain.MetricWeeksOfSupply, 1.0},
			profileEntry{domain.MetricStockOutRate, -0.8},
			profileEntry{domain.MetricInventoryTurn, -0.7},
			profileEntry{domain.MetricTotalCost, 0.5},
			profileEntry{domain.MetricMarkdownRate, 0.4},
		),
		domain.ParamReceiptTiming: profile(
			profileEntry{domain.MetricWeeksOfSupply, -0.4},
			profileEntry{domain.MetricStockOutRate, 0.5},
			profileEntry{domain.MetricSellThrough, 0.15},
		),
		domain.ParamBuyQuantity: profile(
			profileEntry{domain.MetricTotalCost, 1.0},
			profileEntry{domain.MetricUnitsSold, 0.4},
			profileEntry{domain.MetricWeeksOfSupply, 0.8},
			profileEntry{domain.MetricMarkdownRate, 0.5},
			profileEntry{domain.MetricStockOutRate, -0.6},
		),
		domain.ParamCategoryMix: profile(
			profileEntry{domain.MetricRevenue, 0.3},
			profileEntry{domain.MetricGrossMargin, 0.4},
			profileEntry{domain.MetricSellThrough, 0.2},
		),
	}
}
