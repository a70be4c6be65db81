package calculation

import (
	"testing"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSensitivityTable(t *testing.T) {
	table := DefaultSensitivityTable()
	require.NoError(t, table.Validate())

	for _, name := range domain.KnownParameters() {
		_, ok := table.Lookup(name)
		assert.True(t, ok, "missing profile for %s", name)
	}
	assert.Len(t, table.Names(), len(domain.KnownParameters()))

	price, _ := table.Lookup(domain.ParamPriceAdjustment)
	assert.True(t, price.Multiplier(domain.MetricRevenue).Equal(dec("0.8")))

	_, ok := table.Lookup("shelfSpace")
	assert.False(t, ok)
}

func TestDefaultSensitivityTable_FreshCopy(t *testing.T) {
	first := DefaultSensitivityTable()
	first[domain.ParamPriceAdjustment].Multipliers[domain.MetricRevenue] = decimal.NewFromInt(9)
	delete(first, domain.ParamCategoryMix)

	second := DefaultSensitivityTable()
	price, _ := second.Lookup(domain.ParamPriceAdjustment)
	assert.True(t, price.Multiplier(domain.MetricRevenue).Equal(dec("0.8")))
	_, ok := second.Lookup(domain.ParamCategoryMix)
	assert.True(t, ok)

	clone := second.Clone()
	clone[domain.ParamPriceAdjustment].Multipliers[domain.MetricRevenue] = decimal.NewFromInt(3)
	assert.True(t, price.Multiplier(domain.MetricRevenue).Equal(dec("0.8")))
}

func TestSensitivityTable_Validate(t *testing.T) {
	tests := []struct {
		name   string
		prof   domain.SensitivityProfile
		errMsg string
	}{
		{"empty", domain.SensitivityProfile{}, "affects no metrics"},
		{"unknown metric", domain.SensitivityProfile{
			AffectsMetrics: []domain.Metric{"footTraffic"},
			Multipliers:    map[domain.Metric]decimal.Decimal{"footTraffic": dec("1")},
		}, "unknown metric"},
		{"missing multiplier", domain.SensitivityProfile{
			AffectsMetrics: []domain.Metric{domain.MetricRevenue},
		}, "missing multiplier"},
		{"stray multiplier", domain.SensitivityProfile{
			AffectsMetrics: []domain.Metric{domain.MetricRevenue},
			Multipliers: map[domain.Metric]decimal.Decimal{
				domain.MetricRevenue:   dec("1"),
				domain.MetricTotalCost: dec("1"),
			},
		}, "not in affects"},
		{"duplicate", domain.SensitivityProfile{
			AffectsMetrics: []domain.Metric{domain.MetricRevenue, domain.MetricRevenue},
			Multipliers:    map[domain.Metric]decimal.Decimal{domain.MetricRevenue: dec("1")},
		}, "listed twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SensitivityTable{"lever": tt.prof}.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
