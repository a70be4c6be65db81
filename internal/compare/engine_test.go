package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func param(name, base, newValue string) domain.ScenarioParameter {
	return domain.ScenarioParameter{
		Name:      name,
		BaseValue: decimal.RequireFromString(base),
		NewValue:  decimal.RequireFromString(newValue),
	}
}

func withImpacts(r *domain.SimulationResult, impacts ...domain.ScenarioImpact) *domain.SimulationResult {
	r.Impacts = impacts
	return r
}

func impact(m domain.Metric, projected string) domain.ScenarioImpact {
	return domain.ScenarioImpact{Metric: m, Label: m.Label(), ProjectedValue: decimal.RequireFromString(projected)}
}

func TestCompareScenarios_TieOnDeepCopy(t *testing.T) {
	result, err := calculation.RunSimulation([]domain.ScenarioParameter{
		param(domain.ParamPriceAdjustment, "100", "110"),
		param(domain.ParamInventoryLevel, "100", "80"),
	}, nil)
	require.NoError(t, err)

	comparison := CompareScenarios(result, result.DeepCopy())

	assert.Equal(t, WinnerTie, comparison.Winner)
	assert.True(t, comparison.ScoreDifference.IsZero())
	assert.Empty(t, comparison.Advantages.Scenario1)
	assert.Empty(t, comparison.Advantages.Scenario2)
}

func TestCompareScenarios_Advantages(t *testing.T) {
	r1 := withImpacts(simResult("60", "1600000", "3.0"),
		impact(domain.MetricRevenue, "1600000"),
		impact(domain.MetricStockOutRate, "3.0"),
		impact(domain.MetricUnitsSold, "50000"),
		impact(domain.MetricGrossMargin, "52.3"),
	)
	r2 := withImpacts(simResult("55", "1500000", "2.5"),
		impact(domain.MetricStockOutRate, "2.5"),
		impact(domain.MetricRevenue, "1500000"),
		impact(domain.MetricGrossMargin, "52.3"),
	)

	comparison := CompareScenarios(r1, r2)

	assert.Equal(t, WinnerScenario1, comparison.Winner)
	assert.True(t, comparison.ScoreDifference.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, []string{"Higher Revenue (1600000 vs 1500000)"}, comparison.Advantages.Scenario1)
	assert.Equal(t, []string{"Lower Stock-Out Rate (2.50 vs 3.00)"}, comparison.Advantages.Scenario2)
}

func TestCompareScenarios_Winner(t *testing.T) {
	tests := []struct {
		name     string
		score1   string
		score2   string
		expected Winner
	}{
		{"just under threshold", "51.99", "50", WinnerTie},
		{"at threshold", "52", "50", WinnerScenario1},
		{"negative at threshold", "50", "52", WinnerScenario2},
		{"second far ahead", "40", "70", WinnerScenario2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparison := CompareScenarios(simResult(tt.score1, "1", "1"), simResult(tt.score2, "1", "1"))
			assert.Equal(t, tt.expected, comparison.Winner)
		})
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	ce := NewCompareEngine(nil)

	comparison, r1, r2, err := ce.Compare(
		NamedScenario{Name: "Price Up", Parameters: []domain.ScenarioParameter{param(domain.ParamPriceAdjustment, "100", "110")}},
		NamedScenario{Name: "Flat"},
		nil,
	)
	require.NoError(t, err)
	assert.True(t, comparison.ScoreDifference.Equal(r1.Score.Sub(r2.Score)))

	_, _, _, err = ce.Compare(NamedScenario{Name: "Flat"}, NamedScenario{
		Name:       "Broken",
		Parameters: []domain.ScenarioParameter{param(domain.ParamBuyQuantity, "0", "1")},
	}, nil)
	assert.ErrorContains(t, err, "Broken")
}

func TestCompareEngine_RankScenarios(t *testing.T) {
	ce := NewCompareEngine(calculation.NewSimulationEngine())

	compSet, err := ce.RankScenarios(context.Background(), nil,
		NamedScenario{Name: "Baseline"},
		[]NamedScenario{
			{Name: "Price Up", Description: "raise price", Parameters: []domain.ScenarioParameter{param(domain.ParamPriceAdjustment, "100", "110")}},
			{Name: "Inventory Cut", Parameters: []domain.ScenarioParameter{param(domain.ParamInventoryLevel, "100", "70")}},
		})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 2)
	assert.Equal(t, "Price Up", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "raise price", compSet.AlternativeResults[0].Description)
	assert.Equal(t, "Inventory Cut", compSet.AlternativeResults[1].ScenarioName)
	assert.True(t, compSet.BaseResult.Score.Equal(decimal.NewFromInt(50)))

	for _, alt := range compSet.AlternativeResults {
		assert.True(t, alt.ScoreDiffFromBase.Equal(alt.Score.Sub(compSet.BaseResult.Score)))
	}
	assert.True(t, compSet.AlternativeResults[0].RevenueDiffFromBase.Equal(decimal.NewFromInt(120000)))

	assert.Contains(t, compSet.Recommendations, "Best Revenue: Price Up adds $120000 in projected revenue")
	for _, rec := range compSet.Recommendations {
		assert.NotContains(t, rec, "Lowest Stock-Outs")
	}
}

func TestCompareEngine_RankScenariosError(t *testing.T) {
	ce := NewCompareEngine(nil)

	_, err := ce.RankScenarios(context.Background(), nil, NamedScenario{Name: "Baseline"}, []NamedScenario{
		{Name: "Broken", Parameters: []domain.ScenarioParameter{param(domain.ParamPriceAdjustment, "0", "1")}},
	})
	assert.ErrorContains(t, err, "Broken")

	_, err = ce.RankScenarios(context.Background(), nil, NamedScenario{
		Name:       "Broken Base",
		Parameters: []domain.ScenarioParameter{param(domain.ParamPriceAdjustment, "0", "1")},
	}, nil)
	assert.ErrorContains(t, err, "base scenario")
}
