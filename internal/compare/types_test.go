package compare

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

func simResult(score string, revenue, stockOut string) *domain.SimulationResult {
	projected := domain.DefaultBaseline()
	projected.Revenue = decimal.RequireFromString(revenue)
	projected.StockOutRate = decimal.RequireFromString(stockOut)
	return &domain.SimulationResult{
		Scenario:        domain.Scenario{Baseline: domain.DefaultBaseline(), Projected: projected},
		Score:           decimal.RequireFromString(score),
		ConfidenceLevel: 90,
		Risks:           []string{"one"},
	}
}

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	result := calc.CalculateMetrics("Test Scenario", simResult("61.5", "1620000", "2.9"))

	if result.ScenarioName != "Test Scenario" {
		t.Errorf("Expected scenario name 'Test Scenario', got %s", result.ScenarioName)
	}

	if !result.Score.Equal(decimal.RequireFromString("61.5")) {
		t.Errorf("Expected score 61.5, got %s", result.Score.String())
	}

	if !result.Revenue.Equal(decimal.NewFromInt(1620000)) {
		t.Errorf("Expected revenue 1620000, got %s", result.Revenue.String())
	}

	if result.ConfidenceLevel != 90 || result.RiskCount != 1 {
		t.Errorf("Expected confidence 90 and 1 risk, got %d and %d", result.ConfidenceLevel, result.RiskCount)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := calc.CalculateMetrics("Base", simResult("50", "1500000", "3.2"))
	alt := calc.CalculateMetrics("Alt", simResult("56", "1650000", "3.0"))

	result := calc.CalculateComparison(alt, base)

	if !result.ScoreDiffFromBase.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Expected score diff 6, got %s", result.ScoreDiffFromBase.String())
	}

	// (1650000 - 1500000) / 1500000 * 100 = 10
	if !result.RevenuePctFromBase.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected revenue pct 10, got %s", result.RevenuePctFromBase.String())
	}

	if !result.StockOutDiffFromBase.Equal(decimal.RequireFromString("-0.2")) {
		t.Errorf("Expected stock-out diff -0.2, got %s", result.StockOutDiffFromBase.String())
	}

	if result.Winner != WinnerScenario1 {
		t.Errorf("Expected alt to beat base, got %s", result.Winner)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	calc := NewMetricsCalculator()
	base := calc.CalculateMetrics("Base", simResult("50", "1500000", "3.2"))

	alt1 := calc.CalculateComparison(calc.CalculateMetrics("Alternative 1", simResult("58", "1550000", "3.2")), base)
	alt2 := calc.CalculateComparison(calc.CalculateMetrics("Alternative 2", simResult("54", "1700000", "2.5")), base)
	alt2.ConfidenceLevel = 60

	compSet := &ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt1, alt2},
	}

	recs := GenerateRecommendations(compSet)

	if len(recs) != 4 {
		t.Fatalf("Expected 4 recommendations, got %d: %v", len(recs), recs)
	}

	if !strings.Contains(recs[0], "Best Score: Alternative 1") || !strings.Contains(recs[0], "+8.0 vs base") {
		t.Errorf("Unexpected score recommendation: %s", recs[0])
	}

	if !strings.Contains(recs[1], "Best Revenue: Alternative 2 adds $200000") {
		t.Errorf("Unexpected revenue recommendation: %s", recs[1])
	}

	if !strings.Contains(recs[2], "Lowest Stock-Outs: Alternative 2") {
		t.Errorf("Unexpected stock-out recommendation: %s", recs[2])
	}

	if !strings.Contains(recs[3], "Low Confidence: Alternative 2") {
		t.Errorf("Unexpected confidence recommendation: %s", recs[3])
	}
}

func TestGenerateRecommendations_EmptyAlternatives(t *testing.T) {
	base := NewMetricsCalculator().CalculateMetrics("Base", simResult("50", "1500000", "3.2"))
	compSet := &ComparisonSet{BaseScenarioName: "Base", BaseResult: &base}

	recs := GenerateRecommendations(compSet)

	if recs == nil || len(recs) != 0 {
		t.Errorf("Expected empty recommendations, got %v", recs)
	}
}

func TestGenerateRecommendations_NoBetterThanBase(t *testing.T) {
	calc := NewMetricsCalculator()
	base := calc.CalculateMetrics("Base", simResult("60", "1600000", "2.0"))
	worse := calc.CalculateComparison(calc.CalculateMetrics("Worse", simResult("40", "1400000", "4.0")), base)

	recs := GenerateRecommendations(&ComparisonSet{
		BaseScenarioName:   "Base",
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{worse},
	})

	if len(recs) != 0 {
		t.Errorf("Expected no recommendations when base is best, got %v", recs)
	}
}
