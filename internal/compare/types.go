package compare

import (
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// Winner names the better of two compared scenarios
type Winner string

const (
	WinnerScenario1 Winner = "scenario1"
	WinnerScenario2 Winner = "scenario2"
	WinnerTie       Winner = "tie"
)

// Advantages lists, per scenario, the metrics where it strictly beats the other one
type Advantages struct {
	Scenario1 []string `json:"scenario1"`
	Scenario2 []string `json:"scenario2"`
}

// ScenarioComparison is the outcome of comparing two simulation results
type ScenarioComparison struct {
	Winner          Winner          `json:"winner"`
	ScoreDifference decimal.Decimal `json:"scoreDifference"`
	Advantages      Advantages      `json:"advantages"`
}

// ComparisonResult represents a single ranked scenario with its key metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Description  string                   `json:"description"`
	Result       *domain.SimulationResult `json:"-"`

	// Key Metrics
	Score           decimal.Decimal `json:"score"`
	ConfidenceLevel int             `json:"confidenceLevel"`
	Revenue         decimal.Decimal `json:"revenue"`
	GrossMargin     decimal.Decimal `json:"grossMargin"`
	SellThrough     decimal.Decimal `json:"sellThrough"`
	StockOutRate    decimal.Decimal `json:"stockOutRate"`
	RiskCount       int             `json:"riskCount"`

	// Comparison to Base
	ScoreDiffFromBase    decimal.Decimal `json:"scoreDiffFromBase"`
	RevenueDiffFromBase  decimal.Decimal `json:"revenueDiffFromBase"`
	RevenuePctFromBase   decimal.Decimal `json:"revenuePctFromBase"`
	StockOutDiffFromBase decimal.Decimal `json:"stockOutDiffFromBase"`
	Winner               Winner          `json:"winner"`
}

// ComparisonSet represents a collection of scenario comparisons against one base
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	Source             string             `json:"source"`
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a simulation result
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.SimulationResult) ComparisonResult {
	projected := result.Scenario.Projected
	return ComparisonResult{
		ScenarioName:    name,
		Result:          result,
		Score:           result.Score,
		ConfidenceLevel: result.ConfidenceLevel,
		Revenue:         projected.Revenue,
		GrossMargin:     projected.GrossMargin,
		SellThrough:     projected.SellThrough,
		StockOutRate:    projected.StockOutRate,
		RiskCount:       len(result.Risks),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ScoreDiffFromBase = scenario.Score.Sub(base.Score)
	scenario.RevenueDiffFromBase = scenario.Revenue.Sub(base.Revenue)

	if !base.Revenue.IsZero() {
		scenario.RevenuePctFromBase = scenario.RevenueDiffFromBase.
			Div(base.Revenue).
			Mul(decimal.NewFromInt(100))
	}

	scenario.StockOutDiffFromBase = scenario.StockOutRate.Sub(base.StockOutRate)

	if scenario.Result != nil && base.Result != nil {
		scenario.Winner = CompareScenarios(scenario.Result, base.Result).Winner
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Find best composite score
	bestScore := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Score.GreaterThan(bestScore.Score) {
			bestScore = alt
		}
	}

	if bestScore != compSet.BaseResult {
		recommendations = append(recommendations,
			"Best Score: "+bestScore.ScenarioName+" scores "+bestScore.Score.StringFixed(1)+
				" ("+signed(bestScore.Score.Sub(compSet.BaseResult.Score), 1)+" vs base)")
	}

	// Find best revenue
	bestRevenue := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Revenue.GreaterThan(bestRevenue.Revenue) {
			bestRevenue = alt
		}
	}

	if bestRevenue != compSet.BaseResult {
		revenueDiff := bestRevenue.Revenue.Sub(compSet.BaseResult.Revenue)
		recommendations = append(recommendations,
			"Best Revenue: "+bestRevenue.ScenarioName+" adds $"+revenueDiff.StringFixed(0)+
				" in projected revenue")
	}

	// Find lowest stock-out rate
	lowestStockOut := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.StockOutRate.LessThan(lowestStockOut.StockOutRate) {
			lowestStockOut = alt
		}
	}

	if lowestStockOut != compSet.BaseResult {
		recommendations = append(recommendations,
			"Lowest Stock-Outs: "+lowestStockOut.ScenarioName+" brings the stock-out rate to "+
				lowestStockOut.StockOutRate.StringFixed(2)+"%")
	}

	// Flag low confidence alternatives
	for _, alt := range compSet.AlternativeResults {
		if alt.ConfidenceLevel < 70 {
			recommendations = append(recommendations,
				fmt.Sprintf("Low Confidence: %s is only %d%% confident; validate its assumptions before acting",
					alt.ScenarioName, alt.ConfidenceLevel))
		}
	}

	return recommendations
}

func signed(d decimal.Decimal, places int32) string {
	if d.IsNegative() {
		return d.StringFixed(places)
	}
	return "+" + d.StringFixed(places)
}
