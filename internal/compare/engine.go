package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var tieThreshold = decimal.NewFromInt(2)

// CompareScenarios compares two simulation results. Score differences under two points
// are a tie. Advantages are listed for every metric present in both impact lists where
// one scenario's projected value is strictly better.
func CompareScenarios(result1, result2 *domain.SimulationResult) ScenarioComparison {
	diff := result1.Score.Sub(result2.Score)

	winner := WinnerTie
	if diff.Abs().GreaterThanOrEqual(tieThreshold) {
		if diff.IsPositive() {
			winner = WinnerScenario1
		} else {
			winner = WinnerScenario2
		}
	}

	advantages := Advantages{Scenario1: []string{}, Scenario2: []string{}}
	for _, impact1 := range result1.Impacts {
		impact2, ok := result2.ImpactFor(impact1.Metric)
		if !ok {
			continue
		}

		v1, v2 := impact1.ProjectedValue, impact2.ProjectedValue
		if v1.Equal(v2) {
			continue
		}

		m := impact1.Metric
		oneBetter := v1.GreaterThan(v2)
		if m.LowerIsBetter() {
			oneBetter = v1.LessThan(v2)
		}

		if oneBetter {
			advantages.Scenario1 = append(advantages.Scenario1, advantageText(m, v1, v2))
		} else {
			advantages.Scenario2 = append(advantages.Scenario2, advantageText(m, v2, v1))
		}
	}

	return ScenarioComparison{
		Winner:          winner,
		ScoreDifference: diff,
		Advantages:      advantages,
	}
}

func advantageText(m domain.Metric, winning, losing decimal.Decimal) string {
	adjective := "Higher"
	if m.LowerIsBetter() {
		adjective = "Lower"
	}
	return fmt.Sprintf("%s %s (%s vs %s)", adjective, m.Label(), m.Format(winning), m.Format(losing))
}

// NamedScenario is a parameter bundle with a display name, such as a preset or a scenario file
type NamedScenario struct {
	Name        string
	Description string
	Parameters  []domain.ScenarioParameter
}

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	SimEngine         *calculation.SimulationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(simEngine *calculation.SimulationEngine) *CompareEngine {
	if simEngine == nil {
		simEngine = calculation.NewSimulationEngine()
	}
	return &CompareEngine{
		SimEngine:         simEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare runs two scenarios against the same baseline and compares them
func (ce *CompareEngine) Compare(first, second NamedScenario, baseline *domain.MetricSet) (*ScenarioComparison, *domain.SimulationResult, *domain.SimulationResult, error) {
	r1, err := ce.SimEngine.Run(first.Parameters, baseline)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to simulate %s: %w", first.Name, err)
	}
	r2, err := ce.SimEngine.Run(second.Parameters, baseline)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to simulate %s: %w", second.Name, err)
	}

	comparison := CompareScenarios(r1, r2)
	return &comparison, r1, r2, nil
}

// RankScenarios simulates the base and every alternative, then builds a comparison set
// with deltas from the base. Alternatives run concurrently; their order is preserved.
func (ce *CompareEngine) RankScenarios(
	ctx context.Context,
	baseline *domain.MetricSet,
	base NamedScenario,
	alternatives []NamedScenario,
) (*ComparisonSet, error) {

	baseSim, err := ce.SimEngine.Run(base.Parameters, baseline)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base.Name, baseSim)
	baseResult.Description = base.Description

	results := make([]ComparisonResult, len(alternatives))
	g, gctx := errgroup.WithContext(ctx)

	for i, alt := range alternatives {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sim, err := ce.SimEngine.Run(alt.Parameters, baseline)
			if err != nil {
				return fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
			}
			result := ce.MetricsCalculator.CalculateMetrics(alt.Name, sim)
			result.Description = alt.Description
			results[i] = ce.MetricsCalculator.CalculateComparison(result, baseResult)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
