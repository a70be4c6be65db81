package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultSweepConcurrency = 4

// SensitivityAnalyzer sweeps one parameter across a range on top of a fixed set of
// other parameters
type SensitivityAnalyzer struct {
	engine *SimulationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *SimulationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewSimulationEngine()
	}
	return &SensitivityAnalyzer{engine: engine}
}

// Sweep runs one simulation per sweep value. The swept parameter is appended after
// the fixed parameters, replacing any fixed parameter with the same name. Points keep
// the order of the generated values regardless of concurrency.
func (sa *SensitivityAnalyzer) Sweep(ctx context.Context, spec domain.SweepSpec, fixed []domain.ScenarioParameter, baseline *domain.MetricSet) (*domain.SweepResult, error) {
	if spec.Parameter == "" {
		return nil, fmt.Errorf("sweep parameter name is required")
	}
	if spec.BaseValue.IsZero() {
		return nil, NewInvalidParameterError(spec.Parameter, len(fixed), "sweep base value", domain.ErrZeroBaseValue)
	}
	if spec.MaxValue.LessThan(spec.MinValue) {
		return nil, fmt.Errorf("sweep %s: max value %s below min value %s", spec.Parameter, spec.MaxValue, spec.MinValue)
	}
	if _, ok := sa.engine.config.Profiles.Lookup(spec.Parameter); !ok {
		sa.engine.Logger.Warnf("sweep parameter %q has no sensitivity profile; every point will match the fixed scenario", spec.Parameter)
	}

	values := spec.Values()
	points := make([]domain.SweepPoint, len(values))
	others := withoutParameter(fixed, spec.Parameter)

	concurrency := spec.Concurrency
	if concurrency <= 0 {
		concurrency = defaultSweepConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, value := range values {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			swept := domain.ScenarioParameter{
				Name:      spec.Parameter,
				Label:     spec.Label,
				BaseValue: spec.BaseValue,
				NewValue:  value,
			}
			params := append(append(make([]domain.ScenarioParameter, 0, len(others)+1), others...), swept)

			result, err := sa.engine.Run(params, baseline)
			if err != nil {
				return fmt.Errorf("sweep %s=%s: %w", spec.Parameter, value, err)
			}

			changePct, _ := swept.ChangePercent()
			points[i] = domain.SweepPoint{
				NewValue:        value,
				ChangePercent:   changePct,
				Score:           result.Score,
				ConfidenceLevel: result.ConfidenceLevel,
				Projected:       result.Scenario.Projected,
				RiskCount:       len(result.Risks),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sweep := &domain.SweepResult{Spec: spec, Points: points}
	summarizeSweep(sweep)
	return sweep, nil
}

func withoutParameter(params []domain.ScenarioParameter, name string) []domain.ScenarioParameter {
	out := make([]domain.ScenarioParameter, 0, len(params))
	for _, p := range params {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}

// summarizeSweep picks the best point and writes a short textual summary.
// The first point wins ties.
func summarizeSweep(sr *domain.SweepResult) {
	sr.BestIndex = -1
	sr.Summary = []string{}
	if len(sr.Points) == 0 {
		return
	}

	minScore, maxScore := sr.Points[0].Score, sr.Points[0].Score
	sr.BestIndex = 0
	for i, p := range sr.Points {
		if p.Score.GreaterThan(sr.Points[sr.BestIndex].Score) {
			sr.BestIndex = i
		}
		if p.Score.LessThan(minScore) {
			minScore = p.Score
		}
		if p.Score.GreaterThan(maxScore) {
			maxScore = p.Score
		}
	}
	sr.ScoreRange = maxScore.Sub(minScore)

	best := sr.Points[sr.BestIndex]
	sr.Summary = append(sr.Summary, fmt.Sprintf("Best score %s at %s = %s (%s%% change)",
		best.Score.StringFixed(1), sr.Spec.Parameter, best.NewValue.String(), best.ChangePercent.StringFixed(1)))

	switch {
	case sr.ScoreRange.GreaterThan(decimal.NewFromInt(10)):
		sr.Summary = append(sr.Summary, fmt.Sprintf("Score is highly sensitive to %s (range %s points)", sr.Spec.Parameter, sr.ScoreRange.StringFixed(1)))
	case sr.ScoreRange.GreaterThan(decimal.NewFromInt(2)):
		sr.Summary = append(sr.Summary, fmt.Sprintf("Score is moderately sensitive to %s (range %s points)", sr.Spec.Parameter, sr.ScoreRange.StringFixed(1)))
	default:
		sr.Summary = append(sr.Summary, fmt.Sprintf("Score is largely insensitive to %s across this range", sr.Spec.Parameter))
	}
}
