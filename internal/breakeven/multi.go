package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// SolveAll runs the same request against every range. Ranges whose target cannot be
// reached are listed in Unreachable instead of failing the whole run. Results keep the
// order of ranges.
func (s *Solver) SolveAll(ctx context.Context, base Request, ranges []ParameterRange) (*MultiResult, error) {
	if len(ranges) == 0 {
		return nil, &BreakEvenError{Operation: "solve_all", Message: "no parameter ranges given"}
	}

	solved := make([]*Result, len(ranges))
	unreachable := make([]bool, len(ranges))

	limit := s.Options.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, pr := range ranges {
		g.Go(func() error {
			result, err := s.Solve(gctx, base.ForRange(pr))
			if errors.Is(err, ErrUnreachable) {
				unreachable[i] = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", pr.Name, err)
			}
			solved[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mr := &MultiResult{Goal: base.Goal}
	if base.Goal != GoalMaximizeScore {
		mr.Metric = base.Metric
	}
	for i, r := range solved {
		if unreachable[i] {
			mr.Unreachable = append(mr.Unreachable, ranges[i].Name)
			continue
		}
		mr.Results = append(mr.Results, *r)
	}

	if len(mr.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no parameter reaches the target within its range",
			Cause:     ErrUnreachable,
		}
	}

	mr.Recommendations = generateRecommendations(mr)
	return mr, nil
}

// generateRecommendations points at the smallest move for target goals and the
// highest score for maximize goals
func generateRecommendations(mr *MultiResult) []string {
	var recommendations []string

	switch mr.Goal {
	case GoalMaximizeScore:
		best := 0
		for i, r := range mr.Results {
			if r.Score.GreaterThan(mr.Results[best].Score) {
				best = i
			}
		}
		r := mr.Results[best]
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest score: %s at %s (%s) scores %s",
			r.Request.displayLabel(), r.OptimalValue.StringFixed(2), signedPercent(r.ChangePercent), r.Score.StringFixed(2)))

	default:
		smallest := 0
		for i, r := range mr.Results {
			if r.ChangePercent.Abs().LessThan(mr.Results[smallest].ChangePercent.Abs()) {
				smallest = i
			}
		}
		r := mr.Results[smallest]
		recommendations = append(recommendations, fmt.Sprintf(
			"Smallest move to reach %s %s: %s to %s (%s)",
			mr.Metric.Label(), mr.Metric.Format(r.TargetValue),
			r.Request.displayLabel(), r.OptimalValue.StringFixed(2), signedPercent(r.ChangePercent)))

		for _, r := range mr.Results {
			if !r.Success {
				recommendations = append(recommendations, fmt.Sprintf(
					"%s did not converge; treat %s as approximate", r.Request.displayLabel(), r.OptimalValue.StringFixed(2)))
			}
		}
	}

	if len(mr.Unreachable) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%d parameter(s) cannot reach the target within their range on their own", len(mr.Unreachable)))
	}
	return recommendations
}

func signedPercent(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}
