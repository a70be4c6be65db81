package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver searches one parameter's range for a break-even point or the best score
type Solver struct {
	Engine  *calculation.SimulationEngine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.SimulationEngine, options SolverOptions) *Solver {
	if engine == nil {
		engine = calculation.NewSimulationEngine()
	}
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.SimulationEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve runs one search based on the request's goal
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Goal {
	case GoalBreakEven, GoalMatchTarget:
		return s.solveTarget(ctx, req)
	default:
		return s.maximizeScore(ctx, req)
	}
}

// evaluate simulates the fixed parameters plus the solved parameter at value
func (s *Solver) evaluate(req Request, value decimal.Decimal) (*domain.SimulationResult, error) {
	params := make([]domain.ScenarioParameter, 0, len(req.Fixed)+1)
	for _, p := range req.Fixed {
		if p.Name != req.Parameter {
			params = append(params, p)
		}
	}
	params = append(params, domain.ScenarioParameter{
		Name:      req.Parameter,
		Label:     req.Label,
		BaseValue: req.BaseValue,
		NewValue:  value,
	})

	result, err := s.Engine.Run(params, req.Baseline)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "evaluate",
			Message:   fmt.Sprintf("failed to simulate %s=%s", req.Parameter, value),
			Cause:     err,
		}
	}
	return result, nil
}

// targetValue is the metric value the search aims for
func targetValue(req Request) decimal.Decimal {
	if req.Goal == GoalMatchTarget {
		return *req.Target
	}
	baseline := domain.DefaultBaseline()
	if req.Baseline != nil {
		baseline = *req.Baseline
	}
	return baseline.Get(req.Metric)
}

// solveTarget bisects the constraint range for the value where the metric hits the
// target. Each profile scales a metric linearly with the change percent, so the metric
// is monotonic in the solved value and a sign change brackets the answer.
func (s *Solver) solveTarget(ctx context.Context, req Request) (*Result, error) {
	target := targetValue(req)
	gap := func(r *domain.SimulationResult) decimal.Decimal {
		return r.Scenario.Projected.Get(req.Metric).Sub(target)
	}

	lo, hi := req.Constraints.MinValue, req.Constraints.MaxValue
	loRes, err := s.evaluate(req, lo)
	if err != nil {
		return nil, err
	}
	hiRes, err := s.evaluate(req, hi)
	if err != nil {
		return nil, err
	}
	iterations := 2

	loGap, hiGap := gap(loRes), gap(hiRes)
	if loGap.Abs().LessThanOrEqual(req.Tolerance) {
		return newResult(req, lo, loRes, target, iterations, true, "Target met at the lower bound"), nil
	}
	if hiGap.Abs().LessThanOrEqual(req.Tolerance) {
		return newResult(req, hi, hiRes, target, iterations, true, "Target met at the upper bound"), nil
	}
	if loGap.Sign() == hiGap.Sign() {
		return nil, &BreakEvenError{
			Operation: "solve_target",
			Message: fmt.Sprintf("%s stays between %s and %s for %s in [%s, %s], target %s",
				req.Metric.Label(),
				req.Metric.Format(loRes.Scenario.Projected.Get(req.Metric)),
				req.Metric.Format(hiRes.Scenario.Projected.Get(req.Metric)),
				req.displayLabel(), lo, hi, req.Metric.Format(target)),
			Cause: ErrUnreachable,
		}
	}

	var (
		mid    decimal.Decimal
		midRes *domain.SimulationResult
	)
	for iterations < req.MaxIterations {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		iterations++
		mid = lo.Add(hi).Div(two)
		midRes, err = s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}

		midGap := gap(midRes)
		if midGap.Abs().LessThanOrEqual(req.Tolerance) {
			info := fmt.Sprintf("Converged within %s of target", req.Tolerance)
			return newResult(req, mid, midRes, target, iterations, true, info), nil
		}

		// Keep the half whose ends still straddle the target
		if midGap.Sign() == loGap.Sign() {
			lo, loGap = mid, midGap
		} else {
			hi = mid
		}
	}

	if midRes == nil {
		return nil, &BreakEvenError{
			Operation: "solve_target",
			Message:   fmt.Sprintf("max iterations (%d) leaves no room to search after bracketing", req.MaxIterations),
		}
	}
	info := fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return newResult(req, mid, midRes, target, iterations, false, info), nil
}

// maximizeScore runs a coarse grid over the range and a second grid around the best
// point. Ties keep the lower value.
func (s *Solver) maximizeScore(ctx context.Context, req Request) (*Result, error) {
	points := s.Options.GridResolution
	if points < 2 {
		points = 2
	}

	lo, hi := req.Constraints.MinValue, req.Constraints.MaxValue
	var (
		bestValue  decimal.Decimal
		bestResult *domain.SimulationResult
		step       decimal.Decimal
		iterations int
	)

	for pass := 0; pass < 2; pass++ {
		grid := domain.SweepSpec{MinValue: lo, MaxValue: hi, Steps: points}
		for _, value := range grid.Values() {
			if iterations >= req.MaxIterations {
				break
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			result, err := s.evaluate(req, value)
			if err != nil {
				return nil, err
			}
			iterations++
			if bestResult == nil || result.Score.GreaterThan(bestResult.Score) {
				bestValue, bestResult = value, result
			}
		}

		step = hi.Sub(lo).Div(decimal.NewFromInt(int64(points - 1)))
		lo = decimal.Max(req.Constraints.MinValue, bestValue.Sub(step))
		hi = decimal.Min(req.Constraints.MaxValue, bestValue.Add(step))
	}

	if bestResult == nil {
		return nil, &BreakEvenError{Operation: "maximize_score", Message: "no points evaluated"}
	}
	info := fmt.Sprintf("Grid search refined to steps of %s", step.StringFixed(4))
	return newResult(req, bestValue, bestResult, decimal.Zero, iterations, true, info), nil
}

func newResult(req Request, value decimal.Decimal, sim *domain.SimulationResult, target decimal.Decimal, iterations int, success bool, info string) *Result {
	solved := domain.ScenarioParameter{Name: req.Parameter, BaseValue: req.BaseValue, NewValue: value}
	pct, _ := solved.ChangePercent()

	r := &Result{
		Request:         req,
		Success:         success,
		Iterations:      iterations,
		ConvergenceInfo: info,
		OptimalValue:    value,
		ChangePercent:   pct,
		Score:           sim.Score,
		ConfidenceLevel: sim.ConfidenceLevel,
		Simulation:      sim,
	}
	if req.Goal != GoalMaximizeScore {
		r.TargetValue = target
		r.MetricValue = sim.Scenario.Projected.Get(req.Metric)
	}
	return r
}
