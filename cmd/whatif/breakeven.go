package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/whatif/internal/breakeven"
	"github.com/rgehrsitz/whatif/internal/domain"
)

func (a *app) breakevenCmd() *cobra.Command {
	var (
		fixed    scenarioFlags
		solve    string
		goal     string
		metric   string
		target   string
		base     string
		minValue string
		maxValue string
	)

	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the parameter value that restores or reaches a metric",
		Long: "Breakeven searches one parameter's range, or every built-in parameter's range,\n" +
			"for the value where a metric returns to baseline, reaches a target, or where the\n" +
			"composite score peaks. Other scenario parameters are held fixed.",
		Example: `  whatif breakeven --preset conservative --metric grossMargin
  whatif breakeven --solve priceAdjustment --goal match_target --metric revenue --target 1650000
  whatif breakeven --goal maximize_score --solve inventoryLevel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := breakeven.ParseGoal(goal)
			if err != nil {
				return err
			}
			m, err := domain.ParseMetric(metric)
			if err != nil {
				return err
			}
			req := breakeven.Request{Goal: g, Metric: m}
			if g == breakeven.GoalMaximizeScore {
				req.Metric = ""
			}
			if target != "" {
				t, err := parseDecimalFlag("target", target)
				if err != nil {
					return err
				}
				req.Target = &t
			}

			if fixed.set() {
				scenario, err := fixed.load()
				if err != nil {
					return err
				}
				req.Fixed, req.Baseline = scenario.Parameters, scenario.Baseline
			}

			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			opts := breakeven.DefaultSolverOptions()
			opts.Concurrency = a.settings.SweepConcurrency
			solver := breakeven.NewSolver(engine, opts)

			if solve == "" {
				mr, err := solver.SolveAll(cmd.Context(), req, breakeven.DefaultRanges())
				if err != nil {
					return err
				}
				a.logger.Info("break-even solved for all parameters",
					zap.String("goal", string(g)),
					zap.Int("solved", len(mr.Results)),
					zap.Strings("unreachable", mr.Unreachable))
				return a.renderBreakEven(cmd, mr, func() string { return (&breakeven.TableFormatter{}).FormatMulti(mr) })
			}

			pr, err := solveRange(cmd, solve, base, minValue, maxValue)
			if err != nil {
				return err
			}
			result, err := solver.Solve(cmd.Context(), req.ForRange(pr))
			if err != nil {
				return err
			}
			a.logger.Info("break-even solved",
				zap.String("parameter", pr.Name),
				zap.String("value", result.OptimalValue.StringFixed(4)),
				zap.Int("iterations", result.Iterations),
				zap.Bool("converged", result.Success))
			return a.renderBreakEven(cmd, result, func() string { return (&breakeven.TableFormatter{}).Format(result) })
		},
	}

	fixed.register(cmd)
	cmd.Flags().StringVar(&solve, "solve", "", "Parameter to solve for; omit to solve every built-in parameter")
	cmd.Flags().StringVar(&goal, "goal", string(breakeven.GoalBreakEven), "break_even, match_target or maximize_score")
	cmd.Flags().StringVar(&metric, "metric", string(domain.MetricGrossMargin), "Metric the goal is measured on")
	cmd.Flags().StringVar(&target, "target", "", "Target metric value for match_target")
	cmd.Flags().StringVar(&base, "base", "", "Base value of the solved parameter (defaults to its built-in range)")
	cmd.Flags().StringVar(&minValue, "min", "", "Lowest value the solver may try")
	cmd.Flags().StringVar(&maxValue, "max", "", "Highest value the solver may try")
	return cmd
}

// solveRange starts from the built-in range for name and applies any flag overrides.
// Parameters without a built-in range need all three flags.
func solveRange(cmd *cobra.Command, name, base, minValue, maxValue string) (breakeven.ParameterRange, error) {
	pr, ok := breakeven.FindRange(name)
	if !ok {
		if base == "" || minValue == "" || maxValue == "" {
			return pr, fmt.Errorf("parameter %q has no built-in range; set --base, --min and --max", name)
		}
		pr.Name = name
	}

	overrides := []struct {
		flag  string
		value string
		dst   *decimal.Decimal
	}{
		{"base", base, &pr.BaseValue},
		{"min", minValue, &pr.Constraints.MinValue},
		{"max", maxValue, &pr.Constraints.MaxValue},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		d, err := parseDecimalFlag(o.flag, o.value)
		if err != nil {
			return pr, err
		}
		*o.dst = d
	}
	return pr, nil
}

// renderBreakEven prints JSON when the json format is selected and the console table otherwise
func (a *app) renderBreakEven(cmd *cobra.Command, v interface{}, table func() string) error {
	if a.settings.Format != "json" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), table())
		return err
	}
	out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
