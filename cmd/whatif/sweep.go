package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/output"
)

func (a *app) sweepCmd() *cobra.Command {
	var (
		fixed     scenarioFlags
		parameter string
		label     string
		base      string
		minValue  string
		maxValue  string
		steps     int
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep one parameter across a range and score every point",
		Long: "Sweep runs one simulation per value of the swept parameter, holding any other\n" +
			"scenario parameters fixed, and reports the best-scoring point.",
		Example: `  whatif sweep --sweep priceAdjustment --base 100 --min 90 --max 110 --steps 9
  whatif sweep --sweep markdownTiming --base 4 --min 2 --max 8 --steps 7 --preset conservative`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := domain.SweepSpec{
				Parameter:   parameter,
				Label:       label,
				Steps:       steps,
				Concurrency: a.settings.SweepConcurrency,
			}
			var err error
			if spec.BaseValue, err = parseDecimalFlag("base", base); err != nil {
				return err
			}
			if spec.MinValue, err = parseDecimalFlag("min", minValue); err != nil {
				return err
			}
			if spec.MaxValue, err = parseDecimalFlag("max", maxValue); err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}

			var (
				params   []domain.ScenarioParameter
				baseline *domain.MetricSet
			)
			if fixed.set() {
				scenario, err := fixed.load()
				if err != nil {
					return err
				}
				params, baseline = scenario.Parameters, scenario.Baseline
			}

			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			result, err := calculation.NewSensitivityAnalyzer(engine).Sweep(cmd.Context(), spec, params, baseline)
			if err != nil {
				return err
			}

			if best, ok := result.Best(); ok {
				a.logger.Info("sweep complete",
					zap.String("parameter", spec.Parameter),
					zap.Int("points", len(result.Points)),
					zap.String("best_value", best.NewValue.String()),
					zap.String("best_score", best.Score.StringFixed(2)))
			}
			return a.render(cmd, output.NewSweepReport(result), save)
		},
	}

	fixed.register(cmd)
	cmd.Flags().StringVar(&parameter, "sweep", "", "Parameter to sweep, e.g. priceAdjustment")
	cmd.Flags().StringVar(&label, "label", "", "Display label for the swept parameter")
	cmd.Flags().StringVar(&base, "base", "100", "Base value of the swept parameter")
	cmd.Flags().StringVar(&minValue, "min", "", "Lowest new value")
	cmd.Flags().StringVar(&maxValue, "max", "", "Highest new value")
	cmd.Flags().IntVar(&steps, "steps", 11, "Number of evenly spaced values from min to max")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	_ = cmd.MarkFlagRequired("sweep")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}

func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s value %q: %w", name, value, err)
	}
	return d, nil
}
