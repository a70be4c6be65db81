package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/whatif/internal/compare"
	"github.com/rgehrsitz/whatif/internal/config"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/output"
	"github.com/rgehrsitz/whatif/internal/transform"
)

// currentPlanName names the unchanged scenario that --all-presets ranks against
const currentPlanName = "Current Plan"

func (a *app) compareCmd() *cobra.Command {
	var (
		presets    []string
		files      []string
		allPresets bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare scenarios head to head or rank them against a base",
		Long: "With two scenarios, compare them head to head. With more, the first is the base\n" +
			"and the rest are ranked against it. --all-presets ranks every built-in preset\n" +
			"against the unchanged plan.",
		Example: `  whatif compare --preset aggressive_growth --preset conservative
  whatif compare --file plan_a.yaml --file plan_b.yaml --format markdown
  whatif compare --all-presets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, baseline, err := collectScenarios(presets, files)
			if err != nil {
				return err
			}

			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(engine)

			if allPresets {
				base := compare.NamedScenario{Name: currentPlanName, Description: "No parameter changes"}
				return a.rank(cmd, ce, baseline, base, append(scenarios, presetScenarios(transform.GetScenarioPresets())...), save)
			}

			switch {
			case len(scenarios) < 2:
				return fmt.Errorf("compare needs at least two scenarios (got %d); use --preset, --file or --all-presets", len(scenarios))
			case len(scenarios) == 2:
				first, second := scenarios[0], scenarios[1]
				cmp, r1, r2, err := ce.Compare(first, second, baseline)
				if err != nil {
					return err
				}
				a.logger.Info("comparison complete",
					zap.String("first", first.Name),
					zap.String("second", second.Name),
					zap.String("winner", string(cmp.Winner)))
				return a.render(cmd, output.NewComparisonReport(first.Name, second.Name, cmp, r1, r2), save)
			default:
				return a.rank(cmd, ce, baseline, scenarios[0], scenarios[1:], save)
			}
		},
	}

	cmd.Flags().StringArrayVar(&presets, "preset", nil, "Built-in preset to include (repeatable or comma-separated)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "Scenario YAML file to include (repeatable)")
	cmd.Flags().BoolVar(&allPresets, "all-presets", false, "Rank every built-in preset against the unchanged plan")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func (a *app) rank(cmd *cobra.Command, ce *compare.CompareEngine, baseline *domain.MetricSet, base compare.NamedScenario, alts []compare.NamedScenario, save bool) error {
	set, err := ce.RankScenarios(cmd.Context(), baseline, base, alts)
	if err != nil {
		return err
	}
	a.logger.Info("ranking complete",
		zap.String("base", base.Name),
		zap.Int("alternatives", len(alts)),
		zap.String("summary", (&compare.TableFormatter{}).FormatCompact(set)))
	return a.render(cmd, output.NewRankingReport(set), save)
}

// collectScenarios loads presets, then files, in flag order. The baseline comes from
// the first file; without files the default baseline is used.
func collectScenarios(presetNames, files []string) ([]compare.NamedScenario, *domain.MetricSet, error) {
	parser := config.NewInputParser()
	var (
		scenarios []compare.NamedScenario
		baseline  *domain.MetricSet
	)

	for _, list := range presetNames {
		for _, name := range transform.ParsePresetList(list) {
			p, ok := parser.Presets.Get(name)
			if !ok {
				return nil, nil, fmt.Errorf("unknown preset %q (see 'whatif presets')", name)
			}
			scenarios = append(scenarios, presetScenarios([]domain.Preset{p})...)
		}
	}

	for _, file := range files {
		s, err := parser.LoadScenario(file)
		if err != nil {
			return nil, nil, err
		}
		if baseline == nil {
			baseline = s.Baseline
		}
		name := s.Name
		if name == "" {
			name = file
		}
		scenarios = append(scenarios, compare.NamedScenario{Name: name, Description: s.Description, Parameters: s.Parameters})
	}

	return scenarios, baseline, nil
}

func presetScenarios(presets []domain.Preset) []compare.NamedScenario {
	out := make([]compare.NamedScenario, 0, len(presets))
	for _, p := range presets {
		out = append(out, compare.NamedScenario{Name: p.Name, Description: p.Description, Parameters: p.Parameters})
	}
	return out
}
