package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/whatif/internal/config"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/output"
	"github.com/rgehrsitz/whatif/internal/transform"
	"github.com/rgehrsitz/whatif/internal/watch"
)

// scenarioFlags are the ways a scenario can be described on the command line
type scenarioFlags struct {
	file       string
	preset     string
	name       string
	params     []string
	transforms []string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "Scenario YAML file")
	cmd.Flags().StringVar(&f.preset, "preset", "", "Built-in preset to start from (see 'whatif presets')")
	cmd.Flags().StringVar(&f.name, "name", "", "Scenario name for the report")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "Parameter as name:base:new[:label] (repeatable)")
	cmd.Flags().StringArrayVar(&f.transforms, "transform", nil, "Transform as name:key=value,... (repeatable)")
}

// set reports whether any scenario flag was given
func (f *scenarioFlags) set() bool {
	return f.file != "" || f.preset != "" || len(f.params) > 0 || len(f.transforms) > 0
}

// load resolves the flags into a scenario. Parameters and transforms given on the
// command line are applied on top of the file or preset.
func (f *scenarioFlags) load() (*config.Scenario, error) {
	parser := config.NewInputParser()

	params := make([]domain.ScenarioParameter, 0, len(f.params))
	for _, spec := range f.params {
		p, err := transform.ParseParameterSpec(spec)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}

	if f.file == "" {
		baseline := domain.DefaultBaseline()
		file := &config.ScenarioFile{
			Name:       f.name,
			Baseline:   &baseline,
			Preset:     f.preset,
			Parameters: params,
			Transforms: f.transforms,
		}
		if err := parser.ValidateScenarioFile(file); err != nil {
			return nil, fmt.Errorf("scenario validation failed: %w", err)
		}
		return parser.Resolve(file)
	}

	if f.preset != "" {
		return nil, fmt.Errorf("--preset cannot be combined with --file; set preset in the file instead")
	}
	scenario, err := parser.LoadScenario(f.file)
	if err != nil {
		return nil, err
	}

	overrides := make([]transform.ParameterTransform, 0, len(params)+len(f.transforms))
	for _, p := range params {
		overrides = append(overrides, &transform.SetParameter{Parameter: p})
	}
	for _, spec := range f.transforms {
		t, err := parser.Transforms.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, t)
	}
	if len(overrides) > 0 {
		scenario.Parameters, err = transform.ApplyTransforms(scenario.Parameters, overrides)
		if err != nil {
			return nil, err
		}
	}
	if f.name != "" {
		scenario.Name = f.name
	}
	return scenario, nil
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		sf       scenarioFlags
		watching bool
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate one scenario against the baseline",
		Example: `  whatif simulate --preset "Margin Protection"
  whatif simulate --param priceAdjustment:100:108:Price --param markdownTiming:4:6
  whatif simulate --file scenario.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watching && sf.file == "" {
				return fmt.Errorf("--watch requires --file")
			}
			if err := a.runSimulation(cmd, &sf, save); err != nil {
				return err
			}
			if !watching {
				return nil
			}
			return a.watchSimulation(cmd, &sf, save)
		},
	}

	sf.register(cmd)
	cmd.Flags().BoolVar(&watching, "watch", false, "Re-run whenever the scenario or sensitivity file changes")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func (a *app) runSimulation(cmd *cobra.Command, sf *scenarioFlags, save bool) error {
	scenario, err := sf.load()
	if err != nil {
		return err
	}
	engine, err := a.newEngine()
	if err != nil {
		return err
	}

	result, err := engine.Run(scenario.Parameters, scenario.Baseline)
	if err != nil {
		return err
	}
	a.logger.Info("simulation complete",
		zap.String("scenario", scenario.Name),
		zap.Int("parameters", len(scenario.Parameters)),
		zap.String("score", result.Score.StringFixed(2)),
		zap.Int("confidence", result.ConfidenceLevel))

	breakdown := engine.Breakdown(result)
	return a.render(cmd, output.NewSimulationReport(scenario.Name, scenario.Description, result, &breakdown), save)
}

// watchSimulation re-runs the simulation on every settled change until interrupted
func (a *app) watchSimulation(cmd *cobra.Command, sf *scenarioFlags, save bool) error {
	files := []string{sf.file}
	if a.settings.SensitivityFile != "" {
		files = append(files, a.settings.SensitivityFile)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	debounce := time.Duration(a.settings.WatchDebounceMS) * time.Millisecond
	fw, err := watch.NewFileWatcher(files, debounce, func(ctx context.Context, paths []string) {
		a.logger.Info("change detected, re-running", zap.Strings("paths", paths))
		if err := a.runSimulation(cmd, sf, save); err != nil {
			a.logger.Error("simulation failed", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	fw.SetLogger(a.logger.Sugar())

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d file(s), press Ctrl+C to stop\n", len(files))
	fw.Start(ctx)
	<-ctx.Done()

	stats := fw.Stats()
	a.logger.Debug("watch stopped", zap.Int("events", stats.Events), zap.Int("runs", stats.Triggers))
	return fw.Stop()
}
