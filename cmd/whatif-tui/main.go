package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/config"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/tui"
)

func newRootCmd() *cobra.Command {
	var (
		sensitivityFile string
		baselineFile    string
		logFile         string
	)

	cmd := &cobra.Command{
		Use:          "whatif-tui",
		Short:        "Interactive what-if scenario simulator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the TUI, so logs only go to a file when asked
			logger := zap.NewNop()
			if logFile != "" {
				cfg := zap.NewDevelopmentConfig()
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
				cfg.OutputPaths = []string{logFile}
				cfg.ErrorOutputPaths = []string{logFile}
				l, err := cfg.Build()
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				logger = l
			}
			defer func() { _ = logger.Sync() }()

			opts, err := buildOptions(sensitivityFile, baselineFile)
			if err != nil {
				return err
			}
			opts.Engine.SetLogger(logger.Sugar())

			p := tea.NewProgram(
				tui.NewModel(opts),
				tea.WithAltScreen(), // Use alternate screen buffer
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sensitivityFile, "sensitivity", "", "Sensitivity YAML overriding profiles, weights and thresholds")
	cmd.Flags().StringVar(&baselineFile, "baseline", "", "Scenario YAML whose baseline metrics seed the simulator")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write debug logs to this file")
	return cmd
}

// buildOptions loads the optional sensitivity and baseline files into TUI options
func buildOptions(sensitivityFile, baselineFile string) (tui.Options, error) {
	parser := config.NewInputParser()

	cfg := calculation.DefaultConfig()
	if sensitivityFile != "" {
		loaded, err := parser.LoadSensitivity(sensitivityFile)
		if err != nil {
			return tui.Options{}, err
		}
		cfg = loaded
	}

	var baseline *domain.MetricSet
	if baselineFile != "" {
		scenario, err := parser.LoadScenario(baselineFile)
		if err != nil {
			return tui.Options{}, err
		}
		baseline = scenario.Baseline
	}

	return tui.Options{
		Engine:   calculation.NewSimulationEngineWithConfig(cfg),
		Baseline: baseline,
		Presets:  parser.Presets.List(),
	}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
