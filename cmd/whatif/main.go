package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/config"
	"github.com/rgehrsitz/whatif/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the state shared by every subcommand of one root command
type app struct {
	v        *viper.Viper
	envFile  string
	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "whatif",
		Short: "What-if scenario simulator for merchandise planning",
		Long: "Simulate how changes to price, markdown timing, inventory, receipts, buy quantity\n" +
			"and assortment mix propagate to merchandising metrics, then score, compare and\n" +
			"sweep scenarios.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("format", "f", "console", "Output format ("+formatHelp()+")")
	flags.String("sensitivity", "", "Sensitivity YAML overriding profiles, weights and thresholds")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Int("concurrency", 4, "Maximum concurrent simulations for sweeps")
	flags.Int("debounce-ms", 300, "Quiet period before a watched file change re-runs")
	flags.StringVar(&a.envFile, "env-file", ".env", "Environment file with WHATIF_* settings")
	for _, name := range []string{"format", "sensitivity", "debug", "concurrency", "debounce-ms"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(
		a.simulateCmd(),
		a.compareCmd(),
		a.sweepCmd(),
		a.breakevenCmd(),
		a.presetsCmd(),
		a.validateCmd(),
		versionCmd(),
	)
	return rootCmd
}

// setup loads settings and builds the logger before any subcommand runs
func (a *app) setup() error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}
	settings, err := config.LoadSettings(a.v)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := newLogger(settings.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("settings loaded",
		zap.String("format", settings.Format),
		zap.String("sensitivity", settings.SensitivityFile),
		zap.Int("concurrency", settings.SweepConcurrency))
	return nil
}

func newLogger(debugMode bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debugMode {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// newEngine builds a simulation engine from the sensitivity file, if any
func (a *app) newEngine() (*calculation.SimulationEngine, error) {
	cfg := calculation.DefaultConfig()
	if a.settings.SensitivityFile != "" {
		loaded, err := config.NewInputParser().LoadSensitivity(a.settings.SensitivityFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		a.logger.Info("sensitivity loaded", zap.String("path", a.settings.SensitivityFile))
	}

	engine := calculation.NewSimulationEngineWithConfig(cfg)
	engine.SetLogger(a.logger.Sugar())
	return engine, nil
}

// render formats a report and writes it to stdout, or to a timestamped file when save is set
func (a *app) render(cmd *cobra.Command, report *output.Report, save bool) error {
	f := output.GetFormatterByName(a.settings.Format)
	if f == nil {
		return fmt.Errorf("unsupported format %q (valid: %s)", a.settings.Format, formatHelp())
	}

	if save {
		filename, err := output.WriteFormatted(f, report, output.Extension(f))
		if err != nil {
			return err
		}
		a.logger.Info("report written", zap.String("path", filename), zap.String("run_id", report.RunID))
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func formatHelp() string {
	return strings.Join(output.AvailableFormatterNames(), ", ")
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "whatif %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
