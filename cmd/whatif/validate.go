package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/whatif/internal/config"
	"github.com/rgehrsitz/whatif/internal/transform"
)

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in scenario presets and transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if a.settings.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(parser.Presets.List())
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetPresetHelp(parser.Presets))
			fmt.Fprintf(out, "\nTransforms: %s\n", strings.Join(parser.Transforms.List(), ", "))
			fmt.Fprintln(out, "  whatif simulate --preset conservative --transform scale:parameter=priceAdjustment,factor=0.5")
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a scenario or sensitivity file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			data, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", inputFile, err)
			}

			kind, err := config.DetectKind(data)
			if err != nil {
				return fmt.Errorf("%s: %w", inputFile, err)
			}

			parser := config.NewInputParser()
			switch kind {
			case "sensitivity":
				cfg, err := parser.ParseSensitivity(data)
				if err != nil {
					return fmt.Errorf("%s: %w", inputFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sensitivity file %s is valid (%d profiles, %d weights)\n",
					inputFile, len(cfg.Profiles), len(cfg.Weights))
			default:
				scenario, err := parser.ParseScenario(data)
				if err != nil {
					return fmt.Errorf("%s: %w", inputFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d parameters)\n", inputFile, len(scenario.Parameters))
			}
			a.logger.Debug("file validated", zap.String("path", inputFile), zap.String("kind", kind))
			return nil
		},
	}
}
