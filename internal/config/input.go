package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/transform"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is the on-disk form of a what-if scenario
type ScenarioFile struct {
	Name        string                     `yaml:"name"`
	Description string                     `yaml:"description"`
	Baseline    *domain.MetricSet          `yaml:"baseline"`
	Preset      string                     `yaml:"preset"`
	Parameters  []domain.ScenarioParameter `yaml:"parameters"`
	Transforms  []string                   `yaml:"transforms"`
}

// Scenario is a scenario file with its preset and transforms resolved into a
// final, ordered parameter list
type Scenario struct {
	Name        string
	Description string
	Baseline    *domain.MetricSet
	Parameters  []domain.ScenarioParameter
	Source      string
}

// SensitivityFile is the on-disk form of engine tuning tables. Omitted sections and
// omitted keys keep the built-in defaults; profiles merge by name unless
// ReplaceProfiles is set. A tiers list replaces the default tiers.
type SensitivityFile struct {
	ReplaceProfiles bool                                 `yaml:"replace_profiles"`
	Profiles        map[string]domain.SensitivityProfile `yaml:"profiles"`
	Weights         calculation.ScoreWeights             `yaml:"weights"`
	Confidence      *calculation.ConfidencePolicy        `yaml:"confidence"`
	Significance    *calculation.SignificanceThresholds  `yaml:"significance"`
}

// InputParser handles parsing of scenario and sensitivity files
type InputParser struct {
	Presets    *transform.PresetRegistry
	Transforms *transform.TransformRegistry
}

// NewInputParser creates a new input parser with the built-in presets and transforms
func NewInputParser() *InputParser {
	return &InputParser{
		Presets:    transform.CreateBuiltInPresets(),
		Transforms: transform.NewTransformRegistry(),
	}
}

// LoadScenario loads a scenario from a YAML file
func (ip *InputParser) LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	scenario, err := ip.ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	scenario.Source = filename
	return scenario, nil
}

// ParseScenario parses scenario YAML. Baseline metrics left out of the file keep their
// default values.
func (ip *InputParser) ParseScenario(data []byte) (*Scenario, error) {
	baseline := domain.DefaultBaseline()
	file := ScenarioFile{Baseline: &baseline}

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return ip.Resolve(&file)
}

// Resolve expands the preset, appends the explicit parameters and applies transforms
func (ip *InputParser) Resolve(file *ScenarioFile) (*Scenario, error) {
	var params []domain.ScenarioParameter

	if file.Preset != "" {
		preset, ok := ip.Presets.Get(file.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", file.Preset, strings.Join(ip.Presets.Names(), ", "))
		}
		params = append(params, preset.Parameters...)
	}

	sets := make([]transform.ParameterTransform, 0, len(file.Parameters)+len(file.Transforms))
	for _, p := range file.Parameters {
		sets = append(sets, &transform.SetParameter{Parameter: p})
	}
	for i, spec := range file.Transforms {
		t, err := ip.Transforms.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("transform %d: %w", i, err)
		}
		sets = append(sets, t)
	}

	params, err := transform.ApplyTransforms(params, sets)
	if err != nil {
		return nil, err
	}

	name := file.Name
	if name == "" && file.Preset != "" {
		name = file.Preset
	}

	return &Scenario{
		Name:        name,
		Description: file.Description,
		Baseline:    file.Baseline,
		Parameters:  params,
	}, nil
}

// ValidateScenarioFile validates a parsed scenario file
func (ip *InputParser) ValidateScenarioFile(file *ScenarioFile) error {
	if file.Preset == "" && len(file.Parameters) == 0 && len(file.Transforms) == 0 {
		return fmt.Errorf("scenario must define a preset or at least one parameter")
	}

	seen := make(map[string]bool, len(file.Parameters))
	for i, p := range file.Parameters {
		if err := ip.validateParameter(p); err != nil {
			return fmt.Errorf("parameter %d (%s) validation failed: %w", i, p.Name, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("parameter %d (%s) is listed more than once", i, p.Name)
		}
		seen[p.Name] = true
	}

	if file.Baseline != nil {
		if err := ip.validateBaseline(file.Baseline); err != nil {
			return fmt.Errorf("baseline validation failed: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateParameter(p domain.ScenarioParameter) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.BaseValue.IsZero() {
		return fmt.Errorf("base_value: %w", domain.ErrZeroBaseValue)
	}
	return nil
}

func (ip *InputParser) validateBaseline(b *domain.MetricSet) error {
	for _, m := range domain.AllMetrics() {
		if b.Get(m).IsNegative() {
			return fmt.Errorf("%s cannot be negative, got %s", m, b.Get(m))
		}
	}
	return nil
}

// LoadSensitivity loads engine tables from a YAML file, layered over the defaults
func (ip *InputParser) LoadSensitivity(filename string) (calculation.Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return calculation.Config{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	cfg, err := ip.ParseSensitivity(data)
	if err != nil {
		return calculation.Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ParseSensitivity parses sensitivity YAML into an engine config
func (ip *InputParser) ParseSensitivity(data []byte) (calculation.Config, error) {
	// Seed the optional sections so a partial section only overrides the keys it sets
	policy := calculation.DefaultConfidencePolicy()
	thresholds := calculation.DefaultSignificanceThresholds()
	file := SensitivityFile{Confidence: &policy, Significance: &thresholds}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return calculation.Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := calculation.DefaultConfig()

	if file.ReplaceProfiles {
		cfg.Profiles = calculation.SensitivityTable{}
	}
	for name, profile := range file.Profiles {
		cfg.Profiles[name] = profile
	}
	if len(file.Weights) > 0 {
		cfg.Weights = file.Weights
	}
	if file.Confidence != nil {
		cfg.Confidence = *file.Confidence
	}
	if file.Significance != nil {
		cfg.Significance = *file.Significance
	}

	if err := cfg.Validate(); err != nil {
		return calculation.Config{}, fmt.Errorf("sensitivity validation failed: %w", err)
	}
	return cfg, nil
}

// DetectKind guesses whether a YAML document is a scenario or a sensitivity file
func DetectKind(data []byte) (string, error) {
	var probe map[string]interface{}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("failed to parse YAML: %w", err)
	}
	for _, key := range []string{"profiles", "weights", "confidence", "significance"} {
		if _, ok := probe[key]; ok {
			return "sensitivity", nil
		}
	}
	return "scenario", nil
}
