package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadScenario_ExplicitParameters(t *testing.T) {
	path := writeFile(t, "scenario.yaml", `
name: Price Test
description: Ten percent price increase
baseline:
  revenue: 2000000
  stock_out_rate: 4
parameters:
  - name: priceAdjustment
    label: Price
    base_value: 100
    new_value: 110
`)

	parser := NewInputParser()
	scenario, err := parser.LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "Price Test", scenario.Name)
	assert.Equal(t, path, scenario.Source)
	require.Len(t, scenario.Parameters, 1)
	assert.Equal(t, "Price", scenario.Parameters[0].Label)
	assert.True(t, scenario.Parameters[0].NewValue.Equal(decimal.NewFromInt(110)))

	// Metrics given in the file override the defaults; the rest keep them
	defaults := domain.DefaultBaseline()
	assert.True(t, scenario.Baseline.Revenue.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, scenario.Baseline.StockOutRate.Equal(decimal.NewFromInt(4)))
	assert.True(t, scenario.Baseline.GrossMargin.Equal(defaults.GrossMargin))
	assert.True(t, scenario.Baseline.UnitsSold.Equal(defaults.UnitsSold))
}

func TestParseScenario_PresetWithOverrideAndTransform(t *testing.T) {
	parser := NewInputParser()
	scenario, err := parser.ParseScenario([]byte(`
preset: margin_protection
parameters:
  - name: priceAdjustment
    base_value: 100
    new_value: 110
transforms:
  - "scale:parameter=categoryMix,factor=0.5"
  - "remove:parameter=markdownTiming"
`))
	require.NoError(t, err)

	assert.Equal(t, "margin_protection", scenario.Name)
	require.Len(t, scenario.Parameters, 2)

	price := scenario.Parameters[0]
	assert.Equal(t, domain.ParamPriceAdjustment, price.Name)
	assert.True(t, price.NewValue.Equal(decimal.NewFromInt(110)))

	mix := scenario.Parameters[1]
	assert.Equal(t, domain.ParamCategoryMix, mix.Name)
	assert.True(t, mix.NewValue.Equal(decimal.NewFromInt(105)), "got %s", mix.NewValue)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty scenario",
			yaml:    "name: nothing\n",
			wantErr: "must define a preset or at least one parameter",
		},
		{
			name: "zero base value",
			yaml: `
parameters:
  - name: priceAdjustment
    base_value: 0
    new_value: 10
`,
			wantErr: "parameter 0 (priceAdjustment) validation failed",
		},
		{
			name: "duplicate parameter",
			yaml: `
parameters:
  - name: priceAdjustment
    base_value: 100
    new_value: 105
  - name: priceAdjustment
    base_value: 100
    new_value: 110
`,
			wantErr: "listed more than once",
		},
		{
			name: "negative baseline",
			yaml: `
baseline:
  revenue: -5
parameters:
  - name: priceAdjustment
    base_value: 100
    new_value: 105
`,
			wantErr: "revenue cannot be negative",
		},
		{
			name:    "unknown preset",
			yaml:    "preset: clearance blowout\n",
			wantErr: `unknown preset "clearance blowout"`,
		},
		{
			name: "bad transform",
			yaml: `
preset: conservative
transforms:
  - "explode:parameter=priceAdjustment"
`,
			wantErr: "unknown transform: explode",
		},
		{
			name:    "malformed yaml",
			yaml:    "parameters: [",
			wantErr: "failed to parse YAML",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_ZeroBaseWrapsSentinel(t *testing.T) {
	_, err := NewInputParser().ParseScenario([]byte(`
parameters:
  - name: buyQuantity
    base_value: 0
    new_value: 100
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrZeroBaseValue)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParseSensitivity_MergesProfiles(t *testing.T) {
	cfg, err := NewInputParser().ParseSensitivity([]byte(`
profiles:
  loyaltyProgram:
    affects: [revenue, sellThrough]
    multipliers:
      revenue: 0.2
      sellThrough: 0.1
  priceAdjustment:
    affects: [revenue]
    multipliers:
      revenue: 0.5
`))
	require.NoError(t, err)

	loyalty, ok := cfg.Profiles.Lookup("loyaltyProgram")
	require.True(t, ok)
	assert.True(t, loyalty.Multiplier(domain.MetricRevenue).Equal(decimal.NewFromFloat(0.2)))

	price, ok := cfg.Profiles.Lookup(domain.ParamPriceAdjustment)
	require.True(t, ok)
	assert.Equal(t, []domain.Metric{domain.MetricRevenue}, price.AffectsMetrics)

	// Untouched defaults survive the merge
	_, ok = cfg.Profiles.Lookup(domain.ParamInventoryLevel)
	assert.True(t, ok)
}

func TestParseSensitivity_ReplaceProfilesAndWeights(t *testing.T) {
	cfg, err := NewInputParser().ParseSensitivity([]byte(`
replace_profiles: true
profiles:
  lever:
    affects: [revenue]
    multipliers:
      revenue: 1
weights:
  - metric: revenue
    weight: 1
    scale: 100
significance:
  step_high: 0.1
  step_medium: 0.05
  consolidated_high: 20
  consolidated_medium: 10
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"lever"}, cfg.Profiles.Names())
	require.Len(t, cfg.Weights, 1)
	assert.Equal(t, domain.MetricRevenue, cfg.Weights[0].Metric)
	assert.True(t, cfg.Significance.ConsolidatedHigh.Equal(decimal.NewFromInt(20)))
}

func TestParseSensitivity_PartialSectionsKeepDefaults(t *testing.T) {
	cfg, err := NewInputParser().ParseSensitivity([]byte(`
confidence:
  tiers:
    - threshold: 40
      penalty: 20
significance:
  step_high: 0.1
`))
	require.NoError(t, err)

	defaults := calculation.DefaultConfig()
	assert.Equal(t, defaults.Confidence.Start, cfg.Confidence.Start)
	assert.Equal(t, defaults.Confidence.Floor, cfg.Confidence.Floor)
	assert.Equal(t, defaults.Confidence.FreeParameters, cfg.Confidence.FreeParameters)
	require.Len(t, cfg.Confidence.Tiers, 1, "a tiers list replaces the default tiers")
	assert.Equal(t, 20, cfg.Confidence.Tiers[0].Penalty)

	assert.True(t, cfg.Significance.StepHigh.Equal(decimal.NewFromFloat(0.1)))
	assert.True(t, cfg.Significance.StepMedium.Equal(defaults.Significance.StepMedium))
	assert.True(t, cfg.Significance.ConsolidatedHigh.Equal(defaults.Significance.ConsolidatedHigh))
	assert.True(t, cfg.Significance.ConsolidatedMedium.Equal(defaults.Significance.ConsolidatedMedium))

	result, err := calculation.NewSimulationEngineWithConfig(cfg).Run([]domain.ScenarioParameter{{
		Name:      domain.ParamPriceAdjustment,
		BaseValue: decimal.NewFromInt(100),
		NewValue:  decimal.NewFromInt(101),
	}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 95, result.ConfidenceLevel)
}

func TestParseSensitivity_InvalidSections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero start", "confidence:\n  start: 0\n", "start 0"},
		{"negative floor", "confidence:\n  floor: -5\n", "floor -5"},
		{"zero medium", "significance:\n  step_medium: 0\n", "medium thresholds must be positive"},
		{"medium above high", "significance:\n  consolidated_medium: 20\n", "consolidated_medium 20 above"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().ParseSensitivity([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSensitivity_InvalidProfile(t *testing.T) {
	_, err := NewInputParser().ParseSensitivity([]byte(`
profiles:
  broken:
    affects: [revenue, footTraffic]
    multipliers:
      revenue: 1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sensitivity validation failed")
	assert.Contains(t, err.Error(), "unknown metric footTraffic")
}

func TestDetectKind(t *testing.T) {
	kind, err := DetectKind([]byte("profiles:\n  x: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "sensitivity", kind)

	kind, err = DetectKind([]byte("preset: conservative\n"))
	require.NoError(t, err)
	assert.Equal(t, "scenario", kind)
}
