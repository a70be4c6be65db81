package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/compare"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceParam(newValue int64) domain.ScenarioParameter {
	return domain.ScenarioParameter{
		Name:      domain.ParamPriceAdjustment,
		Label:     "Price Adjustment",
		BaseValue: decimal.NewFromInt(100),
		NewValue:  decimal.NewFromInt(newValue),
	}
}

func buildSimulationReport(t *testing.T) *Report {
	t.Helper()
	engine := calculation.NewSimulationEngine()
	result, err := engine.Run([]domain.ScenarioParameter{priceParam(110)}, nil)
	require.NoError(t, err)
	bd := engine.Breakdown(result)
	return NewSimulationReport("Price Test", "Ten percent increase", result, &bd)
}

func buildComparisonReport(t *testing.T) *Report {
	t.Helper()
	ce := compare.NewCompareEngine(nil)
	cmp, r1, r2, err := ce.Compare(
		compare.NamedScenario{Name: "Hold", Parameters: []domain.ScenarioParameter{priceParam(100)}},
		compare.NamedScenario{Name: "Raise", Parameters: []domain.ScenarioParameter{priceParam(110)}},
		nil,
	)
	require.NoError(t, err)
	return NewComparisonReport("Hold", "Raise", cmp, r1, r2)
}

func buildRankingReport(t *testing.T) *Report {
	t.Helper()
	ce := compare.NewCompareEngine(nil)
	set, err := ce.RankScenarios(context.Background(), nil,
		compare.NamedScenario{Name: "Base", Parameters: []domain.ScenarioParameter{priceParam(100)}},
		[]compare.NamedScenario{
			{Name: "Raise", Parameters: []domain.ScenarioParameter{priceParam(110)}},
			{Name: "Cut", Parameters: []domain.ScenarioParameter{priceParam(90)}},
		},
	)
	require.NoError(t, err)
	return NewRankingReport(set)
}

func buildSweepReport(t *testing.T) *Report {
	t.Helper()
	sa := calculation.NewSensitivityAnalyzer(nil)
	sweep, err := sa.Sweep(context.Background(), domain.SweepSpec{
		Parameter: domain.ParamPriceAdjustment,
		Label:     "Price",
		BaseValue: decimal.NewFromInt(100),
		MinValue:  decimal.NewFromInt(90),
		MaxValue:  decimal.NewFromInt(110),
		Steps:     5,
	}, nil, nil)
	require.NoError(t, err)
	return NewSweepReport(sweep)
}

func TestNewReport_Envelope(t *testing.T) {
	r1 := buildSimulationReport(t)
	r2 := buildSimulationReport(t)

	assert.Equal(t, KindSimulation, r1.Kind)
	_, err := uuid.Parse(r1.RunID)
	assert.NoError(t, err, "RunID should be a UUID")
	assert.NotEqual(t, r1.RunID, r2.RunID, "each report gets its own run ID")
	assert.False(t, r1.GeneratedAt.IsZero())
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(r *Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := f.Format(buildSimulationReport(t))
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "test output", string(out))
	assert.Equal(t, "test-formatter", f.Name())
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	f := FormatterFunc{ID: "test", F: func(r *Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(f, buildSimulationReport(t), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "whatif_simulation_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "broken", F: func(r *Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err := WriteFormatted(f, buildSimulationReport(t), "txt")
	require.Error(t, err)
	assert.Empty(t, filename)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "markdown", GetFormatterByName("md").Name())
	assert.Equal(t, "console", GetFormatterByName("text").Name())
	assert.Nil(t, GetFormatterByName("html"))

	assert.Equal(t, []string{"console", "csv", "json", "markdown", "pretty"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "glamour")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "json", Extension(JSONFormatter{}))
	assert.Equal(t, "md", Extension(MarkdownFormatter{}))
	assert.Equal(t, "txt", Extension(ConsoleFormatter{}))
}

func TestConsoleFormatter_Simulation(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildSimulationReport(t))
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "WHAT-IF SIMULATION: Price Test")
	assert.Contains(t, content, "Price Adjustment")
	assert.Contains(t, content, "+10.00%")
	assert.Contains(t, content, "Units Sold")
	assert.Contains(t, content, "SCORE:")
	assert.Contains(t, content, "RISKS")
	assert.Contains(t, content, "price increase may reduce unit demand")
}

func TestConsoleFormatter_AllKinds(t *testing.T) {
	tests := []struct {
		name   string
		report *Report
		want   []string
	}{
		{"comparison", buildComparisonReport(t), []string{"HEAD-TO-HEAD COMPARISON", "PROJECTED METRICS", "Hold", "Raise"}},
		{"ranking", buildRankingReport(t), []string{"WHAT-IF SCENARIO COMPARISON", "Raise", "Cut"}},
		{"sweep", buildSweepReport(t), []string{"SENSITIVITY SWEEP: PRICE", "Best score"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ConsoleFormatter{}.Format(tt.report)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, string(out), want)
			}
		})
	}
}

func TestFormatters_RejectEmptyPayload(t *testing.T) {
	empty := &Report{Kind: KindSimulation}
	for _, name := range AvailableFormatterNames() {
		if name == "json" {
			continue
		}
		_, err := GetFormatterByName(name).Format(empty)
		assert.Error(t, err, name)
	}

	_, err := ConsoleFormatter{}.Format(&Report{Kind: "mystery"})
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	report := buildSimulationReport(t)
	out, err := JSONFormatter{Pretty: true}.Format(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, report.RunID, decoded["runId"])
	assert.Equal(t, "simulation", decoded["kind"])
	assert.Contains(t, decoded, "simulation")
	assert.NotContains(t, decoded, "sweep")
}

func TestCSVFormatter_Simulation(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildSimulationReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(records), 3)
	assert.Equal(t, "Metric", records[0][0])
	assert.Equal(t, "unitsSold", records[1][0])
	assert.Equal(t, "confidence", records[len(records)-1][0])
}

func TestCSVFormatter_Sweep(t *testing.T) {
	report := buildSweepReport(t)
	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 6)
	assert.Len(t, records[0], 6+len(domain.AllMetrics()))

	best := 0
	for _, rec := range records[1:] {
		if rec[5] == "true" {
			best++
		}
	}
	assert.Equal(t, 1, best, "exactly one best point")
}

func TestCSVFormatter_ComparisonAndRanking(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildComparisonReport(t))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Metric,Hold,Raise")
	assert.Contains(t, string(out), "winner,")

	out, err = CSVFormatter{}.Format(buildRankingReport(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "Scenario,Type,Score"))
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(buildSimulationReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "# What-If Simulation: Price Test")
	assert.Contains(t, content, "| Metric | Baseline | Projected | Change | Change % | Significance |")
	assert.Contains(t, content, "## Score Breakdown")
	assert.Contains(t, content, "## Recommendations")

	out, err = MarkdownFormatter{}.Format(buildRankingReport(t))
	require.NoError(t, err)
	assert.Contains(t, string(out), "# Scenario Ranking vs Base")
	assert.Contains(t, string(out), "| Base |")
}

func TestPrettyFormatter(t *testing.T) {
	out, err := PrettyFormatter{Style: "notty", WordWrap: 120}.Format(buildSimulationReport(t))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Price Test")
	assert.Contains(t, string(out), "Units Sold")
}

func TestFormatCurrencyAndPercentage(t *testing.T) {
	assert.Equal(t, "$1500000", FormatCurrency(decimal.NewFromInt(1500000)))
	assert.Equal(t, "-$250", FormatCurrency(decimal.NewFromInt(-250)))
	assert.Equal(t, "+4.00%", FormatPercentage(decimal.NewFromInt(4)))
	assert.Equal(t, "-1.50%", FormatPercentage(decimal.NewFromFloat(-1.5)))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}
