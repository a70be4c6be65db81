package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Score",
		"Confidence",
		"Revenue",
		"Gross Margin",
		"Sell-Through",
		"Stock-Out Rate",
		"Risks",
		"Score Diff from Base",
		"Revenue Diff from Base",
		"Revenue % Change",
		"Stock-Out Diff from Base",
		"Versus Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	// Write alternative scenarios
	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Score.StringFixed(2),
		formatInt(result.ConfidenceLevel),
		result.Revenue.StringFixed(2),
		result.GrossMargin.StringFixed(2),
		result.SellThrough.StringFixed(2),
		result.StockOutRate.StringFixed(2),
		formatInt(result.RiskCount),
		result.ScoreDiffFromBase.StringFixed(2),
		result.RevenueDiffFromBase.StringFixed(2),
		result.RevenuePctFromBase.StringFixed(2),
		result.StockOutDiffFromBase.StringFixed(2),
		string(result.Winner),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
