package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table ranking scenarios against a base
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("WHAT-IF SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.Source != "" {
		sb.WriteString(fmt.Sprintf("Source: %s\n", compSet.Source))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 25
	numWidth := 12

	// Table header
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Score",
		numWidth, "Confidence",
		numWidth, "Revenue",
		numWidth, "Stock-Out"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	// Base scenario row
	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	// Alternative scenarios
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Score:            %s%s points\n",
				tf.deltaSymbol(alt.ScoreDiffFromBase),
				alt.ScoreDiffFromBase.Abs().StringFixed(1)))

			sb.WriteString(fmt.Sprintf("  Revenue:          %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.RevenueDiffFromBase),
				tf.formatDecimal(alt.RevenueDiffFromBase.Abs()),
				alt.RevenuePctFromBase.StringFixed(1)))

			if !alt.StockOutDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Stock-Out Rate:   %s%s pts\n",
					tf.deltaSymbol(alt.StockOutDiffFromBase),
					alt.StockOutDiffFromBase.Abs().StringFixed(2)))
			}

			if alt.Winner != "" {
				sb.WriteString(fmt.Sprintf("  Versus Base:      %s\n", winnerText(alt.Winner, compSet.BaseScenarioName)))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatPair renders a two-way comparison
func (tf *TableFormatter) FormatPair(comparison *ScenarioComparison, name1, name2 string) string {
	var sb strings.Builder

	sb.WriteString("HEAD-TO-HEAD COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Scenario 1: %s\n", name1))
	sb.WriteString(fmt.Sprintf("Scenario 2: %s\n", name2))
	sb.WriteString(fmt.Sprintf("Score Difference: %s\n", signed(comparison.ScoreDifference, 2)))

	switch comparison.Winner {
	case WinnerScenario1:
		sb.WriteString(fmt.Sprintf("Winner: %s\n", name1))
	case WinnerScenario2:
		sb.WriteString(fmt.Sprintf("Winner: %s\n", name2))
	default:
		sb.WriteString("Winner: tie (scores within 2 points)\n")
	}

	writeAdvantages := func(name string, items []string) {
		sb.WriteString(fmt.Sprintf("\n%s ADVANTAGES\n", strings.ToUpper(name)))
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		if len(items) == 0 {
			sb.WriteString("  (none)\n")
			return
		}
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("• %s\n", item))
		}
	}
	writeAdvantages(name1, comparison.Advantages.Scenario1)
	writeAdvantages(name2, comparison.Advantages.Scenario2)

	return sb.String()
}

func winnerText(w Winner, base string) string {
	switch w {
	case WinnerScenario1:
		return "beats " + base
	case WinnerScenario2:
		return "trails " + base
	default:
		return "tie with " + base
	}
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.Score.StringFixed(1),
		numWidth, fmt.Sprintf("%d%%", result.ConfidenceLevel),
		numWidth, "$"+tf.formatDecimal(result.Revenue),
		numWidth, result.StockOutRate.StringFixed(2)+"%")
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		// Format in millions
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		// Format in thousands
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns the sign to print in front of an absolute delta
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		scoreChange := "="
		if !alt.ScoreDiffFromBase.IsZero() {
			scoreChange = signed(alt.ScoreDiffFromBase, 1)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, scoreChange))
	}

	return sb.String()
}
