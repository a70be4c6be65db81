package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder
	req := result.Request

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Parameter:    %s\n", req.displayLabel()))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", tf.describeGoal(req)))
	sb.WriteString(fmt.Sprintf("Search Range: %s to %s (base %s)\n", req.Constraints.MinValue, req.Constraints.MaxValue, req.BaseValue))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLUTION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("New Value:    %s (%s)\n", result.OptimalValue.StringFixed(2), signedPercent(result.ChangePercent)))
	if req.Goal != GoalMaximizeScore {
		sb.WriteString(fmt.Sprintf("%-13s %s (target %s, off by %s)\n",
			req.Metric.Label()+":",
			req.Metric.Format(result.MetricValue),
			req.Metric.Format(result.TargetValue),
			tf.formatDelta(result.MetricValue.Sub(result.TargetValue))))
	}
	sb.WriteString(fmt.Sprintf("Score:        %s / 100\n", result.Score.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Confidence:   %d%%\n", result.ConfidenceLevel))
	if len(req.Fixed) > 0 {
		sb.WriteString(fmt.Sprintf("Held Fixed:   %d other parameter(s)\n", len(req.Fixed)))
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatMulti formats one result per parameter as a summary table
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS: ALL PARAMETERS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if result.Goal == GoalMaximizeScore {
		sb.WriteString("Goal: maximize composite score\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Goal: %s reaches target\n\n", result.Metric.Label()))
	}

	sb.WriteString(fmt.Sprintf("%-22s %12s %10s %14s %8s %6s\n", "Parameter", "New Value", "Change", "Metric", "Score", "Iter"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range result.Results {
		metric := "-"
		if result.Goal != GoalMaximizeScore {
			metric = result.Metric.Format(r.MetricValue)
		}
		sb.WriteString(fmt.Sprintf("%-22s %12s %10s %14s %8s %6d\n",
			tf.truncate(r.Request.displayLabel(), 22),
			r.OptimalValue.StringFixed(2),
			signedPercent(r.ChangePercent),
			metric,
			r.Score.StringFixed(2),
			r.Iterations))
	}
	for _, name := range result.Unreachable {
		sb.WriteString(fmt.Sprintf("%-22s %12s\n", tf.truncate(name, 22), "unreachable"))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single result or a MultiResult
func (jf *JSONFormatter) Format(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) describeGoal(req Request) string {
	switch req.Goal {
	case GoalBreakEven:
		return fmt.Sprintf("%s back to baseline", req.Metric.Label())
	case GoalMatchTarget:
		return fmt.Sprintf("%s reaches %s", req.Metric.Label(), req.Metric.Format(*req.Target))
	default:
		return "maximize composite score"
	}
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(4)
	}
	return d.StringFixed(4)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
