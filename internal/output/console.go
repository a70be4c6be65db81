package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/compare"
	"github.com/rgehrsitz/whatif/internal/domain"
)

// ConsoleFormatter renders reports as plain-text tables
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}

	switch report.Kind {
	case KindSimulation:
		if report.Simulation == nil || report.Simulation.Result == nil {
			return nil, fmt.Errorf("simulation report has no result")
		}
		writeSimulation(buf, report.Simulation)
	case KindComparison:
		if report.Comparison == nil || report.Comparison.Comparison == nil {
			return nil, fmt.Errorf("comparison report has no comparison")
		}
		tf := &compare.TableFormatter{}
		buf.WriteString(tf.FormatPair(report.Comparison.Comparison, report.Comparison.Name1, report.Comparison.Name2))
		writeSideBySide(buf, report.Comparison)
	case KindRanking:
		if report.Ranking == nil {
			return nil, fmt.Errorf("ranking report has no comparison set")
		}
		tf := &compare.TableFormatter{}
		buf.WriteString(tf.Format(report.Ranking))
	case KindSweep:
		if report.Sweep == nil {
			return nil, fmt.Errorf("sweep report has no result")
		}
		writeSweep(buf, report.Sweep)
	default:
		return nil, fmt.Errorf("unsupported report kind: %s", report.Kind)
	}

	fmt.Fprintf(buf, "\nRun %s at %s\n", report.RunID, report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	return buf.Bytes(), nil
}

func writeSimulation(buf *bytes.Buffer, sim *SimulationReport) {
	result := sim.Result

	title := "WHAT-IF SIMULATION"
	if sim.Name != "" {
		title += ": " + sim.Name
	}
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	if sim.Description != "" {
		fmt.Fprintln(buf, sim.Description)
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "PARAMETERS")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	if len(result.Scenario.Parameters) == 0 {
		fmt.Fprintln(buf, "  (none)")
	}
	for _, p := range result.Scenario.Parameters {
		fmt.Fprintf(buf, "  %-28s %12s -> %-12s %s\n", p.DisplayLabel(), p.BaseValue, p.NewValue, parameterChange(p))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "PROJECTED IMPACTS")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	if len(result.Impacts) == 0 {
		fmt.Fprintln(buf, "  No metrics affected")
	} else {
		fmt.Fprintf(buf, "  %-20s %14s %14s %14s %9s  %s\n", "Metric", "Baseline", "Projected", "Change", "Change %", "Significance")
		for _, impact := range result.Impacts {
			fmt.Fprintf(buf, "  %-20s %14s %14s %14s %9s  %s\n",
				impact.Label,
				impact.Metric.Format(impact.BaseValue),
				impact.Metric.Format(impact.ProjectedValue),
				formatSigned(impact.Metric, impact.Change),
				FormatPercentage(impact.ChangePercent),
				impact.Significance)
		}
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "SCORE: %s / 100    CONFIDENCE: %d%%\n", result.Score.StringFixed(2), result.ConfidenceLevel)
	if sim.Breakdown != nil {
		writeBreakdown(buf, sim.Breakdown)
	}
	fmt.Fprintln(buf)

	writeBullets(buf, "RISKS", result.Risks)
	writeBullets(buf, "RECOMMENDATIONS", result.Recommendations)
}

func writeBreakdown(buf *bytes.Buffer, bd *calculation.ScoreBreakdown) {
	for _, c := range bd.Components {
		if c.Skipped {
			fmt.Fprintf(buf, "  %-20s skipped (zero baseline)\n", c.Metric.Label())
			continue
		}
		fmt.Fprintf(buf, "  %-20s weight %-5s score %7s  contributes %6s\n",
			c.Metric.Label(), c.Weight.String(), c.MetricScore.StringFixed(2), c.Contribution.StringFixed(2))
	}
}

func writeBullets(buf *bytes.Buffer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	for _, item := range items {
		fmt.Fprintf(buf, "• %s\n", item)
	}
	fmt.Fprintln(buf)
}

func writeSideBySide(buf *bytes.Buffer, pair *PairReport) {
	if pair.Result1 == nil || pair.Result2 == nil {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "PROJECTED METRICS")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	fmt.Fprintf(buf, "  %-20s %18s %18s\n", "Metric", truncateName(pair.Name1, 18), truncateName(pair.Name2, 18))
	for _, m := range domain.AllMetrics() {
		fmt.Fprintf(buf, "  %-20s %18s %18s\n", m.Label(),
			m.Format(pair.Result1.Scenario.Projected.Get(m)),
			m.Format(pair.Result2.Scenario.Projected.Get(m)))
	}
	fmt.Fprintf(buf, "  %-20s %18s %18s\n", "Score", pair.Result1.Score.StringFixed(2), pair.Result2.Score.StringFixed(2))
	fmt.Fprintf(buf, "  %-20s %17d%% %17d%%\n", "Confidence", pair.Result1.ConfidenceLevel, pair.Result2.ConfidenceLevel)
}

func writeSweep(buf *bytes.Buffer, sweep *domain.SweepResult) {
	spec := sweep.Spec
	fmt.Fprintf(buf, "SENSITIVITY SWEEP: %s\n", strings.ToUpper(sweepLabel(spec)))
	fmt.Fprintln(buf, strings.Repeat("=", 80))
	fmt.Fprintf(buf, "Base Value: %s   Range: %s to %s (%d steps)\n\n", spec.BaseValue, spec.MinValue, spec.MaxValue, len(sweep.Points))

	fmt.Fprintf(buf, "  %-12s %9s %8s %11s %14s %7s\n", "New Value", "Change %", "Score", "Confidence", "Revenue", "Risks")
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 66))
	for i, pt := range sweep.Points {
		marker := " "
		if i == sweep.BestIndex {
			marker = "*"
		}
		fmt.Fprintf(buf, "%s %-12s %9s %8s %10d%% %14s %7d\n",
			marker,
			pt.NewValue.StringFixed(2),
			FormatPercentage(pt.ChangePercent),
			pt.Score.StringFixed(2),
			pt.ConfidenceLevel,
			domain.MetricRevenue.Format(pt.Projected.Revenue),
			pt.RiskCount)
	}
	fmt.Fprintln(buf)

	for _, line := range sweep.Summary {
		fmt.Fprintf(buf, "• %s\n", line)
	}
}

func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
