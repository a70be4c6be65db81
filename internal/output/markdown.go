package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/whatif/internal/compare"
	"github.com/rgehrsitz/whatif/internal/domain"
)

// MarkdownFormatter renders reports as GitHub-flavored markdown
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}

	switch report.Kind {
	case KindSimulation:
		if report.Simulation == nil || report.Simulation.Result == nil {
			return nil, fmt.Errorf("simulation report has no result")
		}
		markdownSimulation(buf, report.Simulation)
	case KindComparison:
		if report.Comparison == nil || report.Comparison.Comparison == nil {
			return nil, fmt.Errorf("comparison report has no comparison")
		}
		markdownPair(buf, report.Comparison)
	case KindRanking:
		if report.Ranking == nil {
			return nil, fmt.Errorf("ranking report has no comparison set")
		}
		markdownRanking(buf, report.Ranking)
	case KindSweep:
		if report.Sweep == nil {
			return nil, fmt.Errorf("sweep report has no result")
		}
		markdownSweep(buf, report.Sweep)
	default:
		return nil, fmt.Errorf("unsupported report kind: %s", report.Kind)
	}

	fmt.Fprintf(buf, "\n_Run %s, generated %s_\n", report.RunID, report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	return buf.Bytes(), nil
}

func markdownSimulation(buf *bytes.Buffer, sim *SimulationReport) {
	result := sim.Result
	name := sim.Name
	if name == "" {
		name = "Scenario"
	}

	fmt.Fprintf(buf, "# What-If Simulation: %s\n\n", name)
	if sim.Description != "" {
		fmt.Fprintf(buf, "%s\n\n", sim.Description)
	}
	fmt.Fprintf(buf, "**Score:** %s / 100 | **Confidence:** %d%%\n\n", result.Score.StringFixed(2), result.ConfidenceLevel)

	fmt.Fprintln(buf, "## Parameters")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "| Parameter | Base | New | Change |")
	fmt.Fprintln(buf, "|---|---:|---:|---:|")
	for _, p := range result.Scenario.Parameters {
		fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", p.DisplayLabel(), p.BaseValue, p.NewValue, parameterChange(p))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "## Impacts")
	fmt.Fprintln(buf)
	if len(result.Impacts) == 0 {
		fmt.Fprintln(buf, "No metrics affected.")
	} else {
		fmt.Fprintln(buf, "| Metric | Baseline | Projected | Change | Change % | Significance |")
		fmt.Fprintln(buf, "|---|---:|---:|---:|---:|---|")
		for _, impact := range result.Impacts {
			fmt.Fprintf(buf, "| %s | %s | %s | %s | %s | %s |\n",
				impact.Label,
				impact.Metric.Format(impact.BaseValue),
				impact.Metric.Format(impact.ProjectedValue),
				formatSigned(impact.Metric, impact.Change),
				FormatPercentage(impact.ChangePercent),
				impact.Significance)
		}
	}
	fmt.Fprintln(buf)

	if sim.Breakdown != nil {
		fmt.Fprintln(buf, "## Score Breakdown")
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "| Metric | Weight | Metric Score | Contribution |")
		fmt.Fprintln(buf, "|---|---:|---:|---:|")
		for _, c := range sim.Breakdown.Components {
			if c.Skipped {
				fmt.Fprintf(buf, "| %s | %s | skipped | - |\n", c.Metric.Label(), c.Weight)
				continue
			}
			fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", c.Metric.Label(), c.Weight, c.MetricScore.StringFixed(2), c.Contribution.StringFixed(2))
		}
		fmt.Fprintln(buf)
	}

	markdownList(buf, "Risks", result.Risks)
	markdownList(buf, "Recommendations", result.Recommendations)
}

func markdownPair(buf *bytes.Buffer, pair *PairReport) {
	comparison := pair.Comparison
	fmt.Fprintf(buf, "# %s vs %s\n\n", pair.Name1, pair.Name2)

	switch comparison.Winner {
	case compare.WinnerScenario1:
		fmt.Fprintf(buf, "**Winner:** %s (score difference %s)\n\n", pair.Name1, comparison.ScoreDifference.StringFixed(2))
	case compare.WinnerScenario2:
		fmt.Fprintf(buf, "**Winner:** %s (score difference %s)\n\n", pair.Name2, comparison.ScoreDifference.StringFixed(2))
	default:
		fmt.Fprintf(buf, "**Winner:** tie (score difference %s)\n\n", comparison.ScoreDifference.StringFixed(2))
	}

	if pair.Result1 != nil && pair.Result2 != nil {
		fmt.Fprintf(buf, "| Metric | %s | %s |\n", pair.Name1, pair.Name2)
		fmt.Fprintln(buf, "|---|---:|---:|")
		fmt.Fprintf(buf, "| Score | %s | %s |\n", pair.Result1.Score.StringFixed(2), pair.Result2.Score.StringFixed(2))
		fmt.Fprintf(buf, "| Confidence | %d%% | %d%% |\n", pair.Result1.ConfidenceLevel, pair.Result2.ConfidenceLevel)
		for _, m := range domain.AllMetrics() {
			fmt.Fprintf(buf, "| %s | %s | %s |\n", m.Label(),
				m.Format(pair.Result1.Scenario.Projected.Get(m)),
				m.Format(pair.Result2.Scenario.Projected.Get(m)))
		}
		fmt.Fprintln(buf)
	}

	markdownList(buf, pair.Name1+" Advantages", comparison.Advantages.Scenario1)
	markdownList(buf, pair.Name2+" Advantages", comparison.Advantages.Scenario2)
}

func markdownRanking(buf *bytes.Buffer, set *compare.ComparisonSet) {
	fmt.Fprintf(buf, "# Scenario Ranking vs %s\n\n", set.BaseScenarioName)
	fmt.Fprintln(buf, "| Scenario | Score | vs Base | Confidence | Revenue | Stock-Out % | Risks |")
	fmt.Fprintln(buf, "|---|---:|---:|---:|---:|---:|---:|")

	rows := make([]compare.ComparisonResult, 0, len(set.AlternativeResults)+1)
	if set.BaseResult != nil {
		rows = append(rows, *set.BaseResult)
	}
	rows = append(rows, set.AlternativeResults...)

	for i, r := range rows {
		delta := signedFixed(r.ScoreDiffFromBase, 2)
		if i == 0 && set.BaseResult != nil {
			delta = "base"
		}
		fmt.Fprintf(buf, "| %s | %s | %s | %d%% | %s | %s | %d |\n",
			r.ScenarioName,
			r.Score.StringFixed(2),
			delta,
			r.ConfidenceLevel,
			domain.MetricRevenue.Format(r.Revenue),
			r.StockOutRate.StringFixed(2),
			r.RiskCount)
	}
	fmt.Fprintln(buf)

	markdownList(buf, "Recommendations", set.Recommendations)
}

func markdownSweep(buf *bytes.Buffer, sweep *domain.SweepResult) {
	spec := sweep.Spec
	fmt.Fprintf(buf, "# Sensitivity Sweep: %s\n\n", sweepLabel(spec))
	fmt.Fprintf(buf, "Base value %s, swept from %s to %s in %d steps.\n\n", spec.BaseValue, spec.MinValue, spec.MaxValue, len(sweep.Points))

	fmt.Fprintln(buf, "| New Value | Change % | Score | Confidence | Revenue | Risks |")
	fmt.Fprintln(buf, "|---:|---:|---:|---:|---:|---:|")
	for i, pt := range sweep.Points {
		score := pt.Score.StringFixed(2)
		if i == sweep.BestIndex {
			score = "**" + score + "**"
		}
		fmt.Fprintf(buf, "| %s | %s | %s | %d%% | %s | %d |\n",
			pt.NewValue.StringFixed(2),
			FormatPercentage(pt.ChangePercent),
			score,
			pt.ConfidenceLevel,
			domain.MetricRevenue.Format(pt.Projected.Revenue),
			pt.RiskCount)
	}
	fmt.Fprintln(buf)

	markdownList(buf, "Summary", sweep.Summary)
}

func markdownList(buf *bytes.Buffer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(buf, "- %s\n", item)
	}
	fmt.Fprintln(buf)
}

// PrettyFormatter renders the markdown report for a terminal through glamour
type PrettyFormatter struct {
	// Style is a glamour standard style name; empty picks one from the terminal
	Style    string
	WordWrap int
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(report *Report) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(report)
	if err != nil {
		return nil, err
	}

	wrap := p.WordWrap
	if wrap <= 0 {
		wrap = 100
	}
	styleOpt := glamour.WithAutoStyle()
	if p.Style != "" {
		styleOpt = glamour.WithStandardStyle(p.Style)
	}

	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
