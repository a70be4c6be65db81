package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/whatif/internal/compare"
	"github.com/rgehrsitz/whatif/internal/domain"
)

// CSVFormatter renders the tabular part of a report as CSV
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	switch report.Kind {
	case KindSimulation:
		if report.Simulation == nil || report.Simulation.Result == nil {
			return nil, fmt.Errorf("simulation report has no result")
		}
		return writeCSV(simulationRows(report.Simulation.Result))
	case KindComparison:
		if report.Comparison == nil || report.Comparison.Result1 == nil || report.Comparison.Result2 == nil {
			return nil, fmt.Errorf("comparison report has no results")
		}
		return writeCSV(pairRows(report.Comparison))
	case KindRanking:
		if report.Ranking == nil {
			return nil, fmt.Errorf("ranking report has no comparison set")
		}
		cf := &compare.CSVFormatter{}
		out, err := cf.Format(report.Ranking)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case KindSweep:
		if report.Sweep == nil {
			return nil, fmt.Errorf("sweep report has no result")
		}
		return writeCSV(sweepRows(report.Sweep))
	default:
		return nil, fmt.Errorf("unsupported report kind: %s", report.Kind)
	}
}

func writeCSV(rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func simulationRows(result *domain.SimulationResult) [][]string {
	rows := [][]string{{"Metric", "Baseline", "Projected", "Change", "Change %", "Significance", "Direction"}}
	for _, impact := range result.Impacts {
		rows = append(rows, []string{
			string(impact.Metric),
			impact.BaseValue.StringFixed(2),
			impact.ProjectedValue.StringFixed(2),
			impact.Change.StringFixed(2),
			impact.ChangePercent.StringFixed(2),
			string(impact.Significance),
			string(impact.Direction),
		})
	}
	rows = append(rows,
		[]string{"score", "", result.Score.StringFixed(2), "", "", "", ""},
		[]string{"confidence", "", strconv.Itoa(result.ConfidenceLevel), "", "", "", ""},
	)
	return rows
}

func pairRows(pair *PairReport) [][]string {
	rows := [][]string{{"Metric", pair.Name1, pair.Name2}}
	for _, m := range domain.AllMetrics() {
		rows = append(rows, []string{
			string(m),
			pair.Result1.Scenario.Projected.Get(m).StringFixed(2),
			pair.Result2.Scenario.Projected.Get(m).StringFixed(2),
		})
	}
	rows = append(rows,
		[]string{"score", pair.Result1.Score.StringFixed(2), pair.Result2.Score.StringFixed(2)},
		[]string{"confidence", strconv.Itoa(pair.Result1.ConfidenceLevel), strconv.Itoa(pair.Result2.ConfidenceLevel)},
	)
	if pair.Comparison != nil {
		rows = append(rows, []string{"winner", string(pair.Comparison.Winner), pair.Comparison.ScoreDifference.StringFixed(2)})
	}
	return rows
}

func sweepRows(sweep *domain.SweepResult) [][]string {
	header := []string{"New Value", "Change %", "Score", "Confidence", "Risks", "Best"}
	for _, m := range domain.AllMetrics() {
		header = append(header, string(m))
	}

	rows := [][]string{header}
	for i, pt := range sweep.Points {
		row := []string{
			pt.NewValue.StringFixed(4),
			pt.ChangePercent.StringFixed(2),
			pt.Score.StringFixed(2),
			strconv.Itoa(pt.ConfidenceLevel),
			strconv.Itoa(pt.RiskCount),
			strconv.FormatBool(i == sweep.BestIndex),
		}
		for _, m := range domain.AllMetrics() {
			row = append(row, pt.Projected.Get(m).StringFixed(2))
		}
		rows = append(rows, row)
	}
	return rows
}
