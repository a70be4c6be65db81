package output

import (
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/compare"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// ReportKind says which payload a Report carries
type ReportKind string

const (
	KindSimulation ReportKind = "simulation"
	KindComparison ReportKind = "comparison"
	KindRanking    ReportKind = "ranking"
	KindSweep      ReportKind = "sweep"
)

// SimulationReport is a single scenario run with its score explanation
type SimulationReport struct {
	Name        string                      `json:"name"`
	Description string                      `json:"description,omitempty"`
	Result      *domain.SimulationResult    `json:"result"`
	Breakdown   *calculation.ScoreBreakdown `json:"breakdown,omitempty"`
}

// PairReport is a head-to-head comparison of two scenarios
type PairReport struct {
	Name1      string                      `json:"name1"`
	Name2      string                      `json:"name2"`
	Comparison *compare.ScenarioComparison `json:"comparison"`
	Result1    *domain.SimulationResult    `json:"result1"`
	Result2    *domain.SimulationResult    `json:"result2"`
}

// Report is the envelope every formatter renders. Exactly one payload is set,
// matching Kind.
type Report struct {
	RunID       string     `json:"runId"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Kind        ReportKind `json:"kind"`

	Simulation *SimulationReport      `json:"simulation,omitempty"`
	Comparison *PairReport            `json:"comparison,omitempty"`
	Ranking    *compare.ComparisonSet `json:"ranking,omitempty"`
	Sweep      *domain.SweepResult    `json:"sweep,omitempty"`
}

func newReport(kind ReportKind) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Kind:        kind,
	}
}

// NewSimulationReport wraps a simulation result
func NewSimulationReport(name, description string, result *domain.SimulationResult, breakdown *calculation.ScoreBreakdown) *Report {
	r := newReport(KindSimulation)
	r.Simulation = &SimulationReport{Name: name, Description: description, Result: result, Breakdown: breakdown}
	return r
}

// NewComparisonReport wraps a two-way comparison
func NewComparisonReport(name1, name2 string, comparison *compare.ScenarioComparison, result1, result2 *domain.SimulationResult) *Report {
	r := newReport(KindComparison)
	r.Comparison = &PairReport{Name1: name1, Name2: name2, Comparison: comparison, Result1: result1, Result2: result2}
	return r
}

// NewRankingReport wraps a multi-scenario ranking against a base
func NewRankingReport(set *compare.ComparisonSet) *Report {
	r := newReport(KindRanking)
	r.Ranking = set
	return r
}

// NewSweepReport wraps a parameter sweep
func NewSweepReport(sweep *domain.SweepResult) *Report {
	r := newReport(KindSweep)
	r.Sweep = sweep
	return r
}

// FormatCurrency formats a decimal as whole dollars
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(0)
	}
	return "$" + amount.StringFixed(0)
}

// FormatPercentage formats a decimal as a signed percentage
func FormatPercentage(amount decimal.Decimal) string {
	if amount.IsPositive() {
		return "+" + amount.StringFixed(2) + "%"
	}
	return amount.StringFixed(2) + "%"
}

func signedFixed(v decimal.Decimal, places int32) string {
	if v.IsPositive() {
		return "+" + v.StringFixed(places)
	}
	return v.StringFixed(places)
}

// formatSigned renders a metric change with an explicit sign
func formatSigned(m domain.Metric, v decimal.Decimal) string {
	if v.IsPositive() {
		return "+" + m.Format(v)
	}
	return m.Format(v)
}

func parameterChange(p domain.ScenarioParameter) string {
	pct, err := p.ChangePercent()
	if err != nil {
		return "n/a"
	}
	return FormatPercentage(pct)
}

func sweepLabel(spec domain.SweepSpec) string {
	if spec.Label != "" {
		return spec.Label
	}
	return spec.Parameter
}
