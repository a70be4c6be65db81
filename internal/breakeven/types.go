package breakeven

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

// Goal defines what the solver looks for
type Goal string

const (
	GoalBreakEven     Goal = "break_even"     // Metric returns to its baseline value
	GoalMatchTarget   Goal = "match_target"   // Metric reaches a given target value
	GoalMaximizeScore Goal = "maximize_score" // Composite score is as high as possible
)

// ParseGoal converts a string into a known Goal
func ParseGoal(s string) (Goal, error) {
	switch g := Goal(s); g {
	case GoalBreakEven, GoalMatchTarget, GoalMaximizeScore:
		return g, nil
	default:
		return "", fmt.Errorf("unknown goal %q (valid: %s, %s, %s)", s, GoalBreakEven, GoalMatchTarget, GoalMaximizeScore)
	}
}

// ErrUnreachable means the target metric value lies outside what the constraints allow
var ErrUnreachable = errors.New("target not reachable within constraints")

// Constraints bound the new values the solver may try
type Constraints struct {
	MinValue decimal.Decimal `json:"min_value"`
	MaxValue decimal.Decimal `json:"max_value"`
}

// Validate checks if constraints are internally consistent
func (c Constraints) Validate() error {
	if c.MinValue.GreaterThan(c.MaxValue) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   fmt.Sprintf("min_value %s cannot be greater than max_value %s", c.MinValue, c.MaxValue),
		}
	}
	return nil
}

// ParameterRange is a parameter the solver can move and the range it may move in
type ParameterRange struct {
	Name        string          `json:"name"`
	Label       string          `json:"label"`
	BaseValue   decimal.Decimal `json:"base_value"`
	Constraints Constraints     `json:"constraints"`
}

// DefaultRanges returns a range for every built-in planning lever
func DefaultRanges() []ParameterRange {
	r := func(name, label string, base, lo, hi int64) ParameterRange {
		return ParameterRange{
			Name:      name,
			Label:     label,
			BaseValue: decimal.NewFromInt(base),
			Constraints: Constraints{
				MinValue: decimal.NewFromInt(lo),
				MaxValue: decimal.NewFromInt(hi),
			},
		}
	}
	return []ParameterRange{
		r(domain.ParamPriceAdjustment, "Price Adjustment", 100, 70, 130),
		r(domain.ParamMarkdownTiming, "Markdown Timing", 4, 1, 10),
		r(domain.ParamInventoryLevel, "Inventory Level", 100, 50, 150),
		r(domain.ParamReceiptTiming, "Receipt Timing", 4, 1, 10),
		r(domain.ParamBuyQuantity, "Buy Quantity", 10000, 5000, 15000),
		r(domain.ParamCategoryMix, "Category Mix", 100, 70, 130),
	}
}

// FindRange looks up a default range by parameter name
func FindRange(name string) (ParameterRange, bool) {
	for _, r := range DefaultRanges() {
		if r.Name == name {
			return r, true
		}
	}
	return ParameterRange{}, false
}

// Request defines the parameters for one solve
type Request struct {
	Parameter   string                     `json:"parameter"`
	Label       string                     `json:"label,omitempty"`
	BaseValue   decimal.Decimal            `json:"base_value"`
	Fixed       []domain.ScenarioParameter `json:"fixed,omitempty"` // Other changes held in place
	Baseline    *domain.MetricSet          `json:"-"`
	Goal        Goal                       `json:"goal"`
	Metric      domain.Metric              `json:"metric,omitempty"`
	Target      *decimal.Decimal           `json:"target,omitempty"` // Only for GoalMatchTarget
	Constraints Constraints                `json:"constraints"`

	MaxIterations int             `json:"-"` // Maximum engine runs
	Tolerance     decimal.Decimal `json:"-"` // Acceptable distance from the target metric value
}

// ForRange returns a copy of the request aimed at another parameter
func (r Request) ForRange(pr ParameterRange) Request {
	r.Parameter = pr.Name
	r.Label = pr.Label
	r.BaseValue = pr.BaseValue
	r.Constraints = pr.Constraints
	return r
}

// Validate checks the request before any simulation runs
func (r Request) Validate() error {
	if r.Parameter == "" {
		return &BreakEvenError{Operation: "validate_request", Message: "parameter name is required"}
	}
	if r.BaseValue.IsZero() {
		return &BreakEvenError{Operation: "validate_request", Message: r.Parameter, Cause: domain.ErrZeroBaseValue}
	}
	if err := r.Constraints.Validate(); err != nil {
		return err
	}

	switch r.Goal {
	case GoalBreakEven, GoalMatchTarget:
		if !r.Metric.Valid() {
			return &BreakEvenError{Operation: "validate_request", Message: fmt.Sprintf("unknown metric %q", r.Metric)}
		}
		if r.Goal == GoalMatchTarget && r.Target == nil {
			return &BreakEvenError{Operation: "validate_request", Message: "match_target requires a target value"}
		}
	case GoalMaximizeScore:
	default:
		return &BreakEvenError{Operation: "validate_request", Message: fmt.Sprintf("unsupported goal: %s", r.Goal)}
	}
	return nil
}

func (r Request) displayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Parameter
}

// Result contains the outcome of one solve
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info"`

	// Solved parameter
	OptimalValue  decimal.Decimal `json:"optimal_value"`
	ChangePercent decimal.Decimal `json:"change_percent"`

	// Outcome at the solved value
	TargetValue     decimal.Decimal          `json:"target_value"`
	MetricValue     decimal.Decimal          `json:"metric_value"`
	Score           decimal.Decimal          `json:"score"`
	ConfidenceLevel int                      `json:"confidence_level"`
	Simulation      *domain.SimulationResult `json:"-"`
}

// MultiResult holds one solve per parameter for a shared goal
type MultiResult struct {
	Goal            Goal          `json:"goal"`
	Metric          domain.Metric `json:"metric,omitempty"`
	Results         []Result      `json:"results"`
	Unreachable     []string      `json:"unreachable,omitempty"`
	Recommendations []string      `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	GridResolution int             // Points per grid pass when maximizing
	Tolerance      decimal.Decimal // Convergence tolerance in metric units
	MaxIterations  int             // Maximum engine runs per solve
	Concurrency    int             // Parallel solves in SolveAll
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution: 21,
		Tolerance:      decimal.NewFromFloat(0.01),
		MaxIterations:  60,
		Concurrency:    4,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
