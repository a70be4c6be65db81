package calculation

import (
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
)

// Logger is the minimal logging surface the engine needs. zap's SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// Config holds every tunable table used by a simulation run
type Config struct {
	Profiles     SensitivityTable
	Weights      ScoreWeights
	Confidence   ConfidencePolicy
	Significance SignificanceThresholds
}

// DefaultConfig returns the built-in tables. Each call returns fresh copies.
func DefaultConfig() Config {
	return Config{
		Profiles:     DefaultSensitivityTable(),
		Weights:      DefaultScoreWeights(),
		Confidence:   DefaultConfidencePolicy(),
		Significance: DefaultSignificanceThresholds(),
	}
}

// Validate checks every table in the config
func (c Config) Validate() error {
	if err := c.Profiles.Validate(); err != nil {
		return fmt.Errorf("sensitivity table: %w", err)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("score weights: %w", err)
	}
	if err := c.Confidence.Validate(); err != nil {
		return fmt.Errorf("confidence policy: %w", err)
	}
	if err := c.Significance.Validate(); err != nil {
		return fmt.Errorf("significance thresholds: %w", err)
	}
	return nil
}

// SimulationEngine runs what-if scenarios against a baseline. It holds no mutable
// state between runs and is safe for concurrent use once configured.
type SimulationEngine struct {
	config Config
	Logger Logger
}

// NewSimulationEngine creates an engine with the built-in tables
func NewSimulationEngine() *SimulationEngine {
	return NewSimulationEngineWithConfig(DefaultConfig())
}

// NewSimulationEngineWithConfig creates an engine with custom tables
func NewSimulationEngineWithConfig(config Config) *SimulationEngine {
	return &SimulationEngine{
		config: config,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger. nil resets to a no-op logger.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// Config returns the engine's configuration
func (se *SimulationEngine) Config() Config {
	return se.config
}

// Run simulates the parameters against the baseline. A nil baseline means the default
// baseline. The only error is an *InvalidParameterError for a zero base value on a
// parameter with a known profile.
func (se *SimulationEngine) Run(params []domain.ScenarioParameter, baseline *domain.MetricSet) (*domain.SimulationResult, error) {
	base := domain.DefaultBaseline()
	if baseline != nil {
		base = *baseline
	}

	se.Logger.Debugf("running simulation with %d parameters", len(params))

	prop, err := se.Propagate(base, params)
	if err != nil {
		se.Logger.Warnf("simulation rejected: %v", err)
		return nil, err
	}

	impacts := ConsolidateImpacts(prop.Raw, se.config.Significance)
	score := se.config.Weights.Score(base, prop.Projected)
	confidence := se.config.Confidence.Estimate(params)
	recommendations, risks := GenerateGuidance(params)

	se.Logger.Debugf("simulation complete: score=%s confidence=%d impacts=%d", score.StringFixed(2), confidence, len(impacts))

	return &domain.SimulationResult{
		Scenario: domain.Scenario{
			Parameters: append([]domain.ScenarioParameter(nil), params...),
			Baseline:   base,
			Projected:  prop.Projected,
		},
		Impacts:         impacts,
		Score:           score,
		Recommendations: recommendations,
		Risks:           risks,
		ConfidenceLevel: confidence,
	}, nil
}

// Breakdown explains the score of a finished result using this engine's weights
func (se *SimulationEngine) Breakdown(result *domain.SimulationResult) ScoreBreakdown {
	return se.config.Weights.Breakdown(result.Scenario.Baseline, result.Scenario.Projected)
}

// RunSimulation runs a simulation with the built-in tables
func RunSimulation(params []domain.ScenarioParameter, baseline *domain.MetricSet) (*domain.SimulationResult, error) {
	return NewSimulationEngine().Run(params, baseline)
}
