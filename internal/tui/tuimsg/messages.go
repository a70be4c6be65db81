// Package tuimsg defines messages passed between the TUI model and its scenes.
package tuimsg

import (
	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
)

// ParametersChangedMsg signals the slider values have changed
type ParametersChangedMsg struct {
	Parameters []domain.ScenarioParameter
}

// PresetSelectedMsg signals a preset should be loaded into the sliders
type PresetSelectedMsg struct {
	Preset domain.Preset
}

// SimulationCompleteMsg carries the result of a simulation run. Seq lets the model
// drop results from runs that were superseded while in flight.
type SimulationCompleteMsg struct {
	Seq       int
	Result    *domain.SimulationResult
	Breakdown calculation.ScoreBreakdown
	Err       error
}

// SweepRequestedMsg asks for a sweep of one parameter across its slider range
type SweepRequestedMsg struct {
	Spec domain.SweepSpec
}

// SweepCompleteMsg carries the result of a sweep
type SweepCompleteMsg struct {
	Result *domain.SweepResult
	Err    error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
