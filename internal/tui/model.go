package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/whatif/internal/calculation"
	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/rgehrsitz/whatif/internal/transform"
	"github.com/rgehrsitz/whatif/internal/tui/scenes"
	"github.com/rgehrsitz/whatif/internal/tui/tuimsg"
)

// sweepSteps is the number of points sampled when sweeping a slider's range
const sweepSteps = 11

// Options configures a new TUI model. Zero values fall back to defaults.
type Options struct {
	Engine   *calculation.SimulationEngine
	Baseline *domain.MetricSet
	Presets  []domain.Preset
	Sliders  []scenes.SliderSpec
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	engine   *calculation.SimulationEngine
	analyzer *calculation.SensitivityAnalyzer
	baseline domain.MetricSet

	keys keyMap
	help help.Model

	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	presetsModel    *scenes.PresetsModel
	compareModel    *scenes.CompareModel
	sweepModel      *scenes.SweepModel

	// seq identifies the latest simulation request; older results are dropped
	seq     int
	running bool
	status  string

	err error
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	engine := opts.Engine
	if engine == nil {
		engine = calculation.NewSimulationEngine()
	}
	baseline := domain.DefaultBaseline()
	if opts.Baseline != nil {
		baseline = *opts.Baseline
	}
	presets := opts.Presets
	if presets == nil {
		presets = transform.GetScenarioPresets()
	}
	sliders := opts.Sliders
	if sliders == nil {
		sliders = scenes.DefaultSliderSpecs()
	}

	return Model{
		currentScene:    SceneParameters,
		width:           100,
		height:          30,
		engine:          engine,
		analyzer:        calculation.NewSensitivityAnalyzer(engine),
		baseline:        baseline,
		keys:            defaultKeyMap(),
		help:            help.New(),
		parametersModel: scenes.NewParametersModel(sliders),
		resultsModel:    scenes.NewResultsModel(),
		presetsModel:    scenes.NewPresetsModel(presets),
		compareModel:    scenes.NewCompareModel(),
		sweepModel:      scenes.NewSweepModel(),
	}
}

// Init runs the unchanged scenario so the results pane starts populated
func (m Model) Init() tea.Cmd {
	return runSimulationCmd(m.engine, m.seq, m.parametersModel.Parameters(), m.baseline)
}

// runSimulationCmd returns a command that runs one simulation
func runSimulationCmd(engine *calculation.SimulationEngine, seq int, params []domain.ScenarioParameter, baseline domain.MetricSet) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Run(params, &baseline)
		if err != nil {
			return tuimsg.SimulationCompleteMsg{Seq: seq, Err: err}
		}
		return tuimsg.SimulationCompleteMsg{
			Seq:       seq,
			Result:    result,
			Breakdown: engine.Breakdown(result),
		}
	}
}

// runSweepCmd returns a command that sweeps one parameter with the others held fixed
func runSweepCmd(analyzer *calculation.SensitivityAnalyzer, spec domain.SweepSpec, fixed []domain.ScenarioParameter, baseline domain.MetricSet) tea.Cmd {
	return func() tea.Msg {
		result, err := analyzer.Sweep(context.Background(), spec, fixed, &baseline)
		return tuimsg.SweepCompleteMsg{Result: result, Err: err}
	}
}

// sweepSpecForFocused builds a sweep across the focused slider's full range
func (m Model) sweepSpecForFocused() (domain.SweepSpec, bool) {
	s := m.parametersModel.Focused()
	if s == nil {
		return domain.SweepSpec{}, false
	}
	return domain.SweepSpec{
		Parameter: s.Name,
		Label:     s.Label,
		BaseValue: s.Base,
		MinValue:  s.Min,
		MaxValue:  s.Max,
		Steps:     sweepSteps,
	}, true
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Err returns the error on display, if any
func (m Model) Err() error {
	return m.err
}
