package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/whatif/internal/tui/scenes"
	"github.com/rgehrsitz/whatif/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := max(0, msg.Height-5)
		m.parametersModel.SetSize(msg.Width/2, contentHeight)
		m.resultsModel.SetSize(msg.Width, contentHeight)
		m.presetsModel.SetSize(msg.Width, contentHeight)
		m.compareModel.SetSize(msg.Width, contentHeight)
		m.sweepModel.SetSize(msg.Width, contentHeight)
		return m, nil

	// Custom messages
	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ParametersChangedMsg:
		return m.simulate()

	case tuimsg.PresetSelectedMsg:
		m.parametersModel.ApplyPreset(msg.Preset)
		m.currentScene = SceneParameters
		m.status = fmt.Sprintf("Loaded preset %s", msg.Preset.Name)
		return m.simulate()

	case tuimsg.SimulationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.running = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.resultsModel.SetResult(msg.Result, msg.Breakdown)
		return m, nil

	case tuimsg.SweepRequestedMsg:
		m.sweepModel.SetRunning()
		m.currentScene = SceneSweep
		return m, runSweepCmd(m.analyzer, msg.Spec, m.parametersModel.Parameters(), m.baseline)

	case tuimsg.SweepCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.sweepModel.SetResult(nil)
			return m, nil
		}
		m.sweepModel.SetResult(msg.Result)
		return m, nil
	}

	// Delegate to scene-specific update handlers
	return m.updateCurrentScene(msg)
}

// simulate starts a run for the current slider values. Earlier runs still in
// flight are superseded.
func (m Model) simulate() (tea.Model, tea.Cmd) {
	m.seq++
	m.running = true
	return m, runSimulationCmd(m.engine, m.seq, m.parametersModel.Parameters(), m.baseline)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.NextScene):
		m.currentScene = m.currentScene.next(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevScene):
		m.currentScene = m.currentScene.next(-1)
		return m, nil

	case key.Matches(msg, m.keys.Parameters):
		return m.navigate(SceneParameters)
	case key.Matches(msg, m.keys.Results):
		return m.navigate(SceneResults)
	case key.Matches(msg, m.keys.Presets):
		return m.navigate(ScenePresets)
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare)
	case key.Matches(msg, m.keys.Sweep):
		return m.navigate(SceneSweep)

	case key.Matches(msg, m.keys.PinA):
		return m.pin("a")
	case key.Matches(msg, m.keys.PinB):
		return m.pin("b")

	case key.Matches(msg, m.keys.RunSweep):
		spec, ok := m.sweepSpecForFocused()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return tuimsg.SweepRequestedMsg{Spec: spec}
		}
	}

	// Let the current scene handle other keys
	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// pin copies the latest result into a compare slot
func (m Model) pin(slot string) (tea.Model, tea.Cmd) {
	result := m.resultsModel.Result()
	if result == nil {
		m.status = "Nothing to pin yet"
		return m, nil
	}
	name := m.parametersModel.PresetName()
	if name == "" {
		name = "Custom"
	}
	m.compareModel.Pin(slot, scenes.Snapshot{Name: name, Result: result})
	m.status = fmt.Sprintf("Pinned %s as %s", name, slotLabel(slot))
	return m, nil
}

func slotLabel(slot string) string {
	if slot == "a" {
		return "A"
	}
	return "B"
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case ScenePresets:
		m.presetsModel, cmd = m.presetsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneSweep:
		m.sweepModel, cmd = m.sweepModel.Update(msg)
	}
	return m, cmd
}
