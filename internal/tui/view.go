package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/whatif/internal/tui/tuistyles"
)

// summaryImpacts is how many impacts the parameters screen previews
const summaryImpacts = 6

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneParameters:
		content = m.renderParameters()
	case SceneResults:
		content = m.resultsModel.View()
	case ScenePresets:
		content = m.presetsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneSweep:
		content = m.sweepModel.View()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and help
func (m Model) renderApp(content string) string {
	parts := []string{m.renderTitleBar(), content}
	if m.err != nil {
		parts = append(parts, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()+" (esc to dismiss)"))
	}
	parts = append(parts, m.renderStatusBar(), m.help.View(m.keys))

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderTitleBar renders the application title and scene tabs
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("WHAT-IF SCENARIO SIMULATOR")

	tabs := make([]string, 0, len(sceneOrder))
	for i, s := range sceneOrder {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			tabs = append(tabs, tuistyles.SelectedItemStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, tuistyles.SubtitleStyle.Render(" "+label+" "))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(tabs, " "))
}

// renderParameters shows the sliders next to a live summary of the result
func (m Model) renderParameters() string {
	summary := m.resultsModel.SummaryView(summaryImpacts)
	if m.running {
		summary = tuistyles.InfoStyle.Render("Simulating...") + "\n" + summary
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.parametersModel.View(),
		"  ",
		tuistyles.BorderStyle.Render(summary),
	)
}

// renderStatusBar shows the last action taken
func (m Model) renderStatusBar() string {
	status := m.status
	if preset := m.parametersModel.PresetName(); preset != "" {
		status = strings.TrimSpace(status + "  preset: " + preset)
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(status)
}
