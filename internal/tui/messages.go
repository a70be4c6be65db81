package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneParameters Scene = iota
	SceneResults
	ScenePresets
	SceneCompare
	SceneSweep
)

var sceneOrder = []Scene{SceneParameters, SceneResults, ScenePresets, SceneCompare, SceneSweep}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneParameters:
		return "Parameters"
	case SceneResults:
		return "Results"
	case ScenePresets:
		return "Presets"
	case SceneCompare:
		return "Compare"
	case SceneSweep:
		return "Sweep"
	default:
		return "Unknown"
	}
}

// next returns the scene step places after s, wrapping around
func (s Scene) next(step int) Scene {
	for i, sc := range sceneOrder {
		if sc == s {
			n := len(sceneOrder)
			return sceneOrder[((i+step)%n+n)%n]
		}
	}
	return SceneParameters
}
