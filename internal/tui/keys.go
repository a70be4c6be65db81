package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	NextScene  key.Binding
	PrevScene  key.Binding
	Parameters key.Binding
	Results    key.Binding
	Presets    key.Binding
	Compare    key.Binding
	Sweep      key.Binding
	PinA       key.Binding
	PinB       key.Binding
	RunSweep   key.Binding
	Dismiss    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		NextScene:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		PrevScene:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous screen")),
		Parameters: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "parameters")),
		Results:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "results")),
		Presets:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "presets")),
		Compare:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "compare")),
		Sweep:      key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "sweep")),
		PinA:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "pin as A")),
		PinB:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "pin as B")),
		RunSweep:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sweep focused parameter")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss error")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScene, k.PinA, k.PinB, k.RunSweep, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Parameters, k.Results, k.Presets, k.Compare, k.Sweep},
		{k.NextScene, k.PrevScene, k.PinA, k.PinB, k.RunSweep},
		{k.Dismiss, k.Help, k.Quit},
	}
}
