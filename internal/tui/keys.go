package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Close      key.Binding
	ForceClose key.Binding
	Journal    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Close: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
		ForceClose: key.NewBinding(
			key.WithKeys("Q"),
			key.WithHelp("Q", "force close"),
		),
		Journal: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "message log"),
		),
	}
}
