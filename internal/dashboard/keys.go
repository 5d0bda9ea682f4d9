package dashboard

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard's keyboard bindings.
type KeyMap struct {
	Quit  key.Binding
	Clear key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear feed"),
		),
	}
}
