package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the form's key bindings.
type KeyMap struct {
	Quit      key.Binding
	Submit    key.Binding
	Mode      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Delete    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "compute"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m", "ctrl+t"),
			key.WithHelp("m", "single/range"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Mode, k.NextField, k.Quit}
}
