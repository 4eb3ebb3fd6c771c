package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the TUI.
// Table keys live in common.DataTableModel; these are the ones the root
// model reacts to before a view sees them.
type KeyMap struct {
	ForceQuit key.Binding // always quits, even while typing
	Quit      key.Binding
	Help      key.Binding
	Command   key.Binding
	Search    key.Binding // global search across users, vendors and bookings
	Enter     key.Binding
	Esc       key.Binding
	Tab       key.Binding
}

// GlobalKeyMap holds the keybindings used across the application.
var GlobalKeyMap = KeyMap{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Command: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "command mode"),
	),
	Search: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "global search"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "go back"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
}

// ShortHelp returns a slice of key bindings for the help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Command, k.Search}
}

// FullHelp returns a matrix of key bindings for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Enter, k.Esc, k.Command, k.Search}, {k.ForceQuit, k.Quit, k.Help}}
}
