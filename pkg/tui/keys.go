package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the editor bindings
type KeyMap struct {
	Commit       key.Binding
	Cancel       key.Binding
	ToggleSearch key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
	ClearSearch  key.Binding
	PreviewUp    key.Binding
	PreviewDown  key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default editor bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Commit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "insert"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ToggleSearch: key.NewBinding(
			key.WithKeys("ctrl+f", "tab"),
			key.WithHelp("^f/tab", "search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("enter/^n", "next"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("^p", "prev"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("^l", "clear search"),
		),
		PreviewUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "preview up"),
		),
		PreviewDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "preview down"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.Cancel, k.ToggleSearch, k.NextMatch, k.PrevMatch, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Commit, k.Cancel},
		{k.ToggleSearch, k.NextMatch, k.PrevMatch, k.ClearSearch},
		{k.PreviewUp, k.PreviewDown, k.Help},
	}
}
