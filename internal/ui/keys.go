package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Delete    key.Binding
	Cutoff    key.Binding
	Target    key.Binding
	Trim      key.Binding
	Browse    key.Binding
	Snapshots key.Binding
	Depth     key.Binding
	MinSize   key.Binding
	Refresh   key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "toggle select"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete selected"),
		),
		Cutoff: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "select by cutoff date"),
		),
		Target: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "select by reclaim target"),
		),
		Trim: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "trim by purge size"),
		),
		Browse: key.NewBinding(
			key.WithKeys("3", "b"),
			key.WithHelp("3", "browse library directories"),
		),
		Snapshots: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "manage snapshots"),
		),
		Depth: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "change tree depth"),
		),
		MinSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "change size threshold"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
