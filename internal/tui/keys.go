package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add          key.Binding
	Toggle       key.Binding
	Delete       key.Binding
	Edit         key.Binding
	ClearDone    key.Binding
	NextFilter   key.Binding
	ShowAll      key.Binding
	ShowActive   key.Binding
	ShowComplete key.Binding
	Up           key.Binding
	Down         key.Binding
	Quit         key.Binding

	Confirm key.Binding
	Cancel  key.Binding
	// Blur moves focus away from an open edit, which commits it.
	Blur key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:       key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:       key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Edit:         key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
		ClearDone:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		NextFilter:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		ShowAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		ShowActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		ShowComplete: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Blur:    key.NewBinding(key.WithKeys("tab", "shift+tab", "up", "down")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.NextFilter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Delete},
		{k.Add, k.ClearDone, k.Quit},
		{k.NextFilter, k.ShowAll, k.ShowActive, k.ShowComplete},
	}
}

// inputHelp is shown while the add or edit input is open.
type inputHelp struct{ keys keyMap }

func (h inputHelp) ShortHelp() []key.Binding { return []key.Binding{h.keys.Confirm, h.keys.Cancel} }
func (h inputHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
