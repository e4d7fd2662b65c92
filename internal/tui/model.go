// Package tui is the interactive todo list.
//
// The model forwards every user action to a todo.Store and re-derives the
// visible rows from it afterwards; it keeps no copy of the collection beyond
// what the list widget renders.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/sessiontodo/internal/model"
	"github.com/idilsaglam/sessiontodo/internal/todo"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputCharMax  = 200
)

// Options tune the interactive list.
type Options struct {
	AppName string
	// Session is shown in the header when set.
	Session string
}

// Model implements tea.Model on top of a todo.Store.
type Model struct {
	store *todo.Store
	opts  Options
	keys  keyMap

	list  list.Model
	input textinput.Model
	help  help.Model

	adding  bool
	edit    editState
	editRef *model.ID // shared with the list delegate

	width, height int
}

// New builds the model. The store is mutated in place by user actions.
func New(store *todo.Store, opts Options) Model {
	if opts.AppName == "" {
		opts.AppName = "Todo App"
	}

	editRef := new(model.ID)
	l := list.New(nil, itemDelegate{}, defaultWidth, defaultHeight)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = helpStyle
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = inputCharMax

	m := Model{
		store:   store,
		opts:    opts,
		keys:    defaultKeyMap(),
		list:    l,
		input:   ti,
		help:    help.New(),
		edit:    viewing{},
		editRef: editRef,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.help.Styles.ShortKey = helpStyle
	m.help.Styles.ShortDesc = helpStyle
	m.refresh()
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(store *todo.Store, opts Options) error {
	_, err := tea.NewProgram(New(store, opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// refresh re-derives the list rows from the store.
func (m *Model) refresh() {
	idx := m.list.Index()
	m.list.SetItems(toListItems(m.store.Visible()))
	if n := len(m.list.Items()); idx >= n && n > 0 {
		m.list.Select(n - 1)
	}

	if id, ok := editingID(m.edit); ok {
		*m.editRef = id
		m.list.SetDelegate(itemDelegate{editingID: m.editRef})
	} else {
		m.list.SetDelegate(itemDelegate{})
	}
	m.resize()
}

func (m *Model) resize() {
	// header, tabs, footer, help and the frame
	chrome := 8
	if m.adding || m.isEditing() {
		chrome += 4
	}
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
	m.help.Width = m.width - 4
	m.input.Width = m.width - 10
}

func (m Model) isEditing() bool {
	_, ok := editingID(m.edit)
	return ok
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	switch {
	case m.adding:
		return m.updateAdding(msg)
	case m.isEditing():
		return m.updateEditing(msg)
	}
	return m.updateBrowsing(msg)
}

// add mode
func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Confirm):
			if _, added := m.store.Add(m.input.Value()); added {
				m.input.SetValue("")
				m.refresh()
				if n := len(m.list.Items()); n > 0 {
					m.list.Select(n - 1)
				}
			}
			return m, nil
		case key.Matches(k, m.keys.Cancel):
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// edit mode
func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Confirm):
			m.commitEdit()
			return m, nil
		case key.Matches(k, m.keys.Cancel):
			m.cancelEdit()
			return m, nil
		case key.Matches(k, m.keys.Blur):
			m.commitEdit()
			return m.updateBrowsing(msg)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) beginEdit(t model.Todo) tea.Cmd {
	m.edit = editing{id: t.ID, snapshot: t.Text}
	// SetValue truncates to CharLimit; an existing todo may be longer.
	m.input.CharLimit = max(inputCharMax, len([]rune(t.Text)))
	m.input.SetValue(t.Text)
	m.input.CursorEnd()
	m.input.Placeholder = "Edit item..."
	m.refresh()
	return m.input.Focus()
}

// commitEdit hands the input to the store; an emptied input deletes the todo.
func (m *Model) commitEdit() {
	if id, ok := editingID(m.edit); ok {
		m.store.Edit(id, m.input.Value())
	}
	m.closeInput()
}

// cancelEdit drops the snapshot without touching the store.
func (m *Model) cancelEdit() {
	m.closeInput()
}

func (m *Model) closeInput() {
	m.adding = false
	m.edit = viewing{}
	m.input.SetValue("")
	m.input.CharLimit = inputCharMax
	m.input.Placeholder = "What needs to be done?"
	m.input.Blur()
	m.refresh()
}

func (m Model) updateBrowsing(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(k, m.keys.Add):
		m.adding = true
		m.input.SetValue("")
		m.refresh()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(k, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(t.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(k, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.store.Delete(t.ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(k, m.keys.Edit):
		if t, ok := m.selected(); ok {
			cmd := m.beginEdit(t)
			return m, cmd
		}
		return m, nil

	case key.Matches(k, m.keys.ClearDone):
		if m.store.HasCompleted() {
			m.store.ClearCompleted()
			m.refresh()
		}
		return m, nil

	case key.Matches(k, m.keys.NextFilter):
		m.setFilter(m.store.Filter().Next())
		return m, nil
	case key.Matches(k, m.keys.ShowAll):
		m.setFilter(model.All)
		return m, nil
	case key.Matches(k, m.keys.ShowActive):
		m.setFilter(model.Active)
		return m, nil
	case key.Matches(k, m.keys.ShowComplete):
		m.setFilter(model.Completed)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setFilter(f model.Filter) {
	m.store.SetFilter(f)
	m.list.Select(0)
	m.refresh()
}

// -------------- view --------------

func (m Model) View() string {
	var sections []string
	sections = append(sections, m.headerView())

	if m.store.Len() > 0 {
		sections = append(sections, m.tabsView(), m.list.View(), m.footerView())
	} else {
		sections = append(sections, mutedStyle.Render("Nothing to do. Press a to add a todo."))
	}

	if m.adding || m.isEditing() {
		sections = append(sections, m.inputView())
		sections = append(sections, m.help.View(inputHelp{keys: m.keys}))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}

	return frameStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) headerView() string {
	todos := m.store.Todos()
	done := len(todos) - m.store.ActiveCount()
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(m.opts.AppName),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), m.store.ActiveCount(),
		accentStyle.Render("Total"), len(todos),
	)
	if m.opts.Session != "" {
		header += "  " + mutedStyle.Render("session "+m.opts.Session)
	}
	return header
}

func (m Model) tabsView() string {
	tabs := make([]string, 0, 3)
	for _, f := range model.Filters() {
		style := tabStyle
		if f == m.store.Filter() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(f.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) footerView() string {
	footer := todo.ItemsLeft(m.store.ActiveCount())
	if m.store.HasCompleted() {
		footer += "   " + accentStyle.Render("c") + " " + mutedStyle.Render("clear completed")
	}
	return footer
}

func (m Model) inputView() string {
	title := "Add new item"
	if e, ok := m.edit.(editing); ok {
		title = "Edit item " + mutedStyle.Render("was: "+e.snapshot)
	}
	bar := frameStyle.Width(m.width - 8)
	return bar.Render(title + "\n" + m.input.View())
}
