package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	NextPage    key.Binding
	Dashboard   key.Binding
	Tasks       key.Binding
	Categories  key.Binding
	Enter       key.Binding
	NewTask     key.Binding
	NewGroup    key.Binding
	NewCategory key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Status      key.Binding
	Priority    key.Binding
	SetCategory key.Binding
	Filter      key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
	Escape      key.Binding
	Yes         key.Binding
	No          key.Binding
	NextColor   key.Binding

	// Add-task form
	DraftPriority key.Binding
	DraftCategory key.Binding
	Board         key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "groups")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "tasks")),
	NextPage:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	Dashboard:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
	Tasks:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "tasks")),
	Categories:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "categories")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	NewTask:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
	NewGroup:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "new group")),
	NewCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new category")),
	Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Status:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
	Priority:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
	SetCategory: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "cycle category")),
	Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Refresh:     key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reload")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Yes:         key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	No:          key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep")),
	NextColor:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next color")),

	DraftPriority: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "priority")),
	DraftCategory: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "category")),
	Board:         key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "board view")),
}
