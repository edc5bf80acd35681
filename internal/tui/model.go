package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/notify"
	"github.com/existflow/taskdeck/internal/store"
)

// ToastTTL is how long a notification stays on screen
const ToastTTL = 4 * time.Second

// Page is one of the top-level screens
type Page int

const (
	PageDashboard Page = iota
	PageTasks
	PageCategories
)

var pageNames = []string{"Dashboard", "Tasks", "Categories"}

// Pane represents which pane is focused on the tasks page
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTaskList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeAddGroup
	ModeAddCategory
	ModeEditTask
	ModeEditCategory
	ModeFilter
	ModeConfirmDelete
	ModeHelp
)

// Options tune the model's behavior
type Options struct {
	DefaultGroup  string
	ConfirmDelete bool
}

type deleteTarget struct {
	kind  store.OpKind
	id    string
	label string
}

// Model is the main TUI model
type Model struct {
	store  *store.Store
	toasts *notify.Queue
	opts   Options
	log    *logger.Logger

	state   store.State
	changes chan struct{}

	// UI state
	width          int
	height         int
	page           Page
	pane           Pane
	mode           Mode
	groupCursor    int
	taskCursor     int
	categoryCursor int

	// Input
	input         textinput.Model
	colorIdx      int
	editID        string
	draftPriority model.Priority
	draftCategory string

	filterText    string
	board         bool
	groupChosen   bool
	pendingDelete deleteTarget
	spinner       spinner.Model

	message string
}

// NewModel creates a TUI model rendering st. Toasts are read from toasts,
// which should also be registered as one of the store's notifiers. The
// store is loaded by Init, so a failed load is shown rather than fatal.
func NewModel(st *store.Store, toasts *notify.Queue, opts Options) Model {
	log := logger.Component("tui")
	log.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = HeaderStyle

	m := Model{
		store:   st,
		toasts:  toasts,
		opts:    opts,
		log:     log,
		changes: make(chan struct{}, 1),
		page:    PageTasks,
		pane:    PaneSidebar,
		mode:    ModeNormal,
		input:   ti,
		spinner: sp,
	}

	changes := m.changes
	st.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	m.refresh()
	m.selectDefaultGroup()
	log.Debug("TUI model initialized",
		logger.F("groups", len(m.state.Groups)),
		logger.F("tasks", len(m.state.Tasks)))
	return m
}

// refresh takes a new snapshot of the store and keeps cursors in range
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	m.groupCursor = clamp(m.groupCursor, len(m.state.Groups))
	m.taskCursor = clamp(m.taskCursor, len(m.visibleTasks()))
	m.categoryCursor = clamp(m.categoryCursor, len(m.state.Categories))
}

// selectDefaultGroup moves the group cursor to the configured group once
// groups are known
func (m *Model) selectDefaultGroup() {
	if m.groupChosen || len(m.state.Groups) == 0 {
		return
	}
	m.groupChosen = true
	for i, g := range m.state.Groups {
		if g.ID == m.opts.DefaultGroup {
			m.groupCursor = i
		}
	}
}

func (m Model) currentGroup() model.Group {
	if m.groupCursor < len(m.state.Groups) {
		return m.state.Groups[m.groupCursor]
	}
	return model.DefaultGroup()
}

// visibleTasks returns the tasks of the selected group matching the filter
func (m Model) visibleTasks() []model.Task {
	tasks := m.state.TasksInGroup(m.currentGroup().ID)
	if m.filterText == "" {
		return tasks
	}
	needle := strings.ToLower(m.filterText)
	out := tasks[:0]
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) currentTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	if m.taskCursor < len(tasks) {
		return tasks[m.taskCursor], true
	}
	return model.Task{}, false
}

func (m Model) currentCategory() (model.Category, bool) {
	if m.categoryCursor < len(m.state.Categories) {
		return m.state.Categories[m.categoryCursor], true
	}
	return model.Category{}, false
}

// nextCategory cycles uncategorized -> each category in order -> uncategorized
func nextCategory(categories []model.Category, current string) string {
	if current == "" {
		if len(categories) == 0 {
			return ""
		}
		return categories[0].ID
	}
	for i, c := range categories {
		if c.ID == current {
			if i+1 < len(categories) {
				return categories[i+1].ID
			}
			return ""
		}
	}
	return ""
}

func colorIndex(c model.Color) int {
	for i, p := range model.Palette {
		if p == c {
			return i
		}
	}
	return 0
}
