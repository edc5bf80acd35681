package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
)

// Init starts the background commands
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChange(), tickCmd(), m.spinner.Tick)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Re-render so expired toasts disappear
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case storeChangedMsg:
		m.refresh()
		return m, m.waitForChange()

	case loadDoneMsg:
		m.refresh()
		m.message = ""
		if msg.err == nil {
			m.selectDefaultGroup()
		}
		return m, nil

	case opDoneMsg:
		m.refresh()
		if msg.err != nil {
			m.log.Debug("Operation failed", logger.F("op", msg.kind), logger.F("error", msg.err))
			return m, nil
		}
		if msg.kind == store.OpAddTask {
			m.taskCursor = clamp(len(m.visibleTasks())-1, len(m.visibleTasks()))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeAddGroup, ModeAddCategory, ModeEditTask, ModeEditCategory, ModeFilter:
			return m.updateInput(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		default:
			return m.handleNormalKeys(msg)
		}
	}

	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.NextPage):
		m.page = (m.page + 1) % Page(len(pageNames))
		return m, nil
	case key.Matches(msg, keys.Dashboard):
		m.page = PageDashboard
		return m, nil
	case key.Matches(msg, keys.Tasks):
		m.page = PageTasks
		return m, nil
	case key.Matches(msg, keys.Categories):
		m.page = PageCategories
		return m, nil
	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil
	case key.Matches(msg, keys.Refresh):
		m.message = "Reloading..."
		return m, m.loadCmd()
	case key.Matches(msg, keys.NewGroup):
		return m.startInput(ModeAddGroup, "Group name...", ""), nil
	case key.Matches(msg, keys.NewCategory):
		m.colorIdx = colorIndex(model.ColorBlue)
		return m.startInput(ModeAddCategory, "Category name...", ""), nil
	}

	switch m.page {
	case PageTasks:
		return m.handleTaskKeys(msg)
	case PageCategories:
		return m.handleCategoryKeys(msg)
	}
	return m, nil
}

func (m Model) handleTaskKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar
	case key.Matches(msg, keys.Right), key.Matches(msg, keys.Enter) && m.pane == PaneSidebar:
		m.pane = PaneTaskList
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.NewTask):
		m.draftPriority = model.PriorityMedium
		m.draftCategory = ""
		return m.startInput(ModeAddTask, "Enter task...", ""), nil
	case key.Matches(msg, keys.Filter):
		m.pane = PaneTaskList
		return m.startInput(ModeFilter, "Filter...", m.filterText), nil
	case key.Matches(msg, keys.Board):
		m.board = !m.board
		m.pane = PaneTaskList
	case key.Matches(msg, keys.Escape):
		m.filterText = ""
		m.message = ""
	}

	if m.pane != PaneTaskList {
		return m, nil
	}
	task, ok := m.currentTask()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Edit):
		m.editID = task.ID
		return m.startInput(ModeEditTask, "Task title...", task.Title), nil
	case key.Matches(msg, keys.Status):
		return m, m.updateTaskCmd(task.ID, model.TaskUpdate{Status: model.Ptr(task.Status.Next())})
	case key.Matches(msg, keys.Priority):
		return m, m.updateTaskCmd(task.ID, model.TaskUpdate{Priority: model.Ptr(task.Priority.Next())})
	case key.Matches(msg, keys.SetCategory):
		next := nextCategory(m.state.Categories, task.CategoryID)
		return m, m.updateTaskCmd(task.ID, model.TaskUpdate{CategoryID: model.Ptr(next)})
	case key.Matches(msg, keys.Delete):
		return m.requestDelete(deleteTarget{kind: store.OpDeleteTask, id: task.ID, label: task.Title})
	}
	return m, nil
}

func (m Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.categoryCursor = clamp(m.categoryCursor-1, len(m.state.Categories))
		return m, nil
	case key.Matches(msg, keys.Down):
		m.categoryCursor = clamp(m.categoryCursor+1, len(m.state.Categories))
		return m, nil
	}

	c, ok := m.currentCategory()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Edit):
		m.editID = c.ID
		return m.startInput(ModeEditCategory, "Category name...", c.Name), nil
	case key.Matches(msg, keys.Enter):
		next := model.Palette[(colorIndex(c.Color)+1)%len(model.Palette)]
		return m, m.updateCategoryCmd(c.ID, model.CategoryUpdate{Color: &next})
	case key.Matches(msg, keys.Delete):
		return m.requestDelete(deleteTarget{kind: store.OpDeleteCategory, id: c.ID, label: c.Name})
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.pane == PaneSidebar {
		m.groupCursor = clamp(m.groupCursor+delta, len(m.state.Groups))
		m.taskCursor = 0
		return
	}
	m.taskCursor = clamp(m.taskCursor+delta, len(m.visibleTasks()))
}

func (m Model) startInput(mode Mode, placeholder, value string) Model {
	m.mode = mode
	m.message = ""
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) requestDelete(t deleteTarget) (tea.Model, tea.Cmd) {
	if m.opts.ConfirmDelete {
		m.pendingDelete = t
		m.mode = ModeConfirmDelete
		return m, nil
	}
	return m, m.deleteCmd(t)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		t := m.pendingDelete
		m.pendingDelete = deleteTarget{}
		m.mode = ModeNormal
		return m, m.deleteCmd(t)
	case key.Matches(msg, keys.No):
		m.pendingDelete = deleteTarget{}
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		if m.mode == ModeFilter {
			m.filterText = ""
		}
		return m.closeInput(), nil
	case key.Matches(msg, keys.Enter):
		return m.submitInput()
	case m.mode == ModeAddCategory && key.Matches(msg, keys.NextColor):
		m.colorIdx = (m.colorIdx + 1) % len(model.Palette)
		return m, nil
	case m.mode == ModeAddTask && key.Matches(msg, keys.DraftPriority):
		m.draftPriority = m.draftPriority.Next()
		return m, nil
	case m.mode == ModeAddTask && key.Matches(msg, keys.DraftCategory):
		m.draftCategory = nextCategory(m.state.Categories, m.draftCategory)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == ModeFilter {
		m.filterText = m.input.Value()
		m.taskCursor = 0
	}
	return m, cmd
}

func (m Model) closeInput() Model {
	m.mode = ModeNormal
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
	return m
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	name := strings.TrimSpace(value)

	switch m.mode {
	case ModeFilter:
		m.filterText = value
		return m.closeInput(), nil

	case ModeAddTask:
		title, err := model.ValidateTitle(value)
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		task := model.NewTask{
			Title:      title,
			Status:     model.StatusTodo,
			Priority:   m.draftPriority,
			CategoryID: m.draftCategory,
			GroupID:    m.currentGroup().ID,
		}
		return m.closeInput(), m.addTaskCmd(task)

	case ModeEditTask:
		title, err := model.ValidateTitle(value)
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		id := m.editID
		return m.closeInput(), m.updateTaskCmd(id, model.TaskUpdate{Title: &title})

	case ModeAddGroup:
		if name == "" {
			m.message = "name must not be empty"
			return m, nil
		}
		return m.closeInput(), m.addGroupCmd(name)

	case ModeAddCategory:
		if name == "" {
			m.message = "name must not be empty"
			return m, nil
		}
		color := model.Palette[m.colorIdx]
		return m.closeInput(), m.addCategoryCmd(name, color)

	case ModeEditCategory:
		if name == "" {
			m.message = "name must not be empty"
			return m, nil
		}
		id := m.editID
		return m.closeInput(), m.updateCategoryCmd(id, model.CategoryUpdate{Name: &name})
	}

	return m.closeInput(), nil
}
