package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/notify"
	"github.com/existflow/taskdeck/internal/store"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch m.page {
	case PageDashboard:
		body = m.renderDashboard()
	case PageCategories:
		body = m.renderCategories()
	default:
		list := m.renderTaskList()
		if m.board {
			list = m.renderBoard()
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(bodyHeight), list)
	}

	switch m.mode {
	case ModeAddTask, ModeAddGroup, ModeAddCategory, ModeEditTask, ModeEditCategory, ModeConfirmDelete:
		body = lipgloss.Place(
			m.width, bodyHeight,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		body = m.renderHelp()
	}

	parts := []string{header, body}
	if toasts := m.renderToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("TaskDeck")
	if m.state.Loading {
		title += " " + m.spinner.View()
	}

	tabs := make([]string, 0, len(pageNames))
	for i, name := range pageNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Page(i) == m.page {
			tabs = append(tabs, TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, ""))
}

func (m Model) renderSidebar(height int) string {
	var s string
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Groups") + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", 16)) + "\n"

	for i, g := range m.state.Groups {
		tasks := m.state.TasksInGroup(g.ID)
		open := 0
		for _, t := range tasks {
			if t.Status != model.StatusDone {
				open++
			}
		}

		cursor := "  "
		style := ItemStyle
		if i == m.groupCursor {
			cursor = "❯ "
			if m.pane == PaneSidebar {
				style = ItemSelectedStyle
			}
		}
		s += style.Render(fmt.Sprintf("%s%s %d/%d", cursor, padRight(truncate(g.Name, 9), 9), open, len(tasks))) + "\n"
	}

	s += "\n" + HelpStyle.Render("g new group")
	return SidebarStyle.Height(height).Render(s)
}

func (m Model) renderTaskList() string {
	width := m.width - 24
	if width < 30 {
		width = 30
	}
	var s string

	group := m.currentGroup()
	tasks := m.visibleTasks()
	header := fmt.Sprintf("%s (%d tasks)", group.Name, len(tasks))
	if m.filterText != "" {
		header += fmt.Sprintf("  /%s", m.filterText)
	}
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", width-4)) + "\n\n"

	if len(tasks) == 0 {
		s += HelpStyle.Render("  No tasks. Press 'n' to add one.")
	}

	titleWidth := width - 40
	if titleWidth < 10 {
		titleWidth = 10
	}
	for i, t := range tasks {
		cursor := "  "
		style := ItemStyle
		if i == m.taskCursor && m.pane == PaneTaskList {
			cursor = "❯ "
			style = ItemSelectedStyle
		}
		if t.Status == model.StatusDone {
			style = TaskDoneStyle
		}

		marker := " "
		if m.state.Pending(t.ID) {
			marker = m.spinner.View()
		}

		line := style.Render(cursor + FormatStatus(t.Status) + " " + padRight(truncate(t.Title, titleWidth), titleWidth))
		line += " " + FormatPriority(t.Priority)
		if c, ok := model.FindCategory(m.state.Categories, t.CategoryID); ok {
			line += "  " + CategoryBadge(c)
		}
		if t.Date != "" {
			line += "  " + HelpStyle.Render(t.Date)
		}
		s += marker + line + "\n"
		if msg := m.state.EntityError(t.ID); msg != "" {
			s += "     " + ErrorStyle.Render(msg) + "\n"
		}
	}

	return ContentStyle.Width(width).Render(s)
}

// renderBoard lays the visible tasks out in one column per status
func (m Model) renderBoard() string {
	width := m.width - 24
	colWidth := width/3 - 2
	if colWidth < 14 {
		colWidth = 14
	}
	selected, _ := m.currentTask()

	columns := make([]string, 0, 3)
	for _, status := range []model.Status{model.StatusTodo, model.StatusInProgress, model.StatusDone} {
		var col []model.Task
		for _, t := range m.visibleTasks() {
			if t.Status == status {
				col = append(col, t)
			}
		}

		s := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(fmt.Sprintf("%s (%d)", status.Label(), len(col))) + "\n"
		s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", colWidth)) + "\n"
		for _, t := range col {
			style := ItemStyle
			if t.ID == selected.ID && m.pane == PaneTaskList {
				style = ItemSelectedStyle
			}
			s += style.Render(truncate(t.Title, colWidth-2)) + "\n"
			meta := FormatPriority(t.Priority)
			if c, ok := model.FindCategory(m.state.Categories, t.CategoryID); ok {
				meta += " " + CategoryBadge(c)
			}
			s += " " + meta + "\n"
			if msg := m.state.EntityError(t.ID); msg != "" {
				s += " " + ErrorStyle.Render(truncate(msg, colWidth-2)) + "\n"
			}
		}
		columns = append(columns, lipgloss.NewStyle().Width(colWidth).MarginRight(2).Render(s))
	}
	return ContentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}

func (m Model) renderDashboard() string {
	stats := model.ComputeStats(m.state.Tasks, m.state.Categories)
	var s string

	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(fmt.Sprintf("%d tasks", stats.Total)) + "\n\n"
	s += statRow("To Do", stats.Todo, stats.Total, Secondary)
	s += statRow("In Progress", stats.InProgress, stats.Total, InProgress)
	s += statRow("Done", stats.Done, stats.Total, Completed)

	s += "\n" + lipgloss.NewStyle().Bold(true).Render("By category") + "\n"
	for _, cc := range stats.ByCategory {
		s += statRow(cc.Name, cc.Count, stats.Total, categoryColors[cc.Color])
	}
	s += statRow(model.UncategorizedName, stats.Uncategorized, stats.Total, TextMuted)

	return ContentStyle.Render(s)
}

func statRow(label string, n, total int, color lipgloss.Color) string {
	const width = 20
	filled := 0
	if total > 0 {
		filled = n * width / total
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("  %s %s %d\n", padRight(truncate(label, 14), 14), bar, n)
}

func (m Model) renderCategories() string {
	stats := model.ComputeStats(m.state.Tasks, m.state.Categories)
	counts := make(map[string]int, len(stats.ByCategory))
	for _, cc := range stats.ByCategory {
		counts[cc.ID] = cc.Count
	}

	var s string
	s += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Categories") + "\n\n"
	if len(m.state.Categories) == 0 {
		s += HelpStyle.Render("  No categories. Press 'c' to add one.") + "\n"
	}

	for i, c := range m.state.Categories {
		cursor := "  "
		style := ItemStyle
		if i == m.categoryCursor {
			cursor = "❯ "
			style = ItemSelectedStyle
		}
		marker := " "
		if m.state.Pending(c.ID) {
			marker = m.spinner.View()
		}
		s += marker + style.Render(cursor) + CategoryBadge(c) + HelpStyle.Render(fmt.Sprintf("  %s, %d tasks", c.Color.Name(), counts[c.ID])) + "\n"
		if msg := m.state.EntityError(c.ID); msg != "" {
			s += "     " + ErrorStyle.Render(msg) + "\n"
		}
	}

	if msg := m.state.Op(store.OpAddCategory).Error; msg != "" {
		s += "\n" + ErrorStyle.Render(msg) + "\n"
	}
	s += "\n" + HelpStyle.Render("c:new  e:rename  enter:next color  d:delete")
	return ContentStyle.Render(s)
}

func (m Model) renderModal() string {
	var title string
	switch m.mode {
	case ModeAddTask:
		title = fmt.Sprintf("Add Task to: %s", m.currentGroup().Name)
	case ModeAddGroup:
		title = "New Group"
	case ModeAddCategory:
		title = "New Category"
	case ModeEditTask:
		title = "Edit Task"
	case ModeEditCategory:
		title = "Rename Category"
	case ModeConfirmDelete:
		content := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Delete %q?", m.pendingDelete.label)) + "\n\n"
		if m.pendingDelete.kind == store.OpDeleteCategory {
			content += HelpStyle.Render("Its tasks become uncategorized.") + "\n\n"
		}
		content += HelpStyle.Render("y:delete  n:keep")
		return ModalStyle.Render(content)
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n"
	if m.mode == ModeAddCategory {
		content += "\n" + ColorSwatch(model.Palette[m.colorIdx]) + "  " + HelpStyle.Render("tab:next color") + "\n"
	}
	if m.mode == ModeAddTask {
		category := HelpStyle.Render(model.UncategorizedName)
		if c, ok := model.FindCategory(m.state.Categories, m.draftCategory); ok {
			category = CategoryBadge(c)
		}
		content += "\n" + FormatPriority(m.draftPriority) + "  " + category + "\n"
		content += HelpStyle.Render("tab:priority  shift+tab:category") + "\n"
	}
	if m.message != "" {
		content += "\n" + ErrorStyle.Render(m.message) + "\n"
	}
	content += "\n" + HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderToasts() string {
	active := m.toasts.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, t := range active {
		if t.Kind == notify.KindError {
			lines = append(lines, ToastErrorStyle.Render("✗ "+t.Message))
		} else {
			lines = append(lines, ToastSuccessStyle.Render("✓ "+t.Message))
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	if m.mode == ModeFilter {
		return StatusBarStyle.Width(m.width).Render("/" + m.input.View())
	}

	help := "1/2/3:page  n:task  g:group  c:category  s:status  p:priority  d:del  ?:help  q:quit"
	switch {
	case m.state.Error != "":
		help = ErrorStyle.Render(m.state.Error) + "  r:retry"
	case m.message != "":
		help = m.message
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderHelp() string {
	help := `
  TaskDeck - Keyboard Shortcuts

  Navigation
    1 / 2 / 3   Dashboard / Tasks / Categories
    tab         Next page
    h / l       Focus groups / tasks
    j / k       Move down / up
    /           Filter tasks by title
    b           Toggle list / board view
    esc         Clear filter

  Tasks
    n           New task in the selected group
                (tab: priority, shift+tab: category)
    e           Edit title
    s           Cycle status
    p           Cycle priority
    C           Cycle category
    d           Delete

  Groups and categories
    g           New group
    c           New category (tab picks the color)
    e           Rename category
    enter       Next color for category
    d           Delete category

  Other
    r           Reload from server
    ?           Toggle help
    q           Quit

  Press any key to close
`
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2).
		Render(help)
}
