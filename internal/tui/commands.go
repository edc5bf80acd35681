package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
)

type tickMsg time.Time

// storeChangedMsg is sent whenever the store notifies its subscribers
type storeChangedMsg struct{}

type loadDoneMsg struct{ err error }

// opDoneMsg reports the completion of one store operation
type opDoneMsg struct {
	kind store.OpKind
	err  error
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

func (m Model) loadCmd() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return loadDoneMsg{err: st.Load(context.Background())}
	}
}

func runOp(kind store.OpKind, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{kind: kind, err: fn(context.Background())}
	}
}

func (m Model) addTaskCmd(task model.NewTask) tea.Cmd {
	st := m.store
	return runOp(store.OpAddTask, func(ctx context.Context) error {
		_, err := st.AddTask(ctx, task)
		return err
	})
}

func (m Model) updateTaskCmd(id string, u model.TaskUpdate) tea.Cmd {
	st := m.store
	return runOp(store.OpUpdateTask, func(ctx context.Context) error {
		_, err := st.UpdateTask(ctx, id, u)
		return err
	})
}

func (m Model) addGroupCmd(name string) tea.Cmd {
	st := m.store
	return runOp(store.OpAddGroup, func(ctx context.Context) error {
		_, err := st.AddGroup(ctx, name)
		return err
	})
}

func (m Model) addCategoryCmd(name string, color model.Color) tea.Cmd {
	st := m.store
	return runOp(store.OpAddCategory, func(ctx context.Context) error {
		_, err := st.AddCategory(ctx, name, color)
		return err
	})
}

func (m Model) updateCategoryCmd(id string, u model.CategoryUpdate) tea.Cmd {
	st := m.store
	return runOp(store.OpUpdateCategory, func(ctx context.Context) error {
		_, err := st.UpdateCategory(ctx, id, u)
		return err
	})
}

func (m Model) deleteCmd(t deleteTarget) tea.Cmd {
	st := m.store
	switch t.kind {
	case store.OpDeleteCategory:
		return runOp(t.kind, func(ctx context.Context) error {
			return st.DeleteCategory(ctx, t.id)
		})
	default:
		return runOp(store.OpDeleteTask, func(ctx context.Context) error {
			return st.DeleteTask(ctx, t.id)
		})
	}
}
