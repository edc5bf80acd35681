package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/notify"
	"github.com/existflow/taskdeck/internal/store"
	"github.com/existflow/taskdeck/server"
)

func newTestStore(t *testing.T, url string) (*store.Store, *notify.Queue) {
	t.Helper()
	toasts := notify.NewQueue(ToastTTL, 3)
	st := store.New(api.NewClient(url), store.WithNotifier(toasts))
	require.NoError(t, st.Load(context.Background()))
	return st, toasts
}

func newHarness(t *testing.T, opts Options) (Model, *store.Store, *notify.Queue) {
	t.Helper()
	s, err := server.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	st, toasts := newTestStore(t, ts.URL)
	m := NewModel(st, toasts, opts)
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, st, toasts
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = send(m, msg)
	}
	return m, cmd
}

// finish runs an operation command and feeds its result back
func finish(t *testing.T, m Model, cmd tea.Cmd) (Model, opDoneMsg) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(opDoneMsg)
	require.True(t, ok, "expected opDoneMsg, got %T", msg)
	m, _ = send(m, done)
	return m, done
}

func seedTask(t *testing.T, st *store.Store, title string) model.Task {
	t.Helper()
	task, err := st.AddTask(context.Background(), model.NewTask{Title: title, GroupID: model.GeneralGroupID})
	require.NoError(t, err)
	return task
}

func toastMessages(q *notify.Queue) []string {
	var out []string
	for _, t := range q.Active() {
		out = append(out, t.Message)
	}
	return out
}

func TestViewBeforeWindowSize(t *testing.T) {
	s, err := server.New(":memory:")
	require.NoError(t, err)
	defer s.Close()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	st, toasts := newTestStore(t, ts.URL)
	assert.Equal(t, "Loading...", NewModel(st, toasts, Options{}).View())
}

func TestAddTaskFromInput(t *testing.T) {
	m, st, toasts := newHarness(t, Options{})

	m, _ = press(m, "n")
	assert.Equal(t, ModeAddTask, m.mode)
	m, _ = press(m, "B", "u", "y", " ", "m", "i", "l", "k")
	m, cmd := press(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)

	m, done := finish(t, m, cmd)
	require.NoError(t, done.err)

	tasks := st.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, model.GeneralGroupID, tasks[0].GroupID)
	assert.Equal(t, model.StatusTodo, tasks[0].Status)
	assert.Contains(t, toastMessages(toasts), store.OpAddTask.SuccessMessage())
	assert.Contains(t, m.View(), "Buy milk")
}

func TestAddTaskRejectsBlankTitle(t *testing.T) {
	m, st, _ := newHarness(t, Options{})

	m, _ = press(m, "n", " ", " ")
	m, cmd := press(m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, ModeAddTask, m.mode)
	assert.Equal(t, "title must not be empty", m.message)
	assert.Empty(t, st.Tasks())

	m, _ = press(m, "esc")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestCycleStatusAndPriority(t *testing.T) {
	m, st, _ := newHarness(t, Options{})
	task := seedTask(t, st, "Write report")
	m, _ = send(m, storeChangedMsg{})

	m, cmd := press(m, "l", "s")
	m, done := finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, store.OpUpdateTask, done.kind)
	assert.Equal(t, task.Status.Next(), st.Tasks()[0].Status)

	m, cmd = press(m, "p")
	_, done = finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, task.Priority.Next(), st.Tasks()[0].Priority)
}

func TestEditTaskTitle(t *testing.T) {
	m, st, _ := newHarness(t, Options{})
	seedTask(t, st, "Draft")
	m, _ = send(m, storeChangedMsg{})

	m, _ = press(m, "l", "e")
	assert.Equal(t, ModeEditTask, m.mode)
	assert.Equal(t, "Draft", m.input.Value())

	m, _ = press(m, "!")
	m, cmd := press(m, "enter")
	_, done := finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, "Draft!", st.Tasks()[0].Title)
}

func TestCategoryLifecycle(t *testing.T) {
	m, st, toasts := newHarness(t, Options{ConfirmDelete: true})
	task := seedTask(t, st, "Write report")
	m, _ = send(m, storeChangedMsg{})

	// blue is preselected, tab moves to indigo
	m, _ = press(m, "c", "W", "o", "r", "k", "tab")
	m, cmd := press(m, "enter")
	m, done := finish(t, m, cmd)
	require.NoError(t, done.err)

	cats := st.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, "Work", cats[0].Name)
	assert.Equal(t, model.ColorIndigo, cats[0].Color)

	m, cmd = press(m, "2", "l", "C")
	m, done = finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, cats[0].ID, st.Tasks()[0].CategoryID)

	m, _ = press(m, "3", "d")
	assert.Equal(t, ModeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "Its tasks become uncategorized.")

	m, cmd = press(m, "y")
	m, done = finish(t, m, cmd)
	require.NoError(t, done.err)

	assert.Empty(t, st.Categories())
	require.Len(t, st.Tasks(), 1)
	assert.Equal(t, task.ID, st.Tasks()[0].ID)
	assert.Empty(t, st.Tasks()[0].CategoryID)
	assert.Contains(t, toastMessages(toasts), store.OpDeleteCategory.SuccessMessage())
	assert.Contains(t, m.View(), "No categories")
}

func TestRenameAndRecolorCategory(t *testing.T) {
	m, st, _ := newHarness(t, Options{})
	_, err := st.AddCategory(context.Background(), "Home", model.ColorRed)
	require.NoError(t, err)
	m, _ = send(m, storeChangedMsg{})

	m, cmd := press(m, "3", "enter")
	m, done := finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, model.ColorYellow, st.Categories()[0].Color)

	m, _ = press(m, "e", "s")
	m, cmd = press(m, "enter")
	_, done = finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, "Homes", st.Categories()[0].Name)
	assert.Equal(t, model.ColorYellow, st.Categories()[0].Color)
}

func TestDeleteCanBeCancelled(t *testing.T) {
	m, st, _ := newHarness(t, Options{ConfirmDelete: true})
	seedTask(t, st, "Keep me")
	m, _ = send(m, storeChangedMsg{})

	m, _ = press(m, "l", "d")
	assert.Equal(t, ModeConfirmDelete, m.mode)
	m, cmd := press(m, "n")
	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, st.Tasks(), 1)
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	m, st, _ := newHarness(t, Options{})
	seedTask(t, st, "Remove me")
	m, _ = send(m, storeChangedMsg{})

	m, cmd := press(m, "l", "d")
	assert.Equal(t, ModeNormal, m.mode)
	_, done := finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Empty(t, st.Tasks())
}

func TestAddGroupAndSelectIt(t *testing.T) {
	m, st, _ := newHarness(t, Options{})

	m, _ = press(m, "g", "W", "o", "r", "k")
	m, cmd := press(m, "enter")
	m, done := finish(t, m, cmd)
	require.NoError(t, done.err)
	require.Len(t, st.Groups(), 2)

	m, _ = press(m, "j")
	assert.Equal(t, "Work", m.currentGroup().Name)

	m, _ = press(m, "n", "x")
	m, cmd = press(m, "enter")
	_, done = finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, st.Groups()[1].ID, st.Tasks()[0].GroupID)
}

func TestDefaultGroupIsPreselected(t *testing.T) {
	s, err := server.New(":memory:")
	require.NoError(t, err)
	defer s.Close()
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	st, toasts := newTestStore(t, ts.URL)
	g, err := st.AddGroup(context.Background(), "Errands")
	require.NoError(t, err)

	m := NewModel(st, toasts, Options{DefaultGroup: g.ID})
	assert.Equal(t, g.ID, m.currentGroup().ID)
}

func TestFilterTasks(t *testing.T) {
	m, st, _ := newHarness(t, Options{})
	seedTask(t, st, "Buy milk")
	seedTask(t, st, "Call mom")
	m, _ = send(m, storeChangedMsg{})
	require.Len(t, m.visibleTasks(), 2)

	m, _ = press(m, "/", "M", "I", "L")
	assert.Equal(t, ModeFilter, m.mode)
	require.Len(t, m.visibleTasks(), 1)
	assert.Equal(t, "Buy milk", m.visibleTasks()[0].Title)

	m, _ = press(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.visibleTasks(), 1)

	m, _ = press(m, "esc")
	assert.Len(t, m.visibleTasks(), 2)
}

func TestServerErrorBecomesToast(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"database is locked"}`))
			return
		}
		if r.URL.Path == "/api/groups" {
			w.Write([]byte(`[{"id":"general","name":"General"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	st, toasts := newTestStore(t, ts.URL)
	m := NewModel(st, toasts, Options{})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = press(m, "c", "W")
	m, cmd := press(m, "enter")
	m, done := finish(t, m, cmd)
	require.Error(t, done.err)

	assert.Equal(t, []string{"database is locked"}, toastMessages(toasts))
	assert.Equal(t, "database is locked", st.Op(store.OpAddCategory).Error)
	assert.Empty(t, st.Categories())

	m, _ = press(m, "3")
	assert.Contains(t, m.View(), "database is locked")
}

func TestPageNavigation(t *testing.T) {
	m, _, _ := newHarness(t, Options{})
	assert.Equal(t, PageTasks, m.page)

	m, _ = press(m, "tab")
	assert.Equal(t, PageCategories, m.page)
	m, _ = press(m, "tab")
	assert.Equal(t, PageDashboard, m.page)
	assert.Contains(t, m.View(), "By category")

	m, _ = press(m, "?")
	assert.Equal(t, ModeHelp, m.mode)
	m, _ = press(m, "x")
	assert.Equal(t, ModeNormal, m.mode)

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestNextCategory(t *testing.T) {
	cats := []model.Category{{ID: "a"}, {ID: "b"}}

	assert.Equal(t, "a", nextCategory(cats, ""))
	assert.Equal(t, "b", nextCategory(cats, "a"))
	assert.Equal(t, "", nextCategory(cats, "b"))
	assert.Equal(t, "", nextCategory(cats, "gone"))
	assert.Equal(t, "", nextCategory(nil, ""))
}

// load runs a load command and feeds its result back
func load(t *testing.T, m Model, cmd tea.Cmd) (Model, loadDoneMsg) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(loadDoneMsg)
	require.True(t, ok, "expected loadDoneMsg, got %T", msg)
	m, _ = send(m, done)
	return m, done
}

func TestFailedLoadKeepsUIOpenAndReloads(t *testing.T) {
	s, err := server.New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	var healthy atomic.Bool
	router := s.Router()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"service unavailable"}`))
			return
		}
		router.ServeHTTP(w, r)
	}))
	defer ts.Close()

	healthy.Store(true)
	client := api.NewClient(ts.URL)
	work, err := client.CreateGroup(context.Background(), "Work")
	require.NoError(t, err)
	healthy.Store(false)

	toasts := notify.NewQueue(ToastTTL, 3)
	st := store.New(client, store.WithNotifier(toasts))
	m := NewModel(st, toasts, Options{DefaultGroup: work.ID})
	require.NotNil(t, m.Init())
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, done := load(t, m, m.loadCmd())
	require.Error(t, done.err)
	assert.Equal(t, "service unavailable", m.state.Error)
	assert.Contains(t, toastMessages(toasts), "service unavailable")
	assert.Contains(t, m.View(), "service unavailable")
	assert.Empty(t, m.state.Groups)

	healthy.Store(true)
	m, cmd := press(m, "r")
	m, done = load(t, m, cmd)
	require.NoError(t, done.err)
	assert.Empty(t, m.state.Error)
	assert.Len(t, m.state.Groups, 2)
	assert.Equal(t, work.ID, m.currentGroup().ID)
	assert.NotContains(t, m.View(), "r:retry")
}

func TestAddTaskWithPriorityAndCategory(t *testing.T) {
	m, st, _ := newHarness(t, Options{})
	cat, err := st.AddCategory(context.Background(), "Work", model.ColorGreen)
	require.NoError(t, err)
	m, _ = send(m, storeChangedMsg{})

	m, _ = press(m, "n", "S", "h", "i", "p")
	assert.Equal(t, model.PriorityMedium, m.draftPriority)

	m, _ = press(m, "tab", "shift+tab")
	assert.Equal(t, model.PriorityMedium.Next(), m.draftPriority)
	assert.Equal(t, cat.ID, m.draftCategory)
	assert.Equal(t, "Ship", m.input.Value())
	assert.Contains(t, m.View(), "Work")

	m, cmd := press(m, "enter")
	_, done := finish(t, m, cmd)
	require.NoError(t, done.err)

	tasks := st.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ship", tasks[0].Title)
	assert.Equal(t, model.PriorityMedium.Next(), tasks[0].Priority)
	assert.Equal(t, model.StatusTodo, tasks[0].Status)
	assert.Equal(t, cat.ID, tasks[0].CategoryID)

	// the next form starts from the defaults again
	m, _ = press(m, "n")
	assert.Equal(t, model.PriorityMedium, m.draftPriority)
	assert.Empty(t, m.draftCategory)
}

func TestBoardView(t *testing.T) {
	m, st, _ := newHarness(t, Options{})
	seedTask(t, st, "Plan")
	shipped := seedTask(t, st, "Ship")
	_, err := st.UpdateTask(context.Background(), shipped.ID, model.TaskUpdate{Status: model.Ptr(model.StatusDone)})
	require.NoError(t, err)
	m, _ = send(m, storeChangedMsg{})

	m, _ = press(m, "b")
	assert.True(t, m.board)
	view := m.View()
	assert.Contains(t, view, "To Do (1)")
	assert.Contains(t, view, "In Progress (0)")
	assert.Contains(t, view, "Done (1)")

	// actions still target the selected task
	m, cmd := press(m, "s")
	_, done := finish(t, m, cmd)
	require.NoError(t, done.err)
	assert.Equal(t, model.StatusInProgress, st.Tasks()[0].Status)

	m, _ = press(m, "b")
	assert.False(t, m.board)
}

func TestTruncateMultibyte(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
	}{
		{"umlauts", "Überprüfung der Zahlen", 10},
		{"wide runes", "日本語のタスク名です", 9},
		{"short", "Plan", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, ansi.StringWidth(got), tt.max)
			assert.Equal(t, tt.max, ansi.StringWidth(padRight(got, tt.max)))
		})
	}
	assert.Equal(t, "Überpr...", truncate("Überprüfung der Zahlen", 9))
}
