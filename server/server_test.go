package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorText(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

func createTask(t *testing.T, s *Server, body map[string]interface{}) model.Task {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Task](t, rec)
}

func createCategory(t *testing.T, s *Server, name string, color model.Color) model.Category {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/categories", map[string]interface{}{"name": name, "color": color})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Category](t, rec)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestGeneralGroupExists(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/groups", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.Group{model.DefaultGroup()}, decode[[]model.Group](t, rec))
}

func TestEmptyCollectionsAreArrays(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/tasks", "/api/categories"} {
		rec := doJSON(t, s, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String(), path)
	}
}

func TestCreateGroup(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/groups", map[string]string{"name": "  Home "})
	require.Equal(t, http.StatusCreated, rec.Code)
	g := decode[model.Group](t, rec)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Home", g.Name)

	rec = doJSON(t, s, http.MethodPost, "/api/groups", map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name must not be empty", errorText(t, rec))

	groups := decode[[]model.Group](t, doJSON(t, s, http.MethodGet, "/api/groups", nil))
	assert.Equal(t, []model.Group{model.DefaultGroup(), g}, groups)
}

func TestCreateTask(t *testing.T) {
	s := newTestServer(t)

	task := createTask(t, s, map[string]interface{}{"title": " Write report ", "groupId": "general"})
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, model.StatusTodo, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.True(t, task.Uncategorized())

	tasks := decode[[]model.Task](t, doJSON(t, s, http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, []model.Task{task}, tasks)
}

func TestCreateTaskOmitsAbsentFields(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/tasks", map[string]interface{}{"title": "a", "groupId": "general"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "categoryId")
	assert.NotContains(t, raw, "description")
	assert.NotContains(t, raw, "date")
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{"empty title", map[string]interface{}{"title": "  ", "groupId": "general"}, "title must not be empty"},
		{"bad status", map[string]interface{}{"title": "a", "groupId": "general", "status": "later"}, `invalid status "later"`},
		{"bad priority", map[string]interface{}{"title": "a", "groupId": "general", "priority": "urgent"}, `invalid priority "urgent"`},
		{"missing group", map[string]interface{}{"title": "a"}, "groupId is required"},
		{"unknown group", map[string]interface{}{"title": "a", "groupId": "nope"}, "unknown group nope"},
		{"unknown category", map[string]interface{}{"title": "a", "groupId": "general", "categoryId": "nope"}, "unknown category nope"},
		{"bad date", map[string]interface{}{"title": "a", "groupId": "general", "date": "tomorrow"}, `invalid date "tomorrow": expected YYYY-MM-DD`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorText(t, rec))
		})
	}

	assert.JSONEq(t, "[]", doJSON(t, s, http.MethodGet, "/api/tasks", nil).Body.String())
}

func TestUpdateTask(t *testing.T) {
	s := newTestServer(t)
	task := createTask(t, s, map[string]interface{}{
		"title": "a", "description": "keep me", "groupId": "general", "date": "2026-01-02",
	})

	rec := doJSON(t, s, http.MethodPut, "/api/tasks/"+task.ID, map[string]interface{}{
		"status": "inprogress", "groupId": "elsewhere",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Task](t, rec)

	assert.Equal(t, model.StatusInProgress, updated.Status)
	assert.Equal(t, "general", updated.GroupID, "groupId in an update is ignored")
	assert.Equal(t, "keep me", updated.Description)
	assert.Equal(t, "2026-01-02", updated.Date)
	assert.Equal(t, task.Title, updated.Title)
}

func TestEmptyUpdateIsNoOp(t *testing.T) {
	s := newTestServer(t)
	task := createTask(t, s, map[string]interface{}{"title": "a", "groupId": "general", "priority": "high"})

	rec := doJSON(t, s, http.MethodPut, "/api/tasks/"+task.ID, map[string]interface{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, task, decode[model.Task](t, rec))
}

func TestUpdateTaskErrors(t *testing.T) {
	s := newTestServer(t)
	task := createTask(t, s, map[string]interface{}{"title": "a", "groupId": "general"})

	rec := doJSON(t, s, http.MethodPut, "/api/tasks/missing", map[string]interface{}{"title": "b"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task not found", errorText(t, rec))

	rec = doJSON(t, s, http.MethodPut, "/api/tasks/"+task.ID, map[string]interface{}{"title": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/api/tasks/"+task.ID, map[string]interface{}{"categoryId": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTask(t *testing.T) {
	s := newTestServer(t)
	task := createTask(t, s, map[string]interface{}{"title": "a", "groupId": "general"})

	rec := doJSON(t, s, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(t, s, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/categories", map[string]interface{}{"name": "Work", "color": "#fff"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cat := createCategory(t, s, "Work", model.ColorBlue)
	assert.Equal(t, model.ColorBlue, cat.Color)

	rec = doJSON(t, s, http.MethodPut, "/api/categories/"+cat.ID, map[string]interface{}{"color": "bg-green-500"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Category{ID: cat.ID, Name: "Work", Color: model.ColorGreen}, decode[model.Category](t, rec))

	rec = doJSON(t, s, http.MethodPut, "/api/categories/missing", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/categories/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCategoryClearsTasks(t *testing.T) {
	s := newTestServer(t)
	work := createCategory(t, s, "Work", model.ColorBlue)
	home := createCategory(t, s, "Home", model.ColorRed)

	a := createTask(t, s, map[string]interface{}{"title": "a", "groupId": "general", "categoryId": work.ID})
	b := createTask(t, s, map[string]interface{}{"title": "b", "groupId": "general", "categoryId": home.ID})
	c := createTask(t, s, map[string]interface{}{"title": "c", "groupId": "general", "categoryId": work.ID})

	rec := doJSON(t, s, http.MethodDelete, "/api/categories/"+work.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	tasks := decode[[]model.Task](t, doJSON(t, s, http.MethodGet, "/api/tasks", nil))
	require.Len(t, tasks, 3)
	assert.Equal(t, a.ID, tasks[0].ID)
	assert.True(t, tasks[0].Uncategorized())
	assert.Equal(t, b.ID, tasks[1].ID)
	assert.Equal(t, home.ID, tasks[1].CategoryID)
	assert.Equal(t, c.ID, tasks[2].ID)
	assert.True(t, tasks[2].Uncategorized())

	cats := decode[[]model.Category](t, doJSON(t, s, http.MethodGet, "/api/categories", nil))
	assert.Equal(t, []model.Category{home}, cats)
}

func TestStoreAgainstServer(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	ctx := context.Background()
	client := api.NewClient(ts.URL)
	seed, err := client.CreateTask(ctx, model.NewTask{Title: "t1", GroupID: model.GeneralGroupID}.WithDefaults())
	require.NoError(t, err)

	st := store.New(client)
	require.NoError(t, st.Load(ctx))
	assert.Equal(t, []model.Task{seed}, st.Tasks())
	assert.Equal(t, []model.Group{model.DefaultGroup()}, st.Groups())
	assert.Empty(t, st.Categories())

	cat, err := st.AddCategory(ctx, "Work", model.ColorBlue)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{cat}, st.Categories())

	_, err = st.UpdateTask(ctx, seed.ID, model.TaskUpdate{CategoryID: model.Ptr(cat.ID)})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, st.Tasks()[0].CategoryID)

	require.NoError(t, st.DeleteCategory(ctx, cat.ID))
	assert.Empty(t, st.Categories())
	assert.True(t, st.Tasks()[0].Uncategorized())

	// the server agrees with the local mirror
	remote, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Tasks(), remote)

	// server-side validation message reaches the operation error
	_, err = st.AddTask(ctx, model.NewTask{Title: "x", GroupID: "missing"}.WithDefaults())
	require.Error(t, err)
	assert.Equal(t, "unknown group missing", st.Op(store.OpAddTask).Error)
	assert.Len(t, st.Tasks(), 1)

	// clearing a category explicitly
	cat2, err := st.AddCategory(ctx, "Home", model.ColorPink)
	require.NoError(t, err)
	_, err = st.UpdateTask(ctx, seed.ID, model.TaskUpdate{CategoryID: model.Ptr(cat2.ID)})
	require.NoError(t, err)
	_, err = st.UpdateTask(ctx, seed.ID, model.TaskUpdate{CategoryID: model.Ptr("")})
	require.NoError(t, err)
	assert.True(t, st.Tasks()[0].Uncategorized())
}
