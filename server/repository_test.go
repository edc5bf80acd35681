package server

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/taskdeck/internal/model"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(sqlx.NewDb(db, "postgres"), DialectPostgres)
	repo.now = func() time.Time { return time.Unix(0, 42) }
	repo.newID = func() string { return "id-1" }
	return repo, mock
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://localhost:5432/taskdeck"))
	assert.Equal(t, DialectPostgres, DialectFor("postgresql://u@h/db?sslmode=disable"))
	assert.Equal(t, DialectSQLite, DialectFor("/var/lib/taskdeck.db"))
	assert.Equal(t, DialectSQLite, DialectFor(":memory:"))
}

func TestRepositoryListTasksPostgres(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT id, title, description, status, priority, category_id, due_date, group_id FROM tasks ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow("t1", "Write report", "", "todo", "medium", "", "", "general").
			AddRow("t2", "Review", "notes", "done", "high", "c1", "2026-03-01", "general"))

	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, model.Task{ID: "t1", Title: "Write report", Status: model.StatusTodo,
		Priority: model.PriorityMedium, GroupID: "general"}, tasks[0])
	assert.Equal(t, "c1", tasks[1].CategoryID)
	assert.Equal(t, "2026-03-01", tasks[1].Date)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateTaskPostgres(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`INSERT INTO tasks \(id,title,description,status,priority,category_id,due_date,group_id,created_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9\)`).
		WithArgs("id-1", "Plan", "", "todo", "high", "", "", "general", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	task, err := repo.CreateTask(context.Background(), model.NewTask{
		Title: " Plan ", Status: model.StatusTodo, Priority: model.PriorityHigh, GroupID: "general",
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, "Plan", task.Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateTaskNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM tasks WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.UpdateTask(context.Background(), "missing", model.TaskUpdate{Title: model.Ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateTaskPostgres(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM tasks WHERE id = \$1`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow("t1", "Old", "d", "todo", "low", "c1", "", "general"))
	mock.ExpectExec(`UPDATE tasks SET category_id = \$1, description = \$2, due_date = \$3, priority = \$4, status = \$5, title = \$6 WHERE id = \$7`).
		WithArgs("", "d", "", "low", "done", "Old", "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	task, err := repo.UpdateTask(context.Background(), "t1", model.TaskUpdate{
		Status:     model.Ptr(model.StatusDone),
		CategoryID: model.Ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, task.Status)
	assert.True(t, task.Uncategorized())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteCategoryPostgres(t *testing.T) {
	t.Run("clears tasks and removes the category in one transaction", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE tasks SET category_id = \$1 WHERE category_id = \$2`).
			WithArgs("", "cat-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
			WithArgs("cat-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		cleared, err := repo.DeleteCategory(context.Background(), "cat-1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), cleared)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown category rolls back", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE tasks SET category_id = \$1 WHERE category_id = \$2`).
			WithArgs("", "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM categories WHERE id = \$1`).
			WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.DeleteCategory(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryDeleteTaskNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteTask(context.Background(), "gone"), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
