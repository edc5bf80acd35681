package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/existflow/taskdeck/internal/model"
)

// ErrNotFound is returned when the target row does not exist
var ErrNotFound = errors.New("not found")

var (
	taskColumns     = []string{"id", "title", "description", "status", "priority", "category_id", "due_date", "group_id"}
	groupColumns    = []string{"id", "name"}
	categoryColumns = []string{"id", "name", "color"}
)

type taskRow struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Status      string `db:"status"`
	Priority    string `db:"priority"`
	CategoryID  string `db:"category_id"`
	Date        string `db:"due_date"`
	GroupID     string `db:"group_id"`
}

func (r taskRow) task() model.Task {
	return model.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      model.Status(r.Status),
		Priority:    model.Priority(r.Priority),
		CategoryID:  r.CategoryID,
		Date:        r.Date,
		GroupID:     r.GroupID,
	}
}

type groupRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type categoryRow struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Color string `db:"color"`
}

func (r categoryRow) category() model.Category {
	return model.Category{ID: r.ID, Name: r.Name, Color: model.Color(r.Color)}
}

// Repository reads and writes tasks, groups and categories. Rows come back
// in creation order.
type Repository struct {
	db    *sqlx.DB
	sb    sq.StatementBuilderType
	now   func() time.Time
	newID func() string
}

// NewRepository wraps an open, migrated database
func NewRepository(db *sqlx.DB, dialect Dialect) *Repository {
	return &Repository{
		db:    db,
		sb:    sq.StatementBuilder.PlaceholderFormat(dialect.placeholders()),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// ListTasks returns every task
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	query, args, err := r.sb.Select(taskColumns...).From("tasks").OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	tasks := make([]model.Task, len(rows))
	for i, row := range rows {
		tasks[i] = row.task()
	}
	return tasks, nil
}

// CreateTask inserts a validated task and returns it with its new id
func (r *Repository) CreateTask(ctx context.Context, in model.NewTask) (model.Task, error) {
	title, _ := model.ValidateTitle(in.Title)
	task := model.Task{
		ID:          r.newID(),
		Title:       title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		CategoryID:  in.CategoryID,
		Date:        in.Date,
		GroupID:     in.GroupID,
	}

	query, args, err := r.sb.Insert("tasks").
		Columns(append(taskColumns, "created_at")...).
		Values(task.ID, task.Title, task.Description, string(task.Status), string(task.Priority),
			task.CategoryID, task.Date, task.GroupID, r.now().UnixNano()).
		ToSql()
	if err != nil {
		return model.Task{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a partial update and returns the stored result
func (r *Repository) UpdateTask(ctx context.Context, id string, u model.TaskUpdate) (model.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.sb.Select(taskColumns...).From("tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return model.Task{}, err
	}

	var row taskRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("loading task: %w", err)
	}

	task := u.Apply(row.task())
	if !u.IsEmpty() {
		query, args, err = r.sb.Update("tasks").SetMap(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      string(task.Status),
			"priority":    string(task.Priority),
			"category_id": task.CategoryID,
			"due_date":    task.Date,
		}).Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return model.Task{}, err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return model.Task{}, fmt.Errorf("updating task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Task{}, fmt.Errorf("committing task update: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("tasks").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return r.execAffecting(ctx, r.db, query, args, "deleting task")
}

// ListGroups returns every group, General first
func (r *Repository) ListGroups(ctx context.Context) ([]model.Group, error) {
	query, args, err := r.sb.Select(groupColumns...).From("task_groups").OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []groupRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	groups := make([]model.Group, len(rows))
	for i, row := range rows {
		groups[i] = model.Group{ID: row.ID, Name: row.Name}
	}
	return groups, nil
}

// GroupExists reports whether a group with id exists
func (r *Repository) GroupExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "task_groups", id)
}

// CategoryExists reports whether a category with id exists
func (r *Repository) CategoryExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "categories", id)
}

func (r *Repository) exists(ctx context.Context, table, id string) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return false, fmt.Errorf("checking %s: %w", table, err)
	}
	return n > 0, nil
}

// CreateGroup inserts a group
func (r *Repository) CreateGroup(ctx context.Context, name string) (model.Group, error) {
	g := model.Group{ID: r.newID(), Name: strings.TrimSpace(name)}

	query, args, err := r.sb.Insert("task_groups").
		Columns("id", "name", "created_at").
		Values(g.ID, g.Name, r.now().UnixNano()).
		ToSql()
	if err != nil {
		return model.Group{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Group{}, fmt.Errorf("inserting group: %w", err)
	}
	return g, nil
}

// ListCategories returns every category
func (r *Repository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query, args, err := r.sb.Select(categoryColumns...).From("categories").OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, err
	}

	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	categories := make([]model.Category, len(rows))
	for i, row := range rows {
		categories[i] = row.category()
	}
	return categories, nil
}

// CreateCategory inserts a category
func (r *Repository) CreateCategory(ctx context.Context, name string, color model.Color) (model.Category, error) {
	c := model.Category{ID: r.newID(), Name: strings.TrimSpace(name), Color: color}

	query, args, err := r.sb.Insert("categories").
		Columns("id", "name", "color", "created_at").
		Values(c.ID, c.Name, string(c.Color), r.now().UnixNano()).
		ToSql()
	if err != nil {
		return model.Category{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.Category{}, fmt.Errorf("inserting category: %w", err)
	}
	return c, nil
}

// UpdateCategory applies a partial update and returns the stored result
func (r *Repository) UpdateCategory(ctx context.Context, id string, u model.CategoryUpdate) (model.Category, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Category{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.sb.Select(categoryColumns...).From("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return model.Category{}, err
	}

	var row categoryRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Category{}, ErrNotFound
		}
		return model.Category{}, fmt.Errorf("loading category: %w", err)
	}

	c := u.Apply(row.category())
	query, args, err = r.sb.Update("categories").
		Set("name", c.Name).
		Set("color", string(c.Color)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Category{}, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return model.Category{}, fmt.Errorf("updating category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Category{}, fmt.Errorf("committing category update: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category and clears it from every task that
// referenced it, in one transaction. It returns the number of tasks
// that lost their category.
func (r *Repository) DeleteCategory(ctx context.Context, id string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.sb.Update("tasks").Set("category_id", "").Where(sq.Eq{"category_id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clearing category from tasks: %w", err)
	}
	cleared, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	query, args, err = r.sb.Delete("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	if err := r.execAffecting(ctx, tx, query, args, "deleting category"); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing category delete: %w", err)
	}
	return cleared, nil
}

// execAffecting runs a statement that must touch at least one row
func (r *Repository) execAffecting(ctx context.Context, ex sqlx.ExecerContext, query string, args []interface{}, what string) error {
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
