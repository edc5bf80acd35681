package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/existflow/taskdeck/internal/model"
)

// fakeRemote is an in-memory API. Any *Func field overrides the default
// behavior of its method.
type fakeRemote struct {
	mu         sync.Mutex
	tasks      []model.Task
	groups     []model.Group
	categories []model.Category
	seq        int

	ListTasksFunc      func(ctx context.Context) ([]model.Task, error)
	ListGroupsFunc     func(ctx context.Context) ([]model.Group, error)
	ListCategoriesFunc func(ctx context.Context) ([]model.Category, error)
	CreateTaskFunc     func(ctx context.Context, t model.NewTask) (model.Task, error)
	UpdateTaskFunc     func(ctx context.Context, id string, u model.TaskUpdate) (model.Task, error)
	DeleteTaskFunc     func(ctx context.Context, id string) error
	CreateGroupFunc    func(ctx context.Context, name string) (model.Group, error)
	CreateCategoryFunc func(ctx context.Context, name string, c model.Color) (model.Category, error)
	UpdateCategoryFunc func(ctx context.Context, id string, u model.CategoryUpdate) (model.Category, error)
	DeleteCategoryFunc func(ctx context.Context, id string) error
}

func (f *fakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRemote) ListTasks(ctx context.Context) ([]model.Task, error) {
	if f.ListTasksFunc != nil {
		return f.ListTasksFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Task(nil), f.tasks...), nil
}

func (f *fakeRemote) ListGroups(ctx context.Context) ([]model.Group, error) {
	if f.ListGroupsFunc != nil {
		return f.ListGroupsFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Group(nil), f.groups...), nil
}

func (f *fakeRemote) ListCategories(ctx context.Context) ([]model.Category, error) {
	if f.ListCategoriesFunc != nil {
		return f.ListCategoriesFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Category(nil), f.categories...), nil
}

func (f *fakeRemote) CreateTask(ctx context.Context, t model.NewTask) (model.Task, error) {
	if f.CreateTaskFunc != nil {
		return f.CreateTaskFunc(ctx, t)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := model.Task{
		ID: f.nextID("t"), Title: t.Title, Description: t.Description, Status: t.Status,
		Priority: t.Priority, CategoryID: t.CategoryID, Date: t.Date, GroupID: t.GroupID,
	}
	f.tasks = append(f.tasks, created)
	return created, nil
}

func (f *fakeRemote) UpdateTask(ctx context.Context, id string, u model.TaskUpdate) (model.Task, error) {
	if f.UpdateTaskFunc != nil {
		return f.UpdateTaskFunc(ctx, id, u)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = u.Apply(t)
			return f.tasks[i], nil
		}
	}
	return model.Task{}, fmt.Errorf("task %s not found", id)
}

func (f *fakeRemote) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteTaskFunc != nil {
		return f.DeleteTaskFunc(ctx, id)
	}
	return nil
}

func (f *fakeRemote) CreateGroup(ctx context.Context, name string) (model.Group, error) {
	if f.CreateGroupFunc != nil {
		return f.CreateGroupFunc(ctx, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	g := model.Group{ID: f.nextID("g"), Name: name}
	f.groups = append(f.groups, g)
	return g, nil
}

func (f *fakeRemote) CreateCategory(ctx context.Context, name string, c model.Color) (model.Category, error) {
	if f.CreateCategoryFunc != nil {
		return f.CreateCategoryFunc(ctx, name, c)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cat := model.Category{ID: f.nextID("cat"), Name: name, Color: c}
	f.categories = append(f.categories, cat)
	return cat, nil
}

func (f *fakeRemote) UpdateCategory(ctx context.Context, id string, u model.CategoryUpdate) (model.Category, error) {
	if f.UpdateCategoryFunc != nil {
		return f.UpdateCategoryFunc(ctx, id, u)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.categories {
		if c.ID == id {
			f.categories[i] = u.Apply(c)
			return f.categories[i], nil
		}
	}
	return model.Category{}, fmt.Errorf("category %s not found", id)
}

func (f *fakeRemote) DeleteCategory(ctx context.Context, id string) error {
	if f.DeleteCategoryFunc != nil {
		return f.DeleteCategoryFunc(ctx, id)
	}
	return nil
}

// recorder collects notifications
type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}
