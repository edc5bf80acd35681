package store

import (
	"context"

	"github.com/existflow/taskdeck/internal/model"
)

// AddTask creates a task and appends the server's copy. The caller picks
// the group; the store does not validate the payload.
func (s *Store) AddTask(ctx context.Context, task model.NewTask) (model.Task, error) {
	return run(ctx, s, OpAddTask, "",
		func(ctx context.Context) (model.Task, error) {
			return s.remote.CreateTask(ctx, task)
		},
		func(created model.Task) {
			s.tasks = append(s.tasks, created)
		})
}

// UpdateTask sends a partial update and replaces the matching task with
// the server's copy. The group of a task is never changed here.
func (s *Store) UpdateTask(ctx context.Context, id string, updates model.TaskUpdate) (model.Task, error) {
	return run(ctx, s, OpUpdateTask, id,
		func(ctx context.Context) (model.Task, error) {
			return s.remote.UpdateTask(ctx, id, updates)
		},
		func(updated model.Task) {
			for i := range s.tasks {
				if s.tasks[i].ID == id {
					s.tasks[i] = updated
				}
			}
		})
}

// DeleteTask removes a task
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	_, err := run(ctx, s, OpDeleteTask, id,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.DeleteTask(ctx, id)
		},
		func(struct{}) {
			s.tasks = removeTask(s.tasks, id)
		})
	return err
}

func removeTask(tasks []model.Task, id string) []model.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
