package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
)

// Load fetches all three collections. They are fetched concurrently and
// committed together: if any fetch fails the previous collections stay in
// place and the failure is recorded as the store error.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.changed()

	var (
		tasks      []model.Task
		groups     []model.Group
		categories []model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.remote.ListTasks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.remote.ListGroups(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.remote.ListCategories(gctx)
		return err
	})
	err := g.Wait()

	if err != nil {
		msg := failureMessage(err, LoadFailed)

		s.mu.Lock()
		s.loadErr = msg
		s.loading = false
		s.mu.Unlock()

		s.log.Error("Initial load failed", logger.F("error", err))
		s.notify.Error(msg)
		s.changed()
		return &OpError{Kind: "load", Message: msg, Err: err}
	}

	s.mu.Lock()
	s.tasks = nonNil(tasks)
	s.groups = nonNil(groups)
	s.categories = nonNil(categories)
	s.loadErr = ""
	s.loading = false
	s.mu.Unlock()

	s.log.Info("Data loaded",
		logger.F("tasks", len(tasks)),
		logger.F("groups", len(groups)),
		logger.F("categories", len(categories)))
	s.changed()
	return nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
