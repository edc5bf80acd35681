package store

import (
	"context"

	"github.com/existflow/taskdeck/internal/model"
)

// AddGroup creates a group. Groups are never updated or deleted.
func (s *Store) AddGroup(ctx context.Context, name string) (model.Group, error) {
	return run(ctx, s, OpAddGroup, "",
		func(ctx context.Context) (model.Group, error) {
			return s.remote.CreateGroup(ctx, name)
		},
		func(created model.Group) {
			s.groups = append(s.groups, created)
		})
}
