package store

import (
	"context"

	"github.com/existflow/taskdeck/internal/model"
)

// AddCategory creates a category
func (s *Store) AddCategory(ctx context.Context, name string, color model.Color) (model.Category, error) {
	return run(ctx, s, OpAddCategory, "",
		func(ctx context.Context) (model.Category, error) {
			return s.remote.CreateCategory(ctx, name, color)
		},
		func(created model.Category) {
			s.categories = append(s.categories, created)
		})
}

// UpdateCategory renames or recolors a category
func (s *Store) UpdateCategory(ctx context.Context, id string, updates model.CategoryUpdate) (model.Category, error) {
	return run(ctx, s, OpUpdateCategory, id,
		func(ctx context.Context) (model.Category, error) {
			return s.remote.UpdateCategory(ctx, id, updates)
		},
		func(updated model.Category) {
			for i := range s.categories {
				if s.categories[i].ID == id {
					s.categories[i] = updated
				}
			}
		})
}

// DeleteCategory removes a category. Tasks that referenced it are kept
// but lose their category; both changes land in the same critical section
// so no reader sees one without the other.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	_, err := run(ctx, s, OpDeleteCategory, id,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.DeleteCategory(ctx, id)
		},
		func(struct{}) {
			for i := range s.tasks {
				if s.tasks[i].CategoryID == id {
					s.tasks[i].CategoryID = ""
				}
			}

			kept := s.categories[:0:0]
			for _, c := range s.categories {
				if c.ID != id {
					kept = append(kept, c)
				}
			}
			s.categories = kept
		})
	return err
}
