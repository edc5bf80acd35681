package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	cats := []Category{
		{ID: "a", Name: "A", Color: ColorRed},
		{ID: "b", Name: "B", Color: ColorBlue},
	}
	tasks := []Task{
		{ID: "1", Status: StatusTodo, CategoryID: "b"},
		{ID: "2", Status: StatusInProgress, CategoryID: "b"},
		{ID: "3", Status: StatusDone, CategoryID: "a"},
		{ID: "4", Status: StatusDone},
		{ID: "5", Status: StatusTodo, CategoryID: "deleted"},
	}

	s := ComputeStats(tasks, cats)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Todo)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 2, s.Done)
	assert.Equal(t, 2, s.Uncategorized)

	if assert.Len(t, s.ByCategory, 2) {
		assert.Equal(t, "b", s.ByCategory[0].ID)
		assert.Equal(t, 2, s.ByCategory[0].Count)
		assert.Equal(t, "a", s.ByCategory[1].ID)
		assert.Equal(t, 1, s.ByCategory[1].Count)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil, nil)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.ByCategory)
}
