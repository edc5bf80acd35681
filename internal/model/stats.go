package model

import "sort"

// CategoryCount is the number of tasks carrying one category
type CategoryCount struct {
	Category
	Count int
}

// Stats summarizes tasks for the dashboard
type Stats struct {
	Total         int
	Todo          int
	InProgress    int
	Done          int
	Uncategorized int
	ByCategory    []CategoryCount // sorted by Count, descending
}

// ComputeStats counts tasks per status and per category. Tasks whose
// category no longer exists are counted as uncategorized.
func ComputeStats(tasks []Task, categories []Category) Stats {
	s := Stats{Total: len(tasks)}

	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		counts[c.ID] = 0
	}

	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			s.Todo++
		case StatusInProgress:
			s.InProgress++
		case StatusDone:
			s.Done++
		}

		if _, ok := counts[t.CategoryID]; ok && t.CategoryID != "" {
			counts[t.CategoryID]++
		} else {
			s.Uncategorized++
		}
	}

	s.ByCategory = make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		s.ByCategory = append(s.ByCategory, CategoryCount{Category: c, Count: counts[c.ID]})
	}
	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Count > s.ByCategory[j].Count
	})

	return s
}
