package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the workflow state of a task
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
)

var statusOrder = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, v := range statusOrder {
		if s == v {
			return true
		}
	}
	return false
}

// Label returns the display name of the status
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// Next cycles todo -> inprogress -> done -> todo
func (s Status) Next() Status {
	return cycle(statusOrder, s)
}

// Priority levels for tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// cycling order used by the task form, highest first
var priorityOrder = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	for _, v := range priorityOrder {
		if p == v {
			return true
		}
	}
	return false
}

// Label returns the display name of the priority
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}

// Next cycles high -> medium -> low -> high
func (p Priority) Next() Priority {
	return cycle(priorityOrder, p)
}

func cycle[T comparable](order []T, cur T) T {
	for i, v := range order {
		if v == cur {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// DateLayout is the calendar date format used for Task.Date
const DateLayout = "2006-01-02"

// Task represents a single unit of work owned by one group
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	CategoryID  string   `json:"categoryId,omitempty"`
	Date        string   `json:"date,omitempty"`
	GroupID     string   `json:"groupId"`
}

// Uncategorized reports whether the task carries no category reference
func (t Task) Uncategorized() bool {
	return t.CategoryID == ""
}

// NewTask is the creation payload: a Task without its server-assigned id
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	CategoryID  string   `json:"categoryId,omitempty"`
	Date        string   `json:"date,omitempty"`
	GroupID     string   `json:"groupId"`
}

// WithDefaults fills in status and priority when the caller left them empty
func (n NewTask) WithDefaults() NewTask {
	if n.Status == "" {
		n.Status = StatusTodo
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	return n
}

// Validate checks the payload the way the server does before inserting it
func (n NewTask) Validate() error {
	if _, err := ValidateTitle(n.Title); err != nil {
		return err
	}
	if !n.Status.Valid() {
		return fmt.Errorf("invalid status %q", n.Status)
	}
	if !n.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", n.Priority)
	}
	if n.GroupID == "" {
		return errors.New("groupId is required")
	}
	return ValidateDate(n.Date)
}

// TaskUpdate is a partial task update. Nil fields are left untouched.
// There is deliberately no GroupID: a task never moves between groups.
// A non-nil empty CategoryID clears the category.
type TaskUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Date        *string   `json:"date,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.CategoryID == nil && u.Date == nil
}

// Validate checks the fields that are present
func (u TaskUpdate) Validate() error {
	if u.Title != nil {
		if _, err := ValidateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("invalid status %q", *u.Status)
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", *u.Priority)
	}
	if u.Date != nil {
		return ValidateDate(*u.Date)
	}
	return nil
}

// Apply returns t with the update's fields applied. ID and GroupID never change.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = strings.TrimSpace(*u.Title)
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.CategoryID != nil {
		t.CategoryID = *u.CategoryID
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	return t
}

// ValidateTitle trims s and rejects empty results
func ValidateTitle(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", errors.New("title must not be empty")
	}
	return trimmed, nil
}

// ValidateDate accepts an empty string or a YYYY-MM-DD calendar date
func ValidateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return nil
}

// Ptr returns a pointer to v, handy for building partial updates
func Ptr[T any](v T) *T {
	return &v
}
