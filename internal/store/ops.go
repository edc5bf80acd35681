package store

import (
	"errors"
	"strings"

	"github.com/existflow/taskdeck/internal/api"
)

// OpKind identifies one of the mutating operations. Each kind has its
// own loading/error tracking.
type OpKind string

const (
	OpAddTask        OpKind = "addTask"
	OpUpdateTask     OpKind = "updateTask"
	OpDeleteTask     OpKind = "deleteTask"
	OpAddGroup       OpKind = "addGroup"
	OpAddCategory    OpKind = "addCategory"
	OpUpdateCategory OpKind = "updateCategory"
	OpDeleteCategory OpKind = "deleteCategory"
)

// OpKinds lists every operation kind
var OpKinds = []OpKind{
	OpAddTask,
	OpUpdateTask,
	OpDeleteTask,
	OpAddGroup,
	OpAddCategory,
	OpUpdateCategory,
	OpDeleteCategory,
}

// LoadFailed is the message used when the initial load fails without detail
const LoadFailed = "Failed to load data"

var opMessages = map[OpKind][2]string{
	OpAddTask:        {"Task added successfully", "Failed to add task"},
	OpUpdateTask:     {"Task updated successfully", "Failed to update task"},
	OpDeleteTask:     {"Task deleted successfully", "Failed to delete task"},
	OpAddGroup:       {"Group added successfully", "Failed to add group"},
	OpAddCategory:    {"Category added successfully", "Failed to add category"},
	OpUpdateCategory: {"Category updated successfully", "Failed to update category"},
	OpDeleteCategory: {"Category deleted successfully", "Failed to delete category"},
}

// SuccessMessage is the notification emitted when an operation succeeds
func (k OpKind) SuccessMessage() string {
	return opMessages[k][0]
}

// DefaultError is the message recorded when a failure carries none
func (k OpKind) DefaultError() string {
	return opMessages[k][1]
}

// OpState is the observable state of one operation kind. Error is
// empty when there is none.
type OpState struct {
	Loading bool
	Error   string
}

// tracker is the mutable bookkeeping behind an OpState
type tracker struct {
	inFlight int
	err      string
	pending  map[string]int // entity id -> in-flight calls
}

func newTracker() *tracker {
	return &tracker{pending: make(map[string]int)}
}

func (t *tracker) state() OpState {
	return OpState{Loading: t.inFlight > 0, Error: t.err}
}

// OpError is returned by a failed operation. The same message is kept in
// the store until the next call of that kind.
type OpError struct {
	Kind    OpKind
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// failureMessage picks what the user sees: the server's own message if it
// sent one, the operation default for a bare non-2xx, otherwise the
// transport error text.
func failureMessage(err error, fallback string) string {
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	var se *api.StatusError
	if errors.As(err, &se) {
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
