package store

import (
	"context"
	"sync"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
)

// Remote is the API the store mirrors. *api.Client implements it.
type Remote interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, task model.NewTask) (model.Task, error)
	UpdateTask(ctx context.Context, id string, updates model.TaskUpdate) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListGroups(ctx context.Context) ([]model.Group, error)
	CreateGroup(ctx context.Context, name string) (model.Group, error)

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string, color model.Color) (model.Category, error)
	UpdateCategory(ctx context.Context, id string, updates model.CategoryUpdate) (model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Notifier receives a transient message for every success and failure
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Option configures a Store
type Option func(*Store)

// WithNotifier sets the notification sink
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notify = n
		}
	}
}

// WithSerializedOps allows one in-flight call per operation kind. Later
// calls of the same kind wait for the earlier one to finish, so results
// apply in invocation order. Without it calls run concurrently and apply
// in completion order.
func WithSerializedOps() Option {
	return func(s *Store) {
		s.gates = make(map[OpKind]chan struct{}, len(OpKinds))
		for _, k := range OpKinds {
			s.gates[k] = make(chan struct{}, 1)
		}
	}
}

// WithLogger replaces the component logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store is the local mirror of the remote tasks, groups and categories
type Store struct {
	remote Remote
	notify Notifier
	log    *logger.Logger
	gates  map[OpKind]chan struct{} // nil unless serialized

	mu         sync.RWMutex
	tasks      []model.Task
	groups     []model.Group
	categories []model.Category
	loading    bool
	loadErr    string
	ops        map[OpKind]*tracker
	entityErrs map[string]string

	listenMu  sync.Mutex
	listeners map[int]func()
	nextID    int
}

// New creates an empty store. Call Load to populate it.
func New(remote Remote, opts ...Option) *Store {
	s := &Store{
		remote:     remote,
		notify:     nopNotifier{},
		log:        logger.Component("store"),
		tasks:      []model.Task{},
		groups:     []model.Group{},
		categories: []model.Category{},
		ops:        make(map[OpKind]*tracker, len(OpKinds)),
		entityErrs: make(map[string]string),
		listeners:  make(map[int]func()),
	}
	for _, k := range OpKinds {
		s.ops[k] = newTracker()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to be called after every state change. The
// returned func removes it. fn runs on the goroutine that made the change
// and must not block.
func (s *Store) Subscribe(fn func()) func() {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenMu.Lock()
		defer s.listenMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) changed() {
	s.listenMu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// State is a point-in-time copy of everything the view layer renders
type State struct {
	Tasks      []model.Task
	Groups     []model.Group
	Categories []model.Category
	Loading    bool
	Error      string
	Ops        map[OpKind]OpState

	pending    map[string]bool
	entityErrs map[string]string
}

// Op returns the state of one operation kind
func (st State) Op(kind OpKind) OpState {
	return st.Ops[kind]
}

// Pending reports whether an update or delete targeting id is in flight
func (st State) Pending(id string) bool {
	return st.pending[id]
}

// EntityError returns the last failure message of an update or delete
// that targeted id, cleared when the next such call starts
func (st State) EntityError(id string) string {
	return st.entityErrs[id]
}

// TasksInGroup returns the tasks belonging to groupID
func (st State) TasksInGroup(groupID string) []model.Task {
	out := make([]model.Task, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		if t.GroupID == groupID {
			out = append(out, t)
		}
	}
	return out
}

// Snapshot copies the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Tasks:      append([]model.Task(nil), s.tasks...),
		Groups:     append([]model.Group(nil), s.groups...),
		Categories: append([]model.Category(nil), s.categories...),
		Loading:    s.loading,
		Error:      s.loadErr,
		Ops:        make(map[OpKind]OpState, len(s.ops)),
		pending:    make(map[string]bool),
		entityErrs: make(map[string]string, len(s.entityErrs)),
	}
	for k, t := range s.ops {
		st.Ops[k] = t.state()
		for id, n := range t.pending {
			if n > 0 {
				st.pending[id] = true
			}
		}
	}
	for id, msg := range s.entityErrs {
		st.entityErrs[id] = msg
	}
	return st
}

// Tasks returns a copy of the task collection
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Task(nil), s.tasks...)
}

// Groups returns a copy of the group collection
func (s *Store) Groups() []model.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Group(nil), s.groups...)
}

// Categories returns a copy of the category collection
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category(nil), s.categories...)
}

// Loading reports whether the initial load is running
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last load failure, empty if none
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Op returns the loading/error state of one operation kind
func (s *Store) Op(kind OpKind) OpState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.ops[kind]; ok {
		return t.state()
	}
	return OpState{}
}
