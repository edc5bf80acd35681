package notify

import (
	"sync"
	"time"

	"github.com/existflow/taskdeck/internal/logger"
)

// Kind tells success toasts from error toasts
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

// Toast is one transient notification
type Toast struct {
	Kind    Kind
	Message string
	At      time.Time
}

// LogSink writes notifications to a logger
type LogSink struct {
	log *logger.Logger
}

// NewLogSink returns a sink that logs successes at INFO and errors at ERROR
func NewLogSink(l *logger.Logger) LogSink {
	if l == nil {
		l = logger.Component("notify")
	}
	return LogSink{log: l}
}

// Success logs msg at INFO
func (s LogSink) Success(msg string) { s.log.Info(msg) }

// Error logs msg at ERROR
func (s LogSink) Error(msg string) { s.log.Error(msg) }

// Queue keeps recent toasts for the UI. Entries expire after ttl and at
// most max are retained.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	max    int
	now    func() time.Time
	toasts []Toast
}

// NewQueue creates a toast queue
func NewQueue(ttl time.Duration, max int) *Queue {
	if max <= 0 {
		max = 5
	}
	return &Queue{ttl: ttl, max: max, now: time.Now}
}

// Success queues a success toast
func (q *Queue) Success(msg string) { q.push(KindSuccess, msg) }

// Error queues an error toast
func (q *Queue) Error(msg string) { q.push(KindError, msg) }

func (q *Queue) push(kind Kind, msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.toasts = append(q.toasts, Toast{Kind: kind, Message: msg, At: q.now()})
	if len(q.toasts) > q.max {
		q.toasts = q.toasts[len(q.toasts)-q.max:]
	}
}

// Active returns the toasts that have not expired, oldest first, and
// drops the expired ones
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Sub(t.At) < q.ttl {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
	return append([]Toast(nil), kept...)
}

// Sink is anything that accepts notifications
type Sink interface {
	Success(msg string)
	Error(msg string)
}

// Multi fans a notification out to several sinks
type Multi []Sink

// Success forwards to every sink
func (m Multi) Success(msg string) {
	for _, s := range m {
		s.Success(msg)
	}
}

// Error forwards to every sink
func (m Multi) Error(msg string) {
	for _, s := range m {
		s.Error(msg)
	}
}
