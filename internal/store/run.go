package store

import (
	"context"

	"github.com/existflow/taskdeck/internal/logger"
)

// run drives one operation through idle -> in-flight -> idle. apply is
// called under the write lock only when the remote call succeeded, so a
// failure never touches the collections. entityID may be empty.
func run[T any](ctx context.Context, s *Store, kind OpKind, entityID string,
	call func(context.Context) (T, error), apply func(T)) (T, error) {

	s.begin(kind, entityID)
	s.changed()

	result, err := acquire(ctx, s, kind, call)

	if err != nil {
		msg := failureMessage(err, kind.DefaultError())

		s.mu.Lock()
		t := s.ops[kind]
		t.err = msg
		s.finish(t, entityID)
		if entityID != "" {
			s.entityErrs[entityID] = msg
		}
		s.mu.Unlock()

		s.log.Warn("Operation failed",
			logger.F("op", kind),
			logger.F("id", entityID),
			logger.F("error", err))
		s.notify.Error(msg)
		s.changed()

		var zero T
		return zero, &OpError{Kind: kind, Message: msg, Err: err}
	}

	s.mu.Lock()
	apply(result)
	s.finish(s.ops[kind], entityID)
	s.mu.Unlock()

	s.log.Debug("Operation succeeded", logger.F("op", kind), logger.F("id", entityID))
	s.notify.Success(kind.SuccessMessage())
	s.changed()

	return result, nil
}

func (s *Store) begin(kind OpKind, entityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.ops[kind]
	t.inFlight++
	t.err = ""
	if entityID != "" {
		t.pending[entityID]++
		delete(s.entityErrs, entityID)
	}
}

// finish must be called with s.mu held
func (s *Store) finish(t *tracker, entityID string) {
	t.inFlight--
	if entityID == "" {
		return
	}
	if t.pending[entityID]--; t.pending[entityID] <= 0 {
		delete(t.pending, entityID)
	}
}

// acquire runs call, first waiting for the kind's gate when same-kind
// calls are serialized. Giving up on ctx while waiting counts as a failure.
func acquire[T any](ctx context.Context, s *Store, kind OpKind, call func(context.Context) (T, error)) (T, error) {
	gate, ok := s.gates[kind]
	if !ok {
		return call(ctx)
	}

	select {
	case gate <- struct{}{}:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	defer func() { <-gate }()

	return call(ctx)
}
