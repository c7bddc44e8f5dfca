package stream

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
	"github.com/dmitrymomot/eventrelay/pkg/logger"
)

// Transport is the per-connection downstream side of a session.
// IsConnected must not block.
type Transport interface {
	IsConnected() bool
	Send(msg string) error
}

// Observer is notified when sessions start and end.
type Observer interface {
	ObserveSessionStart()
	ObserveSessionEnd()
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithObserver registers a session observer.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// Session is the lifecycle of one streaming client.
type Session struct {
	id       string
	registry *broadcast.Registry[string]
	queue    *broadcast.Queue[string]
	handle   broadcast.Handle
	log      *slog.Logger
	observer Observer
	stopOnce sync.Once
}

// Start creates a fresh queue and registers it in registry.
// From this point on every broadcast is buffered for the session until Stop.
func Start(registry *broadcast.Registry[string], opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		registry: registry,
		queue:    broadcast.NewQueue[string](),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("stream"), logger.SessionID(s.id))

	s.handle = registry.Register(s.queue)
	if s.observer != nil {
		s.observer.ObserveSessionStart()
	}
	s.log.Debug("session started")
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Next waits for the next queued message.
// It returns ErrSessionClosed once the session is stopped, or ctx.Err().
func (s *Session) Next(ctx context.Context) (string, error) {
	msg, err := s.queue.Pop(ctx)
	if errors.Is(err, broadcast.ErrQueueClosed) {
		return "", ErrSessionClosed
	}
	return msg, err
}

// Serve hands queued messages to t until the client disconnects, ctx is done
// or the session is closed. The liveness probe runs before every wait.
// Disconnects, cancellation and shutdown are normal exits and return nil.
// Stop is always called before Serve returns.
func (s *Session) Serve(ctx context.Context, t Transport) error {
	defer s.Stop()

	for {
		if !t.IsConnected() {
			s.log.DebugContext(ctx, "client disconnected")
			return nil
		}

		msg, err := s.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrSessionClosed) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if err := t.Send(msg); err != nil {
			if !t.IsConnected() {
				return nil
			}
			return errors.Join(ErrSend, err)
		}
	}
}

// Stop deregisters and closes the session queue. It is idempotent and safe
// to call concurrently with Serve.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.registry.Deregister(s.handle)
		s.queue.Close()
		if s.observer != nil {
			s.observer.ObserveSessionEnd()
		}
		s.log.Debug("session stopped")
	})
}
