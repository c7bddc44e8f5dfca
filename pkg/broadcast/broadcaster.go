package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/eventrelay/pkg/logger"
)

// Observer is notified after every broadcast.
// delivered counts queues that accepted the message; stale counts queues
// that were closed between the snapshot and the push.
type Observer interface {
	ObserveBroadcast(delivered, stale int)
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Broadcaster) {
		if l != nil {
			b.log = l
		}
	}
}

// WithObserver registers a broadcast observer, e.g. a metrics collector.
func WithObserver(o Observer) Option {
	return func(b *Broadcaster) { b.observer = o }
}

// Broadcaster pushes payloads to every queue in a Registry.
// All methods are safe for concurrent use.
type Broadcaster struct {
	registry *Registry[string]
	log      *slog.Logger
	observer Observer

	// mu admits one broadcast at a time so that every queue sees the
	// broadcasts in the same order they were admitted. Pushes never block,
	// so the critical section is short and contains no suspension point.
	mu sync.Mutex
}

// NewBroadcaster creates a Broadcaster that fans out to the queues of registry.
func NewBroadcaster(registry *Registry[string], opts ...Option) *Broadcaster {
	b := &Broadcaster{
		registry: registry,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Broadcast encodes p once and pushes the result onto every queue that is
// registered at the moment of the call. It returns the number of queues that
// accepted the message. Delivery is fire-and-forget: there is no
// acknowledgement, retry or replay for clients that register later.
func (b *Broadcaster) Broadcast(ctx context.Context, p Payload) (int, error) {
	if p == nil {
		return 0, ErrNilPayload
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	msg, err := p.Encode()
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	queues := b.registry.Snapshot()
	delivered, stale := 0, 0
	for _, q := range queues {
		if q.Push(msg) {
			delivered++
		} else {
			stale++
		}
	}
	b.mu.Unlock()

	if b.observer != nil {
		b.observer.ObserveBroadcast(delivered, stale)
	}
	b.log.DebugContext(ctx, "payload broadcast",
		logger.Recipients(delivered),
		logger.Stale(stale),
	)

	return delivered, nil
}
