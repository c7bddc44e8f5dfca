package upstream

import (
	"context"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
)

// EventSource opens subscriptions to a named channel of an external pub/sub system.
type EventSource interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

// Subscription is one open subscription.
// Next suspends until a message arrives, the subscription fails or ctx is done.
// Close releases the underlying resources and must be safe to call after a failure.
type Subscription interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// Publisher receives every relayed message.
// broadcast.Broadcaster satisfies it.
type Publisher interface {
	Broadcast(ctx context.Context, p broadcast.Payload) (int, error)
}

// Observer is notified about relay activity, e.g. by a metrics collector.
type Observer interface {
	ObserveMessage(recipients int)
	ObserveResubscribe()
}
