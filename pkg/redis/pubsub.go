package redis

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/eventrelay/pkg/upstream"
)

// PubSub is an upstream.EventSource backed by Redis SUBSCRIBE.
type PubSub struct {
	client redis.UniversalClient
}

// NewPubSub creates an event source on top of client.
func NewPubSub(client redis.UniversalClient) *PubSub {
	return &PubSub{client: client}
}

// Subscribe subscribes to channel and waits for the server confirmation,
// so a returned subscription is known to be live.
func (p *PubSub) Subscribe(ctx context.Context, channel string) (upstream.Subscription, error) {
	ps := p.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, errors.Join(ErrSubscribeFailed, err)
	}

	s := &subscription{
		ps:      ps,
		results: make(chan result),
		done:    make(chan struct{}),
	}
	go s.read()
	return s, nil
}

type result struct {
	payload string
	err     error
}

// subscription reads on a dedicated goroutine because a blocked
// ReceiveMessage does not observe context cancellation; Close interrupts it.
type subscription struct {
	ps      *redis.PubSub
	results chan result
	done    chan struct{}
	once    sync.Once
	err     error
}

func (s *subscription) read() {
	for {
		msg, err := s.ps.ReceiveMessage(context.Background())
		var r result
		if err != nil {
			r.err = errors.Join(ErrReadFailed, err)
		} else {
			r.payload = msg.Payload
		}

		select {
		case s.results <- r:
		case <-s.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Next returns the payload of the next message published on the channel.
func (s *subscription) Next(ctx context.Context) (string, error) {
	select {
	case <-s.done:
		return "", ErrSubscriptionClosed
	default:
	}

	select {
	case r := <-s.results:
		return r.payload, r.err
	case <-s.done:
		return "", ErrSubscriptionClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close unsubscribes and releases the connection. It is idempotent.
func (s *subscription) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.err = s.ps.Close()
	})
	return s.err
}
