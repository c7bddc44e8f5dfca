package upstream

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
	"github.com/dmitrymomot/eventrelay/pkg/logger"
)

// Relay subscribes to one channel of an EventSource and forwards every
// message to a Publisher until its context is cancelled.
type Relay struct {
	source   EventSource
	channel  string
	target   Publisher
	cfg      Config
	log      *slog.Logger
	observer Observer

	newBackoff func() retry.Backoff
	state      atomic.Int32
}

// New creates a stopped relay. Call Run to start relaying.
func New(source EventSource, channel string, target Publisher, opts ...Option) *Relay {
	r := &Relay{
		source:  source,
		channel: channel,
		target:  target,
		cfg:     Config{}.withDefaults(),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.newBackoff == nil {
		cfg := r.cfg
		r.newBackoff = func() retry.Backoff {
			return retry.WithJitterPercent(jitterPercent,
				retry.WithCappedDuration(cfg.MaxDelay, retry.NewExponential(cfg.BaseDelay)))
		}
	}
	r.log = r.log.With(logger.Component("upstream"), logger.Channel(channel))
	return r
}

// State returns the current lifecycle state.
func (r *Relay) State() State {
	return State(r.state.Load())
}

func (r *Relay) setState(s State) {
	if State(r.state.Swap(int32(s))) != s {
		r.log.Debug("relay state changed", logger.State(s.String()))
	}
}

// Run relays messages until ctx is cancelled and then returns nil.
// Subscription failures are logged and followed by a resubscription after
// the next backoff delay; they never end Run.
func (r *Relay) Run(ctx context.Context) error {
	defer r.setState(StateStopped)

	backoff := r.newBackoff()
	attempt := 0

	for {
		if ctx.Err() != nil {
			return nil
		}

		r.setState(StateSubscribing)
		sub, err := r.source.Subscribe(ctx, r.channel)
		if err != nil {
			err = errors.Join(ErrSubscribe, err)
		} else {
			backoff = r.newBackoff()
			attempt = 0
			r.setState(StateListening)
			r.log.InfoContext(ctx, "subscribed to upstream channel")
			err = r.listen(ctx, sub)
		}

		if ctx.Err() != nil {
			return nil
		}

		attempt++
		delay, ok := backoff.Next()
		if !ok {
			delay = r.cfg.MaxDelay
		}
		r.log.WarnContext(ctx, "upstream subscription failed, resubscribing",
			logger.Error(err),
			logger.Attempt(attempt),
			logger.Delay(delay),
		)
		if r.observer != nil {
			r.observer.ObserveResubscribe()
		}

		if !sleep(ctx, delay) {
			return nil
		}
	}
}

// listen reads from sub until it fails or ctx is done. sub is always closed.
func (r *Relay) listen(ctx context.Context, sub Subscription) error {
	defer func() {
		if err := sub.Close(); err != nil {
			r.log.Debug("failed to close subscription", logger.Error(err))
		}
	}()

	for {
		msg, err := sub.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Join(ErrSubscriptionLost, err)
		}

		n, err := r.target.Broadcast(ctx, broadcast.Raw(msg))
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.WarnContext(ctx, "failed to broadcast upstream message", logger.Error(err))
			continue
		}
		if r.observer != nil {
			r.observer.ObserveMessage(n)
		}
	}
}

// sleep waits for d and reports false if ctx was cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
