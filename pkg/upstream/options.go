package upstream

import (
	"log/slog"

	"github.com/sethvargo/go-retry"
)

// Option configures a Relay.
type Option func(*Relay)

// WithConfig sets the backoff delays. Zero values fall back to the defaults.
func WithConfig(cfg Config) Option {
	return func(r *Relay) { r.cfg = cfg.withDefaults() }
}

// WithLogger sets the relay logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Relay) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver registers an activity observer.
func WithObserver(o Observer) Option {
	return func(r *Relay) { r.observer = o }
}

// WithBackoff replaces the backoff policy. newBackoff is called whenever the
// policy must start over, i.e. at startup and after every successful subscribe.
func WithBackoff(newBackoff func() retry.Backoff) Option {
	return func(r *Relay) {
		if newBackoff != nil {
			r.newBackoff = newBackoff
		}
	}
}
