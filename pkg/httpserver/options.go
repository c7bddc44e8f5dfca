package httpserver

import (
	"log/slog"
	"net"
	"time"
)

// Option configures the HTTP server.
type Option func(*config)

// WithAddr sets the listen address. Use port 0 to pick a free port; the bound
// address is passed to OnListen callbacks.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty listen address")
	}
	return func(c *config) { c.addr = addr }
}

// WithReadTimeout bounds reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	mustBePositive("read timeout", d)
	return func(c *config) { c.readTimeout = d }
}

// WithWriteTimeout bounds response writes. Leave it unset for servers that
// carry event streams.
func WithWriteTimeout(d time.Duration) Option {
	mustBePositive("write timeout", d)
	return func(c *config) { c.writeTimeout = d }
}

// WithIdleTimeout bounds how long keep-alive connections wait for the next request.
func WithIdleTimeout(d time.Duration) Option {
	mustBePositive("idle timeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	mustBePositive("shutdown timeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger sets the server logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// OnListen registers a callback invoked with the bound address once the
// listener is open and before requests are served.
func OnListen(fn func(addr net.Addr)) Option {
	if fn == nil {
		panic("httpserver: nil OnListen callback")
	}
	return func(c *config) { c.onListen = append(c.onListen, fn) }
}

// OnShutdown registers a callback invoked when shutdown begins, before
// in-flight requests are drained. Use it to end long-lived responses.
func OnShutdown(fn func()) Option {
	if fn == nil {
		panic("httpserver: nil OnShutdown callback")
	}
	return func(c *config) { c.onShutdown = append(c.onShutdown, fn) }
}

func mustBePositive(name string, d time.Duration) {
	if d <= 0 {
		panic("httpserver: " + name + " must be positive")
	}
}
