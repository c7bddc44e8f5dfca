package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Channel records the upstream pub/sub channel.
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// SessionID records the streaming client session identifier.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Command records a client-submitted command token.
func Command(token string) slog.Attr {
	return slog.String("command", token)
}

// State records a state-machine state.
func State(s string) slog.Attr {
	return slog.String("state", s)
}

// Attempt records a 1-based retry attempt.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Delay records a wait before the next attempt.
func Delay(d time.Duration) slog.Attr {
	return slog.Duration("delay", d)
}

// Recipients records how many queues accepted a broadcast.
func Recipients(n int) slog.Attr {
	return slog.Int("recipients", n)
}

// Stale records how many queues were already closed when a broadcast reached them.
func Stale(n int) slog.Attr {
	return slog.Int("stale", n)
}

// Clients records the number of connected clients.
func Clients(n int) slog.Attr {
	return slog.Int("clients", n)
}

// Key records a key-value store key.
func Key(k string) slog.Attr {
	return slog.String("key", k)
}
