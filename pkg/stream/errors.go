package stream

import "errors"

var (
	// ErrSessionClosed is returned by Next after the session has been stopped
	// or its queue was closed by a registry drain.
	ErrSessionClosed = errors.New("stream: session closed")

	// ErrSend wraps transport failures while the connection still reports itself alive.
	ErrSend = errors.New("stream: failed to send message")
)
