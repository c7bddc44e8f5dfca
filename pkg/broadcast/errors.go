package broadcast

import "errors"

var (
	// ErrQueueClosed is returned by Queue.Pop once the queue has been closed.
	ErrQueueClosed = errors.New("broadcast: queue is closed")

	// ErrNilPayload is returned when Broadcast is called with a nil payload.
	ErrNilPayload = errors.New("broadcast: nil payload")

	// ErrEncodePayload wraps serialization failures of a payload.
	ErrEncodePayload = errors.New("broadcast: failed to encode payload")
)
