package broadcast

import (
	"encoding/json"
	"errors"
)

// Payload is one message relayed to every registered queue.
// Encode is called exactly once per broadcast; the result is shared by all deliveries.
type Payload interface {
	Encode() (string, error)
}

// Raw is text received from the upstream source. It is relayed verbatim.
type Raw string

// Encode returns the text unchanged.
func (r Raw) Encode() (string, error) {
	return string(r), nil
}

// Fields is a structured payload serialized as a single JSON object.
type Fields map[string]any

// Encode marshals the fields to JSON. Keys are emitted in sorted order.
func (f Fields) Encode() (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", errors.Join(ErrEncodePayload, err)
	}
	return string(data), nil
}
