package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
	"github.com/dmitrymomot/eventrelay/pkg/logger"
	"github.com/dmitrymomot/eventrelay/pkg/stream"
)

// EventUpdate is the SSE event name of every relayed payload.
const EventUpdate = "update"

// SSETransport frames relayed payloads as server-sent events.
type SSETransport struct {
	sse *datastar.ServerSentEventGenerator
}

// NewSSETransport starts an event stream on w. Headers are flushed immediately.
func NewSSETransport(w http.ResponseWriter, r *http.Request) *SSETransport {
	return &SSETransport{sse: datastar.NewSSE(w, r)}
}

// IsConnected reports whether the client is still attached.
func (t *SSETransport) IsConnected() bool {
	return !t.sse.IsClosed()
}

// Send writes msg as the data of one "update" event. Line breaks become
// separate data lines, which clients join back with "\n".
func (t *SSETransport) Send(msg string) error {
	return t.sse.Send(datastar.EventType(EventUpdate), dataLines(msg))
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// dataLines splits msg so no line break reaches the wire inside a data field.
func dataLines(msg string) []string {
	return strings.Split(lineBreaks.Replace(msg), "\n")
}

// eventStream implements Response for the relay event stream.
type eventStream struct {
	registry *broadcast.Registry[string]
	opts     []stream.Option
	log      *slog.Logger
}

// EventStream returns a Response that streams every broadcast to the client
// until it disconnects or the server shuts down.
func EventStream(registry *broadcast.Registry[string], log *slog.Logger, opts ...stream.Option) Response {
	if log == nil {
		log = logger.Discard()
	}
	return eventStream{registry: registry, opts: append(slices.Clip(opts), stream.WithLogger(log)), log: log}
}

func (e eventStream) Render(w http.ResponseWriter, r *http.Request) error {
	// Register before the headers go out so nothing broadcast after the
	// client sees the stream open is missed.
	sess := stream.Start(e.registry, e.opts...)
	defer sess.Stop()

	transport := NewSSETransport(w, r)
	if err := sess.Serve(r.Context(), transport); err != nil {
		// headers are already sent; the error can only be logged
		e.log.WarnContext(r.Context(), "event stream ended with error",
			logger.SessionID(sess.ID()),
			logger.Error(err),
		)
	}
	return nil
}
