package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
	"github.com/dmitrymomot/eventrelay/pkg/command"
	"github.com/dmitrymomot/eventrelay/pkg/logger"
	"github.com/dmitrymomot/eventrelay/pkg/stream"
)

// KeyReader answers point queries against the key-value store.
type KeyReader interface {
	Get(ctx context.Context, key string) (string, bool, error)
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
}

// Submitter admits client commands.
type Submitter interface {
	Submit(ctx context.Context, token string) (command.Result, error)
}

// API holds the endpoint handlers of the relay.
type API struct {
	registry        *broadcast.Registry[string]
	commands        Submitter
	store           KeyReader
	environmentKeys []string
	limiter         *rate.Limiter
	sessionOpts     []stream.Option
	log             *slog.Logger
}

// KeyRequest is bound from GET /key/{key}.
type KeyRequest struct {
	Key string `path:"key"`
}

// CommandRequest is bound from PUT /webcontrol/{command}.
type CommandRequest struct {
	Command string `path:"command"`
}

// Events streams every broadcast to the client as "update" events.
func (a *API) Events(ctx Context, _ struct{}) Response {
	return EventStream(a.registry, a.log, a.sessionOpts...)
}

// SubmitCommand admits the command token from the path.
func (a *API) SubmitCommand(ctx Context, req CommandRequest) Response {
	if !a.limiter.Allow() {
		return JSONError(ErrTooManyRequests)
	}

	if _, err := a.commands.Submit(ctx, req.Command); err != nil {
		if errors.Is(err, command.ErrInvalidCommand) {
			return JSONError(ErrInvalidCommand)
		}
		a.log.ErrorContext(ctx, "command submission failed", logger.Command(req.Command), logger.Error(err))
		return JSONError(err)
	}

	return JSON(StatusBody{Status: "Command queued"}, WithJSONStatus(http.StatusAccepted))
}

// Key returns the JSON document stored at the key from the path.
// Missing or empty values are reported as an empty object.
func (a *API) Key(ctx Context, req KeyRequest) Response {
	raw, _, err := a.store.Get(ctx, req.Key)
	if err != nil {
		a.log.ErrorContext(ctx, "key lookup failed", logger.Key(req.Key), logger.Error(err))
		return JSONError(ErrStoreUnavailable)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		a.log.WarnContext(ctx, "stored value is not valid JSON", logger.Key(req.Key))
		return JSONError(ErrInvalidStoredValue)
	}
	return JSON(doc)
}

// Environment aggregates the configured environment keys into one object.
func (a *API) Environment(ctx Context, _ struct{}) Response {
	vals, err := a.store.GetMany(ctx, a.environmentKeys...)
	if err != nil {
		a.log.ErrorContext(ctx, "environment lookup failed", logger.Error(err))
		return JSONError(ErrStoreUnavailable)
	}

	out := make(map[string]json.RawMessage, len(a.environmentKeys))
	for _, key := range a.environmentKeys {
		doc, err := decodeDocument(vals[key])
		if err != nil {
			a.log.WarnContext(ctx, "stored value is not valid JSON", logger.Key(key))
			return JSONError(ErrInvalidStoredValue)
		}
		out[key] = doc
	}
	return JSON(out)
}

var emptyDocument = json.RawMessage(`{}`)

func decodeDocument(raw string) (json.RawMessage, error) {
	if raw == "" {
		return emptyDocument, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, ErrInvalidStoredValue
	}
	return json.RawMessage(raw), nil
}
