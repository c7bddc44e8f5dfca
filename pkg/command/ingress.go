package command

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
	"github.com/dmitrymomot/eventrelay/pkg/logger"
)

// PayloadType is the "type" field of every command payload.
const PayloadType = "control"

// Status is the admission outcome of a submitted command.
type Status string

// StatusQueued means the command was admitted for broadcast.
const StatusQueued Status = "queued"

// Result describes an accepted command.
type Result struct {
	Status     Status
	Recipients int
}

// Publisher receives accepted command payloads.
type Publisher interface {
	Broadcast(ctx context.Context, p broadcast.Payload) (int, error)
}

// Observer is notified about every submission.
type Observer interface {
	ObserveCommand(token string, accepted bool)
}

// Option configures an Ingress.
type Option func(*Ingress)

// WithLogger sets the ingress logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Ingress) {
		if l != nil {
			i.log = l
		}
	}
}

// WithObserver registers a submission observer.
func WithObserver(o Observer) Option {
	return func(i *Ingress) { i.observer = o }
}

// Ingress validates command tokens and broadcasts the accepted ones.
type Ingress struct {
	vocab    Vocabulary
	target   Publisher
	log      *slog.Logger
	observer Observer
}

// NewIngress creates an Ingress admitting the tokens of vocab.
func NewIngress(vocab Vocabulary, target Publisher, opts ...Option) *Ingress {
	i := &Ingress{
		vocab:  vocab,
		target: target,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.log = i.log.With(logger.Component("command"))
	return i
}

// Vocabulary returns the permitted tokens.
func (i *Ingress) Vocabulary() Vocabulary {
	return i.vocab
}

// Submit broadcasts token as a control payload.
// Unknown tokens return ErrInvalidCommand and broadcast nothing.
func (i *Ingress) Submit(ctx context.Context, token string) (Result, error) {
	if !i.vocab.Contains(token) {
		i.observe(token, false)
		i.log.DebugContext(ctx, "command rejected", logger.Command(token))
		return Result{}, ErrInvalidCommand
	}

	n, err := i.target.Broadcast(ctx, broadcast.Fields{
		"type":    PayloadType,
		"command": token,
	})
	if err != nil {
		return Result{}, err
	}

	i.observe(token, true)
	i.log.InfoContext(ctx, "command queued", logger.Command(token), logger.Recipients(n))
	return Result{Status: StatusQueued, Recipients: n}, nil
}

func (i *Ingress) observe(token string, accepted bool) {
	if i.observer != nil {
		i.observer.ObserveCommand(token, accepted)
	}
}
