package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
	"github.com/dmitrymomot/eventrelay/pkg/httpserver"
	"github.com/dmitrymomot/eventrelay/pkg/logger"
	"github.com/dmitrymomot/eventrelay/pkg/stream"
)

// Config holds the HTTP API settings.
type Config struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3001" envSeparator:"," yaml:"cors_allowed_origins"`
	Commands         []string `env:"COMMANDS" envDefault:"pp,fwd,rew,out" envSeparator:"," yaml:"commands"`
	CommandRateLimit float64  `env:"COMMAND_RATE_LIMIT" envDefault:"20" yaml:"command_rate_limit"` // requests per second; zero or less disables the limit
	CommandRateBurst int      `env:"COMMAND_RATE_BURST" envDefault:"40" yaml:"command_rate_burst"`
	EnvironmentKeys  []string `env:"ENVIRONMENT_KEYS" envDefault:"AQI,Moon,Weather" envSeparator:"," yaml:"environment_keys"`
}

// Deps are the collaborators the router serves.
type Deps struct {
	Registry       *broadcast.Registry[string]
	Commands       Submitter
	Store          KeyReader
	ReadyChecks    []func(context.Context) error
	Metrics        http.Handler
	SessionOptions []stream.Option
	Logger         *slog.Logger
}

// NewAPI builds the endpoint handlers.
func NewAPI(cfg Config, deps Deps) *API {
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}

	limit := rate.Inf
	if cfg.CommandRateLimit > 0 {
		limit = rate.Limit(cfg.CommandRateLimit)
	}

	return &API{
		registry:        deps.Registry,
		commands:        deps.Commands,
		store:           deps.Store,
		environmentKeys: cfg.EnvironmentKeys,
		limiter:         rate.NewLimiter(limit, max(cfg.CommandRateBurst, 1)),
		sessionOpts:     deps.SessionOptions,
		log:             log.With(logger.Component("http")),
	}
}

// Router mounts the relay API:
//
//	GET  /events                 server-sent event stream
//	PUT  /webcontrol/{command}   broadcast a control command
//	GET  /key/Environment        aggregate of the environment keys
//	GET  /key/{key}              JSON document stored at key
//	GET  /health/live, /health/ready
//	GET  /metrics                when a metrics handler is supplied
func Router(cfg Config, deps Deps) chi.Router {
	api := NewAPI(cfg, deps)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	path := WithBinders(BindPath())

	r.Get("/events", Wrap(api.Events))
	r.Put("/webcontrol/{command}", Wrap(api.SubmitCommand, path))
	r.Get("/key/Environment", Wrap(api.Environment))
	r.Get("/key/{key}", Wrap(api.Key, path))

	r.Get("/health/live", httpserver.HealthCheckHandler(api.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(api.log, deps.ReadyChecks...))

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	return r
}
