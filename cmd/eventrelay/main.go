// Command eventrelay relays messages published on a Redis channel to browser
// clients over server-sent events and accepts playback commands over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/eventrelay/handler"
	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
	"github.com/dmitrymomot/eventrelay/pkg/command"
	"github.com/dmitrymomot/eventrelay/pkg/config"
	"github.com/dmitrymomot/eventrelay/pkg/httpserver"
	"github.com/dmitrymomot/eventrelay/pkg/logger"
	"github.com/dmitrymomot/eventrelay/pkg/metrics"
	"github.com/dmitrymomot/eventrelay/pkg/redis"
	"github.com/dmitrymomot/eventrelay/pkg/stream"
	"github.com/dmitrymomot/eventrelay/pkg/upstream"
)

// Config is the process configuration. Every field can be set from the
// environment; a YAML file named by CONFIG_FILE is applied underneath.
// The file is flat: its keys are the yaml names of the fields, e.g.
//
//	redis_url: redis://localhost:6379/0
//	update_channel: updates
//	http_addr: ":8000"
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development" yaml:"app_env"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"eventrelay" yaml:"service_name"`
	LogLevel    string `env:"LOG_LEVEL" yaml:"log_level"`

	Redis    redis.Config      `yaml:",inline"`
	Server   httpserver.Config `yaml:",inline"`
	HTTP     handler.Config    `yaml:",inline"`
	Upstream upstream.Config   `yaml:",inline"`
}

func main() {
	var cfg Config
	config.MustLoad(&cfg, config.WithFileFromEnv("CONFIG_FILE"))

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("eventrelay stopped", logger.Error(err))
		os.Exit(1)
	}
	log.Info("eventrelay stopped")
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	registry := broadcast.NewRegistry[string]()
	defer registry.Close()

	broadcaster := broadcast.NewBroadcaster(registry,
		broadcast.WithLogger(log),
		broadcast.WithObserver(m),
	)

	ingress := command.NewIngress(command.NewVocabulary(cfg.HTTP.Commands...), broadcaster,
		command.WithLogger(log),
		command.WithObserver(m),
	)

	relay := upstream.New(redis.NewPubSub(client), cfg.Redis.UpdateChannel, broadcaster,
		upstream.WithConfig(cfg.Upstream),
		upstream.WithLogger(log),
		upstream.WithObserver(m),
	)

	store := redis.NewStore(client)

	router := handler.Router(cfg.HTTP, handler.Deps{
		Registry:       registry,
		Commands:       ingress,
		Store:          store,
		ReadyChecks:    []func(context.Context) error{store.Ping},
		Metrics:        metrics.Handler(reg),
		SessionOptions: []stream.Option{stream.WithObserver(m)},
		Logger:         log,
	})

	srv := httpserver.NewFromConfig(cfg.Server,
		httpserver.WithLogger(log),
		// ends every open event stream so the server can drain
		httpserver.OnShutdown(registry.Close),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return relay.Run(ctx)
	})
	g.Go(func() error {
		return srv.Run(ctx, router)
	})

	return g.Wait()
}
