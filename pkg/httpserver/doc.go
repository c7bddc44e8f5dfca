// Package httpserver provides a lightweight wrapper around net/http that adds
// graceful shutdown, configurable server timeouts, health-check handlers, and
// structured logging via slog.
//
// The core type is Server which augments *http.Server with:
//
//   - Graceful shutdown: Run blocks until the context is cancelled or
//     Shutdown is called and then shuts the server down using
//     http.Server.Shutdown with a configurable deadline. Request contexts are
//     cancelled when shutdown begins so streaming responses end promptly.
//
//   - Functional options: Construction is done through New or NewFromConfig
//     together with Option helpers such as WithAddr, WithReadTimeout and
//     WithLogger.
//
//   - Callbacks: OnListen receives the bound address (useful with port 0) and
//     OnShutdown runs when shutdown begins, e.g. to close event streams.
//
//   - Health checks: HealthCheckHandler returns an http.HandlerFunc that can
//     be mounted as both liveness and readiness probes.
//
// Signal handling is left to the caller: cancel the context passed to Run.
//
// # Usage
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.HealthCheckHandler(log))
//	r.Get("/health/ready", httpserver.HealthCheckHandler(log, store.Ping))
//
//	srv := httpserver.NewFromConfig(cfg.Server,
//		httpserver.WithLogger(log),
//		httpserver.OnShutdown(registry.Close),
//	)
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Run wraps listen and serve errors with ErrStart (a second concurrent Run also
// carries ErrAlreadyRunning); Shutdown wraps drain failures with ErrShutdown. Use errors.Is to distinguish them.
package httpserver
