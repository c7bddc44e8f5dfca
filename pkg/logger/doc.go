// Package logger builds the process-wide *slog.Logger and provides the
// attribute helpers used across the relay.
//
// The factory applies environment presets (text/debug for development,
// JSON/info for staging and production) and wraps the handler with a
// decorator that copies request-scoped values out of the context on every
// log call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "client connected",
//		logger.Component("stream"),
//		logger.SessionID(id),
//	)
//
// Components that accept an optional logger default to Discard, which drops
// every record without formatting it.
package logger
