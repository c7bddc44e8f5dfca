// Package config loads application configuration into Go structs.
//
// It wraps `github.com/joho/godotenv`, `github.com/caarlos0/env/v11` and
// `gopkg.in/yaml.v3` to deliver a small generic API that:
//
//   - Loads values from one or multiple `.env` files (the default `.env` in the
//     working directory is picked up automatically if it exists).
//   - Applies `envDefault` tags, then an optional YAML file, then the variables
//     that are actually set in the environment. Each layer overrides the previous one.
//   - Exposes helpers that panic on failure (`MustLoadEnv`, `MustLoad`) for
//     configuration the process cannot start without.
//
// # Usage
//
//	type Config struct {
//	    RedisURL      string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" yaml:"redis_url"`
//	    UpdateChannel string `env:"UPDATE_CHANNEL" envDefault:"updates" yaml:"update_channel"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithFileFromEnv("CONFIG_FILE")); err != nil {
//	    log.Fatalf("loading config: %v", err)
//	}
//
// Nested structs are parsed recursively, so package configs such as
// redis.Config can be embedded in the application config.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`  – failed to parse env vars into struct.
//   - `ErrReadingFile`    – the YAML file could not be read.
//   - `ErrParsingFile`    – the YAML file does not match the struct.
//   - `ErrLoadingEnvFile` – a .env file could not be loaded.
//   - `ErrNilPointer`     – nil pointer passed to `Load`/`MustLoad`.
package config
