package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// noDefaultTag is a tag name no field carries; parsing with it as the default
// tag applies only variables that are actually present in the environment.
const noDefaultTag = "envNoDefault"

var defaultEnvLoaded sync.Once

// Option configures a single Load call.
type Option func(*options)

type options struct {
	file    string
	fileEnv string
}

// WithFile overlays the YAML file at path on top of the env defaults.
// An empty path disables the overlay.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithFileFromEnv reads the YAML file path from the environment variable name
// at load time. It is ignored when WithFile sets a path or the variable is empty.
func WithFileFromEnv(name string) Option {
	return func(o *options) { o.fileEnv = name }
}

// Load populates v from three layers, each overriding the previous one:
// envDefault tags, the optional YAML file and the variables set in the
// process environment. The default .env file is loaded into the environment
// on first use if it exists.
//
// Example:
//
//	type Config struct {
//		RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" yaml:"redis_url"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithFileFromEnv("CONFIG_FILE"))
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	path := o.file
	if path == "" && o.fileEnv != "" {
		path = os.Getenv(o.fileEnv)
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Join(ErrParsingFile, err)
	}

	// Re-apply explicitly set variables so the environment wins over the file.
	if err := env.ParseWithOptions(v, env.Options{DefaultValueTagName: noDefaultTag}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// LoadEnv loads the given .env files into the process environment without
// overriding variables that are already set. With no paths it loads ".env".
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}
