package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" yaml:"redis_url"`         // ConnectionURL in the format "redis://:password@localhost:6379/0".
	UpdateChannel  string        `env:"UPDATE_CHANNEL" envDefault:"updates" yaml:"update_channel"`               // UpdateChannel is the pub/sub channel relayed to clients.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"redis_retry_attempts"`         // RetryAttempts is the number of connection attempts at startup.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s" yaml:"redis_retry_interval"`        // RetryInterval is the pause between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s" yaml:"redis_connect_timeout"`     // ConnectTimeout bounds the whole connection phase.
}
