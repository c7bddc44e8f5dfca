package upstream

import "time"

// Config controls the resubscription backoff.
type Config struct {
	BaseDelay time.Duration `env:"RESUBSCRIBE_BASE_DELAY" envDefault:"500ms" yaml:"resubscribe_base_delay"`
	MaxDelay  time.Duration `env:"RESUBSCRIBE_MAX_DELAY" envDefault:"30s" yaml:"resubscribe_max_delay"`
}

const (
	defaultBaseDelay = 500 * time.Millisecond
	defaultMaxDelay  = 30 * time.Second
	jitterPercent    = 10
)

func (c Config) withDefaults() Config {
	if c.BaseDelay <= 0 {
		c.BaseDelay = defaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = defaultMaxDelay
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = c.BaseDelay
	}
	return c
}
