package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventrelay/pkg/config"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "eventrelay", cfg.ServiceName)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.ConnectionURL)
	assert.Equal(t, "updates", cfg.Redis.UpdateChannel)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, time.Duration(0), cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"http://localhost:3001"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, []string{"pp", "fwd", "rew", "out"}, cfg.HTTP.Commands)
	assert.Equal(t, []string{"AQI", "Moon", "Weather"}, cfg.HTTP.EnvironmentKeys)
	assert.Equal(t, 500*time.Millisecond, cfg.Upstream.BaseDelay)
	assert.Equal(t, 30*time.Second, cfg.Upstream.MaxDelay)
}

func TestConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventrelay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_env: production
redis_url: redis://cache:6380/2
update_channel: sensors
http_addr: ":9000"
commands: [play, stop]
resubscribe_max_delay: 10s
`), 0o600))

	t.Setenv("CONFIG_FILE", path)

	var cfg Config
	require.NoError(t, config.Load(&cfg, config.WithFileFromEnv("CONFIG_FILE")))

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "redis://cache:6380/2", cfg.Redis.ConnectionURL)
	assert.Equal(t, "sensors", cfg.Redis.UpdateChannel)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"play", "stop"}, cfg.HTTP.Commands)
	assert.Equal(t, 10*time.Second, cfg.Upstream.MaxDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Upstream.BaseDelay)

	t.Run("environment wins over the file", func(t *testing.T) {
		t.Setenv("UPDATE_CHANNEL", "override")

		var cfg Config
		require.NoError(t, config.Load(&cfg, config.WithFileFromEnv("CONFIG_FILE")))
		assert.Equal(t, "override", cfg.Redis.UpdateChannel)
		assert.Equal(t, "redis://cache:6380/2", cfg.Redis.ConnectionURL)
	})
}
