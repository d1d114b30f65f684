package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "./public", cfg.StaticPath)
	assert.Equal(t, int64(32768), cfg.ReadLimit)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 90*time.Second, cfg.TurnDuration)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 3, cfg.MinPlayers)
	assert.Equal(t, time.Hour, cfg.EvictionGrace)
	assert.Equal(t, 1.0, cfg.ChatRateLimit)
	assert.Equal(t, 5, cfg.ChatRateBurst)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := []byte("mode: debug\nport: 8080\nturn_duration: 30s\nmin_players: 4\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), yaml, 0o644))

	t.Setenv("CONFIG_ENV", "test")
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.TurnDuration)
	assert.Equal(t, 4, cfg.MinPlayers)
	// Untouched keys keep their defaults.
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
}
