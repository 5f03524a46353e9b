package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8600", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 2000, cfg.Sandbox.TimeoutMS)
	assert.Equal(t, 10, cfg.Sandbox.MaxPasses)
	assert.Empty(t, cfg.Fixtures.Path)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("SANDBOX_TIMEOUT_MS", "500")
	t.Setenv("SANDBOX_MAX_PASSES", "4")
	t.Setenv("FIXTURES_PATH", "/etc/previewer/fixtures.yaml")
	t.Setenv("LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 500, cfg.Sandbox.TimeoutMS)
	assert.Equal(t, 4, cfg.Sandbox.MaxPasses)
	assert.Equal(t, "/etc/previewer/fixtures.yaml", cfg.Fixtures.Path)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadDefaultsWithoutEnvironment(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Sandbox, cfg.Sandbox)
}

func TestLoadOrDefaultBadValueFallsBack(t *testing.T) {
	t.Setenv("SANDBOX_TIMEOUT_MS", "not-a-number")

	cfg := LoadOrDefault()
	assert.Equal(t, 2000, cfg.Sandbox.TimeoutMS)
}

func TestSandboxTimeout(t *testing.T) {
	cfg := Default()
	cfg.Sandbox.TimeoutMS = 1500
	assert.Equal(t, 1500*time.Millisecond, cfg.SandboxTimeout())
}
