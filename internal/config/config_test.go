package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "turbo"
	cfg.LogLevel = "loud"
	cfg.Polymarket.GammaHost = ""
	cfg.Refresh.Interval = duration{10 * time.Second}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
	assert.Contains(t, err.Error(), "unknown log_level")
	assert.Contains(t, err.Error(), "gamma_host")
	assert.Contains(t, err.Error(), "interval")
}

func TestValidateDisabledSectionsSkipped(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.Host = ""
	cfg.Redis.Addr = ""
	cfg.S3.Bucket = ""
	require.NoError(t, cfg.Validate())

	cfg.Postgres.Enabled = true
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: host")
}

func TestValidateTelegramPair(t *testing.T) {
	cfg := Defaults()
	cfg.Notify.TelegramToken = "tok"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram")

	cfg.Notify.TelegramChatID = "chat"
	require.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EDGEFINDER_MODE", "scan")
	t.Setenv("EDGEFINDER_INGEST_MAX_MARKETS", "250")
	t.Setenv("EDGEFINDER_DETECT_MIN_SPREAD", "4.5")
	t.Setenv("EDGEFINDER_RESEARCH_MIN_EDGE", "0.05")
	t.Setenv("EDGEFINDER_REFRESH_INTERVAL", "30m")
	t.Setenv("EDGEFINDER_SERVER_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("EDGEFINDER_REDIS_ENABLED", "true")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	assert.Equal(t, "scan", cfg.Mode)
	assert.Equal(t, 250, cfg.Ingest.MaxMarkets)
	assert.Equal(t, 4.5, cfg.Detect.MinSpread)
	assert.Equal(t, 0.05, cfg.Research.MinEdge)
	assert.Equal(t, 30*time.Minute, cfg.Refresh.Interval.Duration)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Redis.Enabled)
}

func TestEnvOverridesIgnoreMalformed(t *testing.T) {
	t.Setenv("EDGEFINDER_INGEST_MAX_MARKETS", "lots")
	t.Setenv("EDGEFINDER_REFRESH_INTERVAL", "soon")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	assert.Equal(t, 100, cfg.Ingest.MaxMarkets)
	assert.Equal(t, 10*time.Minute, cfg.Refresh.Interval.Duration)
}

func TestRedactedConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.Password = "hunter2"
	cfg.Server.APIKey = "key"
	cfg.Notify.TelegramToken = "tok"

	red := RedactedConfig(&cfg)
	assert.Equal(t, "***", red.Postgres.Password)
	assert.Equal(t, "***", red.Server.APIKey)
	assert.Equal(t, "***", red.Notify.TelegramToken)
	assert.Empty(t, red.Redis.Password)

	// Original must be untouched.
	assert.Equal(t, "hunter2", cfg.Postgres.Password)
}
