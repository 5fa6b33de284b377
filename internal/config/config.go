// Package config defines the top-level configuration for the edge finder and
// provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by EDGEFINDER_* environment variables.
type Config struct {
	Polymarket PolymarketConfig `toml:"polymarket"`
	Ingest     IngestConfig     `toml:"ingest"`
	Detect     DetectConfig     `toml:"detect"`
	Research   ResearchConfig   `toml:"research"`
	Refresh    RefreshConfig    `toml:"refresh"`
	Postgres   PostgresConfig   `toml:"postgres"`
	Redis      RedisConfig      `toml:"redis"`
	S3         S3Config         `toml:"s3"`
	Server     ServerConfig     `toml:"server"`
	Notify     NotifyConfig     `toml:"notify"`
	Mode       string           `toml:"mode"`
	LogLevel   string           `toml:"log_level"`
}

// PolymarketConfig holds Polymarket API endpoints and client limits.
type PolymarketConfig struct {
	GammaHost         string  `toml:"gamma_host"`
	ClobHost          string  `toml:"clob_host"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// IngestConfig holds ingestion filters.
type IngestConfig struct {
	MaxMarkets      int     `toml:"max_markets"`
	MinVolume       float64 `toml:"min_volume"`
	FetchOrderbooks bool    `toml:"fetch_orderbooks"`
}

// DetectConfig holds detector thresholds.
type DetectConfig struct {
	VolumeRatio float64 `toml:"volume_ratio"`
	MinSpread   float64 `toml:"min_spread"`
}

// ResearchConfig holds research agent parameters.
type ResearchConfig struct {
	TopMarkets int     `toml:"top_markets"`
	MinEdge    float64 `toml:"min_edge"`
}

// RefreshConfig holds the refresh loop schedule.
type RefreshConfig struct {
	Interval duration `toml:"interval"`
}

// PostgresConfig holds history database connection parameters. History
// persistence is disabled when Enabled is false.
type PostgresConfig struct {
	Enabled       bool   `toml:"enabled"`
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters. The snapshot cache and the
// event bus are disabled when Enabled is false.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds S3-compatible object storage parameters for snapshot
// archives. Archiving is disabled when Enabled is false.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	APIKey      string   `toml:"api_key"`
	RateLimit   float64  `toml:"rate_limit"`
	RateBurst   int      `toml:"rate_burst"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Polymarket: PolymarketConfig{
			GammaHost:         "https://gamma-api.polymarket.com",
			ClobHost:          "https://clob.polymarket.com",
			RequestsPerSecond: 2,
		},
		Ingest: IngestConfig{
			MaxMarkets:      100,
			MinVolume:       500,
			FetchOrderbooks: true,
		},
		Detect: DetectConfig{
			VolumeRatio: 3,
			MinSpread:   3,
		},
		Research: ResearchConfig{
			TopMarkets: 50,
			MinEdge:    0,
		},
		Refresh: RefreshConfig{
			Interval: duration{10 * time.Minute},
		},
		Postgres: PostgresConfig{
			Enabled:       false,
			Host:          "localhost",
			Port:          5432,
			Database:      "edgefinder",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		S3: S3Config{
			Enabled:        false,
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "edgefinder-snapshots",
			UseSSL:         false,
			ForcePathStyle: true,
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Notify: NotifyConfig{
			Events: []string{"refresh_completed", "refresh_failed", "high_confidence_opportunity"},
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"scan":   true,
	"server": true,
	"full":   true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	// Mode
	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: scan, server, full)", c.Mode))
	}

	// LogLevel
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Polymarket endpoints
	if c.Polymarket.GammaHost == "" {
		errs = append(errs, "polymarket: gamma_host must not be empty")
	}
	if c.Polymarket.ClobHost == "" {
		errs = append(errs, "polymarket: clob_host must not be empty")
	}
	if c.Polymarket.RequestsPerSecond <= 0 {
		errs = append(errs, "polymarket: requests_per_second must be > 0")
	}

	// Ingest
	if c.Ingest.MaxMarkets < 1 {
		errs = append(errs, "ingest: max_markets must be >= 1")
	}
	if c.Ingest.MinVolume < 0 {
		errs = append(errs, "ingest: min_volume must be >= 0")
	}

	// Detect
	if c.Detect.VolumeRatio <= 0 {
		errs = append(errs, "detect: volume_ratio must be > 0")
	}
	if c.Detect.MinSpread <= 0 {
		errs = append(errs, "detect: min_spread must be > 0")
	}

	// Research
	if c.Research.TopMarkets < 1 {
		errs = append(errs, "research: top_markets must be >= 1")
	}
	if c.Research.MinEdge < 0 || c.Research.MinEdge > 1 {
		errs = append(errs, fmt.Sprintf("research: min_edge must be 0-1, got %g", c.Research.MinEdge))
	}

	// Refresh
	if c.Refresh.Interval.Duration < time.Minute {
		errs = append(errs, "refresh: interval must be >= 1m")
	}

	// Postgres
	if c.Postgres.Enabled {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns < 0 {
			errs = append(errs, "postgres: pool_min_conns must be >= 0")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	}

	// Redis
	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	// S3
	if c.S3.Enabled {
		if c.S3.Endpoint == "" {
			errs = append(errs, "s3: endpoint must not be empty")
		}
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty")
		}
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server: rate_limit must be >= 0")
		}
	}
	if strings.ToLower(c.Mode) == "server" && !c.Server.Enabled {
		errs = append(errs, "server: must be enabled in server mode")
	}

	// Notify — Telegram needs both the token and the chat id.
	tt := c.Notify.TelegramToken != ""
	tc := c.Notify.TelegramChatID != ""
	if tt != tc {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
