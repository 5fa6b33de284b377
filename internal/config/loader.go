package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies EDGEFINDER_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known EDGEFINDER_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Polymarket ──
	setStr(&cfg.Polymarket.GammaHost, "EDGEFINDER_POLYMARKET_GAMMA_HOST")
	setStr(&cfg.Polymarket.ClobHost, "EDGEFINDER_POLYMARKET_CLOB_HOST")
	setFloat64(&cfg.Polymarket.RequestsPerSecond, "EDGEFINDER_POLYMARKET_REQUESTS_PER_SECOND")

	// ── Ingest ──
	setInt(&cfg.Ingest.MaxMarkets, "EDGEFINDER_INGEST_MAX_MARKETS")
	setFloat64(&cfg.Ingest.MinVolume, "EDGEFINDER_INGEST_MIN_VOLUME")
	setBool(&cfg.Ingest.FetchOrderbooks, "EDGEFINDER_INGEST_FETCH_ORDERBOOKS")

	// ── Detect ──
	setFloat64(&cfg.Detect.VolumeRatio, "EDGEFINDER_DETECT_VOLUME_RATIO")
	setFloat64(&cfg.Detect.MinSpread, "EDGEFINDER_DETECT_MIN_SPREAD")

	// ── Research ──
	setInt(&cfg.Research.TopMarkets, "EDGEFINDER_RESEARCH_TOP_MARKETS")
	setFloat64(&cfg.Research.MinEdge, "EDGEFINDER_RESEARCH_MIN_EDGE")

	// ── Refresh ──
	setDuration(&cfg.Refresh.Interval, "EDGEFINDER_REFRESH_INTERVAL")

	// ── Postgres ──
	setBool(&cfg.Postgres.Enabled, "EDGEFINDER_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "EDGEFINDER_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "EDGEFINDER_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "EDGEFINDER_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "EDGEFINDER_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "EDGEFINDER_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "EDGEFINDER_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "EDGEFINDER_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "EDGEFINDER_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "EDGEFINDER_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "EDGEFINDER_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "EDGEFINDER_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "EDGEFINDER_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "EDGEFINDER_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "EDGEFINDER_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "EDGEFINDER_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "EDGEFINDER_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "EDGEFINDER_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "EDGEFINDER_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "EDGEFINDER_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "EDGEFINDER_S3_REGION")
	setStr(&cfg.S3.Bucket, "EDGEFINDER_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "EDGEFINDER_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "EDGEFINDER_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "EDGEFINDER_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "EDGEFINDER_S3_FORCE_PATH_STYLE")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "EDGEFINDER_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "EDGEFINDER_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "EDGEFINDER_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "EDGEFINDER_SERVER_API_KEY")
	setFloat64(&cfg.Server.RateLimit, "EDGEFINDER_SERVER_RATE_LIMIT")
	setInt(&cfg.Server.RateBurst, "EDGEFINDER_SERVER_RATE_BURST")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "EDGEFINDER_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "EDGEFINDER_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "EDGEFINDER_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "EDGEFINDER_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "EDGEFINDER_MODE")
	setStr(&cfg.LogLevel, "EDGEFINDER_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
