package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	s3blob "github.com/alanyoungcy/edgefinder/internal/blob/s3"
	"github.com/alanyoungcy/edgefinder/internal/cache/redis"
	"github.com/alanyoungcy/edgefinder/internal/config"
	"github.com/alanyoungcy/edgefinder/internal/detect"
	"github.com/alanyoungcy/edgefinder/internal/domain"
	"github.com/alanyoungcy/edgefinder/internal/ingest"
	"github.com/alanyoungcy/edgefinder/internal/notify"
	"github.com/alanyoungcy/edgefinder/internal/platform/polymarket"
	"github.com/alanyoungcy/edgefinder/internal/refresh"
	"github.com/alanyoungcy/edgefinder/internal/research"
	"github.com/alanyoungcy/edgefinder/internal/store/memory"
	"github.com/alanyoungcy/edgefinder/internal/store/postgres"
)

// Dependencies bundles everything the application modes need to operate. It
// is constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	// Serving store (always in-memory).
	Snapshots *memory.SnapshotStore

	// History stores; nil when Postgres is disabled.
	Opportunities domain.OpportunityStore
	Predictions   domain.PredictionStore

	// Redis-backed; nil when Redis is disabled.
	Cache domain.SnapshotCache
	Bus   domain.EventBus

	// Snapshot archiver; nil when S3 is disabled.
	Archiver *s3blob.SnapshotArchiver

	// Notifications.
	Notifier *notify.Notifier

	// Refresh pipeline.
	Refresher *refresh.Refresher
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{
		Snapshots: memory.NewSnapshotStore(),
	}

	// --- PostgreSQL history (optional) ---
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		pool := pgClient.Pool()
		deps.Opportunities = postgres.NewOpportunityStore(pool)
		deps.Predictions = postgres.NewPredictionStore(pool)
	}

	// --- Redis cache + event bus (optional) ---
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.Cache = redis.NewSnapshotCache(redisClient)
		deps.Bus = redis.NewEventBus(redisClient)

		// Warm start: serve the cached snapshot until the first refresh lands.
		warmCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if snap, err := deps.Cache.Get(warmCtx); err == nil {
			deps.Snapshots.Publish(snap)
			logger.InfoContext(ctx, "restored snapshot from cache",
				slog.String("refresh_id", snap.RefreshID),
				slog.Int("markets", len(snap.Markets)),
			)
		}
		cancel()
	}

	// --- S3 snapshot archive (optional) ---
	if cfg.S3.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = s3Client.Close() })

		deps.Archiver = s3blob.NewSnapshotArchiver(s3blob.NewWriter(s3Client), logger)
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)

	// --- Refresh pipeline ---
	limiter := polymarket.NewLimiter(cfg.Polymarket.RequestsPerSecond)
	gamma := polymarket.NewGammaClient(cfg.Polymarket.GammaHost, limiter)
	clob := polymarket.NewClobClient(cfg.Polymarket.ClobHost, limiter)

	ingestor := ingest.NewIngestor(gamma, clob, logger)
	engine := detect.NewEngineWith(detect.Thresholds{
		VolumeRatio: cfg.Detect.VolumeRatio,
		MinSpread:   cfg.Detect.MinSpread,
	}, logger)
	orchestrator := research.NewOrchestrator(logger)

	sinks := refresh.Sinks{
		Opportunities: deps.Opportunities,
		Predictions:   deps.Predictions,
		Cache:         deps.Cache,
		Bus:           deps.Bus,
		Notifier:      deps.Notifier,
	}
	if deps.Archiver != nil {
		sinks.Archiver = deps.Archiver
	}

	deps.Refresher = refresh.New(
		refresh.Config{
			IngestOpts: ingest.Options{
				MaxMarkets:      cfg.Ingest.MaxMarkets,
				MinVolume:       cfg.Ingest.MinVolume,
				FetchOrderbooks: cfg.Ingest.FetchOrderbooks,
			},
			ResearchTop: cfg.Research.TopMarkets,
			MinEdge:     cfg.Research.MinEdge,
			Interval:    cfg.Refresh.Interval.Duration,
		},
		ingestor,
		engine,
		orchestrator,
		deps.Snapshots,
		sinks,
		logger,
	)

	return deps, cleanup, nil
}
