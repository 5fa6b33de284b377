// Package refresh orchestrates one full data pass: ingest markets, detect
// edges, research the best candidates, then publish the result as the new
// serving snapshot. Side channels (cache, history, archive, notifications,
// events) are best-effort; only the core pipeline can fail a refresh.
package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alanyoungcy/edgefinder/internal/domain"
	"github.com/alanyoungcy/edgefinder/internal/ingest"
	"github.com/alanyoungcy/edgefinder/internal/notify"
)

// ResearchTopDefault caps how many of the highest-scored markets get a
// research pass each refresh.
const ResearchTopDefault = 50

// eventsChannel is the bus channel refresh lifecycle events are published on.
const eventsChannel = "edgefinder:events"

// Ingestor produces scored markets, best first.
type Ingestor interface {
	Ingest(ctx context.Context, opts ingest.Options) ([]domain.Market, error)
}

// Detector finds opportunities in a market batch.
type Detector interface {
	DetectAll(ctx context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error)
}

// Researcher produces predictions for a market batch.
type Researcher interface {
	ResearchMarkets(markets []domain.Market, minEdge float64) []domain.Prediction
}

// Archiver persists a snapshot to long-term storage.
type Archiver interface {
	Archive(ctx context.Context, snap domain.Snapshot) (string, error)
}

// Notifier delivers operator notifications for an event type.
type Notifier interface {
	Notify(ctx context.Context, event, title, message string) error
}

// Config tunes the refresh pipeline.
type Config struct {
	IngestOpts  ingest.Options
	ResearchTop int
	MinEdge     float64
	Interval    time.Duration
}

// Sinks are the optional side channels fed after a successful publish. Any
// nil field is skipped.
type Sinks struct {
	Cache         domain.SnapshotCache
	Opportunities domain.OpportunityStore
	Predictions   domain.PredictionStore
	Archiver      Archiver
	Bus           domain.EventBus
	Notifier      Notifier
}

// Refresher runs refresh passes against the serving store.
type Refresher struct {
	cfg      Config
	ingestor Ingestor
	detector Detector
	research Researcher
	store    domain.SnapshotStore
	sinks    Sinks
	logger   *slog.Logger
	now      func() time.Time
}

func New(cfg Config, ingestor Ingestor, detector Detector, research Researcher, store domain.SnapshotStore, sinks Sinks, logger *slog.Logger) *Refresher {
	if cfg.ResearchTop <= 0 {
		cfg.ResearchTop = ResearchTopDefault
	}
	return &Refresher{
		cfg:      cfg,
		ingestor: ingestor,
		detector: detector,
		research: research,
		store:    store,
		sinks:    sinks,
		logger:   logger.With(slog.String("component", "refresh")),
		now:      time.Now,
	}
}

// Run executes one refresh pass with the configured ingest options and
// publishes the resulting snapshot. It returns ErrRefreshInProgress when
// another pass is already running.
func (r *Refresher) Run(ctx context.Context) (domain.Snapshot, error) {
	return r.RunWith(ctx, r.cfg.IngestOpts)
}

// RunWith is Run with per-call ingest options, used when a refresh is
// triggered over the API with overrides.
func (r *Refresher) RunWith(ctx context.Context, opts ingest.Options) (domain.Snapshot, error) {
	if err := r.store.BeginRefresh(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("refresh: %w", err)
	}
	defer r.store.EndRefresh()

	refreshID := uuid.NewString()[:8]
	started := r.now().UTC()
	r.logger.Info("refresh started", slog.String("refresh_id", refreshID))

	markets, err := r.ingestor.Ingest(ctx, opts)
	if err != nil {
		r.notifyFailure(ctx, refreshID, err)
		return domain.Snapshot{}, fmt.Errorf("refresh: ingest: %w", err)
	}

	opps, err := r.detector.DetectAll(ctx, markets)
	if err != nil {
		r.notifyFailure(ctx, refreshID, err)
		return domain.Snapshot{}, fmt.Errorf("refresh: detect: %w", err)
	}

	top := markets
	if len(top) > r.cfg.ResearchTop {
		top = top[:r.cfg.ResearchTop]
	}
	preds := r.research.ResearchMarkets(top, r.cfg.MinEdge)

	snap := domain.Snapshot{
		RefreshID:     refreshID,
		Markets:       markets,
		Opportunities: opps,
		Predictions:   preds,
		RefreshedAt:   r.now().UTC(),
	}
	r.store.Publish(snap)

	r.logger.Info("refresh published",
		slog.String("refresh_id", refreshID),
		slog.Int("markets", len(markets)),
		slog.Int("opportunities", len(opps)),
		slog.Int("predictions", len(preds)),
		slog.Duration("took", r.now().UTC().Sub(started)),
	)

	r.feedSinks(ctx, snap)
	return snap, nil
}

// RunLoop runs a refresh every cfg.Interval until the context is cancelled.
// An immediate first pass runs on entry. Trigger messages on the channel
// force an off-schedule pass; nil disables triggering.
func (r *Refresher) RunLoop(ctx context.Context, trigger <-chan struct{}) error {
	interval := r.cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	runOnce := func() {
		if _, err := r.Run(ctx); err != nil {
			r.logger.Error("refresh failed", slog.String("error", err.Error()))
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			runOnce()
		case _, ok := <-trigger:
			if !ok {
				trigger = nil
				continue
			}
			runOnce()
		}
	}
}

// feedSinks pushes the published snapshot to every configured side channel.
// Failures are logged, never propagated; the snapshot is already live.
func (r *Refresher) feedSinks(ctx context.Context, snap domain.Snapshot) {
	if r.sinks.Cache != nil {
		if err := r.sinks.Cache.Set(ctx, snap); err != nil {
			r.logger.Warn("snapshot cache write failed", slog.String("error", err.Error()))
		}
	}
	if r.sinks.Opportunities != nil {
		if err := r.sinks.Opportunities.InsertBatch(ctx, snap.RefreshID, snap.Opportunities); err != nil {
			r.logger.Warn("opportunity history write failed", slog.String("error", err.Error()))
		}
	}
	if r.sinks.Predictions != nil {
		if err := r.sinks.Predictions.InsertBatch(ctx, snap.RefreshID, snap.Predictions); err != nil {
			r.logger.Warn("prediction history write failed", slog.String("error", err.Error()))
		}
	}
	if r.sinks.Archiver != nil {
		if _, err := r.sinks.Archiver.Archive(ctx, snap); err != nil {
			r.logger.Warn("snapshot archive failed", slog.String("error", err.Error()))
		}
	}
	if r.sinks.Bus != nil {
		event := RefreshEvent{
			Event:     notify.EventRefreshCompleted,
			RefreshID: snap.RefreshID,
			Stats:     snap.Stats(),
		}
		if payload, err := json.Marshal(event); err == nil {
			if err := r.sinks.Bus.Publish(ctx, eventsChannel, payload); err != nil {
				r.logger.Warn("event publish failed", slog.String("error", err.Error()))
			}
		}
	}
	if r.sinks.Notifier != nil {
		title, message := notify.RefreshSummary(snap)
		if err := r.sinks.Notifier.Notify(ctx, notify.EventRefreshCompleted, title, message); err != nil {
			r.logger.Warn("refresh notification failed", slog.String("error", err.Error()))
		}
		if title, message, ok := notify.HighConfidenceAlert(snap.Opportunities); ok {
			if err := r.sinks.Notifier.Notify(ctx, notify.EventHighConfidence, title, message); err != nil {
				r.logger.Warn("opportunity notification failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (r *Refresher) notifyFailure(ctx context.Context, refreshID string, cause error) {
	if r.sinks.Notifier == nil {
		return
	}
	message := fmt.Sprintf("Refresh %s failed: %v", refreshID, cause)
	if err := r.sinks.Notifier.Notify(ctx, notify.EventRefreshFailed, "Refresh failed", message); err != nil {
		r.logger.Warn("failure notification failed", slog.String("error", err.Error()))
	}
}

// RefreshEvent is the JSON payload published to the event bus after each
// successful refresh.
type RefreshEvent struct {
	Event     string                `json:"event"`
	RefreshID string                `json:"refresh_id"`
	Stats     domain.DashboardStats `json:"stats"`
}

// EventsChannel returns the bus channel used for refresh events.
func EventsChannel() string { return eventsChannel }
