package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/edgefinder/internal/domain"
	"github.com/alanyoungcy/edgefinder/internal/ingest"
)

// RefreshRunner runs one full refresh pass with the given ingest options.
type RefreshRunner interface {
	RunWith(ctx context.Context, opts ingest.Options) (domain.Snapshot, error)
}

// RefreshHandler triggers background refresh passes over the API.
type RefreshHandler struct {
	runner RefreshRunner
	source SnapshotSource
	logger *slog.Logger
}

// NewRefreshHandler creates a RefreshHandler for the given runner.
func NewRefreshHandler(runner RefreshRunner, source SnapshotSource, logger *slog.Logger) *RefreshHandler {
	return &RefreshHandler{
		runner: runner,
		source: source,
		logger: logHandler(logger, "refresh"),
	}
}

// TriggerRefresh starts a refresh in the background and returns immediately.
// A 409 is returned when a refresh is already running.
// POST /api/refresh?max_markets=&min_volume=&fetch_orderbooks=
func (h *RefreshHandler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if h.source.Loading() {
		writeError(w, http.StatusConflict, "Refresh already in progress")
		return
	}

	maxMarkets := intQuery(r, "max_markets", ingest.DefaultMaxMarkets)
	if maxMarkets < 10 {
		maxMarkets = 10
	}
	if maxMarkets > 500 {
		maxMarkets = 500
	}
	minVolume := floatQuery(r, "min_volume", ingest.DefaultMinVolumeUSD)
	if minVolume < 0 {
		minVolume = 0
	}
	opts := ingest.Options{
		MaxMarkets:      maxMarkets,
		MinVolume:       minVolume,
		FetchOrderbooks: boolQuery(r, "fetch_orderbooks", true),
	}

	// Detach from the request context; the pass outlives the response.
	go func() {
		if _, err := h.runner.RunWith(context.Background(), opts); err != nil {
			if errors.Is(err, domain.ErrRefreshInProgress) {
				return
			}
			h.logger.Error("background refresh failed", slog.String("error", err.Error()))
		}
	}()

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Refresh started",
		"max_markets": maxMarkets,
	})
}
