package handler

import (
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// MarketHandler serves scored markets from the current snapshot.
type MarketHandler struct {
	source SnapshotSource
	logger *slog.Logger
}

// NewMarketHandler creates a MarketHandler backed by the given source.
func NewMarketHandler(source SnapshotSource, logger *slog.Logger) *MarketHandler {
	return &MarketHandler{
		source: source,
		logger: logHandler(logger, "market"),
	}
}

// ListMarkets responds with markets from the current snapshot, filtered by
// the query string and paginated. Markets keep their snapshot order (edge
// score, highest first).
// GET /api/markets?category=&min_score=&min_volume=&limit=&offset=
func (h *MarketHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.source.Current()

	category := domain.MarketCategory(r.URL.Query().Get("category"))
	minScore := floatQuery(r, "min_score", 0)
	minVolume := floatQuery(r, "min_volume", 0)
	opts := parseListOpts(r)

	filtered := make([]domain.Market, 0, len(snap.Markets))
	for _, m := range snap.Markets {
		if category != "" && m.Category != category {
			continue
		}
		if minScore > 0 && m.EdgeScore < minScore {
			continue
		}
		if minVolume > 0 && m.Volume24h < minVolume {
			continue
		}
		filtered = append(filtered, m)
	}

	start := opts.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + opts.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	writeJSON(w, http.StatusOK, filtered[start:end])
}

// GetMarket responds with a single market by ID.
// GET /api/markets/{id}
func (h *MarketHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	snap, _ := h.source.Current()
	for _, m := range snap.Markets {
		if m.ID == id {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Market not found")
}
