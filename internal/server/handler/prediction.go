package handler

import (
	"math"
	"net/http"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// PredictionHandler serves research predictions from the current snapshot.
type PredictionHandler struct {
	source SnapshotSource
}

// NewPredictionHandler creates a PredictionHandler backed by the given source.
func NewPredictionHandler(source SnapshotSource) *PredictionHandler {
	return &PredictionHandler{source: source}
}

// ListPredictions responds with predictions from the current snapshot,
// filtered by the query string. Snapshot order (absolute edge, largest first)
// is preserved.
// GET /api/predictions?direction=&min_edge=&limit=
func (h *PredictionHandler) ListPredictions(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.source.Current()

	direction := r.URL.Query().Get("direction")
	minEdge := floatQuery(r, "min_edge", 0)
	opts := parseListOpts(r)

	filtered := make([]domain.Prediction, 0, len(snap.Predictions))
	for _, p := range snap.Predictions {
		if direction != "" && p.Direction != direction {
			continue
		}
		if minEdge > 0 && math.Abs(p.Edge) < minEdge {
			continue
		}
		filtered = append(filtered, p)
		if len(filtered) == opts.Limit {
			break
		}
	}

	writeJSON(w, http.StatusOK, filtered)
}
