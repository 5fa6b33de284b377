package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/edgefinder/internal/domain"
	"github.com/alanyoungcy/edgefinder/internal/ingest"
	"github.com/alanyoungcy/edgefinder/internal/store/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		RefreshID: "r1",
		Markets: []domain.Market{
			{ID: "m1", Question: "A", Category: domain.CategoryPolitics, EdgeScore: 90, Volume24h: 50000},
			{ID: "m2", Question: "B", Category: domain.CategoryCrypto, EdgeScore: 70, Volume24h: 2000},
			{ID: "m3", Question: "C", Category: domain.CategoryPolitics, EdgeScore: 40, Volume24h: 800},
		},
		Opportunities: []domain.EdgeOpportunity{
			{ID: "o1", EdgeType: domain.EdgeArbitrage, Confidence: 90, RiskLevel: domain.RiskLow},
			{ID: "o2", EdgeType: domain.EdgeLiquidityGap, Confidence: 65, RiskLevel: domain.RiskMedium},
			{ID: "o3", EdgeType: domain.EdgeVolumeSignal, Confidence: 55, RiskLevel: domain.RiskHigh},
		},
		Predictions: []domain.Prediction{
			{MarketID: "m1", Direction: domain.DirectionBuyYes, Edge: 0.12},
			{MarketID: "m2", Direction: domain.DirectionBuyNo, Edge: -0.05},
			{MarketID: "m3", Direction: domain.DirectionHold, Edge: 0.01},
		},
		RefreshedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func publishedStore(t *testing.T) *memory.SnapshotStore {
	t.Helper()
	store := memory.NewSnapshotStore()
	store.Publish(testSnapshot())
	return store
}

func decodeList[T any](t *testing.T, rec *httptest.ResponseRecorder) []T {
	t.Helper()
	var out []T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetStats(t *testing.T) {
	h := NewStatsHandler(publishedStore(t))

	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalMarkets)
	assert.Equal(t, 3, stats.TotalOpportunities)
	assert.Equal(t, 1, stats.HighConfidenceOpps)
	assert.Equal(t, 3, stats.TotalPredictions)
	assert.Equal(t, 2, stats.MarketsByCategory["politics"])
	require.NotNil(t, stats.LastUpdated)
}

func TestGetStatsEmpty(t *testing.T) {
	h := NewStatsHandler(memory.NewSnapshotStore())

	rec := httptest.NewRecorder()
	h.GetStats(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Zero(t, stats.TotalMarkets)
	assert.NotNil(t, stats.MarketsByCategory)
	assert.Nil(t, stats.LastUpdated)
}

func TestGetStatus(t *testing.T) {
	store := publishedStore(t)
	h := NewStatusHandler(store)

	rec := httptest.NewRecorder()
	h.GetStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["is_loading"])
	assert.Equal(t, float64(3), resp["markets_loaded"])
	assert.NotNil(t, resp["last_updated"])
}

func TestGetStatusLoading(t *testing.T) {
	store := memory.NewSnapshotStore()
	require.NoError(t, store.BeginRefresh())
	h := NewStatusHandler(store)

	rec := httptest.NewRecorder()
	h.GetStatus(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_loading"])
	assert.Equal(t, float64(0), resp["markets_loaded"])
}

func TestListMarketsFilters(t *testing.T) {
	h := NewMarketHandler(publishedStore(t), testLogger())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filters", "", []string{"m1", "m2", "m3"}},
		{"category", "?category=politics", []string{"m1", "m3"}},
		{"min score", "?min_score=60", []string{"m1", "m2"}},
		{"min volume", "?min_volume=1000", []string{"m1", "m2"}},
		{"combined", "?category=politics&min_score=50", []string{"m1"}},
		{"offset", "?offset=1", []string{"m2", "m3"}},
		{"limit", "?limit=2", []string{"m1", "m2"}},
		{"offset past end", "?offset=10", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ListMarkets(rec, httptest.NewRequest(http.MethodGet, "/api/markets"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			got := decodeList[domain.Market](t, rec)
			ids := make([]string, len(got))
			for i, m := range got {
				ids[i] = m.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetMarket(t *testing.T) {
	h := NewMarketHandler(publishedStore(t), testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/markets/{id}", h.GetMarket)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/markets/m2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var m domain.Market
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "m2", m.ID)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/markets/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Market not found")
}

func TestListOpportunitiesFilters(t *testing.T) {
	h := NewOpportunityHandler(publishedStore(t))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filters", "", []string{"o1", "o2", "o3"}},
		{"edge type", "?edge_type=arbitrage", []string{"o1"}},
		{"min confidence", "?min_confidence=60", []string{"o1", "o2"}},
		{"risk level", "?risk_level=high", []string{"o3"}},
		{"limit", "?limit=1", []string{"o1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ListOpportunities(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			got := decodeList[domain.EdgeOpportunity](t, rec)
			ids := make([]string, len(got))
			for i, o := range got {
				ids[i] = o.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListPredictionsFilters(t *testing.T) {
	h := NewPredictionHandler(publishedStore(t))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filters", "", []string{"m1", "m2", "m3"}},
		{"direction", "?direction=buy_no", []string{"m2"}},
		{"min edge uses absolute value", "?min_edge=0.05", []string{"m1", "m2"}},
		{"limit", "?limit=2", []string{"m1", "m2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ListPredictions(rec, httptest.NewRequest(http.MethodGet, "/api/predictions"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			got := decodeList[domain.Prediction](t, rec)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.MarketID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

type fakeRunner struct {
	opts chan ingest.Options
	err  error
}

func (f *fakeRunner) RunWith(_ context.Context, opts ingest.Options) (domain.Snapshot, error) {
	f.opts <- opts
	return domain.Snapshot{}, f.err
}

func TestTriggerRefresh(t *testing.T) {
	runner := &fakeRunner{opts: make(chan ingest.Options, 1)}
	h := NewRefreshHandler(runner, memory.NewSnapshotStore(), testLogger())

	rec := httptest.NewRecorder()
	h.TriggerRefresh(rec, httptest.NewRequest(http.MethodPost, "/api/refresh?max_markets=200&min_volume=1000&fetch_orderbooks=false", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Refresh started")

	select {
	case opts := <-runner.opts:
		assert.Equal(t, 200, opts.MaxMarkets)
		assert.Equal(t, float64(1000), opts.MinVolume)
		assert.False(t, opts.FetchOrderbooks)
	case <-time.After(time.Second):
		t.Fatal("refresh was not started")
	}
}

func TestTriggerRefreshClampsMaxMarkets(t *testing.T) {
	runner := &fakeRunner{opts: make(chan ingest.Options, 1)}
	h := NewRefreshHandler(runner, memory.NewSnapshotStore(), testLogger())

	rec := httptest.NewRecorder()
	h.TriggerRefresh(rec, httptest.NewRequest(http.MethodPost, "/api/refresh?max_markets=9999", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	opts := <-runner.opts
	assert.Equal(t, 500, opts.MaxMarkets)
	assert.True(t, opts.FetchOrderbooks)
}

func TestTriggerRefreshConflict(t *testing.T) {
	store := memory.NewSnapshotStore()
	require.NoError(t, store.BeginRefresh())

	runner := &fakeRunner{opts: make(chan ingest.Options, 1), err: errors.New("unused")}
	h := NewRefreshHandler(runner, store, testLogger())

	rec := httptest.NewRecorder()
	h.TriggerRefresh(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Refresh already in progress")
	assert.Empty(t, runner.opts)
}

func TestLoadDemo(t *testing.T) {
	store := memory.NewSnapshotStore()
	h := NewDemoHandler(store)

	rec := httptest.NewRecorder()
	h.LoadDemo(rec, httptest.NewRequest(http.MethodPost, "/api/load-demo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Demo data loaded", resp["message"])
	assert.Equal(t, float64(5), resp["markets"])
	assert.Equal(t, float64(3), resp["opportunities"])
	assert.Equal(t, float64(2), resp["predictions"])

	snap, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "demo", snap.RefreshID)
	assert.Len(t, snap.Markets, 5)
	assert.Equal(t, "demo-1", snap.Markets[0].ID)
	assert.Equal(t, domain.CategoryCrypto, snap.Markets[0].Category)
	require.NotNil(t, snap.Markets[0].DaysUntilResolution)
	assert.Equal(t, 45, *snap.Markets[0].DaysUntilResolution)
}

type fakeHistory struct {
	opps   []domain.EdgeOpportunity
	preds  []domain.Prediction
	counts map[domain.EdgeType]int64
	err    error
}

func (f *fakeHistory) InsertBatch(context.Context, string, []domain.EdgeOpportunity) error {
	return nil
}

func (f *fakeHistory) ListRecent(_ context.Context, limit int) ([]domain.EdgeOpportunity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.opps) {
		return f.opps[:limit], nil
	}
	return f.opps, nil
}

func (f *fakeHistory) CountByType(context.Context, time.Time) (map[domain.EdgeType]int64, error) {
	return f.counts, f.err
}

type fakePredHistory struct {
	preds []domain.Prediction
	err   error
}

func (f *fakePredHistory) InsertBatch(context.Context, string, []domain.Prediction) error {
	return nil
}

func (f *fakePredHistory) ListRecent(_ context.Context, limit int) ([]domain.Prediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.preds, nil
}

func TestHistoryHandlers(t *testing.T) {
	opps := &fakeHistory{
		opps:   []domain.EdgeOpportunity{{ID: "h1"}, {ID: "h2"}},
		counts: map[domain.EdgeType]int64{domain.EdgeArbitrage: 4},
	}
	preds := &fakePredHistory{preds: []domain.Prediction{{MarketID: "m1"}}}
	h := NewHistoryHandler(opps, preds, testLogger())

	rec := httptest.NewRecorder()
	h.ListOpportunityHistory(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities/history?limit=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList[domain.EdgeOpportunity](t, rec), 1)

	rec = httptest.NewRecorder()
	h.OpportunitySummary(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities/summary?hours=6", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"arbitrage":4`)

	rec = httptest.NewRecorder()
	h.ListPredictionHistory(rec, httptest.NewRequest(http.MethodGet, "/api/predictions/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList[domain.Prediction](t, rec), 1)
}

func TestHistoryHandlerStoreFailure(t *testing.T) {
	h := NewHistoryHandler(&fakeHistory{err: errors.New("db down")}, &fakePredHistory{err: errors.New("db down")}, testLogger())

	rec := httptest.NewRecorder()
	h.ListOpportunityHistory(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities/history", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParseListOpts(t *testing.T) {
	opts := parseListOpts(httptest.NewRequest(http.MethodGet, "/?limit=1000&offset=3", nil))
	assert.Equal(t, 200, opts.Limit)
	assert.Equal(t, 3, opts.Offset)

	opts = parseListOpts(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 50, opts.Limit)
	assert.Equal(t, 0, opts.Offset)

	opts = parseListOpts(httptest.NewRequest(http.MethodGet, "/?limit=bad&offset=-2", nil))
	assert.Equal(t, 50, opts.Limit)
	assert.Equal(t, 0, opts.Offset)
}
