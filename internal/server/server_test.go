package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/edgefinder/internal/server/handler"
	"github.com/alanyoungcy/edgefinder/internal/store/memory"
)

func testHandlers() Handlers {
	store := memory.NewSnapshotStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Handlers{
		Health:        handler.NewHealthHandler(logger),
		Status:        handler.NewStatusHandler(store),
		Stats:         handler.NewStatsHandler(store),
		Markets:       handler.NewMarketHandler(store, logger),
		Opportunities: handler.NewOpportunityHandler(store),
		Predictions:   handler.NewPredictionHandler(store),
		Refresh:       handler.NewRefreshHandler(nil, store, logger),
		Demo:          handler.NewDemoHandler(store),
	}
}

func newTestServer(cfg Config) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, testHandlers(), nil, logger)
}

func TestRoutesRegistered(t *testing.T) {
	srv := newTestServer(Config{Port: 0})

	for _, route := range []string{
		"/api/health",
		"/api/stats",
		"/api/status",
		"/api/markets",
		"/api/opportunities",
		"/api/predictions",
	} {
		rec := httptest.NewRecorder()
		srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, route, nil))
		assert.Equal(t, http.StatusOK, rec.Code, route)
	}
}

func TestHistoryRoutesAbsentWithoutStore(t *testing.T) {
	srv := newTestServer(Config{Port: 0})

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/opportunities/history", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	srv := newTestServer(Config{Port: 0, APIKey: "secret"})

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(Config{Port: 0, CORSOrigins: []string{"https://dash.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/markets", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	srv := newTestServer(Config{Port: 0, RateLimit: 1, RateBurst: 1})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = "10.0.0.1:4000"

	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
