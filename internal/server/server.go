package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/server/handler"
	"github.com/alanyoungcy/edgefinder/internal/server/middleware"
	"github.com/alanyoungcy/edgefinder/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
	APIKey      string  // if empty, authentication is disabled
	RateLimit   float64 // requests per second per client IP; 0 disables
	RateBurst   int
}

// Handlers aggregates all HTTP handlers that the server needs to register.
// History may be nil when no history database is configured.
type Handlers struct {
	Health        *handler.HealthHandler
	Status        *handler.StatusHandler
	Stats         *handler.StatsHandler
	Markets       *handler.MarketHandler
	Opportunities *handler.OpportunityHandler
	Predictions   *handler.PredictionHandler
	Refresh       *handler.RefreshHandler
	Demo          *handler.DemoHandler
	History       *handler.HistoryHandler
}

// Server is the HTTP + WebSocket API server for the edge finder dashboard.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer creates a new Server with all routes registered on the ServeMux.
// It wires up middleware (logging, CORS, auth, rate limiting) and attaches
// the WebSocket hub.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// --- Register routes ---

	// Health check (no auth required in front-proxy setups; auth middleware
	// still applies when configured).
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	// Dashboard endpoints.
	mux.HandleFunc("GET /api/stats", handlers.Stats.GetStats)
	mux.HandleFunc("GET /api/status", handlers.Status.GetStatus)

	// Market endpoints.
	mux.HandleFunc("GET /api/markets", handlers.Markets.ListMarkets)
	mux.HandleFunc("GET /api/markets/{id}", handlers.Markets.GetMarket)

	// Opportunity and prediction endpoints.
	mux.HandleFunc("GET /api/opportunities", handlers.Opportunities.ListOpportunities)
	mux.HandleFunc("GET /api/predictions", handlers.Predictions.ListPredictions)

	// Refresh trigger and demo data.
	mux.HandleFunc("POST /api/refresh", handlers.Refresh.TriggerRefresh)
	mux.HandleFunc("POST /api/load-demo", handlers.Demo.LoadDemo)

	// History endpoints, only when a history store is wired.
	if handlers.History != nil {
		mux.HandleFunc("GET /api/opportunities/history", handlers.History.ListOpportunityHistory)
		mux.HandleFunc("GET /api/opportunities/summary", handlers.History.OpportunitySummary)
		mux.HandleFunc("GET /api/predictions/history", handlers.History.ListPredictionHistory)
	}

	// WebSocket endpoint.
	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	// Build the middleware chain.
	var h http.Handler = mux

	// Apply auth middleware (skips if APIKey is empty).
	h = middleware.Auth(cfg.APIKey)(h)

	// Apply per-IP rate limiting when configured.
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit) * 2
			if burst < 1 {
				burst = 1
			}
		}
		h = middleware.RateLimit(cfg.RateLimit, burst)(h)
	}

	// Apply request logging middleware.
	h = middleware.Logging(logger)(h)

	// Apply CORS middleware.
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		mux:        mux,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
