package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/edgefinder/internal/refresh"
	"github.com/alanyoungcy/edgefinder/internal/server"
	"github.com/alanyoungcy/edgefinder/internal/server/handler"
	"github.com/alanyoungcy/edgefinder/internal/server/ws"
)

// ScanMode runs a single refresh pass and exits. Useful for cron-style
// deployments and smoke tests.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode")

	snap, err := deps.Refresher.Run(ctx)
	if err != nil {
		return err
	}

	stats := snap.Stats()
	a.logger.InfoContext(ctx, "scan complete",
		slog.String("refresh_id", snap.RefreshID),
		slog.Int("markets", stats.TotalMarkets),
		slog.Int("opportunities", stats.TotalOpportunities),
		slog.Int("high_confidence", stats.HighConfidenceOpps),
		slog.Int("predictions", stats.TotalPredictions),
	)
	return nil
}

// ServerMode starts the HTTP API without the periodic refresh loop. Refreshes
// only run when triggered over the API.
func (a *App) ServerMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting server mode")

	g, ctx := errgroup.WithContext(ctx)
	a.startHTTPServer(ctx, g, deps)
	return g.Wait()
}

// FullMode starts the periodic refresh loop and the HTTP API.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := deps.Refresher.RunLoop(ctx, nil)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})

	if a.cfg.Server.Enabled {
		a.startHTTPServer(ctx, g, deps)
	}

	return g.Wait()
}

// startHTTPServer adds the HTTP server (and the WebSocket hub when an event
// bus is wired) to the given errgroup. The server is shut down gracefully
// when the context is cancelled.
func (a *App) startHTTPServer(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	handlers := server.Handlers{
		Health:        handler.NewHealthHandler(a.logger),
		Status:        handler.NewStatusHandler(deps.Snapshots),
		Stats:         handler.NewStatsHandler(deps.Snapshots),
		Markets:       handler.NewMarketHandler(deps.Snapshots, a.logger),
		Opportunities: handler.NewOpportunityHandler(deps.Snapshots),
		Predictions:   handler.NewPredictionHandler(deps.Snapshots),
		Refresh:       handler.NewRefreshHandler(deps.Refresher, deps.Snapshots, a.logger),
		Demo:          handler.NewDemoHandler(deps.Snapshots),
	}
	if deps.Opportunities != nil && deps.Predictions != nil {
		handlers.History = handler.NewHistoryHandler(deps.Opportunities, deps.Predictions, a.logger)
	}

	var hub *ws.Hub
	if deps.Bus != nil {
		hub = ws.NewHub(deps.Bus, refresh.EventsChannel(), deps.Snapshots, a.logger)
		g.Go(func() error {
			err := hub.Run(ctx)
			if ctx.Err() != nil {
				return nil
			}
			return err
		})
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		APIKey:      a.cfg.Server.APIKey,
		RateLimit:   a.cfg.Server.RateLimit,
		RateBurst:   a.cfg.Server.RateBurst,
	}, handlers, hub, a.logger)

	g.Go(srv.Start)

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
}
