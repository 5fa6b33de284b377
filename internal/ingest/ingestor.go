// Package ingest fetches markets from Polymarket, enriches them with
// orderbook spreads, classifies and scores them.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/classify"
	"github.com/alanyoungcy/edgefinder/internal/domain"
	"github.com/alanyoungcy/edgefinder/internal/platform/polymarket"
	"github.com/alanyoungcy/edgefinder/internal/scoring"
)

const (
	pageSize            = 100
	descriptionMaxLen   = 500
	DefaultMaxMarkets   = 100
	DefaultMinVolumeUSD = 500
	marketURLPrefix     = "https://polymarket.com/event/"
)

// MarketSource lists open markets, most 24h volume first.
type MarketSource interface {
	ListOpenMarkets(ctx context.Context, limit, offset int) ([]polymarket.APIMarket, error)
}

// BookSource fetches orderbooks for spread measurement.
type BookSource interface {
	GetBook(ctx context.Context, tokenID string) (polymarket.APIBook, error)
}

// Options tunes an ingestion pass.
type Options struct {
	// MaxMarkets caps how many markets are processed.
	MaxMarkets int
	// MinVolume drops markets below this 24h volume in USD.
	MinVolume float64
	// FetchOrderbooks enables per-market book fetches for real spreads.
	// Slower, one CLOB call per market.
	FetchOrderbooks bool
}

func (o Options) withDefaults() Options {
	if o.MaxMarkets <= 0 {
		o.MaxMarkets = DefaultMaxMarkets
	}
	if o.MinVolume < 0 {
		o.MinVolume = DefaultMinVolumeUSD
	}
	return o
}

// Ingestor runs the fetch, filter, classify, score pipeline.
type Ingestor struct {
	markets MarketSource
	books   BookSource
	logger  *slog.Logger
	now     func() time.Time
}

func NewIngestor(markets MarketSource, books BookSource, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		markets: markets,
		books:   books,
		logger:  logger.With(slog.String("component", "ingest")),
		now:     time.Now,
	}
}

// Ingest fetches and processes markets, returning them sorted by edge score,
// highest first. A market that fails to process is logged and skipped; only
// fetch-level failures abort the pass.
func (in *Ingestor) Ingest(ctx context.Context, opts Options) ([]domain.Market, error) {
	opts = opts.withDefaults()
	in.logger.Info("fetching markets",
		slog.Int("max_markets", opts.MaxMarkets),
		slog.Float64("min_volume", opts.MinVolume),
	)

	raw, err := in.fetchPages(ctx, opts.MaxMarkets)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	in.logger.Info("fetched raw markets", slog.Int("count", len(raw)))

	filtered := raw[:0]
	for _, m := range raw {
		if float64(m.Volume24h) >= opts.MinVolume {
			filtered = append(filtered, m)
		}
	}
	in.logger.Info("after volume filter", slog.Int("count", len(filtered)))

	if len(filtered) > opts.MaxMarkets {
		filtered = filtered[:opts.MaxMarkets]
	}

	markets := make([]domain.Market, 0, len(filtered))
	for i := range filtered {
		market, err := in.processMarket(ctx, &filtered[i], opts.FetchOrderbooks)
		if err != nil {
			in.logger.Warn("skipping market",
				slog.String("market_id", filtered[i].ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		markets = append(markets, market)
	}

	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].EdgeScore > markets[j].EdgeScore
	})

	in.logger.Info("ingestion complete", slog.Int("markets", len(markets)))
	return markets, nil
}

// fetchPages pages through the market list until max markets are collected or
// a short page signals the end.
func (in *Ingestor) fetchPages(ctx context.Context, max int) ([]polymarket.APIMarket, error) {
	var all []polymarket.APIMarket
	for offset := 0; len(all) < max; offset += pageSize {
		batch, err := in.markets.ListOpenMarkets(ctx, pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list markets at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			break
		}
	}
	return all, nil
}

// processMarket converts one raw market into a classified, scored domain
// market.
func (in *Ingestor) processMarket(ctx context.Context, raw *polymarket.APIMarket, fetchBooks bool) (domain.Market, error) {
	tokens := raw.ParseTokens()

	m := domain.Market{
		ID:          raw.ID,
		ConditionID: raw.ConditionID,
		Question:    raw.Question,
		Description: truncate(raw.Description, descriptionMaxLen),
		Category:    classify.Categorize(raw.Question, raw.Description),
		Tags:        raw.Tags,
		Volume24h:   float64(raw.Volume24h),
		Liquidity:   float64(raw.Liquidity),
		Tokens:      tokens,
	}

	if end, ok := raw.ParseEndDate(); ok {
		m.EndDate = end.Format(time.RFC3339)
		days := int(end.Sub(in.now().UTC()).Hours() / 24)
		if days < 0 {
			days = 0
		}
		m.DaysUntilResolution = &days
	}

	m.CurrentPrice = 0.5
	if len(tokens) > 0 {
		m.CurrentPrice = tokens[0].Price
	}

	if fetchBooks && in.books != nil && len(tokens) > 0 && tokens[0].TokenID != "" {
		if spread, bid, ask, ok := in.fetchSpread(ctx, tokens[0].TokenID); ok {
			m.SpreadPct = spread
			m.Tokens[0].BestBid = bid
			m.Tokens[0].BestAsk = ask
		}
	}

	if raw.Slug != "" {
		m.URL = marketURLPrefix + raw.Slug
	}

	return scoring.Score(m), nil
}

// fetchSpread measures the relative spread from top of book. Book fetch
// failures degrade to no spread rather than failing the market.
func (in *Ingestor) fetchSpread(ctx context.Context, tokenID string) (spreadPct, bid, ask float64, ok bool) {
	book, err := in.books.GetBook(ctx, tokenID)
	if err != nil {
		in.logger.Warn("orderbook fetch failed",
			slog.String("token_id", tokenID),
			slog.String("error", err.Error()),
		)
		return 0, 0, 0, false
	}
	bid, ask, ok = book.BestBidAsk()
	if !ok {
		return 0, 0, 0, false
	}
	mid := (bid + ask) / 2
	if mid <= 0 {
		return 0, bid, ask, true
	}
	return (ask - bid) / mid * 100, bid, ask, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
