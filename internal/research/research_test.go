package research

import (
	"io"
	"log/slog"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPoliticsAgentMeanReversion(t *testing.T) {
	a := NewPoliticsAgent()
	m := domain.Market{
		ID:           "m1",
		Question:     "Will the incumbent win the election?",
		Category:     domain.CategoryPolitics,
		CurrentPrice: 0.42,
	}

	pred, ok := Research(a, m)
	require.True(t, ok)

	// 0.42 + 0.03*(0.5-0.42) = 0.4224
	assert.InDelta(t, 0.4224, pred.PredictedProbability, 1e-9)
	assert.InDelta(t, 0.0024, pred.Edge, 1e-9)
	assert.Equal(t, domain.DirectionHold, pred.Direction)
	assert.Equal(t, domain.StrengthWeak, pred.Strength)
	assert.Equal(t, 50.0, pred.Confidence)
	assert.Equal(t, "PoliticsAgent", pred.AgentName)
	assert.InDelta(t, 0.2724, pred.ConfidenceLow, 1e-9)
	assert.InDelta(t, 0.5724, pred.ConfidenceHigh, 1e-9)
}

func TestPoliticsAgentBandClamped(t *testing.T) {
	a := NewPoliticsAgent()

	low := a.Analyze(domain.Market{CurrentPrice: 0.05})
	assert.Zero(t, low.ConfidenceLow)

	high := a.Analyze(domain.Market{CurrentPrice: 0.98})
	assert.Equal(t, 1.0, high.ConfidenceHigh)
}

func TestPoliticsAgentKeywordRouting(t *testing.T) {
	a := NewPoliticsAgent()

	// Category miss but question keyword hit.
	assert.True(t, a.CanAnalyze(domain.Market{
		Category: domain.CategoryOther,
		Question: "Will Trump attend the debate?",
	}))
	assert.False(t, a.CanAnalyze(domain.Market{
		Category: domain.CategoryOther,
		Question: "Will it snow in Denver?",
	}))
}

func TestStubAgents(t *testing.T) {
	m := func(cat domain.MarketCategory, price float64) domain.Market {
		return domain.Market{ID: "m", Question: "q", Category: cat, CurrentPrice: price}
	}

	tests := []struct {
		agent      Agent
		market     domain.Market
		confidence float64
		bandWidth  float64
		name       string
	}{
		{NewSportsAgent(), m(domain.CategorySports, 0.5), 40, 0.20, "SportsAgent"},
		{NewCryptoAgent(), m(domain.CategoryCrypto, 0.5), 35, 0.25, "CryptoAgent"},
		{NewEconomicsAgent(), m(domain.CategoryEconomics, 0.5), 60, 0.10, "EconomicsAgent"},
		{NewGeneralAgent(), m(domain.CategoryOther, 0.5), 30, 0.30, "GeneralAgent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, ok := Research(tt.agent, tt.market)
			require.True(t, ok)

			assert.Equal(t, tt.name, pred.AgentName)
			assert.Equal(t, tt.confidence, pred.Confidence)
			assert.Zero(t, pred.Edge)
			assert.Equal(t, pred.CurrentPrice, pred.PredictedProbability)
			assert.Equal(t, domain.DirectionHold, pred.Direction)
			assert.Equal(t, domain.StrengthWeak, pred.Strength)
			assert.InDelta(t, 0.5-tt.bandWidth, pred.ConfidenceLow, 1e-9)
			assert.InDelta(t, 0.5+tt.bandWidth, pred.ConfidenceHigh, 1e-9)
		})
	}
}

func TestDeriveDirection(t *testing.T) {
	tests := []struct {
		edge      float64
		direction string
		strength  string
	}{
		{0.0, domain.DirectionHold, domain.StrengthWeak},
		{0.019, domain.DirectionHold, domain.StrengthWeak},
		{-0.019, domain.DirectionHold, domain.StrengthWeak},
		{0.02, domain.DirectionBuyYes, domain.StrengthModerate},
		{0.05, domain.DirectionBuyYes, domain.StrengthModerate},
		{0.11, domain.DirectionBuyYes, domain.StrengthStrong},
		{-0.02, domain.DirectionBuyNo, domain.StrengthModerate},
		{-0.11, domain.DirectionBuyNo, domain.StrengthStrong},
	}
	for _, tt := range tests {
		direction, strength := deriveDirection(tt.edge)
		assert.Equal(t, tt.direction, direction, "edge %v", tt.edge)
		assert.Equal(t, tt.strength, strength, "edge %v", tt.edge)
	}
}

func TestOrchestratorRouting(t *testing.T) {
	o := NewOrchestrator(testLogger())

	tests := []struct {
		name   string
		market domain.Market
		agent  string
	}{
		{"politics by category", domain.Market{Category: domain.CategoryPolitics}, "PoliticsAgent"},
		{"sports by category", domain.Market{Category: domain.CategorySports}, "SportsAgent"},
		{"crypto by category", domain.Market{Category: domain.CategoryCrypto}, "CryptoAgent"},
		{"economics by category", domain.Market{Category: domain.CategoryEconomics}, "EconomicsAgent"},
		{"fallback", domain.Market{Category: domain.CategoryOther, Question: "Will it rain?"}, "GeneralAgent"},
		{"keyword beats category", domain.Market{Category: domain.CategoryEntertainment, Question: "Will the Bitcoin halving documentary release?"}, "CryptoAgent"},
		// "win" is a sports keyword, and SportsAgent is asked before
		// EconomicsAgent even when the category says economics.
		{"specialist order", domain.Market{Category: domain.CategoryEconomics, Question: "Will the home team win before the recession?"}, "SportsAgent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.agent, o.FindAgent(tt.market).Name())
		})
	}
}

func TestResearchMarketsFilterAndSort(t *testing.T) {
	o := NewOrchestrator(testLogger())

	markets := []domain.Market{
		// Politics markets are the only ones producing nonzero edge.
		{ID: "small-edge", Category: domain.CategoryPolitics, CurrentPrice: 0.45},
		{ID: "big-edge", Category: domain.CategoryPolitics, CurrentPrice: 0.10},
		{ID: "zero-edge", Category: domain.CategorySports, CurrentPrice: 0.50},
	}

	preds := o.ResearchMarkets(markets, 0.005)
	require.Len(t, preds, 1)
	assert.Equal(t, "big-edge", preds[0].MarketID)
	// 0.03 * (0.5 - 0.10)
	assert.InDelta(t, 0.012, preds[0].Edge, 1e-9)

	all := o.ResearchMarkets(markets, 0)
	require.Len(t, all, 3)
	sorted := sort.SliceIsSorted(all, func(i, j int) bool {
		return math.Abs(all[i].Edge) > math.Abs(all[j].Edge)
	})
	assert.True(t, sorted)
	assert.Equal(t, "big-edge", all[0].MarketID)
}

func TestResearchMarketsEmpty(t *testing.T) {
	o := NewOrchestrator(testLogger())
	assert.Empty(t, o.ResearchMarkets(nil, 0))
}
