package handler

import (
	"net/http"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// SnapshotPublisher replaces the served snapshot.
type SnapshotPublisher interface {
	Publish(snap domain.Snapshot)
}

// DemoHandler loads a fixed demo snapshot so the dashboard can be exercised
// without hitting Polymarket.
type DemoHandler struct {
	publisher SnapshotPublisher
	now       func() time.Time
}

// NewDemoHandler creates a DemoHandler publishing to the given store.
func NewDemoHandler(publisher SnapshotPublisher) *DemoHandler {
	return &DemoHandler{publisher: publisher, now: time.Now}
}

// LoadDemo publishes the demo snapshot.
// POST /api/load-demo
func (h *DemoHandler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	snap := demoSnapshot(h.now().UTC())
	h.publisher.Publish(snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Demo data loaded",
		"markets":       len(snap.Markets),
		"opportunities": len(snap.Opportunities),
		"predictions":   len(snap.Predictions),
	})
}

func days(n int) *int { return &n }

// demoSnapshot builds the fixed demo dataset.
func demoSnapshot(now time.Time) domain.Snapshot {
	markets := []domain.Market{
		{
			ID:                   "demo-1",
			Question:             "Will Bitcoin reach $100,000 by March 2025?",
			Description:          "Resolves YES if BTC reaches $100k on any major exchange",
			Category:             domain.CategoryCrypto,
			CurrentPrice:         0.42,
			SpreadPct:            2.5,
			Volume24h:            125000,
			Liquidity:            450000,
			DaysUntilResolution:  days(45),
			EdgeScore:            78,
			LiquidityScore:       85,
			EfficiencyScore:      75,
			ResearchabilityScore: 80,
			Tokens: []domain.Token{
				{TokenID: "t1", Outcome: "Yes", Price: 0.42, BestBid: 0.41, BestAsk: 0.43},
				{TokenID: "t2", Outcome: "No", Price: 0.55, BestBid: 0.54, BestAsk: 0.56},
			},
			URL: "https://polymarket.com/event/btc-100k",
		},
		{
			ID:                   "demo-2",
			Question:             "Will the Fed cut rates in January 2025?",
			Description:          "Resolves based on FOMC decision",
			Category:             domain.CategoryEconomics,
			CurrentPrice:         0.15,
			SpreadPct:            1.8,
			Volume24h:            89000,
			Liquidity:            320000,
			DaysUntilResolution:  days(10),
			EdgeScore:            82,
			LiquidityScore:       80,
			EfficiencyScore:      90,
			ResearchabilityScore: 90,
			Tokens: []domain.Token{
				{TokenID: "t3", Outcome: "Yes", Price: 0.15, BestBid: 0.14, BestAsk: 0.16},
				{TokenID: "t4", Outcome: "No", Price: 0.84, BestBid: 0.83, BestAsk: 0.85},
			},
			URL: "https://polymarket.com/event/fed-jan",
		},
		{
			ID:                   "demo-3",
			Question:             "Who will win Super Bowl LIX?",
			Description:          "NFL Championship Game",
			Category:             domain.CategorySports,
			CurrentPrice:         0.22,
			SpreadPct:            4.2,
			Volume24h:            520000,
			Liquidity:            1200000,
			DaysUntilResolution:  days(30),
			EdgeScore:            71,
			LiquidityScore:       100,
			EfficiencyScore:      65,
			ResearchabilityScore: 95,
			Tokens: []domain.Token{
				{TokenID: "t5", Outcome: "Chiefs", Price: 0.22},
				{TokenID: "t6", Outcome: "Lions", Price: 0.18},
				{TokenID: "t7", Outcome: "Eagles", Price: 0.15},
				{TokenID: "t8", Outcome: "Bills", Price: 0.12},
				{TokenID: "t9", Outcome: "Other", Price: 0.28},
			},
			URL: "https://polymarket.com/event/super-bowl",
		},
		{
			ID:                   "demo-4",
			Question:             "Will Trump be inaugurated on January 20, 2025?",
			Description:          "Resolves YES if inauguration occurs as scheduled",
			Category:             domain.CategoryPolitics,
			CurrentPrice:         0.95,
			SpreadPct:            0.8,
			Volume24h:            45000,
			Liquidity:            890000,
			DaysUntilResolution:  days(4),
			EdgeScore:            55,
			LiquidityScore:       90,
			EfficiencyScore:      30,
			ResearchabilityScore: 90,
			Tokens: []domain.Token{
				{TokenID: "t10", Outcome: "Yes", Price: 0.95},
				{TokenID: "t11", Outcome: "No", Price: 0.04},
			},
			URL: "https://polymarket.com/event/inauguration",
		},
		{
			ID:                   "demo-5",
			Question:             "Will Ethereum reach $5,000 by June 2025?",
			Description:          "Resolves YES if ETH reaches $5k",
			Category:             domain.CategoryCrypto,
			CurrentPrice:         0.28,
			SpreadPct:            3.1,
			Volume24h:            67000,
			Liquidity:            280000,
			DaysUntilResolution:  days(150),
			EdgeScore:            62,
			LiquidityScore:       70,
			EfficiencyScore:      70,
			ResearchabilityScore: 85,
			Tokens: []domain.Token{
				{TokenID: "t12", Outcome: "Yes", Price: 0.28},
				{TokenID: "t13", Outcome: "No", Price: 0.70},
			},
			URL: "https://polymarket.com/event/eth-5k",
		},
	}

	opportunities := []domain.EdgeOpportunity{
		{
			ID:              "opp-1",
			EdgeType:        domain.EdgeArbitrage,
			Description:     "Binary underpricing: YES + NO = 97%",
			Confidence:      90,
			ExpectedReturn:  3.1,
			RiskLevel:       domain.RiskLow,
			MarketID:        "demo-1",
			MarketQuestion:  "Will Bitcoin reach $100,000 by March 2025?",
			SuggestedAction: "Buy both YES at 42% and NO at 55%",
			Reasoning:       "Combined price 97% < 100% means guaranteed profit",
			DetectedAt:      now,
		},
		{
			ID:              "opp-2",
			EdgeType:        domain.EdgeVolumeSignal,
			Description:     "Volume spike: 5.2x liquidity",
			Confidence:      60,
			ExpectedReturn:  0,
			RiskLevel:       domain.RiskHigh,
			MarketID:        "demo-3",
			MarketQuestion:  "Who will win Super Bowl LIX?",
			SuggestedAction: "Research why volume is elevated",
			Reasoning:       "Unusual activity may indicate informed trading",
			DetectedAt:      now,
		},
		{
			ID:              "opp-3",
			EdgeType:        domain.EdgeLiquidityGap,
			Description:     "Wide spread: 4.2%",
			Confidence:      65,
			ExpectedReturn:  2.1,
			RiskLevel:       domain.RiskMedium,
			MarketID:        "demo-3",
			MarketQuestion:  "Who will win Super Bowl LIX?",
			SuggestedAction: "Provide liquidity at tighter spread",
			Reasoning:       "High volume with wide spread = market making opportunity",
			DetectedAt:      now,
		},
	}

	predictions := []domain.Prediction{
		{
			MarketID:             "demo-1",
			MarketQuestion:       "Will Bitcoin reach $100,000 by March 2025?",
			PredictedProbability: 0.48,
			CurrentPrice:         0.42,
			Edge:                 0.06,
			Confidence:           55,
			ConfidenceLow:        0.35,
			ConfidenceHigh:       0.60,
			Direction:            domain.DirectionBuyYes,
			Strength:             domain.StrengthModerate,
			Reasoning:            "Technical indicators and halving cycle suggest upside potential",
			KeyRisks:             []string{"Regulatory news", "Macro downturn", "Exchange issues"},
			Catalysts:            []string{"ETF inflows", "Halving effects", "Institutional adoption"},
			AgentName:            "CryptoAgent",
		},
		{
			MarketID:             "demo-2",
			MarketQuestion:       "Will the Fed cut rates in January 2025?",
			PredictedProbability: 0.12,
			CurrentPrice:         0.15,
			Edge:                 -0.03,
			Confidence:           70,
			ConfidenceLow:        0.08,
			ConfidenceHigh:       0.18,
			Direction:            domain.DirectionBuyNo,
			Strength:             domain.StrengthWeak,
			Reasoning:            "Fed communications suggest holding rates steady",
			KeyRisks:             []string{"Surprise inflation data", "Market turmoil"},
			Catalysts:            []string{"CPI release", "FOMC statement"},
			AgentName:            "EconomicsAgent",
		},
	}

	return domain.Snapshot{
		RefreshID:     "demo",
		Markets:       markets,
		Opportunities: opportunities,
		Predictions:   predictions,
		RefreshedAt:   now,
	}
}
