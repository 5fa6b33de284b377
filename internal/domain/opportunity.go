package domain

import "time"

// EdgeType classifies a detected trading edge.
type EdgeType string

const (
	EdgeArbitrage    EdgeType = "arbitrage"
	EdgeMispricing   EdgeType = "mispricing"
	EdgeCorrelation  EdgeType = "correlation"
	EdgeVolumeSignal EdgeType = "volume_signal"
	EdgeLiquidityGap EdgeType = "liquidity_gap"
)

// Risk levels for opportunities.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// EdgeOpportunity is a detected, typed signal that a market may be mispriced
// or otherwise exploitable. Opportunities are created by detectors and never
// mutated afterwards; they live for one detection pass unless persisted to
// the history store.
type EdgeOpportunity struct {
	ID             string   `json:"id"`
	EdgeType       EdgeType `json:"edge_type"`
	Description    string   `json:"description"`
	Confidence     float64  `json:"confidence"`      // 0-100
	ExpectedReturn float64  `json:"expected_return"` // percentage, sign meaningful
	RiskLevel      string   `json:"risk_level"`

	MarketID       string `json:"market_id"`
	MarketQuestion string `json:"market_question"`

	SuggestedAction string `json:"suggested_action"`
	Reasoning       string `json:"reasoning"`

	DetectedAt time.Time `json:"detected_at"`
}
