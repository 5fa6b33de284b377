package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

const (
	// DefaultMinSpreadPct is the spread below which market-making is not
	// worth the inventory risk.
	DefaultMinSpreadPct = 3.0

	// Markets trading under this daily volume will not fill resting orders.
	minGapVolume = 1_000
)

// LiquidityGap flags active markets with wide spreads where quoting inside
// the spread could capture roughly half of it.
type LiquidityGap struct {
	minSpreadPct float64
}

func NewLiquidityGap(minSpreadPct float64) *LiquidityGap {
	if minSpreadPct <= 0 {
		minSpreadPct = DefaultMinSpreadPct
	}
	return &LiquidityGap{minSpreadPct: minSpreadPct}
}

func (d *LiquidityGap) Name() string { return "liquidity_gap" }

func (d *LiquidityGap) Detect(_ context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error) {
	var opps []domain.EdgeOpportunity
	for i := range markets {
		m := &markets[i]
		if m.SpreadPct < d.minSpreadPct || m.Volume24h < minGapVolume {
			continue
		}
		opps = append(opps, domain.EdgeOpportunity{
			ID:              newOpportunityID(),
			EdgeType:        domain.EdgeLiquidityGap,
			Description:     fmt.Sprintf("Wide spread: %.1f%%", m.SpreadPct),
			Confidence:      65,
			ExpectedReturn:  m.SpreadPct / 2,
			RiskLevel:       domain.RiskMedium,
			MarketID:        m.ID,
			MarketQuestion:  m.Question,
			SuggestedAction: "Provide liquidity at tighter spread",
			Reasoning:       fmt.Sprintf("Spread %.1f%% with %s daily volume", m.SpreadPct, money(m.Volume24h)),
			DetectedAt:      time.Now().UTC(),
		})
	}
	return opps, nil
}

var _ Detector = (*LiquidityGap)(nil)
