// Package scoring computes the edge score for a market: a weighted composite
// of liquidity, pricing inefficiency, researchability and resolution timing.
package scoring

import "github.com/alanyoungcy/edgefinder/internal/domain"

// Composite weights. They sum to 1.
const (
	weightLiquidity       = 0.25
	weightInefficiency    = 0.30
	weightResearchability = 0.25
	weightTiming          = 0.20
)

const (
	liquidityFloor   = 1_000
	liquidityCeiling = 50_000
)

// LiquidityScore maps liquidity to 0-100. Below the floor the market is
// untradeable and scores 0; above the ceiling extra depth adds nothing.
func LiquidityScore(liquidity float64) float64 {
	switch {
	case liquidity < liquidityFloor:
		return 0
	case liquidity >= liquidityCeiling:
		return 100
	default:
		return (liquidity - liquidityFloor) / (liquidityCeiling - liquidityFloor) * 100
	}
}

// InefficiencyScore maps the bid-ask spread (percent) to 0-100. A moderate
// spread suggests mispricing worth researching; a very tight spread means the
// market is efficiently priced and a very wide one means it is untradeable.
func InefficiencyScore(spreadPct float64) float64 {
	switch {
	case spreadPct > 10:
		return 20
	case spreadPct < 0.5:
		return 30
	case spreadPct >= 1 && spreadPct <= 5:
		return 100
	case spreadPct < 1:
		return 30 + spreadPct*70
	default:
		return 100 - (spreadPct-5)*16
	}
}

var researchability = map[domain.MarketCategory]float64{
	domain.CategorySports:        95,
	domain.CategoryPolitics:      90,
	domain.CategoryEconomics:     90,
	domain.CategoryCrypto:        85,
	domain.CategoryLegal:         75,
	domain.CategoryScience:       70,
	domain.CategoryEntertainment: 60,
	domain.CategoryOther:         40,
}

// ResearchabilityScore reflects how much public data exists for a category.
func ResearchabilityScore(category domain.MarketCategory) float64 {
	if s, ok := researchability[category]; ok {
		return s
	}
	return 40
}

// TimingScore maps days until resolution to 0-100. Markets resolving in one
// to two weeks are the sweet spot; same-day markets leave no time to act and
// distant ones tie up capital.
func TimingScore(daysUntil *int) float64 {
	if daysUntil == nil {
		return 50
	}
	d := *daysUntil
	switch {
	case d < 1:
		return 20
	case d < 3:
		return 50
	case d <= 14:
		return 90
	case d <= 30:
		return 85
	case d <= 90:
		return 70
	default:
		return 40
	}
}

// Score returns a copy of the market with its edge score and sub-scores set.
// The input is not modified.
func Score(m domain.Market) domain.Market {
	liq := LiquidityScore(m.Liquidity)
	ineff := InefficiencyScore(m.SpreadPct)
	res := ResearchabilityScore(m.Category)
	timing := TimingScore(m.DaysUntilResolution)

	m.LiquidityScore = liq
	m.EfficiencyScore = ineff
	m.ResearchabilityScore = res
	m.EdgeScore = weightLiquidity*liq +
		weightInefficiency*ineff +
		weightResearchability*res +
		weightTiming*timing
	return m
}
