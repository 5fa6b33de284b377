package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

func TestLiquidityScore(t *testing.T) {
	tests := []struct {
		name      string
		liquidity float64
		want      float64
	}{
		{"zero", 0, 0},
		{"below floor", 999, 0},
		{"at floor", 1000, 0},
		{"midpoint", 25500, 50},
		{"at ceiling", 50000, 100},
		{"above ceiling", 1_000_000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LiquidityScore(tt.liquidity), 1e-9)
		})
	}
}

func TestInefficiencyScore(t *testing.T) {
	tests := []struct {
		name   string
		spread float64
		want   float64
	}{
		{"very wide", 12, 20},
		{"razor thin", 0.4, 30},
		{"sweet spot low", 1, 100},
		{"sweet spot high", 5, 100},
		{"mid sweet spot", 3, 100},
		{"sub one percent", 0.8, 30 + 0.8*70},
		{"decaying above five", 7, 100 - 2*16},
		{"ten exactly", 10, 100 - 5*16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, InefficiencyScore(tt.spread), 1e-9)
		})
	}
}

func TestResearchabilityScore(t *testing.T) {
	assert.Equal(t, 95.0, ResearchabilityScore(domain.CategorySports))
	assert.Equal(t, 90.0, ResearchabilityScore(domain.CategoryPolitics))
	assert.Equal(t, 90.0, ResearchabilityScore(domain.CategoryEconomics))
	assert.Equal(t, 85.0, ResearchabilityScore(domain.CategoryCrypto))
	assert.Equal(t, 75.0, ResearchabilityScore(domain.CategoryLegal))
	assert.Equal(t, 70.0, ResearchabilityScore(domain.CategoryScience))
	assert.Equal(t, 60.0, ResearchabilityScore(domain.CategoryEntertainment))
	assert.Equal(t, 40.0, ResearchabilityScore(domain.CategoryOther))
	assert.Equal(t, 40.0, ResearchabilityScore(domain.MarketCategory("unknown")))
}

func TestTimingScore(t *testing.T) {
	days := func(d int) *int { return &d }

	assert.Equal(t, 50.0, TimingScore(nil))
	assert.Equal(t, 20.0, TimingScore(days(0)))
	assert.Equal(t, 50.0, TimingScore(days(2)))
	assert.Equal(t, 90.0, TimingScore(days(3)))
	assert.Equal(t, 90.0, TimingScore(days(14)))
	assert.Equal(t, 85.0, TimingScore(days(30)))
	assert.Equal(t, 70.0, TimingScore(days(90)))
	assert.Equal(t, 40.0, TimingScore(days(91)))
}

func TestScore(t *testing.T) {
	days := 10
	m := domain.Market{
		ID:                  "m1",
		Category:            domain.CategoryPolitics,
		Liquidity:           25500,
		SpreadPct:           3,
		DaysUntilResolution: &days,
	}

	scored := Score(m)

	assert.Equal(t, 50.0, scored.LiquidityScore)
	assert.Equal(t, 100.0, scored.EfficiencyScore)
	assert.Equal(t, 90.0, scored.ResearchabilityScore)
	// 0.25*50 + 0.30*100 + 0.25*90 + 0.20*90 = 12.5 + 30 + 22.5 + 18
	assert.InDelta(t, 83.0, scored.EdgeScore, 1e-9)

	// Input is untouched.
	assert.Zero(t, m.EdgeScore)
	assert.Zero(t, m.LiquidityScore)
}

func TestScoreMonotonicInSubScores(t *testing.T) {
	days := func(d int) *int { return &d }

	base := domain.Market{
		Category:            domain.CategoryOther,
		Liquidity:           5_000,
		SpreadPct:           0.6,
		DaysUntilResolution: days(45),
	}

	// Each bump raises exactly one sub-score while the others stay fixed; the
	// composite must not drop.
	tests := []struct {
		name string
		bump func(m domain.Market) domain.Market
	}{
		{"more liquidity", func(m domain.Market) domain.Market {
			m.Liquidity = 30_000
			return m
		}},
		{"spread toward sweet spot", func(m domain.Market) domain.Market {
			m.SpreadPct = 0.9
			return m
		}},
		{"better researched category", func(m domain.Market) domain.Market {
			m.Category = domain.CategorySports
			return m
		}},
		{"closer resolution", func(m domain.Market) domain.Market {
			m.DaysUntilResolution = days(10)
			return m
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo := Score(base)
			hi := Score(tt.bump(base))
			assert.GreaterOrEqual(t, hi.EdgeScore, lo.EdgeScore)
		})
	}
}

func TestScoreBounds(t *testing.T) {
	worst := Score(domain.Market{Category: domain.CategoryOther})
	best := func() domain.Market {
		days := 7
		return Score(domain.Market{
			Category:            domain.CategorySports,
			Liquidity:           100000,
			SpreadPct:           2,
			DaysUntilResolution: &days,
		})
	}()

	assert.GreaterOrEqual(t, worst.EdgeScore, 0.0)
	assert.LessOrEqual(t, best.EdgeScore, 100.0)
}
