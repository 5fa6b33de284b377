// Package detect provides edge detectors that scan a batch of markets for
// tradeable inconsistencies, and an engine that runs them all and merges the
// results.
package detect

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// Detector scans a market batch and returns zero or more opportunities.
type Detector interface {
	Name() string
	Detect(ctx context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error)
}

// Engine fans the batch out to its detectors and merges their results.
type Engine struct {
	detectors []Detector
	logger    *slog.Logger
}

// Thresholds carries the tunable detector cutoffs. Zero values fall back to
// the package defaults.
type Thresholds struct {
	// VolumeRatio is the 24h-to-average volume ratio a volume spike must
	// exceed.
	VolumeRatio float64
	// MinSpread is the minimum bid/ask spread, in percentage points, for a
	// liquidity gap.
	MinSpread float64
}

// NewEngine creates an engine running the standard detector set with default
// thresholds: binary mispricing, multi-outcome mispricing, temporal arbitrage,
// volume spikes and liquidity gaps.
func NewEngine(logger *slog.Logger) *Engine {
	return NewEngineWith(Thresholds{}, logger)
}

// NewEngineWith is NewEngine with explicit detector thresholds.
func NewEngineWith(t Thresholds, logger *slog.Logger) *Engine {
	if t.VolumeRatio <= 0 {
		t.VolumeRatio = DefaultVolumeSpikeThreshold
	}
	if t.MinSpread <= 0 {
		t.MinSpread = DefaultMinSpreadPct
	}
	return &Engine{
		detectors: []Detector{
			NewBinaryMispricing(),
			NewMultiOutcomeMispricing(),
			NewTemporalArbitrage(),
			NewVolumeSpike(t.VolumeRatio),
			NewLiquidityGap(t.MinSpread),
		},
		logger: logger.With(slog.String("component", "detect_engine")),
	}
}

// DetectAll runs every detector on the batch. Detectors run concurrently but
// their results are merged in registration order before sorting, so output
// order is deterministic. The merged list is sorted by confidence, highest
// first; the sort is stable so detector order breaks ties.
func (e *Engine) DetectAll(ctx context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error) {
	e.logger.Info("running edge detection", slog.Int("markets", len(markets)))

	results := make([][]domain.EdgeOpportunity, len(e.detectors))
	g, ctx := errgroup.WithContext(ctx)
	for i, d := range e.detectors {
		g.Go(func() error {
			opps, err := d.Detect(ctx, markets)
			if err != nil {
				return fmt.Errorf("detect: %s: %w", d.Name(), err)
			}
			results[i] = opps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []domain.EdgeOpportunity
	for _, opps := range results {
		merged = append(merged, opps...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})

	e.logger.Info("edge detection done", slog.Int("opportunities", len(merged)))
	return merged, nil
}

// newOpportunityID returns a short random identifier.
func newOpportunityID() string {
	return uuid.NewString()[:8]
}

// pct formats a 0-1 probability as a percentage with one decimal, e.g. 0.405
// becomes "40.5%".
func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// pct2 is pct with two decimals.
func pct2(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// money formats a dollar amount with thousands separators and no cents.
func money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "$-" + b.String()
	}
	return "$" + b.String()
}
