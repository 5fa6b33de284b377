package detect

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// datePlaceholder replaces date phrases so questions that differ only in
// deadline normalize to the same text.
const datePlaceholder = "<DATE>"

// endDateSentinel sorts markets with no end date after every dated one.
const endDateSentinel = "9999-12-31"

// Probability gaps under this are noise, not a temporal violation.
const temporalTolerance = 0.03

// Applied in order; once a month name is replaced, the "by <month> <day>"
// pattern no longer sees it, which is fine since both collapse to the same
// placeholder.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`),
	regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`),
	regexp.MustCompile(`\bby\s+\w+\s+\d+`),
	regexp.MustCompile(`\bbefore\s+\w+`),
}

// TemporalArbitrage finds families of deadline markets ("X by March", "X by
// June") where an earlier deadline is priced above a later one. An event
// happening by an earlier date can never be more likely than by a later date.
type TemporalArbitrage struct{}

func NewTemporalArbitrage() *TemporalArbitrage { return &TemporalArbitrage{} }

func (d *TemporalArbitrage) Name() string { return "temporal_arbitrage" }

// normalizeQuestion lowercases the question and collapses date phrases to a
// placeholder. Returns ok=false when no date phrase was found.
func normalizeQuestion(question string) (string, bool) {
	normalized := strings.ToLower(question)
	for _, p := range datePatterns {
		normalized = p.ReplaceAllString(normalized, datePlaceholder)
	}
	return normalized, strings.Contains(normalized, datePlaceholder)
}

func (d *TemporalArbitrage) Detect(_ context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error) {
	groups := make(map[string][]domain.Market)
	var order []string
	for _, m := range markets {
		normalized, ok := normalizeQuestion(m.Question)
		if !ok {
			continue
		}
		if _, seen := groups[normalized]; !seen {
			order = append(order, normalized)
		}
		groups[normalized] = append(groups[normalized], m)
	}

	var opps []domain.EdgeOpportunity
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return sortableEndDate(group[i]) < sortableEndDate(group[j])
		})

		for i := 0; i < len(group)-1; i++ {
			earlier, later := group[i], group[i+1]
			if earlier.CurrentPrice <= later.CurrentPrice+temporalTolerance {
				continue
			}
			diff := earlier.CurrentPrice - later.CurrentPrice
			opps = append(opps, domain.EdgeOpportunity{
				ID:              newOpportunityID(),
				EdgeType:        domain.EdgeArbitrage,
				Description:     fmt.Sprintf("Temporal mispricing: Earlier (%s) > Later (%s)", pct(earlier.CurrentPrice), pct(later.CurrentPrice)),
				Confidence:      85,
				ExpectedReturn:  diff * 100,
				RiskLevel:       domain.RiskLow,
				MarketID:        earlier.ID,
				MarketQuestion:  earlier.Question,
				SuggestedAction: "Sell YES on earlier market, Buy YES on later market",
				Reasoning: fmt.Sprintf("Event by earlier date can't be more likely than by later date. %s vs %s",
					truncate(earlier.Question, 50), truncate(later.Question, 50)),
				DetectedAt: time.Now().UTC(),
			})
		}
	}
	return opps, nil
}

func sortableEndDate(m domain.Market) string {
	if m.EndDate == "" {
		return endDateSentinel
	}
	return m.EndDate
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ Detector = (*TemporalArbitrage)(nil)
