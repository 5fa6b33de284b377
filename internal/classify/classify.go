// Package classify assigns a category to a market based on keyword hits in
// its question and description.
package classify

import (
	"strings"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

type rule struct {
	category domain.MarketCategory
	keywords []string
}

// Rules are evaluated in order; earlier categories win ties.
var rules = []rule{
	{domain.CategoryPolitics, []string{
		"election", "president", "congress", "senate", "trump", "biden",
		"republican", "democrat", "governor", "vote", "poll",
	}},
	{domain.CategorySports, []string{
		"nfl", "nba", "mlb", "nhl", "super bowl", "championship",
		"playoffs", "finals", "game", "match", "win", "score",
	}},
	{domain.CategoryCrypto, []string{
		"bitcoin", "btc", "ethereum", "eth", "crypto", "solana", "token",
	}},
	{domain.CategoryEconomics, []string{
		"fed", "interest rate", "inflation", "gdp", "unemployment", "recession",
	}},
	{domain.CategoryEntertainment, []string{
		"movie", "oscar", "grammy", "emmy", "album", "netflix", "box office",
	}},
	{domain.CategoryScience, []string{
		"space", "nasa", "spacex", "climate", "vaccine", "fda",
	}},
}

// Categorize classifies a market from its question and description. The
// category with the most distinct keyword hits wins; ties go to the category
// declared first. No hits at all yields CategoryOther.
func Categorize(question, description string) domain.MarketCategory {
	text := strings.ToLower(question + " " + description)

	best := domain.CategoryOther
	bestHits := 0
	for _, r := range rules {
		hits := 0
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = r.category
			bestHits = hits
		}
	}
	return best
}
