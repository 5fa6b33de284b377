package polymarket

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// flexBool unmarshals from JSON bool or string ("true"/"false") so Gamma API
// responses work whether "active" is sent as bool or string.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// flexFloat unmarshals from a JSON number, a string-encoded number, or null.
// Gamma sends volume and liquidity as strings on some endpoints.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// stringList unmarshals from a JSON string array or from a JSON-encoded string
// holding one, e.g. "[\"Yes\",\"No\"]". Gamma uses the latter for outcomes,
// outcomePrices and clobTokenIds.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	if encoded == "" {
		*l = nil
		return nil
	}
	var nested []string
	if err := json.Unmarshal([]byte(encoded), &nested); err != nil {
		return err
	}
	*l = nested
	return nil
}

// APIMarket is a market as returned by the Gamma /markets endpoint.
type APIMarket struct {
	ID            string     `json:"id"`
	ConditionID   string     `json:"conditionId"`
	Question      string     `json:"question"`
	Description   string     `json:"description"`
	Slug          string     `json:"slug"`
	Active        flexBool   `json:"active"`
	Closed        flexBool   `json:"closed"`
	Outcomes      stringList `json:"outcomes"`
	OutcomePrices stringList `json:"outcomePrices"`
	ClobTokenIDs  stringList `json:"clobTokenIds"`
	Tags          stringList `json:"tags"`
	Volume24h     flexFloat  `json:"volume24hr"`
	Liquidity     flexFloat  `json:"liquidity"`
	EndDate       string     `json:"endDate"`
}

// endDateLayouts are tried in order when parsing Gamma end dates.
var endDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseEndDate parses the market end date. ok is false when the field is
// missing or in an unknown format.
func (m *APIMarket) ParseEndDate() (time.Time, bool) {
	if m.EndDate == "" {
		return time.Time{}, false
	}
	for _, layout := range endDateLayouts {
		if t, err := time.Parse(layout, m.EndDate); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseTokens builds outcome tokens from the parallel outcomes, prices and
// token-id arrays. Missing prices default to 0.5 and missing token IDs to "".
func (m *APIMarket) ParseTokens() []domain.Token {
	outcomes := []string(m.Outcomes)
	if len(outcomes) == 0 {
		outcomes = []string{"Yes", "No"}
	}
	tokens := make([]domain.Token, 0, len(outcomes))
	for i, outcome := range outcomes {
		tok := domain.Token{Outcome: outcome, Price: 0.5}
		if i < len(m.ClobTokenIDs) {
			tok.TokenID = m.ClobTokenIDs[i]
		}
		if i < len(m.OutcomePrices) {
			if p, err := strconv.ParseFloat(m.OutcomePrices[i], 64); err == nil {
				tok.Price = p
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// BookLevel is one bid or ask level from the CLOB /book endpoint.
type BookLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// APIBook is the orderbook as returned by the CLOB /book endpoint.
type APIBook struct {
	Market  string      `json:"market"`
	AssetID string      `json:"asset_id"`
	Bids    []BookLevel `json:"bids"`
	Asks    []BookLevel `json:"asks"`
}

// BestBidAsk returns the top-of-book prices. ok is false when either side of
// the book is empty or unparseable.
func (b *APIBook) BestBidAsk() (bid, ask float64, ok bool) {
	if len(b.Bids) == 0 || len(b.Asks) == 0 {
		return 0, 0, false
	}
	bid, errB := strconv.ParseFloat(b.Bids[0].Price, 64)
	ask, errA := strconv.ParseFloat(b.Asks[0].Price, 64)
	if errB != nil || errA != nil {
		return 0, 0, false
	}
	return bid, ask, true
}
