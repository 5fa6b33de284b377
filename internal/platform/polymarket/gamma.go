package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"
)

// GammaClient is the REST client for the Polymarket Gamma API, which provides
// market discovery and metadata.
type GammaClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGammaClient creates a Gamma API client.
//
// baseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
// The limiter is shared with the CLOB client; nil disables rate limiting.
func NewGammaClient(baseURL string, limiter *rate.Limiter) *GammaClient {
	return &GammaClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		limiter:    limiter,
	}
}

// ListOpenMarkets returns one page of open markets, most 24h volume first.
func (g *GammaClient) ListOpenMarkets(ctx context.Context, limit, offset int) ([]APIMarket, error) {
	params := url.Values{}
	params.Set("closed", "false")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("order", "volume24hr")
	params.Set("ascending", "false")

	body, err := doGet(ctx, g.httpClient, g.limiter, g.baseURL+"/markets?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: list markets: %w", err)
	}

	var markets []APIMarket
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode markets: %w", err)
	}
	return markets, nil
}
