package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

// ClobClient is the read-only REST client for the Polymarket CLOB API, used
// to fetch orderbooks for spread measurement. No authentication is needed for
// the public book endpoint.
type ClobClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClobClient creates a CLOB REST client.
//
// baseURL is the CLOB API root, e.g. "https://clob.polymarket.com".
// The limiter is shared with the Gamma client; nil disables rate limiting.
func NewClobClient(baseURL string, limiter *rate.Limiter) *ClobClient {
	return &ClobClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		limiter:    limiter,
	}
}

// GetBook fetches the orderbook for a token.
func (c *ClobClient) GetBook(ctx context.Context, tokenID string) (APIBook, error) {
	params := url.Values{}
	params.Set("token_id", tokenID)

	body, err := doGet(ctx, c.httpClient, c.limiter, c.baseURL+"/book?"+params.Encode())
	if err != nil {
		return APIBook{}, fmt.Errorf("polymarket/clob: get book %s: %w", tokenID, err)
	}

	var book APIBook
	if err := json.Unmarshal(body, &book); err != nil {
		return APIBook{}, fmt.Errorf("polymarket/clob: decode book: %w", err)
	}
	return book, nil
}
