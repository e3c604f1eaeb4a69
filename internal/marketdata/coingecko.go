package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
)

// DefaultCoinGeckoBaseURL is the CoinGecko public API endpoint.
const DefaultCoinGeckoBaseURL = "https://api.coingecko.com"

// CoinGeckoClient fetches cryptocurrency spot prices from CoinGecko.
type CoinGeckoClient struct {
	httpClient *http.Client

	// BaseURL can be overridden in tests to point at a local server.
	BaseURL string
}

// NewCoinGeckoClient creates a new CoinGecko client with default HTTP
// settings.
func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		httpClient: &http.Client{},
		BaseURL:    DefaultCoinGeckoBaseURL,
	}
}

// SimplePriceBRL fetches the current BRL spot price of a coin by its
// CoinGecko ID (e.g. "bitcoin").
func (c *CoinGeckoClient) SimplePriceBRL(ctx context.Context, id string) (float64, error) {
	u := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=brl", c.BaseURL, url.QueryEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: crypto price for %s: %v", apperrors.ErrMarketData, id, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: crypto price for %s: %v", apperrors.ErrMarketData, id, err)
	}

	// Payload shape: {"bitcoin": {"brl": 350000.12}}.
	var payload map[string]map[string]float64
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("%w: crypto price for %s: %v", apperrors.ErrMarketData, id, err)
	}

	price, ok := payload[id]["brl"]
	if !ok || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: failed to fetch crypto price for %s", apperrors.ErrMarketData, id)
	}
	return price, nil
}
