package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
)

// DefaultAwesomeBaseURL is the AwesomeAPI currency endpoint.
// https://docs.awesomeapi.com.br/api-de-moedas
const DefaultAwesomeBaseURL = "https://economia.awesomeapi.com.br"

// AwesomeClient fetches BRL exchange rates from AwesomeAPI.
type AwesomeClient struct {
	httpClient *http.Client

	// BaseURL can be overridden in tests to point at a local server.
	BaseURL string
}

// NewAwesomeClient creates a new AwesomeAPI client with default HTTP settings.
func NewAwesomeClient() *AwesomeClient {
	return &AwesomeClient{
		httpClient: &http.Client{},
		BaseURL:    DefaultAwesomeBaseURL,
	}
}

// Rate fetches the current BRL ask price for one unit of the given currency.
func (c *AwesomeClient) Rate(ctx context.Context, currency string) (float64, error) {
	url := fmt.Sprintf("%s/json/last/%s", c.BaseURL, currency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: exchange rate for %s: %v", apperrors.ErrMarketData, currency, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: exchange rate for %s: %v", apperrors.ErrMarketData, currency, err)
	}

	// Payload is keyed by the pair name, e.g. {"USDBRL": {"ask": "5.43", ...}}.
	var payload map[string]struct {
		Ask string `json:"ask"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("%w: exchange rate for %s: %v", apperrors.ErrMarketData, currency, err)
	}

	pair, ok := payload[currency+"BRL"]
	if !ok {
		return 0, fmt.Errorf("%w: failed to fetch exchange rate for %s", apperrors.ErrMarketData, currency)
	}
	rate, err := strconv.ParseFloat(pair.Ask, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: failed to fetch exchange rate for %s", apperrors.ErrMarketData, currency)
	}
	return rate, nil
}
