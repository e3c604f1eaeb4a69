package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultBaseURL is the Yahoo Finance chart API endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the interface the market data gateway depends on for equity
// quotes. Implemented by FinanceClient and by the test mock.
type Client interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// FinanceClient fetches quote data from the Yahoo Finance chart API.
// It wraps an HTTP client and provides a regular-market quote lookup for a
// ticker symbol.
type FinanceClient struct {
	httpClient *http.Client

	// BaseURL can be overridden in tests to point at a local server.
	BaseURL string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
		BaseURL:    DefaultBaseURL,
	}
}

// Quote fetches the current regular-market quote for a symbol. The symbol
// must already carry its market suffix where required (e.g. "PETR4.SA" for
// B3 listings; US listings use the bare ticker).
//
// Returns the regular market price together with the quote currency and the
// instrument's long name, which the caller uses for display.
func (c *FinanceClient) Quote(ctx context.Context, symbol string) (Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.BaseURL, symbol)
	result, err := c.queryYahoo(ctx, url)
	if err != nil {
		return Quote{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	meta := result.Chart.Result[0].Meta
	return Quote{
		Symbol:   meta.Symbol,
		Price:    meta.RegularMarketPrice,
		Currency: meta.Currency,
		LongName: meta.LongName,
	}, nil
}

// queryYahoo is an internal helper that executes HTTP requests to the Yahoo
// Finance API. It handles the common logic for making requests, reading
// responses, parsing JSON, and checking for API errors.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
