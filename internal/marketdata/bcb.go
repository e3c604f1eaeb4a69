package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
)

// DefaultBCBBaseURL is the Banco Central do Brasil open data API endpoint.
const DefaultBCBBaseURL = "https://api.bcb.gov.br"

// SGS series codes published by the Banco Central.
const (
	// SeriesCDI is the daily CDI interbank rate (series 12).
	SeriesCDI = 12
	// SeriesIPCA is the monthly IPCA inflation index (series 433).
	SeriesIPCA = 433
)

// BCBClient fetches rate series from the Banco Central SGS API.
type BCBClient struct {
	httpClient *http.Client

	// BaseURL can be overridden in tests to point at a local server.
	BaseURL string
}

// NewBCBClient creates a new Banco Central client with default HTTP settings.
func NewBCBClient() *BCBClient {
	return &BCBClient{
		httpClient: &http.Client{},
		BaseURL:    DefaultBCBBaseURL,
	}
}

// bcbObservation is the raw SGS payload shape: dates come as dd/mm/yyyy and
// values come as strings.
type bcbObservation struct {
	Data  string `json:"data"`
	Valor string `json:"valor"`
}

// Series fetches one SGS series and normalizes it into RatePoints. A
// malformed date or a non-finite value anywhere in the payload fails the
// whole fetch.
func (c *BCBClient) Series(ctx context.Context, code int) ([]RatePoint, error) {
	url := fmt.Sprintf("%s/dados/serie/bcdata.sgs.%d/dados?formato=json", c.BaseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: bcb series %d: %v", apperrors.ErrMarketData, code, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: bcb series %d: %v", apperrors.ErrMarketData, code, err)
	}

	var observations []bcbObservation
	if err := json.Unmarshal(data, &observations); err != nil {
		return nil, fmt.Errorf("%w: bcb series %d: %v", apperrors.ErrMarketData, code, err)
	}

	points := make([]RatePoint, len(observations))
	for i, obs := range observations {
		date, err := time.Parse("02/01/2006", obs.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: bcb series %d: failed to parse %q", apperrors.ErrMarketData, code, obs.Data)
		}
		value, err := strconv.ParseFloat(obs.Valor, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: bcb series %d: bad value %q for %s", apperrors.ErrMarketData, code, obs.Valor, obs.Data)
		}
		points[i] = RatePoint{Date: date, Value: value}
	}
	return points, nil
}
