package marketdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
)

// coinsJSON is the known-coin catalog, a snapshot of the CoinGecko coin list
// restricted to the coins the application supports. Tickers are the catalog
// keys; IDs are what the price endpoint expects.
//
//go:embed coins.json
var coinsJSON []byte

type coinEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// loadCoinCatalog parses the embedded coin list into a ticker-keyed catalog.
func loadCoinCatalog() (map[string]CryptoCoin, error) {
	var entries []coinEntry
	if err := json.Unmarshal(coinsJSON, &entries); err != nil {
		return nil, fmt.Errorf("%w: coin catalog: %v", apperrors.ErrMarketData, err)
	}
	catalog := make(map[string]CryptoCoin, len(entries))
	for _, e := range entries {
		catalog[e.Symbol] = CryptoCoin{Ticker: e.Symbol, Name: e.Name, ProviderID: e.ID}
	}
	return catalog, nil
}
