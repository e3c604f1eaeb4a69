// Package marketdata implements the market data gateway: typed clients for
// the external price providers (Banco Central SGS series, the Tesouro Direto
// bond catalog, AwesomeAPI exchange rates, CoinGecko spot prices, Yahoo
// Finance quotes) and a memoizing Service that the valuation engine consumes.
package marketdata

import (
	"context"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/yahoo"
)

// RatePoint is one observation of a published rate series, as a percentage.
type RatePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TreasuryBond is one entry of the government bond price catalog.
type TreasuryBond struct {
	Name      string  `json:"name"`
	UnitValue float64 `json:"value"`
}

// CryptoCoin describes one coin of the known-coin catalog. ProviderID is the
// identifier the spot-price provider uses for the coin.
type CryptoCoin struct {
	Ticker     string
	Name       string
	ProviderID string
}

// Gateway is the set of market data operations the valuation engine depends
// on. The production implementation is *Service; tests substitute a mock.
//
// The series-shaped fetches (interest, inflation, treasury catalog, crypto
// catalog, USD rate) are cached for the process lifetime: the first caller
// pays the network cost and concurrent callers share the in-flight result.
// The per-asset lookups (foreign exchange, spot price, equity quote) go
// straight through.
type Gateway interface {
	// InterestRateSeries returns the daily CDI series, oldest first.
	InterestRateSeries(ctx context.Context) ([]RatePoint, error)

	// InflationSeries returns the monthly IPCA series, oldest first.
	InflationSeries(ctx context.Context) ([]RatePoint, error)

	// TreasuryBondCatalog returns the current government bond price list.
	TreasuryBondCatalog(ctx context.Context) ([]TreasuryBond, error)

	// KnownCryptoCatalog returns the known-coin catalog keyed by ticker.
	KnownCryptoCatalog(ctx context.Context) (map[string]CryptoCoin, error)

	// USDRate returns the current BRL price of one US dollar.
	USDRate(ctx context.Context) (float64, error)

	// ForeignExchangeRate returns the current BRL price of one unit of the
	// given foreign currency.
	ForeignExchangeRate(ctx context.Context, currency string) (float64, error)

	// SpotPriceBRL returns the current BRL spot price of a coin, identified
	// by its provider ID.
	SpotPriceBRL(ctx context.Context, providerID string) (float64, error)

	// EquityQuote returns the current quote for a symbol. The symbol must
	// already carry its market suffix where required.
	EquityQuote(ctx context.Context, symbol string) (yahoo.Quote, error)
}
