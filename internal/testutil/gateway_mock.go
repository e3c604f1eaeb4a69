// Package testutil provides shared test helpers: a configurable mock market
// data gateway and factories for declared-document fragments.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
	"github.com/wealthmap/wealthmap-backend/internal/yahoo"
)

// Operation names used for forced errors and call counting.
const (
	OpInterest  = "interest"
	OpInflation = "inflation"
	OpTreasury  = "treasury"
	OpCrypto    = "crypto"
	OpUSD       = "usd"
	OpFX        = "fx"
	OpSpot      = "spot"
	OpQuote     = "quote"
)

// MockGateway is a mock implementation of marketdata.Gateway for testing.
// It returns predefined data instead of making network calls, counts every
// call per operation, and can be configured to fail any single operation.
type MockGateway struct {
	Interest  []marketdata.RatePoint
	Inflation []marketdata.RatePoint
	Bonds     []marketdata.TreasuryBond
	Coins     map[string]marketdata.CryptoCoin
	USD       float64
	FXRates   map[string]float64
	Spots     map[string]float64
	Quotes    map[string]yahoo.Quote

	// Errs forces an error return for an operation name.
	Errs map[string]error

	// Calls tracks how many times each operation was invoked.
	Calls map[string]int
}

// NewMockGateway creates a mock with a small, coherent set of market data:
// a few CDI/IPCA observations, one treasury bond, the bitcoin/ethereum
// coins, and BRL-priced quotes for one B3 and one US ticker.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Interest: []marketdata.RatePoint{
			{Date: date(2023, 1, 2), Value: 0.05},
			{Date: date(2023, 1, 3), Value: 0.05},
		},
		Inflation: []marketdata.RatePoint{
			{Date: date(2023, 2, 1), Value: 0.5},
		},
		Bonds: []marketdata.TreasuryBond{
			{Name: "Tesouro Selic 2029", UnitValue: 14000.50},
		},
		Coins: map[string]marketdata.CryptoCoin{
			"btc": {Ticker: "btc", Name: "Bitcoin", ProviderID: "bitcoin"},
			"eth": {Ticker: "eth", Name: "Ethereum", ProviderID: "ethereum"},
		},
		USD:     5.0,
		FXRates: map[string]float64{"USD": 5.0, "EUR": 5.5},
		Spots:   map[string]float64{"bitcoin": 350000, "ethereum": 18000},
		Quotes: map[string]yahoo.Quote{
			"PETR4.SA": {Symbol: "PETR4.SA", Currency: "BRL", LongName: "Petróleo Brasileiro S.A. - Petrobras", Price: 38.5},
			"AAPL":     {Symbol: "AAPL", Currency: "USD", LongName: "Apple Inc.", Price: 230},
		},
		Errs:  make(map[string]error),
		Calls: make(map[string]int),
	}
}

// WithError configures the mock to fail the named operation.
func (m *MockGateway) WithError(op string, err error) *MockGateway {
	m.Errs[op] = err
	return m
}

// WithQuote configures the quote returned for a symbol.
func (m *MockGateway) WithQuote(symbol string, q yahoo.Quote) *MockGateway {
	m.Quotes[symbol] = q
	return m
}

// WithBond adds a bond to the mocked treasury catalog.
func (m *MockGateway) WithBond(name string, unitValue float64) *MockGateway {
	m.Bonds = append(m.Bonds, marketdata.TreasuryBond{Name: name, UnitValue: unitValue})
	return m
}

// WithInterest replaces the mocked CDI series.
func (m *MockGateway) WithInterest(points ...marketdata.RatePoint) *MockGateway {
	m.Interest = points
	return m
}

// WithInflation replaces the mocked IPCA series.
func (m *MockGateway) WithInflation(points ...marketdata.RatePoint) *MockGateway {
	m.Inflation = points
	return m
}

func (m *MockGateway) call(op string) error {
	m.Calls[op]++
	return m.Errs[op]
}

// InterestRateSeries returns the mocked CDI series.
func (m *MockGateway) InterestRateSeries(_ context.Context) ([]marketdata.RatePoint, error) {
	if err := m.call(OpInterest); err != nil {
		return nil, err
	}
	return m.Interest, nil
}

// InflationSeries returns the mocked IPCA series.
func (m *MockGateway) InflationSeries(_ context.Context) ([]marketdata.RatePoint, error) {
	if err := m.call(OpInflation); err != nil {
		return nil, err
	}
	return m.Inflation, nil
}

// TreasuryBondCatalog returns the mocked bond catalog.
func (m *MockGateway) TreasuryBondCatalog(_ context.Context) ([]marketdata.TreasuryBond, error) {
	if err := m.call(OpTreasury); err != nil {
		return nil, err
	}
	return m.Bonds, nil
}

// KnownCryptoCatalog returns the mocked coin catalog.
func (m *MockGateway) KnownCryptoCatalog(_ context.Context) (map[string]marketdata.CryptoCoin, error) {
	if err := m.call(OpCrypto); err != nil {
		return nil, err
	}
	return m.Coins, nil
}

// USDRate returns the mocked dollar rate.
func (m *MockGateway) USDRate(_ context.Context) (float64, error) {
	if err := m.call(OpUSD); err != nil {
		return 0, err
	}
	return m.USD, nil
}

// ForeignExchangeRate returns the mocked rate for a currency, failing on
// currencies the mock was not configured with.
func (m *MockGateway) ForeignExchangeRate(_ context.Context, currency string) (float64, error) {
	if err := m.call(OpFX); err != nil {
		return 0, err
	}
	rate, ok := m.FXRates[currency]
	if !ok {
		return 0, fmt.Errorf("no mocked rate for %s", currency)
	}
	return rate, nil
}

// SpotPriceBRL returns the mocked spot price for a provider ID.
func (m *MockGateway) SpotPriceBRL(_ context.Context, providerID string) (float64, error) {
	if err := m.call(OpSpot); err != nil {
		return 0, err
	}
	price, ok := m.Spots[providerID]
	if !ok {
		return 0, fmt.Errorf("no mocked price for %s", providerID)
	}
	return price, nil
}

// EquityQuote returns the mocked quote for a symbol.
func (m *MockGateway) EquityQuote(_ context.Context, symbol string) (yahoo.Quote, error) {
	if err := m.call(OpQuote); err != nil {
		return yahoo.Quote{}, err
	}
	q, ok := m.Quotes[symbol]
	if !ok {
		return yahoo.Quote{}, fmt.Errorf("no mocked quote for %s", symbol)
	}
	return q, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
