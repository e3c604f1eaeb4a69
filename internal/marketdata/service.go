package marketdata

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/wealthmap/wealthmap-backend/internal/yahoo"
)

// Service is the production Gateway implementation. It wires the provider
// clients together and memoizes the series-shaped fetches for the process
// lifetime. Concurrent callers for the same series share one in-flight
// request instead of issuing duplicates.
//
// Caches are process-wide, shared across all valuation builds, and never
// invalidated. Failed fetches are not cached; a later build retries.
type Service struct {
	bcb       *BCBClient
	treasury  *TreasuryClient
	fx        *AwesomeClient
	coingecko *CoinGeckoClient
	yahoo     yahoo.Client

	flight singleflight.Group
	mu     sync.RWMutex
	cache  map[string]any
}

// NewService creates a gateway from explicit provider clients.
func NewService(bcb *BCBClient, treasury *TreasuryClient, fx *AwesomeClient, coingecko *CoinGeckoClient, yahooClient yahoo.Client) *Service {
	return &Service{
		bcb:       bcb,
		treasury:  treasury,
		fx:        fx,
		coingecko: coingecko,
		yahoo:     yahooClient,
		cache:     make(map[string]any),
	}
}

// NewDefaultService creates a gateway wired to the real provider endpoints.
func NewDefaultService() *Service {
	return NewService(
		NewBCBClient(),
		NewTreasuryClient(),
		NewAwesomeClient(),
		NewCoinGeckoClient(),
		yahoo.NewFinanceClient(),
	)
}

// Cache keys for the memoized series.
const (
	keyInterest  = "interest"
	keyInflation = "inflation"
	keyTreasury  = "treasury"
	keyCrypto    = "crypto"
	keyUSD       = "usd"
)

// memo returns the cached value for key, or runs fetch once (shared across
// concurrent callers) and caches its result.
func memo[T any](s *Service, key string, fetch func() (T, error)) (T, error) {
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached.(T), nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.cache[key]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}
		fetched, err := fetch()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[key] = fetched
		s.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// InterestRateSeries returns the daily CDI series, fetched once per process.
func (s *Service) InterestRateSeries(ctx context.Context) ([]RatePoint, error) {
	return memo(s, keyInterest, func() ([]RatePoint, error) {
		return s.bcb.Series(ctx, SeriesCDI)
	})
}

// InflationSeries returns the monthly IPCA series, fetched once per process.
func (s *Service) InflationSeries(ctx context.Context) ([]RatePoint, error) {
	return memo(s, keyInflation, func() ([]RatePoint, error) {
		return s.bcb.Series(ctx, SeriesIPCA)
	})
}

// TreasuryBondCatalog returns the bond catalog, fetched once per process.
func (s *Service) TreasuryBondCatalog(ctx context.Context) ([]TreasuryBond, error) {
	return memo(s, keyTreasury, func() ([]TreasuryBond, error) {
		return s.treasury.Catalog(ctx)
	})
}

// KnownCryptoCatalog returns the known-coin catalog, loaded once per process.
func (s *Service) KnownCryptoCatalog(_ context.Context) (map[string]CryptoCoin, error) {
	return memo(s, keyCrypto, loadCoinCatalog)
}

// USDRate returns the BRL price of one US dollar, fetched once per process.
func (s *Service) USDRate(ctx context.Context) (float64, error) {
	return memo(s, keyUSD, func() (float64, error) {
		return s.fx.Rate(ctx, "USD")
	})
}

// ForeignExchangeRate returns the current BRL rate for a foreign currency.
// Not memoized: each leaf pays for its own lookup.
func (s *Service) ForeignExchangeRate(ctx context.Context, currency string) (float64, error) {
	return s.fx.Rate(ctx, currency)
}

// SpotPriceBRL returns the current BRL spot price of a coin. Not memoized.
func (s *Service) SpotPriceBRL(ctx context.Context, providerID string) (float64, error) {
	return s.coingecko.SimplePriceBRL(ctx, providerID)
}

// EquityQuote returns the current quote for a symbol. Not memoized.
func (s *Service) EquityQuote(ctx context.Context, symbol string) (yahoo.Quote, error) {
	return s.yahoo.Quote(ctx, symbol)
}
