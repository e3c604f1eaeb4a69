package marketdata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
)

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestBCBClient_Series tests SGS payload normalization.
//
// WHY: The SGS API serves dates as dd/mm/yyyy strings and values as strings;
// both must be normalized on ingest so the accrual math never sees raw wire
// shapes. A single malformed observation must fail the whole series.
func TestBCBClient_Series(t *testing.T) {
	t.Run("parses dates and values", func(t *testing.T) {
		srv := jsonServer(t, `[{"data":"02/01/2023","valor":"0.04"},{"data":"03/01/2023","valor":"0.05"}]`)
		c := marketdata.NewBCBClient()
		c.BaseURL = srv.URL

		points, err := c.Series(context.Background(), marketdata.SeriesCDI)
		if err != nil {
			t.Fatalf("Series() returned error: %v", err)
		}
		if len(points) != 2 {
			t.Fatalf("got %d points, want 2", len(points))
		}
		want := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
		if !points[0].Date.Equal(want) {
			t.Errorf("first date = %v, want %v", points[0].Date, want)
		}
		if points[1].Value != 0.05 {
			t.Errorf("second value = %v, want 0.05", points[1].Value)
		}
	})

	t.Run("malformed date fails the fetch", func(t *testing.T) {
		srv := jsonServer(t, `[{"data":"2023-01-02","valor":"0.04"}]`)
		c := marketdata.NewBCBClient()
		c.BaseURL = srv.URL

		_, err := c.Series(context.Background(), marketdata.SeriesCDI)
		if !errors.Is(err, apperrors.ErrMarketData) {
			t.Errorf("expected market data error, got: %v", err)
		}
	})

	t.Run("non-numeric value fails the fetch", func(t *testing.T) {
		srv := jsonServer(t, `[{"data":"02/01/2023","valor":"n/a"}]`)
		c := marketdata.NewBCBClient()
		c.BaseURL = srv.URL

		_, err := c.Series(context.Background(), marketdata.SeriesCDI)
		if !errors.Is(err, apperrors.ErrMarketData) {
			t.Errorf("expected market data error, got: %v", err)
		}
	})
}

// TestTreasuryClient_Catalog tests bond catalog extraction.
//
// WHY: Bonds past their sale window publish a zero investment price; their
// redemption price is the only usable unit value.
func TestTreasuryClient_Catalog(t *testing.T) {
	srv := jsonServer(t, `{"response":{"TrsrBdTradgList":[
		{"TrsrBd":{"nm":"Tesouro Selic 2029","untrInvstmtVal":14000.50,"untrRedVal":13980.10}},
		{"TrsrBd":{"nm":"Tesouro IPCA+ 2035","untrInvstmtVal":0,"untrRedVal":3200.25}}
	]}}`)
	c := marketdata.NewTreasuryClient()
	c.BaseURL = srv.URL

	bonds, err := c.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() returned error: %v", err)
	}
	if len(bonds) != 2 {
		t.Fatalf("got %d bonds, want 2", len(bonds))
	}
	if bonds[0].UnitValue != 14000.50 {
		t.Errorf("investment price = %v, want 14000.50", bonds[0].UnitValue)
	}
	if bonds[1].UnitValue != 3200.25 {
		t.Errorf("redemption fallback = %v, want 3200.25", bonds[1].UnitValue)
	}
}

// TestAwesomeClient_Rate tests BRL exchange rate extraction.
//
// WHY: The payload is keyed by pair name with string prices; a missing pair
// or a non-numeric ask must surface as a market data failure, not as a zero
// rate silently valuing holdings at nothing.
func TestAwesomeClient_Rate(t *testing.T) {
	t.Run("parses the ask price", func(t *testing.T) {
		srv := jsonServer(t, `{"USDBRL":{"ask":"5.43"}}`)
		c := marketdata.NewAwesomeClient()
		c.BaseURL = srv.URL

		rate, err := c.Rate(context.Background(), "USD")
		if err != nil {
			t.Fatalf("Rate() returned error: %v", err)
		}
		if rate != 5.43 {
			t.Errorf("rate = %v, want 5.43", rate)
		}
	})

	t.Run("missing pair fails", func(t *testing.T) {
		srv := jsonServer(t, `{}`)
		c := marketdata.NewAwesomeClient()
		c.BaseURL = srv.URL

		_, err := c.Rate(context.Background(), "USD")
		if !errors.Is(err, apperrors.ErrMarketData) {
			t.Errorf("expected market data error, got: %v", err)
		}
	})
}

// TestCoinGeckoClient_SimplePriceBRL tests spot price extraction.
func TestCoinGeckoClient_SimplePriceBRL(t *testing.T) {
	t.Run("parses the BRL price", func(t *testing.T) {
		srv := jsonServer(t, `{"bitcoin":{"brl":350000.12}}`)
		c := marketdata.NewCoinGeckoClient()
		c.BaseURL = srv.URL

		price, err := c.SimplePriceBRL(context.Background(), "bitcoin")
		if err != nil {
			t.Fatalf("SimplePriceBRL() returned error: %v", err)
		}
		if price != 350000.12 {
			t.Errorf("price = %v, want 350000.12", price)
		}
	})

	t.Run("unknown id fails", func(t *testing.T) {
		srv := jsonServer(t, `{}`)
		c := marketdata.NewCoinGeckoClient()
		c.BaseURL = srv.URL

		_, err := c.SimplePriceBRL(context.Background(), "notacoin")
		if !errors.Is(err, apperrors.ErrMarketData) {
			t.Errorf("expected market data error, got: %v", err)
		}
	})
}
