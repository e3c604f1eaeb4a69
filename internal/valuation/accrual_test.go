package valuation_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
	"github.com/wealthmap/wealthmap-backend/internal/testutil"
)

// TestAccrual_CDIPath tests CDI-indexed private credit accrual.
//
// WHY: The CDI path compounds the daily benchmark series and then scales by
// the bond's share of the benchmark. At cdi=100 the scale factor is exactly
// one, so the expected value is just the geometric product of the series.
func TestAccrual_CDIPath(t *testing.T) {
	gw := testutil.NewMockGateway()
	node := buildLeaf(t, gw, testutil.PrivateCreditCDI(
		"CDB Banco X", "2023-01-01", "2023-01-11", 1000, 100))

	// Two 0.05% observations inside (start, end]: 1000 x 1.0005^2.
	want := 1000 * 1.0005 * 1.0005
	if got := node.Value(); math.Abs(got-want) > 1e-6 {
		t.Errorf("value = %v, want %v", got, want)
	}
	if node.Name() != "CDB Banco X" {
		t.Errorf("name = %q", node.Name())
	}
}

// TestAccrual_PrefixedIPCAPath tests inflation-linked fixed-rate accrual.
//
// WHY: The IPCA path compounds monthly inflation observations and then
// applies the prefixed annual rate over the accrued fraction of a year. A
// one-year window makes the prefixed exponent exactly one.
func TestAccrual_PrefixedIPCAPath(t *testing.T) {
	gw := testutil.NewMockGateway()
	node := buildLeaf(t, gw, testutil.PrivateCreditPrefixed(
		"Debênture Y", "2023-01-01", "2024-01-01", 1000, 5, true))

	// 1000 x 1.005 (single IPCA observation) x 1.05 (5% over 365 days).
	want := 1000 * 1.005 * 1.05
	if got := node.Value(); math.Abs(got-want) > 1e-6 {
		t.Errorf("value = %v, want %v", got, want)
	}
}

// TestAccrual_ConflictingRates tests the cdi/ipca mutual exclusion.
//
// WHY: A bond quoted both as a CDI share and as IPCA-linked is contradictory
// and must be rejected during validation, before any market data is fetched.
func TestAccrual_ConflictingRates(t *testing.T) {
	gw := testutil.NewMockGateway()
	leaf := `{"type":"private-credit-br","name":"Broken","start":"2023-01-01","end":"2024-01-01","investedAmount":1000,"cdi":100,"ipca":true}`

	err := buildLeafErr(t, gw, leaf)
	if !errors.Is(err, apperrors.ErrConflictingRates) {
		t.Errorf("expected conflicting rates error, got: %v", err)
	}
	if gw.Calls[testutil.OpInterest] != 0 || gw.Calls[testutil.OpInflation] != 0 {
		t.Errorf("conflicting bond fetched market data: interest=%d inflation=%d",
			gw.Calls[testutil.OpInterest], gw.Calls[testutil.OpInflation])
	}
}

// TestAccrual_ClampsAtValuationInstant tests accrual of a live bond.
//
// WHY: A bond that has not matured accrues up to the valuation instant, not
// to its end date. The test builder pins the clock to 2024-06-01 12:00 UTC,
// so a bond started 2024-05-22 has accrued 10.5 days regardless of maturity.
func TestAccrual_ClampsAtValuationInstant(t *testing.T) {
	gw := testutil.NewMockGateway()
	node := buildLeaf(t, gw, testutil.PrivateCreditPrefixed(
		"CDB Prefixado", "2024-05-22", "2025-01-01", 1000, 100, false))

	want := 1000 * math.Pow(2, 10.5/365)
	if got := node.Value(); math.Abs(got-want) > 1e-6 {
		t.Errorf("value = %v, want %v", got, want)
	}
}

// TestAccrual_InvertedRange tests a start date after the end date.
//
// WHY: An inverted range is deliberately not rejected; the negative exponent
// discounts the invested amount instead of accruing it.
func TestAccrual_InvertedRange(t *testing.T) {
	gw := testutil.NewMockGateway()
	node := buildLeaf(t, gw, testutil.PrivateCreditPrefixed(
		"Inverted", "2023-01-11", "2023-01-01", 1000, 100, false))

	want := 1000 * math.Pow(2, -10.0/365)
	if got := node.Value(); math.Abs(got-want) > 1e-6 {
		t.Errorf("value = %v, want %v", got, want)
	}
}

// TestAccrual_Validation tests document-shape failures for private credit.
//
// WHY: Each malformed field must map to its own sentinel so API consumers
// can distinguish a typo in a date from a missing amount.
func TestAccrual_Validation(t *testing.T) {
	cases := []struct {
		name string
		leaf string
		want error
	}{
		{
			"malformed start date",
			testutil.PrivateCreditCDI("X", "01/01/2023", "2024-01-01", 1000, 100),
			apperrors.ErrInvalidDate,
		},
		{
			"malformed end date",
			testutil.PrivateCreditCDI("X", "2023-01-01", "tomorrow", 1000, 100),
			apperrors.ErrInvalidDate,
		},
		{
			"missing invested amount",
			`{"type":"private-credit-br","name":"X","start":"2023-01-01","end":"2024-01-01","cdi":100}`,
			apperrors.ErrNotFinite,
		},
		{
			"missing name",
			`{"type":"private-credit-br","start":"2023-01-01","end":"2024-01-01","investedAmount":1000,"cdi":100}`,
			apperrors.ErrInvalidDocument,
		},
		{
			"no rate at all",
			`{"type":"private-credit-br","name":"X","start":"2023-01-01","end":"2024-01-01","investedAmount":1000}`,
			apperrors.ErrNotFinite,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := buildLeafErr(t, testutil.NewMockGateway(), tc.leaf)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got: %v", tc.want, err)
			}
		})
	}
}

// TestAccrual_SeriesWindow tests the (start, end] observation window.
//
// WHY: An observation dated exactly on the start date belongs to the
// previous accrual period and must be excluded; one dated exactly on the
// end date must be included.
func TestAccrual_SeriesWindow(t *testing.T) {
	gw := testutil.NewMockGateway().WithInterest(
		ratePoint("2023-01-01", 10),
		ratePoint("2023-01-05", 1),
		ratePoint("2023-01-11", 1),
		ratePoint("2023-01-12", 10),
	)
	node := buildLeaf(t, gw, testutil.PrivateCreditCDI(
		"Window", "2023-01-01", "2023-01-11", 1000, 100))

	// Only the 05 and 11 observations fall inside the window.
	want := 1000 * 1.01 * 1.01
	if got := node.Value(); math.Abs(got-want) > 1e-6 {
		t.Errorf("value = %v, want %v", got, want)
	}
}

func ratePoint(day string, value float64) marketdata.RatePoint {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return marketdata.RatePoint{Date: d, Value: value}
}
