package valuation

import (
	"context"
	"math"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/marketdata"
	"github.com/wealthmap/wealthmap-backend/internal/model"
)

// dateLayout is the calendar date format declared documents use.
const dateLayout = "2006-01-02"

// pricePrivateCredit values a Brazilian private credit bond by accruing its
// invested amount from the start date to the valuation instant, clamped at
// maturity.
//
// The coupon is quoted one of two ways, reflecting local market convention:
// as a percentage of the CDI benchmark, or as a fixed annual rate optionally
// linked to IPCA inflation. The two quoting styles are mutually exclusive.
//
// CDI path: the daily benchmark rates inside (start, end] are compounded
// geometrically and the result is scaled by (cdi/100)^(days/365), the bond's
// share of the benchmark applied over the accrued fraction of a year.
//
// Fixed/IPCA path: when inflation-linked, the invested amount is multiplied
// by (1 + rate/100) for every monthly observation inside (start, end].
//
// On either path, a prefixed annual rate further compounds the running value
// by (1 + prefixedRate/100)^(days/365).
//
// An inverted range (start after end) is not rejected: days goes negative
// and the exponents discount instead of accrue.
func (b *Builder) pricePrivateCredit(ctx context.Context, a *model.PrivateCreditBR, path []string) (*model.AssetNode, error) {
	if a.Name == "" {
		return nil, pathErrf(path, "%w: expected private credit bond to have a name", apperrors.ErrInvalidDocument)
	}
	if !finite(a.InvestedAmount) {
		return nil, pathErrf(path, "%w: expected invested amount to be a number, but got: %s",
			apperrors.ErrNotFinite, fmtNum(a.InvestedAmount))
	}
	start, err := time.Parse(dateLayout, a.Start)
	if err != nil {
		return nil, pathErrf(path, "%w: unexpected start date: %q", apperrors.ErrInvalidDate, a.Start)
	}
	end, err := time.Parse(dateLayout, a.End)
	if err != nil {
		return nil, pathErrf(path, "%w: unexpected end date: %q", apperrors.ErrInvalidDate, a.End)
	}

	// Accrual stops at maturity even when valuing later.
	accrualEnd := b.Now()
	if end.Before(accrualEnd) {
		accrualEnd = end
	}
	days := accrualEnd.Sub(start).Hours() / 24

	value := *a.InvestedAmount

	if a.CDI != nil {
		if !finite(a.CDI) {
			return nil, pathErrf(path, "%w: expected CDI rate to be a number, but got: %s",
				apperrors.ErrNotFinite, fmtNum(a.CDI))
		}
		if a.IPCA {
			return nil, pathErrf(path, "%w", apperrors.ErrConflictingRates)
		}
		if a.PrefixedRate != nil && !finite(a.PrefixedRate) {
			return nil, pathErrf(path, "%w: expected prefixedRate to be a number, but got: %s",
				apperrors.ErrNotFinite, fmtNum(a.PrefixedRate))
		}

		series, err := b.gateway.InterestRateSeries(ctx)
		if err != nil {
			return nil, err
		}
		value *= accumulate(series, start, end) * math.Pow(*a.CDI/100, days/365)
	} else {
		if !finite(a.PrefixedRate) {
			return nil, pathErrf(path, "%w: expected prefixedRate to be a number, but got: %s",
				apperrors.ErrNotFinite, fmtNum(a.PrefixedRate))
		}
		if a.IPCA {
			series, err := b.gateway.InflationSeries(ctx)
			if err != nil {
				return nil, err
			}
			value *= accumulate(series, start, end)
		}
	}

	if a.PrefixedRate != nil {
		value *= math.Pow(1+*a.PrefixedRate/100, days/365)
	}

	return model.NewAssetNode(a.Name, value, a, path), nil
}

// accumulate compounds the geometric accumulation of every observation whose
// date falls in (start, end]: the product of (1 + rate/100).
func accumulate(series []marketdata.RatePoint, start, end time.Time) float64 {
	acc := 1.0
	for _, p := range series {
		if p.Date.After(start) && !p.Date.After(end) {
			acc *= 1 + p.Value/100
		}
	}
	return acc
}
