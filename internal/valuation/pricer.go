package valuation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/wealthmap/wealthmap-backend/internal/apperrors"
	"github.com/wealthmap/wealthmap-backend/internal/model"
)

// priceAsset converts one declared leaf plus current market data into a
// valued node. The switch is exhaustive over the sealed asset union; the
// default arm is unreachable unless a variant is added without a pricing
// rule, which must fail loudly.
func (b *Builder) priceAsset(ctx context.Context, asset model.Asset, path []string) (*model.AssetNode, error) {
	switch a := asset.(type) {
	case *model.CashReserve:
		return b.priceCashReserve(ctx, a, path)
	case *model.CryptoCurrency:
		return b.priceCryptoCurrency(ctx, a, path)
	case *model.PrivateCreditBR:
		return b.pricePrivateCredit(ctx, a, path)
	case *model.TreasuryBR:
		return b.priceTreasury(ctx, a, path)
	case *model.SharesBR:
		return b.priceSharesBR(ctx, a, path)
	case *model.SharesUS:
		return b.priceSharesUS(ctx, a, path)
	default:
		return nil, fmt.Errorf("%w: unhandled asset variant %T", apperrors.ErrInternal, asset)
	}
}

// priceCashReserve values cash at the current BRL exchange rate. BRL cash is
// worth its face amount.
func (b *Builder) priceCashReserve(ctx context.Context, a *model.CashReserve, path []string) (*model.AssetNode, error) {
	if !model.IsSupportedCurrency(a.Currency) {
		return nil, pathErrf(path, "%w: %q", apperrors.ErrUnknownCurrency, a.Currency)
	}
	if !finite(a.Qty) {
		return nil, pathErrf(path, "%w: unexpected qty %s", apperrors.ErrNotFinite, fmtNum(a.Qty))
	}

	rate := 1.0
	if a.Currency != model.BRL {
		var err error
		rate, err = b.gateway.ForeignExchangeRate(ctx, a.Currency)
		if err != nil {
			return nil, err
		}
		if !finiteVal(rate) {
			return nil, fmt.Errorf("%w: failed to fetch exchange rate for %s", apperrors.ErrMarketData, a.Currency)
		}
	}

	name := fmt.Sprintf("%s (%s)", model.CurrencyNames[a.Currency], a.Currency)
	return model.NewAssetNode(name, *a.Qty*rate, a, path), nil
}

// priceCryptoCurrency values a coin holding at its current BRL spot price.
// The ticker must belong to the known-coin catalog, which also supplies the
// provider ID for the price lookup and the display name.
func (b *Builder) priceCryptoCurrency(ctx context.Context, a *model.CryptoCurrency, path []string) (*model.AssetNode, error) {
	catalog, err := b.gateway.KnownCryptoCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if !finite(a.Qty) {
		return nil, pathErrf(path, "%w: unexpected qty %s", apperrors.ErrNotFinite, fmtNum(a.Qty))
	}
	coin, ok := catalog[a.Ticker]
	if !ok {
		return nil, pathErrf(path, "%w: %q", apperrors.ErrUnknownCrypto, a.Ticker)
	}

	price, err := b.gateway.SpotPriceBRL(ctx, coin.ProviderID)
	if err != nil {
		return nil, err
	}
	if !finiteVal(price) {
		return nil, fmt.Errorf("%w: failed to fetch crypto price for %s", apperrors.ErrMarketData, a.Ticker)
	}

	upper := strings.ToUpper(a.Ticker)
	name := coin.Name
	if coin.Name != a.Ticker && coin.Name != upper {
		name = fmt.Sprintf("%s (%s)", coin.Name, upper)
	}
	return model.NewAssetNode(name, price**a.Qty, a, path), nil
}

// priceTreasury values a government bond holding by exact name match in the
// fetched catalog.
func (b *Builder) priceTreasury(ctx context.Context, a *model.TreasuryBR, path []string) (*model.AssetNode, error) {
	if !finite(a.Qty) {
		return nil, pathErrf(path, "%w: unexpected qty %s", apperrors.ErrNotFinite, fmtNum(a.Qty))
	}
	if a.Name == "" {
		return nil, pathErrf(path, "%w: expected treasury bond to have a name", apperrors.ErrInvalidDocument)
	}

	bonds, err := b.gateway.TreasuryBondCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, bond := range bonds {
		if bond.Name != a.Name {
			continue
		}
		if !finiteVal(bond.UnitValue) {
			return nil, fmt.Errorf("%w: failed to get data for %s", apperrors.ErrMarketData, bond.Name)
		}
		return model.NewAssetNode(a.Name, *a.Qty*bond.UnitValue, a, path), nil
	}
	return nil, pathErrf(path, "%w: %q", apperrors.ErrBondNotFound, a.Name)
}

// priceSharesBR values a B3 equity holding. Quotes are requested with the
// ".SA" market suffix and must come back in BRL.
func (b *Builder) priceSharesBR(ctx context.Context, a *model.SharesBR, path []string) (*model.AssetNode, error) {
	if !finite(a.Qty) {
		return nil, pathErrf(path, "%w: unexpected qty %s", apperrors.ErrNotFinite, fmtNum(a.Qty))
	}
	if a.Ticker == "" {
		return nil, pathErrf(path, "%w: expected share to have a ticker", apperrors.ErrInvalidDocument)
	}

	quote, err := b.gateway.EquityQuote(ctx, a.Ticker+".SA")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch quote for %s: %v", apperrors.ErrMarketData, a.Ticker, err)
	}
	if !finiteVal(quote.Price) {
		return nil, fmt.Errorf("%w: failed to fetch price for %s", apperrors.ErrMarketData, a.Ticker)
	}
	if quote.Currency != model.BRL {
		return nil, fmt.Errorf("%w: %s for Brazilian share %s", apperrors.ErrCurrencyMismatch, quote.Currency, a.Ticker)
	}

	return model.NewAssetNode(shareName(a.Ticker, quote.LongName), quote.Price**a.Qty, a, path), nil
}

// priceSharesUS values a US equity holding: the USD quote is converted to
// BRL at the current dollar rate.
func (b *Builder) priceSharesUS(ctx context.Context, a *model.SharesUS, path []string) (*model.AssetNode, error) {
	if !finite(a.Qty) {
		return nil, pathErrf(path, "%w: unexpected qty %s", apperrors.ErrNotFinite, fmtNum(a.Qty))
	}
	if a.Ticker == "" {
		return nil, pathErrf(path, "%w: expected share to have a ticker", apperrors.ErrInvalidDocument)
	}

	quote, err := b.gateway.EquityQuote(ctx, a.Ticker)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch quote for %s: %v", apperrors.ErrMarketData, a.Ticker, err)
	}
	if !finiteVal(quote.Price) {
		return nil, fmt.Errorf("%w: failed to fetch price for %s", apperrors.ErrMarketData, a.Ticker)
	}
	if quote.Currency != "USD" {
		return nil, fmt.Errorf("%w: %s for US share %s", apperrors.ErrCurrencyMismatch, quote.Currency, a.Ticker)
	}

	usdRate, err := b.gateway.USDRate(ctx)
	if err != nil {
		return nil, err
	}
	if !finiteVal(usdRate) {
		return nil, fmt.Errorf("%w: failed to fetch USD rate, got: %v", apperrors.ErrMarketData, usdRate)
	}

	return model.NewAssetNode(shareName(a.Ticker, quote.LongName), quote.Price*usdRate**a.Qty, a, path), nil
}

// shareName formats an equity display name as "TICKER - Long Name" when the
// quote carries a long name, or just the ticker otherwise.
func shareName(ticker, longName string) string {
	if longName == "" {
		return ticker
	}
	return fmt.Sprintf("%s - %s", ticker, longName)
}

// finite reports whether an optional declared number is present and finite.
func finite(p *float64) bool {
	return p != nil && finiteVal(*p)
}

func finiteVal(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// fmtNum renders an optional number for error messages.
func fmtNum(p *float64) string {
	if p == nil {
		return "<missing>"
	}
	return fmt.Sprintf("%v", *p)
}

// pathErrf builds a breadcrumb-annotated error, preserving any wrapped
// sentinel passed through the format arguments.
func pathErrf(path []string, format string, args ...any) error {
	args = append(args, strings.Join(path, "."))
	return fmt.Errorf(format+" (path: %s)", args...)
}
