package model

import "encoding/json"

// AssetType discriminates the leaf asset variants of a declared document.
type AssetType string

// Known asset type discriminants. These are the wire values carried in the
// "type" field of a declared leaf entry.
const (
	TypeCashReserve     AssetType = "cash-reserve"
	TypeCryptoCurrency  AssetType = "crypto-currency"
	TypePrivateCreditBR AssetType = "private-credit-br"
	TypeTreasuryBR      AssetType = "treasury-br"
	TypeSharesBR        AssetType = "shares-br"
	TypeSharesUS        AssetType = "shares-us"
)

// Entry is one entry of a declared asset group: either a nested *AssetGroup
// or a leaf Asset. The set of implementations is closed.
type Entry interface {
	isEntry()
}

// Asset is a declared leaf holding. Exactly the six known variants implement
// it; a switch over concrete types with an unreachable default is exhaustive.
type Asset interface {
	Entry
	AssetType() AssetType
}

// CashReserve is money held in a single currency, valued at the current
// BRL exchange rate (rate 1 for BRL itself).
type CashReserve struct {
	Currency string   `json:"currency"`
	Qty      *float64 `json:"qty"`
}

// CryptoCurrency is a cryptocurrency holding identified by ticker. The ticker
// must belong to the known-coin catalog.
type CryptoCurrency struct {
	Ticker string   `json:"ticker"`
	Qty    *float64 `json:"qty"`
}

// PrivateCreditBR is a Brazilian private credit bond. Its coupon is quoted
// either as a percentage of the CDI benchmark or as a fixed annual rate,
// optionally inflation-linked via IPCA. CDI and IPCA are mutually exclusive;
// PrefixedRate may combine with either path.
type PrivateCreditBR struct {
	Name           string   `json:"name"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	InvestedAmount *float64 `json:"investedAmount"`
	PrefixedRate   *float64 `json:"prefixedRate,omitempty"`
	IPCA           bool     `json:"ipca,omitempty"`
	CDI            *float64 `json:"cdi,omitempty"`
}

// TreasuryBR is a Brazilian government bond holding, priced by exact name
// match against the Tesouro Direto catalog.
type TreasuryBR struct {
	Name string   `json:"name"`
	Qty  *float64 `json:"qty"`
}

// SharesBR is an equity holding on the Brazilian market (B3). Quotes use the
// ".SA" market suffix and must come back in BRL.
type SharesBR struct {
	Ticker string   `json:"ticker"`
	Qty    *float64 `json:"qty"`
}

// SharesUS is an equity holding on a US market. Quotes must come back in USD
// and are converted to BRL at the current USD rate.
type SharesUS struct {
	Ticker string   `json:"ticker"`
	Qty    *float64 `json:"qty"`
}

func (*CashReserve) isEntry() {}
func (*CryptoCurrency) isEntry() {}
func (*PrivateCreditBR) isEntry() {}
func (*TreasuryBR) isEntry() {}
func (*SharesBR) isEntry() {}
func (*SharesUS) isEntry() {}

// AssetType returns the wire discriminant for the variant.
func (*CashReserve) AssetType() AssetType { return TypeCashReserve }
func (*CryptoCurrency) AssetType() AssetType { return TypeCryptoCurrency }
func (*PrivateCreditBR) AssetType() AssetType { return TypePrivateCreditBR }
func (*TreasuryBR) AssetType() AssetType { return TypeTreasuryBR }
func (*SharesBR) AssetType() AssetType { return TypeSharesBR }
func (*SharesUS) AssetType() AssetType { return TypeSharesUS }

// marshalWithType serializes an asset variant with its "type" discriminant,
// so a marshaled tree round-trips to a valid declared document.
func marshalWithType(t AssetType, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(body) == "{}" {
		return []byte(`{"type":"` + string(t) + `"}`), nil
	}
	// Splice the tag in as the first member of the object.
	return append([]byte(`{"type":"`+string(t)+`",`), body[1:]...), nil
}

// MarshalJSON implementations re-attach the type discriminant that the field
// structs themselves do not carry.

func (a *CashReserve) MarshalJSON() ([]byte, error) {
	type plain CashReserve
	return marshalWithType(TypeCashReserve, (*plain)(a))
}

func (a *CryptoCurrency) MarshalJSON() ([]byte, error) {
	type plain CryptoCurrency
	return marshalWithType(TypeCryptoCurrency, (*plain)(a))
}

func (a *PrivateCreditBR) MarshalJSON() ([]byte, error) {
	type plain PrivateCreditBR
	return marshalWithType(TypePrivateCreditBR, (*plain)(a))
}

func (a *TreasuryBR) MarshalJSON() ([]byte, error) {
	type plain TreasuryBR
	return marshalWithType(TypeTreasuryBR, (*plain)(a))
}

func (a *SharesBR) MarshalJSON() ([]byte, error) {
	type plain SharesBR
	return marshalWithType(TypeSharesBR, (*plain)(a))
}

func (a *SharesUS) MarshalJSON() ([]byte, error) {
	type plain SharesUS
	return marshalWithType(TypeSharesUS, (*plain)(a))
}
