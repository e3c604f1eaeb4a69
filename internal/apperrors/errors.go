package apperrors

import "errors"

// Document shape errors represent structural problems in the declared asset
// document. These errors indicate bad user input and always abort the build.
var (
	// ErrInvalidDocument indicates that the declared document (or a sub-entry)
	// failed structural validation: wrong types, missing required fields, or
	// an unknown asset type discriminant.
	ErrInvalidDocument = errors.New("invalid asset document")

	// ErrUnknownAssetType indicates that a leaf entry carries a type
	// discriminant outside the known asset variants.
	ErrUnknownAssetType = errors.New("unknown asset type")

	// ErrConflictingRates indicates that a private credit bond declares both
	// an IPCA link and a CDI percentage, which are mutually exclusive.
	ErrConflictingRates = errors.New("private credit bond cannot set both ipca and cdi")

	// ErrInvalidDate indicates that a declared date field does not parse to a
	// valid calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNotFinite indicates that a declared numeric field is missing, NaN,
	// or infinite.
	ErrNotFinite = errors.New("value is not a finite number")
)

// Market data errors represent failures while fetching or interpreting
// external market data. These errors abort the build; there is no retry.
var (
	// ErrMarketData indicates that an external fetch failed or returned data
	// that cannot be used (non-finite price, malformed payload).
	ErrMarketData = errors.New("market data unavailable")

	// ErrUnknownCurrency indicates that a cash reserve declares a currency
	// outside the supported allow-list.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrUnknownCrypto indicates that a crypto holding declares a ticker the
	// known-coin catalog does not contain.
	ErrUnknownCrypto = errors.New("unknown crypto currency")

	// ErrBondNotFound indicates that a treasury bond name has no exact match
	// in the fetched bond catalog.
	ErrBondNotFound = errors.New("treasury bond not found")

	// ErrCurrencyMismatch indicates that an equity quote came back in a
	// currency other than the one its market requires.
	ErrCurrencyMismatch = errors.New("unexpected quote currency")
)

// Internal consistency errors represent defects in the valuation engine
// itself, not bad input. They are distinguished at the API boundary as
// unrecoverable.
var (
	// ErrInternal indicates that an invariant the builder must guarantee was
	// violated, e.g. the color pre-count and the main pass disagreeing.
	ErrInternal = errors.New("internal consistency error")

	// ErrPaletteExhausted indicates that more colors were drawn than the
	// pre-count pass sized the palette for.
	ErrPaletteExhausted = errors.New("color palette exhausted")
)
