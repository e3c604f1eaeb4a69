package model

// BRL is the single reporting currency. Every valuation is expressed in it.
const BRL = "BRL"

// CurrencyNames maps every supported cash-reserve currency to its display
// name. The key set doubles as the currency allow-list; a cash reserve
// declaring any other currency fails validation.
var CurrencyNames = map[string]string{
	"BRL": "Brazilian Real",
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CHF": "Swiss Franc",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
}

// IsSupportedCurrency reports whether a currency code is in the allow-list.
func IsSupportedCurrency(code string) bool {
	_, ok := CurrencyNames[code]
	return ok
}
