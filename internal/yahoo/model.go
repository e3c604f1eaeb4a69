package yahoo

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. This type maps directly to the chart response format; only the
// metadata block is consumed, since the regular market price, currency, and
// long name all live there.
//
// The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata (price, currency, name, exchange)
//   - Chart.Error: Optional error message from the Yahoo API
type Response struct {
	Chart struct {
		Result []struct {
			Meta Meta `json:"meta"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// Meta is the symbol metadata block of a chart response.
type Meta struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ExchangeName       string  `json:"exchangeName"`
	FullExchangeName   string  `json:"fullExchangeName"`
	LongName           string  `json:"longName"`
	Shortname          string  `json:"shortName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// Quote is the application's internal representation of a current quote,
// parsed out of the chart metadata.
type Quote struct {
	Symbol   string  `json:"symbol"`
	Currency string  `json:"currency"`
	LongName string  `json:"longName"`
	Price    float64 `json:"price"`
}
