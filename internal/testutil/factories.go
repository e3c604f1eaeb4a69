package testutil

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/wealthmap/wealthmap-backend/internal/valuation"
)

// NewTestBuilder creates a valuation builder against the given mock with a
// pinned clock and a seeded palette shuffle, so builds are deterministic.
func NewTestBuilder(t *testing.T, gateway *MockGateway) *valuation.Builder {
	t.Helper()

	b := valuation.NewBuilder(gateway)
	b.Now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	b.Rand = rand.New(rand.NewSource(1))
	return b
}

// Group composes a declared-group JSON fragment from entry fragments.
func Group(name string, entries ...string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"name":%q,"entries":[%s]}`, name, strings.Join(entries, ",")))
}

// Cash returns a cash-reserve leaf fragment.
func Cash(currency string, qty float64) string {
	return fmt.Sprintf(`{"type":"cash-reserve","currency":%q,"qty":%v}`, currency, qty)
}

// Crypto returns a crypto-currency leaf fragment.
func Crypto(ticker string, qty float64) string {
	return fmt.Sprintf(`{"type":"crypto-currency","ticker":%q,"qty":%v}`, ticker, qty)
}

// Treasury returns a treasury-br leaf fragment.
func Treasury(name string, qty float64) string {
	return fmt.Sprintf(`{"type":"treasury-br","name":%q,"qty":%v}`, name, qty)
}

// SharesBR returns a shares-br leaf fragment.
func SharesBR(ticker string, qty float64) string {
	return fmt.Sprintf(`{"type":"shares-br","ticker":%q,"qty":%v}`, ticker, qty)
}

// SharesUS returns a shares-us leaf fragment.
func SharesUS(ticker string, qty float64) string {
	return fmt.Sprintf(`{"type":"shares-us","ticker":%q,"qty":%v}`, ticker, qty)
}

// PrivateCreditCDI returns a CDI-quoted private-credit-br leaf fragment.
func PrivateCreditCDI(name, start, end string, invested, cdi float64) string {
	return fmt.Sprintf(`{"type":"private-credit-br","name":%q,"start":%q,"end":%q,"investedAmount":%v,"cdi":%v}`,
		name, start, end, invested, cdi)
}

// PrivateCreditPrefixed returns a fixed-rate private-credit-br leaf
// fragment, optionally IPCA-linked.
func PrivateCreditPrefixed(name, start, end string, invested, prefixedRate float64, ipca bool) string {
	return fmt.Sprintf(`{"type":"private-credit-br","name":%q,"start":%q,"end":%q,"investedAmount":%v,"prefixedRate":%v,"ipca":%v}`,
		name, start, end, invested, prefixedRate, ipca)
}
