package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Market is a venue trading pair with a fixed base/quote orientation.
// An order's amount is always measured in Base; prices are quote-per-base.
// ID is the venue-native identifier (e.g. "BTCUSDT" on binance), which the
// adapters need when talking to their SDKs.
type Market struct {
	Base  CurrencyCode
	Quote CurrencyCode
	ID    string
}

// Symbol returns the canonical "BASE/QUOTE" catalog key.
func (m Market) Symbol() string {
	return MakeSymbol(m.Base, m.Quote)
}

// MakeSymbol builds the canonical symbol for a base/quote pair.
func MakeSymbol(base, quote CurrencyCode) string {
	return fmt.Sprintf("%s/%s", base, quote)
}

// SplitSymbol parses a canonical "BASE/QUOTE" symbol back into currencies.
func SplitSymbol(symbol string) (base, quote CurrencyCode, _ error) {
	pieces := strings.Split(symbol, "/")
	if len(pieces) != 2 || !ValidCurrency(pieces[0]) || !ValidCurrency(pieces[1]) {
		return "", "", fmt.Errorf("unparseable market symbol %q", symbol)
	}
	return CurrencyCode(pieces[0]), CurrencyCode(pieces[1]), nil
}

// Catalog maps canonical symbols to markets. It is fetched fresh for every
// top-level call and never cached across calls.
type Catalog map[string]Market

// Ticker carries the best current prices of a market, quote-per-base.
// Ask is the lowest price a seller currently accepts, Bid the highest price
// a buyer currently pays.
type Ticker struct {
	Ask decimal.Decimal
	Bid decimal.Decimal
}
