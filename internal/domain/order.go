package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the direction an order takes in a market's own orientation:
// selling gives away the base currency, buying gives away the quote.
type Side int

const (
	SideSell Side = iota
	SideBuy
)

func (s Side) String() string {
	switch s {
	case SideSell:
		return "sell"
	case SideBuy:
		return "buy"
	default:
		return "unknown"
	}
}

// ParseSide maps a venue's side flag onto Side. Venues report sides in
// varying case ("SELL", "Sell", "sell"); anything outside the sell/buy
// domain is rejected.
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(raw) {
	case "sell":
		return SideSell, nil
	case "buy":
		return SideBuy, nil
	default:
		return 0, &UnrecognizedOrderSideError{Side: raw}
	}
}

// OrderRequest asks to give away Subtract units of Operation.From in
// exchange for Operation.To.
type OrderRequest struct {
	Operation Operation
	Subtract  decimal.Decimal
}

// OrderSummary is the uniform result shape for created and active orders,
// regardless of the venue's own schema.
type OrderSummary struct {
	ID        string
	Operation Operation
	Subtract  decimal.Decimal
}
