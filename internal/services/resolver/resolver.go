// Package resolver maps one-way operations onto a venue's bidirectional
// markets. An operation "USD->BTC" against a venue that only lists BTC/USD
// resolves to a buy on that market (symbol flipping); "BTC->USD" against the
// same venue resolves to a sell.
package resolver

import "privateer/internal/domain"

// Resolution names the single market able to serve an operation and the
// direction in which it must be used. When Side is sell, the operation's
// From currency is the market base; when buy, it is the market quote.
type Resolution struct {
	Market domain.Market
	Side   domain.Side
}

// Resolve finds the market for op in catalog.
//
// A venue must list at most one direction of a pair: seeing both FROM/TO and
// TO/FROM as distinct symbols breaks the catalog invariant and fails with
// RedundantMarketsError. Neither direction listed fails with
// UnsupportedOperationError.
func Resolve(op domain.Operation, catalog domain.Catalog) (Resolution, error) {
	sellSymbol := domain.MakeSymbol(op.From, op.To)
	buySymbol := domain.MakeSymbol(op.To, op.From)

	sellMarket, canSell := catalog[sellSymbol]
	buyMarket, canBuy := catalog[buySymbol]

	switch {
	case canSell && canBuy:
		return Resolution{}, &domain.RedundantMarketsError{SellSymbol: sellSymbol, BuySymbol: buySymbol}
	case canSell:
		return Resolution{Market: sellMarket, Side: domain.SideSell}, nil
	case canBuy:
		return Resolution{Market: buyMarket, Side: domain.SideBuy}, nil
	default:
		return Resolution{}, &domain.UnsupportedOperationError{Op: op}
	}
}
