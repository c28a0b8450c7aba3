// Package converter turns a requested give-away amount into the base
// quantity and limit price a venue order needs.
package converter

import (
	"github.com/shopspring/decimal"

	"privateer/internal/domain"
)

// Params are ready to submit to a venue: BaseQty is denominated in the
// market's base currency, LimitPrice in quote-per-base.
type Params struct {
	BaseQty    decimal.Decimal
	LimitPrice decimal.Decimal
}

// OrderParams computes order parameters from the side-dependent reference
// price.
//
// Selling gives away the base currency directly: subtract already is the
// base quantity, limited at the current ask (the least a seller accepts).
// Buying gives away the quote currency: subtract is converted into base
// units at the current bid (the most a buyer pays), which also becomes the
// limit. A zero or missing reference price fails with NoLiquidityError.
func OrderParams(side domain.Side, subtract decimal.Decimal, ticker domain.Ticker) (Params, error) {
	switch side {
	case domain.SideSell:
		if !ticker.Ask.IsPositive() {
			return Params{}, &domain.NoLiquidityError{Side: domain.SideSell}
		}
		return Params{BaseQty: subtract, LimitPrice: ticker.Ask}, nil
	case domain.SideBuy:
		if !ticker.Bid.IsPositive() {
			return Params{}, &domain.NoLiquidityError{Side: domain.SideBuy}
		}
		return Params{BaseQty: subtract.Div(ticker.Bid), LimitPrice: ticker.Bid}, nil
	default:
		return Params{}, &domain.UnrecognizedOrderSideError{Side: side.String()}
	}
}
