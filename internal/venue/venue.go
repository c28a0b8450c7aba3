// Package venue declares the collaborator contract that every exchange
// adapter fulfils. The normalization core depends only on this interface,
// never on a concrete SDK.
package venue

import (
	"context"

	"github.com/shopspring/decimal"

	"privateer/internal/domain"
)

// Venue is the minimal surface the core needs from a trading-venue client.
// Every method performs network I/O and honors the passed context; timeouts
// and cancellation belong to the caller. Venue-specific errors must
// propagate, wrapped but never swallowed or retried.
type Venue interface {
	// FetchMarkets returns the venue's current market catalog keyed by
	// canonical "BASE/QUOTE" symbol.
	FetchMarkets(ctx context.Context) (domain.Catalog, error)

	// FetchTicker returns the best current ask and bid for a market.
	FetchTicker(ctx context.Context, market domain.Market) (domain.Ticker, error)

	// FetchBalance returns available balances by currency, including zero
	// balances; filtering is the caller's concern.
	FetchBalance(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error)

	// FetchOpenOrders returns all of the account's active orders.
	FetchOpenOrders(ctx context.Context) ([]OpenOrder, error)

	// CreateLimitSellOrder submits a limit sell of qty base units at the
	// given quote-per-base price and returns the venue's order id.
	CreateLimitSellOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error)

	// CreateLimitBuyOrder submits a limit buy of qty base units at the
	// given quote-per-base price and returns the venue's order id.
	CreateLimitBuyOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error)

	// CancelOrder cancels a single order by venue order id.
	CancelOrder(ctx context.Context, id string) error
}

// OpenOrder is a venue's own view of an active order, before normalization
// back into operation/amount form.
type OpenOrder struct {
	ID string
	// Symbol is the canonical "BASE/QUOTE" form, not the venue-native one.
	Symbol string
	// Side is the venue's side flag, expected to mean sell or buy.
	Side string
	// Amount is the base quantity; Price the quote-per-base limit price.
	Amount decimal.Decimal
	Price  decimal.Decimal
}
