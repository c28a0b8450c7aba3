package domain

import (
	"fmt"
	"strings"
)

// MissingCredentialsError reports the mandatory API credential fields that
// were not supplied. It is always returned before any network call is made.
type MissingCredentialsError struct {
	Fields []string
}

func (e *MissingCredentialsError) Error() string {
	return "missing credentials: " + strings.Join(e.Fields, ", ")
}

// MalformedOperationError reports an operation string that does not consist
// of exactly two distinct currency codes joined by the separator.
type MalformedOperationError struct {
	Raw string
}

func (e *MalformedOperationError) Error() string {
	return fmt.Sprintf("malformed operation %q: want two distinct currency codes joined by %q", e.Raw, Separator)
}

// InvalidCurrencyCodeError reports an operation segment that is not a valid
// currency code.
type InvalidCurrencyCodeError struct {
	Value string
}

func (e *InvalidCurrencyCodeError) Error() string {
	return fmt.Sprintf("invalid currency code %q: must be an uppercase code like \"BTC\"", e.Value)
}

// UnsupportedOperationError reports an operation for which the exchange
// lists no market in either direction.
type UnsupportedOperationError struct {
	Op Operation
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation %s is not supported: no market in either direction", e.Op)
}

// RedundantMarketsError reports a catalog that lists both directions of the
// same pair as distinct markets. Venues are not supposed to do that, so this
// is treated as a fatal consistency violation, never recovered silently.
type RedundantMarketsError struct {
	SellSymbol string
	BuySymbol  string
}

func (e *RedundantMarketsError) Error() string {
	return fmt.Sprintf("consistency violation: exchange lists both %s and %s", e.SellSymbol, e.BuySymbol)
}

// DuplicateRateError reports a second write to the same directed entry of an
// exchange-rate table within one aggregation pass.
type DuplicateRateError struct {
	From CurrencyCode
	To   CurrencyCode
}

func (e *DuplicateRateError) Error() string {
	return fmt.Sprintf("consistency violation: rate %s%s%s written twice in one pass", e.From, Separator, e.To)
}

// NoLiquidityError reports a zero or missing reference price. Not retryable
// without fresh market data.
type NoLiquidityError struct {
	Side Side
}

func (e *NoLiquidityError) Error() string {
	price := "ask"
	if e.Side == SideBuy {
		price = "bid"
	}
	return fmt.Sprintf("no liquidity: %s price is zero or missing", price)
}

// UnrecognizedOrderSideError reports a venue side flag outside the expected
// sell/buy domain.
type UnrecognizedOrderSideError struct {
	Side string
}

func (e *UnrecognizedOrderSideError) Error() string {
	return fmt.Sprintf("unrecognized order side %q: want \"sell\" or \"buy\"", e.Side)
}
