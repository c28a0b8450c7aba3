package domain

import (
	"fmt"
	"regexp"
)

// Separator is the canonical glyph between the two sides of an operation.
const Separator = "->"

// Legacy "»" operations are still accepted on input.
var separatorRegexp = regexp.MustCompile(`»|->`)

// Operation is a one-way trade request: give up From, receive To in
// exchange. Unlike a market it carries no base/quote orientation; the
// resolver maps it onto whichever market direction the venue actually lists.
type Operation struct {
	From CurrencyCode
	To   CurrencyCode
}

// ParseOperation parses a serialized operation like "BTC->USD". It is a pure
// function and performs no I/O.
func ParseOperation(raw string) (Operation, error) {
	pieces := separatorRegexp.Split(raw, -1)
	if len(pieces) != 2 || pieces[0] == "" || pieces[1] == "" {
		return Operation{}, &MalformedOperationError{Raw: raw}
	}
	for _, piece := range pieces {
		if !ValidCurrency(piece) {
			return Operation{}, &InvalidCurrencyCodeError{Value: piece}
		}
	}
	if pieces[0] == pieces[1] {
		return Operation{}, &MalformedOperationError{Raw: raw}
	}
	return Operation{From: CurrencyCode(pieces[0]), To: CurrencyCode(pieces[1])}, nil
}

// String serializes the operation with the canonical separator.
func (o Operation) String() string {
	return fmt.Sprintf("%s%s%s", o.From, Separator, o.To)
}
