// Package privateer exposes one uniform trading interface over supported
// cryptocurrency exchanges: create and cancel orders, list holdings and
// active orders, exchange rates, tradeable currencies and USD equivalents.
//
// Orders are expressed as one-way operations like "BTC->USD": give up the
// currency on the left, receive the currency on the right. Which market a
// venue actually lists for the pair, and in which direction it has to be
// used, is resolved internally.
package privateer

import (
	"sort"

	"github.com/pkg/errors"

	"privateer/internal/venue"
	binanceadapter "privateer/internal/venue/binance"
	bybitadapter "privateer/internal/venue/bybit"
)

// ExchangeInfo describes one supported exchange.
type ExchangeInfo struct {
	Slug             string
	FriendlyName     string
	MoreInfoURL      string
	CredentialsURL   string
	CredentialFields []string

	connect func(creds venue.Credentials) venue.Venue
}

// supportedExchanges is the static registry: built once at package init,
// read-only afterwards.
var supportedExchanges = map[string]ExchangeInfo{
	"binance": {
		Slug:             "binance",
		FriendlyName:     "Binance",
		MoreInfoURL:      "https://www.binance.com",
		CredentialsURL:   "https://www.binance.com/en/my/settings/api-management",
		CredentialFields: []string{venue.FieldAPIKey, venue.FieldSecret},
		connect: func(creds venue.Credentials) venue.Venue {
			return binanceadapter.New(creds.APIKey, creds.Secret)
		},
	},
	"bybit": {
		Slug:             "bybit",
		FriendlyName:     "Bybit",
		MoreInfoURL:      "https://www.bybit.com",
		CredentialsURL:   "https://www.bybit.com/app/user/api-management",
		CredentialFields: []string{venue.FieldAPIKey, venue.FieldSecret},
		connect: func(creds venue.Credentials) venue.Venue {
			return bybitadapter.New(creds.APIKey, creds.Secret)
		},
	},
}

// Exchanges returns the supported exchange slugs, sorted.
func Exchanges() []string {
	slugs := make([]string, 0, len(supportedExchanges))
	for slug := range supportedExchanges {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Lookup returns registry information for an exchange slug.
func Lookup(slug string) (ExchangeInfo, error) {
	info, ok := supportedExchanges[slug]
	if !ok {
		return ExchangeInfo{}, errors.Errorf("%q is not a supported exchange", slug)
	}
	return info, nil
}
