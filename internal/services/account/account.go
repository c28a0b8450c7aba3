// Package account normalizes balance data from a venue.
package account

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"privateer/internal/domain"
	"privateer/internal/venue"
)

// Service exposes account data for one venue with one set of credentials.
type Service struct {
	venue    venue.Venue
	creds    venue.Credentials
	required []string
	logger   *zap.Logger
}

// NewService creates an account service. required lists the credential
// fields the venue mandates; they are validated on every call, before I/O.
func NewService(v venue.Venue, creds venue.Credentials, required []string, logger *zap.Logger) *Service {
	return &Service{
		venue:    v,
		creds:    creds,
		required: required,
		logger:   logger,
	}
}

// Holdings returns the account's nonzero available balances by currency.
func (s *Service) Holdings(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	if err := s.creds.Validate(s.required...); err != nil {
		return nil, err
	}

	balances, err := s.venue.FetchBalance(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch balance")
	}

	holdings := make(map[domain.CurrencyCode]decimal.Decimal)
	for currency, amount := range balances {
		if amount.IsZero() {
			continue
		}
		holdings[currency] = amount
	}
	return holdings, nil
}

// SortedCurrencies returns the holding keys in currency-code order.
func SortedCurrencies(holdings map[domain.CurrencyCode]decimal.Decimal) []domain.CurrencyCode {
	currencies := make([]domain.CurrencyCode, 0, len(holdings))
	for c := range holdings {
		currencies = append(currencies, c)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })
	return currencies
}
