// Package rates aggregates per-market tickers into a directed exchange-rate
// table, and derives currency listings and USD equivalents from the same
// market data.
package rates

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"privateer/internal/domain"
	"privateer/internal/venue"
	"privateer/pkg/pacer"
)

// USD is the reference currency for equivalents.
const USD = domain.CurrencyCode("USD")

var one = decimal.NewFromInt(1)

// Table maps from-currency to to-currency to the rate obtained by trading
// away 1 unit of the from-currency. The two directions of a pair come from
// independent market sides (ask vs. 1/bid) and are deliberately NOT
// reciprocals of one another; they must never be reconciled or averaged.
type Table map[domain.CurrencyCode]map[domain.CurrencyCode]decimal.Decimal

// Service aggregates public market data for one venue.
type Service struct {
	venue  venue.Venue
	pacer  *pacer.Pacer
	logger *zap.Logger
}

// NewService creates a rate aggregation service. The pacer throttles the
// per-market ticker loop.
func NewService(v venue.Venue, p *pacer.Pacer, logger *zap.Logger) *Service {
	return &Service{
		venue:  v,
		pacer:  p,
		logger: logger,
	}
}

// ExchangeRates fetches a ticker for every market and builds the directed
// rate table: table[base][quote] is the ask, table[quote][base] the
// reciprocal of the bid. When filter is non-empty, only markets whose base
// AND quote are both in the filter are visited.
//
// Markets are visited in sorted symbol order so that pacing and error
// attribution are deterministic. Writing the same directed entry twice
// within one pass fails with DuplicateRateError.
func (s *Service) ExchangeRates(ctx context.Context, filter []domain.CurrencyCode) (Table, error) {
	catalog, err := s.venue.FetchMarkets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch markets")
	}

	var keep map[domain.CurrencyCode]struct{}
	if len(filter) > 0 {
		keep = make(map[domain.CurrencyCode]struct{}, len(filter))
		for _, c := range filter {
			keep[c] = struct{}{}
		}
	}

	table := make(Table)
	for _, symbol := range sortedSymbols(catalog) {
		market := catalog[symbol]
		if keep != nil {
			if _, ok := keep[market.Base]; !ok {
				continue
			}
			if _, ok := keep[market.Quote]; !ok {
				continue
			}
		}

		if err := s.pacer.Breathe(ctx); err != nil {
			return nil, err
		}

		ticker, err := s.venue.FetchTicker(ctx, market)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch ticker for %s", symbol)
		}

		if err := write(table, market.Base, market.Quote, ticker.Ask); err != nil {
			return nil, err
		}
		if ticker.Bid.IsPositive() {
			if err := write(table, market.Quote, market.Base, one.Div(ticker.Bid)); err != nil {
				return nil, err
			}
		} else {
			s.logger.Debug("skipping inverse rate, zero bid", zap.String("market", symbol))
		}
	}

	return table, nil
}

// Currencies returns every currency tradeable on the venue, i.e. the sorted
// union of all market bases and quotes.
func (s *Service) Currencies(ctx context.Context) ([]domain.CurrencyCode, error) {
	catalog, err := s.venue.FetchMarkets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch markets")
	}

	seen := make(map[domain.CurrencyCode]struct{}, len(catalog)*2)
	for _, market := range catalog {
		seen[market.Base] = struct{}{}
		seen[market.Quote] = struct{}{}
	}

	currencies := make([]domain.CurrencyCode, 0, len(seen))
	for c := range seen {
		currencies = append(currencies, c)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })
	return currencies, nil
}

// USDEquivalents approximates the USD value of 1 unit of every currency that
// has a direct USD market: the ask when USD is the quote, the reciprocal of
// the bid when USD is the base. USD itself is always present and equal to 1;
// currencies without a direct USD market are omitted.
func (s *Service) USDEquivalents(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	catalog, err := s.venue.FetchMarkets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch markets")
	}

	equivalents := map[domain.CurrencyCode]decimal.Decimal{USD: one}
	for _, symbol := range sortedSymbols(catalog) {
		market := catalog[symbol]
		if market.Base != USD && market.Quote != USD {
			continue
		}

		var currency domain.CurrencyCode
		if market.Quote == USD {
			currency = market.Base
		} else {
			currency = market.Quote
		}
		if _, done := equivalents[currency]; done {
			continue
		}

		if err := s.pacer.Breathe(ctx); err != nil {
			return nil, err
		}

		ticker, err := s.venue.FetchTicker(ctx, market)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch ticker for %s", symbol)
		}

		switch {
		case market.Quote == USD && ticker.Ask.IsPositive():
			equivalents[currency] = ticker.Ask
		case market.Base == USD && ticker.Bid.IsPositive():
			equivalents[currency] = one.Div(ticker.Bid)
		}
	}

	return equivalents, nil
}

func write(t Table, from, to domain.CurrencyCode, rate decimal.Decimal) error {
	row := t[from]
	if row == nil {
		row = make(map[domain.CurrencyCode]decimal.Decimal)
		t[from] = row
	}
	if _, dup := row[to]; dup {
		return &domain.DuplicateRateError{From: from, To: to}
	}
	row[to] = rate
	return nil
}

func sortedSymbols(catalog domain.Catalog) []string {
	symbols := make([]string, 0, len(catalog))
	for symbol := range catalog {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
