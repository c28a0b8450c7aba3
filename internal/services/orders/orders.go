// Package orders orchestrates the order lifecycle against a single venue:
// batch creation, batch cancellation and normalization of active orders.
package orders

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"privateer/internal/domain"
	"privateer/internal/services/converter"
	"privateer/internal/services/resolver"
	"privateer/internal/venue"
)

// Service runs order operations for one venue with one set of credentials.
type Service struct {
	venue    venue.Venue
	creds    venue.Credentials
	required []string
	logger   *zap.Logger
}

// NewService creates an order service. required lists the credential fields
// the venue mandates; they are re-validated on every call, before any I/O.
func NewService(v venue.Venue, creds venue.Credentials, required []string, logger *zap.Logger) *Service {
	return &Service{
		venue:    v,
		creds:    creds,
		required: required,
		logger:   logger,
	}
}

// CreateEach submits the requested orders strictly in input order, one at a
// time. The market catalog is fetched once for the whole batch; the ticker
// is fetched per order.
//
// The first failure aborts the batch and nothing placed so far is rolled
// back: orders already accepted by the venue stay live. Callers must treat
// this call as non-atomic.
func (s *Service) CreateEach(ctx context.Context, reqs []domain.OrderRequest) ([]domain.OrderSummary, error) {
	if err := s.creds.Validate(s.required...); err != nil {
		return nil, err
	}

	catalog, err := s.venue.FetchMarkets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch markets")
	}

	summaries := make([]domain.OrderSummary, 0, len(reqs))
	for i, req := range reqs {
		res, err := resolver.Resolve(req.Operation, catalog)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d (%s)", i, req.Operation)
		}

		ticker, err := s.venue.FetchTicker(ctx, res.Market)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d (%s): failed to fetch ticker for %s", i, req.Operation, res.Market.Symbol())
		}

		params, err := converter.OrderParams(res.Side, req.Subtract, ticker)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d (%s)", i, req.Operation)
		}

		var id string
		switch res.Side {
		case domain.SideSell:
			id, err = s.venue.CreateLimitSellOrder(ctx, res.Market, params.BaseQty, params.LimitPrice)
		case domain.SideBuy:
			id, err = s.venue.CreateLimitBuyOrder(ctx, res.Market, params.BaseQty, params.LimitPrice)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "order %d (%s): failed to submit on %s", i, req.Operation, res.Market.Symbol())
		}

		s.logger.Info("order placed",
			zap.String("id", id),
			zap.String("operation", req.Operation.String()),
			zap.String("market", res.Market.Symbol()),
			zap.String("side", res.Side.String()),
			zap.String("qty", params.BaseQty.String()),
			zap.String("price", params.LimitPrice.String()))

		summaries = append(summaries, domain.OrderSummary{
			ID:        id,
			Operation: req.Operation,
			Subtract:  req.Subtract,
		})
	}

	return summaries, nil
}

// CancelEach cancels the given order ids sequentially. The first venue error
// aborts the remaining cancellations.
func (s *Service) CancelEach(ctx context.Context, ids []string) error {
	if err := s.creds.Validate(s.required...); err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.venue.CancelOrder(ctx, id); err != nil {
			return errors.Wrapf(err, "failed to cancel order %s", id)
		}
		s.logger.Info("order cancelled", zap.String("id", id))
	}
	return nil
}

// Active lists the account's live orders, normalized back into
// operation/amount form.
//
// A sell of N base units maps to operation base->quote with amount N. A buy
// maps to operation quote->base with the amount converted into quote units
// at the order's own limit price. Any other side flag fails that call with
// UnrecognizedOrderSideError.
func (s *Service) Active(ctx context.Context) ([]domain.OrderSummary, error) {
	if err := s.creds.Validate(s.required...); err != nil {
		return nil, err
	}

	open, err := s.venue.FetchOpenOrders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch open orders")
	}

	summaries := make([]domain.OrderSummary, 0, len(open))
	for _, o := range open {
		base, quote, err := domain.SplitSymbol(o.Symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "order %s", o.ID)
		}

		side, err := domain.ParseSide(o.Side)
		if err != nil {
			return nil, errors.Wrapf(err, "order %s (%s)", o.ID, o.Symbol)
		}

		summary := domain.OrderSummary{ID: o.ID}
		switch side {
		case domain.SideSell:
			summary.Operation = domain.Operation{From: base, To: quote}
			summary.Subtract = o.Amount
		case domain.SideBuy:
			summary.Operation = domain.Operation{From: quote, To: base}
			summary.Subtract = o.Amount.Mul(o.Price)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
