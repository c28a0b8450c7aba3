// Package binance adapts the binance spot API to the venue contract.
package binance

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"privateer/internal/domain"
	"privateer/internal/venue"
)

const symbolStatusTrading = "TRADING"

// Venue implements venue.Venue over the go-binance spot client. Raw SDK
// calls go through a local rate limiter in addition to the core's pacing.
type Venue struct {
	client  *binance.Client
	limiter *rate.Limiter
}

// New creates a binance adapter for the given credentials.
func New(apiKey, secret string) *Venue {
	return &Venue{
		client:  binance.NewClient(apiKey, secret),
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
	}
}

func (v *Venue) FetchMarkets(ctx context.Context) (domain.Catalog, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	info, err := v.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch binance exchange info")
	}

	return catalogFromSymbols(info.Symbols), nil
}

// catalogFromSymbols keeps actively trading symbols only. Binance reports
// base and quote explicitly, so the canonical key is built rather than
// parsed out of the concatenated venue symbol.
func catalogFromSymbols(symbols []binance.Symbol) domain.Catalog {
	catalog := make(domain.Catalog, len(symbols))
	for _, s := range symbols {
		if s.Status != symbolStatusTrading {
			continue
		}
		market := domain.Market{
			Base:  domain.CurrencyCode(s.BaseAsset),
			Quote: domain.CurrencyCode(s.QuoteAsset),
			ID:    s.Symbol,
		}
		catalog[market.Symbol()] = market
	}
	return catalog
}

func (v *Venue) FetchTicker(ctx context.Context, market domain.Market) (domain.Ticker, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return domain.Ticker{}, err
	}

	books, err := v.client.NewListBookTickersService().Symbol(market.ID).Do(ctx)
	if err != nil {
		return domain.Ticker{}, errors.Wrapf(err, "failed to fetch binance book ticker for %s", market.ID)
	}
	if len(books) == 0 {
		return domain.Ticker{}, errors.Errorf("binance returned no book ticker for %s", market.ID)
	}

	ask, err := decimal.NewFromString(books[0].AskPrice)
	if err != nil {
		return domain.Ticker{}, errors.Wrap(err, "failed to parse ask price")
	}
	bid, err := decimal.NewFromString(books[0].BidPrice)
	if err != nil {
		return domain.Ticker{}, errors.Wrap(err, "failed to parse bid price")
	}

	return domain.Ticker{Ask: ask, Bid: bid}, nil
}

func (v *Venue) FetchBalance(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	account, err := v.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch binance account")
	}

	balances := make(map[domain.CurrencyCode]decimal.Decimal, len(account.Balances))
	for _, b := range account.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse balance of %s", b.Asset)
		}
		balances[domain.CurrencyCode(b.Asset)] = free
	}
	return balances, nil
}

func (v *Venue) FetchOpenOrders(ctx context.Context) ([]venue.OpenOrder, error) {
	// The open-orders payload carries only the concatenated venue symbol,
	// so the catalog is needed to recover base and quote.
	markets, err := v.FetchMarkets(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Market, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	raw, err := v.client.NewListOpenOrdersService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch binance open orders")
	}

	open := make([]venue.OpenOrder, 0, len(raw))
	for _, o := range raw {
		market, ok := byID[o.Symbol]
		if !ok {
			return nil, errors.Errorf("binance open order %d references unknown symbol %s", o.OrderID, o.Symbol)
		}

		amount, err := decimal.NewFromString(o.OrigQuantity)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse quantity of order %d", o.OrderID)
		}
		price, err := decimal.NewFromString(o.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse price of order %d", o.OrderID)
		}

		open = append(open, venue.OpenOrder{
			ID:     strconv.FormatInt(o.OrderID, 10),
			Symbol: market.Symbol(),
			Side:   string(o.Side),
			Amount: amount,
			Price:  price,
		})
	}
	return open, nil
}

func (v *Venue) CreateLimitSellOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error) {
	return v.createLimitOrder(ctx, market, binance.SideTypeSell, qty, price)
}

func (v *Venue) CreateLimitBuyOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error) {
	return v.createLimitOrder(ctx, market, binance.SideTypeBuy, qty, price)
}

func (v *Venue) createLimitOrder(ctx context.Context, market domain.Market, side binance.SideType, qty, price decimal.Decimal) (string, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return "", err
	}

	res, err := v.client.NewCreateOrderService().
		Symbol(market.ID).
		Side(side).
		Type(binance.OrderTypeLimit).
		TimeInForce(binance.TimeInForceTypeGTC).
		Quantity(qty.String()).
		Price(price.String()).
		NewClientOrderID(uuid.NewString()).
		Do(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create binance %s order on %s", side, market.ID)
	}

	return strconv.FormatInt(res.OrderID, 10), nil
}

// CancelOrder looks the order up among open orders first: the binance SDK
// requires the symbol alongside the order id, but the abstract contract
// only carries the id.
func (v *Venue) CancelOrder(ctx context.Context, id string) error {
	orderID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid binance order id %q", id)
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return err
	}

	raw, err := v.client.NewListOpenOrdersService().Do(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to fetch binance open orders")
	}

	var symbol string
	for _, o := range raw {
		if o.OrderID == orderID {
			symbol = o.Symbol
			break
		}
	}
	if symbol == "" {
		return errors.Errorf("order %s is not among binance open orders", id)
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err = v.client.NewCancelOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to cancel binance order %s", id)
	}
	return nil
}
