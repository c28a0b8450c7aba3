// Package bybit adapts the bybit v5 spot API to the venue contract.
package bybit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"privateer/internal/domain"
	"privateer/internal/venue"
)

const instrumentStatusTrading = "Trading"

// Venue implements venue.Venue over the bybit v5 client, spot category
// only. Raw SDK calls go through a local rate limiter in addition to the
// core's pacing.
type Venue struct {
	client  *bybit.Client
	limiter *rate.Limiter
}

// New creates a bybit adapter for the given credentials.
func New(apiKey, secret string) *Venue {
	return &Venue{
		client:  bybit.NewClient().WithAuth(apiKey, secret),
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 10),
	}
}

func (v *Venue) FetchMarkets(ctx context.Context) (domain.Catalog, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := v.client.V5().Market().GetInstrumentsInfo(bybit.V5GetInstrumentsInfoParam{
		Category: "spot",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch bybit instruments")
	}

	catalog := make(domain.Catalog, len(res.Result.Spot.List))
	for _, item := range res.Result.Spot.List {
		if string(item.Status) != instrumentStatusTrading {
			continue
		}
		market := domain.Market{
			Base:  domain.CurrencyCode(item.BaseCoin),
			Quote: domain.CurrencyCode(item.QuoteCoin),
			ID:    string(item.Symbol),
		}
		catalog[market.Symbol()] = market
	}
	return catalog, nil
}

func (v *Venue) FetchTicker(ctx context.Context, market domain.Market) (domain.Ticker, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return domain.Ticker{}, err
	}

	symbol := bybit.SymbolV5(market.ID)
	res, err := v.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
		Symbol:   &symbol,
	})
	if err != nil {
		return domain.Ticker{}, errors.Wrapf(err, "failed to fetch bybit ticker for %s", market.ID)
	}
	if len(res.Result.Spot.List) == 0 {
		return domain.Ticker{}, errors.Errorf("bybit returned no ticker for %s", market.ID)
	}

	item := res.Result.Spot.List[0]
	ask, err := decimal.NewFromString(item.Ask1Price)
	if err != nil {
		return domain.Ticker{}, errors.Wrap(err, "failed to parse ask price")
	}
	bid, err := decimal.NewFromString(item.Bid1Price)
	if err != nil {
		return domain.Ticker{}, errors.Wrap(err, "failed to parse bid price")
	}

	return domain.Ticker{Ask: ask, Bid: bid}, nil
}

func (v *Venue) FetchBalance(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := v.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5("UNIFIED"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch bybit wallet balance")
	}

	balances := make(map[domain.CurrencyCode]decimal.Decimal)
	for _, account := range res.Result.List {
		for _, coin := range account.Coin {
			amount, err := decimal.NewFromString(coin.WalletBalance)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse balance of %s", coin.Coin)
			}
			balances[domain.CurrencyCode(coin.Coin)] = amount
		}
	}
	return balances, nil
}

func (v *Venue) FetchOpenOrders(ctx context.Context) ([]venue.OpenOrder, error) {
	// Open orders carry only the concatenated venue symbol; the catalog is
	// needed to recover base and quote.
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

	res, err := v.client.V5().Order().GetOpenOrders(bybit.V5GetOpenOrdersParam{
		Category: "spot",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch bybit open orders")
	}

	open := make([]venue.OpenOrder, 0, len(res.Result.List))
	for _, o := range res.Result.List {
		market, ok := byID[string(o.Symbol)]
		if !ok {
			return nil, errors.Errorf("bybit open order %s references unknown symbol %s", o.OrderID, o.Symbol)
		}

		amount, err := decimal.NewFromString(o.Qty)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse quantity of order %s", o.OrderID)
		}
		price, err := decimal.NewFromString(o.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse price of order %s", o.OrderID)
		}

		open = append(open, venue.OpenOrder{
			ID:     o.OrderID,
			Symbol: market.Symbol(),
			Side:   string(o.Side),
			Amount: amount,
			Price:  price,
		})
	}
	return open, nil
}

func (v *Venue) CreateLimitSellOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error) {
	return v.createLimitOrder(ctx, market, bybit.SideSell, qty, price)
}

func (v *Venue) CreateLimitBuyOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error) {
	return v.createLimitOrder(ctx, market, bybit.SideBuy, qty, price)
}

func (v *Venue) createLimitOrder(ctx context.Context, market domain.Market, side bybit.Side, qty, price decimal.Decimal) (string, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return "", err
	}

	priceStr := price.String()
	orderLinkID := uuid.NewString()
	res, err := v.client.V5().Order().CreateOrder(bybit.V5CreateOrderParam{
		Category:    "spot",
		Symbol:      bybit.SymbolV5(market.ID),
		Side:        side,
		OrderType:   bybit.OrderTypeLimit,
		Qty:         qty.String(),
		Price:       &priceStr,
		OrderLinkID: &orderLinkID,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to create bybit %s order on %s", side, market.ID)
	}

	return res.Result.OrderID, nil
}

// CancelOrder looks the order up among open orders first: the bybit SDK
// requires the symbol alongside the order id, but the abstract contract
// only carries the id.
func (v *Venue) CancelOrder(ctx context.Context, id string) error {
	if err := v.limiter.Wait(ctx); err != nil {
		return err
	}

	res, err := v.client.V5().Order().GetOpenOrders(bybit.V5GetOpenOrdersParam{
		Category: "spot",
	})
	if err != nil {
		return errors.Wrap(err, "failed to fetch bybit open orders")
	}

	var symbol bybit.SymbolV5
	for _, o := range res.Result.List {
		if o.OrderID == id {
			symbol = o.Symbol
			break
		}
	}
	if symbol == "" {
		return errors.Errorf("order %s is not among bybit open orders", id)
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return err
	}

	orderID := id
	_, err = v.client.V5().Order().CancelOrder(bybit.V5CancelOrderParam{
		Category: "spot",
		Symbol:   symbol,
		OrderID:  &orderID,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to cancel bybit order %s", id)
	}
	return nil
}
