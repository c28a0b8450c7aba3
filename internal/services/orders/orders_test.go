package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"privateer/internal/domain"
	"privateer/internal/venue"
)

type placedOrder struct {
	side  domain.Side
	id    string
	qty   decimal.Decimal
	price decimal.Decimal
}

// fakeVenue scripts venue behavior and records every call.
type fakeVenue struct {
	catalog    domain.Catalog
	tickers    map[string]domain.Ticker
	openOrders []venue.OpenOrder

	failSubmitOn string // market ID that rejects order creation
	failCancelOn string // order id that rejects cancellation

	networkCalls int
	placed       []placedOrder
	cancelled    []string
	nextID       int
}

func (f *fakeVenue) FetchMarkets(ctx context.Context) (domain.Catalog, error) {
	f.networkCalls++
	return f.catalog, nil
}

func (f *fakeVenue) FetchTicker(ctx context.Context, market domain.Market) (domain.Ticker, error) {
	f.networkCalls++
	ticker, ok := f.tickers[market.Symbol()]
	if !ok {
		return domain.Ticker{}, fmt.Errorf("no scripted ticker for %s", market.Symbol())
	}
	return ticker, nil
}

func (f *fakeVenue) FetchBalance(ctx context.Context) (map[domain.CurrencyCode]decimal.Decimal, error) {
	f.networkCalls++
	return nil, nil
}

func (f *fakeVenue) FetchOpenOrders(ctx context.Context) ([]venue.OpenOrder, error) {
	f.networkCalls++
	return f.openOrders, nil
}

func (f *fakeVenue) CreateLimitSellOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error) {
	return f.create(domain.SideSell, market, qty, price)
}

func (f *fakeVenue) CreateLimitBuyOrder(ctx context.Context, market domain.Market, qty, price decimal.Decimal) (string, error) {
	return f.create(domain.SideBuy, market, qty, price)
}

func (f *fakeVenue) create(side domain.Side, market domain.Market, qty, price decimal.Decimal) (string, error) {
	f.networkCalls++
	if market.ID == f.failSubmitOn {
		return "", fmt.Errorf("venue rejected order on %s", market.ID)
	}
	f.nextID++
	id := fmt.Sprintf("%d", f.nextID)
	f.placed = append(f.placed, placedOrder{side: side, id: id, qty: qty, price: price})
	return id, nil
}

func (f *fakeVenue) CancelOrder(ctx context.Context, id string) error {
	f.networkCalls++
	if id == f.failCancelOn {
		return fmt.Errorf("venue rejected cancellation of %s", id)
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

var testCreds = venue.Credentials{APIKey: "key", Secret: "secret"}

var testRequired = []string{venue.FieldAPIKey, venue.FieldSecret}

func newTestVenue() *fakeVenue {
	return &fakeVenue{
		catalog: domain.Catalog{
			"BTC/USD": {Base: "BTC", Quote: "USD", ID: "BTCUSD"},
			"ETH/BTC": {Base: "ETH", Quote: "BTC", ID: "ETHBTC"},
		},
		tickers: map[string]domain.Ticker{
			"BTC/USD": {Ask: decimal.RequireFromString("6001.52"), Bid: decimal.RequireFromString("6000")},
			"ETH/BTC": {Ask: decimal.RequireFromString("0.052"), Bid: decimal.RequireFromString("0.05")},
		},
	}
}

func TestCreateEachSellAndBuy(t *testing.T) {
	v := newTestVenue()
	s := NewService(v, testCreds, testRequired, zap.NewNop())

	got, err := s.CreateEach(context.Background(), []domain.OrderRequest{
		{Operation: domain.Operation{From: "BTC", To: "USD"}, Subtract: decimal.RequireFromString("0.02")},
		{Operation: domain.Operation{From: "BTC", To: "ETH"}, Subtract: decimal.RequireFromString("0.05")},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// first order sells BTC on BTC/USD at the ask
	assert.Equal(t, domain.Operation{From: "BTC", To: "USD"}, got[0].Operation)
	assert.Equal(t, "1", got[0].ID)
	require.Len(t, v.placed, 2)
	assert.Equal(t, domain.SideSell, v.placed[0].side)
	assert.True(t, v.placed[0].qty.Equal(decimal.RequireFromString("0.02")))
	assert.True(t, v.placed[0].price.Equal(decimal.RequireFromString("6001.52")))

	// second order gives away BTC, the quote of ETH/BTC, so it buys ETH
	// at the bid: 0.05 / 0.05 = 1 ETH
	assert.Equal(t, domain.SideBuy, v.placed[1].side)
	assert.True(t, v.placed[1].qty.Equal(decimal.NewFromInt(1)), v.placed[1].qty.String())
	assert.True(t, v.placed[1].price.Equal(decimal.RequireFromString("0.05")))

	// summaries keep the original operation and amount, not the converted ones
	assert.Equal(t, domain.Operation{From: "BTC", To: "ETH"}, got[1].Operation)
	assert.True(t, got[1].Subtract.Equal(decimal.RequireFromString("0.05")))
}

func TestCreateEachMissingCredentialsBeforeAnyNetworkCall(t *testing.T) {
	v := newTestVenue()
	s := NewService(v, venue.Credentials{APIKey: "key"}, testRequired, zap.NewNop())

	_, err := s.CreateEach(context.Background(), []domain.OrderRequest{
		{Operation: domain.Operation{From: "BTC", To: "USD"}, Subtract: decimal.NewFromInt(1)},
	})
	require.Error(t, err)

	var target *domain.MissingCredentialsError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, []string{venue.FieldSecret}, target.Fields)
	assert.Zero(t, v.networkCalls)
}

func TestCreateEachAbortsOnFirstFailure(t *testing.T) {
	v := newTestVenue()
	v.failSubmitOn = "ETHBTC"
	s := NewService(v, testCreds, testRequired, zap.NewNop())

	_, err := s.CreateEach(context.Background(), []domain.OrderRequest{
		{Operation: domain.Operation{From: "BTC", To: "USD"}, Subtract: decimal.RequireFromString("0.02")},
		{Operation: domain.Operation{From: "ETH", To: "BTC"}, Subtract: decimal.NewFromInt(1)},
		{Operation: domain.Operation{From: "USD", To: "BTC"}, Subtract: decimal.NewFromInt(100)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order 1")

	// the first order was really placed and stays on the venue
	require.Len(t, v.placed, 1)
	assert.Equal(t, domain.SideSell, v.placed[0].side)
}

func TestCreateEachUnsupportedOperation(t *testing.T) {
	v := newTestVenue()
	s := NewService(v, testCreds, testRequired, zap.NewNop())

	_, err := s.CreateEach(context.Background(), []domain.OrderRequest{
		{Operation: domain.Operation{From: "DOGE", To: "USD"}, Subtract: decimal.NewFromInt(1)},
	})
	require.Error(t, err)

	var target *domain.UnsupportedOperationError
	assert.ErrorAs(t, err, &target)
	assert.Empty(t, v.placed)
}

func TestCancelEach(t *testing.T) {
	v := newTestVenue()
	s := NewService(v, testCreds, testRequired, zap.NewNop())

	require.NoError(t, s.CancelEach(context.Background(), []string{"7", "8"}))
	assert.Equal(t, []string{"7", "8"}, v.cancelled)
}

func TestCancelEachAbortsOnFirstFailure(t *testing.T) {
	v := newTestVenue()
	v.failCancelOn = "8"
	s := NewService(v, testCreds, testRequired, zap.NewNop())

	err := s.CancelEach(context.Background(), []string{"7", "8", "9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order 8")

	// 9 was never attempted
	assert.Equal(t, []string{"7"}, v.cancelled)
}

func TestActiveNormalizesBothSides(t *testing.T) {
	v := newTestVenue()
	v.openOrders = []venue.OpenOrder{
		{ID: "41", Symbol: "BTC/USD", Side: "sell", Amount: decimal.RequireFromString("0.02"), Price: decimal.NewFromInt(6000)},
		{ID: "42", Symbol: "BTC/USD", Side: "buy", Amount: decimal.RequireFromString("0.02"), Price: decimal.NewFromInt(6000)},
	}
	s := NewService(v, testCreds, testRequired, zap.NewNop())

	got, err := s.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// a live sell of 0.02 BTC is the operation BTC->USD for 0.02
	assert.Equal(t, "41", got[0].ID)
	assert.Equal(t, domain.Operation{From: "BTC", To: "USD"}, got[0].Operation)
	assert.True(t, got[0].Subtract.Equal(decimal.RequireFromString("0.02")))

	// a live buy of 0.02 BTC at 6000 gives away 120 USD
	assert.Equal(t, "42", got[1].ID)
	assert.Equal(t, domain.Operation{From: "USD", To: "BTC"}, got[1].Operation)
	assert.True(t, got[1].Subtract.Equal(decimal.NewFromInt(120)), got[1].Subtract.String())
}

func TestActiveUnrecognizedSide(t *testing.T) {
	v := newTestVenue()
	v.openOrders = []venue.OpenOrder{
		{ID: "41", Symbol: "BTC/USD", Side: "short", Amount: decimal.NewFromInt(1), Price: decimal.NewFromInt(6000)},
	}
	s := NewService(v, testCreds, testRequired, zap.NewNop())

	_, err := s.Active(context.Background())
	require.Error(t, err)

	var target *domain.UnrecognizedOrderSideError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "short", target.Side)
}
