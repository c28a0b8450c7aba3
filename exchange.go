package privateer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"privateer/internal/domain"
	"privateer/internal/services/account"
	"privateer/internal/services/orders"
	"privateer/internal/services/rates"
	"privateer/internal/venue"
	"privateer/pkg/pacer"
)

// Order is the wire-level order shape used at the library boundary: an
// operation string like "BTC->USD" plus a decimal amount string denominated
// in the operation's left-hand currency. ID is set on results and ignored
// on input.
type Order struct {
	ID        string
	Operation string
	Subtract  string
}

// Holding is one currency balance.
type Holding struct {
	Currency string
	Amount   string
}

// Exchange is a connected, credentialed view of one exchange. Calls on one
// Exchange issue venue requests strictly sequentially; distinct Exchange
// instances are independent and may be used concurrently.
type Exchange struct {
	info    ExchangeInfo
	orders  *orders.Service
	rates   *rates.Service
	account *account.Service
}

type openOptions struct {
	logger   *zap.Logger
	every    int
	cooldown time.Duration
}

// Option configures Open.
type Option func(*openOptions)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// WithPacing overrides the rate-aggregation breather: pause for cooldown
// after every n ticker fetches.
func WithPacing(n int, cooldown time.Duration) Option {
	return func(o *openOptions) {
		o.every = n
		o.cooldown = cooldown
	}
}

// Open connects to the exchange identified by slug. Credentials are held
// for the lifetime of the returned Exchange and validated before every
// credentialed call.
func Open(slug string, creds venue.Credentials, opts ...Option) (*Exchange, error) {
	info, err := Lookup(slug)
	if err != nil {
		return nil, err
	}

	options := openOptions{
		logger:   zap.NewNop(),
		every:    pacer.DefaultEvery,
		cooldown: pacer.DefaultCooldown,
	}
	for _, opt := range opts {
		opt(&options)
	}

	v := info.connect(creds)
	logger := options.logger.With(zap.String("exchange", slug))
	breather := pacer.New(pacer.WithEvery(options.every), pacer.WithCooldown(options.cooldown))

	return &Exchange{
		info:    info,
		orders:  orders.NewService(v, creds, info.CredentialFields, logger),
		rates:   rates.NewService(v, breather, logger),
		account: account.NewService(v, creds, info.CredentialFields, logger),
	}, nil
}

// Info returns the registry entry the Exchange was opened from.
func (e *Exchange) Info() ExchangeInfo {
	return e.info
}

// CreateEachOrder submits the given orders one at a time, in input order.
// The first failure aborts the batch; orders already accepted by the venue
// stay live, so the call is not atomic. Returned orders carry the venue's
// order id together with the original operation and amount.
func (e *Exchange) CreateEachOrder(ctx context.Context, reqs []Order) ([]Order, error) {
	parsed := make([]domain.OrderRequest, 0, len(reqs))
	for i, req := range reqs {
		op, err := domain.ParseOperation(req.Operation)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d", i)
		}
		subtract, err := decimal.NewFromString(req.Subtract)
		if err != nil {
			return nil, errors.Wrapf(err, "order %d: invalid subtract amount %q", i, req.Subtract)
		}
		if subtract.IsNegative() {
			return nil, errors.Errorf("order %d: negative subtract amount %q", i, req.Subtract)
		}
		parsed = append(parsed, domain.OrderRequest{Operation: op, Subtract: subtract})
	}

	summaries, err := e.orders.CreateEach(ctx, parsed)
	if err != nil {
		return nil, err
	}
	return ordersFromSummaries(summaries), nil
}

// CancelEachOrder cancels the given order ids sequentially; the first venue
// error aborts the remaining cancellations.
func (e *Exchange) CancelEachOrder(ctx context.Context, ids []string) error {
	return e.orders.CancelEach(ctx, ids)
}

// GetActiveOrders lists the account's live orders in operation/amount form.
func (e *Exchange) GetActiveOrders(ctx context.Context) ([]Order, error) {
	summaries, err := e.orders.Active(ctx)
	if err != nil {
		return nil, err
	}
	return ordersFromSummaries(summaries), nil
}

// GetExchangeRates returns the directed rate table: rates[from][to] is what
// 1 unit of from currently trades for in to. When currencies is non-empty,
// only markets between the listed currencies are consulted. The two
// directions of a pair come from independent market sides and are not
// reciprocals of one another.
func (e *Exchange) GetExchangeRates(ctx context.Context, currencies []string) (map[string]map[string]string, error) {
	filter := make([]domain.CurrencyCode, 0, len(currencies))
	for _, c := range currencies {
		if !domain.ValidCurrency(c) {
			return nil, &domain.InvalidCurrencyCodeError{Value: c}
		}
		filter = append(filter, domain.CurrencyCode(c))
	}

	table, err := e.rates.ExchangeRates(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]string, len(table))
	for from, row := range table {
		outRow := make(map[string]string, len(row))
		for to, rate := range row {
			outRow[to.String()] = rate.String()
		}
		out[from.String()] = outRow
	}
	return out, nil
}

// GetHoldings returns the account's nonzero available balances, sorted by
// currency code.
func (e *Exchange) GetHoldings(ctx context.Context) ([]Holding, error) {
	holdings, err := e.account.Holdings(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Holding, 0, len(holdings))
	for _, currency := range account.SortedCurrencies(holdings) {
		out = append(out, Holding{
			Currency: currency.String(),
			Amount:   holdings[currency].String(),
		})
	}
	return out, nil
}

// GetCurrencies returns every tradeable currency on the exchange, sorted.
func (e *Exchange) GetCurrencies(ctx context.Context) ([]string, error) {
	currencies, err := e.rates.Currencies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, c.String())
	}
	return out, nil
}

// GetUSDEquivalents returns the approximate USD value of 1 unit of each
// currency with a direct USD market. USD itself is always present and equal
// to 1; other currencies may be omitted.
func (e *Exchange) GetUSDEquivalents(ctx context.Context) (map[string]string, error) {
	equivalents, err := e.rates.USDEquivalents(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(equivalents))
	for currency, value := range equivalents {
		out[currency.String()] = value.String()
	}
	return out, nil
}

func ordersFromSummaries(summaries []domain.OrderSummary) []Order {
	out := make([]Order, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, Order{
			ID:        s.ID,
			Operation: s.Operation.String(),
			Subtract:  s.Subtract.String(),
		})
	}
	return out
}
