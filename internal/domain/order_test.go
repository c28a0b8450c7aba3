package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		raw  string
		want Side
	}{
		{raw: "sell", want: SideSell},
		{raw: "SELL", want: SideSell},
		{raw: "Sell", want: SideSell},
		{raw: "buy", want: SideBuy},
		{raw: "BUY", want: SideBuy},
		{raw: "Buy", want: SideBuy},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSide(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSideRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "short", "hold", "both"} {
		_, err := ParseSide(raw)
		require.Error(t, err)

		var target *UnrecognizedOrderSideError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, raw, target.Side)
	}
}

func TestSplitSymbol(t *testing.T) {
	base, quote, err := SplitSymbol("BTC/USD")
	require.NoError(t, err)
	assert.Equal(t, CurrencyCode("BTC"), base)
	assert.Equal(t, CurrencyCode("USD"), quote)

	for _, symbol := range []string{"BTCUSD", "BTC/USD/ETH", "btc/USD", "/USD"} {
		_, _, err := SplitSymbol(symbol)
		assert.Error(t, err, symbol)
	}
}
