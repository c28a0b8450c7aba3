package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Operation
		wantErr error
	}{
		{
			name: "canonical separator",
			raw:  "BTC->USD",
			want: Operation{From: "BTC", To: "USD"},
		},
		{
			name: "legacy separator",
			raw:  "BTC»USD",
			want: Operation{From: "BTC", To: "USD"},
		},
		{
			name: "numeric code",
			raw:  "USDT->1INCH",
			want: Operation{From: "USDT", To: "1INCH"},
		},
		{
			name:    "no separator",
			raw:     "BTCUSD",
			wantErr: &MalformedOperationError{},
		},
		{
			name:    "two separators",
			raw:     "BTC->USD->ETH",
			wantErr: &MalformedOperationError{},
		},
		{
			name:    "empty right side",
			raw:     "BTC->",
			wantErr: &MalformedOperationError{},
		},
		{
			name:    "empty left side",
			raw:     "->USD",
			wantErr: &MalformedOperationError{},
		},
		{
			name:    "same currency both sides",
			raw:     "BTC->BTC",
			wantErr: &MalformedOperationError{},
		},
		{
			name:    "lowercase code",
			raw:     "btc->USD",
			wantErr: &InvalidCurrencyCodeError{},
		},
		{
			name:    "code with punctuation",
			raw:     "BTC!->USD",
			wantErr: &InvalidCurrencyCodeError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOperation(tt.raw)

			if tt.wantErr != nil {
				require.Error(t, err)
				switch tt.wantErr.(type) {
				case *MalformedOperationError:
					var target *MalformedOperationError
					assert.ErrorAs(t, err, &target)
				case *InvalidCurrencyCodeError:
					var target *InvalidCurrencyCodeError
					assert.ErrorAs(t, err, &target)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperationIsPure(t *testing.T) {
	first, err := ParseOperation("ETH->BTC")
	require.NoError(t, err)

	second, err := ParseOperation("ETH->BTC")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOperationString(t *testing.T) {
	op := Operation{From: "LTC", To: "ETH"}
	assert.Equal(t, "LTC->ETH", op.String())

	// round-trip through the canonical form
	parsed, err := ParseOperation(op.String())
	require.NoError(t, err)
	assert.Equal(t, op, parsed)
}

func TestInvalidCurrencyCodeErrorNamesOffendingSegment(t *testing.T) {
	_, err := ParseOperation("BTC->usd")
	require.Error(t, err)

	var target *InvalidCurrencyCodeError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "usd", target.Value)
}
