package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privateer/pkg/pacer"
)

func writeYaml(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetYaml(t *testing.T) {
	path := writeYaml(t, `
- exchange: binance
  currencies: BTC,ETH,USD
  breather_every: 3
  breather_cooldown: 5s
- exchange: bybit
`)

	configs, err := getYaml(path)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, "binance", configs[0].Exchange)
	assert.Equal(t, []string{"BTC", "ETH", "USD"}, configs[0].Currencies)
	assert.Equal(t, 3, configs[0].BreatherEvery)
	assert.Equal(t, 5*time.Second, configs[0].BreatherCooldown)

	// pacing defaults apply when unset
	assert.Equal(t, "bybit", configs[1].Exchange)
	assert.Nil(t, configs[1].Currencies)
	assert.Equal(t, pacer.DefaultEvery, configs[1].BreatherEvery)
	assert.Equal(t, pacer.DefaultCooldown, configs[1].BreatherCooldown)
}

func TestGetYamlMissingExchange(t *testing.T) {
	path := writeYaml(t, `
- currencies: BTC,ETH
`)

	_, err := getYaml(path)
	assert.Error(t, err)
}

func TestGetYamlBadCurrency(t *testing.T) {
	path := writeYaml(t, `
- exchange: binance
  currencies: BTC,b!c
`)

	_, err := getYaml(path)
	assert.Error(t, err)
}

func TestParseCurrencies(t *testing.T) {
	got, err := parseCurrencies(" btc, ETH ,usd")
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH", "USD"}, got)

	got, err = parseCurrencies("")
	require.NoError(t, err)
	assert.Nil(t, got)
}
