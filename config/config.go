// Package config loads CLI configuration from a yaml file or flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"privateer/internal/domain"
	"privateer/pkg/pacer"
)

// Config describes one exchange the CLI should talk to.
type Config struct {
	Exchange         string
	Currencies       []string
	BreatherEvery    int
	BreatherCooldown time.Duration
}

type configTmp struct {
	Exchange         string        `yaml:"exchange"`
	Currencies       string        `yaml:"currencies,omitempty"`
	BreatherEvery    int           `yaml:"breather_every,omitempty"`
	BreatherCooldown time.Duration `yaml:"breather_cooldown,omitempty"`
}

// Get reads configs from the yaml file given by -config, or falls back to a
// single config assembled from flags.
func Get() ([]Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	exchange := flag.String("exchange", "binance", "exchange slug, example: binance")
	currencies := flag.String("currencies", "", "comma-separated currency filter, example: BTC,ETH,USD")
	every := flag.Int("breatherevery", pacer.DefaultEvery, "ticker fetches between rate-limit pauses")
	cooldown := flag.Duration("breathercooldown", pacer.DefaultCooldown, "rate-limit pause duration")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	parsed, err := parseCurrencies(*currencies)
	if err != nil {
		return nil, err
	}

	return []Config{
		{
			Exchange:         *exchange,
			Currencies:       parsed,
			BreatherEvery:    *every,
			BreatherCooldown: *cooldown,
		},
	}, nil
}

func getYaml(path string) ([]Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var configsTmp []configTmp
	if err := yaml.Unmarshal(f, &configsTmp); err != nil {
		return nil, err
	}

	var configs []Config
	for _, c := range configsTmp {
		if c.Exchange == "" {
			return nil, fmt.Errorf("missing 'exchange' param in yaml config")
		}

		currencies, err := parseCurrencies(c.Currencies)
		if err != nil {
			return nil, fmt.Errorf("incorrect 'currencies' param in yaml config: %w", err)
		}

		newConfig := Config{
			Exchange:         c.Exchange,
			Currencies:       currencies,
			BreatherEvery:    c.BreatherEvery,
			BreatherCooldown: c.BreatherCooldown,
		}
		if newConfig.BreatherEvery == 0 {
			newConfig.BreatherEvery = pacer.DefaultEvery
		}
		if newConfig.BreatherCooldown == 0 {
			newConfig.BreatherCooldown = pacer.DefaultCooldown
		}

		configs = append(configs, newConfig)
	}
	return configs, nil
}

func parseCurrencies(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var currencies []string
	for _, piece := range strings.Split(raw, ",") {
		currency := strings.ToUpper(strings.TrimSpace(piece))
		if !domain.ValidCurrency(currency) {
			return nil, fmt.Errorf("invalid currency code %q", piece)
		}
		currencies = append(currencies, currency)
	}
	return currencies, nil
}
