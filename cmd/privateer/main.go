package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"privateer"
	"privateer/config"
	"privateer/internal/venue"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(0, 2).
			Bold(true).
			MarginBottom(1)
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// optional .env with per-exchange credentials
	_ = godotenv.Load()

	configs, err := config.Get()
	if err != nil {
		logger.Fatal("failed to get configuration", zap.Error(err))
	}

	fmt.Println(headerStyle.Render("PRIVATEER"))

	g := new(errgroup.Group)
	for _, c := range configs {
		conf := c
		g.Go(func() error {
			creds, err := credentialsFor(conf.Exchange)
			if err != nil {
				return err
			}

			exchange, err := privateer.Open(conf.Exchange, creds,
				privateer.WithLogger(logger),
				privateer.WithPacing(conf.BreatherEvery, conf.BreatherCooldown))
			if err != nil {
				return err
			}

			return report(context.Background(), exchange, conf.Currencies)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatal("failed", zap.Error(err))
	}
}

// credentialsFor reads SLUG_API_KEY / SLUG_SECRET from the environment and
// prompts interactively for whatever is missing.
func credentialsFor(slug string) (venue.Credentials, error) {
	info, err := privateer.Lookup(slug)
	if err != nil {
		return venue.Credentials{}, err
	}

	prefix := strings.ToUpper(slug)
	creds := venue.Credentials{
		APIKey:   os.Getenv(prefix + "_API_KEY"),
		Secret:   os.Getenv(prefix + "_SECRET"),
		UID:      os.Getenv(prefix + "_UID"),
		Password: os.Getenv(prefix + "_PASSWORD"),
	}

	var fields []huh.Field
	for _, field := range info.CredentialFields {
		switch field {
		case venue.FieldAPIKey:
			if creds.APIKey == "" {
				fields = append(fields, huh.NewInput().
					Title(fmt.Sprintf("%s API key", info.FriendlyName)).
					Value(&creds.APIKey))
			}
		case venue.FieldSecret:
			if creds.Secret == "" {
				fields = append(fields, huh.NewInput().
					Title(fmt.Sprintf("%s API secret", info.FriendlyName)).
					EchoMode(huh.EchoModePassword).
					Value(&creds.Secret))
			}
		case venue.FieldUID:
			if creds.UID == "" {
				fields = append(fields, huh.NewInput().
					Title(fmt.Sprintf("%s UID", info.FriendlyName)).
					Value(&creds.UID))
			}
		case venue.FieldPassword:
			if creds.Password == "" {
				fields = append(fields, huh.NewInput().
					Title(fmt.Sprintf("%s password", info.FriendlyName)).
					EchoMode(huh.EchoModePassword).
					Value(&creds.Password))
			}
		}
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return venue.Credentials{}, err
		}
	}

	return creds, nil
}

func report(ctx context.Context, exchange *privateer.Exchange, currencies []string) error {
	rates, err := exchange.GetExchangeRates(ctx, currencies)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s exchange rates:\n", exchange.Info().FriendlyName)
	froms := make([]string, 0, len(rates))
	for from := range rates {
		froms = append(froms, from)
	}
	sort.Strings(froms)
	for _, from := range froms {
		tos := make([]string, 0, len(rates[from]))
		for to := range rates[from] {
			tos = append(tos, to)
		}
		sort.Strings(tos)
		for _, to := range tos {
			fmt.Printf("  1 %s = %s %s\n", from, rates[from][to], to)
		}
	}

	holdings, err := exchange.GetHoldings(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s holdings:\n", exchange.Info().FriendlyName)
	for _, h := range holdings {
		fmt.Printf("  %s: %s\n", h.Currency, h.Amount)
	}
	return nil
}
