package cmd

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	finance "github.com/shobhitag11/StockMarketLogger"
	"github.com/shobhitag11/StockMarketLogger/renderer"
)

// priceFlag collects repeated -p SYMBOL=PRICE flags into a price map.
type priceFlag map[string]finance.Money

func (p priceFlag) String() string {
	var parts []string
	for _, symbol := range slices.Sorted(maps.Keys(p)) {
		parts = append(parts, fmt.Sprintf("%s=%s", symbol, p[symbol]))
	}
	return strings.Join(parts, ",")
}

func (p priceFlag) Set(s string) error {
	symbol, value, found := strings.Cut(s, "=")
	if !found {
		return fmt.Errorf("expected SYMBOL=PRICE, got %q", s)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("price in %q is not a number: %w", s, err)
	}
	p[strings.ToUpper(strings.TrimSpace(symbol))] = finance.M(d, *currency)
	return nil
}

// --- Metrics Command ---

type metricsCmd struct {
	prices priceFlag
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "compute portfolio value and gains at given prices" }
func (*metricsCmd) Usage() string {
	return `sml metrics -p <symbol>=<price> [-p <symbol>=<price> ...]

  Values the open positions at the given prices and displays invested
  amount, market value, unrealized and realized gains, per position and
  in total. Every symbol still held needs a price; closed positions do
  not.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	if c.prices == nil {
		c.prices = make(priceFlag)
	}
	f.Var(c.prices, "p", "Current price as SYMBOL=PRICE, repeatable")
}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	valuation, err := finance.Valuate(ledger.Holdings(), c.prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ValuationMarkdown(valuation))
	return subcommands.ExitSuccess
}
