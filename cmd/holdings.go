package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shobhitag11/StockMarketLogger/renderer"
)

// --- Holdings Command ---

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the current stock positions" }
func (*holdingsCmd) Usage() string {
	return `sml holdings

  Displays every position the trade log has touched, with its quantity,
  weighted average cost, invested amount and realized gains. Closed
  positions stay listed with a quantity of zero.
`
}

func (*holdingsCmd) SetFlags(*flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingsMarkdown(ledger.Holdings()))
	return subcommands.ExitSuccess
}
