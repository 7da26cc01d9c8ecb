package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	finance "github.com/shobhitag11/StockMarketLogger"
	"github.com/shobhitag11/StockMarketLogger/renderer"
)

// --- Declare Command ---

type declareCmd struct {
	symbol string
	name   string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare a security in the catalog" }
func (*declareCmd) Usage() string {
	return `sml declare -s <symbol> [-n <name>]

  Declares a security so trades can name it. Buying an unknown symbol
  declares it on the fly, so this command mostly records the long name.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol, e.g. RELIANCE")
	f.StringVar(&c.name, "n", "", "Long name, e.g. Reliance Industries Ltd")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := ledger.AddSecurity(finance.NewSecurity(c.symbol, c.name)); err != nil {
		fmt.Fprintf(os.Stderr, "Error declaring the security: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully declared %q\n", c.symbol)
	return subcommands.ExitSuccess
}

// --- Catalog Command ---

type catalogCmd struct{}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "display the securities catalog" }
func (*catalogCmd) Usage() string {
	return `sml catalog

  Displays the declared securities.
`
}

func (*catalogCmd) SetFlags(*flag.FlagSet) {}

func (c *catalogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.CatalogMarkdown(ledger.Securities()))
	return subcommands.ExitSuccess
}
