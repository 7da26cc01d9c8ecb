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

// --- Buy Command ---

type buyCmd struct {
	symbol   string
	quantity int64
	price    float64
	currency string
	broker   string
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase of shares" }
func (*buyCmd) Usage() string {
	return `sml buy -s <symbol> -q <quantity> -p <price> [-c <currency>] [-b <broker>] [-m <memo>]

  Records a purchase. The position's average cost is re-weighted over the
  existing shares and the new lot. An unknown symbol is declared in the
  catalog on the fly.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares, whole")
	f.Float64Var(&c.price, "p", 0, "Price paid per share")
	f.StringVar(&c.currency, "c", "", "Currency of the price. Defaults to the ledger currency")
	f.StringVar(&c.broker, "b", "", "Broker the trade went through")
	f.StringVar(&c.memo, "m", "", "An optional rationale for the trade")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := ledger.Buy(c.symbol, finance.Q(c.quantity), finance.M(c.price, c.currency), c.broker, c.memo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording the purchase: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("✅", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}

// --- Sell Command ---

type sellCmd struct {
	symbol   string
	quantity int64
	price    float64
	currency string
	broker   string
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale of shares" }
func (*sellCmd) Usage() string {
	return `sml sell -s <symbol> -q <quantity> -p <price> [-c <currency>] [-b <broker>] [-m <memo>]

  Records a sale. Selling more shares than held is refused. The realized
  gain is booked against the position's average cost; the average cost
  itself does not move on a sale.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares, whole")
	f.Float64Var(&c.price, "p", 0, "Price obtained per share")
	f.StringVar(&c.currency, "c", "", "Currency of the price. Defaults to the ledger currency")
	f.StringVar(&c.broker, "b", "", "Broker the trade went through")
	f.StringVar(&c.memo, "m", "", "An optional rationale for the trade")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := ledger.Sell(c.symbol, finance.Q(c.quantity), finance.M(c.price, c.currency), c.broker, c.memo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording the sale: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("✅", renderer.Transaction(tx))
	if holding, ok := ledger.Holding(c.symbol); ok {
		fmt.Printf("Realized so far on %s: %s\n", holding.Symbol, holding.Realized.SignedString())
	}
	return subcommands.ExitSuccess
}
