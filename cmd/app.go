// Package cmd implements the CLI application to keep the stock and bank ledgers.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	finance "github.com/shobhitag11/StockMarketLogger"
	"github.com/shobhitag11/StockMarketLogger/config"
	"github.com/shobhitag11/StockMarketLogger/logging"
)

// Register the subcommands.
//
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&holdingsCmd{}, "trading")
	c.Register(&historyCmd{}, "trading")
	c.Register(&metricsCmd{}, "trading")

	c.Register(&declareCmd{}, "catalog")
	c.Register(&catalogCmd{}, "catalog")

	c.Register(&openCmd{}, "banking")
	c.Register(&creditCmd{}, "banking")
	c.Register(&debitCmd{}, "banking")
	c.Register(&transferCmd{}, "banking")
	c.Register(&balanceCmd{}, "banking")
	c.Register(&accountsCmd{}, "banking")
	c.Register(&banklogCmd{}, "banking")

	c.Register(&importCmd{}, "files")
	c.Register(&exportCmd{}, "files")
	c.Register(&verifyCmd{}, "files")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global vaariables.

var cfg = config.MustLoad()

var (
	dataDir  = flag.String("data", cfg.DataDir, "Directory holding the ledger files")
	currency = flag.String("currency", cfg.Currency, "Currency assumed for amounts given without one")
)

// InitLogging configures the global logger from the environment.
func InitLogging() {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.FilePath = cfg.Log.File
	log.Logger = logging.New(lc)
}

// OpenStore opens the directory both ledgers persist to.
func OpenStore() (*finance.Store, error) {
	return finance.OpenStore(*dataDir)
}

// OpenStockLedger loads the stock ledger from the data directory.
func OpenStockLedger() (*finance.StockLedger, error) {
	store, err := OpenStore()
	if err != nil {
		return nil, err
	}
	return finance.NewStockLedger(store, *currency)
}

// OpenBankLedger loads the bank ledger from the data directory.
func OpenBankLedger() (*finance.BankLedger, error) {
	store, err := OpenStore()
	if err != nil {
		return nil, err
	}
	return finance.NewBankLedger(store, *currency)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
