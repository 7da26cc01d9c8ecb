package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shobhitag11/StockMarketLogger/renderer"
)

// --- Verify Command ---

type verifyCmd struct{}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "audit the ledger files against their logs" }
func (*verifyCmd) Usage() string {
	return `sml verify

  Replays both transaction logs and reports where the stored tables
  disagree. The logs are the source of truth; a drift means a file was
  edited by hand or a save was interrupted. Exits with a failure status
  when anything drifted.
`
}

func (*verifyCmd) SetFlags(*flag.FlagSet) {}

func (c *verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stocks, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	bank, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	stockCheck, err := stocks.Verify()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying the trade log: %v\n", err)
		return subcommands.ExitFailure
	}
	bankCheck := bank.Verify()

	printMarkdown(renderer.StockCheckMarkdown(stockCheck) + "\n" + renderer.BankCheckMarkdown(bankCheck))

	if !stockCheck.Clean() || !bankCheck.Clean() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
