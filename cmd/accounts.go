package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shobhitag11/StockMarketLogger/renderer"
)

// --- Accounts Command ---

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "display every bank account and its balance" }
func (*accountsCmd) Usage() string {
	return `sml accounts

  Displays the bank accounts with their balances and a total.
`
}

func (*accountsCmd) SetFlags(*flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AccountsMarkdown(ledger.Accounts()))
	return subcommands.ExitSuccess
}

// --- Balance Command ---

type balanceCmd struct {
	account string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the balance of one account" }
func (*balanceCmd) Usage() string {
	return `sml balance -a <account>

  Displays the current balance of the account.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account identifier")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	balance, err := ledger.Balance(c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(balance)
	return subcommands.ExitSuccess
}
