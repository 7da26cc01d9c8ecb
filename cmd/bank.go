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

// --- Open Account Command ---

type openCmd struct {
	account  string
	label    string
	balance  float64
	currency string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "add a bank account to the ledger" }
func (*openCmd) Usage() string {
	return `sml open -a <account> [-l <label>] [-b <balance>] [-c <currency>]

  Adds a bank account. The opening balance is recorded on the account
  itself, not as a movement in the log.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account identifier, e.g. HDFC-1234")
	f.StringVar(&c.label, "l", "", "Human friendly label for the account")
	f.Float64Var(&c.balance, "b", 0, "Opening balance")
	f.StringVar(&c.currency, "c", "", "Currency of the balance. Defaults to the ledger currency")
}

func (c *openCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.balance < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	acc, err := ledger.OpenAccount(c.account, c.label, finance.M(c.balance, c.currency))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the account: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Opened account %s with balance %s\n", acc.Account, acc.Balance)
	return subcommands.ExitSuccess
}

// --- Credit Command ---

type creditCmd struct {
	account  string
	value    float64
	currency string
	memo     string
}

func (*creditCmd) Name() string     { return "credit" }
func (*creditCmd) Synopsis() string { return "record money flowing into an account" }
func (*creditCmd) Usage() string {
	return `sml credit -a <account> -v <value> [-c <currency>] [-m <memo>]

  Records a deposit into the account and bumps its balance.
`
}

func (c *creditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account identifier")
	f.Float64Var(&c.value, "v", 0, "Amount to credit")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the ledger currency")
	f.StringVar(&c.memo, "m", "", "An optional description, e.g. salary")
}

func (c *creditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.value <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := ledger.Credit(c.account, finance.M(c.value, c.currency), c.memo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording the credit: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("✅", renderer.Transaction(tx))
	if balance, err := ledger.Balance(c.account); err == nil {
		fmt.Printf("New balance: %s\n", balance)
	}
	return subcommands.ExitSuccess
}

// --- Debit Command ---

type debitCmd struct {
	account  string
	value    float64
	currency string
	memo     string
}

func (*debitCmd) Name() string     { return "debit" }
func (*debitCmd) Synopsis() string { return "record money flowing out of an account" }
func (*debitCmd) Usage() string {
	return `sml debit -a <account> -v <value> [-c <currency>] [-m <memo>]

  Records a withdrawal from the account. Overdrawing is refused.
`
}

func (c *debitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account identifier")
	f.Float64Var(&c.value, "v", 0, "Amount to debit")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the ledger currency")
	f.StringVar(&c.memo, "m", "", "An optional description, e.g. rent")
}

func (c *debitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.value <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := ledger.Debit(c.account, finance.M(c.value, c.currency), c.memo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording the debit: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("✅", renderer.Transaction(tx))
	if balance, err := ledger.Balance(c.account); err == nil {
		fmt.Printf("New balance: %s\n", balance)
	}
	return subcommands.ExitSuccess
}

// --- Transfer Command ---

type transferCmd struct {
	from  string
	to    string
	value float64
	memo  string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts" }
func (*transferCmd) Usage() string {
	return `sml transfer -from <account> -to <account> -v <value> [-m <memo>]

  Moves money between two accounts of the ledger. Both legs are recorded
  under one transfer id, so the log always balances.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Account the money leaves")
	f.StringVar(&c.to, "to", "", "Account the money enters")
	f.Float64Var(&c.value, "v", 0, "Amount to move, in the ledger currency")
	f.StringVar(&c.memo, "m", "", "An optional description")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.value <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	out, _, err := ledger.Transfer(c.from, c.to, finance.M(c.value, ""), c.memo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording the transfer: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("✅", renderer.Transaction(out))
	return subcommands.ExitSuccess
}
