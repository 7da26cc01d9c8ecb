package cmd

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"os"

	"github.com/google/subcommands"

	finance "github.com/shobhitag11/StockMarketLogger"
	"github.com/shobhitag11/StockMarketLogger/renderer"
)

// numbered is one log entry with its position in the log, kept so that
// head/tail clipping does not renumber the rows.
type numbered struct {
	i  int
	tx finance.Transaction
}

// collect drains a history sequence so it can be clipped.
func collect(history iter.Seq2[int, finance.Transaction]) []numbered {
	var entries []numbered
	for i, tx := range history {
		entries = append(entries, numbered{i, tx})
	}
	return entries
}

// clip keeps the first head entries, or the last tail ones. Zero means no
// clipping on that side.
func clip(entries []numbered, head, tail int) []numbered {
	if head > 0 && len(entries) > head {
		entries = entries[:head]
	}
	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}
	return entries
}

func replay(entries []numbered) iter.Seq2[int, finance.Transaction] {
	return func(yield func(int, finance.Transaction) bool) {
		for _, e := range entries {
			if !yield(e.i, e.tx) {
				return
			}
		}
	}
}

// --- History Command ---

type historyCmd struct {
	symbol string
	broker string
	head   int
	tail   int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the trade log" }
func (*historyCmd) Usage() string {
	return `sml history [-s <symbol>] [-b <broker>] [-head <n> | -tail <n>]

  Displays the trades in the order they were recorded, oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Only trades in this symbol")
	f.StringVar(&c.broker, "b", "", "Only trades through this broker")
	f.IntVar(&c.head, "head", 0, "Only the first n trades")
	f.IntVar(&c.tail, "tail", 0, "Only the last n trades")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail are exclusive")
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenStockLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the stock ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var filters []func(finance.Transaction) bool
	if c.symbol != "" {
		filters = append(filters, finance.BySymbol(c.symbol))
	}
	if c.broker != "" {
		filters = append(filters, finance.ByBroker(c.broker))
	}

	entries := clip(collect(ledger.History(filters...)), c.head, c.tail)
	printMarkdown(renderer.TradesMarkdown(replay(entries)))
	return subcommands.ExitSuccess
}

// --- Bank Log Command ---

type banklogCmd struct {
	account string
	head    int
	tail    int
}

func (*banklogCmd) Name() string     { return "banklog" }
func (*banklogCmd) Synopsis() string { return "display the bank movement log" }
func (*banklogCmd) Usage() string {
	return `sml banklog [-a <account>] [-head <n> | -tail <n>]

  Displays the credits, debits and transfer legs in the order they were
  recorded, oldest first.
`
}

func (c *banklogCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Only movements on this account")
	f.IntVar(&c.head, "head", 0, "Only the first n movements")
	f.IntVar(&c.tail, "tail", 0, "Only the last n movements")
}

func (c *banklogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail are exclusive")
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var filters []func(finance.Transaction) bool
	if c.account != "" {
		filters = append(filters, finance.ByAccount(c.account))
	}

	entries := clip(collect(ledger.History(filters...)), c.head, c.tail)
	printMarkdown(renderer.MovementsMarkdown(replay(entries)))
	return subcommands.ExitSuccess
}
