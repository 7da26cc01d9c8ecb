package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	finance "github.com/shobhitag11/StockMarketLogger"
	"github.com/shobhitag11/StockMarketLogger/report"
)

// --- Import Command ---

type importCmd struct {
	account string
	file    string
	rows    string
	time    string
	kind    string
	amount  string
	desc    string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a bank statement into an account" }
func (*importCmd) Usage() string {
	return `sml import -a <account> -f <statement.json> [-rows <path>] [-time <path>] [-kind <path>] [-amount <path>] [-desc <path>]

  Reads a JSON bank statement and applies its entries to the account as
  credits and debits, all or nothing. The path flags are JSONPath
  expressions locating the fields; the defaults match statements shaped
  like {"transactions": [{"date", "type", "amount", "description"}]}.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	m := finance.DefaultStatementMapping()
	f.StringVar(&c.account, "a", "", "Account receiving the statement entries")
	f.StringVar(&c.file, "f", "", "Statement file (JSON)")
	f.StringVar(&c.rows, "rows", m.Rows, "JSONPath to the list of records")
	f.StringVar(&c.time, "time", m.Time, "JSONPath to the timestamp within a record")
	f.StringVar(&c.kind, "kind", m.Kind, "JSONPath to the credit/debit marker within a record")
	f.StringVar(&c.amount, "amount", m.Amount, "JSONPath to the amount within a record")
	f.StringVar(&c.desc, "desc", m.Memo, "JSONPath to the description within a record")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	fh, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the statement: %v\n", err)
		return subcommands.ExitFailure
	}
	defer fh.Close()

	mapping := finance.StatementMapping{
		Rows:   c.rows,
		Time:   c.time,
		Kind:   c.kind,
		Amount: c.amount,
		Memo:   c.desc,
	}
	entries, err := finance.ReadStatement(fh, mapping, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading the statement: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := OpenBankLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading the bank ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	txs, err := ledger.ImportStatement(c.account, entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing the statement: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Imported %d entries into %s\n", len(txs), c.account)
	if balance, err := ledger.Balance(c.account); err == nil {
		fmt.Printf("New balance: %s\n", balance)
	}
	return subcommands.ExitSuccess
}

// --- Export Command ---

type exportCmd struct {
	format string
	what   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledgers to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `sml export [-format xlsx|csv] [-what holdings|trades|accounts|movements] [-o <file>]

  Exports the ledgers. The xlsx format writes one workbook with a sheet
  per table; the csv format writes the one table named by -what, to
  stdout unless -o is given.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "xlsx", "Export format, xlsx or csv")
	f.StringVar(&c.what, "what", "", "Table to export as csv: holdings, trades, accounts or movements")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to sml-export.xlsx for xlsx, stdout for csv")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	switch c.format {
	case "xlsx":
		out := c.output
		if out == "" {
			out = "sml-export.xlsx"
		}
		workbook, err := report.Workbook(stocks, bank)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building the workbook: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(out, workbook, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", out, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("✅ Successfully exported to %q\n", out)
		return subcommands.ExitSuccess

	case "csv":
		var w io.Writer = os.Stdout
		if c.output != "" {
			fh, err := os.Create(c.output)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
				return subcommands.ExitFailure
			}
			defer fh.Close()
			w = fh
		}
		switch c.what {
		case "holdings":
			err = report.HoldingsCSV(w, stocks.Holdings())
		case "trades":
			err = report.TradesCSV(w, stocks.History())
		case "accounts":
			err = report.AccountsCSV(w, bank.Accounts())
		case "movements":
			err = report.MovementsCSV(w, bank.History())
		default:
			f.Usage()
			return subcommands.ExitUsageError
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", c.what, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess

	default:
		f.Usage()
		return subcommands.ExitUsageError
	}
}
