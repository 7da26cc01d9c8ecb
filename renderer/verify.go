package renderer

import (
	"fmt"
	"strings"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// StockCheckMarkdown renders the result of auditing the stock ledger files.
func StockCheckMarkdown(c *finance.StockCheck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Stock Ledger Audit\n\n")
	fmt.Fprintf(&b, "%d trades replayed against the holdings table.\n\n", c.Trades)

	if c.Clean() {
		fmt.Fprintln(&b, "✅ The trade log and the holdings table agree.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Field | Stored | Derived |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, d := range c.Drifts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", d.Key, d.Field, d.Stored, d.Derived)
	}
	fmt.Fprintf(&b, "\n❌ %d field(s) drifted. The log is the source of truth.\n", len(c.Drifts))
	return b.String()
}

// BankCheckMarkdown renders the result of auditing the bank ledger files.
func BankCheckMarkdown(c *finance.BankCheck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Bank Ledger Audit\n\n")
	fmt.Fprintf(&b, "%d log entries examined.\n\n", c.Entries)

	for _, id := range c.Unpaired {
		fmt.Fprintf(&b, "- ❌ transfer %s does not have exactly two matching legs\n", id)
	}
	for _, account := range c.Unknown {
		fmt.Fprintf(&b, "- ❌ account %s appears in the log but not in the table\n", account)
	}

	if len(c.Openings) > 0 {
		fmt.Fprintln(&b, "| Account | Opening Balance |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, o := range c.Openings {
			mark := ""
			if o.Opening.IsNegative() {
				mark = " ❌"
			}
			fmt.Fprintf(&b, "| %s | %s%s |\n", o.Account, o.Opening, mark)
		}
		fmt.Fprintln(&b)
	}

	if c.Clean() {
		fmt.Fprintln(&b, "✅ The movement log and the accounts table agree.")
	} else {
		fmt.Fprintln(&b, "❌ The bank ledger files disagree. The log is the source of truth.")
	}
	return b.String()
}
