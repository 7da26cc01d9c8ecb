package renderer

import (
	"fmt"
	"io"
	"iter"
	"strings"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// AccountsMarkdown renders the bank accounts as a markdown table.
func AccountsMarkdown(accounts iter.Seq[finance.BankAccount]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Accounts\n\n")

	rows := 0
	var total finance.Money
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Account | Label | Balance | Opened |")
		fmt.Fprintln(w, "|:---|:---|---:|:---|")
		for a := range accounts {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", a.Account, a.Label, a.Balance, a.Opened)
			total = total.Add(a.Balance)
			rows++
		}
		fmt.Fprintf(w, "| **Total** | | %s | |\n", total)
		return rows > 0
	})
	if rows == 0 {
		fmt.Fprintln(&b, "No accounts recorded yet.")
	}
	return b.String()
}
