package renderer

import (
	"fmt"
	"io"
	"iter"
	"strings"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// HoldingsMarkdown renders the current positions as a markdown table.
func HoldingsMarkdown(holdings iter.Seq[finance.Holding]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")

	rows := 0
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| Symbol | Broker | Quantity | Avg Cost | Invested | Realized | Updated |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|:---|")
		for h := range holdings {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s |\n",
				h.Symbol,
				h.Broker,
				h.Quantity,
				h.AvgCost,
				h.Invested,
				h.Realized.SignedString(),
				h.Updated,
			)
			rows++
		}
		return rows > 0
	})
	if rows == 0 {
		fmt.Fprintln(&b, "No stocks recorded yet.")
	}
	return b.String()
}

// CatalogMarkdown renders the declared securities as a markdown table.
func CatalogMarkdown(securities iter.Seq[finance.Security]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Securities\n\n")
	fmt.Fprintln(&b, "| Symbol | Name |")
	fmt.Fprintln(&b, "|:---|:---|")
	for sec := range securities {
		fmt.Fprintf(&b, "| %s | %s |\n", sec.Symbol(), sec.Name())
	}
	return b.String()
}
