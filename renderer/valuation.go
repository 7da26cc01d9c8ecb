package renderer

import (
	"fmt"
	"strings"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// ValuationMarkdown renders a portfolio valuation as a markdown report.
func ValuationMarkdown(v *finance.Valuation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Valuation\n\n")

	if len(v.Securities) == 0 {
		fmt.Fprintln(&b, "No stocks recorded yet.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Avg Cost | Price | Invested | Market Value | Unrealized | Realized | P/L |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, row := range v.Securities {
		price := row.Price.String()
		if row.Quantity.IsZero() {
			price = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			row.Symbol,
			row.Quantity,
			row.AvgCost,
			price,
			row.Invested,
			row.MarketValue,
			row.Unrealized.SignedString(),
			row.Realized.SignedString(),
			row.ProfitLoss().SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | %s | %s | %s | %s | %s |\n",
		v.Invested,
		v.MarketValue,
		v.Unrealized.SignedString(),
		v.Realized.SignedString(),
		v.ProfitLoss().SignedString(),
	)

	fmt.Fprintf(&b, "\n**Profit/Loss: %s**\n", v.ProfitLoss().SignedString())
	return b.String()
}
