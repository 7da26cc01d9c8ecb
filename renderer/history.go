package renderer

import (
	"fmt"
	"io"
	"iter"
	"strings"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// TradesMarkdown renders stock log entries as a markdown table, in ledger
// order, keyed by their position in the log.
func TradesMarkdown(trades iter.Seq2[int, finance.Transaction]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Trades\n\n")

	rows := 0
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| # | Time | Action | Symbol | Quantity | Price | Value | Broker | Memo |")
		fmt.Fprintln(w, "|---:|:---|:---|:---|---:|---:|---:|:---|:---|")
		for i, tx := range trades {
			switch v := tx.(type) {
			case finance.Buy:
				fmt.Fprintf(w, "| %d | %s | buy | %s | %s | %s | %s | %s | %s |\n",
					i, v.When(), v.Symbol, v.Quantity, v.Price, v.Cost(), v.Broker, v.Rationale())
			case finance.Sell:
				fmt.Fprintf(w, "| %d | %s | sell | %s | %s | %s | %s | %s | %s |\n",
					i, v.When(), v.Symbol, v.Quantity, v.Price, v.Proceeds(), v.Broker, v.Rationale())
			default:
				fmt.Fprintf(w, "| %d | %s | %s | | | | | | |\n", i, tx.When(), tx.What())
			}
			rows++
		}
		return rows > 0
	})
	if rows == 0 {
		fmt.Fprintln(&b, "No trades recorded yet.")
	}
	return b.String()
}

// MovementsMarkdown renders bank log entries as a markdown table, in ledger
// order, keyed by their position in the log.
func MovementsMarkdown(entries iter.Seq2[int, finance.Transaction]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Movements\n\n")

	rows := 0
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintln(w, "| # | Time | Entry | Account | Amount | Counterparty | Memo |")
		fmt.Fprintln(w, "|---:|:---|:---|:---|---:|:---|:---|")
		for i, tx := range entries {
			switch v := tx.(type) {
			case finance.Credit:
				fmt.Fprintf(w, "| %d | %s | credit | %s | %s | | %s |\n",
					i, v.When(), v.Account, v.Amount.SignedString(), v.Rationale())
			case finance.Debit:
				fmt.Fprintf(w, "| %d | %s | debit | %s | %s | | %s |\n",
					i, v.When(), v.Account, v.Amount.Neg().SignedString(), v.Rationale())
			case finance.TransferOut:
				fmt.Fprintf(w, "| %d | %s | transfer out | %s | %s | %s | %s |\n",
					i, v.When(), v.Account, v.Amount.Neg().SignedString(), v.Counterparty, v.Rationale())
			case finance.TransferIn:
				fmt.Fprintf(w, "| %d | %s | transfer in | %s | %s | %s | %s |\n",
					i, v.When(), v.Account, v.Amount.SignedString(), v.Counterparty, v.Rationale())
			default:
				fmt.Fprintf(w, "| %d | %s | %s | | | | |\n", i, tx.When(), tx.What())
			}
			rows++
		}
		return rows > 0
	})
	if rows == 0 {
		fmt.Fprintln(&b, "No movements recorded yet.")
	}
	return b.String()
}
