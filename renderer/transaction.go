package renderer

import (
	"fmt"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// Transaction renders a transaction to a string.
func Transaction(tx finance.Transaction) string {
	switch v := tx.(type) {
	case finance.Buy:
		return fmt.Sprintf("Bought %s %s at %s for %s", v.Quantity, v.Symbol, v.Price, v.Cost())
	case finance.Sell:
		return fmt.Sprintf("Sold %s %s at %s for %s", v.Quantity, v.Symbol, v.Price, v.Proceeds())
	case finance.Credit:
		return fmt.Sprintf("Credited %s to %s", v.Amount, v.Account)
	case finance.Debit:
		return fmt.Sprintf("Debited %s from %s", v.Amount, v.Account)
	case finance.TransferOut:
		return fmt.Sprintf("Transferred %s from %s to %s", v.Amount, v.Account, v.Counterparty)
	case finance.TransferIn:
		return fmt.Sprintf("Received %s into %s from %s", v.Amount, v.Account, v.Counterparty)
	default:
		return string(tx.What())
	}
}
