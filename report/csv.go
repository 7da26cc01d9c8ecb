// Package report exports ledger state to spreadsheet files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// money renders an amount as a plain number cell. Spreadsheets want numbers,
// not currency strings.
func money(m finance.Money) string { return fmt.Sprintf("%.2f", m.AsFloat()) }

// HoldingsCSV writes the positions table as CSV.
func HoldingsCSV(w io.Writer, holdings iter.Seq[finance.Holding]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Stock", "Broker", "Quantity", "Average Cost", "Invested", "Realized", "Updated"}); err != nil {
		return err
	}
	for h := range holdings {
		record := []string{
			h.Symbol,
			h.Broker,
			h.Quantity.String(),
			money(h.AvgCost),
			money(h.Invested),
			money(h.Realized),
			h.Updated.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TradesCSV writes the stock log as CSV, one row per trade in ledger order.
func TradesCSV(w io.Writer, trades iter.Seq2[int, finance.Transaction]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Stock", "Action", "Quantity", "Share Price", "Total Value", "Broker", "Memo"}); err != nil {
		return err
	}
	for _, tx := range trades {
		var record []string
		switch v := tx.(type) {
		case finance.Buy:
			record = []string{v.When().String(), v.Symbol, "buy", v.Quantity.String(), money(v.Price), money(v.Cost()), v.Broker, v.Rationale()}
		case finance.Sell:
			record = []string{v.When().String(), v.Symbol, "sell", v.Quantity.String(), money(v.Price), money(v.Proceeds()), v.Broker, v.Rationale()}
		default:
			record = []string{tx.When().String(), "", string(tx.What()), "", "", "", "", ""}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// AccountsCSV writes the accounts table as CSV.
func AccountsCSV(w io.Writer, accounts iter.Seq[finance.BankAccount]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Account", "Label", "Balance", "Opened"}); err != nil {
		return err
	}
	for a := range accounts {
		if err := cw.Write([]string{a.Account, a.Label, money(a.Balance), a.Opened.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MovementsCSV writes the bank log as CSV, one row per entry in ledger order.
// Debits and outgoing transfers carry a negative amount so the column sums to
// the net movement.
func MovementsCSV(w io.Writer, entries iter.Seq2[int, finance.Transaction]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Account", "Action", "Amount", "Counterparty", "Memo"}); err != nil {
		return err
	}
	for _, tx := range entries {
		var record []string
		switch v := tx.(type) {
		case finance.Credit:
			record = []string{v.When().String(), v.Account, "credit", money(v.Amount), "", v.Rationale()}
		case finance.Debit:
			record = []string{v.When().String(), v.Account, "debit", money(v.Amount.Neg()), "", v.Rationale()}
		case finance.TransferOut:
			record = []string{v.When().String(), v.Account, "transfer-out", money(v.Amount.Neg()), v.Counterparty, v.Rationale()}
		case finance.TransferIn:
			record = []string{v.When().String(), v.Account, "transfer-in", money(v.Amount), v.Counterparty, v.Rationale()}
		default:
			record = []string{tx.When().String(), "", string(tx.What()), "", "", ""}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
