package report

import (
	"fmt"
	"iter"

	"github.com/xuri/excelize/v2"

	finance "github.com/shobhitag11/StockMarketLogger"
)

// Workbook builds an xlsx export of both ledgers, one sheet per table and
// per log, and returns the file bytes.
func Workbook(stocks *finance.StockLedger, bank *finance.BankLedger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	style, err := headerStyle(f)
	if err != nil {
		return nil, err
	}

	if err := holdingsSheet(f, style, stocks.Holdings()); err != nil {
		return nil, err
	}
	if err := tradesSheet(f, style, stocks.History()); err != nil {
		return nil, err
	}
	if err := accountsSheet(f, style, bank.Accounts()); err != nil {
		return nil, err
	}
	if err := movementsSheet(f, style, bank.History()); err != nil {
		return nil, err
	}
	if err := securitiesSheet(f, style, stocks.Securities()); err != nil {
		return nil, err
	}

	// The default sheet excelize creates is not part of the export.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
}

// newSheet creates a sheet and writes its styled header row.
func newSheet(f *excelize.File, name string, style int, headers []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(name, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(name, "A1", last, style)
}

func holdingsSheet(f *excelize.File, style int, holdings iter.Seq[finance.Holding]) error {
	const name = "Holdings"
	if err := newSheet(f, name, style, []string{"Stock", "Broker", "Quantity", "Average Cost", "Invested", "Realized", "Updated"}); err != nil {
		return err
	}
	row := 2
	for h := range holdings {
		_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), h.Symbol)
		_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), h.Broker)
		_ = f.SetCellValue(name, fmt.Sprintf("C%d", row), h.Quantity.AsFloat())
		_ = f.SetCellValue(name, fmt.Sprintf("D%d", row), h.AvgCost.AsFloat())
		_ = f.SetCellValue(name, fmt.Sprintf("E%d", row), h.Invested.AsFloat())
		_ = f.SetCellValue(name, fmt.Sprintf("F%d", row), h.Realized.AsFloat())
		_ = f.SetCellStr(name, fmt.Sprintf("G%d", row), h.Updated.String())
		row++
	}
	return nil
}

func tradesSheet(f *excelize.File, style int, trades iter.Seq2[int, finance.Transaction]) error {
	const name = "Trades"
	if err := newSheet(f, name, style, []string{"Date", "Stock", "Action", "Quantity", "Share Price", "Total Value", "Broker", "Memo"}); err != nil {
		return err
	}
	row := 2
	for _, tx := range trades {
		switch v := tx.(type) {
		case finance.Buy:
			_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), v.When().String())
			_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), v.Symbol)
			_ = f.SetCellStr(name, fmt.Sprintf("C%d", row), "buy")
			_ = f.SetCellValue(name, fmt.Sprintf("D%d", row), v.Quantity.AsFloat())
			_ = f.SetCellValue(name, fmt.Sprintf("E%d", row), v.Price.AsFloat())
			_ = f.SetCellValue(name, fmt.Sprintf("F%d", row), v.Cost().AsFloat())
			_ = f.SetCellStr(name, fmt.Sprintf("G%d", row), v.Broker)
			_ = f.SetCellStr(name, fmt.Sprintf("H%d", row), v.Rationale())
		case finance.Sell:
			_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), v.When().String())
			_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), v.Symbol)
			_ = f.SetCellStr(name, fmt.Sprintf("C%d", row), "sell")
			_ = f.SetCellValue(name, fmt.Sprintf("D%d", row), v.Quantity.AsFloat())
			_ = f.SetCellValue(name, fmt.Sprintf("E%d", row), v.Price.AsFloat())
			_ = f.SetCellValue(name, fmt.Sprintf("F%d", row), v.Proceeds().AsFloat())
			_ = f.SetCellStr(name, fmt.Sprintf("G%d", row), v.Broker)
			_ = f.SetCellStr(name, fmt.Sprintf("H%d", row), v.Rationale())
		default:
			_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), tx.When().String())
			_ = f.SetCellStr(name, fmt.Sprintf("C%d", row), string(tx.What()))
		}
		row++
	}
	return nil
}

func accountsSheet(f *excelize.File, style int, accounts iter.Seq[finance.BankAccount]) error {
	const name = "Accounts"
	if err := newSheet(f, name, style, []string{"Account", "Label", "Balance", "Opened"}); err != nil {
		return err
	}
	row := 2
	for a := range accounts {
		_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), a.Account)
		_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), a.Label)
		_ = f.SetCellValue(name, fmt.Sprintf("C%d", row), a.Balance.AsFloat())
		_ = f.SetCellStr(name, fmt.Sprintf("D%d", row), a.Opened.String())
		row++
	}
	return nil
}

func movementsSheet(f *excelize.File, style int, entries iter.Seq2[int, finance.Transaction]) error {
	const name = "Movements"
	if err := newSheet(f, name, style, []string{"Date", "Account", "Action", "Amount", "Counterparty", "Memo"}); err != nil {
		return err
	}
	row := 2
	for _, tx := range entries {
		switch v := tx.(type) {
		case finance.Credit:
			_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), v.When().String())
			_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), v.Account)
			_ = f.SetCellStr(name, fmt.Sprintf("C%d", row), "credit")
			_ = f.SetCellValue(name, fmt.Sprintf("D%d", row), v.Amount.AsFloat())
			_ = f.SetCellStr(name, fmt.Sprintf("F%d", row), v.Rationale())
		case finance.Debit:
			_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), v.When().String())
			_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), v.Account)
			_ = f.SetCellStr(name, fmt.Sprintf("C%d", row), "debit")
			_ = f.SetCellValue(name, fmt.Sprintf("D%d", row), v.Amount.Neg().AsFloat())
			_ = f.SetCellStr(name, fmt.Sprintf("F%d", row), v.Rationale())
		case finance.TransferOut:
			_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), v.When().String())
			_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), v.Account)
			_ = f.SetCellStr(name, fmt.Sprintf("C%d", row), "transfer-out")
			_ = f.SetCellValue(name, fmt.Sprintf("D%d", row), v.Amount.Neg().AsFloat())
			_ = f.SetCellStr(name, fmt.Sprintf("E%d", row), v.Counterparty)
			_ = f.SetCellStr(name, fmt.Sprintf("F%d", row), v.Rationale())
		case finance.TransferIn:
			_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), v.When().String())
			_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), v.Account)
			_ = f.SetCellStr(name, fmt.Sprintf("C%d", row), "transfer-in")
			_ = f.SetCellValue(name, fmt.Sprintf("D%d", row), v.Amount.AsFloat())
			_ = f.SetCellStr(name, fmt.Sprintf("E%d", row), v.Counterparty)
			_ = f.SetCellStr(name, fmt.Sprintf("F%d", row), v.Rationale())
		}
		row++
	}
	return nil
}

func securitiesSheet(f *excelize.File, style int, securities iter.Seq[finance.Security]) error {
	const name = "Securities"
	if err := newSheet(f, name, style, []string{"Symbol", "Name"}); err != nil {
		return err
	}
	row := 2
	for sec := range securities {
		_ = f.SetCellStr(name, fmt.Sprintf("A%d", row), sec.Symbol())
		_ = f.SetCellStr(name, fmt.Sprintf("B%d", row), sec.Name())
		row++
	}
	return nil
}
