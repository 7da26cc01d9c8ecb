package finance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are plain numbers in the JSONL files, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// amountCmd is a decoding helper for entries carrying a flat amount.
type amountCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Money returns the amount as a Money value.
func (t amountCmd) Money() Money { return M(t.Amount, t.Currency) }

// priceCmd is a decoding helper for trade entries carrying a prefixed
// per-share price.
type priceCmd struct {
	PriceAmount   decimal.Decimal `json:"priceAmount"`
	PriceCurrency string          `json:"priceCurrency"`
}

// Money returns the price as a Money value.
func (t priceCmd) Money() Money { return M(t.PriceAmount, t.PriceCurrency) }

// EncodeTransaction writes a single transaction to w as one line of JSON.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not encode %s transaction: %w", tx.What(), err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write %s transaction: %w", tx.What(), err)
	}
	return nil
}

// DecodeStockLog reads a stock transaction log in JSONL format. Empty lines
// are skipped. The append order of the file is preserved: it is the ledger
// order.
func DecodeStockLog(r io.Reader) ([]Transaction, error) {
	return decodeLog(r, decodeStockTransaction)
}

// DecodeBankLog reads a bank transaction log in JSONL format, preserving
// append order.
func DecodeBankLog(r io.Reader) ([]Transaction, error) {
	return decodeLog(r, decodeBankTransaction)
}

func decodeLog(r io.Reader, decode func([]byte) (Transaction, error)) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		tx, err := decode([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("invalid transaction on line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read transaction log: %w", err)
	}
	return txs, nil
}

func decodeStockTransaction(data []byte) (Transaction, error) {
	command, err := decodeCommand(data)
	if err != nil {
		return nil, err
	}
	switch command {
	case CmdBuy:
		var tx Buy
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdSell:
		var tx Sell
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("unknown stock transaction command: %q", command)
	}
}

func decodeBankTransaction(data []byte) (Transaction, error) {
	command, err := decodeCommand(data)
	if err != nil {
		return nil, err
	}
	switch command {
	case CmdCredit:
		var tx Credit
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdDebit:
		var tx Debit
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdTransferOut:
		var tx TransferOut
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	case CmdTransferIn:
		var tx TransferIn
		if err := json.Unmarshal(data, &tx); err != nil {
			return nil, err
		}
		return tx, nil
	default:
		return nil, fmt.Errorf("unknown bank transaction command: %q", command)
	}
}

func decodeCommand(data []byte) (CommandType, error) {
	var identifier struct {
		Command CommandType `json:"command"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return "", err
	}
	return identifier.Command, nil
}
