package finance

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// The state files mirror the in-memory tables. They are full-replace
// snapshots: encoding always writes every record, sorted by key, so that two
// saves of the same state produce identical bytes.

// MarshalJSON implements the json.Marshaler interface for Holding.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Optional("broker", h.Broker)
	w.Append("quantity", h.Quantity)
	w.PrefixFrom("avgCost", h.AvgCost)
	w.PrefixFrom("invested", h.Invested)
	w.PrefixFrom("realized", h.Realized)
	w.Append("updated", h.Updated)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Holding.
func (h *Holding) UnmarshalJSON(data []byte) error {
	var temp struct {
		Symbol           string          `json:"symbol"`
		Broker           string          `json:"broker"`
		Quantity         Quantity        `json:"quantity"`
		AvgCostAmount    decimal.Decimal `json:"avgCostAmount"`
		AvgCostCurrency  string          `json:"avgCostCurrency"`
		InvestedAmount   decimal.Decimal `json:"investedAmount"`
		InvestedCurrency string          `json:"investedCurrency"`
		RealizedAmount   decimal.Decimal `json:"realizedAmount"`
		RealizedCurrency string          `json:"realizedCurrency"`
		Updated          Timestamp       `json:"updated"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	h.Symbol = temp.Symbol
	h.Broker = temp.Broker
	h.Quantity = temp.Quantity
	h.AvgCost = M(temp.AvgCostAmount, temp.AvgCostCurrency)
	h.Invested = M(temp.InvestedAmount, temp.InvestedCurrency)
	h.Realized = M(temp.RealizedAmount, temp.RealizedCurrency)
	h.Updated = temp.Updated
	return nil
}

// EncodeHoldings writes the holdings table to w, one JSON record per line,
// sorted by symbol.
func EncodeHoldings(w io.Writer, holdings map[string]Holding) error {
	for _, symbol := range slices.Sorted(maps.Keys(holdings)) {
		if err := encodeLine(w, holdings[symbol]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeHoldings reads a holdings table from r and validates it: every
// record needs a unique symbol and a non-negative quantity.
func DecodeHoldings(r io.Reader) (map[string]Holding, error) {
	holdings := make(map[string]Holding)
	err := decodeLines(r, func(line int, data []byte) error {
		var h Holding
		if err := json.Unmarshal(data, &h); err != nil {
			return err
		}
		if h.Symbol == "" {
			return fmt.Errorf("holding record has no symbol")
		}
		if h.Quantity.IsNegative() {
			return fmt.Errorf("holding %s has negative quantity %s", h.Symbol, h.Quantity)
		}
		if _, dup := holdings[h.Symbol]; dup {
			return fmt.Errorf("holding %s appears twice", h.Symbol)
		}
		holdings[h.Symbol] = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// MarshalJSON implements the json.Marshaler interface for BankAccount.
func (a BankAccount) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("account", a.Account)
	w.Optional("label", a.Label)
	w.PrefixFrom("balance", a.Balance)
	w.Append("opened", a.Opened)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for BankAccount.
func (a *BankAccount) UnmarshalJSON(data []byte) error {
	var temp struct {
		Account         string          `json:"account"`
		Label           string          `json:"label"`
		BalanceAmount   decimal.Decimal `json:"balanceAmount"`
		BalanceCurrency string          `json:"balanceCurrency"`
		Opened          Timestamp       `json:"opened"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	a.Account = temp.Account
	a.Label = temp.Label
	a.Balance = M(temp.BalanceAmount, temp.BalanceCurrency)
	a.Opened = temp.Opened
	return nil
}

// EncodeAccounts writes the accounts table to w, one JSON record per line,
// sorted by account id.
func EncodeAccounts(w io.Writer, accounts map[string]BankAccount) error {
	for _, id := range slices.Sorted(maps.Keys(accounts)) {
		if err := encodeLine(w, accounts[id]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeAccounts reads an accounts table from r and validates it: every
// record needs a unique id and a non-negative balance.
func DecodeAccounts(r io.Reader) (map[string]BankAccount, error) {
	accounts := make(map[string]BankAccount)
	err := decodeLines(r, func(line int, data []byte) error {
		var a BankAccount
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		if a.Account == "" {
			return fmt.Errorf("account record has no id")
		}
		if a.Balance.IsNegative() {
			return fmt.Errorf("account %s has negative balance %s", a.Account, a.Balance)
		}
		if _, dup := accounts[a.Account]; dup {
			return fmt.Errorf("account %s appears twice", a.Account)
		}
		accounts[a.Account] = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// EncodeCatalog writes the security catalog to w, one JSON record per line,
// sorted by symbol.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	for sec := range c.All() {
		if err := encodeLine(w, sec); err != nil {
			return err
		}
	}
	return nil
}

// DecodeCatalog reads a security catalog from r.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	c := NewCatalog()
	err := decodeLines(r, func(line int, data []byte) error {
		var sec Security
		if err := json.Unmarshal(data, &sec); err != nil {
			return err
		}
		return c.Add(sec)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode record: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write record: %w", err)
	}
	return nil
}

func decodeLines(r io.Reader, decode func(line int, data []byte) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := decode(line, []byte(text)); err != nil {
			return fmt.Errorf("invalid record on line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read records: %w", err)
	}
	return nil
}
