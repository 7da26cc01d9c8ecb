package finance

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdBuy         CommandType = "buy"
	CmdSell        CommandType = "sell"
	CmdCredit      CommandType = "credit"
	CmdDebit       CommandType = "debit"
	CmdTransferOut CommandType = "transfer-out"
	CmdTransferIn  CommandType = "transfer-in"
)

// Transaction defines the common interface for all entries recorded in the
// stock and bank logs.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "credit").
	When() Timestamp   // When returns the instant the transaction was recorded.
	Equal(Transaction) bool
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "buy", "sell").
	Time    Timestamp   `json:"time"`           // Time is the instant the transaction was recorded.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional note for the transaction.
}

// What returns the command name for the transaction, which is used to identify the type of transaction.
func (t baseCmd) What() CommandType {
	return t.Command
}

// When returns the timestamp of the transaction.
func (t baseCmd) When() Timestamp {
	return t.Time
}

// Rationale returns the memo associated with the transaction.
func (t baseCmd) Rationale() string {
	return t.Memo
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("time", t.Time)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It stamps the time with now if
// it's zero. It's meant to be embedded in other transaction validation
// methods.
func (t *baseCmd) Validate() {
	if t.Time.IsZero() {
		t.Time = Now()
	}
}

// tradeCmd is a component for stock trade transactions (buy, sell).
type tradeCmd struct {
	baseCmd
	Symbol string `json:"symbol"`           // Symbol is the ticker of the traded stock.
	Broker string `json:"broker,omitempty"` // Broker is the optional broker the trade went through.
}

// Validate checks the trade command fields. It validates the base command,
// ensures a symbol is present, and uppercases it so that "infy" and "INFY"
// name the same position.
func (t *tradeCmd) Validate() error {
	t.baseCmd.Validate()

	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("%w: trade symbol is missing", ErrInvalidArgument)
	}
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	return nil
}

// MarshalJSON implements the json.Marshaler interface for tradeCmd.
func (t tradeCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("symbol", t.Symbol)
	w.Optional("broker", t.Broker)
	return w.MarshalJSON()
}

// Buy represents a transaction where a quantity of a stock is purchased at a
// given price per share.
type Buy struct {
	tradeCmd
	Quantity Quantity // Quantity is the number of shares bought.
	Price    Money    // Price is the price paid per share.
}

// NewBuy creates a new Buy transaction.
func NewBuy(at Timestamp, memo, symbol, broker string, quantity Quantity, price Money) Buy {
	return Buy{
		tradeCmd: tradeCmd{baseCmd: baseCmd{Command: CmdBuy, Time: at, Memo: memo}, Symbol: symbol, Broker: broker},
		Quantity: quantity,
		Price:    price,
	}
}

// Cost returns the total cost of the purchase.
func (t Buy) Cost() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.tradeCmd)
	w.Append("quantity", t.Quantity)
	w.PrefixFrom("price", t.Price)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
// It handles the custom structure where price amount and currency are
// separate fields.
func (t *Buy) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		tradeCmd
		priceCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.tradeCmd = temp.tradeCmd
	t.Quantity = temp.Quantity
	t.Price = temp.Money()
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.tradeCmd == o.tradeCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// Validate checks the Buy transaction's fields. It ensures the quantity is a
// positive whole number of shares and the price per share is positive. The
// price currency is quick-fixed to the ledger currency when missing, and must
// match the existing position's currency otherwise.
func (t Buy) Validate(ledger *StockLedger) (Transaction, error) {
	if err := t.tradeCmd.Validate(); err != nil {
		return t, err
	}

	if t.Quantity.IsNegative() || t.Quantity.IsZero() {
		return t, fmt.Errorf("%w: buy quantity must be positive, got %s", ErrInvalidArgument, t.Quantity)
	}
	if !t.Quantity.IsInteger() {
		return t, fmt.Errorf("%w: buy quantity must be a whole number of shares, got %s", ErrInvalidArgument, t.Quantity)
	}
	if t.Price.IsNegative() || t.Price.IsZero() {
		return t, fmt.Errorf("%w: buy price must be positive, got %s", ErrInvalidArgument, t.Price)
	}

	// first the quick fix
	if t.Price.Currency() == "" {
		t.Price = M(t.Price.value, ledger.Currency())
	}
	if h, ok := ledger.holdings[t.Symbol]; ok && h.AvgCost.Currency() != t.Price.Currency() {
		return t, fmt.Errorf("%w: buy currency %s does not match the %s position held in %s",
			ErrInvalidArgument, t.Price.Currency(), t.Symbol, h.AvgCost.Currency())
	}
	return t, nil
}

// Sell represents a transaction where a quantity of a stock is sold at a
// given price per share.
type Sell struct {
	tradeCmd
	Quantity Quantity // Quantity is the number of shares sold.
	Price    Money    // Price is the price received per share.
}

// NewSell creates a new Sell transaction.
func NewSell(at Timestamp, memo, symbol, broker string, quantity Quantity, price Money) Sell {
	return Sell{
		tradeCmd: tradeCmd{baseCmd: baseCmd{Command: CmdSell, Time: at, Memo: memo}, Symbol: symbol, Broker: broker},
		Quantity: quantity,
		Price:    price,
	}
}

// Proceeds returns the total proceeds from the sale.
func (t Sell) Proceeds() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.tradeCmd)
	w.Append("quantity", t.Quantity)
	w.PrefixFrom("price", t.Price)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		tradeCmd
		priceCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.tradeCmd = temp.tradeCmd
	t.Quantity = temp.Quantity
	t.Price = temp.Money()
	return nil
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.tradeCmd == o.tradeCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// Validate checks the Sell transaction's fields. It ensures the quantity is a
// positive whole number of shares, the price is positive, and the current
// position is large enough to cover the sale. The position is never mutated
// here; the check runs before any state change.
func (t Sell) Validate(ledger *StockLedger) (Transaction, error) {
	if err := t.tradeCmd.Validate(); err != nil {
		return t, err
	}

	if t.Quantity.IsNegative() || t.Quantity.IsZero() {
		return t, fmt.Errorf("%w: sell quantity must be positive, got %s", ErrInvalidArgument, t.Quantity)
	}
	if !t.Quantity.IsInteger() {
		return t, fmt.Errorf("%w: sell quantity must be a whole number of shares, got %s", ErrInvalidArgument, t.Quantity)
	}
	if t.Price.IsNegative() || t.Price.IsZero() {
		return t, fmt.Errorf("%w: sell price must be positive, got %s", ErrInvalidArgument, t.Price)
	}

	h, ok := ledger.holdings[t.Symbol]
	pos := Q(0)
	if ok {
		pos = h.Quantity
	}
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("%w: cannot sell %s of %q, position is only %s", ErrInsufficientHoldings, t.Quantity, t.Symbol, pos)
	}

	// first the quick fix
	if t.Price.Currency() == "" {
		t.Price = M(t.Price.value, h.AvgCost.Currency())
	} else if h.AvgCost.Currency() != t.Price.Currency() {
		return t, fmt.Errorf("%w: sell currency %s does not match the %s position held in %s",
			ErrInvalidArgument, t.Price.Currency(), t.Symbol, h.AvgCost.Currency())
	}
	return t, nil
}

// Transaction filters, for use with the ledger History iterators.

// AcceptAll is a filter that accepts any transaction.
func AcceptAll(Transaction) bool { return true }

// BySymbol returns a filter accepting trades of the given stock.
func BySymbol(symbol string) func(Transaction) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Symbol == symbol
		case Sell:
			return v.Symbol == symbol
		}
		return false
	}
}

// ByBroker returns a filter accepting trades placed through the given broker.
func ByBroker(broker string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Broker == broker
		case Sell:
			return v.Broker == broker
		}
		return false
	}
}
