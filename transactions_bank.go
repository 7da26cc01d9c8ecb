package finance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// bankCmd is a component for bank account transactions (credit, debit,
// transfer legs).
type bankCmd struct {
	baseCmd
	Account string `json:"account"` // Account is the id of the bank account affected.
}

// AccountID returns the id of the account this entry belongs to.
func (t bankCmd) AccountID() string { return t.Account }

// Validate checks the bank command fields. It validates the base command and
// ensures the account is known to the ledger.
func (t *bankCmd) Validate(ledger *BankLedger) error {
	t.baseCmd.Validate()

	if strings.TrimSpace(t.Account) == "" {
		return fmt.Errorf("%w: account id is missing", ErrInvalidArgument)
	}
	if _, ok := ledger.accounts[t.Account]; !ok {
		return fmt.Errorf("%w: no account %q in the ledger", ErrUnknownAccount, t.Account)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for bankCmd.
func (t bankCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("account", t.Account)
	return w.MarshalJSON()
}

// Credit represents money arriving into an account from outside the ledger.
type Credit struct {
	bankCmd
	Amount Money // Amount is the quantity of cash credited.
}

// NewCredit creates a new Credit transaction.
func NewCredit(at Timestamp, memo, account string, amount Money) Credit {
	return Credit{
		bankCmd: bankCmd{baseCmd: baseCmd{Command: CmdCredit, Time: at, Memo: memo}, Account: account},
		Amount:  amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Credit.
func (t Credit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.bankCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Credit.
func (t *Credit) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		bankCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.bankCmd = temp.bankCmd
	t.Amount = temp.Money()
	return nil
}

func (t Credit) Equal(other Transaction) bool {
	o, ok := other.(Credit)
	return ok && t.bankCmd == o.bankCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Credit transaction's fields. It ensures the amount is
// positive, quick-fixes a missing currency to the account currency, and
// rejects a mismatching one.
func (t Credit) Validate(ledger *BankLedger) (Transaction, error) {
	if err := t.bankCmd.Validate(ledger); err != nil {
		return t, err
	}

	if t.Amount.IsNegative() || t.Amount.IsZero() {
		return t, fmt.Errorf("%w: credit amount must be positive, got %s", ErrInvalidArgument, t.Amount)
	}
	acc := ledger.accounts[t.Account]
	if t.Amount.Currency() == "" {
		t.Amount = M(t.Amount.value, acc.Balance.Currency())
	} else if t.Amount.Currency() != acc.Balance.Currency() {
		return t, fmt.Errorf("%w: credit currency %s does not match account %q held in %s",
			ErrInvalidArgument, t.Amount.Currency(), t.Account, acc.Balance.Currency())
	}
	return t, nil
}

// Debit represents money leaving an account towards outside the ledger.
type Debit struct {
	bankCmd
	Amount Money // Amount is the quantity of cash debited.
}

// NewDebit creates a new Debit transaction.
func NewDebit(at Timestamp, memo, account string, amount Money) Debit {
	return Debit{
		bankCmd: bankCmd{baseCmd: baseCmd{Command: CmdDebit, Time: at, Memo: memo}, Account: account},
		Amount:  amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Debit.
func (t Debit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.bankCmd)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Debit.
func (t *Debit) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		bankCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.bankCmd = temp.bankCmd
	t.Amount = temp.Money()
	return nil
}

func (t Debit) Equal(other Transaction) bool {
	o, ok := other.(Debit)
	return ok && t.bankCmd == o.bankCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Debit transaction's fields. On top of the credit rules
// it verifies the account balance covers the debit, before any state change.
func (t Debit) Validate(ledger *BankLedger) (Transaction, error) {
	if err := t.bankCmd.Validate(ledger); err != nil {
		return t, err
	}

	if t.Amount.IsNegative() || t.Amount.IsZero() {
		return t, fmt.Errorf("%w: debit amount must be positive, got %s", ErrInvalidArgument, t.Amount)
	}
	acc := ledger.accounts[t.Account]
	if t.Amount.Currency() == "" {
		t.Amount = M(t.Amount.value, acc.Balance.Currency())
	} else if t.Amount.Currency() != acc.Balance.Currency() {
		return t, fmt.Errorf("%w: debit currency %s does not match account %q held in %s",
			ErrInvalidArgument, t.Amount.Currency(), t.Account, acc.Balance.Currency())
	}
	if acc.Balance.LessThan(t.Amount) {
		return t, fmt.Errorf("%w: cannot debit %s from %q, balance is %s",
			ErrInsufficientFunds, t.Amount, t.Account, acc.Balance)
	}
	return t, nil
}

// TransferOut is the outgoing leg of an internal transfer. Its Transfer id
// links it to the matching TransferIn leg recorded in the same operation.
type TransferOut struct {
	bankCmd
	Counterparty string `json:"counterparty"` // Counterparty is the receiving account id.
	Transfer     string `json:"transfer"`     // Transfer links the two legs of one transfer.
	Amount       Money  // Amount is the quantity of cash moved.
}

// TransferIn is the incoming leg of an internal transfer.
type TransferIn struct {
	bankCmd
	Counterparty string `json:"counterparty"` // Counterparty is the sending account id.
	Transfer     string `json:"transfer"`     // Transfer links the two legs of one transfer.
	Amount       Money  // Amount is the quantity of cash moved.
}

// NewTransfer creates the two legs of a transfer between two accounts,
// linked by a fresh transfer id.
func NewTransfer(at Timestamp, memo, from, to string, amount Money) (TransferOut, TransferIn) {
	id := uuid.NewString()
	out := TransferOut{
		bankCmd:      bankCmd{baseCmd: baseCmd{Command: CmdTransferOut, Time: at, Memo: memo}, Account: from},
		Counterparty: to,
		Transfer:     id,
		Amount:       amount,
	}
	in := TransferIn{
		bankCmd:      bankCmd{baseCmd: baseCmd{Command: CmdTransferIn, Time: at, Memo: memo}, Account: to},
		Counterparty: from,
		Transfer:     id,
		Amount:       amount,
	}
	return out, in
}

// MarshalJSON implements the json.Marshaler interface for TransferOut.
func (t TransferOut) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.bankCmd)
	w.Append("counterparty", t.Counterparty)
	w.Append("transfer", t.Transfer)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for TransferOut.
func (t *TransferOut) UnmarshalJSON(data []byte) error {
	var temp struct {
		bankCmd
		amountCmd
		Counterparty string `json:"counterparty"`
		Transfer     string `json:"transfer"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.bankCmd = temp.bankCmd
	t.Counterparty = temp.Counterparty
	t.Transfer = temp.Transfer
	t.Amount = temp.Money()
	return nil
}

func (t TransferOut) Equal(other Transaction) bool {
	o, ok := other.(TransferOut)
	return ok && t.bankCmd == o.bankCmd && t.Counterparty == o.Counterparty &&
		t.Transfer == o.Transfer && t.Amount.Equal(o.Amount)
}

// Validate checks the outgoing leg. The paired accounts must be distinct and
// both known, and the source balance must cover the amount.
func (t TransferOut) Validate(ledger *BankLedger) (Transaction, error) {
	if err := t.bankCmd.Validate(ledger); err != nil {
		return t, err
	}
	if err := validateTransferLeg(ledger, t.Account, t.Counterparty, t.Transfer); err != nil {
		return t, err
	}

	if t.Amount.IsNegative() || t.Amount.IsZero() {
		return t, fmt.Errorf("%w: transfer amount must be positive, got %s", ErrInvalidArgument, t.Amount)
	}
	acc := ledger.accounts[t.Account]
	if t.Amount.Currency() == "" {
		t.Amount = M(t.Amount.value, acc.Balance.Currency())
	} else if t.Amount.Currency() != acc.Balance.Currency() {
		return t, fmt.Errorf("%w: transfer currency %s does not match account %q held in %s",
			ErrInvalidArgument, t.Amount.Currency(), t.Account, acc.Balance.Currency())
	}
	if acc.Balance.LessThan(t.Amount) {
		return t, fmt.Errorf("%w: cannot transfer %s out of %q, balance is %s",
			ErrInsufficientFunds, t.Amount, t.Account, acc.Balance)
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for TransferIn.
func (t TransferIn) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.bankCmd)
	w.Append("counterparty", t.Counterparty)
	w.Append("transfer", t.Transfer)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for TransferIn.
func (t *TransferIn) UnmarshalJSON(data []byte) error {
	var temp struct {
		bankCmd
		amountCmd
		Counterparty string `json:"counterparty"`
		Transfer     string `json:"transfer"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.bankCmd = temp.bankCmd
	t.Counterparty = temp.Counterparty
	t.Transfer = temp.Transfer
	t.Amount = temp.Money()
	return nil
}

func (t TransferIn) Equal(other Transaction) bool {
	o, ok := other.(TransferIn)
	return ok && t.bankCmd == o.bankCmd && t.Counterparty == o.Counterparty &&
		t.Transfer == o.Transfer && t.Amount.Equal(o.Amount)
}

// Validate checks the incoming leg. It mirrors the outgoing leg without the
// balance requirement.
func (t TransferIn) Validate(ledger *BankLedger) (Transaction, error) {
	if err := t.bankCmd.Validate(ledger); err != nil {
		return t, err
	}
	if err := validateTransferLeg(ledger, t.Account, t.Counterparty, t.Transfer); err != nil {
		return t, err
	}

	if t.Amount.IsNegative() || t.Amount.IsZero() {
		return t, fmt.Errorf("%w: transfer amount must be positive, got %s", ErrInvalidArgument, t.Amount)
	}
	acc := ledger.accounts[t.Account]
	if t.Amount.Currency() == "" {
		t.Amount = M(t.Amount.value, acc.Balance.Currency())
	} else if t.Amount.Currency() != acc.Balance.Currency() {
		return t, fmt.Errorf("%w: transfer currency %s does not match account %q held in %s",
			ErrInvalidArgument, t.Amount.Currency(), t.Account, acc.Balance.Currency())
	}
	return t, nil
}

// validateTransferLeg holds the checks shared by the two legs.
func validateTransferLeg(ledger *BankLedger, account, counterparty, transfer string) error {
	if strings.TrimSpace(counterparty) == "" {
		return fmt.Errorf("%w: transfer counterparty is missing", ErrInvalidArgument)
	}
	if counterparty == account {
		return fmt.Errorf("%w: cannot transfer from account %q to itself", ErrInvalidArgument, account)
	}
	if _, ok := ledger.accounts[counterparty]; !ok {
		return fmt.Errorf("%w: no account %q in the ledger", ErrUnknownAccount, counterparty)
	}
	if transfer == "" {
		return fmt.Errorf("%w: transfer id is missing", ErrInvalidArgument)
	}
	return nil
}

// ByAccount returns a filter accepting bank entries touching the given
// account.
func ByAccount(id string) func(Transaction) bool {
	return func(tx Transaction) bool {
		if v, ok := tx.(interface{ AccountID() string }); ok {
			return v.AccountID() == id
		}
		return false
	}
}
