package finance

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains functions to import bank statements exported by banking
// portals. The shape varies per bank, so the caller describes where to find
// the fields with JSONPath expressions.

// StatementMapping tells the importer where to find the fields of a bank
// statement record.
type StatementMapping struct {
	Rows   string // path to the list of records, e.g. "$.transactions[*]"
	Time   string // path to the timestamp within a record, optional
	Kind   string // path to the credit/debit marker within a record
	Amount string // path to the amount within a record
	Memo   string // path to the description within a record, optional
}

// DefaultStatementMapping matches the common shape
// {"transactions": [{"date": ..., "type": ..., "amount": ..., "description": ...}]}.
func DefaultStatementMapping() StatementMapping {
	return StatementMapping{
		Rows:   "$.transactions[*]",
		Time:   "$.date",
		Kind:   "$.type",
		Amount: "$.amount",
		Memo:   "$.description",
	}
}

// StatementEntry is one movement read from a statement.
type StatementEntry struct {
	Time   Timestamp
	Kind   CommandType // CmdCredit or CmdDebit
	Amount Money
	Memo   string
}

// markers banks use for the two directions, lowercased.
var (
	creditKinds = map[string]bool{"credit": true, "cr": true, "deposit": true, "in": true}
	debitKinds  = map[string]bool{"debit": true, "dr": true, "withdrawal": true, "out": true}
)

// ReadStatement parses a JSON bank statement from r using the mapping. The
// currency applies to every amount; statements do not carry one per row.
func ReadStatement(r io.Reader, mapping StatementMapping, currency string) ([]StatementEntry, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: statement is not valid JSON: %v", ErrInvalidArgument, err)
	}
	jrows, err := jsonpath.Get(mapping.Rows, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: statement rows %q: %v", ErrInvalidArgument, mapping.Rows, err)
	}
	rows, ok := jrows.([]any)
	if !ok {
		// a single-record statement yields the record itself
		rows = []any{jrows}
	}
	entries := make([]StatementEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := readStatementRow(row, mapping, currency)
		if err != nil {
			return nil, fmt.Errorf("statement record %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func readStatementRow(row any, mapping StatementMapping, currency string) (StatementEntry, error) {
	var entry StatementEntry

	kind, err := statementString(row, mapping.Kind)
	if err != nil {
		return entry, err
	}
	switch k := strings.ToLower(strings.TrimSpace(kind)); {
	case creditKinds[k]:
		entry.Kind = CmdCredit
	case debitKinds[k]:
		entry.Kind = CmdDebit
	default:
		return entry, fmt.Errorf("%w: unknown movement kind %q", ErrInvalidArgument, kind)
	}

	amount, err := statementNumber(row, mapping.Amount)
	if err != nil {
		return entry, err
	}
	entry.Amount = M(amount, currency)

	if mapping.Time != "" {
		if s, err := statementString(row, mapping.Time); err == nil && s != "" {
			at, err := ParseTimestamp(s)
			if err != nil {
				return entry, err
			}
			entry.Time = at
		}
	}
	if mapping.Memo != "" {
		if s, err := statementString(row, mapping.Memo); err == nil {
			entry.Memo = s
		}
	}
	return entry, nil
}

// statementString resolves path within row to a string.
func statementString(row any, path string) (string, error) {
	jval, err := jsonpath.Get(path, row)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidArgument, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string, got %v", ErrInvalidArgument, path, jval)
	}
	return s, nil
}

// statementNumber resolves path within row to a decimal. Banks export
// amounts as numbers or as numeric strings; both are accepted.
func statementNumber(row any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, row)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q: %v", ErrInvalidArgument, path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number: %v", ErrInvalidArgument, path, err)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number, got %v", ErrInvalidArgument, path, jval)
	}
}

// ImportStatement applies the statement entries to the account as credits
// and debits, all or nothing: every entry is validated against the running
// balance before anything is persisted, then the batch is appended to the
// log in one write and the table saved once. Entries keep their statement
// timestamps; entries without one are stamped with the current time.
func (l *BankLedger) ImportStatement(account string, entries []StatementEntry) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	account = strings.TrimSpace(account)
	if _, ok := l.accounts[account]; !ok {
		return nil, fmt.Errorf("%w: no account %q in the ledger", ErrUnknownAccount, account)
	}

	// Validate the whole batch against a scratch copy of the table, so a
	// debit in the middle cannot overdraw and leave half a statement
	// applied.
	scratch := maps.Clone(l.accounts)
	batch := &BankLedger{accounts: scratch, currency: l.currency}
	txs := make([]Transaction, 0, len(entries))
	for i, entry := range entries {
		at := entry.Time
		if at.IsZero() {
			at = l.now()
		}
		switch entry.Kind {
		case CmdCredit:
			validated, err := NewCredit(at, entry.Memo, account, entry.Amount).Validate(batch)
			if err != nil {
				return nil, fmt.Errorf("statement entry %d: %w", i+1, err)
			}
			tx := validated.(Credit)
			acc := scratch[tx.Account]
			acc.Balance = acc.Balance.Add(tx.Amount)
			scratch[tx.Account] = acc
			txs = append(txs, tx)
		case CmdDebit:
			validated, err := NewDebit(at, entry.Memo, account, entry.Amount).Validate(batch)
			if err != nil {
				return nil, fmt.Errorf("statement entry %d: %w", i+1, err)
			}
			tx := validated.(Debit)
			acc := scratch[tx.Account]
			acc.Balance = acc.Balance.Sub(tx.Amount)
			scratch[tx.Account] = acc
			txs = append(txs, tx)
		default:
			return nil, fmt.Errorf("%w: statement entry %d has unsupported kind %q", ErrInvalidArgument, i+1, entry.Kind)
		}
	}
	if len(txs) == 0 {
		return nil, nil
	}

	if err := l.store.AppendBankLog(txs...); err != nil {
		return nil, err
	}
	if err := l.store.SaveAccounts(scratch); err != nil {
		return nil, err
	}
	l.log = append(l.log, txs...)
	l.accounts = scratch
	return txs, nil
}
