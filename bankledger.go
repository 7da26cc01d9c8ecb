package finance

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
)

// BankStore is the persistence surface the bank ledger consumes. *Store
// implements it.
type BankStore interface {
	LoadAccounts() (map[string]BankAccount, error)
	SaveAccounts(map[string]BankAccount) error
	LoadBankLog() ([]Transaction, error)
	AppendBankLog(...Transaction) error
}

// BankAccount describes one bank account and its current balance.
type BankAccount struct {
	Account string    // Account is the unique account id, typically the account number.
	Label   string    // Label is the user-facing name, typically the bank's.
	Balance Money     // Balance is the current balance, never negative.
	Opened  Timestamp // Opened is when the account was added to the ledger.
}

// BankLedger tracks bank accounts and their movement history.
//
// All exported methods are safe for concurrent use: a single mutex
// serializes operations, and a transfer holds it for both legs, so no reader
// can observe the money in flight. Each mutation follows validate, persist,
// commit; when a persist step fails the in-memory state is unchanged.
type BankLedger struct {
	mu       sync.Mutex
	store    BankStore
	currency string
	accounts map[string]BankAccount
	log      []Transaction

	now func() Timestamp // stubbed in tests
}

// NewBankLedger loads a bank ledger from the store. Absent files yield an
// empty ledger, unreadable or corrupted ones an error.
func NewBankLedger(store BankStore, currency string) (*BankLedger, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	accounts, err := store.LoadAccounts()
	if err != nil {
		return nil, err
	}
	txs, err := store.LoadBankLog()
	if err != nil {
		return nil, err
	}
	return &BankLedger{
		store:    store,
		currency: currency,
		accounts: accounts,
		log:      txs,
		now:      Now,
	}, nil
}

// Currency returns the ledger's default account currency.
func (l *BankLedger) Currency() string { return l.currency }

// OpenAccount registers a new account with its opening balance. The opening
// balance is not a log entry: the log records movements, and verification
// derives the opening balance from the difference.
func (l *BankLedger) OpenAccount(id, label string, initial Money) (BankAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return BankAccount{}, fmt.Errorf("%w: account id is missing", ErrInvalidArgument)
	}
	if initial.IsNegative() {
		return BankAccount{}, fmt.Errorf("%w: opening balance cannot be negative, got %s", ErrInvalidArgument, initial)
	}
	if initial.Currency() == "" {
		initial = M(initial.value, l.currency)
	}
	if _, ok := l.accounts[id]; ok {
		return BankAccount{}, fmt.Errorf("%w: account %q already exists", ErrDuplicateAccount, id)
	}

	acc := BankAccount{Account: id, Label: strings.TrimSpace(label), Balance: initial, Opened: l.now()}
	next := maps.Clone(l.accounts)
	next[id] = acc
	if err := l.store.SaveAccounts(next); err != nil {
		return BankAccount{}, err
	}
	l.accounts = next
	return acc, nil
}

// Credit records money arriving into an account from outside the ledger.
func (l *BankLedger) Credit(account string, amount Money, memo string) (Credit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := NewCredit(l.now(), memo, strings.TrimSpace(account), amount)
	validated, err := tx.Validate(l)
	if err != nil {
		return Credit{}, err
	}
	tx = validated.(Credit)

	next := maps.Clone(l.accounts)
	acc := next[tx.Account]
	acc.Balance = acc.Balance.Add(tx.Amount)
	next[tx.Account] = acc

	if err := l.store.AppendBankLog(tx); err != nil {
		return Credit{}, err
	}
	if err := l.store.SaveAccounts(next); err != nil {
		return Credit{}, err
	}
	l.log = append(l.log, tx)
	l.accounts = next
	return tx, nil
}

// Debit records money leaving an account towards outside the ledger. The
// balance must cover the amount; the check runs before any state change.
func (l *BankLedger) Debit(account string, amount Money, memo string) (Debit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := NewDebit(l.now(), memo, strings.TrimSpace(account), amount)
	validated, err := tx.Validate(l)
	if err != nil {
		return Debit{}, err
	}
	tx = validated.(Debit)

	next := maps.Clone(l.accounts)
	acc := next[tx.Account]
	acc.Balance = acc.Balance.Sub(tx.Amount)
	next[tx.Account] = acc

	if err := l.store.AppendBankLog(tx); err != nil {
		return Debit{}, err
	}
	if err := l.store.SaveAccounts(next); err != nil {
		return Debit{}, err
	}
	l.log = append(l.log, tx)
	l.accounts = next
	return tx, nil
}

// Transfer moves money between two accounts of the ledger atomically. It
// records two legs linked by a shared transfer id, appended to the log in
// one write, and commits both balance changes together: no caller can
// observe the debit without the credit.
func (l *BankLedger) Transfer(from, to string, amount Money, memo string) (TransferOut, TransferIn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out, in := NewTransfer(l.now(), memo, strings.TrimSpace(from), strings.TrimSpace(to), amount)
	vout, err := out.Validate(l)
	if err != nil {
		return TransferOut{}, TransferIn{}, err
	}
	out = vout.(TransferOut)
	vin, err := in.Validate(l)
	if err != nil {
		return TransferOut{}, TransferIn{}, err
	}
	in = vin.(TransferIn)
	if out.Amount.Currency() != in.Amount.Currency() {
		return TransferOut{}, TransferIn{}, fmt.Errorf("%w: cannot transfer between %q held in %s and %q held in %s",
			ErrInvalidArgument, out.Account, out.Amount.Currency(), in.Account, in.Amount.Currency())
	}

	next := maps.Clone(l.accounts)
	src := next[out.Account]
	src.Balance = src.Balance.Sub(out.Amount)
	next[out.Account] = src
	dst := next[in.Account]
	dst.Balance = dst.Balance.Add(in.Amount)
	next[in.Account] = dst

	if err := l.store.AppendBankLog(out, in); err != nil {
		return TransferOut{}, TransferIn{}, err
	}
	if err := l.store.SaveAccounts(next); err != nil {
		return TransferOut{}, TransferIn{}, err
	}
	l.log = append(l.log, out, in)
	l.accounts = next
	return out, in, nil
}

// Balance returns the current balance of the account.
func (l *BankLedger) Balance(account string) (Money, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[strings.TrimSpace(account)]
	if !ok {
		return Money{}, fmt.Errorf("%w: no account %q in the ledger", ErrUnknownAccount, account)
	}
	return acc.Balance, nil
}

// Account returns the account record by id.
func (l *BankLedger) Account(id string) (BankAccount, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[strings.TrimSpace(id)]
	return acc, ok
}

// Accounts returns the accounts sorted by id. The sequence snapshots the
// table when iterated, so a restart yields consistent rows.
func (l *BankLedger) Accounts() iter.Seq[BankAccount] {
	return func(yield func(BankAccount) bool) {
		l.mu.Lock()
		rows := make([]BankAccount, 0, len(l.accounts))
		for _, id := range slices.Sorted(maps.Keys(l.accounts)) {
			rows = append(rows, l.accounts[id])
		}
		l.mu.Unlock()
		for _, acc := range rows {
			if !yield(acc) {
				return
			}
		}
	}
}

// History returns the recorded movements in ledger order, keyed by their
// position in the log. A transaction is yielded when it matches any of the
// filters; with no filters every transaction is yielded.
func (l *BankLedger) History(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		l.mu.Lock()
		txs := l.log
		l.mu.Unlock()
		for i, tx := range txs {
			if !accepts(filters, tx) {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}
