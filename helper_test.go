package finance

import (
	"fmt"
	"maps"
	"slices"
	"testing"
	"time"
)

// INR is a helper for test to create rupee money from const
func INR(v float64) Money { return M(v, "INR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// ts is a helper for test to parse a timestamp from const
func ts(s string) Timestamp { return MustParseTimestamp(s) }

// testClock returns a deterministic clock that advances one second per call.
func testClock() func() Timestamp {
	at := ts("2025-04-01 09:59:59")
	return func() Timestamp {
		at = Timestamp{t: at.t.Add(time.Second)}
		return at
	}
}

// memStore is an in-memory StockStore and BankStore for tests. Methods listed
// in fail return ErrPersistence instead of applying, so tests can check that a
// failed save leaves the ledger untouched.
type memStore struct {
	holdings map[string]Holding
	accounts map[string]BankAccount
	catalog  *Catalog
	stockLog []Transaction
	bankLog  []Transaction

	fail map[string]bool
}

func newMemStore() *memStore {
	return &memStore{fail: make(map[string]bool)}
}

func (s *memStore) failure(op string) error {
	if s.fail[op] {
		return fmt.Errorf("%w: forced %s failure", ErrPersistence, op)
	}
	return nil
}

func (s *memStore) LoadHoldings() (map[string]Holding, error) {
	if err := s.failure("LoadHoldings"); err != nil {
		return nil, err
	}
	if s.holdings == nil {
		return make(map[string]Holding), nil
	}
	return maps.Clone(s.holdings), nil
}

func (s *memStore) SaveHoldings(holdings map[string]Holding) error {
	if err := s.failure("SaveHoldings"); err != nil {
		return err
	}
	s.holdings = maps.Clone(holdings)
	return nil
}

func (s *memStore) LoadStockLog() ([]Transaction, error) {
	if err := s.failure("LoadStockLog"); err != nil {
		return nil, err
	}
	return slices.Clone(s.stockLog), nil
}

func (s *memStore) AppendStockLog(txs ...Transaction) error {
	if err := s.failure("AppendStockLog"); err != nil {
		return err
	}
	s.stockLog = append(s.stockLog, txs...)
	return nil
}

func (s *memStore) LoadCatalog() (*Catalog, error) {
	if err := s.failure("LoadCatalog"); err != nil {
		return nil, err
	}
	if s.catalog == nil {
		return DefaultCatalog(), nil
	}
	return s.catalog.clone(), nil
}

func (s *memStore) SaveCatalog(c *Catalog) error {
	if err := s.failure("SaveCatalog"); err != nil {
		return err
	}
	s.catalog = c.clone()
	return nil
}

func (s *memStore) LoadAccounts() (map[string]BankAccount, error) {
	if err := s.failure("LoadAccounts"); err != nil {
		return nil, err
	}
	if s.accounts == nil {
		return make(map[string]BankAccount), nil
	}
	return maps.Clone(s.accounts), nil
}

func (s *memStore) SaveAccounts(accounts map[string]BankAccount) error {
	if err := s.failure("SaveAccounts"); err != nil {
		return err
	}
	s.accounts = maps.Clone(accounts)
	return nil
}

func (s *memStore) LoadBankLog() ([]Transaction, error) {
	if err := s.failure("LoadBankLog"); err != nil {
		return nil, err
	}
	return slices.Clone(s.bankLog), nil
}

func (s *memStore) AppendBankLog(txs ...Transaction) error {
	if err := s.failure("AppendBankLog"); err != nil {
		return err
	}
	s.bankLog = append(s.bankLog, txs...)
	return nil
}

// newTestStockLedger returns an empty stock ledger over a fresh in-memory
// store, with a deterministic clock.
func newTestStockLedger(t *testing.T) (*StockLedger, *memStore) {
	t.Helper()
	store := newMemStore()
	ledger, err := NewStockLedger(store, "INR")
	if err != nil {
		t.Fatalf("NewStockLedger() returned an unexpected error: %v", err)
	}
	ledger.now = testClock()
	return ledger, store
}

// newTestBankLedger returns an empty bank ledger over a fresh in-memory
// store, with a deterministic clock.
func newTestBankLedger(t *testing.T) (*BankLedger, *memStore) {
	t.Helper()
	store := newMemStore()
	ledger, err := NewBankLedger(store, "INR")
	if err != nil {
		t.Fatalf("NewBankLedger() returned an unexpected error: %v", err)
	}
	ledger.now = testClock()
	return ledger, store
}
