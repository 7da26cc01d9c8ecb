package finance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// File names used inside a store directory.
const (
	CatalogFile  = "catalog.jsonl"
	HoldingsFile = "holdings.jsonl"
	AccountsFile = "accounts.jsonl"
	StockLogFile = "stock_transactions.jsonl"
	BankLogFile  = "bank_transactions.jsonl"
)

// Store reads and writes ledger data as flat files in a single directory.
//
// State tables (holdings, accounts, catalog) are saved by full replace
// through a temporary file and an atomic rename. Transaction logs are
// append-only: one mutating operation appends all its entries in a single
// write. All errors wrap ErrPersistence.
type Store struct {
	dir string
}

// OpenStore returns a store rooted at dir, creating the directory if needed.
func OpenStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: could not create store directory %q: %v", ErrPersistence, dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store reads and writes.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// LoadHoldings reads the holdings table. A missing file is not an error: it
// yields an empty table, unlike a corrupted or unreadable one.
func (s *Store) LoadHoldings() (map[string]Holding, error) {
	f, err := os.Open(s.path(HoldingsFile))
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", s.path(HoldingsFile)).Msg("no holdings file, starting with an empty table")
		return make(map[string]Holding), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open holdings file: %v", ErrPersistence, err)
	}
	defer f.Close()
	holdings, err := DecodeHoldings(f)
	if err != nil {
		return nil, fmt.Errorf("%w: holdings file %q: %v", ErrPersistence, s.path(HoldingsFile), err)
	}
	return holdings, nil
}

// SaveHoldings replaces the holdings table on disk.
func (s *Store) SaveHoldings(holdings map[string]Holding) error {
	return s.replace(HoldingsFile, func(w io.Writer) error {
		return EncodeHoldings(w, holdings)
	})
}

// LoadAccounts reads the bank accounts table. A missing file yields an empty
// table.
func (s *Store) LoadAccounts() (map[string]BankAccount, error) {
	f, err := os.Open(s.path(AccountsFile))
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", s.path(AccountsFile)).Msg("no accounts file, starting with an empty table")
		return make(map[string]BankAccount), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open accounts file: %v", ErrPersistence, err)
	}
	defer f.Close()
	accounts, err := DecodeAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("%w: accounts file %q: %v", ErrPersistence, s.path(AccountsFile), err)
	}
	return accounts, nil
}

// SaveAccounts replaces the bank accounts table on disk.
func (s *Store) SaveAccounts(accounts map[string]BankAccount) error {
	return s.replace(AccountsFile, func(w io.Writer) error {
		return EncodeAccounts(w, accounts)
	})
}

// LoadCatalog reads the security catalog. A missing file yields the default
// catalog; it is written back on the first save.
func (s *Store) LoadCatalog() (*Catalog, error) {
	f, err := os.Open(s.path(CatalogFile))
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", s.path(CatalogFile)).Msg("no catalog file, seeding the default catalog")
		return DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open catalog file: %v", ErrPersistence, err)
	}
	defer f.Close()
	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog file %q: %v", ErrPersistence, s.path(CatalogFile), err)
	}
	return c, nil
}

// SaveCatalog replaces the security catalog on disk.
func (s *Store) SaveCatalog(c *Catalog) error {
	return s.replace(CatalogFile, func(w io.Writer) error {
		return EncodeCatalog(w, c)
	})
}

// LoadStockLog reads the stock transaction log in append order. A missing
// file yields an empty log.
func (s *Store) LoadStockLog() ([]Transaction, error) {
	return s.loadLog(StockLogFile, DecodeStockLog)
}

// AppendStockLog appends transactions to the stock log.
func (s *Store) AppendStockLog(txs ...Transaction) error {
	return s.appendLog(StockLogFile, txs)
}

// LoadBankLog reads the bank transaction log in append order. A missing file
// yields an empty log.
func (s *Store) LoadBankLog() ([]Transaction, error) {
	return s.loadLog(BankLogFile, DecodeBankLog)
}

// AppendBankLog appends transactions to the bank log. The two legs of a
// transfer go through one call, so they land in one write.
func (s *Store) AppendBankLog(txs ...Transaction) error {
	return s.appendLog(BankLogFile, txs)
}

func (s *Store) loadLog(name string, decode func(io.Reader) ([]Transaction, error)) ([]Transaction, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", s.path(name)).Msg("no transaction log, starting with an empty ledger")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open transaction log: %v", ErrPersistence, err)
	}
	defer f.Close()
	txs, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction log %q: %v", ErrPersistence, s.path(name), err)
	}
	return txs, nil
}

func (s *Store) appendLog(name string, txs []Transaction) error {
	// Encode everything first so that an encoding error leaves the file
	// untouched, then append in a single write.
	var buf bytes.Buffer
	for _, tx := range txs {
		if err := EncodeTransaction(&buf, tx); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	f, err := os.OpenFile(s.path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: could not open transaction log %q: %v", ErrPersistence, s.path(name), err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("%w: could not append to transaction log %q: %v", ErrPersistence, s.path(name), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: could not close transaction log %q: %v", ErrPersistence, s.path(name), err)
	}
	return nil
}

// replace writes a state file through a temporary file and an atomic rename,
// so a crash mid-save never leaves a half-written table.
func (s *Store) replace(name string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary file for %q: %v", ErrPersistence, name, err)
	}
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: could not write %q: %v", ErrPersistence, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: could not close %q: %v", ErrPersistence, name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: could not replace %q: %v", ErrPersistence, name, err)
	}
	return nil
}
