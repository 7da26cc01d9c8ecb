package finance

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_MissingFilesYieldEmptyState(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore() returned an unexpected error: %v", err)
	}

	holdings, err := store.LoadHoldings()
	if err != nil {
		t.Fatalf("LoadHoldings() returned an unexpected error: %v", err)
	}
	if len(holdings) != 0 {
		t.Errorf("LoadHoldings() on an empty store has %d records, want 0", len(holdings))
	}

	accounts, err := store.LoadAccounts()
	if err != nil {
		t.Fatalf("LoadAccounts() returned an unexpected error: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("LoadAccounts() on an empty store has %d records, want 0", len(accounts))
	}

	txs, err := store.LoadStockLog()
	if err != nil {
		t.Fatalf("LoadStockLog() returned an unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("LoadStockLog() on an empty store has %d entries, want 0", len(txs))
	}

	// The catalog falls back to the seeded defaults.
	catalog, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog() returned an unexpected error: %v", err)
	}
	if !catalog.Has("RELIANCE") {
		t.Error("LoadCatalog() on an empty store did not seed the default catalog")
	}
}

func TestStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ledger", "data")

	if _, err := OpenStore(dir); err != nil {
		t.Fatalf("OpenStore() returned an unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("OpenStore() did not create %q: %v", dir, err)
	}
}

func TestStore_HoldingsRoundTrip(t *testing.T) {
	store, _ := OpenStore(t.TempDir())

	holdings := map[string]Holding{
		"INFY": {
			Symbol: "INFY", Broker: "Zerodha", Quantity: Q(20), AvgCost: INR(150),
			Invested: INR(3000), Realized: INR(0), Updated: ts("2025-08-01 10:00:00"),
		},
	}
	if err := store.SaveHoldings(holdings); err != nil {
		t.Fatalf("SaveHoldings() returned an unexpected error: %v", err)
	}

	loaded, err := store.LoadHoldings()
	if err != nil {
		t.Fatalf("LoadHoldings() returned an unexpected error: %v", err)
	}
	got, ok := loaded["INFY"]
	if !ok {
		t.Fatal("LoadHoldings() lost the INFY record")
	}
	if !got.Quantity.Equal(Q(20)) || !got.AvgCost.Equal(INR(150)) || got.Broker != "Zerodha" {
		t.Errorf("LoadHoldings()[INFY] = %+v, want the saved record back", got)
	}

	// A second save fully replaces the table.
	if err := store.SaveHoldings(map[string]Holding{}); err != nil {
		t.Fatalf("SaveHoldings() returned an unexpected error: %v", err)
	}
	loaded, err = store.LoadHoldings()
	if err != nil {
		t.Fatalf("LoadHoldings() returned an unexpected error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("LoadHoldings() after saving an empty table has %d records, want 0", len(loaded))
	}
}

func TestStore_AccountsRoundTrip(t *testing.T) {
	store, _ := OpenStore(t.TempDir())

	accounts := map[string]BankAccount{
		"HDFC-1234": {Account: "HDFC-1234", Label: "Salary", Balance: INR(1300), Opened: ts("2025-08-01 09:00:00")},
	}
	if err := store.SaveAccounts(accounts); err != nil {
		t.Fatalf("SaveAccounts() returned an unexpected error: %v", err)
	}
	loaded, err := store.LoadAccounts()
	if err != nil {
		t.Fatalf("LoadAccounts() returned an unexpected error: %v", err)
	}
	got, ok := loaded["HDFC-1234"]
	if !ok || !got.Balance.Equal(INR(1300)) || got.Label != "Salary" {
		t.Errorf("LoadAccounts()[HDFC-1234] = %+v, want the saved record back", got)
	}
}

func TestStore_AppendLogPreservesOrder(t *testing.T) {
	store, _ := OpenStore(t.TempDir())

	first := NewBuy(ts("2025-08-01 10:00:00"), "", "INFY", "", Q(10), INR(100))
	second := NewSell(ts("2025-08-02 10:00:00"), "", "INFY", "", Q(4), INR(150))
	if err := store.AppendStockLog(first); err != nil {
		t.Fatalf("AppendStockLog() returned an unexpected error: %v", err)
	}
	if err := store.AppendStockLog(second); err != nil {
		t.Fatalf("AppendStockLog() returned an unexpected error: %v", err)
	}

	txs, err := store.LoadStockLog()
	if err != nil {
		t.Fatalf("LoadStockLog() returned an unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("LoadStockLog() has %d entries, want 2", len(txs))
	}
	if !txs[0].Equal(first) || !txs[1].Equal(second) {
		t.Errorf("LoadStockLog() did not preserve append order: %+v", txs)
	}
}

func TestStore_AppendsTransferLegsTogether(t *testing.T) {
	store, _ := OpenStore(t.TempDir())

	out, in := NewTransfer(ts("2025-08-05 12:00:00"), "", "A", "B", INR(300))
	if err := store.AppendBankLog(out, in); err != nil {
		t.Fatalf("AppendBankLog() returned an unexpected error: %v", err)
	}

	txs, err := store.LoadBankLog()
	if err != nil {
		t.Fatalf("LoadBankLog() returned an unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("LoadBankLog() has %d entries, want 2", len(txs))
	}
	if !txs[0].Equal(out) || !txs[1].Equal(in) {
		t.Errorf("LoadBankLog() did not keep the transfer legs adjacent: %+v", txs)
	}
}

func TestStore_SaveLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	store, _ := OpenStore(dir)

	if err := store.SaveHoldings(map[string]Holding{}); err != nil {
		t.Fatalf("SaveHoldings() returned an unexpected error: %v", err)
	}
	if err := store.SaveCatalog(DefaultCatalog()); err != nil {
		t.Fatalf("SaveCatalog() returned an unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() returned an unexpected error: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("save left a temporary file behind: %s", e.Name())
		}
	}
}

func TestStore_CorruptedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	store, _ := OpenStore(dir)

	if err := os.WriteFile(filepath.Join(dir, HoldingsFile), []byte("{not json\n"), 0644); err != nil {
		t.Fatalf("WriteFile() returned an unexpected error: %v", err)
	}
	if _, err := store.LoadHoldings(); !errors.Is(err, ErrPersistence) {
		t.Errorf("LoadHoldings() on a corrupted file error = %v, want %v", err, ErrPersistence)
	}

	if err := os.WriteFile(filepath.Join(dir, StockLogFile), []byte(`{"command":"dance"}`+"\n"), 0644); err != nil {
		t.Fatalf("WriteFile() returned an unexpected error: %v", err)
	}
	if _, err := store.LoadStockLog(); !errors.Is(err, ErrPersistence) {
		t.Errorf("LoadStockLog() on an unknown command error = %v, want %v", err, ErrPersistence)
	}
}

func TestStore_BacksWholeLedgers(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore() returned an unexpected error: %v", err)
	}

	stocks, err := NewStockLedger(store, "INR")
	if err != nil {
		t.Fatalf("NewStockLedger() returned an unexpected error: %v", err)
	}
	stocks.Buy("INFY", Q(10), INR(100), "Zerodha", "")
	stocks.Sell("INFY", Q(4), INR(150), "Zerodha", "")

	bank, err := NewBankLedger(store, "INR")
	if err != nil {
		t.Fatalf("NewBankLedger() returned an unexpected error: %v", err)
	}
	bank.OpenAccount("HDFC-1234", "", INR(1000))
	bank.Transfer("HDFC-1234", "HDFC-1234", INR(100), "") // rejected, leaves no files
	bank.Credit("HDFC-1234", INR(500), "")

	// Reopen everything from disk and check the world survived.
	reopened, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore() returned an unexpected error: %v", err)
	}
	stocks2, err := NewStockLedger(reopened, "INR")
	if err != nil {
		t.Fatalf("NewStockLedger() returned an unexpected error: %v", err)
	}
	h, ok := stocks2.Holding("INFY")
	if !ok || !h.Quantity.Equal(Q(6)) || !h.Realized.Equal(INR(200)) {
		t.Errorf("reloaded holding = %+v, want quantity 6 and realized %s", h, INR(200))
	}
	check, err := stocks2.Verify()
	if err != nil {
		t.Fatalf("Verify() returned an unexpected error: %v", err)
	}
	if !check.Clean() {
		t.Errorf("reloaded stock ledger does not verify: %+v", check.Drifts)
	}

	bank2, err := NewBankLedger(reopened, "INR")
	if err != nil {
		t.Fatalf("NewBankLedger() returned an unexpected error: %v", err)
	}
	balance, err := bank2.Balance("HDFC-1234")
	if err != nil {
		t.Fatalf("Balance() returned an unexpected error: %v", err)
	}
	if !balance.Equal(INR(1500)) {
		t.Errorf("reloaded balance = %s, want %s", balance, INR(1500))
	}
	if !bank2.Verify().Clean() {
		t.Errorf("reloaded bank ledger does not verify: %+v", bank2.Verify())
	}
}
