package finance

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// StockStore is the persistence surface the stock ledger consumes. *Store
// implements it.
type StockStore interface {
	LoadHoldings() (map[string]Holding, error)
	SaveHoldings(map[string]Holding) error
	LoadStockLog() ([]Transaction, error)
	AppendStockLog(...Transaction) error
	LoadCatalog() (*Catalog, error)
	SaveCatalog(*Catalog) error
}

// Holding is the position held in one stock.
type Holding struct {
	Symbol   string    // Symbol is the stock ticker, unique in the table.
	Broker   string    // Broker of the most recent trade that named one.
	Quantity Quantity  // Quantity is the number of shares held, never negative.
	AvgCost  Money     // AvgCost is the weighted average cost per share, rounded to the minor unit.
	Invested Money     // Invested is the capital in the position, Quantity times AvgCost after each sale.
	Realized Money     // Realized is the cumulative profit realized on sales.
	Updated  Timestamp // Updated is the time of the last trade on this position.
}

// MarketValue returns the position value at the given price per share.
func (h Holding) MarketValue(price Money) Money { return price.Mul(h.Quantity) }

// Unrealized returns the profit the position would realize at the given
// price per share.
func (h Holding) Unrealized(price Money) Money { return h.MarketValue(price).Sub(h.Invested) }

// StockLedger tracks stock positions and their trade history.
//
// All exported methods are safe for concurrent use: a single mutex
// serializes operations, and each mutation follows validate, persist,
// commit. When a persist step fails the in-memory state is unchanged and the
// error wraps ErrPersistence.
type StockLedger struct {
	mu       sync.Mutex
	store    StockStore
	currency string
	catalog  *Catalog
	holdings map[string]Holding
	log      []Transaction

	now func() Timestamp // stubbed in tests
}

// NewStockLedger loads a stock ledger from the store. Absent files yield an
// empty ledger, unreadable or corrupted ones an error.
func NewStockLedger(store StockStore, currency string) (*StockLedger, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	catalog, err := store.LoadCatalog()
	if err != nil {
		return nil, err
	}
	holdings, err := store.LoadHoldings()
	if err != nil {
		return nil, err
	}
	txs, err := store.LoadStockLog()
	if err != nil {
		return nil, err
	}
	return &StockLedger{
		store:    store,
		currency: currency,
		catalog:  catalog,
		holdings: holdings,
		log:      txs,
		now:      Now,
	}, nil
}

// Currency returns the ledger's default trade currency.
func (l *StockLedger) Currency() string { return l.currency }

// Buy records a purchase of quantity shares of symbol at price per share.
// The position's average cost is re-weighted over the old position and the
// new shares. An unknown symbol is declared in the catalog on the fly.
func (l *StockLedger) Buy(symbol string, quantity Quantity, price Money, broker, memo string) (Buy, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := NewBuy(l.now(), memo, symbol, broker, quantity, price)
	validated, err := tx.Validate(l)
	if err != nil {
		return Buy{}, err
	}
	tx = validated.(Buy)

	next := maps.Clone(l.holdings)
	next[tx.Symbol] = applyBuy(next, tx)

	if err := l.store.AppendStockLog(tx); err != nil {
		return Buy{}, err
	}
	if err := l.store.SaveHoldings(next); err != nil {
		return Buy{}, err
	}
	l.log = append(l.log, tx)
	l.holdings = next

	if !l.catalog.Has(tx.Symbol) {
		cat := l.catalog.clone()
		cat.declare(tx.Symbol)
		if err := l.store.SaveCatalog(cat); err != nil {
			// The trade is committed; the catalog is display data and will
			// be rewritten whole on the next save.
			log.Warn().Err(err).Str("symbol", tx.Symbol).Msg("could not save the security catalog")
		}
		l.catalog = cat
	}
	return tx, nil
}

// Sell records a sale of quantity shares of symbol at price per share. The
// position must cover the quantity; the check runs before any state change.
// The remaining position keeps its average cost, and the realized profit
// grows by the price-to-average spread times the quantity sold. A fully sold
// position is retained at zero quantity so its realized figure stays
// visible.
func (l *StockLedger) Sell(symbol string, quantity Quantity, price Money, broker, memo string) (Sell, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := NewSell(l.now(), memo, symbol, broker, quantity, price)
	validated, err := tx.Validate(l)
	if err != nil {
		return Sell{}, err
	}
	tx = validated.(Sell)

	next := maps.Clone(l.holdings)
	next[tx.Symbol] = applySell(next, tx)

	if err := l.store.AppendStockLog(tx); err != nil {
		return Sell{}, err
	}
	if err := l.store.SaveHoldings(next); err != nil {
		return Sell{}, err
	}
	l.log = append(l.log, tx)
	l.holdings = next
	return tx, nil
}

// applyBuy returns the position after the purchase. The average cost is the
// total invested capital over the total quantity, rounded to the currency's
// minor unit.
func applyBuy(holdings map[string]Holding, tx Buy) Holding {
	h, ok := holdings[tx.Symbol]
	if !ok {
		h = Holding{Symbol: tx.Symbol, Realized: M(0, tx.Price.Currency())}
	}
	h.Quantity = h.Quantity.Add(tx.Quantity)
	h.Invested = h.Invested.Add(tx.Cost())
	h.AvgCost = h.Invested.Div(h.Quantity).Round()
	if tx.Broker != "" {
		h.Broker = tx.Broker
	}
	h.Updated = tx.When()
	return h
}

// applySell returns the position after the sale. Validation has already
// established that the position covers the quantity.
func applySell(holdings map[string]Holding, tx Sell) Holding {
	h := holdings[tx.Symbol]
	h.Quantity = h.Quantity.Sub(tx.Quantity)
	h.Realized = h.Realized.Add(tx.Price.Sub(h.AvgCost).Mul(tx.Quantity))
	h.Invested = h.AvgCost.Mul(h.Quantity)
	if tx.Broker != "" {
		h.Broker = tx.Broker
	}
	h.Updated = tx.When()
	return h
}

// ReplayHoldings derives a holdings table from a trade log, applying the
// same rules as the live ledger. Verification compares its result with the
// stored table.
func ReplayHoldings(txs []Transaction) (map[string]Holding, error) {
	holdings := make(map[string]Holding)
	for i, tx := range txs {
		switch v := tx.(type) {
		case Buy:
			holdings[v.Symbol] = applyBuy(holdings, v)
		case Sell:
			h, ok := holdings[v.Symbol]
			if !ok || h.Quantity.LessThan(v.Quantity) {
				return nil, fmt.Errorf("%w: transaction %d sells %s of %q beyond the replayed position",
					ErrInsufficientHoldings, i+1, v.Quantity, v.Symbol)
			}
			holdings[v.Symbol] = applySell(holdings, v)
		default:
			return nil, fmt.Errorf("%w: transaction %d has unexpected command %q", ErrInvalidArgument, i+1, tx.What())
		}
	}
	return holdings, nil
}

// Holding returns the current position in symbol.
func (l *StockLedger) Holding(symbol string) (Holding, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.holdings[strings.ToUpper(strings.TrimSpace(symbol))]
	return h, ok
}

// Holdings returns the positions sorted by symbol. The sequence snapshots
// the table when iterated, so a restart yields consistent rows.
func (l *StockLedger) Holdings() iter.Seq[Holding] {
	return func(yield func(Holding) bool) {
		l.mu.Lock()
		rows := make([]Holding, 0, len(l.holdings))
		for _, symbol := range slices.Sorted(maps.Keys(l.holdings)) {
			rows = append(rows, l.holdings[symbol])
		}
		l.mu.Unlock()
		for _, h := range rows {
			if !yield(h) {
				return
			}
		}
	}
}

// History returns the recorded trades in ledger order, keyed by their
// position in the log. A transaction is yielded when it matches any of the
// filters; with no filters every transaction is yielded.
func (l *StockLedger) History(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
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

// accepts reports whether tx matches any of the filters, or all of them are
// absent.
func accepts(filters []func(Transaction) bool, tx Transaction) bool {
	if len(filters) == 0 {
		return true
	}
	for _, filter := range filters {
		if filter(tx) {
			return true
		}
	}
	return false
}

// AddSecurity declares a security in the catalog and persists it. It returns
// ErrDuplicateSymbol when the symbol is already declared.
func (l *StockLedger) AddSecurity(sec Security) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.catalog.clone()
	if err := next.Add(sec); err != nil {
		return err
	}
	if err := l.store.SaveCatalog(next); err != nil {
		return err
	}
	l.catalog = next
	return nil
}

// Securities returns the catalog entries sorted by symbol.
func (l *StockLedger) Securities() iter.Seq[Security] {
	return func(yield func(Security) bool) {
		l.mu.Lock()
		secs := slices.Collect(l.catalog.All())
		l.mu.Unlock()
		for _, sec := range secs {
			if !yield(sec) {
				return
			}
		}
	}
}
