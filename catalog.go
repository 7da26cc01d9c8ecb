package finance

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Security identifies a stock that can be traded in the ledger, mapping a
// ticker symbol to a display name.
type Security struct {
	symbol string
	name   string
}

// NewSecurity returns a security with the given symbol and display name.
// Symbols are uppercased so that "infy" and "INFY" name the same stock.
func NewSecurity(symbol, name string) Security {
	return Security{
		symbol: strings.ToUpper(strings.TrimSpace(symbol)),
		name:   strings.TrimSpace(name),
	}
}

// Symbol returns the ticker symbol.
func (s Security) Symbol() string { return s.symbol }

// Name returns the display name.
func (s Security) Name() string { return s.name }

// MarshalJSON implements the json.Marshaler interface for Security.
func (s Security) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", s.symbol)
	w.Optional("name", s.name)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Security.
func (s *Security) UnmarshalJSON(data []byte) error {
	var temp struct {
		Symbol string `json:"symbol"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	s.symbol = temp.Symbol
	s.name = temp.Name
	return nil
}

// Catalog is the registry of securities known to the stock ledger. It is a
// convenience for display and autocompletion: trading a symbol that is not in
// the catalog declares it on the fly.
type Catalog struct {
	index map[string]Security
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]Security)}
}

// DefaultCatalog returns a catalog seeded with a handful of common NSE
// stocks. It is used when no catalog file exists yet.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, sec := range []Security{
		NewSecurity("RELIANCE", "Reliance Industries Ltd"),
		NewSecurity("TCS", "Tata Consultancy Services Ltd"),
		NewSecurity("INFY", "Infosys Ltd"),
		NewSecurity("HDFCBANK", "HDFC Bank Ltd"),
		NewSecurity("ICICIBANK", "ICICI Bank Ltd"),
	} {
		c.index[sec.symbol] = sec
	}
	return c
}

// Has reports whether the symbol is declared. Lookup is case-insensitive.
func (c *Catalog) Has(symbol string) bool {
	_, ok := c.index[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// Get returns the declared security for the symbol.
func (c *Catalog) Get(symbol string) (Security, bool) {
	sec, ok := c.index[strings.ToUpper(strings.TrimSpace(symbol))]
	return sec, ok
}

// Add declares a new security. It returns ErrInvalidArgument for an empty
// symbol and ErrDuplicateSymbol when the symbol is already declared.
func (c *Catalog) Add(sec Security) error {
	if sec.symbol == "" {
		return fmt.Errorf("%w: security symbol is missing", ErrInvalidArgument)
	}
	if _, ok := c.index[sec.symbol]; ok {
		return fmt.Errorf("%w: security %q already declared", ErrDuplicateSymbol, sec.symbol)
	}
	c.index[sec.symbol] = sec
	return nil
}

// declare registers a bare symbol discovered from a trade, named after
// itself. It is a no-op for symbols already declared.
func (c *Catalog) declare(symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if _, ok := c.index[symbol]; ok {
		return
	}
	c.index[symbol] = Security{symbol: symbol, name: symbol}
}

// clone returns an independent copy of the catalog.
func (c *Catalog) clone() *Catalog {
	return &Catalog{index: maps.Clone(c.index)}
}

// Len returns the number of declared securities.
func (c *Catalog) Len() int { return len(c.index) }

// All returns the declared securities sorted by symbol.
func (c *Catalog) All() iter.Seq[Security] {
	keys := slices.Sorted(maps.Keys(c.index))
	return func(yield func(Security) bool) {
		for _, key := range keys {
			if !yield(c.index[key]) {
				return
			}
		}
	}
}
