package finance

import (
	"maps"
	"slices"
)

// The state tables are derivable from the transaction logs. Verification
// replays the logs and reports where the stored tables disagree, which
// catches hand-edited files and interrupted saves. The logs are the source
// of truth.

// Drift is one stored field disagreeing with the value derived from the log.
type Drift struct {
	Key     string // symbol or account id
	Field   string
	Stored  string
	Derived string
}

// StockCheck is the result of auditing the stock ledger files against each
// other.
type StockCheck struct {
	Trades int // log entries replayed
	Drifts []Drift
}

// Clean reports whether the audit found nothing wrong.
func (c *StockCheck) Clean() bool { return len(c.Drifts) == 0 }

// Verify replays the trade log and compares the derived positions with the
// stored holdings table, field by field.
func (l *StockLedger) Verify() (*StockCheck, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	derived, err := ReplayHoldings(l.log)
	if err != nil {
		return nil, err
	}
	check := &StockCheck{Trades: len(l.log)}

	keys := make(map[string]bool)
	for k := range l.holdings {
		keys[k] = true
	}
	for k := range derived {
		keys[k] = true
	}
	for _, key := range slices.Sorted(maps.Keys(keys)) {
		stored, storedOK := l.holdings[key]
		replayed, replayedOK := derived[key]
		switch {
		case !storedOK:
			check.Drifts = append(check.Drifts, Drift{Key: key, Field: "record", Stored: "absent", Derived: "present"})
		case !replayedOK:
			check.Drifts = append(check.Drifts, Drift{Key: key, Field: "record", Stored: "present", Derived: "absent"})
		default:
			check.Drifts = append(check.Drifts, compareHolding(key, stored, replayed)...)
		}
	}
	return check, nil
}

func compareHolding(key string, stored, derived Holding) []Drift {
	var drifts []Drift
	if !stored.Quantity.Equal(derived.Quantity) {
		drifts = append(drifts, Drift{Key: key, Field: "quantity", Stored: stored.Quantity.String(), Derived: derived.Quantity.String()})
	}
	if !stored.AvgCost.Equal(derived.AvgCost) {
		drifts = append(drifts, Drift{Key: key, Field: "avgCost", Stored: stored.AvgCost.String(), Derived: derived.AvgCost.String()})
	}
	if !stored.Invested.Equal(derived.Invested) {
		drifts = append(drifts, Drift{Key: key, Field: "invested", Stored: stored.Invested.String(), Derived: derived.Invested.String()})
	}
	if !stored.Realized.Equal(derived.Realized) {
		drifts = append(drifts, Drift{Key: key, Field: "realized", Stored: stored.Realized.String(), Derived: derived.Realized.String()})
	}
	if stored.Broker != derived.Broker {
		drifts = append(drifts, Drift{Key: key, Field: "broker", Stored: stored.Broker, Derived: derived.Broker})
	}
	return drifts
}

// AccountOpening is the balance an account must have started with for its
// stored balance and the logged movements to agree.
type AccountOpening struct {
	Account string
	Opening Money
}

// BankCheck is the result of auditing the bank ledger files against each
// other.
type BankCheck struct {
	Entries  int              // log entries examined
	Unpaired []string         // transfer ids without exactly one matching pair of legs
	Unknown  []string         // account ids in the log but not in the table
	Openings []AccountOpening // derived opening balance per account
}

// Clean reports whether the audit found nothing wrong. A negative derived
// opening balance means the stored balance cannot be explained by any valid
// opening amount.
func (c *BankCheck) Clean() bool {
	if len(c.Unpaired) > 0 || len(c.Unknown) > 0 {
		return false
	}
	for _, o := range c.Openings {
		if o.Opening.IsNegative() {
			return false
		}
	}
	return true
}

// Verify audits the bank ledger. Every transfer id must have exactly two
// matching legs, every logged account must exist in the table, and the
// opening balance derived for each account (stored balance minus logged
// movements) must not be negative.
func (l *BankLedger) Verify() *BankCheck {
	l.mu.Lock()
	defer l.mu.Unlock()

	check := &BankCheck{Entries: len(l.log)}
	deltas := make(map[string]Money)
	outs := make(map[string][]TransferOut)
	ins := make(map[string][]TransferIn)

	add := func(account string, amount Money) {
		deltas[account] = deltas[account].Add(amount)
	}
	for _, tx := range l.log {
		switch v := tx.(type) {
		case Credit:
			add(v.Account, v.Amount)
		case Debit:
			add(v.Account, v.Amount.Neg())
		case TransferOut:
			add(v.Account, v.Amount.Neg())
			outs[v.Transfer] = append(outs[v.Transfer], v)
		case TransferIn:
			add(v.Account, v.Amount)
			ins[v.Transfer] = append(ins[v.Transfer], v)
		}
	}

	ids := make(map[string]bool)
	for id := range outs {
		ids[id] = true
	}
	for id := range ins {
		ids[id] = true
	}
	for _, id := range slices.Sorted(maps.Keys(ids)) {
		out, in := outs[id], ins[id]
		paired := len(out) == 1 && len(in) == 1 &&
			out[0].Amount.Equal(in[0].Amount) &&
			out[0].Account == in[0].Counterparty &&
			in[0].Account == out[0].Counterparty
		if !paired {
			check.Unpaired = append(check.Unpaired, id)
		}
	}

	for _, account := range slices.Sorted(maps.Keys(deltas)) {
		if _, ok := l.accounts[account]; !ok {
			check.Unknown = append(check.Unknown, account)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(l.accounts)) {
		acc := l.accounts[id]
		check.Openings = append(check.Openings, AccountOpening{
			Account: id,
			Opening: acc.Balance.Sub(deltas[id]),
		})
	}
	return check
}
