package finance

import (
	"fmt"
	"iter"
)

// SecurityValuation is the valuation of one position at a given price.
type SecurityValuation struct {
	Symbol      string
	Broker      string
	Quantity    Quantity
	AvgCost     Money
	Invested    Money
	Price       Money // per share, zero when the position is empty and no price was given
	MarketValue Money
	Unrealized  Money
	Realized    Money
}

// ProfitLoss returns unrealized plus realized profit for the row.
func (v SecurityValuation) ProfitLoss() Money { return v.Unrealized.Add(v.Realized) }

// Valuation aggregates the portfolio valuation at caller-supplied prices.
type Valuation struct {
	Securities  []SecurityValuation
	Invested    Money
	MarketValue Money
	Unrealized  Money
	Realized    Money
}

// ProfitLoss returns the headline figure: unrealized plus realized profit.
func (v *Valuation) ProfitLoss() Money { return v.Unrealized.Add(v.Realized) }

// Valuate values the given positions at the given prices per share, keyed by
// symbol. It is a pure function: it reads nothing but its arguments and
// mutates nothing.
//
// Every position with shares needs a price; a missing one is an
// ErrInvalidArgument rather than a silent zero, so a stale price map cannot
// understate the portfolio. Fully sold positions need no price and
// contribute their realized profit only.
func Valuate(holdings iter.Seq[Holding], prices map[string]Money) (*Valuation, error) {
	v := &Valuation{}
	for h := range holdings {
		row := SecurityValuation{
			Symbol:   h.Symbol,
			Broker:   h.Broker,
			Quantity: h.Quantity,
			AvgCost:  h.AvgCost,
			Invested: h.Invested,
			Realized: h.Realized,
		}
		price, ok := prices[h.Symbol]
		if !ok {
			if !h.Quantity.IsZero() {
				return nil, fmt.Errorf("%w: no price for held symbol %q", ErrInvalidArgument, h.Symbol)
			}
			zero := M(0, h.Realized.Currency())
			row.MarketValue, row.Unrealized = zero, zero
		} else {
			if price.IsNegative() || price.IsZero() {
				return nil, fmt.Errorf("%w: price for %q must be positive, got %s", ErrInvalidArgument, h.Symbol, price)
			}
			if price.Currency() == "" {
				price = M(price.value, h.AvgCost.Currency())
			} else if price.Currency() != h.AvgCost.Currency() {
				return nil, fmt.Errorf("%w: price for %q in %s does not match the position held in %s",
					ErrInvalidArgument, h.Symbol, price.Currency(), h.AvgCost.Currency())
			}
			row.Price = price
			row.MarketValue = h.MarketValue(price)
			row.Unrealized = h.Unrealized(price)
		}
		v.Securities = append(v.Securities, row)
		v.Invested = v.Invested.Add(row.Invested)
		v.MarketValue = v.MarketValue.Add(row.MarketValue)
		v.Unrealized = v.Unrealized.Add(row.Unrealized)
		v.Realized = v.Realized.Add(row.Realized)
	}
	return v, nil
}
