package cmd

import (
	"testing"

	"github.com/google/subcommands"

	finance "github.com/shobhitag11/StockMarketLogger"
)

func TestBuyCmd(t *testing.T) {
	testLedgerDir(t)

	cmd := &buyCmd{symbol: "INFY", quantity: 10, price: 1500, broker: "Zerodha"}
	if got := run(t, cmd); got != subcommands.ExitSuccess {
		t.Fatalf("buy = %v, want success", got)
	}

	// the position must be visible to a fresh ledger loaded from disk
	ledger, err := OpenStockLedger()
	if err != nil {
		t.Fatal(err)
	}
	holding, ok := ledger.Holding("INFY")
	if !ok {
		t.Fatal("no INFY position after buy")
	}
	if !holding.Quantity.Equal(finance.Q(10)) {
		t.Errorf("quantity = %s, want 10", holding.Quantity)
	}
	if !holding.AvgCost.Equal(finance.M(1500, "INR")) {
		t.Errorf("avg cost = %s, want %s", holding.AvgCost, finance.M(1500, "INR"))
	}
	if holding.Broker != "Zerodha" {
		t.Errorf("broker = %q, want Zerodha", holding.Broker)
	}
}

func TestBuyCmd_MissingSymbol(t *testing.T) {
	testLedgerDir(t)

	if got := run(t, &buyCmd{quantity: 10, price: 1500}); got != subcommands.ExitUsageError {
		t.Errorf("buy without symbol = %v, want usage error", got)
	}
}

func TestSellCmd_MoreThanHeld(t *testing.T) {
	testLedgerDir(t)

	if got := run(t, &buyCmd{symbol: "INFY", quantity: 10, price: 1500}); got != subcommands.ExitSuccess {
		t.Fatal("buy failed")
	}
	if got := run(t, &sellCmd{symbol: "INFY", quantity: 20, price: 1600}); got != subcommands.ExitFailure {
		t.Errorf("oversell = %v, want failure", got)
	}
}

func TestDeclareCmd(t *testing.T) {
	testLedgerDir(t)

	cmd := &declareCmd{symbol: "TATAMOTORS", name: "Tata Motors Ltd"}
	if got := run(t, cmd); got != subcommands.ExitSuccess {
		t.Fatalf("declare = %v, want success", got)
	}

	ledger, err := OpenStockLedger()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for sec := range ledger.Securities() {
		if sec.Symbol() == "TATAMOTORS" && sec.Name() == "Tata Motors Ltd" {
			found = true
		}
	}
	if !found {
		t.Error("TATAMOTORS not in the catalog after declare")
	}
}

func TestMetricsCmd(t *testing.T) {
	testLedgerDir(t)

	if got := run(t, &buyCmd{symbol: "INFY", quantity: 10, price: 1500}); got != subcommands.ExitSuccess {
		t.Fatal("buy failed")
	}

	cmd := &metricsCmd{prices: priceFlag{"INFY": finance.M(1600, "INR")}}
	if got := run(t, cmd); got != subcommands.ExitSuccess {
		t.Errorf("metrics = %v, want success", got)
	}

	// a held symbol without a price cannot be valued
	if got := run(t, &metricsCmd{prices: priceFlag{}}); got != subcommands.ExitFailure {
		t.Errorf("metrics without price = %v, want failure", got)
	}
}

func TestPriceFlag(t *testing.T) {
	testLedgerDir(t)

	p := make(priceFlag)
	if err := p.Set("infy=1550.5"); err != nil {
		t.Fatal(err)
	}
	if got, want := p["INFY"], finance.M(1550.5, "INR"); !got.Equal(want) {
		t.Errorf("p[INFY] = %s, want %s", got, want)
	}

	if err := p.Set("INFY"); err == nil {
		t.Error("Set without = did not fail")
	}
	if err := p.Set("INFY=abc"); err == nil {
		t.Error("Set with a non-number did not fail")
	}
}

func TestHistoryCmd_HeadTailExclusive(t *testing.T) {
	testLedgerDir(t)

	if got := run(t, &historyCmd{head: 1, tail: 1}); got != subcommands.ExitUsageError {
		t.Errorf("history -head -tail = %v, want usage error", got)
	}
}

func TestClip(t *testing.T) {
	entries := []numbered{{i: 0}, {i: 1}, {i: 2}}

	if got := clip(entries, 2, 0); len(got) != 2 || got[0].i != 0 || got[1].i != 1 {
		t.Errorf("head 2 = %v", got)
	}
	if got := clip(entries, 0, 2); len(got) != 2 || got[0].i != 1 || got[1].i != 2 {
		t.Errorf("tail 2 = %v", got)
	}
	if got := clip(entries, 0, 0); len(got) != 3 {
		t.Errorf("no clip = %v", got)
	}
	if got := clip(entries, 5, 0); len(got) != 3 {
		t.Errorf("head beyond length = %v", got)
	}
}
