package finance

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeHoldings(t *testing.T) {
	holdings := map[string]Holding{
		"TCS": {
			Symbol: "TCS", Quantity: Q(2), AvgCost: INR(3000), Invested: INR(6000),
			Realized: INR(0), Updated: ts("2025-08-02 10:00:00"),
		},
		"INFY": {
			Symbol: "INFY", Broker: "Zerodha", Quantity: Q(20), AvgCost: INR(150),
			Invested: INR(3000), Realized: INR(1500), Updated: ts("2025-08-01 10:00:00"),
		},
	}

	var buffer bytes.Buffer
	if err := EncodeHoldings(&buffer, holdings); err != nil {
		t.Fatalf("EncodeHoldings() returned an unexpected error: %v", err)
	}

	// Records come out sorted by symbol, whatever the map order was.
	want := `{"symbol":"INFY","broker":"Zerodha","quantity":20,"avgCostCurrency":"INR","avgCostAmount":150,"investedCurrency":"INR","investedAmount":3000,"realizedCurrency":"INR","realizedAmount":1500,"updated":"2025-08-01 10:00:00"}
{"symbol":"TCS","quantity":2,"avgCostCurrency":"INR","avgCostAmount":3000,"investedCurrency":"INR","investedAmount":6000,"realizedCurrency":"INR","realizedAmount":0,"updated":"2025-08-02 10:00:00"}
`
	if got := buffer.String(); got != want {
		t.Errorf("EncodeHoldings() =\n%s\nwant\n%s", got, want)
	}

	// Two saves of the same state produce identical bytes.
	var second bytes.Buffer
	if err := EncodeHoldings(&second, holdings); err != nil {
		t.Fatalf("EncodeHoldings() returned an unexpected error: %v", err)
	}
	if second.String() != buffer.String() {
		t.Error("EncodeHoldings() is not deterministic")
	}
}

func TestHoldingsRoundTrip(t *testing.T) {
	original := map[string]Holding{
		"INFY": {
			Symbol: "INFY", Broker: "Zerodha", Quantity: Q(20), AvgCost: INR(150.25),
			Invested: INR(3005), Realized: INR(-12.5), Updated: ts("2025-08-01 10:00:00"),
		},
		"WIPRO": {
			Symbol: "WIPRO", Quantity: Q(0), AvgCost: INR(400), Invested: INR(0),
			Realized: INR(500), Updated: ts("2025-08-03 15:30:00"),
		},
	}

	var buffer bytes.Buffer
	if err := EncodeHoldings(&buffer, original); err != nil {
		t.Fatalf("EncodeHoldings() returned an unexpected error: %v", err)
	}
	decoded, err := DecodeHoldings(&buffer)
	if err != nil {
		t.Fatalf("DecodeHoldings() returned an unexpected error: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("round trip has %d records, want %d", len(decoded), len(original))
	}
	for symbol, want := range original {
		got := decoded[symbol]
		if got.Symbol != want.Symbol || got.Broker != want.Broker ||
			!got.Quantity.Equal(want.Quantity) || !got.AvgCost.Equal(want.AvgCost) ||
			!got.Invested.Equal(want.Invested) || !got.Realized.Equal(want.Realized) ||
			!got.Updated.Equal(want.Updated) {
			t.Errorf("holding %q did not survive the round trip: %+v != %+v", symbol, got, want)
		}
	}
}

func TestDecodeHoldings_Rejections(t *testing.T) {
	testCases := []struct {
		name    string
		stream  string
		wantMsg string
	}{
		{
			name:    "missing symbol",
			stream:  `{"quantity":5}`,
			wantMsg: "has no symbol",
		},
		{
			name:    "negative quantity",
			stream:  `{"symbol":"INFY","quantity":-5}`,
			wantMsg: "negative quantity",
		},
		{
			name: "duplicate symbol",
			stream: `{"symbol":"INFY","quantity":5}
{"symbol":"INFY","quantity":6}`,
			wantMsg: "appears twice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeHoldings(strings.NewReader(tc.stream))
			if err == nil {
				t.Fatal("DecodeHoldings() expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantMsg)
			}
		})
	}
}

func TestEncodeAccounts(t *testing.T) {
	accounts := map[string]BankAccount{
		"SBI-5678":  {Account: "SBI-5678", Balance: INR(300), Opened: ts("2025-08-02 09:00:00")},
		"HDFC-1234": {Account: "HDFC-1234", Label: "Salary account", Balance: INR(700.5), Opened: ts("2025-08-01 09:00:00")},
	}

	var buffer bytes.Buffer
	if err := EncodeAccounts(&buffer, accounts); err != nil {
		t.Fatalf("EncodeAccounts() returned an unexpected error: %v", err)
	}

	want := `{"account":"HDFC-1234","label":"Salary account","balanceCurrency":"INR","balanceAmount":700.5,"opened":"2025-08-01 09:00:00"}
{"account":"SBI-5678","balanceCurrency":"INR","balanceAmount":300,"opened":"2025-08-02 09:00:00"}
`
	if got := buffer.String(); got != want {
		t.Errorf("EncodeAccounts() =\n%s\nwant\n%s", got, want)
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	original := map[string]BankAccount{
		"HDFC-1234": {Account: "HDFC-1234", Label: "Salary account", Balance: INR(700.5), Opened: ts("2025-08-01 09:00:00")},
		"SBI-5678":  {Account: "SBI-5678", Balance: INR(0), Opened: ts("2025-08-02 09:00:00")},
	}

	var buffer bytes.Buffer
	if err := EncodeAccounts(&buffer, original); err != nil {
		t.Fatalf("EncodeAccounts() returned an unexpected error: %v", err)
	}
	decoded, err := DecodeAccounts(&buffer)
	if err != nil {
		t.Fatalf("DecodeAccounts() returned an unexpected error: %v", err)
	}

	for id, want := range original {
		got := decoded[id]
		if got.Account != want.Account || got.Label != want.Label ||
			!got.Balance.Equal(want.Balance) || !got.Opened.Equal(want.Opened) {
			t.Errorf("account %q did not survive the round trip: %+v != %+v", id, got, want)
		}
	}
}

func TestDecodeAccounts_Rejections(t *testing.T) {
	testCases := []struct {
		name    string
		stream  string
		wantMsg string
	}{
		{
			name:    "missing id",
			stream:  `{"balanceAmount":100}`,
			wantMsg: "has no id",
		},
		{
			name:    "negative balance",
			stream:  `{"account":"HDFC-1234","balanceCurrency":"INR","balanceAmount":-1}`,
			wantMsg: "negative balance",
		},
		{
			name: "duplicate id",
			stream: `{"account":"A","balanceAmount":1}
{"account":"A","balanceAmount":2}`,
			wantMsg: "appears twice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAccounts(strings.NewReader(tc.stream))
			if err == nil {
				t.Fatal("DecodeAccounts() expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantMsg)
			}
		})
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	original := NewCatalog()
	original.Add(NewSecurity("INFY", "Infosys Ltd"))
	original.Add(NewSecurity("TCS", "Tata Consultancy Services Ltd"))

	var buffer bytes.Buffer
	if err := EncodeCatalog(&buffer, original); err != nil {
		t.Fatalf("EncodeCatalog() returned an unexpected error: %v", err)
	}

	want := `{"symbol":"INFY","name":"Infosys Ltd"}
{"symbol":"TCS","name":"Tata Consultancy Services Ltd"}
`
	if got := buffer.String(); got != want {
		t.Errorf("EncodeCatalog() =\n%s\nwant\n%s", got, want)
	}

	decoded, err := DecodeCatalog(&buffer)
	if err != nil {
		t.Fatalf("DecodeCatalog() returned an unexpected error: %v", err)
	}
	if decoded.Len() != 2 {
		t.Fatalf("DecodeCatalog() has %d securities, want 2", decoded.Len())
	}
	sec, ok := decoded.Get("INFY")
	if !ok || sec.Name() != "Infosys Ltd" {
		t.Errorf("DecodeCatalog() lost INFY: %+v", sec)
	}
}

func TestDecodeCatalog_RejectsDuplicate(t *testing.T) {
	stream := `{"symbol":"INFY","name":"Infosys Ltd"}
{"symbol":"INFY","name":"Infosys again"}`

	_, err := DecodeCatalog(strings.NewReader(stream))
	if err == nil {
		t.Fatal("DecodeCatalog() expected an error, got nil")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %q, want it to name line 2", err)
	}
}
