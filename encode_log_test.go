package finance

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeStockLog(t *testing.T) {
	// A multi-line string representing a JSONL stream with both trade types.
	jsonlStream := `
{"command":"buy","time":"2025-08-01 10:30:00","symbol":"INFY","broker":"Zerodha","quantity":10,"priceCurrency":"INR","priceAmount":1500.5}

{"command":"sell","time":"2025-08-02 11:00:00","symbol":"INFY","quantity":5,"priceCurrency":"INR","priceAmount":1620}
`
	txs, err := DecodeStockLog(strings.NewReader(jsonlStream))

	// 1. Check for unexpected errors
	if err != nil {
		t.Fatalf("DecodeStockLog() returned an unexpected error: %v", err)
	}

	// 2. Check the number of transactions decoded; the blank line is skipped
	if len(txs) != 2 {
		t.Fatalf("DecodeStockLog() decoded wrong number of transactions. Got: %d, want: %d", len(txs), 2)
	}

	// 3. Check the decoded content
	buy, ok := txs[0].(Buy)
	if !ok {
		t.Fatalf("Transaction 1 has wrong type. Got: %T, want: Buy", txs[0])
	}
	if buy.Symbol != "INFY" || buy.Broker != "Zerodha" {
		t.Errorf("Buy = %q at %q, want INFY at Zerodha", buy.Symbol, buy.Broker)
	}
	if !buy.Quantity.Equal(Q(10)) || !buy.Price.Equal(INR(1500.5)) {
		t.Errorf("Buy quantity/price = %s/%s, want 10/%s", buy.Quantity, buy.Price, INR(1500.5))
	}
	if !buy.When().Equal(ts("2025-08-01 10:30:00")) {
		t.Errorf("Buy.When() = %s, want 2025-08-01 10:30:00", buy.When())
	}

	sell, ok := txs[1].(Sell)
	if !ok {
		t.Fatalf("Transaction 2 has wrong type. Got: %T, want: Sell", txs[1])
	}
	if sell.Broker != "" {
		t.Errorf("Sell.Broker = %q, want empty", sell.Broker)
	}
	if !sell.Price.Equal(INR(1620)) {
		t.Errorf("Sell.Price = %s, want %s", sell.Price, INR(1620))
	}
}

func TestDecodeBankLog(t *testing.T) {
	jsonlStream := `
{"command":"credit","time":"2025-08-03 09:00:00","memo":"salary","account":"HDFC-1234","currency":"INR","amount":50000}
{"command":"debit","time":"2025-08-04 18:15:00","account":"HDFC-1234","currency":"INR","amount":200.5}
{"command":"transfer-out","time":"2025-08-05 12:00:00","account":"HDFC-1234","counterparty":"SBI-5678","transfer":"a1b2","currency":"INR","amount":300}
{"command":"transfer-in","time":"2025-08-05 12:00:00","account":"SBI-5678","counterparty":"HDFC-1234","transfer":"a1b2","currency":"INR","amount":300}
`
	txs, err := DecodeBankLog(strings.NewReader(jsonlStream))
	if err != nil {
		t.Fatalf("DecodeBankLog() returned an unexpected error: %v", err)
	}

	expectedTypes := []reflect.Type{
		reflect.TypeOf(Credit{}),
		reflect.TypeOf(Debit{}),
		reflect.TypeOf(TransferOut{}),
		reflect.TypeOf(TransferIn{}),
	}
	if len(txs) != len(expectedTypes) {
		t.Fatalf("DecodeBankLog() decoded wrong number of transactions. Got: %d, want: %d", len(txs), len(expectedTypes))
	}
	for i, tx := range txs {
		if reflect.TypeOf(tx) != expectedTypes[i] {
			t.Errorf("Transaction %d has wrong type. Got: %T, want: %v", i+1, tx, expectedTypes[i])
		}
	}

	credit := txs[0].(Credit)
	if credit.Memo != "salary" || !credit.Amount.Equal(INR(50000)) {
		t.Errorf("Credit = %q for %s, want salary for %s", credit.Memo, credit.Amount, INR(50000))
	}

	// The two legs are linked by the shared transfer id.
	out, in := txs[2].(TransferOut), txs[3].(TransferIn)
	if out.Transfer != "a1b2" || in.Transfer != "a1b2" {
		t.Errorf("transfer ids = %q and %q, want a1b2 for both", out.Transfer, in.Transfer)
	}
	if out.Counterparty != in.Account || in.Counterparty != out.Account {
		t.Errorf("legs do not cross-reference: out %q/%q, in %q/%q",
			out.Account, out.Counterparty, in.Account, in.Counterparty)
	}
}

func TestEncodeTransaction(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "buy with broker and memo",
			tx:   NewBuy(ts("2025-08-01 10:30:00"), "first lot", "INFY", "Zerodha", Q(10), INR(1500.5)),
			want: `{"command":"buy","time":"2025-08-01 10:30:00","memo":"first lot","symbol":"INFY","broker":"Zerodha","quantity":10,"priceCurrency":"INR","priceAmount":1500.5}`,
		},
		{
			name: "sell without optionals",
			tx:   NewSell(ts("2025-08-02 11:00:00"), "", "INFY", "", Q(5), INR(1620)),
			want: `{"command":"sell","time":"2025-08-02 11:00:00","symbol":"INFY","quantity":5,"priceCurrency":"INR","priceAmount":1620}`,
		},
		{
			name: "credit",
			tx:   NewCredit(ts("2025-08-03 09:00:00"), "salary", "HDFC-1234", INR(50000)),
			want: `{"command":"credit","time":"2025-08-03 09:00:00","memo":"salary","account":"HDFC-1234","currency":"INR","amount":50000}`,
		},
		{
			name: "debit",
			tx:   NewDebit(ts("2025-08-04 18:15:00"), "", "HDFC-1234", INR(200.50)),
			want: `{"command":"debit","time":"2025-08-04 18:15:00","account":"HDFC-1234","currency":"INR","amount":200.5}`,
		},
		{
			name: "transfer leg",
			tx: TransferOut{
				bankCmd:      bankCmd{baseCmd: baseCmd{Command: CmdTransferOut, Time: ts("2025-08-05 12:00:00")}, Account: "HDFC-1234"},
				Counterparty: "SBI-5678",
				Transfer:     "a1b2",
				Amount:       INR(300),
			},
			want: `{"command":"transfer-out","time":"2025-08-05 12:00:00","account":"HDFC-1234","counterparty":"SBI-5678","transfer":"a1b2","currency":"INR","amount":300}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := EncodeTransaction(&buffer, tc.tx); err != nil {
				t.Fatalf("EncodeTransaction() returned an unexpected error: %v", err)
			}
			if got := strings.TrimSuffix(buffer.String(), "\n"); got != tc.want {
				t.Errorf("EncodeTransaction() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStockLogRoundTrip(t *testing.T) {
	original := []Transaction{
		NewBuy(ts("2025-08-01 10:30:00"), "first lot", "INFY", "Zerodha", Q(10), INR(1500.5)),
		NewBuy(ts("2025-08-02 10:30:00"), "", "TCS", "", Q(3), INR(3010.25)),
		NewSell(ts("2025-08-03 11:00:00"), "profit taking", "INFY", "Zerodha", Q(4), INR(1620)),
	}

	var buffer bytes.Buffer
	for _, tx := range original {
		if err := EncodeTransaction(&buffer, tx); err != nil {
			t.Fatalf("EncodeTransaction() returned an unexpected error: %v", err)
		}
	}

	decoded, err := DecodeStockLog(&buffer)
	if err != nil {
		t.Fatalf("DecodeStockLog() returned an unexpected error: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("round trip decoded %d transactions, want %d", len(decoded), len(original))
	}
	for i := range original {
		if !original[i].Equal(decoded[i]) {
			t.Errorf("transaction %d did not survive the round trip: %+v != %+v", i+1, original[i], decoded[i])
		}
	}
}

func TestBankLogRoundTrip(t *testing.T) {
	out, in := NewTransfer(ts("2025-08-05 12:00:00"), "rent", "HDFC-1234", "SBI-5678", INR(300))
	original := []Transaction{
		NewCredit(ts("2025-08-03 09:00:00"), "salary", "HDFC-1234", INR(50000)),
		NewDebit(ts("2025-08-04 18:15:00"), "", "HDFC-1234", INR(200.5)),
		out, in,
	}

	var buffer bytes.Buffer
	for _, tx := range original {
		if err := EncodeTransaction(&buffer, tx); err != nil {
			t.Fatalf("EncodeTransaction() returned an unexpected error: %v", err)
		}
	}

	decoded, err := DecodeBankLog(&buffer)
	if err != nil {
		t.Fatalf("DecodeBankLog() returned an unexpected error: %v", err)
	}
	if len(decoded) != len(original) {
		t.Fatalf("round trip decoded %d transactions, want %d", len(decoded), len(original))
	}
	for i := range original {
		if !original[i].Equal(decoded[i]) {
			t.Errorf("transaction %d did not survive the round trip: %+v != %+v", i+1, original[i], decoded[i])
		}
	}
}

func TestDecodeLog_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		stream  string
		decode  func(r *strings.Reader) ([]Transaction, error)
		wantMsg string
	}{
		{
			name:    "unknown stock command",
			stream:  `{"command":"dividend","time":"2025-08-01 10:00:00","symbol":"INFY"}`,
			decode:  func(r *strings.Reader) ([]Transaction, error) { return DecodeStockLog(r) },
			wantMsg: `unknown stock transaction command: "dividend"`,
		},
		{
			name:    "bank command in stock log",
			stream:  `{"command":"credit","time":"2025-08-01 10:00:00","account":"A","amount":10}`,
			decode:  func(r *strings.Reader) ([]Transaction, error) { return DecodeStockLog(r) },
			wantMsg: `unknown stock transaction command: "credit"`,
		},
		{
			name:    "unknown bank command",
			stream:  `{"command":"buy","time":"2025-08-01 10:00:00","symbol":"INFY","quantity":1,"priceAmount":10}`,
			decode:  func(r *strings.Reader) ([]Transaction, error) { return DecodeBankLog(r) },
			wantMsg: `unknown bank transaction command: "buy"`,
		},
		{
			name:    "malformed line",
			stream:  "{\"command\":\"buy\"\n{\"command\":\"buy\",\"time\":\"2025-08-01 10:00:00\",\"symbol\":\"INFY\",\"quantity\":1,\"priceAmount\":10}",
			decode:  func(r *strings.Reader) ([]Transaction, error) { return DecodeStockLog(r) },
			wantMsg: "invalid transaction on line 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.decode(strings.NewReader(tc.stream))
			if err == nil {
				t.Fatal("decoding expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantMsg)
			}
		})
	}
}
