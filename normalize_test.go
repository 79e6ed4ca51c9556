package coinsum

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"coinsum/date"
)

func TestParseCurrency(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain dollars", "$100.00", "100"},
		{"wrapped dollars", "($12.34)", "12.34"},
		{"thousands separators", "$1,234.56", "1234.56"},
		{"wrapped with separators", "($50,000.00)", "50000"},
		{"no symbol at all", "42.5", "42.5"},
		{"surrounding spaces", " $35.00 ", "35"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCurrency(tc.input, "$")
			if err != nil {
				t.Fatalf("parseCurrency(%q) failed: %v", tc.input, err)
			}
			if want := decimal.RequireFromString(tc.want); !got.Equal(want) {
				t.Errorf("parseCurrency(%q) = %s, want %s", tc.input, got, want)
			}
		})
	}

	if _, err := parseCurrency("n/a", "$"); !errors.Is(err, ErrBadValue) {
		t.Errorf("parseCurrency of garbage: got %v, want ErrBadValue", err)
	}
}

func TestParseQuantity(t *testing.T) {
	got, err := parseQuantity("0.0125 BTC", "BTC")
	if err != nil {
		t.Fatalf("parseQuantity() failed: %v", err)
	}
	if want := decimal.RequireFromString("0.0125"); !got.Equal(want) {
		t.Errorf("parseQuantity() = %s, want %s", got, want)
	}

	// the staking export glues the unit without a space sometimes
	got, err = parseQuantity("0.001BTC", "BTC")
	if err != nil {
		t.Fatalf("parseQuantity() failed: %v", err)
	}
	if want := decimal.RequireFromString("0.001"); !got.Equal(want) {
		t.Errorf("parseQuantity() = %s, want %s", got, want)
	}

	if _, err := parseQuantity("", "BTC"); !errors.Is(err, ErrBadValue) {
		t.Errorf("parseQuantity of empty cell: got %v, want ErrBadValue", err)
	}
}

func TestRecipe_Apply(t *testing.T) {
	table := NewTable("t", []string{"Date", "USD Amount USD", "BTC Amount BTC"})
	table.Append("2021-04-01", "($100.00)", "0.002 BTC")
	table.Append("2021-05-02", "($200.00)", "0.004 BTC")
	rs := NewRecordSet(table)

	recipe := Recipe{}.
		Dates("Date").
		Currency("USD Amount USD", "$").
		Quantity("{ASSET} Amount {ASSET}", "{ASSET}").
		expand("BTC")

	if err := recipe.Apply(rs); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	if d, ok := rs.Value(0, "USD Amount USD").Decimal(); !ok || !d.Equal(decimal.NewFromInt(100)) {
		t.Errorf("currency cell = %v, want 100", rs.Value(0, "USD Amount USD"))
	}
	if d, ok := rs.Value(1, "BTC Amount BTC").Decimal(); !ok || !d.Equal(decimal.RequireFromString("0.004")) {
		t.Errorf("quantity cell = %v, want 0.004", rs.Value(1, "BTC Amount BTC"))
	}
	// the date projects into both derived columns
	want := date.New(2021, 4, 1)
	if d, ok := rs.Value(0, FirstDateColumn).Date(); !ok || d != want {
		t.Errorf("First Date cell = %v, want %v", rs.Value(0, FirstDateColumn), want)
	}
	if d, ok := rs.Value(0, LatestDateColumn).Date(); !ok || d != want {
		t.Errorf("Latest Date cell = %v, want %v", rs.Value(0, LatestDateColumn), want)
	}
}

func TestRecipe_LenientDates_StrictMoney(t *testing.T) {
	table := NewTable("t", []string{"Date", "Subtotal"})
	table.Append("not a date", "$10.00")
	rs := NewRecordSet(table)

	// an unparseable date becomes the null value, never an error
	if err := (Recipe{}.Dates("Date")).Apply(rs); err != nil {
		t.Fatalf("lenient date transform errored: %v", err)
	}
	if !rs.Value(0, FirstDateColumn).IsNull() {
		t.Errorf("unparseable date should normalize to null, got %v", rs.Value(0, FirstDateColumn))
	}

	// an unparseable monetary cell fails the whole normalization
	bad := NewTable("t", []string{"Subtotal"})
	bad.Append("ten dollars")
	err := (Recipe{}.Currency("Subtotal", "$")).Apply(NewRecordSet(bad))
	if !errors.Is(err, ErrBadValue) {
		t.Errorf("strict currency transform: got %v, want ErrBadValue", err)
	}
}
