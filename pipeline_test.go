package coinsum

import (
	"errors"
	"math"
	"slices"
	"testing"

	"coinsum/date"
)

func TestPipeline_Asset(t *testing.T) {
	pipeline := NewPipeline(exportLoader())

	got, err := pipeline.Asset("BTC")
	if err != nil {
		t.Fatalf("Asset(BTC) failed: %v", err)
	}

	// per-source breakdown, in declaration order
	if len(got.Sources) != 3 {
		t.Fatalf("Asset(BTC) produced %d source summaries, want 3", len(got.Sources))
	}
	buys := got.Sources[0]
	if buys.Source != "gemini-buy" || !buys.Summary.Quantity.Equal(Q(0.006)) {
		t.Errorf("buy path = %q %s, want gemini-buy 0.006", buys.Source, buys.Summary.Quantity)
	}
	if !buys.Summary.Subtotal.Equal(USD(300)) || !buys.Summary.Total.Equal(USD(303)) {
		t.Errorf("buy path Subtotal/Total = %s/%s, want $300/$303", buys.Summary.Subtotal, buys.Summary.Total)
	}
	stake := got.Sources[1]
	if stake.Source != "gemini-stake" || !stake.Summary.Quantity.Equal(Q(0.001)) {
		t.Errorf("stake path = %q %s, want gemini-stake 0.001", stake.Source, stake.Summary.Quantity)
	}
	if !stake.Summary.Subtotal.IsZero() || !stake.Summary.Fees.IsZero() {
		t.Errorf("stake path should cost nothing, got %+v", stake.Summary)
	}
	exchange := got.Sources[2]
	if exchange.Source != "coinbase-buy" || !exchange.Summary.Quantity.Equal(Q(0.01)) {
		t.Errorf("exchange path = %q %s, want coinbase-buy 0.01", exchange.Source, exchange.Summary.Quantity)
	}

	// the final summary reduces the three paths
	final := got.Final
	if !final.Quantity.Equal(Q(0.017)) {
		t.Errorf("final Quantity = %s, want 0.017", final.Quantity)
	}
	if !final.Subtotal.Equal(USD(800)) || !final.Fees.Equal(USD(8)) || !final.Total.Equal(USD(808)) {
		t.Errorf("final Subtotal/Fees/Total = %s/%s/%s, want $800/$8/$808",
			final.Subtotal, final.Fees, final.Total)
	}
	if final.First != date.New(2021, 4, 1) || final.Latest != date.New(2021, 6, 1) {
		t.Errorf("final span = %v..%v, want 2021-04-01..2021-06-01", final.First, final.Latest)
	}
}

func TestPipeline_UnknownAsset(t *testing.T) {
	pipeline := NewPipeline(exportLoader())

	got, err := pipeline.Asset("DOGE")
	if err != nil {
		t.Fatalf("Asset(DOGE) failed: %v", err)
	}
	if !got.Final.Quantity.IsZero() || !got.Final.Total.IsZero() {
		t.Errorf("unknown asset should aggregate to zeros, got %+v", got.Final)
	}
	if !math.IsNaN(got.Final.SpotPrice) {
		t.Errorf("unknown asset SpotPrice = %v, want NaN", got.Final.SpotPrice)
	}
}

func TestRetrieve_AssetAbsentFromSource(t *testing.T) {
	// no DOGE row anywhere, and no "DOGE Amount DOGE" column either: the
	// result is an empty table in the declared shape, not a schema error.
	src := GeminiBuys().Resolve("DOGE")

	got, err := src.Retrieve(exportLoader())
	if err != nil {
		t.Fatalf("Retrieve(DOGE) failed: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Retrieve(DOGE) returned %d rows, want 0", got.Len())
	}
	want := []string{"Date", "Type", "Symbol", "USD Amount USD", "Fee (USD) USD", "DOGE Amount DOGE"}
	if !slices.Equal(got.Columns(), want) {
		t.Errorf("Retrieve(DOGE) columns = %v, want %v", got.Columns(), want)
	}
}

func TestPipeline_MissingSource(t *testing.T) {
	loader := exportLoader()
	delete(loader, CoinbaseTransactionsFile)

	_, err := NewPipeline(loader).Asset("BTC")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Asset() with missing source: got %v, want ErrSourceUnavailable", err)
	}
}

func TestPipeline_MissingColumn(t *testing.T) {
	loader := exportLoader()
	// staking export without the per-asset amount column
	loader[GeminiStakingFile] = "Date,Type,Symbol\n2021-06-01,Interest Credit,BTC\n"

	_, err := NewPipeline(loader).Asset("BTC")
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Asset() with missing column: got %v, want ErrMissingColumn", err)
	}
}

func TestPipeline_Run_ContinuesPastFailedAsset(t *testing.T) {
	loader := exportLoader()
	// the staking export records an ETH credit but carries only the BTC
	// amount columns: ETH fails on the malformed schema, BTC must still be
	// aggregated.
	loader[GeminiStakingFile] = `Date,Type,Symbol,Amount BTC,Price USD,Amount USD,Balance BTC
2021-06-01,Interest Credit,BTC,0.001 BTC,"$35,000.00",$35.00,0.007 BTC
2021-06-02,Interest Credit,ETH,0.01 ETH,"$2,500.00",$25.00,0.01 ETH
`

	results, err := NewPipeline(loader).Run([]string{"ETH", "BTC"})
	if err == nil {
		t.Fatalf("Run() should report the failed asset")
	}
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Run() error = %v, want ErrMissingColumn", err)
	}
	if len(results) != 1 || results[0].Asset != "BTC" {
		t.Fatalf("Run() results = %+v, want the BTC summary alone", results)
	}
	if !results[0].Final.Quantity.Equal(Q(0.017)) {
		t.Errorf("BTC Quantity = %s, want 0.017", results[0].Final.Quantity)
	}
}

func TestPipeline_RunOrder(t *testing.T) {
	results, err := NewPipeline(exportLoader()).Run([]string{"ETH", "BTC"})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(results) != 2 || results[0].Asset != "ETH" || results[1].Asset != "BTC" {
		t.Errorf("Run() must preserve the configured asset order, got %+v", results)
	}
	// ETH: 0.2 bought + 0.01 staked + 0.1 on the exchange
	if !results[0].Final.Quantity.Equal(Q(0.31)) {
		t.Errorf("ETH Quantity = %s, want 0.31", results[0].Final.Quantity)
	}
	if !results[0].Final.Total.Equal(USD(707)) {
		t.Errorf("ETH Total = %s, want $707.00", results[0].Final.Total)
	}
}
