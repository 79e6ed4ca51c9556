package coinsum

import (
	"fmt"
	"strings"
)

// USD is a helper for test to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

// mapLoader is an in-memory TableLoader serving CSV literals by name.
type mapLoader map[string]string

func (l mapLoader) Load(name string) (*Table, error) {
	src, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSourceUnavailable, name)
	}
	return ReadTable(name, strings.NewReader(src))
}

// Fixtures shaped like the real exchange exports. The sell and send rows
// must never reach normalization: their cells are deliberately odd.
const (
	geminiTransactionsCSV = `Date,Type,Symbol,Specification,USD Amount USD,Fee (USD) USD,BTC Amount BTC,ETH Amount ETH
2021-04-01,Buy,BTCUSD,Market,($100.00),($1.00),0.002 BTC,
2021-05-02,Buy,BTCUSD,Market,($200.00),($2.00),0.004 BTC,
2021-05-03,Sell,BTCUSD,Market,$50.00,n/a,(0.001) BTC,
2021-06-01,Buy,ETHUSD,Market,($500.00),($5.00),,0.2 ETH
`

	geminiStakingCSV = `Date,Type,Symbol,Amount BTC,Price USD,Amount USD,Balance BTC,Amount ETH,Balance ETH
2021-06-01,Interest Credit,BTC,0.001 BTC,$35000.00,$35.00,0.007 BTC,,
2021-06-15,Interest Credit,ETH,,,,,0.01 ETH,0.21 ETH
`

	coinbaseCSV = `Timestamp,Transaction Type,Asset,Quantity Transacted,Price Currency,Price at Transaction,Subtotal,Total (inclusive of fees and/or spread),Fees and/or Spread,Notes
2021-04-01T16:20:21Z,Buy,BTC,0.01,USD,"$50,000.00",$500.00,$505.00,$5.00,Bought 0.01 BTC
2021-04-02T10:00:00Z,Send,BTC,0.001,USD,"$51,000.00",,,,Sent BTC
2021-07-01T08:00:00Z,Buy,ETH,0.1,USD,"$2,000.00",$200.00,$202.00,$2.00,Bought ETH
`
)

// exportLoader returns a loader over the three standard export fixtures.
func exportLoader() mapLoader {
	return mapLoader{
		GeminiTransactionsFile:   geminiTransactionsCSV,
		GeminiStakingFile:        geminiStakingCSV,
		CoinbaseTransactionsFile: coinbaseCSV,
	}
}
