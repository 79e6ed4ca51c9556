package coinsum

import (
	"fmt"
	"strings"
)

// assetPlaceholder is substituted with the asset ticker when a source spec is
// resolved for one asset.
const assetPlaceholder = "{ASSET}"

// expand substitutes the asset ticker into a column-name template.
func expand(template, asset string) string {
	return strings.ReplaceAll(template, assetPlaceholder, asset)
}

// SourceSpec declares, once, how acquisition rows are pulled out of one
// tabular source: which table, which rows survive, which columns remain, how
// cells decode, and which columns feed each aggregate. Column names, filter
// values and field names may contain the {ASSET} placeholder; Resolve
// substitutes the ticker to produce the per-asset configuration.
type SourceSpec struct {
	Name        string            // short path name, e.g. "gemini-buy"
	Table       string            // table name, resolved by the TableLoader
	AssetColumn string            // column holding the asset identifier
	AssetFormat string            // identifier template, e.g. "{ASSET}USD"
	Filters     map[string]string // additional exact-match AND predicates
	Columns     []string          // projected columns, in order
	Fields      FieldMap          // aggregate column mapping
	Recipe      Recipe            // normalization transforms
}

// Resolved is a SourceSpec with the asset ticker substituted everywhere; it
// is the typed per-asset configuration the pipeline runs.
type Resolved struct {
	Name    string
	Table   string
	Filters map[string]string
	Columns []string
	Fields  FieldMap
	Recipe  Recipe
}

// Resolve substitutes the asset ticker into every templated part of the
// source spec.
func (s SourceSpec) Resolve(asset string) Resolved {
	r := Resolved{
		Name:    s.Name,
		Table:   s.Table,
		Filters: make(map[string]string, len(s.Filters)+1),
		Fields: FieldMap{
			Quantity: expand(s.Fields.Quantity, asset),
			Subtotal: expand(s.Fields.Subtotal, asset),
			Fees:     expand(s.Fields.Fees, asset),
		},
		Recipe: s.Recipe.expand(asset),
	}
	format := s.AssetFormat
	if format == "" {
		format = assetPlaceholder
	}
	r.Filters[s.AssetColumn] = expand(format, asset)
	for column, value := range s.Filters {
		r.Filters[column] = value
	}
	for _, column := range s.Columns {
		r.Columns = append(r.Columns, expand(column, asset))
	}
	return r
}

// Retrieve loads the table, keeps the rows matching the asset and filters,
// and projects the declared columns.
func (r Resolved) Retrieve(loader TableLoader) (*Table, error) {
	t, err := loader.Load(r.Table)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", r.Name, err)
	}
	t, err = t.Filter(r.Filters)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", r.Name, err)
	}
	// An asset never traded on this source matches no row, and its per-asset
	// columns do not exist in the export either. That is an empty result, not
	// a schema fault: return the declared shape with no rows.
	if t.Len() == 0 {
		return NewTable(t.name, r.Columns), nil
	}
	t, err = t.Project(r.Columns...)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", r.Name, err)
	}
	return t, nil
}

// Table names of the known exchange exports.
const (
	GeminiTransactionsFile   = "gemini_transaction_history.csv"
	GeminiStakingFile        = "gemini_staking_transaction_history.csv"
	CoinbaseTransactionsFile = "coinbase_transactions.csv"
)

// GeminiBuys describes buy rows of the Gemini transaction export. Monetary
// cells are parenthesis-wrapped dollar amounts, quantities carry the asset
// ticker as a unit suffix.
func GeminiBuys() SourceSpec {
	return SourceSpec{
		Name:        "gemini-buy",
		Table:       GeminiTransactionsFile,
		AssetColumn: "Symbol",
		AssetFormat: "{ASSET}USD",
		Filters:     map[string]string{"Type": "Buy"},
		Columns: []string{
			"Date", "Type", "Symbol",
			"USD Amount USD", "Fee (USD) USD", "{ASSET} Amount {ASSET}",
		},
		Fields: FieldMap{
			Quantity: "{ASSET} Amount {ASSET}",
			Subtotal: "USD Amount USD",
			Fees:     "Fee (USD) USD",
		},
		Recipe: Recipe{}.
			Dates("Date").
			Currency("USD Amount USD", "$").
			Currency("Fee (USD) USD", "$").
			Quantity("{ASSET} Amount {ASSET}", "{ASSET}"),
	}
}

// GeminiStaking describes interest credits of the Gemini staking export.
// Interest accrues quantity but costs nothing, so only the quantity column is
// mapped and subtotal/fees stay at zero.
func GeminiStaking() SourceSpec {
	return SourceSpec{
		Name:        "gemini-stake",
		Table:       GeminiStakingFile,
		AssetColumn: "Symbol",
		Filters:     map[string]string{"Type": "Interest Credit"},
		Columns: []string{
			"Date", "Type", "Symbol",
			"Amount {ASSET}", "Price USD", "Amount USD", "Balance {ASSET}",
		},
		Fields: FieldMap{
			Quantity: "Amount {ASSET}",
		},
		Recipe: Recipe{}.
			Dates("Date").
			Quantity("Amount {ASSET}", "{ASSET}"),
	}
}

// CoinbaseBuys describes buy rows of the Coinbase transaction export. Dates
// are full timestamps, quantities are plain numbers, and monetary cells are
// unwrapped dollar amounts.
func CoinbaseBuys() SourceSpec {
	return SourceSpec{
		Name:        "coinbase-buy",
		Table:       CoinbaseTransactionsFile,
		AssetColumn: "Asset",
		Filters:     map[string]string{"Transaction Type": "Buy"},
		Columns: []string{
			"Timestamp", "Asset", "Quantity Transacted",
			"Price at Transaction", "Subtotal",
			"Total (inclusive of fees and/or spread)", "Fees and/or Spread",
		},
		Fields: FieldMap{
			Quantity: "Quantity Transacted",
			Subtotal: "Subtotal",
			Fees:     "Fees and/or Spread",
		},
		Recipe: Recipe{}.
			Dates("Timestamp").
			Number("Quantity Transacted").
			Currency("Subtotal", "$").
			Currency("Fees and/or Spread", "$"),
	}
}

// DefaultSources returns the three built-in acquisition paths, in the order
// their summaries appear in per-asset breakdowns.
func DefaultSources() []SourceSpec {
	return []SourceSpec{GeminiBuys(), GeminiStaking(), CoinbaseBuys()}
}
