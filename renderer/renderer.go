// Package renderer renders aggregate summaries as markdown reports.
package renderer

import (
	"bytes"
	"math"
	"strconv"

	md "github.com/nao1215/markdown"

	"coinsum"
	"coinsum/date"
)

// Options configures report formatting. It is passed explicitly: there is no
// process-wide display state.
type Options struct {
	QuantityPlaces int32 // decimal places for asset quantities
	PricePlaces    int   // decimal places for the spot price estimate
	Breakdown      bool  // include the per-source rows above the final one
}

// DefaultOptions formats quantities to the satoshi (8 places) and prices to
// the cent.
func DefaultOptions() Options {
	return Options{QuantityPlaces: 8, PricePlaces: 2}
}

// ReportMarkdown renders the whole aggregation run, one section per asset.
func ReportMarkdown(results []coinsum.AssetSummary, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Aggregate Transaction Records")
	for _, r := range results {
		assetSection(doc, r, opts)
	}
	return doc.String()
}

// AssetMarkdown renders one asset's summary.
func AssetMarkdown(r coinsum.AssetSummary, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	assetSection(doc, r, opts)
	return doc.String()
}

func assetSection(doc *md.Markdown, r coinsum.AssetSummary, opts Options) {
	doc.H2(r.Asset + " Aggregate")

	table := md.TableSet{
		Header: []string{
			"", "First Date", "Latest Date", "Quantity", "Subtotal", "Fees", "Total", "Spot Price",
		},
	}
	if opts.Breakdown {
		for _, src := range r.Sources {
			table.Rows = append(table.Rows, summaryRow(src.Source, src.Summary, opts))
		}
	}
	table.Rows = append(table.Rows, summaryRow(md.Bold("total"), r.Final, opts))
	doc.Table(table)
}

func summaryRow(label string, s coinsum.Summary, opts Options) []string {
	return []string{
		label,
		dateCell(s.First),
		dateCell(s.Latest),
		s.Quantity.StringFixed(opts.QuantityPlaces),
		s.Subtotal.String(),
		s.Fees.String(),
		s.Total.String(),
		spotCell(s.SpotPrice, opts.PricePlaces),
	}
}

func dateCell(d date.Date) string {
	if d.IsValid() {
		return d.String()
	}
	return "-"
}

// spotCell formats the spot price estimate in fixed decimal notation. The
// undefined (NaN) price of an empty record set renders as a dash.
func spotCell(price float64, places int) string {
	if math.IsNaN(price) {
		return "-"
	}
	return strconv.FormatFloat(price, 'f', places, 64)
}
