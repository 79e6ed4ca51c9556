package coinsum

import (
	"math"

	"coinsum/date"
)

// FieldMap names which record-set columns supply each aggregate. An empty
// name leaves the corresponding sum at zero, like the staking path that has
// no monetary columns.
type FieldMap struct {
	Quantity string
	Subtotal string
	Fees     string
}

// SummaryFields maps a record set of prior summaries onto itself, so that
// summaries re-aggregate with the same reduction as raw records.
var SummaryFields = FieldMap{Quantity: "Quantity", Subtotal: "Subtotal", Fees: "Fees"}

// Summary is the single aggregate row reduced from a record set: total
// acquisition activity with its date span.
//
// Invariants: Total = Subtotal + Fees, and First <= Latest whenever both are
// valid dates.
type Summary struct {
	First    date.Date
	Latest   date.Date
	Quantity Quantity
	Subtotal Money
	Fees     Money
	Total    Money

	// SpotPrice is Subtotal/Quantity: an estimate of the blended mean
	// acquisition price. Purely informational, never fed back into any
	// calculation, and NaN when Quantity is zero.
	SpotPrice float64
}

// Aggregate reduces a record set to exactly one summary, whatever the row
// count. Zero rows yield zero sums, null dates and a NaN spot price.
func Aggregate(rs *RecordSet, fields FieldMap) Summary {
	var s Summary
	quantity := Q(0)
	subtotal := M(0, "USD")
	fees := M(0, "USD")

	for i := 0; i < rs.Len(); i++ {
		if d, ok := rs.Value(i, FirstDateColumn).Date(); ok {
			s.First = date.Min(s.First, d)
		}
		if d, ok := rs.Value(i, LatestDateColumn).Date(); ok {
			s.Latest = date.Max(s.Latest, d)
		}
		if fields.Quantity != "" {
			if d, ok := rs.Value(i, fields.Quantity).Decimal(); ok {
				quantity = quantity.Add(Q(d))
			}
		}
		if fields.Subtotal != "" {
			if d, ok := rs.Value(i, fields.Subtotal).Decimal(); ok {
				subtotal = subtotal.Add(M(d, "USD"))
			}
		}
		if fields.Fees != "" {
			if d, ok := rs.Value(i, fields.Fees).Decimal(); ok {
				fees = fees.Add(M(d, "USD"))
			}
		}
	}

	s.Quantity = quantity
	s.Subtotal = subtotal
	s.Fees = fees
	s.Total = subtotal.Add(fees)

	// Estimated mean spot price. 0/0 must not raise: it degrades to NaN and
	// flows harmlessly through printing.
	if quantity.IsZero() {
		s.SpotPrice = math.NaN()
	} else {
		s.SpotPrice = subtotal.Decimal().Div(quantity.Decimal()).InexactFloat64()
	}
	return s
}

// Merge concatenates summaries, in order, into a record set keyed by the
// SummaryFields columns. The cells are already numeric and dated, so the set
// re-aggregates directly without another normalization pass.
func Merge(summaries ...Summary) *RecordSet {
	rs := &RecordSet{columns: []string{
		FirstDateColumn, LatestDateColumn, "Quantity", "Subtotal", "Fees", "Total",
	}}
	for _, s := range summaries {
		rs.rows = append(rs.rows, map[string]Value{
			FirstDateColumn:  Day(s.First),
			LatestDateColumn: Day(s.Latest),
			"Quantity":       Number(s.Quantity.Decimal()),
			"Subtotal":       Number(s.Subtotal.Decimal()),
			"Fees":           Number(s.Fees.Decimal()),
			"Total":          Number(s.Total.Decimal()),
		})
	}
	return rs
}

// Combine reduces prior summaries into one, exploiting the associativity of
// the aggregation: combining partial summaries equals aggregating their
// records directly.
func Combine(summaries ...Summary) Summary {
	return Aggregate(Merge(summaries...), SummaryFields)
}
