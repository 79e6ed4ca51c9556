package coinsum

import "github.com/shopspring/decimal"

// Quantity is an asset quantity, exact to the satoshi-scale fractions
// exchange exports carry.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (q Quantity) Equal(p Quantity) bool   { return q.value.Equal(p.value) }
func (q Quantity) Add(p Quantity) Quantity { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) IsZero() bool            { return q.value.IsZero() }
func (q Quantity) IsNegative() bool        { return q.value.IsNegative() }
func (q Quantity) Decimal() decimal.Decimal { return q.value }
func (q Quantity) String() string          { return q.value.String() }

// StringFixed formats the quantity with a fixed number of decimal places,
// never in scientific notation.
func (q Quantity) StringFixed(places int32) string { return q.value.StringFixed(places) }
