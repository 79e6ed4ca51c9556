package coinsum

import (
	"github.com/shopspring/decimal"

	"coinsum/date"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

type valueKind uint8

const (
	kindNull valueKind = iota
	kindText
	kindNumber
	kindDate
)

// Value is one cell of a record set: raw text before normalization, a decimal
// number or a date after, or null when a lenient transform could not decode
// the cell.
type Value struct {
	kind valueKind
	text string
	num  decimal.Decimal
	day  date.Date
}

// Null is the missing/undecodable cell marker.
var Null = Value{}

// Text returns a raw text value.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Number returns a numeric value.
func Number[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](v T) Value {
	return Value{kind: kindNumber, num: newDecimal(v)}
}

// Day returns a date value. A null date yields Null.
func Day(d date.Date) Value {
	if !d.IsValid() {
		return Null
	}
	return Value{kind: kindDate, day: d}
}

// IsNull reports whether the value is the null marker.
func (v Value) IsNull() bool { return v.kind == kindNull }

// Decimal returns the numeric content of the value, and whether it is numeric.
func (v Value) Decimal() (decimal.Decimal, bool) {
	return v.num, v.kind == kindNumber
}

// Date returns the date content of the value, and whether it is a date.
// Raw text values are parsed leniently, so a set aggregated before its date
// column was normalized still yields correct bounds.
func (v Value) Date() (date.Date, bool) {
	switch v.kind {
	case kindDate:
		return v.day, true
	case kindText:
		d, err := date.Parse(v.text)
		return d, err == nil
	}
	return date.Date{}, false
}

// Text returns the raw text content of the value, and whether it is raw text.
func (v Value) Text() (string, bool) { return v.text, v.kind == kindText }

func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindNumber:
		return v.num.String()
	case kindDate:
		return v.day.String()
	}
	return ""
}
