package coinsum

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"coinsum/date"
)

// A Recipe is the declarative list of per-column transforms that normalizes
// one source's cells into numbers and dates. Transforms apply per row with no
// cross-row state; columns not named by any step pass through unchanged.
//
// Policy: monetary and quantity cells are strict (an unparseable residue is a
// bad-value error), dates are lenient (an unparseable date becomes the null
// value and is excluded from the min/max later). See DESIGN.md.
type Recipe struct {
	steps []step
}

type stepKind uint8

const (
	stepCurrency stepKind = iota
	stepQuantity
	stepNumber
	stepDates
)

// step is one per-column transform. Column and unit may contain the {ASSET}
// placeholder, substituted by expand.
type step struct {
	kind   stepKind
	column string
	symbol string // currency symbol to strip, e.g. "$"
	unit   string // quantity unit suffix to strip, e.g. "BTC"
}

// Currency declares a monetary column: an optional one-rune wrapper pair
// (e.g. the parentheses of "($12.34)") is stripped, then the symbol and
// thousands separators, and the residue is parsed as a decimal. Strict.
func (r Recipe) Currency(column, symbol string) Recipe {
	r.steps = append(r.steps, step{kind: stepCurrency, column: column, symbol: symbol})
	return r
}

// Quantity declares an asset quantity column with a unit ticker appended to
// the number, e.g. "0.0125 BTC". The unit is stripped and the residue parsed
// as a decimal. Strict.
func (r Recipe) Quantity(column, unit string) Recipe {
	r.steps = append(r.steps, step{kind: stepQuantity, column: column, unit: unit})
	return r
}

// Number declares a plain numeric column. Strict.
func (r Recipe) Number(column string) Recipe {
	r.steps = append(r.steps, step{kind: stepNumber, column: column})
	return r
}

// Dates declares the column carrying each row's acquisition date. Cells are
// parsed leniently (failures become null, never an error) and the row date is
// projected into the derived First Date and Latest Date columns.
func (r Recipe) Dates(column string) Recipe {
	r.steps = append(r.steps, step{kind: stepDates, column: column})
	return r
}

// expand substitutes the asset ticker into every templated step.
func (r Recipe) expand(asset string) Recipe {
	steps := make([]step, len(r.steps))
	for i, s := range r.steps {
		s.column = expand(s.column, asset)
		s.unit = expand(s.unit, asset)
		steps[i] = s
	}
	return Recipe{steps: steps}
}

// Apply runs every transform over the record set, in declaration order.
func (r Recipe) Apply(rs *RecordSet) error {
	for _, s := range r.steps {
		if err := s.apply(rs); err != nil {
			return err
		}
	}
	return nil
}

func (s step) apply(rs *RecordSet) error {
	for i := 0; i < rs.Len(); i++ {
		raw, ok := rs.Value(i, s.column).Text()
		if !ok {
			// already normalized (e.g. a merged summary set), leave as is
			continue
		}
		switch s.kind {
		case stepCurrency:
			d, err := parseCurrency(raw, s.symbol)
			if err != nil {
				return fmt.Errorf("column %q: %w", s.column, err)
			}
			rs.set(i, s.column, Number(d))
		case stepQuantity:
			d, err := parseQuantity(raw, s.unit)
			if err != nil {
				return fmt.Errorf("column %q: %w", s.column, err)
			}
			rs.set(i, s.column, Number(d))
		case stepNumber:
			d, err := parseNumber(raw)
			if err != nil {
				return fmt.Errorf("column %q: %w", s.column, err)
			}
			rs.set(i, s.column, Number(d))
		case stepDates:
			day, err := date.Parse(strings.TrimSpace(raw))
			if err != nil {
				day = date.Date{} // lenient: null date
			}
			rs.set(i, s.column, Day(day))
			rs.set(i, FirstDateColumn, Day(day))
			rs.set(i, LatestDateColumn, Day(day))
		}
	}
	return nil
}

// parseCurrency decodes a currency cell like "$1,234.56" or "($12.34)" into
// its (unsigned) amount.
func parseCurrency(raw, symbol string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	// exports wrap spent amounts in a one-rune delimiter pair
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = s[1 : len(s)-1]
	}
	if symbol != "" {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	return parseNumber(s)
}

// parseQuantity decodes a unit-suffixed quantity cell like "0.0125 BTC".
func parseQuantity(raw, unit string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if unit != "" {
		s = strings.ReplaceAll(s, unit, "")
	}
	return parseNumber(s)
}

func parseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", ErrBadValue, raw)
	}
	return d, nil
}
