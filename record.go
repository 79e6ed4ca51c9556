package coinsum

import "slices"

// Derived columns carrying each row's own date, collapsed to min/max at
// aggregation time.
const (
	FirstDateColumn  = "First Date"
	LatestDateColumn = "Latest Date"
)

// RecordSet is a set of typed records, the unit every pipeline stage consumes
// and produces. A fresh set from a Table holds raw text cells; normalization
// replaces designated cells with numbers and dates in place. The set owns its
// rows: nothing else holds a reference into them.
type RecordSet struct {
	columns []string
	rows    []map[string]Value
}

// NewRecordSet converts a table into a record set of raw text cells.
func NewRecordSet(t *Table) *RecordSet {
	rs := &RecordSet{columns: t.Columns()}
	for i := 0; i < t.Len(); i++ {
		row := make(map[string]Value, len(rs.columns))
		for _, column := range rs.columns {
			row[column] = Text(t.Cell(i, column))
		}
		rs.rows = append(rs.rows, row)
	}
	return rs
}

// Len returns the number of records.
func (rs *RecordSet) Len() int { return len(rs.rows) }

// Columns returns the column names in order.
func (rs *RecordSet) Columns() []string { return slices.Clone(rs.columns) }

// Value returns the cell at record i for the named column, or Null if the
// column does not exist.
func (rs *RecordSet) Value(i int, column string) Value {
	return rs.rows[i][column]
}

// addColumn registers a column name, keeping the order stable. Setting a cell
// of an unregistered column is fine map-wise but the column would not be
// listed by Columns.
func (rs *RecordSet) addColumn(column string) {
	if !slices.Contains(rs.columns, column) {
		rs.columns = append(rs.columns, column)
	}
}

// set replaces the cell at record i for the named column.
func (rs *RecordSet) set(i int, column string, v Value) {
	rs.addColumn(column)
	rs.rows[i][column] = v
}
