package coinsum

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
)

// Table is one raw tabular source: a header row and string cells. Rows keep
// the source order; Filter and Project return new tables and never mutate the
// receiver.
type Table struct {
	name    string
	columns []string
	index   map[string]int // column name to position
	rows    [][]string
}

// NewTable creates an empty table with the given name and columns.
func NewTable(name string, columns []string) *Table {
	t := &Table{
		name:    name,
		columns: slices.Clone(columns),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		t.index[c] = i
	}
	return t
}

// ReadTable reads a delimited table with a header row from r.
func ReadTable(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %q: %w", name, err)
	}
	t := NewTable(name, header)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read row of %q: %w", name, err)
		}
		t.Append(record...)
	}
	return t, nil
}

// WriteCSV writes the table with its header row to w.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Append adds one row, forced into the header's shape: short rows are padded
// with empty cells, cells beyond the last column are dropped.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Name returns the table name (usually the source file name).
func (t *Table) Name() string { return t.name }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Cell returns the raw cell at row i, column name. It panics on an unknown
// column: callers resolve columns through Filter/Project first.
func (t *Table) Cell(i int, column string) string {
	j, ok := t.index[column]
	if !ok {
		panic(fmt.Sprintf("unknown column %q in %q", column, t.name))
	}
	return t.rows[i][j]
}

// column returns the position of a column or a schema error.
func (t *Table) column(name string) (int, error) {
	j, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no column %q", ErrMissingColumn, t.name, name)
	}
	return j, nil
}

// Filter returns the rows whose cells equal every (column, value) pair.
// Matching is exact and case-sensitive, pairs combine with a logical AND, and
// surviving rows keep the source order. An empty result is a valid table,
// not an error; an unknown filter column is a schema error.
func (t *Table) Filter(filters map[string]string) (*Table, error) {
	positions := make(map[int]string, len(filters))
	for column, want := range filters {
		j, err := t.column(column)
		if err != nil {
			return nil, err
		}
		positions[j] = want
	}

	out := NewTable(t.name, t.columns)
	for _, row := range t.rows {
		keep := true
		for j, want := range positions {
			if row[j] != want {
				keep = false
				break
			}
		}
		if keep {
			out.Append(row...)
		}
	}
	return out, nil
}

// Project returns the table restricted to exactly the named columns, in the
// requested order. An unknown column is a schema error.
func (t *Table) Project(columns ...string) (*Table, error) {
	positions := make([]int, 0, len(columns))
	for _, column := range columns {
		j, err := t.column(column)
		if err != nil {
			return nil, err
		}
		positions = append(positions, j)
	}

	out := NewTable(t.name, columns)
	for _, row := range t.rows {
		cells := make([]string, 0, len(positions))
		for _, j := range positions {
			cells = append(cells, row[j])
		}
		out.Append(cells...)
	}
	return out, nil
}
