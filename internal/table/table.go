// Package table is the in-memory tabular form exchanged between stages.
package table

import (
	"fmt"
	"strconv"

	"JobAdsMiner/internal/domain"
)

// Table is an ordered set of named string columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given header.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		t.addColumnName(c)
	}
	return t
}

// Columns returns a copy of the header.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the column exists.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require fails with domain.ErrMissingColumn naming the first absent column.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if !t.Has(c) {
			return fmt.Errorf("column %q: %w", c, domain.ErrMissingColumn)
		}
	}
	return nil
}

// Pick returns the first candidate column present, or "".
func (t *Table) Pick(candidates ...string) string {
	for _, c := range candidates {
		if t.Has(c) {
			return c
		}
	}
	return ""
}

// Value returns the cell or "" when the column is absent.
func (t *Table) Value(row int, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}

// Int parses a cell; malformed or empty cells give ok=false.
func (t *Table) Int(row int, column string) (int, bool) {
	v := t.Value(row, column)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return n, true
}

// Row returns a copy of one row aligned with Columns.
func (t *Table) Row(row int) []string {
	out := make([]string, len(t.columns))
	copy(out, t.rows[row])
	return out
}

// Column returns all values of one column ("" when absent).
func (t *Table) Column(column string) []string {
	out := make([]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Value(i, column)
	}
	return out
}

// Append adds a row; short rows are padded, long rows rejected.
func (t *Table) Append(values ...string) error {
	if len(values) > len(t.columns) {
		return fmt.Errorf("append row: %d values for %d columns", len(values), len(t.columns))
	}
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// MustAppend is Append for builders whose row width is fixed in code; a width
// mismatch is a programming error and panics.
func (t *Table) MustAppend(values ...string) {
	if err := t.Append(values...); err != nil {
		panic(err)
	}
}

// AppendMap adds a row from column names; unknown names are ignored.
func (t *Table) AppendMap(values map[string]string) {
	row := make([]string, len(t.columns))
	for k, v := range values {
		if i, ok := t.index[k]; ok {
			row[i] = v
		}
	}
	t.rows = append(t.rows, row)
}

// SetColumn adds or replaces a column with one value per row.
func (t *Table) SetColumn(column string, values []string) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("set column %q: %d values for %d rows", column, len(values), len(t.rows))
	}
	i, ok := t.index[column]
	if !ok {
		i = t.addColumnName(column)
		for r := range t.rows {
			t.rows[r] = append(t.rows[r], "")
		}
	}
	for r, v := range values {
		t.rows[r][i] = v
	}
	return nil
}

// Rename changes a column name; it is a no-op when from is absent or to exists.
func (t *Table) Rename(from, to string) {
	i, ok := t.index[from]
	if !ok || t.Has(to) {
		return
	}
	delete(t.index, from)
	t.columns[i] = to
	t.index[to] = i
}

// Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := New(t.columns...)
	for i := range t.rows {
		if keep(i) {
			out.rows = append(out.rows, t.Row(i))
		}
	}
	return out
}

// Head returns a table with at most n rows; n <= 0 keeps every row.
func (t *Table) Head(n int) *Table {
	if n <= 0 {
		return t.Filter(func(int) bool { return true })
	}
	return t.Filter(func(row int) bool { return row < n })
}

// Records exposes the header and rows for serialization.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.rows)+1)
	out = append(out, t.Columns())
	for i := range t.rows {
		out = append(out, t.Row(i))
	}
	return out
}

// FromRecords builds a table from a header row followed by data rows.
// Ragged rows are padded or truncated to the header width.
func FromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return New()
	}
	t := New(records[0]...)
	for _, rec := range records[1:] {
		row := make([]string, len(t.columns))
		copy(row, rec)
		t.rows = append(t.rows, row)
	}
	return t
}

func (t *Table) addColumnName(c string) int {
	if i, ok := t.index[c]; ok {
		return i
	}
	t.columns = append(t.columns, c)
	t.index[c] = len(t.columns) - 1
	return len(t.columns) - 1
}

// Float formats a metric cell with the shortest exact representation.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Itoa formats a count cell.
func Itoa(n int) string {
	return strconv.Itoa(n)
}

// OptInt formats an optional count; nil becomes an empty cell.
func OptInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
