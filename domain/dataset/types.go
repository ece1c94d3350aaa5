package dataset

// Row maps column name to a raw cell value. Values are strings, native
// numerics, bools, or nil for missing cells.
type Row map[string]any

// Dataset is an in-memory tabular dataset. Columns preserves the
// original column order; Rows hold raw cell values keyed by column.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// Values returns all cell values for one column in row order,
// including missing cells.
func (d *Dataset) Values(column string) []any {
	out := make([]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		out = append(out, row[column])
	}
	return out
}

// Head returns the first n rows, preserving row order.
func (d *Dataset) Head(n int) []Row {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	out := make([]Row, n)
	copy(out, d.Rows[:n])
	return out
}

// IsMissing reports whether a cell value counts as missing. Empty
// strings from CSV cells are treated the same as absent values.
func IsMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}
