// Package table defines the row/column value model for an extracted HTML table.
package table

// Table is an ordered sequence of rows, each an ordered sequence of cell text.
// Row 0 is whatever the source page places first; header and data rows are not
// distinguished.
type Table [][]string

// RowCount returns the number of rows in the table.
func (t Table) RowCount() int {
	return len(t)
}

// ColumnCount returns the width of the widest row.
func (t Table) ColumnCount() int {
	max := 0
	for _, row := range t {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t) == 0
}

// Normalize pads ragged rows with empty cells so that every row has the
// width of the widest row. The receiver is not modified.
func (t Table) Normalize() Table {
	width := t.ColumnCount()
	out := make(Table, 0, len(t))
	for _, row := range t {
		padded := make([]string, width)
		copy(padded, row)
		out = append(out, padded)
	}
	return out
}
