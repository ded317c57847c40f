// Package dataset holds in-memory tabular data loaded from shift export files,
// plus the header heuristics used to locate semantic columns in them.
package dataset

import "strings"

// Dataset is one loaded table: ordered headers and ordered rows of cell
// strings. There is no fixed schema; columns are addressed by their literal
// header string. A Dataset lives for the session and is never persisted.
type Dataset struct {
	Source  string // base name of the file it was loaded from
	Columns []string
	Rows    [][]string
}

// New creates a dataset with trimmed header names and rows padded or truncated
// to the header width.
func New(source string, columns []string, rows [][]string) *Dataset {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}
	ds := &Dataset{Source: source, Columns: cols, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		ds.Rows = append(ds.Rows, padRow(r, len(cols)))
	}
	return ds
}

func padRow(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		out[i] = row[i]
	}
	return out
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether the dataset is nil or has no rows.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	if d == nil {
		return -1
	}
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, column name), or "" when out of range.
func (d *Dataset) Cell(row int, column string) string {
	idx := d.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(d.Rows) {
		return ""
	}
	return d.Rows[row][idx]
}

// SetCell overwrites the cell at (row, column name). Out-of-range writes are
// ignored.
func (d *Dataset) SetCell(row int, column, value string) {
	idx := d.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(d.Rows) {
		return
	}
	d.Rows[row][idx] = value
}

// ColumnValues returns all cell values of the named column in row order.
// An unknown column yields an empty slice.
func (d *Dataset) ColumnValues(column string) []string {
	idx := d.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	out := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		out = append(out, row[idx])
	}
	return out
}

// Clone deep-copies the dataset so adjustments never mutate source data.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	clone := &Dataset{
		Source:  d.Source,
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([][]string, 0, len(d.Rows)),
	}
	for _, row := range d.Rows {
		clone.Rows = append(clone.Rows, append([]string(nil), row...))
	}
	return clone
}

// Concat appends the rows of others onto a copy of d, keeping d's column
// order. Cells are matched by column name; columns missing from a source
// dataset come through empty.
func Concat(datasets ...*Dataset) *Dataset {
	var first *Dataset
	for _, ds := range datasets {
		if ds != nil {
			first = ds
			break
		}
	}
	if first == nil {
		return nil
	}
	out := &Dataset{
		Source:  first.Source,
		Columns: append([]string(nil), first.Columns...),
	}
	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		for r := range ds.Rows {
			row := make([]string, len(out.Columns))
			for i, col := range out.Columns {
				row[i] = ds.Cell(r, col)
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
