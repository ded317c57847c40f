package report

import (
	"strings"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/pkg/format"
)

// Context selects the cell-formatting rules. The shift report formats
// numeric cells for display; the salary report keeps them as plain strings.
// The divergence is long-standing behavior the rendered reports depend on.
type Context int

const (
	ContextSkift Context = iota
	ContextLonn
)

// Table is a fully formatted report table, ready for the PDF renderer.
// Totals is nil when no column qualifies for a total; otherwise it has one
// entry per column, blank for columns without a total.
type Table struct {
	Columns []string
	Rows    [][]string
	Totals  []string
	Numeric []bool
}

// BuildTable formats the selected columns of a reconciled dataset.
func BuildTable(ds *dataset.Dataset, columns []string, reportCtx Context) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Numeric: make([]bool, len(columns)),
	}
	for i, col := range columns {
		t.Numeric[i] = mostlyNumeric(ds.ColumnValues(col))
	}

	for row := 0; row < ds.Len(); row++ {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = FormatCell(col, ds.Cell(row, col), reportCtx)
		}
		t.Rows = append(t.Rows, cells)
	}

	t.Totals = totals(ds, columns)
	return t
}

// FormatCell renders one cell for display. Driver and shift-number columns
// show a bare integer, date columns show YYYY-MM-DD, and everything else
// depends on the report context. Unparseable values fall back to the raw
// string.
func FormatCell(column, value string, reportCtx Context) string {
	switch {
	case dataset.IsShiftLikeColumn(column):
		return bareInt(value)
	case dataset.IsDateColumn(column):
		return format.Date(value)
	case reportCtx == ContextSkift:
		if isNumeric(value) {
			return format.NumberFixed(dataset.ToFloat(value))
		}
		return value
	default:
		return value
	}
}

// totals sums each qualifying column: not an identifier column and at
// least 80% of its cells numeric. Returns nil when nothing qualifies.
func totals(ds *dataset.Dataset, columns []string) []string {
	out := make([]string, len(columns))
	any := false
	for i, col := range columns {
		if dataset.IsIdentifierColumn(col) {
			continue
		}
		values := ds.ColumnValues(col)
		if !mostlyNumeric(values) {
			continue
		}
		var sum float64
		for _, v := range values {
			sum += dataset.ToFloat(v)
		}
		out[i] = format.Number(sum)
		any = true
	}
	if !any {
		return nil
	}
	return out
}

// mostlyNumeric reports whether at least 80% of the values parse as
// numbers. Empty columns never qualify.
func mostlyNumeric(values []string) bool {
	if len(values) == 0 {
		return false
	}
	numeric := 0
	for _, v := range values {
		if isNumeric(v) {
			numeric++
		}
	}
	return float64(numeric) >= 0.8*float64(len(values))
}

func isNumeric(value string) bool {
	s := strings.TrimSpace(value)
	if s == "" {
		return false
	}
	return dataset.ToFloat(s) != 0 || isZeroLiteral(s)
}

// isZeroLiteral distinguishes a real zero from ToFloat's parse-failure
// fallback.
func isZeroLiteral(s string) bool {
	s = strings.ReplaceAll(strings.ReplaceAll(s, ",", "."), " ", "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	hasDigit := false
	for _, r := range s {
		if r == '0' {
			hasDigit = true
			continue
		}
		if r != '.' {
			return false
		}
	}
	return hasDigit
}

func bareInt(value string) string {
	s := strings.TrimSpace(value)
	if s == "" || !isNumeric(s) {
		return value
	}
	f := dataset.ToFloat(s)
	return format.Integer(f)
}
