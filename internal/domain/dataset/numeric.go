package dataset

import (
	"strconv"
	"strings"
)

// ToFloat converts a raw cell value to a float. It is total: empty cells, the
// literal "nan" and anything unparseable come back as 0.0, never an error.
// Commas are treated as decimal separators and spaces as thousands grouping,
// matching the locale of the export files. Payroll totals rely on garbage
// degrading to zero here, so this must not be tightened into an error path.
func ToFloat(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0.0
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}
