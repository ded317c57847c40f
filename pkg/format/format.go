// Package format renders numbers and dates the way the reports have always
// displayed them: space as thousands separator, comma as decimal separator,
// integral amounts without decimals. Display only; computation stays on the
// raw floats.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Number renders a float for report display. Integral values get no
// decimals, everything else exactly two, e.g. 1234567.0 -> "1 234 567" and
// 1234.5 -> "1 234,50".
func Number(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return group(decimal.NewFromFloat(v).StringFixed(0))
	}
	fixed := decimal.NewFromFloat(v).StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return group(intPart) + "," + fracPart
}

// NumberFixed renders a float with exactly two decimals, the shape table
// cells use, e.g. 100.0 -> "100,00".
func NumberFixed(v float64) string {
	fixed := decimal.NewFromFloat(v).StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return group(intPart) + "," + fracPart
}

// Integer renders a float as a plain integer string, truncating any
// decimal component. Identifier-like cells (shift and driver numbers) use
// this, without grouping.
func Integer(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}

// group inserts a space every three digits, counting from the right.
func group(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// dateLayouts covers the timestamp shapes seen in shift exports.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006/01/02",
	"01-02-06 15:04",
	"01-02-06",
}

// ParseDate parses a cell value with best-effort layout detection.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders a date cell as YYYY-MM-DD, falling back to the raw string
// when the value does not parse.
func Date(raw string) string {
	if t, ok := ParseDate(raw); ok {
		return t.Format("2006-01-02")
	}
	return raw
}

// MonthsNB are the Norwegian month names, 1-indexed.
var MonthsNB = []string{"",
	"Januar", "Februar", "Mars", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Norwegian name for a 1-based month number, or the
// input rendering when out of range.
func MonthName(month int) string {
	if month >= 1 && month <= 12 {
		return MonthsNB[month]
	}
	return ""
}

// MonthNumber resolves a Norwegian month name back to its 1-based number,
// or 0 when unknown.
func MonthNumber(name string) int {
	for i := 1; i <= 12; i++ {
		if strings.EqualFold(MonthsNB[i], name) {
			return i
		}
	}
	return 0
}
