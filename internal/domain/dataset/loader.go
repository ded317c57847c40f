package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Load reads a shift export file into a Dataset. ".xlsx" files go through
// excelize; everything else (".dat", ".csv") is treated as delimited text
// with best-effort delimiter and encoding detection. A file that cannot be
// read or parsed returns an error for the caller to report; it never aborts
// the session.
func Load(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadExcel(path)
	default:
		return loadDelimited(path)
	}
}

func loadExcel(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open excel file %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file %s has no sheets", filepath.Base(path))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return New(filepath.Base(path), nil, nil), nil
	}
	return New(filepath.Base(path), rows[0], rows[1:]), nil
}

func loadDelimited(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", filepath.Base(path), err)
	}
	text := decodeText(raw)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse file %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return New(filepath.Base(path), nil, nil), nil
	}
	return New(filepath.Base(path), records[0], records[1:]), nil
}

// decodeText converts raw file bytes to UTF-8. The export tools in the field
// write UTF-8, Windows-1252 or ISO-8859-1; Latin-1 maps every byte so it is
// the final fallback.
func decodeText(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw)
	}
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		return string(decoded)
	}
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return string(decoded)
}

// sniffDelimiter picks the delimiter with the most hits in the header line.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	best, count := ',', 0
	for _, cand := range []rune{'\t', ';', ','} {
		if n := strings.Count(line, string(cand)); n > count {
			best, count = cand, n
		}
	}
	return best
}
