// Package edits is the persistent ledger of manual cash corrections.
//
// Two call sites use the ledger with different identity rules: the salary
// view treats (license, shift) as the key and overwrites on upsert, while
// the shift view keeps every historical entry apart by timestamp and sums
// them on reconciliation. Ledger and Journal implement those two contracts
// over the same on-disk store.
package edits

import (
	"encoding/json"
	"strconv"
	"strings"
)

// TimestampLayout is the format edits have always been stamped with.
const TimestampLayout = "2006-01-02 15:04:05"

// Edit is one cash correction. License and shift number are strings on
// purpose: they are compared as trimmed text so leading zeros survive.
type Edit struct {
	License   string  `json:"loyve"`
	Shift     string  `json:"skiftnr"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
	Timestamp string  `json:"timestamp"`
}

// Key identifies an edit by license and shift number, both trimmed.
type Key struct {
	License string
	Shift   string
}

// NewKey trims both parts.
func NewKey(license, shift string) Key {
	return Key{License: strings.TrimSpace(license), Shift: strings.TrimSpace(shift)}
}

// Key returns the edit's aggregate identity.
func (e Edit) Key() Key {
	return NewKey(e.License, e.Shift)
}

// editJSON accepts both on-disk field spellings: the desktop store wrote
// loyve/skiftnr, the web store license/shift_number. Amounts occasionally
// ended up as strings; those are coerced the same way cell values are.
type editJSON struct {
	Loyve       string          `json:"loyve"`
	License     string          `json:"license"`
	Skiftnr     json.RawMessage `json:"skiftnr"`
	ShiftNumber json.RawMessage `json:"shift_number"`
	Amount      json.RawMessage `json:"amount"`
	Note        string          `json:"note"`
	Timestamp   string          `json:"timestamp"`
}

// UnmarshalJSON keeps old stores readable regardless of which field names
// they were written with.
func (e *Edit) UnmarshalJSON(data []byte) error {
	var raw editJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.License = raw.Loyve
	if e.License == "" {
		e.License = raw.License
	}
	e.Shift = rawString(raw.Skiftnr)
	if e.Shift == "" {
		e.Shift = rawString(raw.ShiftNumber)
	}
	e.Amount = rawFloat(raw.Amount)
	e.Note = raw.Note
	e.Timestamp = raw.Timestamp
	return nil
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func rawFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}
