// Package settings provides drivers, bank accounts, column templates and
// company info to the report pipeline. Two providers exist: a JSON file
// store matching the desktop application's on-disk layout, and a Postgres
// store matching the web backend's tables. The core only reads through the
// Provider interface, resolved once at construction time.
package settings

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Driver is one taxi driver. IDs are four-digit strings; comparisons keep
// the zero padding.
type Driver struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Percent     float64 `json:"percent"`
	BankAccount string  `json:"bank_account,omitempty"`
}

// Initials returns the upper-cased first letter of each name part, used in
// the deposit reference line.
func (d Driver) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(d.Name) {
		b.WriteString(strings.ToUpper(string([]rune(part)[0])))
	}
	return b.String()
}

// driverJSON tolerates legacy stores where percent was saved as a string.
type driverJSON struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Percent     json.RawMessage `json:"percent"`
	BankAccount string          `json:"bank_account"`
}

func (d *Driver) UnmarshalJSON(data []byte) error {
	var raw driverJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.ID = flexString(raw.ID)
	d.Name = raw.Name
	d.Percent = flexFloat(raw.Percent, 45.0)
	d.BankAccount = raw.BankAccount
	return nil
}

func flexString(raw json.RawMessage) string {
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

func flexFloat(raw json.RawMessage, fallback float64) float64 {
	if len(raw) == 0 {
		return fallback
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
	return fallback
}

// BankAccount is a deposit target, unique by account number.
type BankAccount struct {
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
}

// accountNumberRe is the Norwegian account format NNNN.NN.NNNNN.
var accountNumberRe = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{5}$`)

// ValidAccountNumber reports whether s matches the NNNN.NN.NNNNN format.
func ValidAccountNumber(s string) bool {
	return accountNumberRe.MatchString(strings.TrimSpace(s))
}

// Template is a named, ordered column selection. Names are unique within
// their store. Template definitions keep columns that no loaded dataset
// has; the missing ones are dropped only at render time.
type Template struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

// CompanyInfo is the single company record printed in report headers.
type CompanyInfo struct {
	Name      string `json:"name"`
	OrgNumber string `json:"orgnr"`
	Address   string `json:"address"`
}

// Provider is the read surface the report pipeline depends on. Defaults
// come back empty, never as errors, when nothing is configured.
type Provider interface {
	Drivers(ctx context.Context) ([]Driver, error)
	DefaultDriver(ctx context.Context) (string, error)
	// DriverPercent returns the commission percentage for the driver, or
	// the 45.0 default for unknown drivers and unparseable values.
	DriverPercent(ctx context.Context, id string) float64
	Templates(ctx context.Context) ([]Template, error)
	DefaultTemplate(ctx context.Context) (string, error)
	SaveTemplates(ctx context.Context, templates []Template) error
	CompanyInfo(ctx context.Context) (CompanyInfo, error)
	BankAccounts(ctx context.Context) ([]BankAccount, error)
	DefaultBankAccount(ctx context.Context) (string, error)

	// SetAvailableColumns is called after file loads so templates can be
	// authored against live header names.
	SetAvailableColumns(columns []string)
	AvailableColumns() []string
}

// FindDriver returns the driver with the given id.
func FindDriver(drivers []Driver, id string) (Driver, bool) {
	for _, d := range drivers {
		if strings.TrimSpace(d.ID) == strings.TrimSpace(id) {
			return d, true
		}
	}
	return Driver{}, false
}
