package report

import (
	"fmt"

	"github.com/taxirapport/taxirapport/internal/domain/edits"
	"github.com/taxirapport/taxirapport/internal/domain/payroll"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
	"github.com/taxirapport/taxirapport/pkg/format"
)

// LonnReport is the assembled salary report handed to the PDF renderer.
type LonnReport struct {
	Company settings.CompanyInfo
	Driver  settings.Driver
	Period  Period
	Table   *Table
	Summary payroll.Result

	// DepositLine is the cash-deposit instruction, empty when there is no
	// default bank account or no cash to deposit.
	DepositLine string

	// Edits is the audit trail: the ledger entries that touched this
	// report's rows, in ledger order.
	Edits []edits.Edit
}

// SkiftReport is the assembled per-file shift report.
type SkiftReport struct {
	Company settings.CompanyInfo
	Period  Period
	License string
	Table   *Table
	Summary payroll.ShiftSummary

	FirstShift    int
	LastShift     int
	HasShiftRange bool

	Edits []edits.Edit
}

// DepositLine renders the cash-deposit instruction printed top right on
// the salary report. Returns empty when no account is configured or there
// is nothing to deposit.
func DepositLine(cash float64, account, monthName, initials string) string {
	if account == "" || cash <= 0 {
		return ""
	}
	return fmt.Sprintf("Sett inn kontant kr %s på %s, merkes med %q",
		format.Number(cash), account, "Kontant innskudd "+monthName+" "+initials)
}

// SummaryLine renders the one-line salary summary.
func (r *LonnReport) SummaryLine() string {
	return fmt.Sprintf("Kontant: %s kr   Brutto lønn: %s kr   Tips: %s kr   Lønnsprosent: %.2f%%",
		format.Number(r.Summary.CashAmount),
		format.Number(r.Summary.GrossSalary),
		format.Number(r.Summary.Tips),
		r.Summary.CommissionPct)
}

// SummaryLine renders the shift report's totals band.
func (r *SkiftReport) SummaryLine() string {
	return fmt.Sprintf("Total Kreditt: %s kr     Total Kontant: %s kr     Bomtur: %s kr",
		format.Number(r.Summary.TotalCredit),
		format.Number(r.Summary.TotalCash),
		format.Number(r.Summary.TotalToll))
}
