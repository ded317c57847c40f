package payroll

import (
	"strconv"
	"strings"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
)

// DefaultCommissionPct is the driver's share when no percentage is
// configured or the configured value is unparseable.
const DefaultCommissionPct = 45.0

// vatDivisor strips the 12% VAT component from the card gross before
// commission. Fixed business rule, not configuration.
const vatDivisor = 1.12

// Result holds the derived payroll figures for one driver's filtered view.
type Result struct {
	CashAmount    float64 // kontant minus bomtur, the amount to deposit
	GrossSalary   float64 // commission share of VAT-adjusted card gross, plus tips
	Tips          float64
	TollTotal     float64
	CommissionPct float64
}

// Calculate computes the payroll figures from a reconciled, driver-filtered
// dataset. Missing columns contribute zero; there is no error path.
func Calculate(ds *dataset.Dataset, commissionPct float64) Result {
	cashSum := sumRole(ds, dataset.RoleCash)
	subtotalSum := sumRole(ds, dataset.RoleCreditSubtotal)
	tollSum := sumRole(ds, dataset.RoleToll)
	tipsSum := sumRole(ds, dataset.RoleTips)

	gross := 0.0
	if subtotalSum > 0 {
		gross = (subtotalSum / vatDivisor) * (commissionPct / 100.0)
	}
	// Tips are paid out in full, untouched by VAT adjustment or commission.
	gross += tipsSum

	return Result{
		CashAmount:    cashSum - tollSum,
		GrossSalary:   gross,
		Tips:          tipsSum,
		TollTotal:     tollSum,
		CommissionPct: commissionPct,
	}
}

// ShiftSummary totals the headline columns of a shift report.
type ShiftSummary struct {
	TotalCash   float64
	TotalCredit float64
	TotalToll   float64
	GrandTotal  float64 // cash plus credit
}

// Summarize computes the shift report headline totals.
func Summarize(ds *dataset.Dataset) ShiftSummary {
	s := ShiftSummary{
		TotalCash:   sumRole(ds, dataset.RoleCash),
		TotalCredit: sumRole(ds, dataset.RoleCredit),
		TotalToll:   sumRole(ds, dataset.RoleToll),
	}
	s.GrandTotal = s.TotalCash + s.TotalCredit
	return s
}

// ParsePercent coerces a configured commission percentage, falling back to
// the default on anything unparseable.
func ParsePercent(v string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	if s == "" {
		return DefaultCommissionPct
	}
	pct, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return DefaultCommissionPct
	}
	return pct
}

func sumRole(ds *dataset.Dataset, role dataset.Role) float64 {
	col, ok := dataset.Resolve(ds, role)
	if !ok {
		return 0.0
	}
	total := 0.0
	for _, v := range ds.ColumnValues(col) {
		total += dataset.ToFloat(v)
	}
	return total
}
