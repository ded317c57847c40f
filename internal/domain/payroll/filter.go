// Package payroll narrows reconciled shift data to one driver and computes
// the salary and deposit figures derived from it.
package payroll

import (
	"strings"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/internal/domain/edits"
	"github.com/taxirapport/taxirapport/internal/domain/reconcile"
)

// Filter merges the rows of all datasets belonging to the given driver.
// Per dataset: rows match when the driver cell, zero-padded to four
// characters, equals the zero-padded driver id. Datasets with no driver
// column contribute nothing, as does everything when no driver is selected.
// Corrections are applied per source file before concatenation, so edits
// land against the file they were recorded for. Returns nil when nothing
// survives; that is an empty view, not an error.
func Filter(datasets []*dataset.Dataset, driverID string, ledger []edits.Edit, policy reconcile.Policy) *dataset.Dataset {
	if driverID == "" {
		return nil
	}
	want := padDriverID(driverID)

	var parts []*dataset.Dataset
	for _, ds := range datasets {
		driverCol, ok := dataset.ResolveDriver(ds)
		if !ok {
			continue
		}
		filtered := &dataset.Dataset{
			Source:  ds.Source,
			Columns: append([]string(nil), ds.Columns...),
		}
		for r := 0; r < ds.Len(); r++ {
			if padDriverID(ds.Cell(r, driverCol)) == want {
				filtered.Rows = append(filtered.Rows, append([]string(nil), ds.Rows[r]...))
			}
		}
		if filtered.Empty() {
			continue
		}
		parts = append(parts, policy.Apply(filtered, ledger))
	}
	if len(parts) == 0 {
		return nil
	}
	return dataset.Concat(parts...)
}

// padDriverID left-pads with zeros to four characters so "7" and "0007"
// compare equal. Longer ids pass through unchanged.
func padDriverID(id string) string {
	id = strings.TrimSpace(id)
	for len(id) < 4 {
		id = "0" + id
	}
	return id
}
