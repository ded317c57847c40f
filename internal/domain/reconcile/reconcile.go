// Package reconcile applies ledger corrections onto loaded datasets. Source
// data is never mutated; policies work on a clone and hand back an adjusted
// view.
package reconcile

import (
	"strconv"
	"strings"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/internal/domain/edits"
)

// Policy applies a sequence of ledger entries to a dataset. The two
// implementations deliberately differ: the salary view adds each active
// correction to every matching row, while the shift view sums a key's
// history into its first matching row only. Do not unify them; both
// behaviors are product behavior with their own call sites.
type Policy interface {
	Apply(ds *dataset.Dataset, all []edits.Edit) *dataset.Dataset
}

// LatestWins is the salary-view policy: the ledger holds one active amount
// per key, and that amount is added to the cash cell of every row matching
// the key, in ledger order.
type LatestWins struct{}

// Apply returns the adjusted view, or ds unchanged when the dataset lacks a
// license, shift or cash column. A missing column is a no-op, not an error.
func (LatestWins) Apply(ds *dataset.Dataset, all []edits.Edit) *dataset.Dataset {
	licenseCol, shiftCol, cashCol, ok := reconcilableColumns(ds)
	if !ok || len(all) == 0 {
		return ds
	}
	out := ds.Clone()
	for _, e := range all {
		key := e.Key()
		for r := 0; r < out.Len(); r++ {
			if !rowMatches(out, r, licenseCol, shiftCol, key) {
				continue
			}
			adjusted := dataset.ToFloat(out.Cell(r, cashCol)) + e.Amount
			out.SetCell(r, cashCol, formatCash(adjusted))
		}
	}
	return out
}

// CumulativeFirstRow is the shift-view policy: same-key journal entries are
// summed first, and the summed amount lands on the first matching row only.
type CumulativeFirstRow struct{}

// Apply returns the adjusted view, or ds unchanged when the dataset lacks a
// license, shift or cash column.
func (CumulativeFirstRow) Apply(ds *dataset.Dataset, all []edits.Edit) *dataset.Dataset {
	licenseCol, shiftCol, cashCol, ok := reconcilableColumns(ds)
	if !ok || len(all) == 0 {
		return ds
	}

	sums := make(map[edits.Key]float64)
	order := make([]edits.Key, 0, len(all))
	for _, e := range all {
		key := e.Key()
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += e.Amount
	}

	out := ds.Clone()
	for _, key := range order {
		for r := 0; r < out.Len(); r++ {
			if !rowMatches(out, r, licenseCol, shiftCol, key) {
				continue
			}
			adjusted := dataset.ToFloat(out.Cell(r, cashCol)) + sums[key]
			out.SetCell(r, cashCol, formatCash(adjusted))
			break
		}
	}
	return out
}

// FileKeys collects the (license, shift) pairs present in the dataset's
// rows. It returns nil when the dataset has no license or shift column.
func FileKeys(ds *dataset.Dataset) map[edits.Key]struct{} {
	if ds == nil {
		return nil
	}
	licenseCol, okLicense := dataset.Resolve(ds, dataset.RoleLicense)
	shiftCol, okShift := dataset.ResolveShift(ds)
	if !okLicense || !okShift {
		return nil
	}
	keys := make(map[edits.Key]struct{}, ds.Len())
	for r := 0; r < ds.Len(); r++ {
		keys[edits.NewKey(ds.Cell(r, licenseCol), ds.Cell(r, shiftCol))] = struct{}{}
	}
	return keys
}

// RelevantEdits filters the ledger sequence down to keys present in the
// dataset, preserving ledger order. Unresolvable datasets yield nothing.
func RelevantEdits(ds *dataset.Dataset, all []edits.Edit) []edits.Edit {
	keys := FileKeys(ds)
	if len(keys) == 0 {
		return nil
	}
	var out []edits.Edit
	for _, e := range all {
		if _, ok := keys[e.Key()]; ok {
			out = append(out, e)
		}
	}
	return out
}

func reconcilableColumns(ds *dataset.Dataset) (licenseCol, shiftCol, cashCol string, ok bool) {
	licenseCol, okLicense := dataset.Resolve(ds, dataset.RoleLicense)
	shiftCol, okShift := dataset.ResolveShift(ds)
	cashCol, okCash := dataset.Resolve(ds, dataset.RoleCash)
	return licenseCol, shiftCol, cashCol, okLicense && okShift && okCash
}

func rowMatches(ds *dataset.Dataset, row int, licenseCol, shiftCol string, key edits.Key) bool {
	return strings.TrimSpace(ds.Cell(row, shiftCol)) == key.Shift &&
		strings.TrimSpace(ds.Cell(row, licenseCol)) == key.License
}

// formatCash writes an adjusted value back in the shortest float form, so
// downstream normalization reads exactly what was computed.
func formatCash(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
