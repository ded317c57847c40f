package report

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/pkg/format"
)

// Period is the year and month a report covers.
type Period struct {
	Year  int
	Month int
}

// MonthName returns the Norwegian month name.
func (p Period) MonthName() string {
	return format.MonthName(p.Month)
}

var (
	yearRe  = regexp.MustCompile(`20\d\d`)
	monthRe = regexp.MustCompile(`[-_](\d{1,2})`)
)

// ExtractPeriod finds the report period: the first parseable start-date
// cell wins, then year/month patterns in the file name, then the current
// date. Partial hits combine, e.g. year from a cell and month from the
// file name.
func ExtractPeriod(datasets []*dataset.Dataset, filename string, now time.Time) Period {
	var p Period
	filename = filepath.Base(filename)
	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		col, ok := dataset.Resolve(ds, dataset.RoleDateStart)
		if !ok {
			continue
		}
		for _, raw := range ds.ColumnValues(col) {
			if t, ok := format.ParseDate(raw); ok {
				p.Year = t.Year()
				p.Month = int(t.Month())
				break
			}
		}
		if p.Year != 0 {
			break
		}
	}

	if p.Year == 0 {
		if m := yearRe.FindString(filename); m != "" {
			p.Year, _ = strconv.Atoi(m)
		}
	}
	if p.Month == 0 {
		for _, m := range monthRe.FindAllStringSubmatch(filename, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 12 {
				p.Month = n
				break
			}
		}
	}

	if p.Year == 0 {
		p.Year = now.Year()
	}
	if p.Month == 0 {
		p.Month = int(now.Month())
	}
	return p
}

// License returns the first license cell of the dataset, or empty.
func License(ds *dataset.Dataset) string {
	if ds == nil || ds.Empty() {
		return ""
	}
	col, ok := dataset.Resolve(ds, dataset.RoleLicense)
	if !ok {
		return ""
	}
	return ds.Cell(0, col)
}

// ShiftRange returns the lowest and highest shift number in the dataset.
// ok is false when the dataset has no numeric Skiftnr values.
func ShiftRange(ds *dataset.Dataset) (first, last int, ok bool) {
	if ds == nil {
		return 0, 0, false
	}
	col, found := dataset.ResolveShift(ds)
	if !found {
		return 0, 0, false
	}
	seen := make(map[int]struct{})
	var nums []int
	for _, raw := range ds.ColumnValues(col) {
		if !isNumeric(raw) {
			continue
		}
		n := int(dataset.ToFloat(raw))
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return 0, 0, false
	}
	sort.Ints(nums)
	return nums[0], nums[len(nums)-1], true
}
