package dataset

import "strings"

// Role identifies the semantic meaning of a column, independent of what the
// export file actually named it.
type Role string

const (
	RoleLicense        Role = "license"         // løyve, the taxi permit number
	RoleCash           Role = "cash"            // kontant fares
	RoleToll           Role = "toll"            // bomtur deductions
	RoleCreditSubtotal Role = "credit_subtotal" // VAT-inclusive card gross
	RoleCredit         Role = "credit"          // kreditt fares
	RoleTips           Role = "tips"            // kreditt_tips / tips
	RoleDateStart      Role = "date_start"
	RoleDateEnd        Role = "date_end"
)

// ShiftColumn is the one header matched exactly, never heuristically.
const ShiftColumn = "Skiftnr"

// MatchKind selects how a rule compares against a normalized header.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchContains
	MatchPrefix
)

// Rule is one tier of header patterns for a role. Tiers are tried in order;
// within a tier the first matching column in dataset order wins.
type Rule struct {
	Kind     MatchKind
	Patterns []string
}

// roleRules is the resolver's rule table. It is data on purpose: new header
// spellings are added here, not at call sites. Matching is best effort over
// freeform headers and makes no correctness guarantee.
var roleRules = map[Role][]Rule{
	RoleLicense: {
		{Kind: MatchExact, Patterns: []string{"løyve", "loyve"}},
	},
	RoleCash: {
		{Kind: MatchExact, Patterns: []string{"kontant"}},
		{Kind: MatchContains, Patterns: []string{"kontant"}},
	},
	RoleToll: {
		{Kind: MatchContains, Patterns: []string{"bomtur"}},
	},
	RoleCreditSubtotal: {
		{Kind: MatchContains, Patterns: []string{"sub_total", "subtotal"}},
	},
	RoleCredit: {
		{Kind: MatchContains, Patterns: []string{"kreditt"}},
	},
	RoleTips: {
		{Kind: MatchContains, Patterns: []string{"kreditt_tips"}},
		{Kind: MatchContains, Patterns: []string{"tips"}},
	},
	RoleDateStart: {
		{Kind: MatchPrefix, Patterns: []string{"start_dato"}},
	},
	RoleDateEnd: {
		{Kind: MatchPrefix, Patterns: []string{"slutt_dato"}},
	},
}

// driverWords are the header fragments that mark a driver identifier column.
var driverWords = []string{"sjaafor", "sjåfør", "sjafor", "sjåfor", "driver", "sjåførid", "sjaforid"}

// identifierWords mark columns that must never be summed in a totals row.
var identifierWords = []string{
	"skiftnr", "løyve", "loyve", "sjaafor", "sjåfør", "sjafor", "sjåfor", "driver", "sjåførid", "sjaforid",
}

// shiftLikeWords mark columns rendered as bare integers in the shift report.
var shiftLikeWords = []string{"skiftnr", "sjaafor", "sjåfør", "sjafor"}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func (r Rule) matches(normalized string) bool {
	for _, p := range r.Patterns {
		switch r.Kind {
		case MatchExact:
			if normalized == p {
				return true
			}
		case MatchContains:
			if strings.Contains(normalized, p) {
				return true
			}
		case MatchPrefix:
			if strings.HasPrefix(strings.ReplaceAll(normalized, " ", "_"), p) {
				return true
			}
		}
	}
	return false
}

// Resolve returns the dataset column playing the given role, or "" and false
// when the dataset is absent or no header matches. Absence is not an error;
// callers treat a missing role as contributing zero.
func Resolve(d *Dataset, role Role) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, tier := range roleRules[role] {
		for _, col := range d.Columns {
			if tier.matches(normalizeHeader(col)) {
				return col, true
			}
		}
	}
	return "", false
}

// ResolveAll resolves every role the table knows about.
func ResolveAll(d *Dataset) map[Role]string {
	out := make(map[Role]string, len(roleRules))
	for role := range roleRules {
		if col, ok := Resolve(d, role); ok {
			out[role] = col
		}
	}
	return out
}

// ResolveDriver finds the driver identifier column, if any.
func ResolveDriver(d *Dataset) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, col := range d.Columns {
		c := normalizeHeader(col)
		for _, w := range driverWords {
			if strings.Contains(c, w) {
				return col, true
			}
		}
	}
	return "", false
}

// ResolveShift finds the shift number column by its exact header.
func ResolveShift(d *Dataset) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, col := range d.Columns {
		if col == ShiftColumn {
			return col, true
		}
	}
	return "", false
}

// IsIdentifierColumn reports whether the header names a license, shift or
// driver identifier. Identifier columns get no column total.
func IsIdentifierColumn(header string) bool {
	c := normalizeHeader(header)
	for _, w := range identifierWords {
		if strings.Contains(c, w) {
			return true
		}
	}
	return false
}

// IsShiftLikeColumn reports whether cells should display as bare integers.
func IsShiftLikeColumn(header string) bool {
	c := normalizeHeader(header)
	for _, w := range shiftLikeWords {
		if strings.Contains(c, w) {
			return true
		}
	}
	return false
}

// IsDateColumn reports whether the header is a shift start or end date.
func IsDateColumn(header string) bool {
	c := strings.ReplaceAll(normalizeHeader(header), " ", "_")
	return strings.HasPrefix(c, "start_dato") || strings.HasPrefix(c, "slutt_dato")
}
