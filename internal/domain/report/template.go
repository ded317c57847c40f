package report

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
)

// StandardTemplate is the sentinel meaning "every dataset column in its
// existing order".
const StandardTemplate = "Standard (alle kolonner)"

// SelectColumns resolves a template name against the loaded dataset. The
// sentinel and the empty name select all columns; otherwise the template's
// columns keep their stored order, and columns the dataset does not have
// are silently dropped. The template definition itself is never modified.
func SelectColumns(ds *dataset.Dataset, name string, templates []settings.Template) []string {
	if ds == nil {
		return nil
	}
	if name == "" || name == StandardTemplate {
		return append([]string(nil), ds.Columns...)
	}
	for _, t := range templates {
		if t.Name == name {
			var selected []string
			for _, col := range t.Columns {
				if ds.ColumnIndex(col) >= 0 {
					selected = append(selected, col)
				}
			}
			return selected
		}
	}
	// Unknown template names behave like the sentinel.
	return append([]string(nil), ds.Columns...)
}

// MissingColumns lists the template columns the dataset does not have.
func MissingColumns(ds *dataset.Dataset, t settings.Template) []string {
	var missing []string
	for _, col := range t.Columns {
		if ds == nil || ds.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	return missing
}

// SuggestColumns offers close matches among the available headers for a
// template column that resolved to nothing, best first.
func SuggestColumns(missing string, available []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(missing, available)
	sort.Sort(ranks)
	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == 3 {
			break
		}
	}
	return out
}
