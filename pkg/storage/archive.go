// Package storage places rendered reports in the archive directory tree:
// lonn/<year>/ for salary reports and skift/<year>/ for shift reports.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive is the on-disk report library under a single root.
type Archive struct {
	root string
}

// NewArchive creates the archive root if needed.
func NewArchive(root string) (*Archive, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &Archive{root: root}, nil
}

// LonnPath returns the destination for a named salary report, creating the
// year directory.
func (a *Archive) LonnPath(year int, name string) (string, error) {
	dir := filepath.Join(a.root, "lonn", fmt.Sprintf("%d", year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	return filepath.Join(dir, sanitizeFilename(name)+".pdf"), nil
}

// SkiftPath returns the destination for a shift report. The filename
// carries the period and license: <name>_<year>-<month>-Løyve<loyve>.pdf.
func (a *Archive) SkiftPath(year, month int, loyve, name string) (string, error) {
	dir := filepath.Join(a.root, "skift", fmt.Sprintf("%d", year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	filename := fmt.Sprintf("%s_%d-%02d-Løyve%s.pdf",
		sanitizeFilename(strings.TrimSpace(name)), year, month, sanitizeFilename(loyve))
	return filepath.Join(dir, filename), nil
}

// sanitizeFilename removes unsafe characters from filenames
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"..", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
