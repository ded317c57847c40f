package cron

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupSnapshot(t *testing.T) {
	dir := t.TempDir()
	ledger := filepath.Join(dir, "rettelser.json")
	require.NoError(t, os.WriteFile(ledger, []byte(`[{"loyve":"A-101"}]`), 0o644))

	backupDir := filepath.Join(dir, "backup")
	s := NewScheduler(ledger, backupDir, 5, slog.New(slog.DiscardHandler))
	require.NoError(t, s.RunNow())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"loyve":"A-101"}]`, string(data))
}

func TestBackupMissingLedgerIsNoop(t *testing.T) {
	dir := t.TempDir()
	s := NewScheduler(filepath.Join(dir, "nope.json"), filepath.Join(dir, "backup"), 5, slog.New(slog.DiscardHandler))
	require.NoError(t, s.RunNow())

	_, err := os.Stat(filepath.Join(dir, "backup"))
	assert.True(t, os.IsNotExist(err))
}

func TestBackupPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	ledger := filepath.Join(dir, "rettelser.json")
	require.NoError(t, os.WriteFile(ledger, []byte(`[]`), 0o644))

	backupDir := filepath.Join(dir, "backup")
	require.NoError(t, os.MkdirAll(backupDir, 0o755))
	old := []string{
		"rettelser_2024-01-01_aaaaaaaa.json",
		"rettelser_2024-01-02_bbbbbbbb.json",
	}
	for _, name := range old {
		require.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte(`[]`), 0o644))
	}

	s := NewScheduler(ledger, backupDir, 2, slog.New(slog.DiscardHandler))
	require.NoError(t, s.RunNow())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	names := []string{entries[0].Name(), entries[1].Name()}
	assert.NotContains(t, names, "rettelser_2024-01-01_aaaaaaaa.json")
}
