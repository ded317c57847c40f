package edits

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "skift_edits.json"), slog.New(slog.DiscardHandler))
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	// Deterministic, strictly increasing timestamps.
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return s
}

func TestLedgerUpsert(t *testing.T) {
	t.Run("same key never produces two records", func(t *testing.T) {
		l := NewLedger(newTestStore(t))
		require.NoError(t, l.Upsert("0007", "1", 100, "first"))
		require.NoError(t, l.Upsert("0007", "1", -20, "second"))

		all := l.All()
		require.Len(t, all, 1)
		assert.Equal(t, -20.0, all[0].Amount)
		assert.Equal(t, "second", all[0].Note)
	})

	t.Run("keys are trimmed strings, leading zeros preserved", func(t *testing.T) {
		l := NewLedger(newTestStore(t))
		require.NoError(t, l.Upsert(" 0007 ", "1", 100, ""))

		got, ok := l.Get("0007", "1")
		require.True(t, ok)
		assert.Equal(t, "0007", got.License)

		_, ok = l.Get("7", "1")
		assert.False(t, ok, "license 7 and 0007 are different keys")
	})

	t.Run("delete removes the key entirely", func(t *testing.T) {
		l := NewLedger(newTestStore(t))
		require.NoError(t, l.Upsert("0007", "1", 100, ""))
		require.NoError(t, l.Upsert("0008", "2", 50, ""))
		require.NoError(t, l.Delete("0007", "1"))

		all := l.All()
		require.Len(t, all, 1)
		assert.Equal(t, "0008", all[0].License)
	})
}

func TestLedgerRelevant(t *testing.T) {
	l := NewLedger(newTestStore(t))
	require.NoError(t, l.Upsert("0007", "1", 100, ""))
	require.NoError(t, l.Upsert("0009", "9", 50, ""))

	keys := map[Key]struct{}{NewKey("0007", "1"): {}}
	relevant := l.Relevant(keys)
	require.Len(t, relevant, 1)
	assert.Equal(t, "0007", relevant[0].License)
}

func TestJournal(t *testing.T) {
	t.Run("append keeps history per key", func(t *testing.T) {
		j := NewJournal(newTestStore(t))
		require.NoError(t, j.Append("0007", "1", 100, "a"))
		require.NoError(t, j.Append("0007", "1", -30, "b"))

		all := j.All()
		require.Len(t, all, 2)
		assert.NotEqual(t, all[0].Timestamp, all[1].Timestamp)
	})

	t.Run("delete is timestamp scoped", func(t *testing.T) {
		j := NewJournal(newTestStore(t))
		require.NoError(t, j.Append("0007", "1", 100, "a"))
		require.NoError(t, j.Append("0007", "1", -30, "b"))

		all := j.All()
		require.NoError(t, j.DeleteAt("0007", "1", all[0].Timestamp))

		left := j.All()
		require.Len(t, left, 1)
		assert.Equal(t, -30.0, left[0].Amount)
	})

	t.Run("update is timestamp scoped", func(t *testing.T) {
		j := NewJournal(newTestStore(t))
		require.NoError(t, j.Append("0007", "1", 100, "a"))
		require.NoError(t, j.Append("0007", "1", -30, "b"))

		all := j.All()
		require.NoError(t, j.UpdateAt("0007", "1", all[1].Timestamp, -50, "changed"))

		after := j.All()
		assert.Equal(t, 100.0, after[0].Amount)
		assert.Equal(t, -50.0, after[1].Amount)
		assert.Equal(t, "changed", after[1].Note)
	})
}

func TestStoreResilience(t *testing.T) {
	t.Run("missing store is an empty ledger", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "absent.json"), slog.New(slog.DiscardHandler))
		assert.Empty(t, s.Load())
	})

	t.Run("corrupt store degrades to empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
		s := NewStore(path, slog.New(slog.DiscardHandler))
		assert.Empty(t, s.Load())
	})

	t.Run("reads legacy web-store field names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "web.json")
		raw := `[{"license":"0007","shift_number":"3","amount":"12,5","note":"","timestamp":"2024-01-01 10:00:00"}]`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
		s := NewStore(path, slog.New(slog.DiscardHandler))

		all := s.Load()
		require.Len(t, all, 1)
		assert.Equal(t, "0007", all[0].License)
		assert.Equal(t, "3", all[0].Shift)
		assert.Equal(t, 12.5, all[0].Amount)
	})

	t.Run("rewrites the whole file on mutation", func(t *testing.T) {
		s := newTestStore(t)
		require.NoError(t, NewLedger(s).Upsert("0007", "1", 100, ""))

		data, err := os.ReadFile(s.Path())
		require.NoError(t, err)
		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "0007", decoded[0]["loyve"])
		assert.Equal(t, "1", decoded[0]["skiftnr"])
	})
}
