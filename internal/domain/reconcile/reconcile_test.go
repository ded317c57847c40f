package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/internal/domain/edits"
)

func threeRowDataset() *dataset.Dataset {
	return dataset.New("skift.xlsx",
		[]string{"Skiftnr", "Løyve", "Kontant"},
		[][]string{
			{"5", "0001", "100"},
			{"5", "0001", "200"},
			{"5", "0001", "300"},
		})
}

func TestLatestWinsApply(t *testing.T) {
	t.Run("broadcasts to every matching row", func(t *testing.T) {
		ds := threeRowDataset()
		out := LatestWins{}.Apply(ds, []edits.Edit{{License: "0001", Shift: "5", Amount: 100}})

		assert.Equal(t, "200", out.Cell(0, "Kontant"))
		assert.Equal(t, "300", out.Cell(1, "Kontant"))
		assert.Equal(t, "400", out.Cell(2, "Kontant"))
	})

	t.Run("source dataset is untouched", func(t *testing.T) {
		ds := threeRowDataset()
		LatestWins{}.Apply(ds, []edits.Edit{{License: "0001", Shift: "5", Amount: 100}})
		assert.Equal(t, "100", ds.Cell(0, "Kontant"))
	})

	t.Run("edits accumulate in ledger order", func(t *testing.T) {
		ds := threeRowDataset()
		out := LatestWins{}.Apply(ds, []edits.Edit{
			{License: "0001", Shift: "5", Amount: 100},
			{License: "0001", Shift: "5", Amount: -50},
		})
		assert.Equal(t, "150", out.Cell(0, "Kontant"))
	})

	t.Run("missing cash column is a no-op", func(t *testing.T) {
		ds := dataset.New("x.xlsx", []string{"Skiftnr", "Løyve"}, [][]string{{"5", "0001"}})
		out := LatestWins{}.Apply(ds, []edits.Edit{{License: "0001", Shift: "5", Amount: 100}})
		assert.Same(t, ds, out)
	})

	t.Run("unparseable cash cell counts as zero before adjustment", func(t *testing.T) {
		ds := dataset.New("x.xlsx",
			[]string{"Skiftnr", "Løyve", "Kontant"},
			[][]string{{"5", "0001", "oops"}})
		out := LatestWins{}.Apply(ds, []edits.Edit{{License: "0001", Shift: "5", Amount: 25}})
		assert.Equal(t, "25", out.Cell(0, "Kontant"))
	})
}

func TestCumulativeFirstRowApply(t *testing.T) {
	t.Run("only the first matching row changes", func(t *testing.T) {
		ds := threeRowDataset()
		out := CumulativeFirstRow{}.Apply(ds, []edits.Edit{{License: "0001", Shift: "5", Amount: 100}})

		assert.Equal(t, "200", out.Cell(0, "Kontant"))
		assert.Equal(t, "200", out.Cell(1, "Kontant"))
		assert.Equal(t, "300", out.Cell(2, "Kontant"))
	})

	t.Run("same-key entries sum before application", func(t *testing.T) {
		ds := threeRowDataset()
		out := CumulativeFirstRow{}.Apply(ds, []edits.Edit{
			{License: "0001", Shift: "5", Amount: 100, Timestamp: "2024-06-01 10:00:00"},
			{License: "0001", Shift: "5", Amount: -30, Timestamp: "2024-06-01 11:00:00"},
		})
		assert.Equal(t, "170", out.Cell(0, "Kontant"))
		assert.Equal(t, "200", out.Cell(1, "Kontant"))
	})

	t.Run("keys compare trimmed, preserving leading zeros", func(t *testing.T) {
		ds := dataset.New("x.xlsx",
			[]string{"Skiftnr", "Løyve", "Kontant"},
			[][]string{{" 5 ", " 0001 ", "100"}})
		out := CumulativeFirstRow{}.Apply(ds, []edits.Edit{{License: "0001", Shift: "5", Amount: 10}})
		assert.Equal(t, "110", out.Cell(0, "Kontant"))
	})
}

func TestFileKeysAndRelevantEdits(t *testing.T) {
	t.Run("relevant filters by key intersection", func(t *testing.T) {
		ds := threeRowDataset()
		all := []edits.Edit{
			{License: "0001", Shift: "5", Amount: 1},
			{License: "0002", Shift: "5", Amount: 2},
			{License: "0001", Shift: "9", Amount: 3},
		}
		relevant := RelevantEdits(ds, all)
		require.Len(t, relevant, 1)
		assert.Equal(t, 1.0, relevant[0].Amount)
	})

	t.Run("no license column means no keys", func(t *testing.T) {
		ds := dataset.New("x.xlsx", []string{"Skiftnr", "Kontant"}, [][]string{{"5", "100"}})
		assert.Nil(t, FileKeys(ds))
		assert.Empty(t, RelevantEdits(ds, []edits.Edit{{License: "0001", Shift: "5"}}))
	})
}
