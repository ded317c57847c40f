package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/internal/domain/edits"
	"github.com/taxirapport/taxirapport/internal/domain/reconcile"
)

func TestCalculate(t *testing.T) {
	t.Run("VAT and commission", func(t *testing.T) {
		ds := dataset.New("x.xlsx",
			[]string{"Sub_Total", "Kontant"},
			[][]string{{"1120", "0"}})
		res := Calculate(ds, 45.0)
		// 1120 / 1.12 = 1000, * 0.45 = 450
		assert.InDelta(t, 450.0, res.GrossSalary, 1e-9)
	})

	t.Run("missing subtotal column yields tips only", func(t *testing.T) {
		ds := dataset.New("x.xlsx",
			[]string{"Kontant", "Kreditt_Tips"},
			[][]string{{"100", "30"}, {"50", "20"}})
		res := Calculate(ds, 45.0)
		assert.Equal(t, 0.0, res.GrossSalary-res.Tips)
		assert.Equal(t, 50.0, res.Tips)
		assert.Equal(t, 50.0, res.GrossSalary)
	})

	t.Run("cash amount subtracts toll", func(t *testing.T) {
		ds := dataset.New("x.xlsx",
			[]string{"Kontant", "Bomtur"},
			[][]string{{"500", "40"}, {"250,5", "9,5"}})
		res := Calculate(ds, 45.0)
		assert.InDelta(t, 701.0, res.CashAmount, 1e-9)
		assert.InDelta(t, 49.5, res.TollTotal, 1e-9)
	})

	t.Run("garbage cells count as zero", func(t *testing.T) {
		ds := dataset.New("x.xlsx",
			[]string{"Kontant"},
			[][]string{{"100"}, {"nan"}, {"oops"}, {""}})
		res := Calculate(ds, 45.0)
		assert.Equal(t, 100.0, res.CashAmount)
	})

	t.Run("negative subtotal sum gives zero commission share", func(t *testing.T) {
		ds := dataset.New("x.xlsx",
			[]string{"Sub_Total"},
			[][]string{{"-10"}})
		res := Calculate(ds, 45.0)
		assert.Equal(t, 0.0, res.GrossSalary)
	})
}

func TestParsePercent(t *testing.T) {
	assert.Equal(t, 50.0, ParsePercent("50"))
	assert.Equal(t, 47.5, ParsePercent("47,5"))
	assert.Equal(t, 45.0, ParsePercent(""))
	assert.Equal(t, 45.0, ParsePercent("femti"))
}

func TestSummarize(t *testing.T) {
	ds := dataset.New("x.xlsx",
		[]string{"Kontant", "Kreditt", "Bomtur"},
		[][]string{{"100", "200", "10"}, {"50", "100", "5"}})
	s := Summarize(ds)
	assert.Equal(t, 150.0, s.TotalCash)
	assert.Equal(t, 300.0, s.TotalCredit)
	assert.Equal(t, 15.0, s.TotalToll)
	assert.Equal(t, 450.0, s.GrandTotal)
}

func TestFilter(t *testing.T) {
	policy := reconcile.LatestWins{}

	t.Run("zero-pads driver comparison both ways", func(t *testing.T) {
		ds := dataset.New("a.xlsx",
			[]string{"Skiftnr", "Løyve", "Sjåfør", "Kontant"},
			[][]string{
				{"1", "0001", "7", "100"},
				{"2", "0001", "0007", "200"},
				{"3", "0001", "8", "300"},
			})
		out := Filter([]*dataset.Dataset{ds}, "0007", nil, policy)
		require.NotNil(t, out)
		assert.Equal(t, 2, out.Len())

		out = Filter([]*dataset.Dataset{ds}, "7", nil, policy)
		require.NotNil(t, out)
		assert.Equal(t, 2, out.Len())
	})

	t.Run("datasets without a driver column are skipped", func(t *testing.T) {
		noDriver := dataset.New("b.xlsx",
			[]string{"Skiftnr", "Kontant"},
			[][]string{{"1", "100"}})
		assert.Nil(t, Filter([]*dataset.Dataset{noDriver}, "0007", nil, policy))
	})

	t.Run("edits apply per source file before concatenation", func(t *testing.T) {
		a := dataset.New("a.xlsx",
			[]string{"Skiftnr", "Løyve", "Sjåfør", "Kontant"},
			[][]string{{"1", "0001", "0007", "100"}})
		b := dataset.New("b.xlsx",
			[]string{"Skiftnr", "Løyve", "Sjåfør", "Kontant"},
			[][]string{{"1", "0002", "0007", "500"}})
		ledger := []edits.Edit{{License: "0001", Shift: "1", Amount: -20}}

		out := Filter([]*dataset.Dataset{a, b}, "0007", ledger, policy)
		require.NotNil(t, out)
		require.Equal(t, 2, out.Len())
		assert.Equal(t, "80", out.Cell(0, "Kontant"))
		assert.Equal(t, "500", out.Cell(1, "Kontant"))
	})

	t.Run("source order is preserved across datasets", func(t *testing.T) {
		a := dataset.New("a.xlsx",
			[]string{"Skiftnr", "Sjåfør", "Kontant"},
			[][]string{{"1", "0007", "1"}, {"2", "0007", "2"}})
		b := dataset.New("b.xlsx",
			[]string{"Skiftnr", "Sjåfør", "Kontant"},
			[][]string{{"3", "0007", "3"}})
		out := Filter([]*dataset.Dataset{a, b}, "0007", nil, policy)
		require.NotNil(t, out)
		assert.Equal(t, []string{"1", "2", "3"}, out.ColumnValues("Skiftnr"))
	})

	t.Run("no driver selected yields empty view", func(t *testing.T) {
		ds := dataset.New("a.xlsx",
			[]string{"Sjåfør", "Kontant"},
			[][]string{{"0007", "100"}})
		assert.Nil(t, Filter([]*dataset.Dataset{ds}, "", nil, policy))
	})
}
