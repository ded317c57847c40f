package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
)

func TestFormatCell(t *testing.T) {
	t.Run("shift column renders bare integer", func(t *testing.T) {
		assert.Equal(t, "7", FormatCell("Skiftnr", "7.0", ContextSkift))
		assert.Equal(t, "12", FormatCell("Sjåfør", "12", ContextLonn))
		assert.Equal(t, "abc", FormatCell("Skiftnr", "abc", ContextSkift))
	})

	t.Run("date column renders YYYY-MM-DD", func(t *testing.T) {
		assert.Equal(t, "2024-03-05", FormatCell("Start_dato tid", "2024-03-05 06:30:00", ContextSkift))
		assert.Equal(t, "not a date", FormatCell("Start_dato tid", "not a date", ContextSkift))
	})

	t.Run("shift context formats numerics with two decimals", func(t *testing.T) {
		assert.Equal(t, "1 234,50", FormatCell("Kontant", "1234.5", ContextSkift))
		assert.Equal(t, "100,00", FormatCell("Kontant", "100", ContextSkift))
		assert.Equal(t, "fritekst", FormatCell("Kommentar", "fritekst", ContextSkift))
	})

	t.Run("salary context leaves other cells raw", func(t *testing.T) {
		assert.Equal(t, "1234.5", FormatCell("Kontant", "1234.5", ContextLonn))
	})
}

func TestTotalsHeuristic(t *testing.T) {
	t.Run("nine of ten numeric qualifies", func(t *testing.T) {
		rows := make([][]string, 10)
		for i := range rows {
			rows[i] = []string{"1", "10"}
		}
		rows[9][1] = ""
		ds := dataset.New("t", []string{"Skiftnr", "Kontant"}, rows)

		table := BuildTable(ds, ds.Columns, ContextSkift)
		require.NotNil(t, table.Totals)
		assert.Equal(t, "", table.Totals[0], "identifier column gets no total")
		assert.Equal(t, "90", table.Totals[1])
	})

	t.Run("seven of ten numeric does not qualify", func(t *testing.T) {
		rows := make([][]string, 10)
		for i := range rows {
			rows[i] = []string{"10"}
		}
		rows[7][0], rows[8][0], rows[9][0] = "x", "y", "z"
		ds := dataset.New("t", []string{"Belop"}, rows)

		table := BuildTable(ds, ds.Columns, ContextSkift)
		assert.Nil(t, table.Totals)
	})

	t.Run("no qualifying column means no totals row", func(t *testing.T) {
		ds := dataset.New("t", []string{"Skiftnr", "Løyve"}, [][]string{{"1", "0007"}})
		table := BuildTable(ds, ds.Columns, ContextSkift)
		assert.Nil(t, table.Totals)
	})

	t.Run("zero cells count as numeric", func(t *testing.T) {
		ds := dataset.New("t", []string{"Bomtur"}, [][]string{{"0"}, {"0,00"}, {"25"}})
		table := BuildTable(ds, ds.Columns, ContextSkift)
		require.NotNil(t, table.Totals)
		assert.Equal(t, "25", table.Totals[0])
	})
}

func TestBuildTableRows(t *testing.T) {
	ds := dataset.New("t",
		[]string{"Skiftnr", "Start_dato tid", "Kontant"},
		[][]string{
			{"1", "2024-03-05 06:30:00", "100"},
			{"2", "2024-03-06 06:30:00", "250.5"},
		})

	table := BuildTable(ds, ds.Columns, ContextSkift)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "2024-03-05", "100,00"}, table.Rows[0])
	assert.Equal(t, []string{"2", "2024-03-06", "250,50"}, table.Rows[1])
	assert.Equal(t, []bool{true, false, true}, table.Numeric)
}

func TestSelectColumns(t *testing.T) {
	ds := dataset.New("t", []string{"Skiftnr", "Kontant", "Kreditt"}, nil)
	templates := []settings.Template{
		{Name: "Kort", Columns: []string{"Kreditt", "Totalt", "Skiftnr"}},
	}

	t.Run("sentinel selects everything", func(t *testing.T) {
		assert.Equal(t, ds.Columns, SelectColumns(ds, StandardTemplate, templates))
		assert.Equal(t, ds.Columns, SelectColumns(ds, "", templates))
	})

	t.Run("missing columns drop silently, order kept", func(t *testing.T) {
		assert.Equal(t, []string{"Kreditt", "Skiftnr"}, SelectColumns(ds, "Kort", templates))
	})

	t.Run("unknown name behaves like sentinel", func(t *testing.T) {
		assert.Equal(t, ds.Columns, SelectColumns(ds, "Finnes ikke", templates))
	})
}

func TestMissingAndSuggestedColumns(t *testing.T) {
	ds := dataset.New("t", []string{"Skiftnr", "Kontant"}, nil)
	missing := MissingColumns(ds, settings.Template{Name: "Kort", Columns: []string{"Kontant", "Kreditt"}})
	require.Equal(t, []string{"Kreditt"}, missing)

	suggestions := SuggestColumns("Kreditt", []string{"Kreditt_tips", "Kontant", "Skiftnr"})
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Kreditt_tips", suggestions[0])
}
