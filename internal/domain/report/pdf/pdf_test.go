package pdf

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxirapport/taxirapport/internal/domain/edits"
	"github.com/taxirapport/taxirapport/internal/domain/payroll"
	"github.com/taxirapport/taxirapport/internal/domain/report"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
)

func testTable() *report.Table {
	return &report.Table{
		Columns: []string{"Skiftnr", "Løyve", "Kontant"},
		Rows: [][]string{
			{"1", "A-101", "100,00"},
			{"2", "A-101", "250,50"},
		},
		Totals:  []string{"", "", "350,50"},
		Numeric: []bool{true, false, true},
	}
}

func TestRenderLonn(t *testing.T) {
	rep := &report.LonnReport{
		Company: settings.CompanyInfo{Name: "Taxi AS", OrgNumber: "987 654 321", Address: "Storgata 1"},
		Driver:  settings.Driver{ID: "0404", Name: "Ola Nordmann", Percent: 45},
		Period:  report.Period{Year: 2024, Month: 3},
		Table:   testTable(),
		Summary: payroll.Result{CashAmount: 350.5, GrossSalary: 450, CommissionPct: 45},
		DepositLine: report.DepositLine(350.5, "1234.56.78901", "Mars", "ON"),
		Edits: []edits.Edit{
			{License: "A-101", Shift: "1", Amount: -20, Note: "korreksjon", Timestamp: "2024-03-10 12:00:00"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(slog.New(slog.DiscardHandler)).RenderLonn(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestRenderSkift(t *testing.T) {
	rep := &report.SkiftReport{
		Company:       settings.CompanyInfo{Name: "Taxi AS"},
		Period:        report.Period{Year: 2024, Month: 3},
		License:       "A-101",
		Table:         testTable(),
		Summary:       payroll.ShiftSummary{TotalCash: 350.5, TotalCredit: 500, TotalToll: 25},
		FirstShift:    1,
		LastShift:     2,
		HasShiftRange: true,
		Edits: []edits.Edit{
			{License: "A-101", Shift: "1", Amount: 5, Timestamp: "2024-03-10 12:00:00"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(slog.New(slog.DiscardHandler)).RenderSkift(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
