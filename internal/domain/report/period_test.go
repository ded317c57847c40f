package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxirapport/taxirapport/internal/domain/dataset"
)

func TestExtractPeriod(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	t.Run("start date cell wins", func(t *testing.T) {
		ds := dataset.New("t",
			[]string{"Skiftnr", "Start_dato tid"},
			[][]string{{"1", "2024-03-05 06:30:00"}})
		p := ExtractPeriod([]*dataset.Dataset{ds}, "skift_2020-11.csv", now)
		assert.Equal(t, Period{Year: 2024, Month: 3}, p)
	})

	t.Run("filename fallback", func(t *testing.T) {
		ds := dataset.New("t", []string{"Skiftnr"}, [][]string{{"1"}})
		p := ExtractPeriod([]*dataset.Dataset{ds}, "rapport_2023-07.csv", now)
		assert.Equal(t, Period{Year: 2023, Month: 7}, p)
	})

	t.Run("current date fallback", func(t *testing.T) {
		ds := dataset.New("t", []string{"Skiftnr"}, [][]string{{"1"}})
		p := ExtractPeriod([]*dataset.Dataset{ds}, "rapport.csv", now)
		assert.Equal(t, Period{Year: 2026, Month: 8}, p)
	})

	t.Run("unparseable date falls through to filename", func(t *testing.T) {
		ds := dataset.New("t",
			[]string{"Start_dato tid"},
			[][]string{{"ikke en dato"}})
		p := ExtractPeriod([]*dataset.Dataset{ds}, "skift_2022-02.csv", now)
		assert.Equal(t, Period{Year: 2022, Month: 2}, p)
	})
}

func TestLicenseAndShiftRange(t *testing.T) {
	ds := dataset.New("t",
		[]string{"Løyve", "Skiftnr"},
		[][]string{
			{"A-101", "3"},
			{"A-101", "1"},
			{"A-101", "7.0"},
			{"A-101", "3"},
		})

	assert.Equal(t, "A-101", License(ds))

	first, last, ok := ShiftRange(ds)
	require.True(t, ok)
	assert.Equal(t, 1, first)
	assert.Equal(t, 7, last)
}

func TestShiftRangeWithoutShiftColumn(t *testing.T) {
	ds := dataset.New("t", []string{"Løyve"}, [][]string{{"A-101"}})
	_, _, ok := ShiftRange(ds)
	assert.False(t, ok)
}

func TestDepositLine(t *testing.T) {
	line := DepositLine(1250.0, "1234.56.78901", "Mars", "ON")
	assert.Equal(t, `Sett inn kontant kr 1 250 på 1234.56.78901, merkes med "Kontant innskudd Mars ON"`, line)

	assert.Empty(t, DepositLine(0, "1234.56.78901", "Mars", "ON"))
	assert.Empty(t, DepositLine(-5, "1234.56.78901", "Mars", "ON"))
	assert.Empty(t, DepositLine(100, "", "Mars", "ON"))
}
