package health

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// sheetData is an ordered sheet for fixture workbooks.
type sheetData struct {
	name string
	rows [][]any
}

func writeWorkbook(t *testing.T, path string, sheets []sheetData) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheets[0].name))
	for _, s := range sheets[1:] {
		_, err := f.NewSheet(s.name)
		require.NoError(t, err)
	}
	for _, s := range sheets {
		for i := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &s.rows[i]))
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, f.SaveAs(path))
}

func TestWeekStartDate(t *testing.T) {
	tests := []struct {
		week, year int
		want       time.Time
	}{
		{1, 2025, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{21, 2025, time.Date(2025, time.May, 21, 0, 0, 0, 0, time.UTC)},
		{2, 2024, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekStartDate(tt.week, tt.year))
	}
}

func TestNIHLoader_NationalSheet(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "2025", "week-21-2025.xlsx"), []sheetData{
		{
			name: "Pakistan Summary",
			rows: [][]any{
				{"Dengue", "Malaria", "Subtotal", "Grand Total"},
				{100, 50, 150, 150},
				{20, 10, 30, 30},
			},
		},
	})

	records, err := NewNIHLoader(dir, testLogger()).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	// "Subtotal" and "Grand Total" columns are excluded from the sum.
	rec := records[0]
	assert.Equal(t, 180, rec.Cases)
	assert.Equal(t, time.Date(2025, time.May, 21, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, 2025, rec.Year)
	assert.Equal(t, 5, rec.Month)
	assert.Equal(t, 21, rec.Day)
	assert.Equal(t, "Pakistan Summary", rec.SourceSheet)
}

func TestNIHLoader_ProvincialSheet(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "2025", "week-3-2025.xlsx"), []sheetData{
		{
			name: "Punjab",
			rows: [][]any{
				{"District", "Dengue", "Malaria"},
				{"Lahore", 10, 4},
				{"Kasur", 5, 1},
				{"Total", 15, 5},
			},
		},
	})

	records, err := NewNIHLoader(dir, testLogger()).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	// The trailing Total row is dropped before summing.
	assert.Equal(t, 20, records[0].Cases)
	assert.Equal(t, "Punjab", records[0].SourceSheet)
}

func TestNIHLoader_SkipsLockAndUnmatchedFiles(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "2025", "~$week-5-2025.xlsx"), []sheetData{
		{name: "Punjab", rows: [][]any{{"District", "Cases"}, {"Lahore", 99}}},
	})
	writeWorkbook(t, filepath.Join(dir, "2025", "notes.xlsx"), []sheetData{
		{name: "Punjab", rows: [][]any{{"District", "Cases"}, {"Lahore", 99}}},
	})

	records, err := NewNIHLoader(dir, testLogger()).Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNIHLoader_ZeroCaseSheetsOmitted(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "2024", "week-1-2024.xlsx"), []sheetData{
		{name: "Sindh", rows: [][]any{{"District", "Cases"}, {"Karachi", 0}}},
		{name: "Punjab", rows: [][]any{{"District", "Cases"}, {"Lahore", 7}}},
	})

	records, err := NewNIHLoader(dir, testLogger()).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Punjab", records[0].SourceSheet)
}

func TestNIHLoader_MissingRoot(t *testing.T) {
	_, err := NewNIHLoader(filepath.Join(t.TempDir(), "nope"), testLogger()).Load()
	require.Error(t, err)
}
