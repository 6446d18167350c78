package health

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

var registryHeader = []any{
	"Date of onset", "Entry Date", "Confirmation Date", "Admission Date",
	"Age", "Gender", "Diagnosis", "Latitude", "Longitude",
}

func writeRegistry(t *testing.T, dir string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, "Patieints.xlsx")
	all := append([][]any{registryHeader}, rows...)
	writeWorkbook(t, path, []sheetData{{name: "Sheet1", rows: all}})
	return path
}

func TestDengueLoader_CleaningAndAggregation(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	rows := [][]any{
		// Kept: onset date, male, aged 34.
		{"2024-10-05", "2024-10-07", "", "", "34 years", "Male", "Confirmed Dengue Fever", 31.5, 74.3},
		// Kept: no onset date, falls back to entry date on the same day.
		{"", "2024-10-05", "", "", "", "Female", "dengue (suspected)", 31.7, 74.5},
		// Dropped: coordinates outside the Pakistan bounding box.
		{"2024-10-05", "", "", "", "28", "Male", "Dengue", 45.0, 74.3},
		// Dropped: diagnosis is not dengue.
		{"2024-10-05", "", "", "", "51", "Male", "Malaria", 31.5, 74.3},
		// Dropped: no usable date.
		{"", "", "", "", "19", "Male", "Dengue", 31.5, 74.3},
		// Dropped: implausible year.
		{"2005-06-01", "", "", "", "40", "Male", "Dengue", 31.5, 74.3},
	}
	path := writeRegistry(t, t.TempDir(), rows)

	records, err := NewDengueLoader(path, testLogger()).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, 2, rec.Cases)
	assert.Equal(t, "dengue_patients_punjab", rec.SourceSheet)

	require.NotNil(t, rec.Lat)
	require.NotNil(t, rec.Lon)
	assert.InDelta(t, 31.6, *rec.Lat, 1e-9)
	assert.InDelta(t, 74.4, *rec.Lon, 1e-9)

	// Only one of the two kept rows has an age.
	require.NotNil(t, rec.AvgAge)
	assert.InDelta(t, 34.0, *rec.AvgAge, 1e-9)

	require.NotNil(t, rec.MaleRatio)
	assert.InDelta(t, 0.5, *rec.MaleRatio, 1e-9)
}

func TestDengueLoader_MultipleDaysSorted(t *testing.T) {
	rows := [][]any{
		{"2024-11-02", "", "", "", "20", "Male", "Dengue", 31.5, 74.3},
		{"2024-10-01", "", "", "", "30", "Male", "Dengue", 31.5, 74.3},
		{"2024-10-01", "", "", "", "25", "Female", "Dengue", 31.5, 74.3},
	}
	path := writeRegistry(t, t.TempDir(), rows)

	records, err := NewDengueLoader(path, testLogger()).Load()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].Date.Before(records[1].Date))
	assert.Equal(t, 2, records[0].Cases)
	assert.Equal(t, 1, records[1].Cases)
}

func TestDengueLoader_MissingFile(t *testing.T) {
	_, err := NewDengueLoader(filepath.Join(t.TempDir(), "Patieints.xlsx"), testLogger()).Load()
	require.Error(t, err)
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"34", intPtr(34)},
		{"34 years", intPtr(34)},
		{"aged 7", intPtr(7)},
		{"unknown", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := parseAge(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.in)
		} else {
			require.NotNil(t, got, "input %q", tt.in)
			assert.Equal(t, *tt.want, *got)
		}
	}
}

func intPtr(n int) *int { return &n }
