package dataset

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func healthRec(date time.Time, cases int) domain.HealthRecord {
	rec := domain.HealthRecord{
		Date:  date,
		Cases: cases,
		Year:  date.Year(),
		Month: int(date.Month()),
		Day:   date.Day(),
	}
	_, rec.Week = date.ISOWeek()
	return rec
}

func TestBuilder_JoinAndFill(t *testing.T) {
	records := []domain.HealthRecord{
		healthRec(day(2024, time.October, 1), 10),
		healthRec(day(2024, time.October, 2), 12), // no weather for this day
		healthRec(day(2024, time.October, 3), 8),
	}
	weather := []domain.DailyWeather{
		{Date: day(2024, time.October, 1), Values: map[string]float64{"temperature": 30, "humidity": 70}},
		{Date: day(2024, time.October, 1), Values: map[string]float64{"temperature": 32, "humidity": 72}},
		{Date: day(2024, time.October, 3), Values: map[string]float64{"temperature": 28, "humidity": 65}},
	}

	table, err := NewBuilder(testLogger()).Build(records, weather)
	require.NoError(t, err)

	assert.Equal(t, []string{"year", "month", "day", "week", "humidity", "temperature"}, table.Features)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []float64{10, 12, 8}, table.Targets)

	tempCol := indexOf(t, table.Features, "temperature")
	humCol := indexOf(t, table.Features, "humidity")

	// Oct 1 is the mean of its two observations.
	assert.InDelta(t, 31.0, table.Rows[0][tempCol], 1e-9)
	assert.InDelta(t, 71.0, table.Rows[0][humCol], 1e-9)
	// Oct 2 has no weather and is forward-filled from Oct 1.
	assert.InDelta(t, 31.0, table.Rows[1][tempCol], 1e-9)
	// Oct 3 keeps its own observation.
	assert.InDelta(t, 28.0, table.Rows[2][tempCol], 1e-9)
}

func TestBuilder_BackFillLeadingGap(t *testing.T) {
	records := []domain.HealthRecord{
		healthRec(day(2024, time.October, 1), 5), // before any weather
		healthRec(day(2024, time.October, 2), 6),
	}
	weather := []domain.DailyWeather{
		{Date: day(2024, time.October, 2), Values: map[string]float64{"temperature": 20}},
	}

	table, err := NewBuilder(testLogger()).Build(records, weather)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	tempCol := indexOf(t, table.Features, "temperature")
	assert.InDelta(t, 20.0, table.Rows[0][tempCol], 1e-9)
}

func TestBuilder_NoWeatherStillUsesCalendarFeatures(t *testing.T) {
	records := []domain.HealthRecord{healthRec(day(2024, time.May, 21), 40)}

	table, err := NewBuilder(testLogger()).Build(records, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"year", "month", "day", "week"}, table.Features)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []float64{2024, 5, 21, 21}, table.Rows[0])

	// Zero nulls in the final table.
	for _, row := range table.Rows {
		for _, v := range row {
			assert.False(t, v != v, "row contains NaN")
		}
	}
}

func TestBuilder_RegistryColumnsIncludedWhenPresent(t *testing.T) {
	lat, lon, ratio := 31.5, 74.3, 0.5
	rec := healthRec(day(2024, time.October, 5), 3)
	rec.Lat, rec.Lon, rec.MaleRatio = &lat, &lon, &ratio

	table, err := NewBuilder(testLogger()).Build([]domain.HealthRecord{rec}, nil)
	require.NoError(t, err)

	assert.Contains(t, table.Features, "lat")
	assert.Contains(t, table.Features, "lon")
	assert.Contains(t, table.Features, "male_ratio")
	assert.NotContains(t, table.Features, "avg_age")
}

func TestBuilder_NoRecords(t *testing.T) {
	_, err := NewBuilder(testLogger()).Build(nil, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientData)
}

func indexOf(t *testing.T, names []string, want string) int {
	t.Helper()
	for i, n := range names {
		if n == want {
			return i
		}
	}
	t.Fatalf("feature %q not found in %v", want, names)
	return -1
}
