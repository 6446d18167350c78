package dataset

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// Table is a dense training table: ordered feature columns and one row per
// surveillance day, with the case count as the target. Rows contain no
// missing values.
type Table struct {
	Features []string
	Dates    []time.Time
	Targets  []float64
	Rows     [][]float64
}

// healthColumns are the feature columns derived from the surveillance
// records themselves, in their fixed output order. The optional registry
// columns are included only when at least one record carries them.
var healthColumns = []string{"year", "month", "day", "week", "lat", "lon", "avg_age", "male_ratio"}

// Builder merges the surveillance series with daily weather into a Table.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a training-set builder.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build left-joins daily-mean weather onto the health series, forward-fills
// then back-fills missing values by date order, and drops rows that are
// still incomplete.
func (b *Builder) Build(records []domain.HealthRecord, weather []domain.DailyWeather) (*Table, error) {
	if len(records) == 0 {
		return nil, domain.ErrInsufficientData
	}

	sorted := make([]domain.HealthRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	daily := resampleDaily(weather)
	channels := channelNames(daily)
	features := selectHealthColumns(sorted)
	features = append(features, channels...)
	if len(features) == 0 {
		return nil, domain.ErrNoUsableFeatures
	}

	// Assemble the sparse table; NaN marks a missing value.
	rows := make([][]float64, len(sorted))
	for i, rec := range sorted {
		row := make([]float64, len(features))
		for j, name := range features {
			row[j] = featureValue(rec, daily, name)
		}
		rows[i] = row
	}

	fillColumns(rows)

	table := &Table{Features: features}
	for i, row := range rows {
		if hasNaN(row) {
			continue
		}
		table.Dates = append(table.Dates, sorted[i].Date)
		table.Targets = append(table.Targets, float64(sorted[i].Cases))
		table.Rows = append(table.Rows, row)
	}
	if len(table.Rows) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	b.logger.Info("training table built",
		"rows", len(table.Rows),
		"dropped", len(sorted)-len(table.Rows),
		"features", len(table.Features),
	)
	return table, nil
}

// resampleDaily averages weather channels per calendar day.
func resampleDaily(weather []domain.DailyWeather) map[time.Time]map[string]float64 {
	sums := make(map[time.Time]map[string]float64)
	counts := make(map[time.Time]map[string]int)
	for _, w := range weather {
		day := dateOnly(w.Date)
		if sums[day] == nil {
			sums[day] = make(map[string]float64)
			counts[day] = make(map[string]int)
		}
		for name, v := range w.Values {
			sums[day][name] += v
			counts[day][name]++
		}
	}

	daily := make(map[time.Time]map[string]float64, len(sums))
	for day, chans := range sums {
		daily[day] = make(map[string]float64, len(chans))
		for name, sum := range chans {
			daily[day][name] = sum / float64(counts[day][name])
		}
	}
	return daily
}

func channelNames(daily map[time.Time]map[string]float64) []string {
	seen := make(map[string]bool)
	for _, chans := range daily {
		for name := range chans {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func selectHealthColumns(records []domain.HealthRecord) []string {
	present := map[string]bool{"year": true, "month": true, "day": true, "week": true}
	for _, rec := range records {
		if rec.Lat != nil {
			present["lat"] = true
		}
		if rec.Lon != nil {
			present["lon"] = true
		}
		if rec.AvgAge != nil {
			present["avg_age"] = true
		}
		if rec.MaleRatio != nil {
			present["male_ratio"] = true
		}
	}

	var cols []string
	for _, name := range healthColumns {
		if present[name] {
			cols = append(cols, name)
		}
	}
	return cols
}

func featureValue(rec domain.HealthRecord, daily map[time.Time]map[string]float64, name string) float64 {
	switch name {
	case "year":
		return float64(rec.Year)
	case "month":
		return float64(rec.Month)
	case "day":
		return float64(rec.Day)
	case "week":
		return float64(rec.Week)
	case "lat":
		return ptrValue(rec.Lat)
	case "lon":
		return ptrValue(rec.Lon)
	case "avg_age":
		return ptrValue(rec.AvgAge)
	case "male_ratio":
		return ptrValue(rec.MaleRatio)
	}
	if chans, ok := daily[dateOnly(rec.Date)]; ok {
		if v, ok := chans[name]; ok {
			return v
		}
	}
	return math.NaN()
}

// fillColumns forward-fills then back-fills each column in place.
func fillColumns(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	for j := range rows[0] {
		last := math.NaN()
		for i := range rows {
			if math.IsNaN(rows[i][j]) {
				rows[i][j] = last
			} else {
				last = rows[i][j]
			}
		}
		next := math.NaN()
		for i := len(rows) - 1; i >= 0; i-- {
			if math.IsNaN(rows[i][j]) {
				rows[i][j] = next
			} else {
				next = rows[i][j]
			}
		}
	}
}

func hasNaN(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func ptrValue(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
