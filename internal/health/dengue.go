package health

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// dengueSourceSheet labels registry-derived records in the combined series.
const dengueSourceSheet = "dengue_patients_punjab"

// Pakistan bounding box; rows outside it are data-entry errors.
const (
	minLat, maxLat = 23.0, 38.0
	minLon, maxLon = 60.0, 78.0
)

var firstInteger = regexp.MustCompile(`(\d+)`)

// dateLayouts are the formats seen in the registry's date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"2-Jan-06",
	"2-Jan-2006",
	"02.01.2006",
}

// DengueLoader reads the Punjab dengue patient registry workbook.
type DengueLoader struct {
	path   string
	logger *slog.Logger
}

// NewDengueLoader creates a loader for the registry at path.
func NewDengueLoader(path string, logger *slog.Logger) *DengueLoader {
	return &DengueLoader{path: path, logger: logger}
}

// patientRow is one cleaned registry row.
type patientRow struct {
	primaryDate time.Time
	age         *int
	lat, lon    float64
	male        bool
}

// Load cleans the registry row by row and aggregates by calendar day.
func (l *DengueLoader) Load() ([]domain.HealthRecord, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dengue registry: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dengue registry has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read dengue registry: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := headerIndex(rows[0])
	kept := cleanRows(rows[1:], col)
	l.logger.Info("dengue registry cleaned", "raw_rows", len(rows)-1, "kept_rows", len(kept))

	return aggregateByDay(kept), nil
}

// headerIndex maps trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for j, h := range header {
		idx[strings.TrimSpace(h)] = j
	}
	return idx
}

// cleanRows applies the registry cleaning steps in their fixed order:
// date parsing, age extraction, bounding-box filter, diagnosis filter,
// primary-date selection, plausible-year filter.
func cleanRows(data [][]string, col map[string]int) []patientRow {
	currentYear := domain.Now().Year()

	var kept []patientRow
	for _, row := range data {
		cell := func(name string) string {
			j, ok := col[name]
			if !ok || j >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[j])
		}

		onset := parseRegistryDate(cell("Date of onset"))
		entry := parseRegistryDate(cell("Entry Date"))

		lat, okLat := parseNumeric(cell("Latitude"))
		lon, okLon := parseNumeric(cell("Longitude"))
		if !okLat || !okLon || lat <= minLat || lat >= maxLat || lon <= minLon || lon >= maxLon {
			continue
		}

		if !strings.Contains(strings.ToLower(cell("Diagnosis")), "dengue") {
			continue
		}

		primary := onset
		if primary == nil {
			primary = entry
		}
		if primary == nil {
			continue
		}
		if primary.Year() < 2010 || primary.Year() > currentYear {
			continue
		}

		kept = append(kept, patientRow{
			primaryDate: primary.Truncate(24 * time.Hour),
			age:         parseAge(cell("Age")),
			lat:         lat,
			lon:         lon,
			male:        cell("Gender") == "Male",
		})
	}
	return kept
}

// aggregateByDay groups cleaned rows into one record per calendar day:
// case count, mean coordinates, mean age, and male ratio.
func aggregateByDay(rows []patientRow) []domain.HealthRecord {
	type dayAgg struct {
		cases            int
		latSum, lonSum   float64
		ageSum, ageCount float64
		males            int
	}

	byDay := make(map[time.Time]*dayAgg)
	for _, r := range rows {
		agg, ok := byDay[r.primaryDate]
		if !ok {
			agg = &dayAgg{}
			byDay[r.primaryDate] = agg
		}
		agg.cases++
		agg.latSum += r.lat
		agg.lonSum += r.lon
		if r.age != nil {
			agg.ageSum += float64(*r.age)
			agg.ageCount++
		}
		if r.male {
			agg.males++
		}
	}

	dates := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	records := make([]domain.HealthRecord, 0, len(dates))
	for _, d := range dates {
		agg := byDay[d]
		n := float64(agg.cases)

		lat := agg.latSum / n
		lon := agg.lonSum / n
		maleRatio := float64(agg.males) / n

		rec := domain.HealthRecord{
			Date:        d,
			Cases:       agg.cases,
			Year:        d.Year(),
			Month:       int(d.Month()),
			Day:         d.Day(),
			SourceSheet: dengueSourceSheet,
			Lat:         &lat,
			Lon:         &lon,
			MaleRatio:   &maleRatio,
		}
		_, rec.Week = d.ISOWeek()
		if agg.ageCount > 0 {
			avgAge := agg.ageSum / agg.ageCount
			rec.AvgAge = &avgAge
		}
		records = append(records, rec)
	}
	return records
}

// parseAge extracts the first integer from an age cell ("34", "34 years",
// "34Y"). Returns nil when no digits are present.
func parseAge(s string) *int {
	m := firstInteger.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func parseRegistryDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	return nil
}
