package health

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// weekFilePattern extracts the epidemiological week and year from an NIH
// workbook filename, e.g. "IDSR-week-21-2025.xlsx".
var weekFilePattern = regexp.MustCompile(`week-(\d+)-(\d{4})`)

// NIHLoader reads the NIH weekly report archive: one workbook per
// epidemiological week under <dir>/<year>/*.xlsx.
type NIHLoader struct {
	dir    string
	logger *slog.Logger
}

// NewNIHLoader creates a loader rooted at the nihdata directory.
func NewNIHLoader(dir string, logger *slog.Logger) *NIHLoader {
	return &NIHLoader{dir: dir, logger: logger}
}

// Load walks the archive and returns one record per sheet with a positive
// case count. Unreadable or unrecognized files are skipped with a warning;
// only a missing archive root is an error.
func (l *NIHLoader) Load() ([]domain.HealthRecord, error) {
	years, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read NIH archive: %w", err)
	}

	var records []domain.HealthRecord
	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		yearDir := filepath.Join(l.dir, y.Name())
		files, err := os.ReadDir(yearDir)
		if err != nil {
			l.logger.Warn("skipping unreadable year directory", "dir", yearDir, "error", err)
			continue
		}
		for _, f := range files {
			name := f.Name()
			// "~$" prefixed files are Excel lock files.
			if f.IsDir() || strings.HasPrefix(name, "~$") || !strings.HasSuffix(name, ".xlsx") {
				continue
			}
			recs, err := l.loadWorkbook(filepath.Join(yearDir, name))
			if err != nil {
				l.logger.Warn("skipping unreadable workbook", "file", name, "error", err)
				continue
			}
			records = append(records, recs...)
		}
	}

	return records, nil
}

func (l *NIHLoader) loadWorkbook(path string) ([]domain.HealthRecord, error) {
	week, year, ok := parseWeekFilename(filepath.Base(path))
	if !ok {
		l.logger.Warn("filename does not encode a reporting week, skipping", "file", filepath.Base(path))
		return nil, nil
	}
	date := WeekStartDate(week, year)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []domain.HealthRecord
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			l.logger.Warn("skipping unreadable sheet", "sheet", sheet, "error", err)
			continue
		}

		var cases int
		if strings.Contains(sheet, "Pakistan") {
			cases = nationalCases(rows)
		} else {
			cases = provincialCases(rows)
		}
		if cases <= 0 {
			continue
		}

		_, isoWeek := date.ISOWeek()
		records = append(records, domain.HealthRecord{
			Date:        date,
			Cases:       cases,
			Year:        date.Year(),
			Month:       int(date.Month()),
			Day:         date.Day(),
			Week:        isoWeek,
			SourceSheet: sheet,
		})
	}

	return records, nil
}

func parseWeekFilename(name string) (week, year int, ok bool) {
	m := weekFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	week, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(m[2])
	return week, year, true
}

// WeekStartDate converts an NIH reporting week to a date: January 1 of the
// year plus (week-1) whole weeks. This is the archive's own convention, not
// ISO-8601 week numbering, and must not be "fixed".
func WeekStartDate(week, year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7)
}

// nationalCases sums every numeric cell in a "Pakistan" summary sheet,
// skipping columns whose header mentions "total" to avoid double counting.
func nationalCases(rows [][]string) int {
	if len(rows) < 2 {
		return 0
	}
	header := rows[0]
	skip := make([]bool, len(header))
	for j, h := range header {
		if strings.Contains(strings.ToLower(h), "total") {
			skip[j] = true
		}
	}

	var sum float64
	for _, row := range rows[1:] {
		for j, cell := range row {
			if j < len(skip) && skip[j] {
				continue
			}
			if v, ok := parseNumeric(cell); ok {
				sum += v
			}
		}
	}
	return int(sum)
}

// provincialCases sums every numeric cell in a provincial sheet, dropping a
// trailing "Total" row when present so it is not counted twice.
func provincialCases(rows [][]string) int {
	if len(rows) < 2 {
		return 0
	}
	data := rows[1:]
	if len(data) > 1 {
		last := data[len(data)-1]
		if len(last) > 0 && strings.Contains(strings.ToLower(last[0]), "total") {
			data = data[:len(data)-1]
		}
	}

	var sum float64
	for _, row := range data {
		for _, cell := range row {
			if v, ok := parseNumeric(cell); ok {
				sum += v
			}
		}
	}
	return int(sum)
}

func parseNumeric(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
