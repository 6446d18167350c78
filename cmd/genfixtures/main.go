// Command genfixtures writes a synthetic surveillance archive in the
// layout the service loads: NIH weekly workbooks under nihdata/<year>/
// and a dengue patient registry at denguedata/Patieints.xlsx. Values are
// seeded so regenerated fixtures are byte-for-byte comparable.
//
// Usage:
//
//	go run ./cmd/genfixtures -out data -years 2023,2024 -weeks 26 -patients 400
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ishhu840/Odon-PakAI/internal/health"
)

const fixtureSeed = 42

var provinces = []string{"Punjab", "Sindh", "KP", "Balochistan"}

var diseases = []string{"Dengue", "Malaria", "Typhoid", "AWD", "ILI"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "", "archive root to write (will contain nihdata/ and denguedata/)")
	years := flag.String("years", "2023,2024", "comma-separated reporting years")
	weeks := flag.Int("weeks", 26, "NIH workbooks per year")
	patients := flag.Int("patients", 400, "rows in the dengue registry")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(fixtureSeed))

	yearList, err := parseYears(*years)
	if err != nil {
		return err
	}

	total := 0
	for _, year := range yearList {
		for week := 1; week <= *weeks; week++ {
			path := filepath.Join(*outDir, "nihdata", strconv.Itoa(year), fmt.Sprintf("IDSR-week-%d-%d.xlsx", week, year))
			if err := writeNIHWorkbook(path, week, year, rng); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			total++
		}
		log.Printf("%d: %d weekly workbooks", year, *weeks)
	}

	registryPath := filepath.Join(*outDir, "denguedata", "Patieints.xlsx")
	if err := writeRegistry(registryPath, *patients, yearList, rng); err != nil {
		return fmt.Errorf("writing %s: %w", registryPath, err)
	}

	log.Printf("wrote %d NIH workbooks and a %d-row registry under %s", total, *patients, *outDir)
	return nil
}

func parseYears(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		years = append(years, y)
	}
	return years, nil
}

// writeNIHWorkbook writes one weekly report: a national "Pakistan"
// summary sheet plus one sheet per province. Monsoon weeks carry heavier
// caseloads so trained models see a seasonal signal.
func writeNIHWorkbook(path string, week, year int, rng *rand.Rand) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	season := seasonFactor(health.WeekStartDate(week, year).Month())

	if err := writeNationalSheet(f, season, rng); err != nil {
		return err
	}
	for _, province := range provinces {
		if err := writeProvinceSheet(f, province, season, rng); err != nil {
			return err
		}
	}

	// excelize seeds every workbook with "Sheet1".
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeNationalSheet(f *excelize.File, season float64, rng *rand.Rand) error {
	const sheet = "Pakistan"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := append([]string{"Province"}, diseases...)
	header = append(header, "Total Cases") // skipped by readers, present in real workbooks
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, province := range provinces {
		row := make([]any, 0, len(header))
		row = append(row, province)
		total := 0
		for range diseases {
			cases := scaledCount(rng, season)
			row = append(row, cases)
			total += cases
		}
		row = append(row, total)
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeProvinceSheet(f *excelize.File, province string, season float64, rng *rand.Rand) error {
	if _, err := f.NewSheet(province); err != nil {
		return err
	}

	header := append([]string{"District"}, diseases...)
	if err := f.SetSheetRow(province, "A1", &header); err != nil {
		return err
	}

	totals := make([]int, len(diseases))
	districts := 3 + rng.Intn(3)
	rowNum := 2
	for d := 0; d < districts; d++ {
		row := make([]any, 0, len(header))
		row = append(row, fmt.Sprintf("District-%d", d+1))
		for j := range diseases {
			cases := scaledCount(rng, season)
			row = append(row, cases)
			totals[j] += cases
		}
		if err := f.SetSheetRow(province, fmt.Sprintf("A%d", rowNum), &row); err != nil {
			return err
		}
		rowNum++
	}

	// Trailing Total row, dropped by readers.
	row := make([]any, 0, len(header))
	row = append(row, "Total")
	for _, t := range totals {
		row = append(row, t)
	}
	return f.SetSheetRow(province, fmt.Sprintf("A%d", rowNum), &row)
}

// writeRegistry writes the patient registry with the column set the
// cleaning steps expect, including a sprinkling of rows the cleaner
// must reject: bad coordinates, non-dengue diagnoses, missing dates.
func writeRegistry(path string, patients int, years []int, rng *rand.Rand) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := []string{"Date of onset", "Entry Date", "Age", "Gender", "Diagnosis", "Latitude", "Longitude"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i := 0; i < patients; i++ {
		onset := randomMonsoonDate(rng, years)
		entry := onset.AddDate(0, 0, 1+rng.Intn(3))

		row := []any{
			onset.Format("2006-01-02"),
			entry.Format("2006-01-02"),
			fmt.Sprintf("%d years", 5+rng.Intn(70)),
			pick(rng, "Male", "Female"),
			pick(rng, "Dengue Fever", "Confirmed Dengue", "Suspected Dengue"),
			31.3 + rng.Float64()*0.5, // Lahore district
			74.1 + rng.Float64()*0.5,
		}

		// Every 25th row is deliberately unusable.
		switch {
		case i%25 == 0:
			row[5] = -31.5 // missing minus-sign error, outside the bounding box
		case i%25 == 1:
			row[4] = "Malaria"
		case i%25 == 2:
			row[0], row[1] = "", ""
		}

		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// seasonFactor loads monsoon and post-monsoon weeks more heavily.
func seasonFactor(month time.Month) float64 {
	switch {
	case month >= time.July && month <= time.September:
		return 2.5
	case month == time.June || month == time.October || month == time.November:
		return 1.6
	default:
		return 1.0
	}
}

func scaledCount(rng *rand.Rand, season float64) int {
	return int(float64(5+rng.Intn(40)) * season)
}

func randomMonsoonDate(rng *rand.Rand, years []int) time.Time {
	year := years[rng.Intn(len(years))]
	// Weighted toward the post-monsoon dengue peak.
	month := time.Month(7 + rng.Intn(5)) // July-November
	day := 1 + rng.Intn(28)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.Intn(len(options))]
}
