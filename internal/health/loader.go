package health

import (
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// Stats reports how many records each surveillance source contributed.
type Stats struct {
	NIHRecords    int
	DengueRecords int
}

// Loader combines the NIH weekly archive and the dengue patient registry
// into one chronological surveillance series.
type Loader struct {
	nih    *NIHLoader
	dengue *DengueLoader
	logger *slog.Logger
}

// NewLoader creates a combined loader rooted at the archive directory,
// which contains nihdata/ and denguedata/Patieints.xlsx.
func NewLoader(dataDir string, logger *slog.Logger) *Loader {
	return &Loader{
		nih:    NewNIHLoader(filepath.Join(dataDir, "nihdata"), logger),
		dengue: NewDengueLoader(filepath.Join(dataDir, "denguedata", "Patieints.xlsx"), logger),
		logger: logger,
	}
}

// Load returns the combined series sorted by date. A source that fails to
// load is logged and treated as empty; only both sources being empty is an
// error (domain.ErrInsufficientData).
func (l *Loader) Load() ([]domain.HealthRecord, Stats, error) {
	nihRecords, err := l.nih.Load()
	if err != nil {
		l.logger.Warn("NIH archive unavailable", "error", err)
	}

	dengueRecords, err := l.dengue.Load()
	if err != nil {
		l.logger.Warn("dengue registry unavailable", "error", err)
	}

	stats := Stats{NIHRecords: len(nihRecords), DengueRecords: len(dengueRecords)}
	if stats.NIHRecords == 0 && stats.DengueRecords == 0 {
		return nil, stats, domain.ErrInsufficientData
	}

	combined := make([]domain.HealthRecord, 0, stats.NIHRecords+stats.DengueRecords)
	combined = append(combined, nihRecords...)
	combined = append(combined, dengueRecords...)
	sort.SliceStable(combined, func(i, j int) bool { return combined[i].Date.Before(combined[j].Date) })

	l.logger.Info("surveillance series loaded",
		"nih_records", stats.NIHRecords,
		"dengue_records", stats.DengueRecords,
	)
	return combined, stats, nil
}
