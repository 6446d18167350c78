// Command trainmodel fits the outbreak model offline against a
// surveillance archive and persists it where the service loads models
// from. Useful for seeding a deployment or rebuilding after a format
// change without waiting for the in-service training pass.
//
// Usage:
//
//	go run ./cmd/trainmodel -data-dir data -model-dir models
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ishhu840/Odon-PakAI/internal/adapter/weather"
	"github.com/ishhu840/Odon-PakAI/internal/dataset"
	"github.com/ishhu840/Odon-PakAI/internal/health"
	"github.com/ishhu840/Odon-PakAI/internal/model"
	"github.com/ishhu840/Odon-PakAI/internal/observability"
)

func main() {
	dataDir := flag.String("data-dir", "", "archive root containing nihdata/ and denguedata/")
	modelDir := flag.String("model-dir", "", "directory to persist the trained model into")
	historyYears := flag.Int("history-years", 5, "years of daily weather history to train against")
	flag.Parse()

	if *dataDir == "" || *modelDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataDir, *modelDir, *historyYears); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir, modelDir string, historyYears int) int {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	fmt.Println("=== Outbreak Model Training ===")
	fmt.Println()

	records, stats, err := health.NewLoader(dataDir, logger).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load surveillance archive: %v\n", err)
		return 1
	}
	fmt.Printf("Loaded %d records (%d NIH weekly, %d dengue registry)\n",
		len(records), stats.NIHRecords, stats.DengueRecords)

	// Daily weather history is synthesized, so no API key is needed here.
	client := weather.NewClient("", "", 0, logger, observability.NewMetrics())
	history, err := client.HistoricalDaily(ctx, "National", historyYears)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: build weather history: %v\n", err)
		return 1
	}
	fmt.Printf("Weather history: %d daily observations\n", len(history))

	table, err := dataset.NewBuilder(logger).Build(records, history)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: build training table: %v\n", err)
		return 1
	}
	fmt.Printf("Training table: %d rows, %d features\n", len(table.Rows), len(table.Features))

	m, err := model.NewTrainer(logger).Fit(table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: training failed: %v\n", err)
		return 1
	}

	if err := model.NewStore(modelDir).Save(m); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: persist model: %v\n", err)
		return 1
	}

	fmt.Println()
	fmt.Printf("Model version:    %s\n", m.Meta.ModelVersion)
	fmt.Printf("RMSE:             %.3f\n", m.Meta.RMSE)
	fmt.Printf("Training samples: %d\n", m.Meta.TrainingSamples)
	fmt.Printf("Test samples:     %d\n", m.Meta.TestSamples)
	fmt.Printf("Features:         %d\n", len(m.Meta.FeaturesUsed))
	fmt.Printf("Trained at:       %s\n", m.Meta.TrainingDate)
	fmt.Printf("\nSaved to %s\n", modelDir)
	return 0
}
