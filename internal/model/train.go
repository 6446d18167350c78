package model

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/ishhu840/Odon-PakAI/internal/dataset"
	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// ModelVersion tags the metadata sidecar format.
const ModelVersion = "1.0"

// splitSeed fixes the train/test shuffle so reported RMSE is reproducible.
const splitSeed = 42

// Metadata is the JSON sidecar persisted next to the model file.
type Metadata struct {
	RMSE            float64  `json:"rmse"`
	TrainingSamples int      `json:"training_samples"`
	TestSamples     int      `json:"test_samples"`
	FeaturesUsed    []string `json:"features_used"`
	TrainingDate    string   `json:"training_date"`
	ModelVersion    string   `json:"model_version"`
}

// Model is a trained outbreak model together with its metadata and the
// case-trend diagnostic computed at training time.
type Model struct {
	Booster  *GradientBooster
	Features []string
	Meta     Metadata
	Trend    TrendDiagnostic
}

// Predict returns the predicted daily case count for a feature vector
// ordered like Model.Features.
func (m *Model) Predict(features []float64) float64 {
	return m.Booster.Predict(features)
}

// Info renders the model-status payload for a possibly-nil model.
func Info(m *Model) map[string]any {
	if m == nil {
		return map[string]any{"status": "No model available"}
	}
	return map[string]any{
		"status":           "Model available",
		"rmse":             m.Meta.RMSE,
		"training_samples": m.Meta.TrainingSamples,
		"test_samples":     m.Meta.TestSamples,
		"features_used":    m.Meta.FeaturesUsed,
		"training_date":    m.Meta.TrainingDate,
		"model_version":    m.Meta.ModelVersion,
		"case_trend":       m.Trend,
	}
}

// TrainingResult reports a training attempt. Training never returns a raw
// error to its callers; failures land here with a reason.
type TrainingResult struct {
	Success  bool      `json:"success"`
	Reason   string    `json:"reason,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Trainer fits the outbreak model on a prepared training table.
type Trainer struct {
	hp     Hyperparameters
	logger *slog.Logger
}

// NewTrainer creates a trainer with the default hyperparameters.
func NewTrainer(logger *slog.Logger) *Trainer {
	return &Trainer{hp: DefaultHyperparameters(), logger: logger}
}

// Fit trains on an 80/20 split with a fixed shuffle seed and reports RMSE
// on the held-out rows. Tables too small to split are evaluated in-sample.
func (t *Trainer) Fit(table *dataset.Table) (*Model, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("%w: empty training table", domain.ErrTrainingFailed)
	}

	trainIdx, testIdx := splitIndices(len(table.Rows))

	trainRows, trainTargets := subset(table, trainIdx)
	booster := fitBooster(trainRows, trainTargets, t.hp)

	evalIdx := testIdx
	if len(evalIdx) == 0 {
		evalIdx = trainIdx
	}
	evalRows, evalTargets := subset(table, evalIdx)
	rmse := rootMeanSquaredError(booster, evalRows, evalTargets)

	trend, err := CaseTrend(table.Dates, table.Targets)
	if err != nil {
		t.logger.Warn("case-trend diagnostic unavailable", "error", err)
	}

	m := &Model{
		Booster:  booster,
		Features: table.Features,
		Meta: Metadata{
			RMSE:            rmse,
			TrainingSamples: len(trainIdx),
			TestSamples:     len(testIdx),
			FeaturesUsed:    table.Features,
			TrainingDate:    domain.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
			ModelVersion:    ModelVersion,
		},
		Trend: trend,
	}

	t.logger.Info("outbreak model trained",
		"rmse", rmse,
		"training_samples", len(trainIdx),
		"test_samples", len(testIdx),
		"features", len(table.Features),
	)
	return m, nil
}

// splitIndices shuffles row indices with the fixed seed and carves off 20%
// for testing. Fewer than five rows means no held-out set.
func splitIndices(n int) (train, test []int) {
	perm := rand.New(rand.NewSource(splitSeed)).Perm(n)
	testN := n / 5
	test = perm[:testN]
	train = perm[testN:]
	return train, test
}

func subset(table *dataset.Table, idx []int) ([][]float64, []float64) {
	rows := make([][]float64, len(idx))
	targets := make([]float64, len(idx))
	for k, i := range idx {
		rows[k] = table.Rows[i]
		targets[k] = table.Targets[i]
	}
	return rows, targets
}

func rootMeanSquaredError(g *GradientBooster, rows [][]float64, targets []float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for i, row := range rows {
		d := g.Predict(row) - targets[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(rows)))
}
