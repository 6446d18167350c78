package domain

import "errors"

// Sentinel errors for the data-preparation and training path. Callers match
// with errors.Is; the loaders degrade per-file and only return these when an
// entire stage produces nothing usable.
var (
	// ErrInsufficientData means no health surveillance source yielded any records.
	ErrInsufficientData = errors.New("no health surveillance data available")

	// ErrEmptyDataset means the merged training table had no complete rows.
	ErrEmptyDataset = errors.New("training dataset is empty after merge")

	// ErrNoUsableFeatures means the merged table had no numeric feature columns.
	ErrNoUsableFeatures = errors.New("no usable feature columns in dataset")

	// ErrTrainingFailed wraps a model-fitting failure.
	ErrTrainingFailed = errors.New("model training failed")

	// ErrModelUnavailable means no trained model has been loaded or fitted.
	ErrModelUnavailable = errors.New("no trained model available")
)
