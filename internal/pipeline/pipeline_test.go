package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishhu840/Odon-PakAI/internal/dataset"
	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/health"
	"github.com/ishhu840/Odon-PakAI/internal/model"
	"github.com/ishhu840/Odon-PakAI/internal/observability"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGateway struct {
	snapshot    domain.WeatherSnapshot
	snapshotErr error
	failFirst   bool
	calls       int
}

func (f *fakeGateway) Snapshot(_ context.Context) (domain.WeatherSnapshot, error) {
	f.calls++
	if f.failFirst && f.calls == 1 {
		return domain.WeatherSnapshot{}, errors.New("transient")
	}
	return f.snapshot, f.snapshotErr
}

func (f *fakeGateway) HistoricalDaily(_ context.Context, _ string, _ int) ([]domain.DailyWeather, error) {
	return []domain.DailyWeather{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Values: map[string]float64{"temperature": 30}},
	}, nil
}

type fakeHealth struct {
	records []domain.HealthRecord
	stats   health.Stats
	err     error
}

func (f *fakeHealth) Load() ([]domain.HealthRecord, health.Stats, error) {
	return f.records, f.stats, f.err
}

type fakeBuilder struct{ err error }

func (f *fakeBuilder) Build(records []domain.HealthRecord, _ []domain.DailyWeather) (*dataset.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dataset.Table{
		Features: []string{"temperature"},
		Dates:    []time.Time{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		Targets:  []float64{float64(len(records))},
		Rows:     [][]float64{{30}},
	}, nil
}

type fakeTrainer struct {
	err   error
	calls int
}

func (f *fakeTrainer) Fit(_ *dataset.Table) (*model.Model, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.Model{Meta: model.Metadata{RMSE: 12.5, ModelVersion: model.ModelVersion}}, nil
}

type fakeStore struct {
	saved  *model.Model
	stored *model.Model
}

func (f *fakeStore) Exists() bool { return f.stored != nil }

func (f *fakeStore) Save(m *model.Model) error {
	f.saved = m
	return nil
}

func (f *fakeStore) Load() (*model.Model, error) {
	if f.stored == nil {
		return nil, domain.ErrModelUnavailable
	}
	return f.stored, nil
}

func someRecords() []domain.HealthRecord {
	return []domain.HealthRecord{
		{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Cases: 12, Year: 2024, Month: 6, Day: 1, Week: 22},
	}
}

func liveSnapshot() domain.WeatherSnapshot {
	return domain.WeatherSnapshot{
		National: domain.NationalSummary{AvgTemperature: 27, AvgHumidity: 75, TotalCities: 1},
		Cities:   []domain.CityWeather{{City: "Lahore", Temperature: 28, Humidity: 80}},
	}
}

func newTestPipeline(gw domain.WeatherGateway, hs HealthSource, store ModelStore, trainer ModelTrainer) *Pipeline {
	return New(gw, hs, &fakeBuilder{}, trainer, store, testLogger(), observability.NewMetricsForTesting(), 5)
}

func TestPipeline_ServesFallbacksBeforeFirstRefresh(t *testing.T) {
	p := newTestPipeline(&fakeGateway{}, &fakeHealth{}, &fakeStore{}, &fakeTrainer{})

	require.Error(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, "Weather API not available", p.Snapshot().Error)
	assert.Equal(t, 65, p.OutbreakPredictions().ModelConfidence)
	assert.NotEmpty(t, p.CriticalAlerts().Alerts.Hours24)
	assert.Equal(t, map[string]any{"status": "No model available"}, p.ModelInfo())
}

func TestPipeline_Refresh(t *testing.T) {
	gw := &fakeGateway{snapshot: liveSnapshot()}
	hs := &fakeHealth{records: someRecords(), stats: health.Stats{NIHRecords: 1}}
	store := &fakeStore{}
	trainer := &fakeTrainer{}
	p := newTestPipeline(gw, hs, store, trainer)

	require.NoError(t, p.Refresh(context.Background(), "startup"))

	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.Empty(t, p.Snapshot().Error)
	assert.Equal(t, 1, p.HealthStats().NIHRecords)

	// First refresh trains and persists a model.
	assert.Equal(t, 1, trainer.calls)
	require.NotNil(t, store.saved)
	assert.Equal(t, "Model available", p.ModelInfo()["status"])

	// Payloads come from the live snapshot now, not the fallback.
	assert.NotEqual(t, 65, p.OutbreakPredictions().ModelConfidence)

	// A second refresh reuses the loaded model.
	require.NoError(t, p.Refresh(context.Background(), "scheduled"))
	assert.Equal(t, 1, trainer.calls)
}

func TestPipeline_RefreshInFlight(t *testing.T) {
	p := newTestPipeline(&fakeGateway{snapshot: liveSnapshot()}, &fakeHealth{}, &fakeStore{}, &fakeTrainer{})

	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	assert.ErrorIs(t, p.Refresh(context.Background(), "manual"), ErrRefreshInFlight)
	assert.ErrorIs(t, p.RefreshWeather(context.Background()), ErrRefreshInFlight)
	assert.ErrorIs(t, p.RefreshHealth(context.Background()), ErrRefreshInFlight)
	assert.ErrorIs(t, p.RunAnalysis(context.Background()), ErrRefreshInFlight)
}

func TestPipeline_WeatherFailureDegradesToFallback(t *testing.T) {
	gw := &fakeGateway{snapshotErr: errors.New("api down")}
	hs := &fakeHealth{records: someRecords(), stats: health.Stats{NIHRecords: 1}}
	p := newTestPipeline(gw, hs, &fakeStore{}, &fakeTrainer{})

	require.NoError(t, p.Refresh(context.Background(), "startup"))

	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, "Weather API not available", p.Snapshot().Error)
	assert.Equal(t, 65, p.OutbreakPredictions().ModelConfidence)
	assert.Equal(t, 3, gw.calls)
}

func TestPipeline_WeatherRetriesTransientFailure(t *testing.T) {
	gw := &fakeGateway{snapshot: liveSnapshot(), failFirst: true}
	p := newTestPipeline(gw, &fakeHealth{records: someRecords()}, &fakeStore{}, &fakeTrainer{})

	require.NoError(t, p.RefreshWeather(context.Background()))
	assert.Empty(t, p.Snapshot().Error)
	assert.Equal(t, 2, gw.calls)
}

func TestPipeline_NilGatewayServesFallback(t *testing.T) {
	p := newTestPipeline(nil, &fakeHealth{records: someRecords()}, &fakeStore{}, &fakeTrainer{})

	require.NoError(t, p.Refresh(context.Background(), "startup"))
	assert.Equal(t, "Weather API not available", p.Snapshot().Error)
}

func TestPipeline_EnsureModelLoadsPersisted(t *testing.T) {
	store := &fakeStore{stored: &model.Model{Meta: model.Metadata{RMSE: 7.5}}}
	trainer := &fakeTrainer{}
	p := newTestPipeline(&fakeGateway{snapshot: liveSnapshot()}, &fakeHealth{records: someRecords()}, store, trainer)

	require.NoError(t, p.Refresh(context.Background(), "startup"))

	assert.Equal(t, 0, trainer.calls)
	assert.Equal(t, 7.5, p.ModelInfo()["rmse"])
}

func TestPipeline_TrainWithoutData(t *testing.T) {
	p := newTestPipeline(&fakeGateway{}, &fakeHealth{err: domain.ErrInsufficientData}, &fakeStore{}, &fakeTrainer{})

	result := p.Train(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, domain.ErrInsufficientData.Error(), result.Reason)
}

func TestPipeline_TrainingFailureKeepsServing(t *testing.T) {
	trainer := &fakeTrainer{err: domain.ErrTrainingFailed}
	p := newTestPipeline(&fakeGateway{snapshot: liveSnapshot()}, &fakeHealth{records: someRecords()}, &fakeStore{}, trainer)

	require.NoError(t, p.Refresh(context.Background(), "startup"))

	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, "No model available", p.ModelInfo()["status"])
}

func TestPipeline_RealTrainerEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("full training run")
	}

	records := make([]domain.HealthRecord, 0, 30)
	for i := 0; i < 30; i++ {
		date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		records = append(records, domain.HealthRecord{
			Date: date, Cases: 10 + i%7, Year: date.Year(), Month: int(date.Month()), Day: date.Day(),
		})
	}

	logger := testLogger()
	p := New(
		&fakeGateway{snapshot: liveSnapshot()},
		&fakeHealth{records: records, stats: health.Stats{NIHRecords: len(records)}},
		dataset.NewBuilder(logger),
		model.NewTrainer(logger),
		&fakeStore{},
		logger,
		observability.NewMetricsForTesting(),
		1,
	)

	require.NoError(t, p.Refresh(context.Background(), "startup"))
	info := p.ModelInfo()
	assert.Equal(t, "Model available", info["status"])
	assert.Equal(t, model.ModelVersion, info["model_version"])
}
