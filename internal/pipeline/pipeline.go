// Package pipeline orchestrates the refresh cycle: fetch weather, reload
// the surveillance archive, ensure a trained model, and rebuild the
// outward forecast payloads. It owns the only mutable state in the
// service; all scoring underneath it is pure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/dataset"
	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/forecast"
	"github.com/ishhu840/Odon-PakAI/internal/health"
	"github.com/ishhu840/Odon-PakAI/internal/model"
	"github.com/ishhu840/Odon-PakAI/internal/observability"
)

// ErrRefreshInFlight is returned when a refresh is requested while
// another one is still running. Concurrent triggers collapse to one run.
var ErrRefreshInFlight = errors.New("refresh already in flight")

// historyCity labels the synthesized national training series.
const historyCity = "National"

// HealthSource loads the combined surveillance series.
type HealthSource interface {
	Load() ([]domain.HealthRecord, health.Stats, error)
}

// TableBuilder merges surveillance records with daily weather into a
// training table.
type TableBuilder interface {
	Build(records []domain.HealthRecord, weather []domain.DailyWeather) (*dataset.Table, error)
}

// ModelTrainer fits the outbreak model on a prepared table.
type ModelTrainer interface {
	Fit(table *dataset.Table) (*model.Model, error)
}

// ModelStore persists the trained model between runs.
type ModelStore interface {
	Exists() bool
	Save(m *model.Model) error
	Load() (*model.Model, error)
}

// state is everything the refresh cycle mutates, guarded by Pipeline.mu.
type state struct {
	snapshot domain.WeatherSnapshot
	records  []domain.HealthRecord
	stats    health.Stats
	model    *model.Model

	outbreak      forecast.OutbreakPredictions
	critical      forecast.CriticalAlerts
	comprehensive forecast.ComprehensiveForecasts
	heatwave      forecast.HeatwaveData
}

// Pipeline orchestrates refresh cycles and serves the cached payloads.
type Pipeline struct {
	gateway domain.WeatherGateway // nil when the weather API is disabled
	health  HealthSource
	builder TableBuilder
	trainer ModelTrainer
	store   ModelStore
	logger  *slog.Logger
	metrics *observability.Metrics

	historyYears int

	mu    sync.Mutex
	state state
	ready atomic.Bool

	// refreshMu is the single in-flight guard; TryLock collapses
	// concurrent triggers to one run.
	refreshMu sync.Mutex
}

// New creates a Pipeline. The payload caches start on the seasonal
// fallbacks so every endpoint renders before the first refresh.
func New(gateway domain.WeatherGateway, hs HealthSource, builder TableBuilder, trainer ModelTrainer, store ModelStore, logger *slog.Logger, metrics *observability.Metrics, historyYears int) *Pipeline {
	p := &Pipeline{
		gateway:      gateway,
		health:       hs,
		builder:      builder,
		trainer:      trainer,
		store:        store,
		logger:       logger,
		metrics:      metrics,
		historyYears: historyYears,
	}

	p.mu.Lock()
	p.state.snapshot = domain.FallbackWeatherSnapshot()
	p.rebuildLocked()
	p.mu.Unlock()
	return p
}

// CheckReadiness returns nil once the first refresh cycle has completed,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("first refresh cycle has not completed yet")
	}
	return nil
}

// Refresh runs one full cycle: weather, health data, model, payloads.
// Returns ErrRefreshInFlight when another refresh holds the guard.
func (p *Pipeline) Refresh(ctx context.Context, trigger string) error {
	if !p.refreshMu.TryLock() {
		return ErrRefreshInFlight
	}
	defer p.refreshMu.Unlock()

	start := time.Now()
	p.metrics.RefreshRunning.Set(1)
	defer p.metrics.RefreshRunning.Set(0)

	p.logger.Info("refresh started", "trigger", trigger)

	p.loadWeather(ctx)
	p.loadHealth()
	p.ensureModel(ctx)

	p.mu.Lock()
	p.rebuildLocked()
	p.mu.Unlock()

	p.ready.Store(true)
	p.metrics.RefreshRuns.WithLabelValues(trigger, "success").Inc()
	p.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("refresh completed", "trigger", trigger, "duration", time.Since(start))
	return nil
}

// RefreshWeather updates the weather snapshot and rebuilds the payloads.
// Skipped when a full refresh is in flight.
func (p *Pipeline) RefreshWeather(ctx context.Context) error {
	if !p.refreshMu.TryLock() {
		return ErrRefreshInFlight
	}
	defer p.refreshMu.Unlock()

	p.loadWeather(ctx)
	p.mu.Lock()
	p.rebuildLocked()
	p.mu.Unlock()
	return nil
}

// RefreshHealth reloads the surveillance archive and rebuilds the payloads.
func (p *Pipeline) RefreshHealth(ctx context.Context) error {
	if !p.refreshMu.TryLock() {
		return ErrRefreshInFlight
	}
	defer p.refreshMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	p.loadHealth()
	p.mu.Lock()
	p.rebuildLocked()
	p.mu.Unlock()
	return nil
}

// RunAnalysis recomputes the forecast payloads from the current state.
// The builders are seasonal, so payloads drift even without new data.
func (p *Pipeline) RunAnalysis(ctx context.Context) error {
	if !p.refreshMu.TryLock() {
		return ErrRefreshInFlight
	}
	defer p.refreshMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.rebuildLocked()
	p.mu.Unlock()
	return nil
}

// Train forces a training run on the current surveillance series and
// persists the result. Failures never propagate as errors; they land in
// the result's reason, and any previously loaded model stays in service.
func (p *Pipeline) Train(ctx context.Context) model.TrainingResult {
	p.mu.Lock()
	records := p.state.records
	p.mu.Unlock()

	if len(records) == 0 {
		p.loadHealth()
		p.mu.Lock()
		records = p.state.records
		p.mu.Unlock()
	}
	if len(records) == 0 {
		return model.TrainingResult{Success: false, Reason: domain.ErrInsufficientData.Error()}
	}

	weather, err := p.historicalWeather(ctx)
	if err != nil {
		p.logger.Warn("historical weather unavailable, training on health features only", "error", err)
	}

	table, err := p.builder.Build(records, weather)
	if err != nil {
		return model.TrainingResult{Success: false, Reason: err.Error()}
	}

	m, err := p.trainer.Fit(table)
	if err != nil {
		return model.TrainingResult{Success: false, Reason: err.Error()}
	}

	if err := p.store.Save(m); err != nil {
		p.logger.Error("model save failed", "error", err)
	}

	p.setModel(m)
	return model.TrainingResult{Success: true, Metadata: &m.Meta}
}

// loadWeather fetches the current snapshot with a short retry, degrading
// to the fallback snapshot when the gateway is disabled or exhausted.
func (p *Pipeline) loadWeather(ctx context.Context) {
	snapshot := domain.FallbackWeatherSnapshot()
	if p.gateway != nil {
		fetched, err := p.fetchSnapshot(ctx)
		if err != nil {
			p.logger.Error("weather snapshot failed, serving fallback", "error", err)
		} else {
			snapshot = fetched
		}
	}

	p.mu.Lock()
	p.state.snapshot = snapshot
	p.mu.Unlock()
}

// fetchSnapshot retries with exponential backoff: 200ms doubling to a 5s
// cap, three attempts. Keeps transient API hiccups out of the payloads
// without stalling the refresh cycle.
func (p *Pipeline) fetchSnapshot(ctx context.Context) (domain.WeatherSnapshot, error) {
	backoff := 200 * time.Millisecond
	const maxBackoff = 5 * time.Second
	const attempts = 3

	var lastErr error
	for i := 0; i < attempts; i++ {
		snapshot, err := p.gateway.Snapshot(ctx)
		if err == nil {
			return snapshot, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return domain.WeatherSnapshot{}, ctx.Err()
		}
		if i < attempts-1 {
			if !sleepWithContext(ctx, backoff) {
				return domain.WeatherSnapshot{}, ctx.Err()
			}
			backoff = nextBackoff(backoff, maxBackoff)
		}
	}
	return domain.WeatherSnapshot{}, fmt.Errorf("weather snapshot after %d attempts: %w", attempts, lastErr)
}

func (p *Pipeline) loadHealth() {
	records, stats, err := p.health.Load()
	if err != nil {
		p.logger.Error("surveillance load failed", "error", err)
		return
	}

	p.metrics.HealthRecords.WithLabelValues("nih").Set(float64(stats.NIHRecords))
	p.metrics.HealthRecords.WithLabelValues("dengue").Set(float64(stats.DengueRecords))

	p.mu.Lock()
	p.state.records = records
	p.state.stats = stats
	p.mu.Unlock()
}

// ensureModel loads the persisted model if one exists, otherwise trains
// a fresh one. A failed attempt leaves the model absent; status payloads
// render "No model available".
func (p *Pipeline) ensureModel(ctx context.Context) {
	p.mu.Lock()
	loaded := p.state.model != nil
	p.mu.Unlock()
	if loaded {
		return
	}

	if p.store.Exists() {
		m, err := p.store.Load()
		if err == nil {
			p.setModel(m)
			p.logger.Info("outbreak model loaded", "rmse", m.Meta.RMSE, "trained", m.Meta.TrainingDate)
			return
		}
		p.logger.Warn("persisted model unreadable, retraining", "error", err)
	}

	result := p.Train(ctx)
	if !result.Success {
		p.logger.Warn("model training unavailable", "reason", result.Reason)
	}
}

func (p *Pipeline) historicalWeather(ctx context.Context) ([]domain.DailyWeather, error) {
	if p.gateway == nil {
		return nil, nil
	}
	return p.gateway.HistoricalDaily(ctx, historyCity, p.historyYears)
}

func (p *Pipeline) setModel(m *model.Model) {
	p.metrics.ModelAvailable.Set(1)
	p.metrics.ModelRMSE.Set(m.Meta.RMSE)

	p.mu.Lock()
	p.state.model = m
	p.mu.Unlock()
}

// rebuildLocked recomputes every cached payload from the current
// snapshot. Callers hold p.mu.
func (p *Pipeline) rebuildLocked() {
	p.state.outbreak = forecast.BuildOutbreakPredictions(p.state.snapshot)
	p.state.critical = forecast.BuildCriticalAlerts(p.state.snapshot)
	p.state.comprehensive = forecast.BuildComprehensiveForecasts(p.state.snapshot)
	p.state.heatwave = forecast.BuildHeatwaveData(p.state.snapshot)
}

// Snapshot returns the latest weather snapshot.
func (p *Pipeline) Snapshot() domain.WeatherSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.snapshot
}

// ModelInfo renders the model-status payload.
func (p *Pipeline) ModelInfo() map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return model.Info(p.state.model)
}

// HealthStats reports the record counts from the last surveillance load.
func (p *Pipeline) HealthStats() health.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.stats
}

// OutbreakPredictions returns the cached 30-day outlook payload.
func (p *Pipeline) OutbreakPredictions() forecast.OutbreakPredictions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.outbreak
}

// CriticalAlerts returns the cached 24h/72h alert payload.
func (p *Pipeline) CriticalAlerts() forecast.CriticalAlerts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.critical
}

// ComprehensiveForecasts returns the cached 14/21-day forecast payload.
func (p *Pipeline) ComprehensiveForecasts() forecast.ComprehensiveForecasts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.comprehensive
}

// HeatwaveData returns the cached heatwave payload.
func (p *Pipeline) HeatwaveData() forecast.HeatwaveData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.heatwave
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
