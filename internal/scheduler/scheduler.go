// Package scheduler drives the recurring refresh cadence with cron.
package scheduler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/ishhu840/Odon-PakAI/internal/pipeline"
)

// Cadences, mirroring the service's operational rhythm: current weather
// twice an hour, surveillance data every two hours, analysis rebuild
// every six, and one full refresh each morning.
const (
	weatherSpec  = "*/30 * * * *"
	healthSpec   = "0 */2 * * *"
	analysisSpec = "0 */6 * * *"
	dailySpec    = "0 6 * * *"
)

// Refresher is the subset of the pipeline the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) error
	RefreshWeather(ctx context.Context) error
	RefreshHealth(ctx context.Context) error
	RunAnalysis(ctx context.Context) error
}

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	cron     *cron.Cron
	refresh  Refresher
	logger   *slog.Logger
	baseCtx  context.Context
}

// New creates a scheduler with all four jobs registered. Jobs run with
// baseCtx so in-flight work stops when the service shuts down.
func New(baseCtx context.Context, refresh Refresher, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		refresh: refresh,
		logger:  logger,
		baseCtx: baseCtx,
	}

	jobs := []struct {
		spec string
		name string
		run  func(context.Context) error
	}{
		{weatherSpec, "weather", refresh.RefreshWeather},
		{healthSpec, "health", refresh.RefreshHealth},
		{analysisSpec, "analysis", refresh.RunAnalysis},
		{dailySpec, "daily", func(ctx context.Context) error { return refresh.Refresh(ctx, "scheduled") }},
	}
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, s.wrap(job.name, job.run)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// wrap adapts a refresh step into a cron job. A step that finds another
// refresh in flight is skipped quietly; anything else failing is logged.
func (s *Scheduler) wrap(name string, run func(context.Context) error) func() {
	return func() {
		if err := run(s.baseCtx); err != nil {
			if errors.Is(err, pipeline.ErrRefreshInFlight) {
				s.logger.Debug("scheduled job skipped, refresh in flight", "job", name)
				return
			}
			s.logger.Error("scheduled job failed", "job", name, "error", err)
		}
	}
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("scheduler started",
		"weather", weatherSpec,
		"health", healthSpec,
		"analysis", analysisSpec,
		"daily", dailySpec,
	)
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once running
// jobs complete.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
