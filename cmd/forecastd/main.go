// Command forecastd runs the outbreak forecasting service: it polls
// weather for the monitored cities, loads the surveillance archive,
// keeps a trained model warm, and serves the forecast API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ishhu840/Odon-PakAI/internal/adapter/httpapi"
	"github.com/ishhu840/Odon-PakAI/internal/adapter/weather"
	"github.com/ishhu840/Odon-PakAI/internal/config"
	"github.com/ishhu840/Odon-PakAI/internal/dataset"
	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/health"
	"github.com/ishhu840/Odon-PakAI/internal/model"
	"github.com/ishhu840/Odon-PakAI/internal/observability"
	"github.com/ishhu840/Odon-PakAI/internal/pipeline"
	"github.com/ishhu840/Odon-PakAI/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Weather gateway (feature-flagged via WEATHER_ENABLED / WEATHER_API_KEY).
	var gateway domain.WeatherGateway
	if cfg.WeatherEnabled {
		client := weather.NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherTimeout, logger, metrics)
		gateway = weather.NewCachedGateway(client, cfg.WeatherCacheSize, metrics)
		logger.Info("weather API enabled", "cache_size", cfg.WeatherCacheSize, "timeout", cfg.WeatherTimeout)
	} else {
		logger.Info("weather API disabled, serving seasonal fallbacks")
	}

	p := pipeline.New(
		gateway,
		health.NewLoader(cfg.DataDir, logger),
		dataset.NewBuilder(logger),
		model.NewTrainer(logger),
		model.NewStore(cfg.ModelDir),
		logger,
		metrics,
		cfg.HistoryYears,
	)

	srv := httpapi.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.New(ctx, p, logger)
	if err != nil {
		logger.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// First refresh runs in the background so the server binds immediately;
	// readiness flips once it completes.
	go func() {
		if err := p.Refresh(ctx, "startup"); err != nil {
			logger.Error("startup refresh failed", "error", err)
		}
	}()

	sched.Start()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn("scheduled jobs did not finish before shutdown deadline")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
