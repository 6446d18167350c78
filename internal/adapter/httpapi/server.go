// Package httpapi exposes the forecast payloads, health probes, and
// Prometheus metrics over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ishhu840/Odon-PakAI/internal/forecast"
	"github.com/ishhu840/Odon-PakAI/internal/pipeline"
)

// Forecaster serves the cached forecast payloads and accepts refresh
// triggers. Implemented by *pipeline.Pipeline.
type Forecaster interface {
	CheckReadiness(ctx context.Context) error
	ModelInfo() map[string]any
	OutbreakPredictions() forecast.OutbreakPredictions
	CriticalAlerts() forecast.CriticalAlerts
	ComprehensiveForecasts() forecast.ComprehensiveForecasts
	HeatwaveData() forecast.HeatwaveData
	Refresh(ctx context.Context, trigger string) error
}

// Server exposes the forecast API plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	forecaster Forecaster
	logger     *slog.Logger
}

// NewServer creates an HTTP server with all service routes registered.
func NewServer(addr string, forecaster Forecaster, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second, // manual refresh runs inline
			IdleTimeout:  60 * time.Second,
		},
		forecaster: forecaster,
		logger:     logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/model-status", s.handleModelStatus)
	mux.HandleFunc("GET /api/outbreak-predictions", s.handleOutbreakPredictions)
	mux.HandleFunc("GET /api/critical-outbreak-alerts", s.handleCriticalAlerts)
	mux.HandleFunc("GET /api/comprehensive-forecasts", s.handleComprehensiveForecasts)
	mux.HandleFunc("GET /api/heatwave-data", s.handleHeatwaveData)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.forecaster.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleModelStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.forecaster.ModelInfo())
}

func (s *Server) handleOutbreakPredictions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.forecaster.OutbreakPredictions())
}

func (s *Server) handleCriticalAlerts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.forecaster.CriticalAlerts())
}

func (s *Server) handleComprehensiveForecasts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.forecaster.ComprehensiveForecasts())
}

func (s *Server) handleHeatwaveData(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.forecaster.HeatwaveData())
}

// handleRefresh runs a manual refresh inline. A refresh already holding
// the guard answers 409 so callers know a run is underway.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.forecaster.Refresh(r.Context(), "manual")
	if errors.Is(err, pipeline.ErrRefreshInFlight) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("manual refresh failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "refresh failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refresh completed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
