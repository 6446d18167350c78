package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecasting service.
type Metrics struct {
	RefreshRuns     *prometheus.CounterVec // labels: trigger={startup,scheduled,manual}, outcome={success,error}
	RefreshDuration prometheus.Histogram
	RefreshRunning  prometheus.Gauge

	// Weather gateway metrics.
	WeatherRequests    *prometheus.CounterVec   // labels: kind={current,history}, outcome={success,error}
	WeatherAPIDuration *prometheus.HistogramVec // labels: kind={current,history}
	WeatherCache       *prometheus.CounterVec   // labels: result={hit,miss}

	// Data and model metrics.
	HealthRecords  *prometheus.GaugeVec // labels: source={nih,dengue}
	ModelAvailable prometheus.Gauge
	ModelRMSE      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outbreak",
			Name:      "refresh_runs_total",
			Help:      "Forecast refresh cycles by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "outbreak",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete load-score-publish refresh cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "outbreak",
			Name:      "refresh_running",
			Help:      "1 while a refresh cycle is in flight, 0 otherwise.",
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outbreak",
			Name:      "weather_requests_total",
			Help:      "Weather API requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		WeatherAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "outbreak",
			Name:      "weather_api_duration_seconds",
			Help:      "Weather API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"kind"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outbreak",
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		HealthRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "outbreak",
			Name:      "health_records",
			Help:      "Surveillance records loaded in the latest refresh, by source.",
		}, []string{"source"}),
		ModelAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "outbreak",
			Name:      "model_available",
			Help:      "1 when a trained outbreak model is loaded, 0 otherwise.",
		}),
		ModelRMSE: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "outbreak",
			Name:      "model_rmse",
			Help:      "Held-out RMSE of the loaded outbreak model.",
		}),
	}

	prometheus.MustRegister(
		m.RefreshRuns,
		m.RefreshDuration,
		m.RefreshRunning,
		m.WeatherRequests,
		m.WeatherAPIDuration,
		m.WeatherCache,
		m.HealthRecords,
		m.ModelAvailable,
		m.ModelRMSE,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RefreshRuns:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "outbreak", Name: "refresh_runs_total"}, []string{"trigger", "outcome"}),
		RefreshDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "outbreak", Name: "refresh_duration_seconds"}),
		RefreshRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "outbreak", Name: "refresh_running"}),
		WeatherRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "outbreak", Name: "weather_requests_total"}, []string{"kind", "outcome"}),
		WeatherAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "outbreak", Name: "weather_api_duration_seconds"}, []string{"kind"}),
		WeatherCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "outbreak", Name: "weather_cache_total"}, []string{"result"}),
		HealthRecords:      prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "outbreak", Name: "health_records"}, []string{"source"}),
		ModelAvailable:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "outbreak", Name: "model_available"}),
		ModelRMSE:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "outbreak", Name: "model_rmse"}),
	}
}
