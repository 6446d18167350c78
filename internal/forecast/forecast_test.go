package forecast

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func octoberSnapshot() domain.WeatherSnapshot {
	return domain.WeatherSnapshot{
		National: domain.NationalSummary{
			AvgTemperature: 27,
			AvgHumidity:    75,
			TotalCities:    2,
		},
		Cities: []domain.CityWeather{
			{City: "Lahore", Temperature: 28, Humidity: 80},
			{City: "Quetta", Temperature: 15, Humidity: 30},
		},
	}
}

func TestBuildOutbreakPredictions(t *testing.T) {
	freezeTime(t, time.Date(2025, time.October, 10, 8, 0, 0, 0, time.UTC))

	t.Run("live snapshot", func(t *testing.T) {
		p := BuildOutbreakPredictions(octoberSnapshot())

		require.Len(t, p.Predictions, 7)
		assert.Equal(t, "Dengue Fever", p.Predictions[0].Disease)
		assert.Equal(t, "Lahore", p.Predictions[0].Location)
		assert.Equal(t, 95, p.ModelConfidence)
		assert.Equal(t, "critical", p.WeatherContext.SeasonRiskFactor)
		assert.True(t, p.WeatherContext.MonsoonSeason)
		require.Len(t, p.HighRiskCities, 1)
		assert.Equal(t, "Lahore", p.HighRiskCities[0].City)
		assert.Equal(t, outbreakDataSource, p.DataSource)
	})

	t.Run("gateway fallback snapshot yields seasonal payload", func(t *testing.T) {
		p := BuildOutbreakPredictions(domain.WeatherSnapshot{Error: "Weather API not available"})

		require.Len(t, p.Predictions, 3)
		assert.Equal(t, 65, p.ModelConfidence)
		// October sits in the post-monsoon window.
		assert.Equal(t, "medium", p.Predictions[0].RiskLevel)
		assert.Equal(t, 90, p.Predictions[0].PredictedCases)
		assert.Equal(t, "Rawalpindi", p.Predictions[0].Location)
	})
}

func TestBuildCriticalAlerts(t *testing.T) {
	freezeTime(t, time.Date(2025, time.November, 5, 6, 0, 0, 0, time.UTC))

	snapshot := domain.WeatherSnapshot{
		National: domain.NationalSummary{AvgTemperature: 22, AvgHumidity: 40, TotalCities: 1},
		Cities:   []domain.CityWeather{{City: "Lahore", Temperature: 28, Humidity: 80}},
	}

	alerts := BuildCriticalAlerts(snapshot)

	require.NotEmpty(t, alerts.Alerts.Hours24)
	top := alerts.Alerts.Hours24[0]
	assert.Equal(t, "Lahore", top.City)
	assert.Equal(t, "CRITICAL", top.AlertLevel)
	assert.Equal(t, "Dengue Fever", top.PrimaryDisease)
	assert.Equal(t, 30, top.EstimatedCases)
	assert.Equal(t, 0.92, top.Confidence)

	// Every flagged city carries a 72-hour alert; the fallback-average
	// cities band at high, which maps to MEDIUM.
	require.Len(t, alerts.Alerts.Hours72, 8)
	assert.Equal(t, "CRITICAL", alerts.Alerts.Hours72[0].AlertLevel)
	assert.Equal(t, "MEDIUM", alerts.Alerts.Hours72[1].AlertLevel)
	assert.Equal(t, 0.88, alerts.Alerts.Hours72[0].Confidence)

	assert.Equal(t, 1, alerts.Summary.Critical24h)
	assert.Equal(t, 1, alerts.Summary.Critical72h)
	assert.Equal(t, "Lahore", alerts.Summary.HighestPriorityCity)
	assert.Equal(t, 8, alerts.Summary.TotalCitiesAtRisk)
	assert.True(t, alerts.Summary.ImmediateActionRequired)

	assert.Equal(t, "2025-11-05T06:00:00Z", alerts.LastUpdated)
	assert.Equal(t, "2025-11-05T12:00:00Z", alerts.NextUpdate)

	require.Len(t, alerts.HighPriorityCities, 1)
	assert.False(t, alerts.WeatherContext.MonsoonSeason)
	assert.True(t, alerts.WeatherContext.PostMonsoonSeason)
}

func TestBuildCriticalAlertsFallback(t *testing.T) {
	freezeTime(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))

	alerts := BuildCriticalAlerts(domain.WeatherSnapshot{Error: "Weather API not available"})

	require.Len(t, alerts.Alerts.Hours24, 1)
	assert.Equal(t, "Rawalpindi", alerts.Alerts.Hours24[0].City)
	assert.Equal(t, 15, alerts.Alerts.Hours24[0].EstimatedCases)
	require.Len(t, alerts.Alerts.Hours72, 1)
	assert.Equal(t, "Lahore", alerts.Alerts.Hours72[0].City)
	assert.True(t, alerts.Summary.ImmediateActionRequired)
}

func TestBuildComprehensiveForecasts(t *testing.T) {
	freezeTime(t, time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC))

	f := BuildComprehensiveForecasts(octoberSnapshot())

	assert.Equal(t, "14 days", f.Forecast14Days.ForecastPeriod)
	assert.Equal(t, "2025-09-03", f.Forecast14Days.ForecastDate)
	assert.Equal(t, "2025-09-10", f.Forecast21Days.ForecastDate)

	// Both windows land in September, so the horizons share seasonal
	// flags and the 21-day totals scale up by 21/14.
	assert.True(t, f.Forecast14Days.WeatherFactors.MonsoonSeason)
	assert.True(t, f.Forecast14Days.WeatherFactors.PostMonsoon)
	assert.Greater(t, f.Forecast21Days.NationalTotals.TotalCases, f.Forecast14Days.NationalTotals.TotalCases)

	assert.Equal(t, "increasing", f.Summary.Trend)
	assert.Equal(t, "21-day forecast", f.Summary.PeakPeriod)
	assert.Equal(t, 81, f.ConfidenceMetrics["overall_confidence"])
	assert.Len(t, f.Forecast14Days.ProvinceBreakdown, 7)
}

func TestBuildComprehensiveForecastsFallback(t *testing.T) {
	freezeTime(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC))

	f := BuildComprehensiveForecasts(domain.WeatherSnapshot{Error: "Weather API not available"})

	// Post-monsoon baseline is 200 cases over 14 days.
	assert.Equal(t, "14 days", f.Forecast14Days.ForecastPeriod)
	punjab := f.Forecast14Days.ProvinceBreakdown["Punjab"]
	assert.Equal(t, 90, punjab.TotalCases) // 200 * 0.45
	assert.Equal(t, "medium", punjab.RiskLevel)
	assert.Equal(t, 60, f.ConfidenceMetrics["overall_confidence"])
	assert.Len(t, f.Forecast14Days.ProvinceBreakdown, 5)
}

func TestBuildHeatwaveData(t *testing.T) {
	freezeTime(t, time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC))

	snapshot := domain.WeatherSnapshot{
		Cities: []domain.CityWeather{
			{City: "Karachi", Temperature: 44, Humidity: 30, Lat: 24.8607, Lon: 67.0011},
			{City: "Islamabad", Temperature: 22, Humidity: 45},
		},
	}

	data := BuildHeatwaveData(snapshot)
	require.Len(t, data.Cities, 2)

	karachi := data.Cities[0]
	assert.Equal(t, "CRITICAL", karachi.RiskLevel)
	assert.True(t, karachi.IsOnAlert)
	assert.Equal(t, 16094000, karachi.Population)
	assert.Contains(t, karachi.AlertReasons[0], "Extreme temperature")
	assert.Greater(t, karachi.PopulationAtRisk, 0)
	assert.Greater(t, karachi.EstimatedCases30, 0)

	var diseases []string
	for _, p := range karachi.Predicted {
		diseases = append(diseases, p.Disease)
	}
	assert.Contains(t, diseases, "Respiratory")
	assert.Contains(t, diseases, "Heat Stroke")

	islamabad := data.Cities[1]
	assert.False(t, islamabad.IsOnAlert)
	assert.Equal(t, "LOW", islamabad.RiskLevel)

	assert.Equal(t, "Karachi", data.AlertSummary.HighestRiskCity)
	assert.Equal(t, 1, data.AlertSummary.CitiesOnAlert)
	assert.Equal(t, 2, data.NationalStatistics.CitiesMonitored)
	assert.InDelta(t, 33, data.NationalStatistics.AverageTemperature, 0.1)
}

func TestAnalyzeCityDiseases(t *testing.T) {
	t.Run("hot humid vector conditions", func(t *testing.T) {
		a := AnalyzeCityDiseases(28, 82)
		assert.Equal(t, "high", a["dengue"].RiskLevel)
		assert.Equal(t, "medium", a["malaria"].RiskLevel)
		assert.Equal(t, "low", a["respiratory"].RiskLevel)
		assert.NotEmpty(t, a["dengue"].Factors)
	})
	t.Run("extreme heat", func(t *testing.T) {
		a := AnalyzeCityDiseases(46, 40)
		assert.Equal(t, "high", a["respiratory"].RiskLevel)
		assert.Equal(t, "extreme", a["heat_stroke"].RiskLevel)
		assert.Equal(t, "low", a["dengue"].RiskLevel)
	})
}

func TestHeatIndex(t *testing.T) {
	assert.InDelta(t, 48.5, HeatIndex(44, 30), 1e-9)
	assert.InDelta(t, 25.0, HeatIndex(25, 0), 1e-9)
}

func TestCompositeRiskScore(t *testing.T) {
	analysis := map[string]DiseaseBand{
		"dengue":      {RiskLevel: "high"},
		"malaria":     {RiskLevel: "medium"},
		"respiratory": {RiskLevel: "low"},
		"heat_stroke": {RiskLevel: "low"},
	}
	// base = (30-25)*2 + (80-30)*1.5 = 85; multiplier 1.3.
	assert.Equal(t, 100.0, CompositeRiskScore(30, 80, analysis))

	cold := map[string]DiseaseBand{"dengue": {RiskLevel: "low"}}
	assert.Equal(t, 0.0, CompositeRiskScore(10, 20, cold))
}

func TestOverallAlertLevel(t *testing.T) {
	assert.Equal(t, "critical", OverallAlertLevel(map[string]DiseaseBand{"a": {RiskLevel: "extreme"}}))
	assert.Equal(t, "high", OverallAlertLevel(map[string]DiseaseBand{"a": {RiskLevel: "high"}, "b": {RiskLevel: "low"}}))
	assert.Equal(t, "low", OverallAlertLevel(map[string]DiseaseBand{"a": {RiskLevel: "low"}}))
}
