package domain

import (
	"context"
	"time"
)

// Disease identifies one of the tracked illness categories.
type Disease string

const (
	Dengue      Disease = "dengue"
	Malaria     Disease = "malaria"
	Respiratory Disease = "respiratory"
	Cholera     Disease = "cholera"
	Typhoid     Disease = "typhoid"
	Hepatitis   Disease = "hepatitis"
	Diarrheal   Disease = "diarrheal"
)

// HealthRecord is one day of aggregated surveillance data from either the
// NIH weekly reports or the dengue patient registry.
type HealthRecord struct {
	Date        time.Time
	Cases       int
	Year        int
	Month       int
	Day         int
	Week        int // ISO week of Date
	SourceSheet string

	// Registry-only fields; nil for NIH weekly rows.
	Lat       *float64
	Lon       *float64
	AvgAge    *float64
	MaleRatio *float64
}

// DailyWeather is one day of weather history, resampled to daily means.
// Values holds the numeric channels keyed by name (temperature, humidity,
// pressure, wind_speed, ...).
type DailyWeather struct {
	Date   time.Time
	Values map[string]float64
}

// CityWeather is the current observation for one monitored city.
type CityWeather struct {
	City         string  `json:"city"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	Pressure     float64 `json:"pressure"`
	Description  string  `json:"description"`
	WindSpeed    float64 `json:"wind_speed"`
	VisibilityKM float64 `json:"visibility"`
	UVIndex      float64 `json:"uv_index"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`

	// Optional channels; absent from some provider payloads.
	AirQuality    string  `json:"air_quality,omitempty"`
	Precipitation float64 `json:"precipitation,omitempty"`
}

// NationalSummary aggregates current conditions across all monitored cities.
type NationalSummary struct {
	AvgTemperature float64 `json:"avg_temperature"`
	MinTemperature float64 `json:"min_temperature"`
	MaxTemperature float64 `json:"max_temperature"`
	AvgHumidity    float64 `json:"avg_humidity"`
	AvgPressure    float64 `json:"avg_pressure"`
	TotalCities    int     `json:"total_cities"`
	Conditions     string  `json:"conditions"`
}

// WeatherSnapshot is the full current-weather payload. Error is non-empty
// on the fallback snapshot returned when the weather API is unreachable.
type WeatherSnapshot struct {
	National    NationalSummary `json:"national_summary"`
	Cities      []CityWeather   `json:"cities"`
	LastUpdated time.Time       `json:"last_updated"`
	Error       string          `json:"error,omitempty"`
}

// Conditions are the inputs to the risk scorer. AirQuality and
// Precipitation are optional and default to their zero values.
type Conditions struct {
	Temperature   float64
	Humidity      float64
	Month         time.Month
	AirQuality    string
	Precipitation float64 // mm expected over the assessment window
}

// DefaultConditions returns scorer inputs for the current month with the
// standing fallback values used when no weather observation is available.
func DefaultConditions() Conditions {
	return Conditions{Temperature: 25, Humidity: 60, Month: Now().Month()}
}

// FallbackWeatherSnapshot is served when the weather API is disabled or
// unreachable. The error field marks the payload so downstream builders
// switch to their seasonal fallbacks.
func FallbackWeatherSnapshot() WeatherSnapshot {
	return WeatherSnapshot{
		National:    NationalSummary{Conditions: "Data unavailable"},
		Cities:      []CityWeather{},
		LastUpdated: Now(),
		Error:       "Weather API not available",
	}
}

// WeatherGateway provides current and historical weather for the
// monitored cities.
type WeatherGateway interface {
	// Snapshot fetches current conditions for every monitored city and
	// aggregates the national summary.
	Snapshot(ctx context.Context) (WeatherSnapshot, error)
	// HistoricalDaily returns daily weather aggregates for a city going
	// back the given number of years, oldest first.
	HistoricalDaily(ctx context.Context, city string, years int) ([]DailyWeather, error)
}
