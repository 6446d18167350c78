package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DataDir is the root of the surveillance archive, containing the
	// nihdata/ and denguedata/ subdirectories.
	DataDir string
	// ModelDir holds the persisted model file and its metadata sidecar.
	ModelDir string

	// Weather API configuration (feature-flagged via WEATHER_ENABLED / WEATHER_API_KEY).
	WeatherAPIKey    string
	WeatherEnabled   bool
	WeatherBaseURL   string
	WeatherTimeout   time.Duration
	WeatherCacheSize int

	// HistoryYears is how far back historical weather is fetched for training.
	HistoryYears int
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	weatherKey := os.Getenv("WEATHER_API_KEY")
	weatherEnabled := weatherKey != ""
	if v := os.Getenv("WEATHER_ENABLED"); v != "" {
		weatherEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataDir:  envOrDefault("DATA_DIR", "data"),
		ModelDir: envOrDefault("MODEL_DIR", "models"),

		WeatherAPIKey:    weatherKey,
		WeatherEnabled:   weatherEnabled,
		WeatherBaseURL:   envOrDefault("WEATHER_BASE_URL", "https://api.openweathermap.org"),
		WeatherTimeout:   weatherTimeout,
		WeatherCacheSize: parsePositiveInt("WEATHER_CACHE_SIZE", 1000),

		HistoryYears: parsePositiveInt("HISTORY_YEARS", 5),
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.ModelDir == "" {
		return nil, errors.New("MODEL_DIR is required")
	}
	if cfg.WeatherEnabled && cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHER_ENABLED is true but WEATHER_API_KEY is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
