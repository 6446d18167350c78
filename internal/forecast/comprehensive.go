package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/risk"
)

// WeatherFactors records the conditions a forecast window assumed.
type WeatherFactors struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	MonsoonSeason bool    `json:"monsoon_season"`
	PostMonsoon   bool    `json:"post_monsoon"`
	WinterSeason  bool    `json:"winter_season"`
}

// DetailedForecast is one horizon's full province and national forecast.
type DetailedForecast struct {
	ForecastPeriod      string                           `json:"forecast_period"`
	ForecastDate        string                           `json:"forecast_date"`
	NationalTotals      risk.NationalTotals              `json:"national_totals"`
	ProvinceBreakdown   map[string]risk.ProvinceForecast `json:"province_breakdown"`
	OutbreakProbability risk.OutbreakProbabilities       `json:"outbreak_probability"`
	RiskAssessment      risk.ForecastRisk                `json:"risk_assessment"`
	WeatherFactors      WeatherFactors                   `json:"weather_factors"`
}

// ForecastSummary compares the two horizons.
type ForecastSummary struct {
	Trend        string   `json:"trend"`
	GrowthRate   float64  `json:"growth_rate_percent"`
	PeakPeriod   string   `json:"peak_period"`
	Cases14Days  int      `json:"total_cases_14_days"`
	Cases21Days  int      `json:"total_cases_21_days"`
	KeyInsights  []string `json:"key_insights"`
}

// ComprehensiveForecasts is the 2-3 week forecast payload.
type ComprehensiveForecasts struct {
	Forecast14Days    DetailedForecast  `json:"forecast_14_days"`
	Forecast21Days    DetailedForecast  `json:"forecast_21_days"`
	Summary           ForecastSummary   `json:"summary"`
	ConfidenceMetrics map[string]any    `json:"confidence_metrics"`
	DataSources       map[string]string `json:"data_sources"`
	LastUpdated       string            `json:"last_updated"`
}

// BuildComprehensiveForecasts assembles the 14 and 21 day forecasts from
// the snapshot's national conditions. A gateway fallback snapshot yields
// the seasonal fallback payload.
func BuildComprehensiveForecasts(snapshot domain.WeatherSnapshot) ComprehensiveForecasts {
	if snapshot.Error != "" {
		return FallbackComprehensiveForecasts()
	}

	avgTemp := snapshot.National.AvgTemperature
	avgHumidity := snapshot.National.AvgHumidity
	if len(snapshot.Cities) == 0 {
		avgTemp, avgHumidity = 25, 60
	}

	f14 := buildDetailedForecast(14, avgTemp, avgHumidity)
	f21 := buildDetailedForecast(21, avgTemp, avgHumidity)

	return ComprehensiveForecasts{
		Forecast14Days:    f14,
		Forecast21Days:    f21,
		Summary:           summarizeForecasts(f14, f21),
		ConfidenceMetrics: risk.ForecastConfidence(),
		DataSources: map[string]string{
			"nih_data":         "Weekly reports 2021-2025",
			"dengue_data":      "Punjab patient records 2011-2023",
			"weather_data":     "Real-time OpenWeatherMap API",
			"prediction_model": "Gradient boosting with seasonal patterns",
		},
		LastUpdated: domain.Now().Format(time.RFC3339),
	}
}

// buildDetailedForecast classifies seasons by the forecast window's end
// date, not today: a late-August 21-day forecast lands in post-monsoon.
func buildDetailedForecast(daysAhead int, avgTemp, avgHumidity float64) DetailedForecast {
	forecastDate := domain.Now().AddDate(0, 0, daysAhead)
	month := forecastDate.Month()
	season := risk.SeasonFlags{
		Monsoon:     domain.IsMonsoon(month),
		PostMonsoon: domain.IsPostMonsoon(month),
		Winter:      domain.IsWinter(month),
	}

	provinces := make(map[string]risk.ProvinceForecast, len(risk.Provinces))
	for _, p := range risk.Provinces {
		provinces[p] = risk.ForecastProvince(p, daysAhead, avgTemp, avgHumidity, season)
	}

	totals := risk.NationalRollup(provinces)

	return DetailedForecast{
		ForecastPeriod:      fmt.Sprintf("%d days", daysAhead),
		ForecastDate:        forecastDate.Format("2006-01-02"),
		NationalTotals:      totals,
		ProvinceBreakdown:   provinces,
		OutbreakProbability: risk.OutbreakProbability(totals, season.Monsoon, season.PostMonsoon),
		RiskAssessment:      risk.AssessForecastRisk(totals, daysAhead),
		WeatherFactors: WeatherFactors{
			Temperature:   avgTemp,
			Humidity:      avgHumidity,
			MonsoonSeason: season.Monsoon,
			PostMonsoon:   season.PostMonsoon,
			WinterSeason:  season.Winter,
		},
	}
}

func summarizeForecasts(f14, f21 DetailedForecast) ForecastSummary {
	cases14 := f14.NationalTotals.TotalCases
	cases21 := f21.NationalTotals.TotalCases

	growth := 0.0
	if cases14 > 0 {
		growth = float64(cases21-cases14) / float64(cases14) * 100
	}

	trend := "decreasing"
	if growth > 10 {
		trend = "increasing"
	} else if growth > -10 {
		trend = "stable"
	}

	peak := "21-day forecast"
	if float64(cases14) > float64(cases21)*0.8 {
		peak = "14-day forecast"
	}

	return ForecastSummary{
		Trend:       trend,
		GrowthRate:  roundTenth(growth),
		PeakPeriod:  peak,
		Cases14Days: cases14,
		Cases21Days: cases21,
		KeyInsights: keyInsights(f14, f21),
	}
}

func keyInsights(f14, f21 DetailedForecast) []string {
	var insights []string

	prob14 := f14.OutbreakProbability.Overall.Probability
	prob21 := f21.OutbreakProbability.Overall.Probability
	if prob21 > prob14+0.1 {
		insights = append(insights, "Outbreak risk increases significantly in the 3-week timeframe")
	} else if prob14 > 0.7 {
		insights = append(insights, "High outbreak risk detected in the immediate 2-week period")
	}

	diseases := make([]string, 0, len(f14.NationalTotals.Diseases))
	for disease := range f14.NationalTotals.Diseases {
		diseases = append(diseases, disease)
	}
	sort.Strings(diseases)
	for _, disease := range diseases {
		d21, ok := f21.NationalTotals.Diseases[disease]
		if !ok {
			continue
		}
		if d21.PredictedCases-f14.NationalTotals.Diseases[disease].PredictedCases > 50 {
			insights = append(insights, fmt.Sprintf("%s cases expected to increase significantly", titleCase(disease)))
		}
	}
	return insights
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func roundTenth(f float64) float64 {
	if f < 0 {
		return float64(int(f*10-0.5)) / 10
	}
	return float64(int(f*10+0.5)) / 10
}
