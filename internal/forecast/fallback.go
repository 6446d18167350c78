package forecast

import (
	"fmt"
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/risk"
)

// Fallback payloads carry literal seasonal values so the API keeps
// rendering when weather data or the scorer inputs are unavailable. The
// figures match the historical seasonal baselines.

// FallbackOutbreakPredictions is the seasonal-patterns-only outlook.
func FallbackOutbreakPredictions() OutbreakPredictions {
	now := domain.Now()
	month := now.Month()
	postMonsoon := domain.IsPostMonsoon(month)
	monsoonPeak := month >= time.June && month <= time.September
	winter := domain.IsWinter(month)

	dengueLevel, dengueCases := "low", 30
	if postMonsoon {
		dengueLevel, dengueCases = "medium", 90
	}
	malariaLevel, malariaCases := "low", 50
	if monsoonPeak {
		malariaLevel, malariaCases = "medium", 120
	}
	respLevel, respCases := "low", 60
	if winter {
		respLevel, respCases = "high", 150
	}

	return OutbreakPredictions{
		Predictions: []risk.Outlook{
			{
				Disease:         "Dengue Fever",
				Location:        "Rawalpindi",
				RiskLevel:       dengueLevel,
				PredictedCases:  dengueCases,
				Confidence:      0.75,
				Recommendations: []string{"Monitor vector breeding sites", "Increase surveillance"},
				PeakPeriod:      "September-November (Post-monsoon)",
			},
			{
				Disease:         "Malaria",
				Location:        "National",
				RiskLevel:       malariaLevel,
				PredictedCases:  malariaCases,
				Confidence:      0.70,
				Recommendations: []string{"Distribute bed nets", "Vector control measures"},
				PeakPeriod:      "June-September (Monsoon season)",
			},
			{
				Disease:         "Respiratory Infections",
				Location:        "Lahore",
				RiskLevel:       respLevel,
				PredictedCases:  respCases,
				Confidence:      0.80,
				Recommendations: []string{"Air quality monitoring", "Vaccination campaigns"},
				PeakPeriod:      "December-March (Winter season)",
			},
		},
		ModelConfidence: 65,
		DataSource:      "Historical Seasonal Patterns (NIH 2021-2025, Dengue 2011-2023)",
		LastUpdated:     now.Format(time.RFC3339),
		WeatherContext:  risk.WeatherContext{SeasonRiskFactor: "medium", FloodRisk: "low"},
		HighRiskCities: []risk.HighRiskCity{
			{City: "Rawalpindi", RiskLevel: "high", PrimaryConcern: "dengue"},
			{City: "Lahore", RiskLevel: "medium", PrimaryConcern: "respiratory"},
		},
	}
}

// FallbackCriticalAlerts is the standing minimal alert set.
func FallbackCriticalAlerts() CriticalAlerts {
	now := domain.Now()

	out := CriticalAlerts{
		HighPriorityCities: []risk.CityRisk{},
		Summary: AlertSummary{
			Critical24h:         0,
			High24h:             1,
			High72h:             0,
			HighestPriorityCity: "Rawalpindi",
			TotalCitiesAtRisk:   2,
			ImmediateActionRequired: true,
		},
		LastUpdated: now.Format(time.RFC3339),
		NextUpdate:  now.Add(6 * time.Hour).Format(time.RFC3339),
	}
	out.Alerts.Hours24 = []Alert24h{
		{
			City:             "Rawalpindi",
			AlertLevel:       "HIGH",
			PrimaryDisease:   "Dengue Fever",
			EstimatedCases:   15,
			Confidence:       0.75,
			ImmediateActions: []string{"Deploy rapid response teams", "Increase surveillance"},
			Timeframe:        "24 hours",
		},
	}
	out.Alerts.Hours72 = []Alert72h{
		{
			City:               "Lahore",
			AlertLevel:         "MEDIUM",
			PrimaryDisease:     "Respiratory Infections",
			EstimatedCases:     45,
			Confidence:         0.70,
			RecommendedActions: []string{"Air quality monitoring", "Public health advisories"},
			Timeframe:          "72 hours",
		},
	}
	return out
}

// fallbackProvinceShare distributes the national fallback caseload.
var fallbackProvinceShare = []struct {
	name  string
	share float64
}{
	{"Punjab", 0.45},
	{"Sindh", 0.25},
	{"KP", 0.15},
	{"Balochistan", 0.10},
	{"ICT", 0.05},
}

// FallbackComprehensiveForecasts is a seasonal-baseline forecast used
// when the live inputs are unavailable.
func FallbackComprehensiveForecasts() ComprehensiveForecasts {
	now := domain.Now()
	month := now.Month()

	base14 := 100
	if domain.IsPostMonsoon(month) {
		base14 = 200
	} else if month >= time.June && month <= time.August {
		base14 = 150
	}
	base21 := int(float64(base14) * 1.3)

	f14 := fallbackDetailedForecast(14, base14, now)
	f21 := fallbackDetailedForecast(21, base21, now)

	return ComprehensiveForecasts{
		Forecast14Days: f14,
		Forecast21Days: f21,
		Summary:        summarizeForecasts(f14, f21),
		ConfidenceMetrics: map[string]any{
			"data_quality":        60,
			"model_accuracy":      60,
			"weather_integration": 0,
			"overall_confidence":  60,
		},
		DataSources: map[string]string{
			"nih_data":         "Weekly reports 2021-2025",
			"dengue_data":      "Punjab patient records 2011-2023",
			"weather_data":     "Unavailable (seasonal baseline)",
			"prediction_model": "Seasonal patterns only",
		},
		LastUpdated: now.Format(time.RFC3339),
	}
}

func fallbackDetailedForecast(daysAhead, baseCases int, now time.Time) DetailedForecast {
	forecastDate := now.AddDate(0, 0, daysAhead)

	provinces := make(map[string]risk.ProvinceForecast, len(fallbackProvinceShare))
	for _, p := range fallbackProvinceShare {
		cases := int(float64(baseCases) * p.share)
		level := "low"
		if float64(cases) > float64(baseCases)*0.25 {
			level = "medium"
		}
		provinces[p.name] = risk.ProvinceForecast{
			Province: p.name,
			Diseases: map[string]risk.DiseaseForecast{
				"dengue":      {PredictedCases: int(float64(cases) * 0.4), Confidence: 60, Trend: "stable"},
				"malaria":     {PredictedCases: int(float64(cases) * 0.3), Confidence: 60, Trend: "stable"},
				"respiratory": {PredictedCases: int(float64(cases) * 0.3), Confidence: 60, Trend: "stable"},
			},
			TotalCases:       cases,
			RiskLevel:        level,
			PopulationFactor: p.share,
		}
	}

	totals := risk.NationalRollup(provinces)

	return DetailedForecast{
		ForecastPeriod:      fmt.Sprintf("%d days", daysAhead),
		ForecastDate:        forecastDate.Format("2006-01-02"),
		NationalTotals:      totals,
		ProvinceBreakdown:   provinces,
		OutbreakProbability: risk.OutbreakProbability(totals, domain.IsMonsoon(forecastDate.Month()), domain.IsPostMonsoon(forecastDate.Month())),
		RiskAssessment:      risk.AssessForecastRisk(totals, daysAhead),
	}
}
