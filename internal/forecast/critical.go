package forecast

import (
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/risk"
)

// Alert24h is one city's 24-hour critical alert.
type Alert24h struct {
	City             string   `json:"city"`
	AlertLevel       string   `json:"alert_level"`
	PrimaryDisease   string   `json:"primary_disease"`
	EstimatedCases   int      `json:"estimated_cases_24h"`
	Confidence       float64  `json:"confidence"`
	ImmediateActions []string `json:"immediate_actions"`
	Timeframe        string   `json:"timeframe"`
	RiskFactors      []string `json:"risk_factors"`
}

// Alert72h is one city's 72-hour alert.
type Alert72h struct {
	City               string   `json:"city"`
	AlertLevel         string   `json:"alert_level"`
	PrimaryDisease     string   `json:"primary_disease"`
	EstimatedCases     int      `json:"estimated_cases_72h"`
	Confidence         float64  `json:"confidence"`
	RecommendedActions []string `json:"recommended_actions"`
	Timeframe          string   `json:"timeframe"`
	RiskProgression    string   `json:"risk_progression"`
}

// AlertSummary totals the outstanding alerts.
type AlertSummary struct {
	Critical24h             int    `json:"total_critical_alerts_24h"`
	High24h                 int    `json:"total_high_alerts_24h"`
	Critical72h             int    `json:"total_critical_alerts_72h"`
	High72h                 int    `json:"total_high_alerts_72h"`
	HighestPriorityCity     string `json:"highest_priority_city,omitempty"`
	TotalCitiesAtRisk       int    `json:"total_cities_at_risk"`
	ImmediateActionRequired bool   `json:"immediate_action_required"`
}

// CriticalContext is the weather context attached to the alert payload.
type CriticalContext struct {
	Temperature         float64 `json:"current_temperature"`
	Humidity            float64 `json:"current_humidity"`
	MonsoonSeason       bool    `json:"monsoon_season"`
	PostMonsoonSeason   bool    `json:"post_monsoon_season"`
	ImmediateRiskFactor string  `json:"immediate_risk_factor"`
}

// CriticalAlerts is the 24h/72h alert payload.
type CriticalAlerts struct {
	Alerts struct {
		Hours24 []Alert24h `json:"24_hours"`
		Hours72 []Alert72h `json:"72_hours"`
	} `json:"critical_alerts"`
	HighPriorityCities []risk.CityRisk `json:"high_priority_cities"`
	WeatherContext     CriticalContext `json:"weather_context"`
	Summary            AlertSummary    `json:"alert_summary"`
	LastUpdated        string          `json:"last_updated"`
	NextUpdate         string          `json:"next_update"`
}

// BuildCriticalAlerts screens the major cities and assembles the short
// horizon alert payload. A gateway fallback snapshot yields the literal
// fallback payload instead.
func BuildCriticalAlerts(snapshot domain.WeatherSnapshot) CriticalAlerts {
	if snapshot.Error != "" {
		return FallbackCriticalAlerts()
	}

	now := domain.Now()
	month := now.Month()
	monsoon := domain.IsMonsoon(month)
	postMonsoon := domain.IsPostMonsoon(month)

	avgTemp := snapshot.National.AvgTemperature
	avgHumidity := snapshot.National.AvgHumidity
	if len(snapshot.Cities) == 0 {
		avgTemp, avgHumidity = 25, 60
	}

	byCity := make(map[string]domain.CityWeather, len(snapshot.Cities))
	for _, cw := range snapshot.Cities {
		byCity[cw.City] = cw
	}

	cityRisks := risk.AssessCityRisks(byCity, avgTemp, avgHumidity, monsoon, postMonsoon)

	var alerts24 []Alert24h
	var alerts72 []Alert72h
	var highPriority []risk.CityRisk
	for _, cr := range cityRisks {
		if cr.UrgencyLevel == "critical" || cr.UrgencyLevel == "very_high" {
			highPriority = append(highPriority, cr)
			alerts24 = append(alerts24, Alert24h{
				City:             cr.City,
				AlertLevel:       risk.AlertLevel24h(cr.UrgencyLevel),
				PrimaryDisease:   cr.PrimaryThreat,
				EstimatedCases:   risk.Estimate24hCases(cr.RiskScore, cr.PrimaryThreat),
				Confidence:       0.92,
				ImmediateActions: cr.ImmediateActions,
				Timeframe:        "24 hours",
				RiskFactors:      risk.RiskFactors24h(cr, avgHumidity),
			})
		}
		alerts72 = append(alerts72, Alert72h{
			City:               cr.City,
			AlertLevel:         risk.AlertLevel72h(cr.UrgencyLevel),
			PrimaryDisease:     cr.PrimaryThreat,
			EstimatedCases:     risk.Estimate72hCases(cr.RiskScore, cr.PrimaryThreat),
			Confidence:         0.88,
			RecommendedActions: risk.Actions72h(cr.UrgencyLevel, cr.City),
			Timeframe:          "72 hours",
			RiskProgression:    risk.RiskProgression(cr, monsoon),
		})
	}

	out := CriticalAlerts{
		HighPriorityCities: highPriority,
		WeatherContext: CriticalContext{
			Temperature:         avgTemp,
			Humidity:            avgHumidity,
			MonsoonSeason:       monsoon,
			PostMonsoonSeason:   postMonsoon,
			ImmediateRiskFactor: risk.ImmediateRiskFactor(avgTemp, avgHumidity, monsoon),
		},
		Summary:     summarizeAlerts(alerts24, alerts72),
		LastUpdated: now.Format(time.RFC3339),
		NextUpdate:  now.Add(6 * time.Hour).Format(time.RFC3339),
	}
	out.Alerts.Hours24 = alerts24
	out.Alerts.Hours72 = alerts72
	return out
}

func summarizeAlerts(alerts24 []Alert24h, alerts72 []Alert72h) AlertSummary {
	var s AlertSummary
	cities := map[string]struct{}{}

	for _, a := range alerts24 {
		cities[a.City] = struct{}{}
		switch a.AlertLevel {
		case "CRITICAL":
			s.Critical24h++
		case "HIGH":
			s.High24h++
		}
	}
	for _, a := range alerts72 {
		cities[a.City] = struct{}{}
		switch a.AlertLevel {
		case "CRITICAL":
			s.Critical72h++
		case "HIGH":
			s.High72h++
		}
	}

	if len(alerts24) > 0 {
		s.HighestPriorityCity = alerts24[0].City
	} else if len(alerts72) > 0 {
		s.HighestPriorityCity = alerts72[0].City
	}
	s.TotalCitiesAtRisk = len(cities)
	s.ImmediateActionRequired = s.Critical24h > 0 || s.High24h > 0
	return s
}
