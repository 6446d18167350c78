// Package forecast assembles the outward JSON payloads from the scorer,
// the weather snapshot, and the population directory. Every builder has a
// fallback counterpart with literal sample values so the API always
// renders something.
package forecast

import (
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/risk"
)

const outbreakDataSource = "Historical Analysis (NIH 2021-2025, Dengue 2011-2023) + Current Weather + Monsoon Flood Risk"

// OutbreakPredictions is the 30-day outlook payload.
type OutbreakPredictions struct {
	Predictions     []risk.Outlook      `json:"predictions"`
	ModelConfidence int                 `json:"model_confidence"`
	DataSource      string              `json:"data_source"`
	LastUpdated     string              `json:"last_updated"`
	WeatherContext  risk.WeatherContext `json:"weather_context"`
	HighRiskCities  []risk.HighRiskCity `json:"high_risk_cities"`
}

// BuildOutbreakPredictions scores all diseases against the snapshot's
// national conditions. A snapshot carrying an error (the gateway
// fallback) yields the seasonal fallback payload instead.
func BuildOutbreakPredictions(snapshot domain.WeatherSnapshot) OutbreakPredictions {
	if snapshot.Error != "" || len(snapshot.Cities) == 0 {
		return FallbackOutbreakPredictions()
	}

	c := domain.DefaultConditions()
	c.Temperature = snapshot.National.AvgTemperature
	c.Humidity = snapshot.National.AvgHumidity

	highRisk := risk.HighRiskCities(snapshot.Cities)
	if highRisk == nil {
		highRisk = []risk.HighRiskCity{}
	}

	return OutbreakPredictions{
		Predictions:     risk.Outlooks(c, highRisk),
		ModelConfidence: risk.PredictionConfidence(c),
		DataSource:      outbreakDataSource,
		LastUpdated:     domain.Now().Format(time.RFC3339),
		WeatherContext:  risk.ContextFor(c),
		HighRiskCities:  highRisk,
	}
}
