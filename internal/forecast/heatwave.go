package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
	"github.com/ishhu840/Odon-PakAI/internal/popdata"
)

// analysisOrder fixes the rendering order of the per-city disease bands.
var analysisOrder = []string{"dengue", "malaria", "respiratory", "heat_stroke"}

var diseaseDisplay = map[string]string{
	"dengue":      "Dengue",
	"malaria":     "Malaria",
	"respiratory": "Respiratory",
	"heat_stroke": "Heat Stroke",
}

// DiseaseBand is one disease's weather-band classification for a city.
type DiseaseBand struct {
	RiskLevel string   `json:"risk_level"`
	Factors   []string `json:"factors"`
}

// HeatIndex approximates felt temperature from dry-bulb temperature and
// relative humidity.
func HeatIndex(temp, humidity float64) float64 {
	return temp + 0.5*(humidity/100)*(temp-14)
}

// AnalyzeCityDiseases bands the four weather-sensitive disease risks for
// one city's conditions.
func AnalyzeCityDiseases(temp, humidity float64) map[string]DiseaseBand {
	return map[string]DiseaseBand{
		"dengue":      {RiskLevel: dengueBand(temp, humidity), Factors: dengueFactors(temp, humidity)},
		"malaria":     {RiskLevel: malariaBand(temp, humidity), Factors: malariaFactors(temp, humidity)},
		"respiratory": {RiskLevel: respiratoryBand(temp, humidity), Factors: respiratoryFactors(temp, humidity)},
		"heat_stroke": {RiskLevel: heatStrokeBand(temp, humidity), Factors: heatStrokeFactors(temp, humidity)},
	}
}

// dengueBand: vector window 25-35°C with humidity over 60%, critical at
// 40°C or 85% humidity.
func dengueBand(temp, humidity float64) string {
	if temp < 25 || temp > 35 || humidity < 60 {
		return "low"
	}
	switch {
	case temp >= 40 || humidity >= 85:
		return "critical"
	case humidity >= 80:
		return "high"
	default:
		return "medium"
	}
}

func malariaBand(temp, humidity float64) string {
	if temp < 20 || temp > 30 || humidity < 60 {
		return "low"
	}
	switch {
	case temp >= 35 || humidity >= 95:
		return "critical"
	case humidity >= 90:
		return "high"
	default:
		return "medium"
	}
}

func respiratoryBand(temp, humidity float64) string {
	switch {
	case temp >= 40 || temp <= 10 || humidity <= 30:
		return "high"
	case temp >= 35 || temp <= 15:
		return "medium"
	default:
		return "low"
	}
}

func heatStrokeBand(temp, humidity float64) string {
	hi := HeatIndex(temp, humidity)
	switch {
	case hi >= 45:
		return "extreme"
	case hi >= 42:
		return "critical"
	case hi >= 38:
		return "high"
	default:
		return "low"
	}
}

func dengueFactors(temp, humidity float64) []string {
	var f []string
	if temp >= 25 {
		f = append(f, fmt.Sprintf("Optimal temperature for mosquito breeding (%.1f°C)", temp))
	}
	if humidity >= 60 {
		f = append(f, fmt.Sprintf("High humidity supports vector survival (%.0f%%)", humidity))
	}
	if temp >= 30 && humidity >= 70 {
		f = append(f, "Combined high temperature and humidity accelerate virus replication")
	}
	return f
}

func malariaFactors(temp, humidity float64) []string {
	var f []string
	if temp >= 20 && temp <= 30 {
		f = append(f, fmt.Sprintf("Temperature range supports parasite development (%.1f°C)", temp))
	}
	if humidity >= 60 {
		f = append(f, fmt.Sprintf("High humidity extends mosquito lifespan (%.0f%%)", humidity))
	}
	if humidity >= 80 {
		f = append(f, "Very high humidity creates ideal breeding conditions")
	}
	return f
}

func respiratoryFactors(temp, humidity float64) []string {
	var f []string
	if temp >= 40 {
		f = append(f, fmt.Sprintf("Extreme heat stress on respiratory system (%.1f°C)", temp))
	}
	if temp <= 10 {
		f = append(f, fmt.Sprintf("Cold weather increases respiratory infection risk (%.1f°C)", temp))
	}
	if humidity <= 30 {
		f = append(f, fmt.Sprintf("Low humidity dries respiratory passages (%.0f%%)", humidity))
	}
	return f
}

func heatStrokeFactors(temp, humidity float64) []string {
	var f []string
	if temp >= 38 {
		f = append(f, fmt.Sprintf("High ambient temperature (%.1f°C)", temp))
	}
	if hi := HeatIndex(temp, humidity); hi >= 40 {
		f = append(f, fmt.Sprintf("Dangerous heat index (%.1f°C)", hi))
	}
	if humidity >= 70 {
		f = append(f, fmt.Sprintf("High humidity impairs cooling (%.0f%%)", humidity))
	}
	return f
}

// OverallAlertLevel collapses a city's disease bands into one level.
func OverallAlertLevel(analysis map[string]DiseaseBand) string {
	has := map[string]bool{}
	for _, band := range analysis {
		has[band.RiskLevel] = true
	}
	switch {
	case has["extreme"] || has["critical"]:
		return "critical"
	case has["high"]:
		return "high"
	case has["medium"]:
		return "medium"
	default:
		return "low"
	}
}

// CompositeRiskScore is a 0-100 score from raw conditions scaled by how
// many disease bands are elevated.
func CompositeRiskScore(temp, humidity float64, analysis map[string]DiseaseBand) float64 {
	base := (temp-25)*2 + (humidity-30)*1.5
	if base > 100 {
		base = 100
	}
	if base < 0 {
		base = 0
	}

	multiplier := 1.0
	for _, band := range analysis {
		switch band.RiskLevel {
		case "extreme":
			multiplier += 0.5
		case "critical":
			multiplier += 0.3
		case "high":
			multiplier += 0.2
		case "medium":
			multiplier += 0.1
		}
	}

	score := base * multiplier
	if score > 100 {
		score = 100
	}
	return score
}

// PredictedDisease is one elevated disease with its population impact.
type PredictedDisease struct {
	Disease          string   `json:"disease"`
	RiskLevel        string   `json:"risk_level"`
	PopulationAtRisk int      `json:"population_at_risk"`
	EstimatedCases30 int      `json:"estimated_cases_30_days"`
	Factors          []string `json:"factors"`
}

// HeatwaveCity is one city's entry in the heatwave view.
type HeatwaveCity struct {
	City             string             `json:"city"`
	Temperature      float64            `json:"temperature"`
	Humidity         float64            `json:"humidity"`
	Population       int                `json:"population"`
	RiskLevel        string             `json:"risk_level"`
	DiseaseRiskScore float64            `json:"disease_risk_score"`
	PopulationAtRisk int                `json:"population_at_risk"`
	EstimatedCases30 int                `json:"estimated_cases_30_days"`
	Predicted        []PredictedDisease `json:"predicted_diseases"`
	Lat              float64            `json:"lat"`
	Lon              float64            `json:"lon"`
	IsOnAlert        bool               `json:"is_on_alert"`
	AlertReasons     []string           `json:"alert_reasons"`
}

// NationalStatistics aggregates the heatwave view across cities.
type NationalStatistics struct {
	TotalPopulation       int     `json:"total_population"`
	TotalPopulationAtRisk int     `json:"total_population_at_risk"`
	TotalEstimatedCases30 int     `json:"total_estimated_cases_30_days"`
	RiskPercentage        float64 `json:"risk_percentage"`
	AverageTemperature    float64 `json:"average_temperature"`
	AverageHumidity       float64 `json:"average_humidity"`
	AverageRiskScore      float64 `json:"average_risk_score"`
	CitiesMonitored       int     `json:"cities_monitored"`
}

// HeatwaveSummary totals the alerting cities.
type HeatwaveSummary struct {
	TotalCitiesMonitored  int    `json:"total_cities_monitored"`
	CitiesOnAlert         int    `json:"cities_on_alert"`
	HighestRiskCity       string `json:"highest_risk_city,omitempty"`
	TotalPopulationAtRisk int    `json:"total_population_at_risk"`
	TotalEstimatedCases   int    `json:"total_estimated_cases"`
}

// HeatwaveData is the heatwave endpoint payload.
type HeatwaveData struct {
	Cities             []HeatwaveCity     `json:"cities"`
	CitiesOnAlert      []HeatwaveCity     `json:"cities_on_alert"`
	NationalStatistics NationalStatistics `json:"national_statistics"`
	LastUpdated        string             `json:"last_updated"`
	AlertSummary       HeatwaveSummary    `json:"alert_summary"`
}

// BuildHeatwaveData combines current city weather with the population
// directory into the heatwave view.
func BuildHeatwaveData(snapshot domain.WeatherSnapshot) HeatwaveData {
	var cities []HeatwaveCity
	var onAlert []HeatwaveCity

	for _, cw := range snapshot.Cities {
		analysis := AnalyzeCityDiseases(cw.Temperature, cw.Humidity)
		alertLevel := OverallAlertLevel(analysis)

		var predicted []PredictedDisease
		atRisk, estimated := 0, 0
		for _, disease := range analysisOrder {
			band := analysis[disease]
			if band.RiskLevel == "low" {
				continue
			}
			pop, err := popdata.PopulationAtRisk(cw.City, disease, popdata.RiskFactorsFromWeather(cw.Temperature, cw.Humidity))
			if err != nil {
				continue
			}
			est, err := popdata.EstimateCases(cw.City, disease, cw.Temperature, cw.Humidity, band.RiskLevel)
			if err != nil {
				continue
			}
			predicted = append(predicted, PredictedDisease{
				Disease:          diseaseDisplay[disease],
				RiskLevel:        titleCase(band.RiskLevel),
				PopulationAtRisk: pop.FinalRiskPopulation,
				EstimatedCases30: est.Cases30Days,
				Factors:          band.Factors,
			})
			atRisk += pop.FinalRiskPopulation
			estimated += est.Cases30Days
		}

		population := 0
		if city, ok := popdata.Lookup(cw.City); ok {
			population = city.Population
		}

		alert := alertLevel == "high" || alertLevel == "critical" || cw.Temperature >= 38
		if !alert {
			for _, p := range predicted {
				if p.RiskLevel == "High" || p.RiskLevel == "Critical" || p.RiskLevel == "Extreme" {
					alert = true
					break
				}
			}
		}

		entry := HeatwaveCity{
			City:             cw.City,
			Temperature:      cw.Temperature,
			Humidity:         cw.Humidity,
			Population:       population,
			RiskLevel:        strings.ToUpper(alertLevel),
			DiseaseRiskScore: roundTenth(CompositeRiskScore(cw.Temperature, cw.Humidity, analysis)),
			PopulationAtRisk: atRisk,
			EstimatedCases30: estimated,
			Predicted:        predicted,
			Lat:              cw.Lat,
			Lon:              cw.Lon,
			IsOnAlert:        alert,
			AlertReasons:     alertReasons(cw.Temperature, cw.Humidity, predicted),
		}
		cities = append(cities, entry)
		if alert {
			onAlert = append(onAlert, entry)
		}
	}

	return HeatwaveData{
		Cities:             cities,
		CitiesOnAlert:      onAlert,
		NationalStatistics: nationalStatistics(cities),
		LastUpdated:        domain.Now().Format(time.RFC3339),
		AlertSummary:       heatwaveSummary(cities, onAlert),
	}
}

func alertReasons(temp, humidity float64, predicted []PredictedDisease) []string {
	var reasons []string
	if temp >= 42 {
		reasons = append(reasons, fmt.Sprintf("Extreme temperature: %.1f°C", temp))
	} else if temp >= 38 {
		reasons = append(reasons, fmt.Sprintf("High temperature: %.1f°C", temp))
	}
	if humidity >= 70 {
		reasons = append(reasons, fmt.Sprintf("High humidity: %.0f%%", humidity))
	}

	var highRisk []string
	for _, p := range predicted {
		if p.RiskLevel == "High" || p.RiskLevel == "Critical" || p.RiskLevel == "Extreme" {
			highRisk = append(highRisk, p.Disease)
		}
	}
	if len(highRisk) > 0 {
		reasons = append(reasons, "High disease risk: "+strings.Join(highRisk, ", "))
	}
	return reasons
}

func nationalStatistics(cities []HeatwaveCity) NationalStatistics {
	if len(cities) == 0 {
		return NationalStatistics{}
	}

	var stats NationalStatistics
	var sumTemp, sumHumidity, sumScore float64
	for _, c := range cities {
		stats.TotalPopulation += c.Population
		stats.TotalPopulationAtRisk += c.PopulationAtRisk
		stats.TotalEstimatedCases30 += c.EstimatedCases30
		sumTemp += c.Temperature
		sumHumidity += c.Humidity
		sumScore += c.DiseaseRiskScore
	}

	n := float64(len(cities))
	if stats.TotalPopulation > 0 {
		stats.RiskPercentage = roundHundredth(float64(stats.TotalPopulationAtRisk) / float64(stats.TotalPopulation) * 100)
	}
	stats.AverageTemperature = roundTenth(sumTemp / n)
	stats.AverageHumidity = roundTenth(sumHumidity / n)
	stats.AverageRiskScore = roundTenth(sumScore / n)
	stats.CitiesMonitored = len(cities)
	return stats
}

func heatwaveSummary(cities, onAlert []HeatwaveCity) HeatwaveSummary {
	s := HeatwaveSummary{
		TotalCitiesMonitored: len(cities),
		CitiesOnAlert:        len(onAlert),
	}
	for _, c := range cities {
		s.TotalPopulationAtRisk += c.PopulationAtRisk
		s.TotalEstimatedCases += c.EstimatedCases30
	}

	if len(cities) > 0 {
		ranked := make([]HeatwaveCity, len(cities))
		copy(ranked, cities)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].DiseaseRiskScore > ranked[j].DiseaseRiskScore
		})
		s.HighestRiskCity = ranked[0].City
	}
	return s
}

func roundHundredth(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
