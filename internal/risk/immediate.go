package risk

import (
	"sort"
	"strings"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// majorCities are the cities screened for short-horizon alerts, in
// screening order.
var majorCities = []string{
	"Karachi", "Lahore", "Islamabad", "Rawalpindi",
	"Faisalabad", "Multan", "Peshawar", "Quetta",
}

// threatOrder fixes tie-breaking when two diseases share the top score:
// the earlier entry wins.
var threatOrder = []string{
	"Dengue Fever", "Malaria", "Respiratory Infections", "Flood-related Diseases",
}

// CityRisk is one city's short-horizon risk assessment.
type CityRisk struct {
	City             string             `json:"city"`
	UrgencyLevel     string             `json:"urgency_level"`
	PrimaryThreat    string             `json:"primary_threat"`
	RiskScore        float64            `json:"risk_score"`
	Temperature      float64            `json:"temperature"`
	Humidity         float64            `json:"humidity"`
	SpecificRisks    map[string]float64 `json:"specific_risks"`
	ImmediateActions []string           `json:"immediate_actions"`
}

// AssessCityRisks screens the major cities against their current weather.
// Cities without a reading fall back to the national averages. Only cities
// at high urgency or above are returned, highest risk first.
func AssessCityRisks(cities map[string]domain.CityWeather, avgTemp, avgHumidity float64, monsoon, postMonsoon bool) []CityRisk {
	var flagged []CityRisk
	for _, name := range majorCities {
		temp, humidity := avgTemp, avgHumidity
		airQuality := "moderate"
		precipitation := 0.0
		if cw, ok := cities[name]; ok {
			temp = cw.Temperature
			humidity = cw.Humidity
			if cw.AirQuality != "" {
				airQuality = cw.AirQuality
			}
			precipitation = cw.Precipitation
		}

		dengue := ImmediateDengueRisk(temp, humidity, postMonsoon)
		malaria := ImmediateMalariaRisk(temp, humidity, monsoon)
		respiratory := ImmediateRespiratoryRisk(temp, airQuality)
		flood := FloodDiseaseRisk(humidity, monsoon, precipitation)

		maxRisk := dengue
		for _, r := range []float64{malaria, respiratory, flood} {
			if r > maxRisk {
				maxRisk = r
			}
		}
		urgency := UrgencyLevel(maxRisk)
		if urgency != "critical" && urgency != "very_high" && urgency != "high" {
			continue
		}

		flagged = append(flagged, CityRisk{
			City:          name,
			UrgencyLevel:  urgency,
			PrimaryThreat: PrimaryThreat(dengue, malaria, respiratory, flood),
			RiskScore:     maxRisk,
			Temperature:   temp,
			Humidity:      humidity,
			SpecificRisks: map[string]float64{
				"dengue":         dengue,
				"malaria":        malaria,
				"respiratory":    respiratory,
				"flood_diseases": flood,
			},
			ImmediateActions: ImmediateActions(urgency, name),
		})
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].RiskScore > flagged[j].RiskScore
	})
	return flagged
}

// ImmediateDengueRisk scores 24-hour dengue risk in [0, 1]. Vector
// activity peaks at 25-30°C with humidity above 70%.
func ImmediateDengueRisk(temp, humidity float64, postMonsoon bool) float64 {
	score := 0.0
	if temp >= 25 && temp <= 30 {
		score += 0.4
	} else if temp >= 22 && temp <= 33 {
		score += 0.2
	}
	if humidity > 70 {
		score += 0.3
	} else if humidity > 60 {
		score += 0.2
	}
	if postMonsoon {
		score += 0.3
	}
	return capScore(score)
}

// ImmediateMalariaRisk scores 24-hour malaria risk in [0, 1].
func ImmediateMalariaRisk(temp, humidity float64, monsoon bool) float64 {
	score := 0.0
	if temp >= 20 && temp <= 30 {
		score += 0.3
	} else if temp >= 18 && temp <= 32 {
		score += 0.2
	}
	if humidity > 60 {
		score += 0.3
	} else if humidity > 50 {
		score += 0.2
	}
	if monsoon {
		score += 0.4
	}
	return capScore(score)
}

// ImmediateRespiratoryRisk scores 24-hour respiratory infection risk in
// [0, 1] from temperature extremes and air quality.
func ImmediateRespiratoryRisk(temp float64, airQuality string) float64 {
	score := 0.0
	if temp < 15 {
		score += 0.4
	} else if temp < 20 {
		score += 0.3
	} else if temp > 35 {
		score += 0.2
	}

	switch strings.ToLower(airQuality) {
	case "poor":
		score += 0.4
	case "unhealthy":
		score += 0.3
	case "moderate":
		score += 0.2
	case "good":
		score += 0.1
	default:
		score += 0.2
	}
	return capScore(score)
}

// FloodDiseaseRisk scores 24-hour flood-related disease risk in [0, 1].
func FloodDiseaseRisk(humidity float64, monsoon bool, precipitation float64) float64 {
	score := 0.0
	if humidity > 80 {
		score += 0.3
	} else if humidity > 70 {
		score += 0.2
	}
	if monsoon {
		score += 0.4
	}
	if precipitation > 50 {
		score += 0.3
	} else if precipitation > 20 {
		score += 0.2
	}
	return capScore(score)
}

// UrgencyLevel bands a risk score into an urgency tier.
func UrgencyLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "critical"
	case score >= 0.6:
		return "very_high"
	case score >= 0.4:
		return "high"
	case score >= 0.2:
		return "medium"
	default:
		return "low"
	}
}

// PrimaryThreat names the disease with the highest score. Ties resolve in
// favor of the earlier disease in threatOrder.
func PrimaryThreat(dengue, malaria, respiratory, flood float64) string {
	scores := map[string]float64{
		"Dengue Fever":           dengue,
		"Malaria":                malaria,
		"Respiratory Infections": respiratory,
		"Flood-related Diseases": flood,
	}
	best := threatOrder[0]
	for _, disease := range threatOrder[1:] {
		if scores[disease] > scores[best] {
			best = disease
		}
	}
	return best
}

// Estimate24hCases estimates new cases over the next 24 hours for the
// given primary threat.
func Estimate24hCases(score float64, disease string) int {
	base := 20.0
	switch disease {
	case "Dengue Fever":
		base = 20
	case "Malaria":
		base = 15
	case "Respiratory Infections":
		base = 30
	case "Flood-related Diseases":
		base = 25
	}
	return int(base * score * 1.5)
}

// Estimate72hCases estimates new cases over the next 72 hours.
func Estimate72hCases(score float64, disease string) int {
	base := 60.0
	switch disease {
	case "Dengue Fever":
		base = 60
	case "Malaria":
		base = 45
	case "Respiratory Infections":
		base = 90
	case "Flood-related Diseases":
		base = 75
	}
	return int(base * score * 2.0)
}

// AlertLevel24h maps urgency to the 24-hour alert banner.
func AlertLevel24h(urgency string) string {
	if urgency == "critical" {
		return "CRITICAL"
	}
	return "HIGH"
}

// AlertLevel72h maps urgency to the 72-hour alert banner.
func AlertLevel72h(urgency string) string {
	switch urgency {
	case "critical":
		return "CRITICAL"
	case "very_high":
		return "HIGH"
	case "high":
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// RiskFactors24h lists the conditions driving a city's 24-hour alert.
func RiskFactors24h(city CityRisk, avgHumidity float64) []string {
	var factors []string
	if city.Temperature > 28 && city.Humidity > 70 {
		factors = append(factors, "Optimal conditions for vector breeding")
	}
	if city.PrimaryThreat == "Dengue Fever" {
		factors = append(factors, "Peak dengue transmission conditions")
	}
	if avgHumidity > 80 {
		factors = append(factors, "High humidity promoting disease spread")
	}
	return factors
}

// RiskProgression projects how a city's risk moves over 72 hours.
func RiskProgression(city CityRisk, monsoon bool) string {
	if monsoon && (city.PrimaryThreat == "Dengue Fever" || city.PrimaryThreat == "Malaria") {
		if city.RiskScore > 0.5 {
			return "Increasing"
		}
		return "Stable"
	}
	if city.PrimaryThreat == "Respiratory Infections" {
		if city.RiskScore < 0.7 {
			return "Stable"
		}
		return "Increasing"
	}
	return "Stable"
}

// ImmediateRiskFactor summarizes the overall short-horizon risk climate.
func ImmediateRiskFactor(temp, humidity float64, monsoon bool) string {
	switch {
	case monsoon && humidity > 75 && temp >= 25 && temp <= 30:
		return "critical"
	case (humidity > 70 && temp >= 22 && temp <= 32) || monsoon:
		return "high"
	case humidity > 60 || temp < 15 || temp > 35:
		return "medium"
	default:
		return "low"
	}
}

func capScore(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	return s
}
