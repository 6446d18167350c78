package risk

import (
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// Outlook is one disease's 30-day outlook, in its outward shape.
type Outlook struct {
	Disease         string            `json:"disease"`
	Location        string            `json:"location"`
	RiskLevel       string            `json:"risk_level"`
	PredictedCases  int               `json:"predicted_cases"`
	Confidence      float64           `json:"confidence"`
	Recommendations []string          `json:"recommendations"`
	PeakPeriod      string            `json:"peak_period"`
	Factors         map[string]string `json:"factors,omitempty"`
}

// prediction is the internal result of one disease scorer before outward
// formatting attaches the display name, location, and confidence.
type prediction struct {
	risk    string
	cases   int
	factors map[string]string
	peak    string
	recs    []string
}

// Outlooks scores all seven diseases for the given conditions. highRisk is
// the current high-risk city list; vector-borne outlooks are located at the
// first flagged city with a matching primary concern.
func Outlooks(c domain.Conditions, highRisk []HighRiskCity) []Outlook {
	monsoon := domain.IsMonsoon(c.Month)
	postMonsoon := domain.IsPostMonsoon(c.Month)

	locate := func(concern string) string {
		for _, city := range highRisk {
			if city.PrimaryConcern == concern && (city.RiskLevel == "high" || city.RiskLevel == "very_high") {
				return city.City
			}
		}
		return "National"
	}

	type entry struct {
		disease    string
		confidence float64
		location   string
		pred       prediction
	}

	entries := []entry{
		{"Dengue Fever", 0.85, locate("dengue"), dengueOutbreak(c.Temperature, c.Humidity, postMonsoon, monsoon)},
		{"Malaria", 0.80, locate("malaria"), malariaOutbreak(c.Temperature, c.Humidity, monsoon)},
		{"Respiratory Infections", 0.75, locate("respiratory"), respiratoryOutbreak(c.Temperature, c.Month)},
		{"Cholera", 0.90, "Flood-affected areas", choleraOutbreak(c.Temperature, c.Humidity, monsoon)},
		{"Typhoid", 0.85, "Monsoon-affected areas", typhoidOutbreak(c.Temperature, c.Humidity, monsoon)},
		{"Hepatitis A", 0.80, "Poor sanitation areas", hepatitisOutbreak(c.Temperature, c.Humidity, monsoon)},
		{"Diarrheal Diseases", 0.95, "Flood-affected areas", diarrhealOutbreak(c.Temperature, c.Humidity, monsoon)},
	}

	outlooks := make([]Outlook, 0, len(entries))
	for _, e := range entries {
		outlooks = append(outlooks, Outlook{
			Disease:         e.disease,
			Location:        e.location,
			RiskLevel:       e.pred.risk,
			PredictedCases:  e.pred.cases,
			Confidence:      e.confidence,
			Recommendations: e.pred.recs,
			PeakPeriod:      e.pred.peak,
			Factors:         e.pred.factors,
		})
	}
	return outlooks
}

// dengueOutbreak scores dengue: the vector thrives at 25-30°C with humidity
// above 70%, peaking post-monsoon.
func dengueOutbreak(temp, humidity float64, postMonsoon, monsoon bool) prediction {
	tempRisk := tier(temp >= 25 && temp <= 30, temp >= 20 && temp <= 35)
	humidityRisk := tier(humidity > 70, humidity > 50)
	seasonalRisk := "medium"
	if postMonsoon {
		seasonalRisk = "very_high"
	} else if monsoon {
		seasonalRisk = "high"
	}

	elevated := 0
	for _, r := range []string{tempRisk, humidityRisk, seasonalRisk} {
		if r == "high" || r == "very_high" {
			elevated++
		}
	}

	var level string
	var cases float64
	switch {
	case elevated >= 2:
		level = "high"
		cases = 180 + (temp-25)*15 + (humidity-60)*2
	case elevated >= 1:
		level = "medium"
		cases = 90 + (temp-25)*8 + (humidity-60)*1
	default:
		level = "low"
		cases = 30 + (temp-25)*3
	}

	return prediction{
		risk:  level,
		cases: clampCases(cases),
		factors: map[string]string{
			"temperature": tempRisk,
			"humidity":    humidityRisk,
			"seasonal":    seasonalRisk,
		},
		peak: "September-November (Post-monsoon)",
		recs: dengueRecommendations(level),
	}
}

func malariaOutbreak(temp, humidity float64, monsoon bool) prediction {
	tempRisk := tier(temp >= 20 && temp <= 30, temp >= 15 && temp <= 35)
	humidityRisk := tier(humidity > 60, humidity > 40)
	seasonalRisk := "medium"
	if monsoon {
		seasonalRisk = "high"
	}

	high := 0
	for _, r := range []string{tempRisk, humidityRisk, seasonalRisk} {
		if r == "high" {
			high++
		}
	}

	var level string
	var cases float64
	switch {
	case high >= 2:
		level = "high"
		cases = 250 + (humidity-50)*3
	case high >= 1:
		level = "medium"
		cases = 120 + (humidity-50)*1.5
	default:
		level = "low"
		cases = 50
	}

	return prediction{
		risk:  level,
		cases: clampCases(cases),
		factors: map[string]string{
			"temperature": tempRisk,
			"humidity":    humidityRisk,
			"seasonal":    seasonalRisk,
		},
		peak: "June-September (Monsoon season)",
		recs: malariaRecommendations(level),
	}
}

func respiratoryOutbreak(temp float64, month time.Month) prediction {
	seasonalRisk := "low"
	if domain.IsWinter(month) {
		seasonalRisk = "high"
	}
	tempRisk := tier(temp < 15 || temp > 35, temp < 20 || temp > 30)

	var level string
	var cases float64
	if seasonalRisk == "high" || tempRisk == "high" {
		level = "high"
		if temp > 35 {
			cases = 200 + (35-temp)*5
		} else {
			cases = 150
		}
	} else {
		level = "low"
		cases = 60
	}

	return prediction{
		risk:  level,
		cases: clampCases(cases),
		factors: map[string]string{
			"temperature": tempRisk,
			"seasonal":    seasonalRisk,
		},
		peak: "December-March (Winter season)",
		recs: respiratoryRecommendations(level),
	}
}

func choleraOutbreak(temp, humidity float64, monsoon bool) prediction {
	floodRisk := "low"
	if monsoon && humidity > 80 {
		floodRisk = "high"
	} else if monsoon {
		floodRisk = "medium"
	}
	tempRisk := tier(temp >= 20 && temp <= 35, temp >= 15 && temp <= 40)

	var level string
	var cases float64
	switch {
	case floodRisk == "high" && (tempRisk == "high" || tempRisk == "medium"):
		level = "critical"
		cases = 120 + (humidity-70)*3
	case floodRisk == "medium" || tempRisk == "high":
		level = "high"
		cases = 60 + (humidity-60)*2
	default:
		level = "low"
		cases = 15
	}

	return prediction{
		risk:  level,
		cases: clampCases(cases),
		factors: map[string]string{
			"flood":       floodRisk,
			"temperature": tempRisk,
		},
		peak: "During and immediately after monsoon floods",
		recs: choleraRecommendations(level),
	}
}

func typhoidOutbreak(temp, humidity float64, monsoon bool) prediction {
	waterRisk := "low"
	if monsoon && humidity > 75 {
		waterRisk = "high"
	} else if monsoon {
		waterRisk = "medium"
	}
	tempRisk := tier(temp >= 25 && temp <= 35, temp >= 20 && temp <= 40)

	var level string
	var cases float64
	switch {
	case waterRisk == "high" && (tempRisk == "high" || tempRisk == "medium"):
		level = "high"
		cases = 80 + (humidity-65)*2
	case waterRisk == "medium" || tempRisk == "high":
		level = "medium"
		cases = 40 + (humidity-55)*1
	default:
		level = "low"
		cases = 10
	}

	return prediction{
		risk:  level,
		cases: clampCases(cases),
		factors: map[string]string{
			"water_contamination": waterRisk,
			"temperature":         tempRisk,
		},
		peak: "Monsoon season with poor sanitation",
		recs: typhoidRecommendations(level),
	}
}

func hepatitisOutbreak(temp, humidity float64, monsoon bool) prediction {
	sanitationRisk := "low"
	if monsoon && humidity > 80 {
		sanitationRisk = "high"
	} else if monsoon {
		sanitationRisk = "medium"
	}
	tempRisk := "medium"
	if temp >= 20 && temp <= 35 {
		tempRisk = "high"
	}

	var level string
	var cases float64
	switch sanitationRisk {
	case "high":
		level = "high"
		cases = 50 + (humidity-70)*1.5
	case "medium":
		level = "medium"
		cases = 25 + (humidity-60)*0.8
	default:
		level = "low"
		cases = 8
	}

	return prediction{
		risk:  level,
		cases: clampCases(cases),
		factors: map[string]string{
			"sanitation":  sanitationRisk,
			"temperature": tempRisk,
		},
		peak: "Post-flood period with poor sanitation",
		recs: hepatitisRecommendations(level),
	}
}

func diarrhealOutbreak(temp, humidity float64, monsoon bool) prediction {
	contaminationRisk := "medium"
	if monsoon && humidity > 85 {
		contaminationRisk = "critical"
	} else if monsoon {
		contaminationRisk = "high"
	}
	tempRisk := "medium"
	if temp >= 25 && temp <= 35 {
		tempRisk = "high"
	}

	var level string
	var cases float64
	switch contaminationRisk {
	case "critical":
		level = "critical"
		cases = 200 + (humidity-80)*4
	case "high":
		level = "high"
		cases = 100 + (humidity-70)*2
	default:
		level = "medium"
		cases = 40
	}

	return prediction{
		risk:  level,
		cases: clampCases(cases),
		factors: map[string]string{
			"contamination": contaminationRisk,
			"temperature":   tempRisk,
		},
		peak: "During monsoon floods and immediate aftermath",
		recs: diarrhealRecommendations(level),
	}
}

// HighRiskCity is a city flagged by its current weather conditions.
type HighRiskCity struct {
	City           string  `json:"city"`
	RiskLevel      string  `json:"risk_level"`
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	PrimaryConcern string  `json:"primary_concern"`
	ActionNeeded   string  `json:"action_needed"`
}

// HighRiskCities flags cities whose current conditions put dengue risk at
// high or above.
func HighRiskCities(cities []domain.CityWeather) []HighRiskCity {
	var flagged []HighRiskCity
	for _, cw := range cities {
		level := CityDengueRisk(cw.Temperature, cw.Humidity)
		if level != "high" && level != "very_high" {
			continue
		}

		concern := "malaria"
		if cw.Humidity > 70 {
			concern = "dengue"
		}
		action := "monitoring"
		if level == "very_high" {
			action = "immediate"
		}

		flagged = append(flagged, HighRiskCity{
			City:           cw.City,
			RiskLevel:      level,
			Temperature:    cw.Temperature,
			Humidity:       cw.Humidity,
			PrimaryConcern: concern,
			ActionNeeded:   action,
		})
	}
	return flagged
}

// CityDengueRisk bands a city's dengue risk from temperature and humidity.
func CityDengueRisk(temp, humidity float64) string {
	switch {
	case temp >= 25 && temp <= 30 && humidity > 75:
		return "very_high"
	case temp >= 23 && temp <= 32 && humidity > 65:
		return "high"
	case temp >= 20 && temp <= 35 && humidity > 50:
		return "medium"
	default:
		return "low"
	}
}

// PredictionConfidence scores outlook confidence: seasonal patterns are
// best studied during monsoon and for typical weather.
func PredictionConfidence(c domain.Conditions) int {
	confidence := 75
	if domain.IsMonsoon(c.Month) {
		confidence += 15
	}
	if c.Temperature >= 20 && c.Temperature <= 35 && c.Humidity >= 40 && c.Humidity <= 90 {
		confidence += 10
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}

// WeatherContext summarizes the conditions behind an outlook set.
type WeatherContext struct {
	Temperature       float64 `json:"current_temperature"`
	Humidity          float64 `json:"current_humidity"`
	MonsoonSeason     bool    `json:"monsoon_season"`
	PostMonsoonSeason bool    `json:"post_monsoon_season"`
	SeasonRiskFactor  string  `json:"season_risk_factor"`
	FloodRisk         string  `json:"flood_risk"`
}

// ContextFor derives the weather context for a set of conditions.
func ContextFor(c domain.Conditions) WeatherContext {
	monsoon := domain.IsMonsoon(c.Month)
	postMonsoon := domain.IsPostMonsoon(c.Month)

	season := "medium"
	if monsoon {
		season = "critical"
	} else if postMonsoon {
		season = "high"
	}

	flood := "low"
	if monsoon && c.Humidity > 80 {
		flood = "high"
	} else if monsoon {
		flood = "medium"
	}

	return WeatherContext{
		Temperature:       c.Temperature,
		Humidity:          c.Humidity,
		MonsoonSeason:     monsoon,
		PostMonsoonSeason: postMonsoon,
		SeasonRiskFactor:  season,
		FloodRisk:         flood,
	}
}

// tier maps a pair of nested conditions to high/medium/low.
func tier(high, medium bool) string {
	if high {
		return "high"
	}
	if medium {
		return "medium"
	}
	return "low"
}

func clampCases(cases float64) int {
	if cases < 0 {
		return 0
	}
	return int(cases)
}
