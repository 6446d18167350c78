package popdata

import (
	"fmt"
	"strings"
	"time"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

// susceptibility names the age groups at elevated risk per disease.
// Immunocompromised residents count toward every disease.
var susceptibility = map[string][]string{
	"dengue":      {"0-4", "65+"},
	"malaria":     {"0-4", "pregnant_women"},
	"respiratory": {"0-4", "65+"},
	"heat_stroke": {"65+", "0-4"},
}

// transmissionRates are per-30-day attack rates on the at-risk
// population, by risk tier.
var transmissionRates = map[string]map[string]float64{
	"dengue":      {"low": 0.0001, "medium": 0.0005, "high": 0.002, "critical": 0.005},
	"malaria":     {"low": 0.0002, "medium": 0.001, "high": 0.003, "critical": 0.008},
	"respiratory": {"low": 0.001, "medium": 0.005, "high": 0.015, "critical": 0.030},
	"heat_stroke": {"low": 0.00005, "medium": 0.0002, "high": 0.001, "critical": 0.003},
}

// seasonalPeaks lists high and medium transmission months per disease.
// Months outside both lists score low.
var seasonalPeaks = map[string]struct{ high, medium []time.Month }{
	"dengue":      {high: months(7, 8, 9, 10, 11), medium: months(5, 6, 12)},
	"malaria":     {high: months(6, 7, 8, 9, 10), medium: months(4, 5, 11)},
	"respiratory": {high: months(11, 12, 1, 2), medium: months(3, 10)},
	"heat_stroke": {high: months(4, 5, 6), medium: months(3, 7)},
}

var defaultPeaks = struct{ high, medium []time.Month }{
	high: months(6, 7, 8, 9), medium: months(4, 5, 10, 11),
}

func months(ms ...int) []time.Month {
	out := make([]time.Month, len(ms))
	for i, m := range ms {
		out[i] = time.Month(m)
	}
	return out
}

// PopulationRisk is the at-risk population estimate for one city and
// disease.
type PopulationRisk struct {
	City               string           `json:"city"`
	TotalPopulation    int              `json:"total_population"`
	BaseRiskPopulation int              `json:"base_risk_population"`
	RiskMultiplier     float64          `json:"risk_multiplier"`
	PovertyMultiplier  float64          `json:"poverty_multiplier"`
	FinalRiskPopulation int             `json:"final_risk_population"`
	RiskPercentage     float64          `json:"risk_percentage"`
	Vulnerable         VulnerableGroups `json:"vulnerable_breakdown"`
}

// PopulationAtRisk sizes the at-risk population for a disease in a city,
// scaled by active environmental risk factors and the city's poverty rate.
func PopulationAtRisk(cityName, disease string, riskFactors []string) (PopulationRisk, error) {
	city, ok := Lookup(cityName)
	if !ok {
		return PopulationRisk{}, fmt.Errorf("city %s not found", cityName)
	}

	base := 0
	if groups, ok := susceptibility[strings.ToLower(disease)]; ok {
		for _, g := range groups {
			switch g {
			case "0-4":
				base += city.Vulnerable.ChildrenUnder5
			case "65+":
				base += city.Vulnerable.ElderlyOver65
			case "pregnant_women":
				base += city.Vulnerable.PregnantWomen
			}
		}
		base += city.Vulnerable.Immunocompromised
	}

	multiplier := 1.0
	for _, f := range riskFactors {
		switch f {
		case "high_temperature":
			multiplier *= 1.05
		case "high_humidity":
			multiplier *= 1.03
		case "poor_sanitation":
			multiplier *= 1.1
		case "high_density":
			multiplier *= 1.02
		}
	}
	poverty := 1 + city.PovertyRate*0.1

	final := int(float64(base) * multiplier * poverty)
	if final > city.Population {
		final = city.Population
	}

	pct := float64(final) / float64(city.Population) * 100

	return PopulationRisk{
		City:                city.Name,
		TotalPopulation:     city.Population,
		BaseRiskPopulation:  base,
		RiskMultiplier:      multiplier,
		PovertyMultiplier:   poverty,
		FinalRiskPopulation: final,
		RiskPercentage:      pct,
		Vulnerable:          city.Vulnerable,
	}, nil
}

// RiskFactorsFromWeather derives active environmental risk factors from
// current conditions.
func RiskFactorsFromWeather(temperature, humidity float64) []string {
	var factors []string
	if temperature >= 40 {
		factors = append(factors, "high_temperature")
	}
	if humidity >= 70 {
		factors = append(factors, "high_humidity")
	}
	if temperature >= 35 && humidity >= 60 {
		factors = append(factors, "high_density")
	}
	return factors
}

// CaseEstimate projects disease cases in one city over three windows.
type CaseEstimate struct {
	City             string  `json:"city"`
	Disease          string  `json:"disease"`
	RiskLevel        string  `json:"risk_level"`
	PopulationAtRisk int     `json:"population_at_risk"`
	TransmissionRate float64 `json:"transmission_rate"`
	Cases7Days       int     `json:"estimated_cases_7_days"`
	Cases30Days      int     `json:"estimated_cases_30_days"`
	Cases90Days      int     `json:"estimated_cases_90_days"`
	Confidence       string  `json:"confidence_level"`
}

// EstimateCases projects cases for a disease in a city from the current
// weather and a risk tier. The 30-day window carries the base attack
// rate; 7 and 90 day windows scale from it.
func EstimateCases(cityName, disease string, temperature, humidity float64, riskLevel string) (CaseEstimate, error) {
	popRisk, err := PopulationAtRisk(cityName, disease, RiskFactorsFromWeather(temperature, humidity))
	if err != nil {
		return CaseEstimate{}, err
	}

	key := strings.ToLower(disease)
	rates, ok := transmissionRates[key]
	if !ok {
		key = "respiratory"
		rates = transmissionRates[key]
	}
	base, ok := rates[strings.ToLower(riskLevel)]
	if !ok {
		base = 0.005
	}

	now := domain.Now()
	rate := base *
		weatherMultiplier(key, temperature, humidity) *
		seasonalMultiplier(key, now.Month()) *
		dailyVariability(now.Day())

	atRisk := float64(popRisk.FinalRiskPopulation)

	return CaseEstimate{
		City:             popRisk.City,
		Disease:          disease,
		RiskLevel:        riskLevel,
		PopulationAtRisk: popRisk.FinalRiskPopulation,
		TransmissionRate: rate,
		Cases7Days:       int(atRisk * rate * 0.3),
		Cases30Days:      int(atRisk * rate),
		Cases90Days:      int(atRisk * rate * 2.5),
		Confidence:       confidenceLevel(riskLevel, weatherMultiplier(key, temperature, humidity)),
	}, nil
}

func seasonalMultiplier(disease string, month time.Month) float64 {
	peaks, ok := seasonalPeaks[disease]
	if !ok {
		peaks = defaultPeaks
	}
	for _, m := range peaks.high {
		if m == month {
			return 1.5
		}
	}
	for _, m := range peaks.medium {
		if m == month {
			return 1.0
		}
	}
	return 0.6
}

func weatherMultiplier(disease string, temperature, humidity float64) float64 {
	switch disease {
	case "dengue":
		switch {
		case temperature >= 25 && temperature <= 35 && humidity >= 60 && humidity <= 80:
			return 1.5
		case temperature > 35 || humidity > 80:
			return 1.2
		case temperature < 25 || humidity < 60:
			return 0.7
		}
	case "malaria":
		switch {
		case temperature >= 20 && temperature <= 30 && humidity >= 60:
			return 1.4
		case temperature > 30 && humidity >= 60:
			return 1.1
		case humidity < 60:
			return 0.6
		}
	case "respiratory":
		switch {
		case temperature >= 40 || temperature <= 10:
			return 1.6
		case humidity < 40:
			return 1.3
		}
	case "heat_stroke":
		switch {
		case temperature >= 45:
			return 3.0
		case temperature >= 42:
			return 2.0
		case temperature >= 38:
			return 1.3
		}
	}
	return 1.0
}

// dailyVariability perturbs the rate by the day of month, spanning
// 0.9 to about 1.08.
func dailyVariability(day int) float64 {
	return 0.9 + float64(day%10)/50.0
}

func confidenceLevel(riskLevel string, weatherMult float64) string {
	base := 0.75
	switch strings.ToLower(riskLevel) {
	case "low":
		base = 0.7
	case "medium":
		base = 0.8
	case "high":
		base = 0.85
	case "critical":
		base = 0.9
	}

	adjustment := -0.1
	if weatherMult >= 0.8 && weatherMult <= 1.5 {
		adjustment = 0.05
	}

	final := base + adjustment
	if final < 0.6 {
		final = 0.6
	}
	if final > 0.95 {
		final = 0.95
	}

	switch {
	case final >= 0.85:
		return "High"
	case final >= 0.75:
		return "Medium"
	default:
		return "Low"
	}
}
