package risk

import "sort"

// Provinces lists the administrative units covered by the forecast, in
// reporting order.
var Provinces = []string{"Punjab", "Sindh", "KP", "Balochistan", "ICT", "AJK", "GB"}

// provinceFactors scale national baselines by relative population weight.
var provinceFactors = map[string]float64{
	"Punjab":      1.4,
	"Sindh":       1.2,
	"KP":          0.8,
	"Balochistan": 0.4,
	"ICT":         0.3,
	"AJK":         0.2,
	"GB":          0.1,
}

// DiseaseForecast is one disease's prediction within a province forecast.
type DiseaseForecast struct {
	PredictedCases int    `json:"predicted_cases"`
	Confidence     int    `json:"confidence"`
	Trend          string `json:"trend"`
}

// ProvinceForecast is the per-province forecast for one horizon.
type ProvinceForecast struct {
	Province         string                     `json:"province"`
	Diseases         map[string]DiseaseForecast `json:"diseases"`
	TotalCases       int                        `json:"total_predicted_cases"`
	RiskLevel        string                     `json:"risk_level"`
	PopulationFactor float64                    `json:"population_factor"`
}

// SeasonFlags carry the seasonal classification of the forecast window's
// midpoint, not of today.
type SeasonFlags struct {
	Monsoon     bool
	PostMonsoon bool
	Winter      bool
}

// ForecastProvince predicts per-disease cases for one province over the
// given horizon. All baselines are calibrated to a 14-day window and
// scaled linearly for longer horizons.
func ForecastProvince(province string, daysAhead int, temp, humidity float64, season SeasonFlags) ProvinceForecast {
	factor, ok := provinceFactors[province]
	if !ok {
		factor = 0.5
	}
	scale := float64(daysAhead) / 14

	diseases := make(map[string]DiseaseForecast, 4)

	// Dengue registry data is Punjab-specific, so only Punjab gets the
	// weather-adjusted baseline and the higher confidence.
	if province == "Punjab" {
		base := 30.0
		if season.PostMonsoon {
			base = 150
		} else if season.Monsoon {
			base = 80
		}
		weather := 1.0
		if temp >= 25 && temp <= 30 && humidity > 70 {
			weather = 1.5
		}
		trend := "stable"
		if season.PostMonsoon {
			trend = "increasing"
		}
		diseases["dengue"] = DiseaseForecast{
			PredictedCases: int(base * weather * scale),
			Confidence:     85,
			Trend:          trend,
		}
	} else {
		base := 5.0
		if season.PostMonsoon {
			base = 20
		} else if season.Monsoon {
			base = 10
		}
		diseases["dengue"] = DiseaseForecast{
			PredictedCases: int(base * factor * scale),
			Confidence:     60,
			Trend:          "stable",
		}
	}

	malariaBase := 40.0
	if season.Monsoon {
		malariaBase = 100
	}
	malariaFactor := 1.0
	if humidity > 60 {
		malariaFactor = 1.3
	}
	malariaTrend := "stable"
	if season.Monsoon {
		malariaTrend = "increasing"
	}
	diseases["malaria"] = DiseaseForecast{
		PredictedCases: int(malariaBase * factor * malariaFactor * scale),
		Confidence:     75,
		Trend:          malariaTrend,
	}

	respiratoryBase := 50.0
	if season.Winter {
		respiratoryBase = 120
	}
	respiratoryFactor := 1.0
	if temp < 15 || temp > 35 {
		respiratoryFactor = 1.4
	}
	respiratoryTrend := "stable"
	if season.Winter {
		respiratoryTrend = "increasing"
	}
	diseases["respiratory"] = DiseaseForecast{
		PredictedCases: int(respiratoryBase * factor * respiratoryFactor * scale),
		Confidence:     70,
		Trend:          respiratoryTrend,
	}

	diarrhealBase := 40.0
	if season.Monsoon {
		diarrhealBase = 80
	}
	diarrhealTrend := "stable"
	if season.Monsoon {
		diarrhealTrend = "increasing"
	}
	diseases["diarrheal"] = DiseaseForecast{
		PredictedCases: int(diarrhealBase * factor * scale),
		Confidence:     65,
		Trend:          diarrhealTrend,
	}

	total := 0
	for _, d := range diseases {
		total += d.PredictedCases
	}

	return ProvinceForecast{
		Province:         province,
		Diseases:         diseases,
		TotalCases:       total,
		RiskLevel:        provinceRiskLevel(total),
		PopulationFactor: factor,
	}
}

func provinceRiskLevel(totalCases int) string {
	switch {
	case totalCases > 300:
		return "high"
	case totalCases > 150:
		return "medium"
	default:
		return "low"
	}
}

// CaseRange brackets a prediction at plus or minus twenty percent.
type CaseRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func rangeFor(cases int) CaseRange {
	return CaseRange{Min: int(float64(cases) * 0.8), Max: int(float64(cases) * 1.2)}
}

// NationalDisease is one disease's national total with its case-weighted
// confidence.
type NationalDisease struct {
	PredictedCases int       `json:"predicted_cases"`
	Confidence     int       `json:"confidence"`
	CaseRange      CaseRange `json:"case_range"`
}

// NationalTotals aggregates province forecasts into national figures.
type NationalTotals struct {
	Diseases   map[string]NationalDisease `json:"diseases"`
	TotalCases int                        `json:"total_cases"`
	CaseRange  CaseRange                  `json:"case_range"`
}

// NationalRollup sums province forecasts. Confidence per disease is
// weighted by predicted cases, defaulting to 70 when no cases are
// predicted anywhere.
func NationalRollup(provinces map[string]ProvinceForecast) NationalTotals {
	diseaseNames := map[string]struct{}{}
	for _, pf := range provinces {
		for name := range pf.Diseases {
			diseaseNames[name] = struct{}{}
		}
	}

	national := make(map[string]NationalDisease, len(diseaseNames))
	total := 0
	for name := range diseaseNames {
		cases := 0
		weighted := 0.0
		for _, pf := range provinces {
			df, ok := pf.Diseases[name]
			if !ok {
				continue
			}
			cases += df.PredictedCases
			weighted += float64(df.Confidence) * float64(df.PredictedCases)
		}
		confidence := 70
		if cases > 0 {
			confidence = int(weighted / float64(cases))
		}
		national[name] = NationalDisease{
			PredictedCases: cases,
			Confidence:     confidence,
			CaseRange:      rangeFor(cases),
		}
		total += cases
	}

	return NationalTotals{
		Diseases:   national,
		TotalCases: total,
		CaseRange:  rangeFor(total),
	}
}

// OutbreakOdds pairs a probability with its banded risk level.
type OutbreakOdds struct {
	Probability float64 `json:"probability"`
	RiskLevel   string  `json:"risk_level"`
}

// OutbreakProbabilities holds disease-level and overall outbreak odds.
type OutbreakProbabilities struct {
	Dengue  OutbreakOdds `json:"dengue_outbreak"`
	Malaria OutbreakOdds `json:"malaria_outbreak"`
	Overall OutbreakOdds `json:"overall_outbreak"`
}

// OutbreakProbability estimates outbreak odds from national case totals
// with seasonal adjustments for the vector-borne diseases.
func OutbreakProbability(totals NationalTotals, monsoon, postMonsoon bool) OutbreakProbabilities {
	base := 0.2
	if totals.TotalCases > 1000 {
		base = 0.8
	} else if totals.TotalCases > 500 {
		base = 0.5
	}

	dengue := base
	if postMonsoon {
		dengue = minFloat(0.9, base+0.3)
	} else if monsoon {
		dengue = minFloat(0.8, base+0.2)
	}

	malaria := base
	if monsoon {
		malaria = minFloat(0.8, base+0.2)
	}

	overall := dengue
	if malaria > overall {
		overall = malaria
	}

	return OutbreakProbabilities{
		Dengue:  OutbreakOdds{Probability: dengue, RiskLevel: probabilityBand(dengue)},
		Malaria: OutbreakOdds{Probability: malaria, RiskLevel: probabilityBand(malaria)},
		Overall: OutbreakOdds{Probability: overall, RiskLevel: probabilityBand(overall)},
	}
}

func probabilityBand(p float64) string {
	switch {
	case p > 0.7:
		return "high"
	case p > 0.4:
		return "medium"
	default:
		return "low"
	}
}

// ForecastRisk is the horizon-level risk assessment.
type ForecastRisk struct {
	RiskLevel        string   `json:"risk_level"`
	AlertLevel       string   `json:"alert_level"`
	DailyAverage     int      `json:"daily_average_cases"`
	PeakRiskDiseases []string `json:"peak_risk_diseases"`
	Recommendations  []string `json:"recommendations"`
}

// AssessForecastRisk bands a forecast window by its daily case average.
func AssessForecastRisk(totals NationalTotals, daysAhead int) ForecastRisk {
	dailyAvg := float64(totals.TotalCases) / float64(daysAhead)

	level, alert := "low", "monitoring"
	if dailyAvg > 50 {
		level, alert = "high", "critical"
	} else if dailyAvg > 25 {
		level, alert = "medium", "warning"
	}

	return ForecastRisk{
		RiskLevel:        level,
		AlertLevel:       alert,
		DailyAverage:     int(dailyAvg),
		PeakRiskDiseases: peakRiskDiseases(totals.Diseases),
		Recommendations:  RiskRecommendations(level),
	}
}

// peakRiskDiseases returns the up-to-three diseases with the highest
// predicted cases, each above 50 cases.
func peakRiskDiseases(diseases map[string]NationalDisease) []string {
	type entry struct {
		name  string
		cases int
	}
	entries := make([]entry, 0, len(diseases))
	for name, d := range diseases {
		entries = append(entries, entry{name, d.PredictedCases})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].cases != entries[j].cases {
			return entries[i].cases > entries[j].cases
		}
		return entries[i].name < entries[j].name
	})

	var peak []string
	for _, e := range entries {
		if len(peak) == 3 {
			break
		}
		if e.cases > 50 {
			peak = append(peak, e.name)
		}
	}
	return peak
}

// ForecastConfidence reports the standing confidence metrics of the
// forecast system.
func ForecastConfidence() map[string]any {
	return map[string]any{
		"data_quality":        85,
		"model_accuracy":      78,
		"weather_integration": 82,
		"overall_confidence":  81,
		"confidence_factors": map[string]string{
			"historical_data_depth":     "High (4+ years of NIH data)",
			"dengue_data_specificity":   "High (Punjab-specific patient records)",
			"weather_data_quality":      "High (Real-time API)",
			"seasonal_pattern_analysis": "High (Multi-year patterns)",
			"model_validation":          "Medium (Limited validation data)",
		},
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
