package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastProvince(t *testing.T) {
	t.Run("punjab dengue gets weather adjusted baseline", func(t *testing.T) {
		season := SeasonFlags{PostMonsoon: true}
		pf := ForecastProvince("Punjab", 14, 27, 75, season)

		dengue := pf.Diseases["dengue"]
		assert.Equal(t, 225, dengue.PredictedCases) // 150 * 1.5
		assert.Equal(t, 85, dengue.Confidence)
		assert.Equal(t, "increasing", dengue.Trend)

		malaria := pf.Diseases["malaria"]
		assert.Equal(t, 72, malaria.PredictedCases) // 40 * 1.4 * 1.3
		assert.Equal(t, "stable", malaria.Trend)

		assert.Equal(t, 70, pf.Diseases["respiratory"].PredictedCases)
		assert.Equal(t, 56, pf.Diseases["diarrheal"].PredictedCases)
		assert.Equal(t, 423, pf.TotalCases)
		assert.Equal(t, "high", pf.RiskLevel)
		assert.Equal(t, 1.4, pf.PopulationFactor)
	})

	t.Run("other provinces use the low dengue baseline", func(t *testing.T) {
		season := SeasonFlags{Monsoon: true}
		pf := ForecastProvince("GB", 14, 27, 75, season)

		dengue := pf.Diseases["dengue"]
		assert.Equal(t, 1, dengue.PredictedCases) // 10 * 0.1
		assert.Equal(t, 60, dengue.Confidence)
		assert.Equal(t, "stable", dengue.Trend)
		assert.Equal(t, 0.1, pf.PopulationFactor)
	})

	t.Run("unknown province falls back to half weight", func(t *testing.T) {
		pf := ForecastProvince("Unknown", 14, 22, 50, SeasonFlags{})
		assert.Equal(t, 0.5, pf.PopulationFactor)
	})

	t.Run("longer horizon scales linearly", func(t *testing.T) {
		season := SeasonFlags{Monsoon: true}
		pf14 := ForecastProvince("Sindh", 14, 28, 70, season)
		pf21 := ForecastProvince("Sindh", 21, 28, 70, season)
		assert.Greater(t, pf21.TotalCases, pf14.TotalCases)
	})

	t.Run("winter drives respiratory trend", func(t *testing.T) {
		pf := ForecastProvince("Punjab", 14, 10, 40, SeasonFlags{Winter: true})
		resp := pf.Diseases["respiratory"]
		assert.Equal(t, "increasing", resp.Trend)
		assert.Equal(t, 235, resp.PredictedCases) // 120 * 1.4 * 1.4
	})
}

func TestNationalRollup(t *testing.T) {
	provinces := map[string]ProvinceForecast{
		"Punjab": {Diseases: map[string]DiseaseForecast{
			"dengue": {PredictedCases: 200, Confidence: 85},
		}},
		"Sindh": {Diseases: map[string]DiseaseForecast{
			"dengue":  {PredictedCases: 100, Confidence: 60},
			"malaria": {PredictedCases: 0, Confidence: 75},
		}},
	}
	totals := NationalRollup(provinces)

	dengue := totals.Diseases["dengue"]
	assert.Equal(t, 300, dengue.PredictedCases)
	// (85*200 + 60*100) / 300
	assert.Equal(t, 76, dengue.Confidence)
	assert.Equal(t, CaseRange{Min: 240, Max: 360}, dengue.CaseRange)

	malaria := totals.Diseases["malaria"]
	assert.Equal(t, 0, malaria.PredictedCases)
	assert.Equal(t, 70, malaria.Confidence)

	assert.Equal(t, 300, totals.TotalCases)
	assert.Equal(t, CaseRange{Min: 240, Max: 360}, totals.CaseRange)
}

func TestOutbreakProbability(t *testing.T) {
	t.Run("post-monsoon heavy caseload caps dengue at point nine", func(t *testing.T) {
		totals := NationalTotals{TotalCases: 1200}
		odds := OutbreakProbability(totals, false, true)
		assert.Equal(t, 0.9, odds.Dengue.Probability)
		assert.Equal(t, "high", odds.Dengue.RiskLevel)
		assert.Equal(t, 0.8, odds.Malaria.Probability)
		assert.Equal(t, 0.9, odds.Overall.Probability)
	})

	t.Run("post-monsoon lifts dengue above a quiet baseline", func(t *testing.T) {
		totals := NationalTotals{TotalCases: 100}
		odds := OutbreakProbability(totals, false, true)
		assert.InDelta(t, 0.5, odds.Dengue.Probability, 1e-9)
		assert.Equal(t, "medium", odds.Dengue.RiskLevel)
		assert.InDelta(t, 0.2, odds.Malaria.Probability, 1e-9)
		assert.Equal(t, "medium", odds.Overall.RiskLevel)
	})

	t.Run("quiet season keeps the base", func(t *testing.T) {
		totals := NationalTotals{TotalCases: 100}
		odds := OutbreakProbability(totals, false, false)
		assert.Equal(t, 0.2, odds.Dengue.Probability)
		assert.Equal(t, "low", odds.Overall.RiskLevel)
	})
}

func TestAssessForecastRisk(t *testing.T) {
	t.Run("high daily average goes critical", func(t *testing.T) {
		totals := NationalTotals{
			TotalCases: 800,
			Diseases: map[string]NationalDisease{
				"dengue":      {PredictedCases: 400},
				"malaria":     {PredictedCases: 250},
				"respiratory": {PredictedCases: 120},
				"diarrheal":   {PredictedCases: 30},
			},
		}
		risk := AssessForecastRisk(totals, 14)
		assert.Equal(t, "high", risk.RiskLevel)
		assert.Equal(t, "critical", risk.AlertLevel)
		assert.Equal(t, 57, risk.DailyAverage)
		assert.Equal(t, []string{"dengue", "malaria", "respiratory"}, risk.PeakRiskDiseases)
		require.NotEmpty(t, risk.Recommendations)
	})

	t.Run("peak diseases require more than fifty cases", func(t *testing.T) {
		totals := NationalTotals{
			TotalCases: 90,
			Diseases: map[string]NationalDisease{
				"dengue":  {PredictedCases: 60},
				"malaria": {PredictedCases: 30},
			},
		}
		risk := AssessForecastRisk(totals, 14)
		assert.Equal(t, "low", risk.RiskLevel)
		assert.Equal(t, "monitoring", risk.AlertLevel)
		assert.Equal(t, []string{"dengue"}, risk.PeakRiskDiseases)
	})
}

func TestForecastConfidence(t *testing.T) {
	c := ForecastConfidence()
	assert.Equal(t, 81, c["overall_confidence"])
	assert.Equal(t, 85, c["data_quality"])
}
