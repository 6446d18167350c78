package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishhu840/Odon-PakAI/internal/domain"
)

func TestImmediateRiskScores(t *testing.T) {
	t.Run("dengue saturates in post-monsoon heat", func(t *testing.T) {
		assert.Equal(t, 1.0, ImmediateDengueRisk(27, 75, true))
	})
	t.Run("dengue partial credit at band edges", func(t *testing.T) {
		assert.InDelta(t, 0.4, ImmediateDengueRisk(23, 62, false), 1e-9)
	})
	t.Run("malaria capped at one", func(t *testing.T) {
		assert.Equal(t, 1.0, ImmediateMalariaRisk(25, 80, true))
	})
	t.Run("respiratory cold plus poor air", func(t *testing.T) {
		assert.InDelta(t, 0.8, ImmediateRespiratoryRisk(12, "poor"), 1e-9)
	})
	t.Run("respiratory unknown air quality defaults moderate", func(t *testing.T) {
		assert.InDelta(t, 0.2, ImmediateRespiratoryRisk(25, "hazy"), 1e-9)
	})
	t.Run("flood risk from rain and monsoon", func(t *testing.T) {
		assert.Equal(t, 1.0, FloodDiseaseRisk(85, true, 60))
		assert.InDelta(t, 0.2, FloodDiseaseRisk(72, false, 5), 1e-9)
	})
}

func TestUrgencyLevel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.85, "critical"},
		{0.8, "critical"},
		{0.7, "very_high"},
		{0.5, "high"},
		{0.3, "medium"},
		{0.1, "low"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UrgencyLevel(tc.score), "score %v", tc.score)
	}
}

func TestPrimaryThreat(t *testing.T) {
	t.Run("highest score wins", func(t *testing.T) {
		assert.Equal(t, "Flood-related Diseases", PrimaryThreat(0.3, 0.4, 0.2, 0.9))
	})
	t.Run("ties resolve to dengue first", func(t *testing.T) {
		assert.Equal(t, "Dengue Fever", PrimaryThreat(0.5, 0.5, 0.5, 0.5))
	})
	t.Run("malaria beats later ties", func(t *testing.T) {
		assert.Equal(t, "Malaria", PrimaryThreat(0.2, 0.6, 0.6, 0.6))
	})
}

func TestCaseEstimates(t *testing.T) {
	assert.Equal(t, 30, Estimate24hCases(1.0, "Dengue Fever"))
	assert.Equal(t, 27, Estimate24hCases(0.6, "Respiratory Infections"))
	assert.Equal(t, 120, Estimate72hCases(1.0, "Dengue Fever"))
	assert.Equal(t, 90, Estimate72hCases(0.6, "Flood-related Diseases"))
	assert.Equal(t, 30, Estimate24hCases(1.0, "Unknown"))
}

func TestAssessCityRisks(t *testing.T) {
	t.Run("hot humid city leads the list", func(t *testing.T) {
		cities := map[string]domain.CityWeather{
			"Lahore": {City: "Lahore", Temperature: 28, Humidity: 80},
		}
		flagged := AssessCityRisks(cities, 22, 40, false, true)
		require.NotEmpty(t, flagged)

		top := flagged[0]
		assert.Equal(t, "Lahore", top.City)
		assert.Equal(t, "critical", top.UrgencyLevel)
		assert.Equal(t, 1.0, top.RiskScore)
		assert.Equal(t, "Dengue Fever", top.PrimaryThreat)
		assert.NotEmpty(t, top.ImmediateActions)

		// Remaining cities fall back to national averages and share a score.
		for _, c := range flagged[1:] {
			assert.Equal(t, "high", c.UrgencyLevel)
			assert.InDelta(t, 0.5, c.RiskScore, 1e-9)
		}
	})

	t.Run("calm conditions flag nothing", func(t *testing.T) {
		flagged := AssessCityRisks(nil, 22, 40, false, false)
		assert.Empty(t, flagged)
	})
}

func TestAlertLevels(t *testing.T) {
	assert.Equal(t, "CRITICAL", AlertLevel24h("critical"))
	assert.Equal(t, "HIGH", AlertLevel24h("very_high"))
	assert.Equal(t, "CRITICAL", AlertLevel72h("critical"))
	assert.Equal(t, "HIGH", AlertLevel72h("very_high"))
	assert.Equal(t, "MEDIUM", AlertLevel72h("high"))
	assert.Equal(t, "LOW", AlertLevel72h("medium"))
}

func TestRiskFactors24h(t *testing.T) {
	city := CityRisk{Temperature: 30, Humidity: 78, PrimaryThreat: "Dengue Fever"}
	factors := RiskFactors24h(city, 85)
	assert.Equal(t, []string{
		"Optimal conditions for vector breeding",
		"Peak dengue transmission conditions",
		"High humidity promoting disease spread",
	}, factors)

	assert.Empty(t, RiskFactors24h(CityRisk{Temperature: 20, Humidity: 50, PrimaryThreat: "Malaria"}, 60))
}

func TestRiskProgression(t *testing.T) {
	t.Run("monsoon vector risk above half increases", func(t *testing.T) {
		city := CityRisk{PrimaryThreat: "Dengue Fever", RiskScore: 0.7}
		assert.Equal(t, "Increasing", RiskProgression(city, true))
	})
	t.Run("respiratory stays stable below point seven", func(t *testing.T) {
		city := CityRisk{PrimaryThreat: "Respiratory Infections", RiskScore: 0.5}
		assert.Equal(t, "Stable", RiskProgression(city, true))
	})
	t.Run("flood diseases default stable", func(t *testing.T) {
		city := CityRisk{PrimaryThreat: "Flood-related Diseases", RiskScore: 0.9}
		assert.Equal(t, "Stable", RiskProgression(city, false))
	})
}

func TestImmediateRiskFactor(t *testing.T) {
	assert.Equal(t, "critical", ImmediateRiskFactor(28, 80, true))
	assert.Equal(t, "high", ImmediateRiskFactor(25, 75, false))
	assert.Equal(t, "high", ImmediateRiskFactor(10, 30, true))
	assert.Equal(t, "medium", ImmediateRiskFactor(40, 30, false))
	assert.Equal(t, "low", ImmediateRiskFactor(22, 40, false))
}
