package model

import (
	"fmt"
	"time"

	"github.com/sajari/regression"
)

// TrendDiagnostic summarizes the linear trend of daily case counts over the
// training window. It is reported with model info, not used for scoring.
type TrendDiagnostic struct {
	SlopePerDay float64 `json:"slope_per_day"`
	Intercept   float64 `json:"intercept"`
	R2          float64 `json:"r2"`
}

// CaseTrend fits ordinary least squares to case counts against days since
// the first observation.
func CaseTrend(dates []time.Time, cases []float64) (TrendDiagnostic, error) {
	if len(dates) < 2 || len(dates) != len(cases) {
		return TrendDiagnostic{}, fmt.Errorf("need at least two dated observations, got %d", len(dates))
	}

	r := new(regression.Regression)
	r.SetObserved("daily cases")
	r.SetVar(0, "days since start")

	start := dates[0]
	for i, d := range dates {
		days := d.Sub(start).Hours() / 24
		r.Train(regression.DataPoint(cases[i], []float64{days}))
	}
	if err := r.Run(); err != nil {
		return TrendDiagnostic{}, fmt.Errorf("fit case trend: %w", err)
	}

	return TrendDiagnostic{
		SlopePerDay: r.Coeff(1),
		Intercept:   r.Coeff(0),
		R2:          r.R2,
	}, nil
}
