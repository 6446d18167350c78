// Package risk is the deterministic outbreak scorer. Every function is pure
// arithmetic over current conditions; all thresholds, case bases, and
// multipliers are calibration data carried in tables so recalibration is a
// table edit, not a logic change.
//
// Three scoring horizons are produced:
//
//   - 30-day per-disease outlooks (Outlooks)
//   - immediate 24h/72h city risk (AssessCityRisks and the Estimate*Cases helpers)
//   - province-level 14/21-day forecasts (ForecastProvince and the national rollup)
package risk
