// Package popdata is a static demographic directory for the monitored
// Pakistani cities. Figures are 2023 census-based estimates and feed the
// population-at-risk and case-estimate calculations behind the heatwave
// and outbreak views.
package popdata

import "strings"

// VulnerableGroups breaks out the sub-populations at elevated risk.
type VulnerableGroups struct {
	ChildrenUnder5   int `json:"children_under_5"`
	ElderlyOver65    int `json:"elderly_over_65"`
	PregnantWomen    int `json:"pregnant_women"`
	Immunocompromised int `json:"immunocompromised"`
}

// City is one entry in the directory.
type City struct {
	Name                 string           `json:"name"`
	Province             string           `json:"province"`
	Population           int              `json:"population"`
	UrbanPopulation      int              `json:"urban_population"`
	RuralPopulation      int              `json:"rural_population"`
	AreaKM2              int              `json:"area_km2"`
	DensityPerKM2        int              `json:"density_per_km2"`
	Lat                  float64          `json:"lat"`
	Lon                  float64          `json:"lng"`
	Vulnerable           VulnerableGroups `json:"vulnerable_groups"`
	HealthcareFacilities int              `json:"healthcare_facilities"`
	PovertyRate          float64          `json:"poverty_rate"`
}

var cities = map[string]City{
	"karachi": {
		Name: "Karachi", Province: "Sindh",
		Population: 16094000, UrbanPopulation: 15500000, RuralPopulation: 594000,
		AreaKM2: 3780, DensityPerKM2: 4258, Lat: 24.8607, Lon: 67.0011,
		Vulnerable:           VulnerableGroups{1770000, 644000, 320000, 480000},
		HealthcareFacilities: 450, PovertyRate: 0.28,
	},
	"lahore": {
		Name: "Lahore", Province: "Punjab",
		Population: 13541000, UrbanPopulation: 12800000, RuralPopulation: 741000,
		AreaKM2: 1772, DensityPerKM2: 7642, Lat: 31.5204, Lon: 74.3587,
		Vulnerable:           VulnerableGroups{1490000, 542000, 270000, 405000},
		HealthcareFacilities: 380, PovertyRate: 0.22,
	},
	"islamabad": {
		Name: "Islamabad", Province: "Federal Capital",
		Population: 2364000, UrbanPopulation: 2200000, RuralPopulation: 164000,
		AreaKM2: 906, DensityPerKM2: 2609, Lat: 33.6844, Lon: 73.0479,
		Vulnerable:           VulnerableGroups{260000, 95000, 47000, 71000},
		HealthcareFacilities: 85, PovertyRate: 0.15,
	},
	"rawalpindi": {
		Name: "Rawalpindi", Province: "Punjab",
		Population: 2098000, UrbanPopulation: 1950000, RuralPopulation: 148000,
		AreaKM2: 5286, DensityPerKM2: 397, Lat: 33.5651, Lon: 73.0169,
		Vulnerable:           VulnerableGroups{231000, 84000, 42000, 63000},
		HealthcareFacilities: 75, PovertyRate: 0.18,
	},
	"faisalabad": {
		Name: "Faisalabad", Province: "Punjab",
		Population: 3875000, UrbanPopulation: 3600000, RuralPopulation: 275000,
		AreaKM2: 5856, DensityPerKM2: 662, Lat: 31.4504, Lon: 73.1350,
		Vulnerable:           VulnerableGroups{426000, 155000, 77000, 116000},
		HealthcareFacilities: 120, PovertyRate: 0.25,
	},
	"multan": {
		Name: "Multan", Province: "Punjab",
		Population: 2196000, UrbanPopulation: 2000000, RuralPopulation: 196000,
		AreaKM2: 3721, DensityPerKM2: 590, Lat: 30.1575, Lon: 71.5249,
		Vulnerable:           VulnerableGroups{242000, 88000, 44000, 66000},
		HealthcareFacilities: 95, PovertyRate: 0.24,
	},
	"peshawar": {
		Name: "Peshawar", Province: "Khyber Pakhtunkhwa",
		Population: 2269000, UrbanPopulation: 2100000, RuralPopulation: 169000,
		AreaKM2: 1257, DensityPerKM2: 1805, Lat: 34.0151, Lon: 71.5249,
		Vulnerable:           VulnerableGroups{250000, 91000, 45000, 68000},
		HealthcareFacilities: 80, PovertyRate: 0.32,
	},
	"quetta": {
		Name: "Quetta", Province: "Balochistan",
		Population: 1565000, UrbanPopulation: 1400000, RuralPopulation: 165000,
		AreaKM2: 2653, DensityPerKM2: 590, Lat: 30.1798, Lon: 66.9750,
		Vulnerable:           VulnerableGroups{172000, 63000, 31000, 47000},
		HealthcareFacilities: 45, PovertyRate: 0.38,
	},
	"hyderabad": {
		Name: "Hyderabad", Province: "Sindh",
		Population: 1732000, UrbanPopulation: 1600000, RuralPopulation: 132000,
		AreaKM2: 1022, DensityPerKM2: 1695, Lat: 25.3960, Lon: 68.3578,
		Vulnerable:           VulnerableGroups{191000, 69000, 35000, 52000},
		HealthcareFacilities: 65, PovertyRate: 0.30,
	},
	"gujranwala": {
		Name: "Gujranwala", Province: "Punjab",
		Population: 2027000, UrbanPopulation: 1850000, RuralPopulation: 177000,
		AreaKM2: 3622, DensityPerKM2: 560, Lat: 32.1877, Lon: 74.1945,
		Vulnerable:           VulnerableGroups{223000, 81000, 40000, 61000},
		HealthcareFacilities: 70, PovertyRate: 0.23,
	},
	"larkana": {
		Name: "Larkana", Province: "Sindh",
		Population: 364000, UrbanPopulation: 320000, RuralPopulation: 44000,
		AreaKM2: 985, DensityPerKM2: 369, Lat: 27.5590, Lon: 68.2123,
		Vulnerable:           VulnerableGroups{40000, 15000, 7300, 11000},
		HealthcareFacilities: 25, PovertyRate: 0.35,
	},
}

// provinceCities maps provinces to their directory entries.
var provinceCities = map[string][]string{
	"punjab":             {"lahore", "faisalabad", "rawalpindi", "multan", "gujranwala"},
	"sindh":              {"karachi", "hyderabad", "larkana"},
	"khyber_pakhtunkhwa": {"peshawar"},
	"balochistan":        {"quetta"},
}

// Lookup finds a city by name, ignoring case and spaces. The second
// return is false when the city is not in the directory.
func Lookup(name string) (City, bool) {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	c, ok := cities[key]
	return c, ok
}

// All returns every directory entry keyed by its canonical lookup key.
func All() map[string]City {
	out := make(map[string]City, len(cities))
	for k, v := range cities {
		out[k] = v
	}
	return out
}

// CitiesByProvince lists the directory entries for one province, in the
// province's canonical city order.
func CitiesByProvince(province string) []City {
	key := strings.ToLower(strings.ReplaceAll(province, " ", "_"))
	names, ok := provinceCities[key]
	if !ok {
		return nil
	}
	out := make([]City, 0, len(names))
	for _, n := range names {
		if c, ok := cities[n]; ok {
			out = append(out, c)
		}
	}
	return out
}
