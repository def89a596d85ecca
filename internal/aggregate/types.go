// Package aggregate derives the chart views from a cleaned table. Every
// function is pure: it reads the table and returns a new structure.
package aggregate

import "exodash/domain/catalog"

// Config holds the aggregation parameters
type Config struct {
	TopQuantile     float64 `json:"top_quantile"`
	MagnitudeBins   int     `json:"magnitude_bins"`
	TemperatureBins int     `json:"temperature_bins"`
}

// DefaultConfig returns the 90th percentile cut and 60x40 density bins
func DefaultConfig() Config {
	return Config{
		TopQuantile:     0.9,
		MagnitudeBins:   60,
		TemperatureBins: 40,
	}
}

// YearValue is one point of a year-indexed series
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// PlanetCountRange is the K magnitude spread of systems with a given planet count
type PlanetCountRange struct {
	PlanetCount int     `json:"planet_count"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Range       float64 `json:"range"`
	Count       int     `json:"count"`
}

// BrightnessRanges holds the per-group ranges and the range broadcast to each
// row; PerRow[i] belongs to table row i.
type BrightnessRanges struct {
	Groups []PlanetCountRange `json:"groups"`
	PerRow []float64          `json:"per_row"`
}

// StarCountOrbit summarizes orbits for systems with a given star count
type StarCountOrbit struct {
	StarCount        int     `json:"star_count"`
	MeanEccentricity float64 `json:"mean_eccentricity"`
	MeanPeriod       float64 `json:"mean_period"`
	Count            int     `json:"count"`
}

// PlanetCountMass counts mass measurements per planet count
type PlanetCountMass struct {
	PlanetCount int     `json:"planet_count"`
	Count       int     `json:"count"`
	MaxMass     float64 `json:"max_mass"`
}

// Point is a labelled x/y pair
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// PointGroup is the set of discoveries sharing a controversy label and method
type PointGroup struct {
	Controversy catalog.Controversy `json:"controversy"`
	Method      string              `json:"method"`
	Points      []Point             `json:"points"`
}

// Views bundles every derived view the dashboard draws
type Views struct {
	Trend              []YearValue       `json:"trend"`
	Discoveries        []PointGroup      `json:"discoveries"`
	DistanceBrightness []Point           `json:"distance_brightness"`
	Brightness         BrightnessRanges  `json:"brightness"`
	Mass               []PlanetCountMass `json:"mass"`
	Metallicity        []YearValue       `json:"metallicity"`
	Orbits             []StarCountOrbit  `json:"orbits"`
	Density            Histogram2D       `json:"density"`
}

// Compute derives all views from t
func Compute(t *catalog.Table, cfg Config) Views {
	return Views{
		Trend:              TopDecileTrend(t, cfg.TopQuantile),
		Discoveries:        DiscoveryPoints(t),
		DistanceBrightness: DistanceBrightness(t),
		Brightness:         BrightnessByPlanetCount(t),
		Mass:               MassByPlanetCount(t),
		Metallicity:        MeanMetallicityByYear(t),
		Orbits:             OrbitByStarCount(t),
		Density:            BinMagnitudeTemperature(t, cfg.MagnitudeBins, cfg.TemperatureBins),
	}
}
