package aggregate

import (
	"exodash/domain/catalog"

	"github.com/montanaflynn/stats"
)

// MeanMetallicityByYear averages stellar metallicity per discovery year
func MeanMetallicityByYear(t *catalog.Table) []YearValue {
	years, mets := groupValues(t, byYear, func(r catalog.Record) float64 { return r.Metallicity })

	out := make([]YearValue, 0, len(years))
	for _, year := range years {
		mean, err := stats.Mean(mets[year])
		if err != nil {
			continue
		}
		out = append(out, YearValue{Year: year, Value: mean})
	}
	return out
}

// OrbitByStarCount averages eccentricity and orbital period per star count
func OrbitByStarCount(t *catalog.Table) []StarCountOrbit {
	starCounts, eccs := groupValues(t, byStarCount, func(r catalog.Record) float64 { return r.Eccentricity })
	_, periods := groupValues(t, byStarCount, func(r catalog.Record) float64 { return r.OrbitalPeriod })

	out := make([]StarCountOrbit, 0, len(starCounts))
	for _, sc := range starCounts {
		meanEcc, err := stats.Mean(eccs[sc])
		if err != nil {
			continue
		}
		meanPer, err := stats.Mean(periods[sc])
		if err != nil {
			continue
		}
		out = append(out, StarCountOrbit{
			StarCount:        sc,
			MeanEccentricity: meanEcc,
			MeanPeriod:       meanPer,
			Count:            len(eccs[sc]),
		})
	}
	return out
}
