package aggregate

import (
	"math"

	"exodash/domain/catalog"
)

// MassByPlanetCount counts mass measurements per planet count and tracks the
// largest mass in each group
func MassByPlanetCount(t *catalog.Table) []PlanetCountMass {
	counts, masses := groupValues(t, byPlanetCount, func(r catalog.Record) float64 { return r.PlanetMass })

	out := make([]PlanetCountMass, 0, len(counts))
	for _, pc := range counts {
		entry := PlanetCountMass{PlanetCount: pc, MaxMass: math.NaN()}
		for _, m := range masses[pc] {
			if math.IsNaN(m) {
				continue
			}
			entry.Count++
			if math.IsNaN(entry.MaxMass) || m > entry.MaxMass {
				entry.MaxMass = m
			}
		}
		if entry.Count == 0 {
			entry.MaxMass = 0
		}
		out = append(out, entry)
	}
	return out
}
