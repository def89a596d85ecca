package aggregate

import (
	"exodash/domain/catalog"

	"github.com/montanaflynn/stats"
)

// BrightnessByPlanetCount computes max - min K magnitude for each planet count
// and broadcasts each group's range back onto its rows. A group with one
// system has range 0.
func BrightnessByPlanetCount(t *catalog.Table) BrightnessRanges {
	counts, mags := groupValues(t, byPlanetCount, func(r catalog.Record) float64 { return r.KMagnitude })

	out := BrightnessRanges{Groups: make([]PlanetCountRange, 0, len(counts))}
	ranges := make(map[int]float64, len(counts))
	for _, pc := range counts {
		values := mags[pc]
		lo, err := stats.Min(values)
		if err != nil {
			continue
		}
		hi, err := stats.Max(values)
		if err != nil {
			continue
		}
		ranges[pc] = hi - lo
		out.Groups = append(out.Groups, PlanetCountRange{
			PlanetCount: pc,
			Min:         lo,
			Max:         hi,
			Range:       hi - lo,
			Count:       len(values),
		})
	}

	out.PerRow = make([]float64, t.Len())
	for i := 0; i < t.Len(); i++ {
		out.PerRow[i] = ranges[t.Rows[i].PlanetCount]
	}
	return out
}
