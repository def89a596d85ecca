package aggregate

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"exodash/domain/catalog"
)

// groupValues collects value(row) per key(row), keys returned in ascending order
func groupValues[K cmp.Ordered](t *catalog.Table, key func(catalog.Record) K, value func(catalog.Record) float64) ([]K, map[K][]float64) {
	groups := make(map[K][]float64)
	if t == nil {
		return nil, groups
	}
	var keys []K
	for _, r := range t.Rows {
		k := key(r)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], value(r))
	}
	slices.Sort(keys)
	return keys, groups
}

// quantile returns the q-quantile of values, interpolating linearly between
// the two closest ranks: h = (n-1)q, x[floor h] + (h - floor h)(x[floor h+1] - x[floor h]).
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	if lo < 0 {
		return sorted[0]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

func byYear(r catalog.Record) int        { return r.DiscoveryYear }
func byPlanetCount(r catalog.Record) int { return r.PlanetCount }
func byStarCount(r catalog.Record) int   { return r.StarCount }
