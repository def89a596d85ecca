package aggregate

import (
	"sort"

	"exodash/domain/catalog"
)

// DiscoveryPoints splits (year, distance) points by controversy label and
// discovery method. Groups are ordered by label, then method.
func DiscoveryPoints(t *catalog.Table) []PointGroup {
	type groupKey struct {
		controversy catalog.Controversy
		method      string
	}
	index := make(map[groupKey]int)
	var groups []PointGroup
	if t == nil {
		return groups
	}
	for _, r := range t.Rows {
		k := groupKey{r.Controversy, r.Method}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, PointGroup{Controversy: r.Controversy, Method: r.Method})
		}
		groups[i].Points = append(groups[i].Points, Point{
			X:     float64(r.DiscoveryYear),
			Y:     r.Distance,
			Label: r.Name,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Controversy != groups[j].Controversy {
			return groups[i].Controversy > groups[j].Controversy
		}
		return groups[i].Method < groups[j].Method
	})
	return groups
}

// DistanceBrightness pairs each system's distance with its host K magnitude
func DistanceBrightness(t *catalog.Table) []Point {
	points := make([]Point, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		r := t.Rows[i]
		points = append(points, Point{X: r.Distance, Y: r.KMagnitude, Label: r.Name})
	}
	return points
}
