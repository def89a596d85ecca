package aggregate

import (
	"exodash/domain/catalog"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// TopDecileTrend computes, per discovery year, the median distance of the
// systems at or beyond that year's q-quantile distance. One entry per year,
// ordered by year.
func TopDecileTrend(t *catalog.Table, q float64) []YearValue {
	years, distances := groupValues(t, byYear, func(r catalog.Record) float64 { return r.Distance })

	trend := make([]YearValue, 0, len(years))
	for _, year := range years {
		values := distances[year]
		threshold := quantile(values, q)

		var top []float64
		for _, d := range values {
			if d >= threshold {
				top = append(top, d)
			}
		}
		if len(top) == 0 {
			// interpolation rounding pushed the threshold past the maximum
			top = []float64{floats.Max(values)}
		}

		median, err := stats.Median(top)
		if err != nil {
			continue
		}
		trend = append(trend, YearValue{Year: year, Value: median})
	}
	return trend
}
