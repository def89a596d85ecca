package aggregate

import (
	"math"

	"exodash/domain/catalog"

	"gonum.org/v1/gonum/floats"
)

// Histogram2D counts rows per (x bin, y bin). Counts[i][j] is the cell
// between XEdges[i..i+1] and YEdges[j..j+1].
type Histogram2D struct {
	XEdges []float64 `json:"x_edges"`
	YEdges []float64 `json:"y_edges"`
	Counts [][]int   `json:"counts"`
}

// Dims returns the number of x and y bins
func (h Histogram2D) Dims() (int, int) {
	if len(h.XEdges) < 2 || len(h.YEdges) < 2 {
		return 0, 0
	}
	return len(h.XEdges) - 1, len(h.YEdges) - 1
}

// Total sums every cell
func (h Histogram2D) Total() int {
	total := 0
	for _, col := range h.Counts {
		for _, c := range col {
			total += c
		}
	}
	return total
}

// MaxCount returns the fullest cell's count
func (h Histogram2D) MaxCount() int {
	max := 0
	for _, col := range h.Counts {
		for _, c := range col {
			if c > max {
				max = c
			}
		}
	}
	return max
}

// XCenter returns the midpoint of x bin i
func (h Histogram2D) XCenter(i int) float64 { return (h.XEdges[i] + h.XEdges[i+1]) / 2 }

// YCenter returns the midpoint of y bin j
func (h Histogram2D) YCenter(j int) float64 { return (h.YEdges[j] + h.YEdges[j+1]) / 2 }

// BinMagnitudeTemperature bins K magnitude into at most magBins and stellar
// temperature into at most tempBins equal-width buckets over the observed
// range, and counts rows per bucket pair.
func BinMagnitudeTemperature(t *catalog.Table, magBins, tempBins int) Histogram2D {
	n := t.Len()
	if n == 0 || magBins < 1 || tempBins < 1 {
		return Histogram2D{}
	}
	mags := make([]float64, n)
	temps := make([]float64, n)
	for i, r := range t.Rows {
		mags[i] = r.KMagnitude
		temps[i] = r.StellarTemp
	}

	h := Histogram2D{
		XEdges: equalWidthEdges(mags, magBins),
		YEdges: equalWidthEdges(temps, tempBins),
	}
	nx, ny := h.Dims()
	h.Counts = make([][]int, nx)
	for i := range h.Counts {
		h.Counts[i] = make([]int, ny)
	}
	for i := 0; i < n; i++ {
		h.Counts[binIndex(h.XEdges, mags[i])][binIndex(h.YEdges, temps[i])]++
	}
	return h
}

// equalWidthEdges splits [min, max] into bins equal-width buckets; a
// zero-width range collapses to one bucket
func equalWidthEdges(values []float64, bins int) []float64 {
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		bins = 1
	}
	return floats.Span(make([]float64, bins+1), lo, hi)
}

// binIndex locates v among edges; the maximum lands in the last bucket
func binIndex(edges []float64, v float64) int {
	last := len(edges) - 2
	if last <= 0 {
		return 0
	}
	width := (edges[len(edges)-1] - edges[0]) / float64(last+1)
	i := int(math.Floor((v - edges[0]) / width))
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
