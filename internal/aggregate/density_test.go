package aggregate

import (
	"math/rand"
	"testing"

	"exodash/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomTable(n int, seed int64) *catalog.Table {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]catalog.Record, n)
	for i := range rows {
		rows[i] = catalog.Record{
			KMagnitude:  3 + rng.Float64()*12,
			StellarTemp: 3000 + rng.Float64()*4000,
		}
	}
	return catalog.NewTable(rows)
}

func TestBinMagnitudeTemperature_SumsToRowCount(t *testing.T) {
	for _, n := range []int{1, 7, 151, 1000} {
		table := randomTable(n, int64(n))
		h := BinMagnitudeTemperature(table, 60, 40)
		assert.Equal(t, n, h.Total(), "rows=%d", n)

		nx, ny := h.Dims()
		assert.LessOrEqual(t, nx, 60)
		assert.LessOrEqual(t, ny, 40)
	}
}

func TestBinMagnitudeTemperature_Edges(t *testing.T) {
	table := catalog.NewTable([]catalog.Record{
		{KMagnitude: 0, StellarTemp: 100},
		{KMagnitude: 10, StellarTemp: 200},
		{KMagnitude: 5, StellarTemp: 150},
	})
	h := BinMagnitudeTemperature(table, 10, 2)

	nx, ny := h.Dims()
	require.Equal(t, 10, nx)
	require.Equal(t, 2, ny)
	assert.InDelta(t, 0, h.XEdges[0], 1e-12)
	assert.InDelta(t, 10, h.XEdges[10], 1e-12)

	// maximum values land in the last bucket
	assert.Equal(t, 1, h.Counts[9][1])
	assert.Equal(t, 1, h.Counts[0][0])
	assert.Equal(t, 1, h.Counts[5][1])
	assert.Equal(t, 1, h.MaxCount())
	assert.InDelta(t, 0.5, h.XCenter(0), 1e-12)
	assert.InDelta(t, 125, h.YCenter(0), 1e-12)
}

func TestBinMagnitudeTemperature_DegenerateRange(t *testing.T) {
	table := catalog.NewTable([]catalog.Record{
		{KMagnitude: 8, StellarTemp: 5000},
		{KMagnitude: 8, StellarTemp: 5000},
	})
	h := BinMagnitudeTemperature(table, 60, 40)

	nx, ny := h.Dims()
	assert.Equal(t, 1, nx)
	assert.Equal(t, 1, ny)
	assert.Equal(t, 2, h.Counts[0][0])
}

func TestBinMagnitudeTemperature_Empty(t *testing.T) {
	h := BinMagnitudeTemperature(catalog.NewTable(nil), 60, 40)
	nx, ny := h.Dims()
	assert.Zero(t, nx)
	assert.Zero(t, ny)
	assert.Zero(t, h.Total())
	assert.Zero(t, h.MaxCount())
}
