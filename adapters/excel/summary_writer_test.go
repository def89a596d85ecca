package excel

import (
	"io"
	"path/filepath"
	"testing"

	"exodash/domain/catalog"
	"exodash/internal"
	"exodash/internal/aggregate"
	"exodash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *catalog.Table {
	return catalog.NewTable([]catalog.Record{
		{StarCount: 1, PlanetCount: 2, DiscoveryYear: 2014, Distance: 100, KMagnitude: 7, StellarTemp: 5000, Metallicity: 0.1, Eccentricity: 0.1, OrbitalPeriod: 5, PlanetMass: 10},
		{StarCount: 1, PlanetCount: 2, DiscoveryYear: 2015, Distance: 300, KMagnitude: 9, StellarTemp: 6000, Metallicity: -0.1, Eccentricity: 0.3, OrbitalPeriod: 50, PlanetMass: 20},
	})
}

func TestSummaryWriter_Write(t *testing.T) {
	views := aggregate.Compute(sampleTable(), aggregate.DefaultConfig())
	report := &catalog.CleaningReport{
		RawRows: 5, CompleteRows: 3, RetainedRows: 2, MethodThreshold: 1,
		RetainedMethods: []catalog.MethodCount{{Method: "Transit", Count: 2}},
		DroppedMethods:  []catalog.MethodCount{{Method: "Imaging", Count: 1}},
	}
	path := filepath.Join(t.TempDir(), "summary.xlsx")

	writer := NewSummaryWriter(internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard))
	require.NoError(t, writer.Write(path, views, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetCleaning, SheetTrend, SheetBrightness, SheetMass, SheetMetallicity, SheetOrbits, SheetDensity}, f.GetSheetList())

	trend, err := f.GetRows(SheetTrend)
	require.NoError(t, err)
	require.Len(t, trend, 3)
	assert.Equal(t, []string{"Year", "MedianTopDecileDistance"}, trend[0])
	assert.Equal(t, "2014", trend[1][0])

	cleaning, err := f.GetRows(SheetCleaning)
	require.NoError(t, err)
	assert.Equal(t, []string{"raw_rows", "5"}, cleaning[1])
	assert.Equal(t, []string{"dropped: Imaging", "1"}, cleaning[len(cleaning)-1])

	density, err := f.GetRows(SheetDensity)
	require.NoError(t, err)
	assert.Len(t, density, 3) // header plus two populated cells
}

func TestSummaryWriter_EmptyViews(t *testing.T) {
	views := aggregate.Compute(catalog.NewTable(nil), aggregate.DefaultConfig())
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	writer := NewSummaryWriter(internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard))
	require.NoError(t, writer.Write(path, views, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetOrbits)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSummaryWriter_BadPath(t *testing.T) {
	views := aggregate.Compute(sampleTable(), aggregate.DefaultConfig())
	writer := NewSummaryWriter(internal.NewLoggerWithWriter(internal.LogLevelError, io.Discard))

	err := writer.Write(filepath.Join(t.TempDir(), "no", "such", "dir.xlsx"), views, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeWriteError, errors.GetCode(err))
}
