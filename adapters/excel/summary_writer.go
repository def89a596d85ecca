package excel

import (
	"fmt"

	"exodash/domain/catalog"
	"exodash/internal"
	"exodash/internal/aggregate"
	"exodash/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the summary workbook
const (
	SheetCleaning    = "Cleaning"
	SheetTrend       = "DistanceTrend"
	SheetBrightness  = "BrightnessRange"
	SheetMass        = "MassCount"
	SheetMetallicity = "Metallicity"
	SheetOrbits      = "Orbits"
	SheetDensity     = "Density"
)

// sheet is a header row plus data rows
type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// SummaryWriter exports the aggregate views as an xlsx workbook
type SummaryWriter struct {
	logger *internal.Logger
}

// NewSummaryWriter creates a summary writer
func NewSummaryWriter(logger *internal.Logger) *SummaryWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SummaryWriter{logger: logger.With("component", "excel")}
}

// Write saves one sheet per view, plus the cleaning report, to path
func (w *SummaryWriter) Write(path string, views aggregate.Views, report *catalog.CleaningReport) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := buildSheets(views, report)
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return errors.WriteError(path, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return errors.WriteError(path, err)
		}
		if err := writeSheet(f, s); err != nil {
			return errors.WriteError(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WriteError(path, err)
	}
	w.logger.Info("summary workbook written to %s (%d sheets)", path, len(sheets))
	return nil
}

func writeSheet(f *excelize.File, s sheet) error {
	all := append([][]interface{}{s.header}, s.rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(s.name, cell, &r); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", s.name, i+1, err)
		}
	}
	return nil
}

func buildSheets(views aggregate.Views, report *catalog.CleaningReport) []sheet {
	cleaning := sheet{name: SheetCleaning, header: []interface{}{"Measure", "Value"}}
	if report != nil {
		cleaning.rows = [][]interface{}{
			{"raw_rows", report.RawRows},
			{"complete_rows", report.CompleteRows},
			{"retained_rows", report.RetainedRows},
			{"method_threshold", report.MethodThreshold},
		}
		for _, mc := range report.RetainedMethods {
			cleaning.rows = append(cleaning.rows, []interface{}{"retained: " + mc.Method, mc.Count})
		}
		for _, mc := range report.DroppedMethods {
			cleaning.rows = append(cleaning.rows, []interface{}{"dropped: " + mc.Method, mc.Count})
		}
	}

	trend := sheet{name: SheetTrend, header: []interface{}{"Year", "MedianTopDecileDistance"}}
	for _, yv := range views.Trend {
		trend.rows = append(trend.rows, []interface{}{yv.Year, yv.Value})
	}

	brightness := sheet{name: SheetBrightness, header: []interface{}{"PlanetCount", "MinKMag", "MaxKMag", "Range", "Systems"}}
	for _, g := range views.Brightness.Groups {
		brightness.rows = append(brightness.rows, []interface{}{g.PlanetCount, g.Min, g.Max, g.Range, g.Count})
	}

	mass := sheet{name: SheetMass, header: []interface{}{"PlanetCount", "MassCount", "MaxMass"}}
	for _, m := range views.Mass {
		mass.rows = append(mass.rows, []interface{}{m.PlanetCount, m.Count, m.MaxMass})
	}

	metallicity := sheet{name: SheetMetallicity, header: []interface{}{"Year", "MeanMetallicity"}}
	for _, yv := range views.Metallicity {
		metallicity.rows = append(metallicity.rows, []interface{}{yv.Year, yv.Value})
	}

	orbits := sheet{name: SheetOrbits, header: []interface{}{"StarCount", "MeanEccentricity", "MeanPeriod", "Planets"}}
	for _, o := range views.Orbits {
		orbits.rows = append(orbits.rows, []interface{}{o.StarCount, o.MeanEccentricity, o.MeanPeriod, o.Count})
	}

	// long form, populated cells only
	density := sheet{name: SheetDensity, header: []interface{}{"KMagFrom", "KMagTo", "TeffFrom", "TeffTo", "Count"}}
	h := views.Density
	nx, ny := h.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if n := h.Counts[i][j]; n > 0 {
				density.rows = append(density.rows, []interface{}{h.XEdges[i], h.XEdges[i+1], h.YEdges[j], h.YEdges[j+1], n})
			}
		}
	}

	return []sheet{cleaning, trend, brightness, mass, metallicity, orbits, density}
}
