package dashboard

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"exodash/domain/catalog"
	"exodash/internal/aggregate"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	colorNotControversial = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	colorControversial    = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	colorTrend            = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	colorRange            = color.RGBA{R: 128, G: 0, B: 128, A: 255}
	colorArea             = color.RGBA{R: 60, G: 160, B: 60, A: 160}
	colorBars             = color.Black
)

// methodGlyphs are handed out to discovery methods in sorted order
var methodGlyphs = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.TriangleGlyph{},
	draw.BoxGlyph{},
	draw.CrossGlyph{},
	draw.PlusGlyph{},
	draw.RingGlyph{},
	draw.PyramidGlyph{},
	draw.SquareGlyph{},
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// buildCharts renders every view into its chart, in layout order
func buildCharts(views aggregate.Views) ([]*plot.Plot, error) {
	builders := []func(aggregate.Views) (*plot.Plot, error){
		distanceOverTime,
		distanceVersusBrightness,
		brightnessRangeByPlanetCount,
		massCountByPlanetCount,
		metallicityByYear,
		eccentricityByStarCount,
		brightnessTemperatureDensity,
	}
	plots := make([]*plot.Plot, 0, len(builders))
	for i, build := range builders {
		p, err := build(views)
		if err != nil {
			return nil, fmt.Errorf("chart %d: %w", i+1, err)
		}
		plots = append(plots, p)
	}
	return plots, nil
}

// distanceOverTime scatters discoveries by year and distance, colored by
// controversy and shaped by method, under the top-decile median trend line
func distanceOverTime(views aggregate.Views) (*plot.Plot, error) {
	p := newPlot("Are we finding exoplanets further away and do they cause controversy?",
		"Year of exoplanet discovery", "Distance to the planetary system from earth (parsec)")
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.Legend.Top = true
	p.Legend.Left = true

	glyphs := make(map[string]draw.GlyphDrawer)
	for _, g := range views.Discoveries {
		if _, ok := glyphs[g.Method]; !ok {
			glyphs[g.Method] = nil
		}
	}
	for i, method := range sortedKeys(glyphs) {
		glyphs[method] = methodGlyphs[i%len(methodGlyphs)]
	}

	for _, g := range views.Discoveries {
		xys := make(plotter.XYs, len(g.Points))
		for i, pt := range g.Points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = glyphs[g.Method]
		if g.Controversy == catalog.Controversial {
			s.GlyphStyle.Color = colorControversial
			s.GlyphStyle.Radius = vg.Points(6)
		} else {
			s.GlyphStyle.Color = colorNotControversial
			s.GlyphStyle.Radius = vg.Points(3)
		}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s, %s", g.Method, g.Controversy), s)
	}

	if len(views.Trend) > 0 {
		xys := make(plotter.XYs, len(views.Trend))
		for i, yv := range views.Trend {
			xys[i] = plotter.XY{X: float64(yv.Year), Y: yv.Value}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = colorTrend
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("median of the farthest 10% per year", line)
	}
	return p, nil
}

func distanceVersusBrightness(views aggregate.Views) (*plot.Plot, error) {
	p := newPlot("As exoplanets are further away,\nis their host star brighter?",
		"Distance to the planetary system (parsec)", "Brightness of host star (K magnitude)")
	if len(views.DistanceBrightness) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(views.DistanceBrightness))
	for i, pt := range views.DistanceBrightness {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)
	return p, nil
}

// brightnessRangeByPlanetCount draws one horizontal rule per planet count
// spanning the group's min to max magnitude
func brightnessRangeByPlanetCount(views aggregate.Views) (*plot.Plot, error) {
	p := newPlot("Does the host star's brightness suit\nparticular numbers of planets?",
		"Range of brightness of host star (K magnitude)", "Number of planets in the planetary system")
	groups := views.Brightness.Groups
	if len(groups) == 0 {
		return p, nil
	}

	ends := make(plotter.XYs, 0, 2*len(groups))
	maxCount := 0
	for _, g := range groups {
		span := plotter.XYs{{X: g.Min, Y: float64(g.PlanetCount)}, {X: g.Max, Y: float64(g.PlanetCount)}}
		rule, err := plotter.NewLine(span)
		if err != nil {
			return nil, err
		}
		rule.LineStyle.Color = colorRange
		rule.LineStyle.Width = vg.Points(5)
		p.Add(rule)
		ends = append(ends, span...)
		if g.PlanetCount > maxCount {
			maxCount = g.PlanetCount
		}
	}
	// endpoints keep zero-range groups visible
	marks, err := plotter.NewScatter(ends)
	if err != nil {
		return nil, err
	}
	marks.GlyphStyle.Color = colorRange
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	marks.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(marks)

	p.Y.Min = 0
	p.Y.Max = float64(maxCount) + 0.5
	return p, nil
}

func massCountByPlanetCount(views aggregate.Views) (*plot.Plot, error) {
	p := newPlot("As the number of planets increases,\ndoes the exoplanet's mass decrease?",
		"Number of planets in the planetary system", "Exoplanets with a measured mass")
	if len(views.Mass) == 0 {
		return p, nil
	}
	values := make(plotter.Values, len(views.Mass))
	labels := make([]string, len(views.Mass))
	for i, m := range views.Mass {
		values[i] = float64(m.Count)
		labels[i] = strconv.Itoa(m.PlanetCount)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(16))
	if err != nil {
		return nil, err
	}
	bars.Color = colorBars
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func metallicityByYear(views aggregate.Views) (*plot.Plot, error) {
	p := newPlot("Does the decrease in mean metal content of an exoplanet's star align with\nthe years that controversial discoveries happened from before?",
		"Year of exoplanet discovery", "Mean stellar metallicity (dex)")
	p.Title.TextStyle.Font.Size = vg.Points(18)
	if len(views.Metallicity) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(views.Metallicity))
	for i, yv := range views.Metallicity {
		xys[i] = plotter.XY{X: float64(yv.Year), Y: yv.Value}
	}
	area, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	area.FillColor = colorArea
	area.LineStyle.Color = colorNotControversial
	p.Add(area)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = colorControversial
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)
	return p, nil
}

// eccentricityByStarCount connects mean eccentricity per star count; each
// point's radius grows with the group's mean orbital period
func eccentricityByStarCount(views aggregate.Views) (*plot.Plot, error) {
	p := newPlot("As the number of stars increases, does the deviation\nor period of the exoplanet's orbit increase?",
		"Number of stars in the planetary system", "Mean eccentricity (orbital deviation)")
	if len(views.Orbits) == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, len(views.Orbits))
	maxPeriod := 0.0
	for i, o := range views.Orbits {
		xys[i] = plotter.XY{X: float64(o.StarCount), Y: o.MeanEccentricity}
		maxPeriod = math.Max(maxPeriod, o.MeanPeriod)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	p.Add(line)

	for i, o := range views.Orbits {
		bubble, err := plotter.NewScatter(plotter.XYs{xys[i]})
		if err != nil {
			return nil, err
		}
		radius := vg.Points(3)
		if maxPeriod > 0 {
			radius = vg.Points(3 + 9*o.MeanPeriod/maxPeriod)
		}
		bubble.GlyphStyle.Radius = radius
		bubble.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(bubble)
		p.Legend.Add(fmt.Sprintf("%d star(s): mean period %.0f d", o.StarCount, o.MeanPeriod), bubble)
	}
	p.Legend.Top = true
	return p, nil
}

func brightnessTemperatureDensity(views aggregate.Views) (*plot.Plot, error) {
	p := newPlot("Does the universe have a \"Goldilocks zone\" for the\nbrightness & temperature of an exoplanet's host star?",
		"Brightness of the host star (K magnitude)", "Temperature of the host star (K)")
	h := views.Density
	maxCount := h.MaxCount()
	if maxCount == 0 {
		return p, nil
	}
	heat := plotter.NewHeatMap(densityGrid{h: h}, greys(9))
	heat.Min = 1
	heat.Max = float64(maxCount)
	p.Add(heat)
	p.X.Label.Text += fmt.Sprintf(" (darkest cell: %d discoveries)", maxCount)
	return p, nil
}
