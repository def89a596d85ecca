// Package dashboard draws the aggregate views as charts and lays them out on
// a single canvas.
package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"exodash/internal"
	"exodash/internal/aggregate"
	"exodash/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartCount is the number of charts the dashboard draws
const ChartCount = 7

// Config controls the dashboard page
type Config struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Layout   []int   `json:"layout"` // charts per row, top to bottom
	Width    float64 `json:"width_in"`
	Height   float64 `json:"height_in"`
}

// DefaultConfig returns the four-row 1/3/1/2 layout
func DefaultConfig() Config {
	return Config{
		Title:    "NASA Exoplanet Dashboard",
		Subtitle: "Exploring the relationships among exoplanets and their stars",
		Layout:   []int{1, 3, 1, 2},
		Width:    18,
		Height:   24,
	}
}

// Validate checks the layout places every chart exactly once
func (c Config) Validate() error {
	total := 0
	for _, n := range c.Layout {
		if n < 1 {
			return errors.ConfigInvalid("dashboard layout rows need at least one chart")
		}
		total += n
	}
	if total != ChartCount {
		return errors.ConfigInvalid(fmt.Sprintf("dashboard layout places %d charts, want %d", total, ChartCount))
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.ConfigInvalid("dashboard size must be positive")
	}
	return nil
}

// Composer renders the dashboard document
type Composer struct {
	config Config
	logger *internal.Logger
}

// NewComposer validates config and creates a composer
func NewComposer(config Config, logger *internal.Logger) (*Composer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Composer{config: config, logger: logger.With("component", "dashboard")}, nil
}

// FormatFor maps an output path to a render format: svg, png, pdf or html
func FormatFor(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".svg":
		return "svg", nil
	case ".png":
		return "png", nil
	case ".pdf":
		return "pdf", nil
	case ".html", ".htm":
		return "html", nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unsupported dashboard format %q", ext))
	}
}

// Save renders views to path, creating or replacing the file
func (c *Composer) Save(path string, views aggregate.Views) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := c.Render(&buf, format, views); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.WriteError(path, err)
	}
	c.logger.Info("dashboard written to %s (%s, %d bytes)", path, format, buf.Len())
	return nil
}

// Render draws the dashboard in format and writes it to w
func (c *Composer) Render(w io.Writer, format string, views aggregate.Views) error {
	plots, err := buildCharts(views)
	if err != nil {
		return errors.Wrap(err, "failed to build charts")
	}
	if len(views.Discoveries) == 0 {
		c.logger.Warn("rendering dashboard from an empty table")
	}

	if format == "html" {
		return c.renderHTML(w, plots)
	}
	return c.renderCanvas(w, format, plots)
}

func (c *Composer) renderCanvas(w io.Writer, format string, plots []*plot.Plot) error {
	width := vg.Length(c.config.Width) * vg.Inch
	height := vg.Length(c.config.Height) * vg.Inch
	canvas, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported canvas format %s", format)
	}
	c.draw(draw.New(canvas), plots)
	if _, err := canvas.WriteTo(w); err != nil {
		return errors.WriteError("dashboard "+format, err)
	}
	return nil
}

var htmlPage = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body style="margin:0;text-align:center;background:#fff">
{{.SVG}}
</body>
</html>
`))

func (c *Composer) renderHTML(w io.Writer, plots []*plot.Plot) error {
	var svg bytes.Buffer
	if err := c.renderCanvas(&svg, "svg", plots); err != nil {
		return err
	}
	body := svg.Bytes()
	if i := bytes.Index(body, []byte("<svg")); i > 0 {
		body = body[i:]
	}
	err := htmlPage.Execute(w, struct {
		Title string
		SVG   template.HTML
	}{Title: c.config.Title, SVG: template.HTML(body)})
	if err != nil {
		return errors.WriteError("dashboard html", err)
	}
	return nil
}

// draw places the header and then each row of plots, top to bottom. Rows
// share the height below the header equally; plots share their row's width.
func (c *Composer) draw(dc draw.Canvas, plots []*plot.Plot) {
	header := (dc.Max.Y - dc.Min.Y) * 0.06
	c.drawHeader(dc, header)

	pad := vg.Points(12)
	bodyTop := dc.Max.Y - header
	rowHeight := (bodyTop - dc.Min.Y) / vg.Length(len(c.config.Layout))
	width := dc.Max.X - dc.Min.X

	next := 0
	for r, n := range c.config.Layout {
		top := bodyTop - vg.Length(r)*rowHeight
		cellWidth := width / vg.Length(n)
		for i := 0; i < n; i++ {
			left := dc.Min.X + vg.Length(i)*cellWidth
			cell := draw.Canvas{
				Canvas: dc.Canvas,
				Rectangle: vg.Rectangle{
					Min: vg.Point{X: left + pad, Y: top - rowHeight + pad},
					Max: vg.Point{X: left + cellWidth - pad, Y: top - pad},
				},
			}
			plots[next].Draw(cell)
			next++
		}
	}
}

func (c *Composer) drawHeader(dc draw.Canvas, height vg.Length) {
	center := (dc.Min.X + dc.Max.X) / 2

	title := plot.New().Title.TextStyle
	title.Font.Size = vg.Points(34)
	title.XAlign = draw.XCenter
	title.YAlign = draw.YTop
	dc.FillText(title, vg.Point{X: center, Y: dc.Max.Y - height*0.15}, c.config.Title)

	if c.config.Subtitle == "" {
		return
	}
	sub := title
	sub.Font.Size = vg.Points(20)
	sub.Color = color.Gray{Y: 80}
	dc.FillText(sub, vg.Point{X: center, Y: dc.Max.Y - height*0.6}, c.config.Subtitle)
}

// densityGrid adapts a histogram to plotter.GridXYZ; empty cells are NaN so
// the heat map leaves them blank
type densityGrid struct {
	h aggregate.Histogram2D
}

func (g densityGrid) Dims() (int, int) { return g.h.Dims() }
func (g densityGrid) X(c int) float64  { return g.h.XCenter(c) }
func (g densityGrid) Y(r int) float64  { return g.h.YCenter(r) }
func (g densityGrid) Z(c, r int) float64 {
	if n := g.h.Counts[c][r]; n > 0 {
		return float64(n)
	}
	return math.NaN()
}

// greys is a light-to-black palette with n steps
type greys int

var _ palette.Palette = greys(0)

func (n greys) Colors() []color.Color {
	steps := int(n)
	if steps < 2 {
		steps = 2
	}
	colors := make([]color.Color, steps)
	for i := range colors {
		y := 220 - uint8(220*i/(steps-1))
		colors[i] = color.Gray{Y: y}
	}
	return colors
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
