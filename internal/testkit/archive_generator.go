package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"exodash/domain/catalog"
)

// MethodRows describes how many rows a discovery method contributes
type MethodRows struct {
	Method     string `json:"method"`
	Complete   int    `json:"complete"`
	Incomplete int    `json:"incomplete"` // rows with exactly one required field blank
}

// ArchiveGeneratorConfig configures the synthetic archive generator
type ArchiveGeneratorConfig struct {
	PreambleLines int          `json:"preamble_lines"`
	Methods       []MethodRows `json:"methods"`
	// ControversialEvery marks every n-th complete row as controversial; 0 disables
	ControversialEvery int      `json:"controversial_every"`
	OmitColumns        []string `json:"omit_columns"`
	Seed               int64    `json:"seed"`
}

// DefaultArchiveConfig returns a 200-row archive: 151 rows survive cleaning,
// Imaging is dropped at exactly the threshold after null filtering.
func DefaultArchiveConfig() ArchiveGeneratorConfig {
	return ArchiveGeneratorConfig{
		PreambleLines: 96,
		Methods: []MethodRows{
			{Method: "Transit", Complete: 90, Incomplete: 10},
			{Method: "Radial Velocity", Complete: 40, Incomplete: 10},
			{Method: "Microlensing", Complete: 21, Incomplete: 4},
			{Method: "Imaging", Complete: 20, Incomplete: 5},
		},
		ControversialEvery: 7,
		Seed:               42,
	}
}

// TotalRows is the number of data rows the config produces
func (c ArchiveGeneratorConfig) TotalRows() int {
	total := 0
	for _, m := range c.Methods {
		total += m.Complete + m.Incomplete
	}
	return total
}

// ExpectedRetained returns the rows and methods that survive a threshold
func (c ArchiveGeneratorConfig) ExpectedRetained(threshold int) (int, []string) {
	rows := 0
	var methods []string
	for _, m := range c.Methods {
		if m.Complete > threshold {
			rows += m.Complete
			methods = append(methods, m.Method)
		}
	}
	return rows, methods
}

// ArchiveGenerator writes synthetic Planetary Systems exports
type ArchiveGenerator struct {
	config ArchiveGeneratorConfig
	rng    *rand.Rand
}

// NewArchiveGenerator creates a generator seeded from the config
func NewArchiveGenerator(config ArchiveGeneratorConfig) *ArchiveGenerator {
	return &ArchiveGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

func (g *ArchiveGenerator) header() []string {
	omit := make(map[string]bool, len(g.config.OmitColumns))
	for _, c := range g.config.OmitColumns {
		omit[c] = true
	}
	cols := []string{catalog.ColPlanetName}
	for _, c := range catalog.RequiredColumns {
		if !omit[c] {
			cols = append(cols, c)
		}
	}
	return append(cols, "rowupdate")
}

// Write emits the preamble, header and rows to w
func (g *ArchiveGenerator) Write(w io.Writer) error {
	for i := 0; i < g.config.PreambleLines; i++ {
		if _, err := fmt.Fprintf(w, "# synthetic archive metadata line %d\n", i+1); err != nil {
			return err
		}
	}

	header := g.header()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := 0
	for _, m := range g.config.Methods {
		for i := 0; i < m.Complete+m.Incomplete; i++ {
			values := g.rowValues(row, m.Method, i < m.Complete)
			record := make([]string, len(header))
			for j, col := range header {
				record[j] = values[col]
			}
			if err := cw.Write(record); err != nil {
				return err
			}
			row++
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the archive into dir and returns its path
func (g *ArchiveGenerator) WriteFile(dir string) (string, error) {
	path := filepath.Join(dir, "PS_synthetic.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := g.Write(f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func (g *ArchiveGenerator) rowValues(row int, method string, complete bool) map[string]string {
	controv := "0"
	if g.config.ControversialEvery > 0 && row%g.config.ControversialEvery == 0 {
		controv = "1"
	}
	values := map[string]string{
		catalog.ColPlanetName:     fmt.Sprintf("SYN-%04d b", row+1),
		catalog.ColStarCount:      strconv.Itoa(1 + g.rng.Intn(3)),
		catalog.ColPlanetCount:    strconv.Itoa(1 + g.rng.Intn(6)),
		catalog.ColMethod:         method,
		catalog.ColDiscoveryYear:  strconv.Itoa(1995 + g.rng.Intn(29)),
		catalog.ColControversy:    controv,
		catalog.ColOrbitalPeriod:  formatFloat(0.5 + g.rng.Float64()*400),
		catalog.ColPlanetMass:     formatFloat(0.1 + g.rng.Float64()*3000),
		catalog.ColEccentricity:   formatFloat(g.rng.Float64() * 0.6),
		catalog.ColStellarTemp:    formatFloat(3000 + g.rng.Float64()*4000),
		catalog.ColMetallicity:    formatFloat(-0.5 + g.rng.Float64()),
		catalog.ColStellarMass:    formatFloat(0.2 + g.rng.Float64()*1.8),
		catalog.ColSurfaceGravity: formatFloat(3.5 + g.rng.Float64()*1.5),
		catalog.ColDistance:       formatFloat(5 + g.rng.Float64()*2000),
		catalog.ColKMagnitude:     formatFloat(3 + g.rng.Float64()*12),
		"rowupdate":               "2024-01-01",
	}
	if !complete {
		blank := catalog.RequiredColumns[row%len(catalog.RequiredColumns)]
		values[blank] = ""
	}
	return values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
