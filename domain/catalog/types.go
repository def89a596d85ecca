package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Column names used from the Planetary Systems composite table
const (
	ColStarCount      = "sy_snum"
	ColPlanetCount    = "sy_pnum"
	ColMethod         = "discoverymethod"
	ColDiscoveryYear  = "disc_year"
	ColControversy    = "pl_controv_flag"
	ColOrbitalPeriod  = "pl_orbper"
	ColPlanetMass     = "pl_bmasse"
	ColEccentricity   = "pl_orbeccen"
	ColStellarTemp    = "st_teff"
	ColMetallicity    = "st_met"
	ColStellarMass    = "st_mass"
	ColSurfaceGravity = "st_logg"
	ColDistance       = "sy_dist"
	ColKMagnitude     = "sy_kmag"

	// ColPlanetName is optional; it only feeds chart labels
	ColPlanetName = "pl_name"
)

// RequiredColumns lists the fields every cleaned record must have populated
var RequiredColumns = []string{
	ColStarCount,
	ColPlanetCount,
	ColMethod,
	ColDiscoveryYear,
	ColControversy,
	ColOrbitalPeriod,
	ColPlanetMass,
	ColEccentricity,
	ColStellarTemp,
	ColMetallicity,
	ColStellarMass,
	ColSurfaceGravity,
	ColDistance,
	ColKMagnitude,
}

// Controversy is the categorical form of the archive's controversy flag
type Controversy string

const (
	Controversial    Controversy = "controversial"
	NotControversial Controversy = "not controversial"
)

// ControversyFromCode maps the numeric flag: 0 is not controversial, anything else is
func ControversyFromCode(code float64) Controversy {
	if code == 0 {
		return NotControversial
	}
	return Controversial
}

// RelabelControversy converts a raw flag value into its label. Values that are
// already labels map to themselves, so applying it twice is a no-op. The
// numeric code is not kept.
func RelabelControversy(value string) (Controversy, error) {
	v := strings.TrimSpace(value)
	switch Controversy(v) {
	case Controversial, NotControversial:
		return Controversy(v), nil
	}
	code, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", fmt.Errorf("controversy flag %q is neither numeric nor a label", value)
	}
	return ControversyFromCode(code), nil
}

// Record is one cleaned planet row
type Record struct {
	Name           string
	StarCount      int
	PlanetCount    int
	Method         string
	DiscoveryYear  int
	Controversy    Controversy
	OrbitalPeriod  float64
	PlanetMass     float64
	Eccentricity   float64
	StellarTemp    float64
	Metallicity    float64
	StellarMass    float64
	SurfaceGravity float64
	Distance       float64
	KMagnitude     float64
}

// Table is the cleaned table. Rows keep source order.
type Table struct {
	Rows []Record
}

// NewTable wraps rows in a Table
func NewTable(rows []Record) *Table {
	return &Table{Rows: rows}
}

// Len returns the number of rows; a nil table has none
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Methods returns the distinct discovery methods, sorted
func (t *Table) Methods() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	var methods []string
	for _, r := range t.Rows {
		if !seen[r.Method] {
			seen[r.Method] = true
			methods = append(methods, r.Method)
		}
	}
	sort.Strings(methods)
	return methods
}

// MethodCount is a discovery method with its frequency
type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// CleaningReport summarizes what each cleaning step removed
type CleaningReport struct {
	RawRows         int           `json:"raw_rows"`
	CompleteRows    int           `json:"complete_rows"`
	RetainedRows    int           `json:"retained_rows"`
	MethodThreshold int           `json:"method_threshold"`
	RetainedMethods []MethodCount `json:"retained_methods"`
	DroppedMethods  []MethodCount `json:"dropped_methods"`
}

// IncompleteRows is the number of rows dropped for missing required fields
func (r CleaningReport) IncompleteRows() int {
	return r.RawRows - r.CompleteRows
}

// RareMethodRows is the number of complete rows dropped for a rare method
func (r CleaningReport) RareMethodRows() int {
	return r.CompleteRows - r.RetainedRows
}
