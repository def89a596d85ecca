package archive

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"exodash/domain/catalog"
	"exodash/internal"
	"exodash/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Config holds the loader thresholds
type Config struct {
	SkipLines       int  `json:"skip_lines"`
	MethodThreshold int  `json:"method_threshold"`
	Delimiter       rune `json:"delimiter"`
}

// DefaultConfig matches the archive's "Planetary Systems" CSV export
func DefaultConfig() Config {
	return Config{
		SkipLines:       96,
		MethodThreshold: 20,
		Delimiter:       ',',
	}
}

// nullTokens are cell values treated as missing
var nullTokens = map[string]bool{"": true, "NA": true, "NaN": true, "<nil>": true}

// numericColumns are parsed as floats; everything else stays a string
var numericColumns = []string{
	catalog.ColStarCount,
	catalog.ColPlanetCount,
	catalog.ColDiscoveryYear,
	catalog.ColControversy,
	catalog.ColOrbitalPeriod,
	catalog.ColPlanetMass,
	catalog.ColEccentricity,
	catalog.ColStellarTemp,
	catalog.ColMetallicity,
	catalog.ColStellarMass,
	catalog.ColSurfaceGravity,
	catalog.ColDistance,
	catalog.ColKMagnitude,
}

// Loader reads an archive export and produces the cleaned table
type Loader struct {
	config Config
	logger *internal.Logger
}

// NewLoader creates a loader; a nil logger falls back to the default one
func NewLoader(config Config, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{config: config, logger: logger.With("component", "loader")}
}

// Load opens path and cleans its contents
func (l *Loader) Load(path string) (*catalog.Table, *catalog.CleaningReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.ReadError(path, err)
	}
	defer file.Close()

	table, report, err := l.Read(file)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to load %s", path)
	}
	return table, report, nil
}

// Read cleans an archive export from r: skip the preamble, drop incomplete
// rows, drop rows whose discovery method is rare, relabel the controversy flag.
func (l *Loader) Read(r io.Reader) (*catalog.Table, *catalog.CleaningReport, error) {
	records, err := l.readRecords(r)
	if err != nil {
		return nil, nil, err
	}

	header := records[0]
	if err := checkColumns(header); err != nil {
		return nil, nil, err
	}

	report := &catalog.CleaningReport{
		RawRows:         len(records) - 1,
		MethodThreshold: l.config.MethodThreshold,
	}
	if report.RawRows == 0 {
		l.logger.Warn("archive has a header but no data rows")
		return catalog.NewTable(nil), report, nil
	}

	df := dataframe.LoadRecords(normalizeNulls(records),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(columnTypes()),
	)
	if df.Err != nil {
		return nil, nil, errors.ReadError("archive records", df.Err)
	}

	keep := completeRows(df)
	report.CompleteRows = len(keep)
	l.logger.Debug("null filter kept %d of %d rows", report.CompleteRows, report.RawRows)
	if len(keep) == 0 {
		l.logger.Warn("every row is missing a required field; charts will be empty")
		return catalog.NewTable(nil), report, nil
	}
	complete := df
	if len(keep) < df.Nrow() {
		complete = df.Subset(keep)
		if complete.Err != nil {
			return nil, nil, errors.Wrap(complete.Err, "failed to drop incomplete rows")
		}
	}

	retained, err := l.dropRareMethods(complete, report)
	if err != nil {
		return nil, nil, err
	}
	report.RetainedRows = retained.Nrow()

	table, err := toTable(retained)
	if err != nil {
		return nil, nil, err
	}

	l.logger.Info("cleaned archive: %d raw, %d complete, %d retained across %d methods",
		report.RawRows, report.CompleteRows, report.RetainedRows, len(report.RetainedMethods))
	if table.IsEmpty() {
		l.logger.Warn("no rows survived cleaning; charts will be empty")
	}
	return table, report, nil
}

// readRecords skips the preamble and parses the remaining delimited lines
func (l *Loader) readRecords(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	for i := 0; i < l.config.SkipLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, errors.SchemaError(fmt.Sprintf("input ends after %d of %d preamble lines", i, l.config.SkipLines))
			}
			return nil, errors.ReadError("archive preamble", err)
		}
	}

	reader := csv.NewReader(br)
	reader.Comma = l.config.Delimiter
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ReadError("archive records", err)
	}
	if len(records) == 0 {
		return nil, errors.SchemaError("no header row after the preamble")
	}
	for i, name := range records[0] {
		records[0][i] = strings.TrimSpace(name)
	}
	return records, nil
}

func checkColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	var missing []string
	for _, name := range catalog.RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.SchemaError(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func columnTypes() map[string]series.Type {
	types := make(map[string]series.Type, len(numericColumns))
	for _, name := range numericColumns {
		types[name] = series.Float
	}
	return types
}

// normalizeNulls rewrites every null token in the data rows to gota's NaN marker
func normalizeNulls(records [][]string) [][]string {
	for _, row := range records[1:] {
		for j, cell := range row {
			if nullTokens[strings.TrimSpace(cell)] {
				row[j] = "NaN"
			}
		}
	}
	return records
}

// completeRows returns the indexes of rows with every required field present
func completeRows(df dataframe.DataFrame) []int {
	missing := make([][]bool, len(catalog.RequiredColumns))
	for i, name := range catalog.RequiredColumns {
		missing[i] = df.Col(name).IsNaN()
	}

	keep := make([]int, 0, df.Nrow())
	for row := 0; row < df.Nrow(); row++ {
		complete := true
		for _, col := range missing {
			if col[row] {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, row)
		}
	}
	return keep
}

// dropRareMethods keeps rows whose method occurs more than MethodThreshold
// times in df. Frequencies are taken once, before filtering.
func (l *Loader) dropRareMethods(df dataframe.DataFrame, report *catalog.CleaningReport) (dataframe.DataFrame, error) {
	counts := make(map[string]int)
	for _, method := range df.Col(catalog.ColMethod).Records() {
		counts[method]++
	}

	var valid []string
	for method, count := range counts {
		mc := catalog.MethodCount{Method: method, Count: count}
		if count > l.config.MethodThreshold {
			valid = append(valid, method)
			report.RetainedMethods = append(report.RetainedMethods, mc)
		} else {
			report.DroppedMethods = append(report.DroppedMethods, mc)
			l.logger.Debug("dropping method %q: %d rows, threshold %d", method, count, l.config.MethodThreshold)
		}
	}
	sortMethodCounts(report.RetainedMethods)
	sortMethodCounts(report.DroppedMethods)

	if len(valid) == 0 {
		return dataframe.DataFrame{}, nil
	}
	if len(valid) == len(counts) {
		return df, nil
	}
	sort.Strings(valid)
	filtered := df.Filter(dataframe.F{
		Colname:    catalog.ColMethod,
		Comparator: series.In,
		Comparando: valid,
	})
	if filtered.Err != nil {
		return filtered, errors.Wrap(filtered.Err, "failed to filter discovery methods")
	}
	return filtered, nil
}

func sortMethodCounts(mcs []catalog.MethodCount) {
	sort.Slice(mcs, func(i, j int) bool {
		if mcs[i].Count != mcs[j].Count {
			return mcs[i].Count > mcs[j].Count
		}
		return mcs[i].Method < mcs[j].Method
	})
}

// toTable converts the cleaned frame to typed records and relabels the
// controversy flag. The numeric flag is not retained.
func toTable(df dataframe.DataFrame) (*catalog.Table, error) {
	n := df.Nrow()
	if n == 0 {
		return catalog.NewTable(nil), nil
	}

	floats := make(map[string][]float64, len(numericColumns))
	for _, name := range numericColumns {
		floats[name] = df.Col(name).Float()
	}
	methods := df.Col(catalog.ColMethod).Records()

	var names []string
	for _, name := range df.Names() {
		if name == catalog.ColPlanetName {
			names = df.Col(catalog.ColPlanetName).Records()
			break
		}
	}

	rows := make([]catalog.Record, n)
	for i := 0; i < n; i++ {
		rec := catalog.Record{
			StarCount:      int(math.Round(floats[catalog.ColStarCount][i])),
			PlanetCount:    int(math.Round(floats[catalog.ColPlanetCount][i])),
			Method:         methods[i],
			DiscoveryYear:  int(math.Round(floats[catalog.ColDiscoveryYear][i])),
			Controversy:    catalog.ControversyFromCode(floats[catalog.ColControversy][i]),
			OrbitalPeriod:  floats[catalog.ColOrbitalPeriod][i],
			PlanetMass:     floats[catalog.ColPlanetMass][i],
			Eccentricity:   floats[catalog.ColEccentricity][i],
			StellarTemp:    floats[catalog.ColStellarTemp][i],
			Metallicity:    floats[catalog.ColMetallicity][i],
			StellarMass:    floats[catalog.ColStellarMass][i],
			SurfaceGravity: floats[catalog.ColSurfaceGravity][i],
			Distance:       floats[catalog.ColDistance][i],
			KMagnitude:     floats[catalog.ColKMagnitude][i],
		}
		if names != nil && names[i] != "NaN" {
			rec.Name = names[i]
		}
		rows[i] = rec
	}
	return catalog.NewTable(rows), nil
}
