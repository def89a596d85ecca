package run

import (
	"fmt"

	"exodash/domain/core"
)

// Thresholds records every tunable that shaped a run's output
type Thresholds struct {
	SkipLines       int     `json:"skip_lines"`
	MethodThreshold int     `json:"method_threshold"`
	TopQuantile     float64 `json:"top_quantile"`
	MagnitudeBins   int     `json:"magnitude_bins"`
	TemperatureBins int     `json:"temperature_bins"`
	Layout          []int   `json:"layout"`
}

// String renders the thresholds in a stable form for hashing
func (t Thresholds) String() string {
	return fmt.Sprintf("skip:%d|methods:%d|quantile:%g|mag_bins:%d|temp_bins:%d|layout:%v",
		t.SkipLines, t.MethodThreshold, t.TopQuantile, t.MagnitudeBins, t.TemperatureBins, t.Layout)
}

// OutputKind names a file produced by a run
type OutputKind string

const (
	OutputDashboard OutputKind = "dashboard"
	OutputSummary   OutputKind = "summary"
)

// Output is one file written by a run
type Output struct {
	Kind OutputKind `json:"kind"`
	Path string     `json:"path"`
}

// Fingerprint identifies the inputs that determine a run's output. Two runs
// with equal fingerprints render the same dashboard.
type Fingerprint struct {
	InputHash   core.Hash `json:"input_hash"`
	Thresholds  string    `json:"thresholds"`
	CodeVersion string    `json:"code_version"`
	Hash        core.Hash `json:"hash"`
}

// NewFingerprint hashes the input file hash, thresholds and code version
func NewFingerprint(inputHash core.Hash, thresholds Thresholds, codeVersion string) Fingerprint {
	t := thresholds.String()
	data := fmt.Sprintf("input:%s|thresholds:%s|code:%s", inputHash, t, codeVersion)
	return Fingerprint{
		InputHash:   inputHash,
		Thresholds:  t,
		CodeVersion: codeVersion,
		Hash:        core.NewHash([]byte(data)),
	}
}
