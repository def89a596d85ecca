package run

import (
	"path/filepath"
	"testing"

	"exodash/domain/catalog"
	"exodash/domain/core"
)

func testThresholds() Thresholds {
	return Thresholds{SkipLines: 96, MethodThreshold: 20, TopQuantile: 0.9, MagnitudeBins: 60, TemperatureBins: 40, Layout: []int{1, 3, 1, 2}}
}

func TestFingerprint_Deterministic(t *testing.T) {
	// same inputs produce identical fingerprints
	fp1 := NewFingerprint(core.Hash("abc"), testThresholds(), "1.0.0")
	fp2 := NewFingerprint(core.Hash("abc"), testThresholds(), "1.0.0")

	if fp1.Hash != fp2.Hash {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Hash, fp2.Hash)
	}
	if fp1.InputHash != "abc" {
		t.Errorf("InputHash mismatch: %s", fp1.InputHash)
	}
}

func TestFingerprint_SensitiveToThresholds(t *testing.T) {
	base := NewFingerprint(core.Hash("abc"), testThresholds(), "1.0.0")

	changed := testThresholds()
	changed.MethodThreshold = 10
	if NewFingerprint(core.Hash("abc"), changed, "1.0.0").Hash == base.Hash {
		t.Error("Changing the method threshold should change the fingerprint")
	}
	if NewFingerprint(core.Hash("abd"), testThresholds(), "1.0.0").Hash == base.Hash {
		t.Error("Changing the input hash should change the fingerprint")
	}
	if NewFingerprint(core.Hash("abc"), testThresholds(), "1.0.1").Hash == base.Hash {
		t.Error("Changing the code version should change the fingerprint")
	}
}

func TestManifest_Validate(t *testing.T) {
	m := NewManifest("in.csv", core.Hash("abc"), testThresholds())
	if err := m.Validate(); err != nil {
		t.Fatalf("Fresh manifest should validate: %v", err)
	}

	m.RunID = ""
	if err := m.Validate(); err == nil {
		t.Error("Expected error for empty run ID")
	}

	m = NewManifest("in.csv", "", testThresholds())
	if err := m.Validate(); err == nil {
		t.Error("Expected error for empty input hash")
	}
}

func TestManifest_WriteAndRead(t *testing.T) {
	m := NewManifest("in.csv", core.Hash("abc"), testThresholds())
	m.Report = &catalog.CleaningReport{RawRows: 10, CompleteRows: 8, RetainedRows: 6, MethodThreshold: 20}
	m.AddOutput(OutputDashboard, "dash.svg")
	m.AddOutput(OutputSummary, "summary.xlsx")

	path := filepath.Join(t.TempDir(), "run.json")
	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if back.RunID != m.RunID {
		t.Errorf("RunID mismatch: %s vs %s", back.RunID, m.RunID)
	}
	if back.Fingerprint.Hash != m.Fingerprint.Hash {
		t.Errorf("Fingerprint mismatch")
	}
	if len(back.Outputs) != 2 || back.Outputs[1].Kind != OutputSummary {
		t.Errorf("Outputs not preserved: %+v", back.Outputs)
	}
	if back.Report == nil || back.Report.RetainedRows != 6 {
		t.Errorf("Report not preserved: %+v", back.Report)
	}
}

func TestManifest_WriteInvalid(t *testing.T) {
	m := &Manifest{}
	if err := m.WriteFile(filepath.Join(t.TempDir(), "run.json")); err == nil {
		t.Error("Expected validation error")
	}
}
