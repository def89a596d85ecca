// Package run records what a dashboard run read, how it was tuned, and what
// it wrote.
package run

import (
	"encoding/json"
	"fmt"
	"os"

	"exodash/domain/catalog"
	"exodash/domain/core"
)

// CodeVersion is stamped into every manifest
var CodeVersion = "dev"

// Manifest describes one dashboard run
type Manifest struct {
	RunID       core.RunID              `json:"run_id"`
	InputPath   string                  `json:"input_path"`
	InputHash   core.Hash               `json:"input_hash"`
	Thresholds  Thresholds              `json:"thresholds"`
	Report      *catalog.CleaningReport `json:"report,omitempty"`
	Outputs     []Output                `json:"outputs"`
	Fingerprint Fingerprint             `json:"fingerprint"`
	CreatedAt   core.Timestamp          `json:"created_at"`
}

// NewManifest starts a manifest for the input at path
func NewManifest(inputPath string, inputHash core.Hash, thresholds Thresholds) *Manifest {
	return &Manifest{
		RunID:       core.NewRunID(),
		InputPath:   inputPath,
		InputHash:   inputHash,
		Thresholds:  thresholds,
		Outputs:     []Output{},
		Fingerprint: NewFingerprint(inputHash, thresholds, CodeVersion),
		CreatedAt:   core.Now(),
	}
}

// AddOutput records a file the run wrote
func (m *Manifest) AddOutput(kind OutputKind, path string) {
	m.Outputs = append(m.Outputs, Output{Kind: kind, Path: path})
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if m.RunID.IsEmpty() {
		return fmt.Errorf("run manifest: run_id cannot be empty")
	}
	if m.InputHash.IsEmpty() {
		return fmt.Errorf("run manifest: input_hash cannot be empty")
	}
	if m.Fingerprint.Hash.IsEmpty() {
		return fmt.Errorf("run manifest: fingerprint cannot be empty")
	}
	return nil
}

// WriteFile validates the manifest and writes it as indented JSON
func (m *Manifest) WriteFile(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadFile loads a manifest written by WriteFile
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return &m, nil
}
