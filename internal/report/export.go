package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"doccleaner/internal/failure"
)

const (
	// ManifestName is the ordered record list consumed by restore.
	ManifestName = "doccleaner_result_map.json"
	// PlanName is the per-topic organization summary.
	PlanName = "doccleaner_organization_plan.json"
)

// Paths locates the files written by Export.
type Paths struct {
	Manifest string
	Plan     string
}

// Export writes the manifest and the organization plan into outputPath.
func Export(fsys afero.Fs, records []Record, outputPath string, folders Folders) (Paths, error) {
	paths := Paths{
		Manifest: filepath.Join(outputPath, ManifestName),
		Plan:     filepath.Join(outputPath, PlanName),
	}
	if records == nil {
		records = []Record{}
	}
	if err := writeJSON(fsys, paths.Manifest, records); err != nil {
		return Paths{}, failure.Wrap(failure.ErrProcessing, "report", "write manifest", paths.Manifest, err)
	}
	plan := BuildPlan(records, outputPath, folders)
	if err := writeJSON(fsys, paths.Plan, plan); err != nil {
		return Paths{}, failure.Wrap(failure.ErrProcessing, "report", "write plan", paths.Plan, err)
	}
	return paths, nil
}

// LoadManifest reads a manifest written by Export.
func LoadManifest(fsys afero.Fs, path string) ([]Record, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return records, nil
}

func writeJSON(fsys afero.Fs, path string, value any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fsys, tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
