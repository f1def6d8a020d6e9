package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Input file names inside an artifacts project directory.
const (
	ClassifiedFile = "entities_classified.json"
	ModelFile      = "model.json"
)

// MissingInputError reports every required input file that was absent, so
// the operator sees the full list at once instead of one path per run.
type MissingInputError struct {
	Paths []string
}

func (e *MissingInputError) Error() string {
	return "missing input files: " + strings.Join(e.Paths, ", ")
}

// Load reads and parses both input documents for a project under the given
// artifacts directory. Absent files produce a *MissingInputError naming all
// missing paths.
func Load(artifactsDir, project string) (*Classified, *Model, error) {
	dir := filepath.Join(artifactsDir, project)
	classifiedPath := filepath.Join(dir, ClassifiedFile)
	modelPath := filepath.Join(dir, ModelFile)

	var missing []string
	for _, p := range []string{classifiedPath, modelPath} {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &MissingInputError{Paths: missing}
	}

	var classified Classified
	if err := readJSON(classifiedPath, &classified); err != nil {
		return nil, nil, err
	}
	var m Model
	if err := readJSON(modelPath, &m); err != nil {
		return nil, nil, err
	}
	return &classified, &m, nil
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
