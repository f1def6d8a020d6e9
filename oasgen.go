// Package oasgen assembles an OpenAPI 3.1 specification from a classified
// immutable data model: CRUD endpoints for resources, action endpoints for
// events, and derived state-aggregation queries over event streams.
//
// The whole run is a single synchronous pass over immutable inputs. Given
// the same inputs the output is byte-identical, since downstream tooling
// keys on stable operation IDs and paths.
package oasgen

import (
	"fmt"

	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/openapi"
)

// Enhancer is the optional post-processor applied to the assembled
// document. It receives the whole document together with the inputs it was
// generated from and returns the decorated document.
type Enhancer interface {
	Enhance(doc *openapi.Document, classified *model.Classified, m *model.Model) (*openapi.Document, error)
}

// Config controls a generation run.
type Config struct {
	// Project is the model identifier under the artifacts directory.
	Project string

	// ArtifactsDir is the root directory holding per-project inputs.
	// Defaults to "artifacts".
	ArtifactsDir string

	// Enhancer, when set, is applied to the document after assembly.
	Enhancer Enhancer
}

func (c *Config) applyDefaults() {
	if c.ArtifactsDir == "" {
		c.ArtifactsDir = "artifacts"
	}
}

// Generate loads the project's classified entities and relationship model,
// validates them, assembles the specification document, and applies the
// configured enhancer.
func Generate(cfg Config) (*Result, error) {
	cfg.applyDefaults()
	if cfg.Project == "" {
		return nil, fmt.Errorf("project name is required")
	}

	classified, m, err := model.Load(cfg.ArtifactsDir, cfg.Project)
	if err != nil {
		return nil, err
	}

	warnings, err := model.Validate(classified, m)
	if err != nil {
		return nil, err
	}

	result, err := Assemble(cfg.Project, classified)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(warnings, result.Warnings...)

	if cfg.Enhancer != nil {
		doc, err := cfg.Enhancer.Enhance(result.Document, classified, m)
		if err != nil {
			return nil, fmt.Errorf("enhance document: %w", err)
		}
		result.Document = doc
	}
	return result, nil
}
