// Package gen implements the `oasgen gen` subcommand.
package gen

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/immodel/oasgen"
	"github.com/immodel/oasgen/enhance"
	"github.com/immodel/oasgen/sink"
)

type Cmd struct {
	Project      string `arg:"" help:"Project name under the artifacts directory."`
	ArtifactsDir string `help:"Artifacts root directory." default:"artifacts"`
	Enhance      bool   `help:"Apply Nablarch/Spring metadata post-processing."`
	Out          string `help:"Output file name within the project directory." default:"openapi.yaml"`
}

func (c *Cmd) Run() error {
	cfg := oasgen.Config{
		Project:      c.Project,
		ArtifactsDir: c.ArtifactsDir,
	}
	if c.Enhance {
		cfg.Enhancer = enhance.NewNablarch()
	}

	result, err := oasgen.Generate(cfg)
	if err != nil {
		return err
	}
	result.PrintWarnings(os.Stderr)

	data, err := result.Document.Marshal()
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	out := sink.NewFilesystem(c.ArtifactsDir)
	outPath := path.Join(c.Project, c.Out)
	if err := out.WriteFile(context.Background(), outPath, data); err != nil {
		return err
	}

	fmt.Printf("✓ %d resources, %d events, %d junctions\n", result.Resources, result.Events, result.Junctions)
	fmt.Printf("✓ %d endpoints, %d paths\n", result.Endpoints, len(result.Document.Paths))
	fmt.Printf("✓ wrote %s\n", path.Join(c.ArtifactsDir, outPath))
	return nil
}
