// Package check implements the `oasgen check` subcommand: load, validate
// and assemble without writing any output.
package check

import (
	"fmt"
	"os"

	"github.com/immodel/oasgen"
)

type Cmd struct {
	Project      string `arg:"" help:"Project name under the artifacts directory."`
	ArtifactsDir string `help:"Artifacts root directory." default:"artifacts"`
}

func (c *Cmd) Run() error {
	result, err := oasgen.Generate(oasgen.Config{
		Project:      c.Project,
		ArtifactsDir: c.ArtifactsDir,
	})
	if err != nil {
		return err
	}
	result.PrintWarnings(os.Stderr)

	fmt.Printf("✓ %d resources, %d events, %d junctions\n", result.Resources, result.Events, result.Junctions)
	fmt.Printf("✓ %d endpoints, %d paths\n", result.Endpoints, len(result.Document.Paths))
	if len(result.Warnings) > 0 {
		fmt.Printf("✓ model valid with %d warnings\n", len(result.Warnings))
	} else {
		fmt.Println("✓ model valid")
	}
	return nil
}
