// Package report implements the `oasgen report` subcommand: render the
// markdown validation report from the database test harness output.
package report

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/immodel/oasgen/harness"
	"github.com/immodel/oasgen/sink"
)

type Cmd struct {
	Project      string `arg:"" help:"Project name under the artifacts directory."`
	ArtifactsDir string `help:"Artifacts root directory." default:"artifacts"`
	Out          string `help:"Output file name within the project directory." default:"test_report.md"`
}

func (c *Cmd) Run() error {
	dir := filepath.Join(c.ArtifactsDir, c.Project)
	results, err := harness.Load(dir)
	if err != nil {
		return err
	}

	r := &harness.Report{Project: c.Project}
	out := sink.NewFilesystem(c.ArtifactsDir)
	outPath := path.Join(c.Project, c.Out)
	if err := out.WriteFile(context.Background(), outPath, []byte(r.Render(results))); err != nil {
		return err
	}

	fmt.Printf("✓ %d queries\n", len(results.Queries))
	fmt.Printf("✓ wrote %s\n", filepath.Join(c.ArtifactsDir, outPath))
	return nil
}
