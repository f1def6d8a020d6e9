// Command oasgen generates OpenAPI 3.1 specifications from a classified
// entity model.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/immodel/oasgen/cmd/oasgen/internal/check"
	"github.com/immodel/oasgen/cmd/oasgen/internal/gen"
	"github.com/immodel/oasgen/cmd/oasgen/internal/report"
	"github.com/immodel/oasgen/cmd/oasgen/internal/serve"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate the OpenAPI specification for a project."`
	Check   check.Cmd  `cmd:"" help:"Validate the entity model without writing output."`
	Report  report.Cmd `cmd:"" help:"Render the database test harness report."`
	Serve   serve.Cmd  `cmd:"" help:"Serve the generated specification and operation index."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("oasgen"),
		kong.Description("OpenAPI specification generator for immutable data models."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
