package oasgen

import (
	"fmt"
	"io"

	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/openapi"
)

// Result is the outcome of one generation run.
type Result struct {
	Document *openapi.Document

	// Warnings collects non-fatal issues from validation and assembly.
	Warnings []model.Warning

	// Counts over the processed model.
	Resources int
	Events    int
	Junctions int
	Endpoints int
}

// PrintWarnings writes each warning on its own line, typically to stderr.
func (r *Result) PrintWarnings(w io.Writer) {
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}
