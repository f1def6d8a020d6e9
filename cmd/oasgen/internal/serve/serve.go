// Package serve implements the `oasgen serve` subcommand: a development
// server exposing the generated document and a filterable operation index.
package serve

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/schema"

	"github.com/immodel/oasgen"
	"github.com/immodel/oasgen/enhance"
	"github.com/immodel/oasgen/openapi"
)

type Cmd struct {
	Project      string `arg:"" help:"Project name under the artifacts directory."`
	ArtifactsDir string `help:"Artifacts root directory." default:"artifacts"`
	Enhance      bool   `help:"Apply Nablarch/Spring metadata post-processing."`
	Port         int    `help:"Port to listen on." default:"9000" short:"p"`
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

	doc, err := result.Document.Marshal()
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	handler := NewHandler(doc, OperationIndex(result.Document))

	addr := fmt.Sprintf("localhost:%d", c.Port)
	fmt.Printf("oasgen serve listening on http://%s\n", addr)
	return http.ListenAndServe(addr, handler)
}

// Operation is one row of the operation index.
type Operation struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operationId"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// OperationIndex flattens the document's paths into a sorted operation
// list.
func OperationIndex(doc *openapi.Document) []Operation {
	var ops []Operation
	for path, item := range doc.Paths {
		for _, mo := range item.Operations() {
			ops = append(ops, Operation{
				Method:      strings.ToUpper(mo.Method),
				Path:        path,
				OperationID: mo.Op.OperationID,
				Summary:     mo.Op.Summary,
				Tags:        mo.Op.Tags,
			})
		}
	}
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})
	return ops
}

// filter is decoded from the /operations query string.
type filter struct {
	Tag    string `schema:"tag"`
	Method string `schema:"method"`
	Path   string `schema:"path"`
}

func (f *filter) matches(op Operation) bool {
	if f.Method != "" && !strings.EqualFold(f.Method, op.Method) {
		return false
	}
	if f.Path != "" && !strings.Contains(op.Path, f.Path) {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range op.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// NewHandler serves the marshaled document at /openapi.yaml and the
// operation index at /operations.
func NewHandler(doc []byte, index []Operation) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Write(doc)
	})

	mux.HandleFunc("/operations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var f filter
		if err := queryDecoder.Decode(&f, r.URL.Query()); err != nil {
			http.Error(w, "bad query: "+err.Error(), http.StatusBadRequest)
			return
		}

		matched := make([]Operation, 0, len(index))
		for _, op := range index {
			if f.matches(op) {
				matched = append(matched, op)
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(map[string]any{
			"total":      len(matched),
			"operations": matched,
		})
	})

	return mux
}
