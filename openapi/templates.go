package openapi

import (
	"embed"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// BaseDocument loads the embedded base template and stamps the project name
// into the info title.
func BaseDocument(project string) (*Document, error) {
	raw, err := templateFS.ReadFile("templates/openapi-base.yaml")
	if err != nil {
		return nil, fmt.Errorf("read base template: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}
	doc.Info.Title = project + " API"
	if doc.Paths == nil {
		doc.Paths = make(map[string]*PathItem)
	}
	return &doc, nil
}

// CommonComponents loads the embedded shared components: the RFC 7807 error
// schema, referenced error responses, the idempotency-key parameter, and the
// request tracing header.
func CommonComponents() (*Components, error) {
	raw, err := templateFS.ReadFile("templates/common-components.yaml")
	if err != nil {
		return nil, fmt.Errorf("read common components: %w", err)
	}
	var wrapper struct {
		Components Components `yaml:"components"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("parse common components: %w", err)
	}
	if p := wrapper.Components.Parameters["IdempotencyKey"]; p != nil && p.Example == nil {
		p.Example = ExampleIdempotencyKey()
	}
	return &wrapper.Components, nil
}

// ExampleIdempotencyKey returns the ULID shown as the Idempotency-Key
// example. Timestamp and entropy are fixed so regeneration stays
// byte-identical.
func ExampleIdempotencyKey() string {
	entropy := rand.New(rand.NewSource(1))
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// MergeComponents copies the shared components into the document without
// overwriting keys the document already defines.
func (d *Document) MergeComponents(c *Components) {
	d.Components.Schemas = mergeAbsent(d.Components.Schemas, c.Schemas)
	d.Components.Responses = mergeAbsent(d.Components.Responses, c.Responses)
	d.Components.Parameters = mergeAbsent(d.Components.Parameters, c.Parameters)
	d.Components.Headers = mergeAbsent(d.Components.Headers, c.Headers)
	d.Components.Examples = mergeAbsent(d.Components.Examples, c.Examples)
	d.Components.SecuritySchemes = mergeAbsent(d.Components.SecuritySchemes, c.SecuritySchemes)
}

func mergeAbsent[V any](dst, src map[string]V) map[string]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		if _, ok := dst[k]; !ok {
			dst[k] = v
		}
	}
	return dst
}
