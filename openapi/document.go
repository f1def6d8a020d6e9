// Package openapi defines a typed OpenAPI 3.1 document model sufficient for
// the generated specifications, plus the embedded base and shared-component
// templates. Serialization goes through yaml.v3, which sorts map keys, so
// marshaling the same document twice yields identical bytes.
package openapi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the root of an OpenAPI specification.
type Document struct {
	OpenAPI    string               `yaml:"openapi" json:"openapi"`
	Info       Info                 `yaml:"info" json:"info"`
	Servers    []Server             `yaml:"servers,omitempty" json:"servers,omitempty"`
	Tags       []Tag                `yaml:"tags,omitempty" json:"tags,omitempty"`
	Paths      map[string]*PathItem `yaml:"paths" json:"paths"`
	Components Components           `yaml:"components" json:"components"`
}

type Info struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version" json:"version"`
}

type Server struct {
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Tag struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// PathItem holds at most one operation per HTTP method.
type PathItem struct {
	Get    *Operation `yaml:"get,omitempty" json:"get,omitempty"`
	Post   *Operation `yaml:"post,omitempty" json:"post,omitempty"`
	Put    *Operation `yaml:"put,omitempty" json:"put,omitempty"`
	Patch  *Operation `yaml:"patch,omitempty" json:"patch,omitempty"`
	Delete *Operation `yaml:"delete,omitempty" json:"delete,omitempty"`
}

// Operation returns the operation registered for method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	switch method {
	case "GET", "get":
		return p.Get
	case "POST", "post":
		return p.Post
	case "PUT", "put":
		return p.Put
	case "PATCH", "patch":
		return p.Patch
	case "DELETE", "delete":
		return p.Delete
	}
	return nil
}

// SetOperation registers op under method. Unknown methods are rejected so a
// typo cannot silently drop an endpoint.
func (p *PathItem) SetOperation(method string, op *Operation) error {
	switch method {
	case "GET", "get":
		p.Get = op
	case "POST", "post":
		p.Post = op
	case "PUT", "put":
		p.Put = op
	case "PATCH", "patch":
		p.Patch = op
	case "DELETE", "delete":
		p.Delete = op
	default:
		return fmt.Errorf("unsupported HTTP method %q", method)
	}
	return nil
}

// Operations returns the registered (method, operation) pairs in a fixed
// method order.
func (p *PathItem) Operations() []MethodOperation {
	var ops []MethodOperation
	for _, mo := range []MethodOperation{
		{"get", p.Get},
		{"post", p.Post},
		{"put", p.Put},
		{"patch", p.Patch},
		{"delete", p.Delete},
	} {
		if mo.Op != nil {
			ops = append(ops, mo)
		}
	}
	return ops
}

type MethodOperation struct {
	Method string
	Op     *Operation
}

type Operation struct {
	Summary     string                `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	OperationID string                `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Tags        []string              `yaml:"tags,omitempty" json:"tags,omitempty"`
	Parameters  []*Parameter          `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody          `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]*Response  `yaml:"responses" json:"responses"`
	Security    []map[string][]string `yaml:"security,omitempty" json:"security,omitempty"`
}

type RequestBody struct {
	Required bool                 `yaml:"required" json:"required"`
	Content  map[string]MediaType `yaml:"content" json:"content"`
}

type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Parameter describes either an inline parameter or a $ref to a shared one.
type Parameter struct {
	Ref         string  `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name        string  `yaml:"name,omitempty" json:"name,omitempty"`
	In          string  `yaml:"in,omitempty" json:"in,omitempty"`
	Required    bool    `yaml:"required" json:"required"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Example     any     `yaml:"example,omitempty" json:"example,omitempty"`
}

// MarshalYAML collapses reference parameters to a bare $ref node, keeping
// the always-emitted required flag from leaking into references.
func (p Parameter) MarshalYAML() (any, error) {
	if p.Ref != "" {
		return map[string]string{"$ref": p.Ref}, nil
	}
	type plain Parameter
	return plain(p), nil
}

// Response describes either an inline response or a $ref to a shared one.
type Response struct {
	Ref         string               `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Headers     map[string]*Header   `yaml:"headers,omitempty" json:"headers,omitempty"`
	Content     map[string]MediaType `yaml:"content,omitempty" json:"content,omitempty"`
}

func (r Response) MarshalYAML() (any, error) {
	if r.Ref != "" {
		return map[string]string{"$ref": r.Ref}, nil
	}
	type plain Response
	return plain(r), nil
}

type Header struct {
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

type Example struct {
	Summary string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Value   any    `yaml:"value,omitempty" json:"value,omitempty"`
}

// Schema is a JSON-schema subset covering everything the generator emits.
// Extensions carries x-* vendor keys added by post-processors.
type Schema struct {
	Ref         string             `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type        string             `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string             `yaml:"format,omitempty" json:"format,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Required    []string           `yaml:"required,omitempty" json:"required,omitempty"`
	Properties  map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Items       *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	Enum        []string           `yaml:"enum,omitempty" json:"enum,omitempty"`
	Default     any                `yaml:"default,omitempty" json:"default,omitempty"`
	Example     any                `yaml:"example,omitempty" json:"example,omitempty"`
	MaxLength   int                `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Minimum     *int               `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	Maximum     *int               `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	Pattern     string             `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Extensions  map[string]any     `yaml:",inline" json:"-"`
}

// SchemaRef returns a $ref schema pointing at a named component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

type SecurityScheme struct {
	Type         string `yaml:"type" json:"type"`
	Scheme       string `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat string `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Components struct {
	Schemas         map[string]*Schema         `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Responses       map[string]*Response       `yaml:"responses,omitempty" json:"responses,omitempty"`
	Parameters      map[string]*Parameter      `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Headers         map[string]*Header         `yaml:"headers,omitempty" json:"headers,omitempty"`
	Examples        map[string]*Example        `yaml:"examples,omitempty" json:"examples,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
}

// Marshal serializes the document to YAML.
func (d *Document) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	return out, nil
}
