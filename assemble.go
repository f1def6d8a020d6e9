package oasgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/immodel/oasgen/mapper"
	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/naming"
	"github.com/immodel/oasgen/openapi"
)

// Assemble builds the specification document from classified entities:
// endpoint maps from the three mappers, per-entity schemas, the tag list,
// and the shared component templates.
//
// Path/method and operation-id collisions do not abort the run: the first
// write wins and a warning is recorded for the operator.
func Assemble(project string, classified *model.Classified) (*Result, error) {
	doc, err := openapi.BaseDocument(project)
	if err != nil {
		return nil, err
	}

	var endpoints []mapper.Endpoint
	for i := range classified.Resources {
		endpoints = append(endpoints, mapper.MapResource(&classified.Resources[i])...)
	}
	for i := range classified.Events {
		endpoints = append(endpoints, mapper.MapEvent(&classified.Events[i]))
	}
	endpoints = append(endpoints, mapper.InferAggregations(classified.Events)...)

	result := &Result{
		Document:  doc,
		Resources: len(classified.Resources),
		Events:    len(classified.Events),
		Junctions: len(classified.Junctions),
		Endpoints: len(endpoints),
	}

	if err := addPaths(doc, endpoints, result); err != nil {
		return nil, err
	}
	addSchemas(doc, classified)
	addTags(doc, classified)

	shared, err := openapi.CommonComponents()
	if err != nil {
		return nil, err
	}
	doc.MergeComponents(shared)

	return result, nil
}

// addPaths registers every endpoint, keeping the first writer on a
// path/method or operation-id collision.
func addPaths(doc *openapi.Document, endpoints []mapper.Endpoint, result *Result) error {
	seenOps := make(map[string]bool)

	for i := range endpoints {
		ep := &endpoints[i]

		item := doc.Paths[ep.Path]
		if item == nil {
			item = &openapi.PathItem{}
			doc.Paths[ep.Path] = item
		}

		if existing := item.Operation(ep.Method); existing != nil {
			result.Warnings = append(result.Warnings, model.Warning{
				Code: model.WarnPathCollision,
				Message: fmt.Sprintf("%s %s already defined by %s, dropping %s",
					ep.Method, ep.Path, existing.OperationID, ep.OperationID),
			})
			continue
		}

		if seenOps[ep.OperationID] {
			result.Warnings = append(result.Warnings, model.Warning{
				Code:    model.WarnDuplicateOperationID,
				Message: fmt.Sprintf("duplicate operation id %s at %s %s", ep.OperationID, ep.Method, ep.Path),
			})
		}
		seenOps[ep.OperationID] = true

		if err := item.SetOperation(ep.Method, buildOperation(ep)); err != nil {
			return err
		}
	}
	return nil
}

// buildOperation turns an endpoint definition into an OpenAPI operation.
func buildOperation(ep *mapper.Endpoint) *openapi.Operation {
	op := &openapi.Operation{
		Summary:     ep.Summary,
		Description: ep.Description,
		OperationID: ep.OperationID,
		Tags:        ep.Tags,
		Parameters:  ep.QueryParameters,
		Responses:   buildResponses(ep),
		Security:    []map[string][]string{{"BearerAuth": {}}},
	}

	if ep.RequestBody != nil {
		op.RequestBody = &openapi.RequestBody{
			Required: true,
			Content: map[string]openapi.MediaType{
				"application/json": {Schema: ep.RequestBody},
			},
		}
	}

	if ep.RequiresIdempotencyKey {
		op.Parameters = append(op.Parameters, &openapi.Parameter{
			Ref: "#/components/parameters/IdempotencyKey",
		})
	}

	return op
}

// buildResponses assembles the response map. Aggregation queries carry the
// reduced 200/404/500 set; everything else gets the method-specific success
// code plus the full referenced error catalogue.
func buildResponses(ep *mapper.Endpoint) map[string]*openapi.Response {
	responses := make(map[string]*openapi.Response)

	if ep.Aggregation {
		responses["200"] = successResponse("成功", ep.Response)
		responses["404"] = &openapi.Response{Ref: "#/components/responses/NotFound"}
		responses["500"] = &openapi.Response{Ref: "#/components/responses/InternalServerError"}
		return responses
	}

	switch strings.ToUpper(ep.Method) {
	case "GET":
		responses["200"] = successResponse("成功", ep.Response)
	case "POST":
		responses["201"] = successResponse("作成成功", ep.Response)
	case "PUT", "PATCH":
		responses["200"] = successResponse("更新成功", ep.Response)
	case "DELETE":
		responses["204"] = &openapi.Response{Description: "削除成功"}
	}

	for code, name := range map[string]string{
		"400": "BadRequest",
		"401": "Unauthorized",
		"403": "Forbidden",
		"404": "NotFound",
		"409": "Conflict",
		"422": "UnprocessableEntity",
		"500": "InternalServerError",
	} {
		responses[code] = &openapi.Response{Ref: "#/components/responses/" + name}
	}
	return responses
}

func successResponse(description string, schema *openapi.Schema) *openapi.Response {
	resp := &openapi.Response{Description: description}
	if schema != nil {
		resp.Content = map[string]openapi.MediaType{
			"application/json": {Schema: schema},
		}
	}
	return resp
}

// addSchemas registers one schema per entity under its English name.
// Template-provided schemas win over entity schemas on a name clash.
func addSchemas(doc *openapi.Document, classified *model.Classified) {
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = make(map[string]*openapi.Schema)
	}
	for _, e := range classified.All() {
		if _, exists := doc.Components.Schemas[e.English]; exists {
			continue
		}
		doc.Components.Schemas[e.English] = entitySchema(&e)
	}
}

// entitySchema builds the canonical schema for one entity: camelCase
// properties with the Japanese label as description. The primary key and
// ID-suffixed fields are required unless the input states nullability
// explicitly.
func entitySchema(e *model.Entity) *openapi.Schema {
	properties := make(map[string]*openapi.Schema)
	var required []string

	for i := range e.Attributes {
		attr := &e.Attributes[i]
		name := naming.ToCamelCase(attr.English)
		properties[name] = propertySchemaFor(attr)

		if entityFieldRequired(attr) {
			required = append(required, name)
		}
	}

	return &openapi.Schema{
		Type:        "object",
		Required:    required,
		Properties:  properties,
		Description: e.Japanese,
	}
}

func entityFieldRequired(attr *model.Attribute) bool {
	if attr.IsPrimaryKey {
		return true
	}
	if attr.Nullable != nil {
		return !*attr.Nullable
	}
	return strings.HasSuffix(attr.English, "ID")
}

func propertySchemaFor(attr *model.Attribute) *openapi.Schema {
	wt := mapper.MapStorageType(attr.Type)
	s := &openapi.Schema{
		Type:        wt.Type,
		Format:      wt.Format,
		Description: attr.Japanese,
	}
	upper := strings.ToUpper(attr.Type)
	if (upper == "VARCHAR" || upper == "CHAR") && attr.Length > 0 {
		s.MaxLength = attr.Length
	}
	return s
}

// addTags derives the tag list: one tag per pluralized resource name plus
// the synthetic Approvals and Events groupings, sorted by name.
func addTags(doc *openapi.Document, classified *model.Classified) {
	names := map[string]bool{
		"Approvals": true,
		"Events":    true,
	}
	for i := range classified.Resources {
		names[naming.Pluralize(classified.Resources[i].English)] = true
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	tags := make([]openapi.Tag, 0, len(sorted))
	for _, name := range sorted {
		tags = append(tags, openapi.Tag{
			Name:        name,
			Description: name + "関連のエンドポイント",
		})
	}
	doc.Tags = tags
}
