package mapper

import (
	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/naming"
	"github.com/immodel/oasgen/openapi"
)

// Endpoint is one derived API endpoint, independent of its position in the
// final document. The assembler turns endpoints into OpenAPI operations.
type Endpoint struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Description string
	Tags        []string

	QueryParameters []*openapi.Parameter
	RequestBody     *openapi.Schema
	Response        *openapi.Schema

	// RequiresIdempotencyKey adds the shared Idempotency-Key header
	// parameter to the operation.
	RequiresIdempotencyKey bool

	// Aggregation endpoints carry the reduced response set (200/404/500)
	// instead of the full mutation error catalogue.
	Aggregation bool
}

// pluralSnake converts a PascalCase entity name to its plural snake_case
// path segment: "OrderItem" becomes "order_items".
func pluralSnake(name string) string {
	return naming.Pluralize(naming.ToSnakeCase(name))
}

// pascalTag converts a plural snake_case path segment back to the
// PascalCase tag name: "order_items" becomes "OrderItems".
func pascalTag(pluralSegment string) string {
	return naming.ToPascalCase(pluralSegment)
}

// pkParamName returns the camelCase path parameter name for the entity's
// primary key, defaulting to "id" when no attribute is marked.
func pkParamName(e *model.Entity) string {
	if pk := e.PrimaryKey(); pk != nil {
		return naming.ToCamelCase(pk.English)
	}
	return "id"
}

// inferParentResource finds the parent resource of an event: the first
// non-primary-key attribute ending in "ID" with the suffix stripped, then
// the base subject from the event name, then a literal placeholder.
func inferParentResource(e *model.Entity) string {
	for i := range e.Attributes {
		attr := &e.Attributes[i]
		if !attr.IsPrimaryKey && hasIDSuffix(attr.English) {
			return attr.English[:len(attr.English)-2]
		}
	}
	if m, ok := MatchEventName(e.English); ok {
		return m.Base
	}
	return "Resource"
}

func hasIDSuffix(name string) bool {
	return len(name) > 2 && name[len(name)-2:] == "ID"
}
