package mapper

import (
	"fmt"
	"strings"

	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/naming"
	"github.com/immodel/oasgen/openapi"
)

// Auto-maintained timestamp attributes, excluded from request bodies and
// filter parameters.
var reservedAttributes = map[string]bool{
	"CreatedAt": true,
	"UpdatedAt": true,
	"DeletedAt": true,
}

// MapResource derives the five standard CRUD endpoints for a resource
// entity: list, get, create, update, delete.
func MapResource(e *model.Entity) []Endpoint {
	return []Endpoint{
		listEndpoint(e),
		getEndpoint(e),
		createEndpoint(e),
		updateEndpoint(e),
		deleteEndpoint(e),
	}
}

func listEndpoint(e *model.Entity) Endpoint {
	plural := pluralSnake(e.English)

	response := &openapi.Schema{
		Type:     "object",
		Required: []string{"total", "limit", "offset", plural},
		Properties: map[string]*openapi.Schema{
			"total":  {Type: "integer", Description: "総件数", Example: 150},
			"limit":  {Type: "integer", Description: "1ページあたりの件数", Example: 50},
			"offset": {Type: "integer", Description: "スキップした件数", Example: 0},
			plural: {
				Type:        "array",
				Description: e.Japanese + "のリスト",
				Items:       openapi.SchemaRef(e.English),
			},
		},
	}

	return Endpoint{
		Path:        "/api/" + plural,
		Method:      "GET",
		OperationID: "list" + e.English + "s",
		Summary:     e.English + "一覧を取得",
		Description: e.Japanese + "の一覧を取得します。\n\nページネーション、フィルタリング、ソートに対応しています。",
		Tags:        []string{pascalTag(plural)},

		QueryParameters: listQueryParameters(e),
		Response:        response,
	}
}

func getEndpoint(e *model.Entity) Endpoint {
	plural := pluralSnake(e.English)
	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{%s}", plural, pkParamName(e)),
		Method:      "GET",
		OperationID: "get" + e.English,
		Summary:     e.English + "詳細を取得",
		Description: e.Japanese + "の詳細情報を取得します。",
		Tags:        []string{pascalTag(plural)},
		Response:    openapi.SchemaRef(e.English),
	}
}

func createEndpoint(e *model.Entity) Endpoint {
	plural := pluralSnake(e.English)
	return Endpoint{
		Path:        "/api/" + plural,
		Method:      "POST",
		OperationID: "create" + e.English,
		Summary:     "新しい" + e.English + "を作成",
		Description: e.Japanese + "を新規作成します。",
		Tags:        []string{pascalTag(plural)},

		RequestBody:            createSchema(e),
		Response:               openapi.SchemaRef(e.English),
		RequiresIdempotencyKey: true,
	}
}

func updateEndpoint(e *model.Entity) Endpoint {
	plural := pluralSnake(e.English)
	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{%s}", plural, pkParamName(e)),
		Method:      "PATCH",
		OperationID: "update" + e.English,
		Summary:     e.English + "情報を部分更新",
		Description: e.Japanese + "の情報を部分更新します。\n\n更新したいフィールドのみ指定してください。",
		Tags:        []string{pascalTag(plural)},

		RequestBody:            updateSchema(e),
		Response:               openapi.SchemaRef(e.English),
		RequiresIdempotencyKey: true,
	}
}

func deleteEndpoint(e *model.Entity) Endpoint {
	plural := pluralSnake(e.English)
	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{%s}", plural, pkParamName(e)),
		Method:      "DELETE",
		OperationID: "delete" + e.English,
		Summary:     e.English + "を削除",
		Description: e.Japanese + "を削除します（論理削除）。\n\nイミュータブルデータモデルでは物理削除を行わず、DeletedAtフィールドに現在時刻を記録します。",
		Tags:        []string{pascalTag(plural)},
	}
}

// listQueryParameters derives filter parameters per attribute, then appends
// the pagination and sort parameters.
func listQueryParameters(e *model.Entity) []*openapi.Parameter {
	var params []*openapi.Parameter

	for i := range e.Attributes {
		attr := &e.Attributes[i]
		if attr.IsPrimaryKey || reservedAttributes[attr.English] {
			continue
		}

		name := naming.ToCamelCase(attr.English)
		attrType := strings.ToUpper(attr.Type)

		switch {
		case attrType == "VARCHAR" || attrType == "TEXT" || attrType == "CHAR":
			params = append(params, queryParam(name, &openapi.Schema{Type: "string"}, attr.Japanese+"（部分一致）"))

		case hasIDSuffix(attr.English) && (attrType == "INT" || attrType == "BIGINT"):
			params = append(params, queryParam(name, &openapi.Schema{Type: "integer"}, attr.Japanese+"でフィルタ"))

		case attrType == "DATE":
			params = append(params,
				queryParam(name+"From", &openapi.Schema{Type: "string", Format: "date"}, attr.Japanese+"範囲開始"),
				queryParam(name+"To", &openapi.Schema{Type: "string", Format: "date"}, attr.Japanese+"範囲終了"))

		case attrType == "TIMESTAMP":
			params = append(params,
				queryParam(name+"From", &openapi.Schema{Type: "string", Format: "date-time"}, attr.Japanese+"範囲開始"),
				queryParam(name+"To", &openapi.Schema{Type: "string", Format: "date-time"}, attr.Japanese+"範囲終了"))

		case attrType == "BOOLEAN":
			params = append(params, queryParam(name, &openapi.Schema{Type: "boolean"}, attr.Japanese+"でフィルタ"))
		}
	}

	params = append(params, paginationParams("1ページあたりの取得件数", "スキップする件数")...)

	// Sort covers every non-primary-key field, ascending and descending.
	var sortFields []string
	for i := range e.Attributes {
		if e.Attributes[i].IsPrimaryKey {
			continue
		}
		field := naming.ToCamelCase(e.Attributes[i].English)
		sortFields = append(sortFields, field, "-"+field)
	}
	params = append(params, queryParam("sort",
		&openapi.Schema{Type: "string", Enum: sortFields, Default: "-createdAt"},
		"ソート順（-プレフィックスで降順）"))

	return params
}

func queryParam(name string, schema *openapi.Schema, description string) *openapi.Parameter {
	return &openapi.Parameter{
		Name:        name,
		In:          "query",
		Required:    false,
		Schema:      schema,
		Description: description,
	}
}

func paginationParams(limitDescription, offsetDescription string) []*openapi.Parameter {
	one, zero, max := 1, 0, 500
	return []*openapi.Parameter{
		queryParam("limit",
			&openapi.Schema{Type: "integer", Minimum: &one, Maximum: &max, Default: 50},
			limitDescription),
		queryParam("offset",
			&openapi.Schema{Type: "integer", Minimum: &zero, Default: 0},
			offsetDescription),
	}
}

// createSchema builds the creation request body: primary key and reserved
// timestamps are excluded. A field is required when its name carries the ID
// suffix, its label ends in the name marker 名, or the input marks it
// explicitly non-nullable.
func createSchema(e *model.Entity) *openapi.Schema {
	properties := make(map[string]*openapi.Schema)
	required := []string{}

	for i := range e.Attributes {
		attr := &e.Attributes[i]
		if attr.IsPrimaryKey || reservedAttributes[attr.English] {
			continue
		}

		name := naming.ToCamelCase(attr.English)
		properties[name] = propertySchema(attr.Type, attr.Japanese, attr.Length)

		if attributeRequired(attr) {
			required = append(required, name)
		}
	}

	return &openapi.Schema{Type: "object", Required: required, Properties: properties}
}

// attributeRequired applies explicit nullability when the input carries
// it, otherwise the name-based heuristic.
func attributeRequired(attr *model.Attribute) bool {
	if attr.Nullable != nil {
		return !*attr.Nullable
	}
	return hasIDSuffix(attr.English) || strings.HasSuffix(attr.Japanese, "名")
}

// updateSchema builds the partial-update request body: same property set as
// creation but with every field optional.
func updateSchema(e *model.Entity) *openapi.Schema {
	properties := make(map[string]*openapi.Schema)

	for i := range e.Attributes {
		attr := &e.Attributes[i]
		if attr.IsPrimaryKey || reservedAttributes[attr.English] {
			continue
		}
		properties[naming.ToCamelCase(attr.English)] = propertySchema(attr.Type, attr.Japanese, attr.Length)
	}

	return &openapi.Schema{
		Type:        "object",
		Properties:  properties,
		Description: "更新したいフィールドのみ指定",
	}
}
