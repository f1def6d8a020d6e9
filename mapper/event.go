package mapper

import (
	"fmt"
	"strings"

	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/naming"
	"github.com/immodel/oasgen/openapi"
)

// MapEvent derives the action endpoint for an event entity, dispatching on
// the matched name pattern. Unmatched names get the generic event-recording
// endpoint. Every event endpoint is a mutation and requires an idempotency
// key.
func MapEvent(e *model.Entity) Endpoint {
	m, ok := MatchEventName(e.English)
	if !ok {
		return genericEventEndpoint(e)
	}

	switch m.Pattern.Canonical() {
	case PatternStart:
		return startEndpoint(e, m)
	case PatternComplete:
		return completeEndpoint(e, m)
	case PatternCancel:
		return cancelEndpoint(e, m)
	case PatternAssign:
		return assignEndpoint(e, m)
	case PatternReplace:
		return replaceEndpoint(e, m)
	case PatternEvaluate:
		return evaluateEndpoint(e, m)
	case PatternApprove:
		return approveEndpoint(e, m)
	case PatternReject:
		return rejectEndpoint(e, m)
	case PatternCreate:
		return createEventEndpoint(e, m)
	case PatternUpdate:
		return updateEventEndpoint(e, m)
	}
	return genericEventEndpoint(e)
}

// actionVerbEndpoint covers the single-verb patterns posting to
// /api/{plural}/{id}/{action} on the event's own base resource.
func actionVerbEndpoint(e *model.Entity, base, action, summary, description string) Endpoint {
	plural := pluralSnake(base)
	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}/%s", plural, action),
		Method:      "POST",
		OperationID: action + base,
		Summary:     summary,
		Description: description,
		Tags:        []string{pascalTag(plural)},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func startEndpoint(e *model.Entity, m Match) Endpoint {
	description := e.Japanese + "イベントを記録します。\n\n" +
		"このエンドポイントは" + m.Base + "リソースの開始を記録するビジネスイベントです。"
	return actionVerbEndpoint(e, m.Base, "start", m.Base+"を開始する", description)
}

func completeEndpoint(e *model.Entity, m Match) Endpoint {
	action := "complete"
	if m.Pattern == PatternFinish {
		action = "finish"
	}
	return actionVerbEndpoint(e, m.Base, action, m.Base+"を完了する", e.Japanese+"イベントを記録します。")
}

func cancelEndpoint(e *model.Entity, m Match) Endpoint {
	action := "cancel"
	if m.Pattern == PatternAbort {
		action = "abort"
	}
	description := e.Japanese + "イベントを記録します。\n\n注意: 通常、キャンセル理由（reason）が必須です。"
	return actionVerbEndpoint(e, m.Base, action, m.Base+"をキャンセルする", description)
}

// subjectSegments returns the plural path segment and singular identifier
// segment for an assignment subject. Person-like subjects use the semantic
// "members" naming.
func subjectSegments(subject string) (plural, singular string) {
	if strings.EqualFold(subject, "person") {
		return "members", "member"
	}
	return pluralSnake(subject), naming.ToSnakeCase(subject)
}

func assignEndpoint(e *model.Entity, m Match) Endpoint {
	subject := m.Base
	subjectPlural, _ := subjectSegments(subject)
	parent := inferParentResource(e)
	parentPlural := pluralSnake(parent)

	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}/%s", parentPlural, subjectPlural),
		Method:      "POST",
		OperationID: "assign" + subject + "To" + parent,
		Summary:     parent + "に" + subject + "をアサインする",
		Description: e.Japanese + "を記録します。",
		Tags:        []string{pascalTag(parentPlural), pascalTag(subjectPlural)},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func replaceEndpoint(e *model.Entity, m Match) Endpoint {
	subject := m.Base
	subjectPlural, subjectSingular := subjectSegments(subject)
	parent := inferParentResource(e)
	parentPlural := pluralSnake(parent)

	description := e.Japanese + "イベントを記録します。\n\n" +
		"注意: 新しい" + subject + "がnullの場合、離脱として扱います。"

	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}/%s/{%sId}/replace", parentPlural, subjectPlural, subjectSingular),
		Method:      "PUT",
		OperationID: "replace" + subject + "In" + parent,
		Summary:     parent + "の" + subject + "を交代させる",
		Description: description,
		Tags:        []string{pascalTag(parentPlural), pascalTag(subjectPlural)},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func evaluateEndpoint(e *model.Entity, m Match) Endpoint {
	subject := m.Base
	subjectPlural := pluralSnake(subject)
	parent := inferParentResource(e)
	parentPlural := pluralSnake(parent)

	action := "evaluate"
	if m.Pattern == PatternAssess {
		action = "assess"
	}

	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}/%s", parentPlural, subjectPlural),
		Method:      "POST",
		OperationID: action + subject + "For" + parent,
		Summary:     parent + "の" + subject + "を評価する",
		Description: e.Japanese + "イベントを記録します。",
		Tags:        []string{pascalTag(parentPlural), pascalTag(subjectPlural)},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func approveEndpoint(e *model.Entity, m Match) Endpoint {
	plural := pluralSnake(m.Base)
	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}/approve", plural),
		Method:      "POST",
		OperationID: "approve" + m.Base,
		Summary:     m.Base + "を承認する",
		Description: e.Japanese + "イベントを記録します。",
		Tags:        []string{pascalTag(plural), "Approvals"},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func rejectEndpoint(e *model.Entity, m Match) Endpoint {
	plural := pluralSnake(m.Base)
	description := e.Japanese + "イベントを記録します。\n\n注意: 通常、却下理由（reason）が必須です。"
	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}/reject", plural),
		Method:      "POST",
		OperationID: "reject" + m.Base,
		Summary:     m.Base + "を却下する",
		Description: description,
		Tags:        []string{pascalTag(plural), "Approvals"},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func createEventEndpoint(e *model.Entity, m Match) Endpoint {
	plural := pluralSnake(m.Base)
	return Endpoint{
		Path:        "/api/" + plural,
		Method:      "POST",
		OperationID: "create" + m.Base,
		Summary:     "新しい" + m.Base + "を作成する",
		Description: e.Japanese + "を記録します。",
		Tags:        []string{pascalTag(plural)},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func updateEventEndpoint(e *model.Entity, m Match) Endpoint {
	plural := pluralSnake(m.Base)
	description := e.Japanese + "を記録します。\n\n" +
		"注意: イミュータブルデータモデルでは、可能な限り特定のアクションイベント（Start, Complete など）を使用することを推奨します。"
	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}", plural),
		Method:      "PATCH",
		OperationID: "update" + m.Base,
		Summary:     m.Base + "情報を部分更新する",
		Description: description,
		Tags:        []string{pascalTag(plural)},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

func genericEventEndpoint(e *model.Entity) Endpoint {
	parent := inferParentResource(e)
	parentPlural := pluralSnake(parent)

	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{id}/events", parentPlural),
		Method:      "POST",
		OperationID: "record" + e.English,
		Summary:     e.Japanese + "を記録する",
		Description: e.Japanese + "イベントを記録します。",
		Tags:        []string{pascalTag(parentPlural), "Events"},

		RequestBody:            commandSchema(e),
		Response:               responseSchema(e),
		RequiresIdempotencyKey: true,
	}
}

// commandSchema builds the event request body: the entity's attributes
// minus the primary key, the recording timestamps, and the foreign key to
// the inferred parent (that one travels in the path). All remaining fields
// are required.
func commandSchema(e *model.Entity) *openapi.Schema {
	parent := inferParentResource(e)
	properties := make(map[string]*openapi.Schema)
	var required []string

	for i := range e.Attributes {
		attr := &e.Attributes[i]
		if attr.IsPrimaryKey || attr.English == "CreatedAt" || attr.English == "UpdatedAt" {
			continue
		}
		if attr.English == parent+"ID" {
			continue
		}

		name := naming.ToCamelCase(attr.English)
		properties[name] = propertySchema(attr.Type, attr.Japanese, 0)
		required = append(required, name)
	}

	return &openapi.Schema{Type: "object", Required: required, Properties: properties}
}

// responseSchema builds the event response body: every attribute plus the
// generated createdAt recording timestamp.
func responseSchema(e *model.Entity) *openapi.Schema {
	properties := make(map[string]*openapi.Schema)
	for i := range e.Attributes {
		attr := &e.Attributes[i]
		properties[naming.ToCamelCase(attr.English)] = propertySchema(attr.Type, attr.Japanese, 0)
	}
	properties["createdAt"] = &openapi.Schema{
		Type:        "string",
		Format:      "date-time",
		Description: "イベント記録日時",
	}
	return &openapi.Schema{Type: "object", Properties: properties}
}
