package mapper

import (
	"fmt"
	"strings"

	"github.com/immodel/oasgen/model"
	"github.com/immodel/oasgen/naming"
	"github.com/immodel/oasgen/openapi"
)

// InferAggregations derives the read-side query endpoints from event
// entities: latest state and chronological history for events with a
// datetime attribute, current assignments for Assign events paired with a
// Replace event, and a statistics summary for every event.
//
// Latest, history, and summary derive their parent resource from the event
// name; the current-assignments endpoint derives it from the attributes,
// matching the write-side assign endpoint it complements.
func InferAggregations(events []model.Entity) []Endpoint {
	var endpoints []Endpoint

	for i := range events {
		e := &events[i]

		if e.HasDatetime() {
			endpoints = append(endpoints, latestEndpoint(e), historyEndpoint(e))
		}

		if strings.HasSuffix(e.English, "Assign") {
			if replace := findReplaceForAssign(e, events); replace != nil {
				endpoints = append(endpoints, currentAssignmentsEndpoint(e, replace))
			}
		}

		endpoints = append(endpoints, summaryEndpoint(e))
	}

	return endpoints
}

// findReplaceForAssign locates the Replace event sharing the Assign
// event's subject, e.g. PersonReplace for PersonAssign.
func findReplaceForAssign(assign *model.Entity, events []model.Entity) *model.Entity {
	subject := strings.TrimSuffix(assign.English, "Assign")
	replaceName := subject + "Replace"
	for i := range events {
		if events[i].English == replaceName {
			return &events[i]
		}
	}
	return nil
}

func latestEndpoint(e *model.Entity) Endpoint {
	parent, action := ExtractResourceAndAction(e.English)
	parentPlural := pluralSnake(parent)
	actionSnake := naming.ToSnakeCase(action)
	datetime := e.DatetimeAttr()

	description := fmt.Sprintf(
		"%sの最新の%s情報を取得します。\n\n"+
			"SQL例:\n"+
			"```sql\n"+
			"SELECT * FROM %s\n"+
			"WHERE %sID = ?\n"+
			"ORDER BY %s DESC\n"+
			"LIMIT 1;\n"+
			"```",
		parent, e.Japanese, strings.ToUpper(e.English), parent, datetime.English)

	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{%s}/%s/latest", parentPlural, pkParamName(e), actionSnake),
		Method:      "GET",
		OperationID: fmt.Sprintf("get%sLatest%s", parent, action),
		Summary:     fmt.Sprintf("%sの最新の%s情報を取得", parent, e.Japanese),
		Description: description,
		Tags:        []string{pascalTag(parentPlural)},
		Response:    openapi.SchemaRef(e.English),
		Aggregation: true,
	}
}

func historyEndpoint(e *model.Entity) Endpoint {
	parent, action := ExtractResourceAndAction(e.English)
	parentPlural := pluralSnake(parent)
	actionSnake := naming.ToSnakeCase(action)
	datetime := e.DatetimeAttr()

	description := fmt.Sprintf(
		"%sの%s履歴を時系列順で取得します。\n\n"+
			"SQL例:\n"+
			"```sql\n"+
			"SELECT * FROM %s\n"+
			"WHERE %sID = ?\n"+
			"ORDER BY %s ASC\n"+
			"LIMIT ? OFFSET ?;\n"+
			"```",
		parent, e.Japanese, strings.ToUpper(e.English), parent, datetime.English)

	response := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"total":  {Type: "integer", Description: "総件数"},
			"limit":  {Type: "integer", Description: "取得件数"},
			"offset": {Type: "integer", Description: "スキップ件数"},
			"events": {Type: "array", Items: openapi.SchemaRef(e.English)},
		},
	}

	return Endpoint{
		Path:            fmt.Sprintf("/api/%s/{%s}/%s/history", parentPlural, pkParamName(e), actionSnake),
		Method:          "GET",
		OperationID:     fmt.Sprintf("get%s%sHistory", parent, action),
		Summary:         fmt.Sprintf("%sの%s履歴を取得", parent, e.Japanese),
		Description:     description,
		Tags:            []string{pascalTag(parentPlural)},
		QueryParameters: paginationParams("取得件数", "スキップ件数"),
		Response:        response,
		Aggregation:     true,
	}
}

func currentAssignmentsEndpoint(assign, replace *model.Entity) Endpoint {
	subject := strings.TrimSuffix(assign.English, "Assign")
	subjectPlural, _ := subjectSegments(subject)
	parent := inferParentResource(assign)
	parentPlural := pluralSnake(parent)

	description := fmt.Sprintf(
		"%sの現在の%sアサイン状況を取得します。\n\n"+
			"置換済みのアサインを除外した現在のメンバー一覧を返します。\n\n"+
			"SQL例:\n"+
			"```sql\n"+
			"SELECT pa.*, p.*\n"+
			"FROM %s pa\n"+
			"JOIN %s p ON pa.%sID = p.%sID\n"+
			"WHERE pa.%sID = ?\n"+
			"  AND NOT EXISTS (\n"+
			"    SELECT 1 FROM %s pr\n"+
			"    WHERE pr.%sID = pa.%sID\n"+
			"      AND pr.Old%sID = pa.%sID\n"+
			"  );\n"+
			"```",
		parent, subject,
		strings.ToUpper(assign.English),
		strings.ToUpper(subject), subject, subject,
		parent,
		strings.ToUpper(replace.English),
		parent, parent,
		subject, subject)

	response := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			strings.ToLower(parent) + "ID": {Type: "integer"},
			"current" + subject + "s": {
				Type:  "array",
				Items: openapi.SchemaRef(assign.English),
			},
		},
	}

	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{%s}/%s/current", parentPlural, pkParamName(assign), subjectPlural),
		Method:      "GET",
		OperationID: fmt.Sprintf("get%sCurrent%ss", parent, subject),
		Summary:     fmt.Sprintf("%sの現在の%s状況を取得", parent, assign.Japanese),
		Description: description,
		Tags:        []string{pascalTag(parentPlural), pascalTag(subjectPlural)},
		Response:    response,
		Aggregation: true,
	}
}

func summaryEndpoint(e *model.Entity) Endpoint {
	parent, action := ExtractResourceAndAction(e.English)
	parentPlural := pluralSnake(parent)
	actionSnake := naming.ToSnakeCase(action)

	datetimeField := "CreatedAt"
	if attr := e.DatetimeAttr(); attr != nil {
		datetimeField = attr.English
	}

	description := fmt.Sprintf(
		"%sの%sサマリーを取得します。\n\n"+
			"イベントの統計情報を集約して返します。\n\n"+
			"SQL例:\n"+
			"```sql\n"+
			"SELECT\n"+
			"  %sID,\n"+
			"  COUNT(*) as eventCount,\n"+
			"  MAX(%s) as latestEvent,\n"+
			"  MIN(%s) as firstEvent\n"+
			"FROM %s\n"+
			"WHERE %sID = ?\n"+
			"GROUP BY %sID;\n"+
			"```",
		parent, e.Japanese,
		parent, datetimeField, datetimeField,
		strings.ToUpper(e.English), parent, parent)

	response := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			strings.ToLower(parent) + "ID": {Type: "integer", Description: parent + "ID"},
			"eventCount":                   {Type: "integer", Description: "イベント発生回数"},
			"latestEvent":                  {Type: "string", Format: "date-time", Description: "最新イベント日時"},
			"firstEvent":                   {Type: "string", Format: "date-time", Description: "初回イベント日時"},
		},
	}

	return Endpoint{
		Path:        fmt.Sprintf("/api/%s/{%s}/%s/summary", parentPlural, pkParamName(e), actionSnake),
		Method:      "GET",
		OperationID: fmt.Sprintf("get%s%sSummary", parent, action),
		Summary:     fmt.Sprintf("%sの%sサマリーを取得", parent, e.Japanese),
		Description: description,
		Tags:        []string{pascalTag(parentPlural)},
		Response:    response,
		Aggregation: true,
	}
}
