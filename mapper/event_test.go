package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immodel/oasgen/model"
)

func projectStartEvent() *model.Entity {
	return &model.Entity{
		Japanese: "プロジェクト開始",
		English:  "ProjectStart",
		Attributes: []model.Attribute{
			{Japanese: "プロジェクト開始ID", English: "ProjectStartID", Type: "INT", IsPrimaryKey: true},
			{Japanese: "プロジェクトID", English: "ProjectID", Type: "INT"},
			{Japanese: "開始日", English: "StartDate", Type: "DATE"},
		},
		DatetimeAttribute: &model.DatetimeRef{
			Attr: &model.Attribute{Japanese: "開始日", English: "StartDate", Type: "DATE"},
		},
	}
}

func personAssignEvent() *model.Entity {
	return &model.Entity{
		Japanese: "メンバーアサイン",
		English:  "PersonAssign",
		Attributes: []model.Attribute{
			{Japanese: "アサインID", English: "PersonAssignID", Type: "INT", IsPrimaryKey: true},
			{Japanese: "プロジェクトID", English: "ProjectID", Type: "INT"},
			{Japanese: "要員ID", English: "PersonID", Type: "INT"},
			{Japanese: "アサイン日時", English: "AssignDate", Type: "TIMESTAMP"},
		},
		DatetimeAttribute: &model.DatetimeRef{
			Attr: &model.Attribute{Japanese: "アサイン日時", English: "AssignDate", Type: "TIMESTAMP"},
		},
	}
}

func TestMapEventStart(t *testing.T) {
	ep := MapEvent(projectStartEvent())

	assert.Equal(t, "/api/projects/{id}/start", ep.Path)
	assert.Equal(t, "POST", ep.Method)
	assert.Equal(t, "startProject", ep.OperationID)
	assert.Equal(t, []string{"Projects"}, ep.Tags)
	assert.True(t, ep.RequiresIdempotencyKey)

	// Command excludes the primary key and the parent foreign key.
	require.NotNil(t, ep.RequestBody)
	assert.NotContains(t, ep.RequestBody.Properties, "projectStartID")
	assert.NotContains(t, ep.RequestBody.Properties, "projectID")
	require.Contains(t, ep.RequestBody.Properties, "startDate")
	assert.Equal(t, []string{"startDate"}, ep.RequestBody.Required)

	// Response carries every attribute plus the recording timestamp.
	require.NotNil(t, ep.Response)
	assert.Contains(t, ep.Response.Properties, "projectID")
	assert.Contains(t, ep.Response.Properties, "createdAt")
	assert.Equal(t, "date-time", ep.Response.Properties["createdAt"].Format)
}

func TestMapEventCompleteAndFinishShareHandler(t *testing.T) {
	complete := MapEvent(&model.Entity{Japanese: "プロジェクト完了", English: "ProjectComplete"})
	finish := MapEvent(&model.Entity{Japanese: "タスク終了", English: "TaskFinish"})

	assert.Equal(t, "/api/projects/{id}/complete", complete.Path)
	assert.Equal(t, "completeProject", complete.OperationID)

	// Finish keeps its own action label.
	assert.Equal(t, "/api/tasks/{id}/finish", finish.Path)
	assert.Equal(t, "finishTask", finish.OperationID)
	assert.Equal(t, complete.Summary, "Projectを完了する")
	assert.Equal(t, finish.Summary, "Taskを完了する")
}

func TestMapEventAbortAliasesCancel(t *testing.T) {
	ep := MapEvent(&model.Entity{Japanese: "タスク中断", English: "TaskAbort"})
	assert.Equal(t, "/api/tasks/{id}/abort", ep.Path)
	assert.Equal(t, "abortTask", ep.OperationID)
	assert.Contains(t, ep.Description, "キャンセル理由")
}

func TestMapEventAssign(t *testing.T) {
	ep := MapEvent(personAssignEvent())

	assert.Equal(t, "/api/projects/{id}/members", ep.Path)
	assert.Equal(t, "POST", ep.Method)
	assert.Equal(t, "assignPersonToProject", ep.OperationID)
	assert.Equal(t, []string{"Projects", "Members"}, ep.Tags)

	// The parent foreign key travels in the path; the subject key stays.
	assert.NotContains(t, ep.RequestBody.Properties, "projectID")
	assert.Contains(t, ep.RequestBody.Properties, "personID")
}

func TestMapEventReplace(t *testing.T) {
	ep := MapEvent(&model.Entity{
		Japanese: "メンバー交代",
		English:  "PersonReplace",
		Attributes: []model.Attribute{
			{Japanese: "交代ID", English: "PersonReplaceID", Type: "INT", IsPrimaryKey: true},
			{Japanese: "プロジェクトID", English: "ProjectID", Type: "INT"},
			{Japanese: "旧要員ID", English: "OldPersonID", Type: "INT"},
			{Japanese: "新要員ID", English: "NewPersonID", Type: "INT"},
		},
	})

	assert.Equal(t, "/api/projects/{id}/members/{memberId}/replace", ep.Path)
	assert.Equal(t, "PUT", ep.Method)
	assert.Equal(t, "replacePersonInProject", ep.OperationID)
	assert.Contains(t, ep.Description, "離脱として扱います")
}

func TestMapEventEvaluate(t *testing.T) {
	ep := MapEvent(&model.Entity{
		Japanese: "リスク評価",
		English:  "RiskEvaluate",
		Attributes: []model.Attribute{
			{Japanese: "評価ID", English: "RiskEvaluateID", Type: "INT", IsPrimaryKey: true},
			{Japanese: "プロジェクトID", English: "ProjectID", Type: "INT"},
			{Japanese: "評価結果", English: "Result", Type: "VARCHAR", Length: 50},
		},
	})

	assert.Equal(t, "/api/projects/{id}/risks", ep.Path)
	assert.Equal(t, "evaluateRiskForProject", ep.OperationID)
	assert.Equal(t, []string{"Projects", "Risks"}, ep.Tags)
}

func TestMapEventApproveReject(t *testing.T) {
	approve := MapEvent(&model.Entity{Japanese: "請求書承認", English: "InvoiceApprove"})
	reject := MapEvent(&model.Entity{Japanese: "請求書却下", English: "InvoiceReject"})

	assert.Equal(t, "/api/invoices/{id}/approve", approve.Path)
	assert.Equal(t, []string{"Invoices", "Approvals"}, approve.Tags)

	assert.Equal(t, "/api/invoices/{id}/reject", reject.Path)
	assert.Equal(t, []string{"Invoices", "Approvals"}, reject.Tags)
	assert.Contains(t, reject.Description, "却下理由")
}

func TestMapEventCreateUpdate(t *testing.T) {
	create := MapEvent(&model.Entity{Japanese: "注文作成", English: "OrderCreate"})
	update := MapEvent(&model.Entity{Japanese: "注文更新", English: "OrderUpdate"})

	assert.Equal(t, "/api/orders", create.Path)
	assert.Equal(t, "POST", create.Method)
	assert.Equal(t, "createOrder", create.OperationID)

	assert.Equal(t, "/api/orders/{id}", update.Path)
	assert.Equal(t, "PATCH", update.Method)
	assert.Contains(t, update.Description, "アクションイベント")
}

func TestMapEventGenericFallback(t *testing.T) {
	ep := MapEvent(&model.Entity{
		Japanese: "請求書送付",
		English:  "InvoiceSend",
		Attributes: []model.Attribute{
			{Japanese: "送付ID", English: "InvoiceSendID", Type: "INT", IsPrimaryKey: true},
			{Japanese: "請求書ID", English: "InvoiceID", Type: "INT"},
			{Japanese: "送付日時", English: "SendDate", Type: "TIMESTAMP"},
		},
	})

	assert.Equal(t, "/api/invoices/{id}/events", ep.Path)
	assert.Equal(t, "recordInvoiceSend", ep.OperationID)
	assert.Equal(t, []string{"Invoices", "Events"}, ep.Tags)
}

func TestInferParentResource(t *testing.T) {
	// Attribute-based inference wins over the name pattern.
	assert.Equal(t, "Project", inferParentResource(personAssignEvent()))

	// Without foreign keys the name pattern supplies the parent.
	assert.Equal(t, "Project", inferParentResource(&model.Entity{English: "ProjectStart"}))

	// Neither available: literal placeholder.
	assert.Equal(t, "Resource", inferParentResource(&model.Entity{English: "Heartbeat"}))
}
