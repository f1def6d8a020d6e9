package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immodel/oasgen/model"
)

func customerEntity() *model.Entity {
	return &model.Entity{
		Japanese: "顧客",
		English:  "Customer",
		Attributes: []model.Attribute{
			{Japanese: "顧客ID", English: "CustomerID", Type: "INT", IsPrimaryKey: true},
			{Japanese: "顧客名", English: "CustomerName", Type: "VARCHAR", Length: 100},
			{Japanese: "作成日時", English: "CreatedAt", Type: "TIMESTAMP"},
		},
	}
}

func TestMapResourceEndpoints(t *testing.T) {
	endpoints := MapResource(customerEntity())
	require.Len(t, endpoints, 5)

	byOp := make(map[string]Endpoint)
	for _, ep := range endpoints {
		byOp[ep.OperationID] = ep
	}

	list := byOp["listCustomers"]
	assert.Equal(t, "GET", list.Method)
	assert.Equal(t, "/api/customers", list.Path)
	assert.Equal(t, []string{"Customers"}, list.Tags)
	assert.False(t, list.RequiresIdempotencyKey)

	get := byOp["getCustomer"]
	assert.Equal(t, "GET", get.Method)
	assert.Equal(t, "/api/customers/{customerID}", get.Path)
	assert.Equal(t, "#/components/schemas/Customer", get.Response.Ref)

	create := byOp["createCustomer"]
	assert.Equal(t, "POST", create.Method)
	assert.Equal(t, "/api/customers", create.Path)
	assert.True(t, create.RequiresIdempotencyKey)

	update := byOp["updateCustomer"]
	assert.Equal(t, "PATCH", update.Method)
	assert.Equal(t, "/api/customers/{customerID}", update.Path)
	assert.True(t, update.RequiresIdempotencyKey)

	del := byOp["deleteCustomer"]
	assert.Equal(t, "DELETE", del.Method)
	assert.Equal(t, "/api/customers/{customerID}", del.Path)
	assert.Nil(t, del.Response)
	assert.Contains(t, del.Description, "論理削除")
}

func TestListEndpointEnvelope(t *testing.T) {
	endpoints := MapResource(customerEntity())
	list := endpoints[0]

	require.NotNil(t, list.Response)
	assert.Equal(t, []string{"total", "limit", "offset", "customers"}, list.Response.Required)
	items := list.Response.Properties["customers"]
	require.NotNil(t, items)
	assert.Equal(t, "array", items.Type)
	assert.Equal(t, "#/components/schemas/Customer", items.Items.Ref)
	assert.Equal(t, 150, list.Response.Properties["total"].Example)
}

func TestListQueryParameters(t *testing.T) {
	entity := &model.Entity{
		Japanese: "案件",
		English:  "Project",
		Attributes: []model.Attribute{
			{Japanese: "案件ID", English: "ProjectID", Type: "INT", IsPrimaryKey: true},
			{Japanese: "案件名", English: "ProjectName", Type: "VARCHAR", Length: 200},
			{Japanese: "顧客ID", English: "CustomerID", Type: "BIGINT"},
			{Japanese: "開始日", English: "StartDate", Type: "DATE"},
			{Japanese: "有効フラグ", English: "IsActive", Type: "BOOLEAN"},
			{Japanese: "作成日時", English: "CreatedAt", Type: "TIMESTAMP"},
		},
	}

	params := listQueryParameters(entity)

	byName := make(map[string]*struct {
		schemaType string
		format     string
	})
	for _, p := range params {
		byName[p.Name] = &struct {
			schemaType string
			format     string
		}{p.Schema.Type, p.Schema.Format}
	}

	// Filter params per attribute type; primary key and CreatedAt skipped.
	assert.Equal(t, "string", byName["projectName"].schemaType)
	assert.Equal(t, "integer", byName["customerID"].schemaType)
	assert.Equal(t, "date", byName["startDateFrom"].format)
	assert.Equal(t, "date", byName["startDateTo"].format)
	assert.Equal(t, "boolean", byName["isActive"].schemaType)
	assert.NotContains(t, byName, "projectID")
	assert.NotContains(t, byName, "createdAt")
	assert.NotContains(t, byName, "createdAtFrom")

	// Pagination and sort always close the list.
	require.True(t, len(params) >= 3)
	limit := params[len(params)-3]
	assert.Equal(t, "limit", limit.Name)
	assert.Equal(t, 50, limit.Schema.Default)
	require.NotNil(t, limit.Schema.Maximum)
	assert.Equal(t, 500, *limit.Schema.Maximum)

	offset := params[len(params)-2]
	assert.Equal(t, "offset", offset.Name)
	assert.Equal(t, 0, offset.Schema.Default)

	sort := params[len(params)-1]
	assert.Equal(t, "sort", sort.Name)
	assert.Equal(t, "-createdAt", sort.Schema.Default)
	assert.Contains(t, sort.Schema.Enum, "projectName")
	assert.Contains(t, sort.Schema.Enum, "-projectName")
	assert.Contains(t, sort.Schema.Enum, "createdAt")
	assert.NotContains(t, sort.Schema.Enum, "projectID")
}

func TestCreateSchema(t *testing.T) {
	schema := createSchema(customerEntity())

	assert.NotContains(t, schema.Properties, "customerID")
	assert.NotContains(t, schema.Properties, "createdAt")
	require.Contains(t, schema.Properties, "customerName")
	assert.Equal(t, 100, schema.Properties["customerName"].MaxLength)

	// 顧客名 ends with the name marker, so it is required.
	assert.Equal(t, []string{"customerName"}, schema.Required)
}

func TestCreateSchemaExplicitNullable(t *testing.T) {
	no, yes := false, true
	entity := &model.Entity{
		Japanese: "顧客",
		English:  "Customer",
		Attributes: []model.Attribute{
			{Japanese: "メールアドレス", English: "Email", Type: "VARCHAR", Length: 255, Nullable: &no},
			{Japanese: "顧客名", English: "CustomerName", Type: "VARCHAR", Length: 100, Nullable: &yes},
		},
	}
	schema := createSchema(entity)

	// Explicit nullability overrides the name heuristic in both directions.
	assert.Equal(t, []string{"email"}, schema.Required)
}

func TestUpdateSchemaAllOptional(t *testing.T) {
	schema := updateSchema(customerEntity())

	assert.Empty(t, schema.Required)
	assert.Contains(t, schema.Properties, "customerName")
	assert.Equal(t, "更新したいフィールドのみ指定", schema.Description)
}
