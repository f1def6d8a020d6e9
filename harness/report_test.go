package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() *Results {
	return &Results{
		Queries: []QueryResult{
			{
				ID:              "1",
				Title:           "Customer list",
				Description:     "全顧客の一覧",
				SQL:             "SELECT * FROM customer",
				Status:          "success",
				Columns:         []string{"customer_id", "customer_name"},
				Rows:            [][]any{{float64(1), "Acme"}, {float64(2), "Globex"}},
				RowCount:        2,
				ExecutionTimeMS: 12.5,
			},
			{
				ID:              "2",
				Title:           "Project timeline",
				SQL:             "SELECT ... UNION ALL SELECT ...",
				Status:          "success",
				Columns:         []string{"event"},
				Rows:            [][]any{{"start"}},
				RowCount:        1,
				ExecutionTimeMS: 150,
			},
			{
				ID:        "3",
				Title:     "Broken query",
				Status:    "error",
				Error:     `relation "missing" does not exist`,
				ErrorType: "UndefinedTable",
			},
		},
		Schema: SchemaResults{
			Tables: RowSet{
				Rows:     [][]any{{"customer", "BASE TABLE"}, {"project_start", "BASE TABLE"}, {"project_member", "BASE TABLE"}},
				RowCount: 3,
			},
			Columns: RowSet{
				Rows: [][]any{{"customer", float64(5)}},
			},
			ForeignKeys: RowSet{
				Rows:     [][]any{{"fk_project_start_customer", "project_start", "customer_id", "customer", "customer_id"}},
				RowCount: 1,
			},
			Indexes: RowSet{RowCount: 4},
		},
		Data: DataResults{
			RowCounts: RowSet{
				Rows:     [][]any{{"public", "customer", float64(10)}, {"public", "project_start", float64(0)}},
				RowCount: 2,
			},
		},
	}
}

func testReport() *Report {
	return &Report{
		Project:   "billing",
		Timestamp: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderHeader(t *testing.T) {
	out := testReport().Render(sampleResults())

	assert.Contains(t, out, "# PostgreSQL Test Report")
	assert.Contains(t, out, "**Project**: billing")
	assert.Contains(t, out, "**Date**: 2025-03-01 12:00:00")
	assert.Contains(t, out, "**Status**: ❌ FAIL")
	assert.Contains(t, out, "**Container**: cc-data-modeler-postgres-billing")
}

func TestRenderExecutiveSummary(t *testing.T) {
	out := testReport().Render(sampleResults())

	assert.Contains(t, out, "- **Total Queries**: 3")
	assert.Contains(t, out, "- **Successful**: 2 ✅")
	assert.Contains(t, out, "- **Failed**: 1 ❌")
	assert.Contains(t, out, "- **Total Execution Time**: 162.50ms")
}

func TestRenderSchemaAndData(t *testing.T) {
	out := testReport().Render(sampleResults())

	assert.Contains(t, out, "- **Tables**: 3 ✅")
	assert.Contains(t, out, "| customer | BASE TABLE | ✅ |")
	assert.Contains(t, out, "| fk_project_start_customer | project_start | customer_id | customer.customer_id | ✅ |")
	assert.Contains(t, out, "| customer | 10 | ✅ |")
	assert.Contains(t, out, "| project_start | 0 | ⚠️ |")
	assert.Contains(t, out, "- **Tables with data**: 1/2")
	assert.Contains(t, out, "- **Total rows**: 10")
}

func TestRenderQueryResults(t *testing.T) {
	out := testReport().Render(sampleResults())

	assert.Contains(t, out, "### Query 1: Customer list ✅")
	assert.Contains(t, out, "**Execution Time**: 12.50ms")
	assert.Contains(t, out, "_全顧客の一覧_")
	assert.Contains(t, out, "| customer_id | customer_name |")
	assert.Contains(t, out, "| 1 | Acme |")

	assert.Contains(t, out, "### Query 3: Broken query ❌")
	assert.Contains(t, out, "**Error Type**: UndefinedTable")
	assert.Contains(t, out, `relation "missing" does not exist`)
}

func TestRenderPerformance(t *testing.T) {
	out := testReport().Render(sampleResults())

	// Slowest first.
	assert.Contains(t, out, "| 2 | Project timeline | 150.00ms | 1 | ⚠️ Slow |")
	assert.Contains(t, out, "| 1 | Customer list | 12.50ms | 2 | ⚡ Fast |")
	assert.Contains(t, out, "### Slowest Queries")
	assert.Contains(t, out, "1. **Query 2**: Project timeline - 150.00ms")
}

func TestRenderModelValidation(t *testing.T) {
	out := testReport().Render(sampleResults())

	assert.Contains(t, out, "- **Resources**: 1 tables")
	assert.Contains(t, out, "- **Junctions**: 2 tables")
	assert.Contains(t, out, "- ✅ UNION ALL for event timelines detected")
}

func TestPerformanceCategory(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{10, "⚡ Fast"},
		{75, "✅ Normal"},
		{200, "⚠️ Slow"},
		{900, "🔴 Very Slow"},
	}
	for _, tt := range tests {
		if got := performanceCategory(tt.ms); got != tt.want {
			t.Errorf("performanceCategory(%v) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFormatCellTruncation(t *testing.T) {
	long := strings.Repeat("x", 60)
	got := formatCell(long)
	require.Len(t, got, 50)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "NULL", formatCell(nil))
	assert.Equal(t, "3", formatCell(float64(3)))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		QueryResultsFile:  `[{"id": "1", "title": "t", "status": "success", "row_count": 0, "execution_time_ms": 1.0}]`,
		SchemaResultsFile: `{"tables": {"rows": [["customer", "BASE TABLE"]], "row_count": 1}}`,
		DataResultsFile:   `{"row_counts": {"rows": [], "row_count": 0}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	res, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, res.Queries, 1)
	assert.Equal(t, "1", res.Queries[0].ID)
	assert.Equal(t, 1, res.Schema.Tables.RowCount)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}
