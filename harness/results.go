// Package harness models the output format of the database test harness
// and renders its markdown validation report. The harness itself runs
// elsewhere; this package only consumes the result files it writes.
package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Result file names under the project artifacts directory.
const (
	QueryResultsFile  = "query_results.json"
	SchemaResultsFile = "schema_results.json"
	DataResultsFile   = "data_results.json"
)

// QueryResult is one executed query with its outcome.
type QueryResult struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	SQL             string  `json:"sql,omitempty"`
	Status          string  `json:"status"`
	Columns         []string `json:"columns,omitempty"`
	Rows            [][]any `json:"rows,omitempty"`
	RowCount        int     `json:"row_count"`
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	Error           string  `json:"error,omitempty"`
	ErrorType       string  `json:"error_type,omitempty"`
}

// Success reports whether the query ran without error.
func (r *QueryResult) Success() bool { return r.Status == "success" }

// RowSet is a generic introspection result: raw rows plus their count.
type RowSet struct {
	Rows     [][]any `json:"rows"`
	RowCount int     `json:"row_count"`
}

// SchemaResults holds the schema introspection queries.
type SchemaResults struct {
	Tables      RowSet `json:"tables"`
	Columns     RowSet `json:"columns"`
	ForeignKeys RowSet `json:"foreign_keys"`
	Indexes     RowSet `json:"indexes"`
}

// DataResults holds the per-table row counts.
type DataResults struct {
	RowCounts RowSet `json:"row_counts"`
}

// Results bundles everything the harness wrote for one project.
type Results struct {
	Queries []QueryResult
	Schema  SchemaResults
	Data    DataResults
}

// Load reads the three harness result files from dir.
func Load(dir string) (*Results, error) {
	var res Results
	if err := readJSON(filepath.Join(dir, QueryResultsFile), &res.Queries); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, SchemaResultsFile), &res.Schema); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, DataResultsFile), &res.Data); err != nil {
		return nil, err
	}
	return &res, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read harness results: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
