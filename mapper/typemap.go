// Package mapper turns classified entities into endpoint definitions:
// CRUD endpoints for resources, action endpoints for events, and derived
// state-aggregation queries over event streams. Every mapping function is
// pure; the assembler in the root package merges the results into one
// document.
package mapper

import (
	"strings"

	"github.com/immodel/oasgen/openapi"
)

// WireType is the schema type/format pair a storage type maps to.
type WireType struct {
	Type   string
	Format string
}

var wireTypes = map[string]WireType{
	"INT":       {Type: "integer"},
	"BIGINT":    {Type: "integer"},
	"SMALLINT":  {Type: "integer"},
	"DECIMAL":   {Type: "number"},
	"NUMERIC":   {Type: "number"},
	"FLOAT":     {Type: "number"},
	"DOUBLE":    {Type: "number"},
	"VARCHAR":   {Type: "string"},
	"TEXT":      {Type: "string"},
	"CHAR":      {Type: "string"},
	"DATE":      {Type: "string", Format: "date"},
	"TIMESTAMP": {Type: "string", Format: "date-time"},
	"BOOLEAN":   {Type: "boolean"},
}

// MapStorageType maps a storage type name to its wire-level schema type.
// Lookup is case-insensitive; unknown types fall back to a plain string
// rather than erroring.
func MapStorageType(storageType string) WireType {
	if wt, ok := wireTypes[strings.ToUpper(storageType)]; ok {
		return wt
	}
	return WireType{Type: "string"}
}

// propertySchema builds the schema for one attribute-backed property:
// wire type, format when the storage type carries one, the Japanese label
// as description, and maxLength for bounded character types.
func propertySchema(storageType, japanese string, length int) *openapi.Schema {
	wt := MapStorageType(storageType)
	s := &openapi.Schema{
		Type:        wt.Type,
		Format:      wt.Format,
		Description: japanese,
	}
	upper := strings.ToUpper(storageType)
	if (upper == "VARCHAR" || upper == "CHAR") && length > 0 {
		s.MaxLength = length
	}
	return s
}
