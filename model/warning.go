package model

import "fmt"

// Warning codes emitted by validation and assembly.
const (
	WarnEventMissingDatetime = "event_missing_datetime"
	WarnMissingPrimaryKey    = "missing_primary_key"
	WarnPathCollision        = "path_collision"
	WarnDuplicateOperationID = "duplicate_operation_id"
)

// Warning is a non-fatal issue found while validating the model or
// assembling the document. Generation continues; warnings surface on the
// result for the operator.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Entity is the English entity name that triggered the warning, if
	// applicable.
	Entity string
}

func (w Warning) String() string {
	if w.Entity != "" {
		return fmt.Sprintf("%s: %s (%s)", w.Code, w.Message, w.Entity)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
