// Package model defines the classified entity model and relationship model
// consumed by the endpoint mappers, together with their JSON loader and
// validation. Both documents are produced by an upstream classification
// pipeline and are treated as read-only inputs.
package model

import (
	"encoding/json"
	"fmt"
)

// Attribute is one typed column of an entity. English names follow the
// PascalCase convention of the upstream modeler; Japanese carries the
// human-facing label used in generated descriptions.
type Attribute struct {
	Japanese     string `json:"japanese"`
	English      string `json:"english" validate:"required"`
	Type         string `json:"type"`
	Length       int    `json:"length,omitempty"`
	IsPrimaryKey bool   `json:"is_primary_key,omitempty"`

	// Nullable is optional in the input. When present it drives
	// required-field marking; when absent the name-based heuristics apply.
	Nullable *bool `json:"nullable,omitempty"`
}

// Entity is one classified entity. The same shape serves resources, events,
// and junctions; the event-only fields stay nil for the other variants.
type Entity struct {
	Japanese   string      `json:"japanese"`
	English    string      `json:"english" validate:"required"`
	Attributes []Attribute `json:"attributes"`

	// Event variant only.
	DatetimeAttribute *DatetimeRef `json:"datetime_attribute,omitempty"`
	RelatedResource   string       `json:"related_resource,omitempty"`

	// Junction variant only: names of the entities the junction bridges.
	Connects []string `json:"connects,omitempty"`

	Note string `json:"note,omitempty"`
}

// PrimaryKey returns the first attribute marked as primary key, or nil.
func (e *Entity) PrimaryKey() *Attribute {
	for i := range e.Attributes {
		if e.Attributes[i].IsPrimaryKey {
			return &e.Attributes[i]
		}
	}
	return nil
}

// Attribute returns the attribute with the given English name, or nil.
func (e *Entity) Attribute(english string) *Attribute {
	for i := range e.Attributes {
		if e.Attributes[i].English == english {
			return &e.Attributes[i]
		}
	}
	return nil
}

// HasDatetime reports whether the entity carries a datetime attribute
// reference.
func (e *Entity) HasDatetime() bool {
	return e.DatetimeAttribute != nil
}

// DatetimeAttr resolves the datetime reference against the entity's own
// attributes. Returns nil when the entity has no reference at all.
func (e *Entity) DatetimeAttr() *Attribute {
	if e.DatetimeAttribute == nil {
		return nil
	}
	return e.DatetimeAttribute.Resolve(e.Attributes)
}

// DatetimeRef points at an event's datetime attribute. The upstream pipeline
// emits it either as a full attribute object or as a bare Japanese label
// naming one of the entity's attributes.
type DatetimeRef struct {
	Label string
	Attr  *Attribute
}

func (r *DatetimeRef) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		r.Label = label
		return nil
	}
	var attr Attribute
	if err := json.Unmarshal(data, &attr); err != nil {
		return fmt.Errorf("datetime_attribute must be a label or an attribute object: %w", err)
	}
	r.Attr = &attr
	return nil
}

func (r *DatetimeRef) MarshalJSON() ([]byte, error) {
	if r.Attr != nil {
		return json.Marshal(r.Attr)
	}
	return json.Marshal(r.Label)
}

// Resolve returns the referenced attribute. Label references are looked up
// by Japanese label first, then by English name; an unresolvable label is
// returned as a synthetic attribute so callers can still render it.
func (r *DatetimeRef) Resolve(attrs []Attribute) *Attribute {
	if r.Attr != nil {
		return r.Attr
	}
	for i := range attrs {
		if attrs[i].Japanese == r.Label || attrs[i].English == r.Label {
			return &attrs[i]
		}
	}
	return &Attribute{Japanese: r.Label, English: r.Label, Type: "TIMESTAMP"}
}

// Classified is the entities_classified.json document.
type Classified struct {
	Resources []Entity `json:"resources"`
	Events    []Entity `json:"events"`
	Junctions []Entity `json:"junctions"`
}

// All returns resources, events, and junctions as one slice, in that order.
func (c *Classified) All() []Entity {
	all := make([]Entity, 0, len(c.Resources)+len(c.Events)+len(c.Junctions))
	all = append(all, c.Resources...)
	all = append(all, c.Events...)
	all = append(all, c.Junctions...)
	return all
}

// ForeignKey is a referential constraint between two entities. References
// uses the "Entity.Column" form.
type ForeignKey struct {
	Table      string `json:"table" validate:"required"`
	Column     string `json:"column" validate:"required"`
	References string `json:"references" validate:"required,contains=."`
}

// Relationship links two entities with a cardinality.
type Relationship struct {
	ID               string     `json:"id"`
	FromEntity       string     `json:"from_entity" validate:"required"`
	ToEntity         string     `json:"to_entity" validate:"required"`
	Cardinality      string     `json:"cardinality" validate:"required,oneof=1:1 1:N M:N 1:0..1"`
	RelationshipType string     `json:"relationship_type"`
	ForeignKey       ForeignKey `json:"foreign_key"`
	Note             string     `json:"note,omitempty"`
}

// Model is the model.json document: the relationship analysis over the
// classified entities, including junctions introduced to resolve
// many-to-many relationships.
type Model struct {
	Entities      Classified     `json:"entities"`
	Relationships []Relationship `json:"relationships"`
	CrossEntities []Entity       `json:"cross_entities"`
}
