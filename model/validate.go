package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural invariants of the loaded inputs.
//
// Fatal problems (missing English names, malformed relationships, duplicate
// entity names, foreign keys referencing a non-primary-key column) are
// returned as an error. Recoverable modeling gaps (an event without a
// datetime attribute, an entity without a marked primary key) are returned
// as warnings; the mappers have documented fallbacks for both.
func Validate(c *Classified, m *Model) ([]Warning, error) {
	var errs []string
	var warnings []Warning

	seen := make(map[string]bool)
	check := func(kind string, entities []Entity) {
		for i := range entities {
			e := &entities[i]
			if err := validate.Struct(e); err != nil {
				errs = append(errs, fmt.Sprintf("%s %q: %v", kind, e.English, err))
				continue
			}
			if seen[e.English] {
				errs = append(errs, fmt.Sprintf("duplicate entity name %q", e.English))
			}
			seen[e.English] = true
			if e.PrimaryKey() == nil {
				warnings = append(warnings, Warning{
					Code:    WarnMissingPrimaryKey,
					Message: "no attribute marked as primary key, path parameter falls back to \"id\"",
					Entity:  e.English,
				})
			}
		}
	}
	check("resource", c.Resources)
	check("event", c.Events)
	check("junction", c.Junctions)

	for i := range c.Events {
		e := &c.Events[i]
		if !e.HasDatetime() {
			warnings = append(warnings, Warning{
				Code:    WarnEventMissingDatetime,
				Message: "event has no datetime attribute, latest/history endpoints are skipped",
				Entity:  e.English,
			})
		}
	}

	entityByName := make(map[string]*Entity)
	for _, list := range [][]Entity{c.Resources, c.Events, c.Junctions} {
		for i := range list {
			entityByName[list[i].English] = &list[i]
		}
	}

	for i := range m.Relationships {
		rel := &m.Relationships[i]
		if err := validate.Struct(rel); err != nil {
			errs = append(errs, fmt.Sprintf("relationship %s: %v", rel.ID, err))
			continue
		}
		target, column, ok := strings.Cut(rel.ForeignKey.References, ".")
		if !ok {
			errs = append(errs, fmt.Sprintf("relationship %s: malformed references %q", rel.ID, rel.ForeignKey.References))
			continue
		}
		entity, found := entityByName[target]
		if !found {
			// The relationship model may reference entities that the
			// classified list does not carry (e.g. filtered ones).
			continue
		}
		pk := entity.PrimaryKey()
		if pk == nil || pk.English != column {
			errs = append(errs, fmt.Sprintf(
				"relationship %s: foreign key references %s.%s which is not a primary key",
				rel.ID, target, column))
		}
	}

	sort.Slice(warnings, func(i, j int) bool {
		if warnings[i].Entity != warnings[j].Entity {
			return warnings[i].Entity < warnings[j].Entity
		}
		return warnings[i].Code < warnings[j].Code
	})

	if len(errs) > 0 {
		return warnings, fmt.Errorf("invalid model: %s", strings.Join(errs, "; "))
	}
	return warnings, nil
}
