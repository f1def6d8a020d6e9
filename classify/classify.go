// Package classify defines the boundary to the upstream entity classifier.
// Classification normally arrives precomputed in entities_classified.json;
// the heuristic classifier covers models that ship without one.
package classify

import (
	"sort"

	"github.com/immodel/oasgen/mapper"
	"github.com/immodel/oasgen/model"
)

// Classifier splits a flat entity list into resources, events and
// junctions.
type Classifier interface {
	Classify(entities []model.Entity) (*model.Classified, error)
}

// Static returns a fixed classification unchanged. It adapts a
// precomputed entities_classified.json to the Classifier boundary.
type Static struct {
	Classified *model.Classified
}

func (s Static) Classify([]model.Entity) (*model.Classified, error) {
	return s.Classified, nil
}

// Heuristic classifies by structure. An entity naming two connected
// entities is a junction. An entity carrying a datetime attribute, or
// named with a recognized event suffix, records a point-in-time fact and
// is an event. Everything else is a resource.
type Heuristic struct{}

func (h Heuristic) Classify(entities []model.Entity) (*model.Classified, error) {
	c := &model.Classified{}
	for _, e := range entities {
		switch {
		case len(e.Connects) >= 2:
			c.Junctions = append(c.Junctions, e)
		case h.isEvent(e):
			c.Events = append(c.Events, e)
		default:
			c.Resources = append(c.Resources, e)
		}
	}
	sortEntities(c.Resources)
	sortEntities(c.Events)
	sortEntities(c.Junctions)
	return c, nil
}

func (h Heuristic) isEvent(e model.Entity) bool {
	if e.HasDatetime() {
		return true
	}
	if _, ok := mapper.MatchEventName(e.English); ok {
		return true
	}
	return false
}

func sortEntities(entities []model.Entity) {
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].English < entities[j].English
	})
}
