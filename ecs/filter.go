package ecs

// Filter selects entities that carry every one of its required component tags.
// Tag order only affects the order in which tags are checked.
type Filter struct {
	Required []ComponentType
}

// NewFilter creates a filter requiring all of tags.
func NewFilter(tags ...ComponentType) Filter {
	return Filter{Required: append([]ComponentType(nil), tags...)}
}

// FilteredEntities is a snapshot of the entities matching a filter when it was evaluated.
// It does not follow later changes to the World.
type FilteredEntities []EntityId

// MatchesFilter reports whether the entity is live and has every tag in f.
func (w *World) MatchesFilter(id EntityId, f Filter) bool {
	rec := w.record(id)
	if rec == nil {
		return false
	}
	return matchesAll(rec, f.Required)
}

// Filtered evaluates f over all live entities and returns the matches in ascending id (slot)
// order. With IndexQueries enabled the per-tag index narrows the candidates first; the
// result is the same either way.
func (w *World) Filtered(f Filter) FilteredEntities {
	if w.index != nil && len(f.Required) > 0 {
		return w.filterIndexed(f)
	}
	return w.filterScan(f)
}

// filterScan checks every slot in ascending order.
func (w *World) filterScan(f Filter) FilteredEntities {
	result := make(FilteredEntities, 0)
	for slot := range w.records {
		rec := &w.records[slot]
		if !rec.alive || !matchesAll(rec, f.Required) {
			continue
		}
		result = append(result, NewEntityId(rec.generation, uint32(slot)))
	}
	return result
}

func (w *World) filterIndexed(f Filter) FilteredEntities {
	slots := w.index.candidates(f.Required)
	result := make(FilteredEntities, 0, len(slots))
	for _, slot := range slots {
		rec := &w.records[slot]
		if !rec.alive || !matchesAll(rec, f.Required) {
			continue
		}
		result = append(result, NewEntityId(rec.generation, slot))
	}
	return result
}

func matchesAll(rec *entityRecord, tags []ComponentType) bool {
	for _, typ := range tags {
		if rec.components.find(typ) < 0 {
			return false
		}
	}
	return true
}
