// Package ecs is a small Entity-Component-System runtime.
//
// Entities are opaque ids. Components are byte payloads tagged with a caller-chosen
// ComponentType and owned by the World. Filters select the live entities carrying a set
// of tags, and systems run a callback over the resulting snapshot.
package ecs

import (
	"fmt"
	"iter"
	"log"
)

// World holds the entity registry and the component store.
// A World is not safe for concurrent use.
type World struct {
	config   Config
	registry *ComponentRegistry
	logger   *log.Logger

	records   []entityRecord
	freeSlots []uint32
	live      int
	retired   int

	index *tagIndex
}

// NewWorld creates an empty World. registry may be nil when only untyped payloads are used.
func NewWorld(config Config, registry *ComponentRegistry) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	w := &World{
		config:   config,
		registry: registry,
		logger:   config.Logger,
		records:  make([]entityRecord, 0, config.InitialCapacity),
	}
	if config.IndexQueries {
		w.index = newTagIndex()
	}
	return w, nil
}

// Config returns the effective configuration, defaults applied.
func (w *World) Config() Config {
	return w.config
}

// Registry returns the component registry, which may be nil.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// CreateEntity allocates a live entity with no components.
// Freed slots are reused before new ones are appended. When MaxEntities slots are all live
// the returned error matches ErrEntityLimit and ErrResourceExhausted.
func (w *World) CreateEntity() (EntityId, error) {
	if n := len(w.freeSlots); n > 0 {
		slot := w.freeSlots[n-1]
		w.freeSlots = w.freeSlots[:n-1]

		rec := &w.records[slot]
		rec.alive = true
		w.live++
		return NewEntityId(rec.generation, slot), nil
	}

	if w.config.MaxEntities > 0 && len(w.records) >= w.config.MaxEntities {
		return 0, fmt.Errorf("create entity (limit %d): %w", w.config.MaxEntities, ErrEntityLimit)
	}

	slot := uint32(len(w.records))
	w.records = append(w.records, entityRecord{
		generation: 1,
		alive:      true,
	})
	w.live++
	return NewEntityId(1, slot), nil
}

// DestroyEntity marks the entity dead and releases all of its components.
// Invalid, stale or already dead ids are ignored. A slot whose generation counter wraps
// is never reused.
func (w *World) DestroyEntity(id EntityId) {
	rec := w.record(id)
	if rec == nil {
		return
	}

	slot := id.Index()
	if w.index != nil {
		w.index.removeAll(slot, &rec.components)
	}
	rec.components.reset()
	rec.alive = false
	rec.generation++
	w.live--

	// A wrapped generation would let ids from the slot's first cycle resolve again,
	// so the slot is retired instead of recycled.
	if rec.generation == 0 {
		w.retired++
		w.logger.Printf("[ecs] entity slot %d retired after generation wrap", slot)
		return
	}
	w.freeSlots = append(w.freeSlots, slot)
}

// IsAlive reports whether id refers to a live entity.
func (w *World) IsAlive(id EntityId) bool {
	return w.record(id) != nil
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}

// Entities iterates over live entities in ascending slot order.
func (w *World) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot := range w.records {
			rec := &w.records[slot]
			if !rec.alive {
				continue
			}
			if !yield(NewEntityId(rec.generation, uint32(slot))) {
				return
			}
		}
	}
}

// AddComponent copies data into a new payload tagged typ and attaches it to the entity.
// The returned slice is the stored payload; it stays valid until the component is removed
// or the entity destroyed. Nothing is attached when an error is returned.
func (w *World) AddComponent(id EntityId, typ ComponentType, data []byte) ([]byte, error) {
	rec := w.record(id)
	if rec == nil {
		return nil, fmt.Errorf("add component %d to entity %d: %w", typ, id, ErrInvalidEntity)
	}

	if rec.components.len() >= w.config.MaxComponents {
		w.logger.Printf("[ecs] max components reached (entity %d, limit %d)", id, w.config.MaxComponents)
		return nil, fmt.Errorf("add component %d to entity %d: %w", typ, id, ErrComponentLimit)
	}

	if w.config.UniqueComponents && rec.components.find(typ) >= 0 {
		return nil, fmt.Errorf("add component %d to entity %d: %w", typ, id, ErrDuplicateComponent)
	}

	payload := rec.components.append(typ, data)
	if w.index != nil {
		w.index.add(id.Index(), typ)
	}
	return payload, nil
}

// RemoveComponent releases the first component tagged typ.
// The last component of the entity takes its place, so component order is not preserved.
func (w *World) RemoveComponent(id EntityId, typ ComponentType) {
	rec := w.record(id)
	if rec == nil {
		return
	}

	i := rec.components.find(typ)
	if i < 0 {
		return
	}
	rec.components.removeAt(i)
	if w.index != nil {
		w.index.remove(id.Index(), typ)
	}
}

// GetComponent returns the payload of the first component tagged typ.
// The slice aliases World memory and must not be kept past the next structural change
// to the entity.
func (w *World) GetComponent(id EntityId, typ ComponentType) ([]byte, bool) {
	rec := w.record(id)
	if rec == nil {
		return nil, false
	}

	i := rec.components.find(typ)
	if i < 0 {
		return nil, false
	}
	return rec.components.items[i].payload, true
}

// HasComponent checks if an entity has a component tagged typ
func (w *World) HasComponent(id EntityId, typ ComponentType) bool {
	rec := w.record(id)
	if rec == nil {
		return false
	}
	return rec.components.find(typ) >= 0
}

// Components returns the tags attached to the entity in storage order.
func (w *World) Components(id EntityId) []ComponentType {
	rec := w.record(id)
	if rec == nil {
		return nil
	}

	tags := make([]ComponentType, 0, rec.components.len())
	for i := range rec.components.items {
		tags = append(tags, rec.components.items[i].typ)
	}
	return tags
}

// ComponentCount returns the number of components attached to the entity.
func (w *World) ComponentCount(id EntityId) int {
	rec := w.record(id)
	if rec == nil {
		return 0
	}
	return rec.components.len()
}

// record resolves id to its slot if the entity is live and the generation matches.
func (w *World) record(id EntityId) *entityRecord {
	slot := id.Index()
	if int64(slot) >= int64(len(w.records)) {
		return nil
	}

	rec := &w.records[slot]
	if !rec.alive || rec.generation != id.Generation() {
		return nil
	}
	return rec
}
