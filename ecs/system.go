package ecs

// System pairs a callback with a previously materialized entity snapshot.
//
// The callback may read and mutate component payloads through the World. It must not
// create or destroy entities, or add or remove components on the entities being iterated;
// queue those through Commands instead. The snapshot is never re-evaluated.
type System struct {
	Callback func(EntityId)
	Entities FilteredEntities
}

// NewSystem creates a System over entities.
func NewSystem(callback func(EntityId), entities FilteredEntities) System {
	return System{
		Callback: callback,
		Entities: entities,
	}
}

// Run invokes the callback once per entity in snapshot order.
func (s System) Run() {
	for _, id := range s.Entities {
		s.Callback(id)
	}
}

// RunSystem invokes the system's callback once per entity in its snapshot.
func RunSystem(s System) {
	s.Run()
}
