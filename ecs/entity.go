package ecs

// EntityId encodes both the slot index (upper 32 bits) and the slot generation (lower 32 bits).
// Ordering ids numerically therefore orders them by slot. The zero value is never issued.
type EntityId uint64

// NewEntityId creates an EntityId from a generation and slot index
func NewEntityId(generation uint32, index uint32) EntityId {
	return EntityId(uint64(index)<<32 | uint64(generation))
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e >> 32)
}

// entityRecord is the registry slot backing one entity.
// generation is bumped on destroy so ids handed out earlier stop resolving.
type entityRecord struct {
	generation uint32
	alive      bool
	components componentArray
}
