package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// tagIndex maps each component tag to the entity slots carrying it.
// The per-slot value counts how many components with that tag the slot holds,
// so removing one of several duplicates keeps the slot indexed.
type tagIndex struct {
	sets *intmap.Map[ComponentType, *intmap.Map[uint32, int32]]
}

func newTagIndex() *tagIndex {
	return &tagIndex{
		sets: intmap.New[ComponentType, *intmap.Map[uint32, int32]](64),
	}
}

func (ix *tagIndex) add(slot uint32, typ ComponentType) {
	set, ok := ix.sets.Get(typ)
	if !ok {
		set = intmap.New[uint32, int32](64)
		ix.sets.Put(typ, set)
	}
	n, _ := set.Get(slot)
	set.Put(slot, n+1)
}

func (ix *tagIndex) remove(slot uint32, typ ComponentType) {
	set, ok := ix.sets.Get(typ)
	if !ok {
		return
	}
	n, ok := set.Get(slot)
	if !ok {
		return
	}
	if n <= 1 {
		set.Del(slot)
		return
	}
	set.Put(slot, n-1)
}

// removeAll drops slot from the set of every tag in arr.
func (ix *tagIndex) removeAll(slot uint32, arr *componentArray) {
	for i := range arr.items {
		if set, ok := ix.sets.Get(arr.items[i].typ); ok {
			set.Del(slot)
		}
	}
}

// size returns the number of slots carrying typ.
func (ix *tagIndex) size(typ ComponentType) int {
	set, ok := ix.sets.Get(typ)
	if !ok {
		return 0
	}
	return set.Len()
}

// candidates returns the slots of the rarest tag in tags, in ascending order.
// The caller still has to verify the remaining tags.
func (ix *tagIndex) candidates(tags []ComponentType) []uint32 {
	best := -1
	bestSize := 0
	for i, typ := range tags {
		n := ix.size(typ)
		if n == 0 {
			return nil
		}
		if best == -1 || n < bestSize {
			best = i
			bestSize = n
		}
	}

	set, _ := ix.sets.Get(tags[best])
	slots := make([]uint32, 0, bestSize)
	set.ForEach(func(slot uint32, _ int32) bool {
		slots = append(slots, slot)
		return true
	})
	slices.Sort(slots)
	return slots
}
