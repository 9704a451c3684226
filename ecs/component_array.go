package ecs

import "unsafe"

// component is one tagged payload owned by the World.
// The owning entity is implied by the array it lives in.
type component struct {
	typ     ComponentType
	payload []byte
}

// componentArray is the unordered per-entity component collection.
// Removal swaps the last element into the hole, so order is not stable.
type componentArray struct {
	items []component
}

func (a *componentArray) len() int {
	return len(a.items)
}

// find returns the index of the first component tagged typ, or -1.
func (a *componentArray) find(typ ComponentType) int {
	for i := range a.items {
		if a.items[i].typ == typ {
			return i
		}
	}
	return -1
}

// append copies data into a fresh payload and stores it. Returns the stored payload.
func (a *componentArray) append(typ ComponentType, data []byte) []byte {
	payload := allocPayload(len(data))
	copy(payload, data)
	a.items = append(a.items, component{
		typ:     typ,
		payload: payload,
	})
	return payload
}

// removeAt drops the component at i by moving the last component into its place.
func (a *componentArray) removeAt(i int) {
	last := len(a.items) - 1
	a.items[i] = a.items[last]
	a.items[last] = component{}
	a.items = a.items[:last]
}

// reset releases every payload and empties the collection, keeping capacity.
func (a *componentArray) reset() {
	clear(a.items)
	a.items = a.items[:0]
}

func (a *componentArray) payloadBytes() int {
	n := 0
	for i := range a.items {
		n += len(a.items[i].payload)
	}
	return n
}

// allocPayload returns an n-byte slice backed by 8-byte aligned memory,
// so typed views over the payload never see a misaligned field.
func allocPayload(n int) []byte {
	if n == 0 {
		return []byte{}
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), n)
}
