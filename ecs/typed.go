package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Add stores a copy of v as a component tagged typ and returns a pointer into the stored
// payload. T must be pointer-free. If typ is registered to another Go type the call fails
// with ErrTypeMismatch.
func Add[T any](w *World, id EntityId, typ ComponentType, v T) (*T, error) {
	t := reflect.TypeFor[T]()
	if err := w.checkType(typ, t); err != nil {
		return nil, err
	}
	if containsPointers(t) {
		return nil, fmt.Errorf("add component %d: %s contains pointers: %w", typ, t, ErrTypeMismatch)
	}

	size := int(unsafe.Sizeof(v))
	var data []byte
	if size > 0 {
		data = unsafe.Slice((*byte)(unsafe.Pointer(&v)), size)
	}

	payload, err := w.AddComponent(id, typ, data)
	if err != nil {
		return nil, err
	}
	return payloadAs[T](payload), nil
}

// Get returns a typed view of the first component tagged typ, or nil when the entity is
// invalid, lacks the component, T holds pointers, or the payload is too small for T.
func Get[T any](w *World, id EntityId, typ ComponentType) *T {
	payload, ok := w.GetComponent(id, typ)
	if !ok {
		return nil
	}
	if t, registered := w.registry.TypeOf(typ); registered && t != reflect.TypeFor[T]() {
		return nil
	}
	return payloadAs[T](payload)
}

// ComponentReader is implemented by World.
type ComponentReader interface {
	GetComponent(EntityId, ComponentType) ([]byte, bool)
}

// ReadComponent returns a typed view from any ComponentReader, without registry checks.
// It returns nil when T holds pointers.
func ReadComponent[T any](reader ComponentReader, id EntityId, typ ComponentType) *T {
	payload, ok := reader.GetComponent(id, typ)
	if !ok {
		return nil
	}
	return payloadAs[T](payload)
}

func (w *World) checkType(typ ComponentType, t reflect.Type) error {
	registered, ok := w.registry.TypeOf(typ)
	if !ok || registered == t {
		return nil
	}
	return fmt.Errorf("component %d is %s, not %s: %w", typ, registered, t, ErrTypeMismatch)
}

// payloadAs reinterprets payload as *T. Payloads are 8-byte aligned by allocPayload.
// Pointer-bearing T is refused since payload bytes are not traced by the collector.
func payloadAs[T any](payload []byte) *T {
	if containsPointers(reflect.TypeFor[T]()) {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(payload) < size {
		return nil
	}
	if size == 0 {
		return new(T)
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(payload)))
}
