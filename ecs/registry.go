package ecs

import (
	"fmt"
	"reflect"
	"sort"
)

// ComponentType is a caller-chosen tag identifying the kind of a component payload.
// The World never interprets it beyond equality.
type ComponentType uint32

// ComponentRegistry associates component tags with Go types and display names.
// It is optional: a World without a registry stores untyped payloads only.
// Each World may share or own a registry, allowing multiple independent
// tag namespaces to coexist.
type ComponentRegistry struct {
	byTag  map[ComponentType]componentInfo
	byType map[reflect.Type]ComponentType
}

type componentInfo struct {
	name string
	typ  reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byTag:  make(map[ComponentType]componentInfo),
		byType: make(map[reflect.Type]ComponentType),
	}
}

// RegisterComponent binds tag to the Go type T.
// T must be a plain value type without pointers, since payloads are stored as raw bytes.
// Registering the same tag for two different types panics.
func RegisterComponent[T any](r *ComponentRegistry, tag ComponentType) {
	t := reflect.TypeFor[T]()
	if containsPointers(t) {
		panic("component type " + t.String() + " contains pointers and cannot be stored as a payload")
	}

	if existing, ok := r.byTag[tag]; ok && existing.typ != t {
		panic(fmt.Sprintf("component tag %d already registered to %s", tag, existing.typ))
	}
	if existing, ok := r.byType[t]; ok && existing != tag {
		panic(fmt.Sprintf("component type %s already registered with tag %d", t, existing))
	}

	r.byTag[tag] = componentInfo{name: t.String(), typ: t}
	r.byType[t] = tag
}

// TypeOf returns the Go type registered for tag.
func (r *ComponentRegistry) TypeOf(tag ComponentType) (reflect.Type, bool) {
	if r == nil {
		return nil, false
	}
	info, ok := r.byTag[tag]
	return info.typ, ok
}

// TagOf returns the tag registered for t.
func (r *ComponentRegistry) TagOf(t reflect.Type) (ComponentType, bool) {
	if r == nil {
		return 0, false
	}
	tag, ok := r.byType[t]
	return tag, ok
}

// Name returns a display name for tag, falling back to "#<tag>" for unregistered tags.
func (r *ComponentRegistry) Name(tag ComponentType) string {
	if r != nil {
		if info, ok := r.byTag[tag]; ok {
			return info.name
		}
	}
	return fmt.Sprintf("#%d", tag)
}

// Tags returns all registered tags in ascending order.
func (r *ComponentRegistry) Tags() []ComponentType {
	if r == nil {
		return nil
	}
	tags := make([]ComponentType, 0, len(r.byTag))
	for tag := range r.byTag {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// containsPointers reports whether values of t hold references the garbage collector
// would need to trace. Such values cannot round-trip through a byte payload.
func containsPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice,
		reflect.String, reflect.Interface, reflect.UnsafePointer:
		return true
	case reflect.Array:
		return t.Len() > 0 && containsPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
