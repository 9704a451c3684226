package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View is a typed window over entities that carry a specific combination of components.
// The type T should be a struct with embedded or named pointer fields, one per component
// type, each registered in the World's ComponentRegistry.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
type View[T any] struct {
	world       *World
	tags        []ComponentType
	optional    []bool
	fieldOffset []uintptr
	fieldSize   []uintptr
	filter      Filter
}

// NewView creates a new view for the given struct type.
// Embedded fields are always required. It panics if T is not a struct of pointers to
// registered component types.
func NewView[T any](world *World) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		world:       world,
		tags:        make([]ComponentType, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
		fieldSize:   make([]uintptr, 0, structType.NumField()),
	}

	required := make([]ComponentType, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		componentType := field.Type.Elem()
		tag, ok := world.registry.TagOf(componentType)
		if !ok {
			panic("component type " + componentType.String() + " not registered")
		}

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			if st := field.Tag.Get("ecs"); st != "" {
				if st != "optional" {
					panic("invalid ecs tag value: \"" + st + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}

		v.tags = append(v.tags, tag)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.fieldSize = append(v.fieldSize, componentType.Size())
		if !isOptional {
			required = append(required, tag)
		}
	}

	v.filter = NewFilter(required...)
	return v
}

// Filter returns the filter built from the view's required fields.
func (v *View[T]) Filter() Filter {
	return v.filter
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required component.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	rec := v.world.record(id)
	if rec == nil {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), rec)
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over all entities that have the view's required components,
// in ascending slot order. The yielded struct is reused between iterations.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		resultPtr := unsafe.Pointer(&result)

		for _, id := range v.world.Filtered(v.filter) {
			if !v.populate(resultPtr, v.world.record(id)) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, rec *entityRecord) bool {
	for i, tag := range v.tags {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		idx := rec.components.find(tag)
		if idx < 0 || uintptr(len(rec.components.items[idx].payload)) < v.fieldSize[i] {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		payload := rec.components.items[idx].payload
		*(*unsafe.Pointer)(fieldPtr) = unsafe.Pointer(unsafe.SliceData(payload))
	}
	return true
}
