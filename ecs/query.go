package ecs

import "iter"

// Query wraps a View with a materialized snapshot for repeated iteration.
// Execute evaluates the filter once and caches the matching entities and their
// component pointers; Iter and Values replay that snapshot until the next Execute.
type Query[T any] struct {
	view *View[T]

	cachedEntities   FilteredEntities
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query over world.
func NewQuery[T any](world *World) *Query[T] {
	return &Query[T]{
		view: NewView[T](world),
	}
}

// Execute rebuilds the snapshot.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.cacheValid = true
}

// Entities returns the snapshot taken by the last Execute.
// Panics if Execute() has not been called.
func (q *Query[T]) Entities() FilteredEntities {
	if !q.cacheValid {
		panic("Query.Entities() called before Query.Execute()")
	}
	return q.cachedEntities
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
