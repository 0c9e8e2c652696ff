package ecs

import "iter"

// Query is a View whose results are materialised once per run of the
// owning system. The matching archetype list is cached until a new
// archetype appears.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	archetypes []*Archetype
	seen       int

	ids   []EntityId
	items []T
	ready bool
}

// NewQuery returns a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops all caches. The Scheduler
// calls it on registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.seen = -1
	q.ready = false
}

func (q *Query[T]) refreshArchetypes() {
	if len(q.storage.order) == q.seen {
		return
	}
	q.archetypes = q.archetypes[:0]
	for _, a := range q.storage.order {
		if q.view.matches(a) {
			q.archetypes = append(q.archetypes, a)
		}
	}
	q.seen = len(q.storage.order)
}

// Execute snapshots the matching entities. The Scheduler runs it right
// before the owning system.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.archetypes {
		for id, item := range q.view.iterArchetype(a) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.ready = true
}

// Len is the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	if !q.ready {
		panic("ecs: Query.Len() called before Query.Execute()")
	}
	return len(q.ids)
}

// Iter yields the snapshot.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.ready {
		panic("ecs: Query.Iter() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Values yields the snapshot without ids.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.ready {
		panic("ecs: Query.Values() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}
