package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View projects entities onto a struct T whose fields are pointers to
// components. An EntityId field receives the entity id. Named fields
// tagged `ecs:"optional"` are nil when the component is missing; all
// other component fields are required.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
	idOffset uintptr
	hasId    bool
}

// NewView inspects T and panics if it is not a struct of component
// pointers.
func NewView[T any](storage *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)

		if field.Type == entityIdType {
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: View field " + field.Name + " must be a component pointer or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("ecs: invalid ecs tag \"" + tag + "\" on " + field.Name)
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}
	return v
}

func (v *View[T]) matches(a *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !a.HasComponent(t) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnIndices(a *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = a.columnIndex(t)
	}
	return indices
}

// fill writes the component pointers for slot into out. Returns false if
// a required component is absent.
func (v *View[T]) fill(out *T, a *Archetype, slot int, indices []int) bool {
	base := unsafe.Pointer(out)
	for i, col := range indices {
		field := (*unsafe.Pointer)(unsafe.Add(base, v.offsets[i]))

		var comp any
		if col >= 0 {
			comp = a.columns[col].Get(slot)
		}
		if comp == nil {
			if !v.optional[i] {
				return false
			}
			*field = nil
			continue
		}
		*field = reflect.ValueOf(comp).UnsafePointer()
	}
	if v.hasId {
		*(*EntityId)(unsafe.Add(base, v.idOffset)) = NewEntityId(a.id, uint32(slot))
	}
	return true
}

// Get returns the projection for id, or nil when the entity lacks a
// required component.
func (v *View[T]) Get(id EntityId) *T {
	a, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !v.matches(a) {
		return nil
	}
	var out T
	if !v.fill(&out, a, int(id.Index()), v.columnIndices(a)) {
		return nil
	}
	return &out
}

// GetRef resolves ref and returns its projection, or nil.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetype(a *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(a.columns) == 0 {
			return
		}
		indices := v.columnIndices(a)
		var out T
		for slot := range a.columns[0].Iter() {
			if !v.fill(&out, a, slot, indices) {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(slot)), out) {
				return
			}
		}
	}
}

// Iter yields every matching entity, archetypes in creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, a := range v.storage.order {
			if !v.matches(a) {
				continue
			}
			for id, item := range v.iterArchetype(a) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component fields of data.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.types))
	for i, t := range v.types {
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, v.offsets[i]))
		if ptr == nil {
			if !v.optional[i] {
				panic("ecs: required component " + t.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(t, ptr).Interface())
	}
	return v.storage.Spawn(components...)
}
