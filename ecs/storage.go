package ecs

import (
	"hash/fnv"
	"reflect"
	"sort"
	"weak"
)

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	order      []*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

// NewStorage returns an empty storage using the given registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// Len returns the number of live entities across all archetypes.
func (s *Storage) Len() int {
	n := 0
	for _, a := range s.order {
		n += a.Len()
	}
	return n
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	if a, ok := s.archetypes[id]; ok {
		return a
	}
	a := NewArchetype(id, types, s.registry)
	s.archetypes[id] = a
	s.order = append(s.order, a)
	return a
}

// GetArchetype returns the archetype holding exactly the given component
// set, or nil if none was created yet.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypes(componentTypes(components))]
}

// Spawn creates an entity from the given components. Components may be
// values or pointers to values; pointers are copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}
	archetype := s.archetypeFor(componentTypes(components))
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Exists reports whether id points at a live entity.
func (s *Storage) Exists(id EntityId) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	return ok && a.Contains(id.Index())
}

// Delete removes the entity. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if a, ok := s.archetypes[id.ArchetypeId()]; ok {
		a.Delete(id.Index())
	}
}

// CreateEntityRef returns the shared ref for id, creating it on first
// use. Returns nil when id does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	a := s.archetypes[id.ArchetypeId()]
	if a == nil || !a.Contains(id.Index()) {
		return nil
	}

	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		a.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: a}
	a.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// move copies the entity into the archetype for newTypes, substituting
// extra when its type is in newTypes, and carries the ref along.
func (s *Storage) move(id EntityId, newTypes []reflect.Type, extra any) EntityId {
	old := s.archetypes[id.ArchetypeId()]
	wp, hasRef := old.refs.Get(id)

	if len(newTypes) == 0 {
		old.Delete(id.Index())
		return 0
	}

	target := s.archetypeFor(newTypes)
	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if extra != nil && componentType(extra) == typ {
			components = append(components, extra)
			continue
		}
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	newId := NewEntityId(target.id, target.Spawn(components))
	if hasRef {
		old.refs.Del(id)
		if ref := wp.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = target
			target.refs.Put(newId, wp)
		}
	}
	old.Delete(id.Index())
	return newId
}

// AddComponent attaches component to the entity, moving it to a new
// archetype, and returns the new id. If the entity already has that type
// the value is overwritten in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Contains(id.Index()) {
		return 0
	}

	t := componentType(component)
	if old.HasComponent(t) {
		reflect.ValueOf(old.GetComponent(id.Index(), t)).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	newTypes := append(append(make([]reflect.Type, 0, len(old.types)+1), old.types...), t)
	sort.Sort(byTypeName(newTypes))
	return s.move(id, newTypes, component)
}

// RemoveComponent detaches the component of type t and returns the new
// id. Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, t reflect.Type) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Contains(id.Index()) {
		return 0
	}
	if !old.HasComponent(t) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != t {
			newTypes = append(newTypes, typ)
		}
	}
	return s.move(id, newTypes, nil)
}

// GetComponent returns a pointer to the entity's component of type t, or
// nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return a.GetComponent(id.Index(), t)
}

// HasComponent reports whether the entity's archetype includes t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	return ok && a.Contains(id.Index()) && a.HasComponent(t)
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentType(comp))
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypes is FNV-1a over the sorted type names. Zero is reserved for
// invalidated ids.
func hashTypes(types []reflect.Type) uint32 {
	h := fnv.New32a()
	for _, t := range types {
		h.Write([]byte(t.PkgPath()))
		h.Write([]byte{'.'})
		h.Write([]byte(t.String()))
		h.Write([]byte{0})
	}
	if sum := h.Sum32(); sum != 0 {
		return sum
	}
	return 1
}

// ComponentReader is anything that can look components up by id.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent. It returns nil when
// the entity has no T.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
