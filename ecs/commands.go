package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The
// Scheduler flushes it after the last system of a tick.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []addCommand
	removes []removeCommand
	defers  []func()
}

type addCommand struct {
	entity    EntityId
	component any
}

type removeCommand struct {
	entity EntityId
	typ    reflect.Type
}

// Spawn queues an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity for deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, t reflect.Type) {
	c.removes = append(c.removes, removeCommand{entity: entity, typ: t})
}

// Defer queues fn to run after all structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports whether anything is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.deletes)+len(c.adds)+len(c.removes)+len(c.defers) > 0
}

// Flush applies the buffer in the order deletes, removes, adds, spawns,
// defers, then resets it. Adds and removes aimed at deleted entities are
// dropped. An entity that changes archetype is tracked by a temporary
// ref so a later command on the same entity still finds it.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		if deleted[id] {
			continue
		}
		storage.Delete(id)
		deleted[id] = true
	}

	moved := make(map[EntityId]*EntityRef)
	resolve := func(id EntityId) EntityId {
		if ref, ok := moved[id]; ok {
			return ref.Id
		}
		return id
	}
	track := func(id EntityId) {
		if _, ok := moved[id]; !ok {
			if ref := storage.CreateEntityRef(id); ref != nil {
				moved[id] = ref
			}
		}
	}

	for _, cmd := range c.removes {
		if deleted[cmd.entity] {
			continue
		}
		track(cmd.entity)
		if current := resolve(cmd.entity); current != 0 {
			storage.RemoveComponent(current, cmd.typ)
		}
	}

	for _, cmd := range c.adds {
		if deleted[cmd.entity] {
			continue
		}
		track(cmd.entity)
		if current := resolve(cmd.entity); current != 0 {
			storage.AddComponent(current, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.adds)
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
