package ecs

// EntityId packs the archetype id into the upper 32 bits and the slot
// index inside that archetype into the lower 32 bits. Slots are reused,
// so an id kept past a delete may name a later entity; hold an EntityRef
// to keep track of one entity over time.
type EntityId uint64

// NewEntityId builds an id from an archetype id and a slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the slot half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e)
}

// EntityRef is a handle that survives archetype moves. Storage rewrites
// Id when the entity changes archetype and zeroes it on delete.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity still exists.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}
