package ecs

import (
	"iter"
	"reflect"
)

// column is the type-erased view of one component type's storage inside
// an archetype.
type column interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column constructors. Every
// Storage owns one, so independent scenes do not share registrations.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T spawnable in storages built from r.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has a column constructor.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) factory(t reflect.Type) func() column {
	return r.factories[t]
}

const blockSize = 64

// blockColumn stores values of T in fixed-size blocks so pointers handed
// out by Get stay valid while the column grows. Deleted slots are
// recycled LIFO.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
	filled []*[blockSize]bool
	free   []int
	next   int
	count  int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, new([blockSize]bool))
		}
	}

	b, s := index/blockSize, index%blockSize
	c.blocks[b][s] = value
	c.filled[b][s] = true
	c.count++
	return index
}

func (c *blockColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	b, s := index/blockSize, index%blockSize
	var zero T
	c.blocks[b][s] = zero
	c.filled[b][s] = false
	c.free = append(c.free, index)
	c.count--
}

func (c *blockColumn[T]) Has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Len() int {
	return c.count
}

// Iter yields occupied slot indices in ascending order.
func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if c.filled[i/blockSize][i%blockSize] && !yield(i) {
				return
			}
		}
	}
}
