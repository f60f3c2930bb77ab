package ecs

import (
	"fmt"
	"reflect"
)

// MaxComponentTypes is the number of distinct component types a registry can hold.
const MaxComponentTypes = 256

// ComponentType is the dense identifier a ComponentRegistry assigns to a component type.
type ComponentType uint8

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	ids       map[reflect.Type]ComponentType
	types     []reflect.Type
	factories []func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentType),
	}
}

// RegisterComponent registers a new component type with the given registry and
// returns its id. Registering the same type twice returns the existing id.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) ComponentType {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	if len(r.types) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register %s: component type limit (%d) reached", t, MaxComponentTypes))
	}

	id := ComponentType(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func() iComponentStorage {
		return &genericComponentStorage[T]{}
	})
	return id
}

// ComponentTypeOf returns the id of a registered component type.
// It panics if T was never registered, which is a setup error.
func ComponentTypeOf[T any](r *ComponentRegistry) ComponentType {
	t := reflect.TypeFor[T]()
	id, ok := r.ids[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return id
}

// Lookup returns the id for a reflect.Type, if registered.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentType, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	id, ok := r.ids[t]
	return id, ok
}

// Type returns the reflect.Type registered under id.
func (r *ComponentRegistry) Type(id ComponentType) reflect.Type {
	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

// Name returns a readable name for a component type.
func (r *ComponentRegistry) Name(id ComponentType) string {
	if t := r.Type(id); t != nil {
		return t.String()
	}
	return fmt.Sprintf("component#%d", id)
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(id ComponentType) func() iComponentStorage {
	if int(id) >= len(r.factories) {
		return nil
	}
	return r.factories[id]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage is a generic implementation of iComponentStorage.
// It stores components of a specific type `T` in fixed blocks indexed by
// entity slot. Blocks are heap allocated individually so component pointers
// stay valid while the storage grows.
type genericComponentStorage[T any] struct {
	blocks []*[genericBlockSize]T
	filled []*[genericBlockSize]bool
	count  int
}

// Set stores a component at the given slot, replacing any previous value.
// Accepts either T or *T; returns false for any other type.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	if index < 0 {
		return false
	}

	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	for blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, new([genericBlockSize]bool))
	}

	if !cs.filled[blockIdx][slotIdx] {
		cs.count++
	}
	cs.blocks[blockIdx][slotIdx] = concreteItem
	cs.filled[blockIdx][slotIdx] = true
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	cs.filled[blockIdx][slotIdx] = false
	var zero T
	cs.blocks[blockIdx][slotIdx] = zero // Zero out the value
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		return false
	}

	return cs.filled[blockIdx][index%genericBlockSize]
}

// Len returns the number of stored components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}
