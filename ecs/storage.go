package ecs

import (
	"iter"
	"reflect"
	"sort"
)

// Storage is the entity registry: it owns entity identities and every
// component attached to them.
//
// Entities live in slots. Removing an entity bumps its slot generation, so
// ids held by callers resolve as absent afterwards. Freed slots are only
// handed out again after Recycle, which the Scheduler calls at the frame
// boundary.
type Storage struct {
	registry *ComponentRegistry
	storages []iComponentStorage

	masks       []Mask
	generations []uint32
	alive       []bool
	born        []uint64

	free     []uint32
	released []uint32
	spawnSeq uint64
	live     int

	singletons map[reflect.Type]any
}

// StorageStats is a point-in-time summary of storage contents
type StorageStats struct {
	EntityCount    int
	SlotCount      int
	FreeSlotCount  int
	SingletonCount int
	Components     []ComponentStats
	SingletonTypes []string
}

// ComponentStats reports how many entities carry a component type
type ComponentStats struct {
	Type  ComponentType
	Name  string
	Count int
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		singletons: make(map[reflect.Type]any),
	}
}

// Registry returns the component registry backing this storage
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntity allocates a fresh entity with no components
func (s *Storage) CreateEntity() EntityId {
	s.spawnSeq++

	if n := len(s.free); n > 0 {
		index := s.free[n-1]
		s.free = s.free[:n-1]
		s.alive[index] = true
		s.masks[index] = Mask{}
		s.born[index] = s.spawnSeq
		s.live++
		return NewEntityId(s.generations[index], index)
	}

	index := uint32(len(s.masks))
	s.masks = append(s.masks, Mask{})
	s.generations = append(s.generations, 1)
	s.alive = append(s.alive, true)
	s.born = append(s.born, s.spawnSeq)
	s.live++
	return NewEntityId(1, index)
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	id := s.CreateEntity()
	for _, comp := range components {
		s.AddComponent(id, comp)
	}
	return id
}

// Alive reports whether the id refers to a live entity
func (s *Storage) Alive(id EntityId) bool {
	index := id.Index()
	return int(index) < len(s.alive) && s.alive[index] && s.generations[index] == id.Generation()
}

// Len returns the number of live entities
func (s *Storage) Len() int {
	return s.live
}

// RemoveEntity releases all components of the entity and invalidates its id.
// Removing an unknown or already removed entity is a no-op.
func (s *Storage) RemoveEntity(id EntityId) {
	if !s.Alive(id) {
		return
	}

	index := id.Index()
	for _, ct := range s.masks[index].Types() {
		s.storages[ct].Delete(int(index))
	}

	s.masks[index] = Mask{}
	s.alive[index] = false
	s.generations[index]++
	if s.generations[index] == 0 {
		s.generations[index] = 1
	}
	s.released = append(s.released, index)
	s.live--
}

// Recycle makes slots released since the last call available for reuse
func (s *Storage) Recycle() {
	s.free = append(s.free, s.released...)
	s.released = s.released[:0]
}

// AddComponent attaches a component to the entity, replacing an existing
// component of the same type. Accepts T or *T for any registered T.
// Unregistered component types panic; dead entities are ignored.
func (s *Storage) AddComponent(id EntityId, component any) {
	ct, ok := s.registry.Lookup(reflect.TypeOf(component))
	if !ok {
		panic("component type " + reflect.TypeOf(component).String() + " not registered")
	}
	if !s.Alive(id) {
		return
	}

	index := id.Index()
	s.storageFor(ct).Set(int(index), component)
	s.masks[index].Set(ct)
}

// RemoveComponent detaches a component type from the entity if present
func (s *Storage) RemoveComponent(id EntityId, ct ComponentType) {
	if !s.HasComponent(id, ct) {
		return
	}

	index := id.Index()
	s.storages[ct].Delete(int(index))
	s.masks[index].Unset(ct)
}

// GetComponent returns a pointer to the component of the given type, or nil
func (s *Storage) GetComponent(id EntityId, ct ComponentType) any {
	if !s.HasComponent(id, ct) {
		return nil
	}
	return s.storages[ct].Get(int(id.Index()))
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, ct ComponentType) bool {
	if !s.Alive(id) {
		return false
	}
	return s.masks[id.Index()].Has(ct)
}

// Mask returns the component mask of a live entity and false otherwise
func (s *Storage) Mask(id EntityId) (Mask, bool) {
	if !s.Alive(id) {
		return Mask{}, false
	}
	return s.masks[id.Index()], true
}

// Query returns a lazy, restartable sequence of live entities matching the
// filter, in slot order. Entities removed while the sequence is consumed are
// skipped; entities created after the sequence started are not visited.
func (s *Storage) Query(filter Filter) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		limit := len(s.masks)
		seq := s.spawnSeq
		for i := 0; i < limit && i < len(s.masks); i++ {
			if !s.alive[i] || s.born[i] > seq || !filter.Matches(s.masks[i]) {
				continue
			}
			if !yield(NewEntityId(s.generations[i], uint32(i))) {
				return
			}
		}
	}
}

// Entities returns every live entity in slot order
func (s *Storage) Entities() iter.Seq[EntityId] {
	return s.Query(Filter{})
}

// CollectStats summarises the storage for debugging tools
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount:    s.live,
		SlotCount:      len(s.masks),
		FreeSlotCount:  len(s.free) + len(s.released),
		SingletonCount: len(s.singletons),
	}

	for i, cs := range s.storages {
		if cs == nil || cs.Len() == 0 {
			continue
		}
		ct := ComponentType(i)
		stats.Components = append(stats.Components, ComponentStats{
			Type:  ct,
			Name:  s.registry.Name(ct),
			Count: cs.Len(),
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}

func (s *Storage) storageFor(ct ComponentType) iComponentStorage {
	for int(ct) >= len(s.storages) {
		s.storages = append(s.storages, nil)
	}
	if s.storages[ct] == nil {
		factory := s.registry.getFactory(ct)
		if factory == nil {
			panic("component type " + s.registry.Name(ct) + " not registered")
		}
		s.storages[ct] = factory()
	}
	return s.storages[ct]
}

// ReadComponent returns a pointer to the entity's T component, or nil if absent.
func ReadComponent[T any](s *Storage, id EntityId) *T {
	ct, ok := s.registry.ids[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	comp, _ := s.GetComponent(id, ct).(*T)
	return comp
}

// RequireComponent returns the entity's T component or a *MissingComponentError.
// Systems use it for components their filter guarantees.
func RequireComponent[T any](s *Storage, id EntityId) (*T, error) {
	if comp := ReadComponent[T](s, id); comp != nil {
		return comp, nil
	}
	return nil, &MissingComponentError{
		Entity:    id,
		Component: reflect.TypeFor[T]().String(),
	}
}
