package ecs

import (
	"iter"
	"reflect"
)

// Each iterates live entities carrying a T component together with a pointer
// to that component. It follows the same ordering and mutation rules as
// Storage.Query.
func Each[T any](s *Storage) iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		ct, ok := s.registry.Lookup(reflect.TypeFor[T]())
		if !ok {
			return
		}
		for id := range s.Query(AllOf(ct)) {
			comp, ok := s.GetComponent(id, ct).(*T)
			if !ok {
				continue
			}
			if !yield(id, comp) {
				return
			}
		}
	}
}

// Count returns how many entities currently match the filter.
func (s *Storage) Count(filter Filter) int {
	n := 0
	for range s.Query(filter) {
		n++
	}
	return n
}
