package ecs

import (
	"math/bits"
	"slices"
)

// Mask is a set of up to MaxComponentTypes component types. Bit n is set when
// the component type with id n is present.
type Mask [4]uint64

// Set enables the bit for the given component type
func (m *Mask) Set(t ComponentType) {
	m[t>>6] |= uint64(1) << (t & 63)
}

// Unset disables the bit for the given component type
func (m *Mask) Unset(t ComponentType) {
	m[t>>6] &^= uint64(1) << (t & 63)
}

// Has reports whether the bit for the given component type is set
func (m Mask) Has(t ComponentType) bool {
	return m[t>>6]&(uint64(1)<<(t&63)) != 0
}

// Contains reports whether every bit set in sub is also set in m
func (m Mask) Contains(sub Mask) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

// IsZero reports whether no bit is set
func (m Mask) IsZero() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}

// Count returns the number of component types in the mask
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}

// Types returns the component types in the mask in ascending id order
func (m Mask) Types() []ComponentType {
	types := make([]ComponentType, 0, m.Count())
	for word := 0; word < len(m); word++ {
		w := m[word]
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			types = append(types, ComponentType(word*64+bit))
			w &= w - 1
		}
	}
	return types
}

// Filter selects entities that carry every required component type.
type Filter struct {
	mask  Mask
	types []ComponentType
}

// AllOf builds a filter requiring all of the given component types
func AllOf(types ...ComponentType) Filter {
	f := Filter{types: slices.Clone(types)}
	for _, t := range types {
		f.mask.Set(t)
	}
	return f
}

// Matches reports whether an entity with the given mask passes the filter
func (f Filter) Matches(m Mask) bool {
	return m.Contains(f.mask)
}

// Mask returns the required component mask
func (f Filter) Mask() Mask {
	return f.mask
}

// Types returns the required component types in declaration order
func (f Filter) Types() []ComponentType {
	return f.types
}
