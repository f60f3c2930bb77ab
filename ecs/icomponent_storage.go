package ecs

// iComponentStorage is an interface for a type-erased component storage
// addressed by entity slot index.
type iComponentStorage interface {
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
}
