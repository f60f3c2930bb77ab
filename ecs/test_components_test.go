package ecs_test

import "github.com/plus3/spacecourier/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type testTypes struct {
	position ecs.ComponentType
	velocity ecs.ComponentType
	name     ecs.ComponentType
	health   ecs.ComponentType
	player   ecs.ComponentType
	score    ecs.ComponentType
	tag      ecs.ComponentType
}

func newTestRegistry() (*ecs.ComponentRegistry, testTypes) {
	registry := ecs.NewComponentRegistry()
	types := testTypes{
		position: ecs.RegisterComponent[Position](registry),
		velocity: ecs.RegisterComponent[Velocity](registry),
		name:     ecs.RegisterComponent[Name](registry),
		health:   ecs.RegisterComponent[Health](registry),
		player:   ecs.RegisterComponent[PlayerController](registry),
		score:    ecs.RegisterComponent[Score](registry),
		tag:      ecs.RegisterComponent[Tag](registry),
	}
	return registry, types
}

func collect(s *ecs.Storage, filter ecs.Filter) []ecs.EntityId {
	ids := make([]ecs.EntityId, 0)
	for id := range s.Query(filter) {
		ids = append(ids, id)
	}
	return ids
}
