// Package components holds the game's component data and the registration
// of those types with an ECS registry.
package components

import "github.com/plus3/spacecourier/ecs"

// RemoveComponent marks an entity for destruction once Delay has elapsed.
type RemoveComponent struct {
	Delay float64
}

// PlayerComponent is carried by the player entity. Highscore accumulates
// during a run and is reported when the player dies.
type PlayerComponent struct {
	Highscore float64
}

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

// Collider is a circle used for collision ranking. When two colliders
// overlap the lower effective Rank is destroyed.
type Collider struct {
	Radius float64
	Rank   int
}

// BestScore is a singleton holding the best truncated score seen so far.
type BestScore struct {
	Value int
}

// Types holds the component type ids assigned by a registry.
type Types struct {
	Shield   ecs.ComponentType
	Remove   ecs.ComponentType
	Player   ecs.ComponentType
	Position ecs.ComponentType
	Velocity ecs.ComponentType
	Collider ecs.ComponentType
}

// Register registers every game component with the registry.
// Registering twice returns the same ids.
func Register(r *ecs.ComponentRegistry) Types {
	return Types{
		Shield:   ecs.RegisterComponent[ShieldComponent](r),
		Remove:   ecs.RegisterComponent[RemoveComponent](r),
		Player:   ecs.RegisterComponent[PlayerComponent](r),
		Position: ecs.RegisterComponent[Position](r),
		Velocity: ecs.RegisterComponent[Velocity](r),
		Collider: ecs.RegisterComponent[Collider](r),
	}
}
