package systems

import (
	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/ecs"
)

type MovementSystem struct {
	types components.Types
}

func NewMovementSystem(types components.Types) *MovementSystem {
	return &MovementSystem{types: types}
}

func (s *MovementSystem) Name() string { return "movement" }

func (s *MovementSystem) Filter() ecs.Filter {
	return ecs.AllOf(s.types.Position, s.types.Velocity)
}

func (s *MovementSystem) ProcessEntity(frame *ecs.UpdateFrame, id ecs.EntityId) error {
	pos, err := ecs.RequireComponent[components.Position](frame.Storage, id)
	if err != nil {
		return err
	}
	vel, err := ecs.RequireComponent[components.Velocity](frame.Storage, id)
	if err != nil {
		return err
	}

	pos.X += vel.DX * frame.DeltaTime
	pos.Y += vel.DY * frame.DeltaTime
	return nil
}
