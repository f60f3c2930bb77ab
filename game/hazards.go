package game

import (
	"math/rand/v2"

	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/ecs"
)

const (
	hazardInterval = 0.8
	hazardSpeed    = 160.0
	hazardRadius   = 16.0
	hazardRank     = 1
)

// hazardSystem drops hazards from the top of the field at a fixed interval
// and removes the ones that left it.
type hazardSystem struct {
	types  components.Types
	window config.Window
	rng    *rand.Rand
	timer  float64
}

func newHazardSystem(types components.Types, window config.Window) *hazardSystem {
	return &hazardSystem{
		types:  types,
		window: window,
		rng:    rand.New(rand.NewPCG(1, 2)),
		timer:  hazardInterval,
	}
}

func (s *hazardSystem) Name() string { return "hazards" }

func (s *hazardSystem) Filter() ecs.Filter {
	return ecs.AllOf(s.types.Position, s.types.Collider)
}

func (s *hazardSystem) BeginFrame(frame *ecs.UpdateFrame) {
	s.timer -= frame.DeltaTime
	for s.timer <= 0 {
		s.timer += hazardInterval
		x := s.rng.Float64() * float64(s.window.Width)
		frame.Commands.Spawn(
			components.Position{X: x, Y: -hazardRadius},
			components.Velocity{DY: hazardSpeed},
			components.Collider{Radius: hazardRadius, Rank: hazardRank},
		)
	}
}

func (s *hazardSystem) EndFrame(*ecs.UpdateFrame) {}

func (s *hazardSystem) ProcessEntity(frame *ecs.UpdateFrame, id ecs.EntityId) error {
	if frame.Storage.HasComponent(id, s.types.Player) {
		return nil
	}
	pos, err := ecs.RequireComponent[components.Position](frame.Storage, id)
	if err != nil {
		return err
	}
	if pos.Y-hazardRadius > float64(s.window.Height) {
		frame.Storage.RemoveEntity(id)
	}
	return nil
}
