// Package systems implements the game's per-frame systems on top of the
// ecs scheduler.
package systems

import (
	"math"

	"go.uber.org/zap"

	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/events"
)

// TruncateScore converts an accumulated score to the integer reported in
// events. Fractions are dropped toward zero.
func TruncateScore(score float64) int {
	return int(math.Trunc(score))
}

// RemoveSystem destroys entities whose RemoveComponent delay has run out.
// A dying player produces exactly one PlayerDeathEvent.
type RemoveSystem struct {
	types  components.Types
	bus    *events.Bus
	logger *zap.Logger
}

func NewRemoveSystem(types components.Types, bus *events.Bus, logger *zap.Logger) *RemoveSystem {
	return &RemoveSystem{
		types:  types,
		bus:    bus,
		logger: logger,
	}
}

func (s *RemoveSystem) Name() string { return "remove" }

func (s *RemoveSystem) Filter() ecs.Filter {
	return ecs.AllOf(s.types.Remove)
}

func (s *RemoveSystem) ProcessEntity(frame *ecs.UpdateFrame, id ecs.EntityId) error {
	remove, err := ecs.RequireComponent[components.RemoveComponent](frame.Storage, id)
	if err != nil {
		return err
	}

	remove.Delay -= frame.DeltaTime
	if remove.Delay > 0 {
		return nil
	}

	if player := ecs.ReadComponent[components.PlayerComponent](frame.Storage, id); player != nil {
		score := TruncateScore(player.Highscore)
		s.logger.Info("player died", zap.Int("score", score), zap.Uint64("frame", frame.Number))
		s.bus.Dispatch(events.PlayerDeathEvent{Score: score})
	}

	frame.Storage.RemoveEntity(id)
	return nil
}
