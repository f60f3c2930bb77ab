package systems

import (
	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/events"
)

// ScoreSystem accrues score for living players and announces every new
// best score. Players already marked for removal no longer score.
type ScoreSystem struct {
	types           components.Types
	bus             *events.Bus
	pointsPerSecond float64
	best            ecs.Singleton[components.BestScore]
}

func NewScoreSystem(storage *ecs.Storage, types components.Types, bus *events.Bus, pointsPerSecond float64) *ScoreSystem {
	s := &ScoreSystem{
		types:           types,
		bus:             bus,
		pointsPerSecond: pointsPerSecond,
	}
	ecs.NewSingleton[components.BestScore](storage)
	s.best.Init(storage)
	return s
}

func (s *ScoreSystem) Name() string { return "score" }

func (s *ScoreSystem) Filter() ecs.Filter {
	return ecs.AllOf(s.types.Player)
}

func (s *ScoreSystem) ProcessEntity(frame *ecs.UpdateFrame, id ecs.EntityId) error {
	if frame.Storage.HasComponent(id, s.types.Remove) {
		return nil
	}

	player, err := ecs.RequireComponent[components.PlayerComponent](frame.Storage, id)
	if err != nil {
		return err
	}
	player.Highscore += s.pointsPerSecond * frame.DeltaTime

	best := s.best.Get()
	if score := TruncateScore(player.Highscore); score > best.Value {
		best.Value = score
		s.bus.Dispatch(events.HighscoreChangedEvent{NewHighscore: score})
	}
	return nil
}
