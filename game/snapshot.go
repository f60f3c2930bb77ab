package game

import (
	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/systems"
)

// EntityView is a read-only copy of what a renderer needs about one entity.
type EntityView struct {
	Id           ecs.EntityId
	X, Y         float64
	Radius       float64
	Player       bool
	ShieldActive bool
	Dying        bool
}

// Snapshot is a copy of the renderable state. It stays valid after
// further updates.
type Snapshot struct {
	State    State
	Frame    uint64
	Score    int
	Best     int
	Shield   float64
	Entities []EntityView
}

// Snapshot copies the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State: g.state,
		Best:  g.BestScore(),
	}
	if g.lastReport != nil {
		snap.Frame = g.lastReport.Frame
	}

	for id := range g.storage.Query(ecs.AllOf(g.types.Position, g.types.Collider)) {
		pos := ecs.ReadComponent[components.Position](g.storage, id)
		col := ecs.ReadComponent[components.Collider](g.storage, id)
		view := EntityView{
			Id:     id,
			X:      pos.X,
			Y:      pos.Y,
			Radius: col.Radius,
			Dying:  g.storage.HasComponent(id, g.types.Remove),
		}
		if shield := ecs.ReadComponent[components.ShieldComponent](g.storage, id); shield != nil {
			view.ShieldActive = shield.IsActive()
		}
		if player := ecs.ReadComponent[components.PlayerComponent](g.storage, id); player != nil {
			view.Player = true
			snap.Score = systems.TruncateScore(player.Highscore)
			if shield := ecs.ReadComponent[components.ShieldComponent](g.storage, id); shield != nil && !shield.IsActive() {
				snap.Shield = max(shield.Cooldown, 0)
			}
		}
		snap.Entities = append(snap.Entities, view)
	}
	return snap
}
