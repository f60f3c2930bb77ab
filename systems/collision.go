package systems

import (
	"github.com/kamstrup/intmap"

	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/ecs"
)

type CollisionSettings struct {
	// ShieldBonus is added to the rank of an entity with an active shield.
	ShieldBonus int
	// DeathDelay is the RemoveComponent delay given to a losing entity.
	DeathDelay float64
}

// CollisionSystem ranks overlapping colliders. The lower effective rank of
// every overlapping pair is marked for removal, equal ranks both are.
// Removal markers go through the frame's command buffer, so every pair is
// judged against the state at the start of the pass and the outcome does
// not depend on creation order.
type CollisionSystem struct {
	types    components.Types
	settings CollisionSettings
	filter   ecs.Filter
	marked   *intmap.Map[ecs.EntityId, struct{}]
}

func NewCollisionSystem(types components.Types, settings CollisionSettings) *CollisionSystem {
	return &CollisionSystem{
		types:    types,
		settings: settings,
		filter:   ecs.AllOf(types.Position, types.Collider),
		marked:   intmap.New[ecs.EntityId, struct{}](16),
	}
}

func (s *CollisionSystem) Name() string { return "collision" }

func (s *CollisionSystem) Filter() ecs.Filter {
	return s.filter
}

func (s *CollisionSystem) BeginFrame(*ecs.UpdateFrame) {
	s.marked.Clear()
}

func (s *CollisionSystem) EndFrame(*ecs.UpdateFrame) {}

func (s *CollisionSystem) ProcessEntity(frame *ecs.UpdateFrame, id ecs.EntityId) error {
	storage := frame.Storage
	if s.dying(storage, id) {
		return nil
	}

	pos, err := ecs.RequireComponent[components.Position](storage, id)
	if err != nil {
		return err
	}
	col, err := ecs.RequireComponent[components.Collider](storage, id)
	if err != nil {
		return err
	}
	rank := s.rank(storage, id, col)

	for other := range storage.Query(s.filter) {
		// each pair is judged once, by its lower slot
		if other.Index() <= id.Index() || s.dying(storage, other) {
			continue
		}

		otherPos := ecs.ReadComponent[components.Position](storage, other)
		otherCol := ecs.ReadComponent[components.Collider](storage, other)
		if !overlaps(pos, col, otherPos, otherCol) {
			continue
		}

		otherRank := s.rank(storage, other, otherCol)
		if otherRank <= rank {
			s.mark(frame, other)
		}
		if rank <= otherRank {
			s.mark(frame, id)
		}
	}
	return nil
}

// dying reports entities that were already marked before this pass.
// Losers of this pass keep colliding until the frame ends.
func (s *CollisionSystem) dying(storage *ecs.Storage, id ecs.EntityId) bool {
	return storage.HasComponent(id, s.types.Remove)
}

func (s *CollisionSystem) rank(storage *ecs.Storage, id ecs.EntityId, col *components.Collider) int {
	rank := col.Rank
	if shield := ecs.ReadComponent[components.ShieldComponent](storage, id); shield != nil && shield.IsActive() {
		rank += s.settings.ShieldBonus
	}
	return rank
}

func (s *CollisionSystem) mark(frame *ecs.UpdateFrame, id ecs.EntityId) {
	if s.marked.Has(id) {
		return
	}
	s.marked.Put(id, struct{}{})
	frame.Commands.AddComponent(id, components.RemoveComponent{Delay: s.settings.DeathDelay})
}

func overlaps(aPos *components.Position, a *components.Collider, bPos *components.Position, b *components.Collider) bool {
	dx := aPos.X - bPos.X
	dy := aPos.Y - bPos.Y
	r := a.Radius + b.Radius
	return dx*dx+dy*dy <= r*r
}
