package systems

import (
	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/events"
)

type ShieldSettings struct {
	Cooldown   float64
	ActiveTime float64
	// AutoRearm re-activates the shield as soon as the cooldown has elapsed.
	AutoRearm bool
}

// ShieldSystem advances shield timers. The active window counts down
// first; the frame it closes dispatches ShieldExpiredEvent, and the
// cooldown counts down from the next frame on.
type ShieldSystem struct {
	types    components.Types
	bus      *events.Bus
	settings ShieldSettings
}

func NewShieldSystem(types components.Types, bus *events.Bus, settings ShieldSettings) *ShieldSystem {
	return &ShieldSystem{
		types:    types,
		bus:      bus,
		settings: settings,
	}
}

func (s *ShieldSystem) Name() string { return "shield" }

func (s *ShieldSystem) Filter() ecs.Filter {
	return ecs.AllOf(s.types.Shield)
}

func (s *ShieldSystem) ProcessEntity(frame *ecs.UpdateFrame, id ecs.EntityId) error {
	shield, err := ecs.RequireComponent[components.ShieldComponent](frame.Storage, id)
	if err != nil {
		return err
	}

	if shield.IsActive() {
		shield.ActiveTime -= frame.DeltaTime
		if !shield.IsActive() {
			s.bus.Dispatch(events.ShieldExpiredEvent{Entity: id})
		}
		return nil
	}

	if shield.Cooldown > 0 {
		shield.Cooldown -= frame.DeltaTime
	}
	if shield.Cooldown <= 0 && s.settings.AutoRearm {
		s.arm(shield, id)
	}
	return nil
}

// Activate re-arms the entity's shield if it is ready. It reports whether
// the shield was activated.
func (s *ShieldSystem) Activate(storage *ecs.Storage, id ecs.EntityId) bool {
	shield := ecs.ReadComponent[components.ShieldComponent](storage, id)
	if shield == nil || !shield.Ready() {
		return false
	}
	s.arm(shield, id)
	return true
}

// NewShield returns a freshly armed shield using the configured timings.
func (s *ShieldSystem) NewShield() components.ShieldComponent {
	return components.ShieldComponent{
		Cooldown:   s.settings.Cooldown,
		ActiveTime: s.settings.ActiveTime,
	}
}

func (s *ShieldSystem) arm(shield *components.ShieldComponent, id ecs.EntityId) {
	shield.ResetTo(s.settings.Cooldown, s.settings.ActiveTime)
	s.bus.Dispatch(events.ShieldActivatedEvent{Entity: id})
}
