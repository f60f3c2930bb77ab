package components

const (
	ShieldCooldown   = 5.0
	ShieldActiveTime = 1.0
)

// ShieldComponent gives its entity a higher rank in collision handling
// while active. It runs a two-phase timer: ActiveTime counts down first,
// then Cooldown.
type ShieldComponent struct {
	Cooldown   float64
	ActiveTime float64
}

// NewShieldComponent returns an active shield with the default timings.
func NewShieldComponent() ShieldComponent {
	return ShieldComponent{
		Cooldown:   ShieldCooldown,
		ActiveTime: ShieldActiveTime,
	}
}

// Reset restores the default timings.
func (s *ShieldComponent) Reset() {
	s.ResetTo(ShieldCooldown, ShieldActiveTime)
}

// ResetTo re-arms the shield with explicit timings.
func (s *ShieldComponent) ResetTo(cooldown, activeTime float64) {
	s.Cooldown = cooldown
	s.ActiveTime = activeTime
}

func (s *ShieldComponent) IsActive() bool {
	return s.ActiveTime > 0
}

// Ready reports whether the shield is inactive and its cooldown has elapsed.
func (s *ShieldComponent) Ready() bool {
	return !s.IsActive() && s.Cooldown <= 0
}

// Activate re-arms a ready shield with the default timings.
// It returns false while the shield is active or cooling down.
func (s *ShieldComponent) Activate() bool {
	if !s.Ready() {
		return false
	}
	s.Reset()
	return true
}
