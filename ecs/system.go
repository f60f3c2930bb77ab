package ecs

// System represents a behavior that operates on entities with specific components.
// The Scheduler queries storage with the system's Filter once per frame and calls
// ProcessEntity for every matching entity. User-defined systems can hold custom
// state fields that persist between frames.
type System interface {
	Filter() Filter
	ProcessEntity(frame *UpdateFrame, entity EntityId) error
}

// FrameSystem is implemented by systems that need hooks around their pass.
type FrameSystem interface {
	BeginFrame(frame *UpdateFrame)
	EndFrame(frame *UpdateFrame)
}

// NamedSystem overrides the name used in stats and fault reports.
type NamedSystem interface {
	Name() string
}
