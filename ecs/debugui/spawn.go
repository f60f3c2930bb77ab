package debugui

import (
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/events"
)

// Panels groups the inspection windows for one world.
type Panels struct {
	Entities    *EntityBrowser
	Inspector   *ComponentInspector
	Systems     *SystemViewer
	Performance *PerformanceStats
	Queries     *QueryDebugger
	Events      *EventLog
}

// SpawnDebugUI creates every panel and spawns one ImguiItem per panel into
// storage. The returned ImguiSystem must be registered with the scheduler.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler, bus *events.Bus) (*Panels, *ImguiSystem) {
	system := NewImguiSystem(storage)

	p := &Panels{
		Entities:    NewEntityBrowser(100),
		Inspector:   NewComponentInspector(),
		Systems:     NewSystemViewer(),
		Performance: NewPerformanceStats(120),
		Queries:     NewQueryDebugger(),
		Events:      NewEventLog(64),
	}
	p.Events.Attach(bus)

	storage.Spawn(ImguiItem{Render: func() { p.Entities.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { p.Inspector.Render(storage, p.Entities.Selected()) }})
	storage.Spawn(ImguiItem{Render: func() { p.Systems.Render(scheduler) }})
	storage.Spawn(ImguiItem{Render: func() { p.Performance.Render(storage, scheduler) }})
	storage.Spawn(ImguiItem{Render: func() { p.Queries.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { p.Events.Render() }})

	return p, system
}
