package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spacecourier/events"
)

type EventEntry struct {
	Seq   uint64
	Event events.Event
}

// EventLog keeps the most recent events dispatched on a bus.
type EventLog struct {
	entries []EventEntry
	next    int
	seq     uint64
	paused  bool
}

func NewEventLog(capacity int) *EventLog {
	return &EventLog{entries: make([]EventEntry, 0, capacity)}
}

// Attach subscribes the log to every event kind.
func (el *EventLog) Attach(bus *events.Bus) []events.Subscription {
	kinds := []events.Kind{
		events.KindPlayerDeath,
		events.KindHighscoreChanged,
		events.KindShieldActivated,
		events.KindShieldExpired,
		events.KindAssetsReady,
	}
	subs := make([]events.Subscription, len(kinds))
	for i, kind := range kinds {
		subs[i] = bus.Subscribe(kind, el.record)
	}
	return subs
}

func (el *EventLog) record(e events.Event) error {
	if el.paused {
		return nil
	}
	el.seq++
	entry := EventEntry{Seq: el.seq, Event: e}
	if len(el.entries) < cap(el.entries) {
		el.entries = append(el.entries, entry)
		return nil
	}
	el.entries[el.next] = entry
	el.next = (el.next + 1) % len(el.entries)
	return nil
}

// Entries returns the logged events, oldest first.
func (el *EventLog) Entries() []EventEntry {
	out := make([]EventEntry, 0, len(el.entries))
	out = append(out, el.entries[el.next:]...)
	return append(out, el.entries[:el.next]...)
}

func (el *EventLog) Render() {
	if !imgui.BeginV("Events", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	label := "Pause"
	if el.paused {
		label = "Resume"
	}
	if imgui.Button(label) {
		el.paused = !el.paused
	}
	imgui.SameLine()
	if imgui.Button("Clear") {
		el.entries = el.entries[:0]
		el.next = 0
	}
	imgui.Separator()

	for _, entry := range el.Entries() {
		imgui.Text(fmt.Sprintf("#%d %s %+v", entry.Seq, entry.Event.Kind(), entry.Event))
	}

	imgui.End()
}
