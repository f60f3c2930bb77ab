package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spacecourier/ecs"
)

// QueryDebugger evaluates an ad-hoc filter built from checked component types.
type QueryDebugger struct {
	selected ecs.Mask
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{}
}

func (qd *QueryDebugger) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = ecs.Mask{}
	}

	registry := storage.Registry()
	for i := 0; i < registry.Len(); i++ {
		ct := ecs.ComponentType(i)
		checked := qd.selected.Has(ct)
		if imgui.Checkbox(registry.Name(ct), &checked) {
			qd.Toggle(ct, checked)
		}
	}

	imgui.Separator()

	if qd.selected.IsZero() {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matches := qd.Matches(storage)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		for _, id := range matches {
			imgui.BulletText(fmt.Sprintf("slot %d gen %d", id.Index(), id.Generation()))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebugger) Toggle(ct ecs.ComponentType, on bool) {
	if on {
		qd.selected.Set(ct)
		return
	}
	qd.selected.Unset(ct)
}

// Matches runs the current filter against storage.
func (qd *QueryDebugger) Matches(storage *ecs.Storage) []ecs.EntityId {
	var ids []ecs.EntityId
	for id := range storage.Query(ecs.AllOf(qd.selected.Types()...)) {
		ids = append(ids, id)
	}
	return ids
}
