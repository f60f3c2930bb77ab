// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spacecourier/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem to the end of
// the frame and refreshes the ImguiInputState singleton.
type ImguiSystem struct {
	item       ecs.ComponentType
	InputState ecs.Singleton[ImguiInputState]
}

// NewImguiSystem registers the ImGui component types with the storage's
// registry and returns the system rendering them.
func NewImguiSystem(storage *ecs.Storage) *ImguiSystem {
	s := &ImguiSystem{
		item: ecs.RegisterComponent[ImguiItem](storage.Registry()),
	}
	ecs.NewSingleton[ImguiInputState](storage)
	s.InputState.Init(storage)
	return s
}

func (i *ImguiSystem) Name() string { return "imgui" }

func (i *ImguiSystem) Filter() ecs.Filter {
	return ecs.AllOf(i.item)
}

// BeginFrame captures the input state before any item renders.
func (i *ImguiSystem) BeginFrame(*ecs.UpdateFrame) {
	state := i.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
}

func (i *ImguiSystem) EndFrame(*ecs.UpdateFrame) {}

// ProcessEntity queues the item's render function for execution.
func (i *ImguiSystem) ProcessEntity(frame *ecs.UpdateFrame, id ecs.EntityId) error {
	item, err := ecs.RequireComponent[ImguiItem](frame.Storage, id)
	if err != nil {
		return err
	}
	if item.Render != nil {
		frame.Commands.Defer(item.Render)
	}
	return nil
}
