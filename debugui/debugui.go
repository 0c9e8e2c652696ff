// Package debugui is the optional Dear ImGui overlay. Windows are
// ImguiItem entities; ImguiSystem renders them inside the frame opened by
// the ebiten backend and tells the input layer when ImGui wants the mouse
// or keyboard.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/input"
)

// ImguiItem holds a Dear ImGui render function called once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiSystem publishes ImGui's capture state and defers every item's
// render function to the end of the tick.
type ImguiSystem struct {
	Items   ecs.Query[struct{ *ImguiItem }]
	Capture ecs.Singleton[input.Capture]
}

// Execute must run between ImGui BeginFrame and EndFrame.
func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if capture := s.Capture.Get(); capture != nil {
		io := imgui.CurrentIO()
		capture.Mouse = io.WantCaptureMouse()
		capture.Keyboard = io.WantCaptureKeyboard()
	}

	for item := range s.Items.Values() {
		if item.ImguiItem.Render != nil {
			frame.Commands.Defer(item.ImguiItem.Render)
		}
	}
}

// Register adds the overlay components to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](r)
}

// Spawn adds the storage, scheduler and entity inspector windows to
// storage.
func Spawn(storage *ecs.Storage, frames *FrameHistory, schedulers ...NamedScheduler) {
	storage.Spawn(ImguiItem{Render: StorageWindow(storage, frames)})
	storage.Spawn(ImguiItem{Render: SchedulerWindow(schedulers...)})
	storage.Spawn(ImguiItem{Render: NewInspector(storage).Render})
}
