// Package input snapshots mouse and keyboard state once per tick so
// systems read one consistent view, whether it came from ebiten or from a
// scripted autopilot.
package input

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/rechthoek/ecs"
)

// State is the per-tick input singleton.
type State struct {
	X, Y    float64
	Held    bool
	Clicked bool
	Keys    []ebiten.Key
}

// Pressed reports whether any of keys went down this tick.
func (s *State) Pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if slices.Contains(s.Keys, k) {
			return true
		}
	}
	return false
}

// Capture is set by an overlay that wants the mouse or keyboard for
// itself.
type Capture struct {
	Mouse    bool
	Keyboard bool
}

// PollSystem fills State from ebiten. Mouse and keyboard are left idle
// while captured.
type PollSystem struct {
	State   ecs.Singleton[State]
	Capture ecs.Singleton[Capture]
}

// Execute always updates the cursor position, even while captured.
func (s *PollSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	capture := s.Capture.Get()
	if capture == nil {
		capture = &Capture{}
	}

	cx, cy := ebiten.CursorPosition()
	state.X, state.Y = float64(cx), float64(cy)

	state.Held, state.Clicked = false, false
	if !capture.Mouse {
		state.Held = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		state.Clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	}

	state.Keys = state.Keys[:0]
	if !capture.Keyboard {
		state.Keys = inpututil.AppendJustPressedKeys(state.Keys)
	}
}
