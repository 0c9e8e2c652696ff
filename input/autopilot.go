package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/ecs"
)

// Autopilot scripts input for headless runs: the cursor traces a
// Lissajous curve over the window, the button is clicked every
// ClickEvery ticks and held for HoldFor ticks, and Keys are pressed in
// turn every KeyEvery ticks.
type Autopilot struct {
	Width, Height float64
	ClickEvery    int
	HoldFor       int
	KeyEvery      int
	Keys          []ebiten.Key

	tick    int
	nextKey int
}

// AutopilotSystem drives State from the Autopilot singleton.
type AutopilotSystem struct {
	Pilot ecs.Singleton[Autopilot]
	State ecs.Singleton[State]
}

func (s *AutopilotSystem) Execute(frame *ecs.UpdateFrame) {
	pilot, state := s.Pilot.Get(), s.State.Get()
	if pilot == nil || state == nil {
		return
	}
	pilot.Step(state)
}

// Step advances the script one tick.
func (p *Autopilot) Step(state *State) {
	t := float64(p.tick)
	state.X = p.Width/2 + math.Sin(t*0.013)*p.Width*0.4
	state.Y = p.Height/2 + math.Sin(t*0.021)*p.Height*0.4

	state.Clicked, state.Held = false, false
	if p.ClickEvery > 0 {
		phase := p.tick % p.ClickEvery
		state.Clicked = phase == 0
		state.Held = phase < max(1, p.HoldFor)
	}

	state.Keys = state.Keys[:0]
	if p.KeyEvery > 0 && len(p.Keys) > 0 && p.tick > 0 && p.tick%p.KeyEvery == 0 {
		state.Keys = append(state.Keys, p.Keys[p.nextKey%len(p.Keys)])
		p.nextKey++
	}

	p.tick++
}
