package input_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/input"
	"github.com/stretchr/testify/assert"
)

func TestPressed(t *testing.T) {
	s := &input.State{Keys: []ebiten.Key{ebiten.KeySpace}}
	assert.True(t, s.Pressed(ebiten.KeyEqual, ebiten.KeySpace))
	assert.False(t, s.Pressed(ebiten.KeyMinus))
	assert.False(t, s.Pressed())
}

func TestAutopilotScript(t *testing.T) {
	pilot := &input.Autopilot{
		Width: 800, Height: 600,
		ClickEvery: 10, HoldFor: 3,
		KeyEvery: 4, Keys: []ebiten.Key{ebiten.KeyEqual, ebiten.KeyMinus},
	}
	state := &input.State{}

	var clicks, held int
	var keys []ebiten.Key
	for i := 0; i < 20; i++ {
		pilot.Step(state)
		if state.Clicked {
			clicks++
		}
		if state.Held {
			held++
		}
		keys = append(keys, state.Keys...)

		assert.True(t, state.X >= 80 && state.X <= 720)
		assert.True(t, state.Y >= 60 && state.Y <= 540)
	}

	assert.Equal(t, 2, clicks)
	assert.Equal(t, 6, held)
	assert.Equal(t, []ebiten.Key{ebiten.KeyEqual, ebiten.KeyMinus, ebiten.KeyEqual, ebiten.KeyMinus}, keys)
}

func TestAutopilotSystem(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	ecs.NewSingleton(storage, input.Autopilot{Width: 800, Height: 600, ClickEvery: 2})
	state := ecs.NewSingleton[input.State](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&input.AutopilotSystem{})

	scheduler.Once(1)
	assert.True(t, state.Get().Clicked)
	assert.Equal(t, 400.0, state.Get().X)
	assert.Equal(t, 300.0, state.Get().Y)

	scheduler.Once(1)
	assert.False(t, state.Get().Clicked)
}
