package track_test

import (
	"math"
	"testing"

	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/track"
	"github.com/stretchr/testify/assert"
)

func TestPathsAtZero(t *testing.T) {
	cases := []struct {
		path           track.Path
		x, y, rotation float64
	}{
		{track.Horizontal, 100, 100, 0},
		{track.Circle, 550, 300, 0},
		{track.Vertical, 600, 100, 0},
		{track.Diagonal, 50, 400, 0},
		{track.Spin, 400, 500, 0},
	}
	for _, c := range cases {
		x, y, r := track.At(c.path, 0)
		assert.InDelta(t, c.x, x, 1e-9)
		assert.InDelta(t, c.y, y, 1e-9)
		assert.InDelta(t, c.rotation, r, 1e-9)
	}
}

func TestDiagonalWraps(t *testing.T) {
	x, _, r := track.At(track.Diagonal, 1500)
	assert.InDelta(t, 50+math.Mod(750, 700), x, 1e-9)
	assert.Equal(t, 4500.0, r)
}

func TestSystemUsesFrameThenAdvances(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	particle.Register(registry)
	track.Register(registry)
	storage := ecs.NewStorage(registry)
	clock := ecs.NewSingleton[track.Clock](storage)

	id := storage.Spawn(track.Track{Path: track.Circle}, particle.Position{}, particle.Spin{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&track.System{})

	scheduler.Once(1)
	assert.Equal(t, 1, clock.Get().Frame)
	pos := ecs.ReadComponent[particle.Position](storage, id)
	assert.InDelta(t, 550, pos.X, 1e-9)

	scheduler.Once(1)
	spin := ecs.ReadComponent[particle.Spin](storage, id)
	assert.InDelta(t, 2, spin.Angle, 1e-9)
	assert.InDelta(t, 400+math.Cos(0.03)*150, pos.X, 1e-9)
}
