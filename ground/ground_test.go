package ground_test

import (
	"image/color"
	"testing"

	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/ground"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCoversWidth(t *testing.T) {
	src := rng.New(5)
	strip := ground.Generate(800, 550, &src)

	require.NotEmpty(t, strip.Tiles)
	x := 0
	for _, tile := range strip.Tiles {
		assert.True(t, tile.W >= 4 && tile.W <= 16)
		assert.True(t, tile.H >= 3 && tile.H <= 12)
		assert.Equal(t, x+tile.W/2, tile.CX)
		x += tile.W
	}
	assert.GreaterOrEqual(t, x, 800)
	assert.Less(t, x-strip.Tiles[len(strip.Tiles)-1].W, 800)
}

func TestWetAndDry(t *testing.T) {
	strip := ground.Strip{Tiles: []ground.Tile{{CX: 5, W: 10, H: 4}, {CX: 15, W: 10, H: 4}}}

	assert.True(t, strip.Wet(10), "shared edge wets the first tile")
	assert.Equal(t, 10.0, strip.Tiles[0].Wetness)
	assert.Zero(t, strip.Tiles[1].Wetness)
	assert.False(t, strip.Wet(25))

	for i := 0; i < 20; i++ {
		strip.Wet(2)
	}
	assert.Equal(t, 100.0, strip.Tiles[0].Wetness)

	strip.Dry()
	assert.InDelta(t, 99.8, strip.Tiles[0].Wetness, 1e-9)
	assert.Zero(t, strip.Tiles[1].Wetness)
}

func TestTileColor(t *testing.T) {
	assert.Equal(t, color.RGBA{80, 80, 80, 255}, ground.Tile{}.Color())
	assert.Equal(t, color.RGBA{73, 73, 95, 255}, ground.Tile{Wetness: 10}.Color())
	assert.Equal(t, color.RGBA{5, 5, 230, 255}, ground.Tile{Wetness: 100}.Color())
}

func TestCollideBouncesRain(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	particle.Register(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton(storage, ground.Strip{Line: 550, Width: 20, Tiles: []ground.Tile{{CX: 5, W: 10, H: 4}, {CX: 15, W: 10, H: 4}}})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&particle.MotionSystem{})
	scheduler.Register(&ground.CollideSystem{})

	rain := storage.Spawn(particle.Particle{X: 14, Y: 549, VX: 1, VY: 2, TTL: 300, Gravity: 0.1, Kind: particle.KindRain}.Components()...)
	fog := storage.Spawn(particle.Particle{X: 4, Y: 549, VY: 2, TTL: 300, Kind: particle.KindFog}.Components()...)

	scheduler.Once(1)

	pos := ecs.ReadComponent[particle.Position](storage, rain)
	vel := ecs.ReadComponent[particle.Velocity](storage, rain)
	life := ecs.ReadComponent[particle.Lifetime](storage, rain)
	assert.Equal(t, 550.0, pos.Y)
	assert.InDelta(t, -2.1*0.3, vel.Y, 1e-9)
	assert.InDelta(t, 0.8, vel.X, 1e-9)
	assert.Equal(t, 30, life.TTL)

	strip := ecs.NewSingleton[ground.Strip](storage).Get()
	assert.Equal(t, 10.0, strip.Tiles[1].Wetness)
	assert.Zero(t, strip.Tiles[0].Wetness)

	assert.Equal(t, 551.0, ecs.ReadComponent[particle.Position](storage, fog).Y, "no gravity, no landing")
}
