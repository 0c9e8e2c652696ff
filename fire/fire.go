// Package fire runs the fire-fighting round game: fires on the ground
// line grow, spread and emit flames until rain puts them out, and a new,
// bigger round starts once every fire is out.
package fire

import (
	"image/color"

	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
)

const (
	growEvery      = 300
	growStep       = 5
	maxBudget      = 50
	spreadEvery    = 300
	spreadAttempts = 10
	spreadReach    = 100
	spreadGap      = 80
	spreadCooldown = 300
	edgeMargin     = 50
	roundDelay     = 180
	maxRoundFires  = 10

	douseX = 20
	douseY = 30
)

// Fire is a burning spot on the ground. Its flame count lives in the
// entity's particle.Budget.
type Fire struct {
	X, Y        float64
	Rate        int
	Timer       int
	Age         int
	Growth      int
	SpreadTimer int
}

// Burning marks a fire that is still alight. Removing it puts the fire
// out; the entity stays until the round ends.
type Burning struct{}

// Field is the round state singleton.
type Field struct {
	SpawnCooldown int
	Round         int
	RoundCooldown int
	Width         int
	Line          float64
	// Starting is set for the one tick in which a new round begins.
	Starting      bool
	// Doused counts fires put out this tick whose Burning tag is still
	// waiting for the flush.
	Doused        int
}

// Register adds the fire components to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Fire](r)
	ecs.RegisterComponent[Burning](r)
}

// New returns the components of a burning fire at x on the field.
func New(x int, line float64, budget, rate int) []any {
	return []any{
		Fire{X: float64(x), Y: line - 10, Rate: rate},
		particle.Budget{Max: budget},
		Burning{},
	}
}

// Countdown returns the whole seconds left before the next round, or 0
// when the round is about to start.
func (f *Field) Countdown() int {
	if f.RoundCooldown <= 1 {
		return 0
	}
	return (f.RoundCooldown-1)/60 + 1
}

// Seed spawns count fresh round fires at random spots.
func Seed(spawn func(...any), f *Field, count int, src *rng.Source) {
	for i := 0; i < count; i++ {
		x := src.Between(edgeMargin, f.Width-edgeMargin)
		spawn(New(x, f.Line, src.Between(15, 25), src.Between(2, 4))...)
	}
}

var flameBase = color.RGBA{255, 0, 0, 255}

// Flame builds one flame particle rising from f.
func Flame(f *Fire, origin *ecs.EntityRef, src *rng.Source) particle.Particle {
	c := flameBase
	c.G = uint8(src.Between(100, 200))
	c.B = uint8(src.Between(0, 50))
	return particle.Particle{
		X:      f.X + src.Uniform(-5, 5),
		Y:      f.Y,
		VX:     src.Uniform(-0.5, 0.5),
		VY:     src.Uniform(-3, -1),
		W:      float64(src.Between(4, 10)),
		H:      float64(src.Between(6, 15)),
		Angle:  src.Uniform(0, 360),
		Spin:   src.Uniform(-3, 3),
		Color:  c,
		Fade:   particle.FadeAlpha,
		TTL:    src.Between(60, 120),
		Kind:   particle.KindFire,
		Origin: origin,
	}
}
