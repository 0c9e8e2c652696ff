// Package particle holds the components and systems shared by every
// short-lived rectangle: motion, bouncing, fading, reaping and drawing.
package particle

import (
	"image/color"

	"github.com/plus3/rechthoek/ecs"
)

// Position is the centre of the rect in screen pixels.
type Position struct {
	X, Y float64
}

// Velocity is the change in Position per tick.
type Velocity struct {
	X, Y float64
}

// Spin is the rotation in degrees and its change per tick.
type Spin struct {
	Angle float64
	Speed float64
}

// Size is the full width and height.
type Size struct {
	W, H float64
}

// Fade selects how a particle's colour follows its remaining life.
type Fade uint8

const (
	FadeNone Fade = iota
	FadeAlpha
	FadeDarken
)

// Tint is the spawn colour. Fading is always computed from it, never
// from the previous frame's colour.
type Tint struct {
	Color color.RGBA
	Fade  Fade
}

// Lifetime counts down one per tick. Max is the spawn value.
type Lifetime struct {
	TTL int
	Max int
}

// Gravity is added to the vertical velocity every tick.
type Gravity struct {
	G float64
}

// Bounce keeps an entity inside [0,W]x[0,H] by reflecting its velocity.
type Bounce struct {
	W, H float64
}

// Origin links a particle to the emitter whose Budget it counts against.
type Origin struct {
	Emitter *ecs.EntityRef
}

// Budget is an emitter's count of live particles and its cap.
type Budget struct {
	Active int
	Max    int
}

// Full reports whether the cap is reached.
func (b *Budget) Full() bool {
	return b.Active >= b.Max
}

// Release returns one slot.
func (b *Budget) Release() {
	if b.Active > 0 {
		b.Active--
	}
}

// Register adds every particle component to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Spin](r)
	ecs.RegisterComponent[Size](r)
	ecs.RegisterComponent[Tint](r)
	ecs.RegisterComponent[Lifetime](r)
	ecs.RegisterComponent[Gravity](r)
	ecs.RegisterComponent[Kind](r)
	ecs.RegisterComponent[Bounce](r)
	ecs.RegisterComponent[Origin](r)
	ecs.RegisterComponent[Budget](r)
}
