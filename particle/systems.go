package particle

import (
	"image/color"
	"reflect"

	"github.com/plus3/rechthoek/draw"
	"github.com/plus3/rechthoek/ecs"
)

// MotionSystem integrates one tick: position, then gravity, then spin,
// then lifetime.
type MotionSystem struct {
	Moving ecs.Query[struct {
		*Position
		*Velocity
		Spin    *Spin     `ecs:"optional"`
		Gravity *Gravity  `ecs:"optional"`
		Life    *Lifetime `ecs:"optional"`
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.Moving.Values() {
		p.Position.X += p.Velocity.X
		p.Position.Y += p.Velocity.Y
		if p.Gravity != nil {
			p.Velocity.Y += p.Gravity.G
		}
		if p.Spin != nil {
			p.Spin.Angle += p.Spin.Speed
		}
		if p.Life != nil {
			p.Life.TTL--
		}
	}
}

// BounceSystem reflects velocity at the bounds, then clamps position.
type BounceSystem struct {
	Bouncing ecs.Query[struct {
		*Position
		*Velocity
		*Bounce
	}]
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.Bouncing.Values() {
		if p.Position.X < 0 || p.Position.X > p.Bounce.W {
			p.Velocity.X = -p.Velocity.X
		}
		if p.Position.Y < 0 || p.Position.Y > p.Bounce.H {
			p.Velocity.Y = -p.Velocity.Y
		}
		p.Position.X = max(0, min(p.Bounce.W, p.Position.X))
		p.Position.Y = max(0, min(p.Bounce.H, p.Position.Y))
	}
}

// ReaperSystem deletes particles whose lifetime ran out and hands the
// slot back to the emitter that produced them.
type ReaperSystem struct {
	Mortal ecs.Query[struct {
		ecs.EntityId
		*Lifetime
		Origin *Origin `ecs:"optional"`
	}]
}

// Execute releases the budget slot at once; the particle itself goes at
// the flush.
func (s *ReaperSystem) Execute(frame *ecs.UpdateFrame) {
	for id, p := range s.Mortal.Iter() {
		if !p.Lifetime.Dead() {
			continue
		}
		frame.Commands.Delete(id)

		if p.Origin == nil {
			continue
		}
		if emitter, ok := frame.Storage.ResolveEntityRef(p.Origin.Emitter); ok {
			if budget := ecs.ReadComponent[Budget](frame.Storage, emitter); budget != nil {
				budget.Release()
			}
		}
	}
}

// RenderSystem draws every sized, tinted entity as a rectangle.
type RenderSystem struct {
	Drawable ecs.Query[struct {
		*Position
		*Size
		*Spin
		*Tint
		Life *Lifetime `ecs:"optional"`
	}]
	Target ecs.Singleton[draw.Target]
}

// Execute queues every rect into one batch and flushes it once.
func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	target := s.Target.Get()
	if target == nil {
		return
	}
	batch := target.Batch()
	for p := range s.Drawable.Values() {
		batch.Add(draw.Rect{
			X:        p.Position.X,
			Y:        p.Position.Y,
			W:        p.Size.W,
			H:        p.Size.H,
			Rotation: p.Spin.Angle,
			Color:    Shade(p.Tint, p.Life),
		})
	}
	batch.Flush()
}

// Shade applies the tint's fade mode for the given remaining life.
func Shade(tint *Tint, life *Lifetime) color.RGBA {
	c := tint.Color
	if life == nil || life.Max <= 0 {
		return c
	}
	switch tint.Fade {
	case FadeAlpha:
		c.A = Alpha(life)
	case FadeDarken:
		c = draw.FadeRGB(c, float64(life.TTL)/float64(life.Max))
	}
	return c
}

var lifetimeType = reflect.TypeFor[Lifetime]()

// Count returns the number of live particles.
func Count(storage *ecs.Storage) int {
	n := 0
	for _, a := range storage.Archetypes() {
		if a.HasComponent(lifetimeType) {
			n += a.Len()
		}
	}
	return n
}
