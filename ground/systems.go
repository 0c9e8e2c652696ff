package ground

import (
	"image/color"

	"github.com/plus3/rechthoek/draw"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
)

const (
	restitution = 0.3
	friction    = 0.8
	landedTTL   = 30
)

// CollideSystem bounces falling particles off the ground line and wets
// the tile they hit. Only particles with positive gravity land.
type CollideSystem struct {
	Falling ecs.Query[struct {
		*particle.Position
		*particle.Velocity
		*particle.Gravity
		*particle.Lifetime
	}]
	Strip ecs.Singleton[Strip]
}

// Execute shortens the life of every landed particle.
func (s *CollideSystem) Execute(frame *ecs.UpdateFrame) {
	strip := s.Strip.Get()
	if strip == nil {
		return
	}
	for p := range s.Falling.Values() {
		if p.Gravity.G <= 0 || p.Position.Y < strip.Line {
			continue
		}
		p.Position.Y = strip.Line
		p.Velocity.Y = -abs(p.Velocity.Y) * restitution
		p.Velocity.X *= friction
		p.Lifetime.TTL = min(p.Lifetime.TTL, landedTTL)
		strip.Wet(p.Position.X)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// DrySystem evaporates the strip once per tick.
type DrySystem struct {
	Strip ecs.Singleton[Strip]
}

func (s *DrySystem) Execute(frame *ecs.UpdateFrame) {
	if strip := s.Strip.Get(); strip != nil {
		strip.Dry()
	}
}

var baseColor = color.RGBA{60, 40, 20, 255}

// RenderSystem draws the optional earth layer under the line, then every
// tile sitting on the line.
type RenderSystem struct {
	Strip  ecs.Singleton[Strip]
	Target ecs.Singleton[draw.Target]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	strip, target := s.Strip.Get(), s.Target.Get()
	if strip == nil || target == nil || target.Screen == nil {
		return
	}
	batch := target.Batch()

	if strip.Base {
		depth := float64(target.Screen.Bounds().Dy()) - strip.Line
		batch.Add(draw.Rect{
			X:     float64(strip.Width) / 2,
			Y:     strip.Line + depth/2,
			W:     float64(strip.Width),
			H:     depth,
			Color: baseColor,
		})
	}

	for _, t := range strip.Tiles {
		batch.Add(draw.Rect{
			X:     float64(t.CX),
			Y:     strip.Line - float64(t.H/2),
			W:     float64(t.W),
			H:     float64(t.H),
			Color: t.Color(),
		})
	}
	batch.Flush()
}
