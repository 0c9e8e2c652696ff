package emitter

import (
	"github.com/plus3/rechthoek/draw"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
)

// EmitSystem advances every emitter's timer and spawns at most one
// particle per emitter per tick.
type EmitSystem struct {
	Emitters ecs.Query[struct {
		ecs.EntityId
		*Emitter
		*particle.Position
		*particle.Budget
		Life *Lifespan `ecs:"optional"`
	}]
	Rand ecs.Singleton[rng.Source]
}

// Execute also deletes emitters whose lifespan has run out.
func (s *EmitSystem) Execute(frame *ecs.UpdateFrame) {
	src := s.Rand.Get()
	for id, e := range s.Emitters.Iter() {
		if e.Life != nil {
			e.Life.TTL--
			if e.Life.TTL <= 0 {
				frame.Commands.Delete(id)
				continue
			}
		}

		e.Emitter.Timer++
		if e.Emitter.Timer < e.Emitter.Rate {
			continue
		}
		e.Emitter.Timer = 0

		if e.Budget.Full() {
			continue
		}

		p := Generate(e.Emitter.Kind, e.Position.X, e.Position.Y, src)
		p.Fade = e.Emitter.Fade
		p.Origin = frame.Storage.CreateEntityRef(id)
		frame.Commands.Spawn(p.Components()...)
		e.Budget.Active++
	}
}

// MarkerSize is the side of the square drawn for a marked emitter.
const MarkerSize = 20

// MarkerSystem draws marked emitters, greying out as their lifespan
// runs down.
type MarkerSystem struct {
	Markers ecs.Query[struct {
		*Marker
		*particle.Position
		Life *Lifespan `ecs:"optional"`
	}]
	Target ecs.Singleton[draw.Target]
}

func (s *MarkerSystem) Execute(frame *ecs.UpdateFrame) {
	target := s.Target.Get()
	if target == nil {
		return
	}
	batch := target.Batch()
	for m := range s.Markers.Values() {
		level := 1.0
		if m.Life != nil {
			level = m.Life.Ratio()
		}
		grey := uint8(255 * level)
		batch.Add(draw.Rect{
			X:     m.Position.X,
			Y:     m.Position.Y,
			W:     MarkerSize,
			H:     MarkerSize,
			Color: draw.Opaque(grey, grey, grey),
		})
	}
	batch.Flush()
}
