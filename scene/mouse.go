package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/cloud"
	"github.com/plus3/rechthoek/cue"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/emitter"
	"github.com/plus3/rechthoek/ground"
	"github.com/plus3/rechthoek/input"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
)

// Palette is the emitter kind the next click places.
type Palette struct {
	Index int
}

// Kind returns the selected kind.
func (p *Palette) Kind() particle.Kind {
	return emitter.Kinds[p.Index%len(emitter.Kinds)]
}

// PlaceSystem turns clicks into emitters, or into a burst of dripping
// cloud when the palette is on cloud. Space moves the palette on.
type PlaceSystem struct {
	Input   ecs.Singleton[input.State]
	Palette ecs.Singleton[Palette]
	Rand    ecs.Singleton[rng.Source]
	Cues    ecs.Singleton[cue.Queue]
}

func (s *PlaceSystem) Execute(frame *ecs.UpdateFrame) {
	in, palette, src := s.Input.Get(), s.Palette.Get(), s.Rand.Get()
	if in == nil || palette == nil {
		return
	}

	if in.Clicked {
		if kind := palette.Kind(); kind == particle.KindCloud {
			for _, components := range cloud.Burst(in.X, in.Y, src.Between(8, 15), src) {
				frame.Commands.Spawn(components...)
			}
			s.Cues.Get().Push(cue.CloudBurst)
		} else {
			frame.Commands.Spawn(emitter.Config{
				Kind:     kind,
				X:        in.X,
				Y:        in.Y,
				Max:      src.Between(20, 40),
				Rate:     src.Between(3, 6),
				Fade:     particle.FadeAlpha,
				Lifespan: src.Between(300, 600),
				Marker:   true,
			}.Components()...)
			s.Cues.Get().Push(cue.EmitterPlaced)
		}
	}

	if in.Pressed(ebiten.KeySpace) {
		palette.Index = (palette.Index + 1) % len(emitter.Kinds)
	}
}

func buildMouse(s *Stage) {
	line := float64(s.Height() - 50)
	ecs.NewSingleton(s.Storage, ground.Generate(s.Width(), line, s.rand))
	ecs.NewSingleton[Palette](s.Storage)

	s.Update.Register(&PlaceSystem{})
	s.Update.Register(&emitter.EmitSystem{})
	s.Update.Register(&particle.ReaperSystem{})
	s.Update.Register(&ground.DrySystem{})
	s.Update.Register(&particle.MotionSystem{})
	s.Update.Register(&cloud.DripSystem{})
	s.Update.Register(&ground.CollideSystem{})

	s.Render.Register(&ground.RenderSystem{})
	s.Render.Register(&particle.RenderSystem{})
	s.Render.Register(&emitter.MarkerSystem{})
	s.Render.Register(&MouseHUD{})
}
