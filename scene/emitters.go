package scene

import (
	"github.com/plus3/rechthoek/emitter"
	"github.com/plus3/rechthoek/particle"
)

func buildEmitters(s *Stage) {
	for _, e := range s.Config.Emitters {
		s.Storage.Spawn(emitter.Config{
			Kind: e.Kind,
			X:    e.X,
			Y:    e.Y,
			Max:  e.Max,
			Rate: e.Rate,
			Fade: particle.FadeDarken,
		}.Components()...)
	}

	s.Update.Register(&emitter.EmitSystem{})
	s.Update.Register(&particle.ReaperSystem{})
	s.Update.Register(&particle.MotionSystem{})

	s.Render.Register(&particle.RenderSystem{})
	s.Render.Register(&EmittersHUD{})
}
