package scene

import (
	"github.com/plus3/rechthoek/cloud"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/fire"
	"github.com/plus3/rechthoek/ground"
	"github.com/plus3/rechthoek/particle"
)

func buildCursorCloud(s *Stage) {
	w, h := s.Width(), s.Height()
	line := float64(h - 50)
	bounds := s.Config.Cloud

	c := ecs.NewSingleton(s.Storage, cloud.Cloud{
		Min:  bounds.Min,
		Max:  bounds.Max,
		Mid:  float64(h) / 2,
		Line: line,
	}).Get()
	cloud.Spawn(s.Storage, c, bounds.Initial, float64(w)/2, float64(h)/2, s.rand)

	strip := ground.Generate(w, line, s.rand)
	strip.Base = true
	ecs.NewSingleton(s.Storage, strip)

	field := ecs.NewSingleton(s.Storage, fire.Field{Round: 1, Width: w, Line: line}).Get()
	fire.Seed(func(components ...any) { s.Storage.Spawn(components...) }, field, s.rand.Between(3, 6), s.rand)

	s.Update.Register(&cloud.ResizeSystem{})
	s.Update.Register(&cloud.FollowSystem{})
	s.Update.Register(&cloud.PrecipitateSystem{})
	s.Update.Register(&fire.BurnSystem{})
	s.Update.Register(&fire.DouseSystem{})
	s.Update.Register(&fire.RoundSystem{})
	s.Update.Register(&ground.DrySystem{})
	s.Update.Register(&particle.ReaperSystem{})
	s.Update.Register(&particle.MotionSystem{})
	s.Update.Register(&ground.CollideSystem{})

	s.Render.Register(&ground.RenderSystem{})
	s.Render.Register(&particle.RenderSystem{})
	s.Render.Register(&cloud.RenderSystem{})
	s.Render.Register(&CursorHUD{})
}
