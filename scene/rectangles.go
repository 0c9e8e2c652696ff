package scene

import (
	"image/color"

	"github.com/plus3/rechthoek/draw"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/track"
)

// shape returns the components that make r a drawable entity.
func shape(r draw.Rect) []any {
	return []any{
		particle.Position{X: r.X, Y: r.Y},
		particle.Size{W: r.W, H: r.H},
		particle.Spin{Angle: r.Rotation},
		particle.Tint{Color: r.Color},
	}
}

// gallery is the still life of the rectangles scene.
func gallery() []draw.Rect {
	red := draw.DefaultRect()
	red.X, red.Y, red.Color = 200, 150, color.RGBA{255, 0, 0, 255}

	blue := draw.DefaultRect()
	blue.X, blue.Y, blue.Rotation, blue.Color = 450, 100, 30, color.RGBA{0, 0, 255, 255}

	return []draw.Rect{
		draw.DefaultRect(),
		red,
		{X: 300, Y: 200, W: 120, H: 60, Rotation: 45, Color: color.RGBA{0, 255, 0, 255}},
		blue,
		{X: 600, Y: 300, W: 100, H: 20, Rotation: 90, Color: color.RGBA{255, 255, 0, 255}},
		{X: 150, Y: 400, W: 60, H: 100, Rotation: 15, Color: color.RGBA{255, 0, 255, 255}},
	}
}

func buildRectangles(s *Stage) {
	for _, r := range gallery() {
		s.Storage.Spawn(shape(r)...)
	}
	s.Render.Register(&particle.RenderSystem{})
}

type tracked struct {
	path track.Path
	w, h float64
	c    color.RGBA
}

var movers = []tracked{
	{track.Horizontal, 80, 40, color.RGBA{255, 0, 0, 255}},
	{track.Circle, 80, 40, color.RGBA{0, 255, 0, 255}},
	{track.Vertical, 60, 100, color.RGBA{0, 0, 255, 255}},
	{track.Diagonal, 40, 80, color.RGBA{255, 255, 0, 255}},
	{track.Spin, 100, 30, color.RGBA{255, 0, 255, 255}},
}

func buildMoving(s *Stage) {
	ecs.NewSingleton[track.Clock](s.Storage)
	for _, m := range movers {
		x, y, rot := track.At(m.path, 0)
		components := shape(draw.Rect{X: x, Y: y, W: m.w, H: m.h, Rotation: rot, Color: m.c})
		s.Storage.Spawn(append(components, track.Track{Path: m.path})...)
	}
	s.Update.Register(&track.System{})
	s.Render.Register(&particle.RenderSystem{})
}

// bouncer is one rectangle of the bouncing scene. Values are drawn in
// a fixed order so a seed always yields the same field.
func bouncer(s *Stage) []any {
	src := s.rand
	w, h := float64(s.Width()), float64(s.Height())

	x, y := src.Uniform(0, w), src.Uniform(0, h)
	vx, vy := src.Uniform(-2, 2), src.Uniform(-2, 2)
	sw, sh := src.Between(8, 20), src.Between(8, 20)
	angle, speed := src.Uniform(0, 360), src.Uniform(-5, 5)
	c := color.RGBA{
		uint8(src.Between(100, 255)),
		uint8(src.Between(100, 255)),
		uint8(src.Between(100, 255)),
		255,
	}

	return []any{
		particle.Position{X: x, Y: y},
		particle.Velocity{X: vx, Y: vy},
		particle.Size{W: float64(sw), H: float64(sh)},
		particle.Spin{Angle: angle, Speed: speed},
		particle.Tint{Color: c},
		particle.Bounce{W: w, H: h},
	}
}

func buildBouncing(s *Stage) {
	for i := 0; i < s.Config.Bouncing.Count; i++ {
		s.Storage.Spawn(bouncer(s)...)
	}
	s.Update.Register(&particle.MotionSystem{})
	s.Update.Register(&particle.BounceSystem{})
	s.Render.Register(&particle.RenderSystem{})
}
