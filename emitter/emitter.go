// Package emitter spawns particles from fixed points at a steady rate,
// limited by each emitter's particle budget.
package emitter

import (
	"image/color"
	"math"

	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
)

// Emitter produces one particle of Kind every Rate ticks.
type Emitter struct {
	Kind  particle.Kind
	Rate  int
	Timer int
	Fade  particle.Fade
}

// Lifespan makes an emitter finite. It counts down before each emission
// and the emitter is removed when it runs out.
type Lifespan struct {
	TTL int
	Max int
}

// Ratio is the remaining fraction of the lifespan.
func (l *Lifespan) Ratio() float64 {
	if l.Max <= 0 {
		return 0
	}
	return max(0, float64(l.TTL)/float64(l.Max))
}

// Marker draws the emitter itself as a small fading square.
type Marker struct{}

// Kinds lists the kinds an emitter can be placed with, in cycling order.
var Kinds = []particle.Kind{
	particle.KindFountain,
	particle.KindExplosion,
	particle.KindSmoke,
	particle.KindRain,
	particle.KindCloud,
}

// Streamed lists the kinds a fixed emitter can stream. Cloud particles
// drip and only come in bursts from the cloud package.
var Streamed = []particle.Kind{
	particle.KindFountain,
	particle.KindExplosion,
	particle.KindSmoke,
	particle.KindRain,
}

// Register adds the emitter components to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Emitter](r)
	ecs.RegisterComponent[Lifespan](r)
	ecs.RegisterComponent[Marker](r)
}

// Config describes an emitter to place.
type Config struct {
	Kind     particle.Kind
	X, Y     float64
	Max      int
	Rate     int
	Fade     particle.Fade
	Lifespan int
	Marker   bool
}

// Components returns the component set for c. A zero Lifespan makes the
// emitter permanent.
func (c Config) Components() []any {
	components := []any{
		particle.Position{X: c.X, Y: c.Y},
		particle.Budget{Max: c.Max},
		Emitter{Kind: c.Kind, Rate: c.Rate, Fade: c.Fade},
	}
	if c.Lifespan > 0 {
		components = append(components, Lifespan{TTL: c.Lifespan, Max: c.Lifespan})
	}
	if c.Marker {
		components = append(components, Marker{})
	}
	return components
}

// Generate builds one particle of kind at (x, y).
func Generate(kind particle.Kind, x, y float64, src *rng.Source) particle.Particle {
	p := particle.Particle{
		X:     x,
		Y:     y,
		Angle: src.Uniform(0, 360),
		Spin:  src.Uniform(-3, 3),
		Kind:  kind,
	}

	var size int
	switch kind {
	case particle.KindFountain:
		p.VX = src.Uniform(-1, 1)
		p.VY = src.Uniform(-3, -1)
		p.Color = color.RGBA{uint8(src.Between(100, 255)), uint8(src.Between(100, 255)), 255, 255}
		p.TTL = src.Between(120, 180)
		size = src.Between(6, 12)
	case particle.KindExplosion:
		angle := src.Uniform(0, 2*math.Pi)
		speed := src.Uniform(2, 5)
		p.VX = math.Cos(angle) * speed
		p.VY = math.Sin(angle) * speed
		p.Color = color.RGBA{255, uint8(src.Between(100, 255)), uint8(src.Between(0, 100)), 255}
		p.TTL = src.Between(60, 120)
		size = src.Between(8, 16)
	case particle.KindSmoke:
		p.VX = src.Uniform(-0.5, 0.5)
		p.VY = src.Uniform(-1.5, -0.5)
		p.Color = color.RGBA{uint8(src.Between(150, 200)), uint8(src.Between(150, 200)), uint8(src.Between(150, 200)), 255}
		p.TTL = src.Between(180, 300)
		size = src.Between(10, 20)
	case particle.KindRain:
		p.VX = src.Uniform(-0.5, 0.5)
		p.VY = src.Uniform(-3, -0.5)
		p.Color = color.RGBA{100, 150, 255, 255}
		p.TTL = src.Between(200, 400)
		size = src.Between(3, 8)
		p.Gravity = src.Uniform(0.05, 0.15)
	case particle.KindCloud:
		p.VX = src.Uniform(-0.3, 0.3)
		p.VY = src.Uniform(-0.2, 0.2)
		p.Color = color.RGBA{220, 220, 230, 255}
		p.TTL = src.Between(300, 600)
		size = src.Between(15, 30)
	default:
		p.Color = color.RGBA{255, 255, 255, 255}
		p.TTL = 60
		size = 8
	}

	p.W, p.H = float64(size), float64(size)
	return p
}
