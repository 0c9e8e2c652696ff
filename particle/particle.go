package particle

import (
	"image/color"

	"github.com/plus3/rechthoek/ecs"
)

// Particle is the flat description of a particle before it is spawned.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	W, H    float64
	Angle   float64
	Spin    float64
	Color   color.RGBA
	Fade    Fade
	TTL     int
	Gravity float64
	Kind    Kind
	Origin  *ecs.EntityRef
}

// Components returns the component set to spawn. Gravity and Origin are
// only attached when set.
func (p Particle) Components() []any {
	c := p.Color
	if c.A == 0 {
		c.A = 0xff
	}
	components := []any{
		Position{X: p.X, Y: p.Y},
		Velocity{X: p.VX, Y: p.VY},
		Spin{Angle: p.Angle, Speed: p.Spin},
		Size{W: p.W, H: p.H},
		Tint{Color: c, Fade: p.Fade},
		Lifetime{TTL: p.TTL, Max: p.TTL},
		p.Kind,
	}
	if p.Gravity != 0 {
		components = append(components, Gravity{G: p.Gravity})
	}
	if p.Origin != nil {
		components = append(components, Origin{Emitter: p.Origin})
	}
	return components
}

// Alpha maps remaining life to 0..255.
func Alpha(life *Lifetime) uint8 {
	if life == nil || life.Max <= 0 {
		return 0xff
	}
	a := int(255 * float64(life.TTL) / float64(life.Max))
	if a < 0 {
		return 0
	}
	if a > 0xff {
		return 0xff
	}
	return uint8(a)
}

// Dead reports whether the lifetime has run out.
func (l *Lifetime) Dead() bool {
	return l.TTL <= 0
}
