// Package cloud implements the cursor-following cloud and the dripping
// cloud particles. Clouds shed rain over the upper half of the screen and
// fog over the lower half.
package cloud

import (
	"image/color"

	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
)

const (
	MinSize = 5
	MaxSize = 40
)

var (
	PuffColor = color.RGBA{220, 220, 230, 255}
	RainColor = color.RGBA{100, 150, 255, 255}
	FogColor  = color.RGBA{200, 200, 210, 255}
)

// Puff is one rectangle of the cursor cloud. Its screen position lives in
// particle.Position and is the cursor plus the offset.
type Puff struct {
	OffsetX, OffsetY float64
	LocalVX, LocalVY float64
	W, H             float64
	Angle            float64
	Spin             float64
}

// Cloud is the singleton that owns the puff order and the rain timer.
// Puffs are kept oldest first so shrinking removes the newest.
type Cloud struct {
	Puffs    []*ecs.EntityRef
	Timer    int
	Min, Max int
	// Mid is the height below which puffs shed fog instead of rain.
	Mid float64
	// Line is where rain ends up; it sets the rain lifetime.
	Line float64
}

// Size returns the number of puffs.
func (c *Cloud) Size() int {
	return len(c.Puffs)
}

// RainChance is the per-puff probability of precipitating on a rain tick.
func RainChance(n int) float64 {
	return min(0.8, float64(n)*0.03)
}

// RainEvery is the number of held ticks between rain ticks. Bigger
// clouds rain more often.
func RainEvery(n int) int {
	return max(1, 5-n/4)
}

// Bounds is how far a puff may drift from the cursor for cloud size n.
func Bounds(n int) (float64, float64) {
	return 25 + float64(n-MinSize)*1.5, 15 + float64(n-MinSize)*0.9
}

// PuffSize draws a side length for a cloud of n puffs.
func PuffSize(n int, src *rng.Source) float64 {
	base := 12 + float64(n-MinSize)*0.8
	return float64(max(8, int(base+float64(src.Between(-3, 8)))))
}

// NewPuff builds a puff for a cloud that will have n puffs.
func NewPuff(n int, src *rng.Source) Puff {
	p := Puff{
		OffsetX: src.Uniform(-50, 50),
		OffsetY: src.Uniform(-30, 30),
		LocalVX: src.Uniform(-0.05, 0.05),
		LocalVY: src.Uniform(-0.05, 0.05),
	}
	size := PuffSize(n, src)
	p.W, p.H = size, size
	p.Angle = src.Uniform(0, 360)
	p.Spin = src.Uniform(-0.5, 0.5)
	return p
}

// Rain builds a falling drop.
func Rain(x, y float64, ttl int, src *rng.Source) particle.Particle {
	return particle.Particle{
		X:       x,
		Y:       y,
		VX:      src.Uniform(-0.5, 0.5),
		VY:      src.Uniform(0.5, 3),
		W:       float64(src.Between(3, 6)),
		H:       float64(src.Between(8, 12)),
		Angle:   src.Uniform(0, 360),
		Spin:    src.Uniform(-3, 3),
		Color:   RainColor,
		Fade:    particle.FadeAlpha,
		TTL:     ttl,
		Gravity: src.Uniform(0.05, 0.15),
		Kind:    particle.KindRain,
	}
}

// Fog builds a slow drifting haze particle.
func Fog(x, y float64, src *rng.Source) particle.Particle {
	return particle.Particle{
		X:     x,
		Y:     y,
		VX:    src.Uniform(-0.3, 0.3),
		VY:    src.Uniform(-0.2, 0.5),
		W:     float64(src.Between(8, 20)),
		H:     float64(src.Between(8, 20)),
		Angle: src.Uniform(0, 360),
		Spin:  src.Uniform(-3, 3),
		Color: FogColor,
		Fade:  particle.FadeAlpha,
		TTL:   src.Between(180, 300),
		Kind:  particle.KindFog,
	}
}

// Shed makes a puff at (x, y) precipitate: fog when below mid, otherwise
// rain that lives long enough to reach line.
func Shed(x, y, w, h, mid, line float64, src *rng.Source) particle.Particle {
	px := x + src.Uniform(-float64(int(w)/2), float64(int(w)/2))
	py := y + float64(int(h)/2)

	if y > mid {
		return Fog(px, py, src)
	}
	distance := max(100, line-py)
	ttl := int(distance/2) + src.Between(50, 100)
	return Rain(px, py, ttl, src)
}

// Register adds the cloud components to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Puff](r)
	ecs.RegisterComponent[Drip](r)
}

// Spawn creates n puffs around (x, y) and records them in c.
func Spawn(storage *ecs.Storage, c *Cloud, n int, x, y float64, src *rng.Source) {
	for i := 0; i < n; i++ {
		addPuff(storage, c, n, x, y, src)
	}
}

func addPuff(storage *ecs.Storage, c *Cloud, n int, x, y float64, src *rng.Source) {
	p := NewPuff(n, src)
	id := storage.Spawn(p, particle.Position{X: x + p.OffsetX, Y: y + p.OffsetY})
	c.Puffs = append(c.Puffs, storage.CreateEntityRef(id))
}
