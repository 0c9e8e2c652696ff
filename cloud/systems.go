package cloud

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/cue"
	"github.com/plus3/rechthoek/draw"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/input"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
)

var (
	growKeys   = []ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}
	shrinkKeys = []ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}
)

// ResizeSystem grows or shrinks the cloud by one puff on +/- and gives
// every remaining puff a size fitting the new count.
type ResizeSystem struct {
	Cloud ecs.Singleton[Cloud]
	Input ecs.Singleton[input.State]
	Rand  ecs.Singleton[rng.Source]
}

// Execute handles at most one resize per tick. A new puff is spawned by
// a deferred command.
func (s *ResizeSystem) Execute(frame *ecs.UpdateFrame) {
	c, in, src := s.Cloud.Get(), s.Input.Get(), s.Rand.Get()
	if c == nil || in == nil {
		return
	}
	lo, hi := c.Min, c.Max
	if lo == 0 {
		lo = MinSize
	}
	if hi == 0 {
		hi = MaxSize
	}

	switch {
	case in.Pressed(growKeys...) && c.Size() < hi:
		n := c.Size() + 1
		resize(frame.Storage, c.Puffs, n, src)
		x, y := in.X, in.Y
		frame.Commands.Defer(func() {
			addPuff(frame.Storage, c, n, x, y, src)
		})
	case in.Pressed(shrinkKeys...) && c.Size() > lo:
		last := c.Puffs[len(c.Puffs)-1]
		c.Puffs = c.Puffs[:len(c.Puffs)-1]
		if id, ok := frame.Storage.ResolveEntityRef(last); ok {
			frame.Commands.Delete(id)
		}
		resize(frame.Storage, c.Puffs, c.Size(), src)
	}
}

func resize(storage *ecs.Storage, puffs []*ecs.EntityRef, n int, src *rng.Source) {
	for _, ref := range puffs {
		id, ok := storage.ResolveEntityRef(ref)
		if !ok {
			continue
		}
		if p := ecs.ReadComponent[Puff](storage, id); p != nil {
			size := PuffSize(n, src)
			p.W, p.H = size, size
		}
	}
}

// FollowSystem drifts each puff inside the cloud's bounds and places it
// relative to the cursor.
type FollowSystem struct {
	Puffs ecs.Query[struct {
		*Puff
		*particle.Position
	}]
	Cloud ecs.Singleton[Cloud]
	Input ecs.Singleton[input.State]
}

func (s *FollowSystem) Execute(frame *ecs.UpdateFrame) {
	c, in := s.Cloud.Get(), s.Input.Get()
	if c == nil || in == nil {
		return
	}
	maxX, maxY := Bounds(c.Size())

	for p := range s.Puffs.Values() {
		puff := p.Puff
		puff.OffsetX += puff.LocalVX * 0.3
		puff.OffsetY += puff.LocalVY * 0.3
		puff.Angle += puff.Spin

		puff.OffsetX = max(-maxX, min(maxX, puff.OffsetX))
		puff.OffsetY = max(-maxY, min(maxY, puff.OffsetY))

		p.Position.X = in.X + puff.OffsetX
		p.Position.Y = in.Y + puff.OffsetY
	}
}

// PrecipitateSystem sheds rain or fog from the cloud while the button is
// held.
type PrecipitateSystem struct {
	Cloud ecs.Singleton[Cloud]
	Input ecs.Singleton[input.State]
	Rand  ecs.Singleton[rng.Source]
	Cues  ecs.Singleton[cue.Queue]
}

// Execute rolls every puff once each RainEvery ticks.
func (s *PrecipitateSystem) Execute(frame *ecs.UpdateFrame) {
	c, in, src := s.Cloud.Get(), s.Input.Get(), s.Rand.Get()
	if c == nil || in == nil || !in.Held {
		return
	}
	if in.Clicked {
		s.Cues.Get().Push(cue.CloudBurst)
	}

	n := c.Size()
	c.Timer++
	if c.Timer < RainEvery(n) {
		return
	}
	c.Timer = 0

	chance := RainChance(n)
	for _, ref := range c.Puffs {
		if !src.Chance(chance) {
			continue
		}
		id, ok := frame.Storage.ResolveEntityRef(ref)
		if !ok {
			continue
		}
		puff := ecs.ReadComponent[Puff](frame.Storage, id)
		pos := ecs.ReadComponent[particle.Position](frame.Storage, id)
		if puff == nil || pos == nil {
			continue
		}
		p := Shed(pos.X, pos.Y, puff.W, puff.H, c.Mid, c.Line, src)
		frame.Commands.Spawn(p.Components()...)
	}
}

// RenderSystem draws the puffs over everything else in the sky.
type RenderSystem struct {
	Puffs ecs.Query[struct {
		*Puff
		*particle.Position
	}]
	Target ecs.Singleton[draw.Target]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	target := s.Target.Get()
	if target == nil {
		return
	}
	batch := target.Batch()
	for p := range s.Puffs.Values() {
		batch.Add(draw.Rect{
			X:        p.Position.X,
			Y:        p.Position.Y,
			W:        p.Puff.W,
			H:        p.Puff.H,
			Rotation: p.Puff.Angle,
			Color:    PuffColor,
		})
	}
	batch.Flush()
}

// Drip makes a cloud particle drop rain now and then.
type Drip struct {
	Timer int
}

const dripChance = 0.1

// DripSystem counts down each dripping particle and, once due, rolls for
// a drop below it.
type DripSystem struct {
	Dripping ecs.Query[struct {
		*Drip
		*particle.Position
		*particle.Size
	}]
	Rand ecs.Singleton[rng.Source]
}

// Execute rearms the timer with a fresh random delay after each drop.
func (s *DripSystem) Execute(frame *ecs.UpdateFrame) {
	src := s.Rand.Get()
	for p := range s.Dripping.Values() {
		p.Drip.Timer--
		if p.Drip.Timer > 0 || !src.Chance(dripChance) {
			continue
		}
		px := p.Position.X + src.Uniform(-float64(int(p.Size.W)/2), float64(int(p.Size.W)/2))
		py := p.Position.Y + float64(int(p.Size.H)/2)
		drop := Rain(px, py, src.Between(200, 400), src)
		frame.Commands.Spawn(drop.Components()...)
		p.Drip.Timer = src.Between(30, 90)
	}
}

// Burst returns the components of count dripping cloud particles
// scattered around (x, y).
func Burst(x, y float64, count int, src *rng.Source) [][]any {
	out := make([][]any, 0, count)
	for i := 0; i < count; i++ {
		p := particle.Particle{
			X:     x + src.Uniform(-50, 50),
			Y:     y + src.Uniform(-30, 30),
			VX:    src.Uniform(-0.3, 0.3),
			VY:    src.Uniform(-0.2, 0.2),
			W:     float64(src.Between(15, 30)),
			H:     float64(src.Between(15, 30)),
			Angle: src.Uniform(0, 360),
			Spin:  src.Uniform(-3, 3),
			Color: PuffColor,
			Fade:  particle.FadeAlpha,
			TTL:   src.Between(300, 600),
			Kind:  particle.KindCloud,
		}
		out = append(out, append(p.Components(), Drip{Timer: src.Between(0, 60)}))
	}
	return out
}
