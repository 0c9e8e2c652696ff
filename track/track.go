// Package track moves rectangles along fixed, time-driven paths.
package track

import (
	"math"

	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
)

// Path selects one of the scripted motions.
type Path uint8

const (
	Horizontal Path = iota
	Circle
	Vertical
	Diagonal
	Spin
)

// Track binds an entity to a path.
type Track struct {
	Path Path
}

// Clock counts ticks for the tracked scene.
type Clock struct {
	Frame int
}

// Register adds the track components to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Track](r)
}

// At returns the centre and rotation of path at frame t.
func At(path Path, t float64) (x, y, rotation float64) {
	switch path {
	case Horizontal:
		return 100 + math.Sin(t*0.02)*200, 100, 0
	case Circle:
		return 400 + math.Cos(t*0.03)*150, 300 + math.Sin(t*0.03)*150, t * 2
	case Vertical:
		return 600, 100 + math.Sin(t*0.025)*180, t * 1.5
	case Diagonal:
		return 50 + math.Mod(t*0.5, 700), 400 + math.Sin(t*0.04)*100, t * 3
	case Spin:
		return 400, 500, t * 4
	}
	return 0, 0, 0
}

// System places every tracked entity for the current frame, then
// advances the clock.
type System struct {
	Tracked ecs.Query[struct {
		*Track
		*particle.Position
		*particle.Spin
	}]
	Clock ecs.Singleton[Clock]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	t := float64(clock.Frame)
	for e := range s.Tracked.Values() {
		e.Position.X, e.Position.Y, e.Spin.Angle = At(e.Track.Path, t)
	}
	clock.Frame++
}
