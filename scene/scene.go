// Package scene assembles the demos. Each scene is a storage populated
// with entities plus an update and a render scheduler built from the
// shared particle, emitter, ground, cloud and fire systems.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/audio"
	"github.com/plus3/rechthoek/cloud"
	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/cue"
	"github.com/plus3/rechthoek/draw"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/emitter"
	"github.com/plus3/rechthoek/fire"
	"github.com/plus3/rechthoek/input"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
	"github.com/plus3/rechthoek/track"
)

// ErrUnknown is returned by Lookup for a name no scene has.
var ErrUnknown = errors.New("unknown scene")

// Scene describes one demo.
type Scene struct {
	Name       string
	Title      string
	Background color.RGBA
	// Keys are the keys the autopilot presses in turn.
	Keys  []ebiten.Key
	build func(s *Stage)
}

var scenes = []Scene{
	{
		Name:       "rectangles",
		Title:      "Rectangle Examples",
		Background: color.RGBA{0, 0, 0, 255},
		build:      buildRectangles,
	},
	{
		Name:       "moving",
		Title:      "Moving Rectangle Examples",
		Background: color.RGBA{0, 0, 0, 255},
		build:      buildMoving,
	},
	{
		Name:       "bouncing",
		Title:      "Particle System with 100 Rectangles",
		Background: color.RGBA{20, 20, 30, 255},
		build:      buildBouncing,
	},
	{
		Name:       "emitters",
		Title:      "Particle System with 3 Emitters",
		Background: color.RGBA{20, 20, 40, 255},
		build:      buildEmitters,
	},
	{
		Name:       "mouse",
		Title:      "Mouse-Controlled Emitter System",
		Background: color.RGBA{20, 20, 40, 255},
		Keys:       []ebiten.Key{ebiten.KeySpace},
		build:      buildMouse,
	},
	{
		Name:       "cursor-cloud",
		Title:      "Cursor Cloud System",
		Background: color.RGBA{40, 60, 80, 255},
		Keys:       []ebiten.Key{ebiten.KeyEqual, ebiten.KeyEqual, ebiten.KeyMinus},
		build:      buildCursorCloud,
	},
}

// List returns every scene in menu order.
func List() []Scene {
	return append([]Scene(nil), scenes...)
}

// Lookup finds a scene by name.
func Lookup(name string) (Scene, error) {
	for _, s := range scenes {
		if s.Name == name {
			return s, nil
		}
	}
	return Scene{}, fmt.Errorf("%w %q", ErrUnknown, name)
}

// Options changes how a stage is wired without changing what it shows.
type Options struct {
	// Autopilot replaces mouse and keyboard polling with a scripted
	// input.Autopilot.
	Autopilot bool
	// Input, when set, is registered instead of both and must fill
	// input.State itself.
	Input ecs.System
	// Player sounds cues; nil drops them.
	Player audio.Player
	// Register adds components owned by outer layers, such as overlay
	// items, before the storage is built.
	Register func(r *ecs.ComponentRegistry)
}

// Stage is a built, runnable scene.
type Stage struct {
	Scene   Scene
	Config  *config.Config
	Seed    uint64
	Storage *ecs.Storage
	Update  *ecs.Scheduler
	Render  *ecs.Scheduler

	rand   *rng.Source
	target *draw.Target
}

// Build creates a fresh stage for s. A zero seed in cfg is replaced by
// one taken from the clock.
func (s Scene) Build(cfg *config.Config, opts Options) *Stage {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	registry := ecs.NewComponentRegistry()
	particle.Register(registry)
	emitter.Register(registry)
	cloud.Register(registry)
	fire.Register(registry)
	track.Register(registry)
	if opts.Register != nil {
		opts.Register(registry)
	}
	storage := ecs.NewStorage(registry)

	stage := &Stage{
		Scene:   s,
		Config:  cfg,
		Seed:    seed,
		Storage: storage,
		Update:  ecs.NewScheduler(storage),
		Render:  ecs.NewScheduler(storage),
	}
	stage.rand = ecs.NewSingleton(storage, rng.New(seed)).Get()
	stage.target = ecs.NewSingleton[draw.Target](storage).Get()
	ecs.NewSingleton(storage, draw.Background{Color: s.Background})
	ecs.NewSingleton[input.State](storage)
	ecs.NewSingleton[input.Capture](storage)
	ecs.NewSingleton[cue.Queue](storage)

	switch {
	case opts.Input != nil:
		stage.Update.Register(opts.Input)
	case opts.Autopilot:
		ecs.NewSingleton(storage, input.Autopilot{
			Width:      float64(cfg.Window.Width),
			Height:     float64(cfg.Window.Height),
			ClickEvery: 90,
			HoldFor:    45,
			KeyEvery:   240,
			Keys:       s.Keys,
		})
		stage.Update.Register(&input.AutopilotSystem{})
	default:
		stage.Update.Register(&input.PollSystem{})
	}
	stage.Render.Register(&draw.ClearSystem{})

	s.build(stage)

	stage.Update.Register(&audio.CueSystem{Player: opts.Player})
	return stage
}

// Width and Height are the window size the stage was built for.
func (s *Stage) Width() int  { return s.Config.Window.Width }
func (s *Stage) Height() int { return s.Config.Window.Height }

// Tick runs one update.
func (s *Stage) Tick() {
	s.Update.Once(1 / float64(s.Config.TPS))
}

// Draw renders the current state into screen.
func (s *Stage) Draw(screen *ebiten.Image) {
	s.target.Screen = screen
	s.Render.Once(0)
	s.target.Screen = nil
}

// Particles counts the live particles.
func (s *Stage) Particles() int {
	return particle.Count(s.Storage)
}
