// Package app runs a scene in an ebiten window, with optional sound and
// the debug overlay.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/audio"
	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/debugui"
	debugebiten "github.com/plus3/rechthoek/debugui/ebiten"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/scene"
)

// Options are the per-run switches that do not live in the config file.
type Options struct {
	// Mute skips opening the speaker.
	Mute bool
	// Source names where the config came from, for the log.
	Source string
}

// Game implements ebiten.Game for one stage.
type Game struct {
	Stage *scene.Stage

	overlay *debugebiten.ImguiBackend
	debug   *ecs.Scheduler
	frames  *debugui.FrameHistory
}

// NewGame builds the stage for sc. With cfg.Debug set the overlay is
// created and its windows spawned into the stage.
func NewGame(sc scene.Scene, cfg *config.Config, player audio.Player) *Game {
	opts := scene.Options{Player: player}
	if cfg.Debug {
		opts.Register = debugui.Register
	}
	g := &Game{Stage: sc.Build(cfg, opts)}
	if !cfg.Debug {
		return g
	}

	g.overlay = debugebiten.New(sc.Title, cfg.Window.Width, cfg.Window.Height)
	g.frames = debugui.NewFrameHistory(120)
	g.debug = ecs.NewScheduler(g.Stage.Storage)
	g.debug.Register(&debugui.ImguiSystem{})
	debugui.Spawn(g.Stage.Storage, g.frames,
		debugui.NamedScheduler{Name: "update", Scheduler: g.Stage.Update},
		debugui.NamedScheduler{Name: "render", Scheduler: g.Stage.Render},
	)
	return g
}

// Update ends the run on Escape, otherwise advances the stage one tick.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.overlay == nil {
		g.Stage.Tick()
		return nil
	}

	g.frames.Mark(time.Now())
	g.overlay.Frame(func() {
		g.Stage.Tick()
		g.debug.Once(0)
	})
	return nil
}

// Draw renders the stage, then the overlay on top.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Stage.Draw(screen)
	if g.overlay != nil {
		g.overlay.Overlay(screen)
	}
}

// Layout keeps the logical screen at the configured size; a resized
// window scales it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.Stage.Width(), g.Stage.Height()
	if g.overlay != nil {
		g.overlay.Layout(w, h)
	}
	return w, h
}

// OpenAudio returns a player for cfg, or nil when sound is off or the
// speaker cannot be opened. The returned cleanup is always safe to call.
func OpenAudio(cfg config.Audio, mute bool) (audio.Player, func()) {
	if mute || !cfg.Enabled {
		return nil, func() {}
	}
	sm := audio.NewSoundManager(cfg)
	if err := sm.Initialize(); err != nil {
		Logger().Warn("audio disabled", "error", err)
		return nil, func() {}
	}
	return sm, sm.Cleanup
}

// Run opens the window and plays sc until the window is closed or
// Escape is pressed.
func Run(sc scene.Scene, cfg *config.Config, opts Options) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	log := Logger().With("scene", sc.Name)
	log.Debug("config loaded", "source", opts.Source)

	player, cleanup := OpenAudio(cfg.Audio, opts.Mute)
	defer cleanup()

	ebiten.SetWindowTitle(sc.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.TPS)

	game := NewGame(sc, cfg, player)
	log.Info("scene started", "seed", game.Stage.Seed, "debug", cfg.Debug, "audio", player != nil)

	err := ebiten.RunGame(game)
	log.Info("scene stopped", "ticks", game.Stage.Update.Stats().Ticks)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("app: run %s: %w", sc.Name, err)
	}
	return nil
}
