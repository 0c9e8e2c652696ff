package scene_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rechthoek/cloud"
	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/cue"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/emitter"
	"github.com/plus3/rechthoek/fire"
	"github.com/plus3/rechthoek/input"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/scene"
	"github.com/plus3/rechthoek/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script replays fixed input, one State per tick, then stays idle.
type script struct {
	State ecs.Singleton[input.State]
	Steps []input.State
	tick  int
}

func (s *script) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if s.tick < len(s.Steps) {
		*state = s.Steps[s.tick]
	} else {
		*state = input.State{X: state.X, Y: state.Y}
	}
	s.tick++
}

type recorder struct {
	cues []cue.Cue
}

func (r *recorder) Play(c cue.Cue) { r.cues = append(r.cues, c) }

func seeded(seed uint64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func build(t *testing.T, name string, cfg *config.Config, opts scene.Options) *scene.Stage {
	t.Helper()
	sc, err := scene.Lookup(name)
	require.NoError(t, err)
	return sc.Build(cfg, opts)
}

func count[T any](storage *ecs.Storage) int {
	n := 0
	for _, a := range storage.Archetypes() {
		if a.HasComponent(reflect.TypeFor[T]()) {
			n += a.Len()
		}
	}
	return n
}

func TestListAndLookup(t *testing.T) {
	var names []string
	for _, s := range scene.List() {
		names = append(names, s.Name)
		assert.NotEmpty(t, s.Title)
		assert.Equal(t, uint8(255), s.Background.A)
	}
	assert.Equal(t, []string{"rectangles", "moving", "bouncing", "emitters", "mouse", "cursor-cloud"}, names)

	sc, err := scene.Lookup("cursor-cloud")
	require.NoError(t, err)
	assert.Equal(t, "Cursor Cloud System", sc.Title)

	_, err = scene.Lookup("lava")
	assert.ErrorIs(t, err, scene.ErrUnknown)
	assert.ErrorContains(t, err, "lava")
}

func TestScenesRunHeadless(t *testing.T) {
	for _, sc := range scene.List() {
		t.Run(sc.Name, func(t *testing.T) {
			stage := sc.Build(seeded(3), scene.Options{Autopilot: true})
			assert.Equal(t, uint64(3), stage.Seed)
			assert.NotPanics(t, func() {
				for i := 0; i < 600; i++ {
					stage.Tick()
					stage.Draw(nil)
				}
			})
			assert.Positive(t, stage.Storage.Len())
			assert.Equal(t, uint64(600), stage.Update.Stats().Ticks)
		})
	}
}

func TestZeroSeedPicksOne(t *testing.T) {
	stage := build(t, "rectangles", seeded(0), scene.Options{Autopilot: true})
	assert.NotZero(t, stage.Seed)
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() (int, int) {
		stage := build(t, "cursor-cloud", seeded(42), scene.Options{Autopilot: true})
		for i := 0; i < 400; i++ {
			stage.Tick()
		}
		return stage.Particles(), stage.Storage.Len()
	}
	p1, n1 := run()
	p2, n2 := run()
	assert.Equal(t, p1, p2)
	assert.Equal(t, n1, n2)
	assert.Positive(t, p1)
}

func TestRectanglesGallery(t *testing.T) {
	stage := build(t, "rectangles", seeded(1), scene.Options{Input: &script{}})
	require.Equal(t, 6, stage.Storage.Len())

	found := false
	for r := range ecs.NewView[struct {
		*particle.Position
		*particle.Size
		*particle.Spin
	}](stage.Storage).Values() {
		if r.Position.X == 300 && r.Position.Y == 200 {
			found = true
			assert.Equal(t, particle.Size{W: 120, H: 60}, *r.Size)
			assert.Equal(t, 45.0, r.Spin.Angle)
		}
	}
	assert.True(t, found)
}

func TestMovingFollowsTracks(t *testing.T) {
	stage := build(t, "moving", seeded(1), scene.Options{Input: &script{}})
	view := ecs.NewView[struct {
		*track.Track
		*particle.Position
		*particle.Spin
	}](stage.Storage)

	for i := 0; i < 10; i++ {
		stage.Tick()
	}
	for m := range view.Values() {
		x, y, rot := track.At(m.Track.Path, 9)
		assert.InDelta(t, x, m.Position.X, 1e-9)
		assert.InDelta(t, y, m.Position.Y, 1e-9)
		assert.InDelta(t, rot, m.Spin.Angle, 1e-9)
	}
}

func TestBouncingStaysInWindow(t *testing.T) {
	cfg := seeded(8)
	cfg.Bouncing.Count = 25
	stage := build(t, "bouncing", cfg, scene.Options{Input: &script{}})
	require.Equal(t, 25, stage.Storage.Len())

	for i := 0; i < 500; i++ {
		stage.Tick()
	}
	for p := range ecs.NewView[struct{ *particle.Position }](stage.Storage).Values() {
		assert.GreaterOrEqual(t, p.Position.X, 0.0)
		assert.LessOrEqual(t, p.Position.X, 800.0)
		assert.GreaterOrEqual(t, p.Position.Y, 0.0)
		assert.LessOrEqual(t, p.Position.Y, 600.0)
	}
}

func TestEmittersHUD(t *testing.T) {
	stage := build(t, "emitters", seeded(2), scene.Options{Input: &script{}})
	for i := 0; i < 15; i++ {
		stage.Tick()
	}

	hud := &scene.EmittersHUD{}
	probe := ecs.NewScheduler(stage.Storage)
	probe.Register(hud)
	probe.Once(0)

	assert.Equal(t, []string{
		"Particles: 11",
		"Emitter 1: 5/50 active",
		"Emitter 2: 3/30 active",
		"Emitter 3: 3/40 active",
	}, hud.Lines)
}

func TestMousePlacesEmittersAndClouds(t *testing.T) {
	space := input.State{X: 10, Y: 10, Keys: []ebiten.Key{ebiten.KeySpace}}
	rec := &recorder{}
	stage := build(t, "mouse", seeded(4), scene.Options{
		Player: rec,
		Input: &script{Steps: []input.State{
			{X: 300, Y: 200, Clicked: true, Held: true},
			space, space, space, space,
			{X: 400, Y: 100, Clicked: true, Held: true},
		}},
	})

	stage.Tick()
	assert.Equal(t, 1, count[emitter.Emitter](stage.Storage))
	assert.Equal(t, 1, count[emitter.Marker](stage.Storage))
	assert.Equal(t, 1, count[emitter.Lifespan](stage.Storage))

	for i := 0; i < 5; i++ {
		stage.Tick()
	}
	drips := count[cloud.Drip](stage.Storage)
	assert.GreaterOrEqual(t, drips, 8)
	assert.LessOrEqual(t, drips, 15)
	assert.Equal(t, []cue.Cue{cue.EmitterPlaced, cue.CloudBurst}, rec.cues)

	hud := &scene.MouseHUD{}
	probe := ecs.NewScheduler(stage.Storage)
	probe.Register(hud)
	probe.Once(0)
	require.Len(t, hud.Lines, 4)
	assert.Equal(t, "Emitters: 1", hud.Lines[1])
	assert.Equal(t, "Current type: cloud", hud.Lines[2])
	assert.Equal(t, "Click to place emitter, SPACE to change type", hud.Lines[3])
}

func TestMouseEmitterExpires(t *testing.T) {
	stage := build(t, "mouse", seeded(4), scene.Options{Input: &script{Steps: []input.State{
		{X: 300, Y: 200, Clicked: true, Held: true},
	}}})
	for i := 0; i < 601; i++ {
		stage.Tick()
	}
	assert.Zero(t, count[emitter.Emitter](stage.Storage))
}

func cursorHUD(stage *scene.Stage) *scene.CursorHUD {
	hud := &scene.CursorHUD{}
	probe := ecs.NewScheduler(stage.Storage)
	probe.Register(hud)
	probe.Once(0)
	return hud
}

func TestCursorCloudStartsFirstRound(t *testing.T) {
	stage := build(t, "cursor-cloud", seeded(6), scene.Options{Input: &script{}})

	fires := count[fire.Fire](stage.Storage)
	assert.GreaterOrEqual(t, fires, 3)
	assert.LessOrEqual(t, fires, 6)
	assert.Equal(t, fires, count[fire.Burning](stage.Storage))
	assert.Equal(t, 20, count[cloud.Puff](stage.Storage))

	hud := cursorHUD(stage)
	require.Len(t, hud.Lines, 6)
	assert.Equal(t, "Cloud size: 20 | Rain intensity: 60%", hud.Lines[1])
	assert.Equal(t, "Hold mouse button to make it rain!", hud.Lines[2])
	assert.Equal(t, "Press +/- to grow/shrink cloud", hud.Lines[3])
	assert.Equal(t, "Round: 1", hud.Lines[5])
	assert.Empty(t, hud.Banner)
}

func TestCursorCloudResizes(t *testing.T) {
	grow := input.State{X: 400, Y: 400, Keys: []ebiten.Key{ebiten.KeyEqual}}
	stage := build(t, "cursor-cloud", seeded(6), scene.Options{Input: &script{Steps: []input.State{
		grow, grow, {X: 400, Y: 400, Keys: []ebiten.Key{ebiten.KeyMinus}},
	}}})

	stage.Tick()
	stage.Tick()
	assert.Equal(t, 22, count[cloud.Puff](stage.Storage))
	stage.Tick()
	assert.Equal(t, 21, count[cloud.Puff](stage.Storage))

	hud := cursorHUD(stage)
	assert.Equal(t, "Cloud size: 21 | Rain intensity: 63%", hud.Lines[1])
	assert.Equal(t, "Hold mouse button to create fog!", hud.Lines[2])
}

func TestCursorCloudNextRound(t *testing.T) {
	rec := &recorder{}
	stage := build(t, "cursor-cloud", seeded(6), scene.Options{Input: &script{}, Player: rec})

	var ids []ecs.EntityId
	for id := range ecs.NewView[struct{ *fire.Burning }](stage.Storage).Iter() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		stage.Storage.RemoveComponent(id, reflect.TypeFor[fire.Burning]())
	}

	stage.Tick()
	hud := cursorHUD(stage)
	assert.Equal(t, fmt.Sprintf("Active fires: 0/%d", len(ids)), hud.Lines[4])
	assert.Equal(t, "All fires extinguished! Next round in 3s", hud.Banner)

	for i := 0; i < 178; i++ {
		stage.Tick()
	}
	assert.Equal(t, "All fires extinguished! Next round in 1s", cursorHUD(stage).Banner)
	assert.Empty(t, rec.cues)

	stage.Tick()
	assert.Equal(t, 5, count[fire.Fire](stage.Storage))
	assert.Equal(t, 5, count[fire.Burning](stage.Storage))
	assert.Equal(t, []cue.Cue{cue.RoundStart}, rec.cues)

	hud = cursorHUD(stage)
	assert.Equal(t, "Round: 2", hud.Lines[5])
	assert.Equal(t, "Active fires: 5/5", hud.Lines[4])
	assert.Equal(t, "Starting new round!", hud.Banner)

	stage.Tick()
	assert.Empty(t, cursorHUD(stage).Banner)
}
