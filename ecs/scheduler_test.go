package ecs_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/plus3/rechthoek/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MoveSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
	}]
	Runs int
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
	for m := range s.Movers.Values() {
		m.Position.X += m.Velocity.DX
		m.Position.Y += m.Velocity.DY
	}
}

type AgeSystem struct {
	Living ecs.Query[struct {
		ecs.EntityId
		*Lifetime
	}]
	Total ecs.Singleton[Score]
}

func (s *AgeSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Living.Iter() {
		item.Lifetime.TTL--
		if item.Lifetime.TTL <= 0 {
			frame.Commands.Delete(id)
			*s.Total.Get() += 1
		}
	}
}

type SpawnerSystem struct {
	Counter ecs.Query[struct{ *Position }]
	Seen    []int
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Counter.Len())
	frame.Commands.Spawn(Position{})
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton[Score](storage)

	move := &MoveSystem{}
	age := &AgeSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(move)
	scheduler.Register(age)

	mover := storage.Spawn(Position{}, Velocity{DX: 1, DY: 2})
	storage.Spawn(Lifetime{TTL: 2})

	scheduler.Once(1)
	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.ReadComponent[Position](storage, mover))
	assert.Equal(t, 2, storage.Len())

	scheduler.Once(1)
	assert.Equal(t, 2, move.Runs)
	assert.Equal(t, 1, storage.Len(), "expired entity removed at flush")

	var total *Score
	require.True(t, storage.ReadSingleton(&total))
	assert.Equal(t, Score(1), *total)
}

func TestSchedulerDefersSpawns(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	spawner := &SpawnerSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(spawner)

	scheduler.Once(0)
	scheduler.Once(0)
	scheduler.Once(0)

	assert.Equal(t, []int{0, 1, 2}, spawner.Seen)
	assert.Equal(t, 3, storage.Len())
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MoveSystem{})
	scheduler.Register(&SpawnerSystem{})

	empty := scheduler.Stats()
	assert.Equal(t, 2, empty.SystemCount)
	assert.Zero(t, empty.Systems[0].MinDuration)

	for i := 0; i < 5; i++ {
		scheduler.Once(1.0 / 60)
	}

	stats := scheduler.Stats()
	assert.Equal(t, uint64(5), stats.Ticks)
	assert.Equal(t, int64(10), stats.TotalExecutions)
	assert.Equal(t, "MoveSystem", stats.Systems[0].Name)
	assert.Equal(t, "SpawnerSystem", stats.Systems[1].Name)
	for _, st := range stats.Systems {
		assert.Equal(t, int64(5), st.ExecutionCount)
		assert.LessOrEqual(t, st.MinDuration, st.MaxDuration)
		assert.LessOrEqual(t, st.AvgDuration, st.MaxDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	move := &MoveSystem{}
	scheduler.Register(move)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Positive(t, move.Runs)
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	var cmds ecs.Commands

	doomed := storage.Spawn(Position{X: 1})
	kept := storage.Spawn(Position{X: 2}, Velocity{})

	var order []string
	cmds.Defer(func() { order = append(order, "defer") })
	cmds.Spawn(Position{X: 3})
	cmds.AddComponent(doomed, Tag{})
	cmds.Delete(doomed)
	cmds.Delete(doomed)
	cmds.AddComponent(kept, Tag{})
	cmds.AddComponent(kept, Score(4))
	cmds.RemoveComponent(kept, reflect.TypeFor[Velocity]())
	assert.True(t, cmds.Pending())

	ref := storage.CreateEntityRef(kept)
	doomedRef := storage.CreateEntityRef(doomed)
	cmds.Flush(storage)
	assert.False(t, cmds.Pending())

	// Deletes run before spawns, so the spawned entity takes doomed's
	// slot; only the ref tells the two apart.
	_, ok := storage.ResolveEntityRef(doomedRef)
	assert.False(t, ok)
	assert.False(t, doomedRef.Valid())
	assert.False(t, storage.HasComponent(doomed, reflect.TypeFor[Tag]()))
	assert.Equal(t, 3.0, ecs.ReadComponent[Position](storage, doomed).X)
	assert.Equal(t, []string{"defer"}, order)
	assert.Equal(t, 2, storage.Len())

	current, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.True(t, storage.HasComponent(current, reflect.TypeFor[Tag]()))
	assert.True(t, storage.HasComponent(current, reflect.TypeFor[Score]()))
	assert.False(t, storage.HasComponent(current, reflect.TypeFor[Velocity]()))
	assert.Equal(t, 2.0, ecs.ReadComponent[Position](storage, current).X)
}
