package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/rechthoek/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spot struct {
	X, Y  float64
	Lit   bool
	Heat  *int
	label string
}

type glow struct{ Level int }

type heat uint8

func newStorage() *ecs.Storage {
	r := ecs.NewComponentRegistry()
	ecs.RegisterComponent[spot](r)
	ecs.RegisterComponent[glow](r)
	ecs.RegisterComponent[heat](r)
	Register(r)
	return ecs.NewStorage(r)
}

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Zero(t, h.Average())

	start := time.Unix(0, 0)
	h.Mark(start)
	assert.Zero(t, h.Average(), "first mark only starts the clock")

	h.Mark(start.Add(10 * time.Millisecond))
	h.Mark(start.Add(30 * time.Millisecond))
	assert.InDelta(t, 15, h.Average(), 1e-4)

	for range 3 {
		h.Add(40 * time.Millisecond)
	}
	assert.InDelta(t, 40, h.Average(), 1e-4, "old samples are overwritten")
}

func TestSystemRows(t *testing.T) {
	stats := &ecs.SchedulerStats{Systems: []ecs.SystemStats{
		{Name: "Idle"},
		{
			Name:           "Busy",
			ExecutionCount: 2,
			AvgDuration:    time.Millisecond,
			MaxDuration:    2 * time.Millisecond,
			LastDuration:   500 * time.Microsecond,
		},
	}}

	rows := SystemRows(stats)
	require.Len(t, rows, 2)
	assert.Equal(t, [4]string{"Idle", "-", "-", "-"}, rows[0])
	assert.Equal(t, [4]string{"Busy", "1ms", "2ms", "500µs"}, rows[1])
}

func TestShortTypes(t *testing.T) {
	assert.Equal(t, "Position, Spin", shortTypes([]string{"particle.Position", "particle.Spin"}))
	assert.Equal(t, "int", shortTypes([]string{"int"}))
	assert.Empty(t, shortTypes(nil))
}

func TestFieldCache(t *testing.T) {
	cache := NewFieldCache()
	fields := cache.Fields(reflect.TypeFor[spot]())
	require.Len(t, fields, 4, "unexported fields are skipped")
	assert.Equal(t, "X", fields[0].Name)
	assert.Equal(t, FieldInfo{Name: "Heat", Index: 3, IsPointer: true}, fields[3])

	again := cache.Fields(reflect.TypeFor[spot]())
	assert.Equal(t, fields, again)
	assert.Empty(t, cache.Fields(reflect.TypeFor[int]()))
}

func TestEntities(t *testing.T) {
	storage := newStorage()
	a := storage.Spawn(spot{X: 1})
	b := storage.Spawn(spot{X: 2}, glow{Level: 3})

	all := Entities(storage, "")
	require.Len(t, all, 2)
	assert.Equal(t, a, all[0].ID)
	assert.Equal(t, "spot", all[0].Components)
	assert.Equal(t, "glow, spot", all[1].Components)

	glowing := Entities(storage, "GLOW")
	require.Len(t, glowing, 1)
	assert.Equal(t, b, glowing[0].ID)
	assert.Equal(t, b.ArchetypeId(), glowing[0].Archetype)

	assert.Empty(t, Entities(storage, "missing"))
}

func TestSpawnWindows(t *testing.T) {
	storage := newStorage()
	scheduler := ecs.NewScheduler(storage)
	Spawn(storage, NewFrameHistory(10), NamedScheduler{Name: "update", Scheduler: scheduler})

	items := 0
	for _, info := range Entities(storage, "ImguiItem") {
		item := ecs.ReadComponent[ImguiItem](storage, info.ID)
		require.NotNil(t, item)
		assert.NotNil(t, item.Render)
		items++
	}
	assert.Equal(t, 3, items)
}

func TestSelectionClearsOnDelete(t *testing.T) {
	storage := newStorage()
	in := NewInspector(storage)

	_, ok := in.Selected()
	assert.False(t, ok)

	id := storage.Spawn(spot{X: 1})
	in.Select(id)
	got, ok := in.Selected()
	require.True(t, ok)
	assert.Equal(t, id, got)

	moved := storage.AddComponent(id, glow{Level: 1})
	got, ok = in.Selected()
	require.True(t, ok)
	assert.Equal(t, moved, got, "selection follows archetype moves")

	storage.Delete(moved)
	reused := storage.Spawn(spot{X: 9}, glow{})
	assert.Equal(t, moved, reused)

	_, ok = in.Selected()
	assert.False(t, ok, "a reused slot is not the selected entity")
	_, ok = in.Selected()
	assert.False(t, ok)
}

func TestComponentsAreEditable(t *testing.T) {
	storage := newStorage()
	id := storage.Spawn(spot{X: 1}, heat(3))

	comps := Components(storage, id)
	require.Len(t, comps, 2)
	assert.Equal(t, "debugui.heat", comps[0].Name)
	assert.Equal(t, reflect.Uint8, comps[0].Value.Kind())
	assert.Equal(t, "debugui.spot", comps[1].Name)

	comps[0].Value.SetUint(7)
	comps[1].Value.FieldByName("X").SetFloat(5)
	assert.Equal(t, heat(7), *ecs.ReadComponent[heat](storage, id))
	assert.Equal(t, 5.0, ecs.ReadComponent[spot](storage, id).X)

	storage.Delete(id)
	assert.Empty(t, Components(storage, id))
}
