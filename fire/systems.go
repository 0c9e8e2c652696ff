package fire

import (
	"math"
	"reflect"

	"github.com/plus3/rechthoek/cue"
	"github.com/plus3/rechthoek/ecs"
	"github.com/plus3/rechthoek/particle"
	"github.com/plus3/rechthoek/rng"
)

var burningType = reflect.TypeFor[Burning]()

type burningFire struct {
	ecs.EntityId
	*Fire
	*particle.Budget
	*Burning
}

// BurnSystem ticks the field cooldowns, then ages, grows, spreads and
// feeds every burning fire.
type BurnSystem struct {
	Fires ecs.Query[burningFire]
	Field ecs.Singleton[Field]
	Rand  ecs.Singleton[rng.Source]
}

// Execute clears the per-tick field state first, so it must run before
// DouseSystem and RoundSystem.
func (s *BurnSystem) Execute(frame *ecs.UpdateFrame) {
	field, src := s.Field.Get(), s.Rand.Get()
	if field == nil {
		return
	}
	field.Starting = false
	field.Doused = 0
	field.SpawnCooldown = max(0, field.SpawnCooldown-1)
	field.RoundCooldown = max(0, field.RoundCooldown-1)

	// Spots claimed by fires spawned this tick, so a later fire in the
	// same tick does not spread onto them.
	var claimed []float64

	for id, f := range s.Fires.Iter() {
		f.Fire.Age++
		f.Fire.Growth++
		f.Fire.SpreadTimer++

		if f.Fire.Growth >= growEvery {
			f.Budget.Max = min(maxBudget, f.Budget.Max+growStep)
			f.Fire.Rate = max(1, f.Fire.Rate-1)
			f.Fire.Growth = 0
		}

		if f.Fire.SpreadTimer >= spreadEvery && field.SpawnCooldown <= 0 {
			if x, ok := s.spreadSpot(f.Fire, field, claimed, src); ok {
				claimed = append(claimed, float64(x))
				frame.Commands.Spawn(New(x, field.Line, src.Between(10, 15), src.Between(3, 5))...)
				field.SpawnCooldown = spreadCooldown
			}
			f.Fire.SpreadTimer = 0
		}

		f.Fire.Timer++
		if f.Fire.Timer >= f.Fire.Rate && !f.Budget.Full() {
			flame := Flame(f.Fire, frame.Storage.CreateEntityRef(id), src)
			frame.Commands.Spawn(flame.Components()...)
			f.Budget.Active++
			f.Fire.Timer = 0
		}
	}
}

func (s *BurnSystem) spreadSpot(from *Fire, field *Field, claimed []float64, src *rng.Source) (int, bool) {
	for attempt := 0; attempt < spreadAttempts; attempt++ {
		x := int(from.X) + src.Between(-spreadReach, spreadReach)
		if x < edgeMargin || x > field.Width-edgeMargin {
			continue
		}
		if s.crowded(float64(x), claimed) {
			continue
		}
		return x, true
	}
	return 0, false
}

func (s *BurnSystem) crowded(x float64, claimed []float64) bool {
	for f := range s.Fires.Values() {
		if math.Abs(f.Fire.X-x) < spreadGap {
			return true
		}
	}
	for _, c := range claimed {
		if math.Abs(c-x) < spreadGap {
			return true
		}
	}
	return false
}

// DouseSystem puts out every burning fire a raindrop passes through.
type DouseSystem struct {
	Fires ecs.Query[burningFire]
	Drops ecs.Query[struct {
		*particle.Position
		*particle.Kind
	}]
	Field ecs.Singleton[Field]
	Cues  ecs.Singleton[cue.Queue]
}

// Execute tags doused fires for removal and counts them on the field so
// RoundSystem sees them as out in the same tick.
func (s *DouseSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Fires.Len() == 0 {
		return
	}
	field := s.Field.Get()
	for id, f := range s.Fires.Iter() {
		for d := range s.Drops.Values() {
			if *d.Kind != particle.KindRain {
				continue
			}
			if math.Abs(d.Position.X-f.Fire.X) < douseX && math.Abs(d.Position.Y-f.Fire.Y) < douseY {
				frame.Commands.RemoveComponent(id, burningType)
				s.Cues.Get().Push(cue.Extinguish)
				if field != nil {
					field.Doused++
				}
				break
			}
		}
	}
}

// RoundSystem starts the countdown once every fire is out and replaces
// the field with a larger round when it expires.
type RoundSystem struct {
	Burning ecs.Query[burningFire]
	All     ecs.Query[struct {
		ecs.EntityId
		*Fire
	}]
	Field ecs.Singleton[Field]
	Rand  ecs.Singleton[rng.Source]
	Cues  ecs.Singleton[cue.Queue]
}

// Execute arms the countdown when the last fire goes out and restarts the
// round on its final tick.
func (s *RoundSystem) Execute(frame *ecs.UpdateFrame) {
	field := s.Field.Get()
	if field == nil || s.Burning.Len()-field.Doused > 0 || s.All.Len() == 0 {
		return
	}

	switch field.RoundCooldown {
	case 0:
		field.RoundCooldown = roundDelay
	case 1:
		for id := range s.All.Iter() {
			frame.Commands.Delete(id)
		}
		field.Round++
		Seed(frame.Commands.Spawn, field, min(maxRoundFires, 3+field.Round), s.Rand.Get())
		field.SpawnCooldown = 0
		field.Starting = true
		s.Cues.Get().Push(cue.RoundStart)
	}
}
