package audio

import (
	"github.com/plus3/rechthoek/cue"
	"github.com/plus3/rechthoek/ecs"
)

// CueSystem drains the cue queue every tick. With a nil Player the cues
// are dropped, which is how a muted run behaves.
type CueSystem struct {
	Cues   ecs.Singleton[cue.Queue]
	Player Player
}

// Execute empties the queue every tick, whether or not a player is set.
func (s *CueSystem) Execute(frame *ecs.UpdateFrame) {
	q := s.Cues.Get()
	if q == nil {
		return
	}
	for _, c := range q.Drain() {
		if s.Player != nil {
			s.Player.Play(c)
		}
	}
}
