// Package cue queues sound events raised by gameplay systems until the
// audio system drains them.
package cue

import "fmt"

// Cue names one sound effect.
type Cue uint8

const (
	Extinguish Cue = iota + 1
	RoundStart
	EmitterPlaced
	CloudBurst
)

func (c Cue) String() string {
	switch c {
	case Extinguish:
		return "extinguish"
	case RoundStart:
		return "round-start"
	case EmitterPlaced:
		return "emitter-placed"
	case CloudBurst:
		return "cloud-burst"
	}
	return fmt.Sprintf("Cue(%d)", c)
}

// Queue is the cue singleton. Cues raised in one tick are played
// together, oldest first.
type Queue struct {
	pending []Cue
}

// Push raises a cue.
func (q *Queue) Push(c Cue) {
	if q == nil {
		return
	}
	q.pending = append(q.pending, c)
}

// Len returns the number of undrained cues.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain returns and clears the pending cues. The returned slice is only
// valid until the next Push.
func (q *Queue) Drain() []Cue {
	out := q.pending
	q.pending = q.pending[:0]
	return out
}
