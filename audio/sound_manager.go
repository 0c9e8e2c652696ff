// Package audio plays the procedurally generated sound effects raised as
// cues by gameplay systems.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/cue"
)

// Player is anything that can sound a cue.
type Player interface {
	Play(c cue.Cue)
}

// SoundManager owns the speaker and a mixer that every effect is added
// to. All methods are safe to call before Initialize or after Cleanup;
// they do nothing.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	played      map[cue.Cue]int
}

// NewSoundManager returns a manager for cfg. Nothing plays until
// Initialize succeeds.
func NewSoundManager(cfg config.Audio) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(cfg.SampleRate),
		volume: cfg.Volume,
		played: make(map[cue.Cue]int),
	}
}

// Initialize opens the speaker. It fails on machines without an audio
// device; callers are expected to carry on silently.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.rate <= 0 {
		return fmt.Errorf("audio: sample rate %d", sm.rate)
	}

	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: open speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything and releases the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play adds the effect for c to the mixer.
func (sm *SoundManager) Play(c cue.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := Effect(c, sm.rate, sm.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[c]++
}

// Played returns how many times c has been sounded.
func (sm *SoundManager) Played(c cue.Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}

// Active is the number of effects still sounding.
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return sm.mixer.Len()
}
