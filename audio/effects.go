package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/plus3/rechthoek/cue"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed number of samples of one wave.
type oscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator returns a streamer of wave at freq lasting duration.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, duration: rate.N(duration), wave: wave, rate: rate}
}

// NewSweep is an oscillator whose frequency glides linearly from 'from'
// to 'to' over duration.
func NewSweep(from, to float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	n := rate.N(duration)
	o := &oscillator{freq: from, duration: n, wave: wave, rate: rate}
	if n > 0 {
		o.sweep = (to - from) / float64(n)
	}
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += (o.freq + o.sweep*float64(o.position)) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with attack and release ramps. The stream ends
// after duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remaining := e.total - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Zero or less is silence, since the
// effect works in log2 steps.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sizzle is steam off a doused fire: a burst of noise fading out.
func Sizzle(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 320 * time.Millisecond
	noise := NewOscillator(0, d, WaveNoise, rate)
	return newVolume(NewEnvelope(noise, d, 5*time.Millisecond, 260*time.Millisecond, rate), vol*0.5)
}

// Chime is a rising two-note sting for a new round.
func Chime(rate beep.SampleRate, vol float64) beep.Streamer {
	const (
		note1 = 110 * time.Millisecond
		note2 = 260 * time.Millisecond
	)
	n1 := NewEnvelope(NewOscillator(659.25, note1, WaveSquare, rate), note1, 4*time.Millisecond, 60*time.Millisecond, rate)
	n2 := NewEnvelope(NewOscillator(987.77, note2, WaveSquare, rate), note2, 4*time.Millisecond, 200*time.Millisecond, rate)
	return newVolume(beep.Seq(n1, n2), vol*0.35)
}

// Pop is a short falling blip for a placed emitter.
func Pop(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 70 * time.Millisecond
	body := NewEnvelope(NewSweep(720, 360, d, WaveSine, rate), d, 2*time.Millisecond, 50*time.Millisecond, rate)
	over := NewEnvelope(NewSweep(1440, 720, d, WaveSine, rate), d, 2*time.Millisecond, 40*time.Millisecond, rate)
	return newVolume(beep.Mix(newVolume(body, 0.75), newVolume(over, 0.25)), vol)
}

// Whoosh is soft air for a cloud starting to rain.
func Whoosh(rate beep.SampleRate, vol float64) beep.Streamer {
	const d = 420 * time.Millisecond
	noise := NewOscillator(0, d, WaveNoise, rate)
	return newVolume(NewEnvelope(noise, d, 160*time.Millisecond, 220*time.Millisecond, rate), vol*0.25)
}

// Effect returns the streamer for c, or nil for an unknown cue.
func Effect(c cue.Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	switch c {
	case cue.Extinguish:
		return Sizzle(rate, vol)
	case cue.RoundStart:
		return Chime(rate, vol)
	case cue.EmitterPlaced:
		return Pop(rate, vol)
	case cue.CloudBurst:
		return Whoosh(rate, vol)
	}
	return nil
}
