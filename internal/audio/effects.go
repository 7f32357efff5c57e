// Package audio synthesizes the trainer's sound cues with beep.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-reflex/internal/trainer"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue timings
const (
	hitDuration    = 90 * time.Millisecond
	missDuration   = 140 * time.Millisecond
	noteDuration   = 80 * time.Millisecond
	chimeDuration  = 160 * time.Millisecond
	attack         = 5 * time.Millisecond
	shortRelease   = 60 * time.Millisecond
	longRelease    = 120 * time.Millisecond
	fanfareSustain = 260 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator that stops after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
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
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, d time.Duration, wave WaveType, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// hitSound is a short bright ding.
func hitSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		newVolume(tone(1046.5, hitDuration, WaveSine, shortRelease, rate), 0.7),
		newVolume(tone(2093.0, hitDuration, WaveSine, shortRelease/2, rate), 0.3),
	)
}

// missSound is a low saw buzz.
func missSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(tone(110, missDuration, WaveSaw, shortRelease, rate), 0.6)
}

// levelUpSound climbs a major arpeggio.
func levelUpSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(beep.Seq(
		tone(523.25, noteDuration, WaveSquare, shortRelease/2, rate),
		tone(659.25, noteDuration, WaveSquare, shortRelease/2, rate),
		tone(783.99, noteDuration, WaveSquare, shortRelease/2, rate),
		tone(1046.5, chimeDuration, WaveSquare, longRelease, rate),
	), 0.35)
}

// completeSound is a two-note chime.
func completeSound(rate beep.SampleRate) beep.Streamer {
	return newVolume(beep.Seq(
		tone(987.77, noteDuration, WaveSquare, shortRelease/2, rate),
		tone(1318.51, chimeDuration, WaveSquare, longRelease, rate),
	), 0.4)
}

// recordSound is a short fanfare with a sustained chord at the end.
func recordSound(rate beep.SampleRate) beep.Streamer {
	chord := beep.Mix(
		newVolume(tone(1046.5, fanfareSustain, WaveSine, longRelease, rate), 0.4),
		newVolume(tone(1318.51, fanfareSustain, WaveSine, longRelease, rate), 0.3),
		newVolume(tone(1567.98, fanfareSustain, WaveSine, longRelease, rate), 0.3),
	)
	return beep.Seq(
		beep.Silence(rate.N(chimeDuration)), // let the completion chime finish
		newVolume(tone(783.99, noteDuration, WaveSquare, shortRelease/2, rate), 0.35),
		newVolume(tone(783.99, noteDuration, WaveSquare, shortRelease/2, rate), 0.35),
		chord,
	)
}

// Cue returns the sound for an event kind at the given volume, or nil when
// the event has no sound.
func Cue(kind trainer.EventKind, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case trainer.EventHit:
		s = hitSound(rate)
	case trainer.EventMiss:
		s = missSound(rate)
	case trainer.EventLevelUp:
		s = levelUpSound(rate)
	case trainer.EventSessionComplete:
		s = completeSound(rate)
	case trainer.EventNewRecord:
		s = recordSound(rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}
