package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue durations.
const (
	bumperDuration  = 140 * time.Millisecond
	flipperDuration = 45 * time.Millisecond
	wallDuration    = 30 * time.Millisecond
	nudgeDuration   = 90 * time.Millisecond
	drainNote       = 110 * time.Millisecond
)

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator that ends after duration.
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
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release tail.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// bumperSound is a two-partial bell.
func bumperSound(rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(NewOscillator(880, bumperDuration, WaveSine, rate), bumperDuration, 2*time.Millisecond, 120*time.Millisecond, rate)
	over := NewEnvelope(NewOscillator(1320, bumperDuration, WaveSine, rate), bumperDuration, 2*time.Millisecond, 80*time.Millisecond, rate)
	return beep.Mix(newVolume(fund, 0.6), newVolume(over, 0.3))
}

// flipperSound is a short low click.
func flipperSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(110, flipperDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, flipperDuration, time.Millisecond, 35*time.Millisecond, rate), 0.25)
}

// wallSound is a quiet noise thump.
func wallSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(0, wallDuration, WaveNoise, rate)
	return newVolume(NewEnvelope(osc, wallDuration, time.Millisecond, 25*time.Millisecond, rate), 0.15)
}

// nudgeSound is a low saw rumble.
func nudgeSound(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(55, nudgeDuration, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, nudgeDuration, 10*time.Millisecond, 60*time.Millisecond, rate), 0.3)
}

// drainSound is three falling notes.
func drainSound(rate beep.SampleRate) beep.Streamer {
	notes := []float64{440, 330, 220}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		osc := NewOscillator(f, drainNote, WaveSquare, rate)
		seq[i] = NewEnvelope(osc, drainNote, 5*time.Millisecond, 60*time.Millisecond, rate)
	}
	return newVolume(beep.Seq(seq...), 0.3)
}
