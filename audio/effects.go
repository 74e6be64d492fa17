package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator produces a fixed-length wave whose frequency may glide
// linearly from freq to endFreq.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a constant-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
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

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and an exponential or
// linear release.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	releaseStart  int
	totalSamples  int
	decay         float64 // per-second exponential decay; 0 means linear release
	rate          beep.SampleRate
}

// NewEnvelope wraps s with a linear attack and linear release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	return &envelope{
		streamer:      s,
		attackSamples: att,
		releaseStart:  max(total-rate.N(release), att),
		totalSamples:  total,
		rate:          rate,
	}
}

// NewDecay wraps s with an exponential decay of rate k per second.
func NewDecay(s beep.Streamer, duration time.Duration, k float64, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &envelope{
		streamer:     s,
		releaseStart: total,
		totalSamples: total,
		decay:        k,
		rate:         rate,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= e.releaseStart && e.totalSamples > e.releaseStart {
			vol = float64(e.totalSamples-e.position) / float64(e.totalSamples-e.releaseStart)
		}
		if e.decay > 0 {
			vol *= math.Exp(-e.decay * float64(e.position) / float64(e.rate))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s by the linear factor vol; vol <= 0 silences it.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound identifies a game sound effect.
type Sound int

const (
	SoundFire Sound = iota
	SoundExplosion
	SoundMarch
	SoundWin
	SoundLose
)

func (s Sound) String() string {
	switch s {
	case SoundFire:
		return "fire"
	case SoundExplosion:
		return "explosion"
	case SoundMarch:
		return "march"
	case SoundWin:
		return "win"
	case SoundLose:
		return "lose"
	default:
		return "unknown"
	}
}

// Durations of each effect.
const (
	fireDuration      = 90 * time.Millisecond
	explosionDuration = 350 * time.Millisecond
	marchDuration     = 120 * time.Millisecond
	winNoteDuration   = 120 * time.Millisecond
	loseDuration      = 900 * time.Millisecond
)

// marchNotes cycle on every shift, low and ominous.
var marchNotes = [4]float64{98.0, 87.31, 77.78, 73.42}

// winNotes form a rising C major arpeggio.
var winNotes = [4]float64{523.25, 659.25, 783.99, 1046.50}

// NewFireSound is a short downward square blip.
func NewFireSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(1200, 400, fireDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, fireDuration, 5*time.Millisecond, 40*time.Millisecond, rate), 0.15)
}

// NewExplosionSound is decaying noise over a low rumble.
func NewExplosionSound(rate beep.SampleRate) beep.Streamer {
	noise := newVolume(NewOscillator(0, explosionDuration, WaveNoise, rate), 0.6)
	rumble := newVolume(NewSweep(90, 40, explosionDuration, WaveSine, rate), 0.4)
	return newVolume(NewDecay(beep.Mix(noise, rumble), explosionDuration, 9, rate), 0.35)
}

// NewMarchSound is one step of the four-note march.
func NewMarchSound(step int, rate beep.SampleRate) beep.Streamer {
	freq := marchNotes[((step%len(marchNotes))+len(marchNotes))%len(marchNotes)]
	osc := NewOscillator(freq, marchDuration, WaveSquare, rate)
	return newVolume(NewEnvelope(osc, marchDuration, 5*time.Millisecond, 60*time.Millisecond, rate), 0.2)
}

// NewWinSound is a rising arpeggio.
func NewWinSound(rate beep.SampleRate) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(winNotes))
	for _, f := range winNotes {
		osc := NewOscillator(f, winNoteDuration, WaveSquare, rate)
		notes = append(notes, NewEnvelope(osc, winNoteDuration, 5*time.Millisecond, 50*time.Millisecond, rate))
	}
	return newVolume(beep.Seq(notes...), 0.15)
}

// NewLoseSound is a long falling saw tone.
func NewLoseSound(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(440, 55, loseDuration, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, loseDuration, 10*time.Millisecond, 300*time.Millisecond, rate), 0.2)
}

// NewSound builds the streamer for s. step only matters for SoundMarch.
func NewSound(s Sound, step int, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundFire:
		return NewFireSound(rate)
	case SoundExplosion:
		return NewExplosionSound(rate)
	case SoundMarch:
		return NewMarchSound(step, rate)
	case SoundWin:
		return NewWinSound(rate)
	case SoundLose:
		return NewLoseSound(rate)
	default:
		return nil
	}
}
