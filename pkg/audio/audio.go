// Package audio mixes the game's sound effects into a single beep stream.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Output receives sound effects. The zero value is not usable; use
// NewOutput or Disabled.
type Output struct {
	rate    beep.SampleRate
	mixer   *beep.Mixer
	lock    func()
	unlock  func()
	enabled bool
}

// NewOutput creates an enabled output at the given sample rate. lock and
// unlock guard the mixer against the playback goroutine; pass nil when
// nothing reads the mixer concurrently.
func NewOutput(rate beep.SampleRate, lock, unlock func()) *Output {
	if lock == nil || unlock == nil {
		lock, unlock = func() {}, func() {}
	}
	return &Output{
		rate:    rate,
		mixer:   &beep.Mixer{},
		lock:    lock,
		unlock:  unlock,
		enabled: true,
	}
}

// Disabled returns an output that drops every sound.
func Disabled() *Output {
	o := NewOutput(beep.SampleRate(44100), nil, nil)
	o.enabled = false
	return o
}

// SampleRate returns the output sample rate.
func (o *Output) SampleRate() beep.SampleRate {
	return o.rate
}

// Mixer returns the stream to hand to the speaker.
func (o *Output) Mixer() beep.Streamer {
	return o.mixer
}

// Enabled reports whether sounds are mixed.
func (o *Output) Enabled() bool {
	return o.enabled
}

// Play adds s to the mix.
func (o *Output) Play(s beep.Streamer) {
	if !o.enabled || s == nil {
		return
	}
	o.lock()
	o.mixer.Add(s)
	o.unlock()
}

// Playing returns the number of sounds still in the mix.
func (o *Output) Playing() int {
	o.lock()
	defer o.unlock()
	return o.mixer.Len()
}

// LaserZap returns a short square-wave chirp falling from 1760 Hz to 440 Hz.
func LaserZap(rate beep.SampleRate) beep.Streamer {
	return newSweep(rate, 1760, 440, 120*time.Millisecond, 0.25)
}

// sweep is a square oscillator whose frequency slides exponentially.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	volume   float64
	total    int
	pos      int
	phase    float64
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration, volume float64) *sweep {
	return &sweep{
		rate:   rate,
		from:   from,
		to:     to,
		volume: volume,
		total:  rate.N(d),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from * math.Pow(s.to/s.from, progress)

		val := s.volume
		if s.phase >= 0.5 {
			val = -val
		}
		// Linear fade out avoids a click at the end.
		val *= 1 - progress

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
