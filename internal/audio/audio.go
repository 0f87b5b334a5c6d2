// Package audio implements the beeper that sounds while the sound timer is active.
package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Tone parameters of the beeper.
const (
	SampleRate beep.SampleRate = 44100
	Frequency                  = 440.0
	Volume                     = 0.25

	bufferDuration = time.Second / 30
)

// Beeper plays a square wave tone on the default audio device.
// Start and Stop are expected to be called from one goroutine.
type Beeper struct {
	ctrl    *beep.Ctrl
	playing bool
}

// New initializes the speaker and returns a beeper that is initially silent.
func New() (*Beeper, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(bufferDuration)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	b := &Beeper{
		ctrl: &beep.Ctrl{
			Streamer: SquareWave(SampleRate, Frequency, Volume),
			Paused:   true,
		},
	}
	speaker.Play(b.ctrl)
	return b, nil
}

// Start sounds the tone.
func (b *Beeper) Start() {
	b.setPaused(false)
}

// Stop silences the tone.
func (b *Beeper) Stop() {
	b.setPaused(true)
}

// Playing returns whether the tone is currently sounding.
func (b *Beeper) Playing() bool {
	return b.playing
}

// Close stops the tone and removes it from the speaker.
func (b *Beeper) Close() {
	b.Stop()
	speaker.Clear()
}

func (b *Beeper) setPaused(paused bool) {
	if b.playing == !paused {
		return
	}

	speaker.Lock()
	b.ctrl.Paused = paused
	speaker.Unlock()
	b.playing = !paused
}

// SquareWave returns an endless mono square wave streamer. The first half of every
// period is at +volume, the second half at -volume.
func SquareWave(sampleRate beep.SampleRate, frequency, volume float64) beep.Streamer {
	phaseStep := frequency / float64(sampleRate)
	var phase float64

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			value := -volume
			if phase <= 0.5 {
				value = volume
			}
			samples[i][0] = value
			samples[i][1] = value

			phase += phaseStep
			if phase >= 1 {
				phase--
			}
		}
		return len(samples), true
	})
}
