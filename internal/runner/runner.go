// Package runner drives a VM in real time: it polls host input, runs the frame
// cycles, presents the display and controls the beeper once per frame.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the number of frames per second, the timers tick once per frame.
const FrameRate = 60

// FramePeriod is the duration of a single frame.
const FramePeriod = time.Second / FrameRate

// Host is a frontend that feeds input to and presents the output of the VM.
type Host interface {
	// Input applies the host input received since the last frame to the keypad
	// and returns the host commands issued.
	Input(keys *vm.Keypad) []keymap.Command
	// Render presents a frame.
	Render(frame Frame) error
}

// Tone is the audio output that sounds while the sound timer is active.
type Tone interface {
	Start()
	Stop()
}

// Frame is the host visible result of a frame.
type Frame struct {
	Number  uint64
	Display vm.Display
	State   vm.State
	Speed   int
	Muted   bool
	Sound   bool // sound timer is active
}

// Runner executes a VM frame by frame.
type Runner struct {
	logger  *log.Logger
	machine *vm.VM
	keys    *vm.Keypad
	tone    Tone

	mu          sync.Mutex // guards the VM, the keypad and the fields below
	speed       int
	muted       bool
	frames      uint64
	frameLimit  uint64
	framePeriod time.Duration
}

// Option configures optional runner behavior.
type Option func(*Runner)

// WithSpeed sets the initial speed multiplier, the number of VM cycles per frame.
func WithSpeed(speed int) Option {
	return func(r *Runner) {
		r.speed = max(options.MinSpeed, min(speed, options.MaxSpeed))
	}
}

// WithFrameLimit stops the runner after the given number of frames, 0 runs until quit.
func WithFrameLimit(frames int) Option {
	return func(r *Runner) {
		r.frameLimit = uint64(max(frames, 0))
	}
}

// WithMuted sets the initial mute state.
func WithMuted(muted bool) Option {
	return func(r *Runner) {
		r.muted = muted
	}
}

// WithTone sets the audio output.
func WithTone(tone Tone) Option {
	return func(r *Runner) {
		r.tone = tone
	}
}

// WithFramePeriod overrides the frame pacing of Run, 0 runs frames without delay.
func WithFramePeriod(period time.Duration) Option {
	return func(r *Runner) {
		r.framePeriod = period
	}
}

// New returns a runner for the VM. The keypad has to be the key state the VM reads.
func New(logger *log.Logger, machine *vm.VM, keys *vm.Keypad, opts ...Option) *Runner {
	r := &Runner{
		logger:      logger,
		machine:     machine,
		keys:        keys,
		tone:        silence{},
		speed:       options.MinSpeed,
		framePeriod: FramePeriod,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes frames paced by the frame period until the context is cancelled,
// the host requests to quit, the frame limit is reached or the VM faults.
func (r *Runner) Run(ctx context.Context, host Host) error {
	defer r.tone.Stop()

	var tick <-chan time.Time
	if r.framePeriod > 0 {
		ticker := time.NewTicker(r.framePeriod)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("running: %w", ctx.Err())
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return fmt.Errorf("running: %w", err)
		}

		running, err := r.Frame(host)
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
}

// Frame executes a single frame and returns whether the runner should continue.
func (r *Runner) Frame(host Host) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cmd := range host.Input(r.keys) {
		if !r.apply(cmd) {
			r.logger.Debug("Quit requested", log.Int("frame", int(r.frames)))
			return false, nil
		}
	}

	for range r.speed {
		if err := r.machine.Cycle(); err != nil {
			r.logger.Error("Execution fault",
				log.Err(err),
				log.Int("frame", int(r.frames)),
				log.String("state", r.machine.Snapshot().String()))
			r.tone.Stop()
			return false, fmt.Errorf("running frame %d: %w", r.frames, err)
		}
	}

	sound := r.machine.SoundTimer() > 0
	if sound && !r.muted {
		r.tone.Start()
	} else {
		r.tone.Stop()
	}

	r.frames++
	if err := host.Render(r.frame(sound)); err != nil {
		return false, fmt.Errorf("rendering frame %d: %w", r.frames, err)
	}

	if r.frameLimit > 0 && r.frames >= r.frameLimit {
		return false, nil
	}
	return true, nil
}

// Frames returns the number of executed frames.
func (r *Runner) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Speed returns the current speed multiplier.
func (r *Runner) Speed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speed
}

// Muted returns whether the sound is muted.
func (r *Runner) Muted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.muted
}

// apply executes a host command and returns false if the runner should stop.
func (r *Runner) apply(cmd keymap.Command) bool {
	switch cmd {
	case keymap.Quit:
		return false

	case keymap.TogglePause:
		r.machine.TogglePause()

	case keymap.ToggleMute:
		r.muted = !r.muted
		if r.muted {
			r.logger.Info("Sound muted")
		} else {
			r.logger.Info("Sound unmuted")
		}

	case keymap.CycleSpeed:
		r.speed = r.speed%options.MaxSpeed + 1
		r.logger.Info("Speed", log.Int("multiplier", r.speed))

	case keymap.None:
	}
	return true
}

func (r *Runner) frame(sound bool) Frame {
	return Frame{
		Number:  r.frames,
		Display: r.machine.Display(),
		State:   r.machine.State(),
		Speed:   r.speed,
		Muted:   r.muted,
		Sound:   sound,
	}
}

// silence is the tone used when no audio output is configured.
type silence struct{}

func (silence) Start() {}
func (silence) Stop()  {}
