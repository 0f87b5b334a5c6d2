// Package term implements a terminal frontend based on termbox.
//
// Terminals only report key presses, a mapped CHIP-8 key is therefore held down
// until a fixed number of frames passed without the host key repeating.
package term

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
)

// HoldFrames is the number of frames a key stays pressed after its last key event.
const HoldFrames = 6

const (
	cellWidth   = 2 // terminal cells per pixel, keeps the aspect ratio close to square
	eventBuffer = 64
)

// Frontend renders to and reads keys from the terminal.
type Frontend struct {
	events chan termbox.Event
	frame  uint64
	held   map[uint8]uint64 // key to frame of its last press
}

// New initializes the terminal. Close has to be called to restore it.
func New() (*Frontend, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	f := newFrontend()
	go f.poll()
	return f, nil
}

func newFrontend() *Frontend {
	return &Frontend{
		events: make(chan termbox.Event, eventBuffer),
		held:   make(map[uint8]uint64, vm.KeyCount),
	}
}

// Close restores the terminal. The event polling goroutine ends with the
// interrupt that Close triggers.
func (f *Frontend) Close() {
	termbox.Interrupt()
	termbox.Close()
}

func (f *Frontend) poll() {
	for {
		ev := termbox.PollEvent()
		if ev.Type == termbox.EventInterrupt {
			return
		}

		select {
		case f.events <- ev:
		default: // drop events while the runner is not consuming them
		}
	}
}

// Input applies the key events queued since the last frame.
func (f *Frontend) Input(keys *vm.Keypad) []keymap.Command {
	f.frame++

	var commands []keymap.Command
	for {
		select {
		case ev := <-f.events:
			if cmd := f.handleEvent(ev, keys); cmd != keymap.None {
				commands = append(commands, cmd)
			}
		default:
			f.releaseExpired(keys)
			return commands
		}
	}
}

// handleEvent presses the CHIP-8 key mapped to a key event or returns the
// host command bound to it.
func (f *Frontend) handleEvent(ev termbox.Event, keys *vm.Keypad) keymap.Command {
	switch ev.Type {
	case termbox.EventKey:
	case termbox.EventError:
		return keymap.Quit
	default:
		return keymap.None
	}

	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return keymap.Quit
	case termbox.KeySpace:
		return keymap.TogglePause
	}

	if cmd, ok := keymap.Lookup(ev.Ch); ok {
		return cmd
	}
	if key, ok := keymap.Key(ev.Ch); ok {
		keys.Press(key)
		f.held[key] = f.frame
	}
	return keymap.None
}

// releaseExpired releases all keys that were not pressed again within HoldFrames.
func (f *Frontend) releaseExpired(keys *vm.Keypad) {
	for key, pressed := range f.held {
		if f.frame-pressed >= HoldFrames {
			keys.Release(key)
			delete(f.held, key)
		}
	}
}

// Render draws the screen and a status line below it.
func (f *Frontend) Render(frame runner.Frame) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}

	grid := frontend.NewGrid(frame.Display)
	for y := range vm.ScreenHeight {
		for x := range vm.ScreenWidth {
			if !grid.Lit(x, y) {
				continue
			}
			for i := range cellWidth {
				termbox.SetCell(x*cellWidth+i, y, ' ', termbox.ColorDefault, termbox.ColorWhite)
			}
		}
	}

	for i, ch := range statusLine(frame) {
		termbox.SetCell(i, vm.ScreenHeight, ch, termbox.ColorDefault, termbox.ColorDefault)
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

func statusLine(frame runner.Frame) []rune {
	status := fmt.Sprintf("%s  speed x%d", frame.State, frame.Speed)
	if frame.Muted {
		status += "  muted"
	}
	if frame.Sound && !frame.Muted {
		status += "  beep"
	}
	status += "  [space] pause  [m] mute  []] speed  [esc] quit"
	return []rune(status)
}
