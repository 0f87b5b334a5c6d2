package term

import (
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func keyEvent(ch rune) termbox.Event {
	return termbox.Event{Type: termbox.EventKey, Ch: ch}
}

func TestInputCommands(t *testing.T) {
	tests := []struct {
		name  string
		event termbox.Event
		want  keymap.Command
	}{
		{"escape quits", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, keymap.Quit},
		{"ctrl c quits", termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}, keymap.Quit},
		{"input error quits", termbox.Event{Type: termbox.EventError}, keymap.Quit},
		{"space pauses", termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, keymap.TogglePause},
		{"m mutes", keyEvent('m'), keymap.ToggleMute},
		{"bracket cycles speed", keyEvent(']'), keymap.CycleSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFrontend()
			keys := vm.NewKeypad()
			f.events <- tt.event

			commands := f.Input(keys)
			assert.Equal(t, []keymap.Command{tt.want}, commands)
			assert.Equal(t, 0, len(keys.Pressed()))
		})
	}
}

func TestInputIgnoresUnmappedEvents(t *testing.T) {
	f := newFrontend()
	keys := vm.NewKeypad()
	f.events <- keyEvent('p')
	f.events <- termbox.Event{Type: termbox.EventResize, Width: 80, Height: 40}

	assert.Equal(t, 0, len(f.Input(keys)))
	assert.Equal(t, 0, len(keys.Pressed()))
}

func TestInputHoldsKeys(t *testing.T) {
	f := newFrontend()
	keys := vm.NewKeypad()

	f.events <- keyEvent('w')
	f.events <- keyEvent('X')
	f.Input(keys)
	assert.True(t, keys.IsPressed(0x5))
	assert.True(t, keys.IsPressed(0x0))

	first, ok := keys.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x5), first)

	for range HoldFrames - 2 {
		f.Input(keys)
	}
	f.events <- keyEvent('x') // key repeat keeps the key held
	f.Input(keys)
	assert.True(t, keys.IsPressed(0x5))

	f.Input(keys)
	assert.False(t, keys.IsPressed(0x5))
	assert.True(t, keys.IsPressed(0x0))

	for range HoldFrames {
		f.Input(keys)
	}
	assert.False(t, keys.IsPressed(0x0))
}

func TestStatusLine(t *testing.T) {
	status := string(statusLine(runner.Frame{State: vm.Paused, Speed: 2, Muted: true, Sound: true}))
	assert.Contains(t, status, "paused  speed x2  muted")
	assert.False(t, len(status) == 0)

	status = string(statusLine(runner.Frame{State: vm.Playing, Speed: 1, Sound: true}))
	assert.Contains(t, status, "playing  speed x1  beep")
}
