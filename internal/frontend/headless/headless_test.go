package headless

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRunDrawsGlyph(t *testing.T) {
	// clear, V0 = 5, V1 = 10, draw glyph 0 at (V0, V1), loop
	code := []byte{0x00, 0xE0, 0x60, 0x05, 0x61, 0x0A, 0xD0, 0x15, 0x12, 0x08}

	keys := vm.NewKeypad()
	machine := vm.New(log.NewTestLogger(t), keys)
	assert.NoError(t, machine.LoadProgram(code))

	var buf bytes.Buffer
	fe := New(&buf)
	r := runner.New(log.NewTestLogger(t), machine, keys,
		runner.WithFrameLimit(2), runner.WithFramePeriod(0))

	assert.NoError(t, r.Run(context.Background(), fe))
	assert.NoError(t, fe.Flush())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, vm.ScreenHeight+1)

	assert.Equal(t, strings.Repeat(".", vm.ScreenWidth), lines[9])
	assert.Equal(t, ".....####"+strings.Repeat(".", vm.ScreenWidth-9), lines[10])
	assert.Equal(t, ".....#..#"+strings.Repeat(".", vm.ScreenWidth-9), lines[11])
	assert.Equal(t, ".....####"+strings.Repeat(".", vm.ScreenWidth-9), lines[14])
	assert.Equal(t, "frame 2, 14 lit cells, playing", lines[vm.ScreenHeight])
	assert.Equal(t, uint64(2), fe.Last().Number)
}

func TestFlushWithoutFrames(t *testing.T) {
	var buf bytes.Buffer
	fe := New(&buf)

	assert.NoError(t, fe.Flush())
	assert.Contains(t, buf.String(), "frame 0, 0 lit cells")
	assert.Nil(t, fe.Input(vm.NewKeypad()))
}
