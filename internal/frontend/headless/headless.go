// Package headless implements a frontend without a display device. It keeps the
// last rendered frame and prints it as text when the run ends.
package headless

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Cell characters of the text output.
const (
	LitCell   = '#'
	UnlitCell = '.'
)

// Frontend records rendered frames.
type Frontend struct {
	writer io.Writer
	last   runner.Frame
}

// New returns a headless frontend that prints to the writer.
func New(writer io.Writer) *Frontend {
	return &Frontend{
		writer: writer,
	}
}

// Input reports no input, the program runs without key presses.
func (f *Frontend) Input(_ *vm.Keypad) []keymap.Command {
	return nil
}

// Render stores the frame.
func (f *Frontend) Render(frame runner.Frame) error {
	f.last = frame
	return nil
}

// Last returns the last rendered frame.
func (f *Frontend) Last() runner.Frame {
	return f.last
}

// Flush prints the screen of the last rendered frame followed by a status line.
func (f *Frontend) Flush() error {
	buf := bufio.NewWriter(f.writer)
	if err := WriteGrid(buf, frontend.NewGrid(f.last.Display)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(buf, "frame %d, %d lit cells, %s\n",
		f.last.Number, f.last.Display.Size(), f.last.State); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// WriteGrid writes the screen as text, one line per row.
func WriteGrid(w io.Writer, grid *frontend.Grid) error {
	line := make([]byte, 0, vm.ScreenWidth+1)
	for y := range vm.ScreenHeight {
		line = line[:0]
		for x := range vm.ScreenWidth {
			if grid.Lit(x, y) {
				line = append(line, LitCell)
			} else {
				line = append(line, UnlitCell)
			}
		}
		line = append(line, '\n')

		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("writing screen row %d: %w", y, err)
		}
	}
	return nil
}
