// Package loader handles program file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program file named by the options.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	program, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading program %s: %w", opts.Input, err)
	}
	return program, nil
}

// LoadReader reads a raw program image. Programs that do not fit into the
// memory above the program start address are rejected.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized programs without
	// reading arbitrary large files completely
	program, err := io.ReadAll(io.LimitReader(reader, vm.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(program) > vm.MaxProgramSize {
		return nil, fmt.Errorf("%w: exceeds %d bytes", vm.ErrProgramTooLarge, vm.MaxProgramSize)
	}
	return program, nil
}
