package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned when a program does not fit into program memory.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrStackUnderflow is returned when returning from a subroutine with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrStackOverflow is returned when a call exceeds the configured stack limit.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrAddressOutOfRange is returned when an instruction accesses memory beyond MaxAddress.
	ErrAddressOutOfRange = errors.New("address out of range")
)

// Fault is a fatal execution error of a single instruction.
type Fault struct {
	Address uint16 // address of the faulting instruction
	Opcode  uint16 // faulting opcode, 0 if the fetch itself failed
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at $%04X (opcode $%04X): %s", f.Address, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
