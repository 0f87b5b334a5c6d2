// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine Overview
//
// The VM owns all interpreter state:
//   - 4KB of memory, font glyphs at 0x000-0x04F, programs from ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as carry/borrow/collision flag
//   - a 16-bit index register I and program counter PC
//   - a call stack of return addresses
//   - delay and sound timers ticking once per frame
//   - a display buffer holding the set of lit cells of the 64x32 grid
//
// The key-press latch is not owned by the VM. A host passes a KeyState to New and
// mutates it between cycles, usually through a Keypad.
//
// # Execution
//
// Step fetches, decodes and executes a single instruction. Cycle executes
// InstructionsPerFrame steps and ticks both timers once. A host calls Cycle once per
// rendered frame, then reads Display and SoundTimer.
//
// Instructions are decoded through a two level table: the top nibble selects the
// family, families 0, 5, 8, 9, E and F select the handler by their low nibble or
// low byte. Unknown opcodes are skipped.
//
// Fx0A (wait for key) never blocks. When no key is pressed the program counter is
// rewound so the same instruction executes again on the next step.
//
// # Faults
//
// Returning from an empty stack, exceeding a configured stack limit and accessing
// memory beyond 0xFFF through I or PC abort the step with a *Fault that wraps one of
// ErrStackUnderflow, ErrStackOverflow or ErrAddressOutOfRange.
//
// # Usage Example
//
//	keys := vm.NewKeypad()
//	machine := vm.New(logger, keys)
//	if err := machine.LoadProgram(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := machine.Cycle(); err != nil {
//			return err
//		}
//		render(machine.Display())
//	}
package vm
