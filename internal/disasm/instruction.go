package disasm

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Instruction wraps a retrogolib CHIP-8 instruction together with the opcode word
// it was decoded from.
type Instruction struct {
	ins    *chip8.Instruction
	opcode uint16
}

// Decode looks up the opcode in the CHIP-8 opcode table. The returned instruction is
// nil if the opcode is unknown.
func Decode(opcode uint16) Instruction {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return Instruction{ins: op.Instruction, opcode: opcode}
		}
	}
	return Instruction{opcode: opcode}
}

// IsNil returns true if the opcode is unknown.
func (i Instruction) IsNil() bool {
	return i.ins == nil
}

// Name returns the instruction name.
func (i Instruction) Name() string {
	if i.ins == nil {
		return ""
	}
	return i.ins.Name
}

// Opcode returns the opcode word.
func (i Instruction) Opcode() uint16 {
	return i.opcode
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.ins == chip8.CallInst
}

// IsJump returns true if the instruction is a jump.
func (i Instruction) IsJump() bool {
	return i.ins == chip8.JpInst
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.ins == chip8.RetInst
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	if i.ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(i.ins.Name)
}

// Target returns the absolute destination of jumps and calls. Register relative
// jumps (Bnnn) have no static destination.
func (i Instruction) Target() (uint16, bool) {
	switch {
	case i.IsCall(), i.IsJump() && i.opcode&0xF000 == 0x1000:
		return i.opcode & 0x0FFF, true
	default:
		return 0, false
	}
}
