package vm

import "fmt"

// 00E0 - CLS: clear the display.
func (v *VM) cls(_ opcode) error {
	v.display = NewDisplay()
	return nil
}

// 00EE - RET: return from a subroutine.
func (v *VM) ret(_ opcode) error {
	depth := len(v.stack)
	if depth == 0 {
		return ErrStackUnderflow
	}

	v.pc = v.stack[depth-1]
	v.stack = v.stack[:depth-1]
	return nil
}

// 1nnn - JP addr.
func (v *VM) jump(op opcode) error {
	v.pc = op.nnn()
	return nil
}

// 2nnn - CALL addr.
func (v *VM) call(op opcode) error {
	if v.stackLimit > 0 && len(v.stack) >= v.stackLimit {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, v.stackLimit)
	}

	v.stack = append(v.stack, v.pc)
	v.pc = op.nnn()
	return nil
}

// 3xnn - SE Vx, byte.
func (v *VM) skipEqualImmediate(op opcode) error {
	v.skipIf(v.v[op.x()] == op.nn())
	return nil
}

// 4xnn - SNE Vx, byte.
func (v *VM) skipNotEqualImmediate(op opcode) error {
	v.skipIf(v.v[op.x()] != op.nn())
	return nil
}

// 5xy0 - SE Vx, Vy.
func (v *VM) skipEqualRegister(op opcode) error {
	v.skipIf(v.v[op.x()] == v.v[op.y()])
	return nil
}

// 6xnn - LD Vx, byte.
func (v *VM) loadImmediate(op opcode) error {
	v.v[op.x()] = op.nn()
	return nil
}

// 7xnn - ADD Vx, byte. The carry flag is not affected.
func (v *VM) addImmediate(op opcode) error {
	v.v[op.x()] += op.nn()
	return nil
}

// 8xy0 - LD Vx, Vy.
func (v *VM) loadRegister(op opcode) error {
	v.v[op.x()] = v.v[op.y()]
	return nil
}

// 8xy1 - OR Vx, Vy.
func (v *VM) or(op opcode) error {
	v.v[op.x()] |= v.v[op.y()]
	v.v[FlagRegister] = 0
	return nil
}

// 8xy2 - AND Vx, Vy.
func (v *VM) and(op opcode) error {
	v.v[op.x()] &= v.v[op.y()]
	v.v[FlagRegister] = 0
	return nil
}

// 8xy3 - XOR Vx, Vy.
func (v *VM) xor(op opcode) error {
	v.v[op.x()] ^= v.v[op.y()]
	v.v[FlagRegister] = 0
	return nil
}

// 8xy4 - ADD Vx, Vy, VF = carry.
func (v *VM) addRegister(op opcode) error {
	sum := uint16(v.v[op.x()]) + uint16(v.v[op.y()])
	v.v[op.x()] = uint8(sum)
	v.v[FlagRegister] = boolToFlag(sum > 0xFF)
	return nil
}

// 8xy5 - SUB Vx, Vy, VF = NOT borrow.
//
// The flag is written before the result for 8xy5, 8xy6, 8xy7 and 8xyE, so with x = F
// the result overwrites the flag. 8xy4 writes the flag last.
func (v *VM) sub(op opcode) error {
	vx, vy := v.v[op.x()], v.v[op.y()]
	v.v[FlagRegister] = boolToFlag(vx > vy)
	v.v[op.x()] = vx - vy
	return nil
}

// 8xy6 - SHR Vx, VF = shifted out bit.
func (v *VM) shiftRight(op opcode) error {
	vx := v.v[op.x()]
	v.v[FlagRegister] = vx & 0x1
	v.v[op.x()] = vx >> 1
	return nil
}

// 8xy7 - SUBN Vx, Vy, VF = NOT borrow.
func (v *VM) subNegated(op opcode) error {
	vx, vy := v.v[op.x()], v.v[op.y()]
	v.v[FlagRegister] = boolToFlag(vy > vx)
	v.v[op.x()] = vy - vx
	return nil
}

// 8xyE - SHL Vx, VF = shifted out bit.
func (v *VM) shiftLeft(op opcode) error {
	vx := v.v[op.x()]
	v.v[FlagRegister] = vx >> 7
	v.v[op.x()] = vx << 1
	return nil
}

// 9xy0 - SNE Vx, Vy.
func (v *VM) skipNotEqualRegister(op opcode) error {
	v.skipIf(v.v[op.x()] != v.v[op.y()])
	return nil
}

// Annn - LD I, addr.
func (v *VM) loadIndex(op opcode) error {
	v.i = op.nnn()
	return nil
}

// Bnnn - JP V0, addr.
func (v *VM) jumpOffset(op opcode) error {
	v.pc = op.nnn() + uint16(v.v[0])
	return nil
}

// Cxnn - RND Vx, byte.
func (v *VM) rnd(op opcode) error {
	v.v[op.x()] = v.random() & op.nn()
	return nil
}

// Dxyn - DRW Vx, Vy, nibble. VF = collision.
func (v *VM) draw(op opcode) error {
	sprite, err := v.memoryRange(v.i, int(op.n()))
	if err != nil {
		return err
	}

	origin := Point{X: int(v.v[op.x()]), Y: int(v.v[op.y()])}
	display, collision := DrawSprite(v.display, sprite, origin)
	v.display = display
	v.v[FlagRegister] = boolToFlag(collision)
	return nil
}

// Ex9E - SKP Vx.
func (v *VM) skipKeyPressed(op opcode) error {
	v.skipIf(v.keys.IsPressed(v.v[op.x()]))
	return nil
}

// ExA1 - SKNP Vx.
func (v *VM) skipKeyNotPressed(op opcode) error {
	v.skipIf(!v.keys.IsPressed(v.v[op.x()]))
	return nil
}

// Fx07 - LD Vx, DT.
func (v *VM) loadDelayTimer(op opcode) error {
	v.v[op.x()] = v.delayTimer
	return nil
}

// Fx0A - LD Vx, K. Without a pressed key the program counter is rewound, the
// instruction executes again on the next step.
func (v *VM) waitKey(op opcode) error {
	key, ok := v.keys.FirstPressed()
	if !ok {
		v.pc -= opcodeSize
		return nil
	}

	v.v[op.x()] = key
	return nil
}

// Fx15 - LD DT, Vx.
func (v *VM) setDelayTimer(op opcode) error {
	v.delayTimer = v.v[op.x()]
	return nil
}

// Fx18 - LD ST, Vx.
func (v *VM) setSoundTimer(op opcode) error {
	v.soundTimer = v.v[op.x()]
	return nil
}

// Fx1E - ADD I, Vx.
func (v *VM) addIndex(op opcode) error {
	v.i += uint16(v.v[op.x()])
	return nil
}

// Fx29 - LD F, Vx.
func (v *VM) loadGlyph(op opcode) error {
	v.i = uint16(v.v[op.x()]) * glyphSize
	return nil
}

// Fx33 - LD B, Vx.
func (v *VM) storeBCD(op opcode) error {
	digits, err := v.memoryRange(v.i, 3)
	if err != nil {
		return err
	}

	vx := v.v[op.x()]
	digits[0] = vx / 100
	digits[1] = vx / 10 % 10
	digits[2] = vx % 10
	return nil
}

// Fx55 - LD [I], Vx.
func (v *VM) storeRegisters(op opcode) error {
	count := int(op.x()) + 1
	mem, err := v.memoryRange(v.i, count)
	if err != nil {
		return err
	}

	copy(mem, v.v[:count])
	return nil
}

// Fx65 - LD Vx, [I].
func (v *VM) loadRegisters(op opcode) error {
	count := int(op.x()) + 1
	mem, err := v.memoryRange(v.i, count)
	if err != nil {
		return err
	}

	copy(v.v[:count], mem)
	return nil
}

// skipIf skips the next instruction if the condition holds.
func (v *VM) skipIf(condition bool) {
	if condition {
		v.pc += opcodeSize
	}
}

// memoryRange returns the memory slice of the given length starting at address.
// Accesses reaching beyond MaxAddress are rejected instead of wrapped.
func (v *VM) memoryRange(address uint16, length int) ([]byte, error) {
	end := int(address) + length
	if end > MemorySize {
		return nil, fmt.Errorf("%w: $%04X-$%04X", ErrAddressOutOfRange, address, end-1)
	}
	return v.memory[address:end], nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
