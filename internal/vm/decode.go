package vm

// opcode is a 16-bit instruction word.
//
// Operand fields:
//
//	x   = bits 8-11, register index
//	y   = bits 4-7, register index
//	n   = bits 0-3
//	nn  = bits 0-7
//	nnn = bits 0-11, address
type opcode uint16

func (o opcode) family() uint8 {
	return uint8(o >> 12)
}

func (o opcode) x() uint8 {
	return uint8(o>>8) & 0xF
}

func (o opcode) y() uint8 {
	return uint8(o>>4) & 0xF
}

func (o opcode) n() uint8 {
	return uint8(o) & 0xF
}

func (o opcode) nn() uint8 {
	return uint8(o)
}

func (o opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}

// handler executes a decoded instruction. The program counter already points to the
// next instruction when a handler is called.
type handler func(v *VM, op opcode) error

// family decodes all opcodes sharing the same top nibble. Families with a single
// instruction set only handler, others select the handler from handlers by the
// subcode extracted by subcode.
type family struct {
	handler  handler
	subcode  func(op opcode) uint8
	handlers map[uint8]handler
}

func lowNibble(op opcode) uint8 { return op.n() }
func lowByte(op opcode) uint8   { return op.nn() }

var families = [16]family{
	0x0: {
		subcode: lowByte,
		handlers: map[uint8]handler{
			0xE0: (*VM).cls,
			0xEE: (*VM).ret,
		},
	},
	0x1: {handler: (*VM).jump},
	0x2: {handler: (*VM).call},
	0x3: {handler: (*VM).skipEqualImmediate},
	0x4: {handler: (*VM).skipNotEqualImmediate},
	0x5: {
		subcode: lowNibble,
		handlers: map[uint8]handler{
			0x0: (*VM).skipEqualRegister,
		},
	},
	0x6: {handler: (*VM).loadImmediate},
	0x7: {handler: (*VM).addImmediate},
	0x8: {
		subcode: lowNibble,
		handlers: map[uint8]handler{
			0x0: (*VM).loadRegister,
			0x1: (*VM).or,
			0x2: (*VM).and,
			0x3: (*VM).xor,
			0x4: (*VM).addRegister,
			0x5: (*VM).sub,
			0x6: (*VM).shiftRight,
			0x7: (*VM).subNegated,
			0xE: (*VM).shiftLeft,
		},
	},
	0x9: {
		subcode: lowNibble,
		handlers: map[uint8]handler{
			0x0: (*VM).skipNotEqualRegister,
		},
	},
	0xA: {handler: (*VM).loadIndex},
	0xB: {handler: (*VM).jumpOffset},
	0xC: {handler: (*VM).rnd},
	0xD: {handler: (*VM).draw},
	0xE: {
		subcode: lowByte,
		handlers: map[uint8]handler{
			0x9E: (*VM).skipKeyPressed,
			0xA1: (*VM).skipKeyNotPressed,
		},
	},
	0xF: {
		subcode: lowByte,
		handlers: map[uint8]handler{
			0x07: (*VM).loadDelayTimer,
			0x0A: (*VM).waitKey,
			0x15: (*VM).setDelayTimer,
			0x18: (*VM).setSoundTimer,
			0x1E: (*VM).addIndex,
			0x29: (*VM).loadGlyph,
			0x33: (*VM).storeBCD,
			0x55: (*VM).storeRegisters,
			0x65: (*VM).loadRegisters,
		},
	},
}

// decode returns the handler of the opcode and whether the opcode is known.
func decode(op opcode) (handler, bool) {
	f := families[op.family()]
	if f.subcode == nil {
		return f.handler, f.handler != nil
	}

	h, ok := f.handlers[f.subcode(op)]
	return h, ok
}
