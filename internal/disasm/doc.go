// Package disasm formats CHIP-8 opcodes as assembly mnemonics.
//
// Opcodes are identified through the retrogolib CHIP-8 opcode table and printed with
// their operands in the usual Cowgod notation:
//
//	00E0 -> cls
//	6A05 -> ld VA, $05
//	D015 -> drw V0, V1, $5
//	F133 -> ld B, V1
//
// Unknown words are printed as data. Listing writes a full program listing with
// labels for all jump and call destinations.
package disasm
