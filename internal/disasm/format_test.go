package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, chip8.ClsName},
		{0x00EE, chip8.RetName},
		{0x1234, chip8.JpName + " $234"},
		{0xB234, chip8.JpName + " V0, $234"},
		{0x2345, chip8.CallName + " $345"},
		{0x3A42, chip8.SeName + " VA, $42"},
		{0x5AB0, chip8.SeName + " VA, VB"},
		{0x6A05, chip8.LdName + " VA, $05"},
		{0x7A05, chip8.AddName + " VA, $05"},
		{0x8AB0, chip8.LdName + " VA, VB"},
		{0x8AB1, chip8.OrName + " VA, VB"},
		{0x8AB4, chip8.AddName + " VA, VB"},
		{0x8AB5, chip8.SubName + " VA, VB"},
		{0x8AB6, chip8.ShrName + " VA"},
		{0xA123, chip8.LdName + " I, $123"},
		{0xC30F, chip8.RndName + " V3, $0F"},
		{0xD015, chip8.DrwName + " V0, V1, $5"},
		{0xE19E, chip8.SkpName + " V1"},
		{0xF107, chip8.LdName + " V1, DT"},
		{0xF10A, chip8.LdName + " V1, K"},
		{0xF11E, chip8.AddName + " I, V1"},
		{0xF133, chip8.LdName + " B, V1"},
		{0xF155, chip8.LdName + " [I], V1"},
		{0xF165, chip8.LdName + " V1, [I]"},
		{0xFAFF, ".word $FAFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.opcode))
		})
	}
}

func TestListing(t *testing.T) {
	// 0x200: CALL 0x206, 0x202: JP 0x202, 0x204: data, 0x206: RET, 0x208: odd byte
	program := []byte{0x22, 0x06, 0x12, 0x02, 0xFA, 0xFF, 0x00, 0xEE, 0x42}

	var buf bytes.Buffer
	err := Listing(&buf, program, 0x200, Options{HexComments: true, OffsetComments: true})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, "L202:", lines[1])
	assert.Equal(t, "L206:", lines[4])
	assert.Contains(t, lines[0], chip8.CallName+" $206")
	assert.Contains(t, lines[0], "$0200 22 06")
	assert.Contains(t, lines[3], ".word $FAFF")
	assert.Contains(t, lines[6], ".byte $42")

	assert.Equal(t, []uint16{0x202, 0x206}, Labels(program, 0x200))
}

func TestListingWithoutComments(t *testing.T) {
	var buf bytes.Buffer
	err := Listing(&buf, []byte{0x00, 0xE0}, 0x200, Options{})
	assert.NoError(t, err)
	assert.Equal(t, "  "+chip8.ClsName+"\n", buf.String())
}

func TestLabels(t *testing.T) {
	// 0x200: JP 0x206, 0x202: CALL 0x200, 0x204: JP 0x206, 0x206: JP 0x300 (outside)
	program := []byte{0x12, 0x06, 0x22, 0x00, 0x12, 0x06, 0x13, 0x00}

	assert.Equal(t, []uint16{0x200, 0x206}, Labels(program, 0x200))
	assert.Empty(t, Labels([]byte{0x00, 0xE0}, 0x200))
}
