// Package keymap maps host keyboard keys to CHIP-8 keypad keys and host commands.
//
// The 4x4 CHIP-8 keypad is laid onto the left block of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
package keymap

import (
	"fmt"
	"unicode"
)

// Command is a host command that is not forwarded to the program.
type Command int

// Host commands.
const (
	None Command = iota
	TogglePause
	ToggleMute
	CycleSpeed
	Quit
)

func (c Command) String() string {
	switch c {
	case None:
		return "none"
	case TogglePause:
		return "toggle pause"
	case ToggleMute:
		return "toggle mute"
	case CycleSpeed:
		return "cycle speed"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Layout lists the host keys row by row in CHIP-8 keypad order of the mapping.
var Layout = [4]string{"1234", "qwer", "asdf", "zxcv"}

var keypad = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

var commands = map[rune]Command{
	' ': TogglePause,
	'm': ToggleMute,
	']': CycleSpeed,
}

// Key returns the CHIP-8 key for a host key character. Letters match case-insensitively.
func Key(r rune) (uint8, bool) {
	key, ok := keypad[unicode.ToLower(r)]
	return key, ok
}

// Lookup returns the host command bound to a host key character.
func Lookup(r rune) (Command, bool) {
	cmd, ok := commands[unicode.ToLower(r)]
	return cmd, ok
}

// Runes returns all host key characters mapped to CHIP-8 keys, in layout order.
func Runes() []rune {
	runes := make([]rune, 0, len(keypad))
	for _, row := range Layout {
		runes = append(runes, []rune(row)...)
	}
	return runes
}
