package vm

import "slices"

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// KeyState is the key-press latch read by the key instructions.
type KeyState interface {
	// IsPressed returns whether the key is currently pressed.
	IsPressed(key uint8) bool
	// FirstPressed returns the earliest pressed key that is still held down.
	FirstPressed() (uint8, bool)
}

// Compile-time check to ensure Keypad implements KeyState.
var _ KeyState = (*Keypad)(nil)

// Keypad is a KeyState that remembers the order keys were pressed in.
type Keypad struct {
	pressed []uint8
}

// NewKeypad returns a keypad with no keys pressed.
func NewKeypad() *Keypad {
	return &Keypad{
		pressed: make([]uint8, 0, KeyCount),
	}
}

// Press marks the key as pressed. Keys outside of 0x0-0xF are ignored.
func (k *Keypad) Press(key uint8) {
	if key >= KeyCount || k.IsPressed(key) {
		return
	}
	k.pressed = append(k.pressed, key)
}

// Release marks the key as released.
func (k *Keypad) Release(key uint8) {
	k.pressed = slices.DeleteFunc(k.pressed, func(pressed uint8) bool {
		return pressed == key
	})
}

// ReleaseAll releases all keys.
func (k *Keypad) ReleaseAll() {
	k.pressed = k.pressed[:0]
}

// IsPressed returns whether the key is currently pressed.
func (k *Keypad) IsPressed(key uint8) bool {
	return slices.Contains(k.pressed, key)
}

// FirstPressed returns the earliest pressed key that is still held down.
func (k *Keypad) FirstPressed() (uint8, bool) {
	if len(k.pressed) == 0 {
		return 0, false
	}
	return k.pressed[0], true
}

// Pressed returns the pressed keys in press order.
func (k *Keypad) Pressed() []uint8 {
	return slices.Clone(k.pressed)
}
