package vm

import (
	"fmt"
	"strings"
)

// Snapshot is a copy of the register file and timers, used for diagnostics.
type Snapshot struct {
	PC         uint16
	I          uint16
	V          [RegisterCount]uint8
	DelayTimer uint8
	SoundTimer uint8
	StackDepth int
	State      State
}

// Snapshot returns a copy of the current register file and timers.
func (v *VM) Snapshot() Snapshot {
	return Snapshot{
		PC:         v.pc,
		I:          v.i,
		V:          v.v,
		DelayTimer: v.delayTimer,
		SoundTimer: v.soundTimer,
		StackDepth: len(v.stack),
		State:      v.state,
	}
}

func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC=$%04X I=$%04X DT=$%02X ST=$%02X SP=%d %s\n",
		s.PC, s.I, s.DelayTimer, s.SoundTimer, s.StackDepth, s.State)
	for x, value := range s.V {
		if x > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "V%X=$%02X", x, value)
	}
	return b.String()
}
