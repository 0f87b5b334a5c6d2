package vm

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 machine constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Font glyphs (16 glyphs of 5 bytes)
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xFFF: Program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// ProgramStart is the address programs are loaded to and start executing at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of VF.
	FlagRegister = 0xF

	// ScreenWidth and ScreenHeight define the logical display grid.
	ScreenWidth  = 64
	ScreenHeight = 32

	// InstructionsPerFrame is the number of instructions Cycle executes before ticking
	// the timers. At 60 frames per second this approximates the speed of the first
	// CHIP-8 interpreters.
	InstructionsPerFrame = 10

	// opcodeSize is the size of an instruction in bytes.
	opcodeSize = 2
)

// State is the execution state of the VM.
type State int

// Execution states.
const (
	Playing State = iota
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// VM is the CHIP-8 virtual machine. It is not safe for concurrent use, a host that
// drives it from multiple goroutines has to guard every call with one lock.
type VM struct {
	logger *log.Logger
	keys   KeyState
	random func() uint8

	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16
	stack  []uint16

	delayTimer uint8
	soundTimer uint8

	display Display
	state   State

	stackLimit int
	trace      bool
}

// Option configures optional VM behavior.
type Option func(*VM)

// WithStackLimit limits the call stack depth, a call beyond the limit faults with
// ErrStackOverflow. A limit of 0 leaves the stack unbounded.
func WithStackLimit(limit int) Option {
	return func(v *VM) {
		v.stackLimit = limit
	}
}

// WithRandom sets the random byte source used by Cxnn.
func WithRandom(random func() uint8) Option {
	return func(v *VM) {
		v.random = random
	}
}

// WithTrace enables debug logging of every executed instruction.
func WithTrace(trace bool) Option {
	return func(v *VM) {
		v.trace = trace
	}
}

// New returns an initialized VM with the font loaded. The keys are read by the key
// instructions and are expected to be mutated by the host between cycles.
func New(logger *log.Logger, keys KeyState, options ...Option) *VM {
	v := &VM{
		logger: logger,
		keys:   keys,
		random: randomByte,
	}
	for _, option := range options {
		option(v)
	}

	v.Reset()
	v.LoadFont(Font)
	return v
}

// Reset zeroes memory, registers, I, stack and timers, empties the display, sets the
// program counter to ProgramStart and the state to Playing. The font and program
// have to be loaded again afterwards.
func (v *VM) Reset() {
	v.memory = [MemorySize]byte{}
	v.v = [RegisterCount]uint8{}
	v.i = 0
	v.pc = ProgramStart
	v.stack = v.stack[:0]
	v.delayTimer = 0
	v.soundTimer = 0
	v.display = NewDisplay()
	v.state = Playing
}

// LoadFont writes the glyph table to the start of memory.
func (v *VM) LoadFont(font [FontSize]byte) {
	copy(v.memory[:FontSize], font[:])
}

// LoadProgram writes the program to memory starting at ProgramStart.
func (v *VM) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	copy(v.memory[ProgramStart:], program)
	return nil
}

// TogglePause flips the execution state between Playing and Paused.
func (v *VM) TogglePause() {
	if v.state == Paused {
		v.state = Playing
	} else {
		v.state = Paused
	}
	v.logger.Debug("Execution state changed", log.Stringer("state", v.state))
}

// Cycle executes one frame worth of instructions and ticks the timers once.
// A fault aborts the frame before the timers are ticked.
func (v *VM) Cycle() error {
	if v.state == Paused {
		return nil
	}

	for range InstructionsPerFrame {
		if err := v.Step(); err != nil {
			return err
		}
	}

	v.tickTimers()
	return nil
}

// Step fetches, decodes and executes a single instruction.
func (v *VM) Step() error {
	if v.state == Paused {
		return nil
	}

	address := v.pc
	if address > MaxAddress-1 {
		return &Fault{Address: address, Err: ErrAddressOutOfRange}
	}

	op := opcode(uint16(v.memory[address])<<8 | uint16(v.memory[address+1]))
	v.pc += opcodeSize

	if v.trace {
		v.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.Hex("opcode", uint16(op)),
			log.String("instruction", disasm.Format(uint16(op))))
	}

	handler, ok := decode(op)
	if !ok {
		v.logger.Debug("Unknown opcode",
			log.Hex("address", address),
			log.Hex("opcode", uint16(op)))
		return nil
	}

	if err := handler(v, op); err != nil {
		return &Fault{Address: address, Opcode: uint16(op), Err: err}
	}
	return nil
}

func (v *VM) tickTimers() {
	if v.delayTimer > 0 {
		v.delayTimer--
	}
	if v.soundTimer > 0 {
		v.soundTimer--
	}
}

// PC returns the program counter.
func (v *VM) PC() uint16 {
	return v.pc
}

// I returns the index register.
func (v *VM) I() uint16 {
	return v.i
}

// Register returns the value of register Vx, x is masked to 4 bits.
func (v *VM) Register(x uint8) uint8 {
	return v.v[x&0xF]
}

// Registers returns a copy of the register file.
func (v *VM) Registers() [RegisterCount]uint8 {
	return v.v
}

// DelayTimer returns the delay timer.
func (v *VM) DelayTimer() uint8 {
	return v.delayTimer
}

// SoundTimer returns the sound timer. A host plays a tone while it is non-zero.
func (v *VM) SoundTimer() uint8 {
	return v.soundTimer
}

// StackDepth returns the number of return addresses on the call stack.
func (v *VM) StackDepth() int {
	return len(v.stack)
}

// Memory returns the byte at the given address, addresses beyond MaxAddress read as 0.
func (v *VM) Memory(address uint16) byte {
	if address > MaxAddress {
		return 0
	}
	return v.memory[address]
}

// State returns the execution state.
func (v *VM) State() State {
	return v.state
}

// Paused returns whether execution is paused.
func (v *VM) Paused() bool {
	return v.state == Paused
}

// Display returns a copy of the set of lit cells.
func (v *VM) Display() Display {
	return v.display.Copy()
}

// IsLit returns whether the cell at the given coordinate is lit.
func (v *VM) IsLit(x, y int) bool {
	return v.display.Contains(Point{X: x, Y: y})
}

func randomByte() uint8 {
	return uint8(rand.Uint32())
}
