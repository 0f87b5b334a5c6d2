// Package options contains the program options.
package options

// Supported frontends.
const (
	FrontendTerm     = "term"
	FrontendGUI      = "gui"
	FrontendHeadless = "headless"
)

// Frontends lists all supported frontend names.
var Frontends = []string{FrontendTerm, FrontendGUI, FrontendHeadless}

// Speed multiplier bounds.
const (
	MinSpeed = 1
	MaxSpeed = 4
)

// Parameters contains file path options.
type Parameters struct {
	Input string
}

// Flags contains behavior options.
type Flags struct {
	System     string
	Frontend   string
	Speed      int
	Frames     int
	StackLimit int
	Mute       bool
	Trace      bool
	List       bool
	Debug      bool
	Quiet      bool
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexComments bool
	NoOffsets     bool
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	OutputFlags
}
