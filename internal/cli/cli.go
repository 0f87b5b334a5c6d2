// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns program and listing options
func ParseFlags() (options.Program, disasm.Options, error) {
	return parseArgs(os.Args)
}

func parseArgs(arguments []string) (options.Program, disasm.Options, error) {
	flags := flag.NewFlagSet(arguments[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readOutputFlags(flags, &opts)

	err := flags.Parse(arguments[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, disasm.Options{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, disasm.Options{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, disasm.Options{}, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, createListingOptions(opts), nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	opts.System = strings.ToLower(opts.System)

	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	if opts.Speed < options.MinSpeed || opts.Speed > options.MaxSpeed {
		return fmt.Errorf("invalid speed %d, valid range is %d-%d", opts.Speed, options.MinSpeed, options.MaxSpeed)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", opts.Frames)
	}
	// the headless frontend has no quit key
	if opts.Frontend == options.FrontendHeadless && !opts.List && opts.Frames == 0 {
		return errors.New("headless frontend requires -frames greater than 0")
	}
	if opts.StackLimit < 0 {
		return fmt.Errorf("invalid stack limit %d", opts.StackLimit)
	}
	return nil
}

// createListingOptions creates disassembly listing options based on program options
func createListingOptions(opts options.Program) disasm.Options {
	// Apply inverse logic for hex comments and offsets
	return disasm.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	}
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system to run (chip8) - if not auto-detected from file extension")
	flags.StringVar(&opts.Frontend, "f", options.FrontendTerm, "frontend to use (term/gui/headless)")
	flags.IntVar(&opts.Speed, "speed", options.MinSpeed, "speed multiplier, number of frame cycles per 60 Hz tick")
	flags.IntVar(&opts.Frames, "frames", 0, "number of frames to run before exiting, 0 runs until quit (required for headless)")
	flags.IntVar(&opts.StackLimit, "stack-limit", 0, "maximum call stack depth, 0 is unlimited")
	flags.BoolVar(&opts.Mute, "mute", false, "start with the sound muted")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction at debug level")
	flags.BoolVar(&opts.List, "list", false, "print the program disassembly instead of running it")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readOutputFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in listing comments")
}
