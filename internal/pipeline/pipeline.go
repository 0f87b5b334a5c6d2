// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend/gui"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/term"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedFrontend is returned for unknown frontend names.
var ErrUnsupportedFrontend = errors.New("unsupported frontend")

// Pipeline orchestrates the complete interpreter workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new interpreter pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline: the program is loaded and either listed to
// the writer or run on the selected frontend.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, listOpts disasm.Options, writer io.Writer) error {
	// Detect system architecture
	if _, err := p.detector.Detect(opts); err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	program, err := p.loader.Load(opts)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, listOpts, writer)
}

// ExecuteWithProgram runs the pipeline with a pre-loaded program.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	listOpts disasm.Options, writer io.Writer) error {

	p.printInfo(opts, program)

	if opts.List {
		if err := disasm.Listing(writer, program, vm.ProgramStart, listOpts); err != nil {
			return fmt.Errorf("listing program: %w", err)
		}
		return nil
	}

	keys := vm.NewKeypad()
	machine, err := p.createVM(program, keys, opts)
	if err != nil {
		return fmt.Errorf("creating vm: %w", err)
	}

	return p.run(ctx, machine, keys, opts, writer)
}

// createVM creates a VM with the font and the program loaded.
func (p *Pipeline) createVM(program []byte, keys *vm.Keypad, opts options.Program) (*vm.VM, error) {
	machine := vm.New(p.logger, keys,
		vm.WithStackLimit(opts.StackLimit),
		vm.WithTrace(opts.Trace),
	)
	if err := machine.LoadProgram(program); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	return machine, nil
}

// run executes the VM on the selected frontend.
func (p *Pipeline) run(ctx context.Context, machine *vm.VM, keys *vm.Keypad, opts options.Program, writer io.Writer) error {
	runnerOpts := []runner.Option{
		runner.WithSpeed(opts.Speed),
		runner.WithFrameLimit(opts.Frames),
		runner.WithMuted(opts.Mute),
	}

	switch opts.Frontend {
	case options.FrontendHeadless:
		fe := headless.New(writer)
		runnerOpts = append(runnerOpts, runner.WithFramePeriod(0))
		r := runner.New(p.logger, machine, keys, runnerOpts...)
		if err := r.Run(ctx, fe); err != nil {
			return fmt.Errorf("running headless: %w", err)
		}
		if err := fe.Flush(); err != nil {
			return fmt.Errorf("writing screen: %w", err)
		}
		return nil

	case options.FrontendTerm:
		beeper := p.createBeeper()
		if beeper != nil {
			defer beeper.Close()
			runnerOpts = append(runnerOpts, runner.WithTone(beeper))
		}

		fe, err := term.New()
		if err != nil {
			return fmt.Errorf("creating terminal frontend: %w", err)
		}
		defer fe.Close()

		r := runner.New(p.logger, machine, keys, runnerOpts...)
		if err := r.Run(ctx, fe); err != nil {
			return fmt.Errorf("running terminal: %w", err)
		}
		return nil

	case options.FrontendGUI:
		beeper := p.createBeeper()
		if beeper != nil {
			defer beeper.Close()
			runnerOpts = append(runnerOpts, runner.WithTone(beeper))
		}

		r := runner.New(p.logger, machine, keys, runnerOpts...)
		if err := gui.Run(ctx, r); err != nil {
			return fmt.Errorf("running window: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w '%s'", ErrUnsupportedFrontend, opts.Frontend)
	}
}

// createBeeper opens the audio output. Without a usable audio device the
// program runs silently.
func (p *Pipeline) createBeeper() *audio.Beeper {
	beeper, err := audio.New()
	if err != nil {
		p.logger.Warn("Audio output not available", log.Err(err))
		return nil
	}
	return beeper
}

// printInfo prints information about the program being processed.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("frontend", opts.Frontend),
	)
}
