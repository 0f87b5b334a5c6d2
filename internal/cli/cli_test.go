package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_ListingOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want disasm.Options
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			want: disasm.Options{HexComments: true, OffsetComments: true},
		},
		{
			name: "nohexcomments flag",
			args: []string{"prog", "-nohexcomments", "test.ch8"},
			want: disasm.Options{OffsetComments: true},
		},
		{
			name: "nooffsets flag",
			args: []string{"prog", "-nooffsets", "test.ch8"},
			want: disasm.Options{HexComments: true},
		},
		{
			name: "all listing flags",
			args: []string{"prog", "-nohexcomments", "-nooffsets", "test.ch8"},
			want: disasm.Options{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgs_ProgramOptions(t *testing.T) {
	opts, _, err := parseArgs([]string{"prog", "-f", "HEADLESS", "-speed", "2", "-frames", "30",
		"-stack-limit", "16", "-mute", "-trace", "-list", "-s", "CHIP8", "pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.FrontendHeadless, opts.Frontend)
	assert.Equal(t, "chip8", opts.System)
	assert.Equal(t, 2, opts.Speed)
	assert.Equal(t, 30, opts.Frames)
	assert.Equal(t, 16, opts.StackLimit)
	assert.True(t, opts.Mute)
	assert.True(t, opts.Trace)
	assert.True(t, opts.List)
}

func TestParseArgs_Defaults(t *testing.T) {
	opts, _, err := parseArgs([]string{"prog", "-i", "pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.FrontendTerm, opts.Frontend)
	assert.Equal(t, options.MinSpeed, opts.Speed)
	assert.Equal(t, 0, opts.Frames)
	assert.False(t, opts.Mute)
}

func TestParseArgs_HeadlessListing(t *testing.T) {
	opts, _, err := parseArgs([]string{"prog", "-f", "headless", "-list", "pong.ch8"})
	assert.NoError(t, err)
	assert.Equal(t, 0, opts.Frames)
	assert.True(t, opts.List)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		errContain string
	}{
		{
			name:       "missing ROM file",
			args:       []string{"prog"},
			usageError: true,
		},
		{
			name:       "flag after ROM file",
			args:       []string{"prog", "pong.ch8", "-debug"},
			usageError: true,
			errContain: "-debug",
		},
		{
			name:       "unsupported frontend",
			args:       []string{"prog", "-f", "sdl", "pong.ch8"},
			errContain: "unsupported frontend",
		},
		{
			name:       "speed too high",
			args:       []string{"prog", "-speed", "9", "pong.ch8"},
			errContain: "invalid speed",
		},
		{
			name:       "speed too low",
			args:       []string{"prog", "-speed", "0", "pong.ch8"},
			errContain: "invalid speed",
		},
		{
			name:       "negative frame count",
			args:       []string{"prog", "-frames", "-1", "pong.ch8"},
			errContain: "invalid frame count",
		},
		{
			name:       "headless without frame count",
			args:       []string{"prog", "-f", "headless", "pong.ch8"},
			errContain: "headless frontend requires -frames",
		},
		{
			name:       "negative stack limit",
			args:       []string{"prog", "-stack-limit", "-1", "pong.ch8"},
			errContain: "invalid stack limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseArgs(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}
