package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load CHIP8 file", func(t *testing.T) {
		data := []byte{0x00, 0xE0, 0x12, 0x00}
		tmpFile := createTempFile(t, data)

		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		}

		program, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Equal(t, data, program)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.ch8"},
		}

		_, err := loader.Load(opts)
		assert.Error(t, err)
		assert.ErrorContains(t, err, "opening file")
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, vm.MaxProgramSize+1))

		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		}

		_, err := loader.Load(opts)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, vm.ErrProgramTooLarge))
	})
}

func TestLoadReader(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty program", 0, false},
		{"small program", 2, false},
		{"maximum size", vm.MaxProgramSize, false},
		{"one byte too large", vm.MaxProgramSize + 1, true},
		{"far too large", 3 * vm.MaxProgramSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{0xA5}, tt.size)

			program, err := New().LoadReader(bytes.NewReader(data))
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, vm.ErrProgramTooLarge))
				return
			}

			assert.NoError(t, err)
			assert.Len(t, program, tt.size)
		})
	}
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
