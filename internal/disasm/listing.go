package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Options controls the listing output.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output the memory address of every instruction in comments
}

// Listing writes the disassembly of a program that is loaded at the given base
// address. Every destination of a jump or call inside the program gets a label.
func Listing(w io.Writer, program []byte, base uint16, opts Options) error {
	labels := collectLabels(program, base)

	for offset := 0; offset < len(program); offset += opcodeSize {
		address := base + uint16(offset)
		if labels.Contains(address) {
			if _, err := fmt.Fprintf(w, "%s:\n", labelName(address)); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if offset+1 >= len(program) {
			line := formatLine(fmt.Sprintf(".byte $%02X", program[offset]), address, program[offset:], opts)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("writing data: %w", err)
			}
			break
		}

		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		line := formatLine(Format(opcode), address, program[offset:offset+opcodeSize], opts)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing instruction: %w", err)
		}
	}
	return nil
}

// collectLabels returns all jump and call destinations that point into the program.
func collectLabels(program []byte, base uint16) set.Set[uint16] {
	labels := set.New[uint16]()
	end := int(base) + len(program)

	for offset := 0; offset+1 < len(program); offset += opcodeSize {
		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		target, ok := Decode(opcode).Target()
		if !ok || target < base || int(target) >= end {
			continue
		}
		labels.Add(target)
	}
	return labels
}

// Labels returns the sorted jump and call destinations that point into the program.
func Labels(program []byte, base uint16) []uint16 {
	return set.Sorted(collectLabels(program, base))
}

func labelName(address uint16) string {
	return fmt.Sprintf("L%03X", address)
}

func formatLine(code string, address uint16, data []byte, opts Options) string {
	var comments []string
	if opts.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", address))
	}
	if opts.HexComments {
		hex := make([]string, 0, len(data))
		for _, b := range data {
			hex = append(hex, fmt.Sprintf("%02X", b))
		}
		comments = append(comments, strings.Join(hex, " "))
	}

	if len(comments) == 0 {
		return "  " + code
	}
	return fmt.Sprintf("  %-24s ; %s", code, strings.Join(comments, " "))
}
