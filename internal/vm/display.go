package vm

import (
	"cmp"

	"github.com/retroenv/retrogolib/set"
)

// spriteWidth is the width of every sprite row in pixels.
const spriteWidth = 8

// Point is a display coordinate. Coordinates are not wrapped, a sprite drawn close
// to the right or bottom edge produces cells outside of the 64x32 grid.
type Point struct {
	X, Y int
}

// Display is the set of lit cells.
type Display = set.Set[Point]

// NewDisplay returns a display with the given cells lit.
func NewDisplay(points ...Point) Display {
	return set.NewFromSlice(points)
}

// SortedPoints returns the lit cells sorted by row, then column.
func SortedPoints(display Display) []Point {
	return set.SortedFunc(display, comparePoints)
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}

// DrawSprite XORs the sprite rows onto a copy of the display with the top left
// corner at origin. Every set bit toggles its cell, the most significant bit being
// the leftmost column. It returns the new display and whether any lit cell was
// turned off.
func DrawSprite(display Display, sprite []byte, origin Point) (Display, bool) {
	result := display.Copy()
	collision := false

	for row, data := range sprite {
		for col := range spriteWidth {
			if data&(0x80>>col) == 0 {
				continue
			}

			p := Point{X: origin.X + col, Y: origin.Y + row}
			if result.Contains(p) {
				result.Remove(p)
				collision = true
			} else {
				result.Add(p)
			}
		}
	}

	return result, collision
}
