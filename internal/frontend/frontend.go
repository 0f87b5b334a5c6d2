// Package frontend contains helpers shared by the display frontends.
package frontend

import "github.com/retroenv/retrochip8/internal/vm"

// Grid is the visible screen, indexed by row and column.
type Grid [vm.ScreenHeight][vm.ScreenWidth]bool

// NewGrid projects the lit cells of a display onto the screen. Coordinates
// outside of the screen wrap around.
func NewGrid(display vm.Display) *Grid {
	var grid Grid
	for p := range display {
		grid[wrap(p.Y, vm.ScreenHeight)][wrap(p.X, vm.ScreenWidth)] = true
	}
	return &grid
}

// Lit returns whether the screen cell is lit.
func (g *Grid) Lit(x, y int) bool {
	return g[y][x]
}

func wrap(value, size int) int {
	return (value%size + size) % size
}
