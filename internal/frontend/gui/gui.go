// Package gui implements a window frontend based on ebiten.
package gui

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keymap"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
)

// Scale is the window size multiplier of a screen pixel.
const Scale = 10

const title = "retrochip8"

var (
	litColor   = color.White
	unlitColor = color.Black
)

// hostKeys maps the window keys to the characters of the key map.
var hostKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3', ebiten.KeyDigit4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
}

var commandKeys = map[ebiten.Key]keymap.Command{
	ebiten.KeySpace:        keymap.TogglePause,
	ebiten.KeyM:            keymap.ToggleMute,
	ebiten.KeyBracketRight: keymap.CycleSpeed,
	ebiten.KeyEscape:       keymap.Quit,
}

// Game runs the runner frames from the ebiten game loop.
type Game struct {
	ctx    context.Context
	runner *runner.Runner
	frame  runner.Frame
}

// Run opens the window and runs the game loop at the frame rate until the window
// is closed, the context is cancelled or the runner stops.
func Run(ctx context.Context, r *runner.Runner) error {
	ebiten.SetWindowSize(vm.ScreenWidth*Scale, vm.ScreenHeight*Scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(runner.FrameRate)

	g := &Game{
		ctx:    ctx,
		runner: r,
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update executes one frame.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	running, err := g.runner.Frame(g)
	if err != nil {
		return err
	}
	if !running {
		return ebiten.Termination
	}
	return nil
}

// Draw draws the last rendered frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(unlitColor)

	grid := frontend.NewGrid(g.frame.Display)
	for y := range vm.ScreenHeight {
		for x := range vm.ScreenWidth {
			if grid.Lit(x, y) {
				screen.Set(x, y, litColor)
			}
		}
	}
}

// Layout returns the logical screen size, ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return vm.ScreenWidth, vm.ScreenHeight
}

// Input mirrors the window key state to the keypad.
func (g *Game) Input(keys *vm.Keypad) []keymap.Command {
	for hostKey, ch := range hostKeys {
		key, ok := keymap.Key(ch)
		if !ok {
			continue
		}
		if ebiten.IsKeyPressed(hostKey) {
			keys.Press(key)
		} else {
			keys.Release(key)
		}
	}

	var commands []keymap.Command
	for hostKey, cmd := range commandKeys {
		if inpututil.IsKeyJustPressed(hostKey) {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// Render stores the frame for the next Draw.
func (g *Game) Render(frame runner.Frame) error {
	g.frame = frame
	return nil
}
