// Package game provides the sandbox loop: scene transitions plus pausing
// and single-tick stepping for inspecting frames.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/brawl/internal/application/scene"
)

// Debug keys handled by the loop itself
const (
	KeyPause = ebiten.KeyF9
	KeyStep  = ebiten.KeyF10
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int

	paused bool
	// justPressed reports a key press on this tick
	justPressed func(ebiten.Key) bool
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current:     initialScene,
		screenW:     screenW,
		screenH:     screenH,
		justPressed: inpututil.IsKeyJustPressed,
	}
	g.current.OnEnter()
	return g
}

// Update ticks the current scene and handles scene transitions. While
// paused, the scene only ticks when the step key is pressed.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.justPressed(KeyPause) {
		g.paused = !g.paused
	}
	if g.paused && !g.justPressed(KeyStep) {
		return nil
	}

	next, err := g.current.Update()
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Paused reports whether the loop is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Close calls OnExit on the current scene. Call it after ebiten.RunGame
// returns.
func (g *Game) Close() {
	g.current.OnExit()
}
