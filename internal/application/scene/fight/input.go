package fight

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/brawl/internal/domain/button"
)

// Keys reports key transitions on the current tick
type Keys interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

// Keyboard reads the ebiten keyboard
type Keyboard struct{}

// JustPressed implements Keys
func (Keyboard) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// JustReleased implements Keys
func (Keyboard) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// Keymap binds buttons to keys
type Keymap map[button.Button]ebiten.Key

// DefaultKeymaps returns WASD/UIJK for player 1 and arrows/numpad for
// player 2.
func DefaultKeymaps() [2]Keymap {
	return [2]Keymap{
		{
			button.Left:  ebiten.KeyA,
			button.Right: ebiten.KeyD,
			button.Up:    ebiten.KeyW,
			button.Down:  ebiten.KeyS,
			button.LP:    ebiten.KeyU,
			button.HP:    ebiten.KeyI,
			button.LK:    ebiten.KeyJ,
			button.HK:    ebiten.KeyK,
		},
		{
			button.Left:  ebiten.KeyArrowLeft,
			button.Right: ebiten.KeyArrowRight,
			button.Up:    ebiten.KeyArrowUp,
			button.Down:  ebiten.KeyArrowDown,
			button.LP:    ebiten.KeyNumpad4,
			button.HP:    ebiten.KeyNumpad5,
			button.LK:    ebiten.KeyNumpad1,
			button.HK:    ebiten.KeyNumpad2,
		},
	}
}

// Capture returns the buttons whose keys went down or up this tick
func (m Keymap) Capture(k Keys) (pressed, released button.Mask) {
	for b, key := range m {
		if k.JustPressed(key) {
			pressed = pressed.Set(b)
		}
		if k.JustReleased(key) {
			released = released.Set(b)
		}
	}
	return pressed, released
}
