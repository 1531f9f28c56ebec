// Package fight provides the local two-player sandbox scene.
package fight

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/brawl/internal/application/engine"
	"github.com/younwookim/brawl/internal/application/replay"
	"github.com/younwookim/brawl/internal/application/scene"
	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorFloor    = color.RGBA{80, 80, 100, 255}
	colorBody     = color.RGBA{100, 200, 100, 96}
	colorHurt     = color.RGBA{100, 100, 200, 128}
	colorHit      = color.RGBA{220, 60, 60, 160}
	colorHealthBG = color.RGBA{60, 60, 60, 255}
	colorHealthFG = color.RGBA{100, 200, 100, 255}
)

// KeyRestart starts a fresh match
const KeyRestart = ebiten.KeyF1

// Options configures a fight scene
type Options struct {
	Display config.DisplayConfig
	Keymaps [2]Keymap
	Keys    Keys

	// Stage is the stage ID written into recordings. Empty falls back to
	// the stage name.
	Stage string
	// Record is the replay written when the scene exits; empty disables it.
	Record string
	// Trace receives every frame shown; empty disables it.
	Trace string
}

// Fight runs an engine from keyboard input and draws the boxes of both
// players.
type Fight struct {
	newEngine func() *engine.Engine
	opts      Options

	engine   *engine.Engine
	input    replay.Sink
	recorder *replay.Recorder
	trace    *replay.TraceWriter
	camera   camera
	tick     int

	banner string
}

// New creates a new fight scene. newEngine is called on every (re)start.
func New(newEngine func() *engine.Engine, opts Options) *Fight {
	if opts.Keys == nil {
		opts.Keys = Keyboard{}
	}
	return &Fight{newEngine: newEngine, opts: opts}
}

// OnEnter builds the engine and starts the match.
func (f *Fight) OnEnter() {
	f.engine = f.newEngine()
	f.input = f.engine
	f.tick = 0

	sim := f.engine.Simulator()
	f.camera = newCamera(sim.Stage(), f.opts.Display.ScreenWidth, f.opts.Display.ScreenHeight, f.opts.Display.PixelsPerUnit)

	if f.opts.Record != "" {
		fr := f.engine.Frame()
		reg := sim.Registry()
		names := [2]string{reg.Character(fr.P[0].Character).Name, reg.Character(fr.P[1].Character).Name}
		stage := f.opts.Stage
		if stage == "" {
			stage = sim.Stage().Name
		}
		f.recorder = replay.NewRecorder(stage, names)
		f.input = f.recorder.Tee(f.engine, func() int { return f.tick })
		log.Printf("Recording enabled: %s", f.opts.Record)
	}

	if f.opts.Trace != "" {
		tw, err := replay.CreateTrace(f.opts.Trace)
		if err != nil {
			log.Printf("Failed to create trace: %v", err)
		} else {
			f.trace = tw
		}
	}

	f.engine.OnPreRound = func() { f.banner = "READY" }
	f.engine.OnRoundBegin = func() { f.banner = "FIGHT" }
	f.engine.OnRoundEnd = func(winner int) { f.banner = resultText("K.O.", winner) }
	f.engine.OnFightEnd = func(winner int) { f.banner = resultText("GAME", winner) }
	f.engine.Start()
}

func resultText(prefix string, winner int) string {
	if winner == 0 {
		return prefix + " DRAW"
	}
	return fmt.Sprintf("%s P%d WINS", prefix, winner)
}

// Update captures both keymaps and ticks the engine once. A match stopped
// by a rollback failure or desync stays on screen until restarted.
func (f *Fight) Update() (scene.Scene, error) {
	if f.opts.Keys.JustPressed(KeyRestart) {
		return New(f.newEngine, f.opts), nil
	}
	if f.engine.Err() != nil {
		return nil, nil
	}

	f.tick++
	target := f.engine.CurrentFrame() + 1
	for i, km := range f.opts.Keymaps {
		pressed, released := km.Capture(f.opts.Keys)
		if pressed == 0 && released == 0 {
			continue
		}
		if err := f.input.Buttons(i, pressed, released, target); err != nil {
			log.Printf("Dropped input for P%d: %v", i+1, err)
		}
	}

	if err := f.engine.Tick(); err != nil {
		if !errors.Is(err, engine.ErrRollbackExceeded) && !errors.Is(err, engine.ErrDesync) {
			return nil, err
		}
		log.Printf("Match stopped: %v", err)
		f.banner = "DESYNC - F1 TO RESTART"
		return nil, nil
	}

	if f.trace != nil {
		if err := f.trace.Write(f.engine.Frame()); err != nil {
			log.Printf("Failed to write trace: %v", err)
		}
	}
	return nil, nil
}

// OnExit saves the recording and closes the trace.
func (f *Fight) OnExit() {
	if f.recorder != nil {
		if err := f.recorder.Save(f.opts.Record); err != nil {
			log.Printf("Failed to save recording: %v", err)
		} else {
			log.Printf("Recording saved: %s (%d events)", f.opts.Record, f.recorder.EventCount())
		}
		f.recorder = nil
	}
	if f.trace != nil {
		if err := f.trace.Close(); err != nil {
			log.Printf("Failed to close trace: %v", err)
		}
		f.trace = nil
	}
}

// Engine returns the running engine.
func (f *Fight) Engine() *engine.Engine {
	return f.engine
}

// Draw renders the stage, the boxes of both players and the HUD.
func (f *Fight) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	fr := f.engine.Frame()
	stage := f.engine.Simulator().Stage()
	w := float64(f.opts.Display.ScreenWidth)

	left, right := f.camera.x(stage.Left), f.camera.x(stage.Right)
	ebitenutil.DrawRect(screen, left, f.camera.floor, right-left, 2, colorFloor)

	for i := range fr.P {
		f.drawPlayer(screen, &fr.P[i], fr.Number)
	}

	f.drawHealth(screen, &fr.P[0], 10, false)
	f.drawHealth(screen, &fr.P[1], w-110, true)

	wins := [2]int{}
	for i := range wins {
		wins[i], _ = f.engine.Wins(i)
	}
	hud := fmt.Sprintf("frame %d  %s  %d-%d", fr.Number, f.engine.Phase(), wins[0], wins[1])
	if fr.Hitstop > 0 {
		hud += fmt.Sprintf("  hitstop %d", fr.Hitstop)
	}
	ebitenutil.DebugPrintAt(screen, hud, 10, 24)
	ebitenutil.DebugPrintAt(screen, f.banner, int(w)/2-30, 40)
	ebitenutil.DebugPrint(screen, "F1: Restart | F9: Pause | F10: Step")
}

func (f *Fight) drawPlayer(screen *ebiten.Image, p *entity.Player, frame int) {
	reg := f.engine.Simulator().Registry()
	a := reg.Action(p.Action)
	af := p.ActionFrame(frame)
	off := p.Offset()

	if body, ok := reg.Collision(p.Action, af); ok {
		f.drawBox(screen, body.Placed(off, p.FacingRight), colorBody)
	}
	f.drawBoxes(screen, a.Hurtbox, af, off, p.FacingRight, colorHurt)
	f.drawBoxes(screen, a.Hitbox, af, off, p.FacingRight, colorHit)

	label := fmt.Sprintf("%s %d", a.Name, af)
	ebitenutil.DebugPrintAt(screen, label, int(f.camera.x(p.Pos[0]))-20, int(f.camera.floor)+4)
}

func (f *Fight) drawBoxes(screen *ebiten.Image, h geom.Hitbox, frame int, off geom.Offset, facingRight bool, c color.Color) {
	boxes, ok := h.At(frame)
	if !ok {
		return
	}
	for _, b := range boxes {
		f.drawBox(screen, b.Placed(off, facingRight), c)
	}
}

func (f *Fight) drawBox(screen *ebiten.Image, b geom.Box, c color.Color) {
	x, y, w, h := f.camera.rect(b)
	ebitenutil.DrawRect(screen, x, y, w, h, c)
}

func (f *Fight) drawHealth(screen *ebiten.Image, p *entity.Player, x float64, fromRight bool) {
	const barW, barH = 100.0, 10.0
	maxHealth := f.engine.Simulator().Registry().Character(p.Character).MaxHealth

	ebitenutil.DrawRect(screen, x, 8, barW, barH, colorHealthBG)

	ratio := 0.0
	if maxHealth > 0 {
		ratio = max(0, float64(p.Health)/float64(maxHealth))
	}
	fill := barW * ratio
	if fromRight {
		x += barW - fill
	}
	ebitenutil.DrawRect(screen, x, 8, fill, barH, colorHealthFG)
}
