// Package engine runs a match. It owns both input decoders and the rollback
// ring, advances the simulation once per tick and drives the round
// lifecycle.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/infrastructure/config"
	"github.com/younwookim/brawl/internal/ring"
)

var (
	// ErrRollbackExceeded means the frames needed to honor a late input
	// are gone. The two replicas can no longer agree; the caller must reset
	// the match or disconnect.
	ErrRollbackExceeded = errors.New("rollback exceeded maximum")

	// ErrDesync is returned in sync test mode when re-simulating a frame
	// gives a different result.
	ErrDesync = errors.New("frame checksum mismatch")

	// ErrInvalidPlayer is returned for a player index other than 0 or 1.
	ErrInvalidPlayer = errors.New("invalid player index")
)

// Engine advances a match frame by frame. It is not safe for concurrent
// use.
type Engine struct {
	sim        *system.Simulator
	config     *config.EngineConfig
	characters [2]move.CharacterID
	decoders   [2]*system.Decoder
	frames     *ring.Buffer[entity.Frame]

	frame             int // last simulated frame
	phase             state.Phase
	rollbackStopFrame int // first frame a rollback may recompute
	transitionAt      int
	wins              [2]int
	err               error

	Logger *log.Logger

	// Round lifecycle callbacks. Winners are 1 or 2, or 0 for a draw.
	OnPreRound   func()
	OnRoundBegin func()
	OnRoundEnd   func(winner int)
	OnFightEnd   func(winner int)
}

// NewEngine creates a new engine for characters c1 and c2. It waits for
// Start before it simulates or accepts input.
func NewEngine(sim *system.Simulator, cfg *config.EngineConfig, c1, c2 move.CharacterID) *Engine {
	e := &Engine{
		sim:        sim,
		config:     cfg,
		characters: [2]move.CharacterID{c1, c2},
		frames:     ring.New[entity.Frame](cfg.Rollback.MaxRollback + 1),
		Logger:     log.New(io.Discard, "", 0),
	}
	for i := range e.decoders {
		e.decoders[i] = system.NewDecoder(sim.Registry(), &cfg.Rollback)
	}
	e.frames.Reset(sim.InitialFrame(0, c1, c2))
	return e
}

// Start leaves Wait mode and begins the first pre-round. Calling it again
// has no effect.
func (e *Engine) Start() {
	if e.phase != state.PhaseNone {
		return
	}
	e.preRound()
}

// Buttons records the buttons player pressed and released on the target
// frame. Input older than the rollback window returns an error wrapping
// system.ErrInputTooOld, and input for a frame past the decoder's
// NewestFrame one wrapping system.ErrInputTooNew. Either way the input is
// dropped and the next Tick fails with ErrRollbackExceeded.
func (e *Engine) Buttons(player int, pressed, released button.Mask, target int) error {
	if err := checkPlayer(player); err != nil {
		return err
	}
	return e.decoders[player].Buttons(pressed, released, target)
}

// Tick rolls back if late input arrived and then simulates up to the newest
// input frame, or one frame when no input is ahead. Once Tick has failed
// with ErrRollbackExceeded or ErrDesync it keeps returning that error.
func (e *Engine) Tick() error {
	if e.err != nil {
		return e.err
	}
	if e.phase == state.PhaseNone {
		return nil
	}

	target := max(e.decoders[0].CurrentFrame(), e.decoders[1].CurrentFrame(), e.frame+1)

	if err := e.rollback(); err != nil {
		return e.fail(err)
	}

	for e.frame < target {
		e.advance()
	}

	if e.config.Rollback.SyncTest {
		if err := e.syncTest(); err != nil {
			return e.fail(err)
		}
	}
	return nil
}

// Err returns the error that stopped the engine, if any.
func (e *Engine) Err() error {
	return e.err
}

func (e *Engine) fail(err error) error {
	e.err = err
	e.Logger.Printf("engine stopped at frame %d: %v", e.frame, err)
	return err
}

// rollback rewinds the frame history to the earliest frame a late input
// changed. The rewound frames are recomputed by the caller.
func (e *Engine) rollback() error {
	d1, d2 := e.decoders[0], e.decoders[1]
	if d1.Overrun() || d2.Overrun() {
		return fmt.Errorf("input dropped at frame %d: %w", e.frame, ErrRollbackExceeded)
	}

	always := e.config.Rollback.AlwaysRollback
	if !d1.NeedsRollback() && !d2.NeedsRollback() && !always {
		return nil
	}

	to := e.frame + 1
	if always {
		to = e.frame - e.config.Rollback.MaxRollback + 1
	}
	for _, d := range e.decoders {
		if d.NeedsRollback() {
			to = min(to, d.NeedsRollbackToFrame())
		}
		d.ClearRollbackFlags()
	}
	to = max(to, e.rollbackStopFrame)
	if to > e.frame {
		return nil
	}

	n := 1 + e.frame - to
	if n > e.config.Rollback.MaxRollback {
		return fmt.Errorf("rollback of %d frames to frame %d: %w", n, to, ErrRollbackExceeded)
	}
	if !always {
		e.Logger.Printf("rollback from frame %d to %d", e.frame, to)
	}
	e.frames.PopN(n)
	e.frame = to - 1
	return nil
}

// advance computes the next frame and applies round transitions.
func (e *Engine) advance() {
	prev := e.frames.Last()
	next := e.sim.Step(*prev, prev.Number+1, e.inputs())
	e.frames.Push(next)
	e.frame = next.Number
	for _, d := range e.decoders {
		d.Advance(e.frame)
	}
	e.checkRound(&next)
}

func (e *Engine) inputs() [2]system.Inputs {
	return [2]system.Inputs{e.decoders[0], e.decoders[1]}
}

// syncTest re-simulates every frame still in the ring and compares
// checksums with the frames computed the first time.
func (e *Engine) syncTest() error {
	n := min(e.frames.Len()-1, e.frame-e.rollbackStopFrame+1)
	if n <= 0 {
		return nil
	}

	f := *e.frames.At(n)
	for k := n - 1; k >= 0; k-- {
		f = e.sim.Step(f, f.Number+1, e.inputs())
		got, err := f.Checksum()
		if err != nil {
			return err
		}
		want, err := e.frames.At(k).Checksum()
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("frame %d: got %s, want %s: %w", f.Number, got, want, ErrDesync)
		}
	}
	return nil
}

func checkPlayer(i int) error {
	if i < 0 || i > 1 {
		return fmt.Errorf("player %d: %w", i, ErrInvalidPlayer)
	}
	return nil
}

func (e *Engine) player(i int) (*entity.Player, error) {
	if err := checkPlayer(i); err != nil {
		return nil, err
	}
	return &e.frames.Last().P[i], nil
}

// Frame returns a copy of the last simulated frame.
func (e *Engine) Frame() entity.Frame {
	return *e.frames.Last()
}

// CurrentFrame returns the number of the last simulated frame.
func (e *Engine) CurrentFrame() int {
	return e.frame
}

// Simulator returns the simulator the engine steps.
func (e *Engine) Simulator() *system.Simulator {
	return e.sim
}

// PlayerPos returns player i's position.
func (e *Engine) PlayerPos(i int) (mgl64.Vec3, error) {
	p, err := e.player(i)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return p.Pos, nil
}

// PlayerIsFacingRight reports whether player i faces right.
func (e *Engine) PlayerIsFacingRight(i int) (bool, error) {
	p, err := e.player(i)
	if err != nil {
		return false, err
	}
	return p.FacingRight, nil
}

// PlayerHealth returns player i's health.
func (e *Engine) PlayerHealth(i int) (int, error) {
	p, err := e.player(i)
	if err != nil {
		return 0, err
	}
	return p.Health, nil
}

// PlayerAnimation returns the animation of player i's current action.
func (e *Engine) PlayerAnimation(i int) (string, error) {
	p, err := e.player(i)
	if err != nil {
		return "", err
	}
	return e.sim.Registry().Action(p.Action).Animation, nil
}

// PlayerFrame returns the frames elapsed since player i's action started.
func (e *Engine) PlayerFrame(i int) (int, error) {
	p, err := e.player(i)
	if err != nil {
		return 0, err
	}
	return p.ActionFrame(e.frame), nil
}
