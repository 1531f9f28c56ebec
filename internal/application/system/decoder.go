package system

import (
	"errors"
	"fmt"

	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/infrastructure/config"
	"github.com/younwookim/brawl/internal/ring"
)

var (
	// ErrInputTooOld is returned by Decoder.Buttons when the target frame
	// is further back than the rollback window.
	ErrInputTooOld = errors.New("input older than rollback window")

	// ErrInputTooNew is returned by Decoder.Buttons when storing the
	// target frame would push out input the simulation may still read.
	ErrInputTooNew = errors.New("input too far ahead of simulation")
)

var attackButtons = [...]button.Button{button.LP, button.HP, button.LK, button.HK}

// slot is one frame of input history.
type slot struct {
	Btn  button.Button
	DirX button.Button
	DirY button.Button

	// set when the direction was written on this frame rather than
	// carried forward from an earlier one
	explicitX bool
	explicitY bool
}

// Decoder keeps one player's input history and turns it into actions.
//
// Frames are addressed two ways. Input frames are the target frames of
// Buttons. The simulation frame t decodes the input written for frame
// t-delay, so a press is seen delay frames after it was made.
type Decoder struct {
	reg         *move.Registry
	maxRollback int
	delay       int
	buffer      int

	history      *ring.Buffer[slot]
	currentFrame int
	simFrame     int // newest simulation frame computed
	floor        int
	mode         state.Mode

	needsRollback bool
	rollbackTo    int
	overrun       bool
}

// NewDecoder creates a decoder in Wait mode with an empty history.
func NewDecoder(reg *move.Registry, cfg *config.RollbackConfig) *Decoder {
	d := &Decoder{
		reg:         reg,
		maxRollback: cfg.MaxRollback,
		delay:       cfg.Delay,
		buffer:      cfg.Buffer,
		history:     ring.New[slot](cfg.MaxRollback + cfg.Buffer + cfg.Delay + 1),
		mode:        state.ModeWait,
	}
	d.history.Fill(slot{})
	return d
}

// SetMode changes what Buttons and Action do.
func (d *Decoder) SetMode(m state.Mode) {
	d.mode = m
}

// Mode returns the current mode.
func (d *Decoder) Mode() state.Mode {
	return d.mode
}

// CurrentFrame returns the newest input frame in the history.
func (d *Decoder) CurrentFrame() int {
	return d.currentFrame
}

// Reset forgets all input and rollback state. Input for frames up to the
// current frame is ignored afterwards, so a late packet from a finished
// round cannot leak into the next one.
func (d *Decoder) Reset() {
	d.history.Fill(slot{})
	d.floor = d.currentFrame + 1
	d.ClearRollbackFlags()
	d.overrun = false
}

// NeedsRollback reports whether input arrived for a frame the simulation
// has already consumed.
func (d *Decoder) NeedsRollback() bool {
	return d.needsRollback
}

// NeedsRollbackToFrame returns the first simulation frame that has to be
// recomputed. Only meaningful when NeedsRollback is true.
func (d *Decoder) NeedsRollbackToFrame() int {
	return d.rollbackTo
}

// ClearRollbackFlags is called by the owner after re-simulating.
func (d *Decoder) ClearRollbackFlags() {
	d.needsRollback = false
	d.rollbackTo = 0
}

// Overrun reports whether input was dropped because it fell outside the
// history window. It stays set until Reset.
func (d *Decoder) Overrun() bool {
	return d.overrun
}

// Buttons records the buttons pressed and released on target. Input in
// Wait mode is ignored. Input that lands on a frame the simulation already
// consumed raises the rollback flag. Input too old for a rollback or too
// far ahead to fit beside the frames a rollback may re-read is dropped and
// sets Overrun.
func (d *Decoder) Buttons(pressed, released button.Mask, target int) error {
	if d.mode == state.ModeWait || target < d.floor {
		return nil
	}

	if newest := d.NewestFrame(); target > newest {
		d.overrun = true
		return fmt.Errorf("input for frame %d after frame %d, newest allowed %d: %w", target, d.simFrame, newest, ErrInputTooNew)
	}

	if target <= d.currentFrame-d.delay {
		first := target + d.delay
		if oldest := d.currentFrame - d.maxRollback + 1; first < oldest {
			d.flagRollback(oldest)
			d.overrun = true
			return fmt.Errorf("input for frame %d at frame %d: %w", target, d.currentFrame, ErrInputTooOld)
		}
		d.flagRollback(first)
	}

	d.ensureFrame(target)

	i := d.currentFrame - target
	s := d.history.At(i)
	if s == nil {
		d.overrun = true
		return fmt.Errorf("input for frame %d at frame %d: %w", target, d.currentFrame, ErrInputTooOld)
	}

	for _, b := range attackButtons {
		if pressed.Has(b) {
			s.Btn = b
		}
	}

	x, y := s.DirX, s.DirY
	for _, b := range [...]button.Button{button.Left, button.Right} {
		if pressed.Has(b) {
			x = b
		}
	}
	for _, b := range [...]button.Button{button.Up, button.Down} {
		if pressed.Has(b) {
			y = b
		}
	}
	for _, b := range [...]button.Button{button.Left, button.Right} {
		if released.Has(b) && x == b {
			x = button.None
		}
	}
	for _, b := range [...]button.Button{button.Up, button.Down} {
		if released.Has(b) && y == b {
			y = button.None
		}
	}

	if x != s.DirX || pressed.Has(button.Left) || pressed.Has(button.Right) {
		s.DirX, s.explicitX = x, true
		d.carryX(i)
	}
	if y != s.DirY || pressed.Has(button.Up) || pressed.Has(button.Down) {
		s.DirY, s.explicitY = y, true
		d.carryY(i)
	}
	return nil
}

func (d *Decoder) flagRollback(frame int) {
	if !d.needsRollback || frame < d.rollbackTo {
		d.rollbackTo = frame
	}
	d.needsRollback = true
}

// carryX copies the direction at index i onto the newer frames that only
// held a prediction.
func (d *Decoder) carryX(i int) {
	x := d.history.At(i).DirX
	for j := i - 1; j >= 0; j-- {
		s := d.history.At(j)
		if s.explicitX {
			return
		}
		s.DirX = x
	}
}

func (d *Decoder) carryY(i int) {
	y := d.history.At(i).DirY
	for j := i - 1; j >= 0; j-- {
		s := d.history.At(j)
		if s.explicitY {
			return
		}
		s.DirY = y
	}
}

// Advance tells the decoder the simulation has computed frame. Earlier
// frames are ignored.
func (d *Decoder) Advance(frame int) {
	d.simFrame = max(d.simFrame, frame)
}

// NewestFrame returns the newest input frame Buttons accepts. The history
// must still hold every input frame that re-simulating the rollback window
// reads, buffered presses included.
func (d *Decoder) NewestFrame() int {
	oldest := max(d.simFrame-d.maxRollback+1-d.delay-d.buffer, d.floor)
	return oldest + d.history.Cap() - 1
}

// ensureFrame extends the history up to target, predicting that held
// directions stay held and no button is pressed.
func (d *Decoder) ensureFrame(target int) {
	for d.currentFrame < target {
		last := d.history.Last()
		d.history.Push(slot{DirX: last.DirX, DirY: last.DirY})
		d.currentFrame++
	}
}

// index returns the lookback index of the input decoded on simulation
// frame target.
func (d *Decoder) index(target int) int {
	return d.currentFrame - target + d.delay
}

func (d *Decoder) at(i int) slot {
	if s := d.history.At(i); s != nil {
		return *s
	}
	return slot{}
}

// direction returns the combined facing-relative direction at index i.
func (d *Decoder) direction(i int, onLeft bool) button.Button {
	s := d.at(i)
	return button.Combine(button.Translate(s.DirX, onLeft), s.DirY)
}

// Action returns the action the player should be in on simulation frame
// target. current is the player's current action and actionStart the frame
// it started on. The result is the character's idle action whenever
// nothing may interrupt current.
func (d *Decoder) Action(current move.ActionID, onLeft bool, target, actionStart int) move.ActionID {
	d.ensureFrame(target)

	c := d.reg.CharacterOf(current)
	if d.mode != state.ModeFight {
		return c.Idle
	}

	actionFrame := target - actionStart
	frame := d.index(target)

	recent := d.decode(current, c, frame, onLeft, actionFrame)
	if !d.reg.Action(recent).IsWalkOrIdle() {
		return recent
	}

	// input buffer: a press made a little early still counts
	for k := 1; k <= d.buffer; k++ {
		a := d.decode(current, c, frame+k, onLeft, actionFrame)
		if !d.reg.Action(a).IsWalkOrIdle() {
			return a
		}
	}
	return recent
}

// IsGuarding reports whether the player holds back on simulation frame
// target.
func (d *Decoder) IsGuarding(onLeft bool, target int) bool {
	d.ensureFrame(target)

	s := d.at(d.index(target))
	return s.DirX != button.None && button.Translate(s.DirX, onLeft) == button.Back
}

// candidates returns the buttons read at index i in priority order: matched
// motion commands, the pressed button, then the held direction.
func (d *Decoder) candidates(i int, onLeft bool) []button.Button {
	var out []button.Button

	s := d.at(i)
	if s.Btn != button.None {
		dir := func(j int) button.Button { return d.direction(j, onLeft) }
		for _, m := range d.reg.Motions() {
			if m.Trigger() != s.Btn {
				continue
			}
			if MatchMotion(m.Directions(), i, d.history.Cap(), dir) {
				out = append(out, m.Button)
			}
		}
		out = append(out, s.Btn)
	}

	return append(out, d.direction(i, onLeft))
}

func (d *Decoder) decode(current move.ActionID, c *move.Character, i int, onLeft bool, actionFrame int) move.ActionID {
	cands := d.candidates(i, onLeft)
	cur := d.reg.Action(current)

	if actionFrame >= cur.SpecialCancelFrames {
		for _, b := range cands {
			if id, ok := cur.Chain(b); ok {
				return id
			}
		}
	}

	if actionFrame < cur.LockedFrames {
		return c.Idle
	}

	for _, b := range cands {
		if id, ok := c.Specials[b]; ok {
			return id
		}
		if id, ok := normal(c, b); ok {
			return id
		}
	}
	return c.Idle
}

// normal maps a button to a character's fixed movement and normal moves.
func normal(c *move.Character, b button.Button) (move.ActionID, bool) {
	switch b {
	case button.Neutral, button.DownForward, button.DownBack:
		return c.Idle, true
	case button.Forward:
		return c.WalkForward, true
	case button.Back, button.UpBack:
		return c.WalkBackward, true
	case button.UpForward:
		return c.Jump, true
	case button.HP:
		return c.StHP, true
	case button.LP:
		return c.StLP, true
	case button.LK:
		return c.Grab, true
	}
	return move.NoAction, false
}
