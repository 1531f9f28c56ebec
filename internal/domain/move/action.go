// Package move holds the static move tables: actions, characters and motion
// commands, collected into an immutable Registry.
package move

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/geom"
)

// ActionID is a handle into the registry's action table.
type ActionID int

// NoAction is the zero handle for unset action slots.
const NoAction ActionID = -1

// ActionType classifies an action for the simulator.
type ActionType uint8

const (
	TypeOther ActionType = iota
	TypeIdle
	TypeWalk
	TypeJump
	TypeGrab
	TypeThrow
	TypeThrown
	TypeKD
	TypeDamageReaction
)

var actionTypeNames = [...]string{
	TypeOther:          "Other",
	TypeIdle:           "Idle",
	TypeWalk:           "Walk",
	TypeJump:           "Jump",
	TypeGrab:           "Grab",
	TypeThrow:          "Throw",
	TypeThrown:         "Thrown",
	TypeKD:             "KD",
	TypeDamageReaction: "DamageReaction",
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	if int(t) < len(actionTypeNames) {
		return actionTypeNames[t]
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t ActionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string is Other.
func (t *ActionType) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*t = TypeOther
		return nil
	}
	for i, n := range actionTypeNames {
		if strings.EqualFold(n, s) {
			*t = ActionType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action type %q", s)
}

// Action is an immutable descriptor of one character state.
type Action struct {
	ID        ActionID
	Name      string
	Character CharacterID
	Animation string

	// Collision overrides the character's body box while this action plays.
	// Nil falls back to Character.Collision.
	Collision *geom.Hitbox
	Hitbox    geom.Hitbox
	Hurtbox   geom.Hitbox

	Damage         int
	BlockAdvantage int
	HitAdvantage   int

	// LockedFrames is the number of frames before anything can cancel the
	// action. AnimationLength is how long it plays when nothing cancels it.
	LockedFrames        int
	AnimationLength     int
	SpecialCancelFrames int

	Type     ActionType
	Velocity mgl64.Vec3 // per frame, X along the facing direction

	// KnockdownDistance is the total stage-axis travel of a hard knockdown.
	// Zero or negative means the action does not knock down.
	KnockdownDistance float64

	Chains map[button.Button]ActionID

	// Path overrides the default thrown positions for Thrown actions,
	// relative to the grabber and indexed by frames since action start.
	Path []mgl64.Vec3
}

// IsWalkOrIdle reports whether the action may be replaced by a buffered input.
func (a *Action) IsWalkOrIdle() bool {
	return a.Type == TypeIdle || a.Type == TypeWalk
}

// Knocksdown reports whether a hit with this action causes a hard knockdown.
func (a *Action) Knocksdown() bool {
	return a.KnockdownDistance > 0
}

// Chain returns the action b chains into, if any.
func (a *Action) Chain(b button.Button) (ActionID, bool) {
	id, ok := a.Chains[b]
	return id, ok
}
