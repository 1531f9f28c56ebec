package move

import (
	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/geom"
)

// CharacterID is a handle into the registry's character table.
type CharacterID int

// Character aggregates the canonical actions every character has.
type Character struct {
	ID        CharacterID
	Name      string
	Collision geom.Hitbox // default body box
	MaxHealth int

	// GrappleThrow makes victims of this character's throw play ThrownGR
	// instead of Thrown.
	GrappleThrow bool

	Idle         ActionID
	WalkForward  ActionID
	WalkBackward ActionID
	Jump         ActionID
	Damaged      ActionID
	Block        ActionID
	StHP         ActionID
	StLP         ActionID
	Grab         ActionID
	Throw        ActionID
	Thrown       ActionID
	ThrownGR     ActionID
	KD           ActionID
	Defeat       ActionID

	Specials map[button.Button]ActionID
}

// canonical lists the canonical action slots with their names for validation.
func (c *Character) canonical() []struct {
	name string
	id   ActionID
} {
	return []struct {
		name string
		id   ActionID
	}{
		{"idle", c.Idle},
		{"walkForward", c.WalkForward},
		{"walkBackward", c.WalkBackward},
		{"jump", c.Jump},
		{"damaged", c.Damaged},
		{"block", c.Block},
		{"stHP", c.StHP},
		{"stLP", c.StLP},
		{"grab", c.Grab},
		{"throw", c.Throw},
		{"thrown", c.Thrown},
		{"thrownGR", c.ThrownGR},
		{"kd", c.KD},
		{"defeat", c.Defeat},
	}
}

// ThrownBy returns the reaction this character plays when thrown by other.
func (c *Character) ThrownBy(other *Character) ActionID {
	if other.GrappleThrow {
		return c.ThrownGR
	}
	return c.Thrown
}
