// Package entity holds the per-round simulation values: players, frames and
// the stage they fight on. Everything here is a plain value so a Frame can
// be copied, stored in the rollback ring and compared.
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Player is the mutable per-round state of one fighter.
type Player struct {
	Character   move.CharacterID `msgpack:"c"`
	Pos         mgl64.Vec3       `msgpack:"p"` // stage axis, depth, height
	Action      move.ActionID    `msgpack:"a"`
	FacingRight bool             `msgpack:"f"`
	Health      int              `msgpack:"h"`
	Hitstun     int              `msgpack:"s"`

	KnockdownVelocity float64 `msgpack:"kv"`
	ActionStart       int     `msgpack:"as"`

	// ActionNumber identifies the current action instance. A hit copies the
	// same number to both players so a lingering hitbox cannot land twice.
	ActionNumber int `msgpack:"an"`
}

// NewPlayer creates a player standing idle at pos with full health.
func NewPlayer(c *move.Character, pos mgl64.Vec3, facingRight bool) Player {
	return Player{
		Character:   c.ID,
		Pos:         pos,
		Action:      c.Idle,
		FacingRight: facingRight,
		Health:      c.MaxHealth,
	}
}

// ActionFrame returns the number of frames since the current action started.
func (p *Player) ActionFrame(frame int) int {
	return frame - p.ActionStart
}

// Offset returns the world offset used to place the player's boxes.
func (p *Player) Offset() geom.Offset {
	return geom.Offset{X: p.Pos[0], Y: p.Pos[2]}
}

// StartAction switches to a new action instance on frame.
func (p *Player) StartAction(id move.ActionID, frame int) {
	p.Action = id
	p.ActionStart = frame
	p.ActionNumber++
}

// Dead reports whether the player has no health left.
func (p *Player) Dead() bool {
	return p.Health <= 0
}
