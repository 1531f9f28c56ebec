package system

import (
	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// Inputs resolves a player's input into actions. Decoder implements it.
type Inputs interface {
	Action(current move.ActionID, onLeft bool, target, actionStart int) move.ActionID
	IsGuarding(onLeft bool, target int) bool
}

// Simulator computes frames. It holds no per-frame state, so stepping the
// same frame with the same input history always gives the same result.
type Simulator struct {
	reg    *move.Registry
	stage  *entity.Stage
	config *config.CombatConfig
}

// NewSimulator creates a new simulator
func NewSimulator(reg *move.Registry, stage *entity.Stage, cfg *config.CombatConfig) *Simulator {
	return &Simulator{
		reg:    reg,
		stage:  stage,
		config: cfg,
	}
}

// Registry returns the move registry the simulator reads.
func (s *Simulator) Registry() *move.Registry {
	return s.reg
}

// Stage returns the stage the simulator clamps players to.
func (s *Simulator) Stage() *entity.Stage {
	return s.stage
}

// InitialFrame returns frame number with both players idle at the stage's
// start positions, facing each other.
func (s *Simulator) InitialFrame(number int, c1, c2 move.CharacterID) entity.Frame {
	p1OnLeft := s.stage.Start[0][0] <= s.stage.Start[1][0]
	p1 := entity.NewPlayer(s.reg.Character(c1), s.stage.Start[0], p1OnLeft)
	p2 := entity.NewPlayer(s.reg.Character(c2), s.stage.Start[1], !p1OnLeft)
	f := entity.NewFrame(number, p1, p2)
	f.P[0].ActionStart = number
	f.P[1].ActionStart = number
	return f
}

// Step computes frame target from prev.
func (s *Simulator) Step(prev entity.Frame, target int, in [2]Inputs) entity.Frame {
	next := prev
	next.Number = target
	next.KO = false

	if prev.Hitstop > 0 {
		s.applyHitstop(&next)
		return next
	}

	s.resolveThrowDamage(&prev, &next, target)

	for i := range next.P {
		p := &next.P[i]
		if p.Hitstun > 0 {
			p.Hitstun--
			if p.ActionFrame(target) >= s.reg.Action(p.Action).AnimationLength {
				p.ActionStart++
			}
			continue
		}
		onLeft := prev.OnLeft(i)
		id := in[i].Action(p.Action, onLeft, target, p.ActionStart)
		s.tryStartingNewAction(p, id, target, onLeft)
	}

	s.integrate(&next, target)
	s.antiTeleport(&prev, &next)
	s.separate(&prev, &next, target)
	s.clampToStage(&prev, &next, target, true)

	s.resolveHits(&next, target, in)
	s.checkKO(&next, target)
	return next
}

// tryStartingNewAction applies a decoded action unless it would cut short
// the current one.
func (s *Simulator) tryStartingNewAction(p *entity.Player, id move.ActionID, frame int, facingRight bool) {
	cur := s.reg.Action(p.Action)
	af := p.ActionFrame(frame)

	if id == p.Action && cur.IsWalkOrIdle() && af < cur.AnimationLength {
		p.FacingRight = facingRight
		return
	}
	if !cur.IsWalkOrIdle() && id == s.reg.CharacterOf(p.Action).Idle && af < cur.AnimationLength {
		return
	}

	p.StartAction(id, frame)
	p.FacingRight = facingRight
}

// collision returns the player's body box on frame.
func (s *Simulator) collision(p *entity.Player, frame int) (geom.Box, bool) {
	return s.reg.Collision(p.Action, p.ActionFrame(frame))
}
