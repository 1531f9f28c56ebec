package system

import (
	"math"

	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/move"
)

// contact is what an attacker's hitbox did to the defender this frame
type contact int

const (
	contactNone contact = iota
	contactStrike
	contactGrab
)

// resolveThrowDamage applies a throw's damage on the last frame of the
// victim's thrown action.
func (s *Simulator) resolveThrowDamage(prev, next *entity.Frame, target int) {
	for i := range next.P {
		p := &next.P[i]
		a := s.reg.Action(p.Action)
		if a.Type != move.TypeThrown || p.ActionFrame(target) != a.AnimationLength {
			continue
		}
		thrower := &prev.P[entity.Opponent(i)]
		p.Health -= s.reg.Action(thrower.Action).Damage
	}
}

// invincible reports whether player i cannot be hit: knocked down, or
// still reacting to the opponent's current action.
func (s *Simulator) invincible(f *entity.Frame, i int) bool {
	p := &f.P[i]
	switch s.reg.Action(p.Action).Type {
	case move.TypeKD:
		return true
	case move.TypeDamageReaction:
		return p.ActionNumber == f.P[entity.Opponent(i)].ActionNumber
	}
	return false
}

// contactOf checks player i's hitbox against the defender's hurtbox and
// body box.
func (s *Simulator) contactOf(f *entity.Frame, i, target int) contact {
	a, d := &f.P[i], &f.P[entity.Opponent(i)]
	act, dact := s.reg.Action(a.Action), s.reg.Action(d.Action)
	af, df := a.ActionFrame(target), d.ActionFrame(target)

	hit := act.Hitbox.Collides(dact.Hurtbox, af, df, a.Offset(), d.Offset(), a.FacingRight, d.FacingRight)
	if !hit {
		if body, ok := s.reg.Collision(d.Action, df); ok {
			hit = act.Hitbox.CollidesBox(body, af, a.Offset(), d.Offset(), a.FacingRight, d.FacingRight)
		}
	}

	switch {
	case !hit:
		return contactNone
	case act.Type == move.TypeGrab:
		return contactGrab
	}
	return contactStrike
}

// resolveHits applies strikes and grabs. Strikes beat grabs, two strikes
// trade and two grabs tech.
func (s *Simulator) resolveHits(next *entity.Frame, target int, in [2]Inputs) {
	if s.invincible(next, 0) || s.invincible(next, 1) {
		return
	}

	c := [2]contact{s.contactOf(next, 0, target), s.contactOf(next, 1, target)}
	struck := [2]bool{c[0] == contactStrike, c[1] == contactStrike}

	switch {
	case struck[0] || struck[1]:
		before := *next
		damage := 0
		for i := range struck {
			if !struck[i] {
				continue
			}
			s.strike(&before, next, i, target, in)
			damage = max(damage, s.reg.Action(before.P[i].Action).Damage)
		}

		hitstop := max(1, int(math.Ceil(math.Sqrt(float64(damage)))))
		next.Hitstop = hitstop
		next.Pushback = s.config.PushbackTotal / float64(hitstop)

		if struck[0] && struck[1] {
			next.Attacker = 0
			next.P[0].Hitstun = hitstop
			next.P[1].Hitstun = hitstop
		} else if struck[0] {
			next.Attacker = 1
		} else {
			next.Attacker = 2
		}

	case c[0] == contactGrab && c[1] == contactGrab:
		for i := range next.P {
			p := &next.P[i]
			p.StartAction(s.reg.CharacterOf(p.Action).Block, target)
			p.Hitstun = 0
		}
		next.Hitstop = s.config.GrabTechHitstop
		next.Pushback = 0
		if next.Hitstop > 0 {
			next.Pushback = s.config.GrabTechPushback / float64(next.Hitstop)
		}
		next.Attacker = 0

	case c[0] == contactGrab:
		s.throw(next, 0, target)

	case c[1] == contactGrab:
		s.throw(next, 1, target)

	default:
		return
	}

	shareActionNumber(next)
}

// shareActionNumber ties both players' current actions to one exchange so
// the same hitbox cannot connect again.
func shareActionNumber(f *entity.Frame) {
	n := max(f.P[0].ActionNumber, f.P[1].ActionNumber) + 1
	f.P[0].ActionNumber = n
	f.P[1].ActionNumber = n
}

// strike applies attacker i's hit. before is the frame as it was before any
// hit of this frame was applied.
func (s *Simulator) strike(before, next *entity.Frame, i, target int, in [2]Inputs) {
	j := entity.Opponent(i)
	attacker := &before.P[i]
	act := s.reg.Action(attacker.Action)
	d := &next.P[j]
	dc := s.reg.Character(d.Character)

	onLeft := before.OnLeft(j)
	guarding := in[j].IsGuarding(onLeft, target)

	hitstun := act.LockedFrames - attacker.ActionFrame(target)
	damage, advantage := act.Damage, act.HitAdvantage
	if guarding {
		damage = int(math.Floor(float64(act.Damage) * s.config.ChipRatio))
		advantage = act.BlockAdvantage
	}
	d.Health -= damage

	switch {
	case guarding:
		d.StartAction(dc.Block, target)
	case act.Knocksdown():
		d.StartAction(dc.KD, target)
		v := act.KnockdownDistance / float64(move.KnockdownAirborneLength)
		if onLeft {
			v = -v
		}
		d.KnockdownVelocity = v
	default:
		d.StartAction(dc.Damaged, target)
	}

	d.Hitstun = hitstun
	if advantage >= 0 {
		d.Hitstun += advantage
	} else {
		next.P[i].Hitstun -= advantage
	}
	if d.Hitstun < 0 {
		d.Hitstun = 0
	}
}

// throw starts player i's throw on the other player.
func (s *Simulator) throw(next *entity.Frame, i, target int) {
	g, v := &next.P[i], &next.P[entity.Opponent(i)]
	gc, vc := s.reg.Character(g.Character), s.reg.Character(v.Character)

	g.StartAction(gc.Throw, target)
	v.StartAction(vc.ThrownBy(gc), target)
	g.Hitstun = 0
	v.Hitstun = 0
}

// checkKO puts a player out of health into its defeat action.
func (s *Simulator) checkKO(next *entity.Frame, target int) {
	for i := range next.P {
		p := &next.P[i]
		c := s.reg.Character(p.Character)
		if !p.Dead() || p.Action == c.Defeat {
			continue
		}
		p.StartAction(c.Defeat, target)
		p.Hitstun = 0
		next.KO = true
	}
}

// applyHitstop advances a frame inside hitstop: animations hold, the
// defender slides back and nothing else moves.
func (s *Simulator) applyHitstop(next *entity.Frame) {
	next.Hitstop--
	for i := range next.P {
		next.P[i].ActionStart++
	}

	left := 0
	if !next.P1OnLeft() {
		left = 1
	}
	right := entity.Opponent(left)

	switch next.Attacker {
	case 0:
		next.P[left].Pos[0] -= next.Pushback / 2
		next.P[right].Pos[0] += next.Pushback / 2
	default:
		d := entity.Opponent(next.Attacker - 1)
		if d == left {
			next.P[d].Pos[0] -= next.Pushback
		} else {
			next.P[d].Pos[0] += next.Pushback
		}
	}

	s.clampToStage(next, next, next.Number, false)
}
