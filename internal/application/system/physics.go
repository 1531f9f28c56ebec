package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

// facing returns 1 for a player facing right and -1 otherwise
func facing(p *entity.Player) float64 {
	if p.FacingRight {
		return 1
	}
	return -1
}

// integrate moves both players by their action's velocity or scripted curve.
func (s *Simulator) integrate(next *entity.Frame, target int) {
	for i := range next.P {
		p := &next.P[i]
		a := s.reg.Action(p.Action)
		af := p.ActionFrame(target)

		if a.Type == move.TypeThrown {
			// the grabber carries the victim along a fixed path
			g := &next.P[entity.Opponent(i)]
			off := move.ThrownOffset(a.Path, af)
			p.Pos = mgl64.Vec3{
				g.Pos[0] + facing(g)*off[0],
				g.Pos[1] + off[1],
				g.Pos[2] + off[2],
			}
			continue
		}

		p.Pos[0] += facing(p) * a.Velocity[0]
		p.Pos[1] += a.Velocity[1]

		switch a.Type {
		case move.TypeJump:
			p.Pos[2] = move.JumpHeight(af)
		case move.TypeKD:
			p.Pos[2] = move.KnockdownHeight(af)
			if af < move.KnockdownAirborneLength {
				p.Pos[0] += p.KnockdownVelocity
			}
		default:
			p.Pos[2] = 0
		}
	}
}

// antiTeleport undoes motion that carried the players through each other
// and far apart in a single frame.
func (s *Simulator) antiTeleport(prev, next *entity.Frame) {
	before := prev.P[1].Pos[0] - prev.P[0].Pos[0]
	after := next.P[1].Pos[0] - next.P[0].Pos[0]
	if math.Abs(after) <= s.config.AntiTeleport || (before < 0) == (after < 0) {
		return
	}

	mid := (prev.P[0].Pos[0] + prev.P[1].Pos[0]) / 2
	for i := range next.P {
		p := &next.P[i]
		if s.reg.Action(p.Action).Type == move.TypeThrown {
			continue
		}
		if math.Abs(p.Pos[0]-mid) > math.Abs(prev.P[i].Pos[0]-mid) {
			p.Pos[0] = prev.P[i].Pos[0]
		}
	}
}

// passThrough reports whether a player ignores body collision with the
// other player: airborne knockdowns and throw victims.
func (s *Simulator) passThrough(p *entity.Player, frame int) bool {
	switch s.reg.Action(p.Action).Type {
	case move.TypeThrown:
		return true
	case move.TypeKD:
		return p.ActionFrame(frame) < move.KnockdownAirborneLength
	}
	return false
}

// separate pushes overlapping bodies apart, half the overlap each.
func (s *Simulator) separate(prev, next *entity.Frame, target int) {
	p1, p2 := &next.P[0], &next.P[1]
	if s.passThrough(p1, target) || s.passThrough(p2, target) {
		return
	}
	b1, ok1 := s.collision(p1, target)
	b2, ok2 := s.collision(p2, target)
	if !ok1 || !ok2 {
		return
	}

	e := b1.CollisionExtent(b2, p1.Offset(), p2.Offset(), p1.FacingRight, p2.FacingRight)
	if e == 0 {
		return
	}

	if p1.Pos[0] == p2.Pos[0] {
		// stacked exactly: whoever moved in goes back the way it came
		e = math.Abs(e)
		if !s.p1GoesRight(prev, next) {
			e = -e
		}
	}

	p1.Pos[0] += e / 2
	p2.Pos[0] -= e / 2
}

// p1GoesRight breaks an exact overlap using the direction each player moved.
func (s *Simulator) p1GoesRight(prev, next *entity.Frame) bool {
	d1 := next.P[0].Pos[0] - prev.P[0].Pos[0]
	d2 := next.P[1].Pos[0] - prev.P[1].Pos[0]
	switch {
	case d1 > 0 || d2 < 0:
		return false
	case d1 < 0 || d2 > 0:
		return true
	}
	return !prev.P1OnLeft()
}

// clampToStage keeps both bodies inside the stage bounds. With pair set, a
// player pushed off a wall also pushes the other player, and two players
// against the same wall are stacked with the one that was nearer the wall
// keeping it.
func (s *Simulator) clampToStage(prev, next *entity.Frame, target int, pair bool) {
	left, right := s.stage.LeftWall(), s.stage.RightWall()

	var adj [2]float64
	var boxes [2]geom.Box
	var ok [2]bool
	for i := range next.P {
		p := &next.P[i]
		boxes[i], ok[i] = s.collision(p, target)
		if !ok[i] {
			continue
		}
		e := boxes[i].CollisionExtent(left, p.Offset(), geom.Offset{}, p.FacingRight, true)
		if e == 0 {
			e = boxes[i].CollisionExtent(right, p.Offset(), geom.Offset{}, p.FacingRight, true)
		}
		p.Pos[0] += e
		adj[i] = e
	}

	if !pair || !ok[0] || !ok[1] {
		return
	}
	if s.passThrough(&next.P[0], target) || s.passThrough(&next.P[1], target) {
		return
	}

	switch {
	case adj[0] != 0 && adj[1] != 0:
		s.stackInCorner(prev, next, boxes, adj[0] > 0)
	case adj[0] != 0:
		s.pushAway(next, 1, boxes)
	case adj[1] != 0:
		s.pushAway(next, 0, boxes)
	}
}

// pushAway moves player i out of the other player's body.
func (s *Simulator) pushAway(next *entity.Frame, i int, boxes [2]geom.Box) {
	j := entity.Opponent(i)
	p, o := &next.P[i], &next.P[j]
	p.Pos[0] += boxes[i].CollisionExtent(boxes[j], p.Offset(), o.Offset(), p.FacingRight, o.FacingRight)
}

// stackInCorner resolves both players being pushed off the same wall. The
// player that was nearer the wall on the previous frame keeps it, and on a
// tie player 1 takes the left side.
func (s *Simulator) stackInCorner(prev, next *entity.Frame, boxes [2]geom.Box, leftWall bool) {
	x1, x2 := prev.P[0].Pos[0], prev.P[1].Pos[0]

	var keeper int
	if leftWall {
		keeper = 0
		if x2 < x1 {
			keeper = 1
		}
	} else {
		keeper = 1
		if x1 > x2 {
			keeper = 0
		}
	}

	other := entity.Opponent(keeper)
	k, o := &next.P[keeper], &next.P[other]
	kb := boxes[keeper].Placed(k.Offset(), k.FacingRight)
	ob := boxes[other].Placed(o.Offset(), o.FacingRight)
	if leftWall {
		if d := kb.XEnd - ob.X; d > 0 {
			o.Pos[0] += d
		}
		return
	}
	if d := kb.X - ob.XEnd; d < 0 {
		o.Pos[0] += d
	}
}
