package engine

import (
	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/domain/entity"
)

// Phase returns the current round phase.
func (e *Engine) Phase() state.Phase {
	return e.phase
}

// Mode returns the mode the decoders and simulator run in.
func (e *Engine) Mode() state.Mode {
	return e.phase.Mode()
}

// Wins returns the rounds player i has won.
func (e *Engine) Wins(i int) (int, error) {
	if err := checkPlayer(i); err != nil {
		return 0, err
	}
	return e.wins[i], nil
}

func (e *Engine) setPhase(p state.Phase) {
	e.phase = p
	for _, d := range e.decoders {
		d.SetMode(p.Mode())
	}
	// rollback never reaches across a transition
	e.rollbackStopFrame = e.frame + 1
}

// preRound puts both players back at their start positions and forgets all
// input.
func (e *Engine) preRound() {
	e.frames.Reset(e.sim.InitialFrame(e.frame, e.characters[0], e.characters[1]))
	for _, d := range e.decoders {
		d.Reset()
	}
	e.setPhase(state.PhasePreRound)
	e.Logger.Printf("pre-round at frame %d", e.frame)
	if e.OnPreRound != nil {
		e.OnPreRound()
	}

	if e.config.Round.SkipPreRound {
		e.beginRound()
		return
	}
	e.transitionAt = e.frame + e.config.Round.PreRoundFrames
}

func (e *Engine) beginRound() {
	e.setPhase(state.PhaseRound)
	e.Logger.Printf("round begins at frame %d", e.frame)
	if e.OnRoundBegin != nil {
		e.OnRoundBegin()
	}
}

// endRound scores the round and either schedules the next pre-round or
// ends the fight.
func (e *Engine) endRound(winner int) {
	e.setPhase(state.PhaseEndRound)
	if winner > 0 {
		e.wins[winner-1]++
	}
	e.Logger.Printf("round ends at frame %d, winner %d, score %d-%d", e.frame, winner, e.wins[0], e.wins[1])
	if e.OnRoundEnd != nil {
		e.OnRoundEnd(winner)
	}

	if winner > 0 && e.config.Round.RoundsToWin > 0 && e.wins[winner-1] >= e.config.Round.RoundsToWin {
		e.setPhase(state.PhaseFightOver)
		e.Logger.Printf("fight over, winner %d", winner)
		if e.OnFightEnd != nil {
			e.OnFightEnd(winner)
		}
		return
	}
	e.transitionAt = e.frame + e.config.Round.EndRoundFrames
}

// checkRound applies the transitions due on the frame just computed.
func (e *Engine) checkRound(f *entity.Frame) {
	switch e.phase {
	case state.PhasePreRound:
		if e.frame >= e.transitionAt {
			e.beginRound()
		}
	case state.PhaseRound:
		p1, p2 := f.P[0].Dead(), f.P[1].Dead()
		switch {
		case p1 && p2:
			e.endRound(0)
		case p1:
			e.endRound(2)
		case p2:
			e.endRound(1)
		}
	case state.PhaseEndRound:
		if e.frame >= e.transitionAt {
			e.preRound()
		}
	}
}
