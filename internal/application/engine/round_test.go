package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/application/state"
	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

type lifecycle struct {
	preRounds int
	begins    int
	roundEnds []int
	fightEnds []int
}

func watch(e *Engine) *lifecycle {
	l := &lifecycle{}
	e.OnPreRound = func() { l.preRounds++ }
	e.OnRoundBegin = func() { l.begins++ }
	e.OnRoundEnd = func(winner int) { l.roundEnds = append(l.roundEnds, winner) }
	e.OnFightEnd = func(winner int) { l.fightEnds = append(l.fightEnds, winner) }
	return l
}

// tickTo ticks until frame is reached
func tickTo(t *testing.T, e *Engine, frame int) {
	t.Helper()
	for e.CurrentFrame() < frame {
		require.NoError(t, e.Tick())
	}
}

// knockOut leaves player 2 one punch from defeat and has player 1 press
// heavy punch on target. With a delay of 2 the punch lands on target+4.
func knockOut(t *testing.T, e *Engine, target int) {
	t.Helper()
	e.frames.Last().P[1].Health = 5
	require.NoError(t, e.Buttons(0, button.MaskOf(button.HP), 0, target))
}

func TestEngine_SkipPreRound(t *testing.T) {
	e := createTestEngine(t, nil)
	l := watch(e)

	e.Start()
	e.Start()

	assert.Equal(t, 1, l.preRounds)
	assert.Equal(t, 1, l.begins)
	assert.Equal(t, state.PhaseRound, e.Phase())
	assert.Equal(t, state.ModeFight, e.Mode())
}

func TestEngine_RoundLifecycle(t *testing.T) {
	e := createTestEngine(t, func(cfg *config.EngineConfig) {
		cfg.Round.SkipPreRound = false
		cfg.Round.PreRoundFrames = 2
		cfg.Round.EndRoundFrames = 3
		cfg.Round.RoundsToWin = 2
	})
	l := watch(e)

	e.Start()
	assert.Equal(t, 1, l.preRounds)
	assert.Equal(t, state.PhasePreRound, e.Phase())
	assert.Equal(t, state.ModeIdle, e.Mode())

	tickTo(t, e, 1)
	assert.Equal(t, 0, l.begins)

	tickTo(t, e, 2)
	assert.Equal(t, 1, l.begins)
	assert.Equal(t, state.PhaseRound, e.Phase())

	knockOut(t, e, 3)
	tickTo(t, e, 6)
	assert.Empty(t, l.roundEnds)

	tickTo(t, e, 7)
	assert.Equal(t, []int{1}, l.roundEnds)
	assert.Equal(t, state.PhaseEndRound, e.Phase())
	assert.Equal(t, state.ModeIdle, e.Mode())
	wins, err := e.Wins(0)
	require.NoError(t, err)
	assert.Equal(t, 1, wins)
	assert.Empty(t, l.fightEnds)

	// the next round starts from fresh players
	tickTo(t, e, 10)
	assert.Equal(t, 2, l.preRounds)
	assert.Equal(t, state.PhasePreRound, e.Phase())
	health, err := e.PlayerHealth(1)
	require.NoError(t, err)
	assert.Equal(t, 100, health)
	pos, err := e.PlayerPos(1)
	require.NoError(t, err)
	assert.Equal(t, 120.0, pos[0])

	tickTo(t, e, 12)
	assert.Equal(t, 2, l.begins)

	knockOut(t, e, 13)
	tickTo(t, e, 30)

	assert.Equal(t, []int{1, 1}, l.roundEnds)
	assert.Equal(t, []int{1}, l.fightEnds)
	assert.Equal(t, 2, l.preRounds)
	assert.Equal(t, state.PhaseFightOver, e.Phase())
	wins, err = e.Wins(0)
	require.NoError(t, err)
	assert.Equal(t, 2, wins)
}

func TestEngine_RollbackStopsAtRoundStart(t *testing.T) {
	e := createTestEngine(t, func(cfg *config.EngineConfig) {
		cfg.Round.SkipPreRound = false
		cfg.Round.PreRoundFrames = 5
	})
	e.Start()
	tickTo(t, e, 7)
	require.Equal(t, state.PhaseRound, e.Phase())
	before := e.Frame()

	// only pre-round frames ever read it, and those are not recomputed
	require.NoError(t, e.Buttons(0, button.MaskOf(button.HP), 0, 1))
	require.NoError(t, e.Tick())

	assert.Equal(t, 8, e.CurrentFrame())
	assert.Equal(t, before.P[0].Action, e.Frame().P[0].Action)
}
