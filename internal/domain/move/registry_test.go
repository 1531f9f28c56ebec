package move_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/domain/move/movetest"
)

func TestRegistry_Build(t *testing.T) {
	r := movetest.Registry(t)

	assert.Equal(t, len(movetest.Boxer()), r.NumActions())
	assert.Equal(t, 1, r.NumCharacters())

	id, err := r.ActionByName(movetest.StHP)
	require.NoError(t, err)
	a := r.Action(id)
	assert.Equal(t, movetest.StHP, a.Name)
	assert.Equal(t, id, a.ID)
	assert.Equal(t, 10, a.Damage)

	c := r.CharacterOf(id)
	assert.Equal(t, "boxer", c.Name)
	assert.Equal(t, id, c.StHP)

	cid, ok := r.CharacterByName("boxer")
	assert.True(t, ok)
	assert.Equal(t, c, r.Character(cid))

	require.Len(t, r.Motions(), 1)
	assert.Equal(t, button.LP, r.Motions()[0].Trigger())
	assert.Equal(t, []button.Button{button.Down, button.DownForward, button.Forward}, r.Motions()[0].Directions())
}

func TestRegistry_Lookup(t *testing.T) {
	r := movetest.Registry(t)

	_, err := r.Lookup(move.ActionID(r.NumActions()))
	assert.True(t, errors.Is(err, move.ErrUnknownAction))

	_, err = r.Lookup(move.NoAction)
	assert.True(t, errors.Is(err, move.ErrUnknownAction))

	_, err = r.ActionByName("hadouken")
	assert.True(t, errors.Is(err, move.ErrUnknownAction))

	a, err := r.Lookup(0)
	require.NoError(t, err)
	assert.Equal(t, movetest.Idle, a.Name)
}

func TestRegistry_Collision(t *testing.T) {
	b := move.NewBuilder()
	crouch := geom.Flat(geom.Centered(100, 120))
	idle, _ := b.AddAction(move.Action{Name: "idle", Type: move.TypeIdle})
	low, _ := b.AddAction(move.Action{Name: "low", Collision: &crouch})
	// only overrides the first few frames
	early := geom.NewHitbox(geom.Span{End: 2, Boxes: []geom.Box{geom.Centered(60, 200)}})
	lunge, _ := b.AddAction(move.Action{Name: "lunge", Collision: &early})

	_, err := b.AddCharacter(canonicalCharacter("c", idle))
	require.NoError(t, err)
	r, err := b.Build()
	require.NoError(t, err)

	box, ok := r.Collision(idle, 0)
	assert.True(t, ok)
	assert.Equal(t, movetest.BodyBox, box)

	box, ok = r.Collision(low, 5)
	assert.True(t, ok)
	assert.Equal(t, geom.Centered(100, 120), box)

	box, ok = r.Collision(lunge, 1)
	assert.True(t, ok)
	assert.Equal(t, geom.Centered(60, 200), box)

	box, ok = r.Collision(lunge, 3)
	assert.True(t, ok)
	assert.Equal(t, movetest.BodyBox, box)
}

func TestBuilder_Full(t *testing.T) {
	b := move.NewBuilder()
	for i := 0; i < move.MaxActions; i++ {
		_, err := b.AddAction(move.Action{Name: fmt.Sprintf("a%d", i)})
		require.NoError(t, err)
	}
	_, err := b.AddAction(move.Action{Name: "overflow"})
	assert.True(t, errors.Is(err, move.ErrRegistryFull))

	for i := 0; i < move.MaxCharacters; i++ {
		_, err := b.AddCharacter(canonicalCharacter(fmt.Sprintf("c%d", i), 0))
		require.NoError(t, err)
	}
	_, err = b.AddCharacter(canonicalCharacter("overflow", 0))
	assert.True(t, errors.Is(err, move.ErrRegistryFull))
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *move.Builder)
		isErr error
	}{
		{
			name: "chain to unknown action",
			build: func(b *move.Builder) {
				id, _ := b.AddAction(move.Action{Name: "idle"})
				b.SetChains(id, map[button.Button]move.ActionID{button.HP: 42})
				_, _ = b.AddCharacter(canonicalCharacter("c", id))
			},
			isErr: move.ErrUnknownAction,
		},
		{
			name: "special to unknown action",
			build: func(b *move.Builder) {
				id, _ := b.AddAction(move.Action{Name: "idle"})
				c := canonicalCharacter("c", id)
				c.Specials = map[button.Button]move.ActionID{button.QCFP: 7}
				_, _ = b.AddCharacter(c)
			},
			isErr: move.ErrUnknownAction,
		},
		{
			name: "missing canonical action",
			build: func(b *move.Builder) {
				id, _ := b.AddAction(move.Action{Name: "idle"})
				c := canonicalCharacter("c", id)
				c.Defeat = move.NoAction
				_, _ = b.AddCharacter(c)
			},
			isErr: move.ErrUnknownAction,
		},
		{
			name: "action without character",
			build: func(b *move.Builder) {
				_, _ = b.AddAction(move.Action{Name: "idle", Character: 3})
			},
		},
		{
			name: "duplicate action name",
			build: func(b *move.Builder) {
				id, _ := b.AddAction(move.Action{Name: "idle"})
				_, _ = b.AddAction(move.Action{Name: "idle"})
				_, _ = b.AddCharacter(canonicalCharacter("c", id))
			},
		},
		{
			name: "motion without direction",
			build: func(b *move.Builder) {
				id, _ := b.AddAction(move.Action{Name: "idle"})
				_, _ = b.AddCharacter(canonicalCharacter("c", id))
				b.AddMotion(move.MotionCommand{Button: button.QCFP, Sequence: []button.Button{button.LP}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := move.NewBuilder()
			tt.build(b)
			_, err := b.Build()
			require.Error(t, err)
			if tt.isErr != nil {
				assert.True(t, errors.Is(err, tt.isErr))
			}
		})
	}
}

func TestActionType_Text(t *testing.T) {
	var at move.ActionType
	require.NoError(t, at.UnmarshalText([]byte("damagereaction")))
	assert.Equal(t, move.TypeDamageReaction, at)

	require.NoError(t, at.UnmarshalText([]byte("")))
	assert.Equal(t, move.TypeOther, at)

	assert.Error(t, at.UnmarshalText([]byte("teleport")))
	assert.Equal(t, "KD", move.TypeKD.String())
	assert.Equal(t, "Unknown", move.ActionType(99).String())
}

func TestAction_Predicates(t *testing.T) {
	assert.True(t, (&move.Action{Type: move.TypeIdle}).IsWalkOrIdle())
	assert.True(t, (&move.Action{Type: move.TypeWalk}).IsWalkOrIdle())
	assert.False(t, (&move.Action{Type: move.TypeJump}).IsWalkOrIdle())

	assert.True(t, (&move.Action{KnockdownDistance: 50}).Knocksdown())
	assert.False(t, (&move.Action{KnockdownDistance: -1}).Knocksdown())
	assert.False(t, (&move.Action{}).Knocksdown())
}

func TestCurves(t *testing.T) {
	assert.Equal(t, 0.0, move.JumpHeight(0))
	assert.Equal(t, 22*move.JumpScale, move.JumpHeight(10))
	assert.Equal(t, 0.0, move.JumpHeight(len(move.JumpHeights)))
	assert.Equal(t, 0.0, move.JumpHeight(-1))

	assert.Equal(t, 20.0, move.KnockdownHeight(4))
	assert.Equal(t, 0.0, move.KnockdownHeight(move.KnockdownAirborneLength))

	last := move.ThrownPositions[len(move.ThrownPositions)-1]
	assert.Equal(t, move.ThrownPositions[0], move.ThrownOffset(nil, 0))
	assert.Equal(t, last, move.ThrownOffset(nil, 100))

	path := movetest.Boxer()[12].Path
	assert.Equal(t, path[2], move.ThrownOffset(path, 2))
}

func TestCharacter_ThrownBy(t *testing.T) {
	victim := &move.Character{Thrown: 1, ThrownGR: 2}
	assert.Equal(t, move.ActionID(1), victim.ThrownBy(&move.Character{}))
	assert.Equal(t, move.ActionID(2), victim.ThrownBy(&move.Character{GrappleThrow: true}))
}

func canonicalCharacter(name string, id move.ActionID) move.Character {
	return move.Character{
		Name:         name,
		Collision:    geom.Flat(movetest.BodyBox),
		MaxHealth:    100,
		Idle:         id,
		WalkForward:  id,
		WalkBackward: id,
		Jump:         id,
		Damaged:      id,
		Block:        id,
		StHP:         id,
		StLP:         id,
		Grab:         id,
		Throw:        id,
		Thrown:       id,
		ThrownGR:     id,
		KD:           id,
		Defeat:       id,
	}
}
