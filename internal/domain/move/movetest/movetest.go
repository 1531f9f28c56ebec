// Package movetest builds small registries for tests.
package movetest

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Action names of the test boxer.
const (
	Idle         = "idle"
	WalkForward  = "walkForward"
	WalkBackward = "walkBackward"
	Jump         = "jump"
	Damaged      = "damaged"
	Block        = "block"
	StHP         = "stHP"
	StLP         = "stLP"
	ComboHP      = "comboHP"
	Grab         = "grab"
	Throw        = "throw"
	Thrown       = "thrown"
	ThrownGR     = "thrownGR"
	KD           = "kd"
	Defeat       = "defeat"
	Rush         = "rush"
)

// BodyBox is the boxer's default collision box.
var BodyBox = geom.Centered(100, 200)

// Boxer returns the action descriptors of the test boxer in handle order.
func Boxer() []move.Action {
	return []move.Action{
		{Name: Idle, Type: move.TypeIdle, AnimationLength: 60},
		{Name: WalkForward, Type: move.TypeWalk, AnimationLength: 30, Velocity: mgl64.Vec3{4, 0, 0}},
		{Name: WalkBackward, Type: move.TypeWalk, AnimationLength: 30, Velocity: mgl64.Vec3{-2, 0, 0}},
		{Name: Jump, Type: move.TypeJump, LockedFrames: 22, AnimationLength: 22, Velocity: mgl64.Vec3{3, 0, 0}},
		{Name: Damaged, Type: move.TypeDamageReaction, AnimationLength: 20},
		{Name: Block, Type: move.TypeDamageReaction, AnimationLength: 15},
		{
			Name: StHP,
			Hitbox: geom.NewHitbox(
				geom.Span{End: 1},
				geom.Span{End: 2, Boxes: []geom.Box{geom.NewBox(0, 100, 150, 200)}},
			),
			Hurtbox:             geom.Flat(geom.NewBox(0, 100, 120, 200)),
			Damage:              10,
			BlockAdvantage:      -2,
			HitAdvantage:        3,
			LockedFrames:        12,
			AnimationLength:     15,
			SpecialCancelFrames: 4,
		},
		{
			Name: StLP,
			Hitbox: geom.NewHitbox(
				geom.Span{End: 1},
				geom.Span{End: 3, Boxes: []geom.Box{geom.NewBox(0, 120, 110, 170)}},
			),
			Damage:              5,
			BlockAdvantage:      1,
			HitAdvantage:        2,
			LockedFrames:        8,
			AnimationLength:     10,
			SpecialCancelFrames: 3,
		},
		{
			Name: ComboHP,
			Hitbox: geom.NewHitbox(
				geom.Span{End: 2},
				geom.Span{End: 5, Boxes: []geom.Box{geom.NewBox(0, 80, 140, 180)}},
			),
			Damage:            12,
			LockedFrames:      18,
			AnimationLength:   20,
			KnockdownDistance: 120,
		},
		{
			Name: Grab,
			Type: move.TypeGrab,
			Hitbox: geom.NewHitbox(
				geom.Span{End: 2},
				geom.Span{End: 4, Boxes: []geom.Box{geom.NewBox(0, 50, 60, 180)}},
			),
			LockedFrames:    20,
			AnimationLength: 25,
		},
		{Name: Throw, Type: move.TypeThrow, Damage: 20, LockedFrames: 12, AnimationLength: 12},
		{Name: Thrown, Type: move.TypeThrown, LockedFrames: 12, AnimationLength: 12},
		{
			Name: ThrownGR, Type: move.TypeThrown, LockedFrames: 6, AnimationLength: 6,
			Path: []mgl64.Vec3{{60, 0, 0}, {40, 0, 40}, {0, 0, 60}, {-40, 0, 40}, {-60, 0, 10}, {-70, 0, 0}},
		},
		{Name: KD, Type: move.TypeKD, LockedFrames: 40, AnimationLength: 40},
		{Name: Defeat, Type: move.TypeKD, LockedFrames: geom.Forever, AnimationLength: geom.Forever},
		{
			Name: Rush,
			Hitbox: geom.NewHitbox(
				geom.Span{End: 4},
				geom.Span{End: 8, Boxes: []geom.Box{geom.NewBox(0, 80, 120, 180)}},
			),
			Damage:          15,
			LockedFrames:    24,
			AnimationLength: 28,
			Velocity:        mgl64.Vec3{6, 0, 0},
		},
	}
}

// Registry builds a registry with one boxer character named "boxer" and a
// quarter-circle-forward punch motion bound to the rush special.
func Registry(t testing.TB) *move.Registry {
	t.Helper()

	r, err := Build()
	require.NoError(t, err)
	return r
}

// Build is Registry without a testing.TB.
func Build() (*move.Registry, error) {
	b := move.NewBuilder()
	ids := make(map[string]move.ActionID)
	for _, a := range Boxer() {
		id, err := b.AddAction(a)
		if err != nil {
			return nil, err
		}
		ids[a.Name] = id
	}

	// chains reference handles, so patch them in after assignment
	b.SetChains(ids[StLP], map[button.Button]move.ActionID{button.HP: ids[ComboHP]})

	_, err := b.AddCharacter(move.Character{
		Name:         "boxer",
		Collision:    geom.Flat(BodyBox),
		MaxHealth:    100,
		Idle:         ids[Idle],
		WalkForward:  ids[WalkForward],
		WalkBackward: ids[WalkBackward],
		Jump:         ids[Jump],
		Damaged:      ids[Damaged],
		Block:        ids[Block],
		StHP:         ids[StHP],
		StLP:         ids[StLP],
		Grab:         ids[Grab],
		Throw:        ids[Throw],
		Thrown:       ids[Thrown],
		ThrownGR:     ids[ThrownGR],
		KD:           ids[KD],
		Defeat:       ids[Defeat],
		Specials:     map[button.Button]move.ActionID{button.QCFP: ids[Rush]},
	})
	if err != nil {
		return nil, err
	}

	b.AddMotion(move.MotionCommand{
		Button:   button.QCFP,
		Sequence: []button.Button{button.Down, button.DownForward, button.Forward, button.LP},
	})

	return b.Build()
}

// ID returns the handle of a named action.
func ID(t testing.TB, r *move.Registry, name string) move.ActionID {
	t.Helper()

	id, err := r.ActionByName(name)
	require.NoError(t, err)
	return id
}
