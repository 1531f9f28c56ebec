package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Build turns a move table into an immutable registry. Actions and
// characters get handles in list order; names are resolved to handles.
func Build(cfg *MovesConfig) (*move.Registry, error) {
	b := move.NewBuilder()

	chars := make(map[string]move.CharacterID, len(cfg.Characters))
	for i, c := range cfg.Characters {
		chars[c.Name] = move.CharacterID(i)
	}

	ids := make(map[string]move.ActionID, len(cfg.Actions))
	for _, ac := range cfg.Actions {
		a, err := actionFromConfig(ac, chars)
		if err != nil {
			return nil, err
		}
		id, err := b.AddAction(a)
		if err != nil {
			return nil, err
		}
		ids[ac.Name] = id
	}

	resolve := func(owner, name string) (move.ActionID, error) {
		id, ok := ids[name]
		if !ok {
			return move.NoAction, fmt.Errorf("%s: action %q: %w", owner, name, move.ErrUnknownAction)
		}
		return id, nil
	}

	for _, ac := range cfg.Actions {
		if len(ac.Chains) == 0 {
			continue
		}
		chains, err := buttonMap(ac.Chains, "action "+ac.Name, resolve)
		if err != nil {
			return nil, err
		}
		b.SetChains(ids[ac.Name], chains)
	}

	for _, cc := range cfg.Characters {
		c, err := characterFromConfig(cc, resolve)
		if err != nil {
			return nil, err
		}
		if _, err := b.AddCharacter(c); err != nil {
			return nil, err
		}
	}

	for _, mc := range cfg.Motions {
		m, err := motionFromConfig(mc)
		if err != nil {
			return nil, err
		}
		b.AddMotion(m)
	}

	return b.Build()
}

func actionFromConfig(ac ActionConfig, chars map[string]move.CharacterID) (move.Action, error) {
	cid, ok := chars[ac.Character]
	if !ok {
		return move.Action{}, fmt.Errorf("action %q: unknown character %q", ac.Name, ac.Character)
	}

	var typ move.ActionType
	if err := typ.UnmarshalText([]byte(ac.Type)); err != nil {
		return move.Action{}, fmt.Errorf("action %q: %w", ac.Name, err)
	}

	a := move.Action{
		Name:                ac.Name,
		Character:           cid,
		Animation:           ac.Animation,
		Hitbox:              hitboxFromConfig(ac.Hitbox),
		Hurtbox:             hitboxFromConfig(ac.Hurtbox),
		Damage:              ac.Damage,
		BlockAdvantage:      ac.BlockAdvantage,
		HitAdvantage:        ac.HitAdvantage,
		LockedFrames:        ac.LockedFrames,
		AnimationLength:     ac.AnimationLength,
		SpecialCancelFrames: ac.SpecialCancelFrames,
		Type:                typ,
		Velocity:            mgl64.Vec3(ac.Velocity),
		KnockdownDistance:   ac.KnockdownDistance,
	}
	if a.Animation == "" {
		a.Animation = ac.Name
	}
	if ac.Collision != nil && !ac.Collision.IsZero() {
		h := hitboxFromConfig(*ac.Collision)
		a.Collision = &h
	}
	for _, p := range ac.Path {
		a.Path = append(a.Path, mgl64.Vec3(p))
	}
	return a, nil
}

func characterFromConfig(cc CharacterConfig, resolve func(owner, name string) (move.ActionID, error)) (move.Character, error) {
	c := move.Character{
		Name:         cc.Name,
		Collision:    hitboxFromConfig(cc.Collision),
		MaxHealth:    cc.MaxHealth,
		GrappleThrow: cc.GrappleThrow,
	}

	owner := "character " + cc.Name
	slots := []struct {
		dst  *move.ActionID
		name string
	}{
		{&c.Idle, cc.Idle},
		{&c.WalkForward, cc.WalkForward},
		{&c.WalkBackward, cc.WalkBackward},
		{&c.Jump, cc.Jump},
		{&c.Damaged, cc.Damaged},
		{&c.Block, cc.Block},
		{&c.StHP, cc.StHP},
		{&c.StLP, cc.StLP},
		{&c.Grab, cc.Grab},
		{&c.Throw, cc.Throw},
		{&c.Thrown, cc.Thrown},
		{&c.ThrownGR, cc.ThrownGR},
		{&c.KD, cc.KD},
		{&c.Defeat, cc.Defeat},
	}
	for _, s := range slots {
		id, err := resolve(owner, s.name)
		if err != nil {
			return move.Character{}, err
		}
		*s.dst = id
	}

	if len(cc.Specials) > 0 {
		specials, err := buttonMap(cc.Specials, owner, resolve)
		if err != nil {
			return move.Character{}, err
		}
		c.Specials = specials
	}
	return c, nil
}

func motionFromConfig(mc MotionConfig) (move.MotionCommand, error) {
	btn, err := button.Parse(mc.Button)
	if err != nil {
		return move.MotionCommand{}, fmt.Errorf("motion: %w", err)
	}
	m := move.MotionCommand{Button: btn}
	for _, s := range mc.Sequence {
		b, err := button.Parse(s)
		if err != nil {
			return move.MotionCommand{}, fmt.Errorf("motion %s: %w", mc.Button, err)
		}
		m.Sequence = append(m.Sequence, b)
	}
	return m, nil
}

func buttonMap(src map[string]string, owner string, resolve func(owner, name string) (move.ActionID, error)) (map[button.Button]move.ActionID, error) {
	out := make(map[button.Button]move.ActionID, len(src))
	for k, v := range src {
		btn, err := button.Parse(k)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", owner, err)
		}
		id, err := resolve(owner, v)
		if err != nil {
			return nil, err
		}
		out[btn] = id
	}
	return out, nil
}

func hitboxFromConfig(hc HitboxConfig) geom.Hitbox {
	if len(hc.Spans) > 0 {
		spans := make([]geom.Span, len(hc.Spans))
		for i, s := range hc.Spans {
			spans[i] = geom.Span{End: s.End, Boxes: boxesFromConfig(s.Boxes)}
		}
		return geom.NewHitbox(spans...)
	}
	if len(hc.Boxes) > 0 {
		return geom.Flat(boxesFromConfig(hc.Boxes)...)
	}
	return geom.Hitbox{}
}

func boxesFromConfig(bs []BoxConfig) []geom.Box {
	if len(bs) == 0 {
		return nil
	}
	out := make([]geom.Box, len(bs))
	for i, b := range bs {
		out[i] = geom.NewBox(b[0], b[1], b[2], b[3])
	}
	return out
}
