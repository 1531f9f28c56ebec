package move

import (
	"errors"
	"fmt"

	"github.com/younwookim/brawl/internal/domain/button"
	"github.com/younwookim/brawl/internal/domain/geom"
)

// Table capacities.
const (
	MaxActions    = 128
	MaxCharacters = 8
)

var (
	// ErrRegistryFull is returned when a table would exceed its capacity.
	ErrRegistryFull = errors.New("move registry full")
	// ErrUnknownAction is returned for handles or names that are not registered.
	ErrUnknownAction = errors.New("unknown action")
)

// Registry is the immutable set of actions, characters and motion commands
// for a match. Handles are indices into its tables.
type Registry struct {
	actions    []Action
	characters []Character
	motions    []MotionCommand

	actionNames    map[string]ActionID
	characterNames map[string]CharacterID
}

// Action returns the action for id. id must be a handle issued by this
// registry.
func (r *Registry) Action(id ActionID) *Action {
	return &r.actions[id]
}

// Lookup returns the action for id, or ErrUnknownAction.
func (r *Registry) Lookup(id ActionID) (*Action, error) {
	if id < 0 || int(id) >= len(r.actions) {
		return nil, fmt.Errorf("action %d: %w", id, ErrUnknownAction)
	}
	return &r.actions[id], nil
}

// ActionByName returns the handle of the named action.
func (r *Registry) ActionByName(name string) (ActionID, error) {
	id, ok := r.actionNames[name]
	if !ok {
		return NoAction, fmt.Errorf("action %q: %w", name, ErrUnknownAction)
	}
	return id, nil
}

// Character returns the character for id.
func (r *Registry) Character(id CharacterID) *Character {
	return &r.characters[id]
}

// CharacterByName returns the handle of the named character.
func (r *Registry) CharacterByName(name string) (CharacterID, bool) {
	id, ok := r.characterNames[name]
	return id, ok
}

// CharacterOf returns the character owning action id.
func (r *Registry) CharacterOf(id ActionID) *Character {
	return &r.characters[r.actions[id].Character]
}

// Motions returns the motion commands in registration order.
func (r *Registry) Motions() []MotionCommand {
	return r.motions
}

// NumActions returns the number of registered actions.
func (r *Registry) NumActions() int { return len(r.actions) }

// NumCharacters returns the number of registered characters.
func (r *Registry) NumCharacters() int { return len(r.characters) }

// Collision returns the body box of action id on frame. The action's own
// collision timeline is used when it has a box on that frame, otherwise the
// owning character's default. ok is false when neither has a box.
func (r *Registry) Collision(id ActionID, frame int) (box geom.Box, ok bool) {
	a := &r.actions[id]
	if a.Collision != nil {
		if boxes, _ := a.Collision.At(frame); len(boxes) > 0 {
			return boxes[0], true
		}
	}
	if boxes, _ := r.characters[a.Character].Collision.At(frame); len(boxes) > 0 {
		return boxes[0], true
	}
	return geom.Box{}, false
}

// Builder collects descriptors in order and produces a Registry. Handles are
// assigned by insertion order.
type Builder struct {
	actions    []Action
	characters []Character
	motions    []MotionCommand
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddAction appends an action and returns its handle.
func (b *Builder) AddAction(a Action) (ActionID, error) {
	if len(b.actions) >= MaxActions {
		return NoAction, fmt.Errorf("action %q: %w", a.Name, ErrRegistryFull)
	}
	a.ID = ActionID(len(b.actions))
	b.actions = append(b.actions, a)
	return a.ID, nil
}

// SetChains replaces the chain table of an already added action. Chains
// usually reference actions added later, so loaders add every action first.
func (b *Builder) SetChains(id ActionID, chains map[button.Button]ActionID) {
	if id >= 0 && int(id) < len(b.actions) {
		b.actions[id].Chains = chains
	}
}

// AddCharacter appends a character and returns its handle.
func (b *Builder) AddCharacter(c Character) (CharacterID, error) {
	if len(b.characters) >= MaxCharacters {
		return 0, fmt.Errorf("character %q: %w", c.Name, ErrRegistryFull)
	}
	c.ID = CharacterID(len(b.characters))
	b.characters = append(b.characters, c)
	return c.ID, nil
}

// AddMotion appends a motion command. Earlier commands take priority.
func (b *Builder) AddMotion(m MotionCommand) {
	b.motions = append(b.motions, m)
}

// Build validates every cross reference and returns the registry. The
// builder must not be used afterwards.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		actions:        b.actions,
		characters:     b.characters,
		motions:        b.motions,
		actionNames:    make(map[string]ActionID, len(b.actions)),
		characterNames: make(map[string]CharacterID, len(b.characters)),
	}

	valid := func(id ActionID) bool {
		return id >= 0 && int(id) < len(r.actions)
	}

	for i := range r.actions {
		a := &r.actions[i]
		if a.Name != "" {
			if _, dup := r.actionNames[a.Name]; dup {
				return nil, fmt.Errorf("duplicate action name %q", a.Name)
			}
			r.actionNames[a.Name] = a.ID
		}
		if a.Character < 0 || int(a.Character) >= len(r.characters) {
			return nil, fmt.Errorf("action %q: unknown character %d", a.Name, a.Character)
		}
		for btn, target := range a.Chains {
			if !valid(target) {
				return nil, fmt.Errorf("action %q chain %s: %w", a.Name, btn, ErrUnknownAction)
			}
		}
	}

	for i := range r.characters {
		c := &r.characters[i]
		if c.Name != "" {
			if _, dup := r.characterNames[c.Name]; dup {
				return nil, fmt.Errorf("duplicate character name %q", c.Name)
			}
			r.characterNames[c.Name] = c.ID
		}
		if c.Collision.Empty() {
			return nil, fmt.Errorf("character %q: missing collision box", c.Name)
		}
		for _, slot := range c.canonical() {
			if !valid(slot.id) {
				return nil, fmt.Errorf("character %q %s: %w", c.Name, slot.name, ErrUnknownAction)
			}
		}
		for btn, target := range c.Specials {
			if !valid(target) {
				return nil, fmt.Errorf("character %q special %s: %w", c.Name, btn, ErrUnknownAction)
			}
		}
	}

	for _, m := range r.motions {
		if len(m.Sequence) < 2 {
			return nil, fmt.Errorf("motion %s: sequence needs a direction and a button", m.Button)
		}
	}

	return r, nil
}
