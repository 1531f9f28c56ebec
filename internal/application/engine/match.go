package engine

import (
	"errors"
	"fmt"

	"github.com/younwookim/brawl/internal/application/system"
	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/move"
	"github.com/younwookim/brawl/internal/infrastructure/config"
)

// ErrUnknownCharacter is returned for a character name missing from the
// move table
var ErrUnknownCharacter = errors.New("unknown character")

// Match is everything needed to start engines for one pairing on one stage.
// It is immutable, so any number of engines may share it.
type Match struct {
	Registry   *move.Registry
	Stage      *entity.Stage
	Config     *config.EngineConfig
	Characters [2]move.CharacterID
}

// NewMatch builds the registry and stage described by cfg for the named
// characters.
func NewMatch(cfg *config.GameConfig, p1, p2 string) (*Match, error) {
	reg, err := config.Build(cfg.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to build move table: %w", err)
	}

	stage, err := cfg.Stage.ToStage()
	if err != nil {
		return nil, err
	}

	m := &Match{Registry: reg, Stage: stage, Config: cfg.Engine}
	for i, name := range [2]string{p1, p2} {
		id, ok := reg.CharacterByName(name)
		if !ok {
			return nil, fmt.Errorf("player %d: %q: %w", i+1, name, ErrUnknownCharacter)
		}
		m.Characters[i] = id
	}
	return m, nil
}

// NewEngine creates a new engine for the match
func (m *Match) NewEngine() *Engine {
	sim := system.NewSimulator(m.Registry, m.Stage, &m.Config.Combat)
	return NewEngine(sim, m.Config, m.Characters[0], m.Characters[1])
}

// CharacterNames returns the names of both characters
func (m *Match) CharacterNames() [2]string {
	return [2]string{
		m.Registry.Character(m.Characters[0]).Name,
		m.Registry.Character(m.Characters[1]).Name,
	}
}
