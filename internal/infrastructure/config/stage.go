package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/brawl/internal/domain/entity"
)

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Bounds BoundsConfig      `json:"bounds"`
	Start  [2]PositionConfig `json:"start"`
}

type BoundsConfig struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

type PositionConfig struct {
	X      float64 `json:"x"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

// ToStage converts the config into the stage value the simulator uses
func (c *StageConfig) ToStage() (*entity.Stage, error) {
	if c.Bounds.Right <= c.Bounds.Left {
		return nil, fmt.Errorf("stage %s: right bound %v must exceed left bound %v", c.ID, c.Bounds.Right, c.Bounds.Left)
	}
	s := &entity.Stage{
		Name:  c.Name,
		Left:  c.Bounds.Left,
		Right: c.Bounds.Right,
	}
	for i, p := range c.Start {
		if p.X < c.Bounds.Left || p.X > c.Bounds.Right {
			return nil, fmt.Errorf("stage %s: start %d outside bounds", c.ID, i+1)
		}
		s.Start[i] = mgl64.Vec3{p.X, p.Depth, p.Height}
	}
	return s, nil
}
