package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/brawl/internal/domain/geom"
)

// wallDepth is large enough that no body box can pass through a wall.
const wallDepth = 1e6

// Stage is the arena: the stage-axis bounds and the round start positions.
type Stage struct {
	Name  string
	Left  float64
	Right float64
	Start [2]mgl64.Vec3
}

// Width returns the distance between the bounds.
func (s *Stage) Width() float64 {
	return s.Right - s.Left
}

// LeftWall returns the box beyond the left bound.
func (s *Stage) LeftWall() geom.Box {
	return geom.NewBox(s.Left-wallDepth, -wallDepth, s.Left, wallDepth)
}

// RightWall returns the box beyond the right bound.
func (s *Stage) RightWall() geom.Box {
	return geom.NewBox(s.Right, -wallDepth, s.Right+wallDepth, wallDepth)
}
