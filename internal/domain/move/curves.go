package move

import "github.com/go-gl/mathgl/mgl64"

// JumpScale multiplies JumpHeights samples into stage units.
const JumpScale = 5.0

// JumpHeights is the height of a jump by frames since the jump started.
var JumpHeights = [22]float64{
	0, 4, 7.6, 10.8, 13.6, 16, 18, 19.6, 20.8, 21.6, 22,
	22, 21.6, 20.8, 19.6, 18, 16, 13.6, 10.8, 7.6, 4, 0,
}

// KnockdownHeights is the height of a knocked down player while airborne.
var KnockdownHeights = [10]float64{0, 8, 14, 18, 20, 20, 18, 14, 8, 0}

// KnockdownAirborneLength is the number of airborne knockdown frames.
const KnockdownAirborneLength = len(KnockdownHeights)

// ThrownPositions is the default position of a thrown player relative to the
// grabber, X along the grabber's facing.
var ThrownPositions = []mgl64.Vec3{
	{60, 0, 0},
	{50, 0, 30},
	{35, 0, 60},
	{20, 0, 90},
	{0, 0, 110},
	{-20, 0, 120},
	{-40, 0, 110},
	{-55, 0, 90},
	{-70, 0, 60},
	{-80, 0, 30},
	{-90, 0, 10},
	{-100, 0, 0},
}

// JumpHeight returns the scaled jump height f frames into a jump. Frames past
// the table land on the ground.
func JumpHeight(f int) float64 {
	if f < 0 || f >= len(JumpHeights) {
		return 0
	}
	return JumpHeights[f] * JumpScale
}

// KnockdownHeight returns the knockdown height f frames into the fall.
func KnockdownHeight(f int) float64 {
	if f < 0 || f >= len(KnockdownHeights) {
		return 0
	}
	return KnockdownHeights[f]
}

// ThrownOffset returns the thrown offset f frames into a throw, clamping to
// the last sample. path falls back to ThrownPositions when empty.
func ThrownOffset(path []mgl64.Vec3, f int) mgl64.Vec3 {
	if len(path) == 0 {
		path = ThrownPositions
	}
	if f < 0 {
		f = 0
	}
	if f >= len(path) {
		f = len(path) - 1
	}
	return path[f]
}
