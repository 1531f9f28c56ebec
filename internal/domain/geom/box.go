// Package geom provides the axis-aligned boxes and per-frame box timelines
// used for body collision, hitboxes and hurtboxes.
package geom

// Box is an axis-aligned interval in character-local coordinates.
// X runs along the stage axis in the direction the owner faces, Y is height.
type Box struct {
	X, Y, XEnd, YEnd float64
}

// NewBox creates a box from its corners.
func NewBox(x, y, xend, yend float64) Box {
	return Box{X: x, Y: y, XEnd: xend, YEnd: yend}
}

// Centered creates a box of the given width centered on x = 0, standing on y = 0.
func Centered(width, height float64) Box {
	return Box{X: -width / 2, Y: 0, XEnd: width / 2, YEnd: height}
}

// Mirrored returns the box reflected about x = 0.
func (b Box) Mirrored() Box {
	return Box{X: -b.XEnd, Y: b.Y, XEnd: -b.X, YEnd: b.YEnd}
}

// world returns the box in stage coordinates for an owner at (ox, oy).
func (b Box) world(ox, oy float64, facingRight bool) Box {
	if !facingRight {
		b = b.Mirrored()
	}
	return Box{X: b.X + ox, Y: b.Y + oy, XEnd: b.XEnd + ox, YEnd: b.YEnd + oy}
}

// Placed returns the box in stage coordinates for an owner at off.
func (b Box) Placed(off Offset, facingRight bool) Box {
	return b.world(off.X, off.Y, facingRight)
}

// Offset is a world position used to place a local box.
type Offset struct {
	X, Y float64
}

// Collides reports whether b and o overlap once both are placed in the world.
// Boxes that only touch on an edge collide.
func (b Box) Collides(o Box, offA, offB Offset, aFacingRight, bFacingRight bool) bool {
	a := b.world(offA.X, offA.Y, aFacingRight)
	c := o.world(offB.X, offB.Y, bFacingRight)
	return !(a.XEnd < c.X || a.X > c.XEnd || a.YEnd < c.Y || a.Y > c.YEnd)
}

// CollisionExtent returns the signed stage-axis distance b must move to stop
// overlapping o. It is zero when the boxes do not overlap in both axes.
func (b Box) CollisionExtent(o Box, offA, offB Offset, aFacingRight, bFacingRight bool) float64 {
	a := b.world(offA.X, offA.Y, aFacingRight)
	c := o.world(offB.X, offB.Y, bFacingRight)

	if a.YEnd < c.Y || a.Y > c.YEnd {
		return 0
	}
	if a.XEnd <= c.X || a.X >= c.XEnd {
		return 0
	}

	pushLeft := -(a.XEnd - c.X)
	pushRight := c.XEnd - a.X

	switch {
	case a.X < c.X && a.XEnd < c.XEnd:
		// a overlaps c's left edge
		return pushLeft
	case a.X > c.X && a.XEnd > c.XEnd:
		// a overlaps c's right edge
		return pushRight
	}

	// one box contains the other
	if (a.X + a.XEnd) < (c.X + c.XEnd) {
		return pushLeft
	}
	return pushRight
}

// Center returns the center of the box on the stage axis.
func (b Box) Center() float64 {
	return (b.X + b.XEnd) / 2
}
