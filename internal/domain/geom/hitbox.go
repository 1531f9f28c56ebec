package geom

import "math"

// Forever is the end frame of a span that never expires.
const Forever = math.MaxInt32

// Span is a set of boxes active from the previous span's End (exclusive)
// through End (inclusive). An empty Boxes slice means nothing is active.
type Span struct {
	End   int
	Boxes []Box
}

// Hitbox is a timeline of spans ordered by End.
type Hitbox struct {
	Spans []Span
}

// NewHitbox creates a hitbox from spans. Spans must be sorted by End.
func NewHitbox(spans ...Span) Hitbox {
	return Hitbox{Spans: spans}
}

// Flat creates a hitbox whose boxes are active for the whole action.
func Flat(boxes ...Box) Hitbox {
	return Hitbox{Spans: []Span{{End: Forever, Boxes: boxes}}}
}

// At returns the boxes active on frame. ok is false when frame is past the
// last span, which callers treat the same as an empty set.
func (h Hitbox) At(frame int) (boxes []Box, ok bool) {
	for _, s := range h.Spans {
		if s.End >= frame {
			return s.Boxes, true
		}
	}
	return nil, false
}

// Lifetime returns the last frame any span covers, or -1 for an empty timeline.
func (h Hitbox) Lifetime() int {
	if len(h.Spans) == 0 {
		return -1
	}
	return h.Spans[len(h.Spans)-1].End
}

// Empty reports whether the hitbox has no boxes on any frame.
func (h Hitbox) Empty() bool {
	for _, s := range h.Spans {
		if len(s.Boxes) > 0 {
			return false
		}
	}
	return true
}

// Collides reports whether any box active on aFrame collides with any box of
// o active on bFrame.
func (h Hitbox) Collides(o Hitbox, aFrame, bFrame int, offA, offB Offset, aFacingRight, bFacingRight bool) bool {
	aboxes, _ := h.At(aFrame)
	bboxes, _ := o.At(bFrame)
	if len(aboxes) == 0 || len(bboxes) == 0 {
		return false
	}
	for _, a := range aboxes {
		for _, b := range bboxes {
			if a.Collides(b, offA, offB, aFacingRight, bFacingRight) {
				return true
			}
		}
	}
	return false
}

// CollidesBox reports whether any box active on aFrame collides with b.
func (h Hitbox) CollidesBox(b Box, aFrame int, offA, offB Offset, aFacingRight, bFacingRight bool) bool {
	aboxes, _ := h.At(aFrame)
	for _, a := range aboxes {
		if a.Collides(b, offA, offB, aFacingRight, bFacingRight) {
			return true
		}
	}
	return false
}
