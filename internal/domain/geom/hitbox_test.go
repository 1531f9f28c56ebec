package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitbox_At(t *testing.T) {
	boxX := NewBox(0, 0, 10, 10)
	boxY := NewBox(20, 0, 30, 10)
	h := NewHitbox(
		Span{End: 5, Boxes: []Box{boxX}},
		Span{End: 10, Boxes: []Box{boxY}},
	)

	tests := []struct {
		frame  int
		want   []Box
		wantOK bool
	}{
		{0, []Box{boxX}, true},
		{3, []Box{boxX}, true},
		{5, []Box{boxX}, true},
		{6, []Box{boxY}, true},
		{10, []Box{boxY}, true},
		{11, nil, false},
	}

	for _, tt := range tests {
		got, ok := h.At(tt.frame)
		assert.Equal(t, tt.wantOK, ok, "frame %d", tt.frame)
		assert.Equal(t, tt.want, got, "frame %d", tt.frame)
	}
}

func TestHitbox_AtTiesResolveToEarliest(t *testing.T) {
	first := NewBox(0, 0, 1, 1)
	second := NewBox(5, 5, 6, 6)
	h := NewHitbox(Span{End: 3, Boxes: []Box{first}}, Span{End: 3, Boxes: []Box{second}})

	got, ok := h.At(3)
	assert.True(t, ok)
	assert.Equal(t, []Box{first}, got)
}

func TestHitbox_Flat(t *testing.T) {
	b := Centered(100, 200)
	h := Flat(b)

	got, ok := h.At(100000)
	assert.True(t, ok)
	assert.Equal(t, []Box{b}, got)
	assert.Equal(t, Forever, h.Lifetime())
	assert.False(t, h.Empty())

	assert.Equal(t, -1, Hitbox{}.Lifetime())
	assert.True(t, Hitbox{}.Empty())
}

func TestHitbox_Collides(t *testing.T) {
	// inactive on frame 1, active through frame 2
	attack := NewHitbox(
		Span{End: 1},
		Span{End: 2, Boxes: []Box{NewBox(0, 100, 150, 200)}},
	)
	body := Flat(Centered(100, 200))

	tests := []struct {
		name   string
		frame  int
		offA   Offset
		offB   Offset
		aRight bool
		want   bool
	}{
		{"empty span never collides", 1, Offset{X: 0}, Offset{X: 100}, true, false},
		{"active span in range", 2, Offset{X: 0}, Offset{X: 100}, true, true},
		{"active span out of range", 2, Offset{X: 0}, Offset{X: 201}, true, false},
		{"past lifetime", 3, Offset{X: 0}, Offset{X: 100}, true, false},
		{"facing away misses", 2, Offset{X: 0}, Offset{X: 100}, false, false},
		{"facing left reaches left", 2, Offset{X: 0}, Offset{X: -100}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attack.Collides(body, tt.frame, 0, tt.offA, tt.offB, tt.aRight, !tt.aRight)
			assert.Equal(t, tt.want, got)

			got = attack.CollidesBox(Centered(100, 200), tt.frame, tt.offA, tt.offB, tt.aRight, !tt.aRight)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHitbox_CollidesRequiresBothSides(t *testing.T) {
	attack := Flat(NewBox(0, 0, 50, 50))
	empty := Hitbox{}

	assert.False(t, attack.Collides(empty, 0, 0, Offset{}, Offset{}, true, false))
	assert.False(t, empty.Collides(attack, 0, 0, Offset{}, Offset{}, true, false))
}
