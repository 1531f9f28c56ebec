package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_PushAndAt(t *testing.T) {
	b := New[int](3)
	assert.Equal(t, 3, b.Cap())
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.At(0))

	b.Push(1)
	b.Push(2)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, 2, *b.Last())
	assert.Equal(t, 1, *b.At(1))
	assert.Nil(t, b.At(2))

	// overwrite the oldest
	b.Push(3)
	b.Push(4)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 4, *b.At(0))
	assert.Equal(t, 3, *b.At(1))
	assert.Equal(t, 2, *b.At(2))
	assert.Nil(t, b.At(3))
	assert.Nil(t, b.At(-1))
}

func TestBuffer_AtIsMutable(t *testing.T) {
	b := New[int](2)
	b.Push(1)
	b.Push(2)

	*b.At(1) = 10
	assert.Equal(t, 10, *b.At(1))
	assert.Equal(t, 2, *b.Last())
}

func TestBuffer_PopN(t *testing.T) {
	tests := []struct {
		name     string
		pushed   int
		pop      int
		removed  int
		wantLast int
	}{
		{"pop one", 5, 1, 1, 4},
		{"pop zero", 5, 0, 0, 5},
		{"negative is a no-op", 5, -2, 0, 5},
		{"keeps the oldest value", 3, 10, 2, 1},
		{"after wraparound", 7, 3, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[int](4)
			for i := 1; i <= tt.pushed; i++ {
				b.Push(i)
			}
			before := b.Len()

			assert.Equal(t, tt.removed, b.PopN(tt.pop))
			assert.Equal(t, before-tt.removed, b.Len())
			assert.Equal(t, tt.wantLast, *b.Last())
		})
	}
}

func TestBuffer_PushAfterPop(t *testing.T) {
	b := New[int](3)
	for i := 1; i <= 5; i++ {
		b.Push(i)
	}
	b.PopN(2)
	b.Push(40)
	b.Push(50)

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 50, *b.At(0))
	assert.Equal(t, 40, *b.At(1))
	assert.Equal(t, 3, *b.At(2))
}

func TestBuffer_ClearFillReset(t *testing.T) {
	b := New[string](3)
	b.Push("a")
	b.Clear()
	assert.Equal(t, 0, b.Len())

	b.Fill("x")
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, "x", *b.At(2))

	b.Reset("seed")
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, "seed", *b.Last())
	assert.Equal(t, 0, b.PopN(1))
}

func TestNew_MinimumCapacity(t *testing.T) {
	b := New[int](0)
	assert.Equal(t, 1, b.Cap())
	b.Push(1)
	b.Push(2)
	assert.Equal(t, 2, *b.Last())
}
