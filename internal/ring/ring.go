// Package ring provides a fixed-capacity circular buffer that keeps the most
// recent values. It backs both the per-player input history and the rollback
// frame history.
package ring

// Buffer is a fixed-capacity ring. Pushing onto a full buffer overwrites the
// oldest value. Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	v    []T
	end  int // index of the most recent value
	size int
}

// New creates an empty buffer holding at most capacity values.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{v: make([]T, capacity), end: capacity - 1}
}

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int { return len(b.v) }

// Len returns the number of buffered values.
func (b *Buffer[T]) Len() int { return b.size }

// Push appends x as the most recent value.
func (b *Buffer[T]) Push(x T) {
	b.end++
	if b.end == len(b.v) {
		b.end = 0
	}
	b.v[b.end] = x
	if b.size < len(b.v) {
		b.size++
	}
}

// Last returns a pointer to the most recent value. The buffer must not be
// empty.
func (b *Buffer[T]) Last() *T {
	return b.At(0)
}

// At returns a pointer to the i-th most recent value (0 is the last pushed),
// or nil when fewer than i+1 values are buffered. The pointer is valid until
// the slot is overwritten by a later Push.
func (b *Buffer[T]) At(i int) *T {
	if i < 0 || i >= b.size {
		return nil
	}
	j := b.end - i
	if j < 0 {
		j += len(b.v)
	}
	return &b.v[j]
}

// PopN removes up to m of the most recent values but always keeps the oldest
// one. It returns the number removed.
func (b *Buffer[T]) PopN(m int) int {
	if m > b.size-1 {
		m = b.size - 1
	}
	if m <= 0 {
		return 0
	}
	var zero T
	for k := 0; k < m; k++ {
		b.v[b.end] = zero
		b.end--
		if b.end < 0 {
			b.end += len(b.v)
		}
	}
	b.size -= m
	return m
}

// Clear removes every value.
func (b *Buffer[T]) Clear() {
	var zero T
	for i := range b.v {
		b.v[i] = zero
	}
	b.end = len(b.v) - 1
	b.size = 0
}

// Fill replaces the contents with Cap copies of x.
func (b *Buffer[T]) Fill(x T) {
	for i := range b.v {
		b.v[i] = x
	}
	b.end = len(b.v) - 1
	b.size = len(b.v)
}

// Reset clears the buffer and pushes x as its only value.
func (b *Buffer[T]) Reset(x T) {
	b.Clear()
	b.Push(x)
}
