package core

// Ring is a fixed-capacity FIFO queue. It never reallocates after construction.
type Ring[T any] struct {
	items []T
	head  int
	n     int
}

// NewRing creates a ring holding at most capacity items.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Len returns the number of queued items.
func (r *Ring[T]) Len() int { return r.n }

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.items) }

// Full reports whether Push would fail.
func (r *Ring[T]) Full() bool { return r.n == len(r.items) }

// Push appends v at the tail. Returns false if the ring is full.
func (r *Ring[T]) Push(v T) bool {
	if r.Full() {
		return false
	}
	r.items[(r.head+r.n)%len(r.items)] = v
	r.n++
	return true
}

// Pop removes and returns the head item.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.n == 0 {
		return zero, false
	}
	v := r.items[r.head]
	r.items[r.head] = zero
	r.head = (r.head + 1) % len(r.items)
	r.n--
	return v, true
}

// Peek returns a pointer to the head item, or nil when empty.
func (r *Ring[T]) Peek() *T {
	if r.n == 0 {
		return nil
	}
	return &r.items[r.head]
}

// At returns a pointer to the i-th queued item, 0 being the head.
// The pointer is valid until the next Pop or Clear.
func (r *Ring[T]) At(i int) *T {
	if i < 0 || i >= r.n {
		panic("ring: index out of range")
	}
	return &r.items[(r.head+i)%len(r.items)]
}

// Tail returns a pointer to the newest item, or nil when empty.
func (r *Ring[T]) Tail() *T {
	if r.n == 0 {
		return nil
	}
	return r.At(r.n - 1)
}

// Clear drops every item.
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head = 0
	r.n = 0
}
